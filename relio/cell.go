package relio

import (
	"fmt"
	"strconv"

	"github.com/TomTonic/dltree/numeric"
)

// encodeCell parses a raw input cell for column type tag into the raw
// 64-bit storage representation a relation.Tuple cell holds, per
// numeric's bitcast convention. Symbol columns intern through syms.
func encodeCell(tag numeric.ColumnType, raw string, syms *SymbolTable) (uint64, error) {
	switch tag {
	case numeric.TagSigned:
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: signed cell %q: %v", ErrTypeMismatch, raw, err)
		}
		return numeric.BitCast64From[uint64](v), nil
	case numeric.TagUnsigned, numeric.TagRecord, numeric.TagADT:
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: unsigned cell %q: %v", ErrTypeMismatch, raw, err)
		}
		return v, nil
	case numeric.TagFloat:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: float cell %q: %v", ErrTypeMismatch, raw, err)
		}
		return numeric.BitCast64From[uint64](v), nil
	case numeric.TagSymbol:
		if syms == nil {
			return 0, fmt.Errorf("%w: symbol column requires a symbol table", ErrConfiguration)
		}
		return syms.Encode(raw), nil
	default:
		return 0, fmt.Errorf("%w: unknown column type tag %q", ErrInvalidInput, tag.String())
	}
}

// decodeCell renders a raw 64-bit cell back to its textual form for tag.
func decodeCell(tag numeric.ColumnType, v uint64, syms *SymbolTable) (string, error) {
	switch tag {
	case numeric.TagSigned:
		return strconv.FormatInt(numeric.BitCast64From[int64](v), 10), nil
	case numeric.TagUnsigned, numeric.TagRecord, numeric.TagADT:
		return strconv.FormatUint(v, 10), nil
	case numeric.TagFloat:
		return strconv.FormatFloat(numeric.BitCast64From[float64](v), 'g', -1, 64), nil
	case numeric.TagSymbol:
		if syms == nil {
			return "", fmt.Errorf("%w: symbol column requires a symbol table", ErrConfiguration)
		}
		str, ok := syms.Decode(v)
		if !ok {
			return "", fmt.Errorf("%w: unknown symbol id %d", ErrInvalidInput, v)
		}
		return str, nil
	default:
		return "", fmt.Errorf("%w: unknown column type tag %q", ErrInvalidInput, tag.String())
	}
}
