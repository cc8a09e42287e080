package relio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/TomTonic/dltree/numeric"
)

// jsonReader reads one JSON array-of-rows document, where each row is
// itself an array of cells in column order (the array row shape; the
// object row shape keyed by column name is accepted on read too).
type jsonReader struct {
	schema Schema
	src    io.ReadCloser
	rows   []json.RawMessage
	next   int
}

func newJSONFileReader(schema Schema, opts Options) (RowReader, error) {
	name := opts.get("filename", filepath.Join(opts.get("fact-dir", "."), schema.Name+".json"))
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %q: %v", ErrIOFailure, name, err)
	}
	return newJSONReaderFrom(schema, f)
}

func newJSONStdinReader(schema Schema, opts Options) (RowReader, error) {
	return newJSONReaderFrom(schema, io.NopCloser(os.Stdin))
}

func newJSONReaderFrom(schema Schema, rc io.ReadCloser) (RowReader, error) {
	var rows []json.RawMessage
	if err := json.NewDecoder(rc).Decode(&rows); err != nil {
		rc.Close()
		return nil, fmt.Errorf("%w: decoding json array: %v", ErrInvalidInput, err)
	}
	return &jsonReader{schema: schema, src: rc, rows: rows}, nil
}

func (r *jsonReader) Read() ([]uint64, error) {
	if r.next >= len(r.rows) {
		return nil, io.EOF
	}
	raw := r.rows[r.next]
	r.next++

	var arr []json.RawMessage
	if err := json.Unmarshal(raw, &arr); err == nil {
		return r.decodeArrayRow(arr)
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err == nil {
		return r.decodeObjectRow(obj)
	}
	return nil, fmt.Errorf("%w: row %d is neither a json array nor object", ErrInvalidInput, r.next)
}

func (r *jsonReader) decodeArrayRow(arr []json.RawMessage) ([]uint64, error) {
	arity := r.schema.arity()
	if len(arr) != arity {
		return nil, fmt.Errorf("%w: row %d: expected %d columns, got %d", ErrInvalidInput, r.next, arity, len(arr))
	}
	row := make([]uint64, arity)
	for i, raw := range arr {
		v, err := decodeJSONCell(r.columnType(i), raw, r.schema.Symbols)
		if err != nil {
			return nil, fmt.Errorf("row %d, column %d: %w", r.next, i+1, err)
		}
		row[i] = v
	}
	return row, nil
}

func (r *jsonReader) decodeObjectRow(obj map[string]json.RawMessage) ([]uint64, error) {
	arity := r.schema.arity()
	row := make([]uint64, arity)
	for i := 0; i < arity; i++ {
		key := fmt.Sprintf("c%d", i)
		raw, ok := obj[key]
		if !ok {
			return nil, fmt.Errorf("%w: row %d: missing field %q", ErrInvalidInput, r.next, key)
		}
		v, err := decodeJSONCell(r.columnType(i), raw, r.schema.Symbols)
		if err != nil {
			return nil, fmt.Errorf("row %d, field %q: %w", r.next, key, err)
		}
		row[i] = v
	}
	return row, nil
}

func (r *jsonReader) columnType(i int) numeric.ColumnType {
	if i < len(r.schema.Types) {
		return r.schema.Types[i]
	}
	return numeric.TagUnsigned
}

func (r *jsonReader) Close() error { return r.src.Close() }

// decodeJSONCell maps a JSON scalar back to a raw uint64 storage cell. ADT
// columns accept either a bare branch index or a [branchIdx, arg...] pair;
// only the branch index is retained (arguments are not separately modeled
// at this boundary).
func decodeJSONCell(tag numeric.ColumnType, raw json.RawMessage, syms *SymbolTable) (uint64, error) {
	switch tag {
	case numeric.TagSigned, numeric.TagUnsigned, numeric.TagRecord:
		var n uint64
		if err := json.Unmarshal(raw, &n); err == nil {
			return n, nil
		}
		var s int64
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
		}
		if tag == numeric.TagSigned {
			return numeric.BitCast64From[uint64](s), nil
		}
		return uint64(s), nil
	case numeric.TagFloat:
		var f float64
		if err := json.Unmarshal(raw, &f); err != nil {
			return 0, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
		}
		return numeric.BitCast64From[uint64](f), nil
	case numeric.TagSymbol:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
		}
		if syms == nil {
			return 0, fmt.Errorf("%w: symbol column requires a symbol table", ErrConfiguration)
		}
		return syms.Encode(s), nil
	case numeric.TagADT:
		var branch uint64
		if err := json.Unmarshal(raw, &branch); err == nil {
			return branch, nil
		}
		var pair []json.RawMessage
		if err := json.Unmarshal(raw, &pair); err != nil || len(pair) == 0 {
			return 0, fmt.Errorf("%w: malformed ADT cell", ErrTypeMismatch)
		}
		if err := json.Unmarshal(pair[0], &branch); err != nil {
			return 0, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
		}
		return branch, nil
	default:
		return 0, fmt.Errorf("%w: unknown column type tag %q", ErrInvalidInput, tag.String())
	}
}

// jsonWriter accumulates rows and emits a single JSON array document on
// Close (JSON has no natural streaming row terminator the way CSV's
// newline gives it one).
type jsonWriter struct {
	schema Schema
	dst    io.Writer
	closer io.Closer
	rows   [][]any
}

func newJSONFileWriter(schema Schema, opts Options) (RowWriter, error) {
	name := opts.get("filename", filepath.Join(opts.get("output-dir", "."), schema.Name+".json"))
	f, err := os.Create(name)
	if err != nil {
		return nil, fmt.Errorf("%w: creating %q: %v", ErrIOFailure, name, err)
	}
	return &jsonWriter{schema: schema, dst: f, closer: f}, nil
}

func newJSONStdoutWriter(schema Schema, opts Options) (RowWriter, error) {
	return &jsonWriter{schema: schema, dst: os.Stdout}, nil
}

func (w *jsonWriter) Write(row []uint64) error {
	arity := w.schema.arity()
	if len(row) != arity {
		return fmt.Errorf("%w: expected %d columns, got %d", ErrInvalidInput, arity, len(row))
	}
	cells := make([]any, arity)
	for i := 0; i < arity; i++ {
		tag := numeric.TagUnsigned
		if i < len(w.schema.Types) {
			tag = w.schema.Types[i]
		}
		v, err := encodeJSONCell(tag, row[i], w.schema.Symbols)
		if err != nil {
			return err
		}
		cells[i] = v
	}
	w.rows = append(w.rows, cells)
	return nil
}

func encodeJSONCell(tag numeric.ColumnType, v uint64, syms *SymbolTable) (any, error) {
	switch tag {
	case numeric.TagSigned:
		return numeric.BitCast64From[int64](v), nil
	case numeric.TagUnsigned, numeric.TagRecord:
		return v, nil
	case numeric.TagADT:
		return v, nil
	case numeric.TagFloat:
		return numeric.BitCast64From[float64](v), nil
	case numeric.TagSymbol:
		if syms == nil {
			return nil, fmt.Errorf("%w: symbol column requires a symbol table", ErrConfiguration)
		}
		str, ok := syms.Decode(v)
		if !ok {
			return nil, fmt.Errorf("%w: unknown symbol id %d", ErrInvalidInput, v)
		}
		return str, nil
	default:
		return nil, fmt.Errorf("%w: unknown column type tag %q", ErrInvalidInput, tag.String())
	}
}

func (w *jsonWriter) Close() error {
	enc := json.NewEncoder(w.dst)
	if err := enc.Encode(w.rows); err != nil {
		return fmt.Errorf("%w: %v", ErrIOFailure, err)
	}
	if w.closer != nil {
		if err := w.closer.Close(); err != nil {
			return fmt.Errorf("%w: %v", ErrIOFailure, err)
		}
	}
	return nil
}
