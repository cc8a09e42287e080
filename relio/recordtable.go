package relio

import (
	"encoding/binary"

	set3 "github.com/TomTonic/Set3"
)

// RecordTable interns arity-tagged integer vectors (record values, in
// the relation column sense) into dense integer identifiers and back,
// the same string/id dual-table shape as SymbolTable but keyed on a
// packed byte encoding of the vector instead of a normalized string.
type RecordTable struct {
	byKey map[string]uint64
	byID  [][]uint64
	seen  *set3.Set3[string]
}

// NewRecordTable returns an empty RecordTable.
func NewRecordTable() *RecordTable {
	return &RecordTable{
		byKey: make(map[string]uint64),
		seen:  set3.Empty[string](),
	}
}

func packKey(values []uint64, arity int) string {
	buf := make([]byte, 8*(len(values)+1))
	binary.LittleEndian.PutUint64(buf, uint64(arity))
	for i, v := range values {
		binary.LittleEndian.PutUint64(buf[8*(i+1):], v)
	}
	return string(buf)
}

// Pack interns values (length must equal arity), returning its id.
// Repeated calls with the same vector and arity return the same id.
func (r *RecordTable) Pack(values []uint64, arity int) uint64 {
	if len(values) != arity {
		panic("relio: record value count does not match arity")
	}
	key := packKey(values, arity)
	if id, ok := r.byKey[key]; ok {
		return id
	}
	id := uint64(len(r.byID))
	stored := append([]uint64(nil), values...)
	r.byID = append(r.byID, stored)
	r.byKey[key] = id
	r.seen.Add(key)
	return id
}

// Unpack returns the arity-length vector interned under id, or false if
// id was never assigned or its stored arity differs.
func (r *RecordTable) Unpack(id uint64, arity int) ([]uint64, bool) {
	if id >= uint64(len(r.byID)) {
		return nil, false
	}
	values := r.byID[id]
	if len(values) != arity {
		return nil, false
	}
	return values, true
}

// Len returns the number of interned records.
func (r *RecordTable) Len() int { return len(r.byID) }
