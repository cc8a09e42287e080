package relio

import (
	set3 "github.com/TomTonic/Set3"
	"golang.org/x/text/unicode/norm"
)

// SymbolTable is a two-way mapping between strings and integer
// identifiers. Strings are NFC-normalized before interning, so visually
// identical symbols from different input encodings intern to the same
// id.
type SymbolTable struct {
	byString map[string]uint64
	byID     []string
	seen     *set3.Set3[string]
}

// NewSymbolTable returns an empty SymbolTable.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		byString: make(map[string]uint64),
		seen:     set3.Empty[string](),
	}
}

// FindOrInsert returns s's id, interning it if not already present.
func (s *SymbolTable) FindOrInsert(str string) (id uint64, inserted bool) {
	n := norm.NFC.String(str)
	if id, ok := s.byString[n]; ok {
		return id, false
	}
	id = uint64(len(s.byID))
	s.byID = append(s.byID, n)
	s.byString[n] = id
	s.seen.Add(n)
	return id, true
}

// Encode returns str's id, identical to the id half of FindOrInsert.
func (s *SymbolTable) Encode(str string) uint64 {
	id, _ := s.FindOrInsert(str)
	return id
}

// Decode returns the string interned under id, or false if id was never
// assigned.
func (s *SymbolTable) Decode(id uint64) (string, bool) {
	if id >= uint64(len(s.byID)) {
		return "", false
	}
	return s.byID[id], true
}

// Contains reports whether s has already been interned, without
// assigning it an id.
func (s *SymbolTable) Contains(str string) bool {
	return s.seen.Contains(norm.NFC.String(str))
}

// Len returns the number of interned symbols.
func (s *SymbolTable) Len() int { return len(s.byID) }

// All calls yield for every (string, id) pair, in id order, stopping
// early if yield returns false.
func (s *SymbolTable) All(yield func(string, uint64) bool) {
	for id, str := range s.byID {
		if !yield(str, uint64(id)) {
			return
		}
	}
}
