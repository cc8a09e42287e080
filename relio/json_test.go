package relio

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/TomTonic/dltree/numeric"
)

func TestJSONFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	schema := Schema{Name: "pair", Types: []numeric.ColumnType{numeric.TagSigned, numeric.TagFloat}}
	opts := Options{"filename": filepath.Join(dir, "pair.json")}

	w, err := newJSONFileWriter(schema, opts)
	if err != nil {
		t.Fatalf("newJSONFileWriter error: %v", err)
	}
	rows := [][]uint64{
		{numeric.BitCast64From[uint64](int64(-3)), numeric.BitCast64From[uint64](1.5)},
		{numeric.BitCast64From[uint64](int64(9)), numeric.BitCast64From[uint64](2.25)},
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			t.Fatalf("Write error: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	r, err := newJSONFileReader(schema, opts)
	if err != nil {
		t.Fatalf("newJSONFileReader error: %v", err)
	}
	defer r.Close()
	for i, want := range rows {
		got, err := r.Read()
		if err != nil {
			t.Fatalf("Read() row %d error: %v", i, err)
		}
		for c := range want {
			if got[c] != want[c] {
				t.Fatalf("row %d column %d = %d, want %d", i, c, got[c], want[c])
			}
		}
	}
	if _, err := r.Read(); err != io.EOF {
		t.Fatalf("expected io.EOF after last row, got %v", err)
	}
}

func TestJSONObjectRowShape(t *testing.T) {
	dir := t.TempDir()
	schema := Schema{Name: "obj", Types: []numeric.ColumnType{numeric.TagUnsigned, numeric.TagUnsigned}}
	path := filepath.Join(dir, "obj.json")
	if err := os.WriteFile(path, []byte(`[{"c0": 1, "c1": 2}]`), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	r, err := newJSONFileReader(schema, Options{"filename": path})
	if err != nil {
		t.Fatalf("newJSONFileReader error: %v", err)
	}
	defer r.Close()
	row, err := r.Read()
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if row[0] != 1 || row[1] != 2 {
		t.Fatalf("row = %v, want [1 2]", row)
	}
}

func TestJSONSymbolCell(t *testing.T) {
	dir := t.TempDir()
	syms := NewSymbolTable()
	schema := Schema{Name: "syms", Types: []numeric.ColumnType{numeric.TagSymbol}, Symbols: syms}
	opts := Options{"filename": filepath.Join(dir, "syms.json")}

	w, err := newJSONFileWriter(schema, opts)
	if err != nil {
		t.Fatalf("newJSONFileWriter error: %v", err)
	}
	id := syms.Encode("greeting")
	if err := w.Write([]uint64{id}); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	r, err := newJSONFileReader(schema, opts)
	if err != nil {
		t.Fatalf("newJSONFileReader error: %v", err)
	}
	defer r.Close()
	row, err := r.Read()
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	str, ok := syms.Decode(row[0])
	if !ok || str != "greeting" {
		t.Fatalf("decoded symbol = %q, %v, want %q, true", str, ok, "greeting")
	}
}

func TestJSONADTCellAcceptsBareBranchOrPair(t *testing.T) {
	dir := t.TempDir()
	schema := Schema{Name: "adt", Types: []numeric.ColumnType{numeric.TagADT}}
	path := filepath.Join(dir, "adt.json")
	if err := os.WriteFile(path, []byte(`[[1], [[2, [7]]]]`), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	r, err := newJSONFileReader(schema, Options{"filename": path})
	if err != nil {
		t.Fatalf("newJSONFileReader error: %v", err)
	}
	defer r.Close()

	row1, err := r.Read()
	if err != nil {
		t.Fatalf("Read row 1 error: %v", err)
	}
	if row1[0] != 1 {
		t.Fatalf("row 1 branch = %d, want 1", row1[0])
	}

	row2, err := r.Read()
	if err != nil {
		t.Fatalf("Read row 2 error: %v", err)
	}
	if row2[0] != 2 {
		t.Fatalf("row 2 branch = %d, want 2", row2[0])
	}
}
