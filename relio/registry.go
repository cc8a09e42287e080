package relio

import (
	"fmt"

	"github.com/TomTonic/dltree/numeric"
)

// Options is the key-value option map read off an IO= directive
// (filename, delimiter, rfc4180, headers, ...).
type Options map[string]string

func (o Options) get(key, def string) string {
	if v, ok := o[key]; ok {
		return v
	}
	return def
}

func (o Options) flag(key string) bool { return o[key] == "true" }

// Schema describes the relation a reader/writer is bound to: its name
// (used to derive default filenames), column type tags, auxiliary
// (provenance) column count, and the symbol table symbol-tagged columns
// intern through.
type Schema struct {
	Name     string
	Types    []numeric.ColumnType
	AuxArity int
	Symbols  *SymbolTable
}

func (s Schema) arity() int { return len(s.Types) + s.AuxArity }

// RowReader yields tuples one at a time; Read returns io.EOF once
// exhausted.
type RowReader interface {
	Read() ([]uint64, error)
	Close() error
}

// RowWriter consumes tuples one at a time.
type RowWriter interface {
	Write([]uint64) error
	Close() error
}

// ReaderFactory builds a RowReader for a relation's schema and options.
type ReaderFactory func(schema Schema, opts Options) (RowReader, error)

// WriterFactory builds a RowWriter for a relation's schema and options.
type WriterFactory func(schema Schema, opts Options) (RowWriter, error)

// Registry maps an IO= key to the reader/writer factory that serves it.
type Registry struct {
	readers map[string]ReaderFactory
	writers map[string]WriterFactory
}

// NewRegistry returns a Registry pre-populated with the standard IO=
// keys: file, stdin, stdout, stdoutprintsize, jsonfile, json, sqlite.
func NewRegistry() *Registry {
	r := &Registry{readers: make(map[string]ReaderFactory), writers: make(map[string]WriterFactory)}

	r.readers["file"] = newCSVFileReader
	r.readers["stdin"] = newCSVStdinReader
	r.readers["jsonfile"] = newJSONFileReader
	r.readers["json"] = newJSONStdinReader
	r.readers["sqlite"] = newSQLiteReader

	r.writers["file"] = newCSVFileWriter
	r.writers["stdout"] = newCSVStdoutWriter
	r.writers["stdoutprintsize"] = newCountingWriter
	r.writers["jsonfile"] = newJSONFileWriter
	r.writers["json"] = newJSONStdoutWriter
	r.writers["sqlite"] = newSQLiteWriter

	return r
}

// Register installs (or overrides) the factories for an IO= key. Either
// factory may be nil if that key only supports one direction.
func (r *Registry) Register(ioKey string, reader ReaderFactory, writer WriterFactory) {
	if reader != nil {
		r.readers[ioKey] = reader
	}
	if writer != nil {
		r.writers[ioKey] = writer
	}
}

// NewReader builds the reader for ioKey, or ErrUnknownIO if unregistered.
func (r *Registry) NewReader(ioKey string, schema Schema, opts Options) (RowReader, error) {
	f, ok := r.readers[ioKey]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownIO, ioKey)
	}
	return f(schema, opts)
}

// countingWriter discards every row and, on Close, prints the total row
// count to stdout instead of the rows themselves (IO=stdoutprintsize).
type countingWriter struct {
	name  string
	count uint64
}

func newCountingWriter(schema Schema, opts Options) (RowWriter, error) {
	return &countingWriter{name: schema.Name}, nil
}

func (c *countingWriter) Write(row []uint64) error {
	c.count++
	return nil
}

func (c *countingWriter) Close() error {
	fmt.Printf("%s\t%d\n", c.name, c.count)
	return nil
}

// NewWriter builds the writer for ioKey, or ErrUnknownIO if unregistered.
func (r *Registry) NewWriter(ioKey string, schema Schema, opts Options) (RowWriter, error) {
	f, ok := r.writers[ioKey]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownIO, ioKey)
	}
	return f(schema, opts)
}
