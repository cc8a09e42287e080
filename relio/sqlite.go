package relio

import (
	"database/sql"
	"fmt"
	"io"
	"path/filepath"

	"github.com/TomTonic/dltree/numeric"
)

// SQLite I/O is driver-agnostic: it opens "sqlite" through database/sql,
// never importing a concrete cgo or pure-Go driver directly. Callers that
// want IO=sqlite to work register a driver under that name (blank-importing
// mattn/go-sqlite3 or modernc.org/sqlite) before touching this package; no
// driver choice in the example pack was unanimous enough to bind here.
//
// Each relation is stored in a table named "_<relname>" holding each
// column cell in its textual form (symbol-tagged columns hold the decoded
// string, not the id), plus a view "<relname>" that selects every column of
// that table unchanged. The __SymbolTable table is created but is neither
// filled nor joined by the view.

const symbolTableDDL = `CREATE TABLE IF NOT EXISTS __SymbolTable (
	id INTEGER PRIMARY KEY,
	value TEXT UNIQUE NOT NULL
)`

func sqliteFilename(schema Schema, opts Options) string {
	if name := opts.get("filename", ""); name != "" {
		return name
	}
	dir := opts.get("fact-dir", ".")
	return filepath.Join(dir, "facts.sqlite")
}

func openSQLite(schema Schema, opts Options) (*sql.DB, error) {
	name := sqliteFilename(schema, opts)
	db, err := sql.Open("sqlite", name)
	if err != nil {
		return nil, fmt.Errorf("%w: opening sqlite database %q: %v", ErrIOFailure, name, err)
	}
	return db, nil
}

type sqliteReader struct {
	schema Schema
	db     *sql.DB
	rows   *sql.Rows
}

func newSQLiteReader(schema Schema, opts Options) (RowReader, error) {
	db, err := openSQLite(schema, opts)
	if err != nil {
		return nil, err
	}
	q := fmt.Sprintf("SELECT * FROM '%s'", schema.Name)
	rows, err := db.Query(q)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: querying relation %q: %v", ErrIOFailure, schema.Name, err)
	}
	return &sqliteReader{schema: schema, db: db, rows: rows}, nil
}

func (r *sqliteReader) Read() ([]uint64, error) {
	if !r.rows.Next() {
		if err := r.rows.Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrIOFailure, err)
		}
		return nil, io.EOF
	}
	arity := r.schema.arity()
	scan := make([]any, arity)
	dest := make([]sql.NullString, arity)
	for i := range dest {
		scan[i] = &dest[i]
	}
	if err := r.rows.Scan(scan...); err != nil {
		return nil, fmt.Errorf("%w: scanning row: %v", ErrIOFailure, err)
	}
	row := make([]uint64, arity)
	for i := 0; i < arity; i++ {
		tag := numeric.TagUnsigned
		if i < len(r.schema.Types) {
			tag = r.schema.Types[i]
		}
		v, err := encodeCell(tag, dest[i].String, r.schema.Symbols)
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", i+1, err)
		}
		row[i] = v
	}
	return row, nil
}

func (r *sqliteReader) Close() error {
	r.rows.Close()
	return r.db.Close()
}

type sqliteWriter struct {
	schema Schema
	db     *sql.DB
	insert *sql.Stmt
}

func newSQLiteWriter(schema Schema, opts Options) (RowWriter, error) {
	name := sqliteFilename(schema, opts)
	if dir := opts.get("output-dir", ""); dir != "" {
		name = filepath.Join(dir, filepath.Base(name))
	}
	db, err := sql.Open("sqlite", name)
	if err != nil {
		return nil, fmt.Errorf("%w: opening sqlite database %q: %v", ErrIOFailure, name, err)
	}
	if _, err := db.Exec(symbolTableDDL); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", ErrIOFailure, err)
	}
	arity := schema.arity()
	var cols, placeholders string
	for i := 0; i < arity; i++ {
		if i > 0 {
			cols += ", "
			placeholders += ", "
		}
		cols += fmt.Sprintf("c%d", i)
		placeholders += "?"
	}
	ddl := fmt.Sprintf("CREATE TABLE IF NOT EXISTS '_%s' (%s)", schema.Name, columnDefs(schema, arity))
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", ErrIOFailure, err)
	}
	view := fmt.Sprintf("CREATE VIEW IF NOT EXISTS '%s' AS SELECT * FROM '_%s'", schema.Name, schema.Name)
	if _, err := db.Exec(view); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", ErrIOFailure, err)
	}
	stmt, err := db.Prepare(fmt.Sprintf("INSERT INTO '_%s' (%s) VALUES (%s)", schema.Name, cols, placeholders))
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", ErrIOFailure, err)
	}
	return &sqliteWriter{schema: schema, db: db, insert: stmt}, nil
}

func columnDefs(schema Schema, arity int) string {
	var s string
	for i := 0; i < arity; i++ {
		if i > 0 {
			s += ", "
		}
		tag := numeric.TagUnsigned
		if i < len(schema.Types) {
			tag = schema.Types[i]
		}
		sqlType := "INTEGER"
		if tag == numeric.TagFloat {
			sqlType = "REAL"
		}
		s += fmt.Sprintf("c%d %s", i, sqlType)
	}
	return s
}

func (w *sqliteWriter) Write(row []uint64) error {
	arity := w.schema.arity()
	if len(row) != arity {
		return fmt.Errorf("%w: expected %d columns, got %d", ErrInvalidInput, arity, len(row))
	}
	args := make([]any, arity)
	for i := 0; i < arity; i++ {
		tag := numeric.TagUnsigned
		if i < len(w.schema.Types) {
			tag = w.schema.Types[i]
		}
		cell, err := decodeCell(tag, row[i], w.schema.Symbols)
		if err != nil {
			return err
		}
		args[i] = cell
	}
	if _, err := w.insert.Exec(args...); err != nil {
		return fmt.Errorf("%w: inserting row: %v", ErrIOFailure, err)
	}
	return nil
}

func (w *sqliteWriter) Close() error {
	if err := w.insert.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrIOFailure, err)
	}
	return w.db.Close()
}
