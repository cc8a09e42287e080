package relio

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// csvReader reads delimiter-separated rows, either RFC-4180 quoted or the
// bracket-balanced record convention the fact files use when a column
// value itself needs to embed the delimiter (souffle's `[a, b]` record
// literal; only square brackets are balanced).
type csvReader struct {
	schema    Schema
	delim     byte
	rfc4180   bool
	headers   bool
	columns   []int
	src       io.ReadCloser
	scanner   *bufio.Scanner
	line      int
	startedAt bool
}

func newCSVFileReader(schema Schema, opts Options) (RowReader, error) {
	name := csvFilename(schema, opts)
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %q: %v", ErrIOFailure, name, err)
	}
	return newCSVReaderFrom(schema, opts, f)
}

func newCSVStdinReader(schema Schema, opts Options) (RowReader, error) {
	return newCSVReaderFrom(schema, opts, io.NopCloser(os.Stdin))
}

func newCSVReaderFrom(schema Schema, opts Options, rc io.ReadCloser) (RowReader, error) {
	rfc4180 := opts.flag("rfc4180")
	delim, err := csvDelimiter(opts, rfc4180)
	if err != nil {
		rc.Close()
		return nil, err
	}
	cols, err := csvColumnMap(schema, opts)
	if err != nil {
		rc.Close()
		return nil, err
	}
	r := &csvReader{
		schema:  schema,
		delim:   delim,
		rfc4180: rfc4180,
		headers: opts.flag("headers"),
		columns: cols,
		src:     rc,
	}
	r.scanner = bufio.NewScanner(rc)
	r.scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	return r, nil
}

func (r *csvReader) Read() ([]uint64, error) {
	for {
		if !r.scanner.Scan() {
			if err := r.scanner.Err(); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrIOFailure, err)
			}
			return nil, io.EOF
		}
		r.line++
		line := r.scanner.Text()
		if r.line == 1 && r.headers {
			continue
		}
		if line == "" {
			continue
		}
		fields, err := r.splitLine(line)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidInput, r.line, err)
		}
		arity := r.schema.arity()
		if len(fields) != arity {
			return nil, fmt.Errorf("%w: line %d: expected %d columns, got %d", ErrInvalidInput, r.line, arity, len(fields))
		}
		row := make([]uint64, arity)
		for srcCol, destCol := range r.columns {
			v, err := encodeCell(r.schema.Types[destCol], fields[srcCol], r.schema.Symbols)
			if err != nil {
				return nil, fmt.Errorf("line %d, column %d: %w", r.line, srcCol+1, err)
			}
			row[destCol] = v
		}
		return row, nil
	}
}

func (r *csvReader) splitLine(line string) ([]string, error) {
	if r.rfc4180 {
		return splitRFC4180(line, r.delim)
	}
	return splitBracketBalanced(line, r.delim)
}

func (r *csvReader) Close() error { return r.src.Close() }

// splitRFC4180 splits a single CSV line on delim, honoring RFC-4180
// double-quote escaping (a field wrapped in quotes may embed delim, CR,
// LF, and doubled quotes).
func splitRFC4180(line string, delim byte) ([]string, error) {
	var fields []string
	var cur strings.Builder
	inQuotes := false
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case inQuotes:
			if c == '"' {
				if i+1 < len(line) && line[i+1] == '"' {
					cur.WriteByte('"')
					i++
				} else {
					inQuotes = false
				}
			} else {
				cur.WriteByte(c)
			}
		case c == '"' && cur.Len() == 0:
			inQuotes = true
		case c == delim:
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	if inQuotes {
		return nil, fmt.Errorf("unclosed quoted field")
	}
	fields = append(fields, cur.String())
	return fields, nil
}

// splitBracketBalanced splits on delim outside of balanced [...] runs, the
// convention used when delim itself may appear inside a record literal.
func splitBracketBalanced(line string, delim byte) ([]string, error) {
	var fields []string
	var cur strings.Builder
	depth := 0
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '[':
			depth++
			cur.WriteByte(c)
		case c == ']':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("unbalanced ']'")
			}
			cur.WriteByte(c)
		case c == delim && depth == 0:
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("unbalanced '['")
	}
	fields = append(fields, cur.String())
	return fields, nil
}

// csvWriter writes delimiter-separated rows, RFC-4180 quoting fields that
// need it when rfc4180 is set.
type csvWriter struct {
	schema  Schema
	delim   byte
	rfc4180 bool
	headers bool
	wroteHd bool
	w       *bufio.Writer
	closers []io.Closer
}

func newCSVFileWriter(schema Schema, opts Options) (RowWriter, error) {
	name := csvFilename(schema, opts)
	if dir := opts.get("output-dir", ""); dir != "" {
		name = filepath.Join(dir, filepath.Base(name))
	}
	f, err := os.Create(name)
	if err != nil {
		return nil, fmt.Errorf("%w: creating %q: %v", ErrIOFailure, name, err)
	}
	var dst io.Writer = f
	closers := []io.Closer{f}
	if opts.flag("compress") {
		gz := gzip.NewWriter(f)
		dst = gz
		closers = append(closers, gz)
	}
	return newCSVWriterTo(schema, opts, dst, closers)
}

func newCSVStdoutWriter(schema Schema, opts Options) (RowWriter, error) {
	return newCSVWriterTo(schema, opts, os.Stdout, nil)
}

func newCSVWriterTo(schema Schema, opts Options, dst io.Writer, closers []io.Closer) (RowWriter, error) {
	rfc4180 := opts.flag("rfc4180")
	delim, err := csvDelimiter(opts, rfc4180)
	if err != nil {
		return nil, err
	}
	return &csvWriter{
		schema:  schema,
		delim:   delim,
		rfc4180: rfc4180,
		headers: opts.flag("headers"),
		w:       bufio.NewWriter(dst),
		closers: closers,
	}, nil
}

func (w *csvWriter) Write(row []uint64) error {
	if w.headers && !w.wroteHd {
		w.wroteHd = true
		for i := range w.schema.Types {
			if i > 0 {
				w.w.WriteByte(w.delim)
			}
			fmt.Fprintf(w.w, "c%d", i)
		}
		w.w.WriteByte('\n')
	}
	arity := w.schema.arity()
	if len(row) != arity {
		return fmt.Errorf("%w: expected %d columns, got %d", ErrInvalidInput, arity, len(row))
	}
	for i := 0; i < arity; i++ {
		if i > 0 {
			w.w.WriteByte(w.delim)
		}
		cell, err := decodeCell(w.schema.Types[i], row[i], w.schema.Symbols)
		if err != nil {
			return err
		}
		if w.rfc4180 {
			cell = quoteRFC4180(cell, w.delim)
		}
		w.w.WriteString(cell)
	}
	w.w.WriteByte('\n')
	return nil
}

func (w *csvWriter) Close() error {
	if err := w.w.Flush(); err != nil {
		return fmt.Errorf("%w: %v", ErrIOFailure, err)
	}
	for i := len(w.closers) - 1; i >= 0; i-- {
		if err := w.closers[i].Close(); err != nil {
			return fmt.Errorf("%w: %v", ErrIOFailure, err)
		}
	}
	return nil
}

func quoteRFC4180(cell string, delim byte) string {
	if !strings.ContainsAny(cell, string(delim)+"\"\r\n") {
		return cell
	}
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(cell); i++ {
		if cell[i] == '"' {
			b.WriteByte('"')
		}
		b.WriteByte(cell[i])
	}
	b.WriteByte('"')
	return b.String()
}

func csvFilename(schema Schema, opts Options) string {
	if name := opts.get("filename", ""); name != "" {
		return name
	}
	dir := opts.get("fact-dir", ".")
	return filepath.Join(dir, schema.Name+".facts")
}

func csvDelimiter(opts Options, rfc4180 bool) (byte, error) {
	def := "\t"
	if rfc4180 {
		def = ","
	}
	d := opts.get("delimiter", def)
	if d == "" {
		return 0, fmt.Errorf("%w: empty delimiter", ErrConfiguration)
	}
	if len(d) != 1 {
		d = strings.ReplaceAll(d, `\t`, "\t")
	}
	if len(d) != 1 {
		return 0, fmt.Errorf("%w: delimiter must be a single byte, got %q", ErrConfiguration, d)
	}
	if rfc4180 && d[0] == '"' {
		return 0, fmt.Errorf("%w: delimiter cannot be the RFC-4180 quote character", ErrConfiguration)
	}
	return d[0], nil
}

// csvColumnMap reads the `columns` option (a comma-separated list of
// 0-based source-field indices, one per destination column, in destination
// column order) and returns destColumns[srcPosition] = destColumn. With no
// `columns` option, source order matches destination order.
func csvColumnMap(schema Schema, opts Options) ([]int, error) {
	arity := schema.arity()
	raw := opts.get("columns", "")
	if raw == "" {
		cols := make([]int, arity)
		for i := range cols {
			cols[i] = i
		}
		return cols, nil
	}
	parts := strings.Split(raw, ",")
	if len(parts) != arity {
		return nil, fmt.Errorf("%w: columns option lists %d entries, schema has arity %d", ErrConfiguration, len(parts), arity)
	}
	cols := make([]int, arity)
	for destCol, p := range parts {
		var srcCol int
		if _, err := fmt.Sscanf(strings.TrimSpace(p), "%d", &srcCol); err != nil {
			return nil, fmt.Errorf("%w: columns option entry %q: %v", ErrConfiguration, p, err)
		}
		cols[srcCol] = destCol
	}
	return cols, nil
}
