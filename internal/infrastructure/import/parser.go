// Package csvimport parses CSV exports for bulk loading. It expects UTF-8
// input with a header row and tolerates a leading byte order mark.
package csvimport

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Parser reads a headered CSV stream row by row
type Parser struct {
	reader     *csv.Reader
	headerMap  map[string]int
	headers    []string
	currentRow int
}

// NewParser creates a parser from a reader and consumes the header row
func NewParser(r io.Reader) (*Parser, error) {
	buf := bufio.NewReader(r)

	head, err := buf.Peek(3)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(head) == 0 {
		return nil, ErrEmptyFile
	}
	// Strip a UTF-8 BOM
	if len(head) >= 3 && head[0] == 0xEF && head[1] == 0xBB && head[2] == 0xBF {
		_, _ = buf.Discard(3)
	}

	if err := validateUTF8(buf); err != nil {
		return nil, err
	}

	parser := &Parser{
		reader:    csv.NewReader(buf),
		headerMap: make(map[string]int),
	}
	parser.reader.TrimLeadingSpace = true
	parser.reader.FieldsPerRecord = -1

	if err := parser.parseHeader(); err != nil {
		return nil, err
	}
	return parser, nil
}

// validateUTF8 checks the leading chunk of the content for valid UTF-8
func validateUTF8(r *bufio.Reader) error {
	const checkSize = 4096
	content, err := r.Peek(checkSize)
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read file for encoding validation: %w", err)
	}
	if len(content) == 0 {
		return ErrEmptyFile
	}
	// A multi-byte rune may be cut off at the peek boundary
	if len(content) == checkSize {
		for trim := 0; trim < utf8.UTFMax-1 && len(content) > 0; trim++ {
			if utf8.Valid(content) {
				return nil
			}
			content = content[:len(content)-1]
		}
	}
	if !utf8.Valid(content) {
		return ErrInvalidEncoding
	}
	return nil
}

func (p *Parser) parseHeader() error {
	record, err := p.reader.Read()
	if err == io.EOF {
		return ErrMissingHeader
	}
	if err != nil {
		return fmt.Errorf("failed to read header: %w", err)
	}

	p.headers = make([]string, len(record))
	for i, name := range record {
		name = strings.ToLower(strings.TrimSpace(name))
		p.headers[i] = name
		p.headerMap[name] = i
	}
	p.currentRow = 1
	return nil
}

// Headers returns the lowercased header names in file order
func (p *Parser) Headers() []string {
	return p.headers
}

// MissingHeaders returns which of the required headers the file lacks
func (p *Parser) MissingHeaders(required []string) []string {
	var missing []string
	for _, name := range required {
		if _, ok := p.headerMap[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// Row is one data row with access to fields by header name
type Row struct {
	Number int // 1-based, counting the header
	values []string
	parser *Parser
}

// Get returns the field under the given header, trimmed. Missing columns
// and short rows yield an empty string.
func (r *Row) Get(header string) string {
	idx, ok := r.parser.headerMap[header]
	if !ok || idx >= len(r.values) {
		return ""
	}
	return strings.TrimSpace(r.values[idx])
}

// IsEmpty reports whether every field of the row is blank
func (r *Row) IsEmpty() bool {
	for _, v := range r.values {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// ReadRow returns the next data row, or io.EOF when the file is exhausted
func (p *Parser) ReadRow() (*Row, error) {
	record, err := p.reader.Read()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		p.currentRow++
		return nil, fmt.Errorf("failed to read row %d: %w", p.currentRow, err)
	}
	p.currentRow++
	return &Row{Number: p.currentRow, values: record, parser: p}, nil
}
