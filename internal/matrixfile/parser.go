// Package matrixfile parses the textual incidence-matrix format described
// in spec.md §6. It is a thin external collaborator: its only job is to
// turn a file into an *xcover.Instance, or fail with a clear
// ErrMalformed. No search logic lives here.
package matrixfile

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"xcover/internal/xcover"
)

// maxIdentLen bounds an item name to 64 bytes, per spec.md §6.
const maxIdentLen = 64

// ErrMalformed reports any malformed-input failure; a failure to read r
// itself is returned wrapped as-is. The file parser is the only component
// that rejects malformed input files (spec.md §7); the search engine itself
// has no error path.
type ErrMalformed struct {
	Line int
	Msg  string
}

func (e *ErrMalformed) Error() string {
	return fmt.Sprintf("matrixfile: line %d: %s", e.Line, e.Msg)
}

func malformed(line int, format string, args ...any) error {
	return &ErrMalformed{Line: line, Msg: fmt.Sprintf(format, args...)}
}

// Parse reads the matrix file format from r and builds a validated
// xcover.Instance.
func Parse(r io.Reader) (*xcover.Instance, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNo := 0

	nextLine := func() (string, bool) {
		for sc.Scan() {
			lineNo++
			return sc.Text(), true
		}
		return "", false
	}

	header, ok := nextLine()
	if !ok {
		return nil, malformed(lineNo, "unexpected EOF: missing header line")
	}
	fields := strings.Fields(header)
	if len(fields) != 2 {
		return nil, malformed(lineNo, "header must have exactly 2 integers, got %d fields", len(fields))
	}
	nItems, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, malformed(lineNo, "n_items: %v", err)
	}
	nOptions, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, malformed(lineNo, "n_options: %v", err)
	}
	if nItems < 0 || nOptions < 0 {
		return nil, malformed(lineNo, "counts must be non-negative, got n_items=%d n_options=%d", nItems, nOptions)
	}

	namesLine, ok := nextLine()
	if !ok {
		return nil, malformed(lineNo, "unexpected EOF: missing item-name line")
	}
	names, nPrimary, err := parseNames(lineNo, namesLine, nItems)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]int, nItems)
	for i, name := range names {
		if _, dup := byName[name]; dup {
			return nil, malformed(lineNo, "duplicate item name %q", name)
		}
		byName[name] = i
	}

	var options []int
	ptr := make([]int, 0, nOptions+1)
	ptr = append(ptr, 0)
	for {
		line, ok := nextLine()
		if !ok {
			break
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if strings.Contains(line, "|") {
			return nil, malformed(lineNo, "'|' is not permitted in an option line")
		}
		seen := make(map[int]bool, len(fields))
		for _, tok := range fields {
			if len(tok) > maxIdentLen {
				return nil, malformed(lineNo, "identifier %q exceeds %d bytes", tok, maxIdentLen)
			}
			item, known := byName[tok]
			if !known {
				return nil, malformed(lineNo, "unknown item name %q", tok)
			}
			if seen[item] {
				return nil, malformed(lineNo, "option contains duplicate item %q", tok)
			}
			seen[item] = true
			options = append(options, item)
		}
		ptr = append(ptr, len(options))
	}

	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "matrixfile: reading option lines")
	}

	actualOptions := len(ptr) - 1
	if actualOptions != nOptions {
		return nil, malformed(lineNo, "header declared %d options, file has %d", nOptions, actualOptions)
	}

	inst, err := xcover.NewInstance(nItems, nPrimary, names, options, ptr)
	if err != nil {
		return nil, malformed(lineNo, "invalid instance: %v", err)
	}
	return inst, nil
}

// parseNames splits the item-name line into the name list and the primary
// count, honoring the optional "|" boundary token (spec.md §6): absent, all
// items are primary.
func parseNames(line int, text string, nItems int) ([]string, int, error) {
	fields := strings.Fields(text)
	names := make([]string, 0, nItems)
	nPrimary := -1
	for _, tok := range fields {
		if tok == "|" {
			if nPrimary != -1 {
				return nil, 0, malformed(line, "multiple '|' boundary markers")
			}
			nPrimary = len(names)
			continue
		}
		if len(tok) > maxIdentLen {
			return nil, 0, malformed(line, "identifier %q exceeds %d bytes", tok, maxIdentLen)
		}
		names = append(names, tok)
	}
	if len(names) != nItems {
		return nil, 0, malformed(line, "header declared %d items, name line has %d", nItems, len(names))
	}
	if nPrimary == -1 {
		nPrimary = nItems
	}
	return names, nPrimary, nil
}
