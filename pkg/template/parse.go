package template

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Parse extracts a title and a body from Markdown content.
//
// The first non-blank line, stripped of leading '#' characters and
// surrounding whitespace, is the title. When the title line is followed
// by a blank line, everything after that blank line is the body, kept
// verbatim. Otherwise the body is empty.
func Parse(content []byte) (title, body string, err error) {
	content = bytes.TrimPrefix(content, utf8BOM)
	if !utf8.Valid(content) {
		return "", "", fmt.Errorf("%w: %w", ErrTemplate, ErrNotText)
	}

	lines := strings.SplitAfter(string(content), "\n")

	start := -1
	for i, line := range lines {
		if !isBlank(line) {
			start = i
			break
		}
	}
	if start < 0 {
		return "", "", fmt.Errorf("%w: %w", ErrTemplate, ErrEmptyContent)
	}

	title = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(lines[start]), "#"))
	if title == "" {
		return "", "", fmt.Errorf("%w: %w", ErrTemplate, ErrEmptyContent)
	}

	sep := start + 1
	if sep >= len(lines) || !isBlank(lines[sep]) {
		return title, "", nil
	}

	return title, strings.Join(lines[sep+1:], ""), nil
}

// isBlank reports whether a line holds only whitespace, line ending included.
func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}
