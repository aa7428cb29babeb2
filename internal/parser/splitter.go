package parser

import (
	"iter"
	"logsreact/internal/types"
	"strings"
	"unicode"
)

// Split breaks text on newlines and yields every line that is not blank.
// The yielded RawText is the line exactly as it appeared; trimming only
// decides whether a line is kept. Each call to the returned sequence starts
// over from the beginning of text.
func Split(text string) iter.Seq[types.LogLine] {
	return func(yield func(types.LogLine) bool) {
		index := 0
		for raw := range strings.SplitSeq(text, "\n") {
			if IsBlank(raw) {
				continue
			}
			if !yield(types.LogLine{Index: index, RawText: raw}) {
				return
			}
			index++
		}
	}
}

// trimLine strips surrounding whitespace, counting a byte order mark as
// whitespace so a BOM-only first line is treated as blank
func trimLine(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\uFEFF'
	})
}

// IsBlank reports whether a line carries nothing but whitespace
func IsBlank(line string) bool {
	return trimLine(line) == ""
}
