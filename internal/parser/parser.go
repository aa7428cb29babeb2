// Package parser turns raw access-log text into an ordered list of records.
//
// The pipeline is Split -> Matcher.Match -> Build, driven by Parser.Parse.
// Nothing here keeps state between calls, so a Parser may be shared freely
// across goroutines.
package parser

import (
	"fmt"
	"logsreact/internal/types"
	"unicode/utf8"
)

// Parser runs one grammar over whole blobs of log text
type Parser struct {
	matcher Matcher
}

// New creates a parser for the given grammar; nil means combined
func New(m Matcher) *Parser {
	if m == nil {
		m = NewCombinedMatcher()
	}
	return &Parser{matcher: m}
}

// ParseLog parses text with the combined grammar
func ParseLog(text string) (types.Result, error) {
	return New(nil).Parse(text)
}

// Matcher returns the grammar this parser applies
func (p *Parser) Matcher() Matcher {
	return p.matcher
}

// Parse produces one record per non-blank line of text, in input order.
// Lines that do not match become invalid-entry records; the only error is
// ErrInvalidInput for text that is not valid UTF-8.
func (p *Parser) Parse(text string) (types.Result, error) {
	if !utf8.ValidString(text) {
		return types.Result{}, fmt.Errorf("parse log: %w", ErrInvalidInput)
	}

	records := make([]types.ParsedRecord, 0)
	for line := range Split(text) {
		records = append(records, p.ParseLine(line))
	}

	return types.Result{Records: records, Completed: true}, nil
}

// ParseLine matches and builds a single line
func (p *Parser) ParseLine(line types.LogLine) types.ParsedRecord {
	caps, ok := p.matcher.Match(line.RawText)
	if !ok {
		caps = nil
	}
	return Build(line, caps, p.matcher.Description())
}
