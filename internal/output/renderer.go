// Package output writes parsed records for a human or a pipe to consume.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"logsreact/internal/types"
	"strings"
	"sync"
	"unicode"
)

// Renderer writes records to an output stream
type Renderer interface {
	Render(rec types.ParsedRecord) error

	// Complete marks the end of a finished parse of n records
	Complete(n int) error
}

// New returns the renderer for a configured output format
func New(w io.Writer, format, delimiter string) (Renderer, error) {
	switch strings.ToLower(format) {
	case "", "text":
		return NewTextRenderer(w, delimiter), nil
	case "json":
		return NewJSONRenderer(w), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// TextRenderer prints one delimited line per record.
// Field order: index, ip, timestamp, method, url, version, status, size, referer, agent.
type TextRenderer struct {
	mu        sync.Mutex
	w         io.Writer
	delimiter string
}

func NewTextRenderer(w io.Writer, delimiter string) *TextRenderer {
	if delimiter == "" {
		delimiter = "|"
	}
	return &TextRenderer{w: w, delimiter: delimiter}
}

func (r *TextRenderer) Render(rec types.ParsedRecord) error {
	fields := []string{
		fmt.Sprintf("%d", rec.Index),
		rec.ClientIP,
		rec.Timestamp,
		rec.HTTPMethod,
		rec.RequestURL,
		rec.HTTPVersion,
		rec.StatusCode,
		rec.ResponseSize,
		rec.Referer,
		rec.UserAgent,
	}
	for i := range fields {
		fields[i] = sanitize(fields[i])
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	_, err := fmt.Fprintln(r.w, strings.Join(fields, r.delimiter))
	return err
}

func (r *TextRenderer) Complete(n int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, err := fmt.Fprintf(r.w, "Parsing Complete (%d records)\n", n)
	return err
}

// JSONRenderer prints each record as a single JSON object per line
type JSONRenderer struct {
	mu  sync.Mutex
	enc *json.Encoder
}

func NewJSONRenderer(w io.Writer) *JSONRenderer {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &JSONRenderer{enc: enc}
}

func (r *JSONRenderer) Render(rec types.ParsedRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.enc.Encode(rec); err != nil {
		return fmt.Errorf("failed to encode record %d: %w", rec.Index, err)
	}
	return nil
}

func (r *JSONRenderer) Complete(n int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.enc.Encode(struct {
		Completed bool `json:"completed"`
		Records   int  `json:"records"`
	}{Completed: true, Records: n})
}

// sanitize strips control characters to prevent terminal injection.
// Any captured field can carry arbitrary bytes from the log.
func sanitize(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r == '\t' || !unicode.IsControl(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
