package types

// InvalidEntry marks the client IP of a record whose line did not match the grammar
const InvalidEntry = "Invalid Entry"

// LogLine is one non-empty line of input
type LogLine struct {
	Index   int    // 0-based position among kept lines
	RawText string // original, untrimmed text
}

// CaptureSet holds the named substrings of a successful grammar match.
// Keys are the Capture* constants below.
type CaptureSet map[string]string

// Capture names shared by every matcher
const (
	CaptureIP        = "ip"
	CaptureTimestamp = "timestamp"
	CaptureRequest   = "request"
	CaptureStatus    = "status"
	CaptureSize      = "size"
	CaptureReferer   = "referer"
	CaptureAgent     = "agent"
)

// ParsedRecord is the output unit for one input line, matched or not
type ParsedRecord struct {
	Index              int    `json:"index"`
	RawText            string `json:"raw_text"`
	PatternDescription string `json:"pattern"`
	Matched            bool   `json:"matched"`

	ClientIP     string `json:"client_ip"`
	Timestamp    string `json:"timestamp"` // verbatim DD/Mon/YYYY:HH:MM:SS ±ZZZZ
	HTTPMethod   string `json:"http_method"`
	RequestURL   string `json:"request_url"`
	HTTPVersion  string `json:"http_version"`
	StatusCode   string `json:"status_code"`   // kept as text so odd values round-trip
	ResponseSize string `json:"response_size"` // same
	Referer      string `json:"referer"`
	UserAgent    string `json:"user_agent"` // holds the trimmed raw line when unmatched
}

// Result is what one parse call hands back to its caller
type Result struct {
	Records   []ParsedRecord `json:"records"`
	Completed bool           `json:"completed"`
}

// Config represents the application configuration
type Config struct {
	Parser struct {
		Format string `yaml:"format"` // combined, common
	} `yaml:"parser"`

	Output struct {
		Format    string `yaml:"format"` // text, json
		Delimiter string `yaml:"delimiter"`
	} `yaml:"output"`

	Follow struct {
		Poll      bool `yaml:"poll"`       // stat polling instead of inotify
		FromStart bool `yaml:"from_start"` // emit existing content before new lines
	} `yaml:"follow"`

	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Addr    string `yaml:"addr"`
	} `yaml:"metrics"`
}
