package parser

import (
	"fmt"
	"logsreact/internal/types"
	"regexp"
	"strings"
)

const (
	combinedDescription = `{IP} - - [TIMESTAMP] "METHOD URL HTTPVERSION" STATUS SIZE "REFERER" "USERAGENT"`
	commonDescription   = `{IP} IDENT USER [TIMESTAMP] "METHOD URL HTTPVERSION" STATUS SIZE`
)

var (
	// Nginx combined: 1.2.3.4 - - [10/Oct/2023:13:55:36 -0700] "GET / HTTP/1.1" 200 1024 "-" "UA"
	combinedRegex = regexp.MustCompile(
		`^(?P<ip>\S+) - - ` +
			`\[(?P<timestamp>[^\]]+)\] ` +
			`"(?P<request>[^"]+)" ` +
			`(?P<status>\d{3}) ` +
			`(?P<size>\d+) ` +
			`"(?P<referer>[^"]*)" ` +
			`"(?P<agent>[^"]*)"`,
	)

	// Apache common: 1.2.3.4 - frank [10/Oct/2023:13:55:36 -0700] "GET / HTTP/1.1" 200 1024
	commonRegex = regexp.MustCompile(
		`^(?P<ip>\S+) \S+ \S+ ` +
			`\[(?P<timestamp>[^\]]+)\] ` +
			`"(?P<request>[^"]+)" ` +
			`(?P<status>\d{3}) ` +
			`(?P<size>\d+|-)`,
	)
)

// CombinedMatcher matches the Nginx "combined" access log format
type CombinedMatcher struct{}

func NewCombinedMatcher() *CombinedMatcher { return &CombinedMatcher{} }

func (m *CombinedMatcher) Name() string { return "combined" }
func (m *CombinedMatcher) Description() string { return combinedDescription }

func (m *CombinedMatcher) Match(line string) (types.CaptureSet, bool) {
	return capture(combinedRegex, line)
}

// CommonMatcher matches the Apache common log format, which carries no
// referer or user agent. Those captures are always empty.
type CommonMatcher struct{}

func NewCommonMatcher() *CommonMatcher { return &CommonMatcher{} }

func (m *CommonMatcher) Name() string { return "common" }
func (m *CommonMatcher) Description() string { return commonDescription }

func (m *CommonMatcher) Match(line string) (types.CaptureSet, bool) {
	caps, ok := capture(commonRegex, line)
	if !ok {
		return nil, false
	}
	caps[types.CaptureReferer] = ""
	caps[types.CaptureAgent] = ""
	return caps, true
}

// MatcherFor returns the built-in matcher registered under name
func MatcherFor(name string) (Matcher, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "combined", "nginx":
		return NewCombinedMatcher(), nil
	case "common", "clf":
		return NewCommonMatcher(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// capture runs re against line and collects its named groups
func capture(re *regexp.Regexp, line string) (types.CaptureSet, bool) {
	matches := re.FindStringSubmatch(line)
	if matches == nil {
		return nil, false
	}

	caps := make(types.CaptureSet, len(matches))
	for i, name := range re.SubexpNames() {
		if i == 0 || name == "" {
			continue
		}
		caps[name] = matches[i]
	}
	return caps, true
}
