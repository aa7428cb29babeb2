package parser

import (
	"errors"
	"fmt"
	"logsreact/internal/types"
	"testing"
)

func TestCombinedMatcher_Match(t *testing.T) {
	m := NewCombinedMatcher()

	tests := []struct {
		name string
		line string
		want bool
	}{
		{
			name: "full combined line",
			line: `127.0.0.1 - - [10/Oct/2023:13:55:36 -0700] "GET /index.html HTTP/1.1" 200 1024 "-" "Mozilla/5.0"`,
			want: true,
		},
		{
			name: "empty referer and agent",
			line: `10.0.0.1 - - [10/Oct/2023:13:55:36 -0700] "GET / HTTP/1.1" 304 0 "" ""`,
			want: true,
		},
		{
			name: "trailing fields after agent",
			line: `10.0.0.1 - - [10/Oct/2023:13:55:36 -0700] "GET / HTTP/1.1" 200 5 "-" "curl/8.0" 0.003`,
			want: true,
		},
		{
			name: "authenticated user is not combined",
			line: `10.0.0.1 - frank [10/Oct/2023:13:55:36 -0700] "GET / HTTP/1.1" 200 5 "-" "curl/8.0"`,
			want: false,
		},
		{
			name: "missing agent",
			line: `10.0.0.1 - - [10/Oct/2023:13:55:36 -0700] "GET / HTTP/1.1" 200 5 "-"`,
			want: false,
		},
		{
			name: "dash size",
			line: `10.0.0.1 - - [10/Oct/2023:13:55:36 -0700] "GET / HTTP/1.1" 200 - "-" "curl/8.0"`,
			want: false,
		},
		{
			name: "two digit status",
			line: `10.0.0.1 - - [10/Oct/2023:13:55:36 -0700] "GET / HTTP/1.1" 20 5 "-" "curl/8.0"`,
			want: false,
		},
		{
			name: "empty request",
			line: `10.0.0.1 - - [10/Oct/2023:13:55:36 -0700] "" 400 0 "-" "-"`,
			want: false,
		},
		{
			name: "leading whitespace",
			line: `  10.0.0.1 - - [10/Oct/2023:13:55:36 -0700] "GET / HTTP/1.1" 200 5 "-" "curl/8.0"`,
			want: false,
		},
		{
			name: "plain text",
			line: "not a log line",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, got := m.Match(tt.line)
			if got != tt.want {
				t.Errorf("Match(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestCombinedMatcher_RoundTrip(t *testing.T) {
	m := NewCombinedMatcher()

	ips := []string{"127.0.0.1", "2001:db8::1", "example.org"}
	statuses := []string{"200", "404", "503"}
	sizes := []string{"0", "1024", "987654321"}
	referers := []string{"-", "", "https://example.com/a?b=c"}
	agents := []string{"-", "", "Mozilla/5.0 (X11; Linux x86_64) Gecko/20100101"}

	for i := range ips {
		for j := range referers {
			line := fmt.Sprintf(`%s - - [01/Jan/2024:00:00:0%d +0000] "GET /p%d HTTP/1.0" %s %s "%s" "%s"`,
				ips[i], j, i, statuses[j], sizes[i], referers[j], agents[(i+j)%len(agents)])

			caps, ok := m.Match(line)
			if !ok {
				t.Fatalf("Expected line to match: %s", line)
			}
			if caps[types.CaptureIP] != ips[i] {
				t.Errorf("ip = %q, want %q", caps[types.CaptureIP], ips[i])
			}
			if caps[types.CaptureStatus] != statuses[j] {
				t.Errorf("status = %q, want %q", caps[types.CaptureStatus], statuses[j])
			}
			if caps[types.CaptureSize] != sizes[i] {
				t.Errorf("size = %q, want %q", caps[types.CaptureSize], sizes[i])
			}
			if caps[types.CaptureReferer] != referers[j] {
				t.Errorf("referer = %q, want %q", caps[types.CaptureReferer], referers[j])
			}
			if caps[types.CaptureAgent] != agents[(i+j)%len(agents)] {
				t.Errorf("agent = %q, want %q", caps[types.CaptureAgent], agents[(i+j)%len(agents)])
			}
		}
	}
}

func TestCommonMatcher_Match(t *testing.T) {
	m := NewCommonMatcher()

	caps, ok := m.Match(`192.168.1.1 - frank [17/Feb/2026:12:00:00 +0000] "GET /api/health HTTP/1.1" 500 -`)
	if !ok {
		t.Fatal("Expected common line to match")
	}
	if caps[types.CaptureIP] != "192.168.1.1" {
		t.Errorf("Expected ip 192.168.1.1, got %q", caps[types.CaptureIP])
	}
	if caps[types.CaptureSize] != "-" {
		t.Errorf("Expected size '-', got %q", caps[types.CaptureSize])
	}
	if caps[types.CaptureReferer] != "" || caps[types.CaptureAgent] != "" {
		t.Errorf("Expected empty referer/agent, got %q / %q", caps[types.CaptureReferer], caps[types.CaptureAgent])
	}

	if _, ok := m.Match("garbage"); ok {
		t.Error("Expected garbage not to match")
	}
}

func TestMatcherFor(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{name: "", want: "combined"},
		{name: "combined", want: "combined"},
		{name: " Nginx ", want: "combined"},
		{name: "common", want: "common"},
		{name: "CLF", want: "common"},
		{name: "json", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := MatcherFor(tt.name)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownFormat) {
					t.Fatalf("Expected ErrUnknownFormat, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if m.Name() != tt.want {
				t.Errorf("Expected matcher %q, got %q", tt.want, m.Name())
			}
		})
	}
}

func TestMatcher_DescriptionIsConstant(t *testing.T) {
	m := NewCombinedMatcher()
	if m.Description() != NewCombinedMatcher().Description() {
		t.Error("Expected identical descriptions across instances")
	}
	if m.Description() == NewCommonMatcher().Description() {
		t.Error("Expected combined and common descriptions to differ")
	}
}
