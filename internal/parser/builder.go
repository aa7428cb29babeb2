package parser

import (
	"logsreact/internal/types"
	"strings"
)

// Build turns a line and its captures into a record. A nil CaptureSet means
// the line did not match and yields the invalid-entry form, which parks the
// trimmed line in UserAgent so the offending text stays visible.
func Build(line types.LogLine, caps types.CaptureSet, description string) types.ParsedRecord {
	rec := types.ParsedRecord{
		Index:              line.Index,
		RawText:            line.RawText,
		PatternDescription: description,
	}

	if caps == nil {
		rec.ClientIP = types.InvalidEntry
		rec.UserAgent = trimLine(line.RawText)
		return rec
	}

	method, url, version := splitRequest(caps[types.CaptureRequest])

	rec.Matched = true
	rec.ClientIP = caps[types.CaptureIP]
	rec.Timestamp = caps[types.CaptureTimestamp]
	rec.HTTPMethod = method
	rec.RequestURL = url
	rec.HTTPVersion = version
	rec.StatusCode = caps[types.CaptureStatus]
	rec.ResponseSize = caps[types.CaptureSize]
	rec.Referer = caps[types.CaptureReferer]
	rec.UserAgent = caps[types.CaptureAgent]
	return rec
}

// splitRequest splits "METHOD URL VERSION" on single spaces.
// Missing tokens come back empty; tokens past the third are ignored.
func splitRequest(request string) (method, url, version string) {
	parts := strings.Split(request, " ")
	if len(parts) > 0 {
		method = parts[0]
	}
	if len(parts) > 1 {
		url = parts[1]
	}
	if len(parts) > 2 {
		version = parts[2]
	}
	return method, url, version
}
