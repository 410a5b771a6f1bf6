package cdn

import (
	"io"
	"net/http"
)

// unknownValue is the fallback when a field cannot be located in a vendor
// response body.
const unknownValue = "unknown"

// maxResponseBytes bounds how much of a vendor response is read. Purge
// responses are small; anything larger is truncated for diagnostics.
const maxResponseBytes = 64 * 1024

// extractJSONValue scans a raw JSON body for `"key":"value"` or `"key":value`
// and returns the value, or "unknown" when absent. This is a deliberately
// tolerant partial parse: vendor error bodies are not guaranteed to match any
// schema, and a malformed body must degrade to a diagnosable message rather
// than a parse failure.
func extractJSONValue(body, key string) string {
	search := `"` + key + `":"`
	if start := indexAfter(body, search); start >= 0 {
		for end := start; end < len(body); end++ {
			if body[end] == '"' {
				return body[start:end]
			}
		}
	}

	// Unquoted values (numbers, booleans).
	search = `"` + key + `":`
	if start := indexAfter(body, search); start >= 0 {
		end := start
		for end < len(body) && body[end] != ',' && body[end] != '}' {
			end++
		}
		if end > start {
			return trimQuotes(body[start:end])
		}
	}
	return unknownValue
}

func indexAfter(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return i + len(substr)
		}
	}
	return -1
}

func trimQuotes(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '"' && s[i] != ' ' && s[i] != '\n' && s[i] != '\t' {
			out = append(out, s[i])
		}
	}
	return string(out)
}

// readBody drains up to maxResponseBytes of the response body.
func readBody(resp *http.Response) string {
	if resp.Body == nil {
		return ""
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return ""
	}
	return string(data)
}

// snippet shortens a body for log output.
func snippet(body string) string {
	if len(body) > 200 {
		return body[:200] + "..."
	}
	return body
}

func is2xx(status int) bool {
	return status >= 200 && status < 300
}
