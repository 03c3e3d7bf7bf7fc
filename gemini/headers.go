package gemini

import "net/http"

// BuildHeaders produces the outbound header set for a request. The result
// always carries Content-Type (application/json unless the caller supplied
// one), with all caller headers overlaid on top.
//
// Any Authorization header is stripped before dispatch. Credentials must
// travel via the endpoint URL or a dedicated field, never through generic
// header passthrough.
func BuildHeaders(requestHeaders map[string]string) http.Header {
	headers := http.Header{}
	headers.Set("Content-Type", "application/json")
	for key, value := range requestHeaders {
		headers.Set(key, value)
	}
	headers.Del("Authorization")
	return headers
}
