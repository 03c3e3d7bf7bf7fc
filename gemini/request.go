package gemini

import "net/http"

// Request describes one outbound generateContent call.
type Request interface {
	// URI returns the endpoint without credentials.
	URI() string

	// Endpoint returns the full dispatch URL, including the API key
	// query parameter when one was attached.
	Endpoint() string

	// Method returns the HTTP method name.
	Method() string

	// Headers returns the caller-supplied header mapping. May be nil.
	Headers() map[string]string

	// Body returns the structured request body.
	Body() RequestBody
}

// ChatRequest is the standard Request implementation.
type ChatRequest struct {
	uri      string
	endpoint string
	method   string
	headers  map[string]string
	body     RequestBody
}

// NewChatRequest creates a POST request against the given endpoint.
func NewChatRequest(endpoint string, body RequestBody) *ChatRequest {
	return &ChatRequest{
		uri:      endpoint,
		endpoint: endpoint,
		method:   http.MethodPost,
		headers:  map[string]string{},
		body:     body,
	}
}

// WithAPIKey attaches the API key as the "key" query parameter. The key
// travels in the URL, never as an Authorization header (those are stripped
// before dispatch, see BuildHeaders).
func (r *ChatRequest) WithAPIKey(key string) *ChatRequest {
	if key == "" {
		return r
	}
	separator := "?"
	for _, c := range r.uri {
		if c == '?' {
			separator = "&"
			break
		}
	}
	r.endpoint = r.uri + separator + "key=" + key
	return r
}

// WithMethod overrides the HTTP method.
func (r *ChatRequest) WithMethod(method string) *ChatRequest {
	r.method = method
	return r
}

// WithHeader sets a request header.
func (r *ChatRequest) WithHeader(key, value string) *ChatRequest {
	r.headers[key] = value
	return r
}

// URI implements Request.
func (r *ChatRequest) URI() string { return r.uri }

// Endpoint implements Request.
func (r *ChatRequest) Endpoint() string { return r.endpoint }

// Method implements Request.
func (r *ChatRequest) Method() string { return r.method }

// Headers implements Request.
func (r *ChatRequest) Headers() map[string]string { return r.headers }

// Body implements Request.
func (r *ChatRequest) Body() RequestBody { return r.body }
