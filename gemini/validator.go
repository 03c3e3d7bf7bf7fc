package gemini

import (
	"fmt"
	"net/http"
	"net/url"
)

// ValidationError reports a structurally invalid request. It is the only
// failure ChatModel.Call returns to the caller.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validate %s: %s", e.Field, e.Message)
}

// Validator checks a Request before any network I/O happens. It must not
// have side effects beyond returning an error. Implementations must be
// safe for concurrent use.
type Validator interface {
	Validate(Request) error
}

var allowedMethods = map[string]struct{}{
	http.MethodGet:    {},
	http.MethodPost:   {},
	http.MethodPut:    {},
	http.MethodPatch:  {},
	http.MethodDelete: {},
}

// RequestValidator applies the default structural rules: a parseable
// http(s) endpoint, a standard HTTP verb, and a non-empty body.
type RequestValidator struct{}

// NewRequestValidator creates the default validator.
func NewRequestValidator() *RequestValidator {
	return &RequestValidator{}
}

// Validate implements Validator.
func (v *RequestValidator) Validate(request Request) error {
	if request == nil {
		return &ValidationError{Field: "request", Message: "request is nil"}
	}

	endpoint := request.Endpoint()
	if endpoint == "" {
		return &ValidationError{Field: "endpoint", Message: "endpoint is empty"}
	}
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return &ValidationError{Field: "endpoint", Message: fmt.Sprintf("endpoint is not a valid URL: %v", err)}
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return &ValidationError{Field: "endpoint", Message: fmt.Sprintf("unsupported scheme %q", parsed.Scheme)}
	}
	if parsed.Host == "" {
		return &ValidationError{Field: "endpoint", Message: "endpoint has no host"}
	}

	if _, ok := allowedMethods[request.Method()]; !ok {
		return &ValidationError{Field: "method", Message: fmt.Sprintf("unsupported HTTP method %q", request.Method())}
	}

	body := request.Body()
	if body.Len() == 0 {
		return &ValidationError{Field: "body", Message: "at least one content is required"}
	}
	for i, content := range body.Contents() {
		if content.Len() == 0 {
			return &ValidationError{Field: "body", Message: fmt.Sprintf("content %d has no parts", i)}
		}
	}

	return nil
}
