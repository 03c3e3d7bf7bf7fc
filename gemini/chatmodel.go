package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/bhavuklabs/geminiclient/httpx"
)

const (
	providerName = "gemini"

	// errorModelVersion is reported on responses synthesized from
	// transport failures.
	errorModelVersion = "gemini-flash-1.5"
)

// ChatModel orchestrates one generateContent call: validate, build
// headers, dispatch through the Exchanger, map the result. All per-call
// state is local, so concurrent calls are independent; the validator and
// exchanger must themselves be safe for concurrent use.
type ChatModel struct {
	exchanger Exchanger
	validator Validator

	logger  httpx.Logger
	metrics httpx.Metrics
}

// NewChatModel creates a ChatModel with the given collaborators.
func NewChatModel(exchanger Exchanger, validator Validator) *ChatModel {
	return &ChatModel{
		exchanger: exchanger,
		validator: validator,
	}
}

// SetLogger sets the diagnostic logger for this model.
func (m *ChatModel) SetLogger(logger httpx.Logger) {
	m.logger = logger
}

// SetMetrics sets the metrics tracker for this model.
func (m *ChatModel) SetMetrics(metrics httpx.Metrics) {
	m.metrics = metrics
}

// Call validates the request, dispatches it and maps the response.
//
// Only validation failures are returned as errors, before any network
// I/O. Anything that fails after validation is absorbed and converted
// into a well-formed error ChatResponse: success=false, status 500, a
// single candidate carrying the failure text, nil usage metadata.
func (m *ChatModel) Call(ctx context.Context, request Request) (*ChatResponse, error) {
	if m.validator != nil {
		if err := m.validator.Validate(request); err != nil {
			return nil, err
		}
	}

	start := time.Now()

	if m.logger != nil {
		m.logger.LogRequest(ctx, httpx.RequestLog{
			Provider:  providerName,
			Endpoint:  httpx.RedactURLSecrets(request.Endpoint()),
			Method:    request.Method(),
			Timestamp: start,
			Contents:  request.Body().Len(),
		})
	}
	if m.metrics != nil {
		m.metrics.RecordRequest(providerName)
	}

	headers := BuildHeaders(request.Headers())

	payload, err := json.Marshal(request.Body())
	if err != nil {
		return m.errorResponse(ctx, err, time.Since(start)), nil
	}

	exchange, err := m.exchanger.Exchange(ctx, request.Method(), request.Endpoint(), headers, payload)
	if err != nil {
		return m.errorResponse(ctx, err, time.Since(start)), nil
	}

	body := MapResponseBody(exchange.Body)
	if body.Outcome() == OutcomeMalformed && m.logger != nil {
		m.logger.LogWarning(ctx, "response body did not parse", map[string]interface{}{
			"provider": providerName,
			"status":   exchange.StatusCode,
			"body":     httpx.TruncateForLogging(exchange.Body),
		})
	}

	duration := time.Since(start)
	response := NewChatResponse(exchange.StatusCode, flattenHeaders(exchange.Headers), body)

	if m.logger != nil {
		m.logger.LogResponse(ctx, httpx.ResponseLog{
			Provider:     providerName,
			ModelVersion: body.ModelVersion(),
			Timestamp:    time.Now(),
			Duration:     duration,
			StatusCode:   exchange.StatusCode,
			Candidates:   len(body.Candidates()),
			TokensIn:     body.TokenCount(UsagePromptTokens),
			TokensOut:    body.TokenCount(UsageCandidatesTokens),
		})
	}
	if m.metrics != nil {
		m.metrics.RecordDuration(providerName, duration)
		m.metrics.RecordTokens(providerName, body.TokenCount(UsagePromptTokens), body.TokenCount(UsageCandidatesTokens))
	}

	return response, nil
}

// errorResponse converts a transport-level failure into the synthesized
// error response. The failure text is redacted first so API keys carried
// in endpoint URLs never reach the caller or the logs.
func (m *ChatModel) errorResponse(ctx context.Context, cause error, duration time.Duration) *ChatResponse {
	message := httpx.RedactURLSecrets(cause.Error())

	if m.logger != nil {
		errLog := httpx.ErrorLog{
			Provider:  providerName,
			Timestamp: time.Now(),
			Duration:  duration,
			Err:       cause,
		}
		var httpErr *httpx.Error
		if errors.As(cause, &httpErr) {
			errLog.ErrorType = httpErr.Type
			errLog.StatusCode = httpErr.StatusCode
		}
		m.logger.LogError(ctx, errLog)
	}
	if m.metrics != nil {
		m.metrics.RecordError(providerName, httpx.ErrTypeOf(cause))
	}

	candidate := NewCandidate(NewContent(NewResponsePart(message)))
	body := NewResponseBody([]Candidate{candidate}, nil, errorModelVersion)

	response := NewChatResponse(http.StatusInternalServerError, map[string]string{}, body)
	response.errMessage = message
	return response
}

// flattenHeaders keeps the first value of each response header, matching
// the single-valued header mapping Response exposes.
func flattenHeaders(headers http.Header) map[string]string {
	flat := make(map[string]string, len(headers))
	for key, values := range headers {
		if len(values) == 0 {
			flat[key] = ""
			continue
		}
		flat[key] = values[0]
	}
	return flat
}
