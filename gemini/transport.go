package gemini

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/bhavuklabs/geminiclient/httpx"
)

const defaultTimeout = 60 * time.Second

// Exchange is the raw result of one HTTP round trip.
type Exchange struct {
	StatusCode int
	Headers    http.Header
	Body       string
}

// Exchanger performs the HTTP exchange for ChatModel. Implementations
// must be safe for concurrent use; timeout enforcement is the
// implementation's concern.
type Exchanger interface {
	Exchange(ctx context.Context, method, endpoint string, headers http.Header, body []byte) (Exchange, error)
}

// HTTPExchanger is the default net/http-backed Exchanger.
type HTTPExchanger struct {
	client *http.Client
}

// NewHTTPExchanger creates an exchanger with the given timeout. A zero or
// negative timeout falls back to 60s.
func NewHTTPExchanger(timeout time.Duration) *HTTPExchanger {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPExchanger{client: &http.Client{Timeout: timeout}}
}

// Exchange implements Exchanger. Non-2xx status codes are not errors;
// they pass through in the Exchange for the caller to interpret.
func (e *HTTPExchanger) Exchange(ctx context.Context, method, endpoint string, headers http.Header, body []byte) (Exchange, error) {
	request, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(body))
	if err != nil {
		return Exchange{}, &httpx.Error{
			Type:     httpx.ErrTypeInvalidRequest,
			Message:  err.Error(),
			Provider: providerName,
		}
	}
	request.Header = headers.Clone()

	response, err := e.client.Do(request)
	if err != nil {
		return Exchange{}, &httpx.Error{
			Type:     classifyTransportError(err),
			Message:  err.Error(),
			Provider: providerName,
		}
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(response.Body)
	if err != nil {
		return Exchange{}, &httpx.Error{
			Type:     httpx.ErrTypeNetwork,
			Message:  err.Error(),
			Provider: providerName,
		}
	}

	return Exchange{
		StatusCode: response.StatusCode,
		Headers:    response.Header,
		Body:       string(raw),
	}, nil
}

func classifyTransportError(err error) httpx.ErrorType {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return httpx.ErrTypeTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return httpx.ErrTypeTimeout
	}
	return httpx.ErrTypeNetwork
}
