package gemini_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bhavuklabs/geminiclient/gemini"
	"github.com/bhavuklabs/geminiclient/httpx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeExchanger records calls and returns a canned result.
type fakeExchanger struct {
	calls    int
	headers  http.Header
	payload  []byte
	exchange gemini.Exchange
	err      error
}

func (f *fakeExchanger) Exchange(ctx context.Context, method, endpoint string, headers http.Header, body []byte) (gemini.Exchange, error) {
	f.calls++
	f.headers = headers
	f.payload = body
	return f.exchange, f.err
}

// failingValidator rejects every request.
type failingValidator struct{}

func (failingValidator) Validate(gemini.Request) error {
	return &gemini.ValidationError{Field: "request", Message: "always invalid"}
}

func testRequest() *gemini.ChatRequest {
	return gemini.NewChatRequest("https://example.com/v1beta/models/gemini-1.5-flash:generateContent", validBody())
}

func TestChatModel_ValidationFailureMakesNoTransportCall(t *testing.T) {
	exchanger := &fakeExchanger{}
	model := gemini.NewChatModel(exchanger, failingValidator{})

	response, err := model.Call(context.Background(), testRequest())

	var validationErr *gemini.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Nil(t, response)
	assert.Zero(t, exchanger.calls)
}

func TestChatModel_TransportFailureReturnsErrorResponse(t *testing.T) {
	exchanger := &fakeExchanger{err: errors.New("dial tcp: connection refused")}
	model := gemini.NewChatModel(exchanger, gemini.NewRequestValidator())

	response, err := model.Call(context.Background(), testRequest())

	require.NoError(t, err)
	require.NotNil(t, response)
	assert.False(t, response.Successful())
	assert.Equal(t, http.StatusInternalServerError, response.StatusCode())
	assert.Equal(t, "dial tcp: connection refused", response.ErrorMessage())

	body := response.Body()
	require.Len(t, body.Candidates(), 1)
	assert.Equal(t, "dial tcp: connection refused", body.Candidates()[0].Text())
	assert.Nil(t, body.Usage())
	assert.Equal(t, "gemini-flash-1.5", body.ModelVersion())
}

func TestChatModel_TransportFailureRedactsURLSecrets(t *testing.T) {
	exchanger := &fakeExchanger{err: errors.New(`Post "https://example.com/v1?key=supersecret": EOF`)}
	model := gemini.NewChatModel(exchanger, gemini.NewRequestValidator())

	response, err := model.Call(context.Background(), testRequest())

	require.NoError(t, err)
	message := response.Body().Candidates()[0].Text()
	assert.Contains(t, message, "key=[REDACTED]")
	assert.NotContains(t, message, "supersecret")
}

func TestChatModel_SuccessfulCall(t *testing.T) {
	exchanger := &fakeExchanger{
		exchange: gemini.Exchange{
			StatusCode: http.StatusOK,
			Headers:    http.Header{"Content-Type": {"application/json"}},
			Body: `{
				"candidates": [{"content": {"parts": [{"text": "hi there"}]}}],
				"usageMetadata": {"promptTokenCount": 4, "candidatesTokenCount": 2},
				"model": "gemini-1.5-flash-002"
			}`,
		},
	}
	model := gemini.NewChatModel(exchanger, gemini.NewRequestValidator())

	response, err := model.Call(context.Background(), testRequest())

	require.NoError(t, err)
	assert.True(t, response.Successful())
	assert.Equal(t, http.StatusOK, response.StatusCode())
	assert.Equal(t, "application/json", response.Headers()["Content-Type"])
	assert.Empty(t, response.ErrorMessage())

	body := response.Body()
	require.Len(t, body.Candidates(), 1)
	assert.Equal(t, "hi there", body.Candidates()[0].Text())
	assert.Equal(t, 4, body.TokenCount(gemini.UsagePromptTokens))
	assert.Equal(t, "gemini-1.5-flash-002", body.ModelVersion())
}

func TestChatModel_NonSuccessStatusPassesThrough(t *testing.T) {
	exchanger := &fakeExchanger{
		exchange: gemini.Exchange{
			StatusCode: http.StatusNotFound,
			Body:       `{"error": {"code": 404, "message": "model not found"}}`,
		},
	}
	model := gemini.NewChatModel(exchanger, gemini.NewRequestValidator())

	response, err := model.Call(context.Background(), testRequest())

	require.NoError(t, err)
	assert.False(t, response.Successful())
	assert.Equal(t, http.StatusNotFound, response.StatusCode())
	// The error payload has no recognized fields, so the body degrades
	// to defaults without failing the call.
	assert.Empty(t, response.Body().Candidates())
	assert.Equal(t, gemini.OutcomeParsed, response.Body().Outcome())
}

func TestChatModel_OutboundHeaders(t *testing.T) {
	exchanger := &fakeExchanger{
		exchange: gemini.Exchange{StatusCode: http.StatusOK, Body: `{}`},
	}
	model := gemini.NewChatModel(exchanger, gemini.NewRequestValidator())

	request := testRequest().
		WithHeader("Authorization", "Bearer X").
		WithHeader("X-Custom", "Y")

	_, err := model.Call(context.Background(), request)

	require.NoError(t, err)
	require.Equal(t, 1, exchanger.calls)
	assert.Empty(t, exchanger.headers.Get("Authorization"))
	assert.Equal(t, "Y", exchanger.headers.Get("X-Custom"))
	assert.Equal(t, "application/json", exchanger.headers.Get("Content-Type"))
}

func TestChatModel_OutboundPayloadShape(t *testing.T) {
	exchanger := &fakeExchanger{
		exchange: gemini.Exchange{StatusCode: http.StatusOK, Body: `{}`},
	}
	model := gemini.NewChatModel(exchanger, gemini.NewRequestValidator())

	_, err := model.Call(context.Background(), testRequest())

	require.NoError(t, err)
	assert.JSONEq(t, `{"contents":[{"parts":[{"text":"hello"}]}]}`, string(exchanger.payload))
}

func TestChatModel_MalformedBodyStillSucceeds(t *testing.T) {
	exchanger := &fakeExchanger{
		exchange: gemini.Exchange{StatusCode: http.StatusOK, Body: "not json at all"},
	}
	model := gemini.NewChatModel(exchanger, gemini.NewRequestValidator())

	response, err := model.Call(context.Background(), testRequest())

	require.NoError(t, err)
	assert.True(t, response.Successful())
	assert.Empty(t, response.Body().Candidates())
	assert.Equal(t, gemini.OutcomeMalformed, response.Body().Outcome())
	assert.Equal(t, "unknown", response.Body().ModelVersion())
}

func TestChatModel_RecordsMetrics(t *testing.T) {
	exchanger := &fakeExchanger{
		exchange: gemini.Exchange{
			StatusCode: http.StatusOK,
			Body:       `{"usageMetadata": {"promptTokenCount": 7, "candidatesTokenCount": 9}}`,
		},
	}
	model := gemini.NewChatModel(exchanger, gemini.NewRequestValidator())
	metrics := httpx.NewDefaultMetrics()
	model.SetMetrics(metrics)

	_, err := model.Call(context.Background(), testRequest())
	require.NoError(t, err)

	stats := metrics.GetStats()
	assert.Equal(t, 1, stats.TotalRequests)
	assert.Equal(t, 7, stats.TotalTokensIn)
	assert.Equal(t, 9, stats.TotalTokensOut)
	assert.Zero(t, stats.ErrorCount)
}

func TestChatModel_EndToEndOverHTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-api-key", r.URL.Query().Get("key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Empty(t, r.Header.Get("Authorization"))

		var decoded map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&decoded))
		assert.Contains(t, decoded, "contents")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"candidates": [{"content": {"parts": [{"text": "pong"}]}}],
			"usageMetadata": {"promptTokenCount": 1, "candidatesTokenCount": 1, "totalTokenCount": 2},
			"model": "gemini-1.5-flash"
		}`))
	}))
	defer server.Close()

	body := gemini.NewRequestBody(gemini.NewContent(gemini.NewRequestPart("ping")))
	request := gemini.NewChatRequest(server.URL+"/v1beta/models/gemini-1.5-flash:generateContent", body).
		WithAPIKey("test-api-key").
		WithHeader("Authorization", "Bearer leaked")

	model := gemini.NewChatModel(gemini.NewHTTPExchanger(5*time.Second), gemini.NewRequestValidator())

	response, err := model.Call(context.Background(), request)

	require.NoError(t, err)
	assert.True(t, response.Successful())
	assert.Equal(t, "pong", response.Body().Candidates()[0].Text())
	assert.Equal(t, 2, response.Body().TokenCount(gemini.UsageTotalTokens))
}

func TestChatModel_EndToEndTransportFailure(t *testing.T) {
	// A server that is immediately closed guarantees a connection error.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := server.URL
	server.Close()

	body := gemini.NewRequestBody(gemini.NewContent(gemini.NewRequestPart("ping")))
	request := gemini.NewChatRequest(endpoint, body).WithAPIKey("test-api-key")

	model := gemini.NewChatModel(gemini.NewHTTPExchanger(2*time.Second), gemini.NewRequestValidator())

	response, err := model.Call(context.Background(), request)

	require.NoError(t, err)
	assert.False(t, response.Successful())
	assert.Equal(t, http.StatusInternalServerError, response.StatusCode())
	require.Len(t, response.Body().Candidates(), 1)
	assert.NotEmpty(t, response.Body().Candidates()[0].Text())
	assert.Equal(t, "gemini-flash-1.5", response.Body().ModelVersion())
}
