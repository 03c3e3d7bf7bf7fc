package httpx_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/bhavuklabs/geminiclient/httpx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Message(t *testing.T) {
	err := &httpx.Error{
		Type:       httpx.ErrTypeRateLimit,
		Message:    "quota exhausted",
		StatusCode: 429,
		Provider:   "gemini",
	}

	assert.Equal(t, "gemini: rate limit exceeded: quota exhausted (status: 429)", err.Error())
}

func TestError_MessageWithoutStatus(t *testing.T) {
	err := &httpx.Error{
		Type:     httpx.ErrTypeNetwork,
		Message:  "connection reset",
		Provider: "gemini",
	}

	assert.Equal(t, "gemini: network error: connection reset", err.Error())
}

func TestError_Is(t *testing.T) {
	err := &httpx.Error{Type: httpx.ErrTypeTimeout, Provider: "gemini"}

	assert.ErrorIs(t, err, &httpx.Error{Type: httpx.ErrTypeTimeout})
	assert.NotErrorIs(t, err, &httpx.Error{Type: httpx.ErrTypeNetwork})
}

func TestErrTypeOf(t *testing.T) {
	wrapped := fmt.Errorf("call failed: %w", &httpx.Error{Type: httpx.ErrTypeAuthentication})

	assert.Equal(t, httpx.ErrTypeAuthentication, httpx.ErrTypeOf(wrapped))
	assert.Equal(t, httpx.ErrTypeUnknown, httpx.ErrTypeOf(errors.New("plain")))
}

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		status int
		want   httpx.ErrorType
	}{
		{401, httpx.ErrTypeAuthentication},
		{403, httpx.ErrTypeAuthentication},
		{429, httpx.ErrTypeRateLimit},
		{400, httpx.ErrTypeInvalidRequest},
		{500, httpx.ErrTypeServiceUnavailable},
		{503, httpx.ErrTypeServiceUnavailable},
		{418, httpx.ErrTypeUnknown},
	}

	for _, tt := range tests {
		err := httpx.ClassifyStatus("gemini", tt.status, "")
		require.NotNil(t, err)
		assert.Equal(t, tt.want, err.Type, "status %d", tt.status)
		assert.Equal(t, tt.status, err.StatusCode)
		assert.Contains(t, err.Message, fmt.Sprintf("%d", tt.status))
	}
}

func TestClassifyStatus_KeepsMessage(t *testing.T) {
	err := httpx.ClassifyStatus("gemini", 429, "slow down")

	assert.Equal(t, "slow down", err.Message)
}
