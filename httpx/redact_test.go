package httpx_test

import (
	"strings"
	"testing"

	"github.com/bhavuklabs/geminiclient/httpx"
	"github.com/stretchr/testify/assert"
)

func TestRedactURLSecrets(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "gemini key parameter",
			input: "https://api.example.com/endpoint?key=secret123&foo=bar",
			want:  "https://api.example.com/endpoint?key=[REDACTED]&foo=bar",
		},
		{
			name:  "api_key parameter",
			input: "call failed: https://api.example.com?api_key=abc",
			want:  "call failed: https://api.example.com?api_key=[REDACTED]",
		},
		{
			name:  "token parameter",
			input: "https://api.example.com?token=xyz",
			want:  "https://api.example.com?token=[REDACTED]",
		},
		{
			name:  "quoted URL in error message",
			input: `Post "https://example.com/v1?key=supersecret": EOF`,
			want:  `Post "https://example.com/v1?key=[REDACTED]": EOF`,
		},
		{
			name:  "no secrets",
			input: "plain error message",
			want:  "plain error message",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, httpx.RedactURLSecrets(tt.input))
		})
	}
}

func TestRedactAPIKey(t *testing.T) {
	assert.Equal(t, "", httpx.RedactAPIKey(""))
	assert.Equal(t, "****", httpx.RedactAPIKey("ab"))
	assert.Equal(t, "****", httpx.RedactAPIKey("abcd"))
	assert.Equal(t, "****6789", httpx.RedactAPIKey("123456789"))
}

func TestTruncateForLogging(t *testing.T) {
	short := "short response"
	assert.Equal(t, short, httpx.TruncateForLogging(short))

	long := strings.Repeat("x", httpx.MaxLoggedResponseLength+50)
	truncated := httpx.TruncateForLogging(long)
	assert.Contains(t, truncated, "[truncated, total length=250 bytes]")
	assert.Less(t, len(truncated), len(long))
}
