package gemini_test

import (
	"testing"

	"github.com/bhavuklabs/geminiclient/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validBody() gemini.RequestBody {
	return gemini.NewRequestBody(gemini.NewContent(gemini.NewRequestPart("hello")))
}

func TestRequestValidator_ValidRequest(t *testing.T) {
	validator := gemini.NewRequestValidator()
	request := gemini.NewChatRequest("https://generativelanguage.googleapis.com/v1beta/models/gemini-1.5-flash:generateContent", validBody())

	assert.NoError(t, validator.Validate(request))
}

func TestRequestValidator_NilRequest(t *testing.T) {
	validator := gemini.NewRequestValidator()

	err := validator.Validate(nil)

	var validationErr *gemini.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "request", validationErr.Field)
}

func TestRequestValidator_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		request *gemini.ChatRequest
		field   string
	}{
		{
			name:    "empty endpoint",
			request: gemini.NewChatRequest("", validBody()),
			field:   "endpoint",
		},
		{
			name:    "unsupported scheme",
			request: gemini.NewChatRequest("ftp://example.com/models", validBody()),
			field:   "endpoint",
		},
		{
			name:    "missing host",
			request: gemini.NewChatRequest("https://", validBody()),
			field:   "endpoint",
		},
		{
			name:    "unsupported method",
			request: gemini.NewChatRequest("https://example.com/v1", validBody()).WithMethod("BREW"),
			field:   "method",
		},
		{
			name:    "empty body",
			request: gemini.NewChatRequest("https://example.com/v1", gemini.NewRequestBody()),
			field:   "body",
		},
		{
			name:    "content without parts",
			request: gemini.NewChatRequest("https://example.com/v1", gemini.NewRequestBody(gemini.NewContent())),
			field:   "body",
		},
	}

	validator := gemini.NewRequestValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.Validate(tt.request)

			var validationErr *gemini.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.field, validationErr.Field)
		})
	}
}
