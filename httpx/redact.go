package httpx

import (
	"fmt"
	"regexp"
)

// MaxLoggedResponseLength is the maximum length of response text to
// include in logs. Longer responses are truncated so user content does
// not end up wholesale in log aggregators.
const MaxLoggedResponseLength = 200

var secretParamPatterns = []struct {
	re    *regexp.Regexp
	param string
}{
	{regexp.MustCompile(`key=([^&"\s]+)`), "key"},
	{regexp.MustCompile(`apiKey=([^&"\s]+)`), "apiKey"},
	{regexp.MustCompile(`api_key=([^&"\s]+)`), "api_key"},
	{regexp.MustCompile(`token=([^&"\s]+)`), "token"},
	{regexp.MustCompile(`access_token=([^&"\s]+)`), "access_token"},
}

// RedactURLSecrets redacts API keys and other secrets from URLs embedded
// in text. The Gemini API carries its key as a ?key= query parameter, so
// any error message or log line quoting the endpoint would otherwise leak
// the credential.
func RedactURLSecrets(text string) string {
	if text == "" {
		return text
	}
	result := text
	for _, pattern := range secretParamPatterns {
		result = pattern.re.ReplaceAllString(result, pattern.param+"=[REDACTED]")
	}
	return result
}

// RedactAPIKey reduces an API key to its last four characters for
// logging.
func RedactAPIKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}

// TruncateForLogging truncates response text for safe logging, keeping
// the first MaxLoggedResponseLength bytes plus a truncation indicator.
func TruncateForLogging(response string) string {
	if len(response) <= MaxLoggedResponseLength {
		return response
	}
	return response[:MaxLoggedResponseLength] + fmt.Sprintf("... [truncated, total length=%d bytes]", len(response))
}
