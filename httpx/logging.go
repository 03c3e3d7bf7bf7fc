package httpx

import (
	"context"
	"encoding/json"
	"log"
	"time"
)

// Logger provides structured diagnostic logging for API calls. Logging is
// best-effort and never part of the functional contract.
type Logger interface {
	// LogRequest logs an outgoing API request (endpoint pre-redacted)
	LogRequest(ctx context.Context, req RequestLog)

	// LogResponse logs an API response with timing and token info
	LogResponse(ctx context.Context, resp ResponseLog)

	// LogError logs a transport-level failure
	LogError(ctx context.Context, err ErrorLog)

	// LogWarning logs a warning message with structured fields
	LogWarning(ctx context.Context, message string, fields map[string]interface{})
}

// RequestLog contains request information for logging.
type RequestLog struct {
	Provider  string
	Endpoint  string
	Method    string
	Timestamp time.Time
	Contents  int
}

// ResponseLog contains response information for logging.
type ResponseLog struct {
	Provider     string
	ModelVersion string
	Timestamp    time.Time
	Duration     time.Duration
	StatusCode   int
	Candidates   int
	TokensIn     int
	TokensOut    int
}

// ErrorLog contains error information for logging.
type ErrorLog struct {
	Provider   string
	Timestamp  time.Time
	Duration   time.Duration
	Err        error
	ErrorType  ErrorType
	StatusCode int
}

// LogLevel defines the logging verbosity level.
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelError
)

// ParseLevel maps a config string to a LogLevel, defaulting to info.
func ParseLevel(level string) LogLevel {
	switch level {
	case "debug":
		return LogLevelDebug
	case "error":
		return LogLevelError
	default:
		return LogLevelInfo
	}
}

// LogFormat defines the output format for logs.
type LogFormat int

const (
	LogFormatHuman LogFormat = iota
	LogFormatJSON
)

// ParseFormat maps a config string to a LogFormat, defaulting to human.
func ParseFormat(format string) LogFormat {
	if format == "json" {
		return LogFormatJSON
	}
	return LogFormatHuman
}

// DefaultLogger writes structured logs via the standard log package.
type DefaultLogger struct {
	level  LogLevel
	format LogFormat
}

// NewDefaultLogger creates a logger with the specified level and format.
func NewDefaultLogger(level LogLevel, format LogFormat) *DefaultLogger {
	return &DefaultLogger{level: level, format: format}
}

// LogRequest logs an API request.
func (l *DefaultLogger) LogRequest(ctx context.Context, req RequestLog) {
	if l.level > LogLevelDebug {
		return
	}

	if l.format == LogFormatJSON {
		log.Printf(`{"level":"debug","type":"request","provider":"%s","endpoint":"%s","method":"%s","timestamp":"%s","contents":%d}`,
			req.Provider, req.Endpoint, req.Method,
			req.Timestamp.Format(time.RFC3339), req.Contents)
	} else {
		log.Printf("[DEBUG] %s: %s %s (contents=%d)",
			req.Provider, req.Method, req.Endpoint, req.Contents)
	}
}

// LogResponse logs an API response.
func (l *DefaultLogger) LogResponse(ctx context.Context, resp ResponseLog) {
	if l.level > LogLevelInfo {
		return
	}

	if l.format == LogFormatJSON {
		log.Printf(`{"level":"info","type":"response","provider":"%s","model_version":"%s","timestamp":"%s","duration_ms":%d,"status_code":%d,"candidates":%d,"tokens_in":%d,"tokens_out":%d}`,
			resp.Provider, resp.ModelVersion, resp.Timestamp.Format(time.RFC3339),
			resp.Duration.Milliseconds(), resp.StatusCode, resp.Candidates,
			resp.TokensIn, resp.TokensOut)
	} else {
		log.Printf("[INFO] %s/%s: response received (duration=%.1fs, status=%d, candidates=%d, tokens=%d/%d)",
			resp.Provider, resp.ModelVersion, resp.Duration.Seconds(),
			resp.StatusCode, resp.Candidates, resp.TokensIn, resp.TokensOut)
	}
}

// LogError logs a transport-level failure.
func (l *DefaultLogger) LogError(ctx context.Context, errLog ErrorLog) {
	if l.level > LogLevelError {
		return
	}

	message := RedactURLSecrets(errLog.Err.Error())

	if l.format == LogFormatJSON {
		log.Printf(`{"level":"error","type":"error","provider":"%s","timestamp":"%s","duration_ms":%d,"error":%s,"error_type":"%s","status_code":%d}`,
			errLog.Provider, errLog.Timestamp.Format(time.RFC3339),
			errLog.Duration.Milliseconds(), quoteJSON(message),
			errLog.ErrorType.String(), errLog.StatusCode)
	} else {
		log.Printf("[ERROR] %s: API call failed (%s, status=%d): %s",
			errLog.Provider, errLog.ErrorType.String(), errLog.StatusCode, message)
	}
}

// LogWarning logs a warning message with structured fields.
func (l *DefaultLogger) LogWarning(ctx context.Context, message string, fields map[string]interface{}) {
	if l.level > LogLevelInfo {
		return
	}

	if l.format == LogFormatJSON {
		encoded, err := json.Marshal(fields)
		if err != nil {
			encoded = []byte("{}")
		}
		log.Printf(`{"level":"warn","message":%s,"fields":%s}`, quoteJSON(message), encoded)
	} else {
		log.Printf("[WARN] %s: %v", message, fields)
	}
}

func quoteJSON(s string) string {
	encoded, err := json.Marshal(s)
	if err != nil {
		return `""`
	}
	return string(encoded)
}
