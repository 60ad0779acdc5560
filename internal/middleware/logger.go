package middleware

import (
	"encoding/json"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// sensitiveHeaderPatterns contains regex patterns for headers that must be
// redacted. The cleanup secret travels in the Authorization header, so it
// must never reach the log output.
var sensitiveHeaderPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)authorization`),
	regexp.MustCompile(`(?i)api[-_]?key`),
	regexp.MustCompile(`(?i)token`),
	regexp.MustCompile(`(?i)secret`),
	regexp.MustCompile(`(?i)cookie`),
}

// LogEntry represents a structured request log entry
type LogEntry struct {
	Timestamp  string            `json:"timestamp"`
	Method     string            `json:"method"`
	Path       string            `json:"path"`
	StatusCode int               `json:"status_code"`
	Latency    string            `json:"latency"`
	ClientIP   string            `json:"client_ip"`
	Headers    map[string]string `json:"headers"`
	Error      string            `json:"error,omitempty"`
}

// RequestLogger creates a middleware that logs all API requests. Request
// and response bodies are not captured: uploads are multi-megabyte
// binaries and invoice payloads carry PII that has its own retention
// policy, so neither belongs in logs.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		c.Next()

		entry := LogEntry{
			Timestamp:  time.Now().Format(time.RFC3339),
			Method:     c.Request.Method,
			Path:       c.Request.URL.Path,
			StatusCode: c.Writer.Status(),
			Latency:    time.Since(startTime).String(),
			ClientIP:   c.ClientIP(),
			Headers:    redactHeaders(c.Request.Header),
		}
		if len(c.Errors) > 0 {
			entry.Error = c.Errors.String()
		}

		data, err := json.Marshal(entry)
		if err != nil {
			log.Printf("%s %s %d %s", entry.Method, entry.Path, entry.StatusCode, entry.Latency)
			return
		}
		log.Println(string(data))
	}
}

// redactHeaders redacts sensitive headers
func redactHeaders(headers map[string][]string) map[string]string {
	redacted := make(map[string]string)
	for key, values := range headers {
		if isSensitiveHeader(key) {
			redacted[key] = "[REDACTED]"
		} else {
			redacted[key] = strings.Join(values, ", ")
		}
	}
	return redacted
}

// isSensitiveHeader checks if a header name is sensitive
func isSensitiveHeader(headerName string) bool {
	for _, pattern := range sensitiveHeaderPatterns {
		if pattern.MatchString(headerName) {
			return true
		}
	}
	return false
}
