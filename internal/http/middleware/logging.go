// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file provides request correlation, structured access logging with PII
// scrubbing, and panic recovery:
//
//   - RequestID() ensures every request carries a correlation ID (propagated
//     via X-Request-ID). The inbound value, if any, is remembered separately
//     because error bodies echo only what the client sent.
//   - Logger() emits one structured access log line per request, attaches a
//     request-scoped zerolog.Logger, and scrubs emails, ObjectIDs, UUIDs and
//     phone numbers from the query string and header values. Sensitive headers
//     are masked entirely. Bodies are never logged.
//   - Recovery() converts panics into the standard JSON 500 error body.
//   - LoggerFrom() retrieves the request-scoped logger.
//
// Recommended order: RequestID(), Logger(), Errors(), Recovery().
package middleware

import (
	"net/http"
	"regexp"
	"runtime/debug"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	// requestIDKey is the Gin context key under which the request ID is stored.
	requestIDKey = "requestID"
	// inboundRequestIDKey holds the X-Request-ID the client sent, if any.
	inboundRequestIDKey = "inboundRequestID"
	// loggerKey holds the request-scoped *zerolog.Logger.
	loggerKey = "logger"
	// requestIDHeader is the HTTP header used to propagate the correlation ID.
	requestIDHeader = "X-Request-ID"
	// maxQueryLogLength caps the number of bytes of the raw query string logged.
	maxQueryLogLength = 2048
)

// RequestID attaches (or propagates) a correlation identifier per request.
// An incoming X-Request-ID is reused; otherwise a UUIDv4 is generated. The ID
// is echoed on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if rid != "" {
			c.Set(inboundRequestIDKey, rid)
		} else {
			rid = uuid.NewString()
		}
		c.Set(requestIDKey, rid)
		c.Writer.Header().Set(requestIDHeader, rid)
		c.Next()
	}
}

// InboundRequestID returns the X-Request-ID sent by the client. It works
// with or without RequestID() installed.
func InboundRequestID(c *gin.Context) (string, bool) {
	if v, ok := c.Get(inboundRequestIDKey); ok {
		if s, ok := v.(string); ok && s != "" {
			return s, true
		}
	}
	if rid := strings.TrimSpace(c.GetHeader(requestIDHeader)); rid != "" {
		return rid, true
	}
	return "", false
}

// LogOptions configures Logger.
type LogOptions struct {
	// MaskHeaders lists extra header names whose values are replaced with
	// "[REDACTED]". Authorization, Cookie and Set-Cookie are always masked.
	MaskHeaders []string
	// LogHeaders includes the scrubbed request headers in the access log.
	LogHeaders bool
}

// redactor scrubs identifiers from free-form strings. Order matters: UUIDs
// and ObjectIDs go before phone numbers so the loose phone pattern never
// eats their digit runs.
type redactor struct {
	uuid, objectID, email, phone *regexp.Regexp
}

func newRedactor() *redactor {
	return &redactor{
		uuid:     regexp.MustCompile(`(?i)\b[0-9a-f]{8}-[0-9a-f]{4}-[1-5][0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}\b`),
		objectID: regexp.MustCompile(`(?i)\b[0-9a-f]{24}\b`),
		email:    regexp.MustCompile(`(?i)\b[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}\b`),
		phone:    regexp.MustCompile(`\b(?:\+?\d{1,3}[ .-]?)?(?:\(?\d{2,4}\)?[ .-]?)?\d{3,4}[ .-]?\d{4}\b`),
	}
}

func (r *redactor) scrub(s string) string {
	if s == "" {
		return s
	}
	s = r.uuid.ReplaceAllString(s, "[REDACTED:id]")
	s = r.objectID.ReplaceAllString(s, "[REDACTED:id]")
	s = r.email.ReplaceAllString(s, "[REDACTED:email]")
	s = r.phone.ReplaceAllString(s, "[REDACTED:phone]")
	return s
}

// Logger writes a structured access log for each request.
//
// The log level follows the response status: error for 5xx, warn for 4xx,
// info otherwise. Errors attached to the context are included as a string.
// Place it after RequestID() so logs carry the correlation ID.
func Logger(opts LogOptions) gin.HandlerFunc {
	red := newRedactor()
	mask := map[string]struct{}{
		"authorization": {},
		"cookie":        {},
		"set-cookie":    {},
	}
	for _, h := range opts.MaskHeaders {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			mask[h] = struct{}{}
		}
	}

	return func(c *gin.Context) {
		start := time.Now()

		rid, _ := c.Get(requestIDKey)
		path := c.FullPath()
		if path == "" {
			// Unmatched routes log the raw path, which may carry identifiers.
			path = red.scrub(c.Request.URL.Path)
		}

		lc := log.With().
			Str("request_id", asString(rid)).
			Str("method", c.Request.Method).
			Str("path", path).
			Str("remote_ip", c.ClientIP()).
			Str("user_agent", c.Request.UserAgent()).
			Str("query", red.scrub(truncate(c.Request.URL.RawQuery, maxQueryLogLength))).
			// ContentLength can be -1 if unknown.
			Int64("bytes_in", c.Request.ContentLength)
		if opts.LogHeaders {
			lc = lc.Interface("headers", scrubHeaders(c.Request.Header, mask, red))
		}
		l := lc.Logger()

		c.Set(loggerKey, &l)

		c.Next()

		status := c.Writer.Status()
		ev := l.Info()
		switch {
		case status >= 500:
			ev = l.Error()
		case status >= 400:
			ev = l.Warn()
		}
		if len(c.Errors) > 0 {
			ev = ev.Str("errors", c.Errors.String())
		}
		ev.Int("status", status).
			Dur("latency", time.Since(start)).
			Int("bytes_out", c.Writer.Size()).
			Msg("request")
	}
}

func scrubHeaders(h http.Header, mask map[string]struct{}, red *redactor) map[string]string {
	out := make(map[string]string, len(h))
	for k, vv := range h {
		if _, ok := mask[strings.ToLower(k)]; ok {
			out[k] = "[REDACTED]"
			continue
		}
		out[k] = red.scrub(strings.Join(vv, ", "))
	}
	return out
}

// Recovery intercepts panics, logs the stack, counts them in
// app_errors_total, and answers with the standard 500 error body when
// nothing has been written yet.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				LoggerFrom(c).Error().
					Interface("panic", rec).
					Bytes("stack", debug.Stack()).
					Msg("panic recovered")

				appErrors.WithLabelValues(statusLabel(http.StatusInternalServerError)).Inc()
				if !c.Writer.Written() {
					writeError(c, http.StatusInternalServerError, internalMessage, nil)
					return
				}
				c.AbortWithStatus(http.StatusInternalServerError)
			}
		}()
		c.Next()
	}
}

// LoggerFrom returns the request-scoped zerolog.Logger, or the global logger
// when Logger() is not installed. The result is never nil.
func LoggerFrom(c *gin.Context) *zerolog.Logger {
	if v, ok := c.Get(loggerKey); ok {
		if lg, ok := v.(*zerolog.Logger); ok {
			return lg
		}
	}
	l := log.With().Logger()
	return &l
}

func asString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// truncate caps s at max bytes, appending an ellipsis. max <= 0 disables it.
func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:max] + "…"
}
