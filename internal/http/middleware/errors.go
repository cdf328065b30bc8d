// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements Errors, the terminal error handler. Handlers and the
// validation middleware never write error bodies themselves; they attach the
// error with c.Error and abort. Errors then answers with one JSON shape:
//
//	{ "error": "<message>", "request_id": "<inbound X-Request-ID>" | null, "details": [...] }
//
// Typed *apperr.Error values keep their status, message and details. Anything
// else becomes 500 "Internal Server Error". Causes and stacks stay in the logs.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/tweeter-backend/internal/apperr"
)

const internalMessage = "Internal Server Error"

// ErrorBody is the wire shape of every error response.
type ErrorBody struct {
	Error     string  `json:"error"                example:"User not found!"`
	RequestID *string `json:"request_id"           example:"8b1f0f0e-8e3c-4c1e-9d38-1a2b3c4d5e6f"`
	Details   any     `json:"details,omitempty"`
}

// Errors returns the terminal error handler. Install it before the routes so
// that it runs after them (it acts once c.Next returns).
func Errors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err

		status, msg := http.StatusInternalServerError, internalMessage
		var details any
		if ae, ok := apperr.As(err); ok {
			status, msg, details = ae.Status, ae.Message, ae.Details
		}

		lg := LoggerFrom(c)
		if status >= http.StatusInternalServerError {
			lg.Error().Err(err).Int("status", status).Msg("request failed")
		} else {
			lg.Warn().Str("error", msg).Int("status", status).Msg("request rejected")
		}
		appErrors.WithLabelValues(statusLabel(status)).Inc()

		writeError(c, status, msg, details)
	}
}

// writeError writes the standard error body and aborts the chain.
func writeError(c *gin.Context, status int, msg string, details any) {
	body := ErrorBody{Error: msg, Details: details}
	if rid, ok := InboundRequestID(c); ok {
		body.RequestID = &rid
	}
	c.AbortWithStatusJSON(status, body)
}
