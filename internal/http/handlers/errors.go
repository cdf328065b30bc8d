package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/tweeter-backend/internal/apperr"
)

var (
	// ErrRouteNotFound answers requests that match no route.
	ErrRouteNotFound = apperr.NotFound("Route not found")

	// ErrMethodNotAllowed answers a known path with an unsupported verb.
	ErrMethodNotAllowed = apperr.New(http.StatusMethodNotAllowed, "Method not allowed")
)

// NoRoute hands an unknown route to the terminal error handler.
func NoRoute(c *gin.Context) {
	_ = c.Error(ErrRouteNotFound)
	c.Abort()
}

// NoMethod hands an unsupported method to the terminal error handler.
func NoMethod(c *gin.Context) {
	_ = c.Error(ErrMethodNotAllowed)
	c.Abort()
}
