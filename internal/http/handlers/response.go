package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/tweeter-backend/internal/http/middleware"
)

// deletedAtHeader carries the deletion time of a 204 response (RFC 3339, UTC).
const deletedAtHeader = "X-Deleted-At"

// now is swapped in tests.
var now = time.Now

// ok writes a success JSON response.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// deleted writes the empty 204 answer of a successful delete. The response
// must not be cached.
func deleted(c *gin.Context) {
	c.Header(deletedAtHeader, now().UTC().Format(time.RFC3339))
	middleware.NoStore(c)
	c.Status(http.StatusNoContent)
}
