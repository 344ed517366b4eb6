package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// The authenticated user id arrives in a header set by the upstream
// auth proxy; session handling itself lives outside this service. The
// id is threaded explicitly into every repository call.
const userIDHeader = "X-User-ID"

func currentUserID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.GetHeader(userIDHeader), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func requireUser(c *gin.Context) (int64, bool) {
	id, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
	}
	return id, ok
}
