package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// userID resolves the caller identity set by the upstream gateway. Auth itself
// lives in front of this service.
func userID(c *gin.Context) (string, bool) {
	id := strings.TrimSpace(c.GetHeader("X-User-ID"))
	if id == "" {
		Error(c, http.StatusUnauthorized, "missing X-User-ID header", nil)
		return "", false
	}
	return id, true
}

func intQuery(c *gin.Context, key string, def int) int {
	if val := c.Query(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return def
}
