package auth

import "github.com/gin-gonic/gin"

// HeaderUserID carries the caller identity on every item, booking and request call.
const HeaderUserID = "X-Sharer-User-Id"

const userIDKey = "sharerUserID"

// GetUserID returns the caller's user ID or 0 when the middleware did not run.
func GetUserID(c *gin.Context) int64 {
	if v, ok := c.Get(userIDKey); ok {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}
