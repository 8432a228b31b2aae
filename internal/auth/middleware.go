package auth

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/shareit/internal/pkg/response"
)

// ParseUserID validates a raw X-Sharer-User-Id value.
func ParseUserID(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("header '%s' is required", HeaderUserID)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("header '%s' must be a positive integer", HeaderUserID)
	}
	return id, nil
}

// SharerRequired is a Gin middleware that requires the X-Sharer-User-Id header
// and stores the parsed caller ID in the context.
func SharerRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := ParseUserID(c.GetHeader(HeaderUserID))
		if err != nil {
			response.BadRequest(c, err.Error())
			return
		}

		c.Set(userIDKey, id)
		c.Next()
	}
}
