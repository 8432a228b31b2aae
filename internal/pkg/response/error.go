package response

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/nekogravitycat/shareit/internal/pkg/apperror"
)

// ErrorResponse defines the JSON structure for error responses.
type ErrorResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
}

// Error sends a JSON error response.
// It checks if the error is an AppError to determine the status code.
// If it's not an AppError, it defaults to 500 Internal Server Error.
func Error(c *gin.Context, err error) {
	logger := zerolog.Ctx(c.Request.Context())

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		logger.Warn().Int("status", appErr.Code).Str("error", appErr.Kind).Msg(appErr.Message)
		c.AbortWithStatusJSON(appErr.Code, newErrorResponse(appErr.Code, appErr.Kind, appErr.Message))
		return
	}

	logger.Error().Err(err).Msg("unhandled error")
	c.AbortWithStatusJSON(http.StatusInternalServerError,
		newErrorResponse(http.StatusInternalServerError, "Internal Server Error", "internal server error"))
}

// BadRequest sends a 400 response for malformed input that never reached a service.
func BadRequest(c *gin.Context, message string) {
	zerolog.Ctx(c.Request.Context()).Warn().Msg(message)
	c.AbortWithStatusJSON(http.StatusBadRequest,
		newErrorResponse(http.StatusBadRequest, apperror.KindBadRequest, message))
}

func newErrorResponse(status int, kind, message string) ErrorResponse {
	return ErrorResponse{
		Timestamp: time.Now().UTC(),
		Status:    status,
		Error:     kind,
		Message:   message,
	}
}
