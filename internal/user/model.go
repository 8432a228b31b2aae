package user

import (
	"net/http"

	"github.com/nekogravitycat/shareit/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.NotFound("user not found")
	ErrEmailAlreadyUsed = apperror.Duplicate("user with this email already exists")
	ErrNameRequired     = apperror.Validation("name is required")
	ErrEmailRequired    = apperror.Validation("email is required")
	ErrHasDependents    = apperror.New(http.StatusConflict, "user still owns items, bookings or requests")
)

// User represents a user in the system.
type User struct {
	ID    int64
	Name  string
	Email string
}
