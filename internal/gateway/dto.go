package gateway

import (
	"fmt"
	"strings"
	"time"

	"github.com/nekogravitycat/shareit/internal/pkg/request"
)

// validator is implemented by request bodies with checks beyond binding tags.
type validator interface {
	Validate(now time.Time) error
}

type CreateUserRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

func (r *CreateUserRequest) Validate(time.Time) error {
	return notBlank("name", r.Name)
}

type UpdateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email" binding:"omitempty,email"`
}

func (r *UpdateUserRequest) Validate(time.Time) error {
	return nil
}

type CreateItemRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	Available   *bool  `json:"available" binding:"required"`
	RequestID   *int64 `json:"requestId" binding:"omitempty,min=1"`
}

func (r *CreateItemRequest) Validate(time.Time) error {
	if err := notBlank("name", r.Name); err != nil {
		return err
	}
	return notBlank("description", r.Description)
}

type UpdateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

func (r *UpdateItemRequest) Validate(time.Time) error {
	return nil
}

type CreateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

func (r *CreateCommentRequest) Validate(time.Time) error {
	return notBlank("text", r.Text)
}

type CreateItemRequestRequest struct {
	Description string `json:"description" binding:"required"`
}

func (r *CreateItemRequestRequest) Validate(time.Time) error {
	return notBlank("description", r.Description)
}

type CreateBookingRequest struct {
	ItemID int64         `json:"itemId" binding:"required,min=1"`
	Start  *request.Time `json:"start" binding:"required"`
	End    *request.Time `json:"end" binding:"required"`
}

// Validate requires start now or later, end in the future and end after start.
func (r *CreateBookingRequest) Validate(now time.Time) error {
	if r.Start.Before(now) {
		return fmt.Errorf("start must be in the present or future")
	}
	if !r.End.After(now) {
		return fmt.Errorf("end must be in the future")
	}
	if !r.End.After(r.Start.Time) {
		return fmt.Errorf("end must be after start")
	}
	return nil
}

type ApproveQuery struct {
	Approved *bool `form:"approved" binding:"required"`
}

type StateQuery struct {
	State string `form:"state"`
}

func notBlank(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s must not be blank", field)
	}
	return nil
}
