package itemrequest

import (
	"time"

	"github.com/nekogravitycat/shareit/internal/item"
	"github.com/nekogravitycat/shareit/internal/pkg/apperror"
)

var (
	ErrNotFound            = apperror.NotFound("item request not found")
	ErrDescriptionRequired = apperror.Validation("description is required")
)

// ItemRequest is a user's ask for an item nobody lists yet.
type ItemRequest struct {
	ID          int64
	Description string
	RequestorID int64
	Created     time.Time
}

// WithItems is a request together with the items offered in answer to it.
type WithItems struct {
	*ItemRequest
	Items []*item.Item
}
