package http

import (
	"time"

	itemhttp "github.com/nekogravitycat/shareit/internal/item/http"
	"github.com/nekogravitycat/shareit/internal/itemrequest"
)

type ItemRequestResponse struct {
	ID          int64                   `json:"id"`
	Description string                  `json:"description"`
	RequestorID int64                   `json:"requestorId"`
	Created     time.Time               `json:"created"`
	Items       []itemhttp.ItemResponse `json:"items"`
}

func NewResponse(r *itemrequest.WithItems) ItemRequestResponse {
	return ItemRequestResponse{
		ID:          r.ID,
		Description: r.Description,
		RequestorID: r.RequestorID,
		Created:     r.Created,
		Items:       itemhttp.NewItemListResponse(r.Items),
	}
}

func NewListResponse(list []*itemrequest.WithItems) []ItemRequestResponse {
	out := make([]ItemRequestResponse, len(list))
	for i, r := range list {
		out[i] = NewResponse(r)
	}
	return out
}

type CreateRequest struct {
	Description string `json:"description" binding:"required"`
}
