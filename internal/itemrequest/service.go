package itemrequest

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/nekogravitycat/shareit/internal/item"
	"github.com/nekogravitycat/shareit/internal/user"
)

type Service interface {
	Create(ctx context.Context, requestorID int64, description string) (*WithItems, error)
	ListOwn(ctx context.Context, userID int64) ([]*WithItems, error)
	ListOthers(ctx context.Context, userID int64) ([]*WithItems, error)
	GetByID(ctx context.Context, id, userID int64) (*WithItems, error)
}

type service struct {
	repo   Repository
	items  item.Service
	users  user.Service
	logger zerolog.Logger
	now    func() time.Time
}

func NewService(repo Repository, items item.Service, users user.Service, logger zerolog.Logger) Service {
	return &service{
		repo:   repo,
		items:  items,
		users:  users,
		logger: logger.With().Str("component", "itemrequest").Logger(),
		now:    time.Now,
	}
}

func (s *service) Create(ctx context.Context, requestorID int64, description string) (*WithItems, error) {
	if _, err := s.users.GetByID(ctx, requestorID); err != nil {
		return nil, err
	}

	description = strings.TrimSpace(description)
	if description == "" {
		return nil, ErrDescriptionRequired
	}

	req := &ItemRequest{
		Description: description,
		RequestorID: requestorID,
		Created:     s.now(),
	}
	if err := s.repo.Create(ctx, req); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("request_id", req.ID).Int64("requestor_id", requestorID).Msg("item request created")
	return &WithItems{ItemRequest: req, Items: []*item.Item{}}, nil
}

func (s *service) ListOwn(ctx context.Context, userID int64) ([]*WithItems, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	reqs, err := s.repo.ListByRequestor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.attachItems(ctx, reqs)
}

func (s *service) ListOthers(ctx context.Context, userID int64) ([]*WithItems, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	reqs, err := s.repo.ListExcept(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.attachItems(ctx, reqs)
}

func (s *service) GetByID(ctx context.Context, id, userID int64) (*WithItems, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	req, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	out, err := s.attachItems(ctx, []*ItemRequest{req})
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

// attachItems loads the items answering each request in one query.
func (s *service) attachItems(ctx context.Context, reqs []*ItemRequest) ([]*WithItems, error) {
	ids := make([]int64, len(reqs))
	for i, r := range reqs {
		ids[i] = r.ID
	}

	items, err := s.items.ListByRequestIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byRequest := make(map[int64][]*item.Item, len(reqs))
	for _, it := range items {
		if it.RequestID != nil {
			byRequest[*it.RequestID] = append(byRequest[*it.RequestID], it)
		}
	}

	out := make([]*WithItems, len(reqs))
	for i, r := range reqs {
		its := byRequest[r.ID]
		if its == nil {
			its = []*item.Item{}
		}
		out[i] = &WithItems{ItemRequest: r, Items: its}
	}
	return out, nil
}
