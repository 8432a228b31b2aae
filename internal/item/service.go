package item

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/nekogravitycat/shareit/internal/user"
)

// BookingReader is the view of bookings the item service needs.
// The booking package implements it.
type BookingReader interface {
	// HasCompletedBooking reports whether userID has an APPROVED booking of itemID that ended before now.
	HasCompletedBooking(ctx context.Context, itemID, userID int64, now time.Time) (bool, error)
	// AdjacentBookings returns the last and next APPROVED booking around now for each item.
	AdjacentBookings(ctx context.Context, itemIDs []int64, now time.Time) (map[int64]Adjacent, error)
}

type CreateRequest struct {
	Name        string
	Description string
	Available   *bool
	RequestID   *int64
}

// UpdateRequest holds a partial update; nil fields are left unchanged.
type UpdateRequest struct {
	Name        *string
	Description *string
	Available   *bool
}

// Service defines business logic related to items and their comments.
type Service interface {
	Create(ctx context.Context, ownerID int64, req CreateRequest) (*Item, error)
	Update(ctx context.Context, ownerID, itemID int64, req UpdateRequest) (*Item, error)
	Delete(ctx context.Context, ownerID, itemID int64) error
	GetByID(ctx context.Context, itemID int64) (*Item, error)
	Get(ctx context.Context, itemID, requesterID int64) (*Details, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*Details, error)
	CountByOwner(ctx context.Context, ownerID int64) (int, error)
	Search(ctx context.Context, text string) ([]*Item, error)
	ListByRequestIDs(ctx context.Context, requestIDs []int64) ([]*Item, error)
	AddComment(ctx context.Context, itemID, authorID int64, text string) (*Comment, error)
}

type service struct {
	repo     Repository
	comments CommentRepository
	bookings BookingReader
	users    user.Service
	logger   zerolog.Logger
	now      func() time.Time
}

// NewService creates a new item Service.
func NewService(repo Repository, comments CommentRepository, bookings BookingReader, users user.Service, logger zerolog.Logger) Service {
	return &service{
		repo:     repo,
		comments: comments,
		bookings: bookings,
		users:    users,
		logger:   logger.With().Str("component", "item").Logger(),
		now:      time.Now,
	}
}

func (s *service) Create(ctx context.Context, ownerID int64, req CreateRequest) (*Item, error) {
	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrEmptyName
	}
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, ErrEmptyDescription
	}
	if req.Available == nil {
		return nil, ErrAvailableRequired
	}

	it := &Item{
		Name:        name,
		Description: description,
		Available:   *req.Available,
		OwnerID:     ownerID,
		RequestID:   req.RequestID,
	}
	if err := s.repo.Create(ctx, it); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("item_id", it.ID).Int64("owner_id", ownerID).Msg("item created")
	return it, nil
}

func (s *service) Update(ctx context.Context, ownerID, itemID int64, req UpdateRequest) (*Item, error) {
	it, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if it.OwnerID != ownerID {
		return nil, ErrNotOwner
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrEmptyName
		}
		it.Name = name
	}
	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		if description == "" {
			return nil, ErrEmptyDescription
		}
		it.Description = description
	}
	if req.Available != nil {
		it.Available = *req.Available
	}

	if err := s.repo.Update(ctx, it); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("item_id", it.ID).Msg("item updated")
	return it, nil
}

func (s *service) Delete(ctx context.Context, ownerID, itemID int64) error {
	it, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return err
	}
	if it.OwnerID != ownerID {
		return ErrNotOwner
	}

	if err := s.repo.Delete(ctx, itemID); err != nil {
		return err
	}
	s.logger.Info().Int64("item_id", itemID).Msg("item deleted")
	return nil
}

func (s *service) GetByID(ctx context.Context, itemID int64) (*Item, error) {
	return s.repo.GetByID(ctx, itemID)
}

// Get returns the item with its comments. Bookings around now are only shown to the owner.
func (s *service) Get(ctx context.Context, itemID, requesterID int64) (*Details, error) {
	it, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if _, err := s.users.GetByID(ctx, requesterID); err != nil {
		return nil, err
	}

	details, err := s.details(ctx, []*Item{it}, it.OwnerID == requesterID)
	if err != nil {
		return nil, err
	}
	return details[0], nil
}

func (s *service) ListByOwner(ctx context.Context, ownerID int64) ([]*Details, error) {
	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}

	items, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	return s.details(ctx, items, true)
}

func (s *service) CountByOwner(ctx context.Context, ownerID int64) (int, error) {
	return s.repo.CountByOwner(ctx, ownerID)
}

// Search returns available items matching text. Blank text matches nothing.
func (s *service) Search(ctx context.Context, text string) ([]*Item, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return []*Item{}, nil
	}
	return s.repo.Search(ctx, text)
}

func (s *service) ListByRequestIDs(ctx context.Context, requestIDs []int64) ([]*Item, error) {
	return s.repo.ListByRequestIDs(ctx, requestIDs)
}

// AddComment stores a review. Only a user whose approved booking of the item has ended may write one.
func (s *service) AddComment(ctx context.Context, itemID, authorID int64, text string) (*Comment, error) {
	if _, err := s.repo.GetByID(ctx, itemID); err != nil {
		return nil, err
	}
	if _, err := s.users.GetByID(ctx, authorID); err != nil {
		return nil, err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyCommentText
	}

	now := s.now()
	ok, err := s.bookings.HasCompletedBooking(ctx, itemID, authorID, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		s.logger.Warn().Int64("item_id", itemID).Int64("author_id", authorID).Msg("comment without completed booking")
		return nil, ErrCannotReview
	}

	c := &Comment{
		Text:     text,
		ItemID:   itemID,
		AuthorID: authorID,
		Created:  now,
	}
	if err := s.comments.Create(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("comment_id", c.ID).Int64("item_id", itemID).Msg("comment created")
	return c, nil
}

// details attaches comments and, when withBookings is set, last/next bookings to each item.
func (s *service) details(ctx context.Context, items []*Item, withBookings bool) ([]*Details, error) {
	ids := make([]int64, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}

	comments, err := s.comments.ListByItemIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byItem := make(map[int64][]*Comment, len(items))
	for _, c := range comments {
		byItem[c.ItemID] = append(byItem[c.ItemID], c)
	}

	var adjacent map[int64]Adjacent
	if withBookings {
		adjacent, err = s.bookings.AdjacentBookings(ctx, ids, s.now())
		if err != nil {
			return nil, err
		}
	}

	out := make([]*Details, len(items))
	for i, it := range items {
		d := &Details{Item: it, Comments: byItem[it.ID]}
		if d.Comments == nil {
			d.Comments = []*Comment{}
		}
		if adj, ok := adjacent[it.ID]; ok {
			d.LastBooking = adj.Last
			d.NextBooking = adj.Next
		}
		out[i] = d
	}
	return out, nil
}
