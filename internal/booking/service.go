package booking

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/nekogravitycat/shareit/internal/item"
	"github.com/nekogravitycat/shareit/internal/metrics"
	"github.com/nekogravitycat/shareit/internal/user"
)

type CreateRequest struct {
	ItemID int64
	Start  time.Time
	End    time.Time
}

type Service interface {
	Create(ctx context.Context, bookerID int64, req CreateRequest) (*Booking, error)
	// Approve records the owner's decision on a WAITING booking.
	Approve(ctx context.Context, bookingID, ownerID int64, approved bool) (*Booking, error)
	GetByID(ctx context.Context, bookingID, requesterID int64) (*Booking, error)
	ListForUser(ctx context.Context, userID int64, state State) ([]*Booking, error)
	ListForOwner(ctx context.Context, ownerID int64, state State) ([]*Booking, error)
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
		logger: logger.With().Str("component", "booking").Logger(),
		now:    time.Now,
	}
}

func (s *service) Create(ctx context.Context, bookerID int64, req CreateRequest) (*Booking, error) {
	// 1. Item
	it, err := s.items.GetByID(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}

	// 2. Booker
	booker, err := s.users.GetByID(ctx, bookerID)
	if err != nil {
		return nil, err
	}

	// 3. Ownership and availability
	if it.OwnerID == bookerID {
		return nil, ErrOwnerCannotBook
	}
	if !it.Available {
		return nil, ErrItemUnavailable
	}

	// 4. Dates
	if err := ValidateDates(req.Start, req.End, s.now()); err != nil {
		var dateErr *DateError
		if errors.As(err, &dateErr) {
			return nil, ErrInvalidDates.WithDetail(dateErr.Error(), dateErr)
		}
		return nil, err
	}

	b := &Booking{
		Start:    req.Start,
		End:      req.End,
		ItemID:   it.ID,
		BookerID: booker.ID,
		Status:   StatusWaiting,
		Item:     it,
		Booker:   booker,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	metrics.IncBookingStatus(string(b.Status))
	s.logger.Info().Int64("booking_id", b.ID).Int64("item_id", it.ID).Int64("booker_id", bookerID).Msg("booking created")
	return b, nil
}

func (s *service) Approve(ctx context.Context, bookingID, ownerID int64, approved bool) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Item.OwnerID != ownerID {
		return nil, ErrNotItemOwner
	}
	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}

	next := StatusRejected
	if approved {
		next = StatusApproved
	}
	if !b.Status.CanTransitionTo(next) {
		return nil, ErrAlreadyDecided
	}

	ok, err := s.repo.Decide(ctx, b.ID, next)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Someone else decided between the read and the update.
		return nil, ErrAlreadyDecided
	}
	b.Status = next

	metrics.IncBookingStatus(string(next))
	s.logger.Info().Int64("booking_id", b.ID).Str("status", string(next)).Msg("booking decided")
	return b, nil
}

func (s *service) GetByID(ctx context.Context, bookingID, requesterID int64) (*Booking, error) {
	if _, err := s.users.GetByID(ctx, requesterID); err != nil {
		return nil, err
	}

	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.BookerID != requesterID && b.Item.OwnerID != requesterID {
		return nil, ErrNotAuthorized
	}
	return b, nil
}

func (s *service) ListForUser(ctx context.Context, userID int64, state State) ([]*Booking, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.list(ctx, Filter{BookerID: userID, State: state, Now: s.now()})
}

func (s *service) ListForOwner(ctx context.Context, ownerID int64, state State) ([]*Booking, error) {
	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}

	n, err := s.items.CountByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, item.ErrNoItems
	}
	return s.list(ctx, Filter{OwnerID: ownerID, State: state, Now: s.now()})
}

func (s *service) list(ctx context.Context, filter Filter) ([]*Booking, error) {
	list, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []*Booking{}
	}
	return list, nil
}
