package booking

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/shareit/internal/item"
	"github.com/nekogravitycat/shareit/internal/user"
)

var testNow = time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Create(ctx context.Context, b *Booking) error {
	args := m.Called(ctx, b)
	if args.Error(0) == nil {
		b.ID = 100
	}
	return args.Error(0)
}

func (m *mockRepo) GetByID(ctx context.Context, id int64) (*Booking, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*Booking)
	return b, args.Error(1)
}

func (m *mockRepo) List(ctx context.Context, filter Filter) ([]*Booking, error) {
	args := m.Called(ctx, filter)
	list, _ := args.Get(0).([]*Booking)
	return list, args.Error(1)
}

func (m *mockRepo) Decide(ctx context.Context, id int64, status Status) (bool, error) {
	args := m.Called(ctx, id, status)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepo) HasCompletedBooking(ctx context.Context, itemID, userID int64, now time.Time) (bool, error) {
	args := m.Called(ctx, itemID, userID, now)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepo) AdjacentBookings(ctx context.Context, itemIDs []int64, now time.Time) (map[int64]item.Adjacent, error) {
	args := m.Called(ctx, itemIDs, now)
	adj, _ := args.Get(0).(map[int64]item.Adjacent)
	return adj, args.Error(1)
}

// stubItems serves a fixed catalogue. Item 10 belongs to user 2, item 11 is unavailable.
type stubItems struct {
	item.Service
}

func (stubItems) GetByID(_ context.Context, id int64) (*item.Item, error) {
	switch id {
	case 10:
		return &item.Item{ID: 10, Name: "Drill", Description: "Cordless", Available: true, OwnerID: 2}, nil
	case 11:
		return &item.Item{ID: 11, Name: "Saw", Description: "Hand saw", Available: false, OwnerID: 2}, nil
	}
	return nil, item.ErrNotFound
}

func (stubItems) CountByOwner(_ context.Context, ownerID int64) (int, error) {
	if ownerID == 2 {
		return 2, nil
	}
	return 0, nil
}

// stubUsers knows users 2 (owner), 5 (booker) and 7 (stranger).
type stubUsers struct {
	user.Service
}

func (stubUsers) GetByID(_ context.Context, id int64) (*user.User, error) {
	switch id {
	case 2, 5, 7:
		return &user.User{ID: id, Name: "User", Email: "user@example.com"}, nil
	}
	return nil, user.ErrNotFound
}

func newTestService() (*service, *mockRepo) {
	repo := &mockRepo{}
	s := NewService(repo, stubItems{}, stubUsers{}, zerolog.Nop()).(*service)
	s.now = func() time.Time { return testNow }
	return s, repo
}

func waitingBooking() *Booking {
	it := &item.Item{ID: 10, Name: "Drill", Available: true, OwnerID: 2}
	return &Booking{
		ID:       1,
		Start:    testNow.Add(24 * time.Hour),
		End:      testNow.Add(48 * time.Hour),
		ItemID:   10,
		BookerID: 5,
		Status:   StatusWaiting,
		Item:     it,
		Booker:   &user.User{ID: 5},
	}
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	tomorrow := testNow.Add(24 * time.Hour)
	dayAfter := testNow.Add(48 * time.Hour)

	t.Run("stores a waiting booking", func(t *testing.T) {
		s, repo := newTestService()
		repo.On("Create", ctx, mock.MatchedBy(func(b *Booking) bool {
			return b.ItemID == 10 && b.BookerID == 5 && b.Status == StatusWaiting
		})).Return(nil).Once()

		b, err := s.Create(ctx, 5, CreateRequest{ItemID: 10, Start: tomorrow, End: dayAfter})
		require.NoError(t, err)
		assert.Equal(t, int64(100), b.ID)
		assert.Equal(t, StatusWaiting, b.Status)
		assert.Equal(t, "Drill", b.Item.Name)
		assert.Equal(t, int64(5), b.Booker.ID)
		repo.AssertExpectations(t)
	})

	cases := []struct {
		name     string
		bookerID int64
		req      CreateRequest
		want     error
	}{
		{"missing item", 5, CreateRequest{ItemID: 99, Start: tomorrow, End: dayAfter}, item.ErrNotFound},
		{"missing booker", 42, CreateRequest{ItemID: 10, Start: tomorrow, End: dayAfter}, user.ErrNotFound},
		{"owner books own item", 2, CreateRequest{ItemID: 10, Start: tomorrow, End: dayAfter}, ErrOwnerCannotBook},
		{"unavailable item", 5, CreateRequest{ItemID: 11, Start: tomorrow, End: dayAfter}, ErrItemUnavailable},
		{"end before start", 5, CreateRequest{ItemID: 10, Start: dayAfter, End: tomorrow}, ErrInvalidDates},
		{"start in past", 5, CreateRequest{ItemID: 10, Start: testNow.Add(-time.Hour), End: dayAfter}, ErrInvalidDates},
		// checks run in order, so a missing item wins over bad dates
		{"missing item with bad dates", 5, CreateRequest{ItemID: 99, Start: dayAfter, End: tomorrow}, item.ErrNotFound},
		{"owner with unavailable item", 2, CreateRequest{ItemID: 11, Start: tomorrow, End: dayAfter}, ErrOwnerCannotBook},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, repo := newTestService()
			_, err := s.Create(ctx, tc.bookerID, tc.req)
			assert.ErrorIs(t, err, tc.want)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}

	t.Run("date error names the field", func(t *testing.T) {
		s, _ := newTestService()
		_, err := s.Create(ctx, 5, CreateRequest{ItemID: 10, Start: dayAfter, End: tomorrow})
		var dateErr *DateError
		require.ErrorAs(t, err, &dateErr)
		assert.Equal(t, "end", dateErr.Field)
	})
}

func TestApprove(t *testing.T) {
	ctx := context.Background()

	t.Run("owner approves", func(t *testing.T) {
		s, repo := newTestService()
		repo.On("GetByID", ctx, int64(1)).Return(waitingBooking(), nil).Once()
		repo.On("Decide", ctx, int64(1), StatusApproved).Return(true, nil).Once()

		b, err := s.Approve(ctx, 1, 2, true)
		require.NoError(t, err)
		assert.Equal(t, StatusApproved, b.Status)
		repo.AssertExpectations(t)
	})

	t.Run("owner rejects", func(t *testing.T) {
		s, repo := newTestService()
		repo.On("GetByID", ctx, int64(1)).Return(waitingBooking(), nil).Once()
		repo.On("Decide", ctx, int64(1), StatusRejected).Return(true, nil).Once()

		b, err := s.Approve(ctx, 1, 2, false)
		require.NoError(t, err)
		assert.Equal(t, StatusRejected, b.Status)
	})

	t.Run("booker cannot approve", func(t *testing.T) {
		s, repo := newTestService()
		repo.On("GetByID", ctx, int64(1)).Return(waitingBooking(), nil).Once()

		_, err := s.Approve(ctx, 1, 5, true)
		assert.ErrorIs(t, err, ErrNotItemOwner)
		repo.AssertNotCalled(t, "Decide", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing booking", func(t *testing.T) {
		s, repo := newTestService()
		repo.On("GetByID", ctx, int64(9)).Return(nil, ErrNotFound).Once()

		_, err := s.Approve(ctx, 9, 2, true)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("already decided", func(t *testing.T) {
		s, repo := newTestService()
		decided := waitingBooking()
		decided.Status = StatusApproved
		repo.On("GetByID", ctx, int64(1)).Return(decided, nil).Once()

		_, err := s.Approve(ctx, 1, 2, false)
		assert.ErrorIs(t, err, ErrAlreadyDecided)
		repo.AssertNotCalled(t, "Decide", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("lost a concurrent decision", func(t *testing.T) {
		s, repo := newTestService()
		repo.On("GetByID", ctx, int64(1)).Return(waitingBooking(), nil).Once()
		repo.On("Decide", ctx, int64(1), StatusApproved).Return(false, nil).Once()

		_, err := s.Approve(ctx, 1, 2, true)
		assert.ErrorIs(t, err, ErrAlreadyDecided)
	})
}

func TestGetByID(t *testing.T) {
	ctx := context.Background()

	for _, requester := range []int64{5, 2} {
		s, repo := newTestService()
		repo.On("GetByID", ctx, int64(1)).Return(waitingBooking(), nil).Once()

		b, err := s.GetByID(ctx, 1, requester)
		require.NoError(t, err)
		assert.Equal(t, int64(1), b.ID)
	}

	s, repo := newTestService()
	repo.On("GetByID", ctx, int64(1)).Return(waitingBooking(), nil).Once()
	_, err := s.GetByID(ctx, 1, 7)
	assert.ErrorIs(t, err, ErrNotAuthorized)

	_, err = s.GetByID(ctx, 1, 42)
	assert.ErrorIs(t, err, user.ErrNotFound)
}

func TestListForUser(t *testing.T) {
	ctx := context.Background()
	s, repo := newTestService()

	repo.On("List", ctx, Filter{BookerID: 5, State: StateFuture, Now: testNow}).
		Return([]*Booking{waitingBooking()}, nil).Once()
	repo.On("List", ctx, Filter{BookerID: 7, State: StateAll, Now: testNow}).
		Return(nil, nil).Once()

	list, err := s.ListForUser(ctx, 5, StateFuture)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	list, err = s.ListForUser(ctx, 7, StateAll)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	_, err = s.ListForUser(ctx, 42, StateAll)
	assert.ErrorIs(t, err, user.ErrNotFound)

	repo.AssertExpectations(t)
}

func TestListForOwner(t *testing.T) {
	ctx := context.Background()
	s, repo := newTestService()

	repo.On("List", ctx, Filter{OwnerID: 2, State: StateWaiting, Now: testNow}).
		Return([]*Booking{waitingBooking()}, nil).Once()

	list, err := s.ListForOwner(ctx, 2, StateWaiting)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = s.ListForOwner(ctx, 5, StateAll)
	assert.ErrorIs(t, err, item.ErrNoItems)

	_, err = s.ListForOwner(ctx, 42, StateAll)
	assert.ErrorIs(t, err, user.ErrNotFound)

	repo.AssertExpectations(t)
}
