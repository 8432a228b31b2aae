package item

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/shareit/internal/user"
)

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

type memoryItems struct {
	items  map[int64]*Item
	nextID int64
}

func (m *memoryItems) Create(_ context.Context, it *Item) error {
	m.nextID++
	it.ID = m.nextID
	cp := *it
	m.items[it.ID] = &cp
	return nil
}

func (m *memoryItems) GetByID(_ context.Context, id int64) (*Item, error) {
	it, ok := m.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *it
	return &cp, nil
}

func (m *memoryItems) ListByOwner(_ context.Context, ownerID int64) ([]*Item, error) {
	var out []*Item
	for id := int64(1); id <= m.nextID; id++ {
		if it, ok := m.items[id]; ok && it.OwnerID == ownerID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (m *memoryItems) CountByOwner(ctx context.Context, ownerID int64) (int, error) {
	items, _ := m.ListByOwner(ctx, ownerID)
	return len(items), nil
}

func (m *memoryItems) ListByRequestIDs(_ context.Context, ids []int64) ([]*Item, error) {
	var out []*Item
	for _, it := range m.items {
		for _, id := range ids {
			if it.RequestID != nil && *it.RequestID == id {
				out = append(out, it)
			}
		}
	}
	return out, nil
}

func (m *memoryItems) Search(_ context.Context, text string) ([]*Item, error) {
	text = strings.ToLower(text)
	var out []*Item
	for id := int64(1); id <= m.nextID; id++ {
		it, ok := m.items[id]
		if !ok || !it.Available {
			continue
		}
		if strings.Contains(strings.ToLower(it.Name), text) || strings.Contains(strings.ToLower(it.Description), text) {
			out = append(out, it)
		}
	}
	return out, nil
}

func (m *memoryItems) Update(_ context.Context, it *Item) error {
	cp := *it
	m.items[it.ID] = &cp
	return nil
}

func (m *memoryItems) Delete(_ context.Context, id int64) error {
	delete(m.items, id)
	return nil
}

type memoryComments struct {
	comments []*Comment
	names    map[int64]string
}

func (m *memoryComments) Create(_ context.Context, c *Comment) error {
	c.ID = int64(len(m.comments) + 1)
	c.AuthorName = m.names[c.AuthorID]
	m.comments = append(m.comments, c)
	return nil
}

func (m *memoryComments) ListByItemIDs(_ context.Context, ids []int64) ([]*Comment, error) {
	var out []*Comment
	for _, c := range m.comments {
		for _, id := range ids {
			if c.ItemID == id {
				out = append(out, c)
			}
		}
	}
	return out, nil
}

type mockBookings struct {
	mock.Mock
}

func (m *mockBookings) HasCompletedBooking(ctx context.Context, itemID, userID int64, now time.Time) (bool, error) {
	args := m.Called(ctx, itemID, userID, now)
	return args.Bool(0), args.Error(1)
}

func (m *mockBookings) AdjacentBookings(ctx context.Context, itemIDs []int64, now time.Time) (map[int64]Adjacent, error) {
	args := m.Called(ctx, itemIDs, now)
	adj, _ := args.Get(0).(map[int64]Adjacent)
	return adj, args.Error(1)
}

// stubUsers knows users 1 (owner), 2 (booker) and 3 (stranger).
type stubUsers struct {
	user.Service
}

func (stubUsers) GetByID(_ context.Context, id int64) (*user.User, error) {
	switch id {
	case 1:
		return &user.User{ID: 1, Name: "Owner", Email: "owner@example.com"}, nil
	case 2:
		return &user.User{ID: 2, Name: "Booker", Email: "booker@example.com"}, nil
	case 3:
		return &user.User{ID: 3, Name: "Stranger", Email: "stranger@example.com"}, nil
	}
	return nil, user.ErrNotFound
}

type fixture struct {
	svc      Service
	items    *memoryItems
	comments *memoryComments
	bookings *mockBookings
}

func newFixture() *fixture {
	f := &fixture{
		items:    &memoryItems{items: map[int64]*Item{}},
		comments: &memoryComments{names: map[int64]string{1: "Owner", 2: "Booker", 3: "Stranger"}},
		bookings: &mockBookings{},
	}
	s := NewService(f.items, f.comments, f.bookings, stubUsers{}, zerolog.Nop()).(*service)
	s.now = func() time.Time { return testNow }
	f.svc = s
	return f
}

func boolPtr(b bool) *bool { return &b }
func strPtr(s string) *string { return &s }
func int64Ptr(v int64) *int64 { return &v }

func (f *fixture) drill(t *testing.T) *Item {
	t.Helper()
	it, err := f.svc.Create(context.Background(), 1, CreateRequest{
		Name:        "Drill",
		Description: "Cordless drill",
		Available:   boolPtr(true),
	})
	require.NoError(t, err)
	return it
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("stores item for owner", func(t *testing.T) {
		f := newFixture()
		it, err := f.svc.Create(ctx, 1, CreateRequest{
			Name:        " Drill ",
			Description: "Cordless drill",
			Available:   boolPtr(true),
			RequestID:   int64Ptr(4),
		})
		require.NoError(t, err)
		assert.Equal(t, "Drill", it.Name)
		assert.Equal(t, int64(1), it.OwnerID)
		assert.Equal(t, int64(4), *it.RequestID)
	})

	t.Run("unknown owner", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.Create(ctx, 99, CreateRequest{Name: "A", Description: "B", Available: boolPtr(true)})
		assert.ErrorIs(t, err, user.ErrNotFound)
		assert.Empty(t, f.items.items)
	})

	t.Run("missing fields", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.Create(ctx, 1, CreateRequest{Name: " ", Description: "B", Available: boolPtr(true)})
		assert.ErrorIs(t, err, ErrEmptyName)
		_, err = f.svc.Create(ctx, 1, CreateRequest{Name: "A", Description: "", Available: boolPtr(true)})
		assert.ErrorIs(t, err, ErrEmptyDescription)
		_, err = f.svc.Create(ctx, 1, CreateRequest{Name: "A", Description: "B"})
		assert.ErrorIs(t, err, ErrAvailableRequired)
	})
}

func TestUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	drill := f.drill(t)

	t.Run("partial update by owner", func(t *testing.T) {
		it, err := f.svc.Update(ctx, 1, drill.ID, UpdateRequest{Available: boolPtr(false)})
		require.NoError(t, err)
		assert.False(t, it.Available)
		assert.Equal(t, "Drill", it.Name)
	})

	t.Run("non owner rejected", func(t *testing.T) {
		_, err := f.svc.Update(ctx, 2, drill.ID, UpdateRequest{Name: strPtr("Mine")})
		assert.ErrorIs(t, err, ErrNotOwner)
		assert.ErrorIs(t, f.svc.Delete(ctx, 2, drill.ID), ErrNotOwner)
	})

	t.Run("blank name rejected", func(t *testing.T) {
		_, err := f.svc.Update(ctx, 1, drill.ID, UpdateRequest{Name: strPtr("  ")})
		assert.ErrorIs(t, err, ErrEmptyName)
	})

	t.Run("delete then missing", func(t *testing.T) {
		require.NoError(t, f.svc.Delete(ctx, 1, drill.ID))
		_, err := f.svc.Update(ctx, 1, drill.ID, UpdateRequest{})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestGetShowsBookingsOnlyToOwner(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	drill := f.drill(t)

	last := &BookingBrief{ID: 7, BookerID: 2, Start: testNow.Add(-48 * time.Hour), End: testNow.Add(-24 * time.Hour)}
	next := &BookingBrief{ID: 8, BookerID: 2, Start: testNow.Add(24 * time.Hour), End: testNow.Add(48 * time.Hour)}
	f.bookings.On("AdjacentBookings", ctx, []int64{drill.ID}, testNow).
		Return(map[int64]Adjacent{drill.ID: {Last: last, Next: next}}, nil).Once()

	owned, err := f.svc.Get(ctx, drill.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, last, owned.LastBooking)
	assert.Equal(t, next, owned.NextBooking)
	assert.NotNil(t, owned.Comments)

	other, err := f.svc.Get(ctx, drill.ID, 2)
	require.NoError(t, err)
	assert.Nil(t, other.LastBooking)
	assert.Nil(t, other.NextBooking)

	_, err = f.svc.Get(ctx, 404, 1)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = f.svc.Get(ctx, drill.ID, 99)
	assert.ErrorIs(t, err, user.ErrNotFound)

	f.bookings.AssertExpectations(t)
}

func TestListByOwner(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	_, err := f.svc.ListByOwner(ctx, 3)
	assert.ErrorIs(t, err, ErrNoItems)

	_, err = f.svc.ListByOwner(ctx, 99)
	assert.ErrorIs(t, err, user.ErrNotFound)

	drill := f.drill(t)
	f.bookings.On("AdjacentBookings", ctx, []int64{drill.ID}, testNow).Return(map[int64]Adjacent{}, nil).Once()

	list, err := f.svc.ListByOwner(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, drill.ID, list[0].ID)
	assert.Nil(t, list[0].LastBooking)
}

func TestSearch(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.drill(t)
	_, err := f.svc.Create(ctx, 1, CreateRequest{Name: "Saw", Description: "Hand saw", Available: boolPtr(false)})
	require.NoError(t, err)

	found, err := f.svc.Search(ctx, "DRILL")
	require.NoError(t, err)
	assert.Len(t, found, 1)

	found, err = f.svc.Search(ctx, "saw")
	require.NoError(t, err)
	assert.Empty(t, found, "unavailable items are not searchable")

	found, err = f.svc.Search(ctx, "   ")
	require.NoError(t, err)
	assert.NotNil(t, found)
	assert.Empty(t, found)
}

func TestAddComment(t *testing.T) {
	ctx := context.Background()

	t.Run("after a completed booking", func(t *testing.T) {
		f := newFixture()
		drill := f.drill(t)
		f.bookings.On("HasCompletedBooking", ctx, drill.ID, int64(2), testNow).Return(true, nil).Once()

		c, err := f.svc.AddComment(ctx, drill.ID, 2, " Great drill ")
		require.NoError(t, err)
		assert.Equal(t, "Great drill", c.Text)
		assert.Equal(t, "Booker", c.AuthorName)
		assert.Equal(t, testNow, c.Created)
		f.bookings.AssertExpectations(t)
	})

	t.Run("without a completed booking", func(t *testing.T) {
		f := newFixture()
		drill := f.drill(t)
		f.bookings.On("HasCompletedBooking", ctx, drill.ID, int64(3), testNow).Return(false, nil).Once()

		_, err := f.svc.AddComment(ctx, drill.ID, 3, "Nice")
		assert.ErrorIs(t, err, ErrCannotReview)
		assert.Empty(t, f.comments.comments)
	})

	t.Run("missing item or author", func(t *testing.T) {
		f := newFixture()
		drill := f.drill(t)

		_, err := f.svc.AddComment(ctx, 404, 2, "Nice")
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = f.svc.AddComment(ctx, drill.ID, 99, "Nice")
		assert.ErrorIs(t, err, user.ErrNotFound)
		_, err = f.svc.AddComment(ctx, drill.ID, 2, " ")
		assert.ErrorIs(t, err, ErrEmptyCommentText)
		f.bookings.AssertNotCalled(t, "HasCompletedBooking", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
