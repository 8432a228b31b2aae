package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nekogravitycat/shareit/internal/item"
	"github.com/nekogravitycat/shareit/internal/user"
)

type Repository interface {
	Create(ctx context.Context, booking *Booking) error
	GetByID(ctx context.Context, id int64) (*Booking, error)
	// List returns bookings matching the filter, newest start first.
	List(ctx context.Context, filter Filter) ([]*Booking, error)
	// Decide moves a booking from WAITING to status. It reports false when the
	// booking was no longer WAITING.
	Decide(ctx context.Context, id int64, status Status) (bool, error)

	item.BookingReader
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

func selectBookings() squirrel.SelectBuilder {
	return psql.Select(
		"b.id", "b.start_date", "b.end_date", "b.status",
		"i.id", "i.name", "i.description", "i.is_available", "i.owner_id", "i.request_id",
		"u.id", "u.name", "u.email",
	).
		From("public.bookings b").
		Join("public.items i ON b.item_id = i.id").
		Join("public.users u ON b.booker_id = u.id")
}

func scanBooking(row pgx.Row) (*Booking, error) {
	var (
		b  Booking
		it item.Item
		u  user.User
	)
	if err := row.Scan(
		&b.ID, &b.Start, &b.End, &b.Status,
		&it.ID, &it.Name, &it.Description, &it.Available, &it.OwnerID, &it.RequestID,
		&u.ID, &u.Name, &u.Email,
	); err != nil {
		return nil, err
	}
	b.ItemID = it.ID
	b.BookerID = u.ID
	b.Item = &it
	b.Booker = &u
	return &b, nil
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	query, args, err := psql.Insert("public.bookings").
		Columns("start_date", "end_date", "item_id", "booker_id", "status").
		Values(b.Start, b.End, b.ItemID, b.BookerID, b.Status).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&b.ID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.CheckViolation {
			return ErrInvalidDates.WithDetail("end must be after start", err)
		}
		return fmt.Errorf("create booking failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*Booking, error) {
	query, args, err := selectBookings().
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	b, err := scanBooking(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, error) {
	query := selectBookings()

	if filter.BookerID != 0 {
		query = query.Where(squirrel.Eq{"b.booker_id": filter.BookerID})
	}
	if filter.OwnerID != 0 {
		query = query.Where(squirrel.Eq{"i.owner_id": filter.OwnerID})
	}
	if cond := filter.State.Condition(filter.Now); cond != nil {
		query = query.Where(cond)
	}

	sql, args, err := query.OrderBy("b.start_date DESC", "b.id DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var result []*Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		result = append(result, b)
	}
	return result, rows.Err()
}

func (r *pgxRepository) Decide(ctx context.Context, id int64, status Status) (bool, error) {
	query, args, err := psql.Update("public.bookings").
		Set("status", status).
		Where(squirrel.Eq{"id": id, "status": StatusWaiting}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build decide booking query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("decide booking failed: %w", err)
	}
	return ct.RowsAffected() == 1, nil
}

func (r *pgxRepository) HasCompletedBooking(ctx context.Context, itemID, userID int64, now time.Time) (bool, error) {
	query, args, err := psql.Select("count(*) > 0").
		From("public.bookings").
		Where(squirrel.Eq{"item_id": itemID, "booker_id": userID, "status": StatusApproved}).
		Where(squirrel.Lt{"end_date": now}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build completed booking query failed: %w", err)
	}

	var ok bool
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&ok); err != nil {
		return false, fmt.Errorf("check completed booking failed: %w", err)
	}
	return ok, nil
}

// AdjacentBookings picks, per item, the approved booking that ended last and the one that starts next.
func (r *pgxRepository) AdjacentBookings(ctx context.Context, itemIDs []int64, now time.Time) (map[int64]item.Adjacent, error) {
	out := make(map[int64]item.Adjacent, len(itemIDs))
	if len(itemIDs) == 0 {
		return out, nil
	}

	last, err := r.firstPerItem(ctx, psql.Select().
		Options("DISTINCT ON (item_id)").
		Columns("id", "item_id", "booker_id", "start_date", "end_date").
		From("public.bookings").
		Where(squirrel.Eq{"item_id": itemIDs, "status": StatusApproved}).
		Where(squirrel.LtOrEq{"end_date": now}).
		OrderBy("item_id", "end_date DESC"))
	if err != nil {
		return nil, err
	}

	next, err := r.firstPerItem(ctx, psql.Select().
		Options("DISTINCT ON (item_id)").
		Columns("id", "item_id", "booker_id", "start_date", "end_date").
		From("public.bookings").
		Where(squirrel.Eq{"item_id": itemIDs, "status": StatusApproved}).
		Where(squirrel.Gt{"start_date": now}).
		OrderBy("item_id", "start_date ASC"))
	if err != nil {
		return nil, err
	}

	for id, b := range last {
		adj := out[id]
		adj.Last = b
		out[id] = adj
	}
	for id, b := range next {
		adj := out[id]
		adj.Next = b
		out[id] = adj
	}
	return out, nil
}

func (r *pgxRepository) firstPerItem(ctx context.Context, b squirrel.SelectBuilder) (map[int64]*item.BookingBrief, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build adjacent bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("adjacent bookings failed: %w", err)
	}
	defer rows.Close()

	out := map[int64]*item.BookingBrief{}
	for rows.Next() {
		var (
			brief  item.BookingBrief
			itemID int64
		)
		if err := rows.Scan(&brief.ID, &itemID, &brief.BookerID, &brief.Start, &brief.End); err != nil {
			return nil, fmt.Errorf("scan adjacent booking failed: %w", err)
		}
		out[itemID] = &brief
	}
	return out, rows.Err()
}
