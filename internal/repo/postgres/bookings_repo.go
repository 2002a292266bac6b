package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kalobtand/table-reservations/internal/domain"
)

type BookingRepo interface {
	Create(ctx context.Context, in *domain.BookingRequest) (*domain.Booking, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context, limit int, status *domain.BookingStatus) ([]domain.Booking, error)
	Stats(ctx context.Context, today string) (*domain.BookingStats, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (bool, error)
}

type BookingRepoImpl struct{ pool *pgxpool.Pool }

func NewBookingRepo(pool *pgxpool.Pool) *BookingRepoImpl { return &BookingRepoImpl{pool: pool} }

const bookingCols = `id, status, name, phone, booking_date, booking_time, guests, notes, created_at`

func (r *BookingRepoImpl) Create(ctx context.Context, in *domain.BookingRequest) (*domain.Booking, error) {
	const q = `INSERT INTO bookings (
    status, name, phone, booking_date, booking_time, guests, notes
  ) VALUES ('pending',$1,$2,$3,$4,$5,$6)
  RETURNING ` + bookingCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var b domain.Booking
	err := r.pool.QueryRow(ctx, q,
		in.Name, in.Phone, in.Date, in.Time, in.Guests, in.Notes,
	).Scan(
		&b.ID, &b.Status, &b.Name, &b.Phone,
		&b.Date, &b.Time, &b.Guests, &b.Notes, &b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepoImpl) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	const q = `SELECT ` + bookingCols + ` FROM bookings WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var b domain.Booking
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&b.ID, &b.Status, &b.Name, &b.Phone,
		&b.Date, &b.Time, &b.Guests, &b.Notes, &b.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return &b, err
}

func (r *BookingRepoImpl) List(ctx context.Context, limit int, status *domain.BookingStatus) ([]domain.Booking, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	q := `SELECT ` + bookingCols + ` FROM bookings`
	args := []any{}
	if status != nil {
		q += ` WHERE status=$1`
		args = append(args, *status)
	}
	q += ` ORDER BY created_at DESC LIMIT ` + limitPlaceholder(len(args)+1)
	args = append(args, limit)

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bs := make([]domain.Booking, 0, limit)
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(
			&b.ID, &b.Status, &b.Name, &b.Phone,
			&b.Date, &b.Time, &b.Guests, &b.Notes, &b.CreatedAt,
		); err != nil {
			return nil, err
		}
		bs = append(bs, b)
	}
	return bs, rows.Err()
}

func (r *BookingRepoImpl) Stats(ctx context.Context, today string) (*domain.BookingStats, error) {
	const q = `SELECT
    count(*),
    count(*) FILTER (WHERE status='pending'),
    count(*) FILTER (WHERE status='confirmed'),
    count(*) FILTER (WHERE status='cancelled'),
    count(*) FILTER (WHERE booking_date=$1),
    coalesce(sum(guests) FILTER (WHERE booking_date=$1), 0)
  FROM bookings`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var s domain.BookingStats
	err := r.pool.QueryRow(ctx, q, today).Scan(
		&s.Total, &s.Pending, &s.Confirmed, &s.Cancelled,
		&s.TodayBookings, &s.TodayGuests,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *BookingRepoImpl) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (bool, error) {
	const q = `UPDATE bookings SET status=$2 WHERE id=$1 AND status <> $2`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	ct, err := r.pool.Exec(ctx, q, id, status)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

func limitPlaceholder(n int) string {
	if n == 1 {
		return "$1"
	}
	return "$2"
}
