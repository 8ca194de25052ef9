package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Domenick1991/travelagent/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	CreateWithCustomer(ctx context.Context, customer *domain.Customer, booking *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.Booking, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]domain.Booking, error)
	ListByFlight(ctx context.Context, flightID int64) ([]domain.Booking, error)
	ExistsForFlightDay(ctx context.Context, flightID int64, day time.Time) (bool, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	return r.db.QueryRow(ctx, `INSERT INTO bookings (customer_id, flight_id, booking_date)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`, booking.CustomerID, booking.FlightID, booking.BookingDate).
		Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)
}

// CreateWithCustomer writes the customer and the booking in one transaction.
// A booking failure leaves no customer row behind.
func (r *PGBookingRepository) CreateWithCustomer(ctx context.Context, customer *domain.Customer, booking *domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := tx.QueryRow(ctx, `INSERT INTO customers (name, email, phone_number)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`, customer.Name, customer.Email, customer.PhoneNumber).
		Scan(&customer.ID, &customer.CreatedAt, &customer.UpdatedAt); err != nil {
		return err
	}

	booking.CustomerID = customer.ID
	if err := tx.QueryRow(ctx, `INSERT INTO bookings (customer_id, flight_id, booking_date)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`, booking.CustomerID, booking.FlightID, booking.BookingDate).
		Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT id, customer_id, flight_id, booking_date, created_at, updated_at FROM bookings WHERE id=$1`, id)
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.CustomerID, &b.FlightID, &b.BookingDate, &b.CreatedAt, &b.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *PGBookingRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGBookingRepository) List(ctx context.Context) ([]domain.Booking, error) {
	return r.queryBookings(ctx, `SELECT id, customer_id, flight_id, booking_date, created_at, updated_at FROM bookings ORDER BY id`)
}

func (r *PGBookingRepository) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Booking, error) {
	return r.queryBookings(ctx, `SELECT id, customer_id, flight_id, booking_date, created_at, updated_at FROM bookings WHERE customer_id=$1 ORDER BY id`, customerID)
}

func (r *PGBookingRepository) ListByFlight(ctx context.Context, flightID int64) ([]domain.Booking, error) {
	return r.queryBookings(ctx, `SELECT id, customer_id, flight_id, booking_date, created_at, updated_at FROM bookings WHERE flight_id=$1 ORDER BY id`, flightID)
}

// ExistsForFlightDay reports whether the flight already has a booking inside
// the given UTC calendar day. day must be a UTC midnight.
func (r *PGBookingRepository) ExistsForFlightDay(ctx context.Context, flightID int64, day time.Time) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (
		SELECT 1 FROM bookings WHERE flight_id=$1 AND booking_date >= $2 AND booking_date < $3
	)`, flightID, day, day.Add(24*time.Hour)).Scan(&exists)
	return exists, err
}

func (r *PGBookingRepository) queryBookings(ctx context.Context, sql string, args ...any) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(&b.ID, &b.CustomerID, &b.FlightID, &b.BookingDate, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

var _ BookingRepository = (*PGBookingRepository)(nil)
