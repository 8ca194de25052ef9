package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/travelagent/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TripRepository interface {
	Create(ctx context.Context, trip *domain.TripBooking) error
	GetByID(ctx context.Context, id int64) (*domain.TripBooking, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.TripBooking, error)
}

type PGTripRepository struct {
	db *pgxpool.Pool
}

func NewTripRepository(db *pgxpool.Pool) TripRepository {
	return &PGTripRepository{db: db}
}

func (r *PGTripRepository) Create(ctx context.Context, trip *domain.TripBooking) error {
	return r.db.QueryRow(ctx, `INSERT INTO trips (reference, flight_booking_id, taxi_booking_id, taxi_id, hotel_booking_id, hotel_id, agent_booking_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`,
		trip.Reference, trip.FlightBookingID, trip.TaxiBookingID, trip.TaxiID, trip.HotelBookingID, trip.HotelID, trip.AgentBookingDate).
		Scan(&trip.ID, &trip.CreatedAt)
}

func (r *PGTripRepository) GetByID(ctx context.Context, id int64) (*domain.TripBooking, error) {
	row := r.db.QueryRow(ctx, `SELECT id, reference, flight_booking_id, taxi_booking_id, taxi_id, hotel_booking_id, hotel_id, agent_booking_date, created_at FROM trips WHERE id=$1`, id)
	var t domain.TripBooking
	if err := row.Scan(&t.ID, &t.Reference, &t.FlightBookingID, &t.TaxiBookingID, &t.TaxiID, &t.HotelBookingID, &t.HotelID, &t.AgentBookingDate, &t.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *PGTripRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM trips WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGTripRepository) List(ctx context.Context) ([]domain.TripBooking, error) {
	rows, err := r.db.Query(ctx, `SELECT id, reference, flight_booking_id, taxi_booking_id, taxi_id, hotel_booking_id, hotel_id, agent_booking_date, created_at FROM trips ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trips := make([]domain.TripBooking, 0)
	for rows.Next() {
		var t domain.TripBooking
		if err := rows.Scan(&t.ID, &t.Reference, &t.FlightBookingID, &t.TaxiBookingID, &t.TaxiID, &t.HotelBookingID, &t.HotelID, &t.AgentBookingDate, &t.CreatedAt); err != nil {
			return nil, err
		}
		trips = append(trips, t)
	}
	return trips, rows.Err()
}

var _ TripRepository = (*PGTripRepository)(nil)
