package repository

import (
	"context"

	"github.com/Domenick1991/travelagent/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// FailedCompensationRepository keeps rollback steps that failed against the
// remote services. The worker drains it.
type FailedCompensationRepository interface {
	Create(ctx context.Context, fc *domain.FailedCompensation) error
	List(ctx context.Context) ([]domain.FailedCompensation, error)
	Delete(ctx context.Context, id int64) error
}

type PGFailedCompensationRepository struct {
	db *pgxpool.Pool
}

func NewFailedCompensationRepository(db *pgxpool.Pool) FailedCompensationRepository {
	return &PGFailedCompensationRepository{db: db}
}

func (r *PGFailedCompensationRepository) Create(ctx context.Context, fc *domain.FailedCompensation) error {
	return r.db.QueryRow(ctx, `INSERT INTO failed_compensations (resource, reservation_id, trip_ref, reason)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`, fc.Resource, fc.ReservationID, fc.TripRef, fc.Reason).
		Scan(&fc.ID, &fc.CreatedAt)
}

func (r *PGFailedCompensationRepository) List(ctx context.Context) ([]domain.FailedCompensation, error) {
	rows, err := r.db.Query(ctx, `SELECT id, resource, reservation_id, trip_ref, reason, created_at FROM failed_compensations ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.FailedCompensation, 0)
	for rows.Next() {
		var fc domain.FailedCompensation
		if err := rows.Scan(&fc.ID, &fc.Resource, &fc.ReservationID, &fc.TripRef, &fc.Reason, &fc.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, fc)
	}
	return items, rows.Err()
}

func (r *PGFailedCompensationRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM failed_compensations WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

var _ FailedCompensationRepository = (*PGFailedCompensationRepository)(nil)
