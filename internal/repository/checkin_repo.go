package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"commons-backend/internal/models"
)

const checkInColumns = `id, tenant_id, creator_id, title, location_name, latitude, longitude,
	start_time, duration_minutes, status, visibility_scope, created_at, updated_at`

type CheckInRepo struct {
	pool *pgxpool.Pool
}

func NewCheckInRepo(pool *pgxpool.Pool) *CheckInRepo {
	return &CheckInRepo{pool: pool}
}

func scanCheckIn(row pgx.Row) (*models.CheckIn, error) {
	c := &models.CheckIn{}
	err := row.Scan(
		&c.ID, &c.TenantID, &c.CreatorID, &c.Title, &c.LocationName, &c.Latitude, &c.Longitude,
		&c.StartTime, &c.DurationMinutes, &c.Status, &c.VisibilityScope, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *CheckInRepo) Create(ctx context.Context, c *models.CheckIn) error {
	c.ID = uuid.New()
	c.Status = models.CheckInStatusActive

	query := `INSERT INTO check_ins (id, tenant_id, creator_id, title, location_name, latitude, longitude,
			start_time, duration_minutes, status, visibility_scope)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		c.ID, c.TenantID, c.CreatorID, c.Title, c.LocationName, c.Latitude, c.Longitude,
		c.StartTime, c.DurationMinutes, c.Status, c.VisibilityScope,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
}

func (r *CheckInRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.CheckIn, error) {
	query := "SELECT " + checkInColumns + " FROM check_ins WHERE id = $1"
	return scanCheckIn(r.pool.QueryRow(ctx, query, id))
}

// windowEnd is the SQL form of checkin.ExpiresAt.
const windowEnd = "start_time + make_interval(mins => duration_minutes)"

const listCandidatesQuery = "SELECT " + checkInColumns + ` FROM check_ins
		WHERE tenant_id = $1
		  AND status = 'active'
		  AND ` + windowEnd + ` > $2
		ORDER BY start_time > $2, start_time DESC
		LIMIT $3`

const markExpiredQuery = `UPDATE check_ins
		SET status = 'expired', updated_at = NOW()
		WHERE status = 'active'
		  AND ` + windowEnd + ` <= $1`

// ListCandidates returns the tenant's check-ins that are active with a window
// still open at now. Started windows come first, newest first, then future
// ones. Visibility is left to the caller.
func (r *CheckInRepo) ListCandidates(ctx context.Context, tenantID uuid.UUID, now time.Time, limit int) ([]*models.CheckIn, error) {
	rows, err := r.pool.Query(ctx, listCandidatesQuery, tenantID, now, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var checkIns []*models.CheckIn
	for rows.Next() {
		c, err := scanCheckIn(rows)
		if err != nil {
			return nil, err
		}
		checkIns = append(checkIns, c)
	}
	return checkIns, rows.Err()
}

// Cancel flips an active check-in to cancelled. It returns pgx.ErrNoRows when
// the record does not exist or is no longer active.
func (r *CheckInRepo) Cancel(ctx context.Context, id uuid.UUID) (*models.CheckIn, error) {
	query := `UPDATE check_ins
		SET status = 'cancelled', updated_at = NOW()
		WHERE id = $1 AND status = 'active'
		RETURNING ` + checkInColumns

	return scanCheckIn(r.pool.QueryRow(ctx, query, id))
}

// MarkExpired writes status = 'expired' on active rows whose window closed at
// or before now and reports how many rows changed.
func (r *CheckInRepo) MarkExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, markExpiredQuery, now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
