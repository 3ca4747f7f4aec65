package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/saurav73/GrihaMate/internal/contextkeys"
	"github.com/saurav73/GrihaMate/internal/core/domain"
	"github.com/saurav73/GrihaMate/internal/core/port"
)

// PropertyRequestRepository - реализация PropertyRequestRepositoryPort.
// Инвариант "одна активная заявка на пару seeker+property" дублируется
// частичным уникальным индексом, гонка на вставке приходит сюда как 23505.
type PropertyRequestRepository struct {
	pool *pgxpool.Pool
}

func NewPropertyRequestRepository(pool *pgxpool.Pool) (*PropertyRequestRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PropertyRequestRepository{pool: pool}, nil
}

const requestColumns = `id, seeker_id, property_id, message, status, paid_at, created_at, updated_at`

func (r *PropertyRequestRepository) Create(ctx context.Context, req *domain.PropertyRequest) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":  "PropertyRequestRepository",
		"method":     "Create",
		"request_id": req.ID.String(),
	})

	query := `INSERT INTO property_requests (` + requestColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	repoLogger.Debug("Executing query to create property request.", nil)
	_, err := r.pool.Exec(ctx, query,
		req.ID, req.SeekerID, req.PropertyID, req.Message, req.Status, req.PaidAt, req.CreatedAt, req.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			repoLogger.Warn("Unique violation on request insert.", port.Fields{"constraint": pgErr.ConstraintName})
			return domain.ErrConflict
		}
		repoLogger.Error("Failed to create property request", err, nil)
		return fmt.Errorf("failed to create property request: %w", err)
	}
	return nil
}

func (r *PropertyRequestRepository) Save(ctx context.Context, req *domain.PropertyRequest) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":  "PropertyRequestRepository",
		"method":     "Save",
		"request_id": req.ID.String(),
	})

	query := `UPDATE property_requests SET message = $2, status = $3, paid_at = $4, updated_at = $5 WHERE id = $1`

	repoLogger.Debug("Executing query to update property request.", nil)
	tag, err := r.pool.Exec(ctx, query, req.ID, req.Message, req.Status, req.PaidAt, req.UpdatedAt)
	if err != nil {
		repoLogger.Error("Failed to update property request", err, nil)
		return fmt.Errorf("failed to update property request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRequestNotFound
	}
	return nil
}

func (r *PropertyRequestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":  "PropertyRequestRepository",
		"method":     "Delete",
		"request_id": id.String(),
	})

	repoLogger.Debug("Executing query to delete property request.", nil)
	_, err := r.pool.Exec(ctx, `DELETE FROM property_requests WHERE id = $1`, id)
	if err != nil {
		repoLogger.Error("Failed to delete property request", err, nil)
		return fmt.Errorf("failed to delete property request: %w", err)
	}
	return nil
}

func (r *PropertyRequestRepository) DeleteRejectedBySeeker(ctx context.Context, seekerID uuid.UUID) (int64, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "PropertyRequestRepository",
		"method":    "DeleteRejectedBySeeker",
		"seeker_id": seekerID.String(),
	})

	repoLogger.Debug("Executing query to purge rejected requests.", nil)
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM property_requests WHERE seeker_id = $1 AND status = 'rejected'`, seekerID)
	if err != nil {
		repoLogger.Error("Failed to purge rejected requests", err, nil)
		return 0, fmt.Errorf("failed to purge rejected requests: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *PropertyRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.PropertyRequest, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":  "PropertyRequestRepository",
		"method":     "FindByID",
		"request_id": id.String(),
	})

	query := `SELECT ` + requestColumns + ` FROM property_requests WHERE id = $1`

	repoLogger.Debug("Executing query to find property request by ID.", nil)
	request, err := scanRequest(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			repoLogger.Warn("Property request not found by ID.", nil)
			return nil, nil
		}
		repoLogger.Error("Failed to find property request", err, nil)
		return nil, fmt.Errorf("failed to find property request: %w", err)
	}
	return request, nil
}

func (r *PropertyRequestRepository) FindBySeeker(ctx context.Context, seekerID uuid.UUID) ([]*domain.PropertyRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM property_requests
	          WHERE seeker_id = $1 ORDER BY created_at DESC`
	return r.queryRequests(ctx, "FindBySeeker", query, seekerID)
}

func (r *PropertyRequestRepository) FindByLandlord(ctx context.Context, landlordID uuid.UUID) ([]*domain.PropertyRequest, error) {
	query := `SELECT r.id, r.seeker_id, r.property_id, r.message, r.status, r.paid_at, r.created_at, r.updated_at
	          FROM property_requests r
	          JOIN properties p ON p.id = r.property_id
	          WHERE p.landlord_id = $1
	          ORDER BY r.created_at DESC`
	return r.queryRequests(ctx, "FindByLandlord", query, landlordID)
}

func (r *PropertyRequestRepository) FindByProperty(ctx context.Context, propertyID uuid.UUID) ([]*domain.PropertyRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM property_requests
	          WHERE property_id = $1 ORDER BY created_at DESC`
	return r.queryRequests(ctx, "FindByProperty", query, propertyID)
}

func (r *PropertyRequestRepository) FindBySeekerAndProperty(ctx context.Context, seekerID, propertyID uuid.UUID) ([]*domain.PropertyRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM property_requests
	          WHERE seeker_id = $1 AND property_id = $2 ORDER BY created_at DESC`
	return r.queryRequests(ctx, "FindBySeekerAndProperty", query, seekerID, propertyID)
}

func (r *PropertyRequestRepository) queryRequests(ctx context.Context, method, query string, args ...interface{}) ([]*domain.PropertyRequest, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "PropertyRequestRepository",
		"method":    method,
	})

	repoLogger.Debug("Executing query to fetch property requests.", nil)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		repoLogger.Error("Failed to query property requests", err, nil)
		return nil, fmt.Errorf("failed to query property requests: %w", err)
	}
	defer rows.Close()

	var out []*domain.PropertyRequest
	for rows.Next() {
		request, err := scanRequest(rows)
		if err != nil {
			repoLogger.Error("Failed to scan request row", err, nil)
			return nil, fmt.Errorf("failed to scan request row: %w", err)
		}
		out = append(out, request)
	}
	if err := rows.Err(); err != nil {
		repoLogger.Error("Row iteration failed", err, nil)
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return out, nil
}

func scanRequest(row pgx.Row) (*domain.PropertyRequest, error) {
	var req domain.PropertyRequest
	err := row.Scan(
		&req.ID, &req.SeekerID, &req.PropertyID, &req.Message, &req.Status, &req.PaidAt, &req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &req, nil
}
