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

// RoomRequestRepository - хранилище стоячих запросов. Инвариант "один
// активный запрос на seeker-а" закрыт частичным уникальным индексом.
type RoomRequestRepository struct {
	pool *pgxpool.Pool
}

func NewRoomRequestRepository(pool *pgxpool.Pool) (*RoomRequestRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &RoomRequestRepository{pool: pool}, nil
}

const roomRequestColumns = `id, seeker_id, city, district, min_price, max_price, min_bedrooms, max_bedrooms, type, notes, active, created_at, updated_at`

func (r *RoomRequestRepository) Create(ctx context.Context, req *domain.RoomRequest) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":  "RoomRequestRepository",
		"method":     "Create",
		"request_id": req.ID.String(),
	})

	query := `INSERT INTO room_requests (` + roomRequestColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	repoLogger.Debug("Executing query to create room request.", nil)
	_, err := r.pool.Exec(ctx, query,
		req.ID, req.SeekerID, req.City, req.District, req.MinPrice, req.MaxPrice,
		req.MinBedrooms, req.MaxBedrooms, req.Type, req.Notes, req.Active, req.CreatedAt, req.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			repoLogger.Warn("Unique violation on room request insert.", port.Fields{"constraint": pgErr.ConstraintName})
			return domain.ErrConflict
		}
		repoLogger.Error("Failed to create room request", err, nil)
		return fmt.Errorf("failed to create room request: %w", err)
	}
	return nil
}

func (r *RoomRequestRepository) Save(ctx context.Context, req *domain.RoomRequest) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":  "RoomRequestRepository",
		"method":     "Save",
		"request_id": req.ID.String(),
	})

	query := `UPDATE room_requests
	          SET city = $2, district = $3, min_price = $4, max_price = $5, min_bedrooms = $6,
	              max_bedrooms = $7, type = $8, notes = $9, active = $10, updated_at = $11
	          WHERE id = $1`

	repoLogger.Debug("Executing query to update room request.", nil)
	tag, err := r.pool.Exec(ctx, query,
		req.ID, req.City, req.District, req.MinPrice, req.MaxPrice, req.MinBedrooms,
		req.MaxBedrooms, req.Type, req.Notes, req.Active, req.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			repoLogger.Warn("Unique violation on room request update.", port.Fields{"constraint": pgErr.ConstraintName})
			return domain.ErrConflict
		}
		repoLogger.Error("Failed to update room request", err, nil)
		return fmt.Errorf("failed to update room request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRoomRequestNotFound
	}
	return nil
}

func (r *RoomRequestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":  "RoomRequestRepository",
		"method":     "Delete",
		"request_id": id.String(),
	})

	repoLogger.Debug("Executing query to delete room request.", nil)
	_, err := r.pool.Exec(ctx, `DELETE FROM room_requests WHERE id = $1`, id)
	if err != nil {
		repoLogger.Error("Failed to delete room request", err, nil)
		return fmt.Errorf("failed to delete room request: %w", err)
	}
	return nil
}

func (r *RoomRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.RoomRequest, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":  "RoomRequestRepository",
		"method":     "FindByID",
		"request_id": id.String(),
	})

	query := `SELECT ` + roomRequestColumns + ` FROM room_requests WHERE id = $1`

	repoLogger.Debug("Executing query to find room request by ID.", nil)
	request, err := scanRoomRequest(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			repoLogger.Warn("Room request not found by ID.", nil)
			return nil, nil
		}
		repoLogger.Error("Failed to find room request", err, nil)
		return nil, fmt.Errorf("failed to find room request: %w", err)
	}
	return request, nil
}

func (r *RoomRequestRepository) FindBySeeker(ctx context.Context, seekerID uuid.UUID) ([]*domain.RoomRequest, error) {
	query := `SELECT ` + roomRequestColumns + ` FROM room_requests
	          WHERE seeker_id = $1 ORDER BY created_at DESC`
	return r.queryRoomRequests(ctx, "FindBySeeker", query, seekerID)
}

func (r *RoomRequestRepository) FindActiveBySeeker(ctx context.Context, seekerID uuid.UUID) ([]*domain.RoomRequest, error) {
	query := `SELECT ` + roomRequestColumns + ` FROM room_requests
	          WHERE seeker_id = $1 AND active = true ORDER BY created_at DESC`
	return r.queryRoomRequests(ctx, "FindActiveBySeeker", query, seekerID)
}

func (r *RoomRequestRepository) FindActive(ctx context.Context) ([]*domain.RoomRequest, error) {
	query := `SELECT ` + roomRequestColumns + ` FROM room_requests WHERE active = true`
	return r.queryRoomRequests(ctx, "FindActive", query)
}

func (r *RoomRequestRepository) queryRoomRequests(ctx context.Context, method, query string, args ...interface{}) ([]*domain.RoomRequest, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "RoomRequestRepository",
		"method":    method,
	})

	repoLogger.Debug("Executing query to fetch room requests.", nil)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		repoLogger.Error("Failed to query room requests", err, nil)
		return nil, fmt.Errorf("failed to query room requests: %w", err)
	}
	defer rows.Close()

	var out []*domain.RoomRequest
	for rows.Next() {
		request, err := scanRoomRequest(rows)
		if err != nil {
			repoLogger.Error("Failed to scan room request row", err, nil)
			return nil, fmt.Errorf("failed to scan room request row: %w", err)
		}
		out = append(out, request)
	}
	if err := rows.Err(); err != nil {
		repoLogger.Error("Row iteration failed", err, nil)
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return out, nil
}

func scanRoomRequest(row pgx.Row) (*domain.RoomRequest, error) {
	var req domain.RoomRequest
	err := row.Scan(
		&req.ID, &req.SeekerID, &req.City, &req.District, &req.MinPrice, &req.MaxPrice,
		&req.MinBedrooms, &req.MaxBedrooms, &req.Type, &req.Notes, &req.Active, &req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &req, nil
}
