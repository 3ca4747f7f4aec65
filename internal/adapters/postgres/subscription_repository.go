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

// SubscriptionRepository - хранилище подписок на доступность.
type SubscriptionRepository struct {
	pool *pgxpool.Pool
}

func NewSubscriptionRepository(pool *pgxpool.Pool) (*SubscriptionRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &SubscriptionRepository{pool: pool}, nil
}

const subscriptionColumns = `id, seeker_id, city, district, active, created_at`

func (r *SubscriptionRepository) Create(ctx context.Context, s *domain.AvailabilitySubscription) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":       "SubscriptionRepository",
		"method":          "Create",
		"subscription_id": s.ID.String(),
	})

	query := `INSERT INTO availability_subscriptions (` + subscriptionColumns + `) VALUES ($1, $2, $3, $4, $5, $6)`

	repoLogger.Debug("Executing query to create subscription.", nil)
	_, err := r.pool.Exec(ctx, query, s.ID, s.SeekerID, s.City, s.District, s.Active, s.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			repoLogger.Warn("Unique violation on subscription insert.", port.Fields{"constraint": pgErr.ConstraintName})
			return domain.ErrConflict
		}
		repoLogger.Error("Failed to create subscription", err, nil)
		return fmt.Errorf("failed to create subscription: %w", err)
	}
	return nil
}

func (r *SubscriptionRepository) Save(ctx context.Context, s *domain.AvailabilitySubscription) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":       "SubscriptionRepository",
		"method":          "Save",
		"subscription_id": s.ID.String(),
	})

	query := `UPDATE availability_subscriptions SET city = $2, district = $3, active = $4 WHERE id = $1`

	repoLogger.Debug("Executing query to update subscription.", nil)
	tag, err := r.pool.Exec(ctx, query, s.ID, s.City, s.District, s.Active)
	if err != nil {
		repoLogger.Error("Failed to update subscription", err, nil)
		return fmt.Errorf("failed to update subscription: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSubscriptionNotFound
	}
	return nil
}

func (r *SubscriptionRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.AvailabilitySubscription, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":       "SubscriptionRepository",
		"method":          "FindByID",
		"subscription_id": id.String(),
	})

	query := `SELECT ` + subscriptionColumns + ` FROM availability_subscriptions WHERE id = $1`

	repoLogger.Debug("Executing query to find subscription by ID.", nil)
	subscription, err := scanSubscription(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			repoLogger.Warn("Subscription not found by ID.", nil)
			return nil, nil
		}
		repoLogger.Error("Failed to find subscription", err, nil)
		return nil, fmt.Errorf("failed to find subscription: %w", err)
	}
	return subscription, nil
}

func (r *SubscriptionRepository) FindActiveBySeeker(ctx context.Context, seekerID uuid.UUID) ([]*domain.AvailabilitySubscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM availability_subscriptions
	          WHERE seeker_id = $1 AND active = true ORDER BY created_at DESC`
	return r.querySubscriptions(ctx, "FindActiveBySeeker", query, seekerID)
}

func (r *SubscriptionRepository) FindActiveByCity(ctx context.Context, city string) ([]*domain.AvailabilitySubscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM availability_subscriptions
	          WHERE active = true AND LOWER(city) = LOWER($1)`
	return r.querySubscriptions(ctx, "FindActiveByCity", query, city)
}

func (r *SubscriptionRepository) querySubscriptions(ctx context.Context, method, query string, args ...interface{}) ([]*domain.AvailabilitySubscription, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "SubscriptionRepository",
		"method":    method,
	})

	repoLogger.Debug("Executing query to fetch subscriptions.", nil)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		repoLogger.Error("Failed to query subscriptions", err, nil)
		return nil, fmt.Errorf("failed to query subscriptions: %w", err)
	}
	defer rows.Close()

	var out []*domain.AvailabilitySubscription
	for rows.Next() {
		subscription, err := scanSubscription(rows)
		if err != nil {
			repoLogger.Error("Failed to scan subscription row", err, nil)
			return nil, fmt.Errorf("failed to scan subscription row: %w", err)
		}
		out = append(out, subscription)
	}
	if err := rows.Err(); err != nil {
		repoLogger.Error("Row iteration failed", err, nil)
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return out, nil
}

func scanSubscription(row pgx.Row) (*domain.AvailabilitySubscription, error) {
	var s domain.AvailabilitySubscription
	err := row.Scan(&s.ID, &s.SeekerID, &s.City, &s.District, &s.Active, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
