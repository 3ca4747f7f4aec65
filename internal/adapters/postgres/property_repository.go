package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mmcloughlin/geohash"

	"github.com/saurav73/GrihaMate/internal/contextkeys"
	"github.com/saurav73/GrihaMate/internal/core/domain"
	"github.com/saurav73/GrihaMate/internal/core/port"
)

// Точность geohash для гео-поиска: 6 символов - ячейка ~1.2x0.6 км,
// достаточно для поиска "рядом" внутри города.
const geohashPrecision = 6

// PropertyRepository - реализация PropertyRepositoryPort для PostgreSQL.
type PropertyRepository struct {
	pool *pgxpool.Pool
}

func NewPropertyRepository(pool *pgxpool.Pool) (*PropertyRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PropertyRepository{pool: pool}, nil
}

const propertyColumns = `id, landlord_id, title, description, address, city, district, province,
	latitude, longitude, geohash, price, bedrooms, bathrooms, area, type, status, verified,
	rented_at, created_at, updated_at`

// Create вставляет объект; geohash вычисляется здесь из координат.
func (r *PropertyRepository) Create(ctx context.Context, p *domain.Property) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":   "PropertyRepository",
		"method":      "Create",
		"property_id": p.ID.String(),
	})

	p.Geohash = encodeGeohash(p.Latitude, p.Longitude)

	query := `INSERT INTO properties (` + propertyColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`

	repoLogger.Debug("Executing query to create property.", nil)
	_, err := r.pool.Exec(ctx, query,
		p.ID, p.LandlordID, p.Title, p.Description, p.Address, p.City, p.District, p.Province,
		p.Latitude, p.Longitude, p.Geohash, p.Price, p.Bedrooms, p.Bathrooms, p.Area,
		p.Type, p.Status, p.Verified, p.RentedAt, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		repoLogger.Error("Failed to create property", err, nil)
		return fmt.Errorf("failed to create property: %w", err)
	}
	return nil
}

func (r *PropertyRepository) Save(ctx context.Context, p *domain.Property) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":   "PropertyRepository",
		"method":      "Save",
		"property_id": p.ID.String(),
	})

	p.Geohash = encodeGeohash(p.Latitude, p.Longitude)

	query := `UPDATE properties
	          SET title = $2, description = $3, address = $4, city = $5, district = $6,
	              province = $7, latitude = $8, longitude = $9, geohash = $10, price = $11,
	              bedrooms = $12, bathrooms = $13, area = $14, type = $15, status = $16,
	              verified = $17, rented_at = $18, updated_at = $19
	          WHERE id = $1`

	repoLogger.Debug("Executing query to update property.", nil)
	tag, err := r.pool.Exec(ctx, query,
		p.ID, p.Title, p.Description, p.Address, p.City, p.District, p.Province,
		p.Latitude, p.Longitude, p.Geohash, p.Price, p.Bedrooms, p.Bathrooms, p.Area,
		p.Type, p.Status, p.Verified, p.RentedAt, p.UpdatedAt,
	)
	if err != nil {
		repoLogger.Error("Failed to update property", err, nil)
		return fmt.Errorf("failed to update property: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPropertyNotFound
	}
	return nil
}

func (r *PropertyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":   "PropertyRepository",
		"method":      "Delete",
		"property_id": id.String(),
	})

	repoLogger.Debug("Executing query to delete property.", nil)
	_, err := r.pool.Exec(ctx, `DELETE FROM properties WHERE id = $1`, id)
	if err != nil {
		repoLogger.Error("Failed to delete property", err, nil)
		return fmt.Errorf("failed to delete property: %w", err)
	}
	return nil
}

func (r *PropertyRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":   "PropertyRepository",
		"method":      "FindByID",
		"property_id": id.String(),
	})

	query := `SELECT ` + propertyColumns + ` FROM properties p WHERE id = $1`

	repoLogger.Debug("Executing query to find property by ID.", nil)
	property, err := scanProperty(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			repoLogger.Warn("Property not found by ID.", nil)
			return nil, nil
		}
		repoLogger.Error("Failed to find property by ID", err, nil)
		return nil, fmt.Errorf("failed to find property by id: %w", err)
	}
	return property, nil
}

func (r *PropertyRepository) FindByLandlord(ctx context.Context, landlordID uuid.UUID) ([]*domain.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties p WHERE landlord_id = $1 ORDER BY created_at DESC`
	return r.queryProperties(ctx, "FindByLandlord", query, landlordID)
}

func (r *PropertyRepository) CountByLandlord(ctx context.Context, landlordID uuid.UUID) (int64, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":   "PropertyRepository",
		"method":      "CountByLandlord",
		"landlord_id": landlordID.String(),
	})

	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM properties WHERE landlord_id = $1`, landlordID).Scan(&count)
	if err != nil {
		repoLogger.Error("Failed to count properties", err, nil)
		return 0, fmt.Errorf("failed to count properties: %w", err)
	}
	return count, nil
}

func (r *PropertyRepository) FindAvailableVerified(ctx context.Context) ([]*domain.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties p
	          WHERE verified = true AND status = 'available' ORDER BY created_at DESC`
	return r.queryProperties(ctx, "FindAvailableVerified", query)
}

// Search выбирает кандидатов по фильтрам; видимость и самолечение статусов
// остаются за use case-ом.
func (r *PropertyRepository) Search(ctx context.Context, filter port.PropertySearchFilter) ([]*domain.Property, error) {
	whereClause, args := applyFilters(filter)

	query := fmt.Sprintf(
		`SELECT `+propertyColumns+` FROM properties p %s ORDER BY p.created_at DESC`,
		whereClause,
	)
	return r.queryProperties(ctx, "Search", query, args...)
}

func (r *PropertyRepository) queryProperties(ctx context.Context, method, query string, args ...interface{}) ([]*domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "PropertyRepository",
		"method":    method,
	})

	repoLogger.Debug("Executing query to fetch properties.", nil)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		repoLogger.Error("Failed to query properties", err, nil)
		return nil, fmt.Errorf("failed to query properties: %w", err)
	}
	defer rows.Close()

	var out []*domain.Property
	for rows.Next() {
		property, err := scanProperty(rows)
		if err != nil {
			repoLogger.Error("Failed to scan property row", err, nil)
			return nil, fmt.Errorf("failed to scan property row: %w", err)
		}
		out = append(out, property)
	}
	if err := rows.Err(); err != nil {
		repoLogger.Error("Row iteration failed", err, nil)
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return out, nil
}

func scanProperty(row pgx.Row) (*domain.Property, error) {
	var p domain.Property
	err := row.Scan(
		&p.ID, &p.LandlordID, &p.Title, &p.Description, &p.Address, &p.City, &p.District, &p.Province,
		&p.Latitude, &p.Longitude, &p.Geohash, &p.Price, &p.Bedrooms, &p.Bathrooms, &p.Area,
		&p.Type, &p.Status, &p.Verified, &p.RentedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func encodeGeohash(lat, lon *float64) string {
	if lat == nil || lon == nil {
		return ""
	}
	return geohash.EncodeWithPrecision(*lat, *lon, geohashPrecision)
}
