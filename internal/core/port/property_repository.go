package port

import (
	"context"

	"github.com/google/uuid"

	"github.com/saurav73/GrihaMate/internal/core/domain"
)

// PropertySearchFilter - простые равенства/диапазоны для поиска объектов.
// Видимость (verified+available) фильтрует use case, а не хранилище:
// ему же нужно находить и "подлечивать" рассинхронизированные записи.
type PropertySearchFilter struct {
	City        string
	District    string
	MinPrice    *int64
	MaxPrice    *int64
	MinBedrooms *int
	Type        *domain.PropertyType
	// GeohashPrefix сужает выборку по гео-ячейке (вычисляется из координат
	// запроса), пустая строка - без гео-фильтра.
	GeohashPrefix string
}

type PropertyRepositoryPort interface {
	Create(ctx context.Context, p *domain.Property) error
	Save(ctx context.Context, p *domain.Property) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Property, error)
	FindByLandlord(ctx context.Context, landlordID uuid.UUID) ([]*domain.Property, error)
	CountByLandlord(ctx context.Context, landlordID uuid.UUID) (int64, error)
	// FindAvailableVerified - все объекты, видимые seeker-ам (для fanout).
	FindAvailableVerified(ctx context.Context) ([]*domain.Property, error)
	Search(ctx context.Context, filter PropertySearchFilter) ([]*domain.Property, error)
}
