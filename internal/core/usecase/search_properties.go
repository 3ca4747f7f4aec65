package usecase

import (
	"context"
	"fmt"

	"github.com/saurav73/GrihaMate/internal/contextkeys"
	"github.com/saurav73/GrihaMate/internal/core/domain"
	"github.com/saurav73/GrihaMate/internal/core/port"
)

// SearchPropertiesUseCase - публичный поиск. Возвращает только verified +
// available объекты и попутно чинит рассинхронизированные статусы: объект,
// числящийся AVAILABLE при живой accepted/paid заявке, переводится в RENTED
// и из выдачи исключается.
type SearchPropertiesUseCase struct {
	propertyRepo port.PropertyRepositoryPort
	requestRepo  port.PropertyRequestRepositoryPort
	clock        port.ClockPort
}

func NewSearchPropertiesUseCase(propertyRepo port.PropertyRepositoryPort, requestRepo port.PropertyRequestRepositoryPort, clock port.ClockPort) *SearchPropertiesUseCase {
	return &SearchPropertiesUseCase{
		propertyRepo: propertyRepo,
		requestRepo:  requestRepo,
		clock:        clock,
	}
}

func (uc *SearchPropertiesUseCase) Execute(ctx context.Context, filter port.PropertySearchFilter) ([]*domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "SearchProperties",
		"city":     filter.City,
	})

	ucLogger.Info("Use case started: searching properties", nil)

	candidates, err := uc.propertyRepo.Search(ctx, filter)
	if err != nil {
		ucLogger.Error("Repository failed while searching properties", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}

	results := make([]*domain.Property, 0, len(candidates))
	healed := 0
	for _, property := range candidates {
		if !property.VisibleToSeekers() {
			continue
		}
		booked, err := uc.hasBookedRequest(ctx, property)
		if err != nil {
			ucLogger.Error("Repository failed while checking property requests", err, port.Fields{"property_id": property.ID.String()})
			return nil, fmt.Errorf("internal server error: %w", err)
		}
		if booked {
			// Статус разъехался с заявками, чиним на месте.
			property.MarkRented(uc.clock.Now(), false)
			property.UpdatedAt = uc.clock.Now().UTC()
			if err := uc.propertyRepo.Save(ctx, property); err != nil {
				ucLogger.Warn("Failed to persist corrected property status", port.Fields{
					"property_id": property.ID.String(),
					"error":       err.Error(),
				})
			}
			healed++
			continue
		}
		results = append(results, property)
	}

	ucLogger.Info("Use case finished: search completed", port.Fields{
		"found":  len(results),
		"healed": healed,
	})
	return results, nil
}

func (uc *SearchPropertiesUseCase) hasBookedRequest(ctx context.Context, property *domain.Property) (bool, error) {
	requests, err := uc.requestRepo.FindByProperty(ctx, property.ID)
	if err != nil {
		return false, err
	}
	for _, req := range requests {
		if req.Status == domain.RequestAccepted || req.Status == domain.RequestPaid {
			return true, nil
		}
	}
	return false, nil
}
