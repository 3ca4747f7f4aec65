package rest

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/mmcloughlin/geohash"

	"github.com/saurav73/GrihaMate/internal/contextkeys"
	"github.com/saurav73/GrihaMate/internal/core/domain"
	"github.com/saurav73/GrihaMate/internal/core/port"
	"github.com/saurav73/GrihaMate/internal/core/port/usecases_port"
)

// searchGeohashPrecision - точность гео-ячейки для поиска "рядом с точкой".
const searchGeohashPrecision = 5

type PropertyHandler struct {
	createUC       usecases_port.CreatePropertyUseCasePort
	updateUC       usecases_port.UpdatePropertyUseCasePort
	deleteUC       usecases_port.DeletePropertyUseCasePort
	updateStatusUC usecases_port.UpdatePropertyStatusUseCasePort
	getUC          usecases_port.GetPropertyUseCasePort
	searchUC       usecases_port.SearchPropertiesUseCasePort
	listMineUC     usecases_port.ListLandlordPropertiesUseCasePort
}

func NewPropertyHandler(
	createUC usecases_port.CreatePropertyUseCasePort,
	updateUC usecases_port.UpdatePropertyUseCasePort,
	deleteUC usecases_port.DeletePropertyUseCasePort,
	updateStatusUC usecases_port.UpdatePropertyStatusUseCasePort,
	getUC usecases_port.GetPropertyUseCasePort,
	searchUC usecases_port.SearchPropertiesUseCasePort,
	listMineUC usecases_port.ListLandlordPropertiesUseCasePort) *PropertyHandler {
	return &PropertyHandler{
		createUC:       createUC,
		updateUC:       updateUC,
		deleteUC:       deleteUC,
		updateStatusUC: updateStatusUC,
		getUC:          getUC,
		searchUC:       searchUC,
		listMineUC:     listMineUC,
	}
}

func (h *PropertyHandler) draftFromPayload(payload PropertyPayload) (domain.PropertyDraft, error) {
	propertyType, err := domain.ParsePropertyType(payload.Type)
	if err != nil {
		return domain.PropertyDraft{}, err
	}
	return domain.PropertyDraft{
		Title:       payload.Title,
		Description: payload.Description,
		Address:     payload.Address,
		City:        payload.City,
		District:    payload.District,
		Province:    payload.Province,
		Latitude:    payload.Latitude,
		Longitude:   payload.Longitude,
		Price:       payload.Price,
		Bedrooms:    payload.Bedrooms,
		Bathrooms:   payload.Bathrooms,
		Area:        payload.Area,
		Type:        propertyType,
	}, nil
}

// Create обрабатывает POST /api/v1/properties
func (h *PropertyHandler) Create(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "CreateProperty"})

	claims, ok := contextkeys.ClaimsFromContext(r.Context())
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "Missing claims in context")
		return
	}

	var payload PropertyPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	draft, err := h.draftFromPayload(payload)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	property, err := h.createUC.Execute(r.Context(), claims.UserID, draft)
	if err != nil {
		logger.Error("Create property use case failed", err, nil)
		WriteDomainError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusCreated, toPropertyResponse(property))
}

// Update обрабатывает PUT /api/v1/properties/{propertyID}
func (h *PropertyHandler) Update(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "UpdateProperty"})

	claims, ok := contextkeys.ClaimsFromContext(r.Context())
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "Missing claims in context")
		return
	}

	propertyID, err := uuid.Parse(chi.URLParam(r, "propertyID"))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid property id")
		return
	}

	var payload PropertyPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	draft, err := h.draftFromPayload(payload)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	property, err := h.updateUC.Execute(r.Context(), claims.UserID, propertyID, draft)
	if err != nil {
		logger.Error("Update property use case failed", err, port.Fields{"property_id": propertyID.String()})
		WriteDomainError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, toPropertyResponse(property))
}

// Delete обрабатывает DELETE /api/v1/properties/{propertyID}
func (h *PropertyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "DeleteProperty"})

	claims, ok := contextkeys.ClaimsFromContext(r.Context())
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "Missing claims in context")
		return
	}

	propertyID, err := uuid.Parse(chi.URLParam(r, "propertyID"))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid property id")
		return
	}

	if err := h.deleteUC.Execute(r.Context(), claims.UserID, propertyID); err != nil {
		logger.Error("Delete property use case failed", err, port.Fields{"property_id": propertyID.String()})
		WriteDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UpdateStatus обрабатывает PATCH /api/v1/properties/{propertyID}/status
func (h *PropertyHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "UpdatePropertyStatus"})

	claims, ok := contextkeys.ClaimsFromContext(r.Context())
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "Missing claims in context")
		return
	}

	propertyID, err := uuid.Parse(chi.URLParam(r, "propertyID"))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid property id")
		return
	}

	var payload PropertyStatusPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	status, err := domain.ParsePropertyStatus(payload.Status)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	property, err := h.updateStatusUC.Execute(r.Context(), claims.UserID, propertyID, status)
	if err != nil {
		logger.Error("Update property status use case failed", err, port.Fields{
			"property_id": propertyID.String(),
			"status":      payload.Status,
		})
		WriteDomainError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, toPropertyResponse(property))
}

// GetByID обрабатывает GET /api/v1/properties/{propertyID}
func (h *PropertyHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	propertyID, err := uuid.Parse(chi.URLParam(r, "propertyID"))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid property id")
		return
	}

	property, err := h.getUC.Execute(r.Context(), propertyID)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, toPropertyResponse(property))
}

// Search обрабатывает GET /api/v1/properties
func (h *PropertyHandler) Search(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "SearchProperties"})

	filter, err := h.filterFromQuery(r)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid search parameters")
		return
	}

	properties, err := h.searchUC.Execute(r.Context(), filter)
	if err != nil {
		logger.Error("Search properties use case failed", err, nil)
		WriteDomainError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, toPropertyResponses(properties))
}

func (h *PropertyHandler) filterFromQuery(r *http.Request) (port.PropertySearchFilter, error) {
	var filter port.PropertySearchFilter
	query := r.URL.Query()

	filter.City = query.Get("city")
	filter.District = query.Get("district")

	minPrice, err := getQueryInt64Ptr(r, "min_price")
	if err != nil {
		return filter, err
	}
	filter.MinPrice = minPrice

	maxPrice, err := getQueryInt64Ptr(r, "max_price")
	if err != nil {
		return filter, err
	}
	filter.MaxPrice = maxPrice

	minBedrooms, err := getQueryIntPtr(r, "min_bedrooms")
	if err != nil {
		return filter, err
	}
	filter.MinBedrooms = minBedrooms

	if rawType := query.Get("type"); rawType != "" {
		propertyType, err := domain.ParsePropertyType(rawType)
		if err != nil {
			return filter, err
		}
		filter.Type = &propertyType
	}

	// Поиск "рядом с точкой": координаты сворачиваются в geohash-префикс
	if latStr, lonStr := query.Get("lat"), query.Get("lon"); latStr != "" && lonStr != "" {
		lat, err := strconv.ParseFloat(latStr, 64)
		if err != nil {
			return filter, err
		}
		lon, err := strconv.ParseFloat(lonStr, 64)
		if err != nil {
			return filter, err
		}
		filter.GeohashPrefix = geohash.EncodeWithPrecision(lat, lon, searchGeohashPrecision)
	}

	return filter, nil
}

// ListMine обрабатывает GET /api/v1/landlord/properties
func (h *PropertyHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ListLandlordProperties"})

	claims, ok := contextkeys.ClaimsFromContext(r.Context())
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "Missing claims in context")
		return
	}

	properties, err := h.listMineUC.Execute(r.Context(), claims.UserID)
	if err != nil {
		logger.Error("List landlord properties use case failed", err, nil)
		WriteDomainError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, toPropertyResponses(properties))
}
