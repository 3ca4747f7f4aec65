package rest

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/saurav73/GrihaMate/internal/contextkeys"
	"github.com/saurav73/GrihaMate/internal/core/domain"
	"github.com/saurav73/GrihaMate/internal/core/port"
	"github.com/saurav73/GrihaMate/internal/core/port/usecases_port"
)

type RequestHandler struct {
	createUC          usecases_port.CreatePropertyRequestUseCasePort
	updateStatusUC    usecases_port.UpdateRequestStatusUseCasePort
	deleteUC          usecases_port.DeletePropertyRequestUseCasePort
	purgeUC           usecases_port.PurgeRejectedRequestsUseCasePort
	listSeekerUC      usecases_port.ListSeekerRequestsUseCasePort
	listLandlordUC    usecases_port.ListLandlordRequestsUseCasePort
	getForPropertyUC  usecases_port.GetRequestForPropertyUseCasePort
}

func NewRequestHandler(
	createUC usecases_port.CreatePropertyRequestUseCasePort,
	updateStatusUC usecases_port.UpdateRequestStatusUseCasePort,
	deleteUC usecases_port.DeletePropertyRequestUseCasePort,
	purgeUC usecases_port.PurgeRejectedRequestsUseCasePort,
	listSeekerUC usecases_port.ListSeekerRequestsUseCasePort,
	listLandlordUC usecases_port.ListLandlordRequestsUseCasePort,
	getForPropertyUC usecases_port.GetRequestForPropertyUseCasePort) *RequestHandler {
	return &RequestHandler{
		createUC:         createUC,
		updateStatusUC:   updateStatusUC,
		deleteUC:         deleteUC,
		purgeUC:          purgeUC,
		listSeekerUC:     listSeekerUC,
		listLandlordUC:   listLandlordUC,
		getForPropertyUC: getForPropertyUC,
	}
}

// Create обрабатывает POST /api/v1/properties/{propertyID}/requests
func (h *RequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "CreatePropertyRequest"})

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

	var payload CreateRequestPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	request, err := h.createUC.Execute(r.Context(), claims.UserID, propertyID, payload.Message)
	if err != nil {
		logger.Error("Create property request use case failed", err, port.Fields{"property_id": propertyID.String()})
		WriteDomainError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusCreated, toRequestResponse(request))
}

// UpdateStatus обрабатывает PATCH /api/v1/requests/{requestID}/status
func (h *RequestHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "UpdateRequestStatus"})

	claims, ok := contextkeys.ClaimsFromContext(r.Context())
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "Missing claims in context")
		return
	}

	requestID, err := uuid.Parse(chi.URLParam(r, "requestID"))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request id")
		return
	}

	var payload RequestStatusPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	status, err := domain.ParseRequestStatus(payload.Status)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	request, err := h.updateStatusUC.Execute(r.Context(), claims.UserID, requestID, status)
	if err != nil {
		logger.Error("Update request status use case failed", err, port.Fields{
			"request_id": requestID.String(),
			"status":     payload.Status,
		})
		WriteDomainError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, toRequestResponse(request))
}

// Delete обрабатывает DELETE /api/v1/requests/{requestID}
func (h *RequestHandler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "DeletePropertyRequest"})

	claims, ok := contextkeys.ClaimsFromContext(r.Context())
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "Missing claims in context")
		return
	}

	requestID, err := uuid.Parse(chi.URLParam(r, "requestID"))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request id")
		return
	}

	if err := h.deleteUC.Execute(r.Context(), claims.UserID, requestID); err != nil {
		logger.Error("Delete property request use case failed", err, port.Fields{"request_id": requestID.String()})
		WriteDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// PurgeRejected обрабатывает DELETE /api/v1/seeker/requests/rejected
func (h *RequestHandler) PurgeRejected(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "PurgeRejectedRequests"})

	claims, ok := contextkeys.ClaimsFromContext(r.Context())
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "Missing claims in context")
		return
	}

	deleted, err := h.purgeUC.Execute(r.Context(), claims.UserID)
	if err != nil {
		logger.Error("Purge rejected requests use case failed", err, nil)
		WriteDomainError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, PurgeResponse{Deleted: deleted})
}

// ListForSeeker обрабатывает GET /api/v1/seeker/requests
func (h *RequestHandler) ListForSeeker(w http.ResponseWriter, r *http.Request) {
	claims, ok := contextkeys.ClaimsFromContext(r.Context())
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "Missing claims in context")
		return
	}

	requests, err := h.listSeekerUC.Execute(r.Context(), claims.UserID)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, toRequestResponses(requests))
}

// ListForLandlord обрабатывает GET /api/v1/landlord/requests
func (h *RequestHandler) ListForLandlord(w http.ResponseWriter, r *http.Request) {
	claims, ok := contextkeys.ClaimsFromContext(r.Context())
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "Missing claims in context")
		return
	}

	requests, err := h.listLandlordUC.Execute(r.Context(), claims.UserID)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, toRequestResponses(requests))
}

// GetMineForProperty обрабатывает GET /api/v1/properties/{propertyID}/requests/mine
func (h *RequestHandler) GetMineForProperty(w http.ResponseWriter, r *http.Request) {
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

	request, err := h.getForPropertyUC.Execute(r.Context(), claims.UserID, propertyID)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	if request == nil {
		WriteJSONError(w, http.StatusNotFound, "no request for this property")
		return
	}

	RespondWithJSON(w, http.StatusOK, toRequestResponse(request))
}
