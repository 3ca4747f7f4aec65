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

// RoomRequestHandler покрывает стоячие запросы seeker-ов и подписки
// на доступность.
type RoomRequestHandler struct {
	createUC        usecases_port.CreateRoomRequestUseCasePort
	updateUC        usecases_port.UpdateRoomRequestUseCasePort
	deleteUC        usecases_port.DeleteRoomRequestUseCasePort
	listUC          usecases_port.ListSeekerRoomRequestsUseCasePort
	subscribeUC     usecases_port.SubscribeAvailabilityUseCasePort
	unsubscribeUC   usecases_port.UnsubscribeAvailabilityUseCasePort
	listSubsUC      usecases_port.ListSeekerSubscriptionsUseCasePort
}

func NewRoomRequestHandler(
	createUC usecases_port.CreateRoomRequestUseCasePort,
	updateUC usecases_port.UpdateRoomRequestUseCasePort,
	deleteUC usecases_port.DeleteRoomRequestUseCasePort,
	listUC usecases_port.ListSeekerRoomRequestsUseCasePort,
	subscribeUC usecases_port.SubscribeAvailabilityUseCasePort,
	unsubscribeUC usecases_port.UnsubscribeAvailabilityUseCasePort,
	listSubsUC usecases_port.ListSeekerSubscriptionsUseCasePort) *RoomRequestHandler {
	return &RoomRequestHandler{
		createUC:      createUC,
		updateUC:      updateUC,
		deleteUC:      deleteUC,
		listUC:        listUC,
		subscribeUC:   subscribeUC,
		unsubscribeUC: unsubscribeUC,
		listSubsUC:    listSubsUC,
	}
}

func draftFromRoomRequestPayload(payload RoomRequestPayload) (domain.RoomRequestDraft, error) {
	draft := domain.RoomRequestDraft{
		City:        payload.City,
		District:    payload.District,
		MinPrice:    payload.MinPrice,
		MaxPrice:    payload.MaxPrice,
		MinBedrooms: payload.MinBedrooms,
		MaxBedrooms: payload.MaxBedrooms,
		Notes:       payload.Notes,
	}
	if payload.Type != nil {
		propertyType, err := domain.ParsePropertyType(*payload.Type)
		if err != nil {
			return draft, err
		}
		draft.Type = &propertyType
	}
	return draft, nil
}

// Create обрабатывает POST /api/v1/room-requests
func (h *RoomRequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "CreateRoomRequest"})

	claims, ok := contextkeys.ClaimsFromContext(r.Context())
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "Missing claims in context")
		return
	}

	var payload RoomRequestPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	draft, err := draftFromRoomRequestPayload(payload)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	request, err := h.createUC.Execute(r.Context(), claims.UserID, draft)
	if err != nil {
		logger.Error("Create room request use case failed", err, nil)
		WriteDomainError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusCreated, toRoomRequestResponse(request))
}

// Update обрабатывает PUT /api/v1/room-requests/{requestID}
func (h *RoomRequestHandler) Update(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "UpdateRoomRequest"})

	claims, ok := contextkeys.ClaimsFromContext(r.Context())
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "Missing claims in context")
		return
	}

	requestID, err := uuid.Parse(chi.URLParam(r, "requestID"))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid room request id")
		return
	}

	var payload RoomRequestPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	draft, err := draftFromRoomRequestPayload(payload)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	request, err := h.updateUC.Execute(r.Context(), claims.UserID, requestID, draft, payload.Active)
	if err != nil {
		logger.Error("Update room request use case failed", err, port.Fields{"room_request_id": requestID.String()})
		WriteDomainError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, toRoomRequestResponse(request))
}

// Delete обрабатывает DELETE /api/v1/room-requests/{requestID}
func (h *RoomRequestHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := contextkeys.ClaimsFromContext(r.Context())
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "Missing claims in context")
		return
	}

	requestID, err := uuid.Parse(chi.URLParam(r, "requestID"))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid room request id")
		return
	}

	if err := h.deleteUC.Execute(r.Context(), claims.UserID, requestID); err != nil {
		WriteDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListMine обрабатывает GET /api/v1/room-requests
func (h *RoomRequestHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	claims, ok := contextkeys.ClaimsFromContext(r.Context())
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "Missing claims in context")
		return
	}

	requests, err := h.listUC.Execute(r.Context(), claims.UserID)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, toRoomRequestResponses(requests))
}

// Subscribe обрабатывает POST /api/v1/subscriptions
func (h *RoomRequestHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "SubscribeAvailability"})

	claims, ok := contextkeys.ClaimsFromContext(r.Context())
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "Missing claims in context")
		return
	}

	var payload SubscribePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	subscription, err := h.subscribeUC.Execute(r.Context(), claims.UserID, payload.City, payload.District)
	if err != nil {
		logger.Error("Subscribe availability use case failed", err, nil)
		WriteDomainError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusCreated, toSubscriptionResponse(subscription))
}

// Unsubscribe обрабатывает DELETE /api/v1/subscriptions/{subscriptionID}
func (h *RoomRequestHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	claims, ok := contextkeys.ClaimsFromContext(r.Context())
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "Missing claims in context")
		return
	}

	subscriptionID, err := uuid.Parse(chi.URLParam(r, "subscriptionID"))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid subscription id")
		return
	}

	if err := h.unsubscribeUC.Execute(r.Context(), claims.UserID, subscriptionID); err != nil {
		WriteDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListSubscriptions обрабатывает GET /api/v1/subscriptions
func (h *RoomRequestHandler) ListSubscriptions(w http.ResponseWriter, r *http.Request) {
	claims, ok := contextkeys.ClaimsFromContext(r.Context())
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "Missing claims in context")
		return
	}

	subscriptions, err := h.listSubsUC.Execute(r.Context(), claims.UserID)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	out := make([]SubscriptionResponse, len(subscriptions))
	for i, s := range subscriptions {
		out[i] = toSubscriptionResponse(s)
	}
	RespondWithJSON(w, http.StatusOK, out)
}
