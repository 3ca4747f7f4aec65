package rest

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/saurav73/GrihaMate/internal/contextkeys"
	"github.com/saurav73/GrihaMate/internal/core/port"
	"github.com/saurav73/GrihaMate/internal/core/port/usecases_port"
)

type AdminHandler struct {
	reviewUserUC     usecases_port.ReviewUserVerificationUseCasePort
	reviewPropertyUC usecases_port.ReviewPropertyVerificationUseCasePort
}

func NewAdminHandler(
	reviewUserUC usecases_port.ReviewUserVerificationUseCasePort,
	reviewPropertyUC usecases_port.ReviewPropertyVerificationUseCasePort) *AdminHandler {
	return &AdminHandler{
		reviewUserUC:     reviewUserUC,
		reviewPropertyUC: reviewPropertyUC,
	}
}

// ReviewUserVerification обрабатывает PATCH /api/v1/admin/users/{userID}/verification
func (h *AdminHandler) ReviewUserVerification(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ReviewUserVerification"})

	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	var payload VerificationReviewPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.reviewUserUC.Execute(r.Context(), userID, payload.Approve); err != nil {
		logger.Error("Review user verification use case failed", err, port.Fields{"user_id": userID.String()})
		WriteDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ReviewPropertyVerification обрабатывает PATCH /api/v1/admin/properties/{propertyID}/verification
func (h *AdminHandler) ReviewPropertyVerification(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ReviewPropertyVerification"})

	propertyID, err := uuid.Parse(chi.URLParam(r, "propertyID"))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid property id")
		return
	}

	var payload VerificationReviewPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.reviewPropertyUC.Execute(r.Context(), propertyID, payload.Approve); err != nil {
		logger.Error("Review property verification use case failed", err, port.Fields{"property_id": propertyID.String()})
		WriteDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
