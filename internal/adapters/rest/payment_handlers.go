package rest

import (
	"encoding/json"
	"net/http"

	"github.com/saurav73/GrihaMate/internal/contextkeys"
	"github.com/saurav73/GrihaMate/internal/core/domain"
	"github.com/saurav73/GrihaMate/internal/core/port"
	"github.com/saurav73/GrihaMate/internal/core/port/usecases_port"
)

type PaymentHandler struct {
	initiateUC usecases_port.InitiateEsewaPaymentUseCasePort
	callbackUC usecases_port.VerifyEsewaCallbackUseCasePort
	cardUC     usecases_port.ProcessCardPaymentUseCasePort
}

func NewPaymentHandler(
	initiateUC usecases_port.InitiateEsewaPaymentUseCasePort,
	callbackUC usecases_port.VerifyEsewaCallbackUseCasePort,
	cardUC usecases_port.ProcessCardPaymentUseCasePort) *PaymentHandler {
	return &PaymentHandler{
		initiateUC: initiateUC,
		callbackUC: callbackUC,
		cardUC:     cardUC,
	}
}

func parseTransactionKind(s string) (domain.TransactionKind, error) {
	switch domain.TransactionKind(s) {
	case domain.TransactionBooking, domain.TransactionSubscription:
		return domain.TransactionKind(s), nil
	}
	return "", domain.ErrInvalid
}

// InitiateEsewa обрабатывает POST /api/v1/payments/esewa/initiate
func (h *PaymentHandler) InitiateEsewa(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "InitiateEsewaPayment"})

	var payload InitiateEsewaPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	kind, err := parseTransactionKind(payload.Kind)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Unknown payment kind")
		return
	}

	form, err := h.initiateUC.Execute(r.Context(), domain.PaymentOrder{
		Kind:   kind,
		Amount: payload.Amount,
	}, payload.TargetID)
	if err != nil {
		logger.Error("Initiate esewa payment use case failed", err, port.Fields{"kind": payload.Kind})
		WriteDomainError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, form)
}

// EsewaCallback обрабатывает GET|POST /api/v1/payments/esewa/callback.
// Шлюз кладет base64-encoded payload в query-параметр data.
func (h *PaymentHandler) EsewaCallback(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "EsewaCallback"})

	encodedData := r.URL.Query().Get("data")
	if encodedData == "" {
		WriteJSONError(w, http.StatusBadRequest, "Missing callback data")
		return
	}
	signature := r.URL.Query().Get("signature")

	ref, err := h.callbackUC.Execute(r.Context(), encodedData, signature)
	if err != nil {
		logger.Error("Esewa callback verification failed", err, nil)
		WriteDomainError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, EsewaCallbackResponse{
		Kind:     string(ref.Kind),
		TargetID: ref.TargetID,
		Status:   "confirmed",
	})
}

// ProcessCard обрабатывает POST /api/v1/payments/card
func (h *PaymentHandler) ProcessCard(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ProcessCardPayment"})

	var payload CardPaymentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	kind, err := parseTransactionKind(payload.Kind)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Unknown payment kind")
		return
	}

	transactionID, err := h.cardUC.Execute(r.Context(), payload.CardNumber, domain.PaymentOrder{
		Kind:   kind,
		Amount: payload.Amount,
	}, payload.TargetID)
	if err != nil {
		logger.Warn("Card payment was not processed", port.Fields{"kind": payload.Kind})
		WriteDomainError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, CardPaymentResponse{
		TransactionID: transactionID,
		Status:        "confirmed",
	})
}
