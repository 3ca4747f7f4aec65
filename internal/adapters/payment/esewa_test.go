package payment_adapter

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saurav73/GrihaMate/internal/core/domain"
)

func newTestSigner(t *testing.T) *EsewaSigner {
	t.Helper()
	signer, err := NewEsewaSigner(EsewaConfig{
		SecretKey:   "8gBm/:&EnhH.1/q",
		ProductCode: "EPAYTEST",
		SuccessURL:  "https://example.com/payments/success",
		FailureURL:  "https://example.com/payments/failure",
	})
	require.NoError(t, err)
	return signer
}

func hmacBase64(secret, message string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(message))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func TestSignedForm(t *testing.T) {
	signer := newTestSigner(t)
	ref := domain.NewTransactionRef(domain.TransactionBooking, uuid.New(), time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC))

	form := signer.SignedForm("15000", ref)

	assert.Equal(t, "15000", form["total_amount"])
	assert.Equal(t, "EPAYTEST", form["product_code"])
	assert.Equal(t, ref.String(), form["transaction_uuid"])
	assert.Equal(t, "total_amount,transaction_uuid,product_code", form["signed_field_names"])

	expected := hmacBase64("8gBm/:&EnhH.1/q",
		fmt.Sprintf("total_amount=15000,transaction_uuid=%s,product_code=EPAYTEST", ref.String()))
	assert.Equal(t, expected, form["signature"])
}

func encodeCallback(t *testing.T, cb esewaCallback) string {
	t.Helper()
	raw, err := json.Marshal(cb)
	require.NoError(t, err)
	return base64.StdEncoding.EncodeToString(raw)
}

func TestVerifyCallback_RoundTrip(t *testing.T) {
	signer := newTestSigner(t)
	ref := domain.NewTransactionRef(domain.TransactionBooking, uuid.New(), time.Now())

	cb := esewaCallback{
		TransactionUUID:  ref.String(),
		TotalAmount:      "15000",
		ProductCode:      "EPAYTEST",
		Status:           "COMPLETE",
		SignedFieldNames: "transaction_uuid,total_amount,product_code,status,signed_field_names",
	}
	message, err := signer.signedMessage(cb)
	require.NoError(t, err)
	cb.Signature = hmacBase64("8gBm/:&EnhH.1/q", message)

	parsed, err := signer.VerifyCallback(encodeCallback(t, cb), "")
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionBooking, parsed.Kind)
	assert.Equal(t, ref.TargetID, parsed.TargetID)
}

func TestVerifyCallback_TamperedPayload(t *testing.T) {
	signer := newTestSigner(t)
	ref := domain.NewTransactionRef(domain.TransactionBooking, uuid.New(), time.Now())

	cb := esewaCallback{
		TransactionUUID:  ref.String(),
		TotalAmount:      "15000",
		ProductCode:      "EPAYTEST",
		Status:           "COMPLETE",
		SignedFieldNames: "transaction_uuid,total_amount,product_code,status,signed_field_names",
	}
	message, err := signer.signedMessage(cb)
	require.NoError(t, err)
	cb.Signature = hmacBase64("8gBm/:&EnhH.1/q", message)

	// Меняем сумму после подписи.
	cb.TotalAmount = "1"
	_, err = signer.VerifyCallback(encodeCallback(t, cb), "")
	assert.ErrorIs(t, err, domain.ErrInvalid)
}

func TestVerifyCallback_IncompleteStatus(t *testing.T) {
	signer := newTestSigner(t)
	ref := domain.NewTransactionRef(domain.TransactionSubscription, uuid.New(), time.Now())

	cb := esewaCallback{
		TransactionUUID:  ref.String(),
		TotalAmount:      "999",
		ProductCode:      "EPAYTEST",
		Status:           "PENDING",
		SignedFieldNames: "transaction_uuid,total_amount,product_code,status,signed_field_names",
	}
	message, err := signer.signedMessage(cb)
	require.NoError(t, err)
	cb.Signature = hmacBase64("8gBm/:&EnhH.1/q", message)

	_, err = signer.VerifyCallback(encodeCallback(t, cb), "")
	assert.ErrorIs(t, err, domain.ErrInvalid)
}

func TestVerifyCallback_GarbageData(t *testing.T) {
	signer := newTestSigner(t)

	_, err := signer.VerifyCallback("%%%not-base64%%%", "")
	assert.ErrorIs(t, err, domain.ErrInvalid)

	_, err = signer.VerifyCallback(base64.StdEncoding.EncodeToString([]byte("not json")), "")
	assert.ErrorIs(t, err, domain.ErrInvalid)
}
