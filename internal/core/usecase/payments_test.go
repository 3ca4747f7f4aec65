package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saurav73/GrihaMate/internal/core/domain"
)

func TestInitiateEsewaPayment_BuildsSignedForm(t *testing.T) {
	signer := &stubSigner{form: map[string]string{
		"total_amount":     "15000",
		"transaction_uuid": "BOOKING_x_y",
		"signature":        "sig",
	}}
	uc := NewInitiateEsewaPaymentUseCase(signer, newFakeClock(baseTime))

	form, err := uc.Execute(context.Background(), domain.PaymentOrder{Kind: domain.TransactionBooking, Amount: 15000}, newRandomID())
	require.NoError(t, err)
	assert.Equal(t, "sig", form["signature"])
}

func TestInitiateEsewaPayment_RejectsBadOrder(t *testing.T) {
	uc := NewInitiateEsewaPaymentUseCase(&stubSigner{}, newFakeClock(baseTime))

	_, err := uc.Execute(context.Background(), domain.PaymentOrder{Kind: domain.TransactionBooking, Amount: 0}, newRandomID())
	assert.ErrorIs(t, err, domain.ErrInvalid)

	_, err = uc.Execute(context.Background(), domain.PaymentOrder{Kind: "REFUND", Amount: 100}, newRandomID())
	assert.ErrorIs(t, err, domain.ErrInvalid)
}

func newConfirmationStack() (*memUserRepo, *memPropertyRepo, *memRequestRepo, *ConfirmBookingPaymentUseCase, *UpgradeSubscriptionUseCase) {
	users := newMemUserRepo()
	properties := newMemPropertyRepo()
	requests := newMemRequestRepo()
	confirm := NewConfirmBookingPaymentUseCase(requests, properties, newFakeClock(baseTime))
	upgrade := NewUpgradeSubscriptionUseCase(users)
	return users, properties, requests, confirm, upgrade
}

func TestVerifyEsewaCallback_RoutesBookingConfirmation(t *testing.T) {
	users, properties, requests, confirm, upgrade := newConfirmationStack()

	landlord := seedUser(users, domain.RoleLandlord, true)
	seeker := seedUser(users, domain.RoleSeeker, true)
	property := seedProperty(properties, landlord.ID)
	request := seedRequest(requests, seeker.ID, property, domain.RequestAccepted)

	signer := &stubSigner{ref: domain.NewTransactionRef(domain.TransactionBooking, request.ID, baseTime)}
	uc := NewVerifyEsewaCallbackUseCase(signer, confirm, upgrade)

	ref, err := uc.Execute(context.Background(), "payload", "signature")
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionBooking, ref.Kind)

	stored, _ := requests.FindByID(context.Background(), request.ID)
	assert.Equal(t, domain.RequestPaid, stored.Status)
}

func TestVerifyEsewaCallback_RoutesSubscriptionUpgrade(t *testing.T) {
	users, _, _, confirm, upgrade := newConfirmationStack()
	landlord := seedUser(users, domain.RoleLandlord, true)

	signer := &stubSigner{ref: domain.NewTransactionRef(domain.TransactionSubscription, landlord.ID, baseTime)}
	uc := NewVerifyEsewaCallbackUseCase(signer, confirm, upgrade)

	_, err := uc.Execute(context.Background(), "payload", "signature")
	require.NoError(t, err)

	stored, _ := users.FindByID(context.Background(), landlord.ID)
	assert.Equal(t, domain.SubscriptionPremium, stored.SubscriptionStatus)
}

func TestVerifyEsewaCallback_BadSignature(t *testing.T) {
	_, _, _, confirm, upgrade := newConfirmationStack()
	signer := &stubSigner{err: domain.ErrInvalid}
	uc := NewVerifyEsewaCallbackUseCase(signer, confirm, upgrade)

	_, err := uc.Execute(context.Background(), "payload", "tampered")
	assert.ErrorIs(t, err, domain.ErrInvalid)
}

func TestProcessCardPayment_TestCardApproves(t *testing.T) {
	users, properties, requests, confirm, upgrade := newConfirmationStack()

	landlord := seedUser(users, domain.RoleLandlord, true)
	seeker := seedUser(users, domain.RoleSeeker, true)
	property := seedProperty(properties, landlord.ID)
	request := seedRequest(requests, seeker.ID, property, domain.RequestAccepted)

	uc := NewProcessCardPaymentUseCase(confirm, upgrade, newFakeClock(baseTime))

	txnID, err := uc.Execute(context.Background(), "4242 4242 4242 4242", domain.PaymentOrder{Kind: domain.TransactionBooking, Amount: 15000}, request.ID)
	require.NoError(t, err)
	assert.Contains(t, txnID, "BOOKING_")

	stored, _ := requests.FindByID(context.Background(), request.ID)
	assert.Equal(t, domain.RequestPaid, stored.Status)
}

func TestProcessCardPayment_DeclinedAndInvalidCards(t *testing.T) {
	_, _, _, confirm, upgrade := newConfirmationStack()
	uc := NewProcessCardPaymentUseCase(confirm, upgrade, newFakeClock(baseTime))
	order := domain.PaymentOrder{Kind: domain.TransactionBooking, Amount: 15000}

	_, err := uc.Execute(context.Background(), "4111 1111 1111 1111", order, newRandomID())
	assert.ErrorIs(t, err, domain.ErrPolicyViolation)

	_, err = uc.Execute(context.Background(), "1234 5678 9012 3456", order, newRandomID())
	assert.ErrorIs(t, err, domain.ErrInvalid)

	_, err = uc.Execute(context.Background(), "4242", order, newRandomID())
	assert.ErrorIs(t, err, domain.ErrInvalid)
}
