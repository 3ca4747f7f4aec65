package payment_adapter

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/saurav73/GrihaMate/internal/core/domain"
)

// EsewaSigner - интеграция с платежным шлюзом eSewa (v2 form API).
// Подпись: HMAC-SHA256 в base64 над строкой
// "total_amount=X,transaction_uuid=Y,product_code=Z".
type EsewaSigner struct {
	secretKey   []byte
	productCode string
	successURL  string
	failureURL  string
}

type EsewaConfig struct {
	SecretKey   string
	ProductCode string
	SuccessURL  string
	FailureURL  string
}

func NewEsewaSigner(cfg EsewaConfig) (*EsewaSigner, error) {
	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("esewa secret key cannot be empty")
	}
	if cfg.ProductCode == "" {
		return nil, fmt.Errorf("esewa product code cannot be empty")
	}
	return &EsewaSigner{
		secretKey:   []byte(cfg.SecretKey),
		productCode: cfg.ProductCode,
		successURL:  cfg.SuccessURL,
		failureURL:  cfg.FailureURL,
	}, nil
}

// SignedForm собирает поля формы инициации платежа.
func (s *EsewaSigner) SignedForm(totalAmount string, ref domain.TransactionRef) map[string]string {
	transactionUUID := ref.String()
	message := fmt.Sprintf("total_amount=%s,transaction_uuid=%s,product_code=%s",
		totalAmount, transactionUUID, s.productCode)

	return map[string]string{
		"amount":                  totalAmount,
		"tax_amount":              "0",
		"total_amount":            totalAmount,
		"transaction_uuid":        transactionUUID,
		"product_code":            s.productCode,
		"product_service_charge":  "0",
		"product_delivery_charge": "0",
		"success_url":             s.successURL,
		"failure_url":             s.failureURL,
		"signed_field_names":      "total_amount,transaction_uuid,product_code",
		"signature":               s.sign(message),
	}
}

// esewaCallback - payload, который шлюз кладет в query-параметр data (base64).
type esewaCallback struct {
	TransactionUUID  string `json:"transaction_uuid"`
	TotalAmount      string `json:"total_amount"`
	ProductCode      string `json:"product_code"`
	Status           string `json:"status"`
	SignedFieldNames string `json:"signed_field_names"`
	Signature        string `json:"signature"`
}

// VerifyCallback декодирует payload, сверяет подпись и извлекает ссылку
// на транзакцию. signature-аргумент опционален: подпись также приходит
// внутри payload-а, внешняя строка используется, если поле пустое.
func (s *EsewaSigner) VerifyCallback(encodedData, signature string) (domain.TransactionRef, error) {
	raw, err := base64.StdEncoding.DecodeString(encodedData)
	if err != nil {
		return domain.TransactionRef{}, fmt.Errorf("%w: callback data is not valid base64: %v", domain.ErrInvalid, err)
	}

	var cb esewaCallback
	if err := json.Unmarshal(raw, &cb); err != nil {
		return domain.TransactionRef{}, fmt.Errorf("%w: callback data is not valid json: %v", domain.ErrInvalid, err)
	}

	expectedSig := cb.Signature
	if expectedSig == "" {
		expectedSig = signature
	}
	if expectedSig == "" {
		return domain.TransactionRef{}, fmt.Errorf("%w: callback carries no signature", domain.ErrInvalid)
	}

	message, err := s.signedMessage(cb)
	if err != nil {
		return domain.TransactionRef{}, err
	}
	if !hmac.Equal([]byte(s.sign(message)), []byte(expectedSig)) {
		return domain.TransactionRef{}, fmt.Errorf("%w: callback signature mismatch", domain.ErrInvalid)
	}

	if !strings.EqualFold(cb.Status, "COMPLETE") {
		return domain.TransactionRef{}, fmt.Errorf("%w: payment status is %q", domain.ErrInvalid, cb.Status)
	}

	return domain.ParseTransactionRef(cb.TransactionUUID)
}

// signedMessage восстанавливает подписанную строку по signed_field_names.
func (s *EsewaSigner) signedMessage(cb esewaCallback) (string, error) {
	values := map[string]string{
		"transaction_uuid":   cb.TransactionUUID,
		"total_amount":       cb.TotalAmount,
		"product_code":       cb.ProductCode,
		"status":             cb.Status,
		"signed_field_names": cb.SignedFieldNames,
	}

	names := strings.Split(cb.SignedFieldNames, ",")
	parts := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		value, ok := values[name]
		if !ok {
			return "", fmt.Errorf("%w: unknown signed field %q", domain.ErrInvalid, name)
		}
		parts = append(parts, fmt.Sprintf("%s=%s", name, value))
	}
	return strings.Join(parts, ","), nil
}

func (s *EsewaSigner) sign(message string) string {
	mac := hmac.New(sha256.New, s.secretKey)
	mac.Write([]byte(message))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
