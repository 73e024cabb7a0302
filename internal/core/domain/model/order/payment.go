package order

import (
	"fmt"
	"strings"

	"courierbot/internal/pkg/errs"
)

// PaymentMethod is the payment label attached to an order. The core records
// the label only; no payment is processed.
type PaymentMethod int

const (
	PaymentUnknown PaymentMethod = iota
	PaymentCash
	PaymentQRCode
	PaymentAlreadyPaid
)

var paymentNames = map[string]PaymentMethod{
	"cash":         PaymentCash,
	"qr-code":      PaymentQRCode,
	"qrcode":       PaymentQRCode,
	"already-paid": PaymentAlreadyPaid,
	"paid":         PaymentAlreadyPaid,
}

// ParsePaymentMethod maps a label to a PaymentMethod.
// Anything outside of the closed set is rejected with errs.ErrValueIsInvalid.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	if m, ok := paymentNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return m, nil
	}
	return PaymentUnknown, errs.NewValueIsInvalidErrorWithCause(
		"paymentMethod",
		fmt.Errorf("%q is not a valid payment method", s),
	)
}

func (m PaymentMethod) String() string {
	switch m {
	case PaymentCash:
		return "cash"
	case PaymentQRCode:
		return "qr-code"
	case PaymentAlreadyPaid:
		return "already-paid"
	default:
		return "unknown"
	}
}

func (m PaymentMethod) Validate() error {
	if m < PaymentCash || m > PaymentAlreadyPaid {
		return errs.NewValueIsInvalidErrorWithCause("paymentMethod", fmt.Errorf("%d is not a valid payment method", m))
	}
	return nil
}
