package models

import (
	"fmt"
	"strings"
)

// PaymentMethod is the fixed set of payment options accepted at checkout.
type PaymentMethod string

const (
	PaymentUPI  PaymentMethod = "upi"
	PaymentCard PaymentMethod = "card"
	PaymentCOD  PaymentMethod = "cod"
)

// Valid reports whether m is one of the supported methods.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentUPI, PaymentCard, PaymentCOD:
		return true
	}
	return false
}

// PaymentInfo is the method-specific payment detail record. It is a closed
// union over UPIInfo, CardInfo and CODInfo; no other implementations exist.
type PaymentInfo interface {
	Method() PaymentMethod
	// Validate checks that every required field for the method is non-empty.
	// Format checks (card number digits, phone length) are left to the input
	// surface.
	Validate() error

	paymentInfo()
}

// UPIInfo carries the fields required for a UPI payment.
type UPIInfo struct {
	UPIID   string `json:"upiId"`
	UPIName string `json:"upiName"`
}

func (UPIInfo) Method() PaymentMethod { return PaymentUPI }
func (UPIInfo) paymentInfo()          {}

func (i UPIInfo) Validate() error {
	return requireFields(
		field{"upiId", i.UPIID},
		field{"upiName", i.UPIName},
	)
}

// CardInfo carries the fields required for a card payment.
type CardInfo struct {
	CardNumber string `json:"cardNumber"`
	Expiry     string `json:"expiry"`
	CVV        string `json:"cvv"`
	CardName   string `json:"cardName"`
}

func (CardInfo) Method() PaymentMethod { return PaymentCard }
func (CardInfo) paymentInfo()          {}

func (i CardInfo) Validate() error {
	return requireFields(
		field{"cardNumber", i.CardNumber},
		field{"expiry", i.Expiry},
		field{"cvv", i.CVV},
		field{"cardName", i.CardName},
	)
}

// CODInfo carries the fields required for cash on delivery.
type CODInfo struct {
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

func (CODInfo) Method() PaymentMethod { return PaymentCOD }
func (CODInfo) paymentInfo()          {}

func (i CODInfo) Validate() error {
	return requireFields(
		field{"address", i.Address},
		field{"phone", i.Phone},
	)
}

type field struct {
	name  string
	value string
}

func requireFields(fields ...field) error {
	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required payment fields: %s", strings.Join(missing, ", "))
	}
	return nil
}
