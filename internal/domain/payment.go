package domain

import (
	"math"
	"reflect"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment records a client-confirmed checkout, stored as the client sent it.
// CartItems holds the hex id of the cart item removed by the checkout.
type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Email         string             `bson:"email,omitempty" json:"email,omitempty"`
	TransactionID string             `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	Price         float64            `bson:"price,omitempty" json:"price,omitempty"`
	Date          time.Time          `bson:"date" json:"date"`
	Quantity      int                `bson:"quantity,omitempty" json:"quantity,omitempty"`
	CartItems     string             `bson:"cartItems" json:"cartItems"`
	ClassID       string             `bson:"classId,omitempty" json:"classId,omitempty"`
	ItemNames     string             `bson:"itemNames,omitempty" json:"itemNames,omitempty"`
	Status        string             `bson:"status,omitempty" json:"status,omitempty"`

	Extra map[string]interface{} `bson:",inline" json:"-"`
}

type paymentFields Payment

var paymentKeys = jsonKeys(reflect.TypeOf(paymentFields{}))

// MarshalJSON encodes the payment with its extra fields.
func (p Payment) MarshalJSON() ([]byte, error) {
	return marshalDocument(paymentFields(p), p.Extra, paymentKeys)
}

// UnmarshalJSON decodes a payment, keeping unknown fields in Extra.
func (p *Payment) UnmarshalJSON(data []byte) error {
	var fields paymentFields
	extra, err := unmarshalDocument(data, &fields, paymentKeys)
	if err != nil {
		return err
	}
	*p = Payment(fields)
	p.Extra = extra
	return nil
}

// ToCents converts a decimal price into integer minor units, rounding to the
// nearest cent. NaN, infinite and out of range prices are rejected, as are
// prices that round to less than one cent.
func ToCents(price float64) (int64, error) {
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return 0, NewValidationError("price", "must be a positive amount", ErrInvalidPrice)
	}
	cents := math.Round(price * 100)
	if cents < 1 {
		return 0, NewValidationError("price", "must be at least one cent", ErrInvalidPrice)
	}
	if cents > maxCents {
		return 0, NewValidationError("price", "is too large", ErrInvalidPrice)
	}
	return int64(cents), nil
}

// maxCents keeps converted amounts well inside int64 and float64 precision.
const maxCents = 1 << 53
