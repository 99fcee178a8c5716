package domain

import (
	"reflect"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem is a pending purchase linking a user email to a class. ClassID is
// a reference by convention only.
type CartItem struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Email    string             `bson:"email,omitempty" json:"email,omitempty"`
	ClassID  string             `bson:"classId" json:"classId"`
	Name     string             `bson:"name,omitempty" json:"name,omitempty"`
	Image    string             `bson:"image,omitempty" json:"image,omitempty"`
	InsName  string             `bson:"insName,omitempty" json:"insName,omitempty"`
	InsEmail string             `bson:"insEmail,omitempty" json:"insEmail,omitempty"`
	Price    float64            `bson:"price,omitempty" json:"price,omitempty"`

	Extra map[string]interface{} `bson:",inline" json:"-"`
}

type cartItemFields CartItem

var cartItemKeys = jsonKeys(reflect.TypeOf(cartItemFields{}))

// MarshalJSON encodes the cart item with its extra fields.
func (c CartItem) MarshalJSON() ([]byte, error) {
	return marshalDocument(cartItemFields(c), c.Extra, cartItemKeys)
}

// UnmarshalJSON decodes a cart item, keeping unknown fields in Extra.
func (c *CartItem) UnmarshalJSON(data []byte) error {
	var fields cartItemFields
	extra, err := unmarshalDocument(data, &fields, cartItemKeys)
	if err != nil {
		return err
	}
	*c = CartItem(fields)
	c.Extra = extra
	return nil
}

// Validate checks the fields a cart item cannot do without.
func (c *CartItem) Validate() error {
	if c.ClassID == "" {
		return NewValidationError("classId", "is required", ErrEmptyClassID)
	}
	return nil
}
