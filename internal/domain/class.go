package domain

import (
	"reflect"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ClassStatus tracks a listing through the admin review flow.
type ClassStatus string

const (
	ClassStatusPending  ClassStatus = "pending"
	ClassStatusApproved ClassStatus = "approved"
	ClassStatusDenied   ClassStatus = "denied"
)

// PopularLimit is the number of classes returned by the popular listing.
const PopularLimit = 6

// Class is a listing submitted by an instructor, stored as the client sent
// it. Fields the server does not read are kept in Extra.
type Class struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name           string             `bson:"name,omitempty" json:"name,omitempty"`
	Description    string             `bson:"description,omitempty" json:"description,omitempty"`
	Image          string             `bson:"image,omitempty" json:"image,omitempty"`
	InsName        string             `bson:"insName,omitempty" json:"insName,omitempty"`
	InsEmail       string             `bson:"insEmail,omitempty" json:"insEmail,omitempty"`
	AvailableSeats int                `bson:"availableSeats,omitempty" json:"availableSeats,omitempty"`
	Enrolled       int                `bson:"enrolled,omitempty" json:"enrolled,omitempty"`
	Price          float64            `bson:"price,omitempty" json:"price,omitempty"`
	Ratings        float64            `bson:"ratings,omitempty" json:"ratings,omitempty"`
	Status         ClassStatus        `bson:"status,omitempty" json:"status,omitempty"`
	Feedback       string             `bson:"feedback,omitempty" json:"feedback,omitempty"`

	// SameEmailCount is derived per request and never persisted.
	SameEmailCount int `bson:"-" json:"sameEmailCount,omitempty"`

	Extra map[string]interface{} `bson:",inline" json:"-"`
}

type classFields Class

var classKeys = jsonKeys(reflect.TypeOf(classFields{}))

// MarshalJSON encodes the class with its extra fields.
func (c Class) MarshalJSON() ([]byte, error) {
	return marshalDocument(classFields(c), c.Extra, classKeys)
}

// UnmarshalJSON decodes a class, keeping unknown fields in Extra.
func (c *Class) UnmarshalJSON(data []byte) error {
	var fields classFields
	extra, err := unmarshalDocument(data, &fields, classKeys)
	if err != nil {
		return err
	}
	*c = Class(fields)
	c.Extra = extra
	return nil
}

// CountByInstructor tallies classes per instructor email.
func CountByInstructor(classes []*Class) map[string]int {
	counts := make(map[string]int, len(classes))
	for _, c := range classes {
		counts[c.InsEmail]++
	}
	return counts
}

// AnnotateSameEmailCount sets SameEmailCount on every class in targets from
// counts. The counts may come from a different population than targets.
func AnnotateSameEmailCount(targets []*Class, counts map[string]int) {
	for _, c := range targets {
		c.SameEmailCount = counts[c.InsEmail]
	}
}
