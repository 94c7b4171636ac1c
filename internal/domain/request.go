package domain

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Request field names as they appear in JSON and in stored documents.
const (
	FieldFoodID             = "foodId"
	FieldRequestPersonEmail = "requestPersonEmail"
	FieldFoodStatus         = "foodStatus"
)

// StatusPending is the status a request starts in when the requester does
// not supply one. Other values (accepted, rejected, delivered, ...) are set by
// the donator and are not constrained.
const StatusPending = "pending"

// Request is a claim a user makes against a Listing.
//
// RequestPersonEmail identifies the requester and gates deletion.
// DonatorEmail is copied from the claimed listing and gates status changes.
// Empty known fields are omitted when the request is stored or rendered; a
// known field supplied as something other than a string is kept in Extra.
type Request struct {
	ID                 primitive.ObjectID
	FoodID             string
	RequestPersonEmail string
	DonatorEmail       string
	FoodStatus         string
	Extra              map[string]any
}

func (r Request) known() bson.D {
	var d bson.D
	for _, e := range []bson.E{
		{Key: FieldFoodID, Value: r.FoodID},
		{Key: FieldRequestPersonEmail, Value: r.RequestPersonEmail},
		{Key: FieldDonatorEmail, Value: r.DonatorEmail},
		{Key: FieldFoodStatus, Value: r.FoodStatus},
	} {
		if e.Value != "" {
			d = append(d, e)
		}
	}
	return d
}

func (r *Request) assign(fields map[string]any) {
	slots := map[string]*string{
		FieldFoodID:             &r.FoodID,
		FieldRequestPersonEmail: &r.RequestPersonEmail,
		FieldDonatorEmail:       &r.DonatorEmail,
		FieldFoodStatus:         &r.FoodStatus,
	}
	for key, v := range fields {
		if key == idField {
			continue
		}
		if slot, ok := slots[key]; ok {
			if s, ok := asText(v); ok && s != "" {
				*slot = s
				continue
			}
		}
		r.Extra = collectExtra(r.Extra, key, v)
	}
}

// MarshalJSON flattens Extra alongside the known fields.
func (r Request) MarshalJSON() ([]byte, error) {
	known := r.known()
	if !r.ID.IsZero() {
		known = append(known, bson.E{Key: idField, Value: r.ID.Hex()})
	}
	return encodeWithExtra(r.Extra, known)
}

// UnmarshalJSON decodes a caller-supplied request. Any _id in the input is
// ignored; unknown fields (the requester's notes, pickup details, a copy of
// the listing, ...) land in Extra.
func (r *Request) UnmarshalJSON(data []byte) error {
	fields, err := decodeJSONFields(data)
	if err != nil {
		return err
	}
	var decoded Request
	decoded.assign(fields)
	*r = decoded
	return nil
}

// MarshalBSON writes the request with Extra inline.
func (r Request) MarshalBSON() ([]byte, error) {
	return encodeBSONWithExtra(r.ID, r.known(), r.Extra)
}

// UnmarshalBSON reads a stored request.
func (r *Request) UnmarshalBSON(data []byte) error {
	fields, err := decodeBSONFields(data)
	if err != nil {
		return err
	}
	decoded := Request{ID: storedID(fields)}
	decoded.assign(fields)
	*r = decoded
	return nil
}

// Validate checks the fields a new request must carry.
func (r *Request) Validate() error {
	if r.RequestPersonEmail == "" {
		return NewValidationError(FieldRequestPersonEmail, "is required", ErrValidation)
	}
	if r.FoodID == "" {
		return NewValidationError(FieldFoodID, "is required", ErrValidation)
	}
	return checkFieldNames(r.Extra)
}
