package petstore

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Pet statuses accepted by the service. The client does not enforce them.
const (
	PetStatusAvailable = "available"
	PetStatusPending   = "pending"
	PetStatusSold      = "sold"
)

// Order statuses accepted by the service.
const (
	OrderStatusPlaced    = "placed"
	OrderStatusApproved  = "approved"
	OrderStatusDelivered = "delivered"
)

// Pet mirrors the service's pet resource.
type Pet struct {
	ID        int64     `json:"id"`
	Category  *Category `json:"category,omitempty"`
	Name      string    `json:"name,omitempty"`
	PhotoURLs []string  `json:"photoUrls,omitempty"`
	Tags      []Tag     `json:"tags,omitempty"`
	Status    string    `json:"status,omitempty"`
}

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
}

type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
}

// MarshalJSON leaves out nil photoUrls and tags but keeps empty ones as [],
// so an explicitly empty sequence survives a round trip.
func (p Pet) MarshalJSON() ([]byte, error) {
	type plain Pet
	out := struct {
		plain
		PhotoURLs *[]string `json:"photoUrls,omitempty"`
		Tags      *[]Tag    `json:"tags,omitempty"`
	}{plain: plain(p)}
	if p.PhotoURLs != nil {
		out.PhotoURLs = &p.PhotoURLs
	}
	if p.Tags != nil {
		out.Tags = &p.Tags
	}
	return json.Marshal(out)
}

// ToJSON encodes the pet as sent on the wire.
func (p Pet) ToJSON() ([]byte, error) { return json.Marshal(p) }

// PetFromJSON decodes a pet body.
func PetFromJSON(data []byte) (Pet, error) {
	var p Pet
	if err := json.Unmarshal(data, &p); err != nil {
		return Pet{}, fmt.Errorf("decode pet: %w", err)
	}
	return p, nil
}

// Order is a store purchase order.
type Order struct {
	ID       int64  `json:"id"`
	PetID    int64  `json:"petId"`
	Quantity int32  `json:"quantity"`
	ShipDate string `json:"shipDate,omitempty"`
	Status   string `json:"status,omitempty"`
	Complete bool   `json:"complete"`
}

// ShipDateLayout is the layout used when writing ship dates.
const ShipDateLayout = "2006-01-02T15:04:05.000Z"

var shipDateLayouts = []string{
	ShipDateLayout,
	"2006-01-02T15:04:05.000-0700",
	time.RFC3339Nano,
}

// ShipTime parses ShipDate. The service echoes dates with a numeric offset,
// so several layouts are accepted; the literal Z layout is read as UTC.
func (o Order) ShipTime() (time.Time, error) {
	raw := strings.TrimSpace(o.ShipDate)
	if raw == "" {
		return time.Time{}, fmt.Errorf("ship date is empty")
	}
	for _, layout := range shipDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("parse ship date %q: unsupported layout", raw)
}

// FormatShipDate renders t in the layout the service expects.
func FormatShipDate(t time.Time) string {
	return t.UTC().Format(ShipDateLayout)
}

// ToJSON encodes the order as sent on the wire.
func (o Order) ToJSON() ([]byte, error) { return json.Marshal(o) }

// OrderFromJSON decodes an order body.
func OrderFromJSON(data []byte) (Order, error) {
	var o Order
	if err := json.Unmarshal(data, &o); err != nil {
		return Order{}, fmt.Errorf("decode order: %w", err)
	}
	return o, nil
}

// User is a store customer account.
type User struct {
	ID         int64  `json:"id"`
	Username   string `json:"username,omitempty"`
	FirstName  string `json:"firstName,omitempty"`
	LastName   string `json:"lastName,omitempty"`
	Email      string `json:"email,omitempty"`
	Password   string `json:"password,omitempty"`
	Phone      string `json:"phone,omitempty"`
	UserStatus int32  `json:"userStatus"`
}

// ToJSON encodes the user as sent on the wire.
func (u User) ToJSON() ([]byte, error) { return json.Marshal(u) }

// UserFromJSON decodes a user body.
func UserFromJSON(data []byte) (User, error) {
	var u User
	if err := json.Unmarshal(data, &u); err != nil {
		return User{}, fmt.Errorf("decode user: %w", err)
	}
	return u, nil
}

// UsersToJSON encodes a batch as a JSON array. A nil batch encodes as [].
func UsersToJSON(users []User) ([]byte, error) {
	if users == nil {
		users = []User{}
	}
	return json.Marshal(users)
}
