package entities

import (
	"time"

	"github.com/google/uuid"
)

// ProductEntry is one batch of a product: the same product with two different
// expiry dates is stored as two independent rows. At most one row exists per
// (user_id, name, unit, expiry_date) including the NULL-expiry case; inserts
// that hit an existing key merge quantities instead. Quantity is always
// positive, a batch consumed down to exactly zero is deleted.
type ProductEntry struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	Name       string     `json:"name"`
	Quantity   float64    `json:"quantity"`
	Unit       string     `json:"unit"`
	ExpiryDate *time.Time `gorm:"type:date" json:"expiry_date,omitempty"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
