package entities

import (
	"time"

	"github.com/google/uuid"
)

type Timestamp struct {
	CreatedAt time.Time `gorm:"type:timestamp" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamp" json:"updated_at"`
}

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name     string    `json:"name"`
	Email    string    `gorm:"uniqueIndex" json:"email"`
	Password string    `json:"-"`
	Role     string    `json:"role"`

	Timestamp
}

// UserProfile holds per-user dietary constraints. Allergies and dislikes are
// comma-joined lower-cased token sets; empty string means empty set.
type UserProfile struct {
	UserID    uuid.UUID `gorm:"type:uuid;primary_key" json:"user_id"`
	Allergies string    `json:"allergies"`
	Dislikes  string    `json:"dislikes"`
	Status    string    `json:"status"` // "", "vegetarian", "vegan"

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
