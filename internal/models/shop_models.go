package models

import "time"

// Shop represents a single pharmacy tenant. The shop_id is chosen by the
// owner at registration and never changes afterwards.
type Shop struct {
	ShopID       string    `json:"shop_id" db:"shop_id"`
	Name         string    `json:"name" db:"name"`
	Location     string    `json:"location" db:"location"` // free text, usually a map link or address
	PasswordHash string    `json:"-" db:"password_hash"`   // '-' means don't send in JSON response
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
