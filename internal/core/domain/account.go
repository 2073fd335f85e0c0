package domain

import "time"

const (
	RoleAdmin = "admin"
	RoleBuyer = "buyer"
)

// Account models an authenticated actor: an operator (admin) or an importer
// comparing sourcing options (buyer).
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Company      string    `json:"company,omitempty"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	BuyerID      string    `json:"buyer_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
