package models

import "time"

type Role string

const (
	RoleFree    Role = "free"
	RolePremium Role = "premium"
)

// User is the signed-in account.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar,omitempty"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}
