package domain

import (
	"strings"
	"time"
)

// User is the account and profile of a person using the app.
// AppUserID is the identifier issued by the authentication provider.
type User struct {
	ID               ID         `json:"user_id,omitzero"`
	AppUserID        string     `json:"app_user_id" validate:"required,uuid"`
	Username         string     `json:"username" validate:"required,max=50"`
	Email            string     `json:"email" validate:"required,email"`
	Role             Role       `json:"role" validate:"required,oneof=admin user"`
	FirstName        *string    `json:"first_name"`
	LastName         *string    `json:"last_name"`
	ImageURL         *string    `json:"image_url"`
	IsActive         bool       `json:"is_active"`
	IsPremium        bool       `json:"is_premium"`
	PremiumExpiresAt *time.Time `json:"premium_expires_at"`
	PremiumWillRenew *bool      `json:"premium_will_renew"`
	CreatedAt        time.Time  `json:"created_at,omitzero"`
	UpdatedAt        time.Time  `json:"updated_at,omitzero"`
}

func (u User) Key() ID { return u.ID }

// DisplayName joins first and last name, falling back to the username.
func (u *User) DisplayName() string {
	parts := make([]string, 0, 2)
	for _, p := range []*string{u.FirstName, u.LastName} {
		if p != nil && *p != "" {
			parts = append(parts, *p)
		}
	}
	if len(parts) == 0 {
		return u.Username
	}
	return strings.Join(parts, " ")
}
