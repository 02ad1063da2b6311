package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// User represents a marketplace account
type User struct {
	ID                   uuid.UUID   `json:"id"`
	Email                string      `json:"email"`
	Username             null.String `json:"username"`
	PasswordHash         string      `json:"-"`
	ContactWalletAddress null.String `json:"contactWalletAddress"`
	PhoneNumber          null.String `json:"phoneNumber"`
	Is2FAEnabled         bool        `json:"is2faEnabled"`
	ProfilePictureURL    null.String `json:"profilePictureUrl"`
	CreatedAt            time.Time   `json:"createdAt"`
	UpdatedAt            time.Time   `json:"updatedAt"`
}

// PublicProfile is the account view exposed on wallet lookups. Contact
// details stay private.
type PublicProfile struct {
	ID                uuid.UUID   `json:"id"`
	Username          null.String `json:"username"`
	WalletAddress     string      `json:"walletAddress"`
	ProfilePictureURL null.String `json:"profilePictureUrl"`
	CreatedAt         time.Time   `json:"createdAt"`
}

// RegisterInput represents input for registering a user
type RegisterInput struct {
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=8"`
	Username      string `json:"username"`
	WalletAddress string `json:"walletAddress"`
	PhoneNumber   string `json:"phoneNumber"`
}

// LoginInput represents input for user login
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents authentication response. When 2FA is enabled the
// token is withheld until the SMS code is verified.
type AuthResponse struct {
	AccessToken string `json:"accessToken,omitempty"`
	Requires2FA bool   `json:"requires2fa,omitempty"`
	User        *User  `json:"user,omitempty"`
}

// Verify2FAInput represents input for completing a 2FA login
type Verify2FAInput struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required"`
}

// UpdateUserInput represents a partial profile update. Nil fields are left
// untouched.
type UpdateUserInput struct {
	Username     *string `json:"username"`
	PhoneNumber  *string `json:"phoneNumber"`
	Is2FAEnabled *bool   `json:"is2faEnabled"`
}
