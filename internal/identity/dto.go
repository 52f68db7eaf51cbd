package identity

import (
	"github.com/fitnesspro/fitnesspro-backend/internal/profiles"
	"github.com/fitnesspro/fitnesspro-backend/internal/users"
	"github.com/fitnesspro/fitnesspro-backend/pkg/enums"
)

// LoginInput is the credentials payload for password authentication.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshInput rotates an expired access token into a fresh pair.
type RefreshInput struct {
	AccessToken  string `json:"access_token" validate:"required"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// TokenPairDTO carries a freshly minted access/refresh pair.
type TokenPairDTO struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}

// AuthResultDTO is the login response: the token pair plus the signed-in identity.
type AuthResultDTO struct {
	TokenPairDTO
	User *users.UserDTO `json:"user"`
	Role enums.AppRole  `json:"role"`
}

// AccountDTO is the authenticated user's own view of their account.
type AccountDTO struct {
	User    *users.UserDTO       `json:"user"`
	Profile *profiles.ProfileDTO `json:"profile,omitempty"`
	Roles   []enums.AppRole      `json:"roles"`
}

// UpdateAccountInput changes login credentials. A new password requires the
// current one.
type UpdateAccountInput struct {
	Email           *string `json:"email,omitempty" validate:"omitempty,email"`
	CurrentPassword *string `json:"current_password,omitempty"`
	NewPassword     *string `json:"new_password,omitempty" validate:"omitempty,min=6"`
}
