package handler

import "github.com/foodmarket/platform-api/internal/core/domain"

// ErrorResponse is the error envelope rendered for every 4xx/5xx response.
type ErrorResponse struct {
	Error   string              `json:"error"`
	Details []domain.FieldError `json:"details,omitempty"`
}

// --- Request / Response types ---

type registerRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Name     string `json:"name"     validate:"required,max=100"`
	Password string `json:"password" validate:"required,min=8,maxbytes=72"`
	Role     string `json:"role"     validate:"omitempty,oneof=customer market_admin super_admin"`
	Locale   string `json:"locale"   validate:"omitempty,oneof=en ua"`
}

// loginRequest accepts either a JSON body with email, or the OAuth2 password
// form where the email travels as username.
type loginRequest struct {
	Email    string `json:"email"    form:"email"`
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type credentials struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type updateProfileRequest struct {
	Name   *string `json:"name"   validate:"omitempty,max=100"`
	Locale *string `json:"locale" validate:"omitempty,oneof=en ua"`
}

type userResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	Locale    string `json:"locale"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type tokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int64        `json:"expires_in"`
	User        userResponse `json:"user"`
}

type bannerResponse struct {
	Message string `json:"message"`
	Version string `json:"version"`
}
