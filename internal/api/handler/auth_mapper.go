package handler

import (
	"time"

	"github.com/foodmarket/platform-api/internal/core/domain"
	"github.com/foodmarket/platform-api/internal/core/ports"
)

// --- Request → Service input ---

func toRegisterInput(req registerRequest) ports.RegisterInput {
	return ports.RegisterInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
		Role:     req.Role,
		Locale:   req.Locale,
	}
}

func toCredentials(req loginRequest) credentials {
	email := req.Email
	if email == "" {
		email = req.Username
	}
	return credentials{Email: email, Password: req.Password}
}

func toUserPatch(req updateProfileRequest) domain.UserPatch {
	return domain.UserPatch{Name: req.Name, Locale: req.Locale}
}

// --- Domain → Response ---

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Locale:    u.Locale,
		CreatedAt: u.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: u.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toTokenResponse(res *ports.LoginResult, now time.Time) tokenResponse {
	expiresIn := int64(res.ExpiresAt.Sub(now).Round(time.Second) / time.Second)
	if expiresIn < 0 {
		expiresIn = 0
	}
	return tokenResponse{
		AccessToken: res.AccessToken,
		TokenType:   res.TokenType,
		ExpiresIn:   expiresIn,
		User:        toUserResponse(res.User),
	}
}
