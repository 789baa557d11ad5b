package auth

import (
	"github.com/dmejiasc/comandas-backend/internal/users"
)

// LoginRequest carries the credentials posted to /auth/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required,min=1,max=60"`
	Password string `json:"password" validate:"required,min=1,max=128"`
}

// LoginResponse is the successful login payload.
type LoginResponse struct {
	AccessToken string         `json:"access_token"`
	TokenType   string         `json:"token_type"`
	ExpiresIn   int            `json:"expires_in"`
	User        *users.UserDTO `json:"user"`
}
