package service

import (
	"context"

	"github.com/pixmart/pixmart/internal/auth"
	"github.com/pixmart/pixmart/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// AuthService authenticates the dashboard admin
type AuthService struct {
	login        string
	passwordHash string
	token        *auth.AuthToken
}

// NewAuthService creates new AuthService instance
func NewAuthService(login, passwordHash string, token *auth.AuthToken) *AuthService {
	return &AuthService{
		login:        login,
		passwordHash: passwordHash,
		token:        token,
	}
}

// Login checks credentials and returns a signed token
func (as *AuthService) Login(_ context.Context, login, password string) (string, error) {
	if login != as.login {
		return "", models.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(as.passwordHash), []byte(password)); err != nil {
		return "", models.ErrInvalidCredentials
	}

	return as.token.CreateToken(login)
}
