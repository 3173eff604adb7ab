package service

import (
	"context"
	"fmt"

	"hospital-inventory-dashboard/internal/apiclient"
	"hospital-inventory-dashboard/internal/models"
)

type AuthService struct {
	client *apiclient.Client
}

func NewAuthService(client *apiclient.Client) *AuthService {
	return &AuthService{client: client}
}

// Login exchanges credentials for tokens and stores both
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.Tokens, error) {
	var tokens models.Tokens
	req := models.LoginRequest{Email: email, Password: password}
	if err := s.client.Post(ctx, "/api/auth/login/", req, &tokens); err != nil {
		return nil, err
	}
	if err := s.storeTokens(&tokens); err != nil {
		return nil, err
	}
	return &tokens, nil
}

// Register signs up a hospital admin. When the backend returns tokens the
// new user is signed in right away.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.RegisterResponse, error) {
	var resp models.RegisterResponse
	if err := s.client.Post(ctx, "/api/auth/register/", req, &resp); err != nil {
		return nil, err
	}
	if resp.Tokens != nil {
		if err := s.storeTokens(resp.Tokens); err != nil {
			return nil, err
		}
	}
	return &resp, nil
}

// Logout invalidates the session server-side, then clears the local one
func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.client.Post(ctx, "/api/auth/logout/", nil, nil); err != nil {
		return err
	}
	return s.client.Store().Clear()
}

// Profile fetches the user the current access token belongs to
func (s *AuthService) Profile(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := s.client.Get(ctx, "/api/auth/profile/", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *AuthService) storeTokens(tokens *models.Tokens) error {
	store := s.client.Store()
	if err := store.SetAccessToken(tokens.Access); err != nil {
		return fmt.Errorf("store access token: %w", err)
	}
	if err := store.SetRefreshToken(tokens.Refresh); err != nil {
		return fmt.Errorf("store refresh token: %w", err)
	}
	return nil
}
