package service

import (
	"errors"
	"fmt"
	"time"

	"gearlog-server/internal/domain"
	"gearlog-server/internal/repository"
	"gearlog-server/internal/strava"
)

// TokenProvider is the slice of the Strava client the token flow needs.
type TokenProvider interface {
	ExchangeCode(code string) (*strava.TokenData, error)
	Refresh(refreshToken string) (*strava.TokenData, error)
}

// TokenService manages the single stored provider credential set.
type TokenService struct {
	tokens   repository.TokenRepository
	provider TokenProvider
	now      func() time.Time
}

func NewTokenService(tokens repository.TokenRepository, provider TokenProvider) *TokenService {
	return &TokenService{
		tokens:   tokens,
		provider: provider,
		now:      time.Now,
	}
}

// Exchange trades an authorization code for tokens and replaces the stored
// credential set.
func (s *TokenService) Exchange(code string) error {
	data, err := s.provider.ExchangeCode(code)
	if err != nil {
		return fmt.Errorf("token exchange failed: %w", err)
	}
	return s.tokens.Replace(&domain.StravaToken{
		AccessToken:  data.AccessToken,
		RefreshToken: data.RefreshToken,
		ExpiresAt:    data.ExpiresAt,
	})
}

// AccessToken returns a usable access token, refreshing and persisting the
// stored credentials when they have expired.
func (s *TokenService) AccessToken() (string, error) {
	token, err := s.tokens.Get()
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrNoToken
		}
		return "", err
	}

	if !token.Expired(s.now()) {
		return token.AccessToken, nil
	}

	data, err := s.provider.Refresh(token.RefreshToken)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRefreshFailed, err)
	}

	token.AccessToken = data.AccessToken
	token.RefreshToken = data.RefreshToken
	token.ExpiresAt = data.ExpiresAt
	if err := s.tokens.Update(token); err != nil {
		return "", err
	}
	return token.AccessToken, nil
}
