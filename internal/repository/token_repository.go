package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"gearlog-server/internal/domain"
)

type TokenRepository interface {
	Get() (*domain.StravaToken, error)
	Replace(token *domain.StravaToken) error
	Update(token *domain.StravaToken) error
	DeleteAll() error
}

type tokenRepository struct {
	db *sql.DB
}

func NewTokenRepository(db *sql.DB) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) Get() (*domain.StravaToken, error) {
	var token domain.StravaToken
	var refresh sql.NullString
	var expires sql.NullInt64
	err := r.db.QueryRow(`
		SELECT id, access_token, refresh_token, expires_at, updated_at
		FROM strava_tokens ORDER BY id DESC LIMIT 1`).
		Scan(&token.ID, &token.AccessToken, &refresh, &expires, &token.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get token: %w", err)
	}
	token.RefreshToken = refresh.String
	token.ExpiresAt = expires.Int64
	return &token, nil
}

// Replace swaps the stored credential set for a new one. There is only
// ever one logical token row.
func (r *tokenRepository) Replace(token *domain.StravaToken) error {
	if _, err := r.db.Exec(`DELETE FROM strava_tokens`); err != nil {
		return fmt.Errorf("failed to clear tokens: %w", err)
	}
	_, err := r.db.Exec(
		`INSERT INTO strava_tokens (access_token, refresh_token, expires_at) VALUES (?, ?, ?)`,
		token.AccessToken, token.RefreshToken, token.ExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	return nil
}

func (r *tokenRepository) Update(token *domain.StravaToken) error {
	_, err := r.db.Exec(
		`UPDATE strava_tokens SET access_token = ?, refresh_token = ?, expires_at = ? WHERE id = ?`,
		token.AccessToken, token.RefreshToken, token.ExpiresAt, token.ID)
	if err != nil {
		return fmt.Errorf("failed to update token: %w", err)
	}
	return nil
}

func (r *tokenRepository) DeleteAll() error {
	if _, err := r.db.Exec(`DELETE FROM strava_tokens`); err != nil {
		return fmt.Errorf("failed to delete tokens: %w", err)
	}
	return nil
}
