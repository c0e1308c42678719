package domain

import "time"

// StravaToken is the single stored OAuth credential set for the provider.
type StravaToken struct {
	ID           int64  `json:"id"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    int64  `json:"expires_at"`
	UpdatedAt    string `json:"updated_at"`
}

func (t *StravaToken) Expired(now time.Time) bool {
	return t.ExpiresAt != 0 && now.Unix() >= t.ExpiresAt
}
