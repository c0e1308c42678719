// Package strava talks to the Strava OAuth and activity APIs.
package strava

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	defaultAuthorizeURL = "https://www.strava.com/oauth/authorize"
	defaultTokenURL     = "https://www.strava.com/oauth/token"
	defaultAPIBaseURL   = "https://www.strava.com/api/v3"

	// Scope needed to read all of the athlete's activities.
	authScope = "activity:read_all"
)

// Activity is one ride as returned by the provider's activity list.
type Activity struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Distance    float64 `json:"distance"`
	MovingTime  int64   `json:"moving_time"`
	ElapsedTime int64   `json:"elapsed_time"`
	StartDate   string  `json:"start_date"`
	Type        string  `json:"type"`
}

// TokenData is the credential set returned by a token exchange or refresh.
type TokenData struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    int64  `json:"expires_at"`
}

// APIError carries the provider-supplied detail of a failed call.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("strava api error: status %d: %s", e.StatusCode, e.Body)
}

type Client struct {
	clientID     string
	clientSecret string
	redirectURI  string

	// Overridable for tests.
	AuthorizeURL string
	TokenURL     string
	APIBaseURL   string

	client *http.Client
}

func NewClient(clientID, clientSecret, redirectURI string) *Client {
	return &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURI:  redirectURI,
		AuthorizeURL: defaultAuthorizeURL,
		TokenURL:     defaultTokenURL,
		APIBaseURL:   defaultAPIBaseURL,
		client:       &http.Client{Timeout: 30 * time.Second},
	}
}

// Configured reports whether API credentials were provided.
func (c *Client) Configured() bool {
	return c.clientID != "" && c.clientSecret != ""
}

// AuthorizationURL builds the user-facing OAuth authorize URL.
func (c *Client) AuthorizationURL(state string) string {
	q := url.Values{}
	q.Set("client_id", c.clientID)
	q.Set("redirect_uri", c.redirectURI)
	q.Set("response_type", "code")
	q.Set("scope", authScope)
	if state != "" {
		q.Set("state", state)
	}
	return c.AuthorizeURL + "?" + q.Encode()
}

// ExchangeCode trades an authorization code for tokens.
func (c *Client) ExchangeCode(code string) (*TokenData, error) {
	return c.tokenRequest(map[string]string{
		"client_id":     c.clientID,
		"client_secret": c.clientSecret,
		"code":          code,
		"grant_type":    "authorization_code",
	})
}

// Refresh trades a refresh token for a fresh credential set.
func (c *Client) Refresh(refreshToken string) (*TokenData, error) {
	return c.tokenRequest(map[string]string{
		"client_id":     c.clientID,
		"client_secret": c.clientSecret,
		"refresh_token": refreshToken,
		"grant_type":    "refresh_token",
	})
}

func (c *Client) tokenRequest(params map[string]string) (*TokenData, error) {
	form := url.Values{}
	for k, v := range params {
		form.Set(k, v)
	}

	resp, err := c.client.PostForm(c.TokenURL, form)
	if err != nil {
		return nil, fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, readAPIError(resp)
	}

	var token TokenData
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return nil, fmt.Errorf("failed to decode token response: %w", err)
	}
	return &token, nil
}

// ListActivities fetches the athlete's recent activities, newest first.
func (c *Client) ListActivities(accessToken string, perPage int) ([]Activity, error) {
	req, err := http.NewRequest(http.MethodGet, c.APIBaseURL+"/athlete/activities", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	q := req.URL.Query()
	q.Set("per_page", strconv.Itoa(perPage))
	req.URL.RawQuery = q.Encode()

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("activity fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, readAPIError(resp)
	}

	var activities []Activity
	if err := json.NewDecoder(resp.Body).Decode(&activities); err != nil {
		return nil, fmt.Errorf("failed to decode activities: %w", err)
	}
	return activities, nil
}

func readAPIError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return &APIError{StatusCode: resp.StatusCode, Body: string(body)}
}
