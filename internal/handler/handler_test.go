package handler

// Test wiring: handlers run over real services and a real SQLite file,
// with only the Strava provider stubbed out.

import (
	"path/filepath"
	"testing"
	"time"

	"gearlog-server/internal/repository"
	"gearlog-server/internal/service"
	"gearlog-server/internal/strava"
	"gearlog-server/internal/websocket"
)

type stubProvider struct {
	activities []strava.Activity
	listErr    error
	refreshErr error
}

func (p *stubProvider) ListActivities(accessToken string, perPage int) ([]strava.Activity, error) {
	if p.listErr != nil {
		return nil, p.listErr
	}
	return p.activities, nil
}

func (p *stubProvider) ExchangeCode(code string) (*strava.TokenData, error) {
	return &strava.TokenData{
		AccessToken:  "access",
		RefreshToken: "refresh",
		ExpiresAt:    time.Now().Add(6 * time.Hour).Unix(),
	}, nil
}

func (p *stubProvider) Refresh(refreshToken string) (*strava.TokenData, error) {
	if p.refreshErr != nil {
		return nil, p.refreshErr
	}
	return &strava.TokenData{
		AccessToken:  "renewed",
		RefreshToken: "rotated",
		ExpiresAt:    time.Now().Add(6 * time.Hour).Unix(),
	}, nil
}

type testEnv struct {
	activities   repository.ActivityRepository
	replacements repository.ReplacementRepository
	tokens       repository.TokenRepository
	provider     *stubProvider
	hub          *websocket.Hub

	categories *CategoryHandler
	stravaAPI  *StravaHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := repository.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	activityRepo := repository.NewActivityRepository(db)
	replacementRepo := repository.NewReplacementRepository(db)
	tokenRepo := repository.NewTokenRepository(db)

	provider := &stubProvider{}
	hub := websocket.NewHub(10*time.Second, 60*time.Second, 54*time.Second)
	go hub.Run()

	statsService := service.NewStatsService(activityRepo, replacementRepo)
	replacementService := service.NewReplacementService(replacementRepo, activityRepo)
	tokenService := service.NewTokenService(tokenRepo, provider)
	syncService := service.NewSyncService(activityRepo, tokenService, provider)

	return &testEnv{
		activities:   activityRepo,
		replacements: replacementRepo,
		tokens:       tokenRepo,
		provider:     provider,
		hub:          hub,
		categories:   NewCategoryHandler(statsService, replacementService, hub),
		stravaAPI:    NewStravaHandler(strava.NewClient("", "", ""), tokenService, syncService, hub),
	}
}
