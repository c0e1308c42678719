package service

// In-memory fakes shared by the service tests.

import (
	"errors"
	"strings"

	"gearlog-server/internal/domain"
	"gearlog-server/internal/repository"
	"gearlog-server/internal/strava"
)

type mockActivityRepo struct {
	activities []*domain.Activity
	nextID     int64

	sumMeters    float64
	sumSeconds   int64
	lastSumSince string
}

func newMockActivityRepo() *mockActivityRepo {
	return &mockActivityRepo{nextID: 1}
}

func (m *mockActivityRepo) Insert(activity *domain.Activity) error {
	for _, a := range m.activities {
		if a.StravaID == activity.StravaID {
			return repository.ErrDuplicateActivity
		}
	}
	activity.ID = m.nextID
	m.nextID++
	m.activities = append(m.activities, activity)
	return nil
}

func (m *mockActivityRepo) ExistsByStravaID(stravaID int64) (bool, error) {
	for _, a := range m.activities {
		if a.StravaID == stravaID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockActivityRepo) List() ([]*domain.Activity, error) {
	return m.activities, nil
}

func (m *mockActivityRepo) FindByID(id int64) (*domain.Activity, error) {
	for _, a := range m.activities {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockActivityRepo) SumUsageSince(sinceDate string) (float64, int64, error) {
	m.lastSumSince = sinceDate
	return m.sumMeters, m.sumSeconds, nil
}

func (m *mockActivityRepo) Totals() (*domain.ActivityTotals, error) {
	totals := &domain.ActivityTotals{TotalActivities: len(m.activities)}
	for _, a := range m.activities {
		totals.DistanceMeters += a.Distance
		totals.MovingSeconds += a.MovingTime
	}
	return totals, nil
}

func (m *mockActivityRepo) HasReplacementEvent(category, date string) (bool, error) {
	for _, a := range m.activities {
		if a.ActivityType == domain.ActivityTypeReplacement &&
			strings.Contains(a.Name, category) && a.StartDay() == date {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockActivityRepo) ToppedOffDates(category string) ([]string, error) {
	var dates []string
	for _, a := range m.activities {
		if a.ActivityType == domain.ActivityTypeReplacement && a.Name == category+" Topped Off" {
			dates = append(dates, a.StartDay())
		}
	}
	return dates, nil
}

func (m *mockActivityRepo) DeleteAll() error {
	m.activities = nil
	return nil
}

type ledgerRow struct {
	category string
	date     string
}

type mockReplacementRepo struct {
	rows []ledgerRow
}

func (m *mockReplacementRepo) Append(category, date string) error {
	m.rows = append(m.rows, ledgerRow{category: category, date: date})
	return nil
}

// Latest mirrors the insertion-order semantics of the real store.
func (m *mockReplacementRepo) Latest(category string) (*domain.ReplacementEvent, error) {
	for i := len(m.rows) - 1; i >= 0; i-- {
		if m.rows[i].category == category {
			return &domain.ReplacementEvent{
				ID:              int64(i + 1),
				Category:        category,
				ReplacementDate: m.rows[i].date,
			}, nil
		}
	}
	return nil, nil
}

func (m *mockReplacementRepo) ListDates(category string) ([]string, error) {
	var dates []string
	for _, r := range m.rows {
		if r.category == category {
			dates = append(dates, r.date)
		}
	}
	return dates, nil
}

func (m *mockReplacementRepo) DeleteByCategory(category string) error {
	var kept []ledgerRow
	for _, r := range m.rows {
		if r.category != category {
			kept = append(kept, r)
		}
	}
	m.rows = kept
	return nil
}

func (m *mockReplacementRepo) DeleteAll() error {
	m.rows = nil
	return nil
}

type mockTokenRepo struct {
	token *domain.StravaToken
}

func (m *mockTokenRepo) Get() (*domain.StravaToken, error) {
	if m.token == nil {
		return nil, repository.ErrNotFound
	}
	copied := *m.token
	return &copied, nil
}

func (m *mockTokenRepo) Replace(token *domain.StravaToken) error {
	token.ID = 1
	m.token = token
	return nil
}

func (m *mockTokenRepo) Update(token *domain.StravaToken) error {
	m.token = token
	return nil
}

func (m *mockTokenRepo) DeleteAll() error {
	m.token = nil
	return nil
}

type mockProvider struct {
	activities []strava.Activity
	listErr    error

	refreshed    *strava.TokenData
	refreshErr   error
	refreshCalls int

	lastAccessToken string
}

func (m *mockProvider) ListActivities(accessToken string, perPage int) ([]strava.Activity, error) {
	m.lastAccessToken = accessToken
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.activities, nil
}

func (m *mockProvider) ExchangeCode(code string) (*strava.TokenData, error) {
	return nil, errors.New("not implemented")
}

func (m *mockProvider) Refresh(refreshToken string) (*strava.TokenData, error) {
	m.refreshCalls++
	if m.refreshErr != nil {
		return nil, m.refreshErr
	}
	return m.refreshed, nil
}
