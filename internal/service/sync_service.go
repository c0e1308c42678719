package service

import (
	"errors"

	"gearlog-server/internal/domain"
	"gearlog-server/internal/repository"
	"gearlog-server/internal/strava"
)

// syncPageSize is the provider's maximum page size.
const syncPageSize = 200

// ActivityProvider is the slice of the Strava client the reconciler needs.
type ActivityProvider interface {
	ListActivities(accessToken string, perPage int) ([]strava.Activity, error)
}

// SyncService reconciles fetched provider activities into the store.
type SyncService struct {
	activities repository.ActivityRepository
	tokens     *TokenService
	provider   ActivityProvider
}

func NewSyncService(activities repository.ActivityRepository, tokens *TokenService, provider ActivityProvider) *SyncService {
	return &SyncService{
		activities: activities,
		tokens:     tokens,
		provider:   provider,
	}
}

// Sync fetches the athlete's recent activities and merges them in. Each
// fetched activity is inserted unless it is already stored or is not a
// plain outdoor ride; both cases count as skipped. Inserts are per-item,
// so a run that fails partway leaves earlier inserts committed and is safe
// to retry.
func (s *SyncService) Sync() (*domain.SyncResult, error) {
	accessToken, err := s.tokens.AccessToken()
	if err != nil {
		return nil, err
	}

	fetched, err := s.provider.ListActivities(accessToken, syncPageSize)
	if err != nil {
		return nil, err
	}

	result := &domain.SyncResult{Success: true, Total: len(fetched)}

	for _, a := range fetched {
		exists, err := s.activities.ExistsByStravaID(a.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			result.Skipped++
			continue
		}

		// Virtual and indoor rides are discarded, but still counted.
		if a.Type != domain.ActivityTypeRide {
			result.Skipped++
			continue
		}

		activity := &domain.Activity{
			StravaID:     a.ID,
			Name:         a.Name,
			Distance:     a.Distance,
			MovingTime:   a.MovingTime,
			ElapsedTime:  a.ElapsedTime,
			StartDate:    a.StartDate,
			ActivityType: a.Type,
		}
		if err := s.activities.Insert(activity); err != nil {
			// A concurrent sync won the race for this ride; the uniqueness
			// constraint keeps the store consistent either way.
			if errors.Is(err, repository.ErrDuplicateActivity) {
				result.Skipped++
				continue
			}
			return nil, err
		}
		result.Synced++
	}

	return result, nil
}
