package service

import (
	"gearlog-server/internal/domain"
	"gearlog-server/internal/repository"
)

// epochDate makes every activity count when a category has no ledger rows.
const epochDate = "1970-01-01"

// StatsService computes per-category usage accrued since the most recent
// replacement.
type StatsService struct {
	activities   repository.ActivityRepository
	replacements repository.ReplacementRepository
}

func NewStatsService(activities repository.ActivityRepository, replacements repository.ReplacementRepository) *StatsService {
	return &StatsService{
		activities:   activities,
		replacements: replacements,
	}
}

// ComputeStats returns the usage for one category. Category validity is the
// caller's concern; unknown categories simply compute over full history.
//
// The reset boundary is the date of the most recently inserted ledger row
// (insertion order, not date order). Activities dated exactly on that day
// are excluded; every later day counts in full.
func (s *StatsService) ComputeStats(category string) (*domain.CategoryStats, error) {
	latest, err := s.replacements.Latest(category)
	if err != nil {
		return nil, err
	}

	since := epochDate
	if latest != nil {
		since = latest.ReplacementDate
	}

	meters, seconds, err := s.activities.SumUsageSince(since)
	if err != nil {
		return nil, err
	}

	stats := &domain.CategoryStats{
		Mileage: MilesCeil(meters),
		Time:    FormatHoursMinutes(seconds),
	}
	if latest != nil {
		stats.LastReplacement = &latest.ReplacementDate
	}
	return stats, nil
}

// ComputeAllStats maps every category in the fixed set to its stats.
func (s *StatsService) ComputeAllStats() (map[string]*domain.CategoryStats, error) {
	all := make(map[string]*domain.CategoryStats, len(domain.Categories))
	for _, category := range domain.Categories {
		stats, err := s.ComputeStats(category)
		if err != nil {
			return nil, err
		}
		all[category] = stats
	}
	return all, nil
}
