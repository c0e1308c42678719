package service

import "gearlog-server/internal/repository"

// ResetService wipes every table. Single-user tool; the UI double-confirms
// before calling this.
type ResetService struct {
	activities   repository.ActivityRepository
	replacements repository.ReplacementRepository
	bikes        repository.BikeRepository
	tokens       repository.TokenRepository
}

func NewResetService(
	activities repository.ActivityRepository,
	replacements repository.ReplacementRepository,
	bikes repository.BikeRepository,
	tokens repository.TokenRepository,
) *ResetService {
	return &ResetService{
		activities:   activities,
		replacements: replacements,
		bikes:        bikes,
		tokens:       tokens,
	}
}

// ResetAll deletes all data, children before parents.
func (s *ResetService) ResetAll() error {
	if err := s.bikes.DeleteAllUsage(); err != nil {
		return err
	}
	if err := s.replacements.DeleteAll(); err != nil {
		return err
	}
	if err := s.activities.DeleteAll(); err != nil {
		return err
	}
	if err := s.tokens.DeleteAll(); err != nil {
		return err
	}
	if err := s.bikes.DeleteAllComponents(); err != nil {
		return err
	}
	return s.bikes.DeleteAllBikes()
}
