package service

import (
	"sort"
	"time"

	"gearlog-server/internal/domain"
	"gearlog-server/internal/repository"
)

// ReplacementService owns the ledger write path and the history views.
type ReplacementService struct {
	replacements repository.ReplacementRepository
	activities   repository.ActivityRepository
	now          func() time.Time
}

func NewReplacementService(replacements repository.ReplacementRepository, activities repository.ActivityRepository) *ReplacementService {
	return &ReplacementService{
		replacements: replacements,
		activities:   activities,
		now:          time.Now,
	}
}

// Record handles one replace request. Unless the action is calendar-only or
// topped-off, a ledger row is appended; in every case a synthetic calendar
// activity is created, deduplicated per (category, date) except for
// topped-off events, which always get their own entry.
func (s *ReplacementService) Record(req *domain.RecordReplacementRequest) (*domain.RecordReplacementResponse, error) {
	if !domain.IsValidCategory(req.Category) {
		return nil, ErrInvalidCategory
	}

	date := req.Date
	if date == "" {
		date = s.now().UTC().Format("2006-01-02")
	}

	action := req.Action()

	if action == domain.ActionReplacement {
		if err := s.replacements.Append(req.Category, date); err != nil {
			return nil, err
		}
	}

	if err := s.createCalendarActivity(req.Category, date, action); err != nil {
		return nil, err
	}

	return &domain.RecordReplacementResponse{
		Success:         true,
		ReplacementDate: date,
		ToppedOff:       action == domain.ActionToppedOff,
	}, nil
}

func (s *ReplacementService) createCalendarActivity(category, date string, action domain.ReplacementAction) error {
	// Topped-off events are visually distinct from full replacements and
	// always get their own calendar entry, even on a day that already has one.
	if action != domain.ActionToppedOff {
		exists, err := s.activities.HasReplacementEvent(category, date)
		if err != nil {
			return err
		}
		if exists {
			return nil
		}
	}

	activity := &domain.Activity{
		// Negated unix-milli timestamp: guaranteed not to collide with any
		// real provider id.
		StravaID:     -s.now().UnixMilli(),
		Name:         calendarActivityName(category, action),
		StartDate:    date + "T00:00:00Z",
		ActivityType: domain.ActivityTypeReplacement,
	}
	return s.activities.Insert(activity)
}

// calendarActivityName derives the display name shown on the calendar. The
// wording is fixed per category and action kind.
func calendarActivityName(category string, action domain.ReplacementAction) string {
	if action == domain.ActionToppedOff {
		return category + " Topped Off"
	}
	switch category {
	case domain.CategoryChain:
		return category + " Rewaxed"
	case domain.CategoryPowerMeterBattery, domain.CategorySystemBattery:
		return category + " recharged"
	default:
		return category + " replaced"
	}
}

// History returns every category's maintenance events, date-descending.
// Ledger rows appear as "replacement"; calendar-only topped-off events,
// which never touch the ledger, appear as "toppedOff".
func (s *ReplacementService) History() (map[string][]domain.HistoryEntry, error) {
	history := make(map[string][]domain.HistoryEntry, len(domain.Categories))

	for _, category := range domain.Categories {
		dates, err := s.replacements.ListDates(category)
		if err != nil {
			return nil, err
		}
		toppedOff, err := s.activities.ToppedOffDates(category)
		if err != nil {
			return nil, err
		}

		entries := make([]domain.HistoryEntry, 0, len(dates)+len(toppedOff))
		for _, d := range dates {
			entries = append(entries, domain.HistoryEntry{Date: d, Type: domain.HistoryTypeReplacement})
		}
		for _, d := range toppedOff {
			entries = append(entries, domain.HistoryEntry{Date: d, Type: domain.HistoryTypeToppedOff})
		}

		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Date > entries[j].Date
		})
		history[category] = entries
	}

	return history, nil
}

// ResetHistory clears one category's ledger rows. Calendar activities are
// left untouched.
func (s *ReplacementService) ResetHistory(category string) error {
	if !domain.IsValidCategory(category) {
		return ErrInvalidCategory
	}
	return s.replacements.DeleteByCategory(category)
}
