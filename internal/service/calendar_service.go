package service

import (
	"fmt"
	"time"

	"gearlog-server/internal/domain"
	"gearlog-server/internal/repository"
)

// CalendarService projects activities onto a month-grid calendar. Day
// bucketing happens in one fixed reference zone, not UTC and not the
// server's local zone, so a ride logged just after local midnight lands on
// the right cell.
type CalendarService struct {
	activities repository.ActivityRepository
	location   *time.Location
}

func NewCalendarService(activities repository.ActivityRepository, location *time.Location) *CalendarService {
	return &CalendarService{
		activities: activities,
		location:   location,
	}
}

// GroupByLocalDate buckets activities by their calendar day in the
// reference zone. Synthetic replacement rows are bucketed exactly like
// real rides.
func (s *CalendarService) GroupByLocalDate(activities []*domain.Activity) map[string][]*domain.ActivityView {
	grouped := make(map[string][]*domain.ActivityView)
	for _, a := range activities {
		day := s.localDay(a)
		grouped[day] = append(grouped[day], NewActivityView(a))
	}
	return grouped
}

func (s *CalendarService) localDay(a *domain.Activity) string {
	t, err := time.Parse(time.RFC3339, a.StartDate)
	if err != nil {
		// Not a full timestamp; fall back to the raw date prefix.
		return a.StartDay()
	}
	return t.In(s.location).Format("2006-01-02")
}

// BuildCalendar returns month grids spanning from the month of the latest
// activity down to the month of the earliest, most recent first. Each week
// row holds seven cells; leading cells before the 1st are empty
// placeholders and the final week is emitted as-is.
func (s *CalendarService) BuildCalendar() ([]*domain.CalendarMonth, error) {
	activities, err := s.activities.List()
	if err != nil {
		return nil, err
	}

	grouped := s.GroupByLocalDate(activities)
	if len(grouped) == 0 {
		return []*domain.CalendarMonth{}, nil
	}

	var minDay, maxDay string
	for day := range grouped {
		if minDay == "" || day < minDay {
			minDay = day
		}
		if day > maxDay {
			maxDay = day
		}
	}

	first, err := time.Parse("2006-01-02", minDay)
	if err != nil {
		return nil, fmt.Errorf("bad calendar day %q: %w", minDay, err)
	}
	last, err := time.Parse("2006-01-02", maxDay)
	if err != nil {
		return nil, fmt.Errorf("bad calendar day %q: %w", maxDay, err)
	}

	end := time.Date(first.Year(), first.Month(), 1, 0, 0, 0, 0, time.UTC)
	cursor := time.Date(last.Year(), last.Month(), 1, 0, 0, 0, 0, time.UTC)

	var months []*domain.CalendarMonth
	for !cursor.Before(end) {
		months = append(months, s.buildMonth(cursor, grouped))
		cursor = cursor.AddDate(0, -1, 0)
	}
	return months, nil
}

func (s *CalendarService) buildMonth(first time.Time, grouped map[string][]*domain.ActivityView) *domain.CalendarMonth {
	month := &domain.CalendarMonth{
		Year:  first.Year(),
		Month: int(first.Month()),
		Label: first.Format("January 2006"),
	}

	lastDay := first.AddDate(0, 1, -1).Day()

	week := make([]domain.CalendarCell, 0, 7)
	for i := 0; i < int(first.Weekday()); i++ {
		week = append(week, domain.CalendarCell{})
	}

	for day := 1; day <= lastDay; day++ {
		date := fmt.Sprintf("%04d-%02d-%02d", first.Year(), int(first.Month()), day)
		week = append(week, domain.CalendarCell{
			Day:        day,
			Date:       date,
			Activities: grouped[date],
		})
		if len(week) == 7 {
			month.Weeks = append(month.Weeks, week)
			week = make([]domain.CalendarCell, 0, 7)
		}
	}

	if len(week) > 0 {
		month.Weeks = append(month.Weeks, week)
	}
	return month
}
