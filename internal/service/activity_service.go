package service

import (
	"strconv"

	"gearlog-server/internal/domain"
	"gearlog-server/internal/repository"
)

// ActivityService renders stored activities for the API.
type ActivityService struct {
	activities repository.ActivityRepository
}

func NewActivityService(activities repository.ActivityRepository) *ActivityService {
	return &ActivityService{activities: activities}
}

// List returns every activity, newest first, annotated with display
// figures. Synthetic replacement rows render zeros.
func (s *ActivityService) List() ([]*domain.ActivityView, error) {
	activities, err := s.activities.List()
	if err != nil {
		return nil, err
	}

	views := make([]*domain.ActivityView, 0, len(activities))
	for _, a := range activities {
		views = append(views, NewActivityView(a))
	}
	return views, nil
}

// NewActivityView annotates one activity with the rounded-up display figures.
func NewActivityView(a *domain.Activity) *domain.ActivityView {
	if a.IsReplacement() {
		return &domain.ActivityView{
			Activity:               *a,
			DistanceMilesFormatted: "0",
			MovingTimeFormatted:    "0:00",
			IsReplacementActivity:  true,
		}
	}

	miles := MilesCeil(a.Distance)
	minutes := MinutesCeil(a.MovingTime)
	return &domain.ActivityView{
		Activity:               *a,
		DistanceMiles:          miles,
		MovingTimeMinutes:      minutes,
		DistanceMilesFormatted: strconv.Itoa(miles),
		MovingTimeFormatted:    FormatHoursMinutes(a.MovingTime),
	}
}

func (s *ActivityService) Get(id int64) (*domain.ActivityDetail, error) {
	a, err := s.activities.FindByID(id)
	if err != nil {
		return nil, err
	}
	return &domain.ActivityDetail{
		Activity:            *a,
		DistanceMiles:       formatMiles(a.Distance),
		MovingTimeHours:     formatHours(a.MovingTime),
		MovingTimeFormatted: FormatHoursMinutes(a.MovingTime),
	}, nil
}

// Totals summarizes the whole store.
func (s *ActivityService) Totals() (*domain.ActivityTotalsResponse, error) {
	totals, err := s.activities.Totals()
	if err != nil {
		return nil, err
	}
	return &domain.ActivityTotalsResponse{
		TotalActivities:          totals.TotalActivities,
		TotalDistanceMiles:       formatMiles(totals.DistanceMeters),
		TotalMovingTimeHours:     formatHours(totals.MovingSeconds),
		TotalMovingTimeFormatted: FormatHoursMinutes(totals.MovingSeconds),
	}, nil
}
