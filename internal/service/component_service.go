package service

import (
	"gearlog-server/internal/domain"
	"gearlog-server/internal/repository"
)

// ComponentService covers the bikes/components CRUD and activity linking.
type ComponentService struct {
	bikes repository.BikeRepository
}

func NewComponentService(bikes repository.BikeRepository) *ComponentService {
	return &ComponentService{bikes: bikes}
}

func (s *ComponentService) ListBikes() ([]*domain.Bike, error) {
	return s.bikes.ListBikes()
}

func (s *ComponentService) CreateBike(req *domain.CreateBikeRequest) (*domain.Bike, error) {
	bike := &domain.Bike{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.bikes.CreateBike(bike); err != nil {
		return nil, err
	}
	return bike, nil
}

func (s *ComponentService) ListComponents(bikeID int64) ([]*domain.ComponentWithUsage, error) {
	components, err := s.bikes.ListComponents(bikeID)
	if err != nil {
		return nil, err
	}
	for _, c := range components {
		c.TotalDistanceMiles = formatMiles(c.TotalDistanceMeters)
		c.TotalMovingTimeHours = formatHours(c.TotalMovingTimeSeconds)
		c.UsageDistanceMiles = formatMiles(c.TotalDistanceMeters - c.InstallDistance)
	}
	return components, nil
}

func (s *ComponentService) CreateComponent(bikeID int64, req *domain.CreateComponentRequest) (*domain.Component, error) {
	component := &domain.Component{
		BikeID:               bikeID,
		Name:                 req.Name,
		ComponentType:        req.ComponentType,
		InstallDate:          req.InstallDate,
		InstallDistance:      req.InstallDistance,
		ServiceIntervalMiles: req.ServiceIntervalMiles,
		ServiceIntervalTime:  req.ServiceIntervalTime,
		Notes:                req.Notes,
	}
	if err := s.bikes.CreateComponent(component); err != nil {
		return nil, err
	}
	return component, nil
}

// LinkActivities attaches activities to a component. Links that already
// exist are skipped; the count of newly created links is returned.
func (s *ComponentService) LinkActivities(bikeID, componentID int64, activityIDs []int64) (int, error) {
	linked := 0
	for _, activityID := range activityIDs {
		exists, err := s.bikes.LinkExists(componentID, activityID)
		if err != nil {
			return linked, err
		}
		if exists {
			continue
		}
		if err := s.bikes.LinkActivity(componentID, activityID, bikeID); err != nil {
			return linked, err
		}
		linked++
	}
	return linked, nil
}

func (s *ComponentService) ComponentDetail(bikeID, componentID int64) (*domain.ComponentDetail, error) {
	component, err := s.bikes.FindComponent(bikeID, componentID)
	if err != nil {
		return nil, err
	}

	activities, err := s.bikes.ComponentActivities(componentID)
	if err != nil {
		return nil, err
	}
	meters, seconds, count, err := s.bikes.ComponentUsage(componentID)
	if err != nil {
		return nil, err
	}

	detail := &domain.ComponentDetail{
		Component:  *component,
		Activities: make([]*domain.ActivityDetail, 0, len(activities)),
		Stats: domain.ComponentUsageStats{
			TotalDistanceMiles:   formatMiles(meters),
			TotalMovingTimeHours: formatHours(seconds),
			ActivityCount:        count,
		},
	}
	for _, a := range activities {
		detail.Activities = append(detail.Activities, &domain.ActivityDetail{
			Activity:            *a,
			DistanceMiles:       formatMiles(a.Distance),
			MovingTimeHours:     formatHours(a.MovingTime),
			MovingTimeFormatted: FormatHoursMinutes(a.MovingTime),
		})
	}
	return detail, nil
}
