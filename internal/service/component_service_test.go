package service

import (
	"testing"

	"gearlog-server/internal/domain"
	"gearlog-server/internal/repository"
)

type usageLink struct {
	componentID int64
	activityID  int64
	bikeID      int64
}

type mockBikeRepo struct {
	bikes      []*domain.Bike
	components []*domain.Component
	links      []usageLink
	activities map[int64]*domain.Activity
	nextID     int64
}

func newMockBikeRepo() *mockBikeRepo {
	return &mockBikeRepo{
		activities: make(map[int64]*domain.Activity),
		nextID:     1,
	}
}

func (m *mockBikeRepo) ListBikes() ([]*domain.Bike, error) {
	return m.bikes, nil
}

func (m *mockBikeRepo) CreateBike(bike *domain.Bike) error {
	bike.ID = m.nextID
	m.nextID++
	m.bikes = append(m.bikes, bike)
	return nil
}

func (m *mockBikeRepo) ListComponents(bikeID int64) ([]*domain.ComponentWithUsage, error) {
	var out []*domain.ComponentWithUsage
	for _, c := range m.components {
		if c.BikeID != bikeID {
			continue
		}
		meters, seconds, _, _ := m.ComponentUsage(c.ID)
		out = append(out, &domain.ComponentWithUsage{
			Component:              *c,
			TotalDistanceMeters:    meters,
			TotalMovingTimeSeconds: seconds,
		})
	}
	return out, nil
}

func (m *mockBikeRepo) CreateComponent(component *domain.Component) error {
	component.ID = m.nextID
	m.nextID++
	m.components = append(m.components, component)
	return nil
}

func (m *mockBikeRepo) FindComponent(bikeID, componentID int64) (*domain.Component, error) {
	for _, c := range m.components {
		if c.ID == componentID && c.BikeID == bikeID {
			return c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockBikeRepo) LinkExists(componentID, activityID int64) (bool, error) {
	for _, l := range m.links {
		if l.componentID == componentID && l.activityID == activityID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockBikeRepo) LinkActivity(componentID, activityID, bikeID int64) error {
	m.links = append(m.links, usageLink{componentID: componentID, activityID: activityID, bikeID: bikeID})
	return nil
}

func (m *mockBikeRepo) ComponentActivities(componentID int64) ([]*domain.Activity, error) {
	var out []*domain.Activity
	for _, l := range m.links {
		if l.componentID != componentID {
			continue
		}
		if a, ok := m.activities[l.activityID]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockBikeRepo) ComponentUsage(componentID int64) (float64, int64, int, error) {
	var meters float64
	var seconds int64
	count := 0
	for _, l := range m.links {
		if l.componentID != componentID {
			continue
		}
		count++
		if a, ok := m.activities[l.activityID]; ok {
			meters += a.Distance
			seconds += a.MovingTime
		}
	}
	return meters, seconds, count, nil
}

func (m *mockBikeRepo) DeleteAllUsage() error      { m.links = nil; return nil }
func (m *mockBikeRepo) DeleteAllComponents() error { m.components = nil; return nil }
func (m *mockBikeRepo) DeleteAllBikes() error      { m.bikes = nil; return nil }

func TestComponentService_CreateBike(t *testing.T) {
	repo := newMockBikeRepo()
	service := NewComponentService(repo)

	bike, err := service.CreateBike(&domain.CreateBikeRequest{Name: "Gravel Bike"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if bike.ID == 0 {
		t.Error("expected an assigned id")
	}
	if bike.Name != "Gravel Bike" {
		t.Errorf("expected name Gravel Bike, got %s", bike.Name)
	}
}

func TestComponentService_LinkActivities_SkipsExisting(t *testing.T) {
	repo := newMockBikeRepo()
	repo.activities[10] = &domain.Activity{ID: 10, Distance: 16093.4, MovingTime: 3600}
	repo.activities[11] = &domain.Activity{ID: 11, Distance: 16093.4, MovingTime: 1800}
	service := NewComponentService(repo)

	bike, _ := service.CreateBike(&domain.CreateBikeRequest{Name: "Road Bike"})
	component, err := service.CreateComponent(bike.ID, &domain.CreateComponentRequest{
		Name:          "Front Tire",
		ComponentType: "tire",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	linked, err := service.LinkActivities(bike.ID, component.ID, []int64{10, 11})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if linked != 2 {
		t.Errorf("expected 2 linked, got %d", linked)
	}

	// Relinking the same activities creates nothing new.
	linked, err = service.LinkActivities(bike.ID, component.ID, []int64{10, 11})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if linked != 0 {
		t.Errorf("expected 0 linked on repeat, got %d", linked)
	}
	if len(repo.links) != 2 {
		t.Errorf("expected 2 stored links, got %d", len(repo.links))
	}
}

func TestComponentService_ComponentDetail(t *testing.T) {
	repo := newMockBikeRepo()
	repo.activities[10] = &domain.Activity{ID: 10, Name: "Morning Ride", Distance: 16093.4, MovingTime: 5400}
	service := NewComponentService(repo)

	bike, _ := service.CreateBike(&domain.CreateBikeRequest{Name: "Road Bike"})
	component, _ := service.CreateComponent(bike.ID, &domain.CreateComponentRequest{
		Name:          "Chain",
		ComponentType: "drivetrain",
	})
	if _, err := service.LinkActivities(bike.ID, component.ID, []int64{10}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	detail, err := service.ComponentDetail(bike.ID, component.ID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(detail.Activities) != 1 {
		t.Fatalf("expected 1 activity, got %d", len(detail.Activities))
	}
	if detail.Stats.ActivityCount != 1 {
		t.Errorf("expected activity count 1, got %d", detail.Stats.ActivityCount)
	}
	if detail.Stats.TotalDistanceMiles != "10.00" {
		t.Errorf("expected 10.00 miles, got %s", detail.Stats.TotalDistanceMiles)
	}
	if detail.Activities[0].MovingTimeFormatted != "1:30" {
		t.Errorf("expected 1:30, got %s", detail.Activities[0].MovingTimeFormatted)
	}
}

func TestComponentService_ComponentDetail_NotFound(t *testing.T) {
	service := NewComponentService(newMockBikeRepo())

	if _, err := service.ComponentDetail(1, 99); err != repository.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
