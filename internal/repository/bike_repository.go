package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"gearlog-server/internal/domain"
)

type BikeRepository interface {
	ListBikes() ([]*domain.Bike, error)
	CreateBike(bike *domain.Bike) error
	ListComponents(bikeID int64) ([]*domain.ComponentWithUsage, error)
	CreateComponent(component *domain.Component) error
	FindComponent(bikeID, componentID int64) (*domain.Component, error)
	LinkExists(componentID, activityID int64) (bool, error)
	LinkActivity(componentID, activityID, bikeID int64) error
	ComponentActivities(componentID int64) ([]*domain.Activity, error)
	ComponentUsage(componentID int64) (meters float64, seconds int64, count int, err error)
	DeleteAllUsage() error
	DeleteAllComponents() error
	DeleteAllBikes() error
}

type bikeRepository struct {
	db *sql.DB
}

func NewBikeRepository(db *sql.DB) BikeRepository {
	return &bikeRepository{db: db}
}

func (r *bikeRepository) ListBikes() ([]*domain.Bike, error) {
	rows, err := r.db.Query(`SELECT id, name, description, created_at FROM bikes ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list bikes: %w", err)
	}
	defer rows.Close()

	var bikes []*domain.Bike
	for rows.Next() {
		var b domain.Bike
		if err := rows.Scan(&b.ID, &b.Name, &b.Description, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan bike: %w", err)
		}
		bikes = append(bikes, &b)
	}
	return bikes, rows.Err()
}

func (r *bikeRepository) CreateBike(bike *domain.Bike) error {
	res, err := r.db.Exec(`INSERT INTO bikes (name, description) VALUES (?, ?)`, bike.Name, bike.Description)
	if err != nil {
		return fmt.Errorf("failed to create bike: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read bike id: %w", err)
	}
	bike.ID = id
	return nil
}

func (r *bikeRepository) ListComponents(bikeID int64) ([]*domain.ComponentWithUsage, error) {
	rows, err := r.db.Query(`
		SELECT
			c.id, c.bike_id, c.name, c.component_type, c.install_date, c.install_distance,
			c.service_interval_miles, c.service_interval_time, c.notes,
			COALESCE(SUM(a.distance), 0) AS total_distance_meters,
			COALESCE(SUM(a.moving_time), 0) AS total_moving_time_seconds
		FROM components c
		LEFT JOIN component_usage cu ON c.id = cu.component_id
		LEFT JOIN activities a ON cu.activity_id = a.id
		WHERE c.bike_id = ?
		GROUP BY c.id
		ORDER BY c.name`, bikeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list components: %w", err)
	}
	defer rows.Close()

	var components []*domain.ComponentWithUsage
	for rows.Next() {
		var c domain.ComponentWithUsage
		if err := rows.Scan(&c.ID, &c.BikeID, &c.Name, &c.ComponentType, &c.InstallDate, &c.InstallDistance,
			&c.ServiceIntervalMiles, &c.ServiceIntervalTime, &c.Notes,
			&c.TotalDistanceMeters, &c.TotalMovingTimeSeconds); err != nil {
			return nil, fmt.Errorf("failed to scan component: %w", err)
		}
		components = append(components, &c)
	}
	return components, rows.Err()
}

func (r *bikeRepository) CreateComponent(component *domain.Component) error {
	res, err := r.db.Exec(`
		INSERT INTO components (bike_id, name, component_type, install_date, install_distance, service_interval_miles, service_interval_time, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		component.BikeID,
		component.Name,
		component.ComponentType,
		component.InstallDate,
		component.InstallDistance,
		component.ServiceIntervalMiles,
		component.ServiceIntervalTime,
		component.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to create component: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read component id: %w", err)
	}
	component.ID = id
	return nil
}

func (r *bikeRepository) FindComponent(bikeID, componentID int64) (*domain.Component, error) {
	var c domain.Component
	err := r.db.QueryRow(`
		SELECT id, bike_id, name, component_type, install_date, install_distance, service_interval_miles, service_interval_time, notes
		FROM components WHERE id = ? AND bike_id = ?`, componentID, bikeID).
		Scan(&c.ID, &c.BikeID, &c.Name, &c.ComponentType, &c.InstallDate, &c.InstallDistance,
			&c.ServiceIntervalMiles, &c.ServiceIntervalTime, &c.Notes)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find component: %w", err)
	}
	return &c, nil
}

func (r *bikeRepository) LinkExists(componentID, activityID int64) (bool, error) {
	var id int64
	err := r.db.QueryRow(
		`SELECT id FROM component_usage WHERE component_id = ? AND activity_id = ?`,
		componentID, activityID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check usage link: %w", err)
	}
	return true, nil
}

func (r *bikeRepository) LinkActivity(componentID, activityID, bikeID int64) error {
	_, err := r.db.Exec(
		`INSERT INTO component_usage (component_id, activity_id, bike_id) VALUES (?, ?, ?)`,
		componentID, activityID, bikeID)
	if err != nil {
		return fmt.Errorf("failed to link activity: %w", err)
	}
	return nil
}

func (r *bikeRepository) ComponentActivities(componentID int64) ([]*domain.Activity, error) {
	rows, err := r.db.Query(`
		SELECT a.id, a.strava_id, a.name, a.distance, a.moving_time, a.elapsed_time, a.start_date, a.activity_type, a.created_at
		FROM activities a
		INNER JOIN component_usage cu ON a.id = cu.activity_id
		WHERE cu.component_id = ?
		ORDER BY a.start_date DESC`, componentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list component activities: %w", err)
	}
	defer rows.Close()

	var activities []*domain.Activity
	for rows.Next() {
		var a domain.Activity
		if err := rows.Scan(&a.ID, &a.StravaID, &a.Name, &a.Distance, &a.MovingTime, &a.ElapsedTime,
			&a.StartDate, &a.ActivityType, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, &a)
	}
	return activities, rows.Err()
}

func (r *bikeRepository) ComponentUsage(componentID int64) (float64, int64, int, error) {
	var meters sql.NullFloat64
	var seconds sql.NullInt64
	var count int
	err := r.db.QueryRow(`
		SELECT COALESCE(SUM(a.distance), 0), COALESCE(SUM(a.moving_time), 0), COUNT(a.id)
		FROM component_usage cu
		LEFT JOIN activities a ON cu.activity_id = a.id
		WHERE cu.component_id = ?`, componentID).
		Scan(&meters, &seconds, &count)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to compute component usage: %w", err)
	}
	return meters.Float64, seconds.Int64, count, nil
}

func (r *bikeRepository) DeleteAllUsage() error {
	if _, err := r.db.Exec(`DELETE FROM component_usage`); err != nil {
		return fmt.Errorf("failed to delete component usage: %w", err)
	}
	return nil
}

func (r *bikeRepository) DeleteAllComponents() error {
	if _, err := r.db.Exec(`DELETE FROM components`); err != nil {
		return fmt.Errorf("failed to delete components: %w", err)
	}
	return nil
}

func (r *bikeRepository) DeleteAllBikes() error {
	if _, err := r.db.Exec(`DELETE FROM bikes`); err != nil {
		return fmt.Errorf("failed to delete bikes: %w", err)
	}
	return nil
}
