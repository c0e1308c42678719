package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"gearlog-server/internal/domain"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// ErrDuplicateActivity is returned when an insert violates the strava_id
// uniqueness constraint. That constraint is the only safeguard against
// concurrent syncs inserting the same ride twice.
var ErrDuplicateActivity = errors.New("activity already exists")

type ActivityRepository interface {
	Insert(activity *domain.Activity) error
	ExistsByStravaID(stravaID int64) (bool, error)
	List() ([]*domain.Activity, error)
	FindByID(id int64) (*domain.Activity, error)
	SumUsageSince(sinceDate string) (meters float64, seconds int64, err error)
	Totals() (*domain.ActivityTotals, error)
	HasReplacementEvent(category, date string) (bool, error)
	ToppedOffDates(category string) ([]string, error)
	DeleteAll() error
}

type activityRepository struct {
	db *sql.DB
}

func NewActivityRepository(db *sql.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Insert(activity *domain.Activity) error {
	res, err := r.db.Exec(
		`INSERT INTO activities (strava_id, name, distance, moving_time, elapsed_time, start_date, activity_type)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		activity.StravaID,
		activity.Name,
		activity.Distance,
		activity.MovingTime,
		activity.ElapsedTime,
		activity.StartDate,
		activity.ActivityType,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateActivity
		}
		return fmt.Errorf("failed to insert activity: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read activity id: %w", err)
	}
	activity.ID = id
	return nil
}

func (r *activityRepository) ExistsByStravaID(stravaID int64) (bool, error) {
	var id int64
	err := r.db.QueryRow(`SELECT id FROM activities WHERE strava_id = ?`, stravaID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check activity: %w", err)
	}
	return true, nil
}

func (r *activityRepository) List() ([]*domain.Activity, error) {
	rows, err := r.db.Query(`
		SELECT
			a.id, a.strava_id, a.name, a.distance, a.moving_time, a.elapsed_time,
			a.start_date, a.activity_type, a.created_at,
			(SELECT COUNT(*) FROM component_usage cu WHERE cu.activity_id = a.id) AS component_count
		FROM activities a
		ORDER BY a.start_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	var activities []*domain.Activity
	for rows.Next() {
		var a domain.Activity
		if err := rows.Scan(&a.ID, &a.StravaID, &a.Name, &a.Distance, &a.MovingTime, &a.ElapsedTime,
			&a.StartDate, &a.ActivityType, &a.CreatedAt, &a.ComponentCount); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, &a)
	}
	return activities, rows.Err()
}

func (r *activityRepository) FindByID(id int64) (*domain.Activity, error) {
	var a domain.Activity
	err := r.db.QueryRow(`
		SELECT id, strava_id, name, distance, moving_time, elapsed_time, start_date, activity_type, created_at
		FROM activities WHERE id = ?`, id).
		Scan(&a.ID, &a.StravaID, &a.Name, &a.Distance, &a.MovingTime, &a.ElapsedTime,
			&a.StartDate, &a.ActivityType, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find activity: %w", err)
	}
	return &a, nil
}

// SumUsageSince totals distance and moving time over real activities whose
// date portion is strictly after sinceDate. Activities dated exactly on
// sinceDate are excluded: the reset boundary is exclusive on the replacement
// day itself. The comparison is on the raw date prefix, zone-naive.
func (r *activityRepository) SumUsageSince(sinceDate string) (float64, int64, error) {
	var meters sql.NullFloat64
	var seconds sql.NullInt64
	err := r.db.QueryRow(`
		SELECT SUM(distance), SUM(moving_time)
		FROM activities
		WHERE SUBSTR(start_date, 1, 10) > ? AND activity_type != ?`,
		sinceDate, domain.ActivityTypeReplacement).
		Scan(&meters, &seconds)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to sum usage: %w", err)
	}
	return meters.Float64, seconds.Int64, nil
}

func (r *activityRepository) Totals() (*domain.ActivityTotals, error) {
	var totals domain.ActivityTotals
	var meters sql.NullFloat64
	var seconds sql.NullInt64
	err := r.db.QueryRow(`
		SELECT COUNT(*), SUM(distance), SUM(moving_time) FROM activities`).
		Scan(&totals.TotalActivities, &meters, &seconds)
	if err != nil {
		return nil, fmt.Errorf("failed to compute totals: %w", err)
	}
	totals.DistanceMeters = meters.Float64
	totals.MovingSeconds = seconds.Int64
	return &totals, nil
}

// HasReplacementEvent reports whether a synthetic calendar activity already
// exists for the category on the given date.
func (r *activityRepository) HasReplacementEvent(category, date string) (bool, error) {
	var id int64
	err := r.db.QueryRow(`
		SELECT id FROM activities
		WHERE activity_type = ? AND name LIKE ? AND DATE(start_date) = ?`,
		domain.ActivityTypeReplacement, "%"+category+"%", date).
		Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check replacement event: %w", err)
	}
	return true, nil
}

func (r *activityRepository) ToppedOffDates(category string) ([]string, error) {
	rows, err := r.db.Query(`
		SELECT SUBSTR(start_date, 1, 10) FROM activities
		WHERE activity_type = ? AND name = ?
		ORDER BY start_date DESC`,
		domain.ActivityTypeReplacement, category+" Topped Off")
	if err != nil {
		return nil, fmt.Errorf("failed to list topped-off dates: %w", err)
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan topped-off date: %w", err)
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

func (r *activityRepository) DeleteAll() error {
	if _, err := r.db.Exec(`DELETE FROM activities`); err != nil {
		return fmt.Errorf("failed to delete activities: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	// modernc.org/sqlite reports constraint failures in the error text.
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
