package domain

// ActivityTypeReplacement marks synthetic rows that exist only to show a
// maintenance event on the calendar. All other activity_type values come
// straight from the provider.
const ActivityTypeReplacement = "Replacement"

// ActivityTypeRide is the only provider subtype the reconciler persists.
const ActivityTypeRide = "Ride"

// Activity is one stored ride, or one synthetic maintenance event.
type Activity struct {
	ID             int64   `json:"id"`
	StravaID       int64   `json:"strava_id"`
	Name           string  `json:"name"`
	Distance       float64 `json:"distance"`
	MovingTime     int64   `json:"moving_time"`
	ElapsedTime    int64   `json:"elapsed_time"`
	StartDate      string  `json:"start_date"`
	ActivityType   string  `json:"activity_type"`
	CreatedAt      string  `json:"created_at"`
	ComponentCount int     `json:"component_count"`
}

func (a *Activity) IsReplacement() bool {
	return a.ActivityType == ActivityTypeReplacement
}

// StartDay returns the date portion of the start timestamp, zone-naive.
func (a *Activity) StartDay() string {
	if len(a.StartDate) < 10 {
		return a.StartDate
	}
	return a.StartDate[:10]
}

// ActivityView is an Activity annotated with display figures.
type ActivityView struct {
	Activity
	DistanceMiles          int    `json:"distance_miles"`
	MovingTimeMinutes      int    `json:"moving_time_minutes"`
	DistanceMilesFormatted string `json:"distance_miles_formatted"`
	MovingTimeFormatted    string `json:"moving_time_formatted"`
	IsReplacementActivity  bool   `json:"is_replacement"`
}

// ActivityDetail is the single-activity view with unrounded figures.
type ActivityDetail struct {
	Activity
	DistanceMiles       string `json:"distance_miles"`
	MovingTimeHours     string `json:"moving_time_hours"`
	MovingTimeFormatted string `json:"moving_time_formatted"`
}

// ActivityTotals summarizes the whole store.
type ActivityTotals struct {
	TotalActivities int     `json:"total_activities"`
	DistanceMeters  float64 `json:"-"`
	MovingSeconds   int64   `json:"-"`
}

// ActivityTotalsResponse is the formatted totals payload.
type ActivityTotalsResponse struct {
	TotalActivities          int    `json:"total_activities"`
	TotalDistanceMiles       string `json:"total_distance_miles"`
	TotalMovingTimeHours     string `json:"total_moving_time_hours"`
	TotalMovingTimeFormatted string `json:"total_moving_time_formatted"`
}

// SyncResult reports one reconciliation run. Every fetched activity is either
// synced or skipped; nothing is dropped uncounted.
type SyncResult struct {
	Success bool `json:"success"`
	Synced  int  `json:"synced"`
	Skipped int  `json:"skipped"`
	Total   int  `json:"total"`
}
