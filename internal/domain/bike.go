package domain

type Bike struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	CreatedAt   string  `json:"created_at"`
}

type CreateBikeRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
}

type Component struct {
	ID                   int64    `json:"id"`
	BikeID               int64    `json:"bike_id"`
	Name                 string   `json:"name"`
	ComponentType        string   `json:"component_type"`
	InstallDate          *string  `json:"install_date"`
	InstallDistance      float64  `json:"install_distance"`
	ServiceIntervalMiles *float64 `json:"service_interval_miles"`
	ServiceIntervalTime  *int64   `json:"service_interval_time"`
	Notes                *string  `json:"notes"`
}

type CreateComponentRequest struct {
	Name                 string   `json:"name" validate:"required"`
	ComponentType        string   `json:"component_type" validate:"required"`
	InstallDate          *string  `json:"install_date"`
	InstallDistance      float64  `json:"install_distance"`
	ServiceIntervalMiles *float64 `json:"service_interval_miles"`
	ServiceIntervalTime  *int64   `json:"service_interval_time"`
	Notes                *string  `json:"notes"`
}

type LinkActivitiesRequest struct {
	ActivityIDs []int64 `json:"activity_ids" validate:"required"`
}

type LinkActivitiesResponse struct {
	Success bool `json:"success"`
	Linked  int  `json:"linked"`
}

// ComponentWithUsage is a Component annotated with usage accrued through
// its linked activities.
type ComponentWithUsage struct {
	Component
	TotalDistanceMeters     float64 `json:"total_distance_meters"`
	TotalMovingTimeSeconds  int64   `json:"total_moving_time_seconds"`
	TotalDistanceMiles      string  `json:"total_distance_miles"`
	TotalMovingTimeHours    string  `json:"total_moving_time_hours"`
	UsageDistanceMiles      string  `json:"usage_distance_miles"`
}

type ComponentUsageStats struct {
	TotalDistanceMiles   string `json:"total_distance_miles"`
	TotalMovingTimeHours string `json:"total_moving_time_hours"`
	ActivityCount        int    `json:"activity_count"`
}

// ComponentDetail is a component with its linked activities and summed usage.
type ComponentDetail struct {
	Component
	Activities []*ActivityDetail   `json:"activities"`
	Stats      ComponentUsageStats `json:"stats"`
}
