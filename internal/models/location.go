package models

import "time"

// LocationSample is one GPS reading of a member relative to a gym's geofence.
type LocationSample struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"not null;index:idx_location_user_gym_time" json:"user_id"`
	GymID          uint      `gorm:"not null;index:idx_location_user_gym_time" json:"gym_id"`
	Latitude       float64   `gorm:"type:decimal(10,8);not null" json:"latitude"`
	Longitude      float64   `gorm:"type:decimal(11,8);not null" json:"longitude"`
	AccuracyMeters float64   `gorm:"type:decimal(8,2)" json:"accuracy_meters"`
	DistanceMeters float64   `gorm:"type:decimal(12,2);not null" json:"distance_meters"`
	WithinGeofence bool      `gorm:"not null" json:"within_geofence"`
	RecordedAt     time.Time `gorm:"not null;index:idx_location_user_gym_time" json:"recorded_at"`
	CreatedAt      time.Time `json:"created_at"`

	Proximity         string  `gorm:"-" json:"proximity,omitempty"`
	ProximityProgress float64 `gorm:"-" json:"proximity_progress"`
}

func (LocationSample) TableName() string {
	return "location_samples"
}
