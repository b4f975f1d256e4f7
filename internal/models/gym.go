package models

import (
	"time"

	"gorm.io/gorm"
)

// Gym is a registered venue. The geofence is a circle of GeofenceRadiusMeters
// around Latitude/Longitude; zero radius means the configured default.
type Gym struct {
	ID                   uint           `gorm:"primaryKey" json:"id"`
	OwnerID              uint           `gorm:"not null;index" json:"owner_id"`
	Name                 string         `gorm:"size:128;not null" json:"name"`
	Latitude             float64        `gorm:"type:decimal(10,8);not null" json:"latitude"`
	Longitude            float64        `gorm:"type:decimal(11,8);not null" json:"longitude"`
	GeofenceRadiusMeters float64        `gorm:"type:decimal(8,2);default:0" json:"geofence_radius_meters"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"-"`

	Owner User `gorm:"foreignKey:OwnerID" json:"-"`
}

func (Gym) TableName() string {
	return "gyms"
}
