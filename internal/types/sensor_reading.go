package types

import (
	"time"

	"github.com/google/uuid"
)

// SensorReading is a write-once audit row for one IoT packet. The
// engine consumes the same values to update the plant, but the raw
// packet is kept separately so history survives later plant writes.
type SensorReading struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	PlantID     uuid.UUID  `gorm:"type:uuid;not null;index;column:plant_id" json:"plant_id"`
	Plant       *UserPlant `gorm:"constraint:OnDelete:CASCADE;foreignKey:PlantID;references:ID" json:"plant,omitempty"`
	Moisture    *float64   `gorm:"column:moisture" json:"moisture,omitempty"`
	Temperature *float64   `gorm:"column:temperature" json:"temperature,omitempty"`
	Humidity    *float64   `gorm:"column:humidity" json:"humidity,omitempty"`
	Light       *float64   `gorm:"column:light" json:"light,omitempty"`
	RecordedAt  time.Time  `gorm:"column:recorded_at;not null" json:"recorded_at"`
	CreatedAt   time.Time  `gorm:"not null" json:"created_at"`
}

func (SensorReading) TableName() string { return "sensor_reading" }
