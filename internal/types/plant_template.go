package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PlantTemplate is the static species reference a UserPlant grows
// against. Rows are seeded once and treated as immutable afterwards.
type PlantTemplate struct {
	ID               uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	TemplateName     string                      `gorm:"not null;column:template_name" json:"template_name"`
	ScientificName   *string                     `gorm:"column:scientific_name" json:"scientific_name,omitempty"`
	IdealMoisture    int                         `gorm:"column:ideal_moisture;not null" json:"ideal_moisture"`
	IdealLight       int                         `gorm:"column:ideal_light;not null" json:"ideal_light"`
	IdealTemperature int                         `gorm:"column:ideal_temperature;not null;default:24" json:"ideal_temperature"`
	GrowthDays       int                         `gorm:"column:growth_days;not null;default:120" json:"growth_days"`
	Instructions     *string                     `gorm:"column:instructions" json:"instructions,omitempty"`
	ExampleImages    datatypes.JSONSlice[string] `gorm:"column:example_images;type:jsonb" json:"example_images"`
	CreatedAt        time.Time                   `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time                   `gorm:"not null" json:"updated_at"`
}

func (PlantTemplate) TableName() string { return "plant_template" }
