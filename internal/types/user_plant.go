package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type PlantStage string

const (
	StageSeed     PlantStage = "seed"
	StageSprout   PlantStage = "sprout"
	StageJuvenile PlantStage = "juvenile"
	StageMature   PlantStage = "mature"
)

// CareActionLogEntry is one row of a plant's embedded action log,
// most recent first. Entries are never mutated after creation.
type CareActionLogEntry struct {
	Type     string    `json:"type"`
	Value    int       `json:"value"`
	XPReward int       `json:"xp_reward"`
	Date     time.Time `json:"date"`
}

// UserPlant is the mutable simulation state for one adopted plant.
// The engine is the only writer of the stat/growth fields; Version is
// bumped on every persisted write so concurrent read-modify-write
// cycles can be detected at the repo boundary.
type UserPlant struct {
	ID             uuid.UUID                               `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID        uuid.UUID                               `gorm:"type:uuid;not null;index;column:owner_id" json:"owner_id"`
	Owner          *User                                   `gorm:"constraint:OnDelete:CASCADE;foreignKey:OwnerID;references:ID" json:"owner,omitempty"`
	TemplateID     uuid.UUID                               `gorm:"type:uuid;not null;index;column:template_id" json:"template_id"`
	Template       *PlantTemplate                          `gorm:"constraint:OnDelete:CASCADE;foreignKey:TemplateID;references:ID" json:"template,omitempty"`
	Nickname       string                                  `gorm:"not null;column:nickname" json:"nickname"`
	PlantedOn      time.Time                               `gorm:"column:planted_on;not null" json:"planted_on"`
	GrowthPoints   int                                     `gorm:"column:growth_points;not null;default:0" json:"growth_points"`
	Hydration      int                                     `gorm:"column:hydration;not null;default:50" json:"hydration"`
	Nutrition      int                                     `gorm:"column:nutrition;not null;default:50" json:"nutrition"`
	Sunlight       int                                     `gorm:"column:sunlight;not null;default:50" json:"sunlight"`
	HealthScore    int                                     `gorm:"column:health_score;not null;default:100" json:"health_score"`
	Stage          PlantStage                              `gorm:"column:stage;not null;default:'seed'" json:"stage"`
	LastActionDate *time.Time                              `gorm:"column:last_action_date" json:"last_action_date"`
	ActionLog      datatypes.JSONSlice[CareActionLogEntry] `gorm:"column:action_log;type:jsonb" json:"action_log"`
	Version        int                                     `gorm:"column:version;not null;default:1" json:"version"`
	CreatedAt      time.Time                               `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time                               `gorm:"not null" json:"updated_at"`
}

func (UserPlant) TableName() string { return "user_plant" }
