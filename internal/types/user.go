package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type User struct {
	ID        uuid.UUID                  `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string                     `gorm:"not null;column:name" json:"name"`
	Email     string                     `gorm:"uniqueIndex;not null;column:email" json:"email"`
	XP        int                        `gorm:"column:xp;not null;default:0" json:"xp"`
	Level     int                        `gorm:"column:level;not null;default:1" json:"level"`
	Streak    int                        `gorm:"column:streak;not null;default:0" json:"streak"`
	Badges    datatypes.JSONSlice[string] `gorm:"column:badges;type:jsonb" json:"badges"`
	CreatedAt time.Time                  `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time                  `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string { return "user" }
