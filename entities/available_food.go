package entities

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AvailableFood holds one food listing document for the postgres backend.
type AvailableFood struct {
	ID       uuid.UUID         `gorm:"type:uuid;primary_key" json:"_id"`
	Document datatypes.JSONMap `gorm:"type:jsonb;not null" json:"document"`
	Timestamp
}

func (AvailableFood) TableName() string {
	return "available_food"
}
