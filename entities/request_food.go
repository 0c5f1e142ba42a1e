package entities

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type RequestFood struct {
	ID       uuid.UUID         `gorm:"type:uuid;primary_key" json:"_id"`
	Document datatypes.JSONMap `gorm:"type:jsonb;not null" json:"document"`
	Timestamp
}

func (RequestFood) TableName() string {
	return "request_food"
}
