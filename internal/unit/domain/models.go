package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type Unit struct {
	ID            snowflake.ID      `gorm:"primaryKey" json:"id"`
	EstateID      snowflake.ID      `gorm:"not null;uniqueIndex:ux_units_estate_number" json:"estate_id"`
	UnitNumber    string            `gorm:"not null;uniqueIndex:ux_units_estate_number" json:"unit_number"`
	Block         string            `json:"block,omitempty"`
	OccupantName  string            `json:"occupant_name,omitempty"`
	OccupantPhone string            `json:"occupant_phone,omitempty"`
	IsOccupied    bool              `gorm:"not null" json:"is_occupied"`
	Metadata      datatypes.JSONMap `json:"metadata,omitempty"`
	CreatedAt     time.Time         `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time         `gorm:"not null" json:"updated_at"`
}
