package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Category string

const (
	CategoryWater       Category = "WATER"
	CategoryElectricity Category = "ELECTRICITY"
	CategorySecurity    Category = "SECURITY"
	CategoryWaste       Category = "WASTE"
	CategoryOther       Category = "OTHER"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryWater, CategoryElectricity, CategorySecurity, CategoryWaste, CategoryOther:
		return true
	}
	return false
}

type Status string

const (
	StatusOpen     Status = "OPEN"
	StatusResolved Status = "RESOLVED"
)

func (s Status) Valid() bool {
	return s == StatusOpen || s == StatusResolved
}

// Ticket is a maintenance request, optionally tied to a unit.
type Ticket struct {
	ID          snowflake.ID  `gorm:"primaryKey" json:"id"`
	EstateID    snowflake.ID  `gorm:"not null;index" json:"estate_id"`
	UnitID      *snowflake.ID `gorm:"index" json:"unit_id,omitempty"`
	Title       string        `gorm:"not null" json:"title"`
	Description string        `json:"description,omitempty"`
	Category    Category      `gorm:"not null;size:16" json:"category"`
	Status      Status        `gorm:"not null;size:16;index" json:"status"`
	ResolvedAt  *time.Time    `json:"resolved_at,omitempty"`
	CreatedAt   time.Time     `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time     `gorm:"not null" json:"updated_at"`
}

func (Ticket) TableName() string {
	return "maintenance_tickets"
}
