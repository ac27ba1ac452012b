package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Announcement struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	EstateID  snowflake.ID `gorm:"not null;index" json:"estate_id"`
	CreatedBy snowflake.ID `gorm:"not null" json:"created_by"`
	Title     string       `gorm:"not null" json:"title"`
	Message   string       `gorm:"not null" json:"message"`
	IsActive  bool         `gorm:"not null;index" json:"is_active"`
	CreatedAt time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null" json:"updated_at"`
}
