package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	estatedomain "github.com/smallbiznis/estatehub/internal/estate/domain"
)

// Fee is a recurring charge levied on every unit of an estate.
type Fee struct {
	ID          snowflake.ID           `gorm:"primaryKey" json:"id"`
	EstateID    snowflake.ID           `gorm:"not null;index" json:"estate_id"`
	Name        string                 `gorm:"not null" json:"name"`
	Description string                 `json:"description,omitempty"`
	Amount      int64                  `gorm:"not null" json:"amount"`
	Frequency   estatedomain.Frequency `gorm:"not null;size:16" json:"frequency"`
	DueDay      int                    `gorm:"not null" json:"due_day"`
	IsActive    bool                   `gorm:"not null" json:"is_active"`
	CreatedAt   time.Time              `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time              `gorm:"not null" json:"updated_at"`
}
