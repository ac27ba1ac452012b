package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type EstateType string

const (
	EstateTypeGovernment EstateType = "GOVERNMENT"
	EstateTypePrivate    EstateType = "PRIVATE"
)

func (t EstateType) Valid() bool {
	return t == EstateTypeGovernment || t == EstateTypePrivate
}

// Frequency is a billing period. Estates bill in one; fees recur in one.
type Frequency string

const (
	FrequencyMonthly Frequency = "MONTHLY"
	FrequencyYearly  Frequency = "YEARLY"
)

func (f Frequency) Valid() bool {
	return f == FrequencyMonthly || f == FrequencyYearly
}

type Estate struct {
	ID           snowflake.ID `gorm:"primaryKey" json:"id"`
	Name         string       `gorm:"not null" json:"name"`
	Slug         string       `gorm:"not null;uniqueIndex" json:"slug"`
	Type         EstateType   `gorm:"not null;size:16" json:"type"`
	FeeFrequency Frequency    `gorm:"not null;size:16" json:"fee_frequency"`
	Address      string       `json:"address"`
	IsActive     bool         `gorm:"not null" json:"is_active"`
	CreatedAt    time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time    `gorm:"not null" json:"updated_at"`
}
