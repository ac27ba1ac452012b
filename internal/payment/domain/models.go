package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Method string

const (
	MethodBankTransfer Method = "BANK_TRANSFER"
	MethodCash         Method = "CASH"
)

func (m Method) Valid() bool {
	return m == MethodBankTransfer || m == MethodCash
}

type Status string

const (
	StatusUnpaid Status = "UNPAID"
	StatusPaid   Status = "PAID"
)

func (s Status) Valid() bool {
	return s == StatusUnpaid || s == StatusPaid
}

// Payment records one unit's settlement of one fee. EstateID is copied from
// the fee when the payment is recorded.
type Payment struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	EstateID  snowflake.ID `gorm:"not null;index" json:"estate_id"`
	FeeID     snowflake.ID `gorm:"not null;index:ix_payments_fee_unit" json:"fee_id"`
	UnitID    snowflake.ID `gorm:"not null;index:ix_payments_fee_unit" json:"unit_id"`
	Amount    int64        `gorm:"not null" json:"amount"`
	Method    Method       `gorm:"not null;size:32" json:"method"`
	Status    Status       `gorm:"not null;size:16;index" json:"status"`
	Reference string       `json:"reference,omitempty"`
	PaidAt    *time.Time   `json:"paid_at,omitempty"`
	CreatedAt time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null" json:"updated_at"`
}
