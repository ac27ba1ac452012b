package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	estatedomain "github.com/smallbiznis/estatehub/internal/estate/domain"
	paymentdomain "github.com/smallbiznis/estatehub/internal/payment/domain"
)

// Report names used for metrics and spans.
const (
	ReportFeePaymentStatus = "fee_payment_status"
	ReportEstateSummary    = "estate_summary"
	ReportOverallSummary   = "overall_summary"
)

// Warning codes attached to summaries.
const (
	WarningCollectedExceedsExpected = "collected_exceeds_expected"
	WarningCrossEstatePayment       = "cross_estate_payment"
)

// Warning flags data that was excluded or clamped while computing a summary.
type Warning struct {
	Code      string        `json:"code"`
	EstateID  snowflake.ID  `json:"estate_id"`
	FeeID     *snowflake.ID `json:"fee_id,omitempty"`
	PaymentID *snowflake.ID `json:"payment_id,omitempty"`
	UnitID    *snowflake.ID `json:"unit_id,omitempty"`
	Message   string        `json:"message"`
}

type UnitPaymentStatus struct {
	UnitID     snowflake.ID         `json:"unit_id"`
	UnitNumber string               `json:"unit_number"`
	Block      string               `json:"block,omitempty"`
	Status     paymentdomain.Status `json:"status"`
	AmountPaid int64                `json:"amount_paid"`
	PaidAt     *time.Time           `json:"paid_at,omitempty"`
}

// PaymentStatusReport lists every unit of the fee's estate with its status for
// that fee. PaidCount + UnpaidCount always equals TotalUnits.
type PaymentStatusReport struct {
	FeeID       snowflake.ID           `json:"fee_id"`
	FeeName     string                 `json:"fee_name"`
	EstateID    snowflake.ID           `json:"estate_id"`
	Amount      int64                  `json:"amount"`
	Frequency   estatedomain.Frequency `json:"frequency"`
	TotalUnits  int                    `json:"total_units"`
	PaidCount   int                    `json:"paid_count"`
	UnpaidCount int                    `json:"unpaid_count"`
	Units       []UnitPaymentStatus    `json:"units"`
	GeneratedAt time.Time              `json:"generated_at"`
}

type FeeSummary struct {
	FeeID     snowflake.ID           `json:"fee_id"`
	Name      string                 `json:"name"`
	Amount    int64                  `json:"amount"`
	Frequency estatedomain.Frequency `json:"frequency"`
	IsActive  bool                   `json:"is_active"`
	Expected  int64                  `json:"expected"`
	Collected int64                  `json:"collected"`
	PaidCount int                    `json:"paid_count"`
}

// EstateSummary totals are expressed per billing period of the estate.
// TotalCollected covers PAID payments of every fee. InactiveCollected is the
// part of it paid against deactivated fees; it is excluded from Outstanding
// since those fees expect nothing.
type EstateSummary struct {
	EstateID          snowflake.ID           `json:"estate_id"`
	EstateName        string                 `json:"estate_name"`
	FeeFrequency      estatedomain.Frequency `json:"fee_frequency"`
	TotalUnits        int                    `json:"total_units"`
	TotalExpected     int64                  `json:"total_expected"`
	TotalCollected    int64                  `json:"total_collected"`
	InactiveCollected int64                  `json:"inactive_collected"`
	Outstanding       int64                  `json:"outstanding"`
	Fees              []FeeSummary           `json:"fees"`
	Warnings          []Warning              `json:"warnings"`
	GeneratedAt       time.Time              `json:"generated_at"`
}

// OverallSummary grand totals are the sums of the per-estate figures.
type OverallSummary struct {
	Estates        []EstateSummary `json:"estates"`
	TotalExpected  int64           `json:"total_expected"`
	TotalCollected int64           `json:"total_collected"`
	Outstanding    int64           `json:"outstanding"`
	Warnings       []Warning       `json:"warnings"`
	GeneratedAt    time.Time       `json:"generated_at"`
}
