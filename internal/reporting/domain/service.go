package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	identity "github.com/smallbiznis/estatehub/internal/identity/domain"
)

//go:generate mockgen -source=service.go -destination=./mocks/mock_service.go -package=mocks

// Service computes payment reports from live fee, unit and payment rows.
// Nothing it returns is stored.
type Service interface {
	FeePaymentStatus(ctx context.Context, p identity.Principal, feeID snowflake.ID) (PaymentStatusReport, error)
	EstateSummary(ctx context.Context, p identity.Principal, estateID snowflake.ID) (EstateSummary, error)
	OverallSummary(ctx context.Context, p identity.Principal) (OverallSummary, error)
}
