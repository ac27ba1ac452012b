package service

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/estatehub/internal/authorization"
	"github.com/smallbiznis/estatehub/internal/clock"
	estatedomain "github.com/smallbiznis/estatehub/internal/estate/domain"
	feedomain "github.com/smallbiznis/estatehub/internal/fee/domain"
	identity "github.com/smallbiznis/estatehub/internal/identity/domain"
	obsmetrics "github.com/smallbiznis/estatehub/internal/observability/metrics"
	"github.com/smallbiznis/estatehub/internal/observability/tracing"
	paymentdomain "github.com/smallbiznis/estatehub/internal/payment/domain"
	"github.com/smallbiznis/estatehub/internal/reporting/domain"
	unitdomain "github.com/smallbiznis/estatehub/internal/unit/domain"
	"github.com/smallbiznis/estatehub/pkg/money"
	"github.com/smallbiznis/estatehub/pkg/repository"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const tracerName = "estatehub/reporting"

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	Clock       clock.Clock
	Guard       *authorization.Guard
	Metrics     *obsmetrics.Metrics `optional:"true"`
	EstateRepo  estatedomain.Repository
	UnitRepo    unitdomain.Repository
	FeeRepo     feedomain.Repository
	PaymentRepo paymentdomain.Repository
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	clock       clock.Clock
	guard       *authorization.Guard
	metrics     *obsmetrics.Metrics
	tracer      trace.Tracer
	estateRepo  estatedomain.Repository
	unitRepo    unitdomain.Repository
	feeRepo     feedomain.Repository
	paymentRepo paymentdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("reporting.service"),
		clock:       p.Clock,
		guard:       p.Guard,
		metrics:     p.Metrics,
		tracer:      otel.Tracer(tracerName),
		estateRepo:  p.EstateRepo,
		unitRepo:    p.UnitRepo,
		feeRepo:     p.FeeRepo,
		paymentRepo: p.PaymentRepo,
	}
}

// FeePaymentStatus lists every unit of the fee's estate with whether a PAID
// payment exists for that unit and fee.
func (s *Service) FeePaymentStatus(ctx context.Context, p identity.Principal, feeID snowflake.ID) (report domain.PaymentStatusReport, err error) {
	ctx, finish := s.start(ctx, domain.ReportFeePaymentStatus, attribute.String("fee_id", feeID.String()))
	defer func() { finish(err, nil) }()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		pred, err := s.guard.ScopeFilter(ctx, p, authorization.ObjectFee)
		if err != nil {
			return err
		}
		fee, err := s.feeRepo.FindByID(ctx, tx, pred, feeID)
		if err != nil {
			return err
		}
		if err := s.guard.Authorize(ctx, p, authorization.Report(authorization.VerbFeePaymentStatus), fee.EstateID); err != nil {
			return authorization.AsNotFound(err)
		}
		own := authorization.EstatePredicate(fee.EstateID)

		units, err := s.listUnits(ctx, tx, own)
		if err != nil {
			return err
		}
		payments, err := s.listPaidPayments(ctx, tx, own, []snowflake.ID{fee.ID})
		if err != nil {
			return err
		}

		byUnit := make(map[snowflake.ID][]paymentdomain.Payment, len(payments))
		for _, payment := range payments {
			byUnit[payment.UnitID] = append(byUnit[payment.UnitID], payment)
		}

		report = domain.PaymentStatusReport{
			FeeID:       fee.ID,
			FeeName:     fee.Name,
			EstateID:    fee.EstateID,
			Amount:      fee.Amount,
			Frequency:   fee.Frequency,
			TotalUnits:  len(units),
			Units:       make([]domain.UnitPaymentStatus, 0, len(units)),
			GeneratedAt: s.clock.Now(),
		}
		for _, unit := range units {
			status := domain.UnitPaymentStatus{
				UnitID:     unit.ID,
				UnitNumber: unit.UnitNumber,
				Block:      unit.Block,
				Status:     paymentdomain.StatusUnpaid,
			}
			for _, payment := range byUnit[unit.ID] {
				status.Status = paymentdomain.StatusPaid
				if status.AmountPaid, err = money.Add(status.AmountPaid, payment.Amount); err != nil {
					return fmt.Errorf("unit %s paid total: %w", unit.ID, err)
				}
				if payment.PaidAt != nil && (status.PaidAt == nil || payment.PaidAt.After(*status.PaidAt)) {
					paidAt := *payment.PaidAt
					status.PaidAt = &paidAt
				}
			}
			if status.Status == paymentdomain.StatusPaid {
				report.PaidCount++
			} else {
				report.UnpaidCount++
			}
			report.Units = append(report.Units, status)
		}
		return nil
	})
	if err != nil {
		return domain.PaymentStatusReport{}, err
	}
	return report, nil
}

// EstateSummary totals expected and collected fee amounts for one estate.
func (s *Service) EstateSummary(ctx context.Context, p identity.Principal, estateID snowflake.ID) (summary domain.EstateSummary, err error) {
	ctx, finish := s.start(ctx, domain.ReportEstateSummary, attribute.String("estate_id", estateID.String()))
	defer func() { finish(err, summary.Warnings) }()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.guard.Authorize(ctx, p, authorization.Report(authorization.VerbEstateSummary), estateID); err != nil {
			return authorization.AsNotFound(err)
		}
		estate, err := s.estateRepo.FindByID(ctx, tx, authorization.EstatePredicate(estateID), estateID)
		if err != nil {
			return err
		}
		summary, err = s.summarize(ctx, tx, *estate)
		return err
	})
	if err != nil {
		return domain.EstateSummary{}, err
	}
	return summary, nil
}

// OverallSummary is restricted to super admins. Estate managers are refused
// rather than given an empty result.
func (s *Service) OverallSummary(ctx context.Context, p identity.Principal) (overall domain.OverallSummary, err error) {
	ctx, finish := s.start(ctx, domain.ReportOverallSummary)
	defer func() { finish(err, overall.Warnings) }()

	if err := s.guard.RequirePermission(ctx, p, authorization.Report(authorization.VerbOverallSummary)); err != nil {
		return domain.OverallSummary{}, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		pred, err := s.guard.ScopeFilter(ctx, p, authorization.ObjectEstate)
		if err != nil {
			return err
		}
		seq, err := s.estateRepo.List(ctx, tx, pred, repository.Query{OrderBy: "name"})
		if err != nil {
			return err
		}
		estates, err := repository.Collect(seq)
		if err != nil {
			return fmt.Errorf("list estates: %w", err)
		}

		overall = domain.OverallSummary{
			Estates:     make([]domain.EstateSummary, 0, len(estates)),
			Warnings:    []domain.Warning{},
			GeneratedAt: s.clock.Now(),
		}
		for _, estate := range estates {
			summary, err := s.summarize(ctx, tx, estate)
			if err != nil {
				return fmt.Errorf("summarize estate %s: %w", estate.ID, err)
			}
			overall.Estates = append(overall.Estates, summary)
			if overall.TotalExpected, err = money.Add(overall.TotalExpected, summary.TotalExpected); err != nil {
				return fmt.Errorf("overall expected: %w", err)
			}
			if overall.TotalCollected, err = money.Add(overall.TotalCollected, summary.TotalCollected); err != nil {
				return fmt.Errorf("overall collected: %w", err)
			}
			if overall.Outstanding, err = money.Add(overall.Outstanding, summary.Outstanding); err != nil {
				return fmt.Errorf("overall outstanding: %w", err)
			}
			overall.Warnings = append(overall.Warnings, summary.Warnings...)
		}
		return nil
	})
	if err != nil {
		return domain.OverallSummary{}, err
	}
	return overall, nil
}

func (s *Service) summarize(ctx context.Context, tx *gorm.DB, estate estatedomain.Estate) (domain.EstateSummary, error) {
	own := authorization.EstatePredicate(estate.ID)

	units, err := s.listUnits(ctx, tx, own)
	if err != nil {
		return domain.EstateSummary{}, err
	}
	unitIDs := make(map[snowflake.ID]struct{}, len(units))
	for _, unit := range units {
		unitIDs[unit.ID] = struct{}{}
	}

	seq, err := s.feeRepo.List(ctx, tx, own, repository.Query{})
	if err != nil {
		return domain.EstateSummary{}, err
	}
	fees, err := repository.Collect(seq)
	if err != nil {
		return domain.EstateSummary{}, fmt.Errorf("list fees: %w", err)
	}
	feeIDs := make([]snowflake.ID, 0, len(fees))
	for _, fee := range fees {
		feeIDs = append(feeIDs, fee.ID)
	}

	payments, err := s.listPaidPayments(ctx, tx, own, feeIDs)
	if err != nil {
		return domain.EstateSummary{}, err
	}

	summary := domain.EstateSummary{
		EstateID:     estate.ID,
		EstateName:   estate.Name,
		FeeFrequency: estate.FeeFrequency,
		TotalUnits:   len(units),
		Fees:         make([]domain.FeeSummary, 0, len(fees)),
		Warnings:     []domain.Warning{},
		GeneratedAt:  s.clock.Now(),
	}

	collected := make(map[snowflake.ID]int64, len(fees))
	paidCount := make(map[snowflake.ID]int, len(fees))
	for _, payment := range payments {
		if _, ok := unitIDs[payment.UnitID]; !ok {
			paymentID, feeID, unitID := payment.ID, payment.FeeID, payment.UnitID
			summary.Warnings = append(summary.Warnings, domain.Warning{
				Code:      domain.WarningCrossEstatePayment,
				EstateID:  estate.ID,
				FeeID:     &feeID,
				PaymentID: &paymentID,
				UnitID:    &unitID,
				Message:   "payment unit does not belong to the estate and was excluded",
			})
			continue
		}
		if collected[payment.FeeID], err = money.Add(collected[payment.FeeID], payment.Amount); err != nil {
			return domain.EstateSummary{}, fmt.Errorf("fee %s collected: %w", payment.FeeID, err)
		}
		paidCount[payment.FeeID]++
	}

	var activeCollected int64
	for _, fee := range fees {
		item := domain.FeeSummary{
			FeeID:     fee.ID,
			Name:      fee.Name,
			Amount:    fee.Amount,
			Frequency: fee.Frequency,
			IsActive:  fee.IsActive,
			Collected: collected[fee.ID],
			PaidCount: paidCount[fee.ID],
		}
		if fee.IsActive {
			total, err := money.Mul(fee.Amount, int64(len(units)))
			if err != nil {
				return domain.EstateSummary{}, fmt.Errorf("fee %s expected: %w", fee.ID, err)
			}
			if item.Expected, err = Normalize(total, fee.Frequency, estate.FeeFrequency); err != nil {
				return domain.EstateSummary{}, fmt.Errorf("fee %s expected: %w", fee.ID, err)
			}
			if activeCollected, err = money.Add(activeCollected, item.Collected); err != nil {
				return domain.EstateSummary{}, fmt.Errorf("estate collected: %w", err)
			}
		} else if summary.InactiveCollected, err = money.Add(summary.InactiveCollected, item.Collected); err != nil {
			return domain.EstateSummary{}, fmt.Errorf("estate inactive collected: %w", err)
		}
		if summary.TotalExpected, err = money.Add(summary.TotalExpected, item.Expected); err != nil {
			return domain.EstateSummary{}, fmt.Errorf("estate expected: %w", err)
		}
		if summary.TotalCollected, err = money.Add(summary.TotalCollected, item.Collected); err != nil {
			return domain.EstateSummary{}, fmt.Errorf("estate collected: %w", err)
		}
		summary.Fees = append(summary.Fees, item)
	}

	// Both operands are non-negative, so the difference cannot overflow.
	summary.Outstanding = summary.TotalExpected - activeCollected
	if summary.Outstanding < 0 {
		summary.Outstanding = 0
		summary.Warnings = append(summary.Warnings, domain.Warning{
			Code:     domain.WarningCollectedExceedsExpected,
			EstateID: estate.ID,
			Message:  fmt.Sprintf("collected %d on active fees exceeds expected %d", activeCollected, summary.TotalExpected),
		})
	}
	return summary, nil
}

// Normalize expresses a fee total in the estate's billing period. A monthly
// fee counts twelve times in a yearly estate; a yearly fee counts one twelfth
// in a monthly estate, rounded half up.
func Normalize(total int64, fee, estate estatedomain.Frequency) (int64, error) {
	switch {
	case fee == estatedomain.FrequencyMonthly && estate == estatedomain.FrequencyYearly:
		return money.Mul(total, 12)
	case fee == estatedomain.FrequencyYearly && estate == estatedomain.FrequencyMonthly:
		return total/12 + (total%12+6)/12, nil
	default:
		return total, nil
	}
}

func (s *Service) listUnits(ctx context.Context, tx *gorm.DB, scope repository.Scope) ([]unitdomain.Unit, error) {
	seq, err := s.unitRepo.List(ctx, tx, scope, repository.Query{OrderBy: "unit_number"})
	if err != nil {
		return nil, err
	}
	units, err := repository.Collect(seq)
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	return units, nil
}

func (s *Service) listPaidPayments(ctx context.Context, tx *gorm.DB, scope repository.Scope, feeIDs []snowflake.ID) ([]paymentdomain.Payment, error) {
	if len(feeIDs) == 0 {
		return nil, nil
	}
	seq, err := s.paymentRepo.List(ctx, tx, scope, repository.Query{
		Conditions: []repository.Condition{
			repository.Where("fee_id IN ?", feeIDs),
			repository.Where("status = ?", paymentdomain.StatusPaid),
		},
	})
	if err != nil {
		return nil, err
	}
	payments, err := repository.Collect(seq)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return payments, nil
}

// start opens the report span. finish records duration, warnings and the
// error outcome.
func (s *Service) start(ctx context.Context, report string, attrs ...attribute.KeyValue) (context.Context, func(error, []domain.Warning)) {
	begin := time.Now()
	ctx, span := s.tracer.Start(ctx, "reporting."+report,
		trace.WithAttributes(tracing.SafeAttributes(append(attrs, attribute.String("report", report))...)...),
	)
	return ctx, func(err error, warnings []domain.Warning) {
		defer span.End()
		if err != nil {
			span.RecordError(tracing.SafeError(err))
			span.SetStatus(codes.Error, err.Error())
			return
		}
		span.SetAttributes(attribute.Int("warnings", len(warnings)))
		s.metrics.RecordReport(ctx, report, time.Since(begin))
		for _, warning := range warnings {
			s.metrics.RecordReportWarning(ctx, report, warning.Code)
		}
	}
}
