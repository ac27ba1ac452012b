package service

import (
	"context"
	"iter"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/estatehub/internal/authorization"
	"github.com/smallbiznis/estatehub/internal/clock"
	feedomain "github.com/smallbiznis/estatehub/internal/fee/domain"
	identity "github.com/smallbiznis/estatehub/internal/identity/domain"
	"github.com/smallbiznis/estatehub/internal/payment/domain"
	unitdomain "github.com/smallbiznis/estatehub/internal/unit/domain"
	"github.com/smallbiznis/estatehub/pkg/money"
	"github.com/smallbiznis/estatehub/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Clock    clock.Clock
	Guard    *authorization.Guard
	Repo     domain.Repository
	FeeRepo  feedomain.Repository
	UnitRepo unitdomain.Repository
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	clock    clock.Clock
	guard    *authorization.Guard
	repo     domain.Repository
	feeRepo  feedomain.Repository
	unitRepo unitdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("payment.service"),
		genID:    p.GenID,
		clock:    p.Clock,
		guard:    p.Guard,
		repo:     p.Repo,
		feeRepo:  p.FeeRepo,
		unitRepo: p.UnitRepo,
	}
}

func (s *Service) List(ctx context.Context, p identity.Principal, req domain.ListPaymentRequest) (iter.Seq2[*domain.Payment, error], error) {
	pred, err := s.guard.ScopeFilter(ctx, p, authorization.ObjectPayment)
	if err != nil {
		return nil, err
	}

	var conds []repository.Condition
	if req.EstateID != 0 {
		conds = append(conds, repository.Where("estate_id = ?", req.EstateID))
	}
	if req.FeeID != 0 {
		conds = append(conds, repository.Where("fee_id = ?", req.FeeID))
	}
	if req.UnitID != 0 {
		conds = append(conds, repository.Where("unit_id = ?", req.UnitID))
	}
	if req.Status != "" {
		if !req.Status.Valid() {
			return nil, domain.ErrInvalidStatus
		}
		conds = append(conds, repository.Where("status = ?", req.Status))
	}
	if req.Method != "" {
		if !req.Method.Valid() {
			return nil, domain.ErrInvalidMethod
		}
		conds = append(conds, repository.Where("method = ?", req.Method))
	}

	return s.repo.List(ctx, s.db, pred, repository.Query{Conditions: conds, OrderBy: req.OrderBy})
}

func (s *Service) Get(ctx context.Context, p identity.Principal, id snowflake.ID) (domain.Payment, error) {
	pred, err := s.guard.ScopeFilter(ctx, p, authorization.ObjectPayment)
	if err != nil {
		return domain.Payment{}, err
	}
	item, err := s.repo.FindByID(ctx, s.db, pred, id)
	if err != nil {
		return domain.Payment{}, err
	}
	return *item, nil
}

func (s *Service) Create(ctx context.Context, p identity.Principal, req domain.CreatePaymentRequest) (domain.Payment, error) {
	if req.FeeID == 0 {
		return domain.Payment{}, domain.ErrInvalidFee
	}
	if req.UnitID == 0 {
		return domain.Payment{}, domain.ErrInvalidUnit
	}
	if req.Amount < 0 || req.Amount > money.MaxAmount {
		return domain.Payment{}, domain.ErrInvalidAmount
	}
	method := req.Method
	if method == "" {
		method = domain.MethodBankTransfer
	}
	if !method.Valid() {
		return domain.Payment{}, domain.ErrInvalidMethod
	}
	status := req.Status
	if status == "" {
		status = domain.StatusPaid
	}
	if !status.Valid() {
		return domain.Payment{}, domain.ErrInvalidStatus
	}

	now := s.clock.Now()
	payment := domain.Payment{
		ID:        s.genID.Generate(),
		FeeID:     req.FeeID,
		UnitID:    req.UnitID,
		Amount:    req.Amount,
		Method:    method,
		Status:    status,
		Reference: strings.TrimSpace(req.Reference),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if status == domain.StatusPaid {
		payment.PaidAt = &now
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		pred, err := s.guard.ScopeFilter(ctx, p, authorization.ObjectPayment)
		if err != nil {
			return err
		}
		fee, err := s.feeRepo.FindByID(ctx, tx, pred, req.FeeID)
		if err != nil {
			return err
		}
		unit, err := s.unitRepo.FindByID(ctx, tx, pred, req.UnitID)
		if err != nil {
			return err
		}
		if unit.EstateID != fee.EstateID {
			return authorization.ErrCrossTenantAccess
		}

		estateID, err := s.guard.AuthorizeCreate(ctx, p, authorization.ObjectPayment, fee.EstateID)
		if err != nil {
			return err
		}
		payment.EstateID = estateID
		if payment.Amount == 0 {
			payment.Amount = fee.Amount
		}
		return s.repo.Insert(ctx, tx, &payment)
	})
	if err != nil {
		return domain.Payment{}, err
	}
	return payment, nil
}

func (s *Service) Update(ctx context.Context, p identity.Principal, id snowflake.ID, req domain.UpdatePaymentRequest) (domain.Payment, error) {
	fields := map[string]any{}
	if req.Amount != nil {
		if *req.Amount <= 0 || *req.Amount > money.MaxAmount {
			return domain.Payment{}, domain.ErrInvalidAmount
		}
		fields["amount"] = *req.Amount
	}
	if req.Method != nil {
		if !req.Method.Valid() {
			return domain.Payment{}, domain.ErrInvalidMethod
		}
		fields["method"] = *req.Method
	}
	if req.Reference != nil {
		fields["reference"] = strings.TrimSpace(*req.Reference)
	}
	return s.mutate(ctx, p, id, func(*domain.Payment) map[string]any { return fields })
}

// MarkPaid stamps paid_at on the first transition to PAID and keeps it on
// repeated calls.
func (s *Service) MarkPaid(ctx context.Context, p identity.Principal, id snowflake.ID) (domain.Payment, error) {
	return s.mutate(ctx, p, id, func(current *domain.Payment) map[string]any {
		if current.Status == domain.StatusPaid && current.PaidAt != nil {
			return nil
		}
		return map[string]any{
			"status":  domain.StatusPaid,
			"paid_at": s.clock.Now(),
		}
	})
}

func (s *Service) MarkUnpaid(ctx context.Context, p identity.Principal, id snowflake.ID) (domain.Payment, error) {
	return s.mutate(ctx, p, id, func(current *domain.Payment) map[string]any {
		if current.Status == domain.StatusUnpaid {
			return nil
		}
		return map[string]any{
			"status":  domain.StatusUnpaid,
			"paid_at": nil,
		}
	})
}

func (s *Service) Delete(ctx context.Context, p identity.Principal, id snowflake.ID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := s.load(ctx, tx, p, id)
		if err != nil {
			return err
		}
		if err := s.guard.Authorize(ctx, p, authorization.Delete(authorization.ObjectPayment), current.EstateID); err != nil {
			return authorization.AsNotFound(err)
		}
		return s.repo.Delete(ctx, tx, authorization.EstatePredicate(current.EstateID), id)
	})
}

func (s *Service) mutate(ctx context.Context, p identity.Principal, id snowflake.ID, change func(*domain.Payment) map[string]any) (domain.Payment, error) {
	var updated domain.Payment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := s.load(ctx, tx, p, id)
		if err != nil {
			return err
		}
		if err := s.guard.Authorize(ctx, p, authorization.Update(authorization.ObjectPayment), current.EstateID); err != nil {
			return authorization.AsNotFound(err)
		}
		pred := authorization.EstatePredicate(current.EstateID)

		if fields := change(current); len(fields) > 0 {
			fields["updated_at"] = s.clock.Now()
			if err := s.repo.Updates(ctx, tx, pred, id, fields); err != nil {
				return err
			}
		}
		item, err := s.repo.FindByID(ctx, tx, pred, id)
		if err != nil {
			return err
		}
		updated = *item
		return nil
	})
	if err != nil {
		return domain.Payment{}, err
	}
	return updated, nil
}

func (s *Service) load(ctx context.Context, tx *gorm.DB, p identity.Principal, id snowflake.ID) (*domain.Payment, error) {
	pred, err := s.guard.ScopeFilter(ctx, p, authorization.ObjectPayment)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, tx, pred, id)
}
