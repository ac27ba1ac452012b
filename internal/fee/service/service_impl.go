package service

import (
	"context"
	"iter"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/estatehub/internal/authorization"
	"github.com/smallbiznis/estatehub/internal/clock"
	estatedomain "github.com/smallbiznis/estatehub/internal/estate/domain"
	"github.com/smallbiznis/estatehub/internal/fee/domain"
	identity "github.com/smallbiznis/estatehub/internal/identity/domain"
	"github.com/smallbiznis/estatehub/pkg/money"
	"github.com/smallbiznis/estatehub/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Clock      clock.Clock
	Guard      *authorization.Guard
	Repo       domain.Repository
	EstateRepo estatedomain.Repository
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	genID      *snowflake.Node
	clock      clock.Clock
	guard      *authorization.Guard
	repo       domain.Repository
	estateRepo estatedomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("fee.service"),
		genID:      p.GenID,
		clock:      p.Clock,
		guard:      p.Guard,
		repo:       p.Repo,
		estateRepo: p.EstateRepo,
	}
}

func (s *Service) List(ctx context.Context, p identity.Principal, req domain.ListFeeRequest) (iter.Seq2[*domain.Fee, error], error) {
	pred, err := s.guard.ScopeFilter(ctx, p, authorization.ObjectFee)
	if err != nil {
		return nil, err
	}

	conds := []repository.Condition{repository.Search(req.Search, "name", "description")}
	if req.EstateID != 0 {
		conds = append(conds, repository.Where("estate_id = ?", req.EstateID))
	}
	if req.Frequency != "" {
		if !req.Frequency.Valid() {
			return nil, domain.ErrInvalidFrequency
		}
		conds = append(conds, repository.Where("frequency = ?", req.Frequency))
	}
	if req.IsActive != nil {
		conds = append(conds, repository.Where("is_active = ?", *req.IsActive))
	}

	return s.repo.List(ctx, s.db, pred, repository.Query{Conditions: conds, OrderBy: req.OrderBy})
}

func (s *Service) Get(ctx context.Context, p identity.Principal, id snowflake.ID) (domain.Fee, error) {
	pred, err := s.guard.ScopeFilter(ctx, p, authorization.ObjectFee)
	if err != nil {
		return domain.Fee{}, err
	}
	item, err := s.repo.FindByID(ctx, s.db, pred, id)
	if err != nil {
		return domain.Fee{}, err
	}
	return *item, nil
}

func (s *Service) Create(ctx context.Context, p identity.Principal, req domain.CreateFeeRequest) (domain.Fee, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Fee{}, domain.ErrInvalidName
	}
	if req.Amount <= 0 || req.Amount > money.MaxAmount {
		return domain.Fee{}, domain.ErrInvalidAmount
	}
	frequency := req.Frequency
	if frequency == "" {
		frequency = estatedomain.FrequencyMonthly
	}
	if !frequency.Valid() {
		return domain.Fee{}, domain.ErrInvalidFrequency
	}
	dueDay := req.DueDay
	if dueDay == 0 {
		dueDay = domain.MinDueDay
	}
	if dueDay < domain.MinDueDay || dueDay > domain.MaxDueDay {
		return domain.Fee{}, domain.ErrInvalidDueDay
	}

	now := s.clock.Now()
	fee := domain.Fee{
		ID:          s.genID.Generate(),
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		Amount:      req.Amount,
		Frequency:   frequency,
		DueDay:      dueDay,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		estateID, err := s.guard.AuthorizeCreate(ctx, p, authorization.ObjectFee, req.EstateID)
		if err != nil {
			return err
		}
		if _, err := s.estateRepo.FindByID(ctx, tx, authorization.EstatePredicate(estateID), estateID); err != nil {
			return err
		}
		fee.EstateID = estateID
		return s.repo.Insert(ctx, tx, &fee)
	})
	if err != nil {
		return domain.Fee{}, err
	}
	return fee, nil
}

func (s *Service) Update(ctx context.Context, p identity.Principal, id snowflake.ID, req domain.UpdateFeeRequest) (domain.Fee, error) {
	fields := map[string]any{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.Fee{}, domain.ErrInvalidName
		}
		fields["name"] = name
	}
	if req.Description != nil {
		fields["description"] = strings.TrimSpace(*req.Description)
	}
	if req.Amount != nil {
		if *req.Amount <= 0 || *req.Amount > money.MaxAmount {
			return domain.Fee{}, domain.ErrInvalidAmount
		}
		fields["amount"] = *req.Amount
	}
	if req.Frequency != nil {
		if !req.Frequency.Valid() {
			return domain.Fee{}, domain.ErrInvalidFrequency
		}
		fields["frequency"] = *req.Frequency
	}
	if req.DueDay != nil {
		if *req.DueDay < domain.MinDueDay || *req.DueDay > domain.MaxDueDay {
			return domain.Fee{}, domain.ErrInvalidDueDay
		}
		fields["due_day"] = *req.DueDay
	}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}

	var updated domain.Fee
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := s.load(ctx, tx, p, id)
		if err != nil {
			return err
		}
		if err := s.guard.Authorize(ctx, p, authorization.Update(authorization.ObjectFee), current.EstateID); err != nil {
			return authorization.AsNotFound(err)
		}
		pred := authorization.EstatePredicate(current.EstateID)
		if len(fields) > 0 {
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
		return domain.Fee{}, err
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, p identity.Principal, id snowflake.ID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := s.load(ctx, tx, p, id)
		if err != nil {
			return err
		}
		if err := s.guard.Authorize(ctx, p, authorization.Delete(authorization.ObjectFee), current.EstateID); err != nil {
			return authorization.AsNotFound(err)
		}
		return s.repo.DeleteCascade(ctx, tx, authorization.EstatePredicate(current.EstateID), id)
	})
}

func (s *Service) load(ctx context.Context, tx *gorm.DB, p identity.Principal, id snowflake.ID) (*domain.Fee, error) {
	pred, err := s.guard.ScopeFilter(ctx, p, authorization.ObjectFee)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, tx, pred, id)
}
