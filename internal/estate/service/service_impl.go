package service

import (
	"context"
	"iter"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/smallbiznis/estatehub/internal/authorization"
	"github.com/smallbiznis/estatehub/internal/clock"
	"github.com/smallbiznis/estatehub/internal/estate/domain"
	identity "github.com/smallbiznis/estatehub/internal/identity/domain"
	"github.com/smallbiznis/estatehub/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Guard *authorization.Guard
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	guard *authorization.Guard
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("estate.service"),
		genID: p.GenID,
		clock: p.Clock,
		guard: p.Guard,
		repo:  p.Repo,
	}
}

func (s *Service) List(ctx context.Context, p identity.Principal, req domain.ListEstateRequest) (iter.Seq2[*domain.Estate, error], error) {
	pred, err := s.guard.ScopeFilter(ctx, p, authorization.ObjectEstate)
	if err != nil {
		return nil, err
	}

	conds := []repository.Condition{repository.Search(req.Search, "name", "slug", "address")}
	if req.Type != "" {
		if !req.Type.Valid() {
			return nil, domain.ErrInvalidType
		}
		conds = append(conds, repository.Where("type = ?", req.Type))
	}
	if req.IsActive != nil {
		conds = append(conds, repository.Where("is_active = ?", *req.IsActive))
	}

	return s.repo.List(ctx, s.db, pred, repository.Query{Conditions: conds, OrderBy: req.OrderBy})
}

func (s *Service) Get(ctx context.Context, p identity.Principal, id snowflake.ID) (domain.Estate, error) {
	if err := s.guard.Authorize(ctx, p, authorization.View(authorization.ObjectEstate), id); err != nil {
		return domain.Estate{}, authorization.AsNotFound(err)
	}
	item, err := s.repo.FindByID(ctx, s.db, authorization.EstatePredicate(id), id)
	if err != nil {
		return domain.Estate{}, err
	}
	return *item, nil
}

func (s *Service) Create(ctx context.Context, p identity.Principal, req domain.CreateEstateRequest) (domain.Estate, error) {
	if err := s.guard.RequirePermission(ctx, p, authorization.Create(authorization.ObjectEstate)); err != nil {
		return domain.Estate{}, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Estate{}, domain.ErrInvalidName
	}
	if !req.Type.Valid() {
		return domain.Estate{}, domain.ErrInvalidType
	}
	frequency := req.FeeFrequency
	if frequency == "" {
		frequency = domain.FrequencyMonthly
	}
	if !frequency.Valid() {
		return domain.Estate{}, domain.ErrInvalidFeeFrequency
	}

	now := s.clock.Now()
	estate := domain.Estate{
		ID:           s.genID.Generate(),
		Name:         name,
		Type:         req.Type,
		FeeFrequency: frequency,
		Address:      strings.TrimSpace(req.Address),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		estateSlug, err := s.uniqueSlug(ctx, tx, name, estate.ID)
		if err != nil {
			return err
		}
		estate.Slug = estateSlug
		return s.repo.Insert(ctx, tx, &estate)
	})
	if err != nil {
		return domain.Estate{}, err
	}
	return estate, nil
}

func (s *Service) Update(ctx context.Context, p identity.Principal, id snowflake.ID, req domain.UpdateEstateRequest) (domain.Estate, error) {
	fields := map[string]any{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.Estate{}, domain.ErrInvalidName
		}
		fields["name"] = name
	}
	if req.Type != nil {
		if !req.Type.Valid() {
			return domain.Estate{}, domain.ErrInvalidType
		}
		fields["type"] = *req.Type
	}
	if req.FeeFrequency != nil {
		if !req.FeeFrequency.Valid() {
			return domain.Estate{}, domain.ErrInvalidFeeFrequency
		}
		fields["fee_frequency"] = *req.FeeFrequency
	}
	if req.Address != nil {
		fields["address"] = strings.TrimSpace(*req.Address)
	}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}

	var updated domain.Estate
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.guard.Authorize(ctx, p, authorization.Update(authorization.ObjectEstate), id); err != nil {
			return authorization.AsNotFound(err)
		}
		pred := authorization.EstatePredicate(id)
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
		return domain.Estate{}, err
	}
	return updated, nil
}

// Delete removes the estate together with all of its units, fees, payments,
// tickets and announcements.
func (s *Service) Delete(ctx context.Context, p identity.Principal, id snowflake.ID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.guard.Authorize(ctx, p, authorization.Delete(authorization.ObjectEstate), id); err != nil {
			return authorization.AsNotFound(err)
		}
		return s.repo.DeleteCascade(ctx, tx, authorization.EstatePredicate(id), id)
	})
}

func (s *Service) uniqueSlug(ctx context.Context, tx *gorm.DB, name string, id snowflake.ID) (string, error) {
	base := slug.Make(name)
	if base == "" {
		base = "estate"
	}
	exists, err := s.repo.SlugExists(ctx, tx, base)
	if err != nil {
		return "", err
	}
	if !exists {
		return base, nil
	}
	return base + "-" + id.Base36(), nil
}
