package service

import (
	"context"
	"iter"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/estatehub/internal/authorization"
	"github.com/smallbiznis/estatehub/internal/clock"
	estatedomain "github.com/smallbiznis/estatehub/internal/estate/domain"
	identity "github.com/smallbiznis/estatehub/internal/identity/domain"
	"github.com/smallbiznis/estatehub/internal/unit/domain"
	"github.com/smallbiznis/estatehub/pkg/db"
	"github.com/smallbiznis/estatehub/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
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
		log:        p.Log.Named("unit.service"),
		genID:      p.GenID,
		clock:      p.Clock,
		guard:      p.Guard,
		repo:       p.Repo,
		estateRepo: p.EstateRepo,
	}
}

func (s *Service) List(ctx context.Context, p identity.Principal, req domain.ListUnitRequest) (iter.Seq2[*domain.Unit, error], error) {
	pred, err := s.guard.ScopeFilter(ctx, p, authorization.ObjectUnit)
	if err != nil {
		return nil, err
	}

	conds := []repository.Condition{
		repository.Search(req.Search, "unit_number", "block", "occupant_name"),
	}
	if req.EstateID != 0 {
		conds = append(conds, repository.Where("estate_id = ?", req.EstateID))
	}
	if block := strings.TrimSpace(req.Block); block != "" {
		conds = append(conds, repository.Where("block = ?", block))
	}
	if req.IsOccupied != nil {
		conds = append(conds, repository.Where("is_occupied = ?", *req.IsOccupied))
	}

	return s.repo.List(ctx, s.db, pred, repository.Query{Conditions: conds, OrderBy: req.OrderBy})
}

func (s *Service) Get(ctx context.Context, p identity.Principal, id snowflake.ID) (domain.Unit, error) {
	pred, err := s.guard.ScopeFilter(ctx, p, authorization.ObjectUnit)
	if err != nil {
		return domain.Unit{}, err
	}
	item, err := s.repo.FindByID(ctx, s.db, pred, id)
	if err != nil {
		return domain.Unit{}, err
	}
	return *item, nil
}

func (s *Service) Create(ctx context.Context, p identity.Principal, req domain.CreateUnitRequest) (domain.Unit, error) {
	number := strings.TrimSpace(req.UnitNumber)
	if number == "" {
		return domain.Unit{}, domain.ErrInvalidUnitNumber
	}

	now := s.clock.Now()
	unit := domain.Unit{
		ID:            s.genID.Generate(),
		UnitNumber:    number,
		Block:         strings.TrimSpace(req.Block),
		OccupantName:  strings.TrimSpace(req.OccupantName),
		OccupantPhone: strings.TrimSpace(req.OccupantPhone),
		IsOccupied:    req.IsOccupied,
		Metadata:      datatypes.JSONMap(req.Metadata),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if unit.Metadata == nil {
		unit.Metadata = datatypes.JSONMap{}
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		estateID, err := s.guard.AuthorizeCreate(ctx, p, authorization.ObjectUnit, req.EstateID)
		if err != nil {
			return err
		}
		if _, err := s.estateRepo.FindByID(ctx, tx, authorization.EstatePredicate(estateID), estateID); err != nil {
			return err
		}
		unit.EstateID = estateID

		if err := s.ensureNumberFree(ctx, tx, estateID, number, 0); err != nil {
			return err
		}
		if err := s.repo.Insert(ctx, tx, &unit); err != nil {
			if db.IsDuplicateKeyErr(err) {
				return domain.ErrDuplicateUnitNumber
			}
			return err
		}
		return nil
	})
	if err != nil {
		return domain.Unit{}, err
	}
	return unit, nil
}

func (s *Service) Update(ctx context.Context, p identity.Principal, id snowflake.ID, req domain.UpdateUnitRequest) (domain.Unit, error) {
	fields := map[string]any{}
	var number string
	if req.UnitNumber != nil {
		number = strings.TrimSpace(*req.UnitNumber)
		if number == "" {
			return domain.Unit{}, domain.ErrInvalidUnitNumber
		}
		fields["unit_number"] = number
	}
	if req.Block != nil {
		fields["block"] = strings.TrimSpace(*req.Block)
	}
	if req.OccupantName != nil {
		fields["occupant_name"] = strings.TrimSpace(*req.OccupantName)
	}
	if req.OccupantPhone != nil {
		fields["occupant_phone"] = strings.TrimSpace(*req.OccupantPhone)
	}
	if req.IsOccupied != nil {
		fields["is_occupied"] = *req.IsOccupied
	}
	if req.Metadata != nil {
		fields["metadata"] = datatypes.JSONMap(req.Metadata)
	}

	var updated domain.Unit
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := s.load(ctx, tx, p, id)
		if err != nil {
			return err
		}
		if err := s.guard.Authorize(ctx, p, authorization.Update(authorization.ObjectUnit), current.EstateID); err != nil {
			return authorization.AsNotFound(err)
		}
		pred := authorization.EstatePredicate(current.EstateID)

		if number != "" && number != current.UnitNumber {
			if err := s.ensureNumberFree(ctx, tx, current.EstateID, number, id); err != nil {
				return err
			}
		}
		if len(fields) > 0 {
			fields["updated_at"] = s.clock.Now()
			if err := s.repo.Updates(ctx, tx, pred, id, fields); err != nil {
				if db.IsDuplicateKeyErr(err) {
					return domain.ErrDuplicateUnitNumber
				}
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
		return domain.Unit{}, err
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, p identity.Principal, id snowflake.ID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := s.load(ctx, tx, p, id)
		if err != nil {
			return err
		}
		if err := s.guard.Authorize(ctx, p, authorization.Delete(authorization.ObjectUnit), current.EstateID); err != nil {
			return authorization.AsNotFound(err)
		}
		return s.repo.DeleteCascade(ctx, tx, authorization.EstatePredicate(current.EstateID), id)
	})
}

func (s *Service) load(ctx context.Context, tx *gorm.DB, p identity.Principal, id snowflake.ID) (*domain.Unit, error) {
	pred, err := s.guard.ScopeFilter(ctx, p, authorization.ObjectUnit)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, tx, pred, id)
}

func (s *Service) ensureNumberFree(ctx context.Context, tx *gorm.DB, estateID snowflake.ID, number string, exceptID snowflake.ID) error {
	conds := []repository.Condition{repository.Where("unit_number = ?", number)}
	if exceptID != 0 {
		conds = append(conds, repository.Where("id <> ?", exceptID))
	}
	count, err := s.repo.Count(ctx, tx, authorization.EstatePredicate(estateID), conds...)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrDuplicateUnitNumber
	}
	return nil
}
