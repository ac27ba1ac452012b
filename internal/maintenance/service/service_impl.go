package service

import (
	"context"
	"errors"
	"iter"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/estatehub/internal/authorization"
	"github.com/smallbiznis/estatehub/internal/clock"
	estatedomain "github.com/smallbiznis/estatehub/internal/estate/domain"
	identity "github.com/smallbiznis/estatehub/internal/identity/domain"
	"github.com/smallbiznis/estatehub/internal/maintenance/domain"
	unitdomain "github.com/smallbiznis/estatehub/internal/unit/domain"
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
	UnitRepo   unitdomain.Repository
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	genID      *snowflake.Node
	clock      clock.Clock
	guard      *authorization.Guard
	repo       domain.Repository
	estateRepo estatedomain.Repository
	unitRepo   unitdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("maintenance.service"),
		genID:      p.GenID,
		clock:      p.Clock,
		guard:      p.Guard,
		repo:       p.Repo,
		estateRepo: p.EstateRepo,
		unitRepo:   p.UnitRepo,
	}
}

func (s *Service) List(ctx context.Context, p identity.Principal, req domain.ListTicketRequest) (iter.Seq2[*domain.Ticket, error], error) {
	pred, err := s.guard.ScopeFilter(ctx, p, authorization.ObjectMaintenanceTicket)
	if err != nil {
		return nil, err
	}

	conds := []repository.Condition{repository.Search(req.Search, "title", "description")}
	if req.EstateID != 0 {
		conds = append(conds, repository.Where("estate_id = ?", req.EstateID))
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
	if req.Category != "" {
		if !req.Category.Valid() {
			return nil, domain.ErrInvalidCategory
		}
		conds = append(conds, repository.Where("category = ?", req.Category))
	}

	return s.repo.List(ctx, s.db, pred, repository.Query{Conditions: conds, OrderBy: req.OrderBy})
}

func (s *Service) Get(ctx context.Context, p identity.Principal, id snowflake.ID) (domain.Ticket, error) {
	pred, err := s.guard.ScopeFilter(ctx, p, authorization.ObjectMaintenanceTicket)
	if err != nil {
		return domain.Ticket{}, err
	}
	item, err := s.repo.FindByID(ctx, s.db, pred, id)
	if err != nil {
		return domain.Ticket{}, err
	}
	return *item, nil
}

func (s *Service) Create(ctx context.Context, p identity.Principal, req domain.CreateTicketRequest) (domain.Ticket, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return domain.Ticket{}, domain.ErrInvalidTitle
	}
	category := req.Category
	if category == "" {
		category = domain.CategoryOther
	}
	if !category.Valid() {
		return domain.Ticket{}, domain.ErrInvalidCategory
	}

	now := s.clock.Now()
	ticket := domain.Ticket{
		ID:          s.genID.Generate(),
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		Category:    category,
		Status:      domain.StatusOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		estateID, err := s.guard.AuthorizeCreate(ctx, p, authorization.ObjectMaintenanceTicket, req.EstateID)
		if err != nil {
			return err
		}
		pred := authorization.EstatePredicate(estateID)
		if _, err := s.estateRepo.FindByID(ctx, tx, pred, estateID); err != nil {
			return err
		}
		if req.UnitID != nil && *req.UnitID != 0 {
			if _, err := s.unitRepo.FindByID(ctx, tx, pred, *req.UnitID); err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return domain.ErrUnitNotInEstate
				}
				return err
			}
			unitID := *req.UnitID
			ticket.UnitID = &unitID
		}
		ticket.EstateID = estateID
		return s.repo.Insert(ctx, tx, &ticket)
	})
	if err != nil {
		return domain.Ticket{}, err
	}
	return ticket, nil
}

func (s *Service) Update(ctx context.Context, p identity.Principal, id snowflake.ID, req domain.UpdateTicketRequest) (domain.Ticket, error) {
	fields := map[string]any{}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return domain.Ticket{}, domain.ErrInvalidTitle
		}
		fields["title"] = title
	}
	if req.Description != nil {
		fields["description"] = strings.TrimSpace(*req.Description)
	}
	if req.Category != nil {
		if !req.Category.Valid() {
			return domain.Ticket{}, domain.ErrInvalidCategory
		}
		fields["category"] = *req.Category
	}
	return s.mutate(ctx, p, id, func(*domain.Ticket) map[string]any { return fields })
}

func (s *Service) Resolve(ctx context.Context, p identity.Principal, id snowflake.ID) (domain.Ticket, error) {
	return s.mutate(ctx, p, id, func(current *domain.Ticket) map[string]any {
		if current.Status == domain.StatusResolved {
			return nil
		}
		return map[string]any{
			"status":      domain.StatusResolved,
			"resolved_at": s.clock.Now(),
		}
	})
}

func (s *Service) Reopen(ctx context.Context, p identity.Principal, id snowflake.ID) (domain.Ticket, error) {
	return s.mutate(ctx, p, id, func(current *domain.Ticket) map[string]any {
		if current.Status == domain.StatusOpen {
			return nil
		}
		return map[string]any{
			"status":      domain.StatusOpen,
			"resolved_at": nil,
		}
	})
}

func (s *Service) Delete(ctx context.Context, p identity.Principal, id snowflake.ID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := s.load(ctx, tx, p, id)
		if err != nil {
			return err
		}
		if err := s.guard.Authorize(ctx, p, authorization.Delete(authorization.ObjectMaintenanceTicket), current.EstateID); err != nil {
			return authorization.AsNotFound(err)
		}
		return s.repo.Delete(ctx, tx, authorization.EstatePredicate(current.EstateID), id)
	})
}

func (s *Service) mutate(ctx context.Context, p identity.Principal, id snowflake.ID, change func(*domain.Ticket) map[string]any) (domain.Ticket, error) {
	var updated domain.Ticket
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := s.load(ctx, tx, p, id)
		if err != nil {
			return err
		}
		if err := s.guard.Authorize(ctx, p, authorization.Update(authorization.ObjectMaintenanceTicket), current.EstateID); err != nil {
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
		return domain.Ticket{}, err
	}
	return updated, nil
}

func (s *Service) load(ctx context.Context, tx *gorm.DB, p identity.Principal, id snowflake.ID) (*domain.Ticket, error) {
	pred, err := s.guard.ScopeFilter(ctx, p, authorization.ObjectMaintenanceTicket)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, tx, pred, id)
}
