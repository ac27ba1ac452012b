package service

import (
	"context"
	"iter"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/estatehub/internal/announcement/domain"
	"github.com/smallbiznis/estatehub/internal/authorization"
	"github.com/smallbiznis/estatehub/internal/clock"
	estatedomain "github.com/smallbiznis/estatehub/internal/estate/domain"
	identity "github.com/smallbiznis/estatehub/internal/identity/domain"
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
		log:        p.Log.Named("announcement.service"),
		genID:      p.GenID,
		clock:      p.Clock,
		guard:      p.Guard,
		repo:       p.Repo,
		estateRepo: p.EstateRepo,
	}
}

func (s *Service) List(ctx context.Context, p identity.Principal, req domain.ListAnnouncementRequest) (iter.Seq2[*domain.Announcement, error], error) {
	pred, err := s.guard.ScopeFilter(ctx, p, authorization.ObjectAnnouncement)
	if err != nil {
		return nil, err
	}

	conds := []repository.Condition{repository.Search(req.Search, "title", "message")}
	if req.EstateID != 0 {
		conds = append(conds, repository.Where("estate_id = ?", req.EstateID))
	}
	if req.IsActive != nil {
		conds = append(conds, repository.Where("is_active = ?", *req.IsActive))
	}

	return s.repo.List(ctx, s.db, pred, repository.Query{Conditions: conds, OrderBy: req.OrderBy})
}

func (s *Service) Get(ctx context.Context, p identity.Principal, id snowflake.ID) (domain.Announcement, error) {
	pred, err := s.guard.ScopeFilter(ctx, p, authorization.ObjectAnnouncement)
	if err != nil {
		return domain.Announcement{}, err
	}
	item, err := s.repo.FindByID(ctx, s.db, pred, id)
	if err != nil {
		return domain.Announcement{}, err
	}
	return *item, nil
}

func (s *Service) Create(ctx context.Context, p identity.Principal, req domain.CreateAnnouncementRequest) (domain.Announcement, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return domain.Announcement{}, domain.ErrInvalidTitle
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return domain.Announcement{}, domain.ErrInvalidMessage
	}

	now := s.clock.Now()
	announcement := domain.Announcement{
		ID:        s.genID.Generate(),
		CreatedBy: p.ID,
		Title:     title,
		Message:   message,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		estateID, err := s.guard.AuthorizeCreate(ctx, p, authorization.ObjectAnnouncement, req.EstateID)
		if err != nil {
			return err
		}
		if _, err := s.estateRepo.FindByID(ctx, tx, authorization.EstatePredicate(estateID), estateID); err != nil {
			return err
		}
		announcement.EstateID = estateID
		return s.repo.Insert(ctx, tx, &announcement)
	})
	if err != nil {
		return domain.Announcement{}, err
	}
	return announcement, nil
}

func (s *Service) Update(ctx context.Context, p identity.Principal, id snowflake.ID, req domain.UpdateAnnouncementRequest) (domain.Announcement, error) {
	fields := map[string]any{}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return domain.Announcement{}, domain.ErrInvalidTitle
		}
		fields["title"] = title
	}
	if req.Message != nil {
		message := strings.TrimSpace(*req.Message)
		if message == "" {
			return domain.Announcement{}, domain.ErrInvalidMessage
		}
		fields["message"] = message
	}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}
	return s.mutate(ctx, p, id, authorization.Update(authorization.ObjectAnnouncement), fields)
}

func (s *Service) Deactivate(ctx context.Context, p identity.Principal, id snowflake.ID) (domain.Announcement, error) {
	return s.mutate(ctx, p, id, authorization.Delete(authorization.ObjectAnnouncement), map[string]any{"is_active": false})
}

func (s *Service) mutate(ctx context.Context, p identity.Principal, id snowflake.ID, action authorization.Action, fields map[string]any) (domain.Announcement, error) {
	var updated domain.Announcement
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		pred, err := s.guard.ScopeFilter(ctx, p, authorization.ObjectAnnouncement)
		if err != nil {
			return err
		}
		current, err := s.repo.FindByID(ctx, tx, pred, id)
		if err != nil {
			return err
		}
		if err := s.guard.Authorize(ctx, p, action, current.EstateID); err != nil {
			return authorization.AsNotFound(err)
		}
		own := authorization.EstatePredicate(current.EstateID)

		if len(fields) > 0 {
			fields["updated_at"] = s.clock.Now()
			if err := s.repo.Updates(ctx, tx, own, id, fields); err != nil {
				return err
			}
		}
		item, err := s.repo.FindByID(ctx, tx, own, id)
		if err != nil {
			return err
		}
		updated = *item
		return nil
	})
	if err != nil {
		return domain.Announcement{}, err
	}
	return updated, nil
}
