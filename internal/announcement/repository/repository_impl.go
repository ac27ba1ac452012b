package repository

import (
	"github.com/smallbiznis/estatehub/internal/announcement/domain"
	"github.com/smallbiznis/estatehub/pkg/repository"
)

var ordering = repository.Ordering{
	"title":      "title",
	"is_active":  "is_active",
	"created_at": "created_at",
}

type repo struct {
	*repository.Store[domain.Announcement]
}

func Provide() domain.Repository {
	return &repo{Store: repository.NewStore[domain.Announcement]("estate_id", ordering)}
}
