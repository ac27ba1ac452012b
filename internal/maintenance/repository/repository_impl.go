package repository

import (
	"github.com/smallbiznis/estatehub/internal/maintenance/domain"
	"github.com/smallbiznis/estatehub/pkg/repository"
)

var ordering = repository.Ordering{
	"title":       "title",
	"status":      "status",
	"category":    "category",
	"resolved_at": "resolved_at",
	"created_at":  "created_at",
}

type repo struct {
	*repository.Store[domain.Ticket]
}

func Provide() domain.Repository {
	return &repo{Store: repository.NewStore[domain.Ticket]("estate_id", ordering)}
}
