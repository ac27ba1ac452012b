package repository

import (
	"github.com/smallbiznis/estatehub/internal/payment/domain"
	"github.com/smallbiznis/estatehub/pkg/repository"
)

var ordering = repository.Ordering{
	"amount":     "amount",
	"status":     "status",
	"method":     "method",
	"paid_at":    "paid_at",
	"created_at": "created_at",
}

type repo struct {
	*repository.Store[domain.Payment]
}

func Provide() domain.Repository {
	return &repo{Store: repository.NewStore[domain.Payment]("estate_id", ordering)}
}
