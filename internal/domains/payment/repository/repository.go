package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"sparkle/infras/otel"
	"sparkle/infras/postgres"
	"sparkle/internal/domains/payment/model"
	gDto "sparkle/shared/dto"
	gRepo "sparkle/shared/repository"
)

type Payment interface {
	Insert(ctx context.Context, model model.Payment) error
	// InsertIgnore reports false when a payment with the same intent id already exists.
	InsertIgnore(ctx context.Context, model model.Payment, conflictColumn string) (bool, error)
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Payment, error)
	ConditionalUpdate(ctx context.Context, req map[string]any, filter gDto.FilterGroup) (int64, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Payment]
}

func New(db *postgres.Connection, otel otel.Otel) Payment {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Payment](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
