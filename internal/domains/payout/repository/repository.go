package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"sparkle/infras/otel"
	"sparkle/infras/postgres"
	"sparkle/internal/domains/payout/model"
	gDto "sparkle/shared/dto"
	gRepo "sparkle/shared/repository"
)

type PayoutAccount interface {
	Insert(ctx context.Context, model model.BusinessPayoutAccount) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.BusinessPayoutAccount, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	ConditionalUpdate(ctx context.Context, req map[string]any, filter gDto.FilterGroup) (int64, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.BusinessPayoutAccount]
}

func New(db *postgres.Connection, otel otel.Otel) PayoutAccount {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.BusinessPayoutAccount](model.EntityName, model.TableName, model.FieldBusinessID, db, otel),
	}
}
