package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"sparkle/infras/otel"
	"sparkle/infras/postgres"
	"sparkle/internal/domains/booking/model"
	gDto "sparkle/shared/dto"
	gRepo "sparkle/shared/repository"
)

type Booking interface {
	Insert(ctx context.Context, model model.BookingRequest) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.BookingRequest, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.BookingRequest, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	// ConditionalUpdate returns the number of rows the filter matched; zero means the
	// booking was not in the expected state.
	ConditionalUpdate(ctx context.Context, req map[string]any, filter gDto.FilterGroup) (int64, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.BookingRequest]
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.BookingRequest](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
