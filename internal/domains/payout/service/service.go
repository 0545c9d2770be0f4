package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"sparkle/config"
	"sparkle/infras/otel"
	"sparkle/infras/stripe"
	"sparkle/internal/domains/payout/model"
	"sparkle/internal/domains/payout/model/dto"
	"sparkle/internal/domains/payout/repository"
	"sparkle/shared"
	"sparkle/shared/constant"
	gDto "sparkle/shared/dto"
	"sparkle/shared/failure"
	gModel "sparkle/shared/model"
	"sparkle/shared/timezone"
	"time"

	"github.com/rs/zerolog/log"
)

type Payout interface {
	Get(ctx context.Context, businessID string) (dto.PayoutAccountResponse, error)
	Onboard(ctx context.Context, businessID, email string) (dto.OnboardResponse, error)
	Refresh(ctx context.Context, businessID string) (dto.PayoutAccountResponse, error)
	// SyncFromProcessor applies a pushed account update. occurredAt is when the
	// processor created the event; an update older than the stored record is dropped.
	SyncFromProcessor(ctx context.Context, account stripe.Account, occurredAt time.Time) error
}

type serviceImpl struct {
	repo      repository.PayoutAccount
	processor stripe.Processor
	cfg       *config.Config
	otel      otel.Otel
}

func New(repo repository.PayoutAccount, processor stripe.Processor, cfg *config.Config, otel otel.Otel) Payout {
	return &serviceImpl{
		repo:      repo,
		processor: processor,
		cfg:       cfg,
		otel:      otel,
	}
}

// DeriveStatus collapses the processor's capability flags into a single status.
func DeriveStatus(account stripe.Account) string {
	switch {
	case account.DisabledReason != "":
		return model.StatusDisabled
	case account.ChargesEnabled && account.PayoutsEnabled && account.DetailsSubmitted && len(account.PastDue) == 0:
		return model.StatusActive
	case account.DetailsSubmitted:
		return model.StatusRestricted
	default:
		return model.StatusPending
	}
}

func byBusiness(businessID string) gDto.FilterGroup {
	return shared.FilterByID(businessID, model.FieldBusinessID, model.TableName)
}

func (s *serviceImpl) find(ctx context.Context, businessID string) (model.BusinessPayoutAccount, error) {
	account, err := s.repo.Get(ctx, byBusiness(businessID))
	if err != nil {
		log.Error().Err(err).Str("business_id", businessID).Msg("failed to get payout account")

		return account, fmt.Errorf("failed to get payout account: %w", err)
	}

	return account, nil
}

func (s *serviceImpl) Get(ctx context.Context, businessID string) (res dto.PayoutAccountResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".payout.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	account, err := s.find(ctx, businessID)
	if err != nil {
		return res, err
	}

	if account.BusinessID == constant.Empty {
		return res, failure.NotFound("payout account not found") // nolint:wrapcheck
	}

	res.FromModel(account)

	return res, nil
}

func (s *serviceImpl) Onboard(ctx context.Context, businessID, email string) (res dto.OnboardResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".payout.Onboard")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !s.processor.Configured() {
		return res, failure.NotConfigured // nolint:wrapcheck
	}

	account, err := s.find(ctx, businessID)
	if err != nil {
		return res, err
	}

	if account.AccountID == constant.Empty {
		created, err := s.processor.CreateAccount(ctx, stripe.AccountParams{
			Email:      email,
			Country:    s.cfg.External.Stripe.Country,
			BusinessID: businessID,
		})
		if err != nil {
			log.Error().Err(err).Str("business_id", businessID).Msg("failed to create connected account")

			return res, stripe.AsFailure(err) // nolint:wrapcheck
		}

		actor := shared.ActorFromContext(ctx)
		account = model.BusinessPayoutAccount{
			BusinessID:       businessID,
			AccountID:        created.ID,
			ChargesEnabled:   created.ChargesEnabled,
			PayoutsEnabled:   created.PayoutsEnabled,
			DetailsSubmitted: created.DetailsSubmitted,
			Status:           DeriveStatus(created),
			Metadata:         gModel.NewMetadata(timezone.Now(), actor),
		}

		if err = s.repo.Insert(ctx, account); err != nil {
			log.Error().Err(err).Str("account_id", created.ID).Msg("failed to save payout account")

			return res, fmt.Errorf("failed to save payout account: %w", err)
		}
	}

	link, err := s.processor.CreateAccountLink(ctx, account.AccountID)
	if err != nil {
		log.Error().Err(err).Str("account_id", account.AccountID).Msg("failed to create onboarding link")

		return res, stripe.AsFailure(err) // nolint:wrapcheck
	}

	res.AccountID = account.AccountID
	res.OnboardingURL = link

	return res, nil
}

func (s *serviceImpl) Refresh(ctx context.Context, businessID string) (res dto.PayoutAccountResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".payout.Refresh")
	defer scope.End()
	defer scope.TraceIfError(err)

	account, err := s.find(ctx, businessID)
	if err != nil {
		return res, err
	}

	if account.AccountID == constant.Empty {
		return res, failure.NotFound("payout account not found") // nolint:wrapcheck
	}

	remote, err := s.processor.GetAccount(ctx, account.AccountID)
	if err != nil {
		log.Error().Err(err).Str("account_id", account.AccountID).Msg("failed to retrieve connected account")

		return res, stripe.AsFailure(err) // nolint:wrapcheck
	}

	account, updated := s.sync(ctx, account, remote, timezone.Now())

	if err = s.repo.Update(ctx, updated, byBusiness(account.BusinessID)); err != nil {
		log.Error().Err(err).Str("business_id", account.BusinessID).Msg("failed to update payout account")

		return res, fmt.Errorf("failed to update payout account: %w", err)
	}

	log.Info().Str("business_id", account.BusinessID).Str("status", account.Status).Msg("payout account refreshed")

	res.FromModel(account)

	return res, nil
}

// SyncFromProcessor ignores accounts this service never onboarded. Events can arrive
// out of order, so the write only lands while the stored record is not newer than
// the event, and the record is stamped with the event time.
func (s *serviceImpl) SyncFromProcessor(ctx context.Context, remote stripe.Account, occurredAt time.Time) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".payout.SyncFromProcessor")
	defer scope.End()
	defer scope.TraceIfError(err)

	account, err := s.repo.Get(ctx, shared.FilterByID(remote.ID, model.FieldAccountID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("account_id", remote.ID).Msg("failed to get payout account")

		return fmt.Errorf("failed to get payout account: %w", err)
	}

	if account.BusinessID == constant.Empty {
		log.Warn().Str("account_id", remote.ID).Msg("account update for unknown connected account")

		return nil
	}

	if occurredAt.IsZero() {
		occurredAt = timezone.Now()
	}

	if occurredAt.Before(account.ModifiedAt) {
		log.Info().Str("account_id", remote.ID).Time("occurred_at", occurredAt).Msg("stale account update ignored")

		return nil
	}

	account, updated := s.sync(ctx, account, remote, occurredAt)

	rows, err := s.repo.ConditionalUpdate(ctx, updated, byBusiness(account.BusinessID).Append(gDto.Filter{
		ArgName:  "occurred_at",
		Field:    constant.FieldModifiedAt,
		Value:    occurredAt,
		Operator: gDto.FilterOperatorLessEq,
		Table:    model.TableName,
	}))
	if err != nil {
		log.Error().Err(err).Str("business_id", account.BusinessID).Msg("failed to update payout account")

		return fmt.Errorf("failed to update payout account: %w", err)
	}

	if rows == 0 {
		log.Info().Str("account_id", remote.ID).Time("occurred_at", occurredAt).Msg("stale account update ignored")

		return nil
	}

	log.Info().Str("business_id", account.BusinessID).Str("status", account.Status).Msg("payout account synced")

	return nil
}

// sync copies the processor's flags onto account and returns the columns to write.
// Flags are written explicitly so a capability turning off is persisted too.
func (s *serviceImpl) sync(ctx context.Context, account model.BusinessPayoutAccount, remote stripe.Account, at time.Time) (model.BusinessPayoutAccount, map[string]any) {
	account.ChargesEnabled = remote.ChargesEnabled
	account.PayoutsEnabled = remote.PayoutsEnabled
	account.DetailsSubmitted = remote.DetailsSubmitted
	account.Status = DeriveStatus(remote)
	account.ModifiedAt = at
	account.ModifiedBy = shared.ActorFromContext(ctx)

	return account, map[string]any{
		model.FieldChargesEnabled:   account.ChargesEnabled,
		model.FieldPayoutsEnabled:   account.PayoutsEnabled,
		model.FieldDetailsSubmitted: account.DetailsSubmitted,
		model.FieldStatus:           account.Status,
		constant.FieldModifiedAt:    account.ModifiedAt,
		constant.FieldModifiedBy:    account.ModifiedBy,
	}
}
