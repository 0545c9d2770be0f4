package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Notification=MockNotificationService

import (
	"context"
	"fmt"
	"sparkle/config"
	"sparkle/infras/otel"
	bookingModel "sparkle/internal/domains/booking/model"
	"sparkle/internal/domains/notification/model"
	"sparkle/internal/domains/notification/model/dto"
	"sparkle/internal/domains/notification/repository"
	"sparkle/internal/events"
	"sparkle/shared"
	"sparkle/shared/constant"
	gDto "sparkle/shared/dto"
	"sparkle/shared/failure"
	"sparkle/shared/metrics"
	gModel "sparkle/shared/model"
	"sparkle/shared/timezone"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// notificationNamespace seeds deterministic ids so a redelivered event writes nothing new.
var notificationNamespace = uuid.MustParse("0b6f0d52-8f43-4d1c-a39e-5f2a8f1e7c11")

type Notification interface {
	HandleBookingEvent(ctx context.Context, event events.BookingEvent) error
	ListMine(ctx context.Context, req gDto.QueryParams) (dto.GetNotificationsResponse, error)
	MarkRead(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo repository.Notification
	cfg  *config.Config
	otel otel.Otel
}

func New(repo repository.Notification, cfg *config.Config, otel otel.Otel) Notification {
	return &serviceImpl{
		repo: repo,
		cfg:  cfg,
		otel: otel,
	}
}

type message struct {
	title string
	body  string
}

// Recipients returns who hears about the event: the counterparty of whoever acted,
// or both parties when an admin acted.
func Recipients(event events.BookingEvent) []string {
	switch event.ActorRole {
	case bookingModel.RoleCustomer:
		return []string{event.BusinessID}
	case bookingModel.RoleBusiness:
		return []string{event.CustomerID}
	case bookingModel.RoleAdmin:
		return []string{event.CustomerID, event.BusinessID}
	default:
		return nil
	}
}

func compose(event events.BookingEvent) (message, bool) {
	if event.Kind == events.BookingCreated {
		return message{
			title: "New booking request",
			body:  fmt.Sprintf("Booking %s is waiting for your answer.", event.BookingID),
		}, true
	}

	switch bookingModel.Status(event.To) {
	case bookingModel.StatusAccepted:
		return message{title: "Booking accepted", body: fmt.Sprintf("Booking %s was accepted.", event.BookingID)}, true
	case bookingModel.StatusDeclined:
		return message{title: "Booking declined", body: fmt.Sprintf("Booking %s was declined.", event.BookingID)}, true
	case bookingModel.StatusCompleted:
		return message{title: "Booking completed", body: fmt.Sprintf("Booking %s was marked completed.", event.BookingID)}, true
	case bookingModel.StatusCancelled:
		body := fmt.Sprintf("Booking %s was cancelled by the %s.", event.BookingID, event.ActorRole)
		if event.Reason != constant.Empty {
			body += " Reason: " + event.Reason
		}

		if event.RefundStatus != constant.Empty {
			body += fmt.Sprintf(" Refund %s.", event.RefundStatus)
		}

		return message{title: "Booking cancelled", body: body}, true
	default:
		return message{}, false
	}
}

func (s *serviceImpl) HandleBookingEvent(ctx context.Context, event events.BookingEvent) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".notification.HandleBookingEvent")
	defer scope.End()
	defer scope.TraceIfError(err)

	msg, ok := compose(event)
	if !ok {
		log.Debug().Str("kind", event.Kind).Str("to", event.To).Msg("no notification for booking event")

		return nil
	}

	now := timezone.Now()

	for _, recipient := range Recipients(event) {
		if recipient == constant.Empty {
			continue
		}

		seed := strings.Join([]string{event.BookingID, event.Kind, event.To, recipient, event.OccurredAt.UTC().String()}, "|")
		notification := model.Notification{
			ID:          uuid.NewSHA1(notificationNamespace, []byte(seed)).String(),
			RecipientID: recipient,
			BookingID:   event.BookingID,
			Kind:        event.Kind,
			Title:       msg.title,
			Body:        msg.body,
			Metadata:    gModel.NewMetadata(now, event.Actor),
		}

		inserted, err := s.repo.InsertIgnore(ctx, notification, model.FieldID)
		if err != nil {
			log.Error().Err(err).Str("booking_id", event.BookingID).Str("recipient_id", recipient).Msg("failed to store notification")

			return fmt.Errorf("failed to store notification: %w", err)
		}

		if !inserted {
			log.Debug().Str("notification_id", notification.ID).Msg("notification already stored")

			continue
		}

		metrics.NotificationsCreatedTotal.WithLabelValues(event.Kind).Inc()
	}

	return nil
}

func recipientFilter(caller shared.Caller) gDto.Filter {
	recipients := []string{caller.UserID}
	if caller.BusinessID != constant.Empty {
		recipients = append(recipients, caller.BusinessID)
	}

	return gDto.Filter{
		Field:    model.FieldRecipientID,
		Value:    recipients,
		Operator: gDto.FilterOperatorIn,
		Table:    model.TableName,
	}
}

func (s *serviceImpl) ListMine(ctx context.Context, req gDto.QueryParams) (res dto.GetNotificationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".notification.ListMine")
	defer scope.End()
	defer scope.TraceIfError(err)

	caller := shared.CallerFromContext(ctx)
	if !caller.Authenticated() {
		return res, failure.Unauthenticated // nolint:wrapcheck
	}

	filter := gDto.And(recipientFilter(caller))

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count notifications")

		return res, fmt.Errorf("failed to count notifications: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get notifications")

		return res, fmt.Errorf("failed to get notifications: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) MarkRead(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".notification.MarkRead")
	defer scope.End()
	defer scope.TraceIfError(err)

	caller := shared.CallerFromContext(ctx)
	if !caller.Authenticated() {
		return failure.Unauthenticated // nolint:wrapcheck
	}

	now := timezone.Now()

	rows, err := s.repo.ConditionalUpdate(ctx, map[string]any{
		model.FieldReadAt:        now,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: caller.UserID,
	}, gDto.And(gDto.Eq(model.TableName, model.FieldID, id), recipientFilter(caller)))
	if err != nil {
		log.Error().Err(err).Str("notification_id", id).Msg("failed to mark notification read")

		return fmt.Errorf("failed to mark notification read: %w", err)
	}

	if rows == 0 {
		return failure.NotFound("notification not found") // nolint:wrapcheck
	}

	return nil
}
