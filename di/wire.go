//go:build wireinject
// +build wireinject

package di

import (
	"sparkle/config"
	"sparkle/infras/jwt"
	"sparkle/infras/kafka"
	"sparkle/infras/otel"
	"sparkle/infras/postgres"
	"sparkle/infras/redis"
	"sparkle/infras/s3"
	"sparkle/infras/stripe"
	"sparkle/internal/events"
	"sparkle/permissions"
	"sparkle/shared/cache"
	"sparkle/transport/consumer"
	"sparkle/transport/http"
	"sparkle/transport/http/middleware"
	"sparkle/transport/http/router"

	bookingRepository "sparkle/internal/domains/booking/repository"
	bookingService "sparkle/internal/domains/booking/service"
	notificationRepository "sparkle/internal/domains/notification/repository"
	notificationService "sparkle/internal/domains/notification/service"
	paymentRepository "sparkle/internal/domains/payment/repository"
	paymentService "sparkle/internal/domains/payment/service"
	payoutRepository "sparkle/internal/domains/payout/repository"
	payoutService "sparkle/internal/domains/payout/service"

	bookingHandler "sparkle/internal/handlers/booking"
	notificationHandler "sparkle/internal/handlers/notification"
	paymentHandler "sparkle/internal/handlers/payment"
	payoutHandler "sparkle/internal/handlers/payout"
	webhookHandler "sparkle/internal/handlers/webhook"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
	permissions.NewPolicy,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
	stripe.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	events.NewPublisher,
)

var payoutDomain = wire.NewSet(
	payoutRepository.New,
	payoutService.New,
)

var paymentDomain = wire.NewSet(
	paymentRepository.New,
	paymentService.New,
	paymentService.NewWebhook,
	wire.Bind(new(paymentService.Refunder), new(paymentService.Payment)),
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var notificationDomain = wire.NewSet(
	notificationRepository.New,
	notificationService.New,
)

var domains = wire.NewSet(
	payoutDomain,
	paymentDomain,
	bookingDomain,
	notificationDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	bookingHandler.New,
	paymentHandler.New,
	webhookHandler.New,
	payoutHandler.New,
	notificationHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

func InitializeConsumer() *consumer.Consumer {
	wire.Build(
		config.Get,
		postgres.New,
		otel.New,
		kafka.New,
		notificationDomain,
		consumer.New,
	)

	return &consumer.Consumer{}
}
