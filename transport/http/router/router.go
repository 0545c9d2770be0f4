package router

import (
	"sparkle/internal/handlers/booking"
	"sparkle/internal/handlers/notification"
	"sparkle/internal/handlers/payment"
	"sparkle/internal/handlers/payout"
	"sparkle/internal/handlers/webhook"
	"sparkle/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Booking      booking.Handler
	Payment      payment.Handler
	Webhook      webhook.Handler
	Payout       payout.Handler
	Notification notification.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	AuthRole       middleware.AuthRole
}

// SetupRoutes mounts the versioned API. Public routes such as the processor
// webhook are marked skip in the permission table.
func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.AuthRole.APIKey, r.AuthRole.Auth, r.AuthRole.RBAC)

		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Payment.Router(routerGroup)
		r.DomainHandlers.Webhook.Router(routerGroup)
		r.DomainHandlers.Payout.Router(routerGroup)
		r.DomainHandlers.Notification.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers, authRole middleware.AuthRole) Router {
	return Router{
		DomainHandlers: domainHandlers,
		AuthRole:       authRole,
	}
}
