package middleware

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"sparkle/config"
	"sparkle/infras/jwt"
	"sparkle/infras/otel"
	"sparkle/permissions"
	"sparkle/shared"
	"sparkle/shared/constant"
	"sparkle/shared/failure"
	"sparkle/transport/http/response"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type SkipAuthKey string

// Auth defines the interface for authentication middleware
type Auth interface {
	Auth(http.Handler) http.Handler
	APIKey(http.Handler) http.Handler
}

// Role defines the interface for role-based access control middleware
type Role interface {
	RBAC(http.Handler) http.Handler
}

// AuthRole combines all middleware interfaces
type AuthRole interface {
	Auth
	Role
}

type authRoleImpl struct {
	jwtService jwt.JWT
	otel       otel.Otel
	permission *permissions.PermissionData
	policy     permissions.Policy
	cfg        *config.Config
}

func NewAuthRoleMiddleware(jwtService jwt.JWT, otel otel.Otel, permission *permissions.PermissionData, policy permissions.Policy, cfg *config.Config) AuthRole {
	return &authRoleImpl{
		jwtService: jwtService,
		otel:       otel,
		permission: permission,
		policy:     policy,
		cfg:        cfg,
	}
}

// routePattern resolves the registered pattern of the request, e.g. /v1/bookings/{id}.
func routePattern(request *http.Request) string {
	rctx := chi.RouteContext(request.Context())
	if rctx == nil || rctx.Routes == nil {
		return request.URL.Path
	}

	pattern := rctx.Routes.Find(chi.NewRouteContext(), request.Method, request.URL.Path)
	if pattern == "" {
		pattern = request.URL.Path
	}

	if len(pattern) > 1 {
		pattern = strings.TrimSuffix(pattern, "/")
	}

	return pattern
}

func skipped(ctx context.Context) bool {
	skip, _ := ctx.Value(SkipAuthKey("skip")).(bool)

	return skip
}

func (m *authRoleImpl) route(request *http.Request) permissions.Permission {
	if m.permission == nil {
		return permissions.Permission{}
	}

	return m.permission.FindPermissions(routePattern(request), request.Method)
}

func tokenFailure(err error) error {
	switch {
	case errors.Is(err, jwt.ErrMissingHeader):
		return failure.Unauthorized("Missing authorization header")
	case errors.Is(err, jwt.ErrMalformed):
		return failure.Unauthorized("Invalid authorization header format")
	case errors.Is(err, jwt.ErrExpiredToken):
		return failure.Unauthorized("Token has expired")
	case errors.Is(err, jwt.ErrInvalidClaim):
		return failure.Unauthorized("Invalid token claims")
	default:
		return failure.Unauthorized("Invalid token")
	}
}

// roleOf ignores an admin role claimed by the token itself.
func (m *authRoleImpl) roleOf(claims *jwt.Claims) string {
	switch {
	case m.policy.IsAdmin(claims.Email):
		return constant.RoleAdmin
	case claims.BusinessID != "" || claims.Role == constant.RoleBusiness:
		return constant.RoleBusiness
	default:
		return constant.RoleCustomer
	}
}

// Auth validates the bearer token issued by the auth provider and attaches the
// caller to the context. Admin rights come from the policy, never from the token.
func (m *authRoleImpl) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "auth.middleware")

		if skipped(ctx) || m.route(request).Skip {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		scope.SetAttributes(map[string]any{
			"middleware.type": "auth",
			"http.path":       routePattern(request),
			"http.method":     request.Method,
		})

		claims, err := m.authenticate(request)
		if err != nil {
			authErr := tokenFailure(err)
			log.Warn().Err(err).Str("path", request.URL.Path).Msg("rejected request token")

			scope.TraceError(authErr)
			scope.End()

			response.WithError(writer, authErr)

			return
		}

		ctx = shared.WithCaller(request.Context(), shared.Caller{
			UserID:     claims.UserID(),
			Email:      claims.Email,
			Role:       m.roleOf(claims),
			BusinessID: claims.BusinessID,
		})
		ctx = context.WithValue(ctx, constant.ContextKeyTokenID, claims.ID)

		scope.End()
		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

func (m *authRoleImpl) authenticate(request *http.Request) (*jwt.Claims, error) {
	tokenString, err := jwt.ExtractTokenFromHeader(request.Header.Get(constant.RequestHeaderAuthorization))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return m.jwtService.ValidateToken(tokenString) //nolint:wrapcheck
}

// RBAC checks the caller role against the route table. Requires prior authentication via Auth.
func (m *authRoleImpl) RBAC(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "rbac.middleware")

		if skipped(ctx) {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		if m.permission == nil {
			scope.End()
			response.WithError(writer, failure.ForbiddenError)

			return
		}

		permission := m.route(request)
		if m.permission.Skip || permission.Skip {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		role := shared.CallerFromContext(ctx).Role

		if !permission.Allows(role) {
			err := failure.ForbiddenError
			scope.TraceError(err)
			scope.SetAttributes(map[string]any{
				"user_role":     role,
				"allowed_roles": strings.Join(permission.Permissions, ","),
				"reason":        "role_not_allowed",
			})
			scope.End()
			response.WithError(writer, err)

			return
		}

		scope.End()
		next.ServeHTTP(writer, request)
	})
}

// APIKey marks trusted service-to-service calls. A wrong key is rejected; no key
// falls through to token authentication.
func (m *authRoleImpl) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "api_key.middleware")

		apiKey := request.Header.Get(constant.RequestHeaderAPIKey)
		if apiKey == "" {
			scope.SetAttribute("http.source", "client")
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		scope.SetAttribute("http.source", "internal")

		if m.cfg.App.APIKey == "" || subtle.ConstantTimeCompare([]byte(apiKey), []byte(m.cfg.App.APIKey)) != 1 {
			err := failure.ForbiddenError

			scope.TraceError(err)
			scope.End()

			response.WithError(writer, err)

			return
		}

		ctx = context.WithValue(request.Context(), SkipAuthKey("skip"), true)
		ctx = context.WithValue(ctx, constant.ContextKeyInternal, true)

		scope.End()
		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}
