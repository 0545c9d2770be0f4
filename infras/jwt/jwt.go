package jwt

import (
	"errors"
	"fmt"
	"sparkle/config"
	"sparkle/shared/timezone"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrExpiredToken  = errors.New("token has expired")
	ErrInvalidClaim  = errors.New("invalid token claim")
	ErrMissingHeader = errors.New("authorization header is required")
	ErrMalformed     = errors.New("authorization header must start with 'Bearer '")
)

const bearerPrefix = "Bearer "

// Claims is the access token issued by the hosted auth provider. The subject is
// the user id; business owners carry the id of the business they manage.
type Claims struct {
	Email      string `json:"email"`
	Role       string `json:"role,omitempty"`
	BusinessID string `json:"business_id,omitempty"`
	jwt.RegisteredClaims
}

// UserID returns the token subject.
func (c *Claims) UserID() string {
	return c.Subject
}

type JWT interface {
	ValidateToken(tokenString string) (*Claims, error)
	GenerateToken(userID, email, role, businessID string, ttl time.Duration) (string, error)
}

type Service struct {
	config *config.Config
}

func New(cfg *config.Config) JWT {
	return &Service{
		config: cfg,
	}
}

// GenerateToken signs a token the way the auth provider does. Production tokens are
// minted by the provider; this exists for local tooling and tests.
func (s *Service) GenerateToken(userID, email, role, businessID string, ttl time.Duration) (string, error) {
	now := timezone.Now()

	claims := Claims{
		Email:      email,
		Role:       role,
		BusinessID: businessID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.config.JWT.Issuer,
			Subject:   userID,
			ID:        uuid.NewString(),
		},
	}

	if s.config.JWT.Audience != "" {
		claims.Audience = jwt.ClaimStrings{s.config.JWT.Audience}
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.JWT.AccessSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}

	if s.config.JWT.Issuer != "" {
		options = append(options, jwt.WithIssuer(s.config.JWT.Issuer))
	}

	if s.config.JWT.Audience != "" {
		options = append(options, jwt.WithAudience(s.config.JWT.Audience))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(_ *jwt.Token) (interface{}, error) {
		return []byte(s.config.JWT.AccessSecret), nil
	}, options...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}

		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Subject == "" {
		return nil, ErrInvalidClaim
	}

	return claims, nil
}

// ExtractTokenFromHeader extracts JWT token from Authorization header
func ExtractTokenFromHeader(authHeader string) (string, error) {
	if authHeader == "" {
		return "", ErrMissingHeader
	}

	token, found := strings.CutPrefix(authHeader, bearerPrefix)
	if !found || token == "" {
		return "", ErrMalformed
	}

	return token, nil
}
