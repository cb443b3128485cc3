package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/RafiALMahmud/Job-portal1/internal/cache"
	"github.com/RafiALMahmud/Job-portal1/internal/models"
	"github.com/RafiALMahmud/Job-portal1/internal/repositories/postgres"
	"github.com/RafiALMahmud/Job-portal1/internal/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenClaims is the payload of an access token; the subject is the user id.
type TokenClaims struct {
	jwt.RegisteredClaims
	Role models.UserType `json:"role"`
}

type IssuedToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type TokenService interface {
	Issue(userID string, role models.UserType) (*IssuedToken, error)
	Parse(ctx context.Context, raw string) (*TokenClaims, error)
	Revoke(ctx context.Context, claims *TokenClaims) error
}

type tokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration
	cache  cache.Cache
	users  postgres.UserRepository
	now    func() time.Time
}

// NewTokenService signs and verifies access tokens. When users is set, Parse also
// requires the subject to still exist and takes the role from the stored user.
func NewTokenService(secret, issuer string, ttl time.Duration, c cache.Cache, users postgres.UserRepository) TokenService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &tokenService{secret: []byte(secret), issuer: issuer, ttl: ttl, cache: c, users: users, now: time.Now}
}

func (s *tokenService) Issue(userID string, role models.UserType) (*IssuedToken, error) {
	const op = "TokenService.Issue"

	if userID == "" || !role.Valid() {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user id and role are required", nil)
	}

	now := s.now()
	exp := now.Add(s.ttl)
	claims := &TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		Role: role,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to sign token", err)
	}
	return &IssuedToken{Token: signed, ExpiresAt: exp}, nil
}

func (s *tokenService) Parse(ctx context.Context, raw string) (*TokenClaims, error) {
	const op = "TokenService.Parse"

	if raw == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "missing token", nil)
	}

	claims := &TokenClaims{}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, opts...)
	if err != nil || tok == nil || !tok.Valid {
		msg := "invalid token"
		if errors.Is(err, jwt.ErrTokenExpired) {
			msg = "token expired"
		}
		return nil, utils.E(utils.CodeUnauthorized, op, msg, err)
	}
	if claims.Subject == "" || !claims.Role.Valid() {
		return nil, utils.E(utils.CodeUnauthorized, op, "invalid token claims", nil)
	}

	if claims.ID != "" && s.cache != nil {
		var revoked bool
		hit, err := s.cache.GetJSON(ctx, cache.KeyPrefixRevoked+claims.ID, &revoked)
		if err != nil {
			return nil, utils.E(utils.CodeUnavailable, op, "failed to check token revocation", err)
		}
		if hit && revoked {
			return nil, utils.E(utils.CodeUnauthorized, op, "token revoked", nil)
		}
	}

	if s.users != nil {
		u, err := s.users.GetByID(ctx, claims.Subject)
		if err != nil {
			if errors.Is(err, utils.ErrNotFound) {
				return nil, utils.E(utils.CodeUnauthorized, op, "account no longer exists", err)
			}
			return nil, utils.E(utils.CodeUnavailable, op, "failed to load token subject", err)
		}
		claims.Role = u.UserType
	}
	return claims, nil
}

// Revoke blocks the token until its natural expiry.
func (s *tokenService) Revoke(ctx context.Context, claims *TokenClaims) error {
	const op = "TokenService.Revoke"

	if claims == nil || claims.ID == "" || s.cache == nil {
		return nil
	}
	ttl := time.Minute
	if claims.ExpiresAt != nil {
		ttl = claims.ExpiresAt.Time.Sub(s.now())
	}
	if ttl <= 0 {
		return nil
	}
	if err := s.cache.SetJSON(ctx, cache.KeyPrefixRevoked+claims.ID, true, ttl); err != nil {
		return utils.E(utils.CodeUnavailable, op, fmt.Sprintf("failed to revoke token %s", claims.ID), err)
	}
	return nil
}
