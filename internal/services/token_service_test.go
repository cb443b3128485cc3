package services

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RafiALMahmud/Job-portal1/internal/cache"
	"github.com/RafiALMahmud/Job-portal1/internal/models"
	"github.com/RafiALMahmud/Job-portal1/internal/utils"
)

func TestTokenIssueParseRevoke(t *testing.T) {
	ctx := context.Background()
	svc := NewTokenService("secret", "jobportal", time.Hour, cache.NewMemoryCache(), nil)

	tok, err := svc.Issue("user-1", models.UserTypeEmployer)
	require.NoError(t, err)

	claims, err := svc.Parse(ctx, tok.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, models.UserTypeEmployer, claims.Role)
	assert.NotEmpty(t, claims.ID)

	require.NoError(t, svc.Revoke(ctx, claims))
	_, err = svc.Parse(ctx, tok.Token)
	ae := appErr(t, err)
	assert.Equal(t, utils.CodeUnauthorized, ae.Code)
	assert.Equal(t, "token revoked", ae.Message)

	other, err := svc.Issue("user-1", models.UserTypeEmployer)
	require.NoError(t, err)
	_, err = svc.Parse(ctx, other.Token)
	assert.NoError(t, err, "revocation is per token")
}

func TestTokenParseRejects(t *testing.T) {
	ctx := context.Background()
	svc := NewTokenService("secret", "jobportal", time.Hour, nil, nil).(*tokenService)

	_, err := svc.Issue("", models.UserTypeAspirant)
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))

	_, err = svc.Parse(ctx, "")
	assert.True(t, utils.IsCode(err, utils.CodeUnauthorized))

	foreign := NewTokenService("other-secret", "jobportal", time.Hour, nil, nil)
	tok, err := foreign.Issue("u", models.UserTypeAspirant)
	require.NoError(t, err)
	_, err = svc.Parse(ctx, tok.Token)
	assert.True(t, utils.IsCode(err, utils.CodeUnauthorized))

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, &TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "u", Issuer: "jobportal"},
		Role:             models.UserTypeAdmin,
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.Parse(ctx, none)
	assert.True(t, utils.IsCode(err, utils.CodeUnauthorized))

	start := time.Now()
	svc.now = func() time.Time { return start }
	tok, err = svc.Issue("u", models.UserTypeAspirant)
	require.NoError(t, err)
	svc.now = func() time.Time { return start.Add(2 * time.Hour) }
	_, err = svc.Parse(ctx, tok.Token)
	ae := appErr(t, err)
	assert.Equal(t, "token expired", ae.Message)
}

func TestTokenParseChecksStoredUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seeker := f.register(t, "Sam Seeker", "sam@example.com", models.UserTypeAspirant)

	forged, err := f.tokens.Issue(seeker.ID, models.UserTypeAdmin)
	require.NoError(t, err)
	claims, err := f.tokens.Parse(ctx, forged.Token)
	require.NoError(t, err)
	assert.Equal(t, models.UserTypeAspirant, claims.Role, "role comes from the stored user")

	require.NoError(t, f.users.DeleteCascade(ctx, seeker.ID))
	_, err = f.tokens.Parse(ctx, forged.Token)
	ae := appErr(t, err)
	assert.Equal(t, utils.CodeUnauthorized, ae.Code)
	assert.Equal(t, "account no longer exists", ae.Message)
}
