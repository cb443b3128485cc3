package services

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RafiALMahmud/Job-portal1/internal/models"
	"github.com/RafiALMahmud/Job-portal1/internal/utils"
)

func wrongCode(code string) string {
	n, _ := strconv.Atoi(code)
	if n == 9999 {
		return "1000"
	}
	return strconv.Itoa(n + 1)
}

func TestPasswordResetFlow(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.register(t, "Alice", "alice@example.com", models.UserTypeAspirant)

	ticket, err := f.resets.GenerateResetCode(ctx, GenerateResetInput{Email: "alice@example.com"})
	require.NoError(t, err)
	require.Len(t, ticket.Code, 4)
	code, err := strconv.Atoi(ticket.Code)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, code, 1000)
	assert.LessOrEqual(t, code, 9999)

	err = f.resets.ResetPassword(ctx, ResetPasswordInput{Token: ticket.Token, Password: "brandnew", PasswordConfirmation: "brandnew"})
	assert.True(t, utils.IsCode(err, utils.CodeSessionExpired), "reset requires a verified code")

	err = f.resets.VerifyCode(ctx, VerifyCodeInput{Token: ticket.Token, Code: wrongCode(ticket.Code)})
	assert.Equal(t, []string{"Invalid verification code."}, utils.FieldsOf(err)["code"])

	require.NoError(t, f.resets.VerifyCode(ctx, VerifyCodeInput{Token: ticket.Token, Code: ticket.Code}))
	require.NoError(t, f.resets.ResetPassword(ctx, ResetPasswordInput{Token: ticket.Token, Password: "brandnew", PasswordConfirmation: "brandnew"}))

	_, err = f.accounts.Authenticate(ctx, LoginInput{Email: "alice@example.com", Password: "brandnew"})
	assert.NoError(t, err)

	err = f.resets.ResetPassword(ctx, ResetPasswordInput{Token: ticket.Token, Password: "again", PasswordConfirmation: "again"})
	assert.True(t, utils.IsCode(err, utils.CodeSessionExpired), "tokens are single use")
}

func TestGenerateResetCodeUnknownEmail(t *testing.T) {
	f := newFixture(t)

	_, err := f.resets.GenerateResetCode(context.Background(), GenerateResetInput{Email: "ghost@example.com"})
	assert.Equal(t, []string{"The selected email is invalid."}, utils.FieldsOf(err)["email"])
}

func TestVerifyCodeAttemptLimit(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.register(t, "Alice", "alice@example.com", models.UserTypeAspirant)

	ticket, err := f.resets.GenerateResetCode(ctx, GenerateResetInput{Email: "alice@example.com"})
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		err := f.resets.VerifyCode(ctx, VerifyCodeInput{Token: ticket.Token, Code: wrongCode(ticket.Code)})
		require.True(t, utils.IsCode(err, utils.CodeInvalidArgument), "attempt %d", i+1)
	}

	err = f.resets.VerifyCode(ctx, VerifyCodeInput{Token: ticket.Token, Code: ticket.Code})
	ae := appErr(t, err)
	assert.Equal(t, utils.CodeSessionExpired, ae.Code)
	assert.Equal(t, "Too many attempts. Please request a new code.", ae.Message)

	err = f.resets.VerifyCode(ctx, VerifyCodeInput{Token: ticket.Token, Code: ticket.Code})
	assert.True(t, utils.IsCode(err, utils.CodeSessionExpired), "entry is discarded")
}

func TestVerifyCodeExpired(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.register(t, "Alice", "alice@example.com", models.UserTypeAspirant)

	svc := f.resets.(*passwordResetService)
	start := time.Now()
	svc.now = func() time.Time { return start }

	ticket, err := svc.GenerateResetCode(ctx, GenerateResetInput{Email: "alice@example.com"})
	require.NoError(t, err)
	assert.Equal(t, start.Add(10*time.Minute), ticket.ExpiresAt)

	svc.now = func() time.Time { return start.Add(10*time.Minute + time.Second) }
	err = svc.VerifyCode(ctx, VerifyCodeInput{Token: ticket.Token, Code: ticket.Code})
	ae := appErr(t, err)
	assert.Equal(t, utils.CodeSessionExpired, ae.Code)
	assert.Equal(t, "Session expired. Please try again.", ae.Message)
}

func TestVerifyCodeValidation(t *testing.T) {
	f := newFixture(t)

	err := f.resets.VerifyCode(context.Background(), VerifyCodeInput{Token: "t", Code: "12a4"})
	assert.Contains(t, utils.FieldsOf(err), "code")

	err = f.resets.VerifyCode(context.Background(), VerifyCodeInput{Token: "unknown", Code: "1234"})
	assert.True(t, utils.IsCode(err, utils.CodeSessionExpired))
}
