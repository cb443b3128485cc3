package services

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/RafiALMahmud/Job-portal1/internal/cache"
	"github.com/RafiALMahmud/Job-portal1/internal/models"
	"github.com/RafiALMahmud/Job-portal1/internal/repositories/postgres"
	"github.com/RafiALMahmud/Job-portal1/internal/utils"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const msgResetExpired = "Session expired. Please try again."

type ResetOptions struct {
	TTL            time.Duration
	MaxAttempts    int
	CodeInResponse bool
}

type GenerateResetInput struct {
	Email string `json:"email" form:"email" validate:"required,email"`
}

type VerifyCodeInput struct {
	Token string `json:"token" form:"token" validate:"required"`
	Code  string `json:"code" form:"code" validate:"required,len=4,numeric"`
}

type ResetPasswordInput struct {
	Token                string `json:"token" form:"token" validate:"required"`
	Password             string `json:"password" form:"password" validate:"required,min=5"`
	PasswordConfirmation string `json:"password_confirmation" form:"password_confirmation" validate:"required,eqfield=Password"`
}

type ResetTicket struct {
	Token     string    `json:"token"`
	Code      string    `json:"code,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
}

// resetEntry is what the cache holds for one reset attempt.
type resetEntry struct {
	Email     string    `json:"email"`
	Code      string    `json:"code"`
	Verified  bool      `json:"verified"`
	ExpiresAt time.Time `json:"expires_at"`
}

type PasswordResetService interface {
	GenerateResetCode(ctx context.Context, in GenerateResetInput) (*ResetTicket, error)
	VerifyCode(ctx context.Context, in VerifyCodeInput) error
	ResetPassword(ctx context.Context, in ResetPasswordInput) error
}

type passwordResetService struct {
	users    postgres.UserRepository
	cache    cache.Cache
	activity ActivityRecorder
	log      *logrus.Logger
	opts     ResetOptions
	now      func() time.Time
}

func NewPasswordResetService(users postgres.UserRepository, c cache.Cache, activity ActivityRecorder, log *logrus.Logger, opts ResetOptions) PasswordResetService {
	if opts.TTL <= 0 {
		opts.TTL = 10 * time.Minute
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 5
	}
	if activity == nil {
		activity = NewNopActivityRecorder()
	}
	if log == nil {
		log = logrus.New()
	}
	return &passwordResetService{users: users, cache: c, activity: activity, log: log, opts: opts, now: time.Now}
}

func (s *passwordResetService) GenerateResetCode(ctx context.Context, in GenerateResetInput) (*ResetTicket, error) {
	const op = "PasswordResetService.GenerateResetCode"

	if err := utils.ValidateStruct(op, in); err != nil {
		return nil, err
	}
	u, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.InvalidField(op, "email", "The selected email is invalid.")
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load user", err)
	}

	code, err := randomCode()
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to generate code", err)
	}

	token := uuid.NewString()
	exp := s.now().Add(s.opts.TTL)
	entry := resetEntry{Email: u.Email, Code: code, ExpiresAt: exp}
	if err := s.cache.SetJSON(ctx, cache.KeyPrefixReset+token, entry, s.opts.TTL); err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "failed to store reset code", err)
	}

	ticket := &ResetTicket{Token: token, ExpiresAt: exp}
	if s.opts.CodeInResponse {
		ticket.Code = code
		s.log.WithField("user_id", u.ID).Warn("password reset code returned in response body")
	}
	return ticket, nil
}

func (s *passwordResetService) VerifyCode(ctx context.Context, in VerifyCodeInput) error {
	const op = "PasswordResetService.VerifyCode"

	if err := utils.ValidateStruct(op, in); err != nil {
		return err
	}
	entry, err := s.load(ctx, op, in.Token)
	if err != nil {
		return err
	}

	tries, err := s.cache.Incr(ctx, cache.KeyPrefixResetTries+in.Token, s.opts.TTL)
	if err != nil {
		return utils.E(utils.CodeUnavailable, op, "failed to track attempts", err)
	}
	if tries > int64(s.opts.MaxAttempts) {
		s.discard(ctx, in.Token)
		return utils.E(utils.CodeSessionExpired, op, "Too many attempts. Please request a new code.", nil)
	}

	if subtle.ConstantTimeCompare([]byte(strings.TrimSpace(in.Code)), []byte(entry.Code)) != 1 {
		return utils.InvalidField(op, "code", "Invalid verification code.")
	}

	entry.Verified = true
	remaining := entry.ExpiresAt.Sub(s.now())
	if remaining <= 0 {
		s.discard(ctx, in.Token)
		return utils.E(utils.CodeSessionExpired, op, msgResetExpired, nil)
	}
	if err := s.cache.SetJSON(ctx, cache.KeyPrefixReset+in.Token, entry, remaining); err != nil {
		return utils.E(utils.CodeUnavailable, op, "failed to store reset state", err)
	}
	return nil
}

func (s *passwordResetService) ResetPassword(ctx context.Context, in ResetPasswordInput) error {
	const op = "PasswordResetService.ResetPassword"

	if err := utils.ValidateStruct(op, in); err != nil {
		return err
	}
	entry, err := s.load(ctx, op, in.Token)
	if err != nil {
		return err
	}
	if !entry.Verified {
		return utils.E(utils.CodeSessionExpired, op, msgResetExpired, nil)
	}

	u, err := s.users.GetByEmail(ctx, entry.Email)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			s.discard(ctx, in.Token)
			return utils.InvalidField(op, "email", "User not found.")
		}
		return utils.E(utils.CodeInternal, op, "failed to load user", err)
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return utils.E(utils.CodeInternal, op, "failed to hash password", err)
	}
	if err := s.users.UpdatePassword(ctx, u.ID, hash); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to update password", err)
	}

	s.discard(ctx, in.Token)
	s.activity.Record(ctx, u.ID, models.ActivityPasswordReset, "user", u.ID, nil)
	return nil
}

func (s *passwordResetService) load(ctx context.Context, op, token string) (*resetEntry, error) {
	var entry resetEntry
	hit, err := s.cache.GetJSON(ctx, cache.KeyPrefixReset+token, &entry)
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "failed to load reset state", err)
	}
	if !hit || !s.now().Before(entry.ExpiresAt) {
		return nil, utils.E(utils.CodeSessionExpired, op, msgResetExpired, nil)
	}
	return &entry, nil
}

func (s *passwordResetService) discard(ctx context.Context, token string) {
	if err := s.cache.Del(ctx, cache.KeyPrefixReset+token, cache.KeyPrefixResetTries+token); err != nil {
		s.log.WithError(err).Warn("failed to discard reset entry")
	}
}

// randomCode returns a 4-digit code in [1000, 9999].
func randomCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", n.Int64()+1000), nil
}
