package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/RafiALMahmud/Job-portal1/internal/authz"
	"github.com/RafiALMahmud/Job-portal1/internal/models"
	"github.com/RafiALMahmud/Job-portal1/internal/repositories/postgres"
	"github.com/RafiALMahmud/Job-portal1/internal/storage"
	"github.com/RafiALMahmud/Job-portal1/internal/utils"
	"github.com/google/uuid"
)

const (
	MaxProfileImageBytes = 2 << 20
	profileNotifications = 5
	msgBadCredentials    = "Either Email/Password is incorrect"
)

var allowedImageExt = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
}

// dummyHash keeps unknown-email logins as slow as wrong-password ones.
var dummyHash, _ = utils.HashPassword("not-a-real-password")

type RegisterInput struct {
	Name            string          `json:"name" form:"name" validate:"required,max=255"`
	Email           string          `json:"email" form:"email" validate:"required,email,max=255"`
	Password        string          `json:"password" form:"password" validate:"required,min=5"`
	ConfirmPassword string          `json:"confirm_password" form:"confirm_password" validate:"required,eqfield=Password"`
	UserType        models.UserType `json:"user_type" form:"user_type" validate:"required,oneof=aspirant employer"`
}

type LoginInput struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

type UpdateProfileInput struct {
	Name        string `json:"name" form:"name" validate:"required,min=3,max=20"`
	Email       string `json:"email" form:"email" validate:"required,email,max=255"`
	Mobile      string `json:"mobile" form:"mobile" validate:"max=50"`
	Designation string `json:"designation" form:"designation" validate:"max=255"`
}

type UpdatePasswordInput struct {
	OldPassword     string `json:"old_password" form:"old_password" validate:"required"`
	NewPassword     string `json:"new_password" form:"new_password" validate:"required,min=5"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password" validate:"required,eqfield=NewPassword"`
	// NewPasswordConfirmation is the legacy name of ConfirmPassword.
	NewPasswordConfirmation string `json:"new_password_confirmation" form:"new_password_confirmation" validate:"-"`
}

// ImageUpload is a profile picture as received by the handler.
type ImageUpload struct {
	Filename string
	Size     int64
	Reader   io.Reader
}

type AuthResult struct {
	User     *models.User
	Token    *IssuedToken
	Redirect string
}

type ProfileView struct {
	User          *models.User          `json:"user"`
	Employer      *models.Employer      `json:"employer,omitempty"`
	Notifications []models.Notification `json:"notifications"`
	UnreadCount   int64                 `json:"unread_count"`
}

type AccountService interface {
	Register(ctx context.Context, in RegisterInput) (*models.User, error)
	Authenticate(ctx context.Context, in LoginInput) (*AuthResult, error)
	Profile(ctx context.Context, actor authz.Actor) (*ProfileView, error)
	UpdateProfile(ctx context.Context, actor authz.Actor, in UpdateProfileInput) (*models.User, error)
	UpdateProfilePicture(ctx context.Context, actor authz.Actor, img ImageUpload) (*models.User, error)
	UpdatePassword(ctx context.Context, actor authz.Actor, in UpdatePasswordInput) error
	DeleteAccount(ctx context.Context, actor authz.Actor, claims *TokenClaims) error
	Logout(ctx context.Context, claims *TokenClaims) error
}

type accountService struct {
	users         postgres.UserRepository
	employers     postgres.EmployerRepository
	notifications postgres.NotificationRepository
	store         storage.ObjectStore
	tokens        TokenService
	activity      ActivityRecorder
	now           func() time.Time
}

func NewAccountService(
	users postgres.UserRepository,
	employers postgres.EmployerRepository,
	notifications postgres.NotificationRepository,
	store storage.ObjectStore,
	tokens TokenService,
	activity ActivityRecorder,
) AccountService {
	if activity == nil {
		activity = NewNopActivityRecorder()
	}
	return &accountService{
		users:         users,
		employers:     employers,
		notifications: notifications,
		store:         store,
		tokens:        tokens,
		activity:      activity,
		now:           time.Now,
	}
}

func (s *accountService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	const op = "AccountService.Register"

	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)

	fields := utils.FieldErrors{}
	utils.CollectStruct(fields, in)

	u, err := createUser(ctx, op, s.users, fields, newUserFields{
		Name:     in.Name,
		Email:    in.Email,
		Password: in.Password,
		UserType: in.UserType,
	})
	if err != nil {
		return nil, err
	}
	s.activity.Record(ctx, u.ID, models.ActivityUserRegistered, "user", u.ID, map[string]string{"user_type": string(u.UserType)})
	return u, nil
}

func (s *accountService) Authenticate(ctx context.Context, in LoginInput) (*AuthResult, error) {
	const op = "AccountService.Authenticate"

	if err := utils.ValidateStruct(op, in); err != nil {
		return nil, err
	}

	u, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			_ = utils.CheckPassword(dummyHash, in.Password)
			return nil, utils.E(utils.CodeUnauthorized, op, msgBadCredentials, nil)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load user", err)
	}
	if err := utils.CheckPassword(u.PasswordHash, in.Password); err != nil {
		return nil, utils.E(utils.CodeUnauthorized, op, msgBadCredentials, nil)
	}

	tok, err := s.tokens.Issue(u.ID, u.UserType)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: u, Token: tok, Redirect: authz.LandingPath(u.UserType)}, nil
}

func (s *accountService) Profile(ctx context.Context, actor authz.Actor) (*ProfileView, error) {
	const op = "AccountService.Profile"

	u, err := s.loadUser(ctx, op, actor.ID)
	if err != nil {
		return nil, err
	}

	view := &ProfileView{User: u}
	if u.UserType == models.UserTypeEmployer {
		emp, err := s.employers.GetByUserID(ctx, u.ID)
		if err != nil && !errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeInternal, op, "failed to load employer profile", err)
		}
		view.Employer = emp
	}

	view.Notifications, err = s.notifications.Latest(ctx, u.ID, profileNotifications)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load notifications", err)
	}
	view.UnreadCount, err = s.notifications.CountUnread(ctx, u.ID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to count notifications", err)
	}
	return view, nil
}

func (s *accountService) UpdateProfile(ctx context.Context, actor authz.Actor, in UpdateProfileInput) (*models.User, error) {
	const op = "AccountService.UpdateProfile"

	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)

	fields := utils.FieldErrors{}
	utils.CollectStruct(fields, in)
	if _, bad := fields["email"]; !bad {
		taken, err := s.users.EmailTaken(ctx, in.Email, actor.ID)
		if err != nil {
			return nil, utils.E(utils.CodeInternal, op, "failed to check email", err)
		}
		if taken {
			fields.Add("email", "The email has already been taken.")
		}
	}
	if fields.Any() {
		return nil, utils.Invalid(op, fields)
	}

	u, err := s.loadUser(ctx, op, actor.ID)
	if err != nil {
		return nil, err
	}
	u.Name = in.Name
	u.Email = strings.ToLower(in.Email)
	u.Mobile = in.Mobile
	u.Designation = in.Designation
	u.UpdatedAt = s.now().UTC()

	if err := s.users.UpdateProfile(ctx, u); err != nil {
		if errors.Is(err, utils.ErrDuplicate) {
			return nil, utils.InvalidField(op, "email", "The email has already been taken.")
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to update profile", err)
	}
	return u, nil
}

func (s *accountService) UpdateProfilePicture(ctx context.Context, actor authz.Actor, img ImageUpload) (*models.User, error) {
	const op = "AccountService.UpdateProfilePicture"

	if img.Reader == nil {
		return nil, utils.InvalidField(op, "image", "The image field is required.")
	}
	ext := strings.ToLower(filepath.Ext(img.Filename))
	wantType, ok := allowedImageExt[ext]
	if !ok {
		return nil, utils.InvalidField(op, "image", "The image must be a file of type: jpeg, png, jpg, gif.")
	}
	if img.Size > MaxProfileImageBytes {
		return nil, utils.InvalidField(op, "image", "The image must not be greater than 2048 kilobytes.")
	}

	// sniff the real content type, the extension alone is not trusted
	head := make([]byte, 512)
	n, err := io.ReadFull(img.Reader, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, utils.E(utils.CodeInvalidArgument, op, "failed to read image", err)
	}
	head = head[:n]
	if got := http.DetectContentType(head); got != wantType {
		return nil, utils.InvalidField(op, "image", "The image must be an image.")
	}
	body := io.MultiReader(bytes.NewReader(head), io.LimitReader(img.Reader, MaxProfileImageBytes-int64(n)+1))

	u, err := s.loadUser(ctx, op, actor.ID)
	if err != nil {
		return nil, err
	}

	if u.Image != "" {
		if err := s.store.Delete(ctx, u.Image); err != nil && !errors.Is(err, storage.ErrObjectNotFound) {
			return nil, utils.E(utils.CodeUnavailable, op, "failed to delete previous image", err)
		}
	}

	object := fmt.Sprintf("profile_pic/%s/%d-%s%s", u.ID, s.now().Unix(), uuid.NewString()[:8], ext)
	url, err := s.store.Upload(ctx, object, wantType, body)
	if err != nil {
		// the old object is gone, do not leave a dangling reference
		_ = s.users.UpdateImage(ctx, u.ID, "", "")
		return nil, utils.E(utils.CodeUnavailable, op, "failed to store image", err)
	}

	if err := s.users.UpdateImage(ctx, u.ID, object, url); err != nil {
		_ = s.store.Delete(ctx, object)
		return nil, utils.E(utils.CodeInternal, op, "failed to save image", err)
	}
	u.Image, u.ImageURL = object, url
	return u, nil
}

func (s *accountService) UpdatePassword(ctx context.Context, actor authz.Actor, in UpdatePasswordInput) error {
	const op = "AccountService.UpdatePassword"

	if in.ConfirmPassword == "" {
		in.ConfirmPassword = in.NewPasswordConfirmation
	}
	if err := utils.ValidateStruct(op, in); err != nil {
		return err
	}

	u, err := s.loadUser(ctx, op, actor.ID)
	if err != nil {
		return err
	}
	if err := utils.CheckPassword(u.PasswordHash, in.OldPassword); err != nil {
		return &utils.AppError{
			Code:    utils.CodeUnauthorized,
			Op:      op,
			Message: "Your old password is incorrect.",
			Fields:  utils.FieldErrors{"old_password": {"Your old password is incorrect."}},
		}
	}

	hash, err := utils.HashPassword(in.NewPassword)
	if err != nil {
		return utils.E(utils.CodeInternal, op, "failed to hash password", err)
	}
	if err := s.users.UpdatePassword(ctx, u.ID, hash); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to update password", err)
	}
	return nil
}

func (s *accountService) DeleteAccount(ctx context.Context, actor authz.Actor, claims *TokenClaims) error {
	const op = "AccountService.DeleteAccount"

	u, err := s.loadUser(ctx, op, actor.ID)
	if err != nil {
		return err
	}
	if err := s.users.DeleteCascade(ctx, u.ID); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeNotFound, op, "user not found", err)
		}
		return utils.E(utils.CodeInternal, op, "failed to delete account", err)
	}
	removeImage(ctx, s.store, u.Image)
	s.activity.Record(ctx, u.ID, models.ActivityUserDeleted, "user", u.ID, map[string]string{"by": "self"})

	return s.tokens.Revoke(ctx, claims)
}

func (s *accountService) Logout(ctx context.Context, claims *TokenClaims) error {
	return s.tokens.Revoke(ctx, claims)
}

func (s *accountService) loadUser(ctx context.Context, op, id string) (*models.User, error) {
	if id == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "missing user", nil)
	}
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "user not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load user", err)
	}
	return u, nil
}

type newUserFields struct {
	Name     string
	Email    string
	Password string
	UserType models.UserType
}

// createUser finishes validation shared by self-registration and admin creation
// and stores the user, plus an empty Employer row for employers.
func createUser(ctx context.Context, op string, users postgres.UserRepository, fields utils.FieldErrors, in newUserFields) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if _, bad := fields["email"]; !bad && email != "" {
		taken, err := users.EmailTaken(ctx, email, "")
		if err != nil {
			return nil, utils.E(utils.CodeInternal, op, "failed to check email", err)
		}
		if taken {
			fields.Add("email", "The email has already been taken.")
		}
	}
	if fields.Any() {
		return nil, utils.Invalid(op, fields)
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to hash password", err)
	}

	u := &models.User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: hash,
		UserType:     in.UserType,
	}
	if u.UserType == models.UserTypeEmployer {
		err = users.CreateWithEmployer(ctx, u, &models.Employer{ID: uuid.NewString(), UserID: u.ID})
	} else {
		err = users.Create(ctx, u)
	}
	if err != nil {
		if errors.Is(err, utils.ErrDuplicate) {
			return nil, utils.InvalidField(op, "email", "The email has already been taken.")
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to create user", err)
	}
	return u, nil
}

func removeImage(ctx context.Context, store storage.Deleter, object string) {
	if object == "" || store == nil {
		return
	}
	_ = store.Delete(ctx, object)
}
