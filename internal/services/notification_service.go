package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/RafiALMahmud/Job-portal1/internal/authz"
	"github.com/RafiALMahmud/Job-portal1/internal/models"
	"github.com/RafiALMahmud/Job-portal1/internal/repositories/postgres"
	"github.com/RafiALMahmud/Job-portal1/internal/utils"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

// NotificationEvent is a notification waiting to be persisted for one user.
type NotificationEvent struct {
	UserID  string            `json:"user_id"`
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Data    map[string]string `json:"data,omitempty"`
}

// Notifier accepts notification events; delivery may be synchronous or queued.
type Notifier interface {
	Notify(ctx context.Context, ev NotificationEvent) error
}

// LivePublisher pushes a stored notification to connected clients.
type LivePublisher interface {
	PublishNotification(ctx context.Context, n *models.Notification) error
}

type NotificationService interface {
	Notifier
	List(ctx context.Context, actor authz.Actor, page int) (models.Page[models.Notification], error)
	MarkAsRead(ctx context.Context, actor authz.Actor, id string) error
	MarkAllAsRead(ctx context.Context, actor authz.Actor) (int64, error)
}

type notificationService struct {
	repo postgres.NotificationRepository
	live LivePublisher
	log  *logrus.Logger
	now  func() time.Time
}

// NewNotificationService stores notifications directly; live may be nil.
func NewNotificationService(repo postgres.NotificationRepository, live LivePublisher, log *logrus.Logger) NotificationService {
	if log == nil {
		log = logrus.New()
	}
	return &notificationService{repo: repo, live: live, log: log, now: time.Now}
}

func (s *notificationService) Notify(ctx context.Context, ev NotificationEvent) error {
	const op = "NotificationService.Notify"

	if ev.UserID == "" || ev.Type == "" {
		return utils.E(utils.CodeInvalidArgument, op, "user id and type are required", nil)
	}

	n := &models.Notification{
		ID:        uuid.NewString(),
		UserID:    ev.UserID,
		Type:      ev.Type,
		Message:   ev.Message,
		Data:      datatypes.JSON("{}"),
		CreatedAt: s.now().UTC(),
	}
	if len(ev.Data) > 0 {
		b, err := json.Marshal(ev.Data)
		if err != nil {
			return utils.E(utils.CodeInternal, op, "failed to encode notification data", err)
		}
		n.Data = datatypes.JSON(b)
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to store notification", err)
	}

	if s.live != nil {
		if err := s.live.PublishNotification(ctx, n); err != nil {
			s.log.WithError(err).WithField("user_id", n.UserID).Warn("live notification push failed")
		}
	}
	return nil
}

func (s *notificationService) List(ctx context.Context, actor authz.Actor, page int) (models.Page[models.Notification], error) {
	const op = "NotificationService.List"

	page, offset := models.NormalizePage(page, models.DefaultPageSize)
	rows, total, err := s.repo.ListByUser(ctx, actor.ID, offset, models.DefaultPageSize)
	if err != nil {
		return models.Page[models.Notification]{}, utils.E(utils.CodeInternal, op, "failed to list notifications", err)
	}
	return models.NewPage(rows, page, models.DefaultPageSize, total), nil
}

func (s *notificationService) MarkAsRead(ctx context.Context, actor authz.Actor, id string) error {
	const op = "NotificationService.MarkAsRead"

	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeNotFound, op, "Notification not found", err)
		}
		return utils.E(utils.CodeInternal, op, "failed to load notification", err)
	}
	if !authz.CanReadNotification(actor, n) {
		return utils.E(utils.CodeForbidden, op, "Unauthorized", nil)
	}
	if n.IsRead {
		return nil
	}
	if err := s.repo.MarkRead(ctx, n.ID, s.now().UTC()); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to mark notification", err)
	}
	return nil
}

func (s *notificationService) MarkAllAsRead(ctx context.Context, actor authz.Actor) (int64, error) {
	const op = "NotificationService.MarkAllAsRead"

	n, err := s.repo.MarkAllRead(ctx, actor.ID, s.now().UTC())
	if err != nil {
		return 0, utils.E(utils.CodeInternal, op, "failed to mark notifications", err)
	}
	return n, nil
}
