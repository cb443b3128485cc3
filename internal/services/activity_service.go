package services

import (
	"context"
	"time"

	"github.com/RafiALMahmud/Job-portal1/internal/models"
	mongorepo "github.com/RafiALMahmud/Job-portal1/internal/repositories/mongo"
	"github.com/RafiALMahmud/Job-portal1/internal/utils"
	"github.com/sirupsen/logrus"
)

// ActivityRecorder writes the moderation and account audit trail.
// Recording is best-effort: failures are logged, never returned to the caller.
type ActivityRecorder interface {
	Record(ctx context.Context, actorID, action, targetType, targetID string, meta map[string]string)
	Recent(ctx context.Context, limit int64) ([]models.Activity, error)
}

type activityService struct {
	repo mongorepo.ActivityRepository
	log  *logrus.Logger
}

func NewActivityService(repo mongorepo.ActivityRepository, log *logrus.Logger) ActivityRecorder {
	if log == nil {
		log = logrus.New()
	}
	return &activityService{repo: repo, log: log}
}

func (s *activityService) Record(ctx context.Context, actorID, action, targetType, targetID string, meta map[string]string) {
	a := &models.Activity{
		ActorID:    actorID,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		Metadata:   meta,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, a); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"action":    action,
			"actor_id":  actorID,
			"target_id": targetID,
		}).Warn("activity not recorded")
	}
}

func (s *activityService) Recent(ctx context.Context, limit int64) ([]models.Activity, error) {
	const op = "ActivityService.Recent"

	rows, err := s.repo.Recent(ctx, limit)
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "failed to load activity log", err)
	}
	return rows, nil
}

type nopActivity struct{}

// NewNopActivityRecorder is used when no Mongo URI is configured.
func NewNopActivityRecorder() ActivityRecorder { return nopActivity{} }

func (nopActivity) Record(context.Context, string, string, string, string, map[string]string) {}

func (nopActivity) Recent(context.Context, int64) ([]models.Activity, error) {
	return []models.Activity{}, nil
}
