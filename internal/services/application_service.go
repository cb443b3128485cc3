package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/RafiALMahmud/Job-portal1/internal/authz"
	"github.com/RafiALMahmud/Job-portal1/internal/models"
	"github.com/RafiALMahmud/Job-portal1/internal/repositories/postgres"
	"github.com/RafiALMahmud/Job-portal1/internal/utils"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type ApplicantsView struct {
	Job          *models.Job          `json:"job"`
	Applications []models.Application `json:"applications"`
}

type ApplicationService interface {
	Apply(ctx context.Context, actor authz.Actor, jobID string) (*models.Application, error)
	JobsApplied(ctx context.Context, actor authz.Actor, page int) (models.Page[models.Application], error)
	SaveJob(ctx context.Context, actor authz.Actor, jobID string) (*models.SavedJob, error)
	UnsaveJob(ctx context.Context, actor authz.Actor, jobID string) error
	SavedJobs(ctx context.Context, actor authz.Actor, page int) (models.Page[models.SavedJob], error)

	ViewApplicants(ctx context.Context, actor authz.Actor, jobID string) (*ApplicantsView, error)
	SetStatus(ctx context.Context, actor authz.Actor, applicationID string, status models.ApplicationStatus) (*models.Application, error)
}

type applicationService struct {
	jobs         postgres.JobRepository
	users        postgres.UserRepository
	applications postgres.ApplicationRepository
	saved        postgres.SavedJobRepository
	notifier     Notifier
	log          *logrus.Logger
	now          func() time.Time
}

func NewApplicationService(
	jobs postgres.JobRepository,
	users postgres.UserRepository,
	applications postgres.ApplicationRepository,
	saved postgres.SavedJobRepository,
	notifier Notifier,
	log *logrus.Logger,
) ApplicationService {
	if log == nil {
		log = logrus.New()
	}
	return &applicationService{
		jobs:         jobs,
		users:        users,
		applications: applications,
		saved:        saved,
		notifier:     notifier,
		log:          log,
		now:          time.Now,
	}
}

func (s *applicationService) Apply(ctx context.Context, actor authz.Actor, jobID string) (*models.Application, error) {
	const op = "ApplicationService.Apply"

	if !actor.CanApply() {
		return nil, utils.E(utils.CodeForbidden, op, "Only job seekers can apply for jobs", nil)
	}
	job, err := s.activeJob(ctx, op, jobID)
	if err != nil {
		return nil, err
	}
	if job.UserID == actor.ID {
		return nil, utils.E(utils.CodeForbidden, op, "You cannot apply to your own job", nil)
	}

	exists, err := s.applications.Exists(ctx, job.ID, actor.ID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to check application", err)
	}
	if exists {
		return nil, utils.E(utils.CodeConflict, op, "You have already applied for this job", nil)
	}

	now := s.now().UTC()
	app := &models.Application{
		ID:        uuid.NewString(),
		JobID:     job.ID,
		UserID:    actor.ID,
		Status:    models.ApplicationApplied,
		AppliedAt: now,
		UpdatedAt: now,
	}
	if err := s.applications.Create(ctx, app); err != nil {
		if errors.Is(err, utils.ErrDuplicate) {
			return nil, utils.E(utils.CodeConflict, op, "You have already applied for this job", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to create application", err)
	}

	name := "A candidate"
	if u, err := s.users.GetByID(ctx, actor.ID); err == nil {
		name = u.Name
	}
	s.notify(ctx, NotificationEvent{
		UserID:  job.UserID,
		Type:    models.NotificationNewApplication,
		Message: fmt.Sprintf("%s applied for %s", name, job.Title),
		Data:    map[string]string{"job_id": job.ID, "application_id": app.ID, "applicant_id": actor.ID},
	})

	app.Job = job
	return app, nil
}

func (s *applicationService) JobsApplied(ctx context.Context, actor authz.Actor, page int) (models.Page[models.Application], error) {
	const op = "ApplicationService.JobsApplied"

	page, offset := models.NormalizePage(page, models.DefaultPageSize)
	rows, total, err := s.applications.ListByUser(ctx, actor.ID, offset, models.DefaultPageSize)
	if err != nil {
		return models.Page[models.Application]{}, utils.E(utils.CodeInternal, op, "failed to list applications", err)
	}
	return models.NewPage(rows, page, models.DefaultPageSize, total), nil
}

func (s *applicationService) SaveJob(ctx context.Context, actor authz.Actor, jobID string) (*models.SavedJob, error) {
	const op = "ApplicationService.SaveJob"

	if !actor.CanSaveJobs() {
		return nil, utils.E(utils.CodeForbidden, op, "Only job seekers can save jobs", nil)
	}
	job, err := s.activeJob(ctx, op, jobID)
	if err != nil {
		return nil, err
	}

	exists, err := s.saved.Exists(ctx, job.ID, actor.ID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to check saved job", err)
	}
	if exists {
		return nil, utils.E(utils.CodeConflict, op, "Job already saved", nil)
	}

	sj := &models.SavedJob{ID: uuid.NewString(), JobID: job.ID, UserID: actor.ID, CreatedAt: s.now().UTC()}
	if err := s.saved.Create(ctx, sj); err != nil {
		if errors.Is(err, utils.ErrDuplicate) {
			return nil, utils.E(utils.CodeConflict, op, "Job already saved", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to save job", err)
	}
	return sj, nil
}

func (s *applicationService) UnsaveJob(ctx context.Context, actor authz.Actor, jobID string) error {
	const op = "ApplicationService.UnsaveJob"

	if err := s.saved.Delete(ctx, jobID, actor.ID); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeNotFound, op, "Saved job not found", err)
		}
		return utils.E(utils.CodeInternal, op, "failed to remove saved job", err)
	}
	return nil
}

func (s *applicationService) SavedJobs(ctx context.Context, actor authz.Actor, page int) (models.Page[models.SavedJob], error) {
	const op = "ApplicationService.SavedJobs"

	page, offset := models.NormalizePage(page, models.DefaultPageSize)
	rows, total, err := s.saved.ListByUser(ctx, actor.ID, offset, models.DefaultPageSize)
	if err != nil {
		return models.Page[models.SavedJob]{}, utils.E(utils.CodeInternal, op, "failed to list saved jobs", err)
	}
	return models.NewPage(rows, page, models.DefaultPageSize, total), nil
}

func (s *applicationService) ViewApplicants(ctx context.Context, actor authz.Actor, jobID string) (*ApplicantsView, error) {
	const op = "ApplicationService.ViewApplicants"

	job, err := s.jobs.GetOwned(ctx, jobID, actor.ID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "Job not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load job", err)
	}
	apps, err := s.applications.ListByJob(ctx, job.ID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list applicants", err)
	}
	return &ApplicantsView{Job: job, Applications: nonNil(apps)}, nil
}

func (s *applicationService) SetStatus(ctx context.Context, actor authz.Actor, applicationID string, status models.ApplicationStatus) (*models.Application, error) {
	const op = "ApplicationService.SetStatus"

	msgFormat, ok := statusMessages[status]
	if !ok {
		return nil, utils.InvalidField(op, "status", "The selected status is invalid.")
	}

	app, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "Application not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load application", err)
	}
	if !authz.CanReview(actor, app.Job) {
		return nil, utils.E(utils.CodeForbidden, op, "Unauthorized", nil)
	}

	if err := s.applications.UpdateStatus(ctx, app.ID, status); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to update application", err)
	}
	app.Status = status

	s.notify(ctx, NotificationEvent{
		UserID:  app.UserID,
		Type:    models.NotificationStatusChanged,
		Message: fmt.Sprintf(msgFormat, app.Job.Title),
		Data:    map[string]string{"job_id": app.JobID, "application_id": app.ID, "status": string(status)},
	})
	return app, nil
}

var statusMessages = map[models.ApplicationStatus]string{
	models.ApplicationAccepted:  "Your application for %s has been accepted",
	models.ApplicationRejected:  "Your application for %s has been rejected",
	models.ApplicationInterview: "You have been shortlisted for an interview for %s",
}

func (s *applicationService) activeJob(ctx context.Context, op, id string) (*models.Job, error) {
	job, err := s.jobs.GetActive(ctx, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "Job not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load job", err)
	}
	return job, nil
}

// notify never fails the calling operation; the row it describes is already committed.
func (s *applicationService) notify(ctx context.Context, ev NotificationEvent) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, ev); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{"user_id": ev.UserID, "type": ev.Type}).Warn("notification not delivered")
	}
}
