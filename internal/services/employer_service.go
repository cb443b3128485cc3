package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/RafiALMahmud/Job-portal1/internal/authz"
	"github.com/RafiALMahmud/Job-portal1/internal/models"
	"github.com/RafiALMahmud/Job-portal1/internal/repositories/postgres"
	"github.com/RafiALMahmud/Job-portal1/internal/utils"
	"github.com/google/uuid"
)

type CompanyInput struct {
	CompanyName        string `json:"company_name" form:"company_name" validate:"required,min=3,max=75"`
	CompanyWebsite     string `json:"company_website" form:"company_website" validate:"omitempty,url,max=255"`
	CompanyLocation    string `json:"company_location" form:"company_location" validate:"max=255"`
	CompanyDescription string `json:"company_description" form:"company_description"`
	Industry           string `json:"industry" form:"industry" validate:"max=255"`
}

type EmployerDashboard struct {
	User           *models.User          `json:"user"`
	Employer       *models.Employer      `json:"employer"`
	JobCount       int64                 `json:"job_count"`
	ApplicantCount int64                 `json:"applicant_count"`
	Notifications  []models.Notification `json:"notifications"`
	UnreadCount    int64                 `json:"unread_count"`
}

type EmployerService interface {
	Dashboard(ctx context.Context, actor authz.Actor) (*EmployerDashboard, error)
	UpdateCompanyInfo(ctx context.Context, actor authz.Actor, in CompanyInput) (*models.Employer, error)
}

type employerService struct {
	users         postgres.UserRepository
	employers     postgres.EmployerRepository
	jobs          postgres.JobRepository
	applications  postgres.ApplicationRepository
	notifications postgres.NotificationRepository
	now           func() time.Time
}

func NewEmployerService(
	users postgres.UserRepository,
	employers postgres.EmployerRepository,
	jobs postgres.JobRepository,
	applications postgres.ApplicationRepository,
	notifications postgres.NotificationRepository,
) EmployerService {
	return &employerService{
		users:         users,
		employers:     employers,
		jobs:          jobs,
		applications:  applications,
		notifications: notifications,
		now:           time.Now,
	}
}

func (s *employerService) Dashboard(ctx context.Context, actor authz.Actor) (*EmployerDashboard, error) {
	const op = "EmployerService.Dashboard"

	if !actor.IsEmployer() {
		return nil, utils.E(utils.CodeForbidden, op, "Unauthorized", nil)
	}
	u, err := s.users.GetByID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "user not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load user", err)
	}

	d := &EmployerDashboard{User: u}
	d.Employer, err = s.employers.GetByUserID(ctx, actor.ID)
	if err != nil {
		if !errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeInternal, op, "failed to load employer profile", err)
		}
		d.Employer = &models.Employer{UserID: actor.ID}
	}

	if d.JobCount, err = s.jobs.CountByOwner(ctx, actor.ID); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to count jobs", err)
	}
	if d.ApplicantCount, err = s.applications.CountForOwner(ctx, actor.ID); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to count applicants", err)
	}
	notes, err := s.notifications.Latest(ctx, actor.ID, profileNotifications)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load notifications", err)
	}
	d.Notifications = nonNil(notes)
	if d.UnreadCount, err = s.notifications.CountUnread(ctx, actor.ID); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to count notifications", err)
	}
	return d, nil
}

func (s *employerService) UpdateCompanyInfo(ctx context.Context, actor authz.Actor, in CompanyInput) (*models.Employer, error) {
	const op = "EmployerService.UpdateCompanyInfo"

	if !actor.IsEmployer() {
		return nil, utils.E(utils.CodeForbidden, op, "Unauthorized", nil)
	}
	in.CompanyName = strings.TrimSpace(in.CompanyName)
	in.CompanyWebsite = strings.TrimSpace(in.CompanyWebsite)
	if err := utils.ValidateStruct(op, in); err != nil {
		return nil, err
	}

	emp, err := s.employers.GetByUserID(ctx, actor.ID)
	if err != nil {
		if !errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeInternal, op, "failed to load employer profile", err)
		}
		emp = &models.Employer{ID: uuid.NewString(), UserID: actor.ID}
	}

	emp.CompanyName = in.CompanyName
	emp.CompanyWebsite = in.CompanyWebsite
	emp.CompanyLocation = in.CompanyLocation
	emp.CompanyDescription = in.CompanyDescription
	emp.Industry = in.Industry
	emp.UpdatedAt = s.now().UTC()

	if err := s.employers.Upsert(ctx, emp); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to update company info", err)
	}
	return emp, nil
}
