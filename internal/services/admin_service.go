package services

import (
	"context"
	"errors"
	"strings"

	"github.com/RafiALMahmud/Job-portal1/internal/authz"
	"github.com/RafiALMahmud/Job-portal1/internal/cache"
	"github.com/RafiALMahmud/Job-portal1/internal/models"
	"github.com/RafiALMahmud/Job-portal1/internal/repositories/postgres"
	"github.com/RafiALMahmud/Job-portal1/internal/storage"
	"github.com/RafiALMahmud/Job-portal1/internal/utils"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const defaultActivityLimit = 20

type AdminCreateUserInput struct {
	Name     string          `json:"name" form:"name" validate:"required,max=255"`
	Email    string          `json:"email" form:"email" validate:"required,email,max=255"`
	Password string          `json:"password" form:"password" validate:"required,min=5"`
	UserType models.UserType `json:"user_type" form:"user_type" validate:"required,oneof=aspirant employer admin"`
}

type CategoryInput struct {
	Name   string `json:"name" form:"name" validate:"required,max=255"`
	Status *int   `json:"status" form:"status" validate:"omitempty,oneof=0 1"`
}

type AdminStats struct {
	TotalUsers        int64 `json:"total_users"`
	TotalAspirants    int64 `json:"total_aspirants"`
	TotalEmployers    int64 `json:"total_employers"`
	TotalAdmins       int64 `json:"total_admins"`
	TotalJobs         int64 `json:"total_jobs"`
	TotalApplications int64 `json:"total_applications"`
}

type AdminService interface {
	Dashboard(ctx context.Context) (*AdminStats, error)
	ListUsers(ctx context.Context, page int) (models.Page[models.User], error)
	CreateUser(ctx context.Context, actor authz.Actor, in AdminCreateUserInput) (*models.User, error)
	DeleteUser(ctx context.Context, actor authz.Actor, id string) error
	ListJobs(ctx context.Context, page int) (models.Page[models.Job], error)
	DeleteJob(ctx context.Context, actor authz.Actor, id string) error
	ListCategories(ctx context.Context) ([]models.Category, error)
	StoreCategory(ctx context.Context, actor authz.Actor, in CategoryInput) (*models.Category, error)
	DeleteCategory(ctx context.Context, actor authz.Actor, id string) error
	ListApplications(ctx context.Context, page int) (models.Page[models.Application], error)
	RecentActivity(ctx context.Context, limit int64) ([]models.Activity, error)
}

type adminService struct {
	users        postgres.UserRepository
	jobs         postgres.JobRepository
	categories   postgres.CategoryRepository
	applications postgres.ApplicationRepository
	store        storage.Deleter
	cache        cache.Cache
	activity     ActivityRecorder
}

func NewAdminService(
	users postgres.UserRepository,
	jobs postgres.JobRepository,
	categories postgres.CategoryRepository,
	applications postgres.ApplicationRepository,
	store storage.Deleter,
	c cache.Cache,
	activity ActivityRecorder,
) AdminService {
	if activity == nil {
		activity = NewNopActivityRecorder()
	}
	return &adminService{
		users:        users,
		jobs:         jobs,
		categories:   categories,
		applications: applications,
		store:        store,
		cache:        c,
		activity:     activity,
	}
}

func (s *adminService) Dashboard(ctx context.Context) (*AdminStats, error) {
	const op = "AdminService.Dashboard"

	var (
		stats  AdminStats
		byType map[models.UserType]int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		byType, err = s.users.CountByType(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalJobs, err = s.jobs.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalApplications, err = s.applications.Count(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load statistics", err)
	}

	stats.TotalAspirants = byType[models.UserTypeAspirant]
	stats.TotalEmployers = byType[models.UserTypeEmployer]
	stats.TotalAdmins = byType[models.UserTypeAdmin]
	for _, n := range byType {
		stats.TotalUsers += n
	}
	return &stats, nil
}

func (s *adminService) ListUsers(ctx context.Context, page int) (models.Page[models.User], error) {
	const op = "AdminService.ListUsers"

	page, offset := models.NormalizePage(page, models.DefaultPageSize)
	rows, total, err := s.users.List(ctx, offset, models.DefaultPageSize)
	if err != nil {
		return models.Page[models.User]{}, utils.E(utils.CodeInternal, op, "failed to list users", err)
	}
	return models.NewPage(rows, page, models.DefaultPageSize, total), nil
}

func (s *adminService) CreateUser(ctx context.Context, actor authz.Actor, in AdminCreateUserInput) (*models.User, error) {
	const op = "AdminService.CreateUser"

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
	s.activity.Record(ctx, actor.ID, models.ActivityUserCreated, "user", u.ID, map[string]string{"user_type": string(u.UserType)})
	return u, nil
}

func (s *adminService) DeleteUser(ctx context.Context, actor authz.Actor, id string) error {
	const op = "AdminService.DeleteUser"

	if id == actor.ID {
		return utils.E(utils.CodeForbidden, op, "You cannot delete your own account", nil)
	}
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeNotFound, op, "User not found", err)
		}
		return utils.E(utils.CodeInternal, op, "failed to load user", err)
	}
	if err := s.users.DeleteCascade(ctx, u.ID); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeNotFound, op, "User not found", err)
		}
		return utils.E(utils.CodeInternal, op, "failed to delete user", err)
	}
	removeImage(ctx, s.store, u.Image)
	s.activity.Record(ctx, actor.ID, models.ActivityUserDeleted, "user", u.ID, map[string]string{"email": u.Email})
	return nil
}

func (s *adminService) ListJobs(ctx context.Context, page int) (models.Page[models.Job], error) {
	const op = "AdminService.ListJobs"

	page, offset := models.NormalizePage(page, models.DefaultPageSize)
	rows, total, err := s.jobs.ListAll(ctx, offset, models.DefaultPageSize)
	if err != nil {
		return models.Page[models.Job]{}, utils.E(utils.CodeInternal, op, "failed to list jobs", err)
	}
	return models.NewPage(rows, page, models.DefaultPageSize, total), nil
}

func (s *adminService) DeleteJob(ctx context.Context, actor authz.Actor, id string) error {
	const op = "AdminService.DeleteJob"

	if err := s.jobs.DeleteCascade(ctx, id); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeNotFound, op, "Job not found", err)
		}
		return utils.E(utils.CodeInternal, op, "failed to delete job", err)
	}
	s.activity.Record(ctx, actor.ID, models.ActivityJobDeleted, "job", id, nil)
	return nil
}

func (s *adminService) ListCategories(ctx context.Context) ([]models.Category, error) {
	const op = "AdminService.ListCategories"

	rows, err := s.categories.List(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list categories", err)
	}
	return nonNil(rows), nil
}

func (s *adminService) StoreCategory(ctx context.Context, actor authz.Actor, in CategoryInput) (*models.Category, error) {
	const op = "AdminService.StoreCategory"

	in.Name = strings.TrimSpace(in.Name)
	if err := utils.ValidateStruct(op, in); err != nil {
		return nil, err
	}

	c := &models.Category{ID: uuid.NewString(), Name: in.Name, Status: models.StatusActive}
	if in.Status != nil {
		c.Status = *in.Status
	}
	if err := s.categories.Create(ctx, c); err != nil {
		if errors.Is(err, utils.ErrDuplicate) {
			return nil, utils.InvalidField(op, "name", "The name has already been taken.")
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to create category", err)
	}

	s.invalidateLookups(ctx)
	s.activity.Record(ctx, actor.ID, models.ActivityCategoryCreated, "category", c.ID, map[string]string{"name": c.Name})
	return c, nil
}

func (s *adminService) DeleteCategory(ctx context.Context, actor authz.Actor, id string) error {
	const op = "AdminService.DeleteCategory"

	inUse, err := s.jobs.CountByCategory(ctx, id)
	if err != nil {
		return utils.E(utils.CodeInternal, op, "failed to check category usage", err)
	}
	if inUse > 0 {
		return utils.E(utils.CodeConflict, op, "Category is still used by jobs", nil)
	}
	if err := s.categories.Delete(ctx, id); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeNotFound, op, "Category not found", err)
		}
		return utils.E(utils.CodeInternal, op, "failed to delete category", err)
	}

	s.invalidateLookups(ctx)
	s.activity.Record(ctx, actor.ID, models.ActivityCategoryDeleted, "category", id, nil)
	return nil
}

func (s *adminService) ListApplications(ctx context.Context, page int) (models.Page[models.Application], error) {
	const op = "AdminService.ListApplications"

	page, offset := models.NormalizePage(page, models.DefaultPageSize)
	rows, total, err := s.applications.ListAll(ctx, offset, models.DefaultPageSize)
	if err != nil {
		return models.Page[models.Application]{}, utils.E(utils.CodeInternal, op, "failed to list applications", err)
	}
	return models.NewPage(rows, page, models.DefaultPageSize, total), nil
}

func (s *adminService) RecentActivity(ctx context.Context, limit int64) ([]models.Activity, error) {
	if limit <= 0 || limit > 100 {
		limit = defaultActivityLimit
	}
	return s.activity.Recent(ctx, limit)
}

func (s *adminService) invalidateLookups(ctx context.Context) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Del(ctx, cache.KeyJobFormOptions, cache.KeyHomeCategories)
}
