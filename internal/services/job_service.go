package services

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/RafiALMahmud/Job-portal1/internal/authz"
	"github.com/RafiALMahmud/Job-portal1/internal/cache"
	"github.com/RafiALMahmud/Job-portal1/internal/models"
	"github.com/RafiALMahmud/Job-portal1/internal/repositories/postgres"
	"github.com/RafiALMahmud/Job-portal1/internal/utils"
	"github.com/google/uuid"
)

const (
	lookupCacheTTL   = 5 * time.Minute
	homeCategories   = 8
	homeFeaturedJobs = 5
	homeLatestJobs   = 6
)

// JobInput is the job form shared by the aspirant and employer areas.
type JobInput struct {
	Title           string      `json:"title" form:"title" validate:"required,min=5,max=200"`
	Category        string      `json:"category" form:"category" validate:"required"`
	JobType         string      `json:"jobType" form:"jobType" validate:"required"`
	Vacancy         json.Number `json:"vacancy" form:"vacancy" validate:"required"`
	Salary          string      `json:"salary" form:"salary" validate:"max=255"`
	Location        string      `json:"location" form:"location" validate:"required,max=50"`
	Description     string      `json:"description" form:"description" validate:"required"`
	Benefits        string      `json:"benefits" form:"benefits"`
	Responsibility  string      `json:"responsibility" form:"responsibility"`
	Qualifications  string      `json:"qualifications" form:"qualifications"`
	Keywords        string      `json:"keywords" form:"keywords"`
	Experience      string      `json:"experience" form:"experience" validate:"max=50"`
	CompanyName     string      `json:"company_name" form:"company_name" validate:"required,min=3,max=75"`
	CompanyLocation string      `json:"company_location" form:"company_location" validate:"max=255"`
	CompanyWebsite  string      `json:"company_website" form:"company_website" validate:"max=255"`
	// Website is the legacy name of CompanyWebsite.
	Website string `json:"website" form:"website" validate:"max=255"`
}

// trimmed strips surrounding whitespace so blank fields fail "required" and
// length rules apply to what is stored.
func (in JobInput) trimmed() JobInput {
	for _, f := range []*string{
		&in.Title, &in.Category, &in.JobType, &in.Salary, &in.Location, &in.Description,
		&in.Benefits, &in.Responsibility, &in.Qualifications, &in.Keywords, &in.Experience,
		&in.CompanyName, &in.CompanyLocation, &in.CompanyWebsite, &in.Website,
	} {
		*f = strings.TrimSpace(*f)
	}
	in.Vacancy = json.Number(strings.TrimSpace(in.Vacancy.String()))
	return in
}

func (in JobInput) website() string {
	if w := strings.TrimSpace(in.CompanyWebsite); w != "" {
		return w
	}
	return strings.TrimSpace(in.Website)
}

type SearchInput struct {
	Keyword    string `form:"keyword" json:"keyword"`
	Location   string `form:"location" json:"location"`
	Category   string `form:"category" json:"category"`
	JobType    string `form:"job_type" json:"job_type"` // comma separated ids
	Experience string `form:"experience" json:"experience"`
	Sort       string `form:"sort" json:"sort"` // "0" or "oldest" lists oldest first
	Page       int    `form:"page" json:"page"`
}

type JobFormOptions struct {
	Categories []models.Category `json:"categories"`
	JobTypes   []models.JobType  `json:"job_types"`
}

type JobForm struct {
	Job *models.Job `json:"job"`
	JobFormOptions
}

type HomeView struct {
	Categories   []models.Category `json:"categories"`
	FeaturedJobs []models.Job      `json:"featured_jobs"`
	LatestJobs   []models.Job      `json:"latest_jobs"`
}

type JobDetail struct {
	Job     *models.Job `json:"job"`
	Applied bool        `json:"applied"`
	Saved   bool        `json:"saved"`
}

type JobService interface {
	FormOptions(ctx context.Context) (*JobFormOptions, error)
	CreateJob(ctx context.Context, actor authz.Actor, in JobInput) (*models.Job, error)
	ListMyJobs(ctx context.Context, actor authz.Actor, page int) (models.Page[models.Job], error)
	EditJob(ctx context.Context, actor authz.Actor, id string) (*JobForm, error)
	UpdateJob(ctx context.Context, actor authz.Actor, id string, in JobInput) (*models.Job, error)
	DeleteJob(ctx context.Context, actor authz.Actor, id string) error

	Home(ctx context.Context) (*HomeView, error)
	Search(ctx context.Context, in SearchInput) (models.Page[models.Job], error)
	Detail(ctx context.Context, actor authz.Actor, id string) (*JobDetail, error)
}

type jobService struct {
	jobs         postgres.JobRepository
	categories   postgres.CategoryRepository
	jobTypes     postgres.JobTypeRepository
	employers    postgres.EmployerRepository
	applications postgres.ApplicationRepository
	saved        postgres.SavedJobRepository
	cache        cache.Cache
	now          func() time.Time
}

func NewJobService(
	jobs postgres.JobRepository,
	categories postgres.CategoryRepository,
	jobTypes postgres.JobTypeRepository,
	employers postgres.EmployerRepository,
	applications postgres.ApplicationRepository,
	saved postgres.SavedJobRepository,
	c cache.Cache,
) JobService {
	return &jobService{
		jobs:         jobs,
		categories:   categories,
		jobTypes:     jobTypes,
		employers:    employers,
		applications: applications,
		saved:        saved,
		cache:        c,
		now:          time.Now,
	}
}

func (s *jobService) FormOptions(ctx context.Context) (*JobFormOptions, error) {
	const op = "JobService.FormOptions"

	var opts JobFormOptions
	if s.cache != nil {
		if hit, err := s.cache.GetJSON(ctx, cache.KeyJobFormOptions, &opts); err == nil && hit {
			return &opts, nil
		}
	}

	cats, err := s.categories.ListActive(ctx, 0)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load categories", err)
	}
	types, err := s.jobTypes.ListActive(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load job types", err)
	}
	opts = JobFormOptions{Categories: nonNil(cats), JobTypes: nonNil(types)}

	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, cache.KeyJobFormOptions, opts, lookupCacheTTL)
	}
	return &opts, nil
}

func (s *jobService) CreateJob(ctx context.Context, actor authz.Actor, in JobInput) (*models.Job, error) {
	const op = "JobService.CreateJob"

	if !actor.CanPostJobs() {
		return nil, utils.E(utils.CodeForbidden, op, "You are not allowed to post jobs", nil)
	}
	in = in.trimmed()
	if actor.IsEmployer() {
		if err := s.prefillCompany(ctx, op, actor, &in); err != nil {
			return nil, err
		}
	}

	vacancy, err := s.validateJob(ctx, op, in)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	job := &models.Job{
		ID:        uuid.NewString(),
		UserID:    actor.ID,
		Status:    models.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyJobInput(job, in, vacancy)

	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create job", err)
	}
	return job, nil
}

func (s *jobService) ListMyJobs(ctx context.Context, actor authz.Actor, page int) (models.Page[models.Job], error) {
	const op = "JobService.ListMyJobs"

	page, offset := models.NormalizePage(page, models.DefaultPageSize)
	rows, total, err := s.jobs.ListByOwner(ctx, actor.ID, offset, models.DefaultPageSize)
	if err != nil {
		return models.Page[models.Job]{}, utils.E(utils.CodeInternal, op, "failed to list jobs", err)
	}
	return models.NewPage(rows, page, models.DefaultPageSize, total), nil
}

func (s *jobService) EditJob(ctx context.Context, actor authz.Actor, id string) (*JobForm, error) {
	const op = "JobService.EditJob"

	job, err := s.owned(ctx, op, actor, id)
	if err != nil {
		return nil, err
	}
	opts, err := s.FormOptions(ctx)
	if err != nil {
		return nil, err
	}
	return &JobForm{Job: job, JobFormOptions: *opts}, nil
}

func (s *jobService) UpdateJob(ctx context.Context, actor authz.Actor, id string, in JobInput) (*models.Job, error) {
	const op = "JobService.UpdateJob"

	in = in.trimmed()
	vacancy, err := s.validateJob(ctx, op, in)
	if err != nil {
		return nil, err
	}
	job, err := s.owned(ctx, op, actor, id)
	if err != nil {
		return nil, err
	}

	applyJobInput(job, in, vacancy)
	job.UpdatedAt = s.now().UTC()

	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to update job", err)
	}
	return job, nil
}

func (s *jobService) DeleteJob(ctx context.Context, actor authz.Actor, id string) error {
	const op = "JobService.DeleteJob"

	job, err := s.owned(ctx, op, actor, id)
	if err != nil {
		return err
	}
	if err := s.jobs.DeleteCascade(ctx, job.ID); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeNotFound, op, "Job not found", err)
		}
		return utils.E(utils.CodeInternal, op, "failed to delete job", err)
	}
	return nil
}

func (s *jobService) Home(ctx context.Context) (*HomeView, error) {
	const op = "JobService.Home"

	var cats []models.Category
	hit := false
	if s.cache != nil {
		hit, _ = s.cache.GetJSON(ctx, cache.KeyHomeCategories, &cats)
	}
	if !hit {
		var err error
		cats, err = s.categories.ListActive(ctx, homeCategories)
		if err != nil {
			return nil, utils.E(utils.CodeInternal, op, "failed to load categories", err)
		}
		if s.cache != nil {
			_ = s.cache.SetJSON(ctx, cache.KeyHomeCategories, cats, lookupCacheTTL)
		}
	}

	featured, err := s.jobs.TopBySalary(ctx, homeFeaturedJobs)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load featured jobs", err)
	}
	latest, err := s.jobs.Latest(ctx, homeLatestJobs)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load latest jobs", err)
	}
	return &HomeView{Categories: nonNil(cats), FeaturedJobs: nonNil(featured), LatestJobs: nonNil(latest)}, nil
}

func (s *jobService) Search(ctx context.Context, in SearchInput) (models.Page[models.Job], error) {
	const op = "JobService.Search"

	f := postgres.JobFilter{
		Keyword:    in.Keyword,
		Location:   in.Location,
		CategoryID: strings.TrimSpace(in.Category),
		Experience: strings.TrimSpace(in.Experience),
		Oldest:     in.Sort == "0" || strings.EqualFold(in.Sort, "oldest"),
	}
	for _, id := range strings.Split(in.JobType, ",") {
		if id = strings.TrimSpace(id); id != "" {
			f.JobTypeIDs = append(f.JobTypeIDs, id)
		}
	}

	page, offset := models.NormalizePage(in.Page, models.DefaultPageSize)
	rows, total, err := s.jobs.Search(ctx, f, offset, models.DefaultPageSize)
	if err != nil {
		return models.Page[models.Job]{}, utils.E(utils.CodeInternal, op, "failed to search jobs", err)
	}
	return models.NewPage(rows, page, models.DefaultPageSize, total), nil
}

func (s *jobService) Detail(ctx context.Context, actor authz.Actor, id string) (*JobDetail, error) {
	const op = "JobService.Detail"

	job, err := s.jobs.GetActive(ctx, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "Job not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load job", err)
	}

	d := &JobDetail{Job: job}
	if actor.IsAspirant() {
		if d.Applied, err = s.applications.Exists(ctx, job.ID, actor.ID); err != nil {
			return nil, utils.E(utils.CodeInternal, op, "failed to check application", err)
		}
		if d.Saved, err = s.saved.Exists(ctx, job.ID, actor.ID); err != nil {
			return nil, utils.E(utils.CodeInternal, op, "failed to check saved job", err)
		}
	}
	return d, nil
}

// owned loads a job scoped to its owner; anything else is reported as not found.
func (s *jobService) owned(ctx context.Context, op string, actor authz.Actor, id string) (*models.Job, error) {
	job, err := s.jobs.GetOwned(ctx, id, actor.ID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "Job not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load job", err)
	}
	if !authz.CanModify(actor, job) {
		return nil, utils.E(utils.CodeNotFound, op, "Job not found", nil)
	}
	return job, nil
}

func (s *jobService) prefillCompany(ctx context.Context, op string, actor authz.Actor, in *JobInput) error {
	emp, err := s.employers.GetByUserID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil
		}
		return utils.E(utils.CodeInternal, op, "failed to load employer profile", err)
	}
	if strings.TrimSpace(in.CompanyName) == "" {
		in.CompanyName = strings.TrimSpace(emp.CompanyName)
	}
	if strings.TrimSpace(in.CompanyLocation) == "" {
		in.CompanyLocation = strings.TrimSpace(emp.CompanyLocation)
	}
	if in.website() == "" {
		in.CompanyWebsite = strings.TrimSpace(emp.CompanyWebsite)
	}
	return nil
}

func (s *jobService) validateJob(ctx context.Context, op string, in JobInput) (int, error) {
	fields := utils.FieldErrors{}
	utils.CollectStruct(fields, in)

	vacancy := 0
	if _, bad := fields["vacancy"]; !bad {
		v, err := strconv.Atoi(in.Vacancy.String())
		switch {
		case err != nil:
			fields.Add("vacancy", "The vacancy must be an integer.")
		case v < 1:
			fields.Add("vacancy", "The vacancy must be at least 1.")
		default:
			vacancy = v
		}
	}

	if in.Category != "" {
		ok, err := s.categories.IsActive(ctx, in.Category)
		if err != nil {
			return 0, utils.E(utils.CodeInternal, op, "failed to check category", err)
		}
		if !ok {
			fields.Add("category", "The selected category is invalid.")
		}
	}
	if in.JobType != "" {
		ok, err := s.jobTypes.IsActive(ctx, in.JobType)
		if err != nil {
			return 0, utils.E(utils.CodeInternal, op, "failed to check job type", err)
		}
		if !ok {
			fields.Add("jobType", "The selected job type is invalid.")
		}
	}

	if fields.Any() {
		return 0, utils.Invalid(op, fields)
	}
	return vacancy, nil
}

func applyJobInput(job *models.Job, in JobInput, vacancy int) {
	job.Title = in.Title
	job.CategoryID = in.Category
	job.JobTypeID = in.JobType
	job.Vacancy = vacancy
	job.Salary = in.Salary
	job.Location = in.Location
	job.Description = in.Description
	job.Benefits = in.Benefits
	job.Responsibility = in.Responsibility
	job.Qualifications = in.Qualifications
	job.Keywords = in.Keywords
	job.Experience = in.Experience
	job.CompanyName = in.CompanyName
	job.CompanyLocation = in.CompanyLocation
	job.CompanyWebsite = in.website()
	job.Category = nil
	job.JobType = nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
