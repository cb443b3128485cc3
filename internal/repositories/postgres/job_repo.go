package postgres

import (
	"context"
	"strings"

	"github.com/RafiALMahmud/Job-portal1/internal/models"
	"github.com/RafiALMahmud/Job-portal1/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// JobFilter narrows the public job search; zero values are ignored.
type JobFilter struct {
	Keyword    string
	Location   string
	CategoryID string
	JobTypeIDs []string
	Experience string
	Oldest     bool
}

type JobRepository interface {
	Create(ctx context.Context, j *models.Job) error
	Update(ctx context.Context, j *models.Job) error
	GetByID(ctx context.Context, id string) (*models.Job, error)
	GetActive(ctx context.Context, id string) (*models.Job, error)
	GetOwned(ctx context.Context, id, ownerID string) (*models.Job, error)
	ListByOwner(ctx context.Context, ownerID string, offset, limit int) ([]models.Job, int64, error)
	ListAll(ctx context.Context, offset, limit int) ([]models.Job, int64, error)
	Search(ctx context.Context, f JobFilter, offset, limit int) ([]models.Job, int64, error)
	TopBySalary(ctx context.Context, n int) ([]models.Job, error)
	Latest(ctx context.Context, n int) ([]models.Job, error)
	CountByOwner(ctx context.Context, ownerID string) (int64, error)
	CountByCategory(ctx context.Context, categoryID string) (int64, error)
	Count(ctx context.Context) (int64, error)
	DeleteCascade(ctx context.Context, id string) error
}

type jobRepo struct {
	db *gorm.DB
}

func NewJobRepo(db *gorm.DB) JobRepository {
	return &jobRepo{db: db}
}

func (r *jobRepo) Create(ctx context.Context, j *models.Job) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(j).Error
}

func (r *jobRepo) Update(ctx context.Context, j *models.Job) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(j).Error
}

func (r *jobRepo) GetByID(ctx context.Context, id string) (*models.Job, error) {
	var j models.Job
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("JobType").
		Where("id = ?", id).
		Take(&j).Error
	if err != nil {
		return nil, translate(err)
	}
	return &j, nil
}

func (r *jobRepo) GetActive(ctx context.Context, id string) (*models.Job, error) {
	var j models.Job
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("JobType").
		Where("id = ? AND status = ?", id, models.StatusActive).
		Take(&j).Error
	if err != nil {
		return nil, translate(err)
	}
	return &j, nil
}

func (r *jobRepo) GetOwned(ctx context.Context, id, ownerID string) (*models.Job, error) {
	var j models.Job
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Take(&j).Error
	if err != nil {
		return nil, translate(err)
	}
	return &j, nil
}

func (r *jobRepo) ListByOwner(ctx context.Context, ownerID string, offset, limit int) ([]models.Job, int64, error) {
	var (
		rows  []models.Job
		total int64
	)
	q := r.db.WithContext(ctx).Model(&models.Job{}).Where("user_id = ?", ownerID).Session(&gorm.Session{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Preload("JobType").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&rows).Error
	return rows, total, err
}

func (r *jobRepo) ListAll(ctx context.Context, offset, limit int) ([]models.Job, int64, error) {
	var (
		rows  []models.Job
		total int64
	)
	q := r.db.WithContext(ctx).Model(&models.Job{}).Session(&gorm.Session{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Preload("Category").Preload("JobType").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&rows).Error
	return rows, total, err
}

func (r *jobRepo) Search(ctx context.Context, f JobFilter, offset, limit int) ([]models.Job, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Job{}).Where("status = ?", models.StatusActive)

	if kw := strings.ToLower(strings.TrimSpace(f.Keyword)); kw != "" {
		like := containsPattern(kw)
		q = q.Where("LOWER(title) LIKE ? ESCAPE '!' OR LOWER(keywords) LIKE ? ESCAPE '!'", like, like)
	}
	if loc := strings.ToLower(strings.TrimSpace(f.Location)); loc != "" {
		q = q.Where("LOWER(location) LIKE ? ESCAPE '!'", containsPattern(loc))
	}
	if f.CategoryID != "" {
		q = q.Where("category_id = ?", f.CategoryID)
	}
	if len(f.JobTypeIDs) > 0 {
		q = q.Where("job_type_id IN ?", f.JobTypeIDs)
	}
	if f.Experience != "" {
		q = q.Where("experience = ?", f.Experience)
	}

	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "created_at DESC"
	if f.Oldest {
		order = "created_at ASC"
	}

	var rows []models.Job
	err := q.Preload("JobType").
		Order(order).
		Offset(offset).Limit(limit).
		Find(&rows).Error
	return rows, total, err
}

// likeEscaper makes user input match literally. '!' is the escape character
// because a backslash would need different quoting on MySQL.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func (r *jobRepo) TopBySalary(ctx context.Context, n int) ([]models.Job, error) {
	var rows []models.Job
	err := r.db.WithContext(ctx).
		Preload("JobType").
		Where("status = ?", models.StatusActive).
		Order("salary DESC").
		Limit(n).
		Find(&rows).Error
	return rows, err
}

func (r *jobRepo) Latest(ctx context.Context, n int) ([]models.Job, error) {
	var rows []models.Job
	err := r.db.WithContext(ctx).
		Preload("JobType").
		Where("status = ?", models.StatusActive).
		Order("created_at DESC").
		Limit(n).
		Find(&rows).Error
	return rows, err
}

func (r *jobRepo) CountByOwner(ctx context.Context, ownerID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Job{}).Where("user_id = ?", ownerID).Count(&count).Error
	return count, err
}

func (r *jobRepo) CountByCategory(ctx context.Context, categoryID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Job{}).Where("category_id = ?", categoryID).Count(&count).Error
	return count, err
}

func (r *jobRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Job{}).Count(&count).Error
	return count, err
}

func (r *jobRepo) DeleteCascade(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_id = ?", id).Delete(&models.Application{}).Error; err != nil {
			return err
		}
		if err := tx.Where("job_id = ?", id).Delete(&models.SavedJob{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.Job{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return utils.ErrNotFound
		}
		return nil
	})
}
