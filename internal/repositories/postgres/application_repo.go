package postgres

import (
	"context"
	"time"

	"github.com/RafiALMahmud/Job-portal1/internal/models"
	"github.com/RafiALMahmud/Job-portal1/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ApplicationRepository interface {
	Create(ctx context.Context, a *models.Application) error
	GetByID(ctx context.Context, id string) (*models.Application, error)
	Exists(ctx context.Context, jobID, userID string) (bool, error)
	ListByUser(ctx context.Context, userID string, offset, limit int) ([]models.Application, int64, error)
	ListByJob(ctx context.Context, jobID string) ([]models.Application, error)
	ListAll(ctx context.Context, offset, limit int) ([]models.Application, int64, error)
	UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus) error
	CountForOwner(ctx context.Context, ownerID string) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type applicationRepo struct {
	db *gorm.DB
}

func NewApplicationRepo(db *gorm.DB) ApplicationRepository {
	return &applicationRepo{db: db}
}

func (r *applicationRepo) Create(ctx context.Context, a *models.Application) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(a).Error)
}

func (r *applicationRepo) GetByID(ctx context.Context, id string) (*models.Application, error) {
	var a models.Application
	err := r.db.WithContext(ctx).
		Preload("Job").
		Preload("User").
		Where("id = ?", id).
		Take(&a).Error
	if err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (r *applicationRepo) Exists(ctx context.Context, jobID, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Application{}).
		Where("job_id = ? AND user_id = ?", jobID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *applicationRepo) ListByUser(ctx context.Context, userID string, offset, limit int) ([]models.Application, int64, error) {
	var (
		rows  []models.Application
		total int64
	)
	q := r.db.WithContext(ctx).Model(&models.Application{}).Where("user_id = ?", userID).Session(&gorm.Session{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Preload("Job").Preload("Job.JobType").
		Order("applied_at DESC").
		Offset(offset).Limit(limit).
		Find(&rows).Error
	return rows, total, err
}

func (r *applicationRepo) ListByJob(ctx context.Context, jobID string) ([]models.Application, error) {
	var rows []models.Application
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("job_id = ?", jobID).
		Order("applied_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *applicationRepo) ListAll(ctx context.Context, offset, limit int) ([]models.Application, int64, error) {
	var (
		rows  []models.Application
		total int64
	)
	q := r.db.WithContext(ctx).Model(&models.Application{}).Session(&gorm.Session{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Preload("Job").Preload("User").
		Order("applied_at DESC").
		Offset(offset).Limit(limit).
		Find(&rows).Error
	return rows, total, err
}

func (r *applicationRepo) UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus) error {
	res := r.db.WithContext(ctx).Model(&models.Application{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrNotFound
	}
	return nil
}

// CountForOwner counts applications received on every job owned by ownerID.
func (r *applicationRepo) CountForOwner(ctx context.Context, ownerID string) (int64, error) {
	var count int64
	owned := r.db.Model(&models.Job{}).Select("id").Where("user_id = ?", ownerID)
	err := r.db.WithContext(ctx).Model(&models.Application{}).
		Where("job_id IN (?)", owned).
		Count(&count).Error
	return count, err
}

func (r *applicationRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Application{}).Count(&count).Error
	return count, err
}
