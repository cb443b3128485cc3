package postgres

import (
	"context"

	"github.com/RafiALMahmud/Job-portal1/internal/models"
	"github.com/RafiALMahmud/Job-portal1/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SavedJobRepository interface {
	Create(ctx context.Context, s *models.SavedJob) error
	Delete(ctx context.Context, jobID, userID string) error
	Exists(ctx context.Context, jobID, userID string) (bool, error)
	ListByUser(ctx context.Context, userID string, offset, limit int) ([]models.SavedJob, int64, error)
}

type savedJobRepo struct {
	db *gorm.DB
}

func NewSavedJobRepo(db *gorm.DB) SavedJobRepository {
	return &savedJobRepo{db: db}
}

func (r *savedJobRepo) Create(ctx context.Context, s *models.SavedJob) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(s).Error)
}

func (r *savedJobRepo) Delete(ctx context.Context, jobID, userID string) error {
	res := r.db.WithContext(ctx).
		Where("job_id = ? AND user_id = ?", jobID, userID).
		Delete(&models.SavedJob{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (r *savedJobRepo) Exists(ctx context.Context, jobID, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.SavedJob{}).
		Where("job_id = ? AND user_id = ?", jobID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *savedJobRepo) ListByUser(ctx context.Context, userID string, offset, limit int) ([]models.SavedJob, int64, error) {
	var (
		rows  []models.SavedJob
		total int64
	)
	q := r.db.WithContext(ctx).Model(&models.SavedJob{}).Where("user_id = ?", userID).Session(&gorm.Session{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Preload("Job").Preload("Job.JobType").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&rows).Error
	return rows, total, err
}
