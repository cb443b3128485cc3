package postgres

import (
	"context"

	"github.com/RafiALMahmud/Job-portal1/internal/models"
	"github.com/RafiALMahmud/Job-portal1/internal/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoryRepository interface {
	List(ctx context.Context) ([]models.Category, error)
	ListActive(ctx context.Context, limit int) ([]models.Category, error)
	GetByID(ctx context.Context, id string) (*models.Category, error)
	IsActive(ctx context.Context, id string) (bool, error)
	Create(ctx context.Context, c *models.Category) error
	FirstOrCreate(ctx context.Context, name string) (*models.Category, error)
	Delete(ctx context.Context, id string) error
}

type JobTypeRepository interface {
	ListActive(ctx context.Context) ([]models.JobType, error)
	IsActive(ctx context.Context, id string) (bool, error)
	FirstOrCreate(ctx context.Context, name string) (*models.JobType, error)
}

type categoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepo(db *gorm.DB) CategoryRepository {
	return &categoryRepo{db: db}
}

func (r *categoryRepo) List(ctx context.Context) ([]models.Category, error) {
	var rows []models.Category
	err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error
	return rows, err
}

// ListActive returns active categories by name; limit <= 0 means all of them.
func (r *categoryRepo) ListActive(ctx context.Context, limit int) ([]models.Category, error) {
	var rows []models.Category
	q := r.db.WithContext(ctx).Where("status = ?", models.StatusActive).Order("name ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&rows).Error
	return rows, err
}

func (r *categoryRepo) GetByID(ctx context.Context, id string) (*models.Category, error) {
	var c models.Category
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&c).Error
	if err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *categoryRepo) IsActive(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Category{}).
		Where("id = ? AND status = ?", id, models.StatusActive).
		Count(&count).Error
	return count > 0, err
}

// Create writes every column so an explicit inactive status is not replaced by the default.
func (r *categoryRepo) Create(ctx context.Context, c *models.Category) error {
	return translate(r.db.WithContext(ctx).Select("*").Create(c).Error)
}

func (r *categoryRepo) FirstOrCreate(ctx context.Context, name string) (*models.Category, error) {
	c := models.Category{ID: uuid.NewString(), Name: name, Status: models.StatusActive}
	err := r.db.WithContext(ctx).Where(models.Category{Name: name}).FirstOrCreate(&c).Error
	return &c, err
}

func (r *categoryRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Category{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrNotFound
	}
	return nil
}

type jobTypeRepo struct {
	db *gorm.DB
}

func NewJobTypeRepo(db *gorm.DB) JobTypeRepository {
	return &jobTypeRepo{db: db}
}

func (r *jobTypeRepo) ListActive(ctx context.Context) ([]models.JobType, error) {
	var rows []models.JobType
	err := r.db.WithContext(ctx).
		Where("status = ?", models.StatusActive).
		Order("name ASC").
		Find(&rows).Error
	return rows, err
}

func (r *jobTypeRepo) IsActive(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.JobType{}).
		Where("id = ? AND status = ?", id, models.StatusActive).
		Count(&count).Error
	return count > 0, err
}

func (r *jobTypeRepo) FirstOrCreate(ctx context.Context, name string) (*models.JobType, error) {
	jt := models.JobType{ID: uuid.NewString(), Name: name, Status: models.StatusActive}
	err := r.db.WithContext(ctx).Where(models.JobType{Name: name}).FirstOrCreate(&jt).Error
	return &jt, err
}
