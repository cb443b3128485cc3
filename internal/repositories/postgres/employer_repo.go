package postgres

import (
	"context"

	"github.com/RafiALMahmud/Job-portal1/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EmployerRepository interface {
	GetByUserID(ctx context.Context, userID string) (*models.Employer, error)
	Upsert(ctx context.Context, e *models.Employer) error
}

type employerRepo struct {
	db *gorm.DB
}

func NewEmployerRepo(db *gorm.DB) EmployerRepository {
	return &employerRepo{db: db}
}

func (r *employerRepo) GetByUserID(ctx context.Context, userID string) (*models.Employer, error) {
	var e models.Employer
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Take(&e).Error
	if err != nil {
		return nil, translate(err)
	}
	return &e, nil
}

func (r *employerRepo) Upsert(ctx context.Context, e *models.Employer) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"company_name", "company_website", "company_location", "company_description", "industry", "updated_at"}),
		}).
		Create(e).Error
}
