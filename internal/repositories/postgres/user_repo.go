package postgres

import (
	"context"
	"strings"

	"github.com/RafiALMahmud/Job-portal1/internal/models"
	"github.com/RafiALMahmud/Job-portal1/internal/utils"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	CreateWithEmployer(ctx context.Context, u *models.User, e *models.Employer) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailTaken(ctx context.Context, email, excludeID string) (bool, error)
	UpdateProfile(ctx context.Context, u *models.User) error
	UpdateImage(ctx context.Context, id, image, imageURL string) error
	UpdatePassword(ctx context.Context, id, hash string) error
	List(ctx context.Context, offset, limit int) ([]models.User, int64, error)
	CountByType(ctx context.Context) (map[models.UserType]int64, error)
	DeleteCascade(ctx context.Context, id string) error
}

type userRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *userRepo) Create(ctx context.Context, u *models.User) error {
	u.Email = normalizeEmail(u.Email)
	return translate(r.db.WithContext(ctx).Create(u).Error)
}

func (r *userRepo) CreateWithEmployer(ctx context.Context, u *models.User, e *models.Employer) error {
	u.Email = normalizeEmail(u.Email)
	return translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Employer").Create(u).Error; err != nil {
			return err
		}
		e.UserID = u.ID
		return tx.Create(e).Error
	}))
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&u).Error
	if err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).Take(&u).Error
	if err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *userRepo) EmailTaken(ctx context.Context, email, excludeID string) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", normalizeEmail(email))
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *userRepo) UpdateProfile(ctx context.Context, u *models.User) error {
	u.Email = normalizeEmail(u.Email)
	res := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", u.ID).
		Updates(map[string]any{
			"name":        u.Name,
			"email":       u.Email,
			"mobile":      u.Mobile,
			"designation": u.Designation,
			"updated_at":  u.UpdatedAt,
		})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (r *userRepo) UpdateImage(ctx context.Context, id, image, imageURL string) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]any{"image": image, "image_url": imageURL})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (r *userRepo) UpdatePassword(ctx context.Context, id, hash string) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Update("password", hash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (r *userRepo) List(ctx context.Context, offset, limit int) ([]models.User, int64, error) {
	var (
		rows  []models.User
		total int64
	)
	q := r.db.WithContext(ctx).Model(&models.User{}).Session(&gorm.Session{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&rows).Error
	return rows, total, err
}

func (r *userRepo) CountByType(ctx context.Context) (map[models.UserType]int64, error) {
	var rows []struct {
		UserType models.UserType
		Total    int64
	}
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Select("user_type, COUNT(*) AS total").
		Group("user_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[models.UserType]int64, len(rows))
	for _, row := range rows {
		out[row.UserType] = row.Total
	}
	return out, nil
}

// DeleteCascade removes the user together with the jobs it owns and every row
// that references either of them.
func (r *userRepo) DeleteCascade(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owned := tx.Model(&models.Job{}).Select("id").Where("user_id = ?", id)

		if err := tx.Where("job_id IN (?) OR user_id = ?", owned, id).Delete(&models.Application{}).Error; err != nil {
			return err
		}
		if err := tx.Where("job_id IN (?) OR user_id = ?", owned, id).Delete(&models.SavedJob{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Job{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Employer{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.User{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return utils.ErrNotFound
		}
		return nil
	})
}
