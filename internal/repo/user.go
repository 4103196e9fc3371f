package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/avdeevm/social-network-api/internal/models"
)

func (r *Repo) CreateUser(ctx context.Context, u *models.User) error {
	return r.DB.WithContext(ctx).Create(u).Error
}

func (r *Repo) UserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *Repo) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *Repo) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *Repo) UsernameTaken(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, "username = ?", username)
}

func (r *Repo) EmailTaken(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "email = ?", email)
}

func (r *Repo) exists(ctx context.Context, cond string, arg any) (bool, error) {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&models.User{}).
		Where(cond, arg).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Repo) SaveUser(ctx context.Context, u *models.User) error {
	return r.DB.WithContext(ctx).Save(u).Error
}

func (r *Repo) UpdatePasswordHash(ctx context.Context, id uint, hash string) error {
	return r.DB.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Update("password_hash", hash).Error
}

func (r *Repo) DeactivateUser(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SearchUsers matches username or full name case-insensitively, active
// accounts only. LOWER/LIKE instead of ILIKE so the query also runs on
// the sqlite test database.
func (r *Repo) SearchUsers(ctx context.Context, q string, limit int) ([]models.User, error) {
	pattern := "%" + q + "%"
	var users []models.User
	err := r.DB.WithContext(ctx).
		Where("is_active = ?", true).
		Where("LOWER(username) LIKE LOWER(?) OR LOWER(full_name) LIKE LOWER(?)", pattern, pattern).
		Order("username ASC").
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}
