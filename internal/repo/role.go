package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/avdeevm/social-network-api/internal/models"
)

func (r *Repo) CreateRole(ctx context.Context, role *models.Role) error {
	return r.DB.WithContext(ctx).Create(role).Error
}

func (r *Repo) Roles(ctx context.Context) ([]models.Role, error) {
	var roles []models.Role
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

func (r *Repo) RoleByID(ctx context.Context, id uint) (*models.Role, error) {
	var role models.Role
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *Repo) RoleNameTaken(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&models.Role{}).
		Where("name = ?", name).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Repo) SaveRole(ctx context.Context, role *models.Role) error {
	return r.DB.WithContext(ctx).Save(role).Error
}

func (r *Repo) DeleteRole(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Role{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
