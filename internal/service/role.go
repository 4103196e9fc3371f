package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/avdeevm/social-network-api/internal/models"
	"github.com/avdeevm/social-network-api/internal/repo"
)

type RoleService struct {
	Repo *repo.Repo
}

type RoleUpdate struct {
	Description       *string
	CanPost           *bool
	CanComment        *bool
	CanLike           *bool
	CanDeleteOwnPosts *bool
	CanDeleteAnyPosts *bool
	CanBanUsers       *bool
	CanVerifyUsers    *bool
	CanManageRoles    *bool
	MaxPostsPerDay    *int
	MaxFollowers      *int
}

func (s *RoleService) Create(ctx context.Context, role *models.Role) error {
	if taken, err := s.Repo.RoleNameTaken(ctx, role.Name); err != nil {
		return err
	} else if taken {
		return fmt.Errorf("%w: role %q already exists", ErrConflict, role.Name)
	}

	role.IsActive = true
	if err := s.Repo.CreateRole(ctx, role); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: role %q already exists", ErrConflict, role.Name)
		}
		return err
	}
	return nil
}

func (s *RoleService) List(ctx context.Context) ([]models.Role, error) {
	return s.Repo.Roles(ctx)
}

func (s *RoleService) Get(ctx context.Context, id uint) (*models.Role, error) {
	role, err := s.Repo.RoleByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return role, nil
}

func (s *RoleService) Update(ctx context.Context, id uint, update RoleUpdate) (*models.Role, error) {
	role, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Description != nil {
		role.Description = *update.Description
	}
	if update.CanPost != nil {
		role.CanPost = *update.CanPost
	}
	if update.CanComment != nil {
		role.CanComment = *update.CanComment
	}
	if update.CanLike != nil {
		role.CanLike = *update.CanLike
	}
	if update.CanDeleteOwnPosts != nil {
		role.CanDeleteOwnPosts = *update.CanDeleteOwnPosts
	}
	if update.CanDeleteAnyPosts != nil {
		role.CanDeleteAnyPosts = *update.CanDeleteAnyPosts
	}
	if update.CanBanUsers != nil {
		role.CanBanUsers = *update.CanBanUsers
	}
	if update.CanVerifyUsers != nil {
		role.CanVerifyUsers = *update.CanVerifyUsers
	}
	if update.CanManageRoles != nil {
		role.CanManageRoles = *update.CanManageRoles
	}
	if update.MaxPostsPerDay != nil {
		role.MaxPostsPerDay = *update.MaxPostsPerDay
	}
	if update.MaxFollowers != nil {
		role.MaxFollowers = *update.MaxFollowers
	}

	if err := s.Repo.SaveRole(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

func (s *RoleService) Delete(ctx context.Context, id uint) (*models.Role, error) {
	role, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.DeleteRole(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return role, nil
}
