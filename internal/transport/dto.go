// Package transport holds the fixed-field request and response shapes of
// the HTTP API. Responses never carry the password hash.
package transport

import (
	"time"

	"github.com/avdeevm/social-network-api/internal/models"
)

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type UpdateProfileRequest struct {
	FullName  *string `json:"full_name"`
	Bio       *string `json:"bio"`
	AvatarURL *string `json:"avatar_url"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// RoleCreateRequest uses pointers for the capability flags so an omitted
// field keeps its default (the first four default to allowed).
type RoleCreateRequest struct {
	Name              string `json:"name"`
	Description       string `json:"description"`
	CanPost           *bool  `json:"can_post"`
	CanComment        *bool  `json:"can_comment"`
	CanLike           *bool  `json:"can_like"`
	CanDeleteOwnPosts *bool  `json:"can_delete_own_posts"`
	CanDeleteAnyPosts *bool  `json:"can_delete_any_posts"`
	CanBanUsers       *bool  `json:"can_ban_users"`
	CanVerifyUsers    *bool  `json:"can_verify_users"`
	CanManageRoles    *bool  `json:"can_manage_roles"`
	MaxPostsPerDay    *int   `json:"max_posts_per_day"`
	MaxFollowers      *int   `json:"max_followers"`
}

type RoleUpdateRequest struct {
	Description       *string `json:"description"`
	CanPost           *bool   `json:"can_post"`
	CanComment        *bool   `json:"can_comment"`
	CanLike           *bool   `json:"can_like"`
	CanDeleteOwnPosts *bool   `json:"can_delete_own_posts"`
	CanDeleteAnyPosts *bool   `json:"can_delete_any_posts"`
	CanBanUsers       *bool   `json:"can_ban_users"`
	CanVerifyUsers    *bool   `json:"can_verify_users"`
	CanManageRoles    *bool   `json:"can_manage_roles"`
	MaxPostsPerDay    *int    `json:"max_posts_per_day"`
	MaxFollowers      *int    `json:"max_followers"`
}

type UserResponse struct {
	ID             uint      `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	FullName       string    `json:"full_name,omitempty"`
	Bio            string    `json:"bio,omitempty"`
	AvatarURL      string    `json:"avatar_url,omitempty"`
	IsActive       bool      `json:"is_active"`
	IsVerified     bool      `json:"is_verified"`
	IsSuperuser    bool      `json:"is_superuser"`
	FollowersCount int       `json:"followers_count"`
	FollowingCount int       `json:"following_count"`
	PostsCount     int       `json:"posts_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// PublicProfile is what other users see: no email, no status internals.
type PublicProfile struct {
	ID             uint      `json:"id"`
	Username       string    `json:"username"`
	FullName       string    `json:"full_name,omitempty"`
	Bio            string    `json:"bio,omitempty"`
	AvatarURL      string    `json:"avatar_url,omitempty"`
	IsVerified     bool      `json:"is_verified"`
	FollowersCount int       `json:"followers_count"`
	FollowingCount int       `json:"following_count"`
	PostsCount     int       `json:"posts_count"`
	CreatedAt      time.Time `json:"created_at"`
}

type UserListItem struct {
	ID         uint   `json:"id"`
	Username   string `json:"username"`
	FullName   string `json:"full_name,omitempty"`
	AvatarURL  string `json:"avatar_url,omitempty"`
	IsVerified bool   `json:"is_verified"`
}

type AuthResponse struct {
	Message      string       `json:"message,omitempty"`
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"`
}

type RefreshResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		FullName:       u.FullName,
		Bio:            u.Bio,
		AvatarURL:      u.AvatarURL,
		IsActive:       u.IsActive,
		IsVerified:     u.IsVerified,
		IsSuperuser:    u.IsSuperuser,
		FollowersCount: u.FollowersCount,
		FollowingCount: u.FollowingCount,
		PostsCount:     u.PostsCount,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func NewPublicProfile(u *models.User) PublicProfile {
	return PublicProfile{
		ID:             u.ID,
		Username:       u.Username,
		FullName:       u.FullName,
		Bio:            u.Bio,
		AvatarURL:      u.AvatarURL,
		IsVerified:     u.IsVerified,
		FollowersCount: u.FollowersCount,
		FollowingCount: u.FollowingCount,
		PostsCount:     u.PostsCount,
		CreatedAt:      u.CreatedAt,
	}
}

func NewUserListItem(u *models.User) UserListItem {
	return UserListItem{
		ID:         u.ID,
		Username:   u.Username,
		FullName:   u.FullName,
		AvatarURL:  u.AvatarURL,
		IsVerified: u.IsVerified,
	}
}
