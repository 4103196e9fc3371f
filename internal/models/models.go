package models

import (
	"time"
)

type User struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Username     string `gorm:"size:50;uniqueIndex;not null"  json:"username"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null"             json:"-"`

	FullName  string `gorm:"size:100" json:"full_name"`
	Bio       string `gorm:"size:500" json:"bio"`
	AvatarURL string `gorm:"size:255" json:"avatar_url"`

	IsActive    bool `gorm:"not null;default:true"  json:"is_active"`
	IsVerified  bool `gorm:"not null;default:false" json:"is_verified"`
	IsSuperuser bool `gorm:"not null;default:false" json:"is_superuser"`

	// Denormalized counters, kept on the row so profile reads stay one query.
	FollowersCount int `gorm:"not null;default:0" json:"followers_count"`
	FollowingCount int `gorm:"not null;default:0" json:"following_count"`
	PostsCount     int `gorm:"not null;default:0" json:"posts_count"`
}

type Role struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name        string `gorm:"size:50;uniqueIndex;not null" json:"name"`
	Description string `gorm:"size:500"                     json:"description"`

	CanPost           bool `gorm:"not null;default:true"  json:"can_post"`
	CanComment        bool `gorm:"not null;default:true"  json:"can_comment"`
	CanLike           bool `gorm:"not null;default:true"  json:"can_like"`
	CanDeleteOwnPosts bool `gorm:"not null;default:true"  json:"can_delete_own_posts"`
	CanDeleteAnyPosts bool `gorm:"not null;default:false" json:"can_delete_any_posts"`
	CanBanUsers       bool `gorm:"not null;default:false" json:"can_ban_users"`
	CanVerifyUsers    bool `gorm:"not null;default:false" json:"can_verify_users"`
	CanManageRoles    bool `gorm:"not null;default:false" json:"can_manage_roles"`

	MaxPostsPerDay int `gorm:"not null;default:100"   json:"max_posts_per_day"`
	MaxFollowers   int `gorm:"not null;default:10000" json:"max_followers"`

	IsActive bool `gorm:"not null;default:true" json:"is_active"`
}
