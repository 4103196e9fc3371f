package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/avdeevm/social-network-api/internal/events"
	"github.com/avdeevm/social-network-api/internal/logging"
	"github.com/avdeevm/social-network-api/internal/models"
	"github.com/avdeevm/social-network-api/internal/repo"
	"github.com/avdeevm/social-network-api/internal/search"
)

type UserService struct {
	Repo     *repo.Repo
	Producer *events.Producer
	Index    *search.Index
}

type ProfileUpdate struct {
	FullName  *string
	Bio       *string
	AvatarURL *string
}

type Stats struct {
	FollowersCount int `json:"followers_count"`
	FollowingCount int `json:"following_count"`
	PostsCount     int `json:"posts_count"`
}

func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.Repo.UserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.Repo.UserByUsername(ctx, strings.ToLower(username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, id uint, update ProfileUpdate) (*models.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.FullName != nil {
		user.FullName = *update.FullName
	}
	if update.Bio != nil {
		user.Bio = *update.Bio
	}
	if update.AvatarURL != nil {
		user.AvatarURL = *update.AvatarURL
	}

	if err := s.Repo.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	doc := search.UserDoc{
		ID:         user.ID,
		Username:   user.Username,
		FullName:   user.FullName,
		AvatarURL:  user.AvatarURL,
		IsVerified: user.IsVerified,
	}
	if err := s.Index.IndexUser(ctx, doc); err != nil {
		logging.FromContext(ctx).Warn("es_index_failed", "user_id", user.ID, "error", err)
	}

	return user, nil
}

// Deactivate flips is_active off. The row is kept; nothing is ever
// hard-deleted.
func (s *UserService) Deactivate(ctx context.Context, id uint) error {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.Repo.DeactivateUser(ctx, id); err != nil {
		return err
	}

	if err := s.Index.DeleteUser(ctx, id); err != nil {
		logging.FromContext(ctx).Warn("es_delete_failed", "user_id", id, "error", err)
	}

	event := map[string]interface{}{
		"type":     "user_deactivated",
		"user_id":  user.ID,
		"username": user.Username,
	}
	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Producer.Publish(pubCtx, fmt.Sprint(user.ID), event); err != nil {
		logging.FromContext(ctx).Warn("kafka_publish_failed", "type", "user_deactivated", "error", err)
	}

	return nil
}

func (s *UserService) GetStats(ctx context.Context, id uint) (*Stats, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Stats{
		FollowersCount: user.FollowersCount,
		FollowingCount: user.FollowingCount,
		PostsCount:     user.PostsCount,
	}, nil
}

// Search looks users up in Elasticsearch when it is configured and falls
// back to a database scan otherwise. Only active accounts are returned.
func (s *UserService) Search(ctx context.Context, query string, limit int) ([]models.User, error) {
	if !s.Index.Enabled() {
		return s.Repo.SearchUsers(ctx, query, limit)
	}

	docs, err := s.Index.Search(ctx, query, limit)
	if err != nil {
		logging.FromContext(ctx).Warn("es_search_failed", "error", err)
		return s.Repo.SearchUsers(ctx, query, limit)
	}

	users := make([]models.User, 0, len(docs))
	for _, doc := range docs {
		user, err := s.Repo.UserByID(ctx, doc.ID)
		if err != nil {
			// Index lag: the document may outlive the account.
			continue
		}
		if user.IsActive {
			users = append(users, *user)
		}
	}
	return users, nil
}
