package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/avdeevm/social-network-api/internal/events"
	"github.com/avdeevm/social-network-api/internal/hash"
	"github.com/avdeevm/social-network-api/internal/logging"
	"github.com/avdeevm/social-network-api/internal/models"
	"github.com/avdeevm/social-network-api/internal/repo"
	"github.com/avdeevm/social-network-api/internal/search"
	"github.com/avdeevm/social-network-api/internal/tokens"
)

// AuthService orchestrates credential verification and token issuance.
// It holds no state of its own: refresh tokens are never stored, rotated
// or revoked, so a leaked refresh token stays usable until its expiry and
// logout is purely a client-side operation.
type AuthService struct {
	Repo     *repo.Repo
	Codec    *tokens.Codec
	Producer *events.Producer
	Index    *search.Index
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
	FullName string
}

type AuthResult struct {
	User         *models.User
	AccessToken  string
	RefreshToken string
	AccessExp    time.Time
	RefreshExp   time.Time
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	in.Username = strings.ToLower(strings.TrimSpace(in.Username))
	in.Email = strings.TrimSpace(in.Email)

	if !ValidUsername(in.Username) {
		return nil, fmt.Errorf("%w: username must be 3-50 letters, digits or underscores", ErrValidation)
	}
	if err := CheckPasswordStrength(in.Password); err != nil {
		return nil, err
	}

	// Friendly pre-checks. The insert below is still the authority: a
	// racing registration loses at the unique constraint and is mapped to
	// the same conflict error.
	if taken, err := s.Repo.UsernameTaken(ctx, in.Username); err != nil {
		return nil, err
	} else if taken {
		return nil, fmt.Errorf("%w: username already taken", ErrConflict)
	}
	if taken, err := s.Repo.EmailTaken(ctx, in.Email); err != nil {
		return nil, err
	} else if taken {
		return nil, fmt.Errorf("%w: email already registered", ErrConflict)
	}

	pwHash, err := hash.HashPassword(in.Password)
	if err != nil {
		l.Error("register_error", "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	user := models.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: pwHash,
		FullName:     in.FullName,
		IsActive:     true,
	}
	if err := s.Repo.CreateUser(ctx, &user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: username or email already registered", ErrConflict)
		}
		return nil, err
	}

	res, err := s.issuePair(&user)
	if err != nil {
		l.Error("register_error", "reason", "cannot issue tokens", "error", err)
		return nil, err
	}

	s.publish(ctx, "user_registered", &user)
	s.reindex(ctx, &user)

	l.Info("user_registered", "user_id", user.ID, "username", user.Username)
	return res, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	user, err := s.Repo.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Same error as a wrong password so callers cannot probe
			// which emails are registered.
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountInactive
	}

	res, err := s.issuePair(user)
	if err != nil {
		l.Error("login_error", "reason", "cannot issue tokens", "error", err)
		return nil, err
	}

	s.publish(ctx, "user_logged_in", user)

	l.Info("login_successful", "user_id", user.ID)
	return res, nil
}

// Refresh exchanges a valid refresh token for a new access token. The
// refresh token itself is returned to the caller unchanged.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, time.Time, error) {
	claims, err := s.Codec.Validate(refreshToken)
	if err != nil {
		return "", time.Time{}, tokens.ErrInvalidToken
	}

	user, err := s.Repo.UserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", time.Time{}, ErrAccountInactive
		}
		return "", time.Time{}, err
	}
	if !user.IsActive {
		return "", time.Time{}, ErrAccountInactive
	}

	return s.Codec.IssueAccess(user.ID, user.Email)
}

func (s *AuthService) ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error {
	l := logging.FromContext(ctx).With("svc", "auth.change_password", "user_id", userID)

	user, err := s.Repo.UserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if !hash.CheckPassword(user.PasswordHash, oldPassword) {
		return ErrInvalidCredentials
	}
	if err := CheckPasswordStrength(newPassword); err != nil {
		return err
	}

	pwHash, err := hash.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.Repo.UpdatePasswordHash(ctx, userID, pwHash); err != nil {
		return err
	}

	// Outstanding tokens stay valid until their natural expiry.
	l.Info("password_changed")
	return nil
}

func (s *AuthService) issuePair(user *models.User) (*AuthResult, error) {
	access, accessExp, err := s.Codec.IssueAccess(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	refresh, refreshExp, err := s.Codec.IssueRefresh(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &AuthResult{
		User:         user,
		AccessToken:  access,
		RefreshToken: refresh,
		AccessExp:    accessExp,
		RefreshExp:   refreshExp,
	}, nil
}

func (s *AuthService) publish(ctx context.Context, kind string, user *models.User) {
	event := map[string]interface{}{
		"type":     kind,
		"user_id":  user.ID,
		"username": user.Username,
	}
	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Producer.Publish(pubCtx, fmt.Sprint(user.ID), event); err != nil {
		logging.FromContext(ctx).Warn("kafka_publish_failed", "type", kind, "error", err)
	}
}

func (s *AuthService) reindex(ctx context.Context, user *models.User) {
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
}
