// internal/service/user_service.go
package service

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	appErrors "github.com/unclebandit/mailflow-backend/internal/errors"
	"github.com/unclebandit/mailflow-backend/internal/mailer"
	"github.com/unclebandit/mailflow-backend/internal/model"
	"github.com/unclebandit/mailflow-backend/internal/repository"
	"github.com/unclebandit/mailflow-backend/internal/token"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// UserService handles the account lifecycle: registration with emailed
// activation, login, password reset, profile edits and blocking.
type UserService struct {
	UserRepo    repository.UserRepositoryInterface
	Tokens      *token.Manager
	Transport   mailer.Transport
	FromAddress string
	BaseURL     string
	Log         *zap.Logger
}

// Register creates an inactive account and emails an activation link.
func (s *UserService) Register(email, password, username string) (*model.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if !emailRegex.MatchString(email) {
		return nil, appErrors.ErrInvalidEmail
	}
	if len(password) < 8 {
		return nil, appErrors.ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Email:        email,
		PasswordHash: string(hash),
		Username:     username,
		Role:         model.RoleUser,
		IsActive:     false,
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}

	activationToken, err := s.Tokens.Generate(user.ID, user.Email, user.Role, token.PurposeActivation)
	if err != nil {
		return nil, err
	}

	body := fmt.Sprintf(
		"Hello %s,\n\nPlease activate your account by following this link:\n%s/auth/activate/%s\n",
		displayName(user), s.BaseURL, activationToken,
	)
	if err := s.Transport.Send("Activate your account", body, s.FromAddress, []string{user.Email}); err != nil {
		// The account exists either way; the user can request another link.
		s.logger().Warn("⚠️ failed to send activation email",
			zap.String("email", user.Email), zap.Error(err))
	}

	return user, nil
}

// Activate marks the account behind a valid activation token as active.
func (s *UserService) Activate(tokenString string) error {
	claims, err := s.Tokens.Validate(tokenString, token.PurposeActivation)
	if err != nil {
		return err
	}
	if _, err := s.UserRepo.GetByID(claims.UserID); err != nil {
		return err
	}
	return s.UserRepo.SetActive(claims.UserID, true)
}

// Login checks credentials and gates on the active/blocked flags, then
// issues a session token.
func (s *UserService) Login(email, password string) (string, *model.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.UserRepo.GetByEmail(email)
	if err != nil {
		var notFound *appErrors.ErrUserNotFound
		if errors.As(err, &notFound) {
			return "", nil, appErrors.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, appErrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return "", nil, appErrors.ErrUserInactive
	}
	if user.IsBlocked {
		return "", nil, appErrors.ErrUserBlocked
	}

	sessionToken, err := s.Tokens.Generate(user.ID, user.Email, user.Role, token.PurposeSession)
	if err != nil {
		return "", nil, err
	}
	return sessionToken, user, nil
}

// RequestPasswordReset emails a reset link. An unknown email is not an
// error, so the endpoint does not leak which addresses are registered.
func (s *UserService) RequestPasswordReset(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.UserRepo.GetByEmail(email)
	if err != nil {
		var notFound *appErrors.ErrUserNotFound
		if errors.As(err, &notFound) {
			return nil
		}
		return err
	}

	resetToken, err := s.Tokens.Generate(user.ID, user.Email, user.Role, token.PurposePasswordReset)
	if err != nil {
		return err
	}

	body := fmt.Sprintf(
		"Hello %s,\n\nReset your password by following this link:\n%s/auth/password-reset/%s\n",
		displayName(user), s.BaseURL, resetToken,
	)
	if err := s.Transport.Send("Reset your password", body, s.FromAddress, []string{user.Email}); err != nil {
		s.logger().Warn("⚠️ failed to send password reset email",
			zap.String("email", user.Email), zap.Error(err))
	}
	return nil
}

// ConfirmPasswordReset sets a new password for a valid reset token.
func (s *UserService) ConfirmPasswordReset(tokenString, newPassword string) error {
	claims, err := s.Tokens.Validate(tokenString, token.PurposePasswordReset)
	if err != nil {
		return err
	}
	if len(newPassword) < 8 {
		return appErrors.ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.UserRepo.UpdatePassword(claims.UserID, string(hash))
}

func (s *UserService) GetProfile(userID int) (*model.User, error) {
	return s.UserRepo.GetByID(userID)
}

func (s *UserService) UpdateProfile(userID int, username, phone, avatar, country string) (*model.User, error) {
	user, err := s.UserRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	user.Username = username
	user.Phone = phone
	user.Avatar = avatar
	user.Country = country

	if err := s.UserRepo.UpdateProfile(user); err != nil {
		return nil, err
	}
	return user, nil
}

// ListUsers returns the non-manager accounts for the admin screen.
func (s *UserService) ListUsers() ([]model.User, error) {
	return s.UserRepo.ListNonManagers()
}

func (s *UserService) SetBlocked(userID int, blocked bool) error {
	if _, err := s.UserRepo.GetByID(userID); err != nil {
		return err
	}
	return s.UserRepo.SetBlocked(userID, blocked)
}

func displayName(u *model.User) string {
	if u.Username != "" {
		return u.Username
	}
	return u.Email
}

func (s *UserService) logger() *zap.Logger {
	if s.Log != nil {
		return s.Log
	}
	return zap.NewNop()
}
