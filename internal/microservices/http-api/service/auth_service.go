package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"festivalhub/internal/config"
	"festivalhub/internal/microservices/fanout"
	"festivalhub/internal/microservices/http-api/dto"
	"festivalhub/internal/microservices/http-api/models"
	"festivalhub/internal/microservices/http-api/repository"
	"festivalhub/internal/middleware/auth"

	"gorm.io/gorm"
)

var (
	errUserNotFound  = errors.New("user not found")
	errWrongPassword = errors.New("wrong password")
)

type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req dto.LoginRequest) (accessToken string, user *models.User, err error)
	VerifyUser(ctx context.Context, userID string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	EnsureAdmin(ctx context.Context, email, password string) (*models.User, error)
	ValidateToken(tokenString string) (*auth.Claims, error)
	TokenTTL() time.Duration
}

type authService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenManager
	notifier Notifier
	tokenTTL time.Duration
}

func NewAuthService(userRepo repository.UserRepository, notifier Notifier, cfg *config.Config) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL),
		notifier: notifier,
		tokenTTL: cfg.AccessTokenTTL,
	}
}

// Register creates an unverified account. Admin accounts cannot self-register.
func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*models.User, error) {
	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrBadRequest, role)
	}
	if role == models.RoleAdmin {
		return nil, fmt.Errorf("%w: admin accounts cannot be self-registered", ErrForbidden)
	}

	user, err := s.createUser(ctx, req.Name, req.Email, req.Password, role, false)
	if err != nil {
		return nil, err
	}

	s.notifier.Dispatch(fanout.NewUserRegistered(user))
	return user, nil
}

func (s *authService) createUser(ctx context.Context, name, email, password string, role models.Role, verified bool) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	// Check if email exists
	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: email already in use", ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: hashedPassword,
		Role:     role,
		Verified: verified,
		Active:   true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, duplicate(err, "email already in use")
	}
	return user, nil
}

// Login checks credentials and account state. Every outcome is reported to admins.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (string, *models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, err
		}
		// same cost as a wrong password
		auth.BurnPasswordCheck(req.Password)
		s.notifier.Dispatch(fanout.NewLoginError(email, errUserNotFound))
		return "", nil, ErrInvalidCredentials
	}

	if err := auth.VerifyPassword(user.Password, req.Password); err != nil {
		s.notifier.Dispatch(fanout.NewLoginError(email, errWrongPassword))
		return "", nil, ErrInvalidCredentials
	}

	if !user.Active {
		s.notifier.Dispatch(fanout.NewLoginAttemptInactive(user))
		return "", nil, fmt.Errorf("%w: account is inactive", ErrForbidden)
	}
	if !user.Verified {
		s.notifier.Dispatch(fanout.NewLoginAttemptUnverified(user))
		return "", nil, fmt.Errorf("%w: account is not verified yet", ErrForbidden)
	}

	now := time.Now().UTC()
	user.LastLogin = &now
	if err := s.userRepo.Update(ctx, user); err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, err
	}

	s.notifier.Dispatch(fanout.NewUserLogin(user))
	return token, user, nil
}

// VerifyUser is idempotent: an already verified account produces no notifications.
func (s *authService) VerifyUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, "user")
	}
	if user.Verified {
		return user, nil
	}

	user.Verified = true
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.notifier.Dispatch(fanout.NewUserVerified(user))
	s.notifier.Dispatch(fanout.NewWelcome(user))
	return user, nil
}

func (s *authService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.List(ctx)
}

// EnsureAdmin creates the bootstrap admin account unless the email is already taken.
func (s *authService) EnsureAdmin(ctx context.Context, email, password string) (*models.User, error) {
	existing, err := s.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return s.createUser(ctx, "Administrator", email, password, models.RoleAdmin, true)
}

func (s *authService) ValidateToken(tokenString string) (*auth.Claims, error) {
	return s.tokens.Parse(tokenString)
}

func (s *authService) TokenTTL() time.Duration {
	return s.tokenTTL
}
