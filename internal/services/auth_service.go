package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/storefront/internal/auth"
	"github.com/ahmetcoskunkizilkaya/storefront/internal/dto"
	"github.com/ahmetcoskunkizilkaya/storefront/internal/models"
	"github.com/ahmetcoskunkizilkaya/storefront/internal/ratelimit"
	"github.com/ahmetcoskunkizilkaya/storefront/internal/repository"
	"github.com/google/uuid"
)

type AuthService struct {
	users    UserStore
	hasher   auth.PasswordHasher
	tokens   *auth.TokenService
	throttle *ratelimit.Throttle
	carts    *CartService
	now      func() time.Time
}

func NewAuthService(users UserStore, hasher auth.PasswordHasher, tokens *auth.TokenService, throttle *ratelimit.Throttle, carts *CartService) *AuthService {
	return &AuthService{
		users:    users,
		hasher:   hasher,
		tokens:   tokens,
		throttle: throttle,
		carts:    carts,
		now:      time.Now,
	}
}

// Register creates an active user and issues a token. A pending session cart
// is migrated on a best-effort basis.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest, sessionToken string) (*dto.AuthResponse, error) {
	req.Email = normalizeEmail(req.Email)
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Phone = strings.TrimSpace(req.Phone)
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	if _, err := s.users.FindActiveByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:        uuid.New(),
		Email:     req.Email,
		Password:  hash,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		IsActive:  true,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("user registered", "action", "register", "user_id", user.ID.String())
	return s.issue(ctx, &user, sessionToken)
}

// Login verifies credentials for clientAddr, which is throttled to a fixed
// number of attempts per window. A successful login clears the counter.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest, clientAddr, sessionToken string) (*dto.AuthResponse, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	key := "login:" + clientAddr
	if !s.throttle.Allow(ctx, key) {
		slog.Warn("login throttled", "action", "login", "client", clientAddr)
		return nil, ErrTooManyAttempts
	}

	user, err := s.users.FindActiveByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if !s.hasher.Verify(req.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	s.throttle.Reset(ctx, key)

	now := s.now().UTC()
	if err := s.users.UpdateColumns(ctx, user.ID, map[string]any{"last_login": now}); err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}
	user.LastLogin = &now

	return s.issue(ctx, user, sessionToken)
}

// Logout is a stateless acknowledgement; tokens expire on their own.
func (s *AuthService) Logout(ctx context.Context, userID uuid.UUID) {
	slog.InfoContext(ctx, "user logged out", "action", "logout", "user_id", userID.String())
}

func (s *AuthService) Profile(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := s.activeUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// UpdateProfile writes the whitelisted profile fields that are present.
func (s *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	fields := make(map[string]any, 3)
	if req.FirstName != nil {
		v := strings.TrimSpace(*req.FirstName)
		req.FirstName = &v
		fields["first_name"] = v
	}
	if req.LastName != nil {
		v := strings.TrimSpace(*req.LastName)
		req.LastName = &v
		fields["last_name"] = v
	}
	if req.Phone != nil {
		v := strings.TrimSpace(*req.Phone)
		req.Phone = &v
		fields["phone"] = v
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, invalid("", "no profile fields to update")
	}

	if _, err := s.activeUser(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.users.UpdateColumns(ctx, userID, fields); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return s.Profile(ctx, userID)
}

func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, req *dto.ChangePasswordRequest) error {
	if err := validateStruct(req); err != nil {
		return err
	}
	if req.NewPassword == req.CurrentPassword {
		return ErrSamePassword
	}

	user, err := s.activeUser(ctx, userID)
	if err != nil {
		return err
	}
	if !s.hasher.Verify(req.CurrentPassword, user.Password) {
		return ErrIncorrectPassword
	}

	hash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.users.UpdateColumns(ctx, userID, map[string]any{"password": hash}); err != nil {
		return fmt.Errorf("failed to change password: %w", err)
	}

	slog.Info("password changed", "action", "change_password", "user_id", userID.String())
	return nil
}

// Deactivate flips the active flag after re-verifying the password. The row is kept.
func (s *AuthService) Deactivate(ctx context.Context, userID uuid.UUID, req *dto.DeactivateRequest) error {
	if err := validateStruct(req); err != nil {
		return err
	}
	user, err := s.activeUser(ctx, userID)
	if err != nil {
		return err
	}
	if !s.hasher.Verify(req.Password, user.Password) {
		return ErrIncorrectPassword
	}
	if err := s.users.UpdateColumns(ctx, userID, map[string]any{"is_active": false}); err != nil {
		return fmt.Errorf("failed to deactivate account: %w", err)
	}

	slog.Info("account deactivated", "action", "deactivate", "user_id", userID.String())
	return nil
}

// Authenticate resolves the active user behind a token. It backs the
// verify-token endpoint and the bearer gates.
func (s *AuthService) Authenticate(ctx context.Context, claims *auth.Claims) (*models.User, error) {
	if claims == nil {
		return nil, ErrUserNotFound
	}
	id, err := claims.ParseUserID()
	if err != nil {
		return nil, ErrUserNotFound
	}
	return s.activeUser(ctx, id)
}

func (s *AuthService) issue(ctx context.Context, user *models.User, sessionToken string) (*dto.AuthResponse, error) {
	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	if sessionToken != "" && s.carts != nil {
		if err := s.carts.MigrateSessionCartToUser(ctx, sessionToken, user.ID); err != nil {
			slog.Error("session cart migration failed",
				"action", "cart_migrate",
				"user_id", user.ID.String(),
				"session_id", sessionToken,
				"error", err,
			)
		}
	}

	return &dto.AuthResponse{Token: token, User: dto.NewUserResponse(user)}, nil
}

func (s *AuthService) activeUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
