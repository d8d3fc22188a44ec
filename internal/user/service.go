package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fsdcampus/campus-booking-backend/internal/auth"
	"github.com/fsdcampus/campus-booking-backend/internal/pkg/apperror"
)

// Lockout policy: three failed logins lock the account for one minute.
const (
	maxFailedAttempts = 3
	lockDuration      = time.Minute
)

// RegisterRequest carries the fields needed to create an account.
type RegisterRequest struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// Service defines business logic related to users and authentication.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*User, error)
	Login(ctx context.Context, email, password string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
}

type service struct {
	repo   Repository
	hasher auth.PasswordHasher

	minPasswordLength int
}

// NewService creates a new user Service.
func NewService(repo Repository, hasher auth.PasswordHasher) Service {
	return &service{
		repo:              repo,
		hasher:            hasher,
		minPasswordLength: 8,
	}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	cleanEmail := normalizeEmail(req.Email)
	if cleanEmail == "" {
		return nil, ErrEmailRequired
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}
	if len(req.Password) < s.minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	role := auth.NormalizeRole(req.Role)
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	// Check if email is already used.
	_, err := s.repo.GetByEmail(ctx, cleanEmail)
	if err == nil {
		return nil, ErrEmailAlreadyUsed
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &User{
		Name:         strings.TrimSpace(req.Name),
		Email:        cleanEmail,
		PasswordHash: hash,
		Role:         role,
		Status:       StatusActive,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return u, nil
}

func (s *service) Login(ctx context.Context, email, password string) (*User, error) {
	cleanEmail := normalizeEmail(email)
	if cleanEmail == "" || strings.TrimSpace(password) == "" {
		return nil, ErrInvalidCredentials
	}

	u, err := s.repo.GetByEmail(ctx, cleanEmail)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to fetch user by email: %w", err)
	}

	// Expire or enforce an active lock before looking at the password.
	if u.Status == StatusLocked && u.LockTime != nil {
		remaining := lockDuration - time.Since(*u.LockTime)
		if remaining > 0 {
			return nil, apperror.New(apperror.KindForbidden,
				fmt.Sprintf("account is locked, try again in %d second(s)", int(remaining.Seconds())+1))
		}
		u.Status = StatusActive
		u.FailedAttempts = 0
		u.LockTime = nil
		if err := s.repo.UpdateLoginState(ctx, u); err != nil {
			return nil, fmt.Errorf("failed to unlock account: %w", err)
		}
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		u.FailedAttempts++
		if u.FailedAttempts >= maxFailedAttempts {
			now := time.Now().UTC()
			u.Status = StatusLocked
			u.LockTime = &now
			if err := s.repo.UpdateLoginState(ctx, u); err != nil {
				return nil, fmt.Errorf("failed to lock account: %w", err)
			}
			return nil, ErrAccountLocked
		}
		if err := s.repo.UpdateLoginState(ctx, u); err != nil {
			return nil, fmt.Errorf("failed to record failed attempt: %w", err)
		}
		remaining := maxFailedAttempts - u.FailedAttempts
		return nil, apperror.New(apperror.KindUnauthorized,
			fmt.Sprintf("invalid credentials, %d attempt(s) remaining before lockout", remaining))
	}

	// Reset lockout bookkeeping on success.
	if u.FailedAttempts != 0 || u.Status != StatusActive || u.LockTime != nil {
		u.FailedAttempts = 0
		u.Status = StatusActive
		u.LockTime = nil
		if err := s.repo.UpdateLoginState(ctx, u); err != nil {
			return nil, fmt.Errorf("failed to reset login state: %w", err)
		}
	}

	return u, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

// normalizeEmail trims spaces and lowercases the email.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
