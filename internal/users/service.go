package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/lumenworks/sitecms/backend/go-services/internal/models"
	"github.com/lumenworks/sitecms/backend/go-services/pkg/logger"
)

const MinPasswordLen = 6

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidUser        = errors.New("email, name and a password of at least 6 characters are required")
	ErrLastAdmin          = errors.New("cannot delete the last admin")
)

// Service encapsulates user-related business logic
type Service struct {
	repo UserRepository
	cost int
}

// Option configures a Service.
type Option func(*Service)

// WithHashCost overrides the bcrypt cost; tests use bcrypt.MinCost.
func WithHashCost(cost int) Option {
	return func(s *Service) { s.cost = cost }
}

func NewService(r UserRepository, opts ...Option) *Service {
	s := &Service{repo: r, cost: bcrypt.DefaultCost}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Register creates a user with a bcrypt password hash.
func (s *Service) Register(ctx context.Context, email, name, role, password string) (*models.User, error) {
	email = normalizeEmail(email)
	if !strings.Contains(email, "@") || strings.TrimSpace(name) == "" || len(password) < MinPasswordLen {
		return nil, ErrInvalidUser
	}
	if role != models.RoleAdmin {
		role = models.RoleEditor
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &models.User{Email: email, Name: strings.TrimSpace(name), Role: role, PasswordHash: string(hash)}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Authenticate checks the credential pair. Unknown email and wrong password
// produce the same error.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// EnsureAdmin seeds the demo admin account when it does not exist yet.
func (s *Service) EnsureAdmin(ctx context.Context, email, password, name string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, nil
	}
	u, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if name == "" {
		name = "Admin"
	}
	u, err = s.Register(ctx, email, name, models.RoleAdmin, password)
	if err != nil {
		return nil, err
	}
	logger.Infof("seeded admin user %s", u.Email)
	return u, nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]models.User, error) {
	return s.repo.List(ctx)
}

// Delete removes a user but always keeps at least one admin.
func (s *Service) Delete(ctx context.Context, id string) error {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if u.Role == models.RoleAdmin {
		all, err := s.repo.List(ctx)
		if err != nil {
			return err
		}
		admins := 0
		for _, other := range all {
			if other.Role == models.RoleAdmin {
				admins++
			}
		}
		if admins <= 1 {
			return ErrLastAdmin
		}
	}
	return s.repo.Delete(ctx, id)
}
