package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/99minutos/admin-dashboard/internal/core/domain"
	"github.com/99minutos/admin-dashboard/internal/core/ports"
	"github.com/99minutos/admin-dashboard/internal/pkg/metrics"
)

type userService struct {
	repo ports.UserRepository
	log  zerolog.Logger
	now  func() time.Time
}

// NewUserService returns the super_admin user use cases.
func NewUserService(repo ports.UserRepository, log zerolog.Logger) ports.UserAdminService {
	return &userService{repo: repo, log: log, now: time.Now}
}

func (s *userService) List(ctx context.Context, page ports.Page) ([]*domain.User, error) {
	users, err := s.repo.List(ctx, normalizePage(page))
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Create stores a new account. Users created without a role are customers.
func (s *userService) Create(ctx context.Context, in ports.UserInput) (*domain.User, error) {
	role := in.Role
	if role == "" {
		role = domain.RoleCustomer
	}
	if !role.Known() {
		return nil, fmt.Errorf("create user: unknown role %q: %w", role, domain.ErrValidation)
	}
	if in.Password == "" {
		return nil, fmt.Errorf("create user: password is required: %w", domain.ErrValidation)
	}

	if _, err := s.repo.FindByUsername(ctx, in.Username); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("create user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("create user: hash password: %w", err)
	}

	now := s.now().UTC()
	created, err := s.repo.Create(ctx, &domain.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Username:     in.Username,
		Email:        in.Email,
		Role:         role,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	metrics.MutationsTotal.WithLabelValues("users", "create").Inc()
	s.log.Info().Int64("user_id", created.UserID).Str("username", created.Username).Msg("user created")
	return created, nil
}

// Update replaces the editable fields of an account. Role and password are
// kept unless a role is given.
func (s *userService) Update(ctx context.Context, id int64, in ports.UserInput) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	if in.Username != user.Username {
		if other, err := s.repo.FindByUsername(ctx, in.Username); err == nil && other.UserID != id {
			return nil, domain.ErrUserExists
		}
	}

	user.FirstName = in.FirstName
	user.LastName = in.LastName
	user.Username = in.Username
	user.Email = in.Email
	if in.Role != "" {
		if !in.Role.Known() {
			return nil, fmt.Errorf("update user: unknown role %q: %w", in.Role, domain.ErrValidation)
		}
		user.Role = in.Role
	}
	user.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	metrics.MutationsTotal.WithLabelValues("users", "update").Inc()
	s.log.Info().Int64("user_id", id).Msg("user updated")
	return user, nil
}

func (s *userService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	metrics.MutationsTotal.WithLabelValues("users", "delete").Inc()
	s.log.Info().Int64("user_id", id).Msg("user deleted")
	return nil
}

// EnsureSuperAdmin creates the bootstrap account when it does not exist yet.
func EnsureSuperAdmin(ctx context.Context, svc ports.UserAdminService, username, password string) error {
	if username == "" || password == "" {
		return nil
	}
	_, err := svc.Create(ctx, ports.UserInput{
		FirstName: "Super",
		LastName:  "Admin",
		Username:  username,
		Email:     username + "@localhost",
		Role:      domain.RoleSuperAdmin,
		Password:  password,
	})
	if err != nil && !errors.Is(err, domain.ErrUserExists) {
		return fmt.Errorf("bootstrap super admin: %w", err)
	}
	return nil
}

const maxPageLimit = 100

// normalizePage caps the page size. A zero page lists everything.
func normalizePage(p ports.Page) ports.Page {
	if p.Limit <= 0 {
		return ports.Page{}
	}
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit > maxPageLimit {
		p.Limit = maxPageLimit
	}
	return p
}
