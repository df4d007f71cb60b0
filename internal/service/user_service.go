package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"todolist/internal/model"
	"todolist/internal/repository"
)

// LoginStatus is the outcome of a credential check.
type LoginStatus int

const (
	LoginOK LoginStatus = iota
	LoginUserNotFound
	LoginErrorPassword
	LoginUserBlocked
)

// RegisterInput carries the registration form fields after binding.
type RegisterInput struct {
	Email     string
	Name      string
	Password  string
	BirthDate *time.Time
	Admin     bool
}

// UserService implements login, registration and the administrator roster.
type UserService struct {
	users  *repository.UserRepository
	logger *slog.Logger
}

func NewUserService(users *repository.UserRepository, logger *slog.Logger) *UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserService{users: users, logger: logger}
}

// Login checks credentials. A blocked user gets LoginUserBlocked before the
// password is even looked at, so blocking never leaks password correctness.
// Passwords are compared by plain equality against the stored value.
func (s *UserService) Login(ctx context.Context, email, password string) (LoginStatus, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return LoginUserNotFound, nil
	}
	if err != nil {
		return 0, fmt.Errorf("find user by email: %w", err)
	}
	if user.Blocked {
		return LoginUserBlocked, nil
	}
	if user.Password != password {
		return LoginErrorPassword, nil
	}
	return LoginOK, nil
}

// Register creates a new account. Email and password are required, the email
// must be free and at most one administrator may exist system-wide. The
// uniqueness checks and the insert commit atomically or not at all.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	if input.Email == "" {
		return nil, validationf("el usuario no tiene email")
	}
	if input.Password == "" {
		return nil, validationf("el usuario no tiene password")
	}

	user := &model.User{
		Email:     input.Email,
		Name:      input.Name,
		Password:  input.Password,
		BirthDate: input.BirthDate,
		Admin:     input.Admin,
	}

	err := s.users.CreateUnique(ctx, user)
	switch {
	case errors.Is(err, repository.ErrEmailTaken):
		return nil, conflictf("el usuario %s ya está registrado", input.Email)
	case errors.Is(err, repository.ErrAdminExists):
		return nil, conflictf("ya existe un administrador registrado")
	case err != nil:
		return nil, err
	}

	s.logger.Info("user registered", slog.String("email", user.Email), slog.Bool("admin", user.Admin))
	return user, nil
}

// FindByID returns nil without error when the id is unknown.
func (s *UserService) FindByID(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// FindByEmail returns nil without error when no user has the email.
func (s *UserService) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return user, nil
}

func (s *UserService) ListAll(ctx context.Context) ([]model.User, error) {
	return s.users.ListAll(ctx)
}

// ListPage returns one page of the roster in ascending-id order.
func (s *UserService) ListPage(ctx context.Context, page, size int) ([]model.User, error) {
	if page < 0 || size < 1 {
		return nil, validationf("página o tamaño de página inválidos")
	}
	return s.users.ListPage(ctx, page*size, size)
}

func (s *UserService) Count(ctx context.Context) (int64, error) {
	return s.users.Count(ctx)
}

// AdminExists is true iff any stored user holds the administrator flag.
func (s *UserService) AdminExists(ctx context.Context) (bool, error) {
	return s.users.AdminExists(ctx)
}

// IsAdmin is false for unknown ids rather than an error.
func (s *UserService) IsAdmin(ctx context.Context, id uint) (bool, error) {
	user, err := s.FindByID(ctx, id)
	if err != nil {
		return false, err
	}
	return user != nil && user.Admin, nil
}

// IsBlocked is false for unknown ids.
func (s *UserService) IsBlocked(ctx context.Context, id uint) (bool, error) {
	user, err := s.FindByID(ctx, id)
	if err != nil {
		return false, err
	}
	return user != nil && user.Blocked, nil
}

// SetBlocked flips the blocked flag; a blocked user cannot log in.
func (s *UserService) SetBlocked(ctx context.Context, id uint, blocked bool) error {
	user, err := s.users.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFoundf("no existe usuario con id %d", id)
	}
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	user.Blocked = blocked
	if err := s.users.Save(ctx, user); err != nil {
		return err
	}
	s.logger.Info("user block state changed", slog.Uint64("user_id", uint64(id)), slog.Bool("blocked", blocked))
	return nil
}

// Delete removes the user along with their tasks and memberships.
func (s *UserService) Delete(ctx context.Context, id uint) error {
	user, err := s.users.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFoundf("no existe usuario con id %d", id)
	}
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	if err := s.users.Delete(ctx, user); err != nil {
		return err
	}
	s.logger.Info("user deleted", slog.Uint64("user_id", uint64(id)))
	return nil
}
