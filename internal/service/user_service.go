package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "votehub/internal/errors"
	"votehub/internal/model"
	"votehub/internal/repository"
)

const bcryptCost = 10

// ErrUserAlreadyExists is returned when creating a user with a taken email.
var ErrUserAlreadyExists = errors.New("user already exists")

// CreateUserInput carries the admin user-creation parameters.
type CreateUserInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      model.Role
}

// UpdateUserInput carries optional user updates; nil fields are unchanged.
type UpdateUserInput struct {
	FirstName *string
	LastName  *string
	Role      *model.Role
	Active    *bool
}

// UserService handles user management. All mutations are admin actions.
type UserService interface {
	CreateUser(ctx context.Context, actorID uuid.UUID, input CreateUserInput) (*model.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateUser(ctx context.Context, actorID, id uuid.UUID, input UpdateUserInput) (*model.User, error)
}

type userService struct {
	userRepo repository.UserRepository
	audit    *AuditService
}

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepository, audit *AuditService) UserService {
	return &userService{userRepo: userRepo, audit: audit}
}

// CreateUser creates a new user with a hashed password.
func (s *userService) CreateUser(ctx context.Context, actorID uuid.UUID, input CreateUserInput) (*model.User, error) {
	if input.Role != model.RoleAdmin && input.Role != model.RoleUser {
		return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrInvalidInput, input.Role)
	}

	existing, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err == nil && existing != nil {
		return nil, ErrUserAlreadyExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Role:         input.Role,
		Active:       true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.audit.Record(actorID, "user.create", "user", user.ID, fmt.Sprintf("role=%s", user.Role))
	return user, nil
}

// GetUser retrieves a user by ID.
func (s *userService) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// ListUsers lists all users.
func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.userRepo.List(ctx)
}

// UpdateUser applies the provided changes to a user.
func (s *userService) UpdateUser(ctx context.Context, actorID, id uuid.UUID, input UpdateUserInput) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	if input.Role != nil {
		if *input.Role != model.RoleAdmin && *input.Role != model.RoleUser {
			return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrInvalidInput, *input.Role)
		}
		user.Role = *input.Role
	}
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Active != nil {
		user.Active = *input.Active
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	s.audit.Record(actorID, "user.update", "user", user.ID, fmt.Sprintf("role=%s active=%t", user.Role, user.Active))
	return user, nil
}
