package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "hrms/internal/errors"
	"hrms/internal/model"
	"hrms/internal/repository"
)

// CreateEmployeeInput carries a new employee account. New accounts always
// start as active employees; promoting to admin is a separate edit.
type CreateEmployeeInput struct {
	FirstName     string
	LastName      string
	Email         string
	Password      string
	DepartmentID  *uint
	DesignationID *uint
	BasicSalary   decimal.Decimal
	DateJoined    *time.Time
}

// UpdateEmployeeInput carries a partial admin edit. Nil fields keep their
// stored value.
type UpdateEmployeeInput struct {
	FirstName     *string
	LastName      *string
	Email         *string
	DepartmentID  *uint
	DesignationID *uint
	BasicSalary   *decimal.Decimal
	DateJoined    *time.Time
	IsActive      *bool
}

// UpdateProfileInput carries a self-service profile edit. Only personal
// fields are exposed; role, salary, and org placement stay admin-only.
type UpdateProfileInput struct {
	FirstName        *string
	LastName         *string
	Phone            *string
	Address          *string
	NationalID       *string
	EmergencyContact *string
	BloodGroup       *string
	Avatar           *string
	DateOfBirth      *time.Time
}

// EmployeeService manages employee accounts and profiles.
type EmployeeService interface {
	List(ctx context.Context) ([]model.User, error)
	Get(ctx context.Context, id uint) (*model.User, error)
	Create(ctx context.Context, input CreateEmployeeInput) (*model.User, error)
	Update(ctx context.Context, id uint, input UpdateEmployeeInput) (*model.User, error)
	Delete(ctx context.Context, id uint) error
	GetProfile(ctx context.Context, userID uint) (*model.User, error)
	UpdateProfile(ctx context.Context, userID uint, input UpdateProfileInput) (*model.User, error)
}

type employeeService struct {
	userRepo repository.UserRepository
}

// NewEmployeeService creates a new employee service.
func NewEmployeeService(userRepo repository.UserRepository) EmployeeService {
	return &employeeService{userRepo: userRepo}
}

func (s *employeeService) List(ctx context.Context) ([]model.User, error) {
	return s.userRepo.List(ctx)
}

func (s *employeeService) Get(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.userRepo.FindByIDWithRelations(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

func (s *employeeService) Create(ctx context.Context, input CreateEmployeeInput) (*model.User, error) {
	existing, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrEmailTaken
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	dateJoined := time.Now()
	if input.DateJoined != nil {
		dateJoined = *input.DateJoined
	}

	user := &model.User{
		FirstName:     input.FirstName,
		LastName:      input.LastName,
		Email:         input.Email,
		PasswordHash:  string(hashedPassword),
		Role:          model.RoleEmployee,
		IsActive:      true,
		DepartmentID:  input.DepartmentID,
		DesignationID: input.DesignationID,
		BasicSalary:   input.BasicSalary,
		DateJoined:    dateJoined,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *employeeService) Update(ctx context.Context, id uint, input UpdateEmployeeInput) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if input.Email != nil && *input.Email != user.Email {
		existing, err := s.userRepo.FindByEmail(ctx, *input.Email)
		if err == nil && existing != nil {
			return nil, apperrors.ErrEmailTaken
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("check email: %w", err)
		}
		user.Email = *input.Email
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.DepartmentID != nil {
		user.DepartmentID = input.DepartmentID
	}
	if input.DesignationID != nil {
		user.DesignationID = input.DesignationID
	}
	if input.BasicSalary != nil {
		user.BasicSalary = *input.BasicSalary
	}
	if input.DateJoined != nil {
		user.DateJoined = *input.DateJoined
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

func (s *employeeService) Delete(ctx context.Context, id uint) error {
	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func (s *employeeService) GetProfile(ctx context.Context, userID uint) (*model.User, error) {
	return s.Get(ctx, userID)
}

func (s *employeeService) UpdateProfile(ctx context.Context, userID uint, input UpdateProfileInput) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Phone != nil {
		user.Phone = input.Phone
	}
	if input.Address != nil {
		user.Address = input.Address
	}
	if input.NationalID != nil {
		user.NationalID = input.NationalID
	}
	if input.EmergencyContact != nil {
		user.EmergencyContact = input.EmergencyContact
	}
	if input.BloodGroup != nil {
		user.BloodGroup = input.BloodGroup
	}
	if input.Avatar != nil {
		user.Avatar = input.Avatar
	}
	if input.DateOfBirth != nil {
		user.DateOfBirth = input.DateOfBirth
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return user, nil
}
