package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"hrms/internal/cache"
	apperrors "hrms/internal/errors"
	"hrms/internal/model"
	"hrms/internal/repository"
)

// CreateDepartmentInput carries a new department.
type CreateDepartmentInput struct {
	Name        string
	Description string
	ManagerID   *uint
}

// UpdateDepartmentInput carries a partial department edit. Nil fields keep
// their stored value.
type UpdateDepartmentInput struct {
	Name        *string
	Description *string
	ManagerID   *uint
}

// DepartmentService manages departments and the one-department-per-manager rule.
type DepartmentService interface {
	List(ctx context.Context) ([]model.Department, error)
	Get(ctx context.Context, id uint) (*model.Department, error)
	Create(ctx context.Context, input CreateDepartmentInput) (*model.Department, error)
	Update(ctx context.Context, id uint, input UpdateDepartmentInput) (*model.Department, error)
	Delete(ctx context.Context, id uint) error
}

type departmentService struct {
	departmentRepo repository.DepartmentRepository
	userRepo       repository.UserRepository
	cache          *cache.Client
}

// NewDepartmentService creates a new department service.
func NewDepartmentService(departmentRepo repository.DepartmentRepository, userRepo repository.UserRepository, cache *cache.Client) DepartmentService {
	return &departmentService{
		departmentRepo: departmentRepo,
		userRepo:       userRepo,
		cache:          cache,
	}
}

func (s *departmentService) List(ctx context.Context) ([]model.Department, error) {
	departments, err := s.departmentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	for i := range departments {
		count, err := s.departmentRepo.CountEmployees(ctx, departments[i].ID)
		if err != nil {
			return nil, fmt.Errorf("count employees: %w", err)
		}
		departments[i].EmployeeCount = count
	}
	return departments, nil
}

func (s *departmentService) Get(ctx context.Context, id uint) (*model.Department, error) {
	department, err := s.departmentRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("find department: %w", err)
	}
	return department, nil
}

func (s *departmentService) Create(ctx context.Context, input CreateDepartmentInput) (*model.Department, error) {
	if _, err := s.departmentRepo.FindByName(ctx, input.Name); err == nil {
		return nil, apperrors.ErrDepartmentNameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check name: %w", err)
	}

	if input.ManagerID != nil {
		if err := s.checkManagerAvailable(ctx, *input.ManagerID, 0); err != nil {
			return nil, err
		}
	}

	department := &model.Department{
		Name:        input.Name,
		Description: input.Description,
		ManagerID:   input.ManagerID,
	}

	if err := s.departmentRepo.Create(ctx, department); err != nil {
		return nil, fmt.Errorf("create department: %w", err)
	}

	_ = s.cache.Delete(ctx, dashboardCacheKey)
	return department, nil
}

func (s *departmentService) Update(ctx context.Context, id uint, input UpdateDepartmentInput) (*model.Department, error) {
	department, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil && *input.Name != department.Name {
		if _, err := s.departmentRepo.FindByName(ctx, *input.Name); err == nil {
			return nil, apperrors.ErrDepartmentNameTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("check name: %w", err)
		}
		department.Name = *input.Name
	}
	if input.Description != nil {
		department.Description = *input.Description
	}
	if input.ManagerID != nil {
		if err := s.checkManagerAvailable(ctx, *input.ManagerID, id); err != nil {
			return nil, err
		}
		department.ManagerID = input.ManagerID
	}

	if err := s.departmentRepo.Update(ctx, department); err != nil {
		return nil, fmt.Errorf("update department: %w", err)
	}
	return department, nil
}

// Delete refuses while employees or designations still reference the
// department; reassignment comes first.
func (s *departmentService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	employees, err := s.departmentRepo.CountEmployees(ctx, id)
	if err != nil {
		return fmt.Errorf("count employees: %w", err)
	}
	designations, err := s.departmentRepo.CountDesignations(ctx, id)
	if err != nil {
		return fmt.Errorf("count designations: %w", err)
	}
	if employees > 0 || designations > 0 {
		return apperrors.ErrDepartmentNotEmpty
	}

	if err := s.departmentRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete department: %w", err)
	}

	_ = s.cache.Delete(ctx, dashboardCacheKey)
	return nil
}

// checkManagerAvailable enforces the at-most-one-department-per-manager rule
// at write time. exceptID excludes the department being edited.
func (s *departmentService) checkManagerAvailable(ctx context.Context, managerID, exceptID uint) error {
	if _, err := s.userRepo.FindByID(ctx, managerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrManagerNotFound
		}
		return fmt.Errorf("find manager: %w", err)
	}

	managed, err := s.departmentRepo.FindByManager(ctx, managerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("check manager: %w", err)
	}
	if managed.ID != exceptID {
		return apperrors.ErrManagerAssigned
	}
	return nil
}
