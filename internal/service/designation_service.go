package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "hrms/internal/errors"
	"hrms/internal/model"
	"hrms/internal/repository"
)

// CreateDesignationInput carries a new designation.
type CreateDesignationInput struct {
	Name         string
	Description  string
	DepartmentID *uint
}

// UpdateDesignationInput carries a partial designation edit. Nil fields keep
// their stored value.
type UpdateDesignationInput struct {
	Name         *string
	Description  *string
	DepartmentID *uint
}

// DesignationService manages job titles. The same title may exist in
// different departments; within one department it must be unique.
type DesignationService interface {
	List(ctx context.Context) ([]model.Designation, error)
	Get(ctx context.Context, id uint) (*model.Designation, error)
	Create(ctx context.Context, input CreateDesignationInput) (*model.Designation, error)
	Update(ctx context.Context, id uint, input UpdateDesignationInput) (*model.Designation, error)
	Delete(ctx context.Context, id uint) error
}

type designationService struct {
	designationRepo repository.DesignationRepository
	departmentRepo  repository.DepartmentRepository
}

// NewDesignationService creates a new designation service.
func NewDesignationService(designationRepo repository.DesignationRepository, departmentRepo repository.DepartmentRepository) DesignationService {
	return &designationService{
		designationRepo: designationRepo,
		departmentRepo:  departmentRepo,
	}
}

func (s *designationService) List(ctx context.Context) ([]model.Designation, error) {
	designations, err := s.designationRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list designations: %w", err)
	}
	for i := range designations {
		count, err := s.designationRepo.CountEmployees(ctx, designations[i].ID)
		if err != nil {
			return nil, fmt.Errorf("count employees: %w", err)
		}
		designations[i].EmployeeCount = count
	}
	return designations, nil
}

func (s *designationService) Get(ctx context.Context, id uint) (*model.Designation, error) {
	designation, err := s.designationRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDesignationNotFound
		}
		return nil, fmt.Errorf("find designation: %w", err)
	}
	return designation, nil
}

func (s *designationService) Create(ctx context.Context, input CreateDesignationInput) (*model.Designation, error) {
	if input.DepartmentID != nil {
		if _, err := s.departmentRepo.FindByID(ctx, *input.DepartmentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrDepartmentNotFound
			}
			return nil, fmt.Errorf("find department: %w", err)
		}
	}

	if err := s.checkNameFree(ctx, input.Name, input.DepartmentID, 0); err != nil {
		return nil, err
	}

	designation := &model.Designation{
		Name:         input.Name,
		Description:  input.Description,
		DepartmentID: input.DepartmentID,
	}

	if err := s.designationRepo.Create(ctx, designation); err != nil {
		return nil, fmt.Errorf("create designation: %w", err)
	}
	return designation, nil
}

func (s *designationService) Update(ctx context.Context, id uint, input UpdateDesignationInput) (*model.Designation, error) {
	designation, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	name := designation.Name
	if input.Name != nil {
		name = *input.Name
	}
	departmentID := designation.DepartmentID
	if input.DepartmentID != nil {
		if _, err := s.departmentRepo.FindByID(ctx, *input.DepartmentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrDepartmentNotFound
			}
			return nil, fmt.Errorf("find department: %w", err)
		}
		departmentID = input.DepartmentID
	}

	if err := s.checkNameFree(ctx, name, departmentID, id); err != nil {
		return nil, err
	}

	designation.Name = name
	designation.DepartmentID = departmentID
	if input.Description != nil {
		designation.Description = *input.Description
	}

	if err := s.designationRepo.Update(ctx, designation); err != nil {
		return nil, fmt.Errorf("update designation: %w", err)
	}
	return designation, nil
}

// Delete refuses while employees still hold the designation.
func (s *designationService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	count, err := s.designationRepo.CountEmployees(ctx, id)
	if err != nil {
		return fmt.Errorf("count employees: %w", err)
	}
	if count > 0 {
		return apperrors.ErrDesignationInUse
	}

	if err := s.designationRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete designation: %w", err)
	}
	return nil
}

func (s *designationService) checkNameFree(ctx context.Context, name string, departmentID *uint, exceptID uint) error {
	existing, err := s.designationRepo.FindByNameAndDepartment(ctx, name, departmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("check name: %w", err)
	}
	if existing.ID != exceptID {
		return apperrors.ErrDesignationTaken
	}
	return nil
}
