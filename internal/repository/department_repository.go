package repository

import (
	"context"

	"gorm.io/gorm"

	"hrms/internal/model"
)

// DepartmentRepository defines persistence operations for departments.
type DepartmentRepository interface {
	Create(ctx context.Context, department *model.Department) error
	Update(ctx context.Context, department *model.Department) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Department, error)
	FindByName(ctx context.Context, name string) (*model.Department, error)
	FindByManager(ctx context.Context, managerID uint) (*model.Department, error)
	List(ctx context.Context) ([]model.Department, error)
	Count(ctx context.Context) (int64, error)
	CountEmployees(ctx context.Context, id uint) (int64, error)
	CountDesignations(ctx context.Context, id uint) (int64, error)
}

type departmentRepository struct {
	db *gorm.DB
}

// NewDepartmentRepository builds a GORM-backed repository.
func NewDepartmentRepository(db *gorm.DB) DepartmentRepository {
	return &departmentRepository{db: db}
}

func (r *departmentRepository) Create(ctx context.Context, department *model.Department) error {
	return r.db.WithContext(ctx).Create(department).Error
}

func (r *departmentRepository) Update(ctx context.Context, department *model.Department) error {
	return r.db.WithContext(ctx).Save(department).Error
}

func (r *departmentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Department{}, id).Error
}

func (r *departmentRepository) FindByID(ctx context.Context, id uint) (*model.Department, error) {
	var department model.Department
	if err := r.db.WithContext(ctx).
		Preload("Manager").
		Preload("Users").
		Preload("Users.Designation").
		First(&department, id).Error; err != nil {
		return nil, err
	}
	return &department, nil
}

func (r *departmentRepository) FindByName(ctx context.Context, name string) (*model.Department, error) {
	var department model.Department
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&department).Error; err != nil {
		return nil, err
	}
	return &department, nil
}

// FindByManager returns the department managed by the given user, if any.
func (r *departmentRepository) FindByManager(ctx context.Context, managerID uint) (*model.Department, error) {
	var department model.Department
	if err := r.db.WithContext(ctx).Where("manager_id = ?", managerID).First(&department).Error; err != nil {
		return nil, err
	}
	return &department, nil
}

func (r *departmentRepository) List(ctx context.Context) ([]model.Department, error) {
	var departments []model.Department
	if err := r.db.WithContext(ctx).
		Preload("Manager").
		Order("name ASC").
		Find(&departments).Error; err != nil {
		return nil, err
	}
	return departments, nil
}

func (r *departmentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Department{}).Count(&count).Error
	return count, err
}

func (r *departmentRepository) CountEmployees(ctx context.Context, id uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).Where("department_id = ?", id).Count(&count).Error
	return count, err
}

func (r *departmentRepository) CountDesignations(ctx context.Context, id uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Designation{}).Where("department_id = ?", id).Count(&count).Error
	return count, err
}
