package repository

import (
	"context"

	"gorm.io/gorm"

	"hrms/internal/model"
)

// DesignationRepository defines persistence operations for designations.
type DesignationRepository interface {
	Create(ctx context.Context, designation *model.Designation) error
	Update(ctx context.Context, designation *model.Designation) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Designation, error)
	FindByNameAndDepartment(ctx context.Context, name string, departmentID *uint) (*model.Designation, error)
	List(ctx context.Context) ([]model.Designation, error)
	CountEmployees(ctx context.Context, id uint) (int64, error)
}

type designationRepository struct {
	db *gorm.DB
}

// NewDesignationRepository builds a GORM-backed repository.
func NewDesignationRepository(db *gorm.DB) DesignationRepository {
	return &designationRepository{db: db}
}

func (r *designationRepository) Create(ctx context.Context, designation *model.Designation) error {
	return r.db.WithContext(ctx).Create(designation).Error
}

func (r *designationRepository) Update(ctx context.Context, designation *model.Designation) error {
	return r.db.WithContext(ctx).Save(designation).Error
}

func (r *designationRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Designation{}, id).Error
}

func (r *designationRepository) FindByID(ctx context.Context, id uint) (*model.Designation, error) {
	var designation model.Designation
	if err := r.db.WithContext(ctx).
		Preload("Department").
		Preload("Users").
		First(&designation, id).Error; err != nil {
		return nil, err
	}
	return &designation, nil
}

// FindByNameAndDepartment looks up a designation by its (name, department)
// pair. A nil department matches designations without one.
func (r *designationRepository) FindByNameAndDepartment(ctx context.Context, name string, departmentID *uint) (*model.Designation, error) {
	query := r.db.WithContext(ctx).Where("name = ?", name)
	if departmentID != nil {
		query = query.Where("department_id = ?", *departmentID)
	} else {
		query = query.Where("department_id IS NULL")
	}
	var designation model.Designation
	if err := query.First(&designation).Error; err != nil {
		return nil, err
	}
	return &designation, nil
}

func (r *designationRepository) List(ctx context.Context) ([]model.Designation, error) {
	var designations []model.Designation
	if err := r.db.WithContext(ctx).
		Preload("Department").
		Order("name ASC").
		Find(&designations).Error; err != nil {
		return nil, err
	}
	return designations, nil
}

func (r *designationRepository) CountEmployees(ctx context.Context, id uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).Where("designation_id = ?", id).Count(&count).Error
	return count, err
}
