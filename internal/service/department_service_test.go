package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "hrms/internal/errors"
	"hrms/internal/model"
)

// MockDepartmentRepository is a mock implementation of DepartmentRepository.
type MockDepartmentRepository struct {
	mock.Mock
}

func (m *MockDepartmentRepository) Create(ctx context.Context, department *model.Department) error {
	args := m.Called(ctx, department)
	return args.Error(0)
}

func (m *MockDepartmentRepository) Update(ctx context.Context, department *model.Department) error {
	args := m.Called(ctx, department)
	return args.Error(0)
}

func (m *MockDepartmentRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDepartmentRepository) FindByID(ctx context.Context, id uint) (*model.Department, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Department), args.Error(1)
}

func (m *MockDepartmentRepository) FindByName(ctx context.Context, name string) (*model.Department, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Department), args.Error(1)
}

func (m *MockDepartmentRepository) FindByManager(ctx context.Context, managerID uint) (*model.Department, error) {
	args := m.Called(ctx, managerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Department), args.Error(1)
}

func (m *MockDepartmentRepository) List(ctx context.Context) ([]model.Department, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Department), args.Error(1)
}

func (m *MockDepartmentRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDepartmentRepository) CountEmployees(ctx context.Context, id uint) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDepartmentRepository) CountDesignations(ctx context.Context, id uint) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func TestDepartmentService_Create(t *testing.T) {
	t.Run("successful creation", func(t *testing.T) {
		mockDept := new(MockDepartmentRepository)
		mockDept.On("FindByName", mock.Anything, "Engineering").Return(nil, gorm.ErrRecordNotFound)
		mockDept.On("Create", mock.Anything, mock.AnythingOfType("*model.Department")).Return(nil)

		service := NewDepartmentService(mockDept, new(MockUserRepository), nil)

		department, err := service.Create(context.Background(), CreateDepartmentInput{Name: "Engineering"})
		assert.NoError(t, err)
		assert.Equal(t, "Engineering", department.Name)
		mockDept.AssertExpectations(t)
	})

	t.Run("name already taken", func(t *testing.T) {
		mockDept := new(MockDepartmentRepository)
		mockDept.On("FindByName", mock.Anything, "Engineering").
			Return(&model.Department{ID: 1, Name: "Engineering"}, nil)

		service := NewDepartmentService(mockDept, new(MockUserRepository), nil)

		_, err := service.Create(context.Background(), CreateDepartmentInput{Name: "Engineering"})
		assert.Equal(t, apperrors.ErrDepartmentNameTaken, err)
	})

	t.Run("manager already runs another department", func(t *testing.T) {
		mockDept := new(MockDepartmentRepository)
		mockUser := new(MockUserRepository)
		managerID := uint(5)

		mockDept.On("FindByName", mock.Anything, "Finance").Return(nil, gorm.ErrRecordNotFound)
		mockUser.On("FindByID", mock.Anything, managerID).
			Return(testUser(model.RoleEmployee, "password123", true), nil)
		mockDept.On("FindByManager", mock.Anything, managerID).
			Return(&model.Department{ID: 7, Name: "Engineering", ManagerID: &managerID}, nil)

		service := NewDepartmentService(mockDept, mockUser, nil)

		_, err := service.Create(context.Background(), CreateDepartmentInput{
			Name:      "Finance",
			ManagerID: &managerID,
		})
		assert.Equal(t, apperrors.ErrManagerAssigned, err)
	})

	t.Run("unknown manager", func(t *testing.T) {
		mockDept := new(MockDepartmentRepository)
		mockUser := new(MockUserRepository)
		managerID := uint(99)

		mockDept.On("FindByName", mock.Anything, "Finance").Return(nil, gorm.ErrRecordNotFound)
		mockUser.On("FindByID", mock.Anything, managerID).Return(nil, gorm.ErrRecordNotFound)

		service := NewDepartmentService(mockDept, mockUser, nil)

		_, err := service.Create(context.Background(), CreateDepartmentInput{
			Name:      "Finance",
			ManagerID: &managerID,
		})
		assert.Equal(t, apperrors.ErrManagerNotFound, err)
	})
}

func TestDepartmentService_Update_KeepsOwnManager(t *testing.T) {
	mockDept := new(MockDepartmentRepository)
	mockUser := new(MockUserRepository)
	managerID := uint(5)

	// Re-assigning the same manager to the same department is not a conflict.
	mockDept.On("FindByID", mock.Anything, uint(7)).
		Return(&model.Department{ID: 7, Name: "Engineering"}, nil)
	mockUser.On("FindByID", mock.Anything, managerID).
		Return(testUser(model.RoleEmployee, "password123", true), nil)
	mockDept.On("FindByManager", mock.Anything, managerID).
		Return(&model.Department{ID: 7, Name: "Engineering", ManagerID: &managerID}, nil)
	mockDept.On("Update", mock.Anything, mock.AnythingOfType("*model.Department")).Return(nil)

	service := NewDepartmentService(mockDept, mockUser, nil)

	department, err := service.Update(context.Background(), 7, UpdateDepartmentInput{ManagerID: &managerID})
	assert.NoError(t, err)
	assert.Equal(t, &managerID, department.ManagerID)
	mockDept.AssertExpectations(t)
}

func TestDepartmentService_Delete(t *testing.T) {
	t.Run("refuses while employees remain", func(t *testing.T) {
		mockDept := new(MockDepartmentRepository)
		mockDept.On("FindByID", mock.Anything, uint(1)).
			Return(&model.Department{ID: 1, Name: "Engineering"}, nil)
		mockDept.On("CountEmployees", mock.Anything, uint(1)).Return(int64(3), nil)
		mockDept.On("CountDesignations", mock.Anything, uint(1)).Return(int64(0), nil)

		service := NewDepartmentService(mockDept, new(MockUserRepository), nil)

		err := service.Delete(context.Background(), 1)
		assert.Equal(t, apperrors.ErrDepartmentNotEmpty, err)
		mockDept.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("refuses while designations remain", func(t *testing.T) {
		mockDept := new(MockDepartmentRepository)
		mockDept.On("FindByID", mock.Anything, uint(1)).
			Return(&model.Department{ID: 1, Name: "Engineering"}, nil)
		mockDept.On("CountEmployees", mock.Anything, uint(1)).Return(int64(0), nil)
		mockDept.On("CountDesignations", mock.Anything, uint(1)).Return(int64(2), nil)

		service := NewDepartmentService(mockDept, new(MockUserRepository), nil)

		err := service.Delete(context.Background(), 1)
		assert.Equal(t, apperrors.ErrDepartmentNotEmpty, err)
	})

	t.Run("deletes empty department", func(t *testing.T) {
		mockDept := new(MockDepartmentRepository)
		mockDept.On("FindByID", mock.Anything, uint(1)).
			Return(&model.Department{ID: 1, Name: "Engineering"}, nil)
		mockDept.On("CountEmployees", mock.Anything, uint(1)).Return(int64(0), nil)
		mockDept.On("CountDesignations", mock.Anything, uint(1)).Return(int64(0), nil)
		mockDept.On("Delete", mock.Anything, uint(1)).Return(nil)

		service := NewDepartmentService(mockDept, new(MockUserRepository), nil)

		err := service.Delete(context.Background(), 1)
		assert.NoError(t, err)
		mockDept.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mockDept := new(MockDepartmentRepository)
		mockDept.On("FindByID", mock.Anything, uint(9)).Return(nil, gorm.ErrRecordNotFound)

		service := NewDepartmentService(mockDept, new(MockUserRepository), nil)

		err := service.Delete(context.Background(), 9)
		assert.Equal(t, apperrors.ErrDepartmentNotFound, err)
	})
}

func TestDepartmentService_List_FillsEmployeeCounts(t *testing.T) {
	mockDept := new(MockDepartmentRepository)
	mockDept.On("List", mock.Anything).Return([]model.Department{
		{ID: 1, Name: "Engineering"},
		{ID: 2, Name: "Finance"},
	}, nil)
	mockDept.On("CountEmployees", mock.Anything, uint(1)).Return(int64(12), nil)
	mockDept.On("CountEmployees", mock.Anything, uint(2)).Return(int64(4), nil)

	service := NewDepartmentService(mockDept, new(MockUserRepository), nil)

	departments, err := service.List(context.Background())
	assert.NoError(t, err)
	assert.Len(t, departments, 2)
	assert.Equal(t, int64(12), departments[0].EmployeeCount)
	assert.Equal(t, int64(4), departments[1].EmployeeCount)
}
