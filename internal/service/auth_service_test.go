package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"hrms/internal/auth"
	apperrors "hrms/internal/errors"
	"hrms/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByIDWithRelations(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) ListActive(ctx context.Context, ids []uint) ([]model.User, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) CountActive(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func testUser(role model.Role, password string, active bool) *model.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), 10)
	return &model.User{
		ID:           1,
		Email:        "test@example.com",
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     active,
	}
}

func TestAuthService_Login(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		password      string
		declaredRole  model.Role
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:         "successful login",
			email:        "test@example.com",
			password:     "password123",
			declaredRole: model.RoleAdmin,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "test@example.com").
					Return(testUser(model.RoleAdmin, "password123", true), nil)
			},
			expectedError: nil,
		},
		{
			name:         "unknown email",
			email:        "notfound@example.com",
			password:     "password123",
			declaredRole: model.RoleAdmin,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "notfound@example.com").
					Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:         "correct password but wrong declared role",
			email:        "test@example.com",
			password:     "password123",
			declaredRole: model.RoleAdmin,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "test@example.com").
					Return(testUser(model.RoleEmployee, "password123", true), nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:         "inactive account",
			email:        "test@example.com",
			password:     "password123",
			declaredRole: model.RoleAdmin,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "test@example.com").
					Return(testUser(model.RoleAdmin, "password123", false), nil)
			},
			expectedError: apperrors.ErrAccountInactive,
		},
		{
			name:         "wrong password",
			email:        "test@example.com",
			password:     "wrong-password",
			declaredRole: model.RoleAdmin,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "test@example.com").
					Return(testUser(model.RoleAdmin, "password123", true), nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			jwtService := auth.NewJWTService("test-access-secret", "test-refresh-secret")
			service := NewAuthService(mockRepo, jwtService)

			accessToken, refreshToken, user, err := service.Login(context.Background(), tt.email, tt.password, tt.declaredRole)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Empty(t, accessToken)
				assert.Empty(t, refreshToken)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, accessToken)
				assert.NotEmpty(t, refreshToken)
				assert.NotNil(t, user)
				assert.Equal(t, tt.email, user.Email)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Refresh(t *testing.T) {
	jwtService := auth.NewJWTService("test-access-secret", "test-refresh-secret")

	validRefresh, err := jwtService.GenerateRefreshToken(1, "test@example.com", "admin")
	assert.NoError(t, err)

	expiredClaims := &auth.Claims{
		UserID: 1,
		Email:  "test@example.com",
		Role:   "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	expiredRefresh, err := jwt.NewWithClaims(jwt.SigningMethodHS256, expiredClaims).
		SignedString([]byte("test-refresh-secret"))
	assert.NoError(t, err)

	tests := []struct {
		name          string
		refreshToken  string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:         "successful refresh",
			refreshToken: validRefresh,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, uint(1)).
					Return(testUser(model.RoleAdmin, "password123", true), nil)
			},
			expectedError: nil,
		},
		{
			name:          "expired refresh token",
			refreshToken:  expiredRefresh,
			setupMock:     func(m *MockUserRepository) {},
			expectedError: apperrors.ErrRefreshTokenExpired,
		},
		{
			name:          "garbage token",
			refreshToken:  "not-a-token",
			setupMock:     func(m *MockUserRepository) {},
			expectedError: apperrors.ErrInvalidRefreshToken,
		},
		{
			name:         "account deleted since issue",
			refreshToken: validRefresh,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, uint(1)).
					Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrInvalidRefreshToken,
		},
		{
			name:         "account deactivated since issue",
			refreshToken: validRefresh,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, uint(1)).
					Return(testUser(model.RoleAdmin, "password123", false), nil)
			},
			expectedError: apperrors.ErrInvalidRefreshToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service := NewAuthService(mockRepo, jwtService)
			accessToken, err := service.Refresh(context.Background(), tt.refreshToken)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Empty(t, accessToken)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, accessToken)

				// The new access token must verify against the access secret.
				claims, err := auth.NewJWTService("test-access-secret", "test-refresh-secret").
					VerifyAccessToken(accessToken)
				assert.NoError(t, err)
				assert.Equal(t, uint(1), claims.UserID)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}
