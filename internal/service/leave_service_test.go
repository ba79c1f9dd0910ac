package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "hrms/internal/errors"
	"hrms/internal/model"
	"hrms/internal/repository"
)

// MockLeaveRepository is a mock implementation of LeaveRepository.
type MockLeaveRepository struct {
	mock.Mock
}

func (m *MockLeaveRepository) Create(ctx context.Context, leave *model.Leave) error {
	args := m.Called(ctx, leave)
	return args.Error(0)
}

func (m *MockLeaveRepository) Update(ctx context.Context, leave *model.Leave) error {
	args := m.Called(ctx, leave)
	return args.Error(0)
}

func (m *MockLeaveRepository) FindByID(ctx context.Context, id uint) (*model.Leave, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Leave), args.Error(1)
}

func (m *MockLeaveRepository) List(ctx context.Context, filter repository.LeaveFilter) ([]model.Leave, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Leave), args.Error(1)
}

func (m *MockLeaveRepository) ListRecent(ctx context.Context, limit int) ([]model.Leave, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Leave), args.Error(1)
}

func (m *MockLeaveRepository) FindOverlapping(ctx context.Context, userID uint, start, end time.Time) (*model.Leave, error) {
	args := m.Called(ctx, userID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Leave), args.Error(1)
}

func (m *MockLeaveRepository) CountByStatus(ctx context.Context, year int) (map[model.LeaveStatus]int64, error) {
	args := m.Called(ctx, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[model.LeaveStatus]int64), args.Error(1)
}

func (m *MockLeaveRepository) CountDistinctTypes(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockAttendanceRepository is a mock implementation of AttendanceRepository.
type MockAttendanceRepository struct {
	mock.Mock
}

func (m *MockAttendanceRepository) Create(ctx context.Context, attendance *model.Attendance) error {
	args := m.Called(ctx, attendance)
	return args.Error(0)
}

func (m *MockAttendanceRepository) Update(ctx context.Context, attendance *model.Attendance) error {
	args := m.Called(ctx, attendance)
	return args.Error(0)
}

func (m *MockAttendanceRepository) FindByID(ctx context.Context, id uint) (*model.Attendance, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Attendance), args.Error(1)
}

func (m *MockAttendanceRepository) FindByUserAndDate(ctx context.Context, userID uint, date time.Time) (*model.Attendance, error) {
	args := m.Called(ctx, userID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Attendance), args.Error(1)
}

func (m *MockAttendanceRepository) List(ctx context.Context, filter repository.AttendanceFilter) ([]model.Attendance, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Attendance), args.Error(1)
}

func (m *MockAttendanceRepository) CreateBatchSkipDuplicates(ctx context.Context, records []model.Attendance) error {
	args := m.Called(ctx, records)
	return args.Error(0)
}

func (m *MockAttendanceRepository) CountByStatus(ctx context.Context, from, to time.Time) (map[model.AttendanceStatus]int64, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[model.AttendanceStatus]int64), args.Error(1)
}

func newLeaveServiceForTest(leaveRepo *MockLeaveRepository, attendanceRepo *MockAttendanceRepository, userRepo *MockUserRepository) LeaveService {
	return NewLeaveService(leaveRepo, attendanceRepo, userRepo, nil)
}

func futureDate(days int) time.Time {
	return dateOnly(time.Now().AddDate(0, 0, days))
}

func TestLeaveService_Submit(t *testing.T) {
	activeUser := testUser(model.RoleEmployee, "password123", true)

	tests := []struct {
		name          string
		input         SubmitLeaveInput
		setupMock     func(*MockLeaveRepository, *MockUserRepository)
		expectedError error
	}{
		{
			name: "successful submission",
			input: SubmitLeaveInput{
				UserID:    1,
				LeaveType: model.LeaveTypeAnnual,
				StartDate: futureDate(7),
				EndDate:   futureDate(9),
				Reason:    "family trip",
			},
			setupMock: func(mLeave *MockLeaveRepository, mUser *MockUserRepository) {
				mUser.On("FindByID", mock.Anything, uint(1)).Return(activeUser, nil)
				mLeave.On("FindOverlapping", mock.Anything, uint(1), futureDate(7), futureDate(9)).
					Return(nil, gorm.ErrRecordNotFound)
				mLeave.On("Create", mock.Anything, mock.AnythingOfType("*model.Leave")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name: "end before start",
			input: SubmitLeaveInput{
				UserID:    1,
				LeaveType: model.LeaveTypeAnnual,
				StartDate: futureDate(9),
				EndDate:   futureDate(7),
			},
			setupMock: func(mLeave *MockLeaveRepository, mUser *MockUserRepository) {
				mUser.On("FindByID", mock.Anything, uint(1)).Return(activeUser, nil)
			},
			expectedError: apperrors.ErrInvalidDateRange,
		},
		{
			name: "start date in the past",
			input: SubmitLeaveInput{
				UserID:    1,
				LeaveType: model.LeaveTypeSick,
				StartDate: futureDate(-2),
				EndDate:   futureDate(2),
			},
			setupMock: func(mLeave *MockLeaveRepository, mUser *MockUserRepository) {
				mUser.On("FindByID", mock.Anything, uint(1)).Return(activeUser, nil)
			},
			expectedError: apperrors.ErrPastStartDate,
		},
		{
			name: "overlapping request",
			input: SubmitLeaveInput{
				UserID:    1,
				LeaveType: model.LeaveTypeAnnual,
				StartDate: futureDate(7),
				EndDate:   futureDate(9),
			},
			setupMock: func(mLeave *MockLeaveRepository, mUser *MockUserRepository) {
				mUser.On("FindByID", mock.Anything, uint(1)).Return(activeUser, nil)
				mLeave.On("FindOverlapping", mock.Anything, uint(1), futureDate(7), futureDate(9)).
					Return(&model.Leave{ID: 5, Status: model.LeaveStatusApproved}, nil)
			},
			expectedError: apperrors.ErrLeaveOverlap,
		},
		{
			name: "unknown user",
			input: SubmitLeaveInput{
				UserID:    99,
				LeaveType: model.LeaveTypeAnnual,
				StartDate: futureDate(7),
				EndDate:   futureDate(9),
			},
			setupMock: func(mLeave *MockLeaveRepository, mUser *MockUserRepository) {
				mUser.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockLeave := new(MockLeaveRepository)
			mockAttendance := new(MockAttendanceRepository)
			mockUser := new(MockUserRepository)
			tt.setupMock(mockLeave, mockUser)

			service := newLeaveServiceForTest(mockLeave, mockAttendance, mockUser)
			leave, err := service.Submit(context.Background(), tt.input)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, leave)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, leave)
				assert.Equal(t, model.LeaveStatusPending, leave.Status)
				assert.False(t, leave.AppliedAt.IsZero())
			}

			mockLeave.AssertExpectations(t)
			mockUser.AssertExpectations(t)
		})
	}
}

func TestLeaveService_Decide_InvalidDecision(t *testing.T) {
	service := newLeaveServiceForTest(new(MockLeaveRepository), new(MockAttendanceRepository), new(MockUserRepository))

	leave, err := service.Decide(context.Background(), 1, model.LeaveStatusPending)
	assert.Equal(t, apperrors.ErrInvalidLeaveDecision, err)
	assert.Nil(t, leave)
}

func TestLeaveService_Decide_NotFound(t *testing.T) {
	mockLeave := new(MockLeaveRepository)
	mockLeave.On("FindByID", mock.Anything, uint(1)).Return(nil, gorm.ErrRecordNotFound)

	service := newLeaveServiceForTest(mockLeave, new(MockAttendanceRepository), new(MockUserRepository))

	_, err := service.Decide(context.Background(), 1, model.LeaveStatusApproved)
	assert.Equal(t, apperrors.ErrLeaveNotFound, err)
	mockLeave.AssertExpectations(t)
}

func TestLeaveService_Decide_AlreadyDecided(t *testing.T) {
	mockLeave := new(MockLeaveRepository)
	mockLeave.On("FindByID", mock.Anything, uint(1)).
		Return(&model.Leave{ID: 1, Status: model.LeaveStatusRejected}, nil)

	service := newLeaveServiceForTest(mockLeave, new(MockAttendanceRepository), new(MockUserRepository))

	_, err := service.Decide(context.Background(), 1, model.LeaveStatusApproved)
	assert.Equal(t, apperrors.ErrLeaveNotPending, err)
	mockLeave.AssertExpectations(t)
}

func TestLeaveService_Decide_Reject(t *testing.T) {
	mockLeave := new(MockLeaveRepository)
	mockAttendance := new(MockAttendanceRepository)
	mockLeave.On("FindByID", mock.Anything, uint(1)).
		Return(&model.Leave{ID: 1, UserID: 2, Status: model.LeaveStatusPending, AppliedAt: time.Now()}, nil)
	mockLeave.On("Update", mock.Anything, mock.AnythingOfType("*model.Leave")).Return(nil)

	service := newLeaveServiceForTest(mockLeave, mockAttendance, new(MockUserRepository))

	leave, err := service.Decide(context.Background(), 1, model.LeaveStatusRejected)
	assert.NoError(t, err)
	assert.Equal(t, model.LeaveStatusRejected, leave.Status)

	// Rejection never touches the attendance ledger.
	mockAttendance.AssertNotCalled(t, "CreateBatchSkipDuplicates", mock.Anything, mock.Anything)
	mockLeave.AssertExpectations(t)
}

func TestLeaveService_Decide_ApproveMaterializesWorkdays(t *testing.T) {
	// Monday 2025-03-10 through Sunday 2025-03-16: five workdays, two
	// weekend days that must be skipped.
	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC)
	wednesday := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)

	mockLeave := new(MockLeaveRepository)
	mockAttendance := new(MockAttendanceRepository)

	mockLeave.On("FindByID", mock.Anything, uint(1)).Return(&model.Leave{
		ID:        1,
		UserID:    2,
		Status:    model.LeaveStatusPending,
		StartDate: start,
		EndDate:   end,
		AppliedAt: time.Now(),
	}, nil)
	mockLeave.On("Update", mock.Anything, mock.AnythingOfType("*model.Leave")).Return(nil)

	// Wednesday already has a manual record; the other four workdays do not.
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		if d.Equal(wednesday) {
			mockAttendance.On("FindByUserAndDate", mock.Anything, uint(2), d).
				Return(&model.Attendance{ID: 9, UserID: 2, Date: d, Status: model.AttendanceStatusPresent}, nil)
			continue
		}
		mockAttendance.On("FindByUserAndDate", mock.Anything, uint(2), d).
			Return(nil, gorm.ErrRecordNotFound)
	}

	mockAttendance.On("CreateBatchSkipDuplicates", mock.Anything, mock.MatchedBy(func(records []model.Attendance) bool {
		if len(records) != 4 {
			return false
		}
		for _, record := range records {
			if record.Status != model.AttendanceStatusLeave || record.UserID != 2 {
				return false
			}
			if wd := record.Date.Weekday(); wd == time.Saturday || wd == time.Sunday {
				return false
			}
			if record.Date.Equal(wednesday) {
				return false
			}
		}
		return true
	})).Return(nil)

	service := newLeaveServiceForTest(mockLeave, mockAttendance, new(MockUserRepository))

	leave, err := service.Decide(context.Background(), 1, model.LeaveStatusApproved)
	assert.NoError(t, err)
	assert.Equal(t, model.LeaveStatusApproved, leave.Status)

	mockLeave.AssertExpectations(t)
	mockAttendance.AssertExpectations(t)
}

func TestLeaveService_Decide_ApproveSurvivesMaterializationFailure(t *testing.T) {
	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	mockLeave := new(MockLeaveRepository)
	mockAttendance := new(MockAttendanceRepository)

	mockLeave.On("FindByID", mock.Anything, uint(1)).Return(&model.Leave{
		ID:        1,
		UserID:    2,
		Status:    model.LeaveStatusPending,
		StartDate: start,
		EndDate:   start,
		AppliedAt: time.Now(),
	}, nil)
	mockLeave.On("Update", mock.Anything, mock.AnythingOfType("*model.Leave")).Return(nil)

	mockAttendance.On("FindByUserAndDate", mock.Anything, uint(2), start).
		Return(nil, gorm.ErrRecordNotFound)
	mockAttendance.On("CreateBatchSkipDuplicates", mock.Anything, mock.Anything).
		Return(errors.New("connection lost"))

	service := newLeaveServiceForTest(mockLeave, mockAttendance, new(MockUserRepository))

	// The decision is already committed; the ledger write is best-effort.
	leave, err := service.Decide(context.Background(), 1, model.LeaveStatusApproved)
	assert.NoError(t, err)
	assert.Equal(t, model.LeaveStatusApproved, leave.Status)
}

func TestLeaveService_Stats(t *testing.T) {
	mockLeave := new(MockLeaveRepository)
	mockLeave.On("CountByStatus", mock.Anything, 2025).Return(map[model.LeaveStatus]int64{
		model.LeaveStatusPending:  3,
		model.LeaveStatusApproved: 5,
		model.LeaveStatusRejected: 2,
	}, nil)

	service := newLeaveServiceForTest(mockLeave, new(MockAttendanceRepository), new(MockUserRepository))

	stats, err := service.Stats(context.Background(), 2025)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), stats.Pending)
	assert.Equal(t, int64(5), stats.Approved)
	assert.Equal(t, int64(2), stats.Rejected)
	assert.Equal(t, int64(10), stats.Total)
}
