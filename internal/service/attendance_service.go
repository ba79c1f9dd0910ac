package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"hrms/internal/cache"
	apperrors "hrms/internal/errors"
	"hrms/internal/model"
	"hrms/internal/repository"
)

// CreateAttendanceInput carries a manual attendance entry.
type CreateAttendanceInput struct {
	UserID   uint
	Date     time.Time
	CheckIn  *time.Time
	CheckOut *time.Time
	Status   model.AttendanceStatus
}

// UpdateAttendanceInput carries a partial update. Nil fields keep their
// stored value.
type UpdateAttendanceInput struct {
	CheckIn  *time.Time
	CheckOut *time.Time
	Status   *model.AttendanceStatus
}

// AttendanceStats counts one month of records by status.
type AttendanceStats struct {
	Present int64 `json:"present"`
	Absent  int64 `json:"absent"`
	Leave   int64 `json:"leave"`
	HalfDay int64 `json:"half_day"`
}

// AttendanceService owns the attendance ledger's explicit entry surface. The
// leave service writes into the same ledger on approval.
type AttendanceService interface {
	List(ctx context.Context, filter repository.AttendanceFilter) ([]model.Attendance, error)
	Create(ctx context.Context, input CreateAttendanceInput) (*model.Attendance, error)
	Update(ctx context.Context, id uint, input UpdateAttendanceInput) (*model.Attendance, error)
	MonthlyStats(ctx context.Context, month, year int) (*AttendanceStats, error)
}

type attendanceService struct {
	attendanceRepo repository.AttendanceRepository
	userRepo       repository.UserRepository
	cache          *cache.Client
}

// NewAttendanceService creates a new attendance service.
func NewAttendanceService(attendanceRepo repository.AttendanceRepository, userRepo repository.UserRepository, cache *cache.Client) AttendanceService {
	return &attendanceService{
		attendanceRepo: attendanceRepo,
		userRepo:       userRepo,
		cache:          cache,
	}
}

func (s *attendanceService) List(ctx context.Context, filter repository.AttendanceFilter) ([]model.Attendance, error) {
	return s.attendanceRepo.List(ctx, filter)
}

// Create records a manual entry. At most one record may exist per employee
// per calendar date.
func (s *attendanceService) Create(ctx context.Context, input CreateAttendanceInput) (*model.Attendance, error) {
	if _, err := s.userRepo.FindByID(ctx, input.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	date := dateOnly(input.Date)
	if _, err := s.attendanceRepo.FindByUserAndDate(ctx, input.UserID, date); err == nil {
		return nil, apperrors.ErrAttendanceExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check attendance: %w", err)
	}

	status := input.Status
	if status == "" {
		status = model.AttendanceStatusPresent
	}

	attendance := &model.Attendance{
		UserID:   input.UserID,
		Date:     date,
		CheckIn:  input.CheckIn,
		CheckOut: input.CheckOut,
		Status:   status,
	}

	if err := s.attendanceRepo.Create(ctx, attendance); err != nil {
		return nil, fmt.Errorf("create attendance: %w", err)
	}

	_ = s.cache.Delete(ctx, dashboardCacheKey)
	return attendance, nil
}

func (s *attendanceService) Update(ctx context.Context, id uint, input UpdateAttendanceInput) (*model.Attendance, error) {
	attendance, err := s.attendanceRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAttendanceNotFound
		}
		return nil, fmt.Errorf("find attendance: %w", err)
	}

	if input.CheckIn != nil {
		attendance.CheckIn = input.CheckIn
	}
	if input.CheckOut != nil {
		attendance.CheckOut = input.CheckOut
	}
	if input.Status != nil {
		attendance.Status = *input.Status
	}

	if err := s.attendanceRepo.Update(ctx, attendance); err != nil {
		return nil, fmt.Errorf("update attendance: %w", err)
	}

	_ = s.cache.Delete(ctx, dashboardCacheKey)
	return attendance, nil
}

func (s *attendanceService) MonthlyStats(ctx context.Context, month, year int) (*AttendanceStats, error) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)

	counts, err := s.attendanceRepo.CountByStatus(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("count attendance: %w", err)
	}

	return &AttendanceStats{
		Present: counts[model.AttendanceStatusPresent],
		Absent:  counts[model.AttendanceStatusAbsent],
		Leave:   counts[model.AttendanceStatusLeave],
		HalfDay: counts[model.AttendanceStatusHalfDay],
	}, nil
}
