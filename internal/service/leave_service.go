package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"hrms/internal/cache"
	apperrors "hrms/internal/errors"
	"hrms/internal/model"
	"hrms/internal/repository"
)

// SubmitLeaveInput carries a new leave request.
type SubmitLeaveInput struct {
	UserID    uint
	LeaveType model.LeaveType
	StartDate time.Time
	EndDate   time.Time
	Reason    string
}

// LeaveStats summarizes one year of leave requests.
type LeaveStats struct {
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
	Total    int64 `json:"total"`
}

// LeaveService owns the leave request lifecycle: pending moves exactly once
// to approved or rejected, and approval materializes attendance records.
type LeaveService interface {
	List(ctx context.Context, filter repository.LeaveFilter) ([]model.Leave, error)
	Submit(ctx context.Context, input SubmitLeaveInput) (*model.Leave, error)
	Decide(ctx context.Context, id uint, decision model.LeaveStatus) (*model.Leave, error)
	Stats(ctx context.Context, year int) (*LeaveStats, error)
}

type leaveService struct {
	leaveRepo      repository.LeaveRepository
	attendanceRepo repository.AttendanceRepository
	userRepo       repository.UserRepository
	cache          *cache.Client
}

// NewLeaveService creates a new leave service.
func NewLeaveService(
	leaveRepo repository.LeaveRepository,
	attendanceRepo repository.AttendanceRepository,
	userRepo repository.UserRepository,
	cache *cache.Client,
) LeaveService {
	return &leaveService{
		leaveRepo:      leaveRepo,
		attendanceRepo: attendanceRepo,
		userRepo:       userRepo,
		cache:          cache,
	}
}

func (s *leaveService) List(ctx context.Context, filter repository.LeaveFilter) ([]model.Leave, error) {
	return s.leaveRepo.List(ctx, filter)
}

// Submit validates and stores a new pending request.
func (s *leaveService) Submit(ctx context.Context, input SubmitLeaveInput) (*model.Leave, error) {
	if _, err := s.userRepo.FindByID(ctx, input.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	start := dateOnly(input.StartDate)
	end := dateOnly(input.EndDate)

	if end.Before(start) {
		return nil, apperrors.ErrInvalidDateRange
	}
	if start.Before(dateOnly(time.Now())) {
		return nil, apperrors.ErrPastStartDate
	}

	// Inclusive-range intersection against the user's pending and approved
	// requests. Read-then-write with no lock; see the attendance unique key
	// for the race guard on the materialization side.
	if _, err := s.leaveRepo.FindOverlapping(ctx, input.UserID, start, end); err == nil {
		return nil, apperrors.ErrLeaveOverlap
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check overlap: %w", err)
	}

	leave := &model.Leave{
		UserID:    input.UserID,
		LeaveType: input.LeaveType,
		StartDate: start,
		EndDate:   end,
		Reason:    input.Reason,
		Status:    model.LeaveStatusPending,
		AppliedAt: time.Now(),
	}

	if err := s.leaveRepo.Create(ctx, leave); err != nil {
		return nil, fmt.Errorf("create leave: %w", err)
	}

	s.invalidateStats(ctx, leave.AppliedAt.Year())
	return leave, nil
}

// Decide moves a pending request to approved or rejected. Both outcomes are
// terminal. Approval triggers attendance materialization as a best-effort
// side effect: a materialization failure is logged, not propagated, because
// the status change has already been committed and a retry is safe against
// the (user, date) unique key.
func (s *leaveService) Decide(ctx context.Context, id uint, decision model.LeaveStatus) (*model.Leave, error) {
	if decision != model.LeaveStatusApproved && decision != model.LeaveStatusRejected {
		return nil, apperrors.ErrInvalidLeaveDecision
	}

	leave, err := s.leaveRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrLeaveNotFound
		}
		return nil, fmt.Errorf("find leave: %w", err)
	}

	if leave.Status != model.LeaveStatusPending {
		return nil, apperrors.ErrLeaveNotPending
	}

	leave.Status = decision
	if err := s.leaveRepo.Update(ctx, leave); err != nil {
		return nil, fmt.Errorf("update leave: %w", err)
	}

	if decision == model.LeaveStatusApproved {
		if err := s.materializeAttendance(ctx, leave); err != nil {
			log.Printf("materialize attendance for leave %d: %v", leave.ID, err)
		}
	}

	s.invalidateStats(ctx, leave.AppliedAt.Year())
	return leave, nil
}

func (s *leaveService) Stats(ctx context.Context, year int) (*LeaveStats, error) {
	key := leaveStatsKey(year)
	if data, _ := s.cache.Get(ctx, key); data != nil {
		var cached LeaveStats
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	counts, err := s.leaveRepo.CountByStatus(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("count leaves: %w", err)
	}

	stats := &LeaveStats{
		Pending:  counts[model.LeaveStatusPending],
		Approved: counts[model.LeaveStatusApproved],
		Rejected: counts[model.LeaveStatusRejected],
	}
	stats.Total = stats.Pending + stats.Approved + stats.Rejected

	if payload, err := json.Marshal(stats); err == nil {
		_ = s.cache.Set(ctx, key, payload, statsCacheTTL)
	}
	return stats, nil
}

// materializeAttendance writes one leave-status attendance record per working
// day of the approved span. Weekends are skipped, and so is any date that
// already has a record: approval is additive, never destructive.
func (s *leaveService) materializeAttendance(ctx context.Context, leave *model.Leave) error {
	var staged []model.Attendance

	for d := dateOnly(leave.StartDate); !d.After(dateOnly(leave.EndDate)); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}

		if _, err := s.attendanceRepo.FindByUserAndDate(ctx, leave.UserID, d); err == nil {
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("check attendance for %s: %w", d.Format("2006-01-02"), err)
		}

		staged = append(staged, model.Attendance{
			UserID: leave.UserID,
			Date:   d,
			Status: model.AttendanceStatusLeave,
		})
	}

	// Duplicate-skip insert: if another writer created a record between the
	// existence check and here, that record wins and ours is dropped.
	if err := s.attendanceRepo.CreateBatchSkipDuplicates(ctx, staged); err != nil {
		return fmt.Errorf("insert attendance: %w", err)
	}
	return nil
}

func (s *leaveService) invalidateStats(ctx context.Context, year int) {
	_ = s.cache.Delete(ctx, leaveStatsKey(year), dashboardCacheKey)
}

// dateOnly truncates a timestamp to its calendar date in UTC.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
