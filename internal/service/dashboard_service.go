package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"hrms/internal/cache"
	"hrms/internal/model"
	"hrms/internal/repository"
)

// Cache keys shared by the stats surfaces. Writes that change the underlying
// counts delete these keys.
const (
	dashboardCacheKey = "stats:dashboard"
	statsCacheTTL     = 5 * time.Minute
)

func leaveStatsKey(year int) string {
	return fmt.Sprintf("stats:leaves:%d", year)
}

func payrollStatsKey(year int) string {
	return fmt.Sprintf("stats:payroll:%d", year)
}

// DashboardOverview counts the org-level entities.
type DashboardOverview struct {
	EmployeeCount   int64 `json:"employeeCount"`
	DepartmentCount int64 `json:"departmentCount"`
	LeaveTypeCount  int64 `json:"leaveTypeCount"`
}

// DashboardLeaveStats summarizes the current year's leave requests.
type DashboardLeaveStats struct {
	Applied  int64 `json:"applied"`
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}

// DashboardStats is the aggregate payload behind the landing page.
type DashboardStats struct {
	Overview            DashboardOverview   `json:"overview"`
	LeaveStats          DashboardLeaveStats `json:"leaveStats"`
	AttendanceStats     AttendanceStats     `json:"attendanceStats"`
	RecentLeaveRequests []model.Leave       `json:"recentLeaveRequests"`
}

// DashboardService aggregates grouping/counting queries for the dashboard.
type DashboardService interface {
	Stats(ctx context.Context) (*DashboardStats, error)
}

type dashboardService struct {
	userRepo       repository.UserRepository
	departmentRepo repository.DepartmentRepository
	leaveRepo      repository.LeaveRepository
	attendanceRepo repository.AttendanceRepository
	cache          *cache.Client
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(
	userRepo repository.UserRepository,
	departmentRepo repository.DepartmentRepository,
	leaveRepo repository.LeaveRepository,
	attendanceRepo repository.AttendanceRepository,
	cache *cache.Client,
) DashboardService {
	return &dashboardService{
		userRepo:       userRepo,
		departmentRepo: departmentRepo,
		leaveRepo:      leaveRepo,
		attendanceRepo: attendanceRepo,
		cache:          cache,
	}
}

// Stats builds the dashboard aggregate: current-year leave counts,
// current-month attendance counts, org totals, and the ten most recent
// leave requests. Results are cached briefly.
func (s *dashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	if data, _ := s.cache.Get(ctx, dashboardCacheKey); data != nil {
		var cached DashboardStats
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	now := time.Now()

	employeeCount, err := s.userRepo.CountActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("count employees: %w", err)
	}

	departmentCount, err := s.departmentRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count departments: %w", err)
	}

	leaveTypeCount, err := s.leaveRepo.CountDistinctTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("count leave types: %w", err)
	}

	leaveCounts, err := s.leaveRepo.CountByStatus(ctx, now.Year())
	if err != nil {
		return nil, fmt.Errorf("count leaves: %w", err)
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)
	attendanceCounts, err := s.attendanceRepo.CountByStatus(ctx, monthStart, monthEnd)
	if err != nil {
		return nil, fmt.Errorf("count attendance: %w", err)
	}

	recent, err := s.leaveRepo.ListRecent(ctx, 10)
	if err != nil {
		return nil, fmt.Errorf("list recent leaves: %w", err)
	}

	leaveStats := DashboardLeaveStats{
		Pending:  leaveCounts[model.LeaveStatusPending],
		Approved: leaveCounts[model.LeaveStatusApproved],
		Rejected: leaveCounts[model.LeaveStatusRejected],
	}
	leaveStats.Applied = leaveStats.Pending + leaveStats.Approved + leaveStats.Rejected

	stats := &DashboardStats{
		Overview: DashboardOverview{
			EmployeeCount:   employeeCount,
			DepartmentCount: departmentCount,
			LeaveTypeCount:  leaveTypeCount,
		},
		LeaveStats: leaveStats,
		AttendanceStats: AttendanceStats{
			Present: attendanceCounts[model.AttendanceStatusPresent],
			Absent:  attendanceCounts[model.AttendanceStatusAbsent],
			Leave:   attendanceCounts[model.AttendanceStatusLeave],
			HalfDay: attendanceCounts[model.AttendanceStatusHalfDay],
		},
		RecentLeaveRequests: recent,
	}

	if payload, err := json.Marshal(stats); err == nil {
		_ = s.cache.Set(ctx, dashboardCacheKey, payload, statsCacheTTL)
	}
	return stats, nil
}
