package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"hrms/internal/cache"
	apperrors "hrms/internal/errors"
	"hrms/internal/model"
	"hrms/internal/repository"
)

// Fixed percentage rules applied by the payroll generator.
var (
	allowanceRate = decimal.NewFromFloat(0.10)
	deductionRate = decimal.NewFromFloat(0.05)
)

// GeneratePayrollInput targets one (month, year) period, optionally limited
// to specific employees.
type GeneratePayrollInput struct {
	Month   int
	Year    int
	UserIDs []uint
}

// UpdatePayrollInput carries a partial payroll update. Nil fields keep their
// stored value; net salary is recomputed from the merged set.
type UpdatePayrollInput struct {
	BasicSalary *decimal.Decimal
	Allowances  *decimal.Decimal
	Deductions  *decimal.Decimal
	Bonus       *decimal.Decimal
	Overtime    *decimal.Decimal
	Notes       *string
}

// PayrollService derives salary records from basic salaries.
type PayrollService interface {
	List(ctx context.Context, filter repository.PayrollFilter) ([]model.Payroll, error)
	Generate(ctx context.Context, input GeneratePayrollInput) (int, error)
	Update(ctx context.Context, id uint, input UpdatePayrollInput) (*model.Payroll, error)
	Stats(ctx context.Context, year int) (*repository.PayrollTotals, error)
}

type payrollService struct {
	payrollRepo repository.PayrollRepository
	userRepo    repository.UserRepository
	cache       *cache.Client
}

// NewPayrollService creates a new payroll service.
func NewPayrollService(payrollRepo repository.PayrollRepository, userRepo repository.UserRepository, cache *cache.Client) PayrollService {
	return &payrollService{
		payrollRepo: payrollRepo,
		userRepo:    userRepo,
		cache:       cache,
	}
}

func (s *payrollService) List(ctx context.Context, filter repository.PayrollFilter) ([]model.Payroll, error) {
	return s.payrollRepo.List(ctx, filter)
}

// Generate creates one payroll record per targeted active employee for the
// period, applying 10% allowances and 5% deductions on the basic salary.
// Employees that already have a record for the period are silently skipped;
// generation is idempotent per (employee, month, year).
func (s *payrollService) Generate(ctx context.Context, input GeneratePayrollInput) (int, error) {
	if input.Month < 1 || input.Month > 12 || input.Year == 0 {
		return 0, apperrors.ErrPayrollPeriodRequired
	}

	users, err := s.userRepo.ListActive(ctx, input.UserIDs)
	if err != nil {
		return 0, fmt.Errorf("list active users: %w", err)
	}

	var staged []model.Payroll
	for _, user := range users {
		_, err := s.payrollRepo.FindByUserAndPeriod(ctx, user.ID, input.Month, input.Year)
		if err == nil {
			continue // already generated for this period
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("check payroll for user %d: %w", user.ID, err)
		}

		record := model.Payroll{
			UserID:      user.ID,
			Month:       input.Month,
			Year:        input.Year,
			BasicSalary: user.BasicSalary,
			Allowances:  user.BasicSalary.Mul(allowanceRate),
			Deductions:  user.BasicSalary.Mul(deductionRate),
			Bonus:       decimal.Zero,
			Overtime:    decimal.Zero,
		}
		record.ComputeNet()
		staged = append(staged, record)
	}

	if len(staged) == 0 {
		return 0, apperrors.ErrNoEligibleEmployees
	}

	if err := s.payrollRepo.CreateBatch(ctx, staged); err != nil {
		return 0, fmt.Errorf("create payroll records: %w", err)
	}

	_ = s.cache.Delete(ctx, payrollStatsKey(input.Year), dashboardCacheKey)
	return len(staged), nil
}

// Update merges the provided fields into the stored record and recomputes the
// net salary from the result.
func (s *payrollService) Update(ctx context.Context, id uint, input UpdatePayrollInput) (*model.Payroll, error) {
	payroll, err := s.payrollRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPayrollNotFound
		}
		return nil, fmt.Errorf("find payroll: %w", err)
	}

	if input.BasicSalary != nil {
		payroll.BasicSalary = *input.BasicSalary
	}
	if input.Allowances != nil {
		payroll.Allowances = *input.Allowances
	}
	if input.Deductions != nil {
		payroll.Deductions = *input.Deductions
	}
	if input.Bonus != nil {
		payroll.Bonus = *input.Bonus
	}
	if input.Overtime != nil {
		payroll.Overtime = *input.Overtime
	}
	if input.Notes != nil {
		payroll.Notes = *input.Notes
	}
	payroll.ComputeNet()

	if err := s.payrollRepo.Update(ctx, payroll); err != nil {
		return nil, fmt.Errorf("update payroll: %w", err)
	}

	_ = s.cache.Delete(ctx, payrollStatsKey(payroll.Year), dashboardCacheKey)
	return payroll, nil
}

func (s *payrollService) Stats(ctx context.Context, year int) (*repository.PayrollTotals, error) {
	totals, err := s.payrollRepo.SumsByYear(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("sum payroll: %w", err)
	}
	return totals, nil
}
