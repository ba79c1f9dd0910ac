package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"hrms/internal/model"
)

// PayrollFilter narrows payroll queries. Nil fields are ignored. Month and
// Year only apply together.
type PayrollFilter struct {
	Month        *int
	Year         *int
	UserID       *uint
	DepartmentID *uint
}

// PayrollTotals aggregates one year of payroll records.
type PayrollTotals struct {
	TotalBasicSalary decimal.Decimal `json:"totalBasicSalary"`
	TotalAllowances  decimal.Decimal `json:"totalAllowances"`
	TotalDeductions  decimal.Decimal `json:"totalDeductions"`
	TotalBonus       decimal.Decimal `json:"totalBonus"`
	TotalOvertime    decimal.Decimal `json:"totalOvertime"`
	TotalNetSalary   decimal.Decimal `json:"totalNetSalary"`
	TotalRecords     int64           `json:"totalRecords"`
}

// PayrollRepository defines persistence operations for payroll records.
type PayrollRepository interface {
	CreateBatch(ctx context.Context, records []model.Payroll) error
	Update(ctx context.Context, payroll *model.Payroll) error
	FindByID(ctx context.Context, id uint) (*model.Payroll, error)
	FindByUserAndPeriod(ctx context.Context, userID uint, month, year int) (*model.Payroll, error)
	List(ctx context.Context, filter PayrollFilter) ([]model.Payroll, error)
	SumsByYear(ctx context.Context, year int) (*PayrollTotals, error)
}

type payrollRepository struct {
	db *gorm.DB
}

// NewPayrollRepository builds a GORM-backed repository.
func NewPayrollRepository(db *gorm.DB) PayrollRepository {
	return &payrollRepository{db: db}
}

func (r *payrollRepository) CreateBatch(ctx context.Context, records []model.Payroll) error {
	if len(records) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(records, 100).Error
}

func (r *payrollRepository) Update(ctx context.Context, payroll *model.Payroll) error {
	return r.db.WithContext(ctx).Save(payroll).Error
}

func (r *payrollRepository) FindByID(ctx context.Context, id uint) (*model.Payroll, error) {
	var payroll model.Payroll
	if err := r.db.WithContext(ctx).First(&payroll, id).Error; err != nil {
		return nil, err
	}
	return &payroll, nil
}

func (r *payrollRepository) FindByUserAndPeriod(ctx context.Context, userID uint, month, year int) (*model.Payroll, error) {
	var payroll model.Payroll
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND month = ? AND year = ?", userID, month, year).
		First(&payroll).Error; err != nil {
		return nil, err
	}
	return &payroll, nil
}

func (r *payrollRepository) List(ctx context.Context, filter PayrollFilter) ([]model.Payroll, error) {
	query := r.db.WithContext(ctx).Model(&model.Payroll{}).
		Preload("User").
		Preload("User.Department").
		Preload("User.Designation")

	if filter.Month != nil && filter.Year != nil {
		query = query.Where("month = ? AND year = ?", *filter.Month, *filter.Year)
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.DepartmentID != nil {
		query = query.Joins("JOIN users ON users.id = payrolls.user_id").
			Where("users.department_id = ?", *filter.DepartmentID)
	}

	var records []model.Payroll
	if err := query.Order("year DESC, month DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *payrollRepository) SumsByYear(ctx context.Context, year int) (*PayrollTotals, error) {
	var totals PayrollTotals
	if err := r.db.WithContext(ctx).Model(&model.Payroll{}).
		Select(`COALESCE(SUM(basic_salary), 0) AS total_basic_salary,
			COALESCE(SUM(allowances), 0) AS total_allowances,
			COALESCE(SUM(deductions), 0) AS total_deductions,
			COALESCE(SUM(bonus), 0) AS total_bonus,
			COALESCE(SUM(overtime), 0) AS total_overtime,
			COALESCE(SUM(net_salary), 0) AS total_net_salary,
			COUNT(id) AS total_records`).
		Where("year = ?", year).
		Scan(&totals).Error; err != nil {
		return nil, err
	}
	return &totals, nil
}
