package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hrms/internal/model"
)

// AttendanceFilter narrows attendance queries. Nil fields are ignored; the
// filter is translated into SQL at this boundary only.
type AttendanceFilter struct {
	From         *time.Time
	To           *time.Time
	UserID       *uint
	DepartmentID *uint
}

// AttendanceRepository defines persistence operations for attendance records.
type AttendanceRepository interface {
	Create(ctx context.Context, attendance *model.Attendance) error
	Update(ctx context.Context, attendance *model.Attendance) error
	FindByID(ctx context.Context, id uint) (*model.Attendance, error)
	FindByUserAndDate(ctx context.Context, userID uint, date time.Time) (*model.Attendance, error)
	List(ctx context.Context, filter AttendanceFilter) ([]model.Attendance, error)
	CreateBatchSkipDuplicates(ctx context.Context, records []model.Attendance) error
	CountByStatus(ctx context.Context, from, to time.Time) (map[model.AttendanceStatus]int64, error)
}

type attendanceRepository struct {
	db *gorm.DB
}

// NewAttendanceRepository builds a GORM-backed repository.
func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) Create(ctx context.Context, attendance *model.Attendance) error {
	return r.db.WithContext(ctx).Create(attendance).Error
}

func (r *attendanceRepository) Update(ctx context.Context, attendance *model.Attendance) error {
	return r.db.WithContext(ctx).Save(attendance).Error
}

func (r *attendanceRepository) FindByID(ctx context.Context, id uint) (*model.Attendance, error) {
	var attendance model.Attendance
	if err := r.db.WithContext(ctx).First(&attendance, id).Error; err != nil {
		return nil, err
	}
	return &attendance, nil
}

func (r *attendanceRepository) FindByUserAndDate(ctx context.Context, userID uint, date time.Time) (*model.Attendance, error) {
	var attendance model.Attendance
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		First(&attendance).Error; err != nil {
		return nil, err
	}
	return &attendance, nil
}

func (r *attendanceRepository) List(ctx context.Context, filter AttendanceFilter) ([]model.Attendance, error) {
	query := r.db.WithContext(ctx).Model(&model.Attendance{}).
		Preload("User").
		Preload("User.Department")

	if filter.From != nil && filter.To != nil {
		query = query.Where("date BETWEEN ? AND ?", *filter.From, *filter.To)
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.DepartmentID != nil {
		query = query.Joins("JOIN users ON users.id = attendances.user_id").
			Where("users.department_id = ?", *filter.DepartmentID)
	}

	var records []model.Attendance
	if err := query.Order("date DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// CreateBatchSkipDuplicates inserts records, silently dropping any that
// collide with the (user_id, date) unique key. This is the race guard for
// concurrent materialization and manual entry.
func (r *attendanceRepository) CreateBatchSkipDuplicates(ctx context.Context, records []model.Attendance) error {
	if len(records) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(records, 100).Error
}

func (r *attendanceRepository) CountByStatus(ctx context.Context, from, to time.Time) (map[model.AttendanceStatus]int64, error) {
	var rows []struct {
		Status model.AttendanceStatus
		Count  int64
	}
	if err := r.db.WithContext(ctx).Model(&model.Attendance{}).
		Select("status, COUNT(*) AS count").
		Where("date BETWEEN ? AND ?", from, to).
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[model.AttendanceStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
