package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"hrms/internal/model"
)

// LeaveFilter narrows leave queries. Nil fields are ignored. The date range
// matches requests whose start or end falls inside [From, To].
type LeaveFilter struct {
	Status *model.LeaveStatus
	UserID *uint
	From   *time.Time
	To     *time.Time
}

// LeaveRepository defines persistence operations for leave requests.
type LeaveRepository interface {
	Create(ctx context.Context, leave *model.Leave) error
	Update(ctx context.Context, leave *model.Leave) error
	FindByID(ctx context.Context, id uint) (*model.Leave, error)
	List(ctx context.Context, filter LeaveFilter) ([]model.Leave, error)
	ListRecent(ctx context.Context, limit int) ([]model.Leave, error)
	FindOverlapping(ctx context.Context, userID uint, start, end time.Time) (*model.Leave, error)
	CountByStatus(ctx context.Context, year int) (map[model.LeaveStatus]int64, error)
	CountDistinctTypes(ctx context.Context) (int64, error)
}

type leaveRepository struct {
	db *gorm.DB
}

// NewLeaveRepository builds a GORM-backed repository.
func NewLeaveRepository(db *gorm.DB) LeaveRepository {
	return &leaveRepository{db: db}
}

func (r *leaveRepository) Create(ctx context.Context, leave *model.Leave) error {
	return r.db.WithContext(ctx).Create(leave).Error
}

func (r *leaveRepository) Update(ctx context.Context, leave *model.Leave) error {
	return r.db.WithContext(ctx).Save(leave).Error
}

func (r *leaveRepository) FindByID(ctx context.Context, id uint) (*model.Leave, error) {
	var leave model.Leave
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("User.Department").
		First(&leave, id).Error; err != nil {
		return nil, err
	}
	return &leave, nil
}

func (r *leaveRepository) List(ctx context.Context, filter LeaveFilter) ([]model.Leave, error) {
	query := r.db.WithContext(ctx).Model(&model.Leave{}).
		Preload("User").
		Preload("User.Department")

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.From != nil && filter.To != nil {
		query = query.Where("(start_date BETWEEN ? AND ?) OR (end_date BETWEEN ? AND ?)",
			*filter.From, *filter.To, *filter.From, *filter.To)
	}

	var leaves []model.Leave
	if err := query.Order("applied_at DESC").Find(&leaves).Error; err != nil {
		return nil, err
	}
	return leaves, nil
}

func (r *leaveRepository) ListRecent(ctx context.Context, limit int) ([]model.Leave, error) {
	var leaves []model.Leave
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("User.Department").
		Order("applied_at DESC").
		Limit(limit).
		Find(&leaves).Error; err != nil {
		return nil, err
	}
	return leaves, nil
}

// FindOverlapping returns a pending or approved request of the user whose
// inclusive [start_date, end_date] range intersects [start, end].
func (r *leaveRepository) FindOverlapping(ctx context.Context, userID uint, start, end time.Time) (*model.Leave, error) {
	var leave model.Leave
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("status IN ?", []model.LeaveStatus{model.LeaveStatusPending, model.LeaveStatusApproved}).
		Where("start_date <= ? AND end_date >= ?", end, start).
		First(&leave).Error; err != nil {
		return nil, err
	}
	return &leave, nil
}

func (r *leaveRepository) CountByStatus(ctx context.Context, year int) (map[model.LeaveStatus]int64, error) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, time.December, 31, 23, 59, 59, 0, time.UTC)

	var rows []struct {
		Status model.LeaveStatus
		Count  int64
	}
	if err := r.db.WithContext(ctx).Model(&model.Leave{}).
		Select("status, COUNT(*) AS count").
		Where("applied_at BETWEEN ? AND ?", from, to).
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[model.LeaveStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *leaveRepository) CountDistinctTypes(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Leave{}).
		Distinct("leave_type").
		Count(&count).Error
	return count, err
}
