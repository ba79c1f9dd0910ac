package model

import "time"

// AttendanceStatus represents the status of an attendance record.
type AttendanceStatus string

const (
	AttendanceStatusPresent AttendanceStatus = "present"
	AttendanceStatusAbsent  AttendanceStatus = "absent"
	AttendanceStatusLeave   AttendanceStatus = "leave"
	AttendanceStatusHalfDay AttendanceStatus = "half_day"
)

// Attendance is one record per employee per calendar date. The composite
// unique index is the race guard for concurrent writes: duplicate inserts
// are skipped, never merged.
type Attendance struct {
	ID       uint             `json:"id" gorm:"primaryKey"`
	UserID   uint             `json:"userId" gorm:"not null;uniqueIndex:idx_attendance_user_date"`
	Date     time.Time        `json:"date" gorm:"type:date;not null;uniqueIndex:idx_attendance_user_date"`
	CheckIn  *time.Time       `json:"checkIn"`
	CheckOut *time.Time       `json:"checkOut"`
	Status   AttendanceStatus `json:"status" gorm:"type:varchar(20);not null;default:'present';index"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relations
	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
