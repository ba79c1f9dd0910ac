package model

import "time"

// LeaveType classifies a leave request.
type LeaveType string

const (
	LeaveTypeAnnual    LeaveType = "annual"
	LeaveTypeSick      LeaveType = "sick"
	LeaveTypeEmergency LeaveType = "emergency"
	LeaveTypeUnpaid    LeaveType = "unpaid"
)

// LeaveStatus is the state of a leave request. pending moves exactly once to
// approved or rejected; both are terminal.
type LeaveStatus string

const (
	LeaveStatusPending  LeaveStatus = "pending"
	LeaveStatusApproved LeaveStatus = "approved"
	LeaveStatusRejected LeaveStatus = "rejected"
)

// Leave is an inclusive [StartDate, EndDate] request for time off.
type Leave struct {
	ID        uint        `json:"id" gorm:"primaryKey"`
	UserID    uint        `json:"userId" gorm:"not null;index"`
	LeaveType LeaveType   `json:"leaveType" gorm:"type:varchar(20);not null"`
	StartDate time.Time   `json:"startDate" gorm:"type:date;not null;index"`
	EndDate   time.Time   `json:"endDate" gorm:"type:date;not null;index"`
	Reason    string      `json:"reason" gorm:"size:1000"`
	Status    LeaveStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	AppliedAt time.Time   `json:"appliedAt" gorm:"not null"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relations
	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
