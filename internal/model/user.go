package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Role identifies what a user is allowed to do.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

// User represents an employee account. Admins are users too; the role field
// is the only distinction.
type User struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	Email        string          `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string          `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	FirstName    string          `json:"firstName" gorm:"size:100;not null"`
	LastName     string          `json:"lastName" gorm:"size:100;not null"`
	Role         Role            `json:"role" gorm:"type:varchar(20);not null;default:'employee';index"`
	IsActive     bool            `json:"isActive" gorm:"default:true;index"`
	BasicSalary  decimal.Decimal `json:"basicSalary" gorm:"type:decimal(12,2);not null;default:0"`
	DateJoined   time.Time       `json:"dateJoined"`

	DepartmentID  *uint `json:"departmentId" gorm:"index"`
	DesignationID *uint `json:"designationId" gorm:"index"`

	// Optional profile fields
	Phone            *string    `json:"phone" gorm:"size:30"`
	Address          *string    `json:"address" gorm:"size:500"`
	NationalID       *string    `json:"nationalId" gorm:"size:50"`
	EmergencyContact *string    `json:"emergencyContact" gorm:"size:100"`
	BloodGroup       *string    `json:"bloodGroup" gorm:"size:10"`
	Avatar           *string    `json:"avatar" gorm:"size:500"`
	DateOfBirth      *time.Time `json:"dateOfBirth"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relations
	Department  *Department  `json:"department,omitempty" gorm:"foreignKey:DepartmentID"`
	Designation *Designation `json:"designation,omitempty" gorm:"foreignKey:DesignationID"`
}
