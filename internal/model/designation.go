package model

import "time"

// Designation is a job title, optionally scoped to a department. The same
// title may exist in different departments.
type Designation struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Name         string `json:"name" gorm:"size:255;not null;uniqueIndex:idx_designation_name_department"`
	Description  string `json:"description" gorm:"size:1000"`
	DepartmentID *uint  `json:"departmentId" gorm:"uniqueIndex:idx_designation_name_department"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relations
	Department *Department `json:"department,omitempty" gorm:"foreignKey:DepartmentID"`
	Users      []User      `json:"users,omitempty" gorm:"foreignKey:DesignationID"`

	// Filled by list queries, not stored.
	EmployeeCount int64 `json:"employeeCount" gorm:"-"`
}
