package model

import "time"

// Department groups employees under an optional manager. A user can manage at
// most one department; that rule is enforced by the service, not the schema.
type Department struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Name        string  `json:"name" gorm:"uniqueIndex;size:255;not null"`
	Description string  `json:"description" gorm:"size:1000"`
	ManagerID   *uint   `json:"managerId" gorm:"index"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relations
	Manager *User  `json:"manager,omitempty" gorm:"foreignKey:ManagerID"`
	Users   []User `json:"users,omitempty" gorm:"foreignKey:DepartmentID"`

	// Filled by list queries, not stored.
	EmployeeCount int64 `json:"employeeCount" gorm:"-"`
}
