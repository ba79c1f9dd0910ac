package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payroll is one salary record per employee per (month, year).
// NetSalary is always derived: basic + allowances + bonus + overtime - deductions.
type Payroll struct {
	ID     uint `json:"id" gorm:"primaryKey"`
	UserID uint `json:"userId" gorm:"not null;uniqueIndex:idx_payroll_user_period"`
	Month  int  `json:"month" gorm:"not null;uniqueIndex:idx_payroll_user_period"`
	Year   int  `json:"year" gorm:"not null;uniqueIndex:idx_payroll_user_period"`

	BasicSalary decimal.Decimal `json:"basicSalary" gorm:"type:decimal(12,2);not null"`
	Allowances  decimal.Decimal `json:"allowances" gorm:"type:decimal(12,2);not null;default:0"`
	Deductions  decimal.Decimal `json:"deductions" gorm:"type:decimal(12,2);not null;default:0"`
	Bonus       decimal.Decimal `json:"bonus" gorm:"type:decimal(12,2);not null;default:0"`
	Overtime    decimal.Decimal `json:"overtime" gorm:"type:decimal(12,2);not null;default:0"`
	NetSalary   decimal.Decimal `json:"netSalary" gorm:"type:decimal(12,2);not null"`
	Notes       string          `json:"notes" gorm:"size:1000"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relations
	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// ComputeNet recomputes the derived net salary from the current components.
func (p *Payroll) ComputeNet() {
	p.NetSalary = p.BasicSalary.Add(p.Allowances).Add(p.Bonus).Add(p.Overtime).Sub(p.Deductions)
}
