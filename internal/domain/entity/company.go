package entity

import "github.com/shopspring/decimal"

type CompanyStatus string

const (
	CompanyStatusActive   CompanyStatus = "ACTIVE"
	CompanyStatusInactive CompanyStatus = "INACTIVE"
)

// Company is the tenant boundary. Every employee, benefit and advance
// request belongs to exactly one company.
type Company struct {
	ID     int64         `gorm:"primaryKey"`
	Name   string        `gorm:"not null"`
	Status CompanyStatus `gorm:"not null;default:ACTIVE"`

	// DispersionRate is the percentage service fee applied to every
	// advance request (e.g. 2.5 means 2.5% of the requested amount).
	DispersionRate decimal.Decimal `gorm:"type:decimal(6,3);not null;default:0"`

	// LastRequestDay is the last day of the month on which employees
	// may still request an advance for the current payroll cycle.
	LastRequestDay int `gorm:"not null;default:25"`

	// PaymentDays holds the payroll days of the month, space separated
	// (e.g. "15 30").
	PaymentDays string `gorm:"not null;default:''"`

	CreatedAt int64 `gorm:"not null"`
	UpdatedAt int64 `gorm:"not null;autoUpdateTime:false"`
}

// CompanyPoints is the one-per-company points aggregate.
//
// CirculatingPoints and CurrentBudget are never reported negative: any
// mutation that would drive them below zero is clamped to 0 instead of
// being rejected.
type CompanyPoints struct {
	ID        int64 `gorm:"primaryKey"`
	CompanyID int64 `gorm:"not null;uniqueIndex"`

	// CurrentBudget is the cumulative number of points ever issued.
	CurrentBudget int64 `gorm:"not null;default:0"`

	// CirculatingPoints is points issued minus points spent.
	CirculatingPoints int64 `gorm:"not null;default:0"`

	// SpentPoints is the cumulative consumption.
	SpentPoints int64 `gorm:"not null;default:0"`

	UpdatedAt int64 `gorm:"not null;autoUpdateTime:false"`
}
