package entity

import "github.com/shopspring/decimal"

type EmployeeStatus string

const (
	EmployeeStatusActive   EmployeeStatus = "ACTIVE"
	EmployeeStatusInactive EmployeeStatus = "INACTIVE"
)

// Employee is a person belonging to exactly one company. Employees are
// created on onboarding and never hard-deleted; offboarding flips the
// status to INACTIVE.
type Employee struct {
	ID        int64  `gorm:"primaryKey"`
	SubUUID   string `gorm:"not null;index"`
	CompanyID int64  `gorm:"not null;index"`

	FirstName string         `gorm:"not null"`
	LastName  string         `gorm:"not null"`
	Email     string         `gorm:"not null;index"`
	Status    EmployeeStatus `gorm:"not null;default:ACTIVE"`

	Permissions Permission `gorm:"not null;type:bigint;default:0"`

	// AvailablePoints is the employee's spendable points balance,
	// mutated only by the points ledger.
	AvailablePoints int `gorm:"not null;default:0"`

	// Advance ceilings. AdvanceAvailableAmount is the fiat ceiling,
	// AdvanceCryptoAvailableAmount the crypto one. AdvanceMaxAmount is
	// the policy maximum the available amount is replenished back to.
	AdvanceAvailableAmount       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	AdvanceMaxAmount             decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	AdvanceCryptoAvailableAmount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	BankAccountID *int64
	WalletID      *int64

	CreatedAt int64 `gorm:"not null"`
	UpdatedAt int64 `gorm:"not null;autoUpdateTime:false"`

	// Relations
	Company     Company      `gorm:"foreignKey:CompanyID;references:ID"`
	BankAccount *BankAccount `gorm:"foreignKey:BankAccountID;references:ID"`
	Wallet      *Wallet      `gorm:"foreignKey:WalletID;references:ID"`
}

func (e *Employee) IsActive() bool {
	return e.Status == EmployeeStatusActive
}

// FullName joins first and last name for display and audit messages.
func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}
