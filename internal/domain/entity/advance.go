package entity

import "github.com/shopspring/decimal"

type AdvanceType string

const (
	AdvancePayroll AdvanceType = "PAYROLL"
	AdvancePremium AdvanceType = "PREMIUM"
)

type PaymentMethod string

const (
	PaymentBankAccount PaymentMethod = "BANK_ACCOUNT"
	PaymentWallet      PaymentMethod = "WALLET"
)

type AdvanceStatus string

const (
	AdvanceRequested AdvanceStatus = "REQUESTED"
	AdvanceApproved  AdvanceStatus = "APPROVED"
	AdvancePaid      AdvanceStatus = "PAID"
	AdvanceDenied    AdvanceStatus = "DENIED"
	AdvanceCancelled AdvanceStatus = "CANCELLED"
)

// IsTerminal reports whether no further transition is allowed from s.
func (s AdvanceStatus) IsTerminal() bool {
	return s == AdvancePaid || s == AdvanceDenied || s == AdvanceCancelled
}

type AdvanceActor string

const (
	ActorEmployee AdvanceActor = "EMPLOYEE"
	ActorAdmin    AdvanceActor = "ADMIN"
)

// Advance is a cash-advance request. TotalAmount is the requested
// amount plus all tax rows, and is the figure withheld from payroll.
type Advance struct {
	ID       int64       `gorm:"primaryKey"`
	PublicID string      `gorm:"not null;uniqueIndex"`
	Type     AdvanceType `gorm:"not null;default:PAYROLL"`

	EmployeeID int64 `gorm:"not null;index"`
	CompanyID  int64 `gorm:"not null;index"`

	RequestedAmount decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PaymentMethod   PaymentMethod   `gorm:"not null"`
	Status          AdvanceStatus   `gorm:"not null;default:REQUESTED;index"`

	RequestReasonID          int64  `gorm:"not null"`
	RequestReasonDescription string `gorm:"not null;default:''"`

	CreatedAt int64 `gorm:"not null"`
	UpdatedAt int64 `gorm:"not null;autoUpdateTime:false"`

	// Relations
	Employee Employee         `gorm:"foreignKey:EmployeeID;references:ID"`
	Reason   RequestReason    `gorm:"foreignKey:RequestReasonID;references:ID"`
	Taxes    []AdvanceTax     `gorm:"foreignKey:AdvanceID;references:ID"`
	History  []AdvanceHistory `gorm:"foreignKey:AdvanceID;references:ID"`
}

// AdvanceTax is one fee line of an advance. Position preserves the
// order the fees were computed in; display order matters to the user.
type AdvanceTax struct {
	ID          int64           `gorm:"primaryKey"`
	AdvanceID   int64           `gorm:"not null;index"`
	Position    int             `gorm:"not null"`
	Name        string          `gorm:"not null"`
	Value       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Description string          `gorm:"not null;default:''"`
}

// AdvanceHistory records one status transition. Append-only.
type AdvanceHistory struct {
	ID        int64         `gorm:"primaryKey"`
	AdvanceID int64         `gorm:"not null;index"`
	ToStatus  AdvanceStatus `gorm:"not null"`
	Actor     AdvanceActor  `gorm:"not null"`
	CreatedAt int64         `gorm:"not null"`
}

type RequestReason struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"not null;uniqueIndex"`
}
