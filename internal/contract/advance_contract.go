package contract

import (
	"github.com/shopspring/decimal"

	"adelanta/internal/domain/advance"
)

// AdvanceCalculationRequest is the advisory "how much would this cost"
// form. RequestedAmount positivity and the per-method ceiling are
// checked by the calculator, which owns those field errors.
type AdvanceCalculationRequest struct {
	RequestedAmount          decimal.Decimal `json:"requested_amount"`
	PaymentMethod            string          `json:"payment_method" validate:"required,oneof=BANK_ACCOUNT WALLET"`
	RequestReasonID          int64           `json:"request_reason_id" validate:"required"`
	RequestReasonDescription string          `json:"request_reason_description" validate:"omitempty,max=500"`
}

// AdvanceCreateRequest confirms a previously calculated request. The
// same fields are validated again at write time; the quote shown to
// the employee is advisory only.
type AdvanceCreateRequest struct {
	Type                     string          `json:"type" validate:"omitempty,oneof=PAYROLL PREMIUM"`
	RequestedAmount          decimal.Decimal `json:"requested_amount"`
	PaymentMethod            string          `json:"payment_method" validate:"required,oneof=BANK_ACCOUNT WALLET"`
	RequestReasonID          int64           `json:"request_reason_id" validate:"required"`
	RequestReasonDescription string          `json:"request_reason_description" validate:"omitempty,max=500"`
}

type AdvanceStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=APPROVED PAID DENIED CANCELLED"`
}

type AdvanceResponse struct {
	ID                       int64                    `json:"id"`
	PublicID                 string                   `json:"public_id"`
	Type                     string                   `json:"type"`
	EmployeeID               int64                    `json:"employee_id"`
	CompanyID                int64                    `json:"company_id"`
	RequestedAmount          decimal.Decimal          `json:"requested_amount"`
	TotalAmount              decimal.Decimal          `json:"total_amount"`
	PaymentMethod            string                   `json:"payment_method"`
	Status                   string                   `json:"status"`
	RequestReason            string                   `json:"request_reason,omitempty"`
	RequestReasonDescription string                   `json:"request_reason_description,omitempty"`
	Taxes                    []advance.TaxItem        `json:"taxes,omitempty"`
	History                  []AdvanceHistoryResponse `json:"history,omitempty"`
	CreatedAt                string                   `json:"created_at"`
	UpdatedAt                string                   `json:"updated_at"`
}

type AdvanceHistoryResponse struct {
	ToStatus  string `json:"to_status"`
	Actor     string `json:"actor"`
	CreatedAt string `json:"created_at"`
}

type RequestReasonResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
