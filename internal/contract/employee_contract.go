package contract

import "github.com/shopspring/decimal"

type CreateEmployeeRequest struct {
	CompanyID int64  `json:"company_id" validate:"required"`
	FirstName string `json:"first_name" validate:"required,min=2,max=80"`
	LastName  string `json:"last_name" validate:"required,min=2,max=80"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8,max=64,hasspecial,hasdigit,hasupper,haslower"`
}

// UpdateEmployeeRequest is the admin PATCH surface: status, permission
// bits and advance ceilings. All fields optional.
type UpdateEmployeeRequest struct {
	Status                       *string          `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
	Perms                        *int64           `json:"perms" validate:"omitempty,min=0"`
	AdvanceMaxAmount             *decimal.Decimal `json:"advance_max_amount"`
	AdvanceAvailableAmount       *decimal.Decimal `json:"advance_available_amount"`
	AdvanceCryptoAvailableAmount *decimal.Decimal `json:"advance_crypto_available_amount"`
}

type EmployeeResponse struct {
	ID                           int64           `json:"id"`
	CompanyID                    int64           `json:"company_id"`
	FirstName                    string          `json:"first_name"`
	LastName                     string          `json:"last_name"`
	Email                        string          `json:"email"`
	Status                       string          `json:"status"`
	Perms                        int64           `json:"permissions"`
	AvailablePoints              int             `json:"available_points"`
	AdvanceAvailableAmount       decimal.Decimal `json:"advance_available_amount"`
	AdvanceMaxAmount             decimal.Decimal `json:"advance_max_amount"`
	AdvanceCryptoAvailableAmount decimal.Decimal `json:"advance_crypto_available_amount"`
	CreatedAt                    string          `json:"created_at"`
	UpdatedAt                    string          `json:"updated_at"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=64"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	IDToken     string `json:"id_token"`
}

type ConfirmSignupRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,min=1,max=8"`
}

type ResendConfirmRequest struct {
	Email string `json:"email" validate:"required,email"`
}
