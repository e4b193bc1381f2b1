package contract

const MaxBenefitImageBytes = 5 * 1024 * 1024

var ValidBenefitImageTypes = []string{"png", "jpg", "jpeg", "webp"}

type BenefitRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=80"`
	Description string `json:"description" validate:"omitempty,max=2000"`

	// Global benefits (visible to all tenants) have no company.
	CompanyID *int64 `json:"company_id"`
}

type UpdateBenefitRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=2,max=80"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

type BenefitResponse struct {
	ID          int64  `json:"id"`
	CompanyID   *int64 `json:"company_id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ImageKey    string `json:"image_key,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}
