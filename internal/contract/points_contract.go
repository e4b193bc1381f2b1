package contract

// PointTransactionRequest applies one ledger operation. Value uses
// min=0 rather than required: MODIFICATION with value 0 is a legal
// "reset the balance" operation.
type PointTransactionRequest struct {
	Type       string `json:"type" validate:"required,oneof=TRANSFER REWARD CONSUMPTION MODIFICATION"`
	Value      int    `json:"value" validate:"min=0"`
	SenderID   *int64 `json:"sender_id"`
	ReceiverID *int64 `json:"receiver_id"`
	CompanyID  int64  `json:"company_id" validate:"required"`
}

type PointTransactionResponse struct {
	ID         int64  `json:"id"`
	Type       string `json:"type"`
	Value      int    `json:"value"`
	SenderID   *int64 `json:"sender_id,omitempty"`
	ReceiverID *int64 `json:"receiver_id,omitempty"`
	CompanyID  int64  `json:"company_id"`
	CreatedAt  string `json:"created_at"`
}

type CompanyPointsResponse struct {
	CompanyID         int64  `json:"company_id"`
	CurrentBudget     int64  `json:"current_budget"`
	CirculatingPoints int64  `json:"circulating_points"`
	SpentPoints       int64  `json:"spent_points"`
	UpdatedAt         string `json:"updated_at"`
}
