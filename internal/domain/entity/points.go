package entity

type TransactionType string

const (
	// TransactionTransfer mints points to a receiver on behalf of a
	// sender. The sender balance is NOT debited: points enter
	// circulation, they are not moved between employee balances.
	TransactionTransfer TransactionType = "TRANSFER"

	// TransactionReward mints points to a receiver with no sender.
	TransactionReward TransactionType = "REWARD"

	// TransactionConsumption burns points from a sender's balance.
	TransactionConsumption TransactionType = "CONSUMPTION"

	// TransactionModification sets a receiver's balance to an absolute
	// value; the company aggregate moves by the signed difference.
	TransactionModification TransactionType = "MODIFICATION"
)

// PointTransaction is an immutable ledger entry. Rows are append-only:
// one row is created per ledger operation, always inside the same
// database transaction as the balance mutation it records.
type PointTransaction struct {
	ID         int64           `gorm:"primaryKey"`
	Type       TransactionType `gorm:"not null;index"`
	Value      int             `gorm:"not null"`
	SenderID   *int64          `gorm:"index"`
	ReceiverID *int64          `gorm:"index"`
	CompanyID  int64           `gorm:"not null;index"`
	CreatedAt  int64           `gorm:"not null"`
}
