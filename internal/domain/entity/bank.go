package entity

import "github.com/shopspring/decimal"

// Bank is a payout bank with its flat transfer fee, charged on top of
// every BANK_ACCOUNT advance dispersed through it.
type Bank struct {
	ID          int64           `gorm:"primaryKey"`
	Name        string          `gorm:"not null;uniqueIndex"`
	TransferFee decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
}

type BankAccount struct {
	ID            int64  `gorm:"primaryKey"`
	BankID        int64  `gorm:"not null;index"`
	AccountNumber string `gorm:"not null"`
	AccountType   string `gorm:"not null"`

	Bank Bank `gorm:"foreignKey:BankID;references:ID"`
}

// CryptoNetwork is a payout network (e.g. Polygon) with its flat
// network fee, charged on top of every WALLET advance.
type CryptoNetwork struct {
	ID         int64           `gorm:"primaryKey"`
	Name       string          `gorm:"not null;uniqueIndex"`
	NetworkFee decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
}

type Wallet struct {
	ID        int64  `gorm:"primaryKey"`
	Address   string `gorm:"not null"`
	NetworkID int64  `gorm:"not null;index"`

	Network CryptoNetwork `gorm:"foreignKey:NetworkID;references:ID"`
}
