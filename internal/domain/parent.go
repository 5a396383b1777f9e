package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Parent holds the prepaid wallet that pays for orders. WalletBalance is
// exact decimal and never goes negative. Version backs the optimistic lock
// on wallet updates.
type Parent struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Email         string          `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Name          string          `gorm:"not null;column:name" json:"name"`
	WalletBalance decimal.Decimal `gorm:"type:numeric(18,2);not null;column:wallet_balance" json:"wallet_balance"`
	Version       int             `gorm:"not null;default:0;column:version" json:"-"`
	Students      []Student       `gorm:"foreignKey:ParentID" json:"students,omitempty"`
	CreatedAt     time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"not null" json:"updated_at"`
}

func (Parent) TableName() string {
	return "parent"
}

// DebitWallet reduces the balance by amount. Pure, no I/O.
func (p *Parent) DebitWallet(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return NewValidationError(CodeInvalidAmount, "debit amount must be greater than zero")
	}
	if p.WalletBalance.LessThan(amount) {
		return NewValidationError(CodeInsufficientFunds, "insufficient wallet balance")
	}
	p.WalletBalance = p.WalletBalance.Sub(amount)
	return nil
}
