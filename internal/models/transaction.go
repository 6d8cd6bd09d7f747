package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeIncome     TransactionType = "income"
	TransactionTypeExpense    TransactionType = "expense"
	TransactionTypeInvestment TransactionType = "investment"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionTypeIncome, TransactionTypeExpense, TransactionTypeInvestment:
		return true
	}
	return false
}

// PaymentMethod represents how a transaction was paid
type PaymentMethod string

const (
	PaymentMethodAccount         PaymentMethod = "account"
	PaymentMethodCreditCard      PaymentMethod = "credit_card"
	PaymentMethodCash            PaymentMethod = "cash"
	PaymentMethodInstantTransfer PaymentMethod = "instant_transfer"
)

// Valid reports whether m is a known payment method.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodAccount, PaymentMethodCreditCard, PaymentMethodCash, PaymentMethodInstantTransfer:
		return true
	}
	return false
}

// Transaction is a recorded income, expense or investment.
//
// Amount is the full value of the transaction, exact to the cent, never the
// per-installment value. Installments is 1 for lump payments and only
// meaningful, together with CardName, when PaymentMethod is credit_card.
type Transaction struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	UserID        string          `gorm:"type:uuid;not null;index" json:"user_id"`
	Type          TransactionType `gorm:"not null;index" json:"type"`
	Category      string          `gorm:"not null" json:"category"`
	Date          time.Time       `gorm:"type:date;not null;index" json:"date"`
	Amount        decimal.Decimal `gorm:"type:numeric(15,2);not null" json:"amount"`
	PaymentMethod PaymentMethod   `gorm:"not null;default:'account'" json:"payment_method"`
	CardName      string          `json:"card_name,omitempty"`
	Installments  int             `gorm:"not null;default:1" json:"installments"`
	Description   string          `json:"description"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// IsCardExpense reports whether the transaction feeds the installment engine.
func (t *Transaction) IsCardExpense() bool {
	return t.Type == TransactionTypeExpense && t.PaymentMethod == PaymentMethodCreditCard
}
