// Package installment turns credit-card purchases into their monthly
// installments and derives the views built on top of them: per-purchase
// overviews, windowed sums and monthly totals.
//
// Everything here is a pure function of its inputs. "Today" is always passed
// in by the caller and every stage returns a new slice.
package installment

import (
	"time"

	"moneta/internal/clock"
	"moneta/internal/models"
)

const (
	// MinDueDay and MaxDueDay bound the statement due day. Capping at 28 keeps
	// every month able to hold the due date.
	MinDueDay = 1
	MaxDueDay = 28
)

// Installment is one scheduled payment of a purchase.
type Installment struct {
	TransactionID uint      `json:"transaction_id"`
	Number        int       `json:"installment_no"`
	Count         int       `json:"total_installments"`
	Value         float64   `json:"installment_value"`
	DueDate       time.Time `json:"due_date"`
	PurchaseDate  time.Time `json:"purchase_date"`
	Category      string    `json:"category"`
	CardName      string    `json:"card_name"`
	Description   string    `json:"description"`
}

// ValidDueDay reports whether day can be used as a statement due day.
func ValidDueDay(day int) bool {
	return day >= MinDueDay && day <= MaxDueDay
}

// ClampDueDay forces day into [MinDueDay, MaxDueDay].
func ClampDueDay(day int) int {
	if day < MinDueDay {
		return MinDueDay
	}
	if day > MaxDueDay {
		return MaxDueDay
	}
	return day
}

// FirstDueDate returns the due date of the first installment of a purchase
// made on purchase. Purchases made on or before the due day fall in the
// current month's statement; later ones roll over to the next month.
func FirstDueDate(purchase time.Time, dueDay int) time.Time {
	dueDay = ClampDueDay(dueDay)
	y, m, d := purchase.Date()
	if d > dueDay {
		m++
	}
	return clock.Date(y, m, dueDay)
}

// Expand emits the installments of every transaction, in input order and
// with Number running 1..Count. The value of each installment is the plain
// quotient amount/count; rounding remainders are not redistributed.
func Expand(transactions []models.Transaction, dueDay int) []Installment {
	var out []Installment
	for i := range transactions {
		out = append(out, ExpandOne(&transactions[i], dueDay)...)
	}
	return out
}

// ExpandOne expands a single transaction. A count below 1 is treated as 1.
func ExpandOne(tx *models.Transaction, dueDay int) []Installment {
	count := tx.Installments
	if count < 1 {
		count = 1
	}
	value := tx.Amount.InexactFloat64() / float64(count)
	purchase := clock.DateOf(tx.Date)
	first := FirstDueDate(purchase, dueDay)

	out := make([]Installment, 0, count)
	for k := 1; k <= count; k++ {
		out = append(out, Installment{
			TransactionID: tx.ID,
			Number:        k,
			Count:         count,
			Value:         value,
			DueDate:       first.AddDate(0, k-1, 0),
			PurchaseDate:  purchase,
			Category:      tx.Category,
			CardName:      tx.CardName,
			Description:   tx.Description,
		})
	}
	return out
}
