package installment

import (
	"strings"
	"time"
)

// Status of a single installment relative to today.
type Status string

const (
	StatusPaid    Status = "paid"
	StatusPending Status = "pending"
)

// PurchaseStatus of a consolidated purchase.
type PurchaseStatus string

const (
	PurchaseActive  PurchaseStatus = "active"
	PurchaseSettled PurchaseStatus = "settled"
)

// IsPaid reports whether the installment's due date is strictly before today.
// An installment due today is still pending.
func (i Installment) IsPaid(today time.Time) bool {
	return i.DueDate.Before(today)
}

// Classify returns the status of inst on today.
func Classify(inst Installment, today time.Time) Status {
	if inst.IsPaid(today) {
		return StatusPaid
	}
	return StatusPending
}

// Overview is one purchase rebuilt from its installments.
type Overview struct {
	TransactionID         uint           `json:"transaction_id"`
	CardName              string         `json:"card_name"`
	Category              string         `json:"category"`
	Description           string         `json:"description"`
	PurchaseDate          time.Time      `json:"purchase_date"`
	InstallmentCount      int            `json:"installment_count"`
	InstallmentValue      float64        `json:"installment_value"`
	InstallmentsPaid      int            `json:"installments_paid"`
	InstallmentsRemaining int            `json:"installments_remaining"`
	NextDue               *time.Time     `json:"next_due"`
	LastDue               time.Time      `json:"last_due"`
	TotalValue            float64        `json:"total_value"`
	RemainingValue        float64        `json:"remaining_value"`
	Status                PurchaseStatus `json:"status"`
}

// Consolidate groups installments by source transaction, keeping the order in
// which each transaction is first seen, and derives one Overview per group.
func Consolidate(installments []Installment, today time.Time) []Overview {
	index := make(map[uint]int)
	var groups [][]Installment
	for _, inst := range installments {
		pos, ok := index[inst.TransactionID]
		if !ok {
			pos = len(groups)
			index[inst.TransactionID] = pos
			groups = append(groups, nil)
		}
		groups[pos] = append(groups[pos], inst)
	}

	out := make([]Overview, 0, len(groups))
	for _, g := range groups {
		out = append(out, overviewOf(g, today))
	}
	return out
}

func overviewOf(group []Installment, today time.Time) Overview {
	head := group[0]
	count := head.Count
	if count < 1 {
		count = 1
	}

	paid := 0
	var nextDue *time.Time
	lastDue := head.DueDate
	for _, inst := range group {
		if inst.IsPaid(today) {
			paid++
		} else if nextDue == nil || inst.DueDate.Before(*nextDue) {
			due := inst.DueDate
			nextDue = &due
		}
		if inst.DueDate.After(lastDue) {
			lastDue = inst.DueDate
		}
	}

	remaining := count - paid
	if remaining == 0 {
		nextDue = nil
	}
	remainingValue := float64(remaining) * head.Value
	if remainingValue < 0 {
		remainingValue = 0
	}

	status := PurchaseActive
	// The count and the last due date must agree; they only diverge when the
	// due-date schedule is wrong.
	if remaining == 0 && nextDue == nil && lastDue.Before(today) {
		status = PurchaseSettled
	}

	return Overview{
		TransactionID:         head.TransactionID,
		CardName:              head.CardName,
		Category:              head.Category,
		Description:           head.Description,
		PurchaseDate:          head.PurchaseDate,
		InstallmentCount:      count,
		InstallmentValue:      head.Value,
		InstallmentsPaid:      paid,
		InstallmentsRemaining: remaining,
		NextDue:               nextDue,
		LastDue:               lastDue,
		TotalValue:            float64(count) * head.Value,
		RemainingValue:        remainingValue,
		Status:                status,
	}
}

// SettledInstallments returns the installments of purchases that are fully
// settled on today, in input order.
func SettledInstallments(installments []Installment, today time.Time) []Installment {
	settled := make(map[uint]bool)
	for _, ov := range Consolidate(installments, today) {
		if ov.Status == PurchaseSettled {
			settled[ov.TransactionID] = true
		}
	}

	var out []Installment
	for _, inst := range installments {
		if settled[inst.TransactionID] {
			out = append(out, inst)
		}
	}
	return out
}

// StatusFilter selects overviews by PurchaseStatus. The zero value and
// StatusAll keep everything.
type StatusFilter string

const (
	StatusAll     StatusFilter = "all"
	StatusActive  StatusFilter = "active"
	StatusSettled StatusFilter = "settled"
)

// Filter narrows purchases down for display. Empty fields match anything.
type Filter struct {
	CardName string
	Category string
	Year     int
	Query    string
	Status   StatusFilter
}

func (f Filter) matches(cardName, category, description string, purchase time.Time) bool {
	if f.CardName != "" && cardName != f.CardName {
		return false
	}
	if f.Category != "" && category != f.Category {
		return false
	}
	if f.Year != 0 && purchase.Year() != f.Year {
		return false
	}
	if f.Query != "" && !strings.Contains(strings.ToLower(description), strings.ToLower(f.Query)) {
		return false
	}
	return true
}

// MatchInstallment applies every field except Status.
func (f Filter) MatchInstallment(inst Installment) bool {
	return f.matches(inst.CardName, inst.Category, inst.Description, inst.PurchaseDate)
}

// MatchOverview applies every field.
func (f Filter) MatchOverview(ov Overview) bool {
	switch f.Status {
	case StatusActive:
		if ov.Status != PurchaseActive {
			return false
		}
	case StatusSettled:
		if ov.Status != PurchaseSettled {
			return false
		}
	}
	return f.matches(ov.CardName, ov.Category, ov.Description, ov.PurchaseDate)
}

// FilterOverviews returns the overviews matching f.
func FilterOverviews(overviews []Overview, f Filter) []Overview {
	out := make([]Overview, 0, len(overviews))
	for _, ov := range overviews {
		if f.MatchOverview(ov) {
			out = append(out, ov)
		}
	}
	return out
}

// FilterInstallments returns the installments matching f, ignoring Status.
func FilterInstallments(installments []Installment, f Filter) []Installment {
	out := make([]Installment, 0, len(installments))
	for _, inst := range installments {
		if f.MatchInstallment(inst) {
			out = append(out, inst)
		}
	}
	return out
}
