package services

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"moneta/internal/clock"
	apperrors "moneta/internal/errors"
	"moneta/internal/models"
	"moneta/internal/money"
)

const (
	historyMonths      = 6
	defaultRecentLimit = 20
	maxRecentLimit     = 200
)

// dashboardService computes the monthly overview.
type dashboardService struct {
	db    *gorm.DB
	clock clock.Clock
}

// NewDashboardService creates a new DashboardServicer.
func NewDashboardService(db *gorm.DB, clk clock.Clock) DashboardServicer {
	return &dashboardService{db: db, clock: clk}
}

// GetMonthlySummary totals the month containing ref (today when ref is zero)
// and the history of the months leading up to it.
func (s *dashboardService) GetMonthlySummary(userID string, ref time.Time) (*MonthlySummary, error) {
	if ref.IsZero() {
		ref = s.clock.Today()
	}
	first, last := clock.MonthRange(clock.DateOf(ref))
	summary := &MonthlySummary{
		Year:              first.Year(),
		Month:             int(first.Month()),
		ExpenseByCategory: []CategoryAmount{},
	}

	var count int64
	if err := s.db.Model(&models.Transaction{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	summary.HasData = count > 0

	historyStart := first.AddDate(0, -(historyMonths - 1), 0)
	var rows []models.Transaction
	if count > 0 {
		if err := s.db.Where("user_id = ? AND date >= ? AND date <= ?", userID, historyStart, last).
			Find(&rows).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	byCategory := make(map[string]decimal.Decimal)
	history := make([]typeTotals, historyMonths)
	var month typeTotals

	for _, tx := range rows {
		idx := monthsBetween(historyStart, tx.Date)
		if idx >= 0 && idx < historyMonths {
			history[idx].add(tx)
		}
		if tx.Date.Before(first) {
			continue
		}
		month.add(tx)
		if tx.Type == models.TransactionTypeExpense {
			byCategory[tx.Category] = byCategory[tx.Category].Add(tx.Amount)
		}
	}

	balance := month.income.Sub(month.expense).Sub(month.investment)
	summary.Income = money.Float(month.income)
	summary.Expense = money.Float(month.expense)
	summary.Investment = money.Float(month.investment)
	summary.Balance = money.Float(balance)
	summary.CommittedPct = money.Percent(month.expense.Add(month.investment), month.income)
	summary.ExpenseByCategory = categoryShares(byCategory, month.income)
	summary.History = make([]MonthTotals, historyMonths)
	for i, t := range history {
		m := historyStart.AddDate(0, i, 0)
		summary.History[i] = MonthTotals{
			Year:       m.Year(),
			Month:      int(m.Month()),
			Income:     money.Float(t.income),
			Expense:    money.Float(t.expense),
			Investment: money.Float(t.investment),
		}
	}

	return summary, nil
}

// GetRecentTransactions lists up to limit transactions ordered by type
// (income, investment, expense), then category, then newest first.
func (s *dashboardService) GetRecentTransactions(userID string, limit int) ([]models.Transaction, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}

	transactions := []models.Transaction{}
	if err := s.db.Where("user_id = ?", userID).
		Order("CASE type WHEN 'income' THEN 0 WHEN 'investment' THEN 1 ELSE 2 END").
		Order("category ASC").
		Order("date DESC, id DESC").
		Limit(limit).
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

// typeTotals accumulates exact per-type sums.
type typeTotals struct {
	income     decimal.Decimal
	expense    decimal.Decimal
	investment decimal.Decimal
}

func (t *typeTotals) add(tx models.Transaction) {
	switch tx.Type {
	case models.TransactionTypeIncome:
		t.income = t.income.Add(tx.Amount)
	case models.TransactionTypeExpense:
		t.expense = t.expense.Add(tx.Amount)
	case models.TransactionTypeInvestment:
		t.investment = t.investment.Add(tx.Amount)
	}
}

// monthsBetween counts calendar months from the month of a to the month of b.
func monthsBetween(a, b time.Time) int {
	return (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
}

// categoryShares sorts category totals by amount, largest first, and
// expresses each as a percentage of base. Ties keep alphabetical order.
func categoryShares(totals map[string]decimal.Decimal, base decimal.Decimal) []CategoryAmount {
	out := make([]CategoryAmount, 0, len(totals))
	for category, amount := range totals {
		out = append(out, CategoryAmount{
			Category:   category,
			Amount:     money.Float(amount),
			Percentage: money.Percent(amount, base),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount != out[j].Amount {
			return out[i].Amount > out[j].Amount
		}
		return out[i].Category < out[j].Category
	})
	return out
}
