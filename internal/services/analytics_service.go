package services

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"moneta/internal/clock"
	"moneta/internal/models"
	"moneta/internal/money"
)

// cardPaymentCategory marks expenses that pay a card bill from the account.
// They count as card spending even though they are not card purchases.
const cardPaymentCategory = "pagamento de cartão"

// analyticsService derives reports from the user's full transaction list.
type analyticsService struct {
	transactions TransactionServicer
	clock        clock.Clock
}

// NewAnalyticsService creates a new AnalyticsServicer.
func NewAnalyticsService(transactions TransactionServicer, clk clock.Clock) AnalyticsServicer {
	return &analyticsService{transactions: transactions, clock: clk}
}

// GetYearOverYear totals every type per calendar year, oldest first.
func (s *analyticsService) GetYearOverYear(userID string) ([]YearTotals, error) {
	rows, err := s.transactions.ListUserTransactions(userID)
	if err != nil {
		return nil, err
	}

	byYear := make(map[int]*typeTotals)
	for _, tx := range rows {
		y := tx.Date.Year()
		totals, ok := byYear[y]
		if !ok {
			totals = &typeTotals{}
			byYear[y] = totals
		}
		totals.add(tx)
	}

	out := make([]YearTotals, 0, len(byYear))
	for y, totals := range byYear {
		out = append(out, YearTotals{
			Year:       y,
			Income:     money.Float(totals.income),
			Expense:    money.Float(totals.expense),
			Investment: money.Float(totals.investment),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out, nil
}

// GetExpensesByPaymentMethod totals all expenses per payment method, largest
// first.
func (s *analyticsService) GetExpensesByPaymentMethod(userID string) ([]PaymentMethodAmount, error) {
	rows, err := s.transactions.ListUserTransactions(userID)
	if err != nil {
		return nil, err
	}

	totals := make(map[models.PaymentMethod]decimal.Decimal)
	for _, tx := range rows {
		if tx.Type == models.TransactionTypeExpense {
			totals[tx.PaymentMethod] = totals[tx.PaymentMethod].Add(tx.Amount)
		}
	}

	out := make([]PaymentMethodAmount, 0, len(totals))
	for method, amount := range totals {
		out = append(out, PaymentMethodAmount{PaymentMethod: method, Amount: money.Float(amount)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount != out[j].Amount {
			return out[i].Amount > out[j].Amount
		}
		return out[i].PaymentMethod < out[j].PaymentMethod
	})
	return out, nil
}

// GetCardSpending totals card purchases and card bill payments per purchase
// month of year. A zero year selects the current year when it has data, and
// the most recent year with data otherwise. Amounts are full purchase values,
// not installments.
func (s *analyticsService) GetCardSpending(userID string, year int) (*CardSpending, error) {
	rows, err := s.transactions.ListUserTransactions(userID)
	if err != nil {
		return nil, err
	}

	var related []models.Transaction
	var years []int
	for _, tx := range rows {
		if isCardRelated(tx) {
			related = append(related, tx)
			years = append(years, tx.Date.Year())
		}
	}
	years = uniqueDesc(years)

	if year == 0 {
		year = s.clock.Today().Year()
		if len(years) > 0 && !containsInt(years, year) {
			year = years[0]
		}
	}

	byMonth := make(map[int]decimal.Decimal)
	for _, tx := range related {
		if tx.Date.Year() == year {
			m := int(tx.Date.Month())
			byMonth[m] = byMonth[m].Add(tx.Amount)
		}
	}
	months := make([]MonthAmount, 0, len(byMonth))
	for m, amount := range byMonth {
		months = append(months, MonthAmount{Month: m, Amount: money.Float(amount)})
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Month < months[j].Month })

	return &CardSpending{Year: year, AvailableYears: years, Months: months}, nil
}

// GetInvestmentEvolution totals investments per year with the running total,
// oldest first.
func (s *analyticsService) GetInvestmentEvolution(userID string) ([]InvestmentYear, error) {
	rows, err := s.transactions.ListUserTransactions(userID)
	if err != nil {
		return nil, err
	}

	byYear := make(map[int]decimal.Decimal)
	for _, tx := range rows {
		if tx.Type == models.TransactionTypeInvestment {
			y := tx.Date.Year()
			byYear[y] = byYear[y].Add(tx.Amount)
		}
	}

	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)

	out := make([]InvestmentYear, len(years))
	var running decimal.Decimal
	for i, y := range years {
		running = running.Add(byYear[y])
		out[i] = InvestmentYear{Year: y, Invested: money.Float(byYear[y]), Cumulative: money.Float(running)}
	}
	return out, nil
}

func isCardRelated(tx models.Transaction) bool {
	if tx.Type != models.TransactionTypeExpense {
		return false
	}
	return tx.PaymentMethod == models.PaymentMethodCreditCard ||
		strings.ToLower(strings.TrimSpace(tx.Category)) == cardPaymentCategory
}

func containsInt(values []int, v int) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
