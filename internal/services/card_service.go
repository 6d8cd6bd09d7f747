package services

import (
	"sort"

	"github.com/shopspring/decimal"

	"moneta/internal/clock"
	apperrors "moneta/internal/errors"
	"moneta/internal/installment"
	"moneta/internal/models"
)

// cardService feeds the user's credit card expenses through the installment
// engine. Nothing is cached: every call reads the transactions again and
// evaluates them against the clock's current date.
type cardService struct {
	transactions TransactionServicer
	clock        clock.Clock
}

// NewCardService creates a new CardServicer reading purchases through the
// given transaction service.
func NewCardService(transactions TransactionServicer, clk clock.Clock) CardServicer {
	return &cardService{transactions: transactions, clock: clk}
}

// cardPurchases returns the user's expenses paid by credit card.
func (s *cardService) cardPurchases(userID string) ([]models.Transaction, error) {
	rows, err := s.transactions.ListUserTransactions(userID)
	if err != nil {
		return nil, err
	}
	out := make([]models.Transaction, 0, len(rows))
	for i := range rows {
		if rows[i].IsCardExpense() {
			out = append(out, rows[i])
		}
	}
	return out, nil
}

func (s *cardService) schedule(userID string, dueDay int) ([]installment.Installment, error) {
	if !installment.ValidDueDay(dueDay) {
		return nil, apperrors.ErrInvalidDueDay
	}
	purchases, err := s.cardPurchases(userID)
	if err != nil {
		return nil, err
	}
	return installment.Expand(purchases, dueDay), nil
}

// GetCardSummary returns the amounts due this month, still due this year and
// already paid this year.
func (s *cardService) GetCardSummary(userID string, dueDay int) (*installment.Summary, error) {
	installments, err := s.schedule(userID, dueDay)
	if err != nil {
		return nil, err
	}
	summary := installment.Summarize(installments, s.clock.Today())
	return &summary, nil
}

// GetPurchaseOverviews returns one overview per card purchase matching filter.
func (s *cardService) GetPurchaseOverviews(userID string, dueDay int, filter installment.Filter) ([]installment.Overview, error) {
	installments, err := s.schedule(userID, dueDay)
	if err != nil {
		return nil, err
	}
	overviews := installment.Consolidate(installments, s.clock.Today())
	return installment.FilterOverviews(overviews, filter), nil
}

// GetSettledInstallments returns every installment of the fully paid
// purchases matching filter. The filter's status is ignored.
func (s *cardService) GetSettledInstallments(userID string, dueDay int, filter installment.Filter) ([]installment.Installment, error) {
	installments, err := s.schedule(userID, dueDay)
	if err != nil {
		return nil, err
	}
	settled := installment.SettledInstallments(installments, s.clock.Today())
	return installment.FilterInstallments(settled, filter), nil
}

// GetMonthlyHistory returns the installment totals of the current year by
// due month, January first, months without installments included as zero.
func (s *cardService) GetMonthlyHistory(userID string, dueDay int) ([]MonthAmount, error) {
	installments, err := s.schedule(userID, dueDay)
	if err != nil {
		return nil, err
	}
	totals := installment.MonthlyTotals(installments, s.clock.Today().Year())
	out := make([]MonthAmount, len(totals))
	for i, amount := range totals {
		out[i] = MonthAmount{Month: i + 1, Amount: amount}
	}
	return out, nil
}

// GetCategoryShares totals the full value of this year's card purchases by
// category, largest first, with each category's share of the total.
func (s *cardService) GetCategoryShares(userID string) ([]CategoryAmount, error) {
	purchases, err := s.cardPurchases(userID)
	if err != nil {
		return nil, err
	}

	year := s.clock.Today().Year()
	totals := make(map[string]decimal.Decimal)
	var sum decimal.Decimal
	for _, p := range purchases {
		if p.Date.Year() != year {
			continue
		}
		totals[p.Category] = totals[p.Category].Add(p.Amount)
		sum = sum.Add(p.Amount)
	}
	return categoryShares(totals, sum), nil
}

// GetFilterOptions lists the card names, categories and purchase years
// (oldest first) of the user's card purchases.
func (s *cardService) GetFilterOptions(userID string) (*CardFilterOptions, error) {
	purchases, err := s.cardPurchases(userID)
	if err != nil {
		return nil, err
	}

	cards := make(map[string]bool)
	categories := make(map[string]bool)
	years := make(map[int]bool)
	for _, p := range purchases {
		if p.CardName != "" {
			cards[p.CardName] = true
		}
		categories[p.Category] = true
		years[p.Date.Year()] = true
	}

	opts := &CardFilterOptions{
		Cards:      sortedKeys(cards),
		Categories: sortedKeys(categories),
		Years:      make([]int, 0, len(years)),
	}
	for y := range years {
		opts.Years = append(opts.Years, y)
	}
	sort.Ints(opts.Years)
	return opts, nil
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
