package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"moneta/internal/models"
	"moneta/internal/testutil"
)

// seedDashboardData stores a May 2024 month around fixedToday, one April
// expense and one November 2023 income that falls outside the history.
func seedDashboardData(t *testing.T, db *gorm.DB, userID string) {
	t.Helper()
	testutil.CreateTestTransactionInCategory(t, db, userID, models.TransactionTypeIncome, "Salário", 5000, testutil.Date(2024, time.May, 5))
	testutil.CreateTestTransactionInCategory(t, db, userID, models.TransactionTypeExpense, "Aluguel", 2000, testutil.Date(2024, time.May, 1))
	testutil.CreateTestTransactionInCategory(t, db, userID, models.TransactionTypeExpense, "Mercado", 500, testutil.Date(2024, time.May, 8))
	testutil.CreateTestTransactionInCategory(t, db, userID, models.TransactionTypeInvestment, "Tesouro", 1000, testutil.Date(2024, time.May, 3))
	testutil.CreateTestTransactionInCategory(t, db, userID, models.TransactionTypeExpense, "Mercado", 300, testutil.Date(2024, time.April, 20))
	testutil.CreateTestTransactionInCategory(t, db, userID, models.TransactionTypeIncome, "Salário", 4000, testutil.Date(2023, time.November, 5))
}

func TestGetMonthlySummary(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	user := testutil.CreateTestUser(t, db)
	seedDashboardData(t, db, user.ID)
	svc := NewDashboardService(db, fixedToday)

	t.Run("current_month", func(t *testing.T) {
		summary, err := svc.GetMonthlySummary(user.ID, time.Time{})
		testutil.AssertNoError(t, err)

		if summary.Year != 2024 || summary.Month != 5 {
			t.Errorf("expected 2024-05, got %d-%02d", summary.Year, summary.Month)
		}
		if !summary.HasData {
			t.Error("expected has_data")
		}
		if summary.Income != 5000 || summary.Expense != 2500 || summary.Investment != 1000 {
			t.Errorf("expected 5000/2500/1000, got %v/%v/%v", summary.Income, summary.Expense, summary.Investment)
		}
		if summary.Balance != 1500 {
			t.Errorf("expected balance 1500, got %v", summary.Balance)
		}
		if summary.CommittedPct != 70 {
			t.Errorf("expected 70%% committed, got %v", summary.CommittedPct)
		}

		if len(summary.ExpenseByCategory) != 2 {
			t.Fatalf("expected 2 categories, got %d", len(summary.ExpenseByCategory))
		}
		first, second := summary.ExpenseByCategory[0], summary.ExpenseByCategory[1]
		if first.Category != "Aluguel" || first.Amount != 2000 || first.Percentage != 40 {
			t.Errorf("expected Aluguel 2000 (40%%), got %+v", first)
		}
		if second.Category != "Mercado" || second.Amount != 500 || second.Percentage != 10 {
			t.Errorf("expected Mercado 500 (10%%), got %+v", second)
		}
	})

	t.Run("history_covers_six_months", func(t *testing.T) {
		summary, err := svc.GetMonthlySummary(user.ID, time.Time{})
		testutil.AssertNoError(t, err)

		if len(summary.History) != 6 {
			t.Fatalf("expected 6 months of history, got %d", len(summary.History))
		}
		oldest := summary.History[0]
		if oldest.Year != 2023 || oldest.Month != 12 {
			t.Errorf("expected history to start at 2023-12, got %d-%02d", oldest.Year, oldest.Month)
		}
		for _, m := range summary.History {
			if m.Income == 4000 {
				t.Errorf("expected November 2023 to be outside the history, got %+v", m)
			}
		}
		april, may := summary.History[4], summary.History[5]
		if april.Month != 4 || april.Expense != 300 {
			t.Errorf("expected April expense 300, got %+v", april)
		}
		if may.Month != 5 || may.Income != 5000 || may.Expense != 2500 || may.Investment != 1000 {
			t.Errorf("unexpected May totals %+v", may)
		}
	})

	t.Run("reference_month_without_income", func(t *testing.T) {
		summary, err := svc.GetMonthlySummary(user.ID, testutil.Date(2024, time.April, 15))
		testutil.AssertNoError(t, err)

		if summary.Month != 4 {
			t.Errorf("expected month 4, got %d", summary.Month)
		}
		if summary.Expense != 300 || summary.Balance != -300 {
			t.Errorf("expected expense 300 and balance -300, got %v and %v", summary.Expense, summary.Balance)
		}
		if summary.CommittedPct != 0 {
			t.Errorf("expected 0%% committed without income, got %v", summary.CommittedPct)
		}
		if len(summary.ExpenseByCategory) != 1 || summary.ExpenseByCategory[0].Percentage != 0 {
			t.Errorf("expected one category with 0%%, got %+v", summary.ExpenseByCategory)
		}
	})
}

func TestGetMonthlySummaryCentsAddUpExactly(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	user := testutil.CreateTestUser(t, db)
	testutil.CreateTestTransactionInCategory(t, db, user.ID, models.TransactionTypeIncome, "Pix", 0.10, testutil.Date(2024, time.May, 2))
	testutil.CreateTestTransactionInCategory(t, db, user.ID, models.TransactionTypeIncome, "Pix", 0.20, testutil.Date(2024, time.May, 3))
	testutil.CreateTestTransactionInCategory(t, db, user.ID, models.TransactionTypeExpense, "Padaria", 0.30, testutil.Date(2024, time.May, 4))

	summary, err := NewDashboardService(db, fixedToday).GetMonthlySummary(user.ID, time.Time{})
	testutil.AssertNoError(t, err)

	if summary.Income != 0.3 {
		t.Errorf("expected income 0.3, got %v", summary.Income)
	}
	if summary.Balance != 0 {
		t.Errorf("expected balance 0, got %v", summary.Balance)
	}
	if summary.CommittedPct != 100 {
		t.Errorf("expected 100%% committed, got %v", summary.CommittedPct)
	}
	if may := summary.History[5]; may.Income != 0.3 {
		t.Errorf("expected May income 0.3, got %v", may.Income)
	}
}

func TestGetMonthlySummaryWithoutData(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	user := testutil.CreateTestUser(t, db)

	summary, err := NewDashboardService(db, fixedToday).GetMonthlySummary(user.ID, time.Time{})
	testutil.AssertNoError(t, err)

	if summary.HasData {
		t.Error("expected has_data to be false")
	}
	if summary.ExpenseByCategory == nil || len(summary.ExpenseByCategory) != 0 {
		t.Errorf("expected empty category list, got %v", summary.ExpenseByCategory)
	}
	if len(summary.History) != 6 {
		t.Fatalf("expected 6 months of history, got %d", len(summary.History))
	}
	for _, m := range summary.History {
		if m.Income != 0 || m.Expense != 0 || m.Investment != 0 {
			t.Errorf("expected zero totals, got %+v", m)
		}
	}
}

func TestGetRecentTransactions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	user := testutil.CreateTestUser(t, db)
	seedDashboardData(t, db, user.ID)
	other := testutil.CreateTestUser(t, db)
	testutil.CreateTestTransaction(t, db, other.ID, models.TransactionTypeIncome, 99, testutil.Date(2024, time.May, 1))
	svc := NewDashboardService(db, fixedToday)

	t.Run("ordered_by_type_category_date", func(t *testing.T) {
		rows, err := svc.GetRecentTransactions(user.ID, 0)
		testutil.AssertNoError(t, err)

		if len(rows) != 6 {
			t.Fatalf("expected 6 transactions, got %d", len(rows))
		}
		want := []struct {
			txType   models.TransactionType
			category string
			amount   float64
		}{
			{models.TransactionTypeIncome, "Salário", 5000},
			{models.TransactionTypeIncome, "Salário", 4000},
			{models.TransactionTypeInvestment, "Tesouro", 1000},
			{models.TransactionTypeExpense, "Aluguel", 2000},
			{models.TransactionTypeExpense, "Mercado", 500},
			{models.TransactionTypeExpense, "Mercado", 300},
		}
		for i, w := range want {
			got := rows[i]
			if got.Type != w.txType || got.Category != w.category || !got.Amount.Equal(decimal.NewFromFloat(w.amount)) {
				t.Errorf("row %d: expected %s/%s/%v, got %s/%s/%v", i, w.txType, w.category, w.amount, got.Type, got.Category, got.Amount)
			}
		}
	})

	t.Run("limit", func(t *testing.T) {
		rows, err := svc.GetRecentTransactions(user.ID, 2)
		testutil.AssertNoError(t, err)

		if len(rows) != 2 {
			t.Errorf("expected 2 transactions, got %d", len(rows))
		}
	})
}
