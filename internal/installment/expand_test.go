package installment

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"moneta/internal/clock"
	"moneta/internal/models"
)

func cardPurchase(id uint, amount float64, count int, date time.Time) models.Transaction {
	return models.Transaction{
		ID:            id,
		Type:          models.TransactionTypeExpense,
		Category:      "Mercado",
		Date:          date,
		Amount:        decimal.NewFromFloat(amount),
		PaymentMethod: models.PaymentMethodCreditCard,
		CardName:      "Nubank",
		Installments:  count,
		Description:   "compra",
	}
}

func TestFirstDueDate(t *testing.T) {
	t.Run("purchase_before_due_day_same_month", func(t *testing.T) {
		got := FirstDueDate(clock.Date(2024, time.March, 3), 5)
		if !got.Equal(clock.Date(2024, time.March, 5)) {
			t.Errorf("expected 2024-03-05, got %s", got)
		}
	})

	t.Run("purchase_on_due_day_same_month", func(t *testing.T) {
		got := FirstDueDate(clock.Date(2024, time.March, 5), 5)
		if !got.Equal(clock.Date(2024, time.March, 5)) {
			t.Errorf("expected 2024-03-05, got %s", got)
		}
	})

	t.Run("purchase_after_due_day_next_month", func(t *testing.T) {
		got := FirstDueDate(clock.Date(2024, time.March, 6), 5)
		if !got.Equal(clock.Date(2024, time.April, 5)) {
			t.Errorf("expected 2024-04-05, got %s", got)
		}
	})

	t.Run("december_rolls_into_next_year", func(t *testing.T) {
		got := FirstDueDate(clock.Date(2024, time.December, 20), 10)
		if !got.Equal(clock.Date(2025, time.January, 10)) {
			t.Errorf("expected 2025-01-10, got %s", got)
		}
	})

	t.Run("out_of_range_due_day_is_clamped", func(t *testing.T) {
		got := FirstDueDate(clock.Date(2024, time.January, 30), 31)
		if !got.Equal(clock.Date(2024, time.February, 28)) {
			t.Errorf("expected 2024-02-28, got %s", got)
		}
	})

	t.Run("every_day_and_due_day", func(t *testing.T) {
		for dueDay := MinDueDay; dueDay <= MaxDueDay; dueDay++ {
			for day := 1; day <= 31; day++ {
				purchase := clock.Date(2024, time.January, day)
				got := FirstDueDate(purchase, dueDay)
				if got.Day() != dueDay {
					t.Fatalf("due day %d, purchase day %d: expected day %d, got %s", dueDay, day, dueDay, got)
				}
				wantMonth := time.January
				if day > dueDay {
					wantMonth = time.February
				}
				if got.Month() != wantMonth || got.Year() != 2024 {
					t.Fatalf("due day %d, purchase day %d: expected %s 2024, got %s", dueDay, day, wantMonth, got)
				}
			}
		}
	})
}

func TestExpand(t *testing.T) {
	t.Run("three_installments_after_due_day", func(t *testing.T) {
		tx := cardPurchase(1, 300, 3, clock.Date(2024, time.March, 10))

		got := Expand([]models.Transaction{tx}, 5)

		if len(got) != 3 {
			t.Fatalf("expected 3 installments, got %d", len(got))
		}
		wantDue := []time.Time{
			clock.Date(2024, time.April, 5),
			clock.Date(2024, time.May, 5),
			clock.Date(2024, time.June, 5),
		}
		for i, inst := range got {
			if inst.Number != i+1 {
				t.Errorf("installment %d: expected number %d, got %d", i, i+1, inst.Number)
			}
			if inst.Count != 3 {
				t.Errorf("installment %d: expected count 3, got %d", i, inst.Count)
			}
			if inst.Value != 100 {
				t.Errorf("installment %d: expected value 100, got %f", i, inst.Value)
			}
			if !inst.DueDate.Equal(wantDue[i]) {
				t.Errorf("installment %d: expected due %s, got %s", i, wantDue[i], inst.DueDate)
			}
			if inst.TransactionID != 1 || inst.CardName != "Nubank" || inst.Category != "Mercado" {
				t.Errorf("installment %d: source fields not copied: %+v", i, inst)
			}
		}
	})

	t.Run("single_payment_before_due_day", func(t *testing.T) {
		tx := cardPurchase(2, 100, 1, clock.Date(2024, time.March, 3))

		got := Expand([]models.Transaction{tx}, 5)

		if len(got) != 1 {
			t.Fatalf("expected 1 installment, got %d", len(got))
		}
		if got[0].Value != 100 {
			t.Errorf("expected value 100, got %f", got[0].Value)
		}
		if !got[0].DueDate.Equal(clock.Date(2024, time.March, 5)) {
			t.Errorf("expected due 2024-03-05, got %s", got[0].DueDate)
		}
	})

	t.Run("count_below_one_is_clamped", func(t *testing.T) {
		tx := cardPurchase(3, 80, 0, clock.Date(2024, time.March, 3))

		got := Expand([]models.Transaction{tx}, 5)

		if len(got) != 1 {
			t.Fatalf("expected 1 installment, got %d", len(got))
		}
		if got[0].Count != 1 || got[0].Value != 80 {
			t.Errorf("expected single installment of 80, got %+v", got[0])
		}
	})

	t.Run("values_sum_to_amount_without_redistribution", func(t *testing.T) {
		tx := cardPurchase(4, 100, 3, clock.Date(2024, time.March, 1))

		got := Expand([]models.Transaction{tx}, 5)

		var sum float64
		for _, inst := range got {
			if inst.Value != 100.0/3 {
				t.Errorf("expected every installment to be 100/3, got %f", inst.Value)
			}
			sum += inst.Value
		}
		if math.Abs(sum-100) > 1e-9 {
			t.Errorf("expected sum 100, got %f", sum)
		}
	})

	t.Run("due_dates_step_one_month", func(t *testing.T) {
		tx := cardPurchase(5, 1200, 12, clock.Date(2024, time.November, 28))

		got := Expand([]models.Transaction{tx}, 28)

		if len(got) != 12 {
			t.Fatalf("expected 12 installments, got %d", len(got))
		}
		for i := 1; i < len(got); i++ {
			prev, cur := got[i-1].DueDate, got[i].DueDate
			if !cur.After(prev) {
				t.Fatalf("due dates not increasing at %d: %s then %s", i, prev, cur)
			}
			if !prev.AddDate(0, 1, 0).Equal(cur) {
				t.Errorf("expected %s one month after %s", cur, prev)
			}
			if cur.Day() != 28 {
				t.Errorf("expected day 28, got %d", cur.Day())
			}
		}
	})

	t.Run("ignores_time_of_day", func(t *testing.T) {
		loc := time.FixedZone("BRT", -3*60*60)
		tx := cardPurchase(6, 50, 1, time.Date(2024, time.March, 5, 22, 0, 0, 0, loc))

		got := Expand([]models.Transaction{tx}, 5)

		if !got[0].DueDate.Equal(clock.Date(2024, time.March, 5)) {
			t.Errorf("expected due 2024-03-05, got %s", got[0].DueDate)
		}
		if !got[0].PurchaseDate.Equal(clock.Date(2024, time.March, 5)) {
			t.Errorf("expected purchase date 2024-03-05, got %s", got[0].PurchaseDate)
		}
	})

	t.Run("keeps_input_order", func(t *testing.T) {
		txs := []models.Transaction{
			cardPurchase(9, 20, 2, clock.Date(2024, time.May, 1)),
			cardPurchase(7, 30, 1, clock.Date(2024, time.January, 1)),
		}

		got := Expand(txs, 5)

		ids := []uint{9, 9, 7}
		if len(got) != len(ids) {
			t.Fatalf("expected %d installments, got %d", len(ids), len(got))
		}
		for i, id := range ids {
			if got[i].TransactionID != id {
				t.Errorf("position %d: expected transaction %d, got %d", i, id, got[i].TransactionID)
			}
		}
	})

	t.Run("empty_input", func(t *testing.T) {
		if got := Expand(nil, 5); len(got) != 0 {
			t.Errorf("expected no installments, got %d", len(got))
		}
	})
}

func TestClampDueDay(t *testing.T) {
	cases := map[int]int{-3: 1, 0: 1, 1: 1, 15: 15, 28: 28, 29: 28, 31: 28}
	for in, want := range cases {
		if got := ClampDueDay(in); got != want {
			t.Errorf("ClampDueDay(%d): expected %d, got %d", in, want, got)
		}
	}
	if ValidDueDay(0) || ValidDueDay(29) || !ValidDueDay(28) {
		t.Error("ValidDueDay bounds are wrong")
	}
}
