package installment

import (
	"testing"
	"time"

	"moneta/internal/clock"
	"moneta/internal/models"
)

func TestClassify(t *testing.T) {
	today := clock.Date(2024, time.May, 10)
	inst := Installment{DueDate: today}

	if got := Classify(inst, today); got != StatusPending {
		t.Errorf("due today: expected pending, got %s", got)
	}
	inst.DueDate = today.AddDate(0, 0, -1)
	if got := Classify(inst, today); got != StatusPaid {
		t.Errorf("due yesterday: expected paid, got %s", got)
	}
	inst.DueDate = today.AddDate(0, 0, 1)
	if got := Classify(inst, today); got != StatusPending {
		t.Errorf("due tomorrow: expected pending, got %s", got)
	}
}

func TestConsolidate(t *testing.T) {
	t.Run("mid_schedule", func(t *testing.T) {
		// Due 2024-04-05, 05-05, 06-05.
		tx := cardPurchase(1, 300, 3, clock.Date(2024, time.March, 10))
		today := clock.Date(2024, time.May, 10)

		got := Consolidate(Expand([]models.Transaction{tx}, 5), today)

		if len(got) != 1 {
			t.Fatalf("expected 1 overview, got %d", len(got))
		}
		ov := got[0]
		if ov.InstallmentsPaid != 2 || ov.InstallmentsRemaining != 1 {
			t.Errorf("expected 2 paid / 1 remaining, got %d / %d", ov.InstallmentsPaid, ov.InstallmentsRemaining)
		}
		if ov.NextDue == nil || !ov.NextDue.Equal(clock.Date(2024, time.June, 5)) {
			t.Errorf("expected next due 2024-06-05, got %v", ov.NextDue)
		}
		if ov.TotalValue != 300 {
			t.Errorf("expected total 300, got %f", ov.TotalValue)
		}
		if ov.RemainingValue != 100 {
			t.Errorf("expected remaining 100, got %f", ov.RemainingValue)
		}
		if ov.Status != PurchaseActive {
			t.Errorf("expected active, got %s", ov.Status)
		}
		if !ov.LastDue.Equal(clock.Date(2024, time.June, 5)) {
			t.Errorf("expected last due 2024-06-05, got %s", ov.LastDue)
		}
	})

	t.Run("single_installment_due_yesterday_is_settled", func(t *testing.T) {
		today := clock.Date(2024, time.March, 6)
		tx := cardPurchase(2, 100, 1, clock.Date(2024, time.March, 3))

		got := Consolidate(Expand([]models.Transaction{tx}, 5), today)

		ov := got[0]
		if ov.Status != PurchaseSettled {
			t.Errorf("expected settled, got %s", ov.Status)
		}
		if ov.NextDue != nil {
			t.Errorf("expected no next due, got %s", ov.NextDue)
		}
		if ov.InstallmentsRemaining != 0 || ov.RemainingValue != 0 {
			t.Errorf("expected nothing remaining, got %d / %f", ov.InstallmentsRemaining, ov.RemainingValue)
		}
	})

	t.Run("single_installment_due_today_is_active", func(t *testing.T) {
		today := clock.Date(2024, time.March, 5)
		tx := cardPurchase(3, 100, 1, clock.Date(2024, time.March, 3))

		got := Consolidate(Expand([]models.Transaction{tx}, 5), today)

		ov := got[0]
		if ov.Status != PurchaseActive {
			t.Errorf("expected active, got %s", ov.Status)
		}
		if ov.NextDue == nil || !ov.NextDue.Equal(today) {
			t.Errorf("expected next due today, got %v", ov.NextDue)
		}
		if ov.InstallmentsPaid != 0 || ov.InstallmentsRemaining != 1 {
			t.Errorf("expected 0 paid / 1 remaining, got %d / %d", ov.InstallmentsPaid, ov.InstallmentsRemaining)
		}
	})

	t.Run("one_overview_per_transaction_in_first_seen_order", func(t *testing.T) {
		txs := []models.Transaction{
			cardPurchase(30, 90, 3, clock.Date(2024, time.January, 15)),
			cardPurchase(10, 40, 2, clock.Date(2024, time.February, 1)),
			cardPurchase(20, 10, 1, clock.Date(2023, time.December, 24)),
		}
		today := clock.Date(2024, time.February, 20)

		got := Consolidate(Expand(txs, 10), today)

		if len(got) != len(txs) {
			t.Fatalf("expected %d overviews, got %d", len(txs), len(got))
		}
		for i, tx := range txs {
			if got[i].TransactionID != tx.ID {
				t.Errorf("position %d: expected transaction %d, got %d", i, tx.ID, got[i].TransactionID)
			}
		}
	})

	t.Run("interleaved_installments_group_by_id", func(t *testing.T) {
		a := Expand([]models.Transaction{cardPurchase(1, 20, 2, clock.Date(2024, time.January, 1))}, 5)
		b := Expand([]models.Transaction{cardPurchase(2, 30, 3, clock.Date(2024, time.January, 1))}, 5)
		mixed := []Installment{a[0], b[0], a[1], b[1], b[2]}

		got := Consolidate(mixed, clock.Date(2024, time.January, 1))

		if len(got) != 2 {
			t.Fatalf("expected 2 overviews, got %d", len(got))
		}
		if got[0].InstallmentCount != 2 || got[1].InstallmentCount != 3 {
			t.Errorf("expected counts 2 and 3, got %d and %d", got[0].InstallmentCount, got[1].InstallmentCount)
		}
	})

	t.Run("paid_plus_remaining_equals_count_for_any_today", func(t *testing.T) {
		txs := []models.Transaction{
			cardPurchase(1, 1000, 10, clock.Date(2023, time.August, 17)),
			cardPurchase(2, 59.9, 1, clock.Date(2024, time.February, 29)),
			cardPurchase(3, 250, 6, clock.Date(2024, time.December, 31)),
		}
		installments := Expand(txs, 12)

		for today := clock.Date(2023, time.July, 1); today.Before(clock.Date(2025, time.September, 1)); today = today.AddDate(0, 0, 9) {
			for _, ov := range Consolidate(installments, today) {
				if ov.InstallmentsPaid+ov.InstallmentsRemaining != ov.InstallmentCount {
					t.Fatalf("today %s, transaction %d: %d paid + %d remaining != %d",
						today.Format("2006-01-02"), ov.TransactionID, ov.InstallmentsPaid, ov.InstallmentsRemaining, ov.InstallmentCount)
				}
				settledByDate := ov.LastDue.Before(today)
				if settledByDate != (ov.InstallmentsRemaining == 0) {
					t.Fatalf("today %s, transaction %d: last due %s disagrees with %d remaining",
						today.Format("2006-01-02"), ov.TransactionID, ov.LastDue.Format("2006-01-02"), ov.InstallmentsRemaining)
				}
				if (ov.Status == PurchaseSettled) != settledByDate {
					t.Fatalf("today %s, transaction %d: status %s, last due %s",
						today.Format("2006-01-02"), ov.TransactionID, ov.Status, ov.LastDue.Format("2006-01-02"))
				}
			}
		}
	})

	t.Run("empty_input", func(t *testing.T) {
		if got := Consolidate(nil, clock.Date(2024, time.January, 1)); len(got) != 0 {
			t.Errorf("expected no overviews, got %d", len(got))
		}
	})
}

func TestSettledInstallments(t *testing.T) {
	txs := []models.Transaction{
		cardPurchase(1, 200, 2, clock.Date(2024, time.January, 2)), // due 01-05, 02-05
		cardPurchase(2, 300, 3, clock.Date(2024, time.January, 2)), // due 01-05, 02-05, 03-05
	}
	today := clock.Date(2024, time.February, 20)

	got := SettledInstallments(Expand(txs, 5), today)

	if len(got) != 2 {
		t.Fatalf("expected 2 settled installments, got %d", len(got))
	}
	for _, inst := range got {
		if inst.TransactionID != 1 {
			t.Errorf("expected only transaction 1, got %d", inst.TransactionID)
		}
	}
}

func TestFilterOverviews(t *testing.T) {
	today := clock.Date(2024, time.June, 1)
	a := cardPurchase(1, 100, 1, clock.Date(2023, time.March, 1))
	a.Description = "Passagem aérea"
	b := cardPurchase(2, 600, 6, clock.Date(2024, time.April, 1))
	b.CardName = "Itaú"
	b.Category = "Viagem"
	b.Description = "Hotel"
	overviews := Consolidate(Expand([]models.Transaction{a, b}, 5), today)

	cases := []struct {
		name   string
		filter Filter
		want   []uint
	}{
		{"no_filter", Filter{}, []uint{1, 2}},
		{"status_all", Filter{Status: StatusAll}, []uint{1, 2}},
		{"active", Filter{Status: StatusActive}, []uint{2}},
		{"settled", Filter{Status: StatusSettled}, []uint{1}},
		{"card", Filter{CardName: "Itaú"}, []uint{2}},
		{"category", Filter{Category: "Mercado"}, []uint{1}},
		{"year", Filter{Year: 2023}, []uint{1}},
		{"description_case_insensitive", Filter{Query: "PASSAGEM"}, []uint{1}},
		{"combined_no_match", Filter{CardName: "Itaú", Status: StatusSettled}, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := FilterOverviews(overviews, tc.filter)
			if len(got) != len(tc.want) {
				t.Fatalf("expected %d overviews, got %d", len(tc.want), len(got))
			}
			for i, id := range tc.want {
				if got[i].TransactionID != id {
					t.Errorf("position %d: expected %d, got %d", i, id, got[i].TransactionID)
				}
			}
		})
	}
}

func TestFilterInstallments(t *testing.T) {
	a := cardPurchase(1, 100, 2, clock.Date(2024, time.March, 1))
	b := cardPurchase(2, 100, 2, clock.Date(2024, time.March, 1))
	b.Description = "Farmácia"

	got := FilterInstallments(Expand([]models.Transaction{a, b}, 5), Filter{Query: "farm", Status: StatusActive})

	if len(got) != 2 {
		t.Fatalf("expected 2 installments, got %d", len(got))
	}
	for _, inst := range got {
		if inst.TransactionID != 2 {
			t.Errorf("expected transaction 2, got %d", inst.TransactionID)
		}
	}
}
