package testutil_test

import (
	"testing"
	"time"

	"moneta/internal/errors"
	"moneta/internal/models"
	"moneta/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	// Verify all tables exist by doing a simple count query on each model.
	var count int64
	for _, table := range []string{"users", "transactions", "audit_logs"} {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	user := testutil.CreateTestUser(t, db)
	if user.ID == "" {
		t.Fatal("user should have a non-empty ID")
	}

	date := testutil.Date(2024, time.March, 10)
	tx := testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeIncome, 1000, date)
	if tx.ID == 0 {
		t.Fatal("transaction should have a non-zero ID")
	}
	testutil.AssertAmount(t, tx.Amount, "1000.00")

	purchase := testutil.CreateTestCardPurchase(t, db, user.ID, "Nubank", "Mercado", 300, 3, date)
	if !purchase.IsCardExpense() {
		t.Error("expected a credit card expense")
	}
	if purchase.Installments != 3 {
		t.Errorf("expected 3 installments, got %d", purchase.Installments)
	}

	var stored models.Transaction
	if err := db.First(&stored, purchase.ID).Error; err != nil {
		t.Fatalf("failed to reload purchase: %v", err)
	}
	if !stored.Date.Equal(date) {
		t.Errorf("expected date %s, got %s", date, stored.Date)
	}
}

func TestAssertAppError(t *testing.T) {
	testutil.AssertAppError(t, errors.ErrNotFound, "NOT_FOUND")
	testutil.AssertAppError(t, errors.Wrap(errors.ErrInternalServer, nil), "INTERNAL_ERROR")
}

func TestAssertNoError(t *testing.T) {
	testutil.AssertNoError(t, nil)
}

func TestAssertAmount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	user := testutil.CreateTestUser(t, db)
	tx := testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, 19.9, testutil.Date(2024, time.March, 10))

	var stored models.Transaction
	if err := db.First(&stored, tx.ID).Error; err != nil {
		t.Fatalf("failed to reload transaction: %v", err)
	}
	testutil.AssertAmount(t, stored.Amount, "19.90")
}
