package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"moneta/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// Date returns midnight UTC of the given day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// CreateTestTransaction creates a transaction of the given type and amount
// paid from the account, with a generated category.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID string, txType models.TransactionType, amount float64, date time.Time) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		UserID:        userID,
		Type:          txType,
		Category:      fmt.Sprintf("Category %d", nextID()),
		Date:          date,
		Amount:        decimal.NewFromFloat(amount),
		PaymentMethod: models.PaymentMethodAccount,
		Installments:  1,
	}
	return insertTransaction(t, db, tx)
}

// CreateTestTransactionInCategory is like CreateTestTransaction with a fixed
// category.
func CreateTestTransactionInCategory(t *testing.T, db *gorm.DB, userID string, txType models.TransactionType, category string, amount float64, date time.Time) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		UserID:        userID,
		Type:          txType,
		Category:      category,
		Date:          date,
		Amount:        decimal.NewFromFloat(amount),
		PaymentMethod: models.PaymentMethodAccount,
		Installments:  1,
	}
	return insertTransaction(t, db, tx)
}

// CreateTestCardPurchase creates a credit card expense split into
// installments.
func CreateTestCardPurchase(t *testing.T, db *gorm.DB, userID, cardName, category string, amount float64, installments int, date time.Time) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		UserID:        userID,
		Type:          models.TransactionTypeExpense,
		Category:      category,
		Date:          date,
		Amount:        decimal.NewFromFloat(amount),
		PaymentMethod: models.PaymentMethodCreditCard,
		CardName:      cardName,
		Installments:  installments,
		Description:   fmt.Sprintf("Purchase %d", nextID()),
	}
	return insertTransaction(t, db, tx)
}

func insertTransaction(t *testing.T, db *gorm.DB, tx *models.Transaction) *models.Transaction {
	t.Helper()
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}
