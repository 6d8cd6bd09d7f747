// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"moneta/internal/installment"
	"moneta/internal/models"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("transaction_type", validateTransactionType)
		_ = v.RegisterValidation("payment_method", validatePaymentMethod)
		_ = v.RegisterValidation("overview_status", validateOverviewStatus)
		_ = v.RegisterValidation("due_day", validateDueDay)
	}
}

func validateTransactionType(fl validator.FieldLevel) bool {
	return models.TransactionType(fl.Field().String()).Valid()
}

func validatePaymentMethod(fl validator.FieldLevel) bool {
	return models.PaymentMethod(fl.Field().String()).Valid()
}

func validateOverviewStatus(fl validator.FieldLevel) bool {
	switch installment.StatusFilter(fl.Field().String()) {
	case installment.StatusAll, installment.StatusActive, installment.StatusSettled:
		return true
	}
	return false
}

func validateDueDay(fl validator.FieldLevel) bool {
	return installment.ValidDueDay(int(fl.Field().Int()))
}
