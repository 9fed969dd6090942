// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"ledgerly/internal/finance"
)

var hexColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		registerAll(v)
	}
}

func registerAll(v *validator.Validate) {
	_ = v.RegisterValidation("hex_color", validateHexColor)
	_ = v.RegisterValidation("transaction_type", validateTransactionType)
	_ = v.RegisterValidation("savings_type", validateSavingsType)
	_ = v.RegisterValidation("period", validatePeriod)
}

func validateHexColor(fl validator.FieldLevel) bool {
	return hexColorRegex.MatchString(fl.Field().String())
}

func validateTransactionType(fl validator.FieldLevel) bool {
	switch finance.TransactionType(fl.Field().String()) {
	case finance.TransactionIncome, finance.TransactionExpense:
		return true
	}
	return false
}

func validateSavingsType(fl validator.FieldLevel) bool {
	switch finance.SavingsType(fl.Field().String()) {
	case finance.SavingsDeposit, finance.SavingsWithdrawal:
		return true
	}
	return false
}

func validatePeriod(fl validator.FieldLevel) bool {
	_, err := finance.ParsePeriod(fl.Field().String())
	return err == nil
}
