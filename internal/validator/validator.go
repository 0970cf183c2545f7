// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin binding engine is not go-playground/validator")
	}

	rules := map[string]validator.Func{
		"iso_date":            validateISODate,
		"request_status":      validateRequestStatus,
		"decision":            validateDecision,
		"notification_type":   validateNotificationType,
		"balance_change_type": validateBalanceChangeType,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("failed to register %q validator: %w", tag, err)
		}
	}
	return nil
}

func validateISODate(fl validator.FieldLevel) bool {
	_, err := time.Parse("2006-01-02", fl.Field().String())
	return err == nil
}

func validateRequestStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "pending", "hr_pending", "approved", "rejected":
		return true
	}
	return false
}

func validateDecision(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "approved", "rejected":
		return true
	}
	return false
}

func validateNotificationType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "info", "success", "warning", "reminder":
		return true
	}
	return false
}

func validateBalanceChangeType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "accrual", "deduction", "adjustment":
		return true
	}
	return false
}
