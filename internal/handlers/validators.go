package handlers

import (
	"errors"
	"fmt"

	"github.com/SscSPs/boutique_ops/internal/utils/calendar"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the date and month key tags used by request DTOs to gin's validator.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin validator engine is not go-playground/validator")
	}
	if err := v.RegisterValidation("datekey", func(fl validator.FieldLevel) bool {
		_, err := calendar.ParseDateKey(fl.Field().String())
		return err == nil
	}); err != nil {
		return fmt.Errorf("register datekey: %w", err)
	}
	if err := v.RegisterValidation("monthkey", func(fl validator.FieldLevel) bool {
		_, err := calendar.ParseMonthKey(fl.Field().String())
		return err == nil
	}); err != nil {
		return fmt.Errorf("register monthkey: %w", err)
	}
	return nil
}

func firstInvalidField(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Field()
	}
	return ""
}
