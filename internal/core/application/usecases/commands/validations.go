package commands

import (
	"reflect"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"

	"gopkg.in/go-playground/validator.v9"
)

// newDraftValidator returns a validator that knows the batch entry rules:
//   - courier_type: one of the catalogue names
//   - time_range: an HH:MM-HH:MM window
//   - order_weight: a plain decimal literal within the order weight bounds
func newDraftValidator() *validator.Validate {
	v := validator.New()
	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("courier_type", courierTypeRule)
	_ = v.RegisterValidation("time_range", timeRangeRule)
	_ = v.RegisterValidation("order_weight", orderWeightRule)
	return v
}

func courierTypeRule(fl validator.FieldLevel) bool {
	s, ok := stringField(fl)
	if !ok {
		return false
	}
	_, err := courier.ParseType(s)
	return err == nil
}

func timeRangeRule(fl validator.FieldLevel) bool {
	s, ok := stringField(fl)
	if !ok {
		return false
	}
	_, err := kernel.ParseTimeRange(s)
	return err == nil
}

func orderWeightRule(fl validator.FieldLevel) bool {
	s, ok := stringField(fl)
	if !ok {
		return false
	}
	_, err := kernel.ParseOrderWeight(s)
	return err == nil
}

func stringField(fl validator.FieldLevel) (string, bool) {
	if fl.Field().Kind() != reflect.String {
		return "", false
	}
	return fl.Field().String(), true
}
