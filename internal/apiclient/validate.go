package apiclient

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/subscription-admin-console/internal/models"
)

// Границы процентной скидки.
const (
	MinPercent = 1
	MaxPercent = 100
)

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterStructValidation(promoDiscountLevel, models.CreatePromoCodeRequest{})
	return v
}

// promoDiscountLevel проверяет значение скидки в зависимости от её типа.
func promoDiscountLevel(sl validator.StructLevel) {
	req := sl.Current().Interface().(models.CreatePromoCodeRequest)
	switch req.Type {
	case models.DiscountPercent:
		if req.Value < MinPercent || req.Value > MaxPercent {
			sl.ReportError(req.Value, "discountValue", "Value", "percent", "")
		}
	case models.DiscountRUB:
		if req.Value <= 0 {
			sl.ReportError(req.Value, "discountValue", "Value", "gt", "0")
		}
	}
}

// check прогоняет структуру через валидатор и превращает ошибки в ValidationError.
func (c *Client) check(s any) error {
	err := c.validate.Struct(s)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return &ValidationError{Message: err.Error()}
	}
	msgs := make([]string, 0, len(errs))
	for _, fe := range errs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("field %s is a required field", fe.Field()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("field %s must be one of %s", fe.Field(), fe.Param()))
		case "percent":
			msgs = append(msgs, fmt.Sprintf("field %s must be between %d and %d for percent discount", fe.Field(), MinPercent, MaxPercent))
		case "gt":
			msgs = append(msgs, fmt.Sprintf("field %s must be greater than %s", fe.Field(), fe.Param()))
		case "url":
			msgs = append(msgs, fmt.Sprintf("field %s must be a valid url", fe.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("field %s is not valid", fe.Field()))
		}
	}
	return &ValidationError{Message: strings.Join(msgs, ", ")}
}
