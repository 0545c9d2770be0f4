package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"sparkle/shared/constant"
	"sparkle/shared/failure"
	"strings"
	"time"

	val "github.com/go-playground/validator/v10"
)

var validate *val.Validate

func validateBookingDate(field val.FieldLevel) bool {
	_, err := time.Parse(constant.BookingDateFormat, field.Field().String())

	return err == nil
}

func validateBookingTime(field val.FieldLevel) bool {
	_, err := time.Parse(constant.BookingTimeFormat, field.Field().String())

	return err == nil
}

// validateCurrency accepts ISO 4217 codes in any case; the processor wants lower case.
func validateCurrency(field val.FieldLevel) bool {
	return validate.Var(strings.ToUpper(field.Field().String()), "iso4217") == nil
}

func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return field.Name
	}

	return name
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonFieldName)

	rules := map[string]val.Func{
		"bookingdate": validateBookingDate,
		"bookingtime": validateBookingTime,
		"currency":    validateCurrency,
	}

	for tag, fn := range rules {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
}

// Validate reads from the given io.Reader into the given struct, and then performs validation
// on the struct using the validator package. If the struct is invalid according to the
// validation rules, an error is returned. Otherwise, nil is returned.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)

	if err := decoder.Decode(data); err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	if err := validate.Struct(data); err != nil {
		return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	if err := validate.Var(field, tag); err != nil {
		return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
	}

	return nil
}
