package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"time"

	"cottage/shared/constant"
	"cottage/shared/failure"

	val "github.com/go-playground/validator/v10"
)

var validate *val.Validate

var (
	dateOnlyPattern     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	indianMobilePattern = regexp.MustCompile(`^[6-9]\d{9}$`)
)

// registerDateOnlyValidation accepts only strict YYYY-MM-DD calendar dates.
func registerDateOnlyValidation(field val.FieldLevel) bool {
	value, ok := field.Field().Interface().(string)
	if !ok {
		return false
	}

	if !dateOnlyPattern.MatchString(value) {
		return false
	}

	_, err := time.Parse(constant.DateOnlyFormat, value)

	return err == nil
}

// registerIndianMobileValidation checks the local mobile numbering convention:
// exactly 10 digits with a leading digit in 6-9.
func registerIndianMobileValidation(field val.FieldLevel) bool {
	value, ok := field.Field().Interface().(string)
	if !ok {
		return false
	}

	return indianMobilePattern.MatchString(value)
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())

	err := validate.RegisterValidation("dateonly", registerDateOnlyValidation)
	if err != nil {
		panic(err)
	}

	err = validate.RegisterValidation("inmobile", registerIndianMobileValidation)
	if err != nil {
		panic(err)
	}
}

// Validate reads from the given io.Reader into the given struct, and then performs validation
// on the struct using the validator package. If the struct is invalid according to the
// validation rules, an error is returned. Otherwise, nil is returned.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)
	err := decoder.Decode(data)

	if err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	err := validate.Struct(data)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	err := validate.Var(field, tag)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}
