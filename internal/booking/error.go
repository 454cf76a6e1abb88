package booking

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrIdempotencyKey    = errors.New("idempotency key not found")
	ErrDuplicateKey      = errors.New("idempotency key already used")
	ErrNextID            = errors.New("get next id from generator")
	ErrRecordNotFound    = errors.New("record not found")
	ErrInvalidTransition = errors.New("invalid booking status transition")
	ErrStatusChanged     = errors.New("booking status changed concurrently")
)

type Code string

const (
	CodeInvalidDateRange      Code = "InvalidDateRange"
	CodeInvalidAdultCount     Code = "InvalidAdultCount"
	CodeInvalidChildCount     Code = "InvalidChildCount"
	CodeInvalidChildAge       Code = "InvalidChildAge"
	CodeInvalidRoomRate       Code = "InvalidRoomRate"
	CodeInvalidRoom           Code = "InvalidRoom"
	CodeInvalidEmail          Code = "InvalidEmail"
	CodeInvalidPaymentMethod  Code = "InvalidPaymentMethod"
	CodeInvalidCardNumber     Code = "InvalidCardNumber"
	CodeInvalidExpiry         Code = "InvalidExpiry"
	CodeInvalidCVV            Code = "InvalidCVV"
	CodeMissingCardholderName Code = "MissingCardholderName"
	CodeInvalidPricing        Code = "InvalidPricing"
	CodeInvalidStatus         Code = "InvalidStatus"
)

type FieldError struct {
	Field   string `json:"field"`
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

// InputError collects every field-level problem of a request so a form can
// show them all at once.
type InputError struct {
	errors []FieldError
}

func newInputError() *InputError {
	//nolint:exhaustruct
	return &InputError{}
}

func IsInputError(err error) *InputError {
	if err == nil {
		return nil
	}

	var inputError *InputError

	if errors.As(err, &inputError) {
		return inputError
	}

	return nil
}

func (ie *InputError) fieldsCount() int {
	return len(ie.errors)
}

func (ie *InputError) addError(field string, code Code, msg string) {
	ie.errors = append(ie.errors, FieldError{Field: field, Code: code, Message: msg})
}

func (ie *InputError) orNil() error {
	if ie.fieldsCount() == 0 {
		return nil
	}

	return ie
}

func (ie *InputError) Error() string {
	parts := make([]string, 0, len(ie.errors))
	for _, fe := range ie.errors {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field, fe.Code))
	}

	return "invalid input: " + strings.Join(parts, ", ")
}

func (ie *InputError) Errors() []FieldError {
	return ie.errors
}

// Fields groups messages by field, in the shape the booking form renders.
func (ie *InputError) Fields() map[string][]string {
	fields := make(map[string][]string, len(ie.errors))
	for _, fe := range ie.errors {
		fields[fe.Field] = append(fields[fe.Field], fe.Message)
	}

	return fields
}

func (ie *InputError) Has(code Code) bool {
	for _, fe := range ie.errors {
		if fe.Code == code {
			return true
		}
	}

	return false
}
