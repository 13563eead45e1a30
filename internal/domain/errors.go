package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnparseableDate is returned for a birth or entry date that does not
	// have the day.month.year shape.
	ErrUnparseableDate = errors.New("unparseable date")
	// ErrUnknownStatus is returned for a status code outside 4A/4B/4C.
	ErrUnknownStatus = errors.New("unknown status code")
	// ErrInvalidGender is returned when a profile gender is neither male nor female.
	ErrInvalidGender = errors.New("invalid gender")
	// ErrContributionDaysOutOfRange is returned for negative or implausibly large day counts.
	ErrContributionDaysOutOfRange = errors.New("contribution days out of range")
)

// FieldError ties a validation failure to the profile field that caused it.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Field, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
