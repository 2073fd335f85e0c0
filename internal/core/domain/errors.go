package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidInput is the sentinel every validation error unwraps to, so the
// API layer can map the whole family to a single HTTP status with errors.Is.
var ErrInvalidInput = errors.New("invalid shipment input")

var ErrQuoteNotFound = errors.New("quote not found")
var ErrForbidden = errors.New("access forbidden")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrAccountNotFound = errors.New("account not found")
var ErrAccountExists = errors.New("account already exists")

// MissingFieldError reports an absent required field.
type MissingFieldError struct {
	Field   string
	Message string
}

func (e *MissingFieldError) Error() string { return e.Message }
func (e *MissingFieldError) Unwrap() error { return ErrInvalidInput }

// InvalidRangeError reports a numeric field outside its allowed range.
type InvalidRangeError struct {
	Field   string
	Message string
}

func (e *InvalidRangeError) Error() string { return e.Message }
func (e *InvalidRangeError) Unwrap() error { return ErrInvalidInput }

// InvalidEnumError reports a value outside a closed set of accepted values.
type InvalidEnumError struct {
	Field   string
	Value   string
	Allowed []string
}

func (e *InvalidEnumError) Error() string {
	return fmt.Sprintf("%s must be one of: %s (got %q)", e.Field, strings.Join(e.Allowed, ", "), e.Value)
}

func (e *InvalidEnumError) Unwrap() error { return ErrInvalidInput }

// UnsupportedShippingMethodError reports a shipping method outside
// {sea_fcl, sea_lcl, air, express}.
type UnsupportedShippingMethodError struct {
	Method string
}

func (e *UnsupportedShippingMethodError) Error() string {
	return fmt.Sprintf("Unsupported shipping method: %s", e.Method)
}

func (e *UnsupportedShippingMethodError) Unwrap() error { return ErrInvalidInput }
