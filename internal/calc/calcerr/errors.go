// Package calcerr holds the error types shared by the laboratory calculators.
package calcerr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
)

// InsufficientDataError is returned when too few samples were entered to
// compute a value.
type InsufficientDataError struct {
	What string
	Have int
	Need int
}

func (e *InsufficientDataError) Error() string {
	if e.Have == 0 {
		return fmt.Sprintf("no sample data entered for %s", e.What)
	}
	return fmt.Sprintf("insufficient data for %s: have %d, need at least %d", e.What, e.Have, e.Need)
}

// InvalidMeasurementError is returned when a required numeric field holds
// something that is not a number.
type InvalidMeasurementError struct {
	Field string
	Value string
	Err   error
}

func (e *InvalidMeasurementError) Error() string {
	return fmt.Sprintf("invalid %s %q: please enter a valid number", e.Field, e.Value)
}

func (e *InvalidMeasurementError) Unwrap() error { return e.Err }

// ErrNotFinite is wrapped by InvalidMeasurementError for NaN and infinite
// readings, which strconv accepts as numbers.
var ErrNotFinite = errors.New("value is not finite")

// OutOfRangeError is returned for a value outside a closed tabulated interval.
type OutOfRangeError struct {
	Quantity string
	Value    float64
	Min      float64
	Max      float64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s %g is out of range (%g to %g)", e.Quantity, e.Value, e.Min, e.Max)
}

// PreconditionError is returned when an operation depends on a value the
// caller has not computed yet.
type PreconditionError struct {
	Msg string
}

func (e *PreconditionError) Error() string { return e.Msg }

// DivisionByZeroError is returned instead of producing Inf or NaN.
type DivisionByZeroError struct {
	Quantity string
}

func (e *DivisionByZeroError) Error() string {
	return fmt.Sprintf("cannot compute %s: denominator is zero", e.Quantity)
}

// StatusCode maps a calculation error to the HTTP status a handler should
// answer with.
func StatusCode(err error) int {
	var (
		insufficient *InsufficientDataError
		invalid      *InvalidMeasurementError
		outOfRange   *OutOfRangeError
		precondition *PreconditionError
		divZero      *DivisionByZeroError
	)
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &invalid):
		return http.StatusBadRequest
	case errors.As(err, &insufficient),
		errors.As(err, &outOfRange),
		errors.As(err, &precondition),
		errors.As(err, &divZero):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// IsCalculation reports whether err belongs to the calculation taxonomy and
// may be shown to the user verbatim.
func IsCalculation(err error) bool {
	code := StatusCode(err)
	return code == http.StatusBadRequest || code == http.StatusUnprocessableEntity
}

// Write answers a failed calculation request. Taxonomy errors are shown to
// the user as they are; anything else is logged and hidden.
func Write(w http.ResponseWriter, err error) {
	code := StatusCode(err)
	if IsCalculation(err) {
		logrus.WithError(err).Debug("calculation rejected")
		http.Error(w, err.Error(), code)
		return
	}
	logrus.WithError(err).Error("calculation failed")
	http.Error(w, "Calculation error", code)
}
