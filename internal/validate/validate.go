package validate

import (
	"fmt"
	"math"
	"regexp"

	"github.com/akasem/divvy/internal/money"
)

// Code identifies a validation failure in a stable, machine-readable way.
type Code string

const (
	CodeRequired              Code = "REQUIRED"
	CodeNegativeValue         Code = "NEGATIVE_VALUE"
	CodeNotFinite             Code = "NOT_FINITE"
	CodeDuplicateID           Code = "DUPLICATE_ID"
	CodeUnresolvedReference   Code = "UNRESOLVED_REFERENCE"
	CodePercentageOutOfRange  Code = "PERCENTAGE_OUT_OF_RANGE"
	CodePercentageSumMismatch Code = "PERCENTAGE_SUM_MISMATCH"
	CodeEmptyString           Code = "EMPTY_STRING"
	CodeInvalidEmail          Code = "INVALID_EMAIL"
)

// Error is a typed validation failure carrying the stable code and the name
// of the offending field. Guard functions return it synchronously; callers
// decide whether the failure is fatal or recoverable.
type Error struct {
	Code    Code
	Field   string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.Field, e.Message, e.Code)
}

func newError(code Code, field, format string, args ...interface{}) *Error {
	return &Error{Code: code, Field: field, Message: fmt.Sprintf(format, args...)}
}

// percentSumTolerance is the absolute tolerance, in scaled percentage units,
// allowed when checking that percentages sum to 100 (0.01 of a percent).
const percentSumTolerance = money.Percentage(100)

// emailPattern is a syntactic shape check only, not RFC 5322 enforcement.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Required fails when a required value is missing.
func Required(field string, present bool) error {
	if !present {
		return newError(CodeRequired, field, "value is required")
	}
	return nil
}

// NonNegativeAmount fails when a scaled amount is below zero.
func NonNegativeAmount(field string, amount money.Amount) error {
	if amount < 0 {
		return newError(CodeNegativeValue, field, "amount must not be negative, got %s", amount.Format())
	}
	return nil
}

// FiniteNumber fails when a raw numeric input is NaN or infinite. Applied
// before any float crosses into scaled arithmetic.
func FiniteNumber(field string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return newError(CodeNotFinite, field, "value must be a finite number")
	}
	return nil
}

// NoDuplicateIDs fails when the same id appears twice in a collection.
func NoDuplicateIDs(field string, ids []int64) error {
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return newError(CodeDuplicateID, field, "duplicate id %d", id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// MembersResolve fails when any referenced id is not in the known member set
// (referential integrity between shares/payers and members).
func MembersResolve(field string, refs []int64, memberIDs []int64) error {
	known := make(map[int64]struct{}, len(memberIDs))
	for _, id := range memberIDs {
		known[id] = struct{}{}
	}
	for _, ref := range refs {
		if _, ok := known[ref]; !ok {
			return newError(CodeUnresolvedReference, field, "unknown member %d", ref)
		}
	}
	return nil
}

// PercentageInRange fails when a single percentage falls outside [0, 100].
func PercentageInRange(field string, p money.Percentage) error {
	if p < 0 || p > 100*money.Scale {
		return newError(CodePercentageOutOfRange, field, "percentage %s out of range [0, 100]", fmt.Sprintf("%.4f", p.Float()))
	}
	return nil
}

// PercentagesSumTo100 fails when the percentages do not sum to 100 within an
// absolute tolerance of 0.01.
func PercentagesSumTo100(field string, percentages []money.Percentage) error {
	var sum money.Percentage
	for _, p := range percentages {
		sum += p
	}
	diff := sum - 100*money.Scale
	if diff < 0 {
		diff = -diff
	}
	if diff > percentSumTolerance {
		return newError(CodePercentageSumMismatch, field, "percentages sum to %.4f, want 100", sum.Float())
	}
	return nil
}

// NonEmptyString fails when a string is empty.
func NonEmptyString(field, value string) error {
	if value == "" {
		return newError(CodeEmptyString, field, "must not be empty")
	}
	return nil
}

// Email fails when a string does not look like an email address.
func Email(field, value string) error {
	if !emailPattern.MatchString(value) {
		return newError(CodeInvalidEmail, field, "invalid email address")
	}
	return nil
}
