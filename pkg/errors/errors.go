// Package errors provides the structured error and warning types used across
// the ridgereg estimator. Errors are created with stack traces attached via
// cockroachdb/errors and marshal themselves as structured zerolog objects.
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	Warning handling
//
// ===========================================================================

var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		log.Printf("ridgereg-warning: %v\n", w)
	}
	// zerolog sink, set lazily to avoid an import cycle with pkg/log.
	zerologWarnFunc func(warning error)
)

// SetWarningHandler replaces the process-wide warning handler. Warnings are
// advisory; the operation that raised one has still produced a result.
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc routes warnings through a zerolog logger.
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn emits a warning through the configured sink.
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}
	if warningHandler != nil {
		warningHandler(w)
	}
}

// IllConditionedWarning is raised when an unregularized solve succeeds but
// the system's condition number is large enough that the coefficients may
// carry substantial floating-point error.
type IllConditionedWarning struct {
	Op        string
	Condition float64
}

func (w *IllConditionedWarning) Error() string {
	return fmt.Sprintf("%s: system is ill-conditioned (condition number %.4g); coefficients may be inaccurate. Consider lambda > 0", w.Op, w.Condition)
}

// MarshalZerologObject adds the structured warning fields to a zerolog event.
func (w *IllConditionedWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("op", w.Op).
		Float64("condition", w.Condition).
		Str("type", "IllConditionedWarning")
}

// NewIllConditionedWarning creates a new IllConditionedWarning.
func NewIllConditionedWarning(op string, condition float64) *IllConditionedWarning {
	return &IllConditionedWarning{Op: op, Condition: condition}
}

// ===========================================================================
//
//	Structured error types
//
// ===========================================================================

// InvalidInputError reports malformed input data: missing or non-numeric
// covariate values, an empty observation set, an unknown response column, or
// a covariate-name mismatch between fit and predict. Bad values are never
// imputed or silently coerced; the offending call fails immediately.
type InvalidInputError struct {
	Op        string
	Reason    string
	Covariate string // offending covariate name, empty when not column-specific
	Row       int    // offending row index, -1 when not row-specific
}

func (e *InvalidInputError) Error() string {
	switch {
	case e.Covariate != "" && e.Row >= 0:
		return fmt.Sprintf("ridgereg: %s: invalid input: %s (covariate %q, row %d)", e.Op, e.Reason, e.Covariate, e.Row)
	case e.Covariate != "":
		return fmt.Sprintf("ridgereg: %s: invalid input: %s (covariate %q)", e.Op, e.Reason, e.Covariate)
	default:
		return fmt.Sprintf("ridgereg: %s: invalid input: %s", e.Op, e.Reason)
	}
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *InvalidInputError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("op", e.Op).
		Str("reason", e.Reason).
		Str("covariate", e.Covariate).
		Int("row", e.Row).
		Str("type", "InvalidInputError")
}

// NewInvalidInputError creates an InvalidInputError with a stack trace.
func NewInvalidInputError(op, reason string) error {
	err := &InvalidInputError{Op: op, Reason: reason, Row: -1}
	return errors.WithStack(err)
}

// NewInvalidValueError creates an InvalidInputError pinpointing a covariate
// and row, with a stack trace.
func NewInvalidValueError(op, reason, covariate string, row int) error {
	err := &InvalidInputError{Op: op, Reason: reason, Covariate: covariate, Row: row}
	return errors.WithStack(err)
}

// SingularSystemError reports a rank-deficient design matrix at lambda = 0,
// where the unregularized normal equations have no unique solution. Any
// lambda > 0 makes the system positive definite, so this error is only
// possible for an ordinary least-squares fit. The estimator never bumps
// lambda on the caller's behalf to work around it.
type SingularSystemError struct {
	Op   string
	Rows int
	Cols int
}

func (e *SingularSystemError) Error() string {
	return fmt.Sprintf("ridgereg: %s: design matrix (%d x %d) is singular at lambda = 0; use lambda > 0 or remove collinear covariates", e.Op, e.Rows, e.Cols)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *SingularSystemError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("op", e.Op).
		Int("rows", e.Rows).
		Int("cols", e.Cols).
		Str("type", "SingularSystemError")
}

// NewSingularSystemError creates a SingularSystemError with a stack trace.
func NewSingularSystemError(op string, rows, cols int) error {
	err := &SingularSystemError{Op: op, Rows: rows, Cols: cols}
	return errors.WithStack(err)
}

// NotFittedError reports Predict, Transform or a coefficient accessor being
// called before Fit.
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("ridgereg: %s: this model is not fitted yet. Call Fit() before using %s()", e.ModelName, e.Method)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError creates a NotFittedError with a stack trace.
func NewNotFittedError(modelName, method string) error {
	err := &NotFittedError{ModelName: modelName, Method: method}
	return errors.WithStack(err)
}

// DimensionError reports input whose shape does not match what the model was
// fitted with or what the operation requires.
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns
}

func (e *DimensionError) Error() string {
	axisName := "columns"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("ridgereg: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("op", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("type", "DimensionError")
}

// NewDimensionError creates a DimensionError with a stack trace.
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.WithStack(err)
}

// ValueError reports an argument whose value (rather than shape) is invalid
// for the operation.
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("ridgereg: %s: %s", e.Op, e.Message)
}

// NewValueError creates a ValueError with a stack trace.
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	cockroachdb/errors wrappers
//
// ===========================================================================

// Is reports whether err matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain matching target's type.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap wraps an error with a message.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf wraps an error with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New creates a new error with a stack trace.
func New(message string) error {
	return errors.New(message)
}

// Newf creates a new formatted error with a stack trace.
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack annotates an error with a stack trace.
func WithStack(err error) error {
	return errors.WithStack(err)
}
