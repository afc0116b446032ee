package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the lifecycle error taxonomy. Every lifecycle operation
// classifies its failures through one of these so adapters can map them to
// transport-level responses without parsing message text.
var (
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidState      = errors.New("invalid state")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrPaymentFailed     = errors.New("payment failed")
	ErrRefundFailed      = errors.New("refund failed")
	ErrConflict          = errors.New("conflict")
)

// ForbiddenError indicates that the caller lacks ownership of, or a role
// permitting access to, the target object.
type ForbiddenError struct {
	CallerID   string
	ObjectName string
	ObjectID   string
	Cause      error
}

// NewForbiddenError creates a ForbiddenError without an underlying cause.
func NewForbiddenError(callerID, objectName, objectID string) *ForbiddenError {
	return &ForbiddenError{
		CallerID:   callerID,
		ObjectName: objectName,
		ObjectID:   objectID,
	}
}

// NewForbiddenErrorWithCause creates a ForbiddenError wrapping an underlying cause.
func NewForbiddenErrorWithCause(callerID, objectName, objectID string, cause error) *ForbiddenError {
	return &ForbiddenError{
		CallerID:   callerID,
		ObjectName: objectName,
		ObjectID:   objectID,
		Cause:      cause,
	}
}

func (e *ForbiddenError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: caller %s may not access %s %s (cause: %s)",
			ErrForbidden, e.CallerID, e.ObjectName, e.ObjectID, e.Cause)
	}
	return fmt.Sprintf("%s: caller %s may not access %s %s",
		ErrForbidden, e.CallerID, e.ObjectName, e.ObjectID)
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

// InvalidStateError indicates that an operation is not permitted while the
// target object is in its current status.
type InvalidStateError struct {
	ObjectName string
	Current    string
	Operation  string
	Cause      error
}

// NewInvalidStateError creates an InvalidStateError without an underlying cause.
func NewInvalidStateError(objectName, current, operation string) *InvalidStateError {
	return &InvalidStateError{
		ObjectName: objectName,
		Current:    current,
		Operation:  operation,
	}
}

// NewInvalidStateErrorWithCause creates an InvalidStateError wrapping an underlying cause.
func NewInvalidStateErrorWithCause(objectName, current, operation string, cause error) *InvalidStateError {
	return &InvalidStateError{
		ObjectName: objectName,
		Current:    current,
		Operation:  operation,
		Cause:      cause,
	}
}

func (e *InvalidStateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s in status %s does not allow %s (cause: %s)",
			ErrInvalidState, e.ObjectName, e.Current, e.Operation, e.Cause)
	}
	return fmt.Sprintf("%s: %s in status %s does not allow %s",
		ErrInvalidState, e.ObjectName, e.Current, e.Operation)
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}

// InvalidTransitionError indicates a status change that is not present in the
// transition table. It carries the allowed next statuses so clients can render
// an actionable message.
type InvalidTransitionError struct {
	ObjectName string
	From       string
	To         string
	Allowed    []string
}

// NewInvalidTransitionError creates an InvalidTransitionError reporting the allowed set.
func NewInvalidTransitionError(objectName, from, to string, allowed []string) *InvalidTransitionError {
	return &InvalidTransitionError{
		ObjectName: objectName,
		From:       from,
		To:         to,
		Allowed:    allowed,
	}
}

func (e *InvalidTransitionError) Error() string {
	allowed := "none"
	if len(e.Allowed) > 0 {
		allowed = strings.Join(e.Allowed, ", ")
	}
	return fmt.Sprintf("%s: %s cannot move from %s to %s (allowed: %s)",
		ErrInvalidTransition, e.ObjectName, e.From, e.To, allowed)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// InsufficientStockError indicates a reservation exceeding the on-hand quantity.
type InsufficientStockError struct {
	ItemID    string
	Requested int
	Available int
}

// NewInsufficientStockError creates an InsufficientStockError reporting both quantities.
func NewInsufficientStockError(itemID string, requested, available int) *InsufficientStockError {
	return &InsufficientStockError{
		ItemID:    itemID,
		Requested: requested,
		Available: available,
	}
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("%s: item %s has %d on hand, %d requested",
		ErrInsufficientStock, e.ItemID, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// PaymentFailedError indicates that the payment gateway declined or failed a charge.
type PaymentFailedError struct {
	OrderID string
	Cause   error
}

// NewPaymentFailedError creates a PaymentFailedError wrapping the gateway failure.
func NewPaymentFailedError(orderID string, cause error) *PaymentFailedError {
	return &PaymentFailedError{
		OrderID: orderID,
		Cause:   cause,
	}
}

func (e *PaymentFailedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: order %s (cause: %s)", ErrPaymentFailed, e.OrderID, e.Cause)
	}
	return fmt.Sprintf("%s: order %s", ErrPaymentFailed, e.OrderID)
}

func (e *PaymentFailedError) Unwrap() error {
	return ErrPaymentFailed
}

// RefundFailedError indicates that the payment gateway failed to refund a paid
// order during cancellation. The enclosing cancellation is rolled back.
type RefundFailedError struct {
	OrderID  string
	IntentID string
	Cause    error
}

// NewRefundFailedError creates a RefundFailedError wrapping the gateway failure.
func NewRefundFailedError(orderID, intentID string, cause error) *RefundFailedError {
	return &RefundFailedError{
		OrderID:  orderID,
		IntentID: intentID,
		Cause:    cause,
	}
}

func (e *RefundFailedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: order %s, intent %s (cause: %s)",
			ErrRefundFailed, e.OrderID, e.IntentID, e.Cause)
	}
	return fmt.Sprintf("%s: order %s, intent %s", ErrRefundFailed, e.OrderID, e.IntentID)
}

func (e *RefundFailedError) Unwrap() error {
	return ErrRefundFailed
}

// ConflictError indicates a uniqueness violation, e.g. a duplicate order number.
type ConflictError struct {
	ParamName string
	Value     any
	Cause     error
}

// NewConflictError creates a ConflictError without an underlying cause.
func NewConflictError(paramName string, value any) *ConflictError {
	return &ConflictError{
		ParamName: paramName,
		Value:     value,
	}
}

// NewConflictErrorWithCause creates a ConflictError wrapping an underlying cause.
func NewConflictErrorWithCause(paramName string, value any, cause error) *ConflictError {
	return &ConflictError{
		ParamName: paramName,
		Value:     value,
		Cause:     cause,
	}
}

func (e *ConflictError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s %v already exists (cause: %s)",
			ErrConflict, e.ParamName, e.Value, e.Cause)
	}
	return fmt.Sprintf("%s: %s %v already exists", ErrConflict, e.ParamName, e.Value)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}
