package service

import "errors"

// Sentinel errors surfaced by the inventory and issuance services. Handlers
// map them to HTTP statuses; none of them are retried.
var (
	ErrItemNotFound       = errors.New("item not found")
	ErrTeacherNotFound    = errors.New("teacher not found")
	ErrDepartmentNotFound = errors.New("department not found")
	ErrIssueNotFound      = errors.New("issue not found")
	ErrCartEmpty          = errors.New("cart is empty")
	ErrSignatureRequired  = errors.New("signature required")
	ErrSignatureInvalid   = errors.New("signature payload could not be decoded")
	ErrInvalidQuantity    = errors.New("quantity is not a valid integer")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrPairingNotFound    = errors.New("pairing code not found or expired")
)
