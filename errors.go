package bankauth

import (
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// ErrTokenNotFound is the error we return when no confirmation token
// matches the given value, identifier, or owner
var ErrTokenNotFound = errors.New("confirmation token not found")

// ErrUserNotFound is the error we return when a token owner cannot be resolved
var ErrUserNotFound = errors.New("user not found")

// ErrAccountNotFound is the error we return for missing bank accounts
var ErrAccountNotFound = errors.New("bank account not found")

// ErrNoEmptyString rejects empty required values
var ErrNoEmptyString = errors.New("value should not be an empty string")

// ErrMismatchedHashAndPassword is the error for a failed password comparison
var ErrMismatchedHashAndPassword = errors.New("password does not match")

// Transfer violations. These are collected per field into a
// validation.Errors map rather than returned as faults; the caller
// decides how to surface them.
var (
	// ErrReceiverAccountNotFound fires when the canonical receiver number
	// resolves to no account
	ErrReceiverAccountNotFound = errors.New("receiver account number does not exist")
	// ErrSelfTransferNotAllowed fires when the receiver account belongs to the sender
	ErrSelfTransferNotAllowed = errors.New("receiver account number belongs to the sender")
	// ErrInsufficientFunds fires when the amount exceeds the sender's balance
	ErrInsufficientFunds = errors.New("amount exceeds the available balance")
)

// TextCodeTokenExpired marks categorized errors raised for expired
// reset tokens.
const TextCodeTokenExpired = "TOKEN_EXPIRED"

// IsNotFound will check for lookup-miss errors, both our sentinels and
// categorized errors coming back from the store layer.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTokenNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrAccountNotFound) {
		return true
	}
	return goerrors.IsNotFound(err)
}
