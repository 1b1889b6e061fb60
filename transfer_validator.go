package bankauth

import (
	"context"
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	goerrors "github.com/goliatone/go-errors"
)

// Field keys used for transfer violations.
const (
	FieldReceiverAccountNumber = "receiver_account_number"
	FieldAmount                = "amount"
)

// TransferDraft carries the fields of an in flight transfer form.
// Amount is a pointer so "not yet supplied" is distinguishable from
// zero; presence is validated elsewhere.
type TransferDraft struct {
	ReceiverAccountNumber string   `json:"receiver_account_number"`
	Amount                *float64 `json:"amount,omitempty"`
	Title                 string   `json:"title,omitempty"`
}

// TransferValidator runs the read only checks performed while a
// transfer is being validated. Neither method mutates store state; the
// balance read is only as current as the call itself.
type TransferValidator struct {
	accounts AccountStore
	format   AccountNumberFormat
	logger   Logger
}

// NewTransferValidator creates a validator with the default account
// number format.
func NewTransferValidator(accounts AccountStore, opts ...TransferValidatorOption) *TransferValidator {
	v := &TransferValidator{
		accounts: accounts,
		format:   DefaultAccountNumberFormat(),
		logger:   defLogger{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(v)
		}
	}
	return v
}

type TransferValidatorOption func(*TransferValidator)

// WithAccountNumberFormat overrides the canonical layout.
func WithAccountNumberFormat(format AccountNumberFormat) TransferValidatorOption {
	return func(v *TransferValidator) {
		v.format = format
	}
}

// WithValidatorLogger overrides the logger used by the validator.
func WithValidatorLogger(logger Logger) TransferValidatorOption {
	return func(v *TransferValidator) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// ValidateReceiver canonicalizes the receiver account number and checks
// it resolves to an account that does not belong to the sender. The
// canonical number replaces draft.ReceiverAccountNumber so callers
// persist the canonical form, not the raw input. Violations come back
// keyed by field; only unexpected store failures are returned as faults.
func (v *TransferValidator) ValidateReceiver(ctx context.Context, senderID int64, draft *TransferDraft) (validation.Errors, error) {
	violations := validation.Errors{}

	draft.ReceiverAccountNumber = v.format.Normalize(draft.ReceiverAccountNumber)

	account, err := v.accounts.FindByNumber(ctx, draft.ReceiverAccountNumber)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			violations[FieldReceiverAccountNumber] = ErrReceiverAccountNotFound
			return violations, nil
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to look up receiver account")
	}

	if account.UserID == senderID {
		violations[FieldReceiverAccountNumber] = ErrSelfTransferNotAllowed
	}

	return violations, nil
}

// ValidateAmount checks the proposed amount against the sender's
// current balance. An amount equal to the balance is allowed; an absent
// amount produces no violation at this stage.
func (v *TransferValidator) ValidateAmount(ctx context.Context, senderID int64, draft *TransferDraft) (validation.Errors, error) {
	violations := validation.Errors{}

	account, err := v.accounts.FindByUserID(ctx, senderID)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			// the sender is authenticated, a missing account is a data fault
			return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "sender has no bank account")
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to look up sender account")
	}

	if draft.Amount != nil && *draft.Amount > account.Balance {
		violations[FieldAmount] = ErrInsufficientFunds
	}

	return violations, nil
}
