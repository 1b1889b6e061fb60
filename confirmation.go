package bankauth

import (
	"context"
	"errors"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

// TokenPurpose selects which consumption policy applies.
type TokenPurpose string

const (
	// PurposeActivation confirms a pending registration.
	PurposeActivation TokenPurpose = "activation"
	// PurposeReset confirms a password reset request.
	PurposeReset TokenPurpose = "reset"
)

// ConsumeOutcome is the discrete result of consuming a token. Expected
// expiry is an outcome, not an error.
type ConsumeOutcome string

const (
	// OutcomeConfirmed means the flow may proceed.
	OutcomeConfirmed ConsumeOutcome = "confirmed"
	// OutcomeExpired means the activation link expired and the pending
	// registration was removed; the user must register again.
	OutcomeExpired ConsumeOutcome = "expired"
)

// Confirmations is the single place encoding the use once, time limited
// nature of confirmation tokens for the activation and reset flows.
//
// The reset branch of Consume reports OutcomeConfirmed even when the
// token is missing or already swept, while the activation branch treats
// the same condition as expiry with cleanup. The asymmetry is current
// product behavior; do not unify the branches without a product
// decision.
type Confirmations struct {
	tokens     TokenStore
	users      UserDirectory
	expiration time.Duration
	logger     Logger
	now        func() time.Time
}

// NewConfirmations creates the lifecycle manager with the default 900
// second expiration.
func NewConfirmations(tokens TokenStore, users UserDirectory, opts ...ConfirmationsOption) *Confirmations {
	c := &Confirmations{
		tokens:     tokens,
		users:      users,
		expiration: DefaultTokenExpiration,
		logger:     defLogger{},
		now:        time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

type ConfirmationsOption func(*Confirmations)

// WithExpiration overrides how long tokens stay consumable.
func WithExpiration(d time.Duration) ConfirmationsOption {
	return func(c *Confirmations) {
		if d > 0 {
			c.expiration = d
		}
	}
}

// WithConfirmationsLogger overrides the logger.
func WithConfirmationsLogger(logger Logger) ConfirmationsOption {
	return func(c *Confirmations) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClock overrides the time source, mostly for tests.
func WithClock(now func() time.Time) ConfirmationsOption {
	return func(c *Confirmations) {
		if now != nil {
			c.now = now
		}
	}
}

// Expiration returns the configured token lifetime.
func (c *Confirmations) Expiration() time.Duration {
	return c.expiration
}

// Issue creates and persists a fresh token bound to the user. Multiple
// outstanding tokens per user are permitted.
func (c *Confirmations) Issue(ctx context.Context, user *User) (*ConfirmationToken, error) {
	if user == nil {
		return nil, goerrors.New("cannot issue a token without a user", goerrors.CategoryBadInput)
	}

	token := NewConfirmationToken(user)
	token.CreatedAt = c.now()

	saved, err := c.tokens.Save(ctx, token)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to persist confirmation token")
	}

	c.logger.Debug("issued confirmation token id=%d user=%d", saved.ID, saved.UserID)

	return saved, nil
}

// Consume resolves a token by value and applies the purpose policy.
//
// Before deciding the outcome it sweeps every expired token in the
// store, not just the one being consumed; the sweep is a maintenance
// side effect of any Consume call. If the sweep removes the token being
// consumed, the purpose branch sees it as absent.
func (c *Confirmations) Consume(ctx context.Context, purpose TokenPurpose, value string) (ConsumeOutcome, error) {
	var owner *User

	token, err := c.tokens.FindByValue(ctx, value)
	switch {
	case err == nil:
		owner, err = c.users.FindByID(ctx, token.UserID)
		if err != nil && !errors.Is(err, ErrUserNotFound) {
			return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to resolve token owner")
		}
	case errors.Is(err, ErrTokenNotFound):
		// tolerated; the purpose branch decides what absence means
	default:
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to look up confirmation token")
	}

	if err := c.sweep(ctx); err != nil {
		return "", err
	}

	token, err = c.tokens.FindByValue(ctx, value)
	if err != nil && !errors.Is(err, ErrTokenNotFound) {
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to re-resolve confirmation token")
	}
	present := err == nil

	if purpose == PurposeReset {
		// reset reports success regardless of token presence
		return OutcomeConfirmed, nil
	}

	if present {
		if owner == nil {
			return "", ErrUserNotFound
		}
		if err := c.users.Enable(ctx, owner); err != nil {
			return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to enable user")
		}
		if err := c.tokens.Delete(ctx, token); err != nil {
			return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to delete consumed token")
		}
		c.logger.Info("email confirmation correct user=%d", owner.ID)
		return OutcomeConfirmed, nil
	}

	if owner == nil {
		// never existed and nothing to clean up
		return "", ErrTokenNotFound
	}

	// an expired activation link destroys the pending registration; the
	// caller surfaces this as "registration failed, please re-register"
	c.logger.Info("token expired, removing pending user=%d email=%s", owner.ID, owner.Email)
	if err := c.users.Delete(ctx, owner); err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to delete user with expired activation")
	}

	return OutcomeExpired, nil
}

// AlreadyIssued reports whether the user identified by email has at
// least one outstanding token; used to avoid sending duplicate reset
// notifications. An unknown email resolves to false, not an error.
func (c *Confirmations) AlreadyIssued(ctx context.Context, email string) (bool, error) {
	user, err := c.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return false, nil
		}
		return false, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to look up user")
	}

	if _, err := c.tokens.FindByUserID(ctx, user.ID); err != nil {
		if errors.Is(err, ErrTokenNotFound) {
			return false, nil
		}
		return false, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to look up outstanding tokens")
	}

	return true, nil
}

// sweep deletes every token older than the configured expiration in one
// store operation; an index range scan, not an id enumeration.
func (c *Confirmations) sweep(ctx context.Context) error {
	cutoff := c.now().Add(-c.expiration)

	n, err := c.tokens.DeleteCreatedBefore(ctx, cutoff)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to sweep expired tokens")
	}

	if n > 0 {
		c.logger.Debug("swept %d expired confirmation tokens", n)
	}

	return nil
}
