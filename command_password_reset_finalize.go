package bankauth

import (
	"context"
	"errors"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

type FinalizePasswordResetMessage struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

func (e FinalizePasswordResetMessage) Type() string { return "user.password_reset_finalize" }

// FinalizePasswordResetHandler resolves a reset token, stores the new
// password hash, and removes the token so it cannot be replayed.
type FinalizePasswordResetHandler struct {
	repo      RepositoryManager
	encoder   PasswordEncoder
	threshold string
	logger    Logger
}

// NewFinalizePasswordResetHandler creates a handler with sane defaults.
func NewFinalizePasswordResetHandler(repo RepositoryManager, encoder PasswordEncoder) *FinalizePasswordResetHandler {
	return &FinalizePasswordResetHandler{
		repo:      repo,
		encoder:   encoder,
		threshold: "15m",
		logger:    defLogger{},
	}
}

// WithThreshold overrides the window in which a reset token is honored.
func (h *FinalizePasswordResetHandler) WithThreshold(pattern string) *FinalizePasswordResetHandler {
	if pattern != "" {
		h.threshold = pattern
	}
	return h
}

// WithLogger overrides the logger used by the handler.
func (h *FinalizePasswordResetHandler) WithLogger(logger Logger) *FinalizePasswordResetHandler {
	if logger != nil {
		h.logger = logger
	}
	return h
}

func (h *FinalizePasswordResetHandler) Execute(ctx context.Context, event FinalizePasswordResetMessage) error {
	select {
	case <-ctx.Done():
		return goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during password reset finalization",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *FinalizePasswordResetHandler) execute(ctx context.Context, event FinalizePasswordResetMessage) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	err := h.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		token, err := h.repo.Tokens().FindByValue(ctx, event.Token)
		if err != nil {
			if errors.Is(err, ErrTokenNotFound) {
				return goerrors.New("invalid or expired password reset token", goerrors.CategoryNotFound).
					WithCode(goerrors.CodeNotFound)
			}
			return goerrors.Wrap(err, goerrors.CategoryInternal, "could not retrieve password reset token")
		}

		expired, err := IsOutsideThresholdPeriod(token.CreatedAt, h.threshold)
		if err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to check token expiration period")
		}

		if expired {
			return goerrors.New("password reset token has expired", goerrors.CategoryValidation).
				WithTextCode(TextCodeTokenExpired)
		}

		user, err := h.repo.Users().FindByID(ctx, token.UserID)
		if err != nil {
			if errors.Is(err, ErrUserNotFound) {
				return goerrors.New("reset token is not associated with a user", goerrors.CategoryInternal)
			}
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to resolve token owner")
		}

		passwordHash, err := h.encoder.Hash(event.Password)
		if err != nil {
			return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid new password provided")
		}

		if err := h.repo.Users().UpdatePassword(ctx, user.ID, passwordHash); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to update user password")
		}

		if err := h.repo.Tokens().Delete(ctx, token); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to delete consumed reset token")
		}

		return nil
	})

	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return richErr
		}
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to finalize password reset")
	}

	h.logger.Info("user password has been changed successfully and token has been deleted")

	return nil
}
