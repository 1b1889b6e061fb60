package bankauth

import (
	"context"
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	goerrors "github.com/goliatone/go-errors"
)

type InitializePasswordResetMessage struct {
	Email      string `json:"email"`
	OnResponse func(resp *InitializePasswordResetResponse)
}

func (e InitializePasswordResetMessage) Type() string { return "user.password_reset" }

type InitializePasswordResetResponse struct {
	Token *ConfirmationToken
	// AlreadySent is true when an outstanding token exists for the user;
	// no new token is issued so the inbox is not spammed.
	AlreadySent bool
	Success     bool
}

// InitializePasswordResetHandler issues a reset token and hands it to
// the notifier. Unknown emails report success without issuing anything
// so the endpoint does not reveal which addresses have accounts.
type InitializePasswordResetHandler struct {
	repo          RepositoryManager
	confirmations *Confirmations
	notifier      Notifier
	logger        Logger
}

// NewInitializePasswordResetHandler creates a handler with sane defaults.
func NewInitializePasswordResetHandler(repo RepositoryManager, confirmations *Confirmations) *InitializePasswordResetHandler {
	return &InitializePasswordResetHandler{
		repo:          repo,
		confirmations: confirmations,
		notifier:      noopNotifier{},
		logger:        defLogger{},
	}
}

// WithNotifier sets the channel that delivers the reset link.
func (h *InitializePasswordResetHandler) WithNotifier(n Notifier) *InitializePasswordResetHandler {
	h.notifier = normalizeNotifier(n)
	return h
}

// WithLogger overrides the logger used by the handler.
func (h *InitializePasswordResetHandler) WithLogger(logger Logger) *InitializePasswordResetHandler {
	if logger != nil {
		h.logger = logger
	}
	return h
}

func (h *InitializePasswordResetHandler) Execute(ctx context.Context, event InitializePasswordResetMessage) error {
	select {
	case <-ctx.Done():
		return goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during password reset initialization",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *InitializePasswordResetHandler) execute(ctx context.Context, event InitializePasswordResetMessage) error {
	resp := &InitializePasswordResetResponse{}

	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	if err := validation.Validate(event.Email, validation.Required, is.Email); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid email provided")
	}

	alreadySent, err := h.confirmations.AlreadyIssued(ctx, event.Email)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to check outstanding tokens")
	}

	if alreadySent {
		resp.AlreadySent = true
		resp.Success = true
		if event.OnResponse != nil {
			event.OnResponse(resp)
		}
		return nil
	}

	user, err := h.repo.Users().FindByEmail(ctx, event.Email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			// do not reveal whether the address has an account
			resp.Success = true
			if event.OnResponse != nil {
				event.OnResponse(resp)
			}
			return nil
		}
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to retrieve user for password reset")
	}

	token, err := h.confirmations.Issue(ctx, user)
	if err != nil {
		return err
	}
	resp.Token = token

	notification := Notification{Purpose: PurposeReset, User: user, Token: token}
	if err := h.notifier.Notify(ctx, notification); err != nil {
		if derr := h.repo.Tokens().Delete(ctx, token); derr != nil {
			h.logger.Error("failed to delete token after notification error: %v", derr)
		}
		h.logger.Info("deleted token cause %v appeared...", err)
		return goerrors.Wrap(err, goerrors.CategoryExternal, "failed to deliver reset notification")
	}

	resp.Success = true
	if event.OnResponse != nil {
		event.OnResponse(resp)
	}

	return nil
}
