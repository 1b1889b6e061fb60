package bankauth

import (
	"context"
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

type RegisterUserMessage struct {
	Login      string `json:"login"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Password   string `json:"password"`
	OnResponse func(resp *RegisterUserResponse)
}

func (e RegisterUserMessage) Type() string { return "user.register" }

// Validate checks field shape before any store work happens.
func (e RegisterUserMessage) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.Login, validation.Required, validation.Length(3, 100)),
		validation.Field(&e.Email, validation.Required, validation.Length(6, 100), is.Email),
		validation.Field(&e.Phone, validation.Required, validation.Length(9, 16)),
		validation.Field(&e.Password, validation.Required, validation.Length(10, 100)),
	)
}

type RegisterUserResponse struct {
	User    *User
	Account *BankAccount
	Token   *ConfirmationToken
	Success bool
}

// RegisterUserHandler creates a pending (disabled) user with a fresh
// bank account, issues an activation token, and hands it to the
// notifier. The user stays disabled until the token is consumed.
type RegisterUserHandler struct {
	repo          RepositoryManager
	confirmations *Confirmations
	encoder       PasswordEncoder
	notifier      Notifier
	numbers       AccountNumberFormat
	phoneRegion   string
	logger        Logger
}

// NewRegisterUserHandler creates a handler with sane defaults.
func NewRegisterUserHandler(repo RepositoryManager, confirmations *Confirmations, encoder PasswordEncoder) *RegisterUserHandler {
	return &RegisterUserHandler{
		repo:          repo,
		confirmations: confirmations,
		encoder:       encoder,
		notifier:      noopNotifier{},
		numbers:       DefaultAccountNumberFormat(),
		phoneRegion:   DefaultPhoneRegion,
		logger:        defLogger{},
	}
}

// WithNotifier sets the channel that delivers the activation link.
func (h *RegisterUserHandler) WithNotifier(n Notifier) *RegisterUserHandler {
	h.notifier = normalizeNotifier(n)
	return h
}

// WithLogger overrides the logger used by the handler.
func (h *RegisterUserHandler) WithLogger(logger Logger) *RegisterUserHandler {
	if logger != nil {
		h.logger = logger
	}
	return h
}

// WithNumberFormat overrides the account number layout.
func (h *RegisterUserHandler) WithNumberFormat(format AccountNumberFormat) *RegisterUserHandler {
	h.numbers = format
	return h
}

func (h *RegisterUserHandler) Execute(ctx context.Context, event RegisterUserMessage) error {
	select {
	case <-ctx.Done():
		return goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during user registration",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *RegisterUserHandler) execute(ctx context.Context, event RegisterUserMessage) error {
	resp := &RegisterUserResponse{}

	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	if err := event.Validate(); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid registration payload")
	}

	phone := FormatPhoneNumber(event.Phone, h.phoneRegion)

	if err := h.checkUnique(ctx, event.Login, event.Email, phone); err != nil {
		return err
	}

	err := h.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		hash, err := h.encoder.Hash(event.Password)
		if err != nil {
			return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid password provided")
		}

		user := &User{
			Login:        event.Login,
			Email:        event.Email,
			Phone:        phone,
			PasswordHash: hash,
			Enabled:      false,
		}

		if user, err = h.repo.Users().Create(ctx, user); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to create user")
		}
		resp.User = user

		account, err := h.openAccount(ctx, user.ID)
		if err != nil {
			return err
		}
		resp.Account = account

		token, err := h.confirmations.Issue(ctx, user)
		if err != nil {
			return err
		}
		resp.Token = token

		return nil
	})

	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return richErr
		}
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to register user")
	}

	notification := Notification{Purpose: PurposeActivation, User: resp.User, Token: resp.Token}
	if err := h.notifier.Notify(ctx, notification); err != nil {
		// the emailed link is the only way to consume the token; without
		// delivery the token must not stay outstanding
		if derr := h.repo.Tokens().Delete(ctx, resp.Token); derr != nil {
			h.logger.Error("failed to delete token after notification error: %v", derr)
		}
		h.logger.Info("deleting token cause %v appeared...", err)
		return goerrors.Wrap(err, goerrors.CategoryExternal, "failed to deliver activation notification")
	}

	resp.Success = true
	if event.OnResponse != nil {
		event.OnResponse(resp)
	}

	return nil
}

func (h *RegisterUserHandler) checkUnique(ctx context.Context, login, email, phone string) error {
	checks := []struct {
		field string
		find  func(context.Context) (*User, error)
	}{
		{"login", func(ctx context.Context) (*User, error) { return h.repo.Users().FindByLogin(ctx, login) }},
		{"email", func(ctx context.Context) (*User, error) { return h.repo.Users().FindByEmail(ctx, email) }},
		{"phone", func(ctx context.Context) (*User, error) { return h.repo.Users().FindByPhone(ctx, phone) }},
	}

	for _, check := range checks {
		_, err := check.find(ctx)
		if err == nil {
			return goerrors.New(check.field+" is already taken", goerrors.CategoryConflict).
				WithMetadata(map[string]any{"field": check.field})
		}
		if !errors.Is(err, ErrUserNotFound) {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to check "+check.field+" uniqueness")
		}
	}

	return nil
}

// openAccount mints canonical account numbers until one is free. The
// number is immutable once the row exists.
func (h *RegisterUserHandler) openAccount(ctx context.Context, userID int64) (*BankAccount, error) {
	const attempts = 5

	for i := 0; i < attempts; i++ {
		number, err := h.numbers.Generate()
		if err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to generate account number")
		}

		if _, err := h.repo.Accounts().FindByNumber(ctx, number); err == nil {
			continue
		} else if !errors.Is(err, ErrAccountNotFound) {
			return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to check account number uniqueness")
		}

		account, err := h.repo.Accounts().Create(ctx, &BankAccount{
			Number: number,
			UserID: userID,
		})
		if err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to create bank account")
		}
		return account, nil
	}

	return nil, goerrors.New("could not mint a unique account number", goerrors.CategoryInternal)
}
