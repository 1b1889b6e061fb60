package bankauth

import (
	"context"
	"fmt"
	"time"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Error(format string, args ...any)
}

// TokenStore is durable storage for confirmation tokens. A lookup miss
// is reported as ErrTokenNotFound, never as a nil record.
type TokenStore interface {
	Save(ctx context.Context, token *ConfirmationToken) (*ConfirmationToken, error)
	FindByValue(ctx context.Context, value string) (*ConfirmationToken, error)
	FindByID(ctx context.Context, id int64) (*ConfirmationToken, error)
	FindByUserID(ctx context.Context, userID int64) (*ConfirmationToken, error)
	HighestID(ctx context.Context) (int64, error)
	All(ctx context.Context) ([]*ConfirmationToken, error)
	Delete(ctx context.Context, token *ConfirmationToken) error
	// DeleteCreatedBefore removes every token issued before cutoff in a
	// single store operation and reports how many were swept.
	DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// AccountStore is durable storage for bank accounts. Account numbers are
// always canonical by the time they reach the store.
type AccountStore interface {
	Create(ctx context.Context, account *BankAccount) (*BankAccount, error)
	FindByNumber(ctx context.Context, number string) (*BankAccount, error)
	FindByUserID(ctx context.Context, userID int64) (*BankAccount, error)
	UpdateBalance(ctx context.Context, id int64, balance float64) error
}

// UserDirectory is the narrow slice of the user collaborator the token
// lifecycle needs: lookups, the enabled flag, and explicit deletion.
// Deleting a user is a command issued here, never an implicit cascade
// from token storage.
type UserDirectory interface {
	Create(ctx context.Context, user *User) (*User, error)
	FindByID(ctx context.Context, id int64) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByLogin(ctx context.Context, login string) (*User, error)
	FindByPhone(ctx context.Context, phone string) (*User, error)
	Enable(ctx context.Context, user *User) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	Delete(ctx context.Context, user *User) error
}

// PasswordEncoder hashes credentials before they reach the user store.
// Hashing itself lives outside this package; BcryptEncoder is the
// default collaborator.
type PasswordEncoder interface {
	Hash(password string) (string, error)
	Compare(password, hash string) error
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] BANK "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] BANK "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] BANK "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
