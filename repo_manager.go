package bankauth

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"
)

// RepositoryManager exposes all stores plus transaction handling.
type RepositoryManager interface {
	Tokens() TokenStore
	Accounts() AccountStore
	Users() UserDirectory
	RunInTx(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context, tx bun.Tx) error) error
	Validate() error
}

type mngr struct {
	db       *bun.DB
	tokens   TokenStore
	accounts AccountStore
	users    UserDirectory
}

// NewRepositoryManager wires the bun backed stores.
func NewRepositoryManager(db *bun.DB) RepositoryManager {
	return &mngr{
		db:       db,
		tokens:   NewTokenRepository(db),
		accounts: NewAccountRepository(db),
		users:    NewUserRepository(db),
	}
}

func (m mngr) Validate() error {
	if m.tokens == nil {
		return errors.New("repository tokens should be initialized")
	}

	if m.accounts == nil {
		return errors.New("repository accounts should be initialized")
	}

	if m.users == nil {
		return errors.New("repository users should be initialized")
	}

	return nil
}

func (m mngr) Tokens() TokenStore {
	return m.tokens
}

func (m mngr) Accounts() AccountStore {
	return m.accounts
}

func (m mngr) Users() UserDirectory {
	return m.users
}

func (m mngr) RunInTx(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context, tx bun.Tx) error) error {
	return m.db.RunInTx(ctx, opts, fn)
}
