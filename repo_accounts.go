package bankauth

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"
)

type accounts struct {
	db bun.IDB
}

var _ AccountStore = (*accounts)(nil)

// NewAccountRepository creates a bun backed AccountStore.
func NewAccountRepository(db bun.IDB) AccountStore {
	return &accounts{db: db}
}

func (r *accounts) Create(ctx context.Context, account *BankAccount) (*BankAccount, error) {
	if _, err := r.db.NewInsert().Model(account).Exec(ctx); err != nil {
		return nil, err
	}
	return account, nil
}

func (r *accounts) FindByNumber(ctx context.Context, number string) (*BankAccount, error) {
	record := &BankAccount{}
	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.account_number = ?", number).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return record, nil
}

func (r *accounts) FindByUserID(ctx context.Context, userID int64) (*BankAccount, error) {
	record := &BankAccount{}
	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.user_id = ?", userID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return record, nil
}

func (r *accounts) UpdateBalance(ctx context.Context, id int64, balance float64) error {
	res, err := r.db.NewUpdate().
		Model((*BankAccount)(nil)).
		Set("balance = ?", balance).
		Where("?TableAlias.id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrAccountNotFound
	}

	return nil
}
