package bankauth

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"
)

type tokens struct {
	db bun.IDB
}

var _ TokenStore = (*tokens)(nil)

// NewTokenRepository creates a bun backed TokenStore.
func NewTokenRepository(db bun.IDB) TokenStore {
	return &tokens{db: db}
}

func (r *tokens) Save(ctx context.Context, token *ConfirmationToken) (*ConfirmationToken, error) {
	if _, err := r.db.NewInsert().Model(token).Exec(ctx); err != nil {
		return nil, err
	}
	return token, nil
}

func (r *tokens) FindByValue(ctx context.Context, value string) (*ConfirmationToken, error) {
	record := &ConfirmationToken{}
	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.confirmation_token = ?", value).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}
	return record, nil
}

func (r *tokens) FindByID(ctx context.Context, id int64) (*ConfirmationToken, error) {
	record := &ConfirmationToken{}
	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}
	return record, nil
}

func (r *tokens) FindByUserID(ctx context.Context, userID int64) (*ConfirmationToken, error) {
	record := &ConfirmationToken{}
	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.user_id = ?", userID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}
	return record, nil
}

func (r *tokens) HighestID(ctx context.Context) (int64, error) {
	var id int64
	err := r.db.NewSelect().
		Model((*ConfirmationToken)(nil)).
		ColumnExpr("COALESCE(MAX(?TableAlias.id), 0)").
		Scan(ctx, &id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *tokens) All(ctx context.Context) ([]*ConfirmationToken, error) {
	var records []*ConfirmationToken
	err := r.db.NewSelect().
		Model(&records).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *tokens) Delete(ctx context.Context, token *ConfirmationToken) error {
	_, err := r.db.NewDelete().
		Model((*ConfirmationToken)(nil)).
		Where("?TableAlias.id = ?", token.ID).
		Exec(ctx)
	return err
}

func (r *tokens) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.NewDelete().
		Model((*ConfirmationToken)(nil)).
		Where("?TableAlias.created_at < ?", cutoff).
		Exec(ctx)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
