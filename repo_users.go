package bankauth

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"
)

type users struct {
	db bun.IDB
}

var _ UserDirectory = (*users)(nil)

// NewUserRepository creates a bun backed UserDirectory.
func NewUserRepository(db bun.IDB) UserDirectory {
	return &users{db: db}
}

func (r *users) Create(ctx context.Context, user *User) (*User, error) {
	if _, err := r.db.NewInsert().Model(user).Exec(ctx); err != nil {
		return nil, err
	}
	return user, nil
}

func (r *users) FindByID(ctx context.Context, id int64) (*User, error) {
	return r.findOne(ctx, "id", id)
}

func (r *users) FindByEmail(ctx context.Context, email string) (*User, error) {
	return r.findOne(ctx, "email", email)
}

func (r *users) FindByLogin(ctx context.Context, login string) (*User, error) {
	return r.findOne(ctx, "login", login)
}

func (r *users) FindByPhone(ctx context.Context, phone string) (*User, error) {
	return r.findOne(ctx, "phone_number", phone)
}

func (r *users) Enable(ctx context.Context, user *User) error {
	res, err := r.db.NewUpdate().
		Model((*User)(nil)).
		Set("enabled = ?", true).
		Where("?TableAlias.id = ?", user.ID).
		Exec(ctx)
	if err != nil {
		return err
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrUserNotFound
	}

	user.Enabled = true
	return nil
}

func (r *users) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	res, err := r.db.NewUpdate().
		Model((*User)(nil)).
		Set("password_hash = ?", passwordHash).
		Where("?TableAlias.id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (r *users) Delete(ctx context.Context, user *User) error {
	_, err := r.db.NewDelete().
		Model((*User)(nil)).
		Where("?TableAlias.id = ?", user.ID).
		Exec(ctx)
	return err
}

func (r *users) findOne(ctx context.Context, column string, value any) (*User, error) {
	record := &User{}
	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.? = ?", bun.Ident(column), value).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return record, nil
}
