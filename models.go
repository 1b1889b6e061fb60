package bankauth

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the account holder. The core does not own the user lifecycle;
// it only flips Enabled during activation and removes the record when an
// activation link expires.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            int64      `bun:"id,pk,autoincrement" json:"id,omitempty"`
	Login         string     `bun:"login,notnull,unique" json:"login,omitempty"`
	Email         string     `bun:"email,notnull,unique" json:"email,omitempty"`
	Phone         string     `bun:"phone_number,unique" json:"phone_number,omitempty"`
	PasswordHash  string     `bun:"password_hash" json:"password_hash,omitempty"`
	Enabled       bool       `bun:"enabled,notnull,default:false" json:"enabled,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// ConfirmationToken is a short lived, single use random value proving the
// bearer controls the email address tied to an activation or password
// reset request. Expiry is derived from CreatedAt, never stored.
type ConfirmationToken struct {
	bun.BaseModel `bun:"table:confirmation_tokens,alias:ctk"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id,omitempty"`
	Value         string    `bun:"confirmation_token,notnull,unique" json:"confirmation_token,omitempty"`
	UserID        int64     `bun:"user_id,notnull" json:"user_id,omitempty"`
	User          *User     `bun:"rel:belongs-to,join:user_id=id" json:"user,omitempty"`
	CreatedAt     time.Time `bun:"created_at,notnull" json:"created_at,omitempty"`
}

// NewConfirmationToken mints a token for the given user with a freshly
// generated random value. The store assigns the numeric identifier on save.
func NewConfirmationToken(user *User) *ConfirmationToken {
	t := &ConfirmationToken{
		Value:     uuid.NewString(),
		CreatedAt: time.Now(),
	}
	if user != nil {
		t.UserID = user.ID
		t.User = user
	}
	return t
}

// Age returns how long ago the token was issued.
func (t *ConfirmationToken) Age(now time.Time) time.Duration {
	return now.Sub(t.CreatedAt)
}

// BankAccount is the account record transfers are validated against.
// Number is the canonical 29 character representation and is immutable
// once assigned.
type BankAccount struct {
	bun.BaseModel `bun:"table:bank_accounts,alias:acct"`
	ID            int64      `bun:"id,pk,autoincrement" json:"id,omitempty"`
	Number        string     `bun:"account_number,notnull,unique" json:"account_number,omitempty"`
	Balance       float64    `bun:"balance,notnull,default:0" json:"balance"`
	UserID        int64      `bun:"user_id,notnull" json:"user_id,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
}
