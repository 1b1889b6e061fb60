package bankauth_test

import (
	"context"
	"database/sql"
	"time"

	bankauth "github.com/pbanach/go-bank-auth"
	"github.com/stretchr/testify/mock"
	"github.com/uptrace/bun"
)

// MockTokenStore implements bankauth.TokenStore
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) Save(ctx context.Context, token *bankauth.ConfirmationToken) (*bankauth.ConfirmationToken, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bankauth.ConfirmationToken), args.Error(1)
}

func (m *MockTokenStore) FindByValue(ctx context.Context, value string) (*bankauth.ConfirmationToken, error) {
	args := m.Called(ctx, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bankauth.ConfirmationToken), args.Error(1)
}

func (m *MockTokenStore) FindByID(ctx context.Context, id int64) (*bankauth.ConfirmationToken, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bankauth.ConfirmationToken), args.Error(1)
}

func (m *MockTokenStore) FindByUserID(ctx context.Context, userID int64) (*bankauth.ConfirmationToken, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bankauth.ConfirmationToken), args.Error(1)
}

func (m *MockTokenStore) HighestID(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTokenStore) All(ctx context.Context) ([]*bankauth.ConfirmationToken, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*bankauth.ConfirmationToken), args.Error(1)
}

func (m *MockTokenStore) Delete(ctx context.Context, token *bankauth.ConfirmationToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockTokenStore) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// MockAccountStore implements bankauth.AccountStore
type MockAccountStore struct {
	mock.Mock
}

func (m *MockAccountStore) Create(ctx context.Context, account *bankauth.BankAccount) (*bankauth.BankAccount, error) {
	args := m.Called(ctx, account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bankauth.BankAccount), args.Error(1)
}

func (m *MockAccountStore) FindByNumber(ctx context.Context, number string) (*bankauth.BankAccount, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bankauth.BankAccount), args.Error(1)
}

func (m *MockAccountStore) FindByUserID(ctx context.Context, userID int64) (*bankauth.BankAccount, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bankauth.BankAccount), args.Error(1)
}

func (m *MockAccountStore) UpdateBalance(ctx context.Context, id int64, balance float64) error {
	args := m.Called(ctx, id, balance)
	return args.Error(0)
}

// MockUserDirectory implements bankauth.UserDirectory
type MockUserDirectory struct {
	mock.Mock
}

func (m *MockUserDirectory) Create(ctx context.Context, user *bankauth.User) (*bankauth.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bankauth.User), args.Error(1)
}

func (m *MockUserDirectory) FindByID(ctx context.Context, id int64) (*bankauth.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bankauth.User), args.Error(1)
}

func (m *MockUserDirectory) FindByEmail(ctx context.Context, email string) (*bankauth.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bankauth.User), args.Error(1)
}

func (m *MockUserDirectory) FindByLogin(ctx context.Context, login string) (*bankauth.User, error) {
	args := m.Called(ctx, login)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bankauth.User), args.Error(1)
}

func (m *MockUserDirectory) FindByPhone(ctx context.Context, phone string) (*bankauth.User, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bankauth.User), args.Error(1)
}

func (m *MockUserDirectory) Enable(ctx context.Context, user *bankauth.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserDirectory) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *MockUserDirectory) Delete(ctx context.Context, user *bankauth.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockRepositoryManager implements bankauth.RepositoryManager
type MockRepositoryManager struct {
	mock.Mock
}

func (m *MockRepositoryManager) Tokens() bankauth.TokenStore {
	args := m.Called()
	return args.Get(0).(bankauth.TokenStore)
}

func (m *MockRepositoryManager) Accounts() bankauth.AccountStore {
	args := m.Called()
	return args.Get(0).(bankauth.AccountStore)
}

func (m *MockRepositoryManager) Users() bankauth.UserDirectory {
	args := m.Called()
	return args.Get(0).(bankauth.UserDirectory)
}

// RunInTx executes the closure with a zero bun.Tx and propagates its
// error unless the expectation forces one.
func (m *MockRepositoryManager) RunInTx(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context, tx bun.Tx) error) error {
	args := m.Called(ctx, opts, fn)
	if err := args.Error(0); err != nil {
		return err
	}
	var tx bun.Tx
	return fn(ctx, tx)
}

func (m *MockRepositoryManager) Validate() error {
	args := m.Called()
	return args.Error(0)
}

// MockNotifier implements bankauth.Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, n bankauth.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

// plainEncoder avoids bcrypt cost in tests that only care about the flow
type plainEncoder struct{}

func (plainEncoder) Hash(password string) (string, error) {
	if password == "" {
		return "", bankauth.ErrNoEmptyString
	}
	return "hashed:" + password, nil
}

func (plainEncoder) Compare(password, hash string) error {
	if "hashed:"+password != hash {
		return bankauth.ErrMismatchedHashAndPassword
	}
	return nil
}

type testLogger struct{}

func (testLogger) Debug(string, ...any) {}
func (testLogger) Info(string, ...any)  {}
func (testLogger) Error(string, ...any) {}
