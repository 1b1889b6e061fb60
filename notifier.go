package bankauth

import "context"

// Notification carries everything a delivery channel needs to compose a
// confirmation message. Composition and delivery live outside this
// package.
type Notification struct {
	Purpose TokenPurpose
	User    *User
	Token   *ConfirmationToken
}

// Notifier consumes token notifications, typically to send the emailed
// confirmation link.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(ctx context.Context, n Notification) error

// Notify implements Notifier.
func (f NotifierFunc) Notify(ctx context.Context, n Notification) error {
	if f == nil {
		return nil
	}
	return f(ctx, n)
}

type noopNotifier struct{}

func (noopNotifier) Notify(context.Context, Notification) error {
	return nil
}

func normalizeNotifier(n Notifier) Notifier {
	if n == nil {
		return noopNotifier{}
	}
	return n
}

// LogNotifier writes the confirmation link to the logger instead of
// delivering it; useful in development.
type LogNotifier struct {
	Logger Logger
}

// Notify implements Notifier.
func (l LogNotifier) Notify(_ context.Context, n Notification) error {
	logger := l.Logger
	if logger == nil {
		logger = defLogger{}
	}

	path := "/confirm-account"
	if n.Purpose == PurposeReset {
		path = "/reset-password"
	}

	logger.Info("notification to=%s link=%s?token=%s", n.User.Email, path, n.Token.Value)
	return nil
}
