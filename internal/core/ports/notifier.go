package ports

import "context"

// Notifier delivers messages to users out-of-band (email in production).
// A delivery failure must be observable but never fails the operation that
// triggered it.
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}
