package ports

import "context"

// Mailer delivers transactional email. Delivery failures are logged by the
// caller, never surfaced to the HTTP client.
type Mailer interface {
	SendPasswordReset(ctx context.Context, to, name, resetToken string) error
	SendNewAccount(ctx context.Context, to, name string) error
}
