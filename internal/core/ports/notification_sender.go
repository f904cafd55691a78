package ports

import "context"

// NotificationSender is the outbound alert transport (a Teams webhook in
// production). Implementations must bound the call with a timeout; an
// expired or failed send is reported as an error and recorded by the caller
// as a failed notification; it is never retried automatically.
type NotificationSender interface {
	Send(ctx context.Context, message string) error
}
