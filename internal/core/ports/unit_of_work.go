package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per command, ensuring
// isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is the transaction boundary around one lifecycle operation:
// the order mutation, the audit append and the notification record of a
// single transition commit or roll back together. Client code manages the
// transaction lifecycle explicitly.
type UnitOfWork interface {
	// Begin starts a new transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns an error if no transaction is active or the commit fails.
	Commit(ctx context.Context) error

	// Rollback discards the current transaction.
	// Returns an error if no transaction is active or the rollback fails.
	Rollback(ctx context.Context) error

	// OrderRepository returns the order store bound to the current transaction.
	OrderRepository() OrderRepository

	// AuditRepository returns the audit trail bound to the current transaction.
	AuditRepository() AuditRepository

	// NotificationRepository returns the notification store bound to the
	// current transaction.
	NotificationRepository() NotificationRepository
}
