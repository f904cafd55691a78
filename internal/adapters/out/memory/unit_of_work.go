package memory

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/audit"
	"dispatch/internal/core/domain/model/notification"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

// ErrNoActiveTransaction is returned by Commit and Rollback when Begin was
// not called, mirroring the database adapter's behavior for a deferred
// rollback after a successful commit.
var ErrNoActiveTransaction = errors.New("no active transaction")

// MemoryUnitOfWorkFactory creates unit of work instances over one shared
// Store.
type MemoryUnitOfWorkFactory struct {
	store *Store
}

// NewMemoryUnitOfWorkFactory creates a factory bound to the given store.
func NewMemoryUnitOfWorkFactory(store *Store) *MemoryUnitOfWorkFactory {
	return &MemoryUnitOfWorkFactory{store: store}
}

// Create produces a new UnitOfWork ready for one business transaction.
func (f *MemoryUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &MemoryUnitOfWork{store: f.store}
}

// MemoryUnitOfWork stages writes until Commit and applies them under a
// single store lock, so a lifecycle operation lands atomically with respect
// to concurrent readers. Reads inside the transaction see committed state.
type MemoryUnitOfWork struct {
	store  *Store
	active bool
	staged []func(*Store)
}

// Begin starts a new transaction. Calling Begin again on an instance with
// an active transaction is a no-op.
func (uow *MemoryUnitOfWork) Begin(_ context.Context) error {
	uow.active = true
	return nil
}

// Commit applies all staged writes atomically.
func (uow *MemoryUnitOfWork) Commit(_ context.Context) error {
	if !uow.active {
		return ErrNoActiveTransaction
	}

	uow.store.mu.Lock()
	for _, apply := range uow.staged {
		apply(uow.store)
	}
	uow.store.mu.Unlock()

	uow.active = false
	uow.staged = nil
	return nil
}

// Rollback discards all staged writes.
func (uow *MemoryUnitOfWork) Rollback(_ context.Context) error {
	if !uow.active {
		return ErrNoActiveTransaction
	}

	uow.active = false
	uow.staged = nil
	return nil
}

// OrderRepository returns the order store bound to this transaction.
func (uow *MemoryUnitOfWork) OrderRepository() ports.OrderRepository {
	return &uowOrderRepository{uow: uow}
}

// AuditRepository returns the audit trail bound to this transaction.
func (uow *MemoryUnitOfWork) AuditRepository() ports.AuditRepository {
	return &uowAuditRepository{uow: uow}
}

// NotificationRepository returns the notification store bound to this
// transaction.
func (uow *MemoryUnitOfWork) NotificationRepository() ports.NotificationRepository {
	return &uowNotificationRepository{uow: uow}
}

type uowOrderRepository struct {
	uow *MemoryUnitOfWork
}

func (r *uowOrderRepository) List(_ context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	return r.uow.store.listOrders(filter), nil
}

func (r *uowOrderRepository) Get(_ context.Context, orderID string) (*order.Order, error) {
	return r.uow.store.getOrder(orderID)
}

// Update validates existence up front so an unknown id fails before anything
// is staged, then defers the write to Commit.
func (r *uowOrderRepository) Update(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	if _, err := r.uow.store.getOrder(aggregate.ID()); err != nil {
		return err
	}

	staged := cloneOrder(aggregate)
	r.uow.staged = append(r.uow.staged, func(s *Store) {
		_ = s.updateOrderLocked(staged)
	})
	return nil
}

func (r *uowOrderRepository) Upsert(_ context.Context, aggregate *order.Order) (bool, error) {
	if err := aggregate.Validate(); err != nil {
		return false, err
	}

	_, err := r.uow.store.getOrder(aggregate.ID())
	created := err != nil

	staged := cloneOrder(aggregate)
	r.uow.staged = append(r.uow.staged, func(s *Store) {
		s.upsertOrderLocked(staged)
	})
	return created, nil
}

func (r *uowOrderRepository) Count(_ context.Context) (int64, error) {
	return r.uow.store.countOrders(), nil
}

type uowAuditRepository struct {
	uow *MemoryUnitOfWork
}

func (r *uowAuditRepository) Append(_ context.Context, entry audit.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	r.uow.staged = append(r.uow.staged, func(s *Store) {
		s.appendAuditLocked(entry)
	})
	return nil
}

func (r *uowAuditRepository) ListByOrder(_ context.Context, orderID string) ([]audit.Entry, error) {
	return r.uow.store.listAudit(orderID), nil
}

type uowNotificationRepository struct {
	uow *MemoryUnitOfWork
}

func (r *uowNotificationRepository) Add(_ context.Context, n notification.Notification) error {
	if err := n.Validate(); err != nil {
		return err
	}

	r.uow.staged = append(r.uow.staged, func(s *Store) {
		s.addNotificationLocked(n)
	})
	return nil
}

func (r *uowNotificationRepository) ListByOrder(_ context.Context, orderID string) ([]notification.Notification, error) {
	return r.uow.store.listNotifications(orderID), nil
}
