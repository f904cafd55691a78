// Package memory provides an in-process implementation of the persistence
// ports backed by plain maps. It serves deployments without a database and
// keeps a single mutex-guarded copy of all state, so the lifecycle semantics
// can be exercised without PostgreSQL.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"dispatch/internal/core/domain/model/audit"
	"dispatch/internal/core/domain/model/notification"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// Store holds all state behind one RWMutex. Aggregates are cloned on the way
// in and out, so callers can never mutate stored state without going through
// a repository operation.
type Store struct {
	mu            sync.RWMutex
	orders        map[string]*order.Order
	auditTrail    map[string][]audit.Entry
	notifications map[string][]notification.Notification
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		orders:        make(map[string]*order.Order),
		auditTrail:    make(map[string][]audit.Entry),
		notifications: make(map[string][]notification.Notification),
	}
}

// OrderRepository returns a repository view operating directly on the store.
// Each operation is applied immediately; use the unit of work for grouped
// writes.
func (s *Store) OrderRepository() ports.OrderRepository {
	return &orderRepository{store: s}
}

// AuditRepository returns an audit trail view operating directly on the store.
func (s *Store) AuditRepository() ports.AuditRepository {
	return &auditRepository{store: s}
}

// NotificationRepository returns a notification view operating directly on
// the store.
func (s *Store) NotificationRepository() ports.NotificationRepository {
	return &notificationRepository{store: s}
}

func cloneOrder(o *order.Order) *order.Order {
	clone, err := order.RestoreOrder(
		o.ID(),
		o.CustomerName(),
		o.Location(),
		o.Address(),
		o.BuildingCode(),
		o.ExtractedLocation(),
		o.Remarks(),
		o.Items(),
		o.Status(),
		o.CreatedAt(),
		o.UpdatedAt(),
	)
	if err != nil {
		// The source aggregate already passed construction; restoring its
		// own state cannot fail.
		panic(err)
	}
	return clone
}

func (s *Store) listOrders(filter ports.OrderFilter) []*order.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make([]*order.Order, 0, len(s.orders))
	for _, o := range s.orders {
		if filter.Status != nil && o.Status() != *filter.Status {
			continue
		}
		if !o.Matches(strings.TrimSpace(filter.Search)) {
			continue
		}
		matches = append(matches, cloneOrder(o))
	}

	sort.Slice(matches, func(i, j int) bool {
		if !matches[i].UpdatedAt().Equal(matches[j].UpdatedAt()) {
			return matches[i].UpdatedAt().After(matches[j].UpdatedAt())
		}
		return matches[i].ID() < matches[j].ID()
	})

	return matches
}

func (s *Store) getOrder(orderID string) (*order.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[orderID]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", orderID)
	}
	return cloneOrder(o), nil
}

func (s *Store) updateOrder(aggregate *order.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateOrderLocked(aggregate)
}

func (s *Store) updateOrderLocked(aggregate *order.Order) error {
	if _, ok := s.orders[aggregate.ID()]; !ok {
		return errs.NewObjectNotFoundError("order", aggregate.ID())
	}
	s.orders[aggregate.ID()] = cloneOrder(aggregate)
	return nil
}

func (s *Store) upsertOrder(aggregate *order.Order) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.upsertOrderLocked(aggregate)
}

// upsertOrderLocked keeps the stored status and timestamps on refresh; only
// the descriptive fields and lines come from the incoming aggregate.
func (s *Store) upsertOrderLocked(aggregate *order.Order) bool {
	existing, ok := s.orders[aggregate.ID()]
	if !ok {
		s.orders[aggregate.ID()] = cloneOrder(aggregate)
		return true
	}

	refreshed := cloneOrder(existing)
	refreshed.SetDeliveryDetails(
		aggregate.Location(),
		aggregate.BuildingCode(),
		aggregate.ExtractedLocation(),
		aggregate.Remarks(),
	)
	refreshed.SetItems(aggregate.Items())
	s.orders[aggregate.ID()] = refreshed
	return false
}

func (s *Store) countOrders() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.orders))
}

func (s *Store) appendAudit(entry audit.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appendAuditLocked(entry)
}

func (s *Store) appendAuditLocked(entry audit.Entry) {
	s.auditTrail[entry.OrderID()] = append(s.auditTrail[entry.OrderID()], entry)
}

// listAudit returns entries newest-first; entries are appended in event
// order, so the reversed slice is the history.
func (s *Store) listAudit(orderID string) []audit.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.auditTrail[orderID]
	entries := make([]audit.Entry, 0, len(stored))
	for i := len(stored) - 1; i >= 0; i-- {
		entries = append(entries, stored[i])
	}
	return entries
}

func (s *Store) addNotification(n notification.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addNotificationLocked(n)
}

func (s *Store) addNotificationLocked(n notification.Notification) {
	s.notifications[n.OrderID()] = append(s.notifications[n.OrderID()], n)
}

func (s *Store) listNotifications(orderID string) []notification.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.notifications[orderID]
	notifications := make([]notification.Notification, 0, len(stored))
	for i := len(stored) - 1; i >= 0; i-- {
		notifications = append(notifications, stored[i])
	}
	return notifications
}

type orderRepository struct {
	store *Store
}

func (r *orderRepository) List(_ context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	return r.store.listOrders(filter), nil
}

func (r *orderRepository) Get(_ context.Context, orderID string) (*order.Order, error) {
	return r.store.getOrder(orderID)
}

func (r *orderRepository) Update(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	return r.store.updateOrder(aggregate)
}

func (r *orderRepository) Upsert(_ context.Context, aggregate *order.Order) (bool, error) {
	if err := aggregate.Validate(); err != nil {
		return false, err
	}
	return r.store.upsertOrder(aggregate), nil
}

func (r *orderRepository) Count(_ context.Context) (int64, error) {
	return r.store.countOrders(), nil
}

type auditRepository struct {
	store *Store
}

func (r *auditRepository) Append(_ context.Context, entry audit.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	r.store.appendAudit(entry)
	return nil
}

func (r *auditRepository) ListByOrder(_ context.Context, orderID string) ([]audit.Entry, error) {
	return r.store.listAudit(orderID), nil
}

type notificationRepository struct {
	store *Store
}

func (r *notificationRepository) Add(_ context.Context, n notification.Notification) error {
	if err := n.Validate(); err != nil {
		return err
	}
	r.store.addNotification(n)
	return nil
}

func (r *notificationRepository) ListByOrder(_ context.Context, orderID string) ([]notification.Notification, error) {
	return r.store.listNotifications(orderID), nil
}
