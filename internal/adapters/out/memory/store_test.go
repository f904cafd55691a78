package memory_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"dispatch/internal/adapters/out/memory"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/audit"
	"dispatch/internal/core/domain/model/notification"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/require"
)

// stubSender records outgoing messages and can be told to fail.
type stubSender struct {
	messages []string
	err      error
}

func (s *stubSender) Send(_ context.Context, message string) error {
	s.messages = append(s.messages, message)
	return s.err
}

type fixture struct {
	store   *memory.Store
	factory *memory.MemoryUnitOfWorkFactory
	sender  *stubSender
	change  commands.ChangeOrderStatusCommandHandler
}

func newFixture(t *testing.T, seedIDs ...string) *fixture {
	t.Helper()

	store := memory.NewStore()
	factory := memory.NewMemoryUnitOfWorkFactory(store)
	sender := &stubSender{}
	logger := slog.New(slog.DiscardHandler)

	for _, id := range seedIDs {
		o, err := order.NewOrder(id, "Facilities", "1 Harbor Way")
		require.NoError(t, err)
		_, err = store.OrderRepository().Upsert(t.Context(), o)
		require.NoError(t, err)
	}

	return &fixture{
		store:   store,
		factory: factory,
		sender:  sender,
		change: commands.NewChangeOrderStatusCommandHandler(
			factory, services.NewPermissivePolicy(), sender, logger),
	}
}

func (f *fixture) transition(t *testing.T, orderID string, target order.Status) *order.Order {
	t.Helper()
	cmd, err := commands.NewChangeOrderStatusCommand(orderID, target, "", "jdoe")
	require.NoError(t, err)
	updated, err := f.change.Handle(t.Context(), cmd)
	require.NoError(t, err)
	return updated
}

func TestTransition_RecordsAuditAndState(t *testing.T) {
	f := newFixture(t, "SO-1")

	updated := f.transition(t, "SO-1", order.Delivered)
	require.Equal(t, order.Delivered, updated.Status())

	stored, err := f.store.OrderRepository().Get(t.Context(), "SO-1")
	require.NoError(t, err)
	require.Equal(t, order.Delivered, stored.Status())

	entries, err := f.store.AuditRepository().ListByOrder(t.Context(), "SO-1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, audit.ActionStatusChange, entries[0].Action())
	require.Equal(t, "Set to DELIVERED", entries[0].Details())

	require.Empty(t, f.sender.messages)
}

func TestTransition_IntoInDeliveryNotifies(t *testing.T) {
	f := newFixture(t, "SO-1")

	f.transition(t, "SO-1", order.InDelivery)

	require.Equal(t, []string{"Order SO-1 is now In Delivery"}, f.sender.messages)

	notifications, err := f.store.NotificationRepository().ListByOrder(t.Context(), "SO-1")
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	require.Equal(t, notification.OutcomeSent, notifications[0].Outcome())
}

func TestTransition_SendFailureStillCommits(t *testing.T) {
	f := newFixture(t, "SO-1")
	f.sender.err = errors.New("webhook down")

	updated := f.transition(t, "SO-1", order.InDelivery)
	require.Equal(t, order.InDelivery, updated.Status())

	notifications, err := f.store.NotificationRepository().ListByOrder(t.Context(), "SO-1")
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	require.Equal(t, notification.OutcomeFailed, notifications[0].Outcome())
}

func TestTransition_NoOpStillBumpsUpdatedAtAndNotifies(t *testing.T) {
	f := newFixture(t, "SO-1")

	first := f.transition(t, "SO-1", order.InDelivery)
	second := f.transition(t, "SO-1", order.InDelivery)

	require.False(t, second.UpdatedAt().Before(first.UpdatedAt()))
	require.Len(t, f.sender.messages, 2)

	entries, err := f.store.AuditRepository().ListByOrder(t.Context(), "SO-1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
}

func TestTransition_AuditTrailNewestFirst(t *testing.T) {
	f := newFixture(t, "SO-1")

	f.transition(t, "SO-1", order.InDelivery)
	f.transition(t, "SO-1", order.Delivered)

	entries, err := f.store.AuditRepository().ListByOrder(t.Context(), "SO-1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "Set to DELIVERED", entries[0].Details())
	require.Equal(t, "Set to IN_DELIVERY", entries[1].Details())
}

func TestBulkTransition_SkipsUnknownIDs(t *testing.T) {
	f := newFixture(t, "SO-1", "SO-3")
	bulk := commands.NewBulkChangeStatusCommandHandler(f.change, slog.New(slog.DiscardHandler))

	cmd, err := commands.NewBulkChangeStatusCommand([]string{"SO-1", "SO-2", "SO-3"}, order.Delivered, "ops")
	require.NoError(t, err)

	updated, err := bulk.Handle(t.Context(), cmd)
	require.NoError(t, err)
	require.Len(t, updated, 2)
	require.Equal(t, "SO-1", updated[0].ID())
	require.Equal(t, "SO-3", updated[1].ID())

	entries, err := f.store.AuditRepository().ListByOrder(t.Context(), "SO-1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "Reason: Bulk by ops", entries[0].Details())

	unknown, err := f.store.AuditRepository().ListByOrder(t.Context(), "SO-2")
	require.NoError(t, err)
	require.Empty(t, unknown)
}

func TestRetryNotification_CreatesFreshRecordAndAudit(t *testing.T) {
	f := newFixture(t, "SO-1")
	retry := commands.NewRetryNotificationCommandHandler(f.factory, f.sender, slog.New(slog.DiscardHandler))

	cmd, err := commands.NewRetryNotificationCommand("SO-1")
	require.NoError(t, err)

	first, err := retry.Handle(t.Context(), cmd)
	require.NoError(t, err)
	require.True(t, first.Success)

	second, err := retry.Handle(t.Context(), cmd)
	require.NoError(t, err)
	require.False(t, first.NotificationID.IsEqual(second.NotificationID))

	notifications, err := f.store.NotificationRepository().ListByOrder(t.Context(), "SO-1")
	require.NoError(t, err)
	require.Len(t, notifications, 2)
	require.Equal(t, "Retried Teams notification for SO-1", notifications[0].Message())

	entries, err := f.store.AuditRepository().ListByOrder(t.Context(), "SO-1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, audit.ActionTeamsRetry, entries[0].Action())
	require.Equal(t, audit.SystemActor, entries[0].ChangedBy())
}

func TestUpsert_RefreshPreservesLifecycleState(t *testing.T) {
	f := newFixture(t, "SO-1")

	transitioned := f.transition(t, "SO-1", order.Issue)

	refreshed, err := order.NewOrder("SO-1", "Facilities", "2 Dock Road")
	require.NoError(t, err)
	refreshed.SetDeliveryDetails("Bldg 9", "B9", "Building 9", "")

	created, err := f.store.OrderRepository().Upsert(t.Context(), refreshed)
	require.NoError(t, err)
	require.False(t, created)

	stored, err := f.store.OrderRepository().Get(t.Context(), "SO-1")
	require.NoError(t, err)
	require.Equal(t, order.Issue, stored.Status())
	require.Equal(t, transitioned.UpdatedAt(), stored.UpdatedAt())
	require.Equal(t, "B9", stored.BuildingCode())
}

func TestList_FilterAndSearchCombine(t *testing.T) {
	f := newFixture(t, "SO-1", "SO-2")
	f.transition(t, "SO-2", order.InDelivery)

	status := order.InDelivery
	matches, err := f.store.OrderRepository().List(t.Context(), ports.OrderFilter{
		Status: &status,
		Search: "so-2",
	})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	require.Equal(t, "SO-2", matches[0].ID())

	none, err := f.store.OrderRepository().List(t.Context(), ports.OrderFilter{
		Status: &status,
		Search: "so-1",
	})
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestGet_ReturnsIsolatedCopy(t *testing.T) {
	f := newFixture(t, "SO-1")

	first, err := f.store.OrderRepository().Get(t.Context(), "SO-1")
	require.NoError(t, err)
	require.NoError(t, first.ChangeStatus(order.Issue))

	second, err := f.store.OrderRepository().Get(t.Context(), "SO-1")
	require.NoError(t, err)
	require.Equal(t, order.PreDelivery, second.Status())
}

func TestRollback_DiscardsStagedWrites(t *testing.T) {
	f := newFixture(t, "SO-1")
	ctx := t.Context()

	uow := f.factory.Create()
	require.NoError(t, uow.Begin(ctx))

	o, err := uow.OrderRepository().Get(ctx, "SO-1")
	require.NoError(t, err)
	require.NoError(t, o.ChangeStatus(order.Delivered))
	require.NoError(t, uow.OrderRepository().Update(ctx, o))

	entry, err := audit.NewEntry("SO-1", audit.ActionStatusChange, "Set to DELIVERED", "jdoe")
	require.NoError(t, err)
	require.NoError(t, uow.AuditRepository().Append(ctx, entry))

	require.NoError(t, uow.Rollback(ctx))

	stored, err := f.store.OrderRepository().Get(ctx, "SO-1")
	require.NoError(t, err)
	require.Equal(t, order.PreDelivery, stored.Status())

	entries, err := f.store.AuditRepository().ListByOrder(ctx, "SO-1")
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestRollback_AfterCommit_ReturnsError(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()

	uow := f.factory.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.Commit(ctx))
	require.ErrorIs(t, uow.Rollback(ctx), memory.ErrNoActiveTransaction)
}

func TestTransitionToUnknownOrder_NotFound(t *testing.T) {
	f := newFixture(t)

	cmd, err := commands.NewChangeOrderStatusCommand("SO-MISSING", order.Delivered, "", "")
	require.NoError(t, err)
	_, err = f.change.Handle(t.Context(), cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}
