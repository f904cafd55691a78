package queries_test

import (
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/audit"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/notification"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/require"
)

func storedEntry(t *testing.T, orderID, details string, createdAt time.Time) audit.Entry {
	t.Helper()
	entry, err := audit.RestoreEntry(
		kernel.NewUUID(), orderID, audit.ActionStatusChange, details, "jdoe", createdAt)
	require.NoError(t, err)
	return entry
}

func storedNotification(t *testing.T, orderID string, createdAt time.Time) notification.Notification {
	t.Helper()
	n, err := notification.RestoreNotification(
		kernel.NewUUID(), orderID, "Order "+orderID+" is now In Delivery",
		notification.OutcomeSent, createdAt)
	require.NoError(t, err)
	return n
}

func TestGetOrderQueryHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	query, err := queries.NewGetOrderQuery("SO-10421")
	require.NoError(t, err)

	now := time.Now().UTC()
	o := storedOrder(t, "SO-10421", order.InDelivery)
	newest := storedEntry(t, "SO-10421", "Set to IN_DELIVERY", now)
	oldest := storedEntry(t, "SO-10421", "Reason: Created", now.Add(-time.Hour))

	orderRepo := new(MockQueryOrderRepository)
	orderRepo.On("Get", ctx, "SO-10421").Return(o, nil).Once()

	auditRepo := new(MockQueryAuditRepository)
	auditRepo.On("ListByOrder", ctx, "SO-10421").
		Return([]audit.Entry{newest, oldest}, nil).Once()

	notificationRepo := new(MockQueryNotificationRepository)
	notificationRepo.On("ListByOrder", ctx, "SO-10421").
		Return([]notification.Notification{storedNotification(t, "SO-10421", now)}, nil).Once()

	h := queries.NewGetOrderQueryHandler(orderRepo, auditRepo, notificationRepo)
	response, err := h.Handle(ctx, query)
	require.NoError(t, err)

	require.Equal(t, "SO-10421", response.Order.ID)
	require.Equal(t, order.InDelivery, response.Order.Status)

	require.Len(t, response.Audit, 2)
	require.Equal(t, "Set to IN_DELIVERY", response.Audit[0].Details)
	require.Equal(t, "Reason: Created", response.Audit[1].Details)

	require.Len(t, response.Notifications, 1)
	require.Equal(t, notification.OutcomeSent, response.Notifications[0].Outcome)

	orderRepo.AssertExpectations(t)
	auditRepo.AssertExpectations(t)
	notificationRepo.AssertExpectations(t)
}

func TestGetOrderQueryHandler_Handle_EmptyHistory(t *testing.T) {
	ctx := t.Context()
	query, err := queries.NewGetOrderQuery("SO-10421")
	require.NoError(t, err)

	orderRepo := new(MockQueryOrderRepository)
	orderRepo.On("Get", ctx, "SO-10421").
		Return(storedOrder(t, "SO-10421", order.PreDelivery), nil).Once()

	auditRepo := new(MockQueryAuditRepository)
	auditRepo.On("ListByOrder", ctx, "SO-10421").Return([]audit.Entry{}, nil).Once()

	notificationRepo := new(MockQueryNotificationRepository)
	notificationRepo.On("ListByOrder", ctx, "SO-10421").
		Return([]notification.Notification{}, nil).Once()

	h := queries.NewGetOrderQueryHandler(orderRepo, auditRepo, notificationRepo)
	response, err := h.Handle(ctx, query)
	require.NoError(t, err)
	require.Empty(t, response.Audit)
	require.Empty(t, response.Notifications)
}

func TestGetOrderQueryHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()
	query, err := queries.NewGetOrderQuery("SO-MISSING")
	require.NoError(t, err)

	orderRepo := new(MockQueryOrderRepository)
	orderRepo.On("Get", ctx, "SO-MISSING").
		Return(nil, errs.NewObjectNotFoundError("orderID", "SO-MISSING")).Once()

	h := queries.NewGetOrderQueryHandler(
		orderRepo, new(MockQueryAuditRepository), new(MockQueryNotificationRepository))
	_, err = h.Handle(ctx, query)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestNewGetOrderQuery_EmptyOrderID(t *testing.T) {
	_, err := queries.NewGetOrderQuery("")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestGetOrderAuditQueryHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	query, err := queries.NewGetOrderAuditQuery("SO-10421")
	require.NoError(t, err)

	now := time.Now().UTC()
	auditRepo := new(MockQueryAuditRepository)
	auditRepo.On("ListByOrder", ctx, "SO-10421").
		Return([]audit.Entry{storedEntry(t, "SO-10421", "Set to DELIVERED", now)}, nil).Once()

	h := queries.NewGetOrderAuditQueryHandler(auditRepo)
	views, err := h.Handle(ctx, query)
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Equal(t, audit.ActionStatusChange, views[0].Action)
	require.Equal(t, "jdoe", views[0].ChangedBy)
}

func TestGetOrderAuditQueryHandler_Handle_UnknownOrderYieldsEmpty(t *testing.T) {
	ctx := t.Context()
	query, err := queries.NewGetOrderAuditQuery("SO-NEVER-SEEN")
	require.NoError(t, err)

	auditRepo := new(MockQueryAuditRepository)
	auditRepo.On("ListByOrder", ctx, "SO-NEVER-SEEN").Return([]audit.Entry{}, nil).Once()

	h := queries.NewGetOrderAuditQueryHandler(auditRepo)
	views, err := h.Handle(ctx, query)
	require.NoError(t, err)
	require.Empty(t, views)
}
