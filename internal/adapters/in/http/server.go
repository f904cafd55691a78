// Package http exposes the order lifecycle over a JSON REST API built on
// echo. The server coordinates between HTTP handlers and application use
// cases; all business rules live behind the command and query handlers.
package http

import (
	"errors"
	"fmt"
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server wires the REST endpoints to the application use cases.
type Server struct {
	// Command handlers
	changeStatusHandler commands.ChangeOrderStatusCommandHandler
	bulkChangeHandler   commands.BulkChangeStatusCommandHandler
	retryHandler        commands.RetryNotificationCommandHandler
	syncHandler         commands.SyncOrdersCommandHandler

	// Query handlers
	listOrdersHandler queries.ListOrdersQueryHandler
	getOrderHandler   queries.GetOrderQueryHandler
	getAuditHandler   queries.GetOrderAuditQueryHandler
	syncStatusHandler queries.GetSyncStatusQueryHandler
}

// NewServer creates a new HTTP server with the required command and query
// handlers.
func NewServer(
	changeStatusHandler commands.ChangeOrderStatusCommandHandler,
	bulkChangeHandler commands.BulkChangeStatusCommandHandler,
	retryHandler commands.RetryNotificationCommandHandler,
	syncHandler commands.SyncOrdersCommandHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getAuditHandler queries.GetOrderAuditQueryHandler,
	syncStatusHandler queries.GetSyncStatusQueryHandler,
) *Server {
	return &Server{
		changeStatusHandler: changeStatusHandler,
		bulkChangeHandler:   bulkChangeHandler,
		retryHandler:        retryHandler,
		syncHandler:         syncHandler,
		listOrdersHandler:   listOrdersHandler,
		getOrderHandler:     getOrderHandler,
		getAuditHandler:     getAuditHandler,
		syncStatusHandler:   syncStatusHandler,
	}
}

// RegisterRoutes mounts all endpoints on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.GET("/orders", s.ListOrders)
	api.GET("/orders/:orderID", s.GetOrder)
	api.PATCH("/orders/:orderID/status", s.ChangeOrderStatus)
	api.GET("/orders/:orderID/audit", s.GetOrderAudit)
	api.POST("/orders/:orderID/retry-notification", s.RetryNotification)
	api.POST("/orders/bulk-transition", s.BulkTransition)
	api.POST("/inflow/sync", s.SyncOrders)
	api.GET("/inflow/sync-status", s.SyncStatus)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// ListOrders handles GET /api/v1/orders with optional status and search
// query parameters.
func (s *Server) ListOrders(ctx echo.Context) error {
	var statusFilter *order.Status
	if raw := ctx.QueryParam("status"); raw != "" {
		status, err := order.StatusFromString(raw)
		if err != nil {
			return errorResponse(ctx, err)
		}
		statusFilter = &status
	}

	query, err := queries.NewListOrdersQuery(statusFilter, ctx.QueryParam("search"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	views, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := make([]OrderResponse, 0, len(views))
	for _, view := range views {
		response = append(response, orderResponse(view))
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/v1/orders/:orderID.
func (s *Server) GetOrder(ctx echo.Context) error {
	query, err := queries.NewGetOrderQuery(ctx.Param("orderID"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	detail, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := OrderDetailResponse{
		Order:         orderResponse(detail.Order),
		Audit:         make([]AuditEntryResponse, 0, len(detail.Audit)),
		Notifications: make([]NotificationResponse, 0, len(detail.Notifications)),
	}
	for _, entry := range detail.Audit {
		response.Audit = append(response.Audit, auditEntryResponse(entry))
	}
	for _, n := range detail.Notifications {
		response.Notifications = append(response.Notifications, notificationResponse(n))
	}
	return ctx.JSON(http.StatusOK, response)
}

// ChangeOrderStatus handles PATCH /api/v1/orders/:orderID/status. The actor
// comes from the changed_by query parameter; absent means the system.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	var request ChangeStatusRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	target, err := order.StatusFromString(request.Status)
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewChangeOrderStatusCommand(
		ctx.Param("orderID"), target, request.Reason, ctx.QueryParam("changed_by"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	updated, err := s.changeStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderResponseFromAggregate(updated))
}

// BulkTransition handles POST /api/v1/orders/bulk-transition. Failing items
// are skipped; the response reports how many of the requested ids succeeded.
func (s *Server) BulkTransition(ctx echo.Context) error {
	var request BulkTransitionRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	target, err := order.StatusFromString(request.Status)
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewBulkChangeStatusCommand(
		request.OrderIDs, target, ctx.QueryParam("changed_by"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	updated, err := s.bulkChangeHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := BulkTransitionResponse{
		Orders:    make([]OrderResponse, 0, len(updated)),
		Requested: len(request.OrderIDs),
		Updated:   len(updated),
	}
	for _, o := range updated {
		response.Orders = append(response.Orders, orderResponseFromAggregate(o))
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetOrderAudit handles GET /api/v1/orders/:orderID/audit.
func (s *Server) GetOrderAudit(ctx echo.Context) error {
	query, err := queries.NewGetOrderAuditQuery(ctx.Param("orderID"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	entries, err := s.getAuditHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := make([]AuditEntryResponse, 0, len(entries))
	for _, entry := range entries {
		response = append(response, auditEntryResponse(entry))
	}
	return ctx.JSON(http.StatusOK, response)
}

// RetryNotification handles POST /api/v1/orders/:orderID/retry-notification.
func (s *Server) RetryNotification(ctx echo.Context) error {
	cmd, err := commands.NewRetryNotificationCommand(ctx.Param("orderID"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	result, err := s.retryHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, RetryNotificationResponse{
		Success:        result.Success,
		NotificationID: result.NotificationID.String(),
	})
}

// SyncOrders handles POST /api/v1/inflow/sync - one manual ingestion run.
func (s *Server) SyncOrders(ctx echo.Context) error {
	report, err := s.syncHandler.Handle(ctx.Request().Context(), commands.NewSyncOrdersCommand())
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, SyncResponse{
		Success:       true,
		OrdersSynced:  report.Synced,
		OrdersCreated: report.Created,
		OrdersUpdated: report.Updated,
		Message:       fmt.Sprintf("Synced %d orders", report.Synced),
	})
}

// SyncStatus handles GET /api/v1/inflow/sync-status.
func (s *Server) SyncStatus(ctx echo.Context) error {
	status, err := s.syncStatusHandler.Handle(ctx.Request().Context(), queries.NewGetSyncStatusQuery())
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, SyncStatusResponse{
		TotalOrders: status.TotalOrders,
		SyncEnabled: status.SyncEnabled,
	})
}

// errorResponse maps domain errors onto HTTP status codes: unknown objects
// are 404, invalid or missing values are 400, everything else is 500.
func errorResponse(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, errs.ErrValueIsInvalid), errors.Is(err, errs.ErrValueIsRequired):
		code = http.StatusBadRequest
	}

	return ctx.JSON(code, Error{
		Code:    code,
		Message: err.Error(),
	})
}
