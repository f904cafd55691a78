package cmd

import (
	"context"
	"errors"
	"log/slog"

	"dispatch/internal/adapters/out/inflow"
	"dispatch/internal/adapters/out/memory"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/postgres/auditrepo"
	"dispatch/internal/adapters/out/postgres/notificationrepo"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/adapters/out/teams"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	uowFactory       commands.UnitOfWorkFactory
	orderRepo        ports.OrderRepository
	auditRepo        ports.AuditRepository
	notificationRepo ports.NotificationRepository
	sender           ports.NotificationSender
	source           ports.OrderSource
	syncEnabled      bool
	logger           *slog.Logger
}

// NewCompositionRoot wires the adapters selected by the configuration.
// A nil gormDB switches every repository onto the in-memory store, which
// keeps the service runnable for local development without Postgres.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	root := CompositionRoot{
		syncEnabled: config.InflowConfigured(),
		logger:      logger,
	}

	if gormDB != nil {
		root.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB)
		root.orderRepo = orderrepo.NewGormOrderRepository(gormDB)
		root.auditRepo = auditrepo.NewGormAuditRepository(gormDB)
		root.notificationRepo = notificationrepo.NewGormNotificationRepository(gormDB)
	} else {
		store := memory.NewStore()
		root.uowFactory = memory.NewMemoryUnitOfWorkFactory(store)
		root.orderRepo = store.OrderRepository()
		root.auditRepo = store.AuditRepository()
		root.notificationRepo = store.NotificationRepository()
	}

	if config.TeamsWebhookURL != "" {
		root.sender = teams.NewWebhookSender(config.TeamsWebhookURL)
	} else {
		root.sender = logSender{logger: logger.With("component", "teams_log_sender")}
	}

	if root.syncEnabled {
		root.source = inflow.NewClient(config.InflowAPIURL, config.InflowCompanyID, config.InflowAPIKey)
	} else {
		root.source = disabledSource{}
	}

	return root
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	return commands.NewChangeOrderStatusCommandHandler(
		c.uowFactory, services.NewPermissivePolicy(), c.sender, c.logger)
}

func (c *CompositionRoot) CreateBulkChangeStatusCommandHandler() commands.BulkChangeStatusCommandHandler {
	return commands.NewBulkChangeStatusCommandHandler(
		c.CreateChangeOrderStatusCommandHandler(), c.logger)
}

func (c *CompositionRoot) CreateRetryNotificationCommandHandler() commands.RetryNotificationCommandHandler {
	return commands.NewRetryNotificationCommandHandler(c.uowFactory, c.sender, c.logger)
}

func (c *CompositionRoot) CreateSyncOrdersCommandHandler() commands.SyncOrdersCommandHandler {
	return commands.NewSyncOrdersCommandHandler(c.source, c.uowFactory, c.logger)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.orderRepo)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.orderRepo, c.auditRepo, c.notificationRepo)
}

func (c *CompositionRoot) CreateGetOrderAuditQueryHandler() queries.GetOrderAuditQueryHandler {
	return queries.NewGetOrderAuditQueryHandler(c.auditRepo)
}

func (c *CompositionRoot) CreateGetSyncStatusQueryHandler() queries.GetSyncStatusQueryHandler {
	return queries.NewGetSyncStatusQueryHandler(c.orderRepo, c.syncEnabled)
}

// logSender stands in for the Teams transport when no webhook is configured.
// Messages are logged and reported as sent so local transitions behave the
// same as production ones.
type logSender struct {
	logger *slog.Logger
}

func (s logSender) Send(ctx context.Context, message string) error {
	s.logger.InfoContext(ctx, "Teams notification (webhook not configured)", "message", message)
	return nil
}

// disabledSource fails every fetch; mounted when inFlow credentials are
// absent so manual sync requests return an explanatory error.
type disabledSource struct{}

func (disabledSource) FetchStartedOrders(context.Context, int) ([]ports.SourceOrder, error) {
	return nil, errors.New("inFlow API is not configured")
}
