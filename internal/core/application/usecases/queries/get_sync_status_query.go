package queries

import (
	"context"
	"errors"

	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/guard"
)

var (
	ErrGetSyncStatusQueryIsNotConstructed = errors.New(
		"GetSyncStatusQuery must be created via NewGetSyncStatusQuery constructor",
	)
)

// GetSyncStatusQuery reports the state of upstream ingestion.
type GetSyncStatusQuery struct {
	guard guard.ConstructorGuard
}

// NewGetSyncStatusQuery creates a sync status request.
func NewGetSyncStatusQuery() GetSyncStatusQuery {
	return GetSyncStatusQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetSyncStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetSyncStatusQueryIsNotConstructed)
}

// GetSyncStatusQueryResponse summarizes ingestion state.
type GetSyncStatusQueryResponse struct {
	TotalOrders int64
	SyncEnabled bool
}

// GetSyncStatusQueryHandler serves the ingestion status endpoint.
type GetSyncStatusQueryHandler struct {
	orderRepo   ports.OrderRepository
	syncEnabled bool
}

// NewGetSyncStatusQueryHandler creates the sync status handler. syncEnabled
// reflects whether an upstream source is configured for this deployment.
func NewGetSyncStatusQueryHandler(orderRepo ports.OrderRepository, syncEnabled bool) GetSyncStatusQueryHandler {
	return GetSyncStatusQueryHandler{orderRepo: orderRepo, syncEnabled: syncEnabled}
}

// Handle returns the current ingestion status.
func (h GetSyncStatusQueryHandler) Handle(ctx context.Context, query GetSyncStatusQuery) (GetSyncStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetSyncStatusQueryResponse{}, err
	}

	total, err := h.orderRepo.Count(ctx)
	if err != nil {
		return GetSyncStatusQueryResponse{}, err
	}

	return GetSyncStatusQueryResponse{
		TotalOrders: total,
		SyncEnabled: h.syncEnabled,
	}, nil
}
