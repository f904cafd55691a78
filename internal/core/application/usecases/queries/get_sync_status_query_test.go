package queries_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/require"
)

func TestGetSyncStatusQueryHandler_Handle(t *testing.T) {
	ctx := t.Context()

	repo := new(MockQueryOrderRepository)
	repo.On("Count", ctx).Return(int64(42), nil).Once()

	h := queries.NewGetSyncStatusQueryHandler(repo, true)
	response, err := h.Handle(ctx, queries.NewGetSyncStatusQuery())
	require.NoError(t, err)
	require.EqualValues(t, 42, response.TotalOrders)
	require.True(t, response.SyncEnabled)
	repo.AssertExpectations(t)
}

func TestGetSyncStatusQueryHandler_Handle_ValidationError(t *testing.T) {
	h := queries.NewGetSyncStatusQueryHandler(new(MockQueryOrderRepository), false)
	_, err := h.Handle(t.Context(), queries.GetSyncStatusQuery{})
	require.ErrorIs(t, err, queries.ErrGetSyncStatusQueryIsNotConstructed)
}
