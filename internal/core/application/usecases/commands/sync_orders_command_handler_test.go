package commands_test

import (
	"context"
	"errors"
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderSource struct{ mock.Mock }

func (m *MockOrderSource) FetchStartedOrders(ctx context.Context, limit int) ([]ports.SourceOrder, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.SourceOrder), args.Error(1)
}

type MockSyncOrderRepository struct{ mock.Mock }

func (m *MockSyncOrderRepository) List(_ context.Context, _ ports.OrderFilter) ([]*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockSyncOrderRepository) Get(_ context.Context, _ string) (*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockSyncOrderRepository) Update(_ context.Context, _ *order.Order) error {
	return errors.New("not implemented in mock")
}
func (m *MockSyncOrderRepository) Upsert(ctx context.Context, aggregate *order.Order) (bool, error) {
	args := m.Called(ctx, aggregate)
	return args.Bool(0), args.Error(1)
}
func (m *MockSyncOrderRepository) Count(_ context.Context) (int64, error) {
	return 0, errors.New("not implemented in mock")
}

func sourceOrder(orderNumber, customerName string) ports.SourceOrder {
	return ports.SourceOrder{
		OrderNumber:       orderNumber,
		CustomerName:      customerName,
		Address:           "1 Harbor Way, Building 7",
		Location:          "Bldg 7",
		BuildingCode:      "B7",
		ExtractedLocation: "Building 7",
		Lines: []ports.SourceLine{
			{SKU: "CHAIR-01", Name: "Office chair", Quantity: 2},
		},
	}
}

func TestSyncOrdersCommandHandler_Handle_CreatesAndUpdates(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewSyncOrdersCommand()

	source := new(MockOrderSource)
	source.On("FetchStartedOrders", ctx, 100).Return([]ports.SourceOrder{
		sourceOrder("SO-1", "Facilities"),
		sourceOrder("SO-2", "IT"),
		sourceOrder("SO-3", "Facilities"),
	}, nil).Once()

	orderRepo := new(MockSyncOrderRepository)
	orderRepo.On("Upsert", ctx, mock.AnythingOfType("*order.Order")).Return(true, nil).Twice()
	orderRepo.On("Upsert", ctx, mock.AnythingOfType("*order.Order")).Return(false, nil).Once()

	uow := new(MockChangeUoW)
	uow.On("Begin", ctx).Return(nil).Times(3)
	uow.On("OrderRepository").Return(orderRepo).Times(3)
	uow.On("Commit", ctx).Return(nil).Times(3)
	uow.On("Rollback", ctx).Return(nil).Times(3)

	factory := new(MockChangeUoWFactory)
	factory.On("Create").Return(uow).Times(3)

	h := commands.NewSyncOrdersCommandHandler(source, factory, testLogger())
	report, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, commands.SyncReport{Synced: 3, Created: 2, Updated: 1}, report)

	first := orderRepo.Calls[0].Arguments.Get(1).(*order.Order)
	require.Equal(t, "SO-1", first.ID())
	require.Equal(t, order.PreDelivery, first.Status())
	require.Equal(t, "B7", first.BuildingCode())
	require.Len(t, first.Items(), 1)

	source.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestSyncOrdersCommandHandler_Handle_SkipsInvalidUpstreamRecord(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewSyncOrdersCommand()

	source := new(MockOrderSource)
	source.On("FetchStartedOrders", ctx, 100).Return([]ports.SourceOrder{
		sourceOrder("SO-1", "Facilities"),
		sourceOrder("", "missing order number"),
	}, nil).Once()

	orderRepo := new(MockSyncOrderRepository)
	orderRepo.On("Upsert", ctx, mock.AnythingOfType("*order.Order")).Return(true, nil).Once()

	uow := new(MockChangeUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockChangeUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSyncOrdersCommandHandler(source, factory, testLogger())
	report, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, commands.SyncReport{Synced: 2, Created: 1, Updated: 0}, report)
	orderRepo.AssertExpectations(t)
}

func TestSyncOrdersCommandHandler_Handle_UpsertFailureDoesNotAbortRun(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewSyncOrdersCommand()

	source := new(MockOrderSource)
	source.On("FetchStartedOrders", ctx, 100).Return([]ports.SourceOrder{
		sourceOrder("SO-1", "Facilities"),
		sourceOrder("SO-2", "IT"),
	}, nil).Once()

	orderRepo := new(MockSyncOrderRepository)
	orderRepo.On("Upsert", ctx, mock.AnythingOfType("*order.Order")).
		Return(false, errors.New("constraint violation")).Once()
	orderRepo.On("Upsert", ctx, mock.AnythingOfType("*order.Order")).Return(true, nil).Once()

	uow := new(MockChangeUoW)
	uow.On("Begin", ctx).Return(nil).Twice()
	uow.On("OrderRepository").Return(orderRepo).Twice()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Twice()

	factory := new(MockChangeUoWFactory)
	factory.On("Create").Return(uow).Twice()

	h := commands.NewSyncOrdersCommandHandler(source, factory, testLogger())
	report, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, commands.SyncReport{Synced: 2, Created: 1, Updated: 0}, report)
	uow.AssertExpectations(t)
}

func TestSyncOrdersCommandHandler_Handle_FetchError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewSyncOrdersCommand()

	source := new(MockOrderSource)
	source.On("FetchStartedOrders", ctx, 100).
		Return(nil, errors.New("upstream unavailable")).Once()

	h := commands.NewSyncOrdersCommandHandler(source, new(MockChangeUoWFactory), testLogger())
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
}

func TestSyncOrdersCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	h := commands.NewSyncOrdersCommandHandler(
		new(MockOrderSource), new(MockChangeUoWFactory), testLogger())
	_, err := h.Handle(ctx, commands.SyncOrdersCommand{})
	require.ErrorIs(t, err, commands.ErrSyncOrdersCommandIsNotConstructed)
}
