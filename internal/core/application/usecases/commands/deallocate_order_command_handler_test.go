package commands_test

import (
	"testing"
	"time"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDeallocateOrderCommandHandler_Handle(t *testing.T) {
	t.Run("should release the allocated driver", func(t *testing.T) {
		ctx := t.Context()
		driverRoleID := kernel.NewUUID()
		actor := driverActor(t, driverRoleID)
		testOrder := allocatedOrder(t, kernel.NewUUID(), driverRoleID)

		cmd, err := commands.NewDeallocateOrderCommand(actor, testOrder.ID())
		require.NoError(t, err)

		orderRepo := new(MockOrderRepository)
		uow := new(MockUoW)

		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("OrderRepository").Return(orderRepo).Once(),
			orderRepo.On("GetForUpdate", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
			uow.On("OrderRepository").Return(orderRepo).Once(),
			orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).
				Run(func(args mock.Arguments) {
					updated := args.Get(1).(*order.Order)
					assert.Equal(t, order.Requested, updated.State())
					assert.Nil(t, updated.DriverRoleID())
				}).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		factory := new(MockOrderUoWFactory)
		factory.On("Create").Return(uow).Once()

		handler := commands.NewDeallocateOrderCommandHandler(factory, fixedClock{now: testNow().Add(2 * time.Hour)})

		require.NoError(t, handler.Handle(ctx, cmd))
		uow.AssertExpectations(t)
	})

	t.Run("should reject a driver who is not allocated to the order", func(t *testing.T) {
		ctx := t.Context()
		actor := driverActor(t, kernel.NewUUID())
		testOrder := allocatedOrder(t, kernel.NewUUID(), kernel.NewUUID())

		cmd, err := commands.NewDeallocateOrderCommand(actor, testOrder.ID())
		require.NoError(t, err)

		orderRepo := new(MockOrderRepository)
		uow := new(MockUoW)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("OrderRepository").Return(orderRepo).Once()
		orderRepo.On("GetForUpdate", ctx, testOrder.ID()).Return(testOrder, nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		factory := new(MockOrderUoWFactory)
		factory.On("Create").Return(uow).Once()

		handler := commands.NewDeallocateOrderCommandHandler(factory, fixedClock{now: testNow()})
		err = handler.Handle(ctx, cmd)

		require.Error(t, err)
		assert.ErrorIs(t, err, commands.ErrNotAuthorized)
		assert.Equal(t, order.Allocated, testOrder.State())
	})

	t.Run("should reject senders", func(t *testing.T) {
		ctx := t.Context()
		senderRoleID := kernel.NewUUID()
		actor := senderActor(t, senderRoleID)
		testOrder := allocatedOrder(t, senderRoleID, kernel.NewUUID())

		cmd, err := commands.NewDeallocateOrderCommand(actor, testOrder.ID())
		require.NoError(t, err)

		orderRepo := new(MockOrderRepository)
		uow := new(MockUoW)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("OrderRepository").Return(orderRepo).Once()
		orderRepo.On("GetForUpdate", ctx, testOrder.ID()).Return(testOrder, nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		factory := new(MockOrderUoWFactory)
		factory.On("Create").Return(uow).Once()

		handler := commands.NewDeallocateOrderCommandHandler(factory, fixedClock{now: testNow()})
		err = handler.Handle(ctx, cmd)

		require.Error(t, err)
		assert.ErrorIs(t, err, commands.ErrNotAuthorized)
	})

	t.Run("should record the releasing driver as the action author", func(t *testing.T) {
		ctx := t.Context()
		driverRoleID := kernel.NewUUID()
		actor := driverActor(t, driverRoleID)
		testOrder := allocatedOrder(t, kernel.NewUUID(), driverRoleID)

		cmd, err := commands.NewDeallocateOrderCommand(actor, testOrder.ID())
		require.NoError(t, err)

		orderRepo := new(MockOrderRepository)
		uow := new(MockUoW)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("OrderRepository").Return(orderRepo)
		orderRepo.On("GetForUpdate", ctx, testOrder.ID()).Return(testOrder, nil).Once()
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		factory := new(MockOrderUoWFactory)
		factory.On("Create").Return(uow).Once()

		handler := commands.NewDeallocateOrderCommandHandler(factory, fixedClock{now: testNow().Add(2 * time.Hour)})
		require.NoError(t, handler.Handle(ctx, cmd))

		assert.True(t, testOrder.HasDeallocated(actor.UserID()))
	})
}
