package commands_test

import (
	"testing"
	"time"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/account"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func driverUser(t *testing.T, vehicleID string) *account.User {
	t.Helper()

	role, err := account.NewDriverRole(
		kernel.NewUUID(), "김기사", "01012345678",
		time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC),
		vehicleID, account.Truck5T,
	)
	require.NoError(t, err)

	user, err := account.NewUser(kernel.NewUUID(), testNow(), "", "", nil, &role)
	require.NoError(t, err)

	return user
}

func TestAllocateOrderCommandHandler_Handle(t *testing.T) {
	t.Run("should allocate the driver resolved by vehicle id", func(t *testing.T) {
		ctx := t.Context()
		senderRoleID := kernel.NewUUID()
		actor := senderActor(t, senderRoleID)
		testOrder := requestedOrder(t, senderRoleID)
		driver := driverUser(t, "12가3456")

		cmd, err := commands.NewAllocateOrderCommand(actor, testOrder.ID(), "12가3456")
		require.NoError(t, err)

		orderRepo := new(MockOrderRepository)
		accountRepo := new(MockAccountRepository)
		uow := new(MockUoW)

		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("OrderRepository").Return(orderRepo).Once(),
			orderRepo.On("GetForUpdate", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
			uow.On("AccountRepository").Return(accountRepo).Once(),
			accountRepo.On("GetUserByVehicleID", ctx, "12가3456").Return(driver, nil).Once(),
			uow.On("OrderRepository").Return(orderRepo).Once(),
			orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).
				Run(func(args mock.Arguments) {
					updated := args.Get(1).(*order.Order)
					assert.Equal(t, order.Allocated, updated.State())
					assert.True(t, updated.DriverRoleID().IsEqual(driver.DriverRole().ID()))
				}).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		factory := new(MockAllocationUoWFactory)
		factory.On("Create").Return(uow).Once()

		handler := commands.NewAllocateOrderCommandHandler(factory, fixedClock{now: testNow().Add(time.Hour)})

		require.NoError(t, handler.Handle(ctx, cmd))
		uow.AssertExpectations(t)
	})

	t.Run("should reject actors without modification rights", func(t *testing.T) {
		ctx := t.Context()
		actor := senderActor(t, kernel.NewUUID())
		testOrder := requestedOrder(t, kernel.NewUUID())

		cmd, err := commands.NewAllocateOrderCommand(actor, testOrder.ID(), "12가3456")
		require.NoError(t, err)

		orderRepo := new(MockOrderRepository)
		uow := new(MockUoW)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("OrderRepository").Return(orderRepo).Once()
		orderRepo.On("GetForUpdate", ctx, testOrder.ID()).Return(testOrder, nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		factory := new(MockAllocationUoWFactory)
		factory.On("Create").Return(uow).Once()

		handler := commands.NewAllocateOrderCommandHandler(factory, fixedClock{now: testNow()})
		err = handler.Handle(ctx, cmd)

		require.Error(t, err)
		assert.ErrorIs(t, err, commands.ErrNotAuthorized)
		uow.AssertNotCalled(t, "Commit", ctx)
	})

	t.Run("should treat unknown vehicle id as authorization failure", func(t *testing.T) {
		ctx := t.Context()
		senderRoleID := kernel.NewUUID()
		actor := senderActor(t, senderRoleID)
		testOrder := requestedOrder(t, senderRoleID)

		cmd, err := commands.NewAllocateOrderCommand(actor, testOrder.ID(), "99호9999")
		require.NoError(t, err)

		orderRepo := new(MockOrderRepository)
		accountRepo := new(MockAccountRepository)
		uow := new(MockUoW)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("OrderRepository").Return(orderRepo).Once()
		orderRepo.On("GetForUpdate", ctx, testOrder.ID()).Return(testOrder, nil).Once()
		uow.On("AccountRepository").Return(accountRepo).Once()
		accountRepo.On("GetUserByVehicleID", ctx, "99호9999").
			Return(nil, errs.NewObjectNotFoundError("vehicleID", "99호9999")).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		factory := new(MockAllocationUoWFactory)
		factory.On("Create").Return(uow).Once()

		handler := commands.NewAllocateOrderCommandHandler(factory, fixedClock{now: testNow()})
		err = handler.Handle(ctx, cmd)

		require.Error(t, err)
		assert.ErrorIs(t, err, commands.ErrNotAuthorized)
	})

	t.Run("should reject re-allocation of a previously deallocated driver", func(t *testing.T) {
		ctx := t.Context()
		senderRoleID := kernel.NewUUID()
		actor := senderActor(t, senderRoleID)
		driver := driverUser(t, "12가3456")

		testOrder := requestedOrder(t, senderRoleID)
		require.NoError(t, testOrder.Allocate(
			driver.ID(), driver.DriverRole().ID(), driver.ID(), testNow().Add(time.Hour),
		))
		require.NoError(t, testOrder.Deallocate(driver.ID(), testNow().Add(2*time.Hour)))

		cmd, err := commands.NewAllocateOrderCommand(actor, testOrder.ID(), "12가3456")
		require.NoError(t, err)

		orderRepo := new(MockOrderRepository)
		accountRepo := new(MockAccountRepository)
		uow := new(MockUoW)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("OrderRepository").Return(orderRepo).Once()
		orderRepo.On("GetForUpdate", ctx, testOrder.ID()).Return(testOrder, nil).Once()
		uow.On("AccountRepository").Return(accountRepo).Once()
		accountRepo.On("GetUserByVehicleID", ctx, "12가3456").Return(driver, nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		factory := new(MockAllocationUoWFactory)
		factory.On("Create").Return(uow).Once()

		handler := commands.NewAllocateOrderCommandHandler(factory, fixedClock{now: testNow().Add(3 * time.Hour)})
		err = handler.Handle(ctx, cmd)

		require.Error(t, err)
		assert.ErrorIs(t, err, commands.ErrNotAuthorized)
		assert.Equal(t, order.Requested, testOrder.State())
	})

	t.Run("should propagate missing order as not found", func(t *testing.T) {
		ctx := t.Context()
		actor := senderActor(t, kernel.NewUUID())
		orderID := kernel.NewUUID()

		cmd, err := commands.NewAllocateOrderCommand(actor, orderID, "12가3456")
		require.NoError(t, err)

		orderRepo := new(MockOrderRepository)
		uow := new(MockUoW)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("OrderRepository").Return(orderRepo).Once()
		orderRepo.On("GetForUpdate", ctx, orderID).
			Return(nil, errs.NewObjectNotFoundError("orderID", orderID)).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		factory := new(MockAllocationUoWFactory)
		factory.On("Create").Return(uow).Once()

		handler := commands.NewAllocateOrderCommandHandler(factory, fixedClock{now: testNow()})
		err = handler.Handle(ctx, cmd)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}
