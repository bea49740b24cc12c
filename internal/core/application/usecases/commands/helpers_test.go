package commands_test

import (
	"testing"
	"time"

	"freight/internal/core/domain/model/account"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/services"

	"github.com/stretchr/testify/require"
)

func testNow() time.Time {
	return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
}

func senderActor(t *testing.T, senderRoleID kernel.UUID) services.Actor {
	t.Helper()

	role, err := account.NewSenderRole(senderRoleID, "JH Logistics", "Seoul")
	require.NoError(t, err)

	user, err := account.NewUser(kernel.NewUUID(), testNow(), "sender@example.com", "hash", &role, nil)
	require.NoError(t, err)

	actor, err := services.NewActor(user, nil)
	require.NoError(t, err)

	return actor
}

func driverActor(t *testing.T, driverRoleID kernel.UUID) services.Actor {
	t.Helper()

	role, err := account.NewDriverRole(
		driverRoleID, "김기사", "01012345678",
		time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC),
		"12가3456", account.Truck5T,
	)
	require.NoError(t, err)

	user, err := account.NewUser(kernel.NewUUID(), testNow(), "", "", nil, &role)
	require.NoError(t, err)

	actor, err := services.NewActor(user, nil)
	require.NoError(t, err)

	return actor
}

func requestedOrder(t *testing.T, senderRoleID kernel.UUID) *order.Order {
	t.Helper()

	roleID := senderRoleID
	testOrder, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), &roleID, testNow())
	require.NoError(t, err)

	return testOrder
}

func allocatedOrder(t *testing.T, senderRoleID, driverRoleID kernel.UUID) *order.Order {
	t.Helper()

	testOrder := requestedOrder(t, senderRoleID)
	driverUserID := kernel.NewUUID()
	require.NoError(t, testOrder.Allocate(driverUserID, driverRoleID, driverUserID, testNow().Add(time.Hour)))

	return testOrder
}

func shippingOrder(t *testing.T, senderRoleID, driverRoleID kernel.UUID) *order.Order {
	t.Helper()

	testOrder := allocatedOrder(t, senderRoleID, driverRoleID)
	require.NoError(t, testOrder.Onboard(kernel.NewUUID(), testNow().Add(2*time.Hour)))

	return testOrder
}
