package account_test

import (
	"testing"
	"time"

	"freight/internal/core/domain/model/account"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registeredAt() time.Time {
	return time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
}

func createSenderRole(t *testing.T) account.SenderRole {
	t.Helper()

	role, err := account.NewSenderRole(kernel.NewUUID(), "JH Logistics", "Seoul")
	require.NoError(t, err)

	return role
}

func createDriverRole(t *testing.T) account.DriverRole {
	t.Helper()

	role, err := account.NewDriverRole(
		kernel.NewUUID(), "김기사", "01012345678",
		time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC),
		"12가3456", account.Truck5T,
	)
	require.NoError(t, err)

	return role
}

func createSenderUser(t *testing.T) *account.User {
	t.Helper()

	hash, err := account.HashPassword("secret-password")
	require.NoError(t, err)

	role := createSenderRole(t)
	user, err := account.NewUser(kernel.NewUUID(), registeredAt(), "sender@example.com", hash, &role, nil)
	require.NoError(t, err)

	return user
}

func createDriverUser(t *testing.T) *account.User {
	t.Helper()

	role := createDriverRole(t)
	user, err := account.NewUser(kernel.NewUUID(), registeredAt(), "", "", nil, &role)
	require.NoError(t, err)

	return user
}

func TestVehicleType(t *testing.T) {
	t.Run("should validate all eight truck classes", func(t *testing.T) {
		classes := []account.VehicleType{
			account.Truck1T, account.Truck1_4T, account.Truck2_5T, account.Truck3_5T,
			account.Truck5T, account.Truck11T, account.Truck18T, account.Truck25T,
		}

		for _, vehicleType := range classes {
			require.NoError(t, vehicleType.Validate())

			parsed, err := account.VehicleTypeFromString(vehicleType.String())
			require.NoError(t, err)
			assert.Equal(t, vehicleType, parsed)
		}
	})

	t.Run("should reject invalid vehicle types", func(t *testing.T) {
		err := account.VehicleUnknown.Validate()

		require.Error(t, err)
		assert.IsType(t, &errs.ValueIsInvalidError{}, err)

		_, err = account.VehicleTypeFromString("TRUCK_99T")
		require.Error(t, err)
	})

	t.Run("should use persisted names", func(t *testing.T) {
		assert.Equal(t, "TRUCK_1T", account.Truck1T.String())
		assert.Equal(t, "TRUCK_1_4T", account.Truck1_4T.String())
		assert.Equal(t, "TRUCK_25T", account.Truck25T.String())
	})
}

func TestNewDriverRole(t *testing.T) {
	t.Run("should create driver role", func(t *testing.T) {
		role := createDriverRole(t)

		assert.Equal(t, "김기사", role.Name())
		assert.Equal(t, "01012345678", role.Phone())
		assert.Equal(t, "12가3456", role.VehicleID())
		assert.Equal(t, account.Truck5T, role.VehicleType())
		assert.Equal(t, "19800101", role.BirthdayYYYYMMDD())
	})

	t.Run("should reject missing identity fields", func(t *testing.T) {
		_, err := account.NewDriverRole(
			kernel.NewUUID(), "", "01012345678",
			time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC),
			"12가3456", account.Truck5T,
		)

		require.Error(t, err)
		assert.IsType(t, &errs.ValueIsRequiredError{}, err)
	})

	t.Run("should reject unknown vehicle type", func(t *testing.T) {
		_, err := account.NewDriverRole(
			kernel.NewUUID(), "김기사", "01012345678",
			time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC),
			"12가3456", account.VehicleUnknown,
		)

		require.Error(t, err)
	})
}

func TestNewUser(t *testing.T) {
	t.Run("should create sender user", func(t *testing.T) {
		user := createSenderUser(t)

		assert.True(t, user.IsSender())
		assert.False(t, user.IsDriver())
		assert.Equal(t, "sender@example.com", user.Email())
		require.NoError(t, user.Validate())
	})

	t.Run("should reject user without any role", func(t *testing.T) {
		_, err := account.NewUser(kernel.NewUUID(), registeredAt(), "a@b.c", "hash", nil, nil)

		require.Error(t, err)
		assert.ErrorIs(t, err, account.ErrUserMustHaveExactlyOneRole)
	})

	t.Run("should reject user with both roles", func(t *testing.T) {
		senderRole := createSenderRole(t)
		driverRole := createDriverRole(t)

		_, err := account.NewUser(kernel.NewUUID(), registeredAt(), "a@b.c", "hash", &senderRole, &driverRole)

		require.Error(t, err)
		assert.ErrorIs(t, err, account.ErrUserMustHaveExactlyOneRole)
	})

	t.Run("should reject user not created via constructor", func(t *testing.T) {
		var user account.User

		err := user.Validate()

		require.Error(t, err)
		assert.ErrorIs(t, err, account.ErrUserIsNotConstructed)
	})
}

func TestUser_Password(t *testing.T) {
	t.Run("should accept the correct password", func(t *testing.T) {
		user := createSenderUser(t)

		assert.True(t, user.HasValidPassword("secret-password"))
	})

	t.Run("should reject a wrong password", func(t *testing.T) {
		user := createSenderUser(t)

		assert.False(t, user.HasValidPassword("wrong-password"))
		assert.False(t, user.HasValidPassword(""))
	})

	t.Run("should never match against an empty hash", func(t *testing.T) {
		user := createDriverUser(t)

		assert.False(t, user.HasValidPassword("anything"))
		assert.False(t, user.HasValidPassword(""))
	})

	t.Run("should replace the stored hash", func(t *testing.T) {
		user := createSenderUser(t)

		require.NoError(t, user.SetPassword("new-password"))

		assert.True(t, user.HasValidPassword("new-password"))
		assert.False(t, user.HasValidPassword("secret-password"))
	})
}

func TestUser_HasVerified(t *testing.T) {
	t.Run("should treat drivers as always verified", func(t *testing.T) {
		user := createDriverUser(t)

		assert.True(t, user.HasVerified())
	})

	t.Run("should require email verification for senders", func(t *testing.T) {
		user := createSenderUser(t)

		assert.False(t, user.HasVerified())

		user.VerifyEmail()

		assert.True(t, user.HasVerified())
		assert.True(t, user.HasEmailVerified())
	})
}

func TestCompany(t *testing.T) {
	createCompany := func(t *testing.T, ownerID kernel.UUID) *account.Company {
		t.Helper()
		senderRoleID := kernel.NewUUID()
		company, err := account.NewCompany(kernel.NewUUID(), "JH Logistics", ownerID, &senderRoleID)
		require.NoError(t, err)
		return company
	}

	t.Run("should enroll the owner as first member", func(t *testing.T) {
		ownerID := kernel.NewUUID()
		company := createCompany(t, ownerID)

		assert.True(t, company.IsOwner(ownerID))
		assert.True(t, company.HasMember(ownerID))
		assert.Len(t, company.MemberIDs(), 1)
	})

	t.Run("should add and remove members", func(t *testing.T) {
		company := createCompany(t, kernel.NewUUID())
		memberID := kernel.NewUUID()

		require.NoError(t, company.AddMember(memberID))
		assert.True(t, company.HasMember(memberID))

		require.NoError(t, company.AddMember(memberID))
		assert.Len(t, company.MemberIDs(), 2)

		require.NoError(t, company.RemoveMember(memberID))
		assert.False(t, company.HasMember(memberID))
	})

	t.Run("should not remove the owner", func(t *testing.T) {
		ownerID := kernel.NewUUID()
		company := createCompany(t, ownerID)

		err := company.RemoveMember(ownerID)

		require.Error(t, err)
		assert.IsType(t, &errs.ValueIsInvalidError{}, err)
	})

	t.Run("should report unknown members as not found", func(t *testing.T) {
		company := createCompany(t, kernel.NewUUID())

		err := company.RemoveMember(kernel.NewUUID())

		require.Error(t, err)
		assert.IsType(t, &errs.ObjectNotFoundError{}, err)
	})
}

func TestResolveDisplayCompany(t *testing.T) {
	t.Run("should show the owner's fields to non-owner members", func(t *testing.T) {
		owner := createSenderUser(t)
		member := createSenderUser(t)
		company, err := account.NewCompany(kernel.NewUUID(), "JH Logistics", owner.ID(), nil)
		require.NoError(t, err)
		require.NoError(t, company.AddMember(member.ID()))

		display := account.ResolveDisplayCompany(member, company, owner)

		assert.Equal(t, "JH Logistics", display.Name)
		assert.Equal(t, "Seoul", display.Address)
	})

	t.Run("should show the owner their own fields", func(t *testing.T) {
		owner := createSenderUser(t)
		company, err := account.NewCompany(kernel.NewUUID(), "JH Logistics", owner.ID(), nil)
		require.NoError(t, err)

		display := account.ResolveDisplayCompany(owner, company, owner)

		assert.Equal(t, owner.SenderRole().CompanyName(), display.Name)
	})

	t.Run("should fall back to own sender role without a company", func(t *testing.T) {
		user := createSenderUser(t)

		display := account.ResolveDisplayCompany(user, nil, nil)

		assert.Equal(t, "JH Logistics", display.Name)
	})

	t.Run("should resolve empty fields for drivers", func(t *testing.T) {
		user := createDriverUser(t)

		display := account.ResolveDisplayCompany(user, nil, nil)

		assert.Empty(t, display.Name)
		assert.Empty(t, display.Address)
	})
}
