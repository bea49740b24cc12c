package accountrepo_test

import (
	"testing"
	"time"

	"freight/internal/adapters/out/postgres/accountrepo"
	"freight/internal/core/domain/model/account"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type nopTracker struct{}

func (nopTracker) TrackAggregate(kernel.UUID, any) {}

func setupRepository(t *testing.T) *accountrepo.GormAccountRepository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&accountrepo.UserDTO{}, &accountrepo.CompanyDTO{}, &accountrepo.CompanyMemberDTO{},
	))

	return accountrepo.NewGormAccountRepository(db, nopTracker{})
}

func registeredAt() time.Time {
	return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
}

func newSender(t *testing.T, email string) *account.User {
	t.Helper()

	role, err := account.NewSenderRole(kernel.NewUUID(), "JH Logistics", "Seoul")
	require.NoError(t, err)

	user, err := account.NewUser(kernel.NewUUID(), registeredAt(), email, "hash", &role, nil)
	require.NoError(t, err)

	return user
}

func newDriver(t *testing.T, phone, vehicleID string) *account.User {
	t.Helper()

	role, err := account.NewDriverRole(
		kernel.NewUUID(), "김기사", phone,
		time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC),
		vehicleID, account.Truck5T,
	)
	require.NoError(t, err)

	user, err := account.NewUser(kernel.NewUUID(), registeredAt(), "", "", nil, &role)
	require.NoError(t, err)

	return user
}

func TestGormAccountRepository_Users(t *testing.T) {
	t.Run("should round-trip a sender with its role", func(t *testing.T) {
		ctx := t.Context()
		repo := setupRepository(t)

		user := newSender(t, "sender@example.com")
		user.VerifyEmail()
		require.NoError(t, repo.AddUser(ctx, user))

		restored, err := repo.GetUser(ctx, user.ID())
		require.NoError(t, err)

		assert.True(t, restored.IsSender())
		assert.True(t, restored.HasEmailVerified())
		require.NotNil(t, restored.SenderRole())
		assert.Equal(t, "JH Logistics", restored.SenderRole().CompanyName())
		assert.True(t, restored.SenderRole().ID().IsEqual(user.SenderRole().ID()))
	})

	t.Run("should find a driver by phone and by vehicle id", func(t *testing.T) {
		ctx := t.Context()
		repo := setupRepository(t)

		driver := newDriver(t, "01012345678", "12가3456")
		require.NoError(t, repo.AddUser(ctx, driver))

		byPhone, err := repo.GetUserByPhone(ctx, "01012345678")
		require.NoError(t, err)
		assert.True(t, byPhone.ID().IsEqual(driver.ID()))

		byVehicle, err := repo.GetUserByVehicleID(ctx, "12가3456")
		require.NoError(t, err)
		assert.True(t, byVehicle.ID().IsEqual(driver.ID()))
		require.NotNil(t, byVehicle.DriverRole())
		assert.Equal(t, account.Truck5T, byVehicle.DriverRole().VehicleType())
		assert.Equal(t, "19800101", byVehicle.DriverRole().BirthdayYYYYMMDD())
	})

	t.Run("should find a sender by email", func(t *testing.T) {
		ctx := t.Context()
		repo := setupRepository(t)

		user := newSender(t, "sender@example.com")
		require.NoError(t, repo.AddUser(ctx, user))

		restored, err := repo.GetUserByEmail(ctx, "sender@example.com")
		require.NoError(t, err)
		assert.True(t, restored.ID().IsEqual(user.ID()))
	})

	t.Run("should report unknown lookups as not found", func(t *testing.T) {
		ctx := t.Context()
		repo := setupRepository(t)

		_, err := repo.GetUserByVehicleID(ctx, "99호9999")
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)

		_, err = repo.GetUserByEmail(ctx, "nobody@example.com")
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should persist user updates including cleared company", func(t *testing.T) {
		ctx := t.Context()
		repo := setupRepository(t)

		user := newSender(t, "sender@example.com")
		require.NoError(t, repo.AddUser(ctx, user))

		companyID := kernel.NewUUID()
		require.NoError(t, user.JoinCompany(companyID))
		require.NoError(t, repo.UpdateUser(ctx, user))

		restored, err := repo.GetUser(ctx, user.ID())
		require.NoError(t, err)
		require.NotNil(t, restored.CompanyID())
		assert.True(t, restored.CompanyID().IsEqual(companyID))

		user.LeaveCompany()
		require.NoError(t, repo.UpdateUser(ctx, user))

		restored, err = repo.GetUser(ctx, user.ID())
		require.NoError(t, err)
		assert.Nil(t, restored.CompanyID())
	})
}

func TestGormAccountRepository_Companies(t *testing.T) {
	t.Run("should round-trip a company with members in order", func(t *testing.T) {
		ctx := t.Context()
		repo := setupRepository(t)

		ownerID := kernel.NewUUID()
		senderRoleID := kernel.NewUUID()
		company, err := account.NewCompany(kernel.NewUUID(), "JH Logistics", ownerID, &senderRoleID)
		require.NoError(t, err)

		memberID := kernel.NewUUID()
		require.NoError(t, company.AddMember(memberID))
		require.NoError(t, repo.AddCompany(ctx, company))

		restored, err := repo.GetCompany(ctx, company.ID())
		require.NoError(t, err)

		assert.Equal(t, "JH Logistics", restored.Name())
		assert.True(t, restored.OwnerID().IsEqual(ownerID))
		require.NotNil(t, restored.SenderRoleID())
		assert.True(t, restored.SenderRoleID().IsEqual(senderRoleID))

		memberIDs := restored.MemberIDs()
		require.Len(t, memberIDs, 2)
		assert.True(t, memberIDs[0].IsEqual(ownerID))
		assert.True(t, memberIDs[1].IsEqual(memberID))
	})

	t.Run("should resolve membership through GetCompanyOfUser", func(t *testing.T) {
		ctx := t.Context()
		repo := setupRepository(t)

		ownerID := kernel.NewUUID()
		company, err := account.NewCompany(kernel.NewUUID(), "JH Logistics", ownerID, nil)
		require.NoError(t, err)
		require.NoError(t, repo.AddCompany(ctx, company))

		found, err := repo.GetCompanyOfUser(ctx, ownerID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.True(t, found.ID().IsEqual(company.ID()))

		none, err := repo.GetCompanyOfUser(ctx, kernel.NewUUID())
		require.NoError(t, err)
		assert.Nil(t, none)
	})

	t.Run("should persist member removal", func(t *testing.T) {
		ctx := t.Context()
		repo := setupRepository(t)

		ownerID := kernel.NewUUID()
		company, err := account.NewCompany(kernel.NewUUID(), "JH Logistics", ownerID, nil)
		require.NoError(t, err)
		memberID := kernel.NewUUID()
		require.NoError(t, company.AddMember(memberID))
		require.NoError(t, repo.AddCompany(ctx, company))

		require.NoError(t, company.RemoveMember(memberID))
		require.NoError(t, repo.UpdateCompany(ctx, company))

		restored, err := repo.GetCompany(ctx, company.ID())
		require.NoError(t, err)
		assert.False(t, restored.HasMember(memberID))
		assert.True(t, restored.HasMember(ownerID))
	})
}
