package ports

import (
	"context"

	"freight/internal/core/domain/model/account"
	"freight/internal/core/domain/model/kernel"
)

// AccountRepository defines the persistence contract for users and
// companies. Lookup methods resolve exactly one account per unique key
// (email, phone, vehicle ID) and return errs.ObjectNotFoundError when no
// account matches.
type AccountRepository interface {
	// AddUser persists a new user with their role.
	AddUser(ctx context.Context, aggregate *account.User) error

	// UpdateUser persists changes to an existing user.
	UpdateUser(ctx context.Context, aggregate *account.User) error

	// GetUser retrieves a user by their unique identifier.
	GetUser(ctx context.Context, id kernel.UUID) (*account.User, error)

	// GetUserByEmail retrieves the user whose account email matches.
	GetUserByEmail(ctx context.Context, email string) (*account.User, error)

	// GetUserByPhone retrieves the driver user with the given phone.
	GetUserByPhone(ctx context.Context, phone string) (*account.User, error)

	// GetUserByVehicleID retrieves the driver user operating the given
	// vehicle. Allocation resolves drivers through this.
	GetUserByVehicleID(ctx context.Context, vehicleID string) (*account.User, error)

	// AddCompany persists a new company.
	AddCompany(ctx context.Context, aggregate *account.Company) error

	// UpdateCompany persists changes to an existing company.
	UpdateCompany(ctx context.Context, aggregate *account.Company) error

	// GetCompany retrieves a company by its unique identifier.
	GetCompany(ctx context.Context, id kernel.UUID) (*account.Company, error)

	// GetCompanyOfUser retrieves the company the user belongs to, or nil
	// without error when the user has no membership.
	GetCompanyOfUser(ctx context.Context, userID kernel.UUID) (*account.Company, error)
}
