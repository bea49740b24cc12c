package accountrepo

import (
	"context"
	"errors"

	"freight/internal/core/domain/model/account"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormAccountRepository implements AccountRepository using GORM.
type GormAccountRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormAccountRepository creates a new GORM account repository.
func NewGormAccountRepository(db *gorm.DB, tracker aggregateTracker) *GormAccountRepository {
	return &GormAccountRepository{
		db:      db,
		tracker: tracker,
	}
}

// AddUser saves a new user to the database.
func (r *GormAccountRepository) AddUser(ctx context.Context, user *account.User) error {
	if err := user.Validate(); err != nil {
		return err
	}

	dto := userFromDomain(user)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(user.ID(), user)
	return nil
}

// UpdateUser saves an existing user. Select("*") forces nullable columns
// to be written even when cleared, such as leaving a company.
func (r *GormAccountRepository) UpdateUser(ctx context.Context, user *account.User) error {
	if err := user.Validate(); err != nil {
		return err
	}

	dto := userFromDomain(user)
	result := r.db.WithContext(ctx).Model(&UserDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(user.ID(), user)
	return nil
}

// GetUser retrieves a user by ID.
func (r *GormAccountRepository) GetUser(ctx context.Context, id kernel.UUID) (*account.User, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.getUserBy(ctx, "id = ?", id.Bytes(), id.String())
}

// GetUserByEmail retrieves a user by email address.
func (r *GormAccountRepository) GetUserByEmail(ctx context.Context, email string) (*account.User, error) {
	if email == "" {
		return nil, errs.NewValueIsRequiredError("email")
	}
	return r.getUserBy(ctx, "email = ?", email, email)
}

// GetUserByPhone retrieves a user by the driver role's phone number.
func (r *GormAccountRepository) GetUserByPhone(ctx context.Context, phone string) (*account.User, error) {
	if phone == "" {
		return nil, errs.NewValueIsRequiredError("phone")
	}
	return r.getUserBy(ctx, "driver_phone = ?", phone, phone)
}

// GetUserByVehicleID retrieves the driver registered under a vehicle ID.
func (r *GormAccountRepository) GetUserByVehicleID(ctx context.Context, vehicleID string) (*account.User, error) {
	if vehicleID == "" {
		return nil, errs.NewValueIsRequiredError("vehicleID")
	}
	return r.getUserBy(ctx, "vehicle_id = ?", vehicleID, vehicleID)
}

func (r *GormAccountRepository) getUserBy(
	ctx context.Context,
	condition string,
	value any,
	lookup string,
) (*account.User, error) {
	var dto UserDTO
	if err := r.db.WithContext(ctx).First(&dto, condition, value).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("user", lookup)
		}
		return nil, err
	}

	return userToDomain(dto)
}

// AddCompany saves a new company with its member links.
func (r *GormAccountRepository) AddCompany(ctx context.Context, company *account.Company) error {
	if err := company.Validate(); err != nil {
		return err
	}

	dto := companyFromDomain(company)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(company.ID(), company)
	return nil
}

// UpdateCompany saves an existing company, rewriting its member links.
func (r *GormAccountRepository) UpdateCompany(ctx context.Context, company *account.Company) error {
	if err := company.Validate(); err != nil {
		return err
	}

	dto := companyFromDomain(company)
	db := r.db.WithContext(ctx)

	result := db.Model(&CompanyDTO{}).
		Where("id = ?", dto.ID).
		Select("Name", "OwnerID", "SenderRoleID").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	if err := db.Where("company_id = ?", dto.ID).Delete(&CompanyMemberDTO{}).Error; err != nil {
		return err
	}
	if len(dto.Members) > 0 {
		if err := db.Create(&dto.Members).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(company.ID(), company)
	return nil
}

// GetCompany retrieves a company by ID with its members.
func (r *GormAccountRepository) GetCompany(ctx context.Context, id kernel.UUID) (*account.Company, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CompanyDTO
	err := r.db.WithContext(ctx).
		Preload("Members", func(db *gorm.DB) *gorm.DB { return db.Order("seq") }).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("company", id.String())
		}
		return nil, err
	}

	return companyToDomain(dto)
}

// GetCompanyOfUser retrieves the company a user belongs to, or nil without
// error when the user has no membership.
func (r *GormAccountRepository) GetCompanyOfUser(ctx context.Context, userID kernel.UUID) (*account.Company, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	var member CompanyMemberDTO
	err := r.db.WithContext(ctx).First(&member, "user_id = ?", userID.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	companyID, err := kernel.UUIDFromBytes(member.CompanyID[:])
	if err != nil {
		return nil, err
	}

	return r.GetCompany(ctx, companyID)
}
