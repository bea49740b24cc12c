// Package accountrepo persists users, their roles, and companies. A user's
// single role is denormalized into nullable column groups on the user row:
// a user has exactly one role, so exactly one group is populated.
package accountrepo

import (
	"time"

	"freight/internal/core/domain/model/account"
	"freight/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// UserDTO is the database row for a user aggregate.
type UserDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	RegisterTime  time.Time
	Email         string `gorm:"index"`
	PasswordHash  string
	EmailVerified bool
	GoogleID      string     `gorm:"index"`
	CompanyID     *uuid.UUID `gorm:"type:uuid;index"`

	SenderRoleID         *uuid.UUID `gorm:"type:uuid;index"`
	SenderCompanyName    string
	SenderCompanyAddress string

	DriverRoleID   *uuid.UUID `gorm:"type:uuid;index"`
	DriverName     string
	DriverPhone    string `gorm:"index"`
	DriverBirthday *time.Time
	VehicleID      string `gorm:"index"`
	VehicleType    int
}

// TableName overrides GORM's default naming to use "users".
func (UserDTO) TableName() string {
	return "users"
}

// CompanyDTO is the database row for a company aggregate.
type CompanyDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string
	OwnerID      uuid.UUID  `gorm:"type:uuid"`
	SenderRoleID *uuid.UUID `gorm:"type:uuid"`

	Members []CompanyMemberDTO `gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default naming to use "companies".
func (CompanyDTO) TableName() string {
	return "companies"
}

// CompanyMemberDTO is one membership link between a company and a user.
type CompanyMemberDTO struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	CompanyID uuid.UUID `gorm:"type:uuid;index"`
	UserID    uuid.UUID `gorm:"type:uuid;index"`
	Seq       int       `gorm:"index"`
}

// TableName overrides GORM's default naming to use "company_members".
func (CompanyMemberDTO) TableName() string {
	return "company_members"
}

func userFromDomain(user *account.User) UserDTO {
	dto := UserDTO{
		ID:            user.ID().Bytes(),
		RegisterTime:  user.RegisterTime(),
		Email:         user.Email(),
		PasswordHash:  user.PasswordHash(),
		EmailVerified: user.HasEmailVerified(),
		GoogleID:      user.GoogleID(),
	}

	if companyID := user.CompanyID(); companyID != nil {
		raw := companyID.Bytes()
		dto.CompanyID = &raw
	}

	if role := user.SenderRole(); role != nil {
		raw := role.ID().Bytes()
		dto.SenderRoleID = &raw
		dto.SenderCompanyName = role.CompanyName()
		dto.SenderCompanyAddress = role.CompanyAddress()
	}

	if role := user.DriverRole(); role != nil {
		raw := role.ID().Bytes()
		birthday := role.Birthday()
		dto.DriverRoleID = &raw
		dto.DriverName = role.Name()
		dto.DriverPhone = role.Phone()
		dto.DriverBirthday = &birthday
		dto.VehicleID = role.VehicleID()
		dto.VehicleType = int(role.VehicleType())
	}

	return dto
}

func userToDomain(dto UserDTO) (*account.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var senderRole *account.SenderRole
	if dto.SenderRoleID != nil {
		roleID, roleErr := kernel.UUIDFromBytes((*dto.SenderRoleID)[:])
		if roleErr != nil {
			return nil, roleErr
		}
		role, roleErr := account.NewSenderRole(roleID, dto.SenderCompanyName, dto.SenderCompanyAddress)
		if roleErr != nil {
			return nil, roleErr
		}
		senderRole = &role
	}

	var driverRole *account.DriverRole
	if dto.DriverRoleID != nil {
		roleID, roleErr := kernel.UUIDFromBytes((*dto.DriverRoleID)[:])
		if roleErr != nil {
			return nil, roleErr
		}
		var birthday time.Time
		if dto.DriverBirthday != nil {
			birthday = *dto.DriverBirthday
		}
		role, roleErr := account.NewDriverRole(
			roleID, dto.DriverName, dto.DriverPhone, birthday,
			dto.VehicleID, account.VehicleType(dto.VehicleType),
		)
		if roleErr != nil {
			return nil, roleErr
		}
		driverRole = &role
	}

	var companyID *kernel.UUID
	if dto.CompanyID != nil {
		cID, companyErr := kernel.UUIDFromBytes((*dto.CompanyID)[:])
		if companyErr != nil {
			return nil, companyErr
		}
		companyID = &cID
	}

	return account.RestoreUser(
		id, dto.RegisterTime, dto.Email, dto.PasswordHash,
		dto.EmailVerified, dto.GoogleID, senderRole, driverRole, companyID,
	)
}

func companyFromDomain(company *account.Company) CompanyDTO {
	dto := CompanyDTO{
		ID:      company.ID().Bytes(),
		Name:    company.Name(),
		OwnerID: company.OwnerID().Bytes(),
	}

	if roleID := company.SenderRoleID(); roleID != nil {
		raw := roleID.Bytes()
		dto.SenderRoleID = &raw
	}

	for i, memberID := range company.MemberIDs() {
		dto.Members = append(dto.Members, CompanyMemberDTO{
			CompanyID: company.ID().Bytes(),
			UserID:    memberID.Bytes(),
			Seq:       i,
		})
	}

	return dto
}

func companyToDomain(dto CompanyDTO) (*account.Company, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}

	var senderRoleID *kernel.UUID
	if dto.SenderRoleID != nil {
		roleID, roleErr := kernel.UUIDFromBytes((*dto.SenderRoleID)[:])
		if roleErr != nil {
			return nil, roleErr
		}
		senderRoleID = &roleID
	}

	memberIDs := make([]kernel.UUID, 0, len(dto.Members))
	for _, member := range dto.Members {
		memberID, memberErr := kernel.UUIDFromBytes(member.UserID[:])
		if memberErr != nil {
			return nil, memberErr
		}
		memberIDs = append(memberIDs, memberID)
	}

	return account.RestoreCompany(id, dto.Name, ownerID, senderRoleID, memberIDs)
}
