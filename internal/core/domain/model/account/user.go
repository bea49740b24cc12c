package account

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

var (
	// ErrUserIsNotConstructed is returned when a User instance was not
	// created through NewUser or RestoreUser.
	ErrUserIsNotConstructed = errors.New("User must be created via NewUser or RestoreUser")

	// ErrUserMustHaveExactlyOneRole is returned when a user is created
	// with zero or both roles. A user is either a sender or a driver.
	ErrUserMustHaveExactlyOneRole = errors.New("user must have exactly one of sender role or driver role")
)

// HashPassword derives a bcrypt hash for storage.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errs.NewValueIsRequiredError("password")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// User is the aggregate root for one account. Every user carries exactly
// one role: senders post and manage orders, drivers haul them. Sender
// users may additionally belong to one company, sharing the company's
// sender role for order ownership.
type User struct {
	id            kernel.UUID
	registerTime  time.Time
	email         string
	passwordHash  string
	emailVerified bool
	googleID      string
	senderRole    *SenderRole
	driverRole    *DriverRole
	companyID     *kernel.UUID

	isConstructed bool
}

// NewUser creates a user with exactly one role. email and passwordHash may
// be empty for driver accounts registered by an administrator, which
// authenticate by phone instead.
func NewUser(
	id kernel.UUID,
	registerTime time.Time,
	email string,
	passwordHash string,
	senderRole *SenderRole,
	driverRole *DriverRole,
) (*User, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if registerTime.IsZero() {
		return nil, errs.NewValueIsRequiredError("registerTime")
	}
	if (senderRole == nil) == (driverRole == nil) {
		return nil, ErrUserMustHaveExactlyOneRole
	}

	return &User{
		id:            id,
		registerTime:  registerTime,
		email:         email,
		passwordHash:  passwordHash,
		senderRole:    senderRole,
		driverRole:    driverRole,
		isConstructed: true,
	}, nil
}

// RestoreUser reconstructs a user from persistence.
func RestoreUser(
	id kernel.UUID,
	registerTime time.Time,
	email string,
	passwordHash string,
	emailVerified bool,
	googleID string,
	senderRole *SenderRole,
	driverRole *DriverRole,
	companyID *kernel.UUID,
) (*User, error) {
	user, err := NewUser(id, registerTime, email, passwordHash, senderRole, driverRole)
	if err != nil {
		return nil, err
	}

	if companyID != nil {
		if err = companyID.Validate(); err != nil {
			return nil, err
		}
	}

	user.emailVerified = emailVerified
	user.googleID = googleID
	user.companyID = companyID
	return user, nil
}

// Validate ensures the User was created via its constructors.
func (u *User) Validate() error {
	if u == nil || !u.isConstructed {
		return ErrUserIsNotConstructed
	}
	return nil
}

// IsEqual compares two users by their unique identifiers.
func (u *User) IsEqual(other *User) bool {
	return other != nil && u.id.IsEqual(other.id)
}

// ID returns the user's unique identifier.
func (u *User) ID() kernel.UUID {
	return u.id
}

// RegisterTime returns when the account was created.
func (u *User) RegisterTime() time.Time {
	return u.registerTime
}

// Email returns the account email. Empty for phone-only driver accounts.
func (u *User) Email() string {
	return u.email
}

// GoogleID returns the linked Google account ID, or "".
func (u *User) GoogleID() string {
	return u.googleID
}

// SenderRole returns the user's own sender role, or nil for drivers.
func (u *User) SenderRole() *SenderRole {
	return u.senderRole
}

// DriverRole returns the user's driver role, or nil for senders.
func (u *User) DriverRole() *DriverRole {
	return u.driverRole
}

// CompanyID returns the company the user belongs to, or nil.
func (u *User) CompanyID() *kernel.UUID {
	return u.companyID
}

// IsSender reports whether the user carries a sender role.
func (u *User) IsSender() bool {
	return u.senderRole != nil
}

// IsDriver reports whether the user carries a driver role.
func (u *User) IsDriver() bool {
	return u.driverRole != nil
}

// HasEmailVerified reports whether the account email has been confirmed.
func (u *User) HasEmailVerified() bool {
	return u.emailVerified
}

// HasVerified reports whether the account may authenticate. Drivers are
// verified by registration; senders must confirm their email first.
func (u *User) HasVerified() bool {
	if u.IsDriver() {
		return true
	}
	return u.IsSender() && u.emailVerified
}

// VerifyEmail marks the account email as confirmed.
func (u *User) VerifyEmail() {
	u.emailVerified = true
}

// LinkGoogleID attaches a Google account for federated sign-in.
func (u *User) LinkGoogleID(googleID string) error {
	if googleID == "" {
		return errs.NewValueIsRequiredError("googleID")
	}
	u.googleID = googleID
	return nil
}

// JoinCompany enrolls the user in a company. A user belongs to at most one
// company at a time.
func (u *User) JoinCompany(companyID kernel.UUID) error {
	if err := companyID.Validate(); err != nil {
		return err
	}
	u.companyID = &companyID
	return nil
}

// LeaveCompany clears the user's company membership.
func (u *User) LeaveCompany() {
	u.companyID = nil
}

// HasValidPassword compares a candidate password against the stored bcrypt
// hash. Accounts without a stored hash never match.
func (u *User) HasValidPassword(password string) bool {
	if u.passwordHash == "" || password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.passwordHash), []byte(password)) == nil
}

// PasswordHash returns the stored bcrypt hash for persistence.
func (u *User) PasswordHash() string {
	return u.passwordHash
}

// SetPassword replaces the stored password hash.
func (u *User) SetPassword(password string) error {
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	u.passwordHash = hash
	return nil
}

// DisplayCompany is the resolved shipper display identity shown on orders
// and signing requests.
type DisplayCompany struct {
	Name    string
	Address string
}

// ResolveDisplayCompany resolves the company fields to display for a user.
// A company member who is not the owner shows the owner's sender-role
// fields; everyone else shows their own. company and owner may be nil when
// the user has no membership.
func ResolveDisplayCompany(user *User, company *Company, owner *User) DisplayCompany {
	if company != nil && owner != nil && !company.IsOwner(user.ID()) && owner.SenderRole() != nil {
		return DisplayCompany{
			Name:    owner.SenderRole().CompanyName(),
			Address: owner.SenderRole().CompanyAddress(),
		}
	}
	if user.SenderRole() != nil {
		return DisplayCompany{
			Name:    user.SenderRole().CompanyName(),
			Address: user.SenderRole().CompanyAddress(),
		}
	}
	return DisplayCompany{}
}
