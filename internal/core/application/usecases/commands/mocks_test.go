package commands_test

import (
	"context"
	"time"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/account"
	"freight/internal/core/domain/model/cert"
	"freight/internal/core/domain/model/document"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllShippingSince(ctx context.Context, cutoff time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockDocumentRepository struct{ mock.Mock }

func (m *MockDocumentRepository) Add(ctx context.Context, d *document.Document) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDocumentRepository) Get(ctx context.Context, id kernel.UUID) (*document.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*document.Document), args.Error(1)
}

type MockSignatureRepository struct{ mock.Mock }

func (m *MockSignatureRepository) Add(ctx context.Context, s *cert.Signature) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSignatureRepository) Update(ctx context.Context, s *cert.Signature) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSignatureRepository) Get(ctx context.Context, id kernel.UUID) (*cert.Signature, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cert.Signature), args.Error(1)
}

func (m *MockSignatureRepository) HasCompleted(
	ctx context.Context, orderID kernel.UUID, purpose order.SignPurpose,
) (bool, error) {
	args := m.Called(ctx, orderID, purpose)
	return args.Bool(0), args.Error(1)
}

func (m *MockSignatureRepository) GetAllByOrder(ctx context.Context, orderID kernel.UUID) ([]*cert.Signature, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*cert.Signature), args.Error(1)
}

type MockAccountRepository struct{ mock.Mock }

func (m *MockAccountRepository) AddUser(ctx context.Context, u *account.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateUser(ctx context.Context, u *account.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockAccountRepository) GetUser(ctx context.Context, id kernel.UUID) (*account.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.User), args.Error(1)
}

func (m *MockAccountRepository) GetUserByEmail(ctx context.Context, email string) (*account.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.User), args.Error(1)
}

func (m *MockAccountRepository) GetUserByPhone(ctx context.Context, phone string) (*account.User, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.User), args.Error(1)
}

func (m *MockAccountRepository) GetUserByVehicleID(ctx context.Context, vehicleID string) (*account.User, error) {
	args := m.Called(ctx, vehicleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.User), args.Error(1)
}

func (m *MockAccountRepository) AddCompany(ctx context.Context, c *account.Company) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateCompany(ctx context.Context, c *account.Company) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockAccountRepository) GetCompany(ctx context.Context, id kernel.UUID) (*account.Company, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Company), args.Error(1)
}

func (m *MockAccountRepository) GetCompanyOfUser(ctx context.Context, userID kernel.UUID) (*account.Company, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Company), args.Error(1)
}

// MockUoW satisfies every narrow unit of work interface in this package.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) DocumentRepository() ports.DocumentRepository {
	args := m.Called()
	return args.Get(0).(ports.DocumentRepository)
}

func (m *MockUoW) SignatureRepository() ports.SignatureRepository {
	args := m.Called()
	return args.Get(0).(ports.SignatureRepository)
}

func (m *MockUoW) AccountRepository() ports.AccountRepository {
	args := m.Called()
	return args.Get(0).(ports.AccountRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockIntakeUoWFactory struct{ mock.Mock }

func (m *MockIntakeUoWFactory) Create() commands.IntakeUoW {
	args := m.Called()
	return args.Get(0).(commands.IntakeUoW)
}

type MockAllocationUoWFactory struct{ mock.Mock }

func (m *MockAllocationUoWFactory) Create() commands.AllocationUoW {
	args := m.Called()
	return args.Get(0).(commands.AllocationUoW)
}

type MockSigningUoWFactory struct{ mock.Mock }

func (m *MockSigningUoWFactory) Create() commands.SigningUoW {
	args := m.Called()
	return args.Get(0).(commands.SigningUoW)
}

type MockSignTaskQueue struct{ mock.Mock }

func (m *MockSignTaskQueue) Enqueue(ctx context.Context, task ports.SignTask) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockSignTaskQueue) Dequeue(ctx context.Context) (ports.SignTask, error) {
	args := m.Called(ctx)
	return args.Get(0).(ports.SignTask), args.Error(1)
}

// fixedClock pins time-dependent rules in tests.
type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }
