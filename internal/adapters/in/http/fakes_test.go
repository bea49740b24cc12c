package http_test

import (
	"context"
	"sync"
	"time"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/account"
	"freight/internal/core/domain/model/cert"
	"freight/internal/core/domain/model/document"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"
)

// memStore is a process-local stand-in for the database behind the command
// side. The read side runs against sqlite, so list and detail tests seed
// that instead.
type memStore struct {
	mu         sync.Mutex
	orders     map[kernel.UUID]*order.Order
	documents  map[kernel.UUID]*document.Document
	signatures map[kernel.UUID]*cert.Signature
	users      map[kernel.UUID]*account.User
	companies  map[kernel.UUID]*account.Company
}

func newMemStore() *memStore {
	return &memStore{
		orders:     make(map[kernel.UUID]*order.Order),
		documents:  make(map[kernel.UUID]*document.Document),
		signatures: make(map[kernel.UUID]*cert.Signature),
		users:      make(map[kernel.UUID]*account.User),
		companies:  make(map[kernel.UUID]*account.Company),
	}
}

func (s *memStore) putOrder(o *order.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.ID()] = o
}

func (s *memStore) putUser(u *account.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID()] = u
}

type fakeOrderRepo struct{ store *memStore }

func (r fakeOrderRepo) Add(_ context.Context, aggregate *order.Order) error {
	r.store.putOrder(aggregate)
	return nil
}

func (r fakeOrderRepo) Update(_ context.Context, aggregate *order.Order) error {
	r.store.putOrder(aggregate)
	return nil
}

func (r fakeOrderRepo) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if aggregate, ok := r.store.orders[id]; ok {
		return aggregate, nil
	}
	return nil, errs.NewObjectNotFoundError("orderID", id)
}

func (r fakeOrderRepo) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.Get(ctx, id)
}

func (r fakeOrderRepo) GetAllShippingSince(context.Context, time.Time) ([]*order.Order, error) {
	return nil, nil
}

type fakeDocumentRepo struct{ store *memStore }

func (r fakeDocumentRepo) Add(_ context.Context, aggregate *document.Document) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.documents[aggregate.ID()] = aggregate
	return nil
}

func (r fakeDocumentRepo) Get(_ context.Context, id kernel.UUID) (*document.Document, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if aggregate, ok := r.store.documents[id]; ok {
		return aggregate, nil
	}
	return nil, errs.NewObjectNotFoundError("documentID", id)
}

type fakeSignatureRepo struct{ store *memStore }

func (r fakeSignatureRepo) Add(_ context.Context, aggregate *cert.Signature) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.signatures[aggregate.ID()] = aggregate
	return nil
}

func (r fakeSignatureRepo) Update(ctx context.Context, aggregate *cert.Signature) error {
	return r.Add(ctx, aggregate)
}

func (r fakeSignatureRepo) Get(_ context.Context, id kernel.UUID) (*cert.Signature, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if aggregate, ok := r.store.signatures[id]; ok {
		return aggregate, nil
	}
	return nil, errs.NewObjectNotFoundError("signatureID", id)
}

func (r fakeSignatureRepo) HasCompleted(
	_ context.Context, orderID kernel.UUID, purpose order.SignPurpose,
) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, attempt := range r.store.signatures {
		if attempt.OrderID().IsEqual(orderID) &&
			attempt.Purpose() == purpose &&
			attempt.State() == cert.StateCompleted {
			return true, nil
		}
	}
	return false, nil
}

func (r fakeSignatureRepo) GetAllByOrder(
	_ context.Context, orderID kernel.UUID,
) ([]*cert.Signature, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var attempts []*cert.Signature
	for _, attempt := range r.store.signatures {
		if attempt.OrderID().IsEqual(orderID) {
			attempts = append(attempts, attempt)
		}
	}
	return attempts, nil
}

type fakeAccountRepo struct{ store *memStore }

func (r fakeAccountRepo) AddUser(_ context.Context, aggregate *account.User) error {
	r.store.putUser(aggregate)
	return nil
}

func (r fakeAccountRepo) UpdateUser(_ context.Context, aggregate *account.User) error {
	r.store.putUser(aggregate)
	return nil
}

func (r fakeAccountRepo) GetUser(_ context.Context, id kernel.UUID) (*account.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if user, ok := r.store.users[id]; ok {
		return user, nil
	}
	return nil, errs.NewObjectNotFoundError("userID", id)
}

func (r fakeAccountRepo) GetUserByEmail(_ context.Context, email string) (*account.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, user := range r.store.users {
		if user.Email() != "" && user.Email() == email {
			return user, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("email", email)
}

func (r fakeAccountRepo) GetUserByPhone(_ context.Context, phone string) (*account.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, user := range r.store.users {
		if role := user.DriverRole(); role != nil && role.Phone() == phone {
			return user, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("phone", phone)
}

func (r fakeAccountRepo) GetUserByVehicleID(_ context.Context, vehicleID string) (*account.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, user := range r.store.users {
		if role := user.DriverRole(); role != nil && role.VehicleID() == vehicleID {
			return user, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("vehicleID", vehicleID)
}

func (r fakeAccountRepo) AddCompany(_ context.Context, aggregate *account.Company) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.companies[aggregate.ID()] = aggregate
	return nil
}

func (r fakeAccountRepo) UpdateCompany(ctx context.Context, aggregate *account.Company) error {
	return r.AddCompany(ctx, aggregate)
}

func (r fakeAccountRepo) GetCompany(_ context.Context, id kernel.UUID) (*account.Company, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if company, ok := r.store.companies[id]; ok {
		return company, nil
	}
	return nil, errs.NewObjectNotFoundError("companyID", id)
}

func (r fakeAccountRepo) GetCompanyOfUser(_ context.Context, userID kernel.UUID) (*account.Company, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, company := range r.store.companies {
		if company.HasMember(userID) {
			return company, nil
		}
	}
	return nil, nil
}

// fakeUoW gives command handlers the transactional surface they expect
// without a database. Begin, Commit and Rollback are no-ops; writes take
// effect immediately.
type fakeUoW struct{ store *memStore }

func (fakeUoW) Begin(context.Context) error    { return nil }
func (fakeUoW) Commit(context.Context) error   { return nil }
func (fakeUoW) Rollback(context.Context) error { return nil }

func (u fakeUoW) OrderRepository() ports.OrderRepository {
	return fakeOrderRepo{store: u.store}
}

func (u fakeUoW) DocumentRepository() ports.DocumentRepository {
	return fakeDocumentRepo{store: u.store}
}

func (u fakeUoW) SignatureRepository() ports.SignatureRepository {
	return fakeSignatureRepo{store: u.store}
}

func (u fakeUoW) AccountRepository() ports.AccountRepository {
	return fakeAccountRepo{store: u.store}
}

type orderUoWFactory struct{ store *memStore }

func (f orderUoWFactory) Create() commands.OrderUoW { return fakeUoW{store: f.store} }

type intakeUoWFactory struct{ store *memStore }

func (f intakeUoWFactory) Create() commands.IntakeUoW { return fakeUoW{store: f.store} }

type allocationUoWFactory struct{ store *memStore }

func (f allocationUoWFactory) Create() commands.AllocationUoW { return fakeUoW{store: f.store} }

type signingUoWFactory struct{ store *memStore }

func (f signingUoWFactory) Create() commands.SigningUoW { return fakeUoW{store: f.store} }
