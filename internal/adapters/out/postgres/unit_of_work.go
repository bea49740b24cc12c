// Package postgres provides the GORM-based implementation of the Unit of
// Work pattern. A unit of work spans one database transaction across the
// order, document, signature, and account repositories, so a business
// operation either lands completely or not at all.
package postgres

import (
	"context"

	"freight/internal/adapters/out/postgres/accountrepo"
	"freight/internal/adapters/out/postgres/documentrepo"
	"freight/internal/adapters/out/postgres/orderrepo"
	"freight/internal/adapters/out/postgres/signaturerepo"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate records an aggregate modified during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one GORM
// connection. Each business operation gets a fresh instance with its own
// transaction state.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory bound to the given database.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork ready for one business transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and tracks the
// aggregates written through it. Repositories obtained from an active unit
// of work run inside its transaction; before Begin they run directly
// against the connection.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin starts the transaction. Calling Begin on an already started unit
// of work is a no-op, never a nested transaction.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		return uow.tx.Error
	}

	return nil
}

// Commit finalizes all changes made within the current transaction.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards all changes made within the current transaction.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// OrderRepository returns the order repository bound to this unit of work.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// DocumentRepository returns the document repository bound to this unit of
// work.
func (uow *GormUnitOfWork) DocumentRepository() ports.DocumentRepository {
	return documentrepo.NewGormDocumentRepository(uow.conn(), uow)
}

// SignatureRepository returns the signature repository bound to this unit
// of work.
func (uow *GormUnitOfWork) SignatureRepository() ports.SignatureRepository {
	return signaturerepo.NewGormSignatureRepository(uow.conn(), uow)
}

// AccountRepository returns the account repository bound to this unit of
// work.
func (uow *GormUnitOfWork) AccountRepository() ports.AccountRepository {
	return accountrepo.NewGormAccountRepository(uow.conn(), uow)
}

// TrackAggregate registers an aggregate as modified within this unit of
// work. Called by the repositories on every successful write.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// GetTrackedAggregates returns the aggregates written through this unit of
// work, in write order.
func (uow *GormUnitOfWork) GetTrackedAggregates() []trackedAggregate {
	return uow.trackedAggregates
}
