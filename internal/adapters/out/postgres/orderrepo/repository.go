package orderrepo

import (
	"context"
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order with its actions and contacts.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order. Child rows are rewritten wholesale: the
// action history only ever grows and the contact list is small.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("DocumentID", "SenderRoleID", "DriverRoleID", "OrderedTime", "State").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	if err := db.Where("order_id = ?", dto.ID).Delete(&ActionDTO{}).Error; err != nil {
		return err
	}
	if len(dto.Actions) > 0 {
		if err := db.Create(&dto.Actions).Error; err != nil {
			return err
		}
	}

	if err := db.Where("order_id = ?", dto.ID).Delete(&ContactDTO{}).Error; err != nil {
		return err
	}
	if len(dto.Contacts) > 0 {
		if err := db.Create(&dto.Contacts).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID with its actions and contacts.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate retrieves an order by ID and locks its row for the rest of
// the transaction.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(ctx, id, true)
}

func (r *GormOrderRepository) get(ctx context.Context, id kernel.UUID, lock bool) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx).
		Preload("Actions", func(db *gorm.DB) *gorm.DB { return db.Order("seq") }).
		Preload("Contacts")
	if lock {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var dto OrderDTO
	if err := query.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllShippingSince returns all Shipping orders whose onboard action is
// at or before the cutoff.
func (r *GormOrderRepository) GetAllShippingSince(ctx context.Context, cutoff time.Time) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Actions", func(db *gorm.DB) *gorm.DB { return db.Order("seq") }).
		Preload("Contacts").
		Where("state = ?", order.Shipping).
		Where(
			"id IN (?)",
			r.db.Model(&ActionDTO{}).
				Select("order_id").
				Where("kind = ? AND timestamp <= ?", order.ActionOnboard, cutoff),
		).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, domainErr := toDomain(dto)
		if domainErr != nil {
			return nil, domainErr
		}
		orders = append(orders, aggregate)
	}

	return orders, nil
}
