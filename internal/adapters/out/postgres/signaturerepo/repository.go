package signaturerepo

import (
	"context"
	"errors"

	"freight/internal/core/domain/model/cert"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormSignatureRepository implements SignatureRepository using GORM.
type GormSignatureRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormSignatureRepository creates a new GORM signature repository.
func NewGormSignatureRepository(db *gorm.DB, tracker aggregateTracker) *GormSignatureRepository {
	return &GormSignatureRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new signing attempt to the database.
func (r *GormSignatureRepository) Add(ctx context.Context, attempt *cert.Signature) error {
	if err := attempt.Validate(); err != nil {
		return err
	}

	dto := fromDomain(attempt)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(attempt.ID(), attempt)
	return nil
}

// Update saves an existing signing attempt. Select("*") forces nullable
// outcome columns to be written even when they hold zero values.
func (r *GormSignatureRepository) Update(ctx context.Context, attempt *cert.Signature) error {
	if err := attempt.Validate(); err != nil {
		return err
	}

	dto := fromDomain(attempt)
	result := r.db.WithContext(ctx).Model(&SignatureDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(attempt.ID(), attempt)
	return nil
}

// Get retrieves a signing attempt by ID.
func (r *GormSignatureRepository) Get(ctx context.Context, id kernel.UUID) (*cert.Signature, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto SignatureDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("signature", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// HasCompleted reports whether any attempt for the given order and purpose
// has already completed. Finalization uses this as its idempotency guard.
func (r *GormSignatureRepository) HasCompleted(
	ctx context.Context,
	orderID kernel.UUID,
	purpose order.SignPurpose,
) (bool, error) {
	if err := orderID.Validate(); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&SignatureDTO{}).
		Where("order_id = ? AND purpose = ? AND state = ?",
			orderID.Bytes(), int(purpose), int(cert.StateCompleted)).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// GetAllByOrder retrieves every signing attempt recorded against an order,
// oldest first.
func (r *GormSignatureRepository) GetAllByOrder(ctx context.Context, orderID kernel.UUID) ([]*cert.Signature, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []SignatureDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("requested_time").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	attempts := make([]*cert.Signature, 0, len(dtos))
	for _, dto := range dtos {
		attempt, domainErr := toDomain(dto)
		if domainErr != nil {
			return nil, domainErr
		}
		attempts = append(attempts, attempt)
	}

	return attempts, nil
}
