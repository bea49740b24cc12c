// Package signaturerepo persists signing attempts and their vendor
// outcomes. Every attempt row is kept, regardless of outcome, as the audit
// trail of the e-signature flow.
package signaturerepo

import (
	"time"

	"freight/internal/core/domain/model/cert"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// SignatureDTO is the database row for one signing attempt. The result
// columns are populated only when the attempt completed.
type SignatureDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;index:idx_signatures_order_purpose"`
	Purpose     int       `gorm:"index:idx_signatures_order_purpose"`
	Vendor      int
	SignerName  string
	SignerPhone string
	SignerBirth string
	ReceiptID   string `gorm:"index"`
	State       int    `gorm:"index"`
	FailedStage int
	FailReason  string

	RequestedTime time.Time
	FinishedTime  *time.Time

	ResultReceiptID  string
	ResultSignedData string
	ResultCI         string `gorm:"column:result_ci"`
	ResultSignedTime *time.Time
}

// TableName overrides GORM's default naming to use "signatures".
func (SignatureDTO) TableName() string {
	return "signatures"
}

func fromDomain(attempt *cert.Signature) SignatureDTO {
	dto := SignatureDTO{
		ID:            attempt.ID().Bytes(),
		OrderID:       attempt.OrderID().Bytes(),
		Purpose:       int(attempt.Purpose()),
		Vendor:        int(attempt.Vendor()),
		SignerName:    attempt.SignerName(),
		SignerPhone:   attempt.SignerPhone(),
		SignerBirth:   attempt.SignerBirth(),
		ReceiptID:     attempt.ReceiptID(),
		State:         int(attempt.State()),
		FailedStage:   int(attempt.FailedStage()),
		FailReason:    attempt.FailReason(),
		RequestedTime: attempt.RequestedTime(),
		FinishedTime:  attempt.FinishedTime(),
	}

	if result := attempt.Result(); result != nil {
		signedTime := result.SignedTime()
		dto.ResultReceiptID = result.ReceiptID()
		dto.ResultSignedData = result.SignedData()
		dto.ResultCI = result.CI()
		dto.ResultSignedTime = &signedTime
	}

	return dto
}

func toDomain(dto SignatureDTO) (*cert.Signature, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	var result *cert.Result
	if dto.ResultSignedTime != nil {
		restored, resultErr := cert.NewResult(
			dto.ResultReceiptID, dto.ResultSignedData, dto.ResultCI, *dto.ResultSignedTime,
		)
		if resultErr != nil {
			return nil, resultErr
		}
		result = &restored
	}

	return cert.RestoreSignature(
		id, orderID, order.SignPurpose(dto.Purpose), cert.Vendor(dto.Vendor),
		dto.SignerName, dto.SignerPhone, dto.SignerBirth,
		dto.ReceiptID, cert.State(dto.State), cert.Stage(dto.FailedStage), dto.FailReason,
		dto.RequestedTime, dto.FinishedTime, result,
	)
}
