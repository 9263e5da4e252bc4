package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentRequest is a parent's claim that an installment was paid, with a receipt.
type PaymentRequest struct {
	PaymentRequestID              uuid.UUID  `gorm:"column:payment_request_id;type:uuid;primaryKey"`
	PaymentRequestPaymentID       uuid.UUID  `gorm:"column:payment_request_payment_id;type:uuid;not null;uniqueIndex"`
	PaymentRequestStudentID       uuid.UUID  `gorm:"column:payment_request_student_id;type:uuid;not null;index"`
	PaymentRequestCourseID        uuid.UUID  `gorm:"column:payment_request_course_id;type:uuid;not null;index"`
	PaymentRequestParentID        *uuid.UUID `gorm:"column:payment_request_parent_id;type:uuid;index"`
	PaymentRequestMonth           string     `gorm:"column:payment_request_month;type:text;not null"`
	PaymentRequestAmountRequested int64      `gorm:"column:payment_request_amount_requested;not null"`
	PaymentRequestRemainingAmount int64      `gorm:"column:payment_request_remaining_amount"`
	PaymentRequestReceiptURL      string     `gorm:"column:payment_request_receipt_url;type:text;not null"`
	PaymentRequestReceiptKey      *string    `gorm:"column:payment_request_receipt_key;type:text;index"`
	PaymentRequestPaymentDate     *time.Time `gorm:"column:payment_request_payment_date"`
	PaymentRequestStatus          string     `gorm:"column:payment_request_status;type:text;not null;index"`
	PaymentRequestRequestedOn     time.Time  `gorm:"column:payment_request_requested_on"`
	PaymentRequestApprovedBy      *string    `gorm:"column:payment_request_approved_by;type:text"`
	PaymentRequestApprovedOn      *time.Time `gorm:"column:payment_request_approved_on"`
	PaymentRequestRejectionReason *string    `gorm:"column:payment_request_rejection_reason;type:text"`
	PaymentRequestUpdatedAt       time.Time  `gorm:"column:payment_request_updated_at;autoUpdateTime"`
}

func (PaymentRequest) TableName() string { return "payment_requests" }

func (r *PaymentRequest) BeforeCreate(tx *gorm.DB) error {
	if r.PaymentRequestID == uuid.Nil {
		r.PaymentRequestID = uuid.New()
	}
	if r.PaymentRequestRequestedOn.IsZero() {
		r.PaymentRequestRequestedOn = time.Now()
	}
	return nil
}
