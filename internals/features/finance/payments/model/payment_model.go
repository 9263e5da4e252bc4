package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payment is one monthly installment of an enrollment.
type Payment struct {
	PaymentID              uuid.UUID  `gorm:"column:payment_id;type:uuid;primaryKey"`
	PaymentStudentID       uuid.UUID  `gorm:"column:payment_student_id;type:uuid;not null;index"`
	PaymentCourseID        uuid.UUID  `gorm:"column:payment_course_id;type:uuid;not null;index"`
	PaymentEnrollmentID    *uuid.UUID `gorm:"column:payment_enrollment_id;type:uuid;index"`
	PaymentMonth           string     `gorm:"column:payment_month;type:text;not null;index"`
	PaymentAmountDue       int64      `gorm:"column:payment_amount_due;not null"`
	PaymentAmountPaid      int64      `gorm:"column:payment_amount_paid;not null;default:0"`
	PaymentRemainingAmount int64      `gorm:"column:payment_remaining_amount;not null"`
	PaymentStatus          string     `gorm:"column:payment_status;type:text;not null"`
	PaymentPaidOn          *time.Time `gorm:"column:payment_paid_on"`
	PaymentMethod          *string    `gorm:"column:payment_method;type:text"`
	PaymentTransactionID   *string    `gorm:"column:payment_transaction_id;type:text"`
	PaymentCreatedAt       time.Time  `gorm:"column:payment_created_at;autoCreateTime"`
	PaymentUpdatedAt       time.Time  `gorm:"column:payment_updated_at;autoUpdateTime"`
}

func (Payment) TableName() string { return "payments" }

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.PaymentID == uuid.Nil {
		p.PaymentID = uuid.New()
	}
	return nil
}
