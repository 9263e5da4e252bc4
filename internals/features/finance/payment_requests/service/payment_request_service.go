package service

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cftl_backend/internals/constants"
	"cftl_backend/internals/features/finance/payment_requests/model"
	paymentModel "cftl_backend/internals/features/finance/payments/model"
	paymentService "cftl_backend/internals/features/finance/payments/service"
	"cftl_backend/internals/helpers/storage"
)

// lockPending loads a request under a row lock and requires it to be pending.
func lockPending(tx *gorm.DB, id uuid.UUID) (*model.PaymentRequest, error) {
	var r model.PaymentRequest
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&r, "payment_request_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Request not found")
		}
		return nil, err
	}
	if r.PaymentRequestStatus != constants.RequestPending {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Already processed")
	}
	return &r, nil
}

// Approve credits the requested amount to the installment and marks the
// request approved by approver, in one transaction.
func Approve(db *gorm.DB, id uuid.UUID, approver string, now time.Time) (*paymentModel.Payment, error) {
	var payment paymentModel.Payment
	err := db.Transaction(func(tx *gorm.DB) error {
		r, err := lockPending(tx, id)
		if err != nil {
			return err
		}
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&payment, "payment_id = ?", r.PaymentRequestPaymentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Payment not found")
			}
			return err
		}

		amt := paymentService.Accumulate(payment.PaymentAmountDue, payment.PaymentAmountPaid, r.PaymentRequestAmountRequested)
		if err := tx.Model(&payment).Updates(map[string]any{
			"payment_amount_paid":      amt.Paid,
			"payment_remaining_amount": amt.Remaining,
			"payment_status":           amt.Status,
			"payment_paid_on":          now,
		}).Error; err != nil {
			return err
		}

		return tx.Model(r).Updates(map[string]any{
			"payment_request_status":      constants.RequestApproved,
			"payment_request_approved_by": approver,
			"payment_request_approved_on": now,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// Reject closes a pending request without touching the installment.
func Reject(db *gorm.DB, id uuid.UUID, by, reason string, now time.Time) error {
	return db.Transaction(func(tx *gorm.DB) error {
		r, err := lockPending(tx, id)
		if err != nil {
			return err
		}
		upd := map[string]any{
			"payment_request_status":      constants.RequestRejected,
			"payment_request_approved_by": by,
			"payment_request_approved_on": now,
		}
		if reason != "" {
			upd["payment_request_rejection_reason"] = reason
		}
		return tx.Model(r).Updates(upd).Error
	})
}

// ReceiptReferenced reports which receipt keys a payment request still points at.
func ReceiptReferenced(db *gorm.DB) storage.ReferenceChecker {
	return func(ctx context.Context, keys []string) (map[string]bool, error) {
		out := make(map[string]bool, len(keys))
		const chunk = 500
		for start := 0; start < len(keys); start += chunk {
			end := start + chunk
			if end > len(keys) {
				end = len(keys)
			}
			var found []string
			if err := db.WithContext(ctx).Model(&model.PaymentRequest{}).
				Where("payment_request_receipt_key IN ?", keys[start:end]).
				Pluck("payment_request_receipt_key", &found).Error; err != nil {
				return nil, err
			}
			for _, k := range found {
				out[k] = true
			}
		}
		return out, nil
	}
}
