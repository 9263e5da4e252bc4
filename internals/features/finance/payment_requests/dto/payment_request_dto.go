package dto

import (
	"time"

	"cftl_backend/internals/features/finance/payment_requests/model"
	"cftl_backend/internals/helpers/dbtime"
)

type CreatePaymentRequestRequest struct {
	PaymentID       string  `json:"paymentId" validate:"required,uuid"`
	StudentID       string  `json:"studentId" validate:"required,uuid"`
	CourseID        string  `json:"courseId" validate:"required,uuid"`
	Month           string  `json:"month" validate:"required,yyyymm"`
	AmountRequested int64   `json:"amountRequested" validate:"required,gt=0"`
	RemainingAmount int64   `json:"remainingAmount" validate:"gte=0"`
	ReceiptURL      string  `json:"receiptUrl" validate:"required,url"`
	PaymentDate     *string `json:"paymentDate"`
}

type RejectRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}

type PaymentRequestResponse struct {
	ID              string     `json:"id"`
	PaymentID       string     `json:"paymentId"`
	StudentID       string     `json:"studentId"`
	CourseID        string     `json:"courseId"`
	Month           string     `json:"month"`
	AmountRequested int64      `json:"amountRequested"`
	RemainingAmount int64      `json:"remainingAmount"`
	ReceiptURL      string     `json:"receiptUrl"`
	PaymentDate     *string    `json:"paymentDate"`
	RequestedOn     time.Time  `json:"requestedOn"`
	Status          string     `json:"status"`
	ApprovedBy      *string    `json:"approvedBy"`
	ApprovedOn      *time.Time `json:"approvedOn"`
	RejectionReason *string    `json:"rejectionReason,omitempty"`
}

func FromModel(m model.PaymentRequest) PaymentRequestResponse {
	return PaymentRequestResponse{
		ID:              m.PaymentRequestID.String(),
		PaymentID:       m.PaymentRequestPaymentID.String(),
		StudentID:       m.PaymentRequestStudentID.String(),
		CourseID:        m.PaymentRequestCourseID.String(),
		Month:           m.PaymentRequestMonth,
		AmountRequested: m.PaymentRequestAmountRequested,
		RemainingAmount: m.PaymentRequestRemainingAmount,
		ReceiptURL:      m.PaymentRequestReceiptURL,
		PaymentDate:     dbtime.FormatDatePtr(m.PaymentRequestPaymentDate),
		RequestedOn:     m.PaymentRequestRequestedOn,
		Status:          m.PaymentRequestStatus,
		ApprovedBy:      m.PaymentRequestApprovedBy,
		ApprovedOn:      m.PaymentRequestApprovedOn,
		RejectionReason: m.PaymentRequestRejectionReason,
	}
}

func FromModels(list []model.PaymentRequest) []PaymentRequestResponse {
	out := make([]PaymentRequestResponse, 0, len(list))
	for _, m := range list {
		out = append(out, FromModel(m))
	}
	return out
}
