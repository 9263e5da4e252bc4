package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"cftl_backend/internals/features/finance/payments/model"
	"cftl_backend/internals/features/finance/payments/service"
	"cftl_backend/internals/helpers/dbtime"
)

type CreatePaymentRequest struct {
	StudentID     string  `json:"studentId" validate:"required,uuid"`
	CourseID      string  `json:"courseId" validate:"required,uuid"`
	EnrollmentID  *string `json:"enrollmentId" validate:"omitempty,uuid"`
	Month         string  `json:"month" validate:"required,yyyymm"`
	AmountDue     int64   `json:"amountDue" validate:"required,gt=0"`
	AmountPaid    int64   `json:"amountPaid" validate:"gte=0"`
	PaidOn        *string `json:"paidOn"`
	PaymentMethod *string `json:"paymentMethod"`
	TransactionID *string `json:"transactionId"`
}

type UpdatePaymentRequest struct {
	Month         *string `json:"month" validate:"omitempty,yyyymm"`
	AmountDue     *int64  `json:"amountDue" validate:"omitempty,gt=0"`
	AmountPaid    *int64  `json:"amountPaid" validate:"omitempty,gte=0"`
	PaidOn        *string `json:"paidOn"`
	PaymentMethod *string `json:"paymentMethod"`
	TransactionID *string `json:"transactionId"`
}

func optString(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func parsePaidOn(s *string) (*time.Time, error) {
	if v := optString(s); v != nil {
		t, err := dbtime.ParseDate(*v)
		if err != nil {
			return nil, err
		}
		return &t, nil
	}
	return nil, nil
}

func (r CreatePaymentRequest) ToModel() (model.Payment, error) {
	paidOn, err := parsePaidOn(r.PaidOn)
	if err != nil {
		return model.Payment{}, err
	}
	amt := service.Derive(r.AmountDue, r.AmountPaid)
	m := model.Payment{
		PaymentStudentID:       uuid.MustParse(r.StudentID),
		PaymentCourseID:        uuid.MustParse(r.CourseID),
		PaymentMonth:           r.Month,
		PaymentAmountDue:       r.AmountDue,
		PaymentAmountPaid:      amt.Paid,
		PaymentRemainingAmount: amt.Remaining,
		PaymentStatus:          amt.Status,
		PaymentPaidOn:          paidOn,
		PaymentMethod:          optString(r.PaymentMethod),
		PaymentTransactionID:   optString(r.TransactionID),
	}
	if r.EnrollmentID != nil {
		id := uuid.MustParse(*r.EnrollmentID)
		m.PaymentEnrollmentID = &id
	}
	return m, nil
}

// Updates re-derives amounts and status from the merged due/paid values.
func (r UpdatePaymentRequest) Updates(m *model.Payment) (map[string]any, error) {
	due := m.PaymentAmountDue
	if r.AmountDue != nil {
		due = *r.AmountDue
	}
	paid := m.PaymentAmountPaid
	if r.AmountPaid != nil {
		paid = *r.AmountPaid
	}
	amt := service.Derive(due, paid)

	m.PaymentAmountDue = due
	m.PaymentAmountPaid = amt.Paid
	m.PaymentRemainingAmount = amt.Remaining
	m.PaymentStatus = amt.Status
	upd := map[string]any{
		"payment_amount_due":       due,
		"payment_amount_paid":      amt.Paid,
		"payment_remaining_amount": amt.Remaining,
		"payment_status":           amt.Status,
	}

	if r.Month != nil {
		m.PaymentMonth = *r.Month
		upd["payment_month"] = *r.Month
	}
	if r.PaidOn != nil {
		paidOn, err := parsePaidOn(r.PaidOn)
		if err != nil {
			return nil, err
		}
		m.PaymentPaidOn = paidOn
		upd["payment_paid_on"] = paidOn
	}
	if r.PaymentMethod != nil {
		m.PaymentMethod = optString(r.PaymentMethod)
		upd["payment_method"] = m.PaymentMethod
	}
	if r.TransactionID != nil {
		m.PaymentTransactionID = optString(r.TransactionID)
		upd["payment_transaction_id"] = m.PaymentTransactionID
	}
	return upd, nil
}

type PaymentResponse struct {
	ID              string    `json:"id"`
	StudentID       string    `json:"studentId"`
	CourseID        string    `json:"courseId"`
	EnrollmentID    *string   `json:"enrollmentId,omitempty"`
	Month           string    `json:"month"`
	AmountDue       int64     `json:"amountDue"`
	AmountPaid      int64     `json:"amountPaid"`
	RemainingAmount int64     `json:"remainingAmount"`
	Status          string    `json:"status"`
	PaidOn          *string   `json:"paidOn"`
	PaymentMethod   *string   `json:"paymentMethod"`
	TransactionID   *string   `json:"transactionId"`
	CreatedAt       time.Time `json:"createdAt"`
}

// FromModel recomputes remainingAmount and renders paidOn as YYYY-MM-DD.
func FromModel(m model.Payment) PaymentResponse {
	out := PaymentResponse{
		ID:              m.PaymentID.String(),
		StudentID:       m.PaymentStudentID.String(),
		CourseID:        m.PaymentCourseID.String(),
		Month:           m.PaymentMonth,
		AmountDue:       m.PaymentAmountDue,
		AmountPaid:      m.PaymentAmountPaid,
		RemainingAmount: service.Remaining(m.PaymentAmountDue, m.PaymentAmountPaid),
		Status:          m.PaymentStatus,
		PaidOn:          dbtime.FormatDatePtr(m.PaymentPaidOn),
		PaymentMethod:   m.PaymentMethod,
		TransactionID:   m.PaymentTransactionID,
		CreatedAt:       m.PaymentCreatedAt,
	}
	if m.PaymentEnrollmentID != nil {
		s := m.PaymentEnrollmentID.String()
		out.EnrollmentID = &s
	}
	return out
}

func FromModels(list []model.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(list))
	for _, m := range list {
		out = append(out, FromModel(m))
	}
	return out
}
