package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"cftl_backend/internals/configs"
	"cftl_backend/internals/constants"
	courseModel "cftl_backend/internals/features/academics/courses/model"
	"cftl_backend/internals/features/finance/payment_requests/dto"
	"cftl_backend/internals/features/finance/payment_requests/model"
	"cftl_backend/internals/features/finance/payment_requests/service"
	paymentModel "cftl_backend/internals/features/finance/payments/model"
	parentService "cftl_backend/internals/features/users/parents/service"
	helper "cftl_backend/internals/helpers"
	helperAuth "cftl_backend/internals/helpers/auth"
	"cftl_backend/internals/helpers/dbtime"
	"cftl_backend/internals/helpers/storage"
)

type PaymentRequestController struct {
	DB      *gorm.DB
	Storage storage.ObjectStorage
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// POST /api/payment-requests (parent)
func (ctl *PaymentRequestController) CreateRequest(c *fiber.Ctx) error {
	var req dto.CreatePaymentRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Missing required fields")
	}
	req.ReceiptURL = strings.TrimSpace(req.ReceiptURL)
	if ok, err := helper.ValidateStruct(c, &req); !ok {
		return err
	}
	var paymentDate *string
	if req.PaymentDate != nil && strings.TrimSpace(*req.PaymentDate) != "" {
		paymentDate = req.PaymentDate
	}

	parentID, err := helperAuth.GetParentID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	db := ctl.DB.WithContext(c.UserContext())
	var payment paymentModel.Payment
	if err := db.First(&payment, "payment_id = ?", req.PaymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Payment not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	ids, err := parentService.StudentIDsOfParent(db, helperAuth.GetParentNIC(c))
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if !contains(ids, payment.PaymentStudentID.String()) || req.StudentID != payment.PaymentStudentID.String() {
		return helper.JsonError(c, fiber.StatusForbidden, "This payment does not belong to your student")
	}

	var n int64
	if err := db.Model(&model.PaymentRequest{}).
		Where("payment_request_payment_id = ?", payment.PaymentID).Count(&n).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if n > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "Request already exists for this payment")
	}

	m := model.PaymentRequest{
		PaymentRequestPaymentID:       payment.PaymentID,
		PaymentRequestStudentID:       payment.PaymentStudentID,
		PaymentRequestCourseID:        payment.PaymentCourseID,
		PaymentRequestParentID:        &parentID,
		PaymentRequestMonth:           req.Month,
		PaymentRequestAmountRequested: req.AmountRequested,
		PaymentRequestRemainingAmount: req.RemainingAmount,
		PaymentRequestReceiptURL:      req.ReceiptURL,
		PaymentRequestStatus:          constants.RequestPending,
		PaymentRequestRequestedOn:     dbtime.Now(),
	}
	if paymentDate != nil {
		t, err := dbtime.ParseDate(*paymentDate)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid paymentDate")
		}
		m.PaymentRequestPaymentDate = &t
	}
	if ctl.Storage != nil {
		if key, err := ctl.Storage.KeyFromURL(req.ReceiptURL); err == nil {
			m.PaymentRequestReceiptKey = &key
		}
	}

	if err := db.Create(&m).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Request already exists for this payment")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "Payment request submitted", fiber.Map{"id": m.PaymentRequestID})
}

// GET /api/payment-requests (coordinator) newest first
func (ctl *PaymentRequestController) GetAllRequests(c *fiber.Ctx) error {
	q := ctl.DB.WithContext(c.UserContext()).Model(&model.PaymentRequest{})
	if s := strings.TrimSpace(c.Query("status")); s != "" {
		q = q.Where("payment_request_status = ?", s)
	}
	var list []model.PaymentRequest
	if err := q.Order("payment_request_requested_on DESC").Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonList(c, "ok", dto.FromModels(list), nil)
}

// GET /api/payment-requests/parent
func (ctl *PaymentRequestController) GetRequestsForParent(c *fiber.Ctx) error {
	db := ctl.DB.WithContext(c.UserContext())
	ids, err := parentService.StudentIDsOfParent(db, helperAuth.GetParentNIC(c))
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if len(ids) == 0 {
		return helper.JsonList(c, "ok", []dto.PaymentRequestResponse{}, nil)
	}
	var list []model.PaymentRequest
	if err := db.Where("payment_request_student_id IN ?", ids).
		Order("payment_request_requested_on DESC").Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonList(c, "ok", dto.FromModels(list), nil)
}

// GET /api/payment-requests/coordinator
func (ctl *PaymentRequestController) GetRequestsForCoordinator(c *fiber.Ctx) error {
	db := ctl.DB.WithContext(c.UserContext())
	courses := db.Model(&courseModel.Course{}).
		Select("course_id").
		Where("course_coordinator_email = ?", helperAuth.GetEmail(c))

	var list []model.PaymentRequest
	if err := db.Where("payment_request_course_id IN (?)", courses).
		Order("payment_request_requested_on DESC").Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonList(c, "ok", dto.FromModels(list), nil)
}

func requestID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusNotFound, "Request not found")
	}
	return id, nil
}

// PUT /api/payment-requests/:id/approve
func (ctl *PaymentRequestController) ApproveRequest(c *fiber.Ctx) error {
	id, err := requestID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	approver := helperAuth.GetEmail(c)
	payment, err := service.Approve(ctl.DB.WithContext(c.UserContext()), id, approver, dbtime.Now())
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	configs.Log.WithFields(map[string]interface{}{
		"request":  id,
		"payment":  payment.PaymentID,
		"status":   payment.PaymentStatus,
		"approver": approver,
	}).Info("payment request approved")
	return helper.JsonUpdated(c, "Request approved and payment updated", nil)
}

// PUT /api/payment-requests/:id/reject
func (ctl *PaymentRequestController) RejectRequest(c *fiber.Ctx) error {
	var req dto.RejectRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
		}
	}
	if ok, err := helper.ValidateStruct(c, &req); !ok {
		return err
	}
	id, err := requestID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	err = service.Reject(ctl.DB.WithContext(c.UserContext()), id, helperAuth.GetEmail(c), strings.TrimSpace(req.Reason), dbtime.Now())
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Request rejected", nil)
}
