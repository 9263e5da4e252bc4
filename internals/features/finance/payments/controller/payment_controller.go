package controller

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"cftl_backend/internals/constants"
	courseModel "cftl_backend/internals/features/academics/courses/model"
	"cftl_backend/internals/features/finance/payments/dto"
	"cftl_backend/internals/features/finance/payments/model"
	"cftl_backend/internals/features/finance/payments/service"
	studentModel "cftl_backend/internals/features/students/students/model"
	helper "cftl_backend/internals/helpers"
	helperAuth "cftl_backend/internals/helpers/auth"
	"cftl_backend/internals/helpers/dbtime"
)

type PaymentController struct {
	DB *gorm.DB
}

func findPayment(db *gorm.DB, rawID string) (*model.Payment, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Payment not found")
	}
	var m model.Payment
	if err := db.First(&m, "payment_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Payment not found")
		}
		return nil, err
	}
	return &m, nil
}

// POST /api/payments
func (ctl *PaymentController) CreatePayment(c *fiber.Ctx) error {
	var req dto.CreatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if ok, err := helper.ValidateStruct(c, &req); !ok {
		return err
	}
	m, err := req.ToModel()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid paidOn")
	}

	db := ctl.DB.WithContext(c.UserContext())
	var n int64
	if err := db.Model(&studentModel.Student{}).Where("student_id = ?", m.PaymentStudentID).Count(&n).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if n == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Student not found")
	}
	if err := db.Model(&courseModel.Course{}).Where("course_id = ?", m.PaymentCourseID).Count(&n).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if n == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Course not found")
	}

	if err := db.Create(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "Payment created", fiber.Map{"id": m.PaymentID})
}

// GET /api/payments?studentId=&courseId=&month=&status=
func (ctl *PaymentController) GetAllPayments(c *fiber.Ctx) error {
	q := ctl.DB.WithContext(c.UserContext()).Model(&model.Payment{})
	if v := strings.TrimSpace(c.Query("studentId")); v != "" {
		id, err := helper.ParseID(v, "studentId")
		if err != nil {
			return helper.FromFiberError(c, err)
		}
		q = q.Where("payment_student_id = ?", id)
	}
	if v := strings.TrimSpace(c.Query("courseId")); v != "" {
		id, err := helper.ParseID(v, "courseId")
		if err != nil {
			return helper.FromFiberError(c, err)
		}
		q = q.Where("payment_course_id = ?", id)
	}
	if v := strings.TrimSpace(c.Query("month")); v != "" {
		q = q.Where("payment_month = ?", v)
	}
	if v := strings.TrimSpace(c.Query("status")); v != "" {
		q = q.Where("payment_status = ?", v)
	}

	var list []model.Payment
	if err := q.Order("payment_month ASC, payment_created_at ASC").Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonList(c, "ok", dto.FromModels(list), nil)
}

// GET /api/payments/:id
func (ctl *PaymentController) GetPaymentByID(c *fiber.Ctx) error {
	m, err := findPayment(ctl.DB.WithContext(c.UserContext()), c.Params("id"))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.FromModel(*m))
}

// GET /api/payments/student/:studentId
func (ctl *PaymentController) GetPaymentsByStudent(c *fiber.Ctx) error {
	studentID, err := helper.ParseID(c.Params("studentId"), "studentId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var list []model.Payment
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("payment_student_id = ?", studentID).
		Order("payment_month ASC").
		Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonList(c, "ok", dto.FromModels(list), nil)
}

// PUT /api/payments/:id
func (ctl *PaymentController) UpdatePayment(c *fiber.Ctx) error {
	var req dto.UpdatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if ok, err := helper.ValidateStruct(c, &req); !ok {
		return err
	}

	db := ctl.DB.WithContext(c.UserContext())
	m, err := findPayment(db, c.Params("id"))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	upd, err := req.Updates(m)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid paidOn")
	}
	if err := db.Model(m).Updates(upd).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "Payment updated", dto.FromModel(*m))
}

// DELETE /api/payments/:id
func (ctl *PaymentController) DeletePayment(c *fiber.Ctx) error {
	db := ctl.DB.WithContext(c.UserContext())
	m, err := findPayment(db, c.Params("id"))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := db.Delete(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonNoContent(c)
}

// GET /api/payments/export?courseId=&month=&status=
// Coordinators only get the courses they coordinate.
func (ctl *PaymentController) ExportLedger(c *fiber.Ctx) error {
	q := ctl.DB.WithContext(c.UserContext()).
		Table("payments AS p").
		Select(`COALESCE(s.student_registration_no, '') AS registration_no,
			COALESCE(s.student_full_name, '') AS student_name,
			COALESCE(co.course_name, '') AS course_name,
			p.payment_month AS month,
			p.payment_amount_due AS amount_due,
			p.payment_amount_paid AS amount_paid,
			p.payment_remaining_amount AS remaining_amount,
			p.payment_status AS status,
			p.payment_paid_on AS paid_on,
			p.payment_method AS method,
			p.payment_transaction_id AS transaction_id`).
		Joins("LEFT JOIN students s ON s.student_id = p.payment_student_id").
		Joins("LEFT JOIN courses co ON co.course_id = p.payment_course_id")

	if helperAuth.GetRole(c) == constants.RoleCoordinator {
		q = q.Where("co.course_coordinator_email = ?", helperAuth.GetEmail(c))
	}
	if v := strings.TrimSpace(c.Query("courseId")); v != "" {
		id, err := helper.ParseID(v, "courseId")
		if err != nil {
			return helper.FromFiberError(c, err)
		}
		q = q.Where("p.payment_course_id = ?", id)
	}
	if v := strings.TrimSpace(c.Query("month")); v != "" {
		if !helper.IsValidMonth(v) {
			return helper.JsonError(c, fiber.StatusBadRequest, "month must be in YYYY-MM format")
		}
		q = q.Where("p.payment_month = ?", v)
	}
	if v := strings.TrimSpace(c.Query("status")); v != "" {
		q = q.Where("p.payment_status = ?", v)
	}

	var rows []service.LedgerRow
	if err := q.Order("p.payment_month ASC, s.student_registration_no ASC").Scan(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	f, err := service.BuildLedger(rows)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	defer f.Close()
	buf, err := f.WriteToBuffer()
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to write Excel file")
	}

	name := fmt.Sprintf("payments_%s.xlsx", dbtime.Now().Format("20060102_150405"))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, "attachment; filename="+name)
	return c.Send(buf.Bytes())
}
