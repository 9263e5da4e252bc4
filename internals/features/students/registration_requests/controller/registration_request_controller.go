package controller

import (
	"errors"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cftl_backend/internals/features/students/registration_requests/dto"
	"cftl_backend/internals/features/students/registration_requests/model"
	helper "cftl_backend/internals/helpers"
	helperAuth "cftl_backend/internals/helpers/auth"
)

type RegistrationRequestController struct {
	DB *gorm.DB
}

// POST /api/registration-requests (public)
func (ctl *RegistrationRequestController) CreateRequest(c *fiber.Ctx) error {
	var req dto.CreateRegistrationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if ok, err := helper.ValidateStruct(c, &req); !ok {
		return err
	}
	if msg := req.CheckChoices(); msg != "" {
		return helper.JsonError(c, fiber.StatusBadRequest, msg)
	}

	db := ctl.DB.WithContext(c.UserContext())
	var n int64
	if err := db.Model(&model.RegistrationRequest{}).
		Where("registration_request_email = ? AND registration_request_phone = ?", req.Email, req.Phone).
		Count(&n).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if n > 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "A request with this email and phone already exists")
	}

	m := req.ToModel()
	if err := db.Create(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "Registration request submitted", fiber.Map{
		"id":   m.RegistrationRequestID,
		"name": m.RegistrationRequestName,
	})
}

var requestSorts = map[string]string{
	"created_at": "registration_request_created_at",
	"name":       "registration_request_name",
}

// GET /api/registration-requests
func (ctl *RegistrationRequestController) GetAllRequests(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "created_at", "desc", helper.AdminOpts)

	q := ctl.DB.WithContext(c.UserContext()).Model(&model.RegistrationRequest{})
	if prog := strings.ToUpper(strings.TrimSpace(c.Query("program"))); prog != "" {
		q = q.Where("registration_request_program = ?", prog)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	var list []model.RegistrationRequest
	if err := q.Order(p.OrderClause(requestSorts, "created_at")).
		Limit(p.Limit()).Offset(p.Offset()).
		Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonList(c, "ok", dto.FromModels(list), helper.BuildMeta(total, p))
}

// GET /api/registration-requests/starting-months (public)
func (ctl *RegistrationRequestController) GetStartingMonths(c *fiber.Ctx) error {
	var s model.Setting
	if err := ctl.DB.WithContext(c.UserContext()).
		First(&s, "setting_key = ?", model.SettingStartingMonths).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Settings not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	var out model.StartingMonths
	if err := sonic.Unmarshal(s.SettingValue, &out); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Corrupt starting months setting")
	}
	return helper.JsonOK(c, "ok", out)
}

// PUT /api/registration-requests/starting-months (admin)
func (ctl *RegistrationRequestController) SetStartingMonths(c *fiber.Ctx) error {
	var req dto.StartingMonthsRequest
	if err := c.BodyParser(&req); err != nil || len(req.Months) != 2 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Exactly two starting months must be provided")
	}
	for i, m := range req.Months {
		req.Months[i] = strings.TrimSpace(m)
		if req.Months[i] == "" {
			return helper.JsonError(c, fiber.StatusBadRequest, "Exactly two starting months must be provided")
		}
	}

	value, err := sonic.Marshal(model.StartingMonths{Months: req.Months})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	s := model.Setting{
		SettingKey:       model.SettingStartingMonths,
		SettingValue:     datatypes.JSON(value),
		SettingUpdatedBy: helperAuth.GetEmail(c),
	}
	if err := ctl.DB.WithContext(c.UserContext()).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "setting_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"setting_value", "setting_updated_by", "setting_updated_at"}),
	}).Create(&s).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "Starting months updated", model.StartingMonths{Months: req.Months})
}
