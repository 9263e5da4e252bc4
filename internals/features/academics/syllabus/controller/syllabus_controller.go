package controller

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cftl_backend/internals/configs"
	subjectModel "cftl_backend/internals/features/academics/subjects/model"
	"cftl_backend/internals/features/academics/syllabus/dto"
	"cftl_backend/internals/features/academics/syllabus/model"
	"cftl_backend/internals/features/academics/syllabus/service"
	helper "cftl_backend/internals/helpers"
	helperAuth "cftl_backend/internals/helpers/auth"
	"cftl_backend/internals/helpers/dbtime"
)

type SyllabusController struct {
	DB *gorm.DB
}

func createdBy(c *fiber.Ctx) string {
	if e := helperAuth.GetEmail(c); e != "" {
		return e
	}
	return "system"
}

// POST /api/syllabus/subject and /api/syllabus/admin/subject
func (ctl *SyllabusController) UpsertSyllabus(c *fiber.Ctx) error {
	var req dto.UpsertSyllabusRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Month = strings.TrimSpace(req.Month)
	if ok, err := helper.ValidateStruct(c, &req); !ok {
		return err
	}
	subjectID := uuid.MustParse(req.SubjectID)

	db := ctl.DB.WithContext(c.UserContext())
	var n int64
	if err := db.Model(&subjectModel.Subject{}).Where("subject_id = ?", subjectID).Count(&n).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if n == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Subject not found")
	}

	m := model.Syllabus{
		SyllabusID:        model.SyllabusKey(subjectID, req.Month),
		SyllabusSubjectID: subjectID,
		SyllabusMonth:     req.Month,
		SyllabusWeeks:     dto.ToWeeks(req.Weeks),
		SyllabusCreatedBy: createdBy(c),
	}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "syllabus_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"syllabus_weeks", "syllabus_created_by", "syllabus_updated_at"}),
	}).Create(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	configs.Log.WithFields(map[string]interface{}{
		"syllabus": m.SyllabusID,
		"by":       m.SyllabusCreatedBy,
	}).Info("syllabus saved")
	return helper.JsonCreated(c, "Syllabus saved.", fiber.Map{"id": m.SyllabusID})
}

// GET /api/syllabus/subject/:subjectId/:month
func (ctl *SyllabusController) GetBySubjectAndMonth(c *fiber.Ctx) error {
	subjectID, err := uuid.Parse(c.Params("subjectId"))
	month := strings.TrimSpace(c.Params("month"))
	if err != nil || month == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "subjectId and month are required")
	}

	var m model.Syllabus
	if err := ctl.DB.WithContext(c.UserContext()).
		First(&m, "syllabus_id = ?", model.SyllabusKey(subjectID, month)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "No syllabus found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", dto.FromModel(m))
}

// GET /api/syllabus
func (ctl *SyllabusController) GetAllSyllabus(c *fiber.Ctx) error {
	q := ctl.DB.WithContext(c.UserContext()).Model(&model.Syllabus{})
	if s := strings.TrimSpace(c.Query("subjectId")); s != "" {
		id, err := helper.ParseID(s, "subjectId")
		if err != nil {
			return helper.FromFiberError(c, err)
		}
		q = q.Where("syllabus_subject_id = ?", id)
	}
	if m := strings.TrimSpace(c.Query("month")); m != "" {
		q = q.Where("syllabus_month = ?", m)
	}
	var list []model.Syllabus
	if err := q.Order("syllabus_month DESC, syllabus_id ASC").Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonList(c, "ok", dto.FromModels(list), nil)
}

// PUT /api/syllabus/:id and /api/syllabus/admin/:id
func (ctl *SyllabusController) UpdateSyllabus(c *fiber.Ctx) error {
	var req dto.UpdateSyllabusRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if ok, err := helper.ValidateStruct(c, &req); !ok {
		return err
	}

	s, err := service.Mutate(ctl.DB.WithContext(c.UserContext()), c.Params("id"), func(s *model.Syllabus) error {
		if req.Weeks != nil {
			s.SyllabusWeeks = dto.ToWeeks(req.Weeks)
		}
		return nil
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Syllabus updated", dto.FromModel(*s))
}

// DELETE /api/syllabus/:id
func (ctl *SyllabusController) DeleteSyllabus(c *fiber.Ctx) error {
	res := ctl.DB.WithContext(c.UserContext()).Delete(&model.Syllabus{}, "syllabus_id = ?", c.Params("id"))
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Not found")
	}
	return helper.JsonDeleted(c, "Deleted", nil)
}

func position(c *fiber.Ctx, withSub bool) (service.Position, error) {
	p := service.Position{Sub: -1}
	var err error
	if p.Week, err = strconv.Atoi(c.Params("weekNumber")); err != nil {
		return p, fiber.NewError(fiber.StatusBadRequest, "Invalid weekNumber")
	}
	if p.Topic, err = strconv.Atoi(c.Params("topicIndex")); err != nil {
		return p, fiber.NewError(fiber.StatusBadRequest, "Invalid topicIndex")
	}
	if withSub {
		if p.Sub, err = strconv.Atoi(c.Params("subIndex")); err != nil {
			return p, fiber.NewError(fiber.StatusBadRequest, "Invalid subIndex")
		}
	}
	return p, nil
}

// PATCH /api/syllabus/:id/weeks/:weekNumber/topics/:topicIndex/subtopics/:subIndex/complete
func (ctl *SyllabusController) MarkSubtopicComplete(c *fiber.Ctx) error {
	p, err := position(c, true)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	by := helperAuth.GetEmail(c)
	if by == "" {
		by = "unknown"
	}
	now := dbtime.Now()
	if _, err := service.Mutate(ctl.DB.WithContext(c.UserContext()), c.Params("id"), func(s *model.Syllabus) error {
		return service.CompleteSubtopic(s.SyllabusWeeks, p, by, now)
	}); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Subtopic marked complete", nil)
}

// PATCH /api/syllabus/:id/approve
func (ctl *SyllabusController) ApproveSyllabus(c *fiber.Ctx) error {
	by := helperAuth.GetEmail(c)
	now := dbtime.Now()
	if _, err := service.Mutate(ctl.DB.WithContext(c.UserContext()), c.Params("id"), func(s *model.Syllabus) error {
		s.SyllabusApproved = true
		s.SyllabusApprovedAt = &now
		s.SyllabusApprovedBy = &by
		return nil
	}); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Syllabus approved", nil)
}

// PATCH /api/syllabus/:id/weeks/:weekNumber/topics/:topicIndex/subtopics/:subIndex/approve
func (ctl *SyllabusController) ApproveSubtopic(c *fiber.Ctx) error {
	p, err := position(c, true)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	by, now := helperAuth.GetEmail(c), dbtime.Now()
	if _, err := service.Mutate(ctl.DB.WithContext(c.UserContext()), c.Params("id"), func(s *model.Syllabus) error {
		return service.ApproveSubtopic(s.SyllabusWeeks, p, by, now)
	}); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Subtopic approved", nil)
}

// PATCH /api/syllabus/:id/weeks/:weekNumber/topics/:topicIndex/approve
func (ctl *SyllabusController) ApproveTopic(c *fiber.Ctx) error {
	p, err := position(c, false)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	by, now := helperAuth.GetEmail(c), dbtime.Now()
	if _, err := service.Mutate(ctl.DB.WithContext(c.UserContext()), c.Params("id"), func(s *model.Syllabus) error {
		return service.ApproveTopic(s.SyllabusWeeks, p, by, now)
	}); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Topic and subtopics approved", nil)
}
