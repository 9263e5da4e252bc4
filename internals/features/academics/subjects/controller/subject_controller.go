package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"cftl_backend/internals/constants"
	"cftl_backend/internals/features/academics/subjects/dto"
	"cftl_backend/internals/features/academics/subjects/model"
	teacherDTO "cftl_backend/internals/features/users/teachers/dto"
	teacherModel "cftl_backend/internals/features/users/teachers/model"
	helper "cftl_backend/internals/helpers"
)

type SubjectController struct {
	DB *gorm.DB
}

func findSubject(db *gorm.DB, rawID string) (*model.Subject, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Subject not found")
	}
	var m model.Subject
	if err := db.First(&m, "subject_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Subject not found")
		}
		return nil, err
	}
	return &m, nil
}

// GET /api/subjects/public
func (ctl *SubjectController) GetPublicSubjects(c *fiber.Ctx) error {
	var list []model.Subject
	if err := ctl.DB.WithContext(c.UserContext()).
		Order("subject_name ASC").Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonList(c, "ok", dto.ToPublicList(list), nil)
}

// POST /api/subjects
func (ctl *SubjectController) CreateSubject(c *fiber.Ctx) error {
	var req dto.CreateSubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	m, err := req.ToModel()
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := ctl.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "Subject created", fiber.Map{"id": m.SubjectID})
}

// GET /api/subjects?program=&stream=
func (ctl *SubjectController) GetSubjects(c *fiber.Ctx) error {
	program := strings.ToUpper(strings.TrimSpace(c.Query("program")))
	if program != constants.ProgramOL && program != constants.ProgramAL {
		return helper.JsonError(c, fiber.StatusBadRequest, `program is required and must be "OL" or "AL"`)
	}

	q := ctl.DB.WithContext(c.UserContext()).Where("subject_program = ?", program)
	if program == constants.ProgramAL {
		stream := strings.ToLower(strings.TrimSpace(c.Query("stream")))
		if !constants.IsALStream(stream) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Valid stream is required for AL program")
		}
		q = q.Where("subject_stream = ?", stream)
	}

	var list []model.Subject
	if err := q.Order("subject_name ASC").Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonList(c, "ok", dto.FromModels(list), nil)
}

// GET /api/subjects/all
func (ctl *SubjectController) GetAllSubjects(c *fiber.Ctx) error {
	var list []model.Subject
	if err := ctl.DB.WithContext(c.UserContext()).
		Order("subject_program ASC, subject_name ASC").Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonList(c, "ok", dto.FromModels(list), nil)
}

// GET /api/subjects/:subjectId
func (ctl *SubjectController) GetSubjectByID(c *fiber.Ctx) error {
	m, err := findSubject(ctl.DB.WithContext(c.UserContext()), c.Params("subjectId"))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.FromModel(*m))
}

// PUT /api/subjects/:subjectId
func (ctl *SubjectController) UpdateSubject(c *fiber.Ctx) error {
	var req dto.UpdateSubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	db := ctl.DB.WithContext(c.UserContext())
	m, err := findSubject(db, c.Params("subjectId"))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	upd, err := req.Updates(*m)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if len(upd) > 0 {
		if err := db.Model(m).Updates(upd).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
		}
	}
	return helper.JsonUpdated(c, "Subject updated", fiber.Map{"success": true})
}

// DELETE /api/subjects/:subjectId
func (ctl *SubjectController) DeleteSubject(c *fiber.Ctx) error {
	db := ctl.DB.WithContext(c.UserContext())
	m, err := findSubject(db, c.Params("subjectId"))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := db.Delete(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonNoContent(c)
}

// GET /api/subjects/:subjectId/teachers
func (ctl *SubjectController) GetTeachersForSubject(c *fiber.Ctx) error {
	db := ctl.DB.WithContext(c.UserContext())
	m, err := findSubject(db, c.Params("subjectId"))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if len(m.SubjectTeacherIDs) == 0 {
		return helper.JsonList(c, "ok", []teacherDTO.TeacherResponse{}, nil)
	}

	var teachers []teacherModel.Teacher
	if err := db.Where("teacher_id IN ?", []string(m.SubjectTeacherIDs)).
		Order("teacher_full_name ASC").Find(&teachers).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonList(c, "ok", teacherDTO.FromModels(teachers), nil)
}
