package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"cftl_backend/internals/constants"
	subjectDTO "cftl_backend/internals/features/academics/subjects/dto"
	subjectModel "cftl_backend/internals/features/academics/subjects/model"
	"cftl_backend/internals/features/users/teachers/dto"
	"cftl_backend/internals/features/users/teachers/model"
	"cftl_backend/internals/features/users/teachers/service"
	helper "cftl_backend/internals/helpers"
	helperAuth "cftl_backend/internals/helpers/auth"
)

type TeacherController struct {
	DB     *gorm.DB
	assign service.Assignment
}

func NewTeacherController(db *gorm.DB) *TeacherController {
	return &TeacherController{DB: db, assign: service.NewAssignment()}
}

func findTeacher(tx *gorm.DB, rawID string) (*model.Teacher, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Teacher not found")
	}
	var m model.Teacher
	if err := tx.First(&m, "teacher_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Teacher not found")
		}
		return nil, err
	}
	return &m, nil
}

/* =========================================================
   PROFILE (signed-in teacher)
========================================================= */

// POST /api/teachers/profile
// Creates the caller's teacher row on first call, updates it afterwards.
func (ctl *TeacherController) SaveProfile(c *fiber.Ctx) error {
	user := helperAuth.GetCurrentUser(c)
	if user.Email == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.TeacherProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if ok, err := helper.ValidateStruct(c, &req); !ok {
		return err
	}

	var m model.Teacher
	err := ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("teacher_email = ?", user.Email).Limit(1).Find(&m)
		if res.Error != nil {
			return res.Error
		}
		uid := user.UID
		if res.RowsAffected == 0 {
			m = model.Teacher{TeacherEmail: user.Email, TeacherRole: constants.RoleTeacher}
			if uid != "" {
				m.TeacherUID = &uid
			}
			req.Apply(&m)
			return tx.Create(&m).Error
		}

		upd := req.Apply(&m)
		if uid != "" {
			m.TeacherUID = &uid
			upd["teacher_uid"] = uid
		}
		if len(upd) == 0 {
			return nil
		}
		return tx.Model(&m).Updates(upd).Error
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Profile saved", dto.FromModel(m))
}

// GET /api/teachers/profile
func (ctl *TeacherController) GetProfile(c *fiber.Ctx) error {
	var m model.Teacher
	res := ctl.DB.WithContext(c.UserContext()).
		Where("teacher_email = ?", helperAuth.GetEmail(c)).Limit(1).Find(&m)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Profile not found")
	}
	return helper.JsonOK(c, "ok", dto.FromModel(m))
}

/* =========================================================
   ADMIN CRUD
========================================================= */

// POST /api/teachers
func (ctl *TeacherController) CreateTeacher(c *fiber.Ctx) error {
	var req dto.CreateTeacherRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if ok, err := helper.ValidateStruct(c, &req); !ok {
		return err
	}

	m := req.ToModel()
	err := ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&model.Teacher{}).Where("teacher_email = ?", m.TeacherEmail).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Email already exists")
		}
		if err := ctl.assign.ValidateSubjectIDs(tx, m.TeacherAssignedSubjects); err != nil {
			return err
		}

		subjects := m.TeacherAssignedSubjects
		m.TeacherAssignedSubjects = nil
		if err := tx.Create(&m).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return fiber.NewError(fiber.StatusBadRequest, "Email already exists")
			}
			return err
		}
		return ctl.assign.Replace(tx, &m, subjects)
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Teacher created", dto.FromModel(m))
}

// GET /api/teachers
func (ctl *TeacherController) GetAllTeachers(c *fiber.Ctx) error {
	var list []model.Teacher
	if err := ctl.DB.WithContext(c.UserContext()).
		Order("teacher_full_name ASC").Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonList(c, "ok", dto.FromModels(list), nil)
}

// GET /api/teachers/:id
func (ctl *TeacherController) GetTeacherByID(c *fiber.Ctx) error {
	m, err := findTeacher(ctl.DB.WithContext(c.UserContext()), c.Params("id"))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.FromModel(*m))
}

// PUT /api/teachers/:id
func (ctl *TeacherController) UpdateTeacher(c *fiber.Ctx) error {
	var req dto.UpdateTeacherRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if ok, err := helper.ValidateStruct(c, &req); !ok {
		return err
	}

	var m *model.Teacher
	err := ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var err error
		if m, err = findTeacher(tx, c.Params("id")); err != nil {
			return err
		}

		upd := req.Apply(m)
		if email, ok := upd["teacher_email"]; ok {
			var n int64
			if err := tx.Model(&model.Teacher{}).
				Where("teacher_email = ? AND teacher_id <> ?", email, m.TeacherID).
				Count(&n).Error; err != nil {
				return err
			}
			if n > 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Email already in use by another teacher")
			}
		}
		if len(upd) > 0 {
			if err := tx.Model(m).Updates(upd).Error; err != nil {
				return err
			}
		}
		if req.AssignedSubjects != nil {
			if err := ctl.assign.ValidateSubjectIDs(tx, req.AssignedSubjects); err != nil {
				return err
			}
			return ctl.assign.Replace(tx, m, req.AssignedSubjects)
		}
		return nil
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Teacher updated", dto.FromModel(*m))
}

// DELETE /api/teachers/:id
func (ctl *TeacherController) DeleteTeacher(c *fiber.Ctx) error {
	err := ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		m, err := findTeacher(tx, c.Params("id"))
		if err != nil {
			return err
		}
		if err := ctl.assign.RemoveTeacher(tx, m); err != nil {
			return err
		}
		return tx.Delete(m).Error
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonNoContent(c)
}

/* =========================================================
   SUBJECT ASSIGNMENT
========================================================= */

// PUT /api/teachers/:id/assign-subjects
func (ctl *TeacherController) AssignSubjects(c *fiber.Ctx) error {
	var req dto.AssignSubjectsRequest
	if err := c.BodyParser(&req); err != nil || req.AssignedSubjects == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "assignedSubjects must be an array of subject IDs")
	}

	var m *model.Teacher
	err := ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var err error
		if m, err = findTeacher(tx, c.Params("id")); err != nil {
			return err
		}
		if err := ctl.assign.ValidateSubjectIDs(tx, req.AssignedSubjects); err != nil {
			return err
		}
		return ctl.assign.Replace(tx, m, req.AssignedSubjects)
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Subjects assigned successfully", fiber.Map{
		"assignedSubjects": []string(m.TeacherAssignedSubjects),
	})
}

// GET /api/teachers/:id/subjects
func (ctl *TeacherController) GetSubjectsForTeacher(c *fiber.Ctx) error {
	db := ctl.DB.WithContext(c.UserContext())
	m, err := findTeacher(db, c.Params("id"))
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	if len(m.TeacherAssignedSubjects) == 0 {
		return helper.JsonList(c, "ok", []subjectDTO.SubjectResponse{}, nil)
	}
	var subjects []subjectModel.Subject
	if err := db.Where("subject_id IN ?", []string(m.TeacherAssignedSubjects)).
		Order("subject_name ASC").Find(&subjects).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonList(c, "ok", subjectDTO.FromModels(subjects), nil)
}
