package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"cftl_backend/internals/constants"
	"cftl_backend/internals/features/academics/courses/dto"
	"cftl_backend/internals/features/academics/courses/model"
	enrollmentModel "cftl_backend/internals/features/students/enrollments/model"
	helper "cftl_backend/internals/helpers"
	helperAuth "cftl_backend/internals/helpers/auth"
)

type CourseController struct {
	DB *gorm.DB
}

func parseCourseID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusNotFound, "Course not found")
	}
	return id, nil
}

// POST /api/courses
func (ctl *CourseController) CreateCourse(c *fiber.Ctx) error {
	var req dto.CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if ok, err := helper.ValidateStruct(c, &req); !ok {
		return err
	}

	m, err := req.ToModel()
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := ctl.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "Course created", fiber.Map{"id": m.CourseID})
}

// GET /api/courses
func (ctl *CourseController) GetAllCourses(c *fiber.Ctx) error {
	var list []model.Course
	if err := ctl.DB.WithContext(c.UserContext()).
		Order("course_created_at DESC").Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonList(c, "ok", dto.FromModels(list), nil)
}

// GET /api/courses/coordinator/courses
func (ctl *CourseController) GetCoursesForCoordinator(c *fiber.Ctx) error {
	var list []model.Course
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("course_coordinator_email = ?", helperAuth.GetEmail(c)).
		Order("course_created_at DESC").
		Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonList(c, "ok", dto.FromModels(list), nil)
}

// PUT /api/courses/:courseId
func (ctl *CourseController) UpdateCourse(c *fiber.Ctx) error {
	id, err := parseCourseID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.UpdateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if ok, err := helper.ValidateStruct(c, &req); !ok {
		return err
	}
	upd, err := req.Updates()
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var m model.Course
	if err := ctl.DB.WithContext(c.UserContext()).First(&m, "course_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Course not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if len(upd) > 0 {
		if err := ctl.DB.WithContext(c.UserContext()).Model(&m).Updates(upd).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
		}
	}
	return helper.JsonUpdated(c, "Course updated", fiber.Map{"success": true, "id": id})
}

// DELETE /api/courses/:courseId
// Enrollments of the course are deactivated in the same transaction.
func (ctl *CourseController) DeleteCourse(c *fiber.Ctx) error {
	id, err := parseCourseID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	err = ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&model.Course{}).Where("course_id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Course not found")
		}
		if err := tx.Model(&enrollmentModel.Enrollment{}).
			Where("enrollment_course_id = ?", id).
			Update("enrollment_status", constants.EnrollmentInactive).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Course{}, "course_id = ?", id).Error
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonNoContent(c)
}
