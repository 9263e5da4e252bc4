package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"cftl_backend/internals/configs"
	"cftl_backend/internals/constants"
	courseModel "cftl_backend/internals/features/academics/courses/model"
	"cftl_backend/internals/features/students/enrollments/dto"
	"cftl_backend/internals/features/students/enrollments/model"
	"cftl_backend/internals/features/students/enrollments/service"
	studentModel "cftl_backend/internals/features/students/students/model"
	helper "cftl_backend/internals/helpers"
	helperAuth "cftl_backend/internals/helpers/auth"
	"cftl_backend/internals/helpers/dbtime"
)

type EnrollmentController struct {
	DB *gorm.DB
}

func notFound(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusNotFound, msg)
	}
	return err
}

// studentsByID loads the students referenced by the enrollments.
func studentsByID(db *gorm.DB, list []model.Enrollment) (map[uuid.UUID]studentModel.Student, error) {
	ids := make([]uuid.UUID, 0, len(list))
	for _, e := range list {
		ids = append(ids, e.EnrollmentStudentID)
	}
	out := make(map[uuid.UUID]studentModel.Student, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var students []studentModel.Student
	if err := db.Where("student_id IN ?", ids).Find(&students).Error; err != nil {
		return nil, err
	}
	for _, s := range students {
		out[s.StudentID] = s
	}
	return out, nil
}

func coordinatorCourses(db *gorm.DB, email string) ([]courseModel.Course, error) {
	var courses []courseModel.Course
	err := db.Where("course_coordinator_email = ?", email).Find(&courses).Error
	return courses, err
}

// POST /api/enrollments
func (ctl *EnrollmentController) EnrollStudent(c *fiber.Ctx) error {
	var req dto.CreateEnrollmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "studentId, courseId, and a subjects array are required.")
	}
	if ok, err := helper.ValidateStruct(c, &req); !ok {
		return err
	}

	db := ctl.DB.WithContext(c.UserContext())
	var student studentModel.Student
	if err := db.First(&student, "student_id = ?", req.StudentID).Error; err != nil {
		return helper.FromFiberError(c, notFound(err, "Student not found"))
	}
	var course courseModel.Course
	if err := db.First(&course, "course_id = ?", req.CourseID).Error; err != nil {
		return helper.FromFiberError(c, notFound(err, "Course not found"))
	}

	subjects, stream, err := service.ResolveSubjects(&course, req.Stream, req.Subjects)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	e := model.Enrollment{
		EnrollmentStudentID:  student.StudentID,
		EnrollmentCourseID:   course.CourseID,
		EnrollmentEnrolledBy: helperAuth.GetEmail(c),
		EnrollmentStatus:     constants.EnrollmentActive,
		EnrollmentTotalFee:   course.CourseTotalFee,
		EnrollmentMonthlyFee: service.MonthlyFee(&course),
		EnrollmentStream:     stream,
		EnrollmentSubjects:   datatypes.JSONSlice[string](subjects),
	}
	if err := service.Enroll(db, &e, course.DurationMonths(), dbtime.Now()); err != nil {
		return helper.FromFiberError(c, err)
	}

	configs.Log.WithFields(map[string]interface{}{
		"enrollment": e.EnrollmentID,
		"student":    student.StudentRegistrationNo,
		"months":     course.DurationMonths(),
	}).Info("student enrolled")
	return helper.JsonCreated(c, "Student enrolled", dto.FromModel(e))
}

// GET /api/enrollments/course/:courseId
func (ctl *EnrollmentController) GetEnrollmentsByCourse(c *fiber.Ctx) error {
	courseID, err := helper.ParseID(c.Params("courseId"), "courseId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	db := ctl.DB.WithContext(c.UserContext())
	var list []model.Enrollment
	if err := db.Where("enrollment_course_id = ?", courseID).
		Order("enrollment_date ASC").Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	students, err := studentsByID(db, list)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	out := make([]dto.EnrollmentDetail, 0, len(list))
	for _, e := range list {
		s, ok := students[e.EnrollmentStudentID]
		if !ok {
			continue
		}
		out = append(out, dto.NewDetail(e, s, nil))
	}
	return helper.JsonList(c, "ok", out, nil)
}

// GET /api/enrollments/coordinator
func (ctl *EnrollmentController) GetEnrollmentsForCoordinator(c *fiber.Ctx) error {
	db := ctl.DB.WithContext(c.UserContext())
	courses, err := coordinatorCourses(db, helperAuth.GetEmail(c))
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if len(courses) == 0 {
		return helper.JsonList(c, "ok", []dto.EnrollmentDetail{}, nil)
	}
	byID := make(map[uuid.UUID]*courseModel.Course, len(courses))
	ids := make([]uuid.UUID, 0, len(courses))
	for i := range courses {
		byID[courses[i].CourseID] = &courses[i]
		ids = append(ids, courses[i].CourseID)
	}

	var list []model.Enrollment
	if err := db.Where("enrollment_course_id IN ?", ids).
		Order("enrollment_date ASC").Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	students, err := studentsByID(db, list)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	out := make([]dto.EnrollmentDetail, 0, len(list))
	for _, e := range list {
		s, ok := students[e.EnrollmentStudentID]
		if !ok {
			continue
		}
		out = append(out, dto.NewDetail(e, s, byID[e.EnrollmentCourseID]))
	}
	return helper.JsonList(c, "ok", out, nil)
}

// GET /api/enrollments/coordinator/pending
// Students who prefer one of the caller's courses and are not active anywhere.
func (ctl *EnrollmentController) GetPendingForCoordinator(c *fiber.Ctx) error {
	db := ctl.DB.WithContext(c.UserContext())
	courses, err := coordinatorCourses(db, helperAuth.GetEmail(c))
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if len(courses) == 0 {
		return helper.JsonList(c, "ok", []dto.StudentCourse{}, nil)
	}
	byID := make(map[uuid.UUID]*courseModel.Course, len(courses))
	ids := make([]uuid.UUID, 0, len(courses))
	for i := range courses {
		byID[courses[i].CourseID] = &courses[i]
		ids = append(ids, courses[i].CourseID)
	}

	active := db.Model(&model.Enrollment{}).
		Select("enrollment_student_id").
		Where("enrollment_status = ?", constants.EnrollmentActive)

	var students []studentModel.Student
	if err := db.Where("student_preferred_course_id IN ?", ids).
		Where("student_id NOT IN (?)", active).
		Order("student_registration_no ASC").
		Find(&students).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	out := make([]dto.StudentCourse, 0, len(students))
	for _, s := range students {
		var course *courseModel.Course
		if s.StudentPreferredCourseID != nil {
			course = byID[*s.StudentPreferredCourseID]
		}
		out = append(out, dto.NewStudentCourse(s, course))
	}
	return helper.JsonList(c, "ok", out, nil)
}

// GET /api/enrollments/students
// Every student with the course of their enrollment; active enrollments win.
func (ctl *EnrollmentController) GetAllStudentsWithOptionalEnrollment(c *fiber.Ctx) error {
	db := ctl.DB.WithContext(c.UserContext())

	var students []studentModel.Student
	if err := db.Order("student_registration_no ASC").Find(&students).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	var enrollments []model.Enrollment
	if err := db.Order("enrollment_date ASC").Find(&enrollments).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	var courses []courseModel.Course
	if err := db.Find(&courses).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	courseByID := make(map[uuid.UUID]*courseModel.Course, len(courses))
	for i := range courses {
		courseByID[courses[i].CourseID] = &courses[i]
	}
	enrolled := make(map[uuid.UUID]model.Enrollment, len(enrollments))
	for _, e := range enrollments {
		prev, seen := enrolled[e.EnrollmentStudentID]
		if seen && prev.EnrollmentStatus == constants.EnrollmentActive && e.EnrollmentStatus != constants.EnrollmentActive {
			continue
		}
		enrolled[e.EnrollmentStudentID] = e
	}

	out := make([]dto.StudentCourse, 0, len(students))
	for _, s := range students {
		var course *courseModel.Course
		if e, ok := enrolled[s.StudentID]; ok {
			course = courseByID[e.EnrollmentCourseID]
		}
		out = append(out, dto.NewStudentCourse(s, course))
	}
	return helper.JsonList(c, "ok", out, nil)
}

// PUT /api/enrollments/:id/status
func (ctl *EnrollmentController) UpdateEnrollmentStatus(c *fiber.Ctx) error {
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid status")
	}
	if ok, err := helper.ValidateStruct(c, &req); !ok {
		return err
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Enrollment not found")
	}

	err = ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var e model.Enrollment
		if err := tx.First(&e, "enrollment_id = ?", id).Error; err != nil {
			return notFound(err, "Enrollment not found")
		}
		if req.Status == constants.EnrollmentActive {
			var n int64
			if err := tx.Model(&model.Enrollment{}).
				Where("enrollment_student_id = ? AND enrollment_status = ? AND enrollment_id <> ?",
					e.EnrollmentStudentID, constants.EnrollmentActive, e.EnrollmentID).
				Count(&n).Error; err != nil {
				return err
			}
			if n > 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Student is already active in another course")
			}
		}
		return tx.Model(&e).Update("enrollment_status", req.Status).Error
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Status updated", nil)
}

// DELETE /api/enrollments/:id
func (ctl *EnrollmentController) DeleteEnrollment(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Enrollment not found")
	}
	res := ctl.DB.WithContext(c.UserContext()).Delete(&model.Enrollment{}, "enrollment_id = ?", id)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Enrollment not found")
	}
	return helper.JsonNoContent(c)
}
