package controller

import (
	"errors"
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cftl_backend/internals/configs"
	"cftl_backend/internals/features/students/students/dto"
	"cftl_backend/internals/features/students/students/model"
	parentService "cftl_backend/internals/features/users/parents/service"
	helper "cftl_backend/internals/helpers"
	"cftl_backend/internals/helpers/dbtime"
	"cftl_backend/internals/helpers/storage"
)

const profileFolder = "students"

type StudentController struct {
	DB      *gorm.DB
	Storage storage.ObjectStorage
}

func findStudent(db *gorm.DB, rawID string) (*model.Student, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Student not found")
	}
	var m model.Student
	if err := db.First(&m, "student_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Student not found")
		}
		return nil, err
	}
	return &m, nil
}

// imageFile returns the first uploaded file of the form, if any.
func imageFile(form *multipart.Form) *multipart.FileHeader {
	if form == nil {
		return nil
	}
	for _, name := range []string{"image", "profilePicture", "file"} {
		if fhs := form.File[name]; len(fhs) > 0 {
			return fhs[0]
		}
	}
	for _, fhs := range form.File {
		if len(fhs) > 0 {
			return fhs[0]
		}
	}
	return nil
}

func (ctl *StudentController) uploadPicture(c *fiber.Ctx, fh *multipart.FileHeader) (*string, error) {
	if fh == nil {
		return nil, nil
	}
	url, err := storage.UploadImage(c.UserContext(), ctl.Storage, fh, profileFolder)
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedImage) {
			return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		configs.Log.WithError(err).Error("student picture upload failed")
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to upload profile picture")
	}
	return &url, nil
}

// nextRegistrationNo increments the student counter under a row lock.
func nextRegistrationNo(tx *gorm.DB) (string, error) {
	var ctr model.Counter
	res := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("counter_name = ?", model.StudentCounter).
		Limit(1).Find(&ctr)
	if res.Error != nil {
		return "", res.Error
	}
	if res.RowsAffected == 0 {
		return "", fiber.NewError(fiber.StatusInternalServerError, "Student counter not initialized.")
	}
	next := ctr.CounterLastValue + 1
	if err := tx.Model(&ctr).Update("counter_last_value", next).Error; err != nil {
		return "", err
	}
	return dto.FormatRegistrationNo(next), nil
}

// POST /api/students (multipart: data + optional image)
func (ctl *StudentController) CreateStudent(c *fiber.Ctx) error {
	form, _ := c.MultipartForm()

	raw := c.FormValue("data")
	var in dto.StudentInput
	if err := c.App().Config().JSONDecoder([]byte(raw), &in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid JSON in `data` field")
	}
	if err := in.ValidateNICsForCreate(); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	m, err := in.ToModel()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	pic, err := ctl.uploadPicture(c, imageFile(form))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	m.StudentProfilePicture = pic

	err = ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := parentService.EnsureParents(tx, in.Guardians()...); err != nil {
			return err
		}
		regNo, err := nextRegistrationNo(tx)
		if err != nil {
			return err
		}
		now := dbtime.Now()
		m.StudentRegistrationNo = regNo
		m.StudentRegistrationDate = &now
		return tx.Create(&m).Error
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	configs.Log.WithField("registrationNo", m.StudentRegistrationNo).Info("student registered")
	return helper.JsonCreated(c, "Student registered", fiber.Map{
		"id":             m.StudentID,
		"registrationNo": m.StudentRegistrationNo,
	})
}

var studentSorts = map[string]string{
	"created_at":      "student_created_at",
	"registration_no": "student_registration_no",
	"full_name":       "student_full_name",
}

// GET /api/students?page=&per_page=&q=
func (ctl *StudentController) GetAllStudents(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "registration_no", "desc", helper.AdminOpts)

	q := ctl.DB.WithContext(c.UserContext()).Model(&model.Student{})
	if s := strings.TrimSpace(c.Query("q")); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(student_full_name) LIKE ? OR LOWER(student_registration_no) LIKE ? OR student_nic LIKE ?", like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	var list []model.Student
	if err := q.Order(p.OrderClause(studentSorts, "registration_no")).
		Limit(p.Limit()).Offset(p.Offset()).
		Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonList(c, "ok", dto.FromModels(list), helper.BuildMeta(total, p))
}

// GET /api/students/latest-regno
func (ctl *StudentController) GetLatestRegistrationNo(c *fiber.Ctx) error {
	var ctr model.Counter
	res := ctl.DB.WithContext(c.UserContext()).
		Where("counter_name = ?", model.StudentCounter).Limit(1).Find(&ctr)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, res.Error.Error())
	}
	var regNo *string
	if res.RowsAffected > 0 && ctr.CounterLastValue > 0 {
		s := dto.FormatRegistrationNo(ctr.CounterLastValue)
		regNo = &s
	}
	return helper.JsonOK(c, "ok", fiber.Map{"registrationNo": regNo})
}

// GET /api/students/:id
func (ctl *StudentController) GetStudentByID(c *fiber.Ctx) error {
	m, err := findStudent(ctl.DB.WithContext(c.UserContext()), c.Params("id"))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.FromModel(*m))
}

// readUpdateInput takes the "data" JSON field, or falls back to plain form fields.
func readUpdateInput(c *fiber.Ctx, form *multipart.Form) (dto.StudentInput, error) {
	var in dto.StudentInput
	decode := c.App().Config().JSONDecoder

	if raw := c.FormValue("data"); raw != "" {
		if err := decode([]byte(raw), &in); err != nil {
			return in, fiber.NewError(fiber.StatusBadRequest, "Invalid JSON in `data` field")
		}
		return in, nil
	}
	if form == nil {
		// plain JSON body
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&in); err != nil {
				return in, fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
			}
		}
		return in, nil
	}

	fields := make(map[string]string, len(form.Value))
	for k, v := range form.Value {
		if len(v) > 0 {
			fields[k] = v[0]
		}
	}
	b, err := c.App().Config().JSONEncoder(fields)
	if err != nil {
		return in, err
	}
	if err := decode(b, &in); err != nil {
		return in, fiber.NewError(fiber.StatusBadRequest, "Invalid form fields")
	}
	return in, nil
}

// PUT /api/students/:id (multipart: data or plain fields + optional image)
func (ctl *StudentController) UpdateStudent(c *fiber.Ctx) error {
	form, _ := c.MultipartForm()
	in, err := readUpdateInput(c, form)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := in.ValidateNICsForUpdate(); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	db := ctl.DB.WithContext(c.UserContext())
	m, err := findStudent(db, c.Params("id"))
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	upd, err := in.Updates(m)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	pic, err := ctl.uploadPicture(c, imageFile(form))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if pic != nil {
		m.StudentProfilePicture = pic
		upd["student_profile_picture_url"] = *pic
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := parentService.EnsureParents(tx, in.Guardians()...); err != nil {
			return err
		}
		if len(upd) == 0 {
			return nil
		}
		return tx.Model(m).Updates(upd).Error
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Student updated", dto.FromModel(*m))
}

// DELETE /api/students/:id
func (ctl *StudentController) DeleteStudent(c *fiber.Ctx) error {
	db := ctl.DB.WithContext(c.UserContext())
	m, err := findStudent(db, c.Params("id"))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := db.Delete(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonNoContent(c)
}
