package dto

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"

	"cftl_backend/internals/constants"
	"cftl_backend/internals/features/academics/courses/model"
	"cftl_backend/internals/helpers/dbtime"
)

/* =========================================================
   REQUEST
========================================================= */

type CreateCourseRequest struct {
	Name              string              `json:"name" validate:"required"`
	Program           string              `json:"program" validate:"required"`
	Year              string              `json:"year" validate:"required"`
	Duration          string              `json:"duration" validate:"required"`
	CoordinatorEmail  string              `json:"coordinatorEmail" validate:"required"`
	TotalFee          int64               `json:"totalFee" validate:"required,gt=0"`
	StartDate         string              `json:"startDate" validate:"required"`
	EndDate           string              `json:"endDate" validate:"required"`
	MandatorySubjects []string            `json:"mandatorySubjects"`
	OptionalSubjects  []string            `json:"optionalSubjects"`
	CommonSubjects    []string            `json:"commonSubjects"`
	Streams           map[string][]string `json:"streams"`
}

// UpdateCourseRequest: nil fields are left unchanged.
type UpdateCourseRequest struct {
	Name              *string             `json:"name"`
	Program           *string             `json:"program"`
	Year              *string             `json:"year"`
	Duration          *string             `json:"duration"`
	CoordinatorEmail  *string             `json:"coordinatorEmail"`
	TotalFee          *int64              `json:"totalFee" validate:"omitempty,gt=0"`
	StartDate         *string             `json:"startDate"`
	EndDate           *string             `json:"endDate"`
	MandatorySubjects []string            `json:"mandatorySubjects"`
	OptionalSubjects  []string            `json:"optionalSubjects"`
	CommonSubjects    []string            `json:"commonSubjects"`
	Streams           map[string][]string `json:"streams"`
}

// NormalizeProgram upper-cases and checks the program.
func NormalizeProgram(p string) (string, error) {
	up := strings.ToUpper(strings.TrimSpace(p))
	if up != constants.ProgramOL && up != constants.ProgramAL {
		return "", fiber.NewError(fiber.StatusBadRequest, `Program must be either "OL" or "AL"`)
	}
	return up, nil
}

// ValidateProgramShape checks the subject lists a program requires.
func ValidateProgramShape(program string, mandatory, optional, common []string, streams map[string][]string) error {
	switch program {
	case constants.ProgramOL:
		if mandatory == nil || optional == nil {
			return fiber.NewError(fiber.StatusBadRequest, "OL courses require mandatorySubjects and optionalSubjects arrays.")
		}
	case constants.ProgramAL:
		if common == nil || streams == nil {
			return fiber.NewError(fiber.StatusBadRequest, "AL courses require commonSubjects array and a streams object.")
		}
		if len(streams) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid stream names provided in streams object.")
		}
		for k := range streams {
			if !constants.IsALStream(k) {
				return fiber.NewError(fiber.StatusBadRequest, "Invalid stream names provided in streams object.")
			}
		}
	}
	return nil
}

func parseDate(field, s string) (time.Time, error) {
	t, err := dbtime.ParseDate(s)
	if err != nil {
		return time.Time{}, fiber.NewError(fiber.StatusBadRequest, "Invalid "+field)
	}
	return t, nil
}

func jsonSlice(in []string) datatypes.JSONSlice[string] {
	if in == nil {
		return datatypes.JSONSlice[string]{}
	}
	return datatypes.JSONSlice[string](in)
}

// ToModel validates program rules and dates, then builds the row.
func (r CreateCourseRequest) ToModel() (model.Course, error) {
	program, err := NormalizeProgram(r.Program)
	if err != nil {
		return model.Course{}, err
	}
	if err := ValidateProgramShape(program, r.MandatorySubjects, r.OptionalSubjects, r.CommonSubjects, r.Streams); err != nil {
		return model.Course{}, err
	}
	start, err := parseDate("startDate", r.StartDate)
	if err != nil {
		return model.Course{}, err
	}
	end, err := parseDate("endDate", r.EndDate)
	if err != nil {
		return model.Course{}, err
	}

	m := model.Course{
		CourseName:             strings.TrimSpace(r.Name),
		CourseProgram:          program,
		CourseYear:             strings.TrimSpace(r.Year),
		CourseDuration:         strings.TrimSpace(r.Duration),
		CourseCoordinatorEmail: strings.ToLower(strings.TrimSpace(r.CoordinatorEmail)),
		CourseTotalFee:         r.TotalFee,
		CourseStartDate:        start,
		CourseEndDate:          end,
	}
	if program == constants.ProgramOL {
		m.CourseMandatorySubjects = jsonSlice(r.MandatorySubjects)
		m.CourseOptionalSubjects = jsonSlice(r.OptionalSubjects)
		m.CourseCommonSubjects = jsonSlice(nil)
		m.CourseStreams = datatypes.NewJSONType(model.CourseStreams{})
	} else {
		m.CourseMandatorySubjects = jsonSlice(nil)
		m.CourseOptionalSubjects = jsonSlice(nil)
		m.CourseCommonSubjects = jsonSlice(r.CommonSubjects)
		m.CourseStreams = datatypes.NewJSONType(model.CourseStreams(r.Streams))
	}
	return m, nil
}

// Updates returns the column map for a partial update.
func (r UpdateCourseRequest) Updates() (map[string]any, error) {
	upd := map[string]any{}

	if r.Program != nil {
		program, err := NormalizeProgram(*r.Program)
		if err != nil {
			return nil, err
		}
		if err := ValidateProgramShape(program, r.MandatorySubjects, r.OptionalSubjects, r.CommonSubjects, r.Streams); err != nil {
			return nil, err
		}
		upd["course_program"] = program
	}
	if r.Name != nil {
		upd["course_name"] = strings.TrimSpace(*r.Name)
	}
	if r.Year != nil {
		upd["course_year"] = strings.TrimSpace(*r.Year)
	}
	if r.Duration != nil {
		upd["course_duration"] = strings.TrimSpace(*r.Duration)
	}
	if r.CoordinatorEmail != nil {
		upd["course_coordinator_email"] = strings.ToLower(strings.TrimSpace(*r.CoordinatorEmail))
	}
	if r.TotalFee != nil {
		upd["course_total_fee"] = *r.TotalFee
	}
	if r.StartDate != nil {
		t, err := parseDate("startDate", *r.StartDate)
		if err != nil {
			return nil, err
		}
		upd["course_start_date"] = t
	}
	if r.EndDate != nil {
		t, err := parseDate("endDate", *r.EndDate)
		if err != nil {
			return nil, err
		}
		upd["course_end_date"] = t
	}
	if r.MandatorySubjects != nil {
		upd["course_mandatory_subjects"] = jsonSlice(r.MandatorySubjects)
	}
	if r.OptionalSubjects != nil {
		upd["course_optional_subjects"] = jsonSlice(r.OptionalSubjects)
	}
	if r.CommonSubjects != nil {
		upd["course_common_subjects"] = jsonSlice(r.CommonSubjects)
	}
	if r.Streams != nil {
		upd["course_streams"] = datatypes.NewJSONType(model.CourseStreams(r.Streams))
	}
	return upd, nil
}

/* =========================================================
   RESPONSE
========================================================= */

type CourseResponse struct {
	ID                string              `json:"id"`
	Name              string              `json:"name"`
	Program           string              `json:"program"`
	Year              string              `json:"year"`
	Duration          string              `json:"duration"`
	CoordinatorEmail  string              `json:"coordinatorEmail"`
	TotalFee          int64               `json:"totalFee"`
	StartDate         string              `json:"startDate"`
	EndDate           string              `json:"endDate"`
	MandatorySubjects []string            `json:"mandatorySubjects,omitempty"`
	OptionalSubjects  []string            `json:"optionalSubjects,omitempty"`
	CommonSubjects    []string            `json:"commonSubjects,omitempty"`
	Streams           map[string][]string `json:"streams,omitempty"`
	CreatedAt         time.Time           `json:"createdAt"`
}

func FromModel(m model.Course) CourseResponse {
	out := CourseResponse{
		ID:               m.CourseID.String(),
		Name:             m.CourseName,
		Program:          m.CourseProgram,
		Year:             m.CourseYear,
		Duration:         m.CourseDuration,
		CoordinatorEmail: m.CourseCoordinatorEmail,
		TotalFee:         m.CourseTotalFee,
		StartDate:        dbtime.FormatDate(m.CourseStartDate),
		EndDate:          dbtime.FormatDate(m.CourseEndDate),
		CreatedAt:        m.CourseCreatedAt,
	}
	if m.CourseProgram == constants.ProgramOL {
		out.MandatorySubjects = []string(m.CourseMandatorySubjects)
		out.OptionalSubjects = []string(m.CourseOptionalSubjects)
	} else {
		out.CommonSubjects = []string(m.CourseCommonSubjects)
		out.Streams = m.Streams()
	}
	return out
}

func FromModels(list []model.Course) []CourseResponse {
	out := make([]CourseResponse, 0, len(list))
	for _, m := range list {
		out = append(out, FromModel(m))
	}
	return out
}
