package dto

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"cftl_backend/internals/features/students/students/model"
	helper "cftl_backend/internals/helpers"
	"cftl_backend/internals/helpers/dbtime"
)

// Amount accepts a JSON number or a numeric string ("2500").
// Form clients send fees as strings. Fractions and values past int64 are rejected.
type Amount int64

func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*a = 0
		return nil
	}
	s := strings.Trim(string(b), `"`)
	if s == "" {
		*a = 0
		return nil
	}
	// whole rupees only; "2500.00" is fine, "2500.75" is not
	if i := strings.IndexByte(s, '.'); i >= 0 && strings.Trim(s[i+1:], "0") == "" {
		s = s[:i]
	}
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid amount %q", s)
	}
	*a = Amount(n)
	return nil
}

type GuardianInput struct {
	Name       string `json:"name"`
	NIC        string `json:"nic"`
	Email      string `json:"email"`
	Telephone  string `json:"telephone"`
	Occupation string `json:"occupation"`
}

func (g *GuardianInput) toModel() model.Guardian {
	if g == nil {
		return model.Guardian{}
	}
	return model.Guardian{
		Name:       strings.TrimSpace(g.Name),
		NIC:        strings.TrimSpace(g.NIC),
		Email:      strings.ToLower(strings.TrimSpace(g.Email)),
		Telephone:  strings.TrimSpace(g.Telephone),
		Occupation: strings.TrimSpace(g.Occupation),
	}
}

type PreferencesInput struct {
	CourseID string `json:"courseId"`
	Stream   string `json:"stream"`
}

// StudentInput is the JSON carried in the multipart "data" field.
// Every field is optional so the same shape serves create and update.
type StudentInput struct {
	FullName              *string           `json:"fullName"`
	NameInitials          *string           `json:"nameInitials"`
	NIC                   *string           `json:"nic"`
	DOB                   *string           `json:"dob"`
	Gender                *string           `json:"gender"`
	Email                 *string           `json:"email"`
	Telephone             *string           `json:"telephone"`
	Address               *string           `json:"address"`
	School                *string           `json:"school"`
	RegistrationFee       *Amount           `json:"registrationFee"`
	MonthlyFee            *Amount           `json:"monthlyFee"`
	PreBudget             *Amount           `json:"preBudget"`
	TotalAmount           *Amount           `json:"totalAmount"`
	Mother                *GuardianInput    `json:"mother"`
	Father                *GuardianInput    `json:"father"`
	Nominee               *GuardianInput    `json:"nominee"`
	Subjects              []string          `json:"subjects"`
	EnrollmentPreferences *PreferencesInput `json:"enrollmentPreferences"`
}

type nicCheck struct {
	label string
	path  string
	value string
}

func (in StudentInput) nicChecks() []nicCheck {
	val := func(s *string) string {
		if s == nil {
			return ""
		}
		return strings.TrimSpace(*s)
	}
	guardian := func(g *GuardianInput) string {
		if g == nil {
			return ""
		}
		return strings.TrimSpace(g.NIC)
	}
	return []nicCheck{
		{"student", "nic", val(in.NIC)},
		{"mother", "mother.nic", guardian(in.Mother)},
		{"father", "father.nic", guardian(in.Father)},
		{"nominee", "nominee.nic", guardian(in.Nominee)},
	}
}

// ValidateNICsForCreate: "Invalid mother NIC format".
func (in StudentInput) ValidateNICsForCreate() error {
	for _, c := range in.nicChecks() {
		if c.value != "" && !helper.IsValidNIC(c.value) {
			return fmt.Errorf("Invalid %s NIC format", c.label)
		}
	}
	return nil
}

// ValidateNICsForUpdate: "Invalid NIC format in mother.nic".
func (in StudentInput) ValidateNICsForUpdate() error {
	for _, c := range in.nicChecks() {
		if c.value != "" && !helper.IsValidNIC(c.value) {
			return fmt.Errorf("Invalid NIC format in %s", c.path)
		}
	}
	return nil
}

func trimPtr(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

func amount(a *Amount) int64 {
	if a == nil {
		return 0
	}
	return int64(*a)
}

func parseDOB(s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := dbtime.ParseDate(*s)
	if err != nil {
		return nil, fmt.Errorf("Invalid dob")
	}
	return &t, nil
}

func preferences(p *PreferencesInput) (model.EnrollmentPreferences, *uuid.UUID) {
	if p == nil {
		return model.EnrollmentPreferences{}, nil
	}
	out := model.EnrollmentPreferences{
		CourseID: strings.TrimSpace(p.CourseID),
		Stream:   strings.ToLower(strings.TrimSpace(p.Stream)),
	}
	if id, err := uuid.Parse(out.CourseID); err == nil {
		return out, &id
	}
	return out, nil
}

// ToModel builds a new student; registration number and picture are set by the caller.
func (in StudentInput) ToModel() (model.Student, error) {
	dob, err := parseDOB(in.DOB)
	if err != nil {
		return model.Student{}, err
	}
	subjects := in.Subjects
	if subjects == nil {
		subjects = []string{}
	}
	prefs, preferredCourse := preferences(in.EnrollmentPreferences)

	return model.Student{
		StudentFullName:     trimPtr(in.FullName),
		StudentNameInitials: trimPtr(in.NameInitials),
		StudentNIC:          trimPtr(in.NIC),
		StudentDOB:          dob,
		StudentGender:       trimPtr(in.Gender),
		StudentEmail:        strings.ToLower(trimPtr(in.Email)),
		StudentTelephone:    trimPtr(in.Telephone),
		StudentAddress:      trimPtr(in.Address),
		StudentSchool:       trimPtr(in.School),
		StudentFees: datatypes.NewJSONType(model.StudentFees{
			RegistrationFee: amount(in.RegistrationFee),
			MonthlyFee:      amount(in.MonthlyFee),
			PreBudget:       amount(in.PreBudget),
			TotalAmount:     amount(in.TotalAmount),
		}),
		StudentMother:            datatypes.NewJSONType(in.Mother.toModel()),
		StudentFather:            datatypes.NewJSONType(in.Father.toModel()),
		StudentNominee:           datatypes.NewJSONType(in.Nominee.toModel()),
		StudentSubjects:          datatypes.JSONSlice[string](subjects),
		StudentPreferences:       datatypes.NewJSONType(prefs),
		StudentPreferredCourseID: preferredCourse,
	}, nil
}

// Guardians returns the guardian blocks present in the input.
func (in StudentInput) Guardians() []model.Guardian {
	var out []model.Guardian
	for _, g := range []*GuardianInput{in.Mother, in.Father, in.Nominee} {
		if g != nil {
			out = append(out, g.toModel())
		}
	}
	return out
}

// Updates applies the present fields to m and returns the column map.
func (in StudentInput) Updates(m *model.Student) (map[string]any, error) {
	upd := map[string]any{}
	set := func(col string, dst *string, v *string, lower bool) {
		if v == nil {
			return
		}
		s := strings.TrimSpace(*v)
		if lower {
			s = strings.ToLower(s)
		}
		*dst = s
		upd[col] = s
	}
	set("student_full_name", &m.StudentFullName, in.FullName, false)
	set("student_name_initials", &m.StudentNameInitials, in.NameInitials, false)
	set("student_nic", &m.StudentNIC, in.NIC, false)
	set("student_gender", &m.StudentGender, in.Gender, false)
	set("student_email", &m.StudentEmail, in.Email, true)
	set("student_telephone", &m.StudentTelephone, in.Telephone, false)
	set("student_address", &m.StudentAddress, in.Address, false)
	set("student_school", &m.StudentSchool, in.School, false)

	if in.DOB != nil {
		dob, err := parseDOB(in.DOB)
		if err != nil {
			return nil, err
		}
		m.StudentDOB = dob
		upd["student_dob"] = dob
	}

	if in.RegistrationFee != nil || in.MonthlyFee != nil || in.PreBudget != nil || in.TotalAmount != nil {
		fees := m.StudentFees.Data()
		if in.RegistrationFee != nil {
			fees.RegistrationFee = int64(*in.RegistrationFee)
		}
		if in.MonthlyFee != nil {
			fees.MonthlyFee = int64(*in.MonthlyFee)
		}
		if in.PreBudget != nil {
			fees.PreBudget = int64(*in.PreBudget)
		}
		if in.TotalAmount != nil {
			fees.TotalAmount = int64(*in.TotalAmount)
		}
		m.StudentFees = datatypes.NewJSONType(fees)
		upd["student_fees"] = m.StudentFees
	}

	if in.Mother != nil {
		m.StudentMother = datatypes.NewJSONType(in.Mother.toModel())
		upd["student_mother"] = m.StudentMother
	}
	if in.Father != nil {
		m.StudentFather = datatypes.NewJSONType(in.Father.toModel())
		upd["student_father"] = m.StudentFather
	}
	if in.Nominee != nil {
		m.StudentNominee = datatypes.NewJSONType(in.Nominee.toModel())
		upd["student_nominee"] = m.StudentNominee
	}
	if in.Subjects != nil {
		m.StudentSubjects = datatypes.JSONSlice[string](in.Subjects)
		upd["student_subjects"] = m.StudentSubjects
	}
	if in.EnrollmentPreferences != nil {
		prefs, preferredCourse := preferences(in.EnrollmentPreferences)
		m.StudentPreferences = datatypes.NewJSONType(prefs)
		m.StudentPreferredCourseID = preferredCourse
		upd["student_enrollment_preferences"] = m.StudentPreferences
		upd["student_preferred_course_id"] = preferredCourse
	}
	return upd, nil
}

/* =========================================================
   RESPONSE
========================================================= */

type StudentResponse struct {
	ID                    string                      `json:"id"`
	RegistrationNo        string                      `json:"registrationNo"`
	RegistrationDate      *string                     `json:"registrationDate"`
	FullName              string                      `json:"fullName"`
	NameInitials          string                      `json:"nameInitials"`
	NIC                   string                      `json:"nic"`
	DOB                   *string                     `json:"dob"`
	Gender                string                      `json:"gender"`
	Email                 string                      `json:"email"`
	Telephone             string                      `json:"telephone"`
	Address               string                      `json:"address"`
	School                string                      `json:"school"`
	ProfilePictureURL     *string                     `json:"profilePictureUrl"`
	RegistrationFee       int64                       `json:"registrationFee"`
	MonthlyFee            int64                       `json:"monthlyFee"`
	PreBudget             int64                       `json:"preBudget"`
	TotalAmount           int64                       `json:"totalAmount"`
	Mother                model.Guardian              `json:"mother"`
	Father                model.Guardian              `json:"father"`
	Nominee               model.Guardian              `json:"nominee"`
	Subjects              []string                    `json:"subjects"`
	EnrollmentPreferences model.EnrollmentPreferences `json:"enrollmentPreferences"`
	CreatedAt             time.Time                   `json:"createdAt"`
}

func FromModel(m model.Student) StudentResponse {
	fees := m.StudentFees.Data()
	subjects := []string(m.StudentSubjects)
	if subjects == nil {
		subjects = []string{}
	}
	return StudentResponse{
		ID:                    m.StudentID.String(),
		RegistrationNo:        m.StudentRegistrationNo,
		RegistrationDate:      dbtime.FormatDatePtr(m.StudentRegistrationDate),
		FullName:              m.StudentFullName,
		NameInitials:          m.StudentNameInitials,
		NIC:                   m.StudentNIC,
		DOB:                   dbtime.FormatDatePtr(m.StudentDOB),
		Gender:                m.StudentGender,
		Email:                 m.StudentEmail,
		Telephone:             m.StudentTelephone,
		Address:               m.StudentAddress,
		School:                m.StudentSchool,
		ProfilePictureURL:     m.StudentProfilePicture,
		RegistrationFee:       fees.RegistrationFee,
		MonthlyFee:            fees.MonthlyFee,
		PreBudget:             fees.PreBudget,
		TotalAmount:           fees.TotalAmount,
		Mother:                m.StudentMother.Data(),
		Father:                m.StudentFather.Data(),
		Nominee:               m.StudentNominee.Data(),
		Subjects:              subjects,
		EnrollmentPreferences: m.StudentPreferences.Data(),
		CreatedAt:             m.StudentCreatedAt,
	}
}

func FromModels(list []model.Student) []StudentResponse {
	out := make([]StudentResponse, 0, len(list))
	for _, m := range list {
		out = append(out, FromModel(m))
	}
	return out
}

// FormatRegistrationNo renders the n-th registration number (STD0001).
func FormatRegistrationNo(n int64) string {
	return fmt.Sprintf("STD%04d", n)
}
