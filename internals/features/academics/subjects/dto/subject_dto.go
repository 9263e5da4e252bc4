package dto

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"cftl_backend/internals/constants"
	"cftl_backend/internals/features/academics/subjects/model"
)

type CreateSubjectRequest struct {
	SubjectName string  `json:"subjectName"`
	Program     string  `json:"program"`
	Stream      *string `json:"stream"`
	IsMandatory *bool   `json:"isMandatory"`
}

type UpdateSubjectRequest struct {
	SubjectName *string `json:"subjectName"`
	Program     *string `json:"program"`
	Stream      *string `json:"stream"`
	IsMandatory *bool   `json:"isMandatory"`
}

func normalizeStream(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func (r CreateSubjectRequest) ToModel() (model.Subject, error) {
	name := strings.TrimSpace(r.SubjectName)
	if name == "" {
		return model.Subject{}, fiber.NewError(fiber.StatusBadRequest, "subjectName is required and must be a string")
	}
	program := strings.ToUpper(strings.TrimSpace(r.Program))
	if program != constants.ProgramOL && program != constants.ProgramAL {
		return model.Subject{}, fiber.NewError(fiber.StatusBadRequest, `program is required and must be either "OL" or "AL"`)
	}

	m := model.Subject{SubjectName: name, SubjectProgram: program}
	if program == constants.ProgramAL {
		if r.Stream == nil || !constants.IsALStream(normalizeStream(*r.Stream)) {
			return model.Subject{}, fiber.NewError(fiber.StatusBadRequest, "stream is required for AL program and must be valid")
		}
		st := normalizeStream(*r.Stream)
		m.SubjectStream = &st
	} else {
		if r.Stream != nil && strings.TrimSpace(*r.Stream) != "" {
			return model.Subject{}, fiber.NewError(fiber.StatusBadRequest, "OL program should not have a stream")
		}
		m.SubjectIsMandatory = r.IsMandatory != nil && *r.IsMandatory
	}
	return m, nil
}

// Updates validates the patch against the stored subject and returns the column map.
// Switching a subject to OL clears its stream.
func (r UpdateSubjectRequest) Updates(current model.Subject) (map[string]any, error) {
	upd := map[string]any{}

	if r.SubjectName != nil {
		name := strings.TrimSpace(*r.SubjectName)
		if name == "" {
			return nil, fiber.NewError(fiber.StatusBadRequest, "subjectName must be a string")
		}
		upd["subject_name"] = name
	}

	program := current.SubjectProgram
	if r.Program != nil {
		program = strings.ToUpper(strings.TrimSpace(*r.Program))
		if program != constants.ProgramOL && program != constants.ProgramAL {
			return nil, fiber.NewError(fiber.StatusBadRequest, `program must be "OL" or "AL"`)
		}
		upd["subject_program"] = program
	}

	switch program {
	case constants.ProgramOL:
		if r.Stream != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "OL program should not have a stream")
		}
		if current.SubjectStream != nil {
			upd["subject_stream"] = nil
		}
	case constants.ProgramAL:
		if r.Stream != nil {
			st := normalizeStream(*r.Stream)
			if !constants.IsALStream(st) {
				return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid stream for AL program")
			}
			upd["subject_stream"] = st
		}
	}

	if r.IsMandatory != nil {
		upd["subject_is_mandatory"] = *r.IsMandatory
	}
	return upd, nil
}

/* ===== responses ===== */

// PublicSubject is the minimal shape exposed without authentication.
type PublicSubject struct {
	ID          string  `json:"id"`
	SubjectName string  `json:"subjectName"`
	Program     string  `json:"program"`
	Stream      *string `json:"stream"`
	IsMandatory bool    `json:"isMandatory"`
}

type SubjectResponse struct {
	PublicSubject
	TeacherIDs []string  `json:"teacherIds"`
	CreatedAt  time.Time `json:"createdAt"`
}

func ToPublic(m model.Subject) PublicSubject {
	return PublicSubject{
		ID:          m.SubjectID.String(),
		SubjectName: m.SubjectName,
		Program:     m.SubjectProgram,
		Stream:      m.SubjectStream,
		IsMandatory: m.SubjectIsMandatory,
	}
}

func ToPublicList(list []model.Subject) []PublicSubject {
	out := make([]PublicSubject, 0, len(list))
	for _, m := range list {
		out = append(out, ToPublic(m))
	}
	return out
}

func FromModel(m model.Subject) SubjectResponse {
	ids := []string(m.SubjectTeacherIDs)
	if ids == nil {
		ids = []string{}
	}
	return SubjectResponse{
		PublicSubject: ToPublic(m),
		TeacherIDs:    ids,
		CreatedAt:     m.SubjectCreatedAt,
	}
}

func FromModels(list []model.Subject) []SubjectResponse {
	out := make([]SubjectResponse, 0, len(list))
	for _, m := range list {
		out = append(out, FromModel(m))
	}
	return out
}
