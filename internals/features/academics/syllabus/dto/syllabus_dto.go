package dto

import (
	"time"

	"gorm.io/datatypes"

	"cftl_backend/internals/constants"
	"cftl_backend/internals/features/academics/syllabus/model"
)

type SubtopicInput struct {
	Title  string `json:"title"  validate:"required"`
	Status string `json:"status" validate:"required"`
}

type TopicInput struct {
	Title     string          `json:"title"     validate:"required"`
	Status    string          `json:"status"    validate:"required"`
	Subtopics []SubtopicInput `json:"subtopics" validate:"required,dive"`
}

type WeekInput struct {
	WeekNumber int          `json:"weekNumber" validate:"required,min=1"`
	Topics     []TopicInput `json:"topics"     validate:"required,dive"`
}

type UpsertSyllabusRequest struct {
	SubjectID string      `json:"subjectId" validate:"required,uuid"`
	Month     string      `json:"month"     validate:"required,yyyymm"`
	Weeks     []WeekInput `json:"weeks"     validate:"required,dive"`
}

// UpdateSyllabusRequest carries only the weeks; subjectId and month in the
// body are ignored since they make up the id.
type UpdateSyllabusRequest struct {
	Weeks []WeekInput `json:"weeks" validate:"omitempty,dive"`
}

// ToWeeks drops any progress or approval flags a client may send back.
func ToWeeks(in []WeekInput) datatypes.JSONSlice[model.Week] {
	out := make(datatypes.JSONSlice[model.Week], 0, len(in))
	for _, w := range in {
		week := model.Week{WeekNumber: w.WeekNumber, Topics: make([]model.Topic, 0, len(w.Topics))}
		for _, t := range w.Topics {
			topic := model.Topic{Title: t.Title, Status: t.Status, Subtopics: make([]model.Subtopic, 0, len(t.Subtopics))}
			for _, s := range t.Subtopics {
				topic.Subtopics = append(topic.Subtopics, model.Subtopic{
					Title:     s.Title,
					Status:    s.Status,
					Completed: s.Status == constants.SyllabusCompleted,
				})
			}
			week.Topics = append(week.Topics, topic)
		}
		out = append(out, week)
	}
	return out
}

type SyllabusResponse struct {
	ID         string       `json:"id"`
	SubjectID  string       `json:"subjectId"`
	Month      string       `json:"month"`
	Weeks      []model.Week `json:"weeks"`
	Approved   bool         `json:"approved"`
	ApprovedAt *time.Time   `json:"approvedAt,omitempty"`
	ApprovedBy *string      `json:"approvedBy,omitempty"`
	CreatedBy  string       `json:"createdBy"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}

func FromModel(m model.Syllabus) SyllabusResponse {
	weeks := []model.Week(m.SyllabusWeeks)
	if weeks == nil {
		weeks = []model.Week{}
	}
	return SyllabusResponse{
		ID:         m.SyllabusID,
		SubjectID:  m.SyllabusSubjectID.String(),
		Month:      m.SyllabusMonth,
		Weeks:      weeks,
		Approved:   m.SyllabusApproved,
		ApprovedAt: m.SyllabusApprovedAt,
		ApprovedBy: m.SyllabusApprovedBy,
		CreatedBy:  m.SyllabusCreatedBy,
		CreatedAt:  m.SyllabusCreatedAt,
		UpdatedAt:  m.SyllabusUpdatedAt,
	}
}

func FromModels(list []model.Syllabus) []SyllabusResponse {
	out := make([]SyllabusResponse, 0, len(list))
	for _, m := range list {
		out = append(out, FromModel(m))
	}
	return out
}
