package service

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	subjectModel "cftl_backend/internals/features/academics/subjects/model"
	"cftl_backend/internals/features/users/teachers/model"
)

// Assignment keeps teachers.teacher_assigned_subjects and the reverse
// index subjects.subject_teacher_ids in step. All methods run on the tx given.
type Assignment struct{}

func NewAssignment() Assignment { return Assignment{} }

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// ValidateSubjectIDs fails with 400 when any id is malformed or unknown.
func (Assignment) ValidateSubjectIDs(tx *gorm.DB, ids []string) error {
	ids = dedupe(ids)
	if len(ids) == 0 {
		return nil
	}
	for _, id := range ids {
		if _, err := uuid.Parse(id); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "One or more subject IDs are invalid")
		}
	}
	var n int64
	if err := tx.Model(&subjectModel.Subject{}).Where("subject_id IN ?", ids).Count(&n).Error; err != nil {
		return err
	}
	if int(n) != len(ids) {
		return fiber.NewError(fiber.StatusBadRequest, "One or more subject IDs are invalid")
	}
	return nil
}

// Replace stores next as the teacher's subjects and updates the reverse index
// on every subject that was added or removed.
func (a Assignment) Replace(tx *gorm.DB, t *model.Teacher, next []string) error {
	next = dedupe(next)
	prev := []string(t.TeacherAssignedSubjects)

	prevSet := make(map[string]bool, len(prev))
	for _, s := range prev {
		prevSet[s] = true
	}
	nextSet := make(map[string]bool, len(next))
	for _, s := range next {
		nextSet[s] = true
	}

	var toAdd, toRemove []string
	for _, s := range next {
		if !prevSet[s] {
			toAdd = append(toAdd, s)
		}
	}
	for _, s := range prev {
		if !nextSet[s] {
			toRemove = append(toRemove, s)
		}
	}

	t.TeacherAssignedSubjects = datatypes.JSONSlice[string](next)
	if err := tx.Model(t).Update("teacher_assigned_subjects", t.TeacherAssignedSubjects).Error; err != nil {
		return err
	}

	tid := t.TeacherID.String()
	if err := a.editSubjects(tx, toRemove, func(ids []string) []string { return without(ids, tid) }); err != nil {
		return err
	}
	return a.editSubjects(tx, toAdd, func(ids []string) []string {
		if contains(ids, tid) {
			return ids
		}
		return append(ids, tid)
	})
}

// RemoveTeacher drops the teacher from every subject's reverse index.
func (a Assignment) RemoveTeacher(tx *gorm.DB, t *model.Teacher) error {
	tid := t.TeacherID.String()
	return a.editSubjects(tx, []string(t.TeacherAssignedSubjects), func(ids []string) []string { return without(ids, tid) })
}

func (Assignment) editSubjects(tx *gorm.DB, subjectIDs []string, edit func([]string) []string) error {
	if len(subjectIDs) == 0 {
		return nil
	}
	var subjects []subjectModel.Subject
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("subject_id IN ?", subjectIDs).
		Find(&subjects).Error; err != nil {
		return err
	}
	for i := range subjects {
		s := &subjects[i]
		ids := edit(append([]string{}, s.SubjectTeacherIDs...))
		if err := tx.Model(s).Update("subject_teacher_ids", datatypes.JSONSlice[string](ids)).Error; err != nil {
			return err
		}
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

func without(list []string, v string) []string {
	out := make([]string, 0, len(list))
	for _, x := range list {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}
