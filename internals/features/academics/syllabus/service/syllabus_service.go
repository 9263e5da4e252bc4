package service

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cftl_backend/internals/constants"
	"cftl_backend/internals/features/academics/syllabus/model"
)

// Position addresses a topic (Sub < 0) or a subtopic inside a syllabus.
type Position struct {
	Week  int
	Topic int
	Sub   int
}

func locateTopic(weeks []model.Week, p Position) (*model.Topic, error) {
	wi := model.FindWeek(weeks, p.Week)
	if wi < 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid weekNumber")
	}
	topics := weeks[wi].Topics
	if p.Topic < 0 || p.Topic >= len(topics) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid topicIndex")
	}
	return &topics[p.Topic], nil
}

func locateSubtopic(weeks []model.Week, p Position) (*model.Subtopic, error) {
	topic, err := locateTopic(weeks, p)
	if err != nil {
		return nil, err
	}
	if p.Sub < 0 || p.Sub >= len(topic.Subtopics) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid subIndex")
	}
	return &topic.Subtopics[p.Sub], nil
}

func CompleteSubtopic(weeks []model.Week, p Position, by string, now time.Time) error {
	sub, err := locateSubtopic(weeks, p)
	if err != nil {
		return err
	}
	sub.Completed = true
	sub.Status = constants.SyllabusCompleted
	sub.CompletedAt = &now
	sub.CompletedBy = by
	return nil
}

func ApproveSubtopic(weeks []model.Week, p Position, by string, now time.Time) error {
	sub, err := locateSubtopic(weeks, p)
	if err != nil {
		return err
	}
	approveSub(sub, by, now)
	return nil
}

// ApproveTopic approves the topic together with every subtopic under it.
func ApproveTopic(weeks []model.Week, p Position, by string, now time.Time) error {
	topic, err := locateTopic(weeks, p)
	if err != nil {
		return err
	}
	topic.Approved = true
	topic.ApprovedAt = &now
	topic.ApprovedBy = by
	for i := range topic.Subtopics {
		approveSub(&topic.Subtopics[i], by, now)
	}
	return nil
}

func approveSub(s *model.Subtopic, by string, now time.Time) {
	s.Approved = true
	s.ApprovedAt = &now
	s.ApprovedBy = by
}

// Mutate loads a syllabus under a row lock, applies fn to it and saves the
// weeks and approval columns back.
func Mutate(db *gorm.DB, id string, fn func(s *model.Syllabus) error) (*model.Syllabus, error) {
	var s model.Syllabus
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&s, "syllabus_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Not found")
			}
			return err
		}
		if err := fn(&s); err != nil {
			return err
		}
		return tx.Model(&s).Updates(map[string]any{
			"syllabus_weeks":       s.SyllabusWeeks,
			"syllabus_approved":    s.SyllabusApproved,
			"syllabus_approved_at": s.SyllabusApprovedAt,
			"syllabus_approved_by": s.SyllabusApprovedBy,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &s, nil
}
