package service_test

import (
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cftl_backend/internals/features/academics/syllabus/model"
	"cftl_backend/internals/features/academics/syllabus/service"
)

func sampleWeeks() []model.Week {
	return []model.Week{
		{WeekNumber: 1, Topics: []model.Topic{
			{Title: "Cells", Status: "pending", Subtopics: []model.Subtopic{
				{Title: "Structure", Status: "pending"},
				{Title: "Division", Status: "pending"},
			}},
		}},
		{WeekNumber: 3, Topics: []model.Topic{
			{Title: "Genetics", Status: "pending", Subtopics: []model.Subtopic{}},
		}},
	}
}

func TestCompleteSubtopic(t *testing.T) {
	weeks := sampleWeeks()
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	require.NoError(t, service.CompleteSubtopic(weeks, service.Position{Week: 1, Topic: 0, Sub: 1}, "t@cftl.lk", now))
	sub := weeks[0].Topics[0].Subtopics[1]
	assert.True(t, sub.Completed)
	assert.Equal(t, "completed", sub.Status)
	assert.Equal(t, "t@cftl.lk", sub.CompletedBy)
	require.NotNil(t, sub.CompletedAt)
	assert.True(t, now.Equal(*sub.CompletedAt))
	assert.False(t, weeks[0].Topics[0].Subtopics[0].Completed)
}

func TestPositionErrors(t *testing.T) {
	cases := []struct {
		pos service.Position
		msg string
	}{
		{service.Position{Week: 2, Topic: 0, Sub: 0}, "Invalid weekNumber"},
		{service.Position{Week: 1, Topic: 1, Sub: 0}, "Invalid topicIndex"},
		{service.Position{Week: 1, Topic: -1, Sub: 0}, "Invalid topicIndex"},
		{service.Position{Week: 1, Topic: 0, Sub: 2}, "Invalid subIndex"},
		{service.Position{Week: 3, Topic: 0, Sub: 0}, "Invalid subIndex"},
	}
	for _, tc := range cases {
		err := service.ApproveSubtopic(sampleWeeks(), tc.pos, "c@cftl.lk", time.Now())
		var fe *fiber.Error
		require.ErrorAs(t, err, &fe, tc.msg)
		assert.Equal(t, fiber.StatusBadRequest, fe.Code)
		assert.Equal(t, tc.msg, fe.Message)
	}
}

func TestApproveTopicApprovesSubtopics(t *testing.T) {
	weeks := sampleWeeks()
	require.NoError(t, service.ApproveTopic(weeks, service.Position{Week: 1, Topic: 0, Sub: -1}, "c@cftl.lk", time.Now()))

	topic := weeks[0].Topics[0]
	assert.True(t, topic.Approved)
	assert.Equal(t, "c@cftl.lk", topic.ApprovedBy)
	for _, s := range topic.Subtopics {
		assert.True(t, s.Approved)
		assert.Equal(t, "c@cftl.lk", s.ApprovedBy)
		assert.False(t, s.Completed)
	}
	assert.False(t, weeks[1].Topics[0].Approved)
}
