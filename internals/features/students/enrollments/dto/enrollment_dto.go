package dto

import (
	"time"

	courseDTO "cftl_backend/internals/features/academics/courses/dto"
	courseModel "cftl_backend/internals/features/academics/courses/model"
	"cftl_backend/internals/features/students/enrollments/model"
	studentDTO "cftl_backend/internals/features/students/students/dto"
	studentModel "cftl_backend/internals/features/students/students/model"
)

type CreateEnrollmentRequest struct {
	StudentID string   `json:"studentId" validate:"required,uuid"`
	CourseID  string   `json:"courseId" validate:"required,uuid"`
	Stream    string   `json:"stream"`
	Subjects  []string `json:"subjects" validate:"required"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active inactive"`
}

type EnrollmentResponse struct {
	ID             string    `json:"id"`
	StudentID      string    `json:"studentId"`
	CourseID       string    `json:"courseId"`
	EnrolledBy     string    `json:"enrolledBy"`
	EnrollmentDate time.Time `json:"enrollmentDate"`
	Status         string    `json:"status"`
	TotalFee       int64     `json:"totalFee"`
	MonthlyFee     int64     `json:"monthlyFee"`
	Stream         *string   `json:"stream"`
	Subjects       []string  `json:"subjects"`
}

func FromModel(m model.Enrollment) EnrollmentResponse {
	subjects := []string(m.EnrollmentSubjects)
	if subjects == nil {
		subjects = []string{}
	}
	return EnrollmentResponse{
		ID:             m.EnrollmentID.String(),
		StudentID:      m.EnrollmentStudentID.String(),
		CourseID:       m.EnrollmentCourseID.String(),
		EnrolledBy:     m.EnrollmentEnrolledBy,
		EnrollmentDate: m.EnrollmentDate,
		Status:         m.EnrollmentStatus,
		TotalFee:       m.EnrollmentTotalFee,
		MonthlyFee:     m.EnrollmentMonthlyFee,
		Stream:         m.EnrollmentStream,
		Subjects:       subjects,
	}
}

// EnrollmentDetail embeds the student and, where loaded, the course.
type EnrollmentDetail struct {
	EnrollmentResponse
	Student studentDTO.StudentResponse `json:"student"`
	Course  *courseDTO.CourseResponse  `json:"course,omitempty"`
}

func NewDetail(e model.Enrollment, s studentModel.Student, c *courseModel.Course) EnrollmentDetail {
	out := EnrollmentDetail{
		EnrollmentResponse: FromModel(e),
		Student:            studentDTO.FromModel(s),
	}
	if c != nil {
		cr := courseDTO.FromModel(*c)
		out.Course = &cr
	}
	return out
}

// StudentCourse pairs a student with a course that may be absent.
type StudentCourse struct {
	Student studentDTO.StudentResponse `json:"student"`
	Course  *courseDTO.CourseResponse  `json:"course"`
}

func NewStudentCourse(s studentModel.Student, c *courseModel.Course) StudentCourse {
	out := StudentCourse{Student: studentDTO.FromModel(s)}
	if c != nil {
		cr := courseDTO.FromModel(*c)
		out.Course = &cr
	}
	return out
}
