package dto

import "github.com/yigit/facultyhub/internal/app/models"

// CreateExamRegistrationRequest is a student signing up for an exam
type CreateExamRegistrationRequest struct {
	CourseID      string              `json:"courseId" binding:"required,objectid"`
	Semester      models.ExamSemester `json:"semester" binding:"required,oneof=winter summer"`
	ExamDate      string              `json:"examDate" binding:"required,isodate"`
	ProfessorName string              `json:"professorName" binding:"required,max=200"`
	Notes         string              `json:"notes" binding:"max=1000"`
}

// UpdateRegistrationStatusRequest approves or rejects a pending registration
type UpdateRegistrationStatusRequest struct {
	Status models.RegistrationStatus `json:"status" binding:"required,oneof=approved rejected"`
}
