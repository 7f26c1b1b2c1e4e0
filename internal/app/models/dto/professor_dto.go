package dto

import "github.com/yigit/facultyhub/internal/app/models"

// CreateProfessorRequest creates a user account and its professor profile
type CreateProfessorRequest struct {
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=6"`
	FirstName      string `json:"firstName" binding:"required,max=100"`
	LastName       string `json:"lastName" binding:"required,max=100"`
	ProfessorID    string `json:"professorId" binding:"required,max=32"`
	Department     string `json:"department" binding:"required"`
	Title          string `json:"title" binding:"required,oneof='Assistant Professor' 'Associate Professor' 'Professor' 'Lecturer'"`
	Specialization string `json:"specialization"`
}

// UpdateProfessorRequest is a merge patch; nil fields are left unchanged
type UpdateProfessorRequest struct {
	FirstName      *string                 `json:"firstName" binding:"omitempty,min=1,max=100"`
	LastName       *string                 `json:"lastName" binding:"omitempty,min=1,max=100"`
	Department     *string                 `json:"department" binding:"omitempty,min=1"`
	Title          *string                 `json:"title" binding:"omitempty,oneof='Assistant Professor' 'Associate Professor' 'Professor' 'Lecturer'"`
	Specialization *string                 `json:"specialization"`
	Status         *models.ProfessorStatus `json:"status" binding:"omitempty,oneof=active inactive retired"`
}

// ProfessorFilterRequest holds the list query parameters
type ProfessorFilterRequest struct {
	Department string                 `form:"department"`
	Status     models.ProfessorStatus `form:"status" binding:"omitempty,oneof=active inactive retired"`
}

// ProfessorDirectoryEntry is the short professor listing students pick from
// when registering for an exam
type ProfessorDirectoryEntry struct {
	ID         models.ObjectID `json:"_id"`
	FirstName  string          `json:"firstName"`
	LastName   string          `json:"lastName"`
	Email      string          `json:"email"`
	Department string          `json:"department"`
}
