package dto

import "github.com/yigit/facultyhub/internal/app/models"

// CreateStudentRequest creates a user account and its student profile
type CreateStudentRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=6"`
	FirstName  string `json:"firstName" binding:"required,max=100"`
	LastName   string `json:"lastName" binding:"required,max=100"`
	StudentID  string `json:"studentId" binding:"required,max=32"`
	Year       int    `json:"year" binding:"required,min=1,max=5"`
	Semester   int    `json:"semester" binding:"required,min=1,max=10"`
	Department string `json:"department" binding:"required"`
	Major      string `json:"major" binding:"required"`
}

// UpdateStudentRequest is a merge patch; nil fields are left unchanged
type UpdateStudentRequest struct {
	FirstName  *string               `json:"firstName" binding:"omitempty,min=1,max=100"`
	LastName   *string               `json:"lastName" binding:"omitempty,min=1,max=100"`
	Year       *int                  `json:"year" binding:"omitempty,min=1,max=5"`
	Semester   *int                  `json:"semester" binding:"omitempty,min=1,max=10"`
	Department *string               `json:"department" binding:"omitempty,min=1"`
	Major      *string               `json:"major" binding:"omitempty,min=1"`
	Status     *models.StudentStatus `json:"status" binding:"omitempty,oneof=active inactive graduated suspended"`
}

// StudentFilterRequest holds the list query parameters
type StudentFilterRequest struct {
	Department string               `form:"department"`
	Year       int                  `form:"year" binding:"omitempty,min=1,max=5"`
	Status     models.StudentStatus `form:"status" binding:"omitempty,oneof=active inactive graduated suspended"`
}

// CountEntry is one bucket of a grouped count
type CountEntry struct {
	ID    string `json:"_id"`
	Count int    `json:"count"`
}

// StudentStatsResponse summarizes the student body
type StudentStatsResponse struct {
	TotalStudents     int          `json:"totalStudents"`
	ActiveStudents    int          `json:"activeStudents"`
	GraduatedStudents int          `json:"graduatedStudents"`
	DepartmentStats   []CountEntry `json:"departmentStats"`
	YearStats         []CountEntry `json:"yearStats"`
}
