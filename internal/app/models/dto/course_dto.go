package dto

import "github.com/yigit/facultyhub/internal/app/models"

// ScheduleRequest is the weekly slot of a new course
type ScheduleRequest struct {
	Day       models.Weekday `json:"day" binding:"required,oneof=Monday Tuesday Wednesday Thursday Friday Saturday"`
	StartTime string         `json:"startTime" binding:"required,clock"`
	EndTime   string         `json:"endTime" binding:"required,clock"`
	Room      string         `json:"room" binding:"required"`
}

// CreateCourseRequest creates a course
type CreateCourseRequest struct {
	Code          string          `json:"code" binding:"required,coursecode"`
	Name          string          `json:"name" binding:"required,max=200"`
	Description   string          `json:"description"`
	Credits       int             `json:"credits" binding:"required,min=1,max=10"`
	Department    string          `json:"department" binding:"required"`
	Year          int             `json:"year" binding:"required,min=1,max=5"`
	Semester      int             `json:"semester" binding:"required,min=1,max=10"`
	ProfessorID   string          `json:"professor" binding:"required,objectid"`
	MaxStudents   int             `json:"maxStudents" binding:"omitempty,min=1"`
	Schedule      ScheduleRequest `json:"schedule"`
	Prerequisites []string        `json:"prerequisites" binding:"omitempty,dive,objectid"`
	IsActive      *bool           `json:"isActive"`
}

// SchedulePatch merges field by field into the stored schedule
type SchedulePatch struct {
	Day       *models.Weekday `json:"day" binding:"omitempty,oneof=Monday Tuesday Wednesday Thursday Friday Saturday"`
	StartTime *string         `json:"startTime" binding:"omitempty,clock"`
	EndTime   *string         `json:"endTime" binding:"omitempty,clock"`
	Room      *string         `json:"room" binding:"omitempty,min=1"`
}

// UpdateCourseRequest is a merge patch; nil fields are left unchanged
type UpdateCourseRequest struct {
	Code          *string        `json:"code" binding:"omitempty,coursecode"`
	Name          *string        `json:"name" binding:"omitempty,min=1,max=200"`
	Description   *string        `json:"description"`
	Credits       *int           `json:"credits" binding:"omitempty,min=1,max=10"`
	Department    *string        `json:"department" binding:"omitempty,min=1"`
	Year          *int           `json:"year" binding:"omitempty,min=1,max=5"`
	Semester      *int           `json:"semester" binding:"omitempty,min=1,max=10"`
	ProfessorID   *string        `json:"professor" binding:"omitempty,objectid"`
	MaxStudents   *int           `json:"maxStudents" binding:"omitempty,min=1"`
	Schedule      *SchedulePatch `json:"schedule"`
	Prerequisites *[]string      `json:"prerequisites" binding:"omitempty,dive,objectid"`
	IsActive      *bool          `json:"isActive"`
}

// CourseFilterRequest holds the list query parameters
type CourseFilterRequest struct {
	Department string `form:"department"`
	Year       int    `form:"year" binding:"omitempty,min=1,max=5"`
	Semester   int    `form:"semester" binding:"omitempty,min=1,max=10"`
	Professor  string `form:"professor" binding:"omitempty,objectid"`
}
