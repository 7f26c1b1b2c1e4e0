package dto

import "github.com/yigit/facultyhub/internal/app/models"

// RecordGradeRequest is a professor submitting a grade. ExamDate defaults to
// today.
type RecordGradeRequest struct {
	StudentID    string `json:"studentId" binding:"required,objectid"`
	CourseID     string `json:"courseId" binding:"required,objectid"`
	Grade        int    `json:"grade" binding:"required,min=5,max=10"`
	Semester     int    `json:"semester" binding:"required,min=1,max=10"`
	AcademicYear string `json:"academicYear" binding:"required,academicyear"`
	ExamDate     string `json:"examDate" binding:"omitempty,isodate"`
}

// GradeResult is the outcome of recording a grade
type GradeResult struct {
	Entry     models.Grade `json:"grade"`
	WasUpdate bool         `json:"wasUpdate"`
}

// GradeView is one entry of the "my grades" listing
type GradeView struct {
	ID            models.ObjectID `json:"_id"`
	Course        models.ObjectID `json:"course"`
	Grade         int             `json:"grade"`
	Semester      int             `json:"semester"`
	AcademicYear  string          `json:"academicYear"`
	ExamDate      string          `json:"examDate"`
	CreatedAt     models.Date     `json:"createdAt"`
	UpdatedAt     models.Date     `json:"updatedAt"`
	CourseDetails CourseDetails   `json:"courseDetails"`
}

// CourseDetails is the course part of a GradeView
type CourseDetails struct {
	Code      string              `json:"code"`
	Name      string              `json:"name"`
	Credits   int                 `json:"credits"`
	Professor *GradeProfessorView `json:"professor"`
}

// GradeProfessorView names the professor who graded
type GradeProfessorView struct {
	User struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
	} `json:"user"`
}

// NewGradeView flattens a ledger entry for the web client
func NewGradeView(g models.Grade) GradeView {
	view := GradeView{
		ID:           g.ID,
		Course:       g.Course.ID.ID,
		Grade:        g.Grade,
		Semester:     g.Semester,
		AcademicYear: g.AcademicYear,
		ExamDate:     g.ExamDate,
		CreatedAt:    g.CreatedAt,
		UpdatedAt:    g.UpdatedAt,
		CourseDetails: CourseDetails{
			Code:    g.Course.Code,
			Name:    g.Course.Name,
			Credits: g.Course.Credits,
		},
	}
	if !g.Professor.ID.IsZero() || g.Professor.FirstName != "" {
		p := &GradeProfessorView{}
		p.User.FirstName = g.Professor.FirstName
		p.User.LastName = g.Professor.LastName
		view.CourseDetails.Professor = p
	}
	return view
}
