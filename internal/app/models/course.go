package models

// DefaultMaxStudents applies when a course is created without a limit.
const DefaultMaxStudents = 50

// Course is a subject taught by one professor.
type Course struct {
	ID            ObjectID           `json:"_id"`
	Code          string             `json:"code"`
	Name          string             `json:"name"`
	Description   string             `json:"description"`
	Credits       int                `json:"credits"`
	Department    string             `json:"department"`
	Year          int                `json:"year"`
	Semester      int                `json:"semester"`
	Professor     Ref[ProfessorKind] `json:"professor"`
	MaxStudents   int                `json:"maxStudents"`
	Schedule      Schedule           `json:"schedule"`
	IsActive      *bool              `json:"isActive,omitempty"` // absent means active
	Prerequisites []Ref[CourseKind]  `json:"prerequisites,omitempty"`
	CreatedAt     Date               `json:"createdAt"`
	UpdatedAt     Date               `json:"updatedAt"`
}

func (c Course) EntityID() ObjectID { return c.ID }

// Active reports whether the course is offered
func (c Course) Active() bool {
	return c.IsActive == nil || *c.IsActive
}

// Schedule is the weekly meeting slot of a course
type Schedule struct {
	Day       Weekday `json:"day"`
	StartTime string  `json:"startTime"`
	EndTime   string  `json:"endTime"`
	Room      string  `json:"room"`
}
