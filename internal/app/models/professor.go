package models

// ProfessorStatus is the employment status of a professor
type ProfessorStatus string

const (
	ProfessorActive   ProfessorStatus = "active"
	ProfessorInactive ProfessorStatus = "inactive"
	ProfessorRetired  ProfessorStatus = "retired"
)

// Academic titles accepted for professors
const (
	TitleAssistantProfessor = "Assistant Professor"
	TitleAssociateProfessor = "Associate Professor"
	TitleProfessor          = "Professor"
	TitleLecturer           = "Lecturer"
)

// Professor is the teaching profile of a user
type Professor struct {
	ID             ObjectID        `json:"_id"`
	User           Ref[UserKind]   `json:"user"`
	ProfessorID    string          `json:"professorId"`
	Department     string          `json:"department"`
	Title          string          `json:"title"`
	Specialization string          `json:"specialization"`
	Status         ProfessorStatus `json:"status"`
	CreatedAt      Date            `json:"createdAt"`
	UpdatedAt      Date            `json:"updatedAt"`
}

func (p Professor) EntityID() ObjectID { return p.ID }
