package models

// ExamSemester is the exam session a registration belongs to
type ExamSemester string

const (
	SemesterWinter ExamSemester = "winter"
	SemesterSummer ExamSemester = "summer"
)

// Label returns the session name shown to professors
func (s ExamSemester) Label() string {
	if s == SemesterWinter {
		return "Зимски"
	}
	return "Летен"
}

// RegistrationStatus is the workflow state of an exam registration.
// Pending is initial; Approved and Rejected are reachable only from Pending.
// Cancelling deletes the registration, so there is no cancelled state.
type RegistrationStatus string

const (
	StatusPending  RegistrationStatus = "pending"
	StatusApproved RegistrationStatus = "approved"
	StatusRejected RegistrationStatus = "rejected"
)

// ExamRegistration is a student's sign-up for a course exam. The name and
// code fields are snapshots taken at creation.
type ExamRegistration struct {
	ID            ObjectID           `json:"_id"`
	Student       Ref[StudentKind]   `json:"studentId"`
	StudentName   string             `json:"studentName"`
	StudentIndex  string             `json:"studentIndex"`
	ProfessorName string             `json:"professorName"`
	Course        Ref[CourseKind]    `json:"courseId"`
	CourseName    string             `json:"courseName"`
	CourseCode    string             `json:"courseCode"`
	Semester      ExamSemester       `json:"semester"`
	ExamDate      string             `json:"examDate"`
	Notes         string             `json:"notes"`
	Status        RegistrationStatus `json:"status"`
	CreatedAt     Date               `json:"createdAt"`
	UpdatedAt     Date               `json:"updatedAt"`
}

func (r ExamRegistration) EntityID() ObjectID { return r.ID }

// SameSlot reports whether two registrations target the same
// (student, course, semester) triple.
func (r ExamRegistration) SameSlot(student, course ObjectID, semester ExamSemester) bool {
	return r.Student.ID == student && r.Course.ID == course && r.Semester == semester
}
