package models

// StudentStatus is the enrolment status of a student
type StudentStatus string

const (
	StudentActive    StudentStatus = "active"
	StudentInactive  StudentStatus = "inactive"
	StudentGraduated StudentStatus = "graduated"
	StudentSuspended StudentStatus = "suspended"
)

// Student is the academic profile of a user. Grades is the student's grade
// ledger: at most one entry per (course, academic year), kept in insertion
// order.
type Student struct {
	ID         ObjectID      `json:"_id"`
	User       Ref[UserKind] `json:"user"`
	StudentID  string        `json:"studentId"`
	Year       int           `json:"year"`
	Semester   int           `json:"semester"`
	Department string        `json:"department"`
	Major      string        `json:"major"`
	Status     StudentStatus `json:"status"`
	Grades     []Grade       `json:"grades,omitempty"`
	CreatedAt  Date          `json:"createdAt"`
	UpdatedAt  Date          `json:"updatedAt"`
}

func (s Student) EntityID() ObjectID { return s.ID }

// Grade is one ledger entry. Course and Professor are snapshots taken when
// the grade was recorded; Course.ID is the upsert key together with
// AcademicYear.
type Grade struct {
	ID           ObjectID       `json:"_id"`
	Course       GradeCourse    `json:"course"`
	Professor    GradeProfessor `json:"professor"`
	Grade        int            `json:"grade"`
	ExamDate     string         `json:"examDate"`
	Semester     int            `json:"semester"`
	AcademicYear string         `json:"academicYear"`
	CreatedAt    Date           `json:"createdAt"`
	UpdatedAt    Date           `json:"updatedAt"`
}

// GradeCourse is the course snapshot stored in a grade entry
type GradeCourse struct {
	ID      Ref[CourseKind] `json:"_id"`
	Code    string          `json:"code"`
	Name    string          `json:"name"`
	Credits int             `json:"credits"`
}

// GradeProfessor is the grading professor snapshot stored in a grade entry
type GradeProfessor struct {
	ID        Ref[ProfessorKind] `json:"_id"`
	FirstName string             `json:"firstName"`
	LastName  string             `json:"lastName"`
}

// FindGrade returns the index of the ledger entry for (course, year) or -1.
func (s *Student) FindGrade(course ObjectID, academicYear string) int {
	for i, g := range s.Grades {
		if g.Course.ID.ID == course && g.AcademicYear == academicYear {
			return i
		}
	}
	return -1
}
