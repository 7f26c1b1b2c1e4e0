package store

// Kind names one collection. Each kind is persisted as <kind>.json in the
// data directory.
type Kind string

const (
	Users             Kind = "users"
	Students          Kind = "students"
	Professors        Kind = "professors"
	Courses           Kind = "courses"
	ExamRegistrations Kind = "exam-registrations"
	Notifications     Kind = "notifications"
)

// AllKinds lists every collection the application persists.
var AllKinds = []Kind{Users, Students, Professors, Courses, ExamRegistrations, Notifications}

// FileName returns the backing file name of the collection.
func (k Kind) FileName() string {
	return string(k) + ".json"
}

func (k Kind) String() string {
	return string(k)
}
