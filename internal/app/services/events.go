package services

import (
	"context"

	"github.com/yigit/facultyhub/internal/app/models"
)

// Event is something the grade ledger or the exam workflow reports after a
// successful write
type Event interface {
	eventName() string
}

// GradeRecorded is fired after a ledger entry was added or replaced
type GradeRecorded struct {
	Student   models.Student
	Course    models.Course
	Grader    models.User // user of the professor who graded
	Entry     models.Grade
	WasUpdate bool
}

func (GradeRecorded) eventName() string { return "grade_recorded" }

// ExamRegistrationCreated is fired after a pending registration was stored
type ExamRegistrationCreated struct {
	Registration models.ExamRegistration
	Course       models.Course
}

func (ExamRegistrationCreated) eventName() string { return "exam_registration_created" }

// Dispatcher consumes events. Dispatch never fails the caller.
type Dispatcher interface {
	Dispatch(ctx context.Context, event Event)
}

// Publisher pushes a message to the live connections of a recipient
type Publisher interface {
	Publish(recipient, msgType, id string, payload interface{}) bool
}
