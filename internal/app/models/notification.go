package models

import (
	"encoding/json"
	"fmt"
)

// NotificationType discriminates the payload of a notification
type NotificationType string

const (
	NotificationGrade            NotificationType = "grade"
	NotificationExamRegistration NotificationType = "exam_registration"
)

// NotificationPayload is the type specific part of a notification.
// Implemented by GradeNotice and ExamRegistrationNotice.
type NotificationPayload interface {
	Type() NotificationType
}

// Notification is a message for a student (grade notices) or a professor
// (exam registration notices). On disk the payload fields sit next to the
// common fields and "type" says which payload they belong to.
type Notification struct {
	ID        ObjectID           `json:"_id"`
	Student   Ref[StudentKind]   `json:"studentId"`
	Professor Ref[ProfessorKind] `json:"professorId"`
	Title     string             `json:"title"`
	Message   string             `json:"message"`
	IsRead    bool               `json:"isRead"`
	ReadAt    *Date              `json:"readAt"`
	CreatedAt Date               `json:"createdAt"`

	Payload NotificationPayload `json:"-"`
}

func (n Notification) EntityID() ObjectID { return n.ID }

// Type returns the payload discriminator, or "" when there is no payload.
func (n Notification) Type() NotificationType {
	if n.Payload == nil {
		return ""
	}
	return n.Payload.Type()
}

// Recipient returns the profile id the notification is addressed to.
func (n Notification) Recipient() ObjectID {
	if n.Type() == NotificationExamRegistration {
		return n.Professor.ID
	}
	return n.Student.ID
}

// GradeNotice tells a student a grade was added or changed.
type GradeNotice struct {
	Course        Ref[CourseKind] `json:"courseId"`
	CourseName    string          `json:"courseName"`
	Grade         int             `json:"grade"`
	ProfessorName string          `json:"professorName"`
}

func (GradeNotice) Type() NotificationType { return NotificationGrade }

// ExamRegistrationNotice tells a professor a student signed up for an exam.
// Semester holds the display label of the session.
type ExamRegistrationNotice struct {
	Course       Ref[CourseKind] `json:"courseId"`
	CourseName   string          `json:"courseName"`
	StudentName  string          `json:"studentName"`
	StudentIndex string          `json:"studentIndex"`
	Semester     string          `json:"semester"`
	ExamDate     string          `json:"examDate"`
}

func (ExamRegistrationNotice) Type() NotificationType { return NotificationExamRegistration }

type notificationHeader Notification

func (n Notification) MarshalJSON() ([]byte, error) {
	switch p := n.Payload.(type) {
	case GradeNotice:
		return json.Marshal(struct {
			notificationHeader
			Type NotificationType `json:"type"`
			GradeNotice
		}{notificationHeader(n), p.Type(), p})
	case ExamRegistrationNotice:
		return json.Marshal(struct {
			notificationHeader
			Type NotificationType `json:"type"`
			ExamRegistrationNotice
		}{notificationHeader(n), p.Type(), p})
	case nil:
		return nil, fmt.Errorf("notification %s: missing payload", n.ID)
	default:
		return nil, fmt.Errorf("notification %s: unsupported payload %T", n.ID, p)
	}
}

func (n *Notification) UnmarshalJSON(b []byte) error {
	var head struct {
		notificationHeader
		Type NotificationType `json:"type"`
	}
	if err := json.Unmarshal(b, &head); err != nil {
		return err
	}
	var payload NotificationPayload
	switch head.Type {
	case NotificationGrade:
		var p GradeNotice
		if err := json.Unmarshal(b, &p); err != nil {
			return err
		}
		payload = p
	case NotificationExamRegistration:
		var p ExamRegistrationNotice
		if err := json.Unmarshal(b, &p); err != nil {
			return err
		}
		payload = p
	default:
		return fmt.Errorf("notification %s: unknown type %q", head.ID, head.Type)
	}
	*n = Notification(head.notificationHeader)
	n.Payload = payload
	return nil
}
