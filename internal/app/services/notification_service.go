package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/facultyhub/internal/app/models"
	"github.com/yigit/facultyhub/internal/app/repositories"
	"github.com/yigit/facultyhub/internal/pkg/apperrors"
	"github.com/yigit/facultyhub/internal/pkg/validation"
	"github.com/yigit/facultyhub/internal/pkg/websocket"
)

// Notification copy shown in the web client
const (
	titleGradeNew           = "Нова оцена"
	titleGradeUpdated       = "Оцената е ажурирана"
	titleExamRegistration   = "Нова пријава за испит"
	gradeMessageFormat      = "Професорот %s %s оцена %d по предметот %s"
	examRegistrationMessage = "Студентот %s (%s) се пријави за испит по предметот %s (%s)"
)

// NotificationService turns ledger and workflow events into stored
// notifications and serves them back to their recipients
type NotificationService struct {
	notificationRepo *repositories.NotificationRepository
	studentRepo      *repositories.StudentRepository
	professorRepo    *repositories.ProfessorRepository
	userRepo         *repositories.UserRepository
	publisher        Publisher
	logger           zerolog.Logger
}

// NewNotificationService creates a new NotificationService. publisher may be
// nil, in which case nothing is pushed live.
func NewNotificationService(
	notificationRepo *repositories.NotificationRepository,
	studentRepo *repositories.StudentRepository,
	professorRepo *repositories.ProfessorRepository,
	userRepo *repositories.UserRepository,
	publisher Publisher,
	logger zerolog.Logger,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		studentRepo:      studentRepo,
		professorRepo:    professorRepo,
		userRepo:         userRepo,
		publisher:        publisher,
		logger:           logger,
	}
}

// Dispatch stores the notification for event. Failures are logged and
// never reach the caller.
func (s *NotificationService) Dispatch(ctx context.Context, event Event) {
	var (
		n   *models.Notification
		err error
	)
	switch e := event.(type) {
	case GradeRecorded:
		n, err = s.gradeNotification(ctx, e)
	case ExamRegistrationCreated:
		n, err = s.examRegistrationNotification(ctx, e)
	default:
		s.logger.Warn().Str("event", fmt.Sprintf("%T", event)).Msg("Ignoring unknown event")
		return
	}
	if err != nil {
		s.logger.Error().Err(err).Str("event", event.eventName()).Msg("Could not build notification")
		return
	}

	if err := s.notificationRepo.Append(ctx, n); err != nil {
		s.logger.Error().Err(err).Str("event", event.eventName()).Msg("Could not store notification")
		return
	}

	s.logger.Info().
		Str("notificationId", n.ID.String()).
		Str("type", string(n.Type())).
		Str("recipient", n.Recipient().String()).
		Msg(n.Message)

	if s.publisher != nil {
		s.publisher.Publish(n.Recipient().String(), websocket.TypeNotification, n.ID.String(), n)
	}
}

func (s *NotificationService) gradeNotification(ctx context.Context, e GradeRecorded) (*models.Notification, error) {
	professor, err := s.professorRepo.GetByID(ctx, e.Course.Professor.ID)
	if err != nil {
		return nil, fmt.Errorf("resolving professor of course %s: %w", e.Course.Code, err)
	}

	title, verb := titleGradeNew, "додаде"
	if e.WasUpdate {
		title, verb = titleGradeUpdated, "ажурира"
	}
	grader := e.Grader.FullName()

	return &models.Notification{
		Student:   models.RefTo[models.StudentKind](e.Student.ID),
		Professor: models.RefTo[models.ProfessorKind](professor.ID),
		Title:     title,
		Message:   fmt.Sprintf(gradeMessageFormat, grader, verb, e.Entry.Grade, e.Course.Name),
		Payload: models.GradeNotice{
			Course:        models.RefTo[models.CourseKind](e.Course.ID),
			CourseName:    e.Course.Name,
			Grade:         e.Entry.Grade,
			ProfessorName: grader,
		},
	}, nil
}

func (s *NotificationService) examRegistrationNotification(ctx context.Context, e ExamRegistrationCreated) (*models.Notification, error) {
	professor, err := s.professorRepo.GetByID(ctx, e.Course.Professor.ID)
	if err != nil {
		return nil, fmt.Errorf("resolving professor of course %s: %w", e.Course.Code, err)
	}
	if _, err := s.userRepo.GetByID(ctx, professor.User.ID); err != nil {
		return nil, fmt.Errorf("resolving user of professor %s: %w", professor.ProfessorID, err)
	}

	reg := e.Registration
	return &models.Notification{
		Student:   reg.Student,
		Professor: models.RefTo[models.ProfessorKind](professor.ID),
		Title:     titleExamRegistration,
		Message:   fmt.Sprintf(examRegistrationMessage, reg.StudentName, reg.StudentIndex, e.Course.Name, e.Course.Code),
		Payload: models.ExamRegistrationNotice{
			Course:       models.RefTo[models.CourseKind](e.Course.ID),
			CourseName:   e.Course.Name,
			StudentName:  reg.StudentName,
			StudentIndex: reg.StudentIndex,
			Semester:     reg.Semester.Label(),
			ExamDate:     reg.ExamDate,
		},
	}, nil
}

// ListUnread returns a student's unread grade notifications
func (s *NotificationService) ListUnread(ctx context.Context, studentID models.ObjectID) ([]models.Notification, error) {
	return s.notificationRepo.ListFor(ctx, studentID, models.NotificationGrade, true)
}

// ListForRecipient returns every notification addressed to a student or
// professor profile
func (s *NotificationService) ListForRecipient(ctx context.Context, recipient models.ObjectID, unreadOnly bool) ([]models.Notification, error) {
	return s.notificationRepo.ListFor(ctx, recipient, "", unreadOnly)
}

// MarkRead flags a notification read regardless of its recipient
func (s *NotificationService) MarkRead(ctx context.Context, id models.ObjectID) (*models.Notification, error) {
	return s.notificationRepo.MarkRead(ctx, id)
}

// MarkReadAs flags a notification read if it is addressed to recipient.
// Someone else's notification is reported as not found.
func (s *NotificationService) MarkReadAs(ctx context.Context, id, recipient models.ObjectID) (*models.Notification, error) {
	n, err := s.notificationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n.Recipient() != recipient {
		return nil, apperrors.NotFound("notification", id.String())
	}
	return s.notificationRepo.MarkRead(ctx, id)
}

// MarkReadFor is MarkReadAs for string ids coming off a websocket
func (s *NotificationService) MarkReadFor(ctx context.Context, notificationID, recipient string) error {
	if !validation.CompiledPatterns.ObjectID.MatchString(notificationID) {
		return apperrors.Validation("id", "id must be a 24 character hex id")
	}
	_, err := s.MarkReadAs(ctx, models.ObjectID(notificationID), models.ObjectID(recipient))
	return err
}

// RecipientOf returns the profile id notifications for a user are
// addressed to: the student profile for students, the professor profile
// for professors
func (s *NotificationService) RecipientOf(ctx context.Context, userID models.ObjectID, role models.Role) (models.ObjectID, error) {
	switch role {
	case models.RoleStudent:
		student, err := s.studentRepo.GetByUser(ctx, userID)
		if err != nil {
			return "", err
		}
		return student.ID, nil
	case models.RoleProfessor:
		professor, err := s.professorRepo.GetByUser(ctx, userID)
		if err != nil {
			return "", err
		}
		return professor.ID, nil
	default:
		return "", apperrors.Forbidden("only students and professors receive notifications")
	}
}

// RecipientFor is RecipientOf for the websocket handler
func (s *NotificationService) RecipientFor(ctx context.Context, userID, role string) (string, error) {
	id, err := s.RecipientOf(ctx, models.ObjectID(userID), models.Role(role))
	return id.String(), err
}
