package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/facultyhub/internal/app/join"
	"github.com/yigit/facultyhub/internal/app/models"
	"github.com/yigit/facultyhub/internal/app/models/dto"
	"github.com/yigit/facultyhub/internal/app/repositories"
	"github.com/yigit/facultyhub/internal/pkg/apperrors"
	"github.com/yigit/facultyhub/internal/pkg/validation"
)

// ExamRegistrationService runs the exam registration workflow:
// pending -> approved | rejected, with cancellation deleting a pending
// registration
type ExamRegistrationService struct {
	registrationRepo *repositories.ExamRegistrationRepository
	studentRepo      *repositories.StudentRepository
	courseRepo       *repositories.CourseRepository
	professorRepo    *repositories.ProfessorRepository
	userRepo         *repositories.UserRepository
	joiner           *join.Engine
	dispatcher       Dispatcher
	logger           zerolog.Logger
}

// NewExamRegistrationService creates a new ExamRegistrationService
func NewExamRegistrationService(
	registrationRepo *repositories.ExamRegistrationRepository,
	studentRepo *repositories.StudentRepository,
	courseRepo *repositories.CourseRepository,
	professorRepo *repositories.ProfessorRepository,
	userRepo *repositories.UserRepository,
	joiner *join.Engine,
	dispatcher Dispatcher,
	logger zerolog.Logger,
) *ExamRegistrationService {
	return &ExamRegistrationService{
		registrationRepo: registrationRepo,
		studentRepo:      studentRepo,
		courseRepo:       courseRepo,
		professorRepo:    professorRepo,
		userRepo:         userRepo,
		joiner:           joiner,
		dispatcher:       dispatcher,
		logger:           logger,
	}
}

func (s *ExamRegistrationService) validateCreateRequest(req *dto.CreateExamRegistrationRequest) error {
	if err := validation.Struct(req); err != nil {
		return err
	}
	if !validation.NewStringValidation(req.ProfessorName).Validate() {
		return apperrors.Validation("professorName", "professorName is required")
	}
	return nil
}

// studentOf returns the student profile owned by a user
func (s *ExamRegistrationService) studentOf(ctx context.Context, userID models.ObjectID) (*models.Student, error) {
	student, err := s.studentRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return student, nil
}

// CreateAs registers the student profile owned by userID
func (s *ExamRegistrationService) CreateAs(ctx context.Context, userID models.ObjectID, req *dto.CreateExamRegistrationRequest) (*models.ExamRegistration, error) {
	student, err := s.studentOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.Create(ctx, student.ID, req)
}

// Create stores a pending registration. It fails with a conflict while
// another pending registration exists for the same student, course and
// semester. The course's professor is notified afterwards.
func (s *ExamRegistrationService) Create(ctx context.Context, studentID models.ObjectID, req *dto.CreateExamRegistrationRequest) (*models.ExamRegistration, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, err
	}

	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(ctx, student.User.ID)
	if err != nil {
		return nil, err
	}
	course, err := s.courseRepo.GetByID(ctx, models.ObjectID(req.CourseID))
	if err != nil {
		return nil, err
	}

	reg := &models.ExamRegistration{
		Student:       models.RefTo[models.StudentKind](student.ID),
		StudentName:   user.FullName(),
		StudentIndex:  student.StudentID,
		ProfessorName: strings.TrimSpace(req.ProfessorName),
		Course:        models.RefTo[models.CourseKind](course.ID),
		CourseName:    course.Name,
		CourseCode:    course.Code,
		Semester:      req.Semester,
		ExamDate:      req.ExamDate,
		Notes:         req.Notes,
	}
	if err := s.registrationRepo.CreatePending(ctx, reg); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("registrationId", reg.ID.String()).
		Str("studentId", student.StudentID).
		Str("course", course.Code).
		Str("semester", string(reg.Semester)).
		Msg("Exam registration created")

	s.dispatcher.Dispatch(ctx, ExamRegistrationCreated{Registration: *reg, Course: *course})
	return reg, nil
}

// CancelAs cancels a registration of the student profile owned by userID
func (s *ExamRegistrationService) CancelAs(ctx context.Context, userID, registrationID models.ObjectID) error {
	student, err := s.studentOf(ctx, userID)
	if err != nil {
		return err
	}
	return s.Cancel(ctx, registrationID, student.ID)
}

// Cancel deletes a pending registration owned by studentID. Someone else's
// registration is not found; a decided one is an invalid state and stays.
func (s *ExamRegistrationService) Cancel(ctx context.Context, registrationID, studentID models.ObjectID) error {
	reg, err := s.registrationRepo.DeleteOwnedPending(ctx, registrationID, studentID)
	if err != nil {
		return err
	}
	s.logger.Info().
		Str("registrationId", reg.ID.String()).
		Str("course", reg.CourseCode).
		Msg("Exam registration cancelled")
	return nil
}

// SetStatus approves or rejects a pending registration
func (s *ExamRegistrationService) SetStatus(ctx context.Context, registrationID models.ObjectID, status models.RegistrationStatus) (*models.ExamRegistration, error) {
	if status != models.StatusApproved && status != models.StatusRejected {
		return nil, apperrors.Validation("status", "status must be one of: approved rejected")
	}
	reg, err := s.registrationRepo.Transition(ctx, registrationID, status)
	if err != nil {
		return nil, err
	}
	s.logger.Info().
		Str("registrationId", reg.ID.String()).
		Str("status", string(status)).
		Msg("Exam registration decided")
	return reg, nil
}

// ListForStudent returns a student's registrations
func (s *ExamRegistrationService) ListForStudent(ctx context.Context, studentID models.ObjectID) ([]models.ExamRegistration, error) {
	return s.registrationRepo.ListByStudent(ctx, studentID)
}

// ListForStudentUser returns the registrations of the student profile owned
// by userID
func (s *ExamRegistrationService) ListForStudentUser(ctx context.Context, userID models.ObjectID) ([]models.ExamRegistration, error) {
	student, err := s.studentOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.ListForStudent(ctx, student.ID)
}

// ListForProfessor returns the registrations for the courses a professor
// teaches, with student and course populated
func (s *ExamRegistrationService) ListForProfessor(ctx context.Context, professorID models.ObjectID) ([]join.View, error) {
	courses, err := s.courseRepo.List(ctx, repositories.CourseFilter{Professor: professorID})
	if err != nil {
		return nil, err
	}
	ids := make([]models.ObjectID, 0, len(courses))
	for _, c := range courses {
		ids = append(ids, c.ID)
	}
	regs, err := s.registrationRepo.ListByCourses(ctx, ids)
	if err != nil {
		return nil, err
	}
	return join.PopulateAll(ctx, s.joiner, regs, join.ExamRegistrationView)
}

// ListForProfessorUser is ListForProfessor for the professor profile owned
// by userID
func (s *ExamRegistrationService) ListForProfessorUser(ctx context.Context, userID models.ObjectID) ([]join.View, error) {
	professor, err := s.professorRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.ListForProfessor(ctx, professor.ID)
}

// ListAll returns every registration populated, for administrators
func (s *ExamRegistrationService) ListAll(ctx context.Context) ([]join.View, error) {
	regs, err := s.registrationRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return join.PopulateAll(ctx, s.joiner, regs, join.ExamRegistrationView)
}

// AvailableCourses lists the courses students can register exams for
func (s *ExamRegistrationService) AvailableCourses(ctx context.Context) ([]models.Course, error) {
	return s.courseRepo.List(ctx, repositories.CourseFilter{ActiveOnly: true})
}

// Professors lists every professor with name and contact for the
// registration form
func (s *ExamRegistrationService) Professors(ctx context.Context) ([]dto.ProfessorDirectoryEntry, error) {
	professors, err := s.professorRepo.List(ctx, repositories.ProfessorFilter{})
	if err != nil {
		return nil, err
	}
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[models.ObjectID]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	entries := make([]dto.ProfessorDirectoryEntry, 0, len(professors))
	for _, p := range professors {
		entry := dto.ProfessorDirectoryEntry{
			ID:         p.ID,
			FirstName:  "Unknown",
			LastName:   "Unknown",
			Department: p.Department,
		}
		if u, ok := byID[p.User.ID]; ok {
			entry.FirstName, entry.LastName, entry.Email = u.FirstName, u.LastName, u.Email
		}
		if entry.Department == "" {
			entry.Department = "Unknown"
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
