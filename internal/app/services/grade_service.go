package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/facultyhub/internal/app/models"
	"github.com/yigit/facultyhub/internal/app/models/dto"
	"github.com/yigit/facultyhub/internal/app/repositories"
	"github.com/yigit/facultyhub/internal/pkg/apperrors"
	"github.com/yigit/facultyhub/internal/pkg/validation"
)

// GradeService maintains the grade ledger embedded in each student
type GradeService struct {
	studentRepo   *repositories.StudentRepository
	courseRepo    *repositories.CourseRepository
	professorRepo *repositories.ProfessorRepository
	userRepo      *repositories.UserRepository
	dispatcher    Dispatcher
	logger        zerolog.Logger
}

// NewGradeService creates a new GradeService
func NewGradeService(
	studentRepo *repositories.StudentRepository,
	courseRepo *repositories.CourseRepository,
	professorRepo *repositories.ProfessorRepository,
	userRepo *repositories.UserRepository,
	dispatcher Dispatcher,
	logger zerolog.Logger,
) *GradeService {
	return &GradeService{
		studentRepo:   studentRepo,
		courseRepo:    courseRepo,
		professorRepo: professorRepo,
		userRepo:      userRepo,
		dispatcher:    dispatcher,
		logger:        logger,
	}
}

// validateGradeRequest checks the ranges first so their messages win over
// the generic binding messages
func (s *GradeService) validateGradeRequest(req *dto.RecordGradeRequest) error {
	if !validation.NewNumericValidation(req.Grade).WithMin(5).WithMax(10).Validate() {
		return apperrors.Validation("grade", "grade must be an integer between 5 and 10")
	}
	if !validation.NewNumericValidation(req.Semester).WithMin(1).WithMax(10).Validate() {
		return apperrors.Validation("semester", "semester must be an integer between 1 and 10")
	}
	return validation.Struct(req)
}

// RecordGradeAs records a grade on behalf of the professor profile owned by
// userID
func (s *GradeService) RecordGradeAs(ctx context.Context, userID models.ObjectID, req *dto.RecordGradeRequest) (*dto.GradeResult, error) {
	professor, err := s.professorRepo.GetByUser(ctx, userID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Forbidden("professor profile not found")
		}
		return nil, err
	}
	return s.RecordGrade(ctx, professor.ID, req)
}

// RecordGrade upserts the ledger entry for (course, academic year) in the
// student's ledger. An existing entry keeps its id and createdAt. The
// notification is dispatched only after the student was persisted.
func (s *GradeService) RecordGrade(ctx context.Context, professorID models.ObjectID, req *dto.RecordGradeRequest) (*dto.GradeResult, error) {
	if err := s.validateGradeRequest(req); err != nil {
		return nil, err
	}
	studentID := models.ObjectID(req.StudentID)
	courseID := models.ObjectID(req.CourseID)

	course, err := s.courseRepo.GetActive(ctx, courseID)
	if err != nil {
		return nil, err
	}
	professor, err := s.professorRepo.GetByID(ctx, professorID)
	if err != nil {
		return nil, err
	}
	grader, err := s.userRepo.GetByID(ctx, professor.User.ID)
	if err != nil {
		return nil, err
	}
	if course.Professor.ID != professor.ID {
		s.logger.Warn().
			Str("courseId", course.ID.String()).
			Str("professorId", professor.ID.String()).
			Msg("Grade recorded by a professor who does not teach the course")
	}

	examDate := req.ExamDate
	if examDate == "" {
		examDate = models.Now().Format(time.DateOnly)
	}

	var result dto.GradeResult
	student, err := s.studentRepo.Update(ctx, studentID, func(st *models.Student) error {
		now := models.DateNow()
		entry := models.Grade{
			Course: models.GradeCourse{
				ID:      models.RefTo[models.CourseKind](course.ID),
				Code:    course.Code,
				Name:    course.Name,
				Credits: course.Credits,
			},
			Professor: models.GradeProfessor{
				ID:        models.RefTo[models.ProfessorKind](professor.ID),
				FirstName: grader.FirstName,
				LastName:  grader.LastName,
			},
			Grade:        req.Grade,
			ExamDate:     examDate,
			Semester:     req.Semester,
			AcademicYear: req.AcademicYear,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		if i := st.FindGrade(course.ID, req.AcademicYear); i >= 0 {
			entry.ID = st.Grades[i].ID
			entry.CreatedAt = st.Grades[i].CreatedAt
			st.Grades[i] = entry
			result.WasUpdate = true
		} else {
			entry.ID = s.studentRepo.NextID()
			st.Grades = append(st.Grades, entry)
			result.WasUpdate = false
		}
		result.Entry = entry
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("studentId", student.StudentID).
		Str("course", course.Code).
		Int("grade", req.Grade).
		Bool("wasUpdate", result.WasUpdate).
		Msg("Grade recorded")

	s.dispatcher.Dispatch(ctx, GradeRecorded{
		Student:   *student,
		Course:    *course,
		Grader:    *grader,
		Entry:     result.Entry,
		WasUpdate: result.WasUpdate,
	})
	return &result, nil
}

// ListGrades returns a student's ledger in insertion order
func (s *GradeService) ListGrades(ctx context.Context, studentID models.ObjectID) ([]models.Grade, error) {
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student.Grades == nil {
		return []models.Grade{}, nil
	}
	return student.Grades, nil
}

// GradesForUser is the "my grades" listing of the student profile owned by
// userID
func (s *GradeService) GradesForUser(ctx context.Context, userID models.ObjectID) ([]dto.GradeView, error) {
	student, err := s.studentRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	views := make([]dto.GradeView, 0, len(student.Grades))
	for _, g := range student.Grades {
		views = append(views, dto.NewGradeView(g))
	}
	return views, nil
}
