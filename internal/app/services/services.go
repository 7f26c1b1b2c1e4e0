package services

import (
	"github.com/rs/zerolog"
	"github.com/yigit/facultyhub/internal/app/join"
	"github.com/yigit/facultyhub/internal/app/repositories"
	"github.com/yigit/facultyhub/internal/pkg/auth"
)

// Services holds every service of the application
type Services struct {
	AuthService             *AuthService
	StudentService          *StudentService
	ProfessorService        ProfessorService
	CourseService           *CourseService
	GradeService            *GradeService
	ExamRegistrationService *ExamRegistrationService
	NotificationService     *NotificationService
	ScheduleService         *ScheduleService
	StatsService            *StatsService
	ReconcileService        *ReconcileService
}

// NewServices wires the services on top of repos. publisher may be nil when
// no live push channel is running, as in the CLI.
func NewServices(
	repos *repositories.Repositories,
	joiner *join.Engine,
	jwtService *auth.JWTService,
	publisher Publisher,
	logger zerolog.Logger,
) *Services {
	notifications := NewNotificationService(
		repos.NotificationRepository,
		repos.StudentRepository,
		repos.ProfessorRepository,
		repos.UserRepository,
		publisher,
		logger.With().Str("service", "notification").Logger(),
	)

	return &Services{
		AuthService: NewAuthService(
			repos.UserRepository,
			repos.StudentRepository,
			repos.ProfessorRepository,
			jwtService,
			logger.With().Str("service", "auth").Logger(),
		),
		StudentService: NewStudentService(
			repos.StudentRepository,
			repos.UserRepository,
			joiner,
			logger.With().Str("service", "student").Logger(),
		),
		ProfessorService: NewProfessorService(
			repos.ProfessorRepository,
			repos.UserRepository,
			joiner,
			logger.With().Str("service", "professor").Logger(),
		),
		CourseService: NewCourseService(
			repos.CourseRepository,
			repos.ProfessorRepository,
			joiner,
			logger.With().Str("service", "course").Logger(),
		),
		GradeService: NewGradeService(
			repos.StudentRepository,
			repos.CourseRepository,
			repos.ProfessorRepository,
			repos.UserRepository,
			notifications,
			logger.With().Str("service", "grade").Logger(),
		),
		ExamRegistrationService: NewExamRegistrationService(
			repos.ExamRegistrationRepository,
			repos.StudentRepository,
			repos.CourseRepository,
			repos.ProfessorRepository,
			repos.UserRepository,
			joiner,
			notifications,
			logger.With().Str("service", "examRegistration").Logger(),
		),
		NotificationService: notifications,
		ScheduleService: NewScheduleService(
			repos.CourseRepository,
			repos.StudentRepository,
			repos.ProfessorRepository,
			repos.UserRepository,
			logger.With().Str("service", "schedule").Logger(),
		),
		StatsService:     NewStatsService(repos, logger.With().Str("service", "stats").Logger()),
		ReconcileService: NewReconcileService(repos, logger.With().Str("service", "reconcile").Logger()),
	}
}
