package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"
	"github.com/yigit/facultyhub/internal/app/models"
	"github.com/yigit/facultyhub/internal/app/models/dto"
	"github.com/yigit/facultyhub/internal/app/repositories"
)

// DefaultActivityLimit is how many entries the activity feed returns when
// no limit is given
const DefaultActivityLimit = 10

// StatsService computes dashboard figures
type StatsService struct {
	studentRepo      *repositories.StudentRepository
	professorRepo    *repositories.ProfessorRepository
	courseRepo       *repositories.CourseRepository
	registrationRepo *repositories.ExamRegistrationRepository
	notificationRepo *repositories.NotificationRepository
	logger           zerolog.Logger
}

// NewStatsService creates a new StatsService
func NewStatsService(repos *repositories.Repositories, logger zerolog.Logger) *StatsService {
	return &StatsService{
		studentRepo:      repos.StudentRepository,
		professorRepo:    repos.ProfessorRepository,
		courseRepo:       repos.CourseRepository,
		registrationRepo: repos.ExamRegistrationRepository,
		notificationRepo: repos.NotificationRepository,
		logger:           logger,
	}
}

// Dashboard counts active students, professors and courses and averages
// every grade in every ledger
func (s *StatsService) Dashboard(ctx context.Context) (*dto.DashboardStats, error) {
	students, err := s.studentRepo.List(ctx, repositories.StudentFilter{})
	if err != nil {
		return nil, err
	}
	professors, err := s.professorRepo.List(ctx, repositories.ProfessorFilter{Status: models.ProfessorActive})
	if err != nil {
		return nil, err
	}
	courses, err := s.courseRepo.List(ctx, repositories.CourseFilter{ActiveOnly: true})
	if err != nil {
		return nil, err
	}
	regs, err := s.registrationRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	stats := &dto.DashboardStats{
		TotalProfessors: len(professors),
		ActiveCourses:   len(courses),
	}
	sum := 0
	for _, st := range students {
		if st.Status == models.StudentActive {
			stats.TotalStudents++
		}
		for _, g := range st.Grades {
			sum += g.Grade
			stats.TotalGrades++
		}
	}
	if stats.TotalGrades > 0 {
		stats.AverageGrade = float64(sum) / float64(stats.TotalGrades)
	}
	for _, r := range regs {
		if r.Status == models.StatusPending {
			stats.PendingExams++
		}
	}
	return stats, nil
}

// Activities returns the most recent grade notices and exam registrations,
// newest first
func (s *StatsService) Activities(ctx context.Context, limit int) ([]dto.Activity, error) {
	if limit <= 0 {
		limit = DefaultActivityLimit
	}
	notifications, err := s.notificationRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	regs, err := s.registrationRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	activities := make([]dto.Activity, 0, len(notifications)+len(regs))
	for _, n := range notifications {
		if n.Type() != models.NotificationGrade {
			continue
		}
		activities = append(activities, dto.Activity{
			ID:        n.ID.String(),
			Type:      "grade_submitted",
			Message:   n.Message,
			Timestamp: n.CreatedAt.Time,
		})
	}
	for _, r := range regs {
		activities = append(activities, dto.Activity{
			ID:        r.ID.String(),
			Type:      "exam_registration",
			Message:   fmt.Sprintf("%s (%s): %s", r.StudentName, r.StudentIndex, r.CourseName),
			Timestamp: r.CreatedAt.Time,
		})
	}

	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].Timestamp.After(activities[j].Timestamp)
	})
	if len(activities) > limit {
		activities = activities[:limit]
	}
	return activities, nil
}
