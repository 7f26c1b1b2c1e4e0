package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/yigit/facultyhub/internal/app/models"
	"github.com/yigit/facultyhub/internal/app/repositories"
)

// Dangling is a reference that points at a record that no longer exists
type Dangling struct {
	Collection string `json:"collection"`
	ID         string `json:"id"`
	Field      string `json:"field"`
	Target     string `json:"target"`
}

// ReconcileReport lists the inconsistencies left behind by interrupted
// cross-collection writes
type ReconcileReport struct {
	OrphanUsers []string   `json:"orphanUsers"`
	Dangling    []Dangling `json:"dangling"`
	Removed     int        `json:"removed"`
}

// Clean reports whether nothing was found
func (r *ReconcileReport) Clean() bool {
	return len(r.OrphanUsers) == 0 && len(r.Dangling) == 0
}

// ReconcileService finds records whose partner in another collection is
// missing
type ReconcileService struct {
	repos  *repositories.Repositories
	logger zerolog.Logger
}

// NewReconcileService creates a new ReconcileService
func NewReconcileService(repos *repositories.Repositories, logger zerolog.Logger) *ReconcileService {
	return &ReconcileService{repos: repos, logger: logger}
}

type idSet map[models.ObjectID]bool

func idsOf[T models.Entity](records []T) idSet {
	set := make(idSet, len(records))
	for _, r := range records {
		set[r.EntityID()] = true
	}
	return set
}

// Scan loads every collection and reports orphan users and dangling
// references. Nothing is written.
func (s *ReconcileService) Scan(ctx context.Context) (*ReconcileReport, error) {
	users, err := s.repos.UserRepository.List(ctx)
	if err != nil {
		return nil, err
	}
	students, err := s.repos.StudentRepository.List(ctx, repositories.StudentFilter{})
	if err != nil {
		return nil, err
	}
	professors, err := s.repos.ProfessorRepository.List(ctx, repositories.ProfessorFilter{})
	if err != nil {
		return nil, err
	}
	courses, err := s.repos.CourseRepository.List(ctx, repositories.CourseFilter{})
	if err != nil {
		return nil, err
	}
	regs, err := s.repos.ExamRegistrationRepository.List(ctx)
	if err != nil {
		return nil, err
	}
	notifications, err := s.repos.NotificationRepository.List(ctx)
	if err != nil {
		return nil, err
	}

	userIDs := idsOf(users)
	studentIDs := idsOf(students)
	professorIDs := idsOf(professors)
	courseIDs := idsOf(courses)

	report := &ReconcileReport{OrphanUsers: []string{}, Dangling: []Dangling{}}
	check := func(collection string, id models.ObjectID, field string, target models.ObjectID, known idSet) {
		if target == "" || known[target] {
			return
		}
		report.Dangling = append(report.Dangling, Dangling{
			Collection: collection,
			ID:         id.String(),
			Field:      field,
			Target:     target.String(),
		})
	}

	owners := make(idSet, len(students)+len(professors))
	for _, st := range students {
		owners[st.User.ID] = true
		check("students", st.ID, "user", st.User.ID, userIDs)
	}
	for _, p := range professors {
		owners[p.User.ID] = true
		check("professors", p.ID, "user", p.User.ID, userIDs)
	}
	for _, u := range users {
		if (u.Role == models.RoleStudent || u.Role == models.RoleProfessor) && !owners[u.ID] {
			report.OrphanUsers = append(report.OrphanUsers, u.ID.String())
		}
	}
	for _, c := range courses {
		check("courses", c.ID, "professor", c.Professor.ID, professorIDs)
	}
	for _, r := range regs {
		check("examRegistrations", r.ID, "studentId", r.Student.ID, studentIDs)
		check("examRegistrations", r.ID, "courseId", r.Course.ID, courseIDs)
	}
	for _, n := range notifications {
		check("notifications", n.ID, "studentId", n.Student.ID, studentIDs)
		check("notifications", n.ID, "professorId", n.Professor.ID, professorIDs)
	}
	return report, nil
}

// Repair removes orphan users. Dangling references are reported only since
// there is no way to tell what they should point at.
func (s *ReconcileService) Repair(ctx context.Context) (*ReconcileReport, error) {
	report, err := s.Scan(ctx)
	if err != nil {
		return nil, err
	}
	if len(report.OrphanUsers) == 0 {
		return report, nil
	}
	ids := make([]models.ObjectID, 0, len(report.OrphanUsers))
	for _, id := range report.OrphanUsers {
		ids = append(ids, models.ObjectID(id))
	}
	removed, err := s.repos.UserRepository.DeleteMany(ctx, ids...)
	if err != nil {
		return nil, err
	}
	report.Removed = removed
	s.logger.Info().Int("removed", removed).Msg("Orphan users removed")
	return report, nil
}
