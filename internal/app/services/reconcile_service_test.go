package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/facultyhub/internal/app/models"
	"github.com/yigit/facultyhub/internal/pkg/apperrors"
)

func TestReconcileCleanStore(t *testing.T) {
	f := newFixture(t)

	report, err := f.svc.ReconcileService.Scan(f.ctx)
	require.NoError(t, err)
	assert.True(t, report.Clean())
}

func TestReconcileFindsAndRepairsOrphans(t *testing.T) {
	f := newFixture(t)
	orphan := f.addUser(t, "orphan@faculty.edu", "Без", "Профил", models.RoleStudent)
	f.addUser(t, "admin@faculty.edu", "Admin", "Admin", models.RoleAdmin)

	_, err := f.svc.ExamRegistrationService.Create(f.ctx, f.student.ID, f.registrationRequest(models.SemesterWinter))
	require.NoError(t, err)
	_, err = f.repos.ProfessorRepository.Delete(f.ctx, f.professor.ID)
	require.NoError(t, err)

	report, err := f.svc.ReconcileService.Scan(f.ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{orphan.ID.String(), f.profUser.ID.String()}, report.OrphanUsers)

	var fields []string
	for _, d := range report.Dangling {
		assert.Equal(t, f.professor.ID.String(), d.Target)
		fields = append(fields, d.Collection+"."+d.Field)
	}
	assert.ElementsMatch(t, []string{"courses.professor", "notifications.professorId"}, fields)

	repaired, err := f.svc.ReconcileService.Repair(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, repaired.Removed)

	_, err = f.repos.UserRepository.GetByID(f.ctx, orphan.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = f.repos.UserRepository.GetByEmail(f.ctx, "admin@faculty.edu")
	assert.NoError(t, err)

	// dangling references are reported, never rewritten
	report, err = f.svc.ReconcileService.Scan(f.ctx)
	require.NoError(t, err)
	assert.Empty(t, report.OrphanUsers)
	assert.Len(t, report.Dangling, 2)
}
