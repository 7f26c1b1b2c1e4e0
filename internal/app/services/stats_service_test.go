package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/facultyhub/internal/app/models"
	"github.com/yigit/facultyhub/internal/app/models/dto"
)

func TestDashboard(t *testing.T) {
	f := newFixture(t)
	second := f.addCourse(t, "CS102", "Алгоритми", models.Tuesday, "08:00")

	_, err := f.svc.GradeService.RecordGrade(f.ctx, f.professor.ID, f.gradeRequest(f.course, 8))
	require.NoError(t, err)
	_, err = f.svc.GradeService.RecordGrade(f.ctx, f.professor.ID, f.gradeRequest(second, 9))
	require.NoError(t, err)
	_, err = f.svc.ExamRegistrationService.Create(f.ctx, f.student.ID, f.registrationRequest(models.SemesterWinter))
	require.NoError(t, err)

	stats, err := f.svc.StatsService.Dashboard(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, dto.DashboardStats{
		TotalStudents:   1,
		TotalProfessors: 1,
		ActiveCourses:   2,
		AverageGrade:    8.5,
		TotalGrades:     2,
		PendingExams:    1,
	}, *stats)
}

func TestDashboardEmptyLedgers(t *testing.T) {
	f := newFixture(t)

	stats, err := f.svc.StatsService.Dashboard(f.ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.AverageGrade)
	assert.Zero(t, stats.TotalGrades)
}

func TestActivities(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.GradeService.RecordGrade(f.ctx, f.professor.ID, f.gradeRequest(f.course, 8))
	require.NoError(t, err)
	_, err = f.svc.ExamRegistrationService.Create(f.ctx, f.student.ID, f.registrationRequest(models.SemesterWinter))
	require.NoError(t, err)

	activities, err := f.svc.StatsService.Activities(f.ctx, 0)
	require.NoError(t, err)
	require.Len(t, activities, 2)
	assert.False(t, activities[0].Timestamp.Before(activities[1].Timestamp))

	activities, err = f.svc.StatsService.Activities(f.ctx, 1)
	require.NoError(t, err)
	assert.Len(t, activities, 1)
}
