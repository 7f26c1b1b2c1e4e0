package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/facultyhub/internal/app/models"
)

func TestGroupByDay(t *testing.T) {
	courses := []models.Course{
		{Code: "C", Schedule: models.Schedule{Day: models.Wednesday, StartTime: "14:00"}},
		{Code: "A", Schedule: models.Schedule{Day: models.Monday, StartTime: "12:00"}},
		{Code: "B", Schedule: models.Schedule{Day: models.Monday, StartTime: "08:00"}},
	}

	week := GroupByDay(courses)
	require.Len(t, week, len(models.Week))
	assert.Equal(t, models.Monday, week[0].Day)
	assert.Equal(t, models.Sunday, week[6].Day)

	monday := week.Day(models.Monday)
	require.Len(t, monday, 2)
	assert.Equal(t, "B", monday[0].(models.Course).Code)
	assert.Equal(t, "A", monday[1].(models.Course).Code)
	assert.Empty(t, week.Day(models.Tuesday))

	data, err := json.Marshal(week)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Tuesday":[]`)
}

func TestScheduleForUser(t *testing.T) {
	f := newFixture(t)
	f.addCourse(t, "CS105", "Оперативни системи", models.Monday, "08:00")
	other := f.addCourse(t, "MA101", "Математика", models.Friday, "09:00")
	_, err := f.repos.CourseRepository.Update(f.ctx, other.ID, func(c *models.Course) error {
		c.Year = 3
		return nil
	})
	require.NoError(t, err)

	schedule, err := f.svc.ScheduleService.ForUser(f.ctx, f.studentUser.ID)
	require.NoError(t, err)
	assert.Len(t, schedule.RawSchedule, 2)
	monday := schedule.Schedule.Day(models.Monday)
	require.Len(t, monday, 2)
	assert.Equal(t, "CS105", monday[0].(models.Course).Code)

	schedule, err = f.svc.ScheduleService.ForUser(f.ctx, f.profUser.ID)
	require.NoError(t, err)
	assert.Len(t, schedule.RawSchedule, 3)

	admin := f.addUser(t, "admin@faculty.edu", "Admin", "Admin", models.RoleAdmin)
	schedule, err = f.svc.ScheduleService.ForUser(f.ctx, admin.ID)
	require.NoError(t, err)
	assert.Empty(t, schedule.RawSchedule)

	room, err := f.svc.ScheduleService.ForRoom(f.ctx, "A1")
	require.NoError(t, err)
	assert.Len(t, room.RawSchedule, 3)

	dept, err := f.svc.ScheduleService.ForDepartment(f.ctx, "Computer Science", 3, 0)
	require.NoError(t, err)
	assert.Len(t, dept.RawSchedule, 1)
}
