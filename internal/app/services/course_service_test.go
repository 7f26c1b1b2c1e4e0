package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/facultyhub/internal/app/join"
	"github.com/yigit/facultyhub/internal/app/models"
	"github.com/yigit/facultyhub/internal/app/models/dto"
	"github.com/yigit/facultyhub/internal/pkg/apperrors"
	"github.com/yigit/facultyhub/internal/store"
)

func (f *fixture) courseRequest(code string, prerequisites ...string) *dto.CreateCourseRequest {
	return &dto.CreateCourseRequest{
		Code:        code,
		Name:        "Структури на податоци",
		Credits:     6,
		Department:  "Computer Science",
		Year:        1,
		Semester:    2,
		ProfessorID: f.professor.ID.String(),
		Schedule: dto.ScheduleRequest{
			Day:       models.Friday,
			StartTime: "12:00",
			EndTime:   "14:00",
			Room:      "B2",
		},
		Prerequisites: prerequisites,
	}
}

func TestCourseCreate(t *testing.T) {
	f := newFixture(t)
	courses := f.svc.CourseService

	view, err := courses.Create(f.ctx, f.courseRequest("CS201", f.course.ID.String(), f.course.ID.String()))
	require.NoError(t, err)
	assert.Equal(t, true, view["isActive"])
	assert.EqualValues(t, models.DefaultMaxStudents, view["maxStudents"])

	professor, ok := view["professor"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "P001", professor["professorId"])
	user, ok := professor["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Петар", user["firstName"])

	prereqs, ok := view["prerequisites"].([]any)
	require.True(t, ok)
	require.Len(t, prereqs, 1, "duplicates are dropped")
	assert.Equal(t, "CS101", prereqs[0].(map[string]any)["code"])

	_, err = courses.Create(f.ctx, f.courseRequest("CS201"))
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	_, err = courses.Create(f.ctx, f.courseRequest("CS202", "ffffffffffffffffffffffff"))
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	req := f.courseRequest("CS203")
	req.ProfessorID = "ffffffffffffffffffffffff"
	_, err = courses.Create(f.ctx, req)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	req = f.courseRequest("CS204")
	req.Schedule.StartTime = "25:00"
	_, err = courses.Create(f.ctx, req)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestCourseUpdateMergesSchedule(t *testing.T) {
	f := newFixture(t)
	courses := f.svc.CourseService

	room := "C3"
	view, err := courses.Update(f.ctx, f.course.ID, &dto.UpdateCourseRequest{
		Schedule: &dto.SchedulePatch{Room: &room},
	})
	require.NoError(t, err)
	schedule, ok := view["schedule"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "C3", schedule["room"])
	assert.Equal(t, "10:00", schedule["startTime"])
	assert.Equal(t, string(models.Monday), schedule["day"])

	self := []string{f.course.ID.String()}
	_, err = courses.Update(f.ctx, f.course.ID, &dto.UpdateCourseRequest{Prerequisites: &self})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = courses.Update(f.ctx, "ffffffffffffffffffffffff", &dto.UpdateCourseRequest{Schedule: &dto.SchedulePatch{Room: &room}})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCourseDeletedPrerequisiteIsAbsent(t *testing.T) {
	f := newFixture(t)
	courses := f.svc.CourseService

	view, err := courses.Create(f.ctx, f.courseRequest("CS201", f.course.ID.String()))
	require.NoError(t, err)
	id := models.ObjectID(store.DocumentID(view["_id"]))

	require.NoError(t, courses.Delete(f.ctx, f.course.ID))

	view, err = courses.Get(f.ctx, id)
	require.NoError(t, err)
	prereqs := view["prerequisites"].([]any)
	require.Len(t, prereqs, 1)
	assert.True(t, join.IsAbsent(prereqs[0]))

	list, info, err := courses.List(f.ctx, dto.CourseFilterRequest{}, 0, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, 1, info.TotalItems)
}

func TestCourseListActiveOnly(t *testing.T) {
	f := newFixture(t)
	courses := f.svc.CourseService

	off := false
	_, err := courses.Update(f.ctx, f.course.ID, &dto.UpdateCourseRequest{IsActive: &off})
	require.NoError(t, err)
	_, err = courses.Create(f.ctx, f.courseRequest("CS201"))
	require.NoError(t, err)

	list, _, err := courses.List(f.ctx, dto.CourseFilterRequest{Professor: f.professor.ID.String()}, 1, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "CS201", list[0]["code"])

	taught, err := courses.ByProfessor(f.ctx, f.professor.ID)
	require.NoError(t, err)
	assert.Len(t, taught, 1)
}
