package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/facultyhub/internal/app/models"
	"github.com/yigit/facultyhub/internal/app/models/dto"
	"github.com/yigit/facultyhub/internal/pkg/apperrors"
	"github.com/yigit/facultyhub/internal/store"
)

func TestPairedWrite(t *testing.T) {
	errSecond := errors.New("second failed")
	errUndo := errors.New("undo failed")
	orphans := func() map[string][]string { return map[string][]string{"users": {"u1"}} }
	ok := func() error { return nil }

	t.Run("both succeed", func(t *testing.T) {
		undone := false
		err := pairedWrite("op", ok, ok, func() error { undone = true; return nil }, orphans)
		assert.NoError(t, err)
		assert.False(t, undone)
	})

	t.Run("first fails", func(t *testing.T) {
		secondRan := false
		err := pairedWrite("op", func() error { return apperrors.ErrConflict }, func() error { secondRan = true; return nil }, ok, orphans)
		assert.ErrorIs(t, err, apperrors.ErrConflict)
		assert.False(t, secondRan)
	})

	t.Run("second fails and is undone", func(t *testing.T) {
		undone := false
		err := pairedWrite("op", ok, func() error { return errSecond }, func() error { undone = true; return nil }, orphans)
		assert.ErrorIs(t, err, errSecond)
		assert.NotErrorIs(t, err, apperrors.ErrPartialWrite)
		assert.True(t, undone)
	})

	t.Run("undo fails", func(t *testing.T) {
		err := pairedWrite("create student", ok, func() error { return errSecond }, func() error { return errUndo }, orphans)
		require.ErrorIs(t, err, apperrors.ErrPartialWrite)
		assert.ErrorIs(t, err, errSecond)
		assert.ErrorIs(t, err, errUndo)

		var pw *apperrors.PartialWriteError
		require.ErrorAs(t, err, &pw)
		assert.Equal(t, "create student", pw.Op)
		assert.Equal(t, []string{"u1"}, pw.Orphans["users"])
	})
}

func newStudentRequest() *dto.CreateStudentRequest {
	return &dto.CreateStudentRequest{
		Email:      "Marko@Faculty.edu",
		Password:   "secret123",
		FirstName:  "Марко",
		LastName:   "Марковски",
		StudentID:  "ST002",
		Year:       2,
		Semester:   3,
		Department: "Computer Science",
		Major:      "Software Engineering",
	}
}

func TestStudentCreateAndDelete(t *testing.T) {
	f := newFixture(t)
	students := f.svc.StudentService

	view, err := students.Create(f.ctx, newStudentRequest())
	require.NoError(t, err)
	assert.Equal(t, "ST002", view["studentId"])
	user, ok := view["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "marko@faculty.edu", user["email"])
	assert.NotContains(t, user, "password")

	stored, err := f.repos.UserRepository.GetByEmail(f.ctx, "marko@faculty.edu")
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, stored.Role)

	// the user is removed again when the profile cannot be stored
	dup := newStudentRequest()
	dup.Email = "other@faculty.edu"
	dup.StudentID = "ST001"
	_, err = students.Create(f.ctx, dup)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	exists, err := f.repos.UserRepository.EmailExists(f.ctx, "other@faculty.edu")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = students.Create(f.ctx, newStudentRequest())
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	profile, err := f.repos.StudentRepository.GetByUser(f.ctx, stored.ID)
	require.NoError(t, err)
	require.NoError(t, students.Delete(f.ctx, profile.ID))
	_, err = f.repos.UserRepository.GetByID(f.ctx, stored.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = f.repos.StudentRepository.GetByID(f.ctx, profile.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	assert.ErrorIs(t, students.Delete(f.ctx, profile.ID), apperrors.ErrNotFound)
}

func TestStudentAccessAndUpdate(t *testing.T) {
	f := newFixture(t)
	students := f.svc.StudentService
	other, err := students.Create(f.ctx, newStudentRequest())
	require.NoError(t, err)
	otherID := models.ObjectID(store.DocumentID(other["_id"]))

	self := Actor{UserID: f.studentUser.ID, Role: models.RoleStudent}
	_, err = students.Get(f.ctx, self, otherID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	year := 2
	name := "Ана-Марија"
	view, err := students.Update(f.ctx, self, f.student.ID, &dto.UpdateStudentRequest{Year: &year, FirstName: &name})
	require.NoError(t, err)
	assert.EqualValues(t, 2, view["year"])

	user, err := f.repos.UserRepository.GetByID(f.ctx, f.studentUser.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ана-Марија", user.FirstName)

	admin := Actor{Role: models.RoleAdmin}
	_, err = students.Get(f.ctx, admin, otherID)
	assert.NoError(t, err)
}

func TestStudentListAndStats(t *testing.T) {
	f := newFixture(t)
	students := f.svc.StudentService
	_, err := students.Create(f.ctx, newStudentRequest())
	require.NoError(t, err)

	views, info, err := students.List(f.ctx, dto.StudentFilterRequest{Year: 2}, 1, 10)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "ST002", views[0]["studentId"])
	assert.Equal(t, 1, info.TotalItems)

	stats, err := students.Stats(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalStudents)
	assert.Equal(t, 2, stats.ActiveStudents)
	require.Len(t, stats.DepartmentStats, 1)
	assert.Equal(t, dto.CountEntry{ID: "Computer Science", Count: 2}, stats.DepartmentStats[0])
	assert.Equal(t, []dto.CountEntry{{ID: "1", Count: 1}, {ID: "2", Count: 1}}, stats.YearStats)
}

func TestProfessorUpdateOwnership(t *testing.T) {
	f := newFixture(t)
	professors := f.svc.ProfessorService

	created, err := professors.Create(f.ctx, &dto.CreateProfessorRequest{
		Email:       "elena@faculty.edu",
		Password:    "secret123",
		FirstName:   "Елена",
		LastName:    "Елеска",
		ProfessorID: "P002",
		Department:  "Mathematics",
		Title:       models.TitleLecturer,
	})
	require.NoError(t, err)
	otherID := models.ObjectID(store.DocumentID(created["_id"]))

	dept := "Informatics"
	req := &dto.UpdateProfessorRequest{Department: &dept}

	_, err = professors.Update(f.ctx, Actor{UserID: f.profUser.ID, Role: models.RoleProfessor}, otherID, req)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	_, err = professors.Update(f.ctx, Actor{UserID: f.studentUser.ID, Role: models.RoleStudent}, f.professor.ID, req)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	view, err := professors.Update(f.ctx, Actor{UserID: f.profUser.ID, Role: models.RoleProfessor}, f.professor.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "Informatics", view["department"])

	require.NoError(t, professors.Delete(f.ctx, otherID))
	exists, err := f.repos.UserRepository.EmailExists(f.ctx, "elena@faculty.edu")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestAuthFlow(t *testing.T) {
	f := newFixture(t)
	authService := f.svc.AuthService

	resp, err := authService.Register(f.ctx, &dto.RegisterRequest{
		Email:     "new@faculty.edu",
		Password:  "secret123",
		FirstName: "Нов",
		LastName:  "Корисник",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, resp.User.Role)
	assert.NotEmpty(t, resp.Token.AccessToken)

	_, err = authService.Register(f.ctx, &dto.RegisterRequest{
		Email: "admin@faculty.edu", Password: "secret123", FirstName: "A", LastName: "B", Role: models.RoleAdmin,
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = authService.Login(f.ctx, &dto.LoginRequest{Email: "new@faculty.edu", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	_, err = authService.Login(f.ctx, &dto.LoginRequest{Email: "nobody@faculty.edu", Password: "secret123"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	login, err := authService.Login(f.ctx, &dto.LoginRequest{Email: "NEW@faculty.edu", Password: "secret123"})
	require.NoError(t, err)
	assert.NotNil(t, login.User.LastLogin)

	err = authService.ChangePassword(f.ctx, login.User.ID, &dto.ChangePasswordRequest{CurrentPassword: "nope", NewPassword: "another123"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	require.NoError(t, authService.ChangePassword(f.ctx, login.User.ID, &dto.ChangePasswordRequest{CurrentPassword: "secret123", NewPassword: "another123"}))
	_, err = authService.Login(f.ctx, &dto.LoginRequest{Email: "new@faculty.edu", Password: "another123"})
	assert.NoError(t, err)

	_, err = f.repos.UserRepository.Update(f.ctx, login.User.ID, func(u *models.User) error {
		off := false
		u.IsActive = &off
		return nil
	})
	require.NoError(t, err)
	_, err = authService.Login(f.ctx, &dto.LoginRequest{Email: "new@faculty.edu", Password: "another123"})
	assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
}

func TestProfile(t *testing.T) {
	f := newFixture(t)

	profile, err := f.svc.AuthService.Profile(f.ctx, f.studentUser.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana@faculty.edu", profile.User.Email)
	student, ok := profile.Student.(*models.Student)
	require.True(t, ok)
	assert.Equal(t, "ST001", student.StudentID)
	assert.Nil(t, profile.Professor)

	profile, err = f.svc.AuthService.Profile(f.ctx, f.profUser.ID)
	require.NoError(t, err)
	assert.NotNil(t, profile.Professor)
}
