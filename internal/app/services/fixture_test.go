package services

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yigit/facultyhub/internal/app/join"
	"github.com/yigit/facultyhub/internal/app/models"
	"github.com/yigit/facultyhub/internal/app/repositories"
	"github.com/yigit/facultyhub/internal/pkg/auth"
	"github.com/yigit/facultyhub/internal/store"
)

func TestMain(m *testing.M) {
	auth.BcryptCost = bcrypt.MinCost
	os.Exit(m.Run())
}

// fixture is a fresh store with one professor teaching CS101 and one
// student in the same department
type fixture struct {
	ctx         context.Context
	db          *store.DB
	repos       *repositories.Repositories
	svc         *Services
	professor   *models.Professor
	profUser    *models.User
	student     *models.Student
	studentUser *models.User
	course      *models.Course
}

func newFixture(t *testing.T, opts ...store.Option) *fixture {
	t.Helper()
	ctx := context.Background()
	opts = append([]store.Option{store.WithLogger(zerolog.Nop())}, opts...)
	db, err := store.Open(t.TempDir(), opts...)
	require.NoError(t, err)
	require.NoError(t, db.Init(ctx))

	repos := repositories.NewRepositories(db)
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "facultyhub-test",
	})
	f := &fixture{
		ctx:   ctx,
		db:    db,
		repos: repos,
		svc:   NewServices(repos, join.New(db), jwtService, nil, zerolog.Nop()),
	}

	f.profUser = f.addUser(t, "petar@faculty.edu", "Петар", "Петровски", models.RoleProfessor)
	f.professor = &models.Professor{
		User:        models.RefTo[models.UserKind](f.profUser.ID),
		ProfessorID: "P001",
		Department:  "Computer Science",
		Title:       models.TitleProfessor,
		Status:      models.ProfessorActive,
	}
	require.NoError(t, repos.ProfessorRepository.Create(ctx, f.professor))

	f.studentUser = f.addUser(t, "ana@faculty.edu", "Ана", "Анева", models.RoleStudent)
	f.student = &models.Student{
		User:       models.RefTo[models.UserKind](f.studentUser.ID),
		StudentID:  "ST001",
		Year:       1,
		Semester:   2,
		Department: "Computer Science",
		Status:     models.StudentActive,
	}
	require.NoError(t, repos.StudentRepository.Create(ctx, f.student))

	f.course = f.addCourse(t, "CS101", "Програмирање", models.Monday, "10:00")
	return f
}

func (f *fixture) addUser(t *testing.T, email, first, last string, role models.Role) *models.User {
	t.Helper()
	user, err := newAccount(email, "secret123", first, last, role)
	require.NoError(t, err)
	require.NoError(t, f.repos.UserRepository.Create(f.ctx, user))
	return user
}

func (f *fixture) addCourse(t *testing.T, code, name string, day models.Weekday, start string) *models.Course {
	t.Helper()
	active := true
	course := &models.Course{
		Code:        code,
		Name:        name,
		Credits:     6,
		Department:  "Computer Science",
		Year:        1,
		Semester:    2,
		Professor:   models.RefTo[models.ProfessorKind](f.professor.ID),
		MaxStudents: models.DefaultMaxStudents,
		Schedule:    models.Schedule{Day: day, StartTime: start, EndTime: "12:00", Room: "A1"},
		IsActive:    &active,
	}
	require.NoError(t, f.repos.CourseRepository.Create(f.ctx, course))
	return course
}

func (f *fixture) notifications(t *testing.T) []models.Notification {
	t.Helper()
	all, err := f.repos.NotificationRepository.List(f.ctx)
	require.NoError(t, err)
	return all
}
