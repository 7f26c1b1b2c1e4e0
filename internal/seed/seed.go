package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	appModels "github.com/yigit/facultyhub/internal/app/models"
	"github.com/yigit/facultyhub/internal/app/models/dto"
	appRepos "github.com/yigit/facultyhub/internal/app/repositories"
	appServices "github.com/yigit/facultyhub/internal/app/services"
	"github.com/yigit/facultyhub/internal/pkg/auth"
	"github.com/yigit/facultyhub/internal/store"
)

// Default administrator account
const (
	AdminEmail    = "admin@faculty.edu"
	AdminPassword = "admin123"
)

// CreateDefaultData creates the administrator account if it does not exist
// and, when the course catalogue is empty, a small sample faculty: two
// professors, three students, their courses, a grade and an exam
// registration. Running it again changes nothing.
func CreateDefaultData(ctx context.Context, repos *appRepos.Repositories, svc *appServices.Services, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data...")
	var finalErr error

	if err := createAdmin(ctx, repos.UserRepository, lgr); err != nil {
		lgr.Error().Err(err).Msg("Error creating admin user")
		finalErr = errors.Join(finalErr, err)
	}

	courses, err := repos.CourseRepository.List(ctx, appRepos.CourseFilter{})
	if err != nil {
		return errors.Join(finalErr, err)
	}
	if len(courses) > 0 {
		lgr.Info().Int("courses", len(courses)).Msg("Catalogue already populated, skipping sample data")
		return finalErr
	}

	if err := createSampleFaculty(ctx, svc, lgr); err != nil {
		lgr.Error().Err(err).Msg("Error creating sample data")
		finalErr = errors.Join(finalErr, err)
	}

	lgr.Info().Msg("Default data check/creation finished.")
	return finalErr
}

func createAdmin(ctx context.Context, users *appRepos.UserRepository, lgr zerolog.Logger) error {
	exists, err := users.EmailExists(ctx, AdminEmail)
	if err != nil {
		return err
	}
	if exists {
		lgr.Info().Msg("Admin user already exists, skipping creation")
		return nil
	}

	hash, err := auth.HashPassword(AdminPassword)
	if err != nil {
		return fmt.Errorf("error hashing admin password: %w", err)
	}
	active := true
	admin := &appModels.User{
		Email:     AdminEmail,
		Password:  hash,
		FirstName: "System",
		LastName:  "Administrator",
		Role:      appModels.RoleAdmin,
		IsActive:  &active,
	}
	if err := users.Create(ctx, admin); err != nil {
		return err
	}
	lgr.Info().Str("adminID", admin.ID.String()).Msg("Default admin user created successfully")
	return nil
}

func createSampleFaculty(ctx context.Context, svc *appServices.Services, lgr zerolog.Logger) error {
	professors := []dto.CreateProfessorRequest{
		{
			Email: "petar.petrovski@faculty.edu", Password: "prof123",
			FirstName: "Петар", LastName: "Петровски", ProfessorID: "P001",
			Department: "Computer Science", Title: string(appModels.TitleProfessor),
			Specialization: "Software Engineering",
		},
		{
			Email: "marija.nikolova@faculty.edu", Password: "prof123",
			FirstName: "Марија", LastName: "Николова", ProfessorID: "P002",
			Department: "Computer Science", Title: string(appModels.TitleAssociateProfessor),
			Specialization: "Databases",
		},
	}
	professorIDs := make([]string, 0, len(professors))
	for i := range professors {
		view, err := svc.ProfessorService.Create(ctx, &professors[i])
		if err != nil {
			return fmt.Errorf("professor %s: %w", professors[i].ProfessorID, err)
		}
		professorIDs = append(professorIDs, store.DocumentID(view["_id"]))
	}

	students := []dto.CreateStudentRequest{
		{
			Email: "ana.aneva@student.faculty.edu", Password: "student123",
			FirstName: "Ана", LastName: "Анева", StudentID: "ST001",
			Year: 1, Semester: 2, Department: "Computer Science", Major: "Software Engineering",
		},
		{
			Email: "marko.markovski@student.faculty.edu", Password: "student123",
			FirstName: "Марко", LastName: "Марковски", StudentID: "ST002",
			Year: 1, Semester: 2, Department: "Computer Science", Major: "Computer Networks",
		},
		{
			Email: "elena.stojanova@student.faculty.edu", Password: "student123",
			FirstName: "Елена", LastName: "Стојанова", StudentID: "ST003",
			Year: 2, Semester: 4, Department: "Computer Science", Major: "Software Engineering",
		},
	}
	studentIDs := make([]string, 0, len(students))
	for i := range students {
		view, err := svc.StudentService.Create(ctx, &students[i])
		if err != nil {
			return fmt.Errorf("student %s: %w", students[i].StudentID, err)
		}
		studentIDs = append(studentIDs, store.DocumentID(view["_id"]))
	}

	courses := []dto.CreateCourseRequest{
		{
			Code: "CS101", Name: "Програмирање", Credits: 6, Department: "Computer Science",
			Year: 1, Semester: 2, ProfessorID: professorIDs[0], MaxStudents: 60,
			Schedule: dto.ScheduleRequest{Day: appModels.Monday, StartTime: "10:00", EndTime: "12:00", Room: "A1"},
		},
		{
			Code: "CS102", Name: "Дискретна математика", Credits: 6, Department: "Computer Science",
			Year: 1, Semester: 2, ProfessorID: professorIDs[1], MaxStudents: 60,
			Schedule: dto.ScheduleRequest{Day: appModels.Wednesday, StartTime: "08:00", EndTime: "10:00", Room: "A2"},
		},
	}
	courseIDs := make([]string, 0, len(courses)+1)
	for i := range courses {
		view, err := svc.CourseService.Create(ctx, &courses[i])
		if err != nil {
			return fmt.Errorf("course %s: %w", courses[i].Code, err)
		}
		courseIDs = append(courseIDs, store.DocumentID(view["_id"]))
	}

	databases := dto.CreateCourseRequest{
		Code: "CS201", Name: "Бази на податоци", Credits: 6, Department: "Computer Science",
		Year: 2, Semester: 4, ProfessorID: professorIDs[1], MaxStudents: 40,
		Schedule:      dto.ScheduleRequest{Day: appModels.Thursday, StartTime: "12:00", EndTime: "14:00", Room: "B3"},
		Prerequisites: []string{courseIDs[0]},
	}
	if _, err := svc.CourseService.Create(ctx, &databases); err != nil {
		return fmt.Errorf("course %s: %w", databases.Code, err)
	}

	_, err := svc.GradeService.RecordGrade(ctx, appModels.ObjectID(professorIDs[0]), &dto.RecordGradeRequest{
		StudentID:    studentIDs[0],
		CourseID:     courseIDs[0],
		Grade:        9,
		Semester:     2,
		AcademicYear: "2024/2025",
		ExamDate:     "2025-06-10",
	})
	if err != nil {
		return fmt.Errorf("sample grade: %w", err)
	}

	_, err = svc.ExamRegistrationService.Create(ctx, appModels.ObjectID(studentIDs[1]), &dto.CreateExamRegistrationRequest{
		CourseID:      courseIDs[1],
		Semester:      appModels.SemesterSummer,
		ExamDate:      "2025-06-20",
		ProfessorName: "Марија Николова",
	})
	if err != nil {
		return fmt.Errorf("sample exam registration: %w", err)
	}

	lgr.Info().
		Int("professors", len(professorIDs)).
		Int("students", len(studentIDs)).
		Int("courses", len(courseIDs)+1).
		Msg("Sample data created")
	return nil
}
