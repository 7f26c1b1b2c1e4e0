package repositories

import (
	"github.com/yigit/facultyhub/internal/store"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository             *UserRepository
	StudentRepository          *StudentRepository
	ProfessorRepository        *ProfessorRepository
	CourseRepository           *CourseRepository
	ExamRegistrationRepository *ExamRegistrationRepository
	NotificationRepository     *NotificationRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *store.DB) *Repositories {
	return &Repositories{
		UserRepository:             NewUserRepository(db),
		StudentRepository:          NewStudentRepository(db),
		ProfessorRepository:        NewProfessorRepository(db),
		CourseRepository:           NewCourseRepository(db),
		ExamRegistrationRepository: NewExamRegistrationRepository(db),
		NotificationRepository:     NewNotificationRepository(db),
	}
}
