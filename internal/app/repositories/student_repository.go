package repositories

import (
	"context"

	"github.com/yigit/facultyhub/internal/app/models"
	"github.com/yigit/facultyhub/internal/pkg/apperrors"
	"github.com/yigit/facultyhub/internal/store"
)

// StudentFilter narrows List results. Zero values match everything.
type StudentFilter struct {
	Department string
	Year       int
	Status     models.StudentStatus
}

func (f StudentFilter) match(s *models.Student) bool {
	if f.Department != "" && s.Department != f.Department {
		return false
	}
	if f.Year != 0 && s.Year != f.Year {
		return false
	}
	if f.Status != "" && s.Status != f.Status {
		return false
	}
	return true
}

// StudentRepository handles the students collection, including the grade
// ledger embedded in each student
type StudentRepository struct {
	t table[models.Student]
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *store.DB) *StudentRepository {
	return &StudentRepository{t: newTable[models.Student](db, store.Students, "student")}
}

// NextID hands out an id for a grade entry or student
func (r *StudentRepository) NextID() models.ObjectID {
	return r.t.nextID()
}

// Create stores a new student; studentId must be unique
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	if student.ID.IsZero() {
		student.ID = r.t.nextID()
	}
	now := models.DateNow()
	student.CreatedAt, student.UpdatedAt = now, now

	return r.t.insert(ctx, *student, func(students []models.Student) error {
		return uniqueStudentID(student, students)
	})
}

func uniqueStudentID(student *models.Student, others []models.Student) error {
	for _, s := range others {
		if s.StudentID == student.StudentID {
			return apperrors.Conflict("student with index %s already exists", student.StudentID).WithField("studentId")
		}
	}
	return nil
}

// GetByID retrieves a student by ID
func (r *StudentRepository) GetByID(ctx context.Context, id models.ObjectID) (*models.Student, error) {
	return r.t.get(ctx, id)
}

// GetByUser retrieves the student profile owned by a user
func (r *StudentRepository) GetByUser(ctx context.Context, userID models.ObjectID) (*models.Student, error) {
	s, err := r.t.find(ctx, func(s *models.Student) bool { return s.User.ID == userID })
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, apperrors.NotFound("student profile", userID.String())
	}
	return s, nil
}

// Exists reports whether a student id resolves
func (r *StudentRepository) Exists(ctx context.Context, id models.ObjectID) (bool, error) {
	return r.t.exists(ctx, id)
}

// List returns the students matching filter in stored order
func (r *StudentRepository) List(ctx context.Context, filter StudentFilter) ([]models.Student, error) {
	return r.t.filter(ctx, filter.match)
}

// Update applies fn to the student under the students lock and refreshes
// updatedAt. Grade ledger changes go through here as well.
func (r *StudentRepository) Update(ctx context.Context, id models.ObjectID, fn func(*models.Student) error) (*models.Student, error) {
	return r.t.modify(ctx, id, func(s *models.Student) error {
		if err := fn(s); err != nil {
			return err
		}
		s.UpdatedAt = models.DateNow()
		return nil
	}, uniqueStudentID)
}

// Delete removes a student
func (r *StudentRepository) Delete(ctx context.Context, id models.ObjectID) (*models.Student, error) {
	return r.t.remove(ctx, id, nil)
}

// Restore puts a previously deleted student back unchanged
func (r *StudentRepository) Restore(ctx context.Context, student models.Student) error {
	return r.t.insert(ctx, student, func(students []models.Student) error {
		if indexOf(students, student.ID) >= 0 {
			return apperrors.Conflict("student %s already exists", student.ID)
		}
		return uniqueStudentID(&student, students)
	})
}
