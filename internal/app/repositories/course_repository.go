package repositories

import (
	"context"
	"strings"

	"github.com/yigit/facultyhub/internal/app/models"
	"github.com/yigit/facultyhub/internal/pkg/apperrors"
	"github.com/yigit/facultyhub/internal/store"
)

// CourseFilter narrows List results. ActiveOnly hides courses with
// isActive=false.
type CourseFilter struct {
	Department string
	Year       int
	Semester   int
	Professor  models.ObjectID
	Room       string
	ActiveOnly bool
}

func (f CourseFilter) match(c *models.Course) bool {
	switch {
	case f.ActiveOnly && !c.Active():
		return false
	case f.Department != "" && c.Department != f.Department:
		return false
	case f.Year != 0 && c.Year != f.Year:
		return false
	case f.Semester != 0 && c.Semester != f.Semester:
		return false
	case !f.Professor.IsZero() && c.Professor.ID != f.Professor:
		return false
	case f.Room != "" && c.Schedule.Room != f.Room:
		return false
	}
	return true
}

// CourseRepository handles the courses collection
type CourseRepository struct {
	t table[models.Course]
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *store.DB) *CourseRepository {
	return &CourseRepository{t: newTable[models.Course](db, store.Courses, "course")}
}

// Create stores a new course. The code is upper-cased and must be unique.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	course.Code = strings.ToUpper(strings.TrimSpace(course.Code))
	if course.ID.IsZero() {
		course.ID = r.t.nextID()
	}
	now := models.DateNow()
	course.CreatedAt, course.UpdatedAt = now, now

	return r.t.insert(ctx, *course, func(courses []models.Course) error {
		return uniqueCourseCode(course, courses)
	})
}

func uniqueCourseCode(course *models.Course, others []models.Course) error {
	for _, c := range others {
		if c.Code == course.Code {
			return apperrors.Conflict("course with code %s already exists", course.Code).WithField("code")
		}
	}
	return nil
}

// GetByID retrieves a course by ID
func (r *CourseRepository) GetByID(ctx context.Context, id models.ObjectID) (*models.Course, error) {
	return r.t.get(ctx, id)
}

// GetActive retrieves a course and treats an inactive one as missing
func (r *CourseRepository) GetActive(ctx context.Context, id models.ObjectID) (*models.Course, error) {
	c, err := r.t.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !c.Active() {
		return nil, apperrors.NotFound("course", id.String())
	}
	return c, nil
}

// List returns the courses matching filter
func (r *CourseRepository) List(ctx context.Context, filter CourseFilter) ([]models.Course, error) {
	return r.t.filter(ctx, filter.match)
}

// Update applies fn to the course and refreshes updatedAt
func (r *CourseRepository) Update(ctx context.Context, id models.ObjectID, fn func(*models.Course) error) (*models.Course, error) {
	return r.t.modify(ctx, id, func(c *models.Course) error {
		if err := fn(c); err != nil {
			return err
		}
		c.Code = strings.ToUpper(strings.TrimSpace(c.Code))
		c.UpdatedAt = models.DateNow()
		return nil
	}, uniqueCourseCode)
}

// Delete removes a course
func (r *CourseRepository) Delete(ctx context.Context, id models.ObjectID) (*models.Course, error) {
	return r.t.remove(ctx, id, nil)
}
