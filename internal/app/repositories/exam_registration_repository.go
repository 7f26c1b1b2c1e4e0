package repositories

import (
	"context"

	"github.com/yigit/facultyhub/internal/app/models"
	"github.com/yigit/facultyhub/internal/pkg/apperrors"
	"github.com/yigit/facultyhub/internal/store"
)

// ExamRegistrationRepository handles the exam-registrations collection
type ExamRegistrationRepository struct {
	t table[models.ExamRegistration]
}

// NewExamRegistrationRepository creates a new ExamRegistrationRepository
func NewExamRegistrationRepository(db *store.DB) *ExamRegistrationRepository {
	return &ExamRegistrationRepository{t: newTable[models.ExamRegistration](db, store.ExamRegistrations, "exam registration")}
}

// CreatePending stores reg as pending unless the same student already has a
// pending registration for the course in that semester. The check and the
// append run under one lock.
func (r *ExamRegistrationRepository) CreatePending(ctx context.Context, reg *models.ExamRegistration) error {
	if reg.ID.IsZero() {
		reg.ID = r.t.nextID()
	}
	reg.Status = models.StatusPending
	now := models.DateNow()
	reg.CreatedAt, reg.UpdatedAt = now, now

	return r.t.insert(ctx, *reg, func(regs []models.ExamRegistration) error {
		for _, existing := range regs {
			if existing.Status == models.StatusPending &&
				existing.SameSlot(reg.Student.ID, reg.Course.ID, reg.Semester) {
				return apperrors.Conflict("a pending exam registration for this course and semester already exists").
					WithDetails(map[string]interface{}{"registrationId": existing.ID.String()})
			}
		}
		return nil
	})
}

// GetByID retrieves a registration by ID
func (r *ExamRegistrationRepository) GetByID(ctx context.Context, id models.ObjectID) (*models.ExamRegistration, error) {
	return r.t.get(ctx, id)
}

// ListByStudent returns a student's registrations in stored order
func (r *ExamRegistrationRepository) ListByStudent(ctx context.Context, studentID models.ObjectID) ([]models.ExamRegistration, error) {
	return r.t.filter(ctx, func(reg *models.ExamRegistration) bool { return reg.Student.ID == studentID })
}

// ListByCourses returns the registrations for any of the given courses
func (r *ExamRegistrationRepository) ListByCourses(ctx context.Context, courseIDs []models.ObjectID) ([]models.ExamRegistration, error) {
	set := make(map[models.ObjectID]struct{}, len(courseIDs))
	for _, id := range courseIDs {
		set[id] = struct{}{}
	}
	return r.t.filter(ctx, func(reg *models.ExamRegistration) bool {
		_, ok := set[reg.Course.ID]
		return ok
	})
}

// List returns every registration
func (r *ExamRegistrationRepository) List(ctx context.Context) ([]models.ExamRegistration, error) {
	return r.t.all(ctx)
}

// Transition moves a registration out of pending. Any other starting state
// is an InvalidState error and leaves the record unchanged.
func (r *ExamRegistrationRepository) Transition(ctx context.Context, id models.ObjectID, to models.RegistrationStatus) (*models.ExamRegistration, error) {
	return r.t.modify(ctx, id, func(reg *models.ExamRegistration) error {
		if reg.Status != models.StatusPending {
			return apperrors.InvalidState("registration is %s, only pending registrations can change status", reg.Status)
		}
		reg.Status = to
		reg.UpdatedAt = models.DateNow()
		return nil
	}, nil)
}

// DeleteOwnedPending removes a pending registration that belongs to
// studentID. A registration owned by someone else is reported as not found.
func (r *ExamRegistrationRepository) DeleteOwnedPending(ctx context.Context, id, studentID models.ObjectID) (*models.ExamRegistration, error) {
	return r.t.remove(ctx, id, func(reg *models.ExamRegistration) error {
		if reg.Student.ID != studentID {
			return apperrors.NotFound("exam registration", id.String())
		}
		if reg.Status != models.StatusPending {
			return apperrors.InvalidState("only pending registrations can be cancelled")
		}
		return nil
	})
}

// DeleteMany removes the listed registrations
func (r *ExamRegistrationRepository) DeleteMany(ctx context.Context, ids ...models.ObjectID) (int, error) {
	return r.t.removeIDs(ctx, ids...)
}
