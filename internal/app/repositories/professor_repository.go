package repositories

import (
	"context"

	"github.com/yigit/facultyhub/internal/app/models"
	"github.com/yigit/facultyhub/internal/pkg/apperrors"
	"github.com/yigit/facultyhub/internal/store"
)

// ProfessorFilter narrows List results
type ProfessorFilter struct {
	Department string
	Status     models.ProfessorStatus
}

func (f ProfessorFilter) match(p *models.Professor) bool {
	if f.Department != "" && p.Department != f.Department {
		return false
	}
	return f.Status == "" || p.Status == f.Status
}

// ProfessorRepository handles the professors collection
type ProfessorRepository struct {
	t table[models.Professor]
}

// NewProfessorRepository creates a new ProfessorRepository
func NewProfessorRepository(db *store.DB) *ProfessorRepository {
	return &ProfessorRepository{t: newTable[models.Professor](db, store.Professors, "professor")}
}

// Create stores a new professor; professorId must be unique
func (r *ProfessorRepository) Create(ctx context.Context, professor *models.Professor) error {
	if professor.ID.IsZero() {
		professor.ID = r.t.nextID()
	}
	now := models.DateNow()
	professor.CreatedAt, professor.UpdatedAt = now, now

	return r.t.insert(ctx, *professor, func(professors []models.Professor) error {
		return uniqueProfessorID(professor, professors)
	})
}

func uniqueProfessorID(professor *models.Professor, others []models.Professor) error {
	for _, p := range others {
		if p.ProfessorID == professor.ProfessorID {
			return apperrors.Conflict("professor with id %s already exists", professor.ProfessorID).WithField("professorId")
		}
	}
	return nil
}

// GetByID retrieves a professor by ID
func (r *ProfessorRepository) GetByID(ctx context.Context, id models.ObjectID) (*models.Professor, error) {
	return r.t.get(ctx, id)
}

// GetByUser retrieves the professor profile owned by a user
func (r *ProfessorRepository) GetByUser(ctx context.Context, userID models.ObjectID) (*models.Professor, error) {
	p, err := r.t.find(ctx, func(p *models.Professor) bool { return p.User.ID == userID })
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperrors.NotFound("professor profile", userID.String())
	}
	return p, nil
}

// Exists reports whether a professor id resolves
func (r *ProfessorRepository) Exists(ctx context.Context, id models.ObjectID) (bool, error) {
	return r.t.exists(ctx, id)
}

// List returns the professors matching filter
func (r *ProfessorRepository) List(ctx context.Context, filter ProfessorFilter) ([]models.Professor, error) {
	return r.t.filter(ctx, filter.match)
}

// Update applies fn to the professor and refreshes updatedAt
func (r *ProfessorRepository) Update(ctx context.Context, id models.ObjectID, fn func(*models.Professor) error) (*models.Professor, error) {
	return r.t.modify(ctx, id, func(p *models.Professor) error {
		if err := fn(p); err != nil {
			return err
		}
		p.UpdatedAt = models.DateNow()
		return nil
	}, uniqueProfessorID)
}

// Delete removes a professor
func (r *ProfessorRepository) Delete(ctx context.Context, id models.ObjectID) (*models.Professor, error) {
	return r.t.remove(ctx, id, nil)
}

// Restore puts a previously deleted professor back unchanged
func (r *ProfessorRepository) Restore(ctx context.Context, professor models.Professor) error {
	return r.t.insert(ctx, professor, func(professors []models.Professor) error {
		if indexOf(professors, professor.ID) >= 0 {
			return apperrors.Conflict("professor %s already exists", professor.ID)
		}
		return uniqueProfessorID(&professor, professors)
	})
}
