package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/yigit/facultyhub/internal/app/join"
	"github.com/yigit/facultyhub/internal/app/models"
	"github.com/yigit/facultyhub/internal/app/models/dto"
	"github.com/yigit/facultyhub/internal/app/repositories"
	"github.com/yigit/facultyhub/internal/pkg/apperrors"
	"github.com/yigit/facultyhub/internal/pkg/helpers"
	"github.com/yigit/facultyhub/internal/pkg/validation"
)

// ProfessorService defines the interface for professor-related operations
type ProfessorService interface {
	Create(ctx context.Context, req *dto.CreateProfessorRequest) (join.View, error)
	Get(ctx context.Context, id models.ObjectID) (join.View, error)
	List(ctx context.Context, filter dto.ProfessorFilterRequest, page, size int) ([]join.View, dto.PaginationInfo, error)
	Update(ctx context.Context, actor Actor, id models.ObjectID, req *dto.UpdateProfessorRequest) (join.View, error)
	Delete(ctx context.Context, id models.ObjectID) error
}

// professorServiceImpl implements the ProfessorService interface
type professorServiceImpl struct {
	professorRepo *repositories.ProfessorRepository
	userRepo      *repositories.UserRepository
	joiner        *join.Engine
	logger        zerolog.Logger
}

// NewProfessorService creates a new professor service instance
func NewProfessorService(
	professorRepo *repositories.ProfessorRepository,
	userRepo *repositories.UserRepository,
	joiner *join.Engine,
	logger zerolog.Logger,
) ProfessorService {
	return &professorServiceImpl{
		professorRepo: professorRepo,
		userRepo:      userRepo,
		joiner:        joiner,
		logger:        logger,
	}
}

// Create stores a professor account: the user first, then the profile
func (s *professorServiceImpl) Create(ctx context.Context, req *dto.CreateProfessorRequest) (join.View, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if err := ensureEmailFree(ctx, s.userRepo, req.Email); err != nil {
		return nil, err
	}

	user, err := newAccount(req.Email, req.Password, req.FirstName, req.LastName, models.RoleProfessor)
	if err != nil {
		return nil, err
	}
	professor := &models.Professor{
		ProfessorID:    req.ProfessorID,
		Department:     req.Department,
		Title:          req.Title,
		Specialization: req.Specialization,
		Status:         models.ProfessorActive,
	}

	err = pairedWrite("create professor",
		func() error { return s.userRepo.Create(ctx, user) },
		func() error {
			professor.User = models.RefTo[models.UserKind](user.ID)
			return s.professorRepo.Create(ctx, professor)
		},
		func() error { return deleteUserIfPresent(ctx, s.userRepo, user.ID) },
		func() map[string][]string { return map[string][]string{"users": {user.ID.String()}} },
	)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("professorId", professor.ProfessorID).
		Str("email", user.Email).
		Msg("Professor created")
	return s.joiner.Populate(ctx, professor, join.ProfessorView)
}

// Get returns a professor with the user populated
func (s *professorServiceImpl) Get(ctx context.Context, id models.ObjectID) (join.View, error) {
	professor, err := s.professorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.joiner.Populate(ctx, professor, join.ProfessorView)
}

// List returns one page of the professors matching filter
func (s *professorServiceImpl) List(ctx context.Context, filter dto.ProfessorFilterRequest, page, size int) ([]join.View, dto.PaginationInfo, error) {
	professors, err := s.professorRepo.List(ctx, repositories.ProfessorFilter{
		Department: filter.Department,
		Status:     filter.Status,
	})
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	pageItems, info := helpers.Paginate(professors, page, size)
	views, err := join.PopulateAll(ctx, s.joiner, pageItems, join.ProfessorView)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	return views, info, nil
}

// Update merges the provided fields into the professor and its user.
// Professors may only change their own profile.
func (s *professorServiceImpl) Update(ctx context.Context, actor Actor, id models.ObjectID, req *dto.UpdateProfessorRequest) (join.View, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	current, err := s.professorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	switch actor.Role {
	case models.RoleAdmin:
	case models.RoleProfessor:
		if current.User.ID != actor.UserID {
			return nil, apperrors.Forbidden("professors can only update their own profile")
		}
	default:
		return nil, apperrors.Forbidden("access denied")
	}

	professor, err := s.professorRepo.Update(ctx, id, func(p *models.Professor) error {
		if req.Department != nil {
			p.Department = *req.Department
		}
		if req.Title != nil {
			p.Title = *req.Title
		}
		if req.Specialization != nil {
			p.Specialization = *req.Specialization
		}
		if req.Status != nil {
			p.Status = *req.Status
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := applyNames(ctx, s.userRepo, professor.User.ID, req.FirstName, req.LastName); err != nil {
		if !apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		s.logger.Warn().Str("professorId", professor.ProfessorID).Msg("Professor has no user to rename")
	}
	return s.joiner.Populate(ctx, professor, join.ProfessorView)
}

// Delete removes a professor and its user. Courses taught by the professor
// keep their reference and render it as absent.
func (s *professorServiceImpl) Delete(ctx context.Context, id models.ObjectID) error {
	var removed *models.Professor
	err := pairedWrite("delete professor",
		func() error {
			var err error
			removed, err = s.professorRepo.Delete(ctx, id)
			return err
		},
		func() error { return deleteUserIfPresent(ctx, s.userRepo, removed.User.ID) },
		func() error { return s.professorRepo.Restore(ctx, *removed) },
		func() map[string][]string { return map[string][]string{"users": {removed.User.ID.String()}} },
	)
	if err != nil {
		return err
	}
	s.logger.Info().Str("professorId", removed.ProfessorID).Msg("Professor deleted")
	return nil
}
