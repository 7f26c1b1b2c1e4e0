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

// CourseService manages courses. References to the professor and to
// prerequisite courses are resolved before anything is written.
type CourseService struct {
	courseRepo    *repositories.CourseRepository
	professorRepo *repositories.ProfessorRepository
	joiner        *join.Engine
	logger        zerolog.Logger
}

// NewCourseService creates a new CourseService
func NewCourseService(
	courseRepo *repositories.CourseRepository,
	professorRepo *repositories.ProfessorRepository,
	joiner *join.Engine,
	logger zerolog.Logger,
) *CourseService {
	return &CourseService{
		courseRepo:    courseRepo,
		professorRepo: professorRepo,
		joiner:        joiner,
		logger:        logger,
	}
}

func (s *CourseService) resolveProfessor(ctx context.Context, id string) (models.Ref[models.ProfessorKind], error) {
	exists, err := s.professorRepo.Exists(ctx, models.ObjectID(id))
	if err != nil {
		return models.Ref[models.ProfessorKind]{}, err
	}
	if !exists {
		return models.Ref[models.ProfessorKind]{}, apperrors.NotFound("professor", id).WithField("professor")
	}
	return models.RefTo[models.ProfessorKind](models.ObjectID(id)), nil
}

// resolvePrerequisites checks every prerequisite exists and is not the
// course itself. Duplicates are dropped.
func (s *CourseService) resolvePrerequisites(ctx context.Context, self models.ObjectID, ids []string) ([]models.Ref[models.CourseKind], error) {
	if len(ids) == 0 {
		return nil, nil
	}
	courses, err := s.courseRepo.List(ctx, repositories.CourseFilter{})
	if err != nil {
		return nil, err
	}
	known := make(map[models.ObjectID]bool, len(courses))
	for _, c := range courses {
		known[c.ID] = true
	}

	refs := make([]models.Ref[models.CourseKind], 0, len(ids))
	seen := make(map[models.ObjectID]bool, len(ids))
	for _, raw := range ids {
		id := models.ObjectID(raw)
		if id == self {
			return nil, apperrors.Validation("prerequisites", "a course cannot be its own prerequisite")
		}
		if !known[id] {
			return nil, apperrors.NotFound("prerequisite course", raw).WithField("prerequisites")
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		refs = append(refs, models.RefTo[models.CourseKind](id))
	}
	return refs, nil
}

// Create stores a new course
func (s *CourseService) Create(ctx context.Context, req *dto.CreateCourseRequest) (join.View, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	professor, err := s.resolveProfessor(ctx, req.ProfessorID)
	if err != nil {
		return nil, err
	}
	prerequisites, err := s.resolvePrerequisites(ctx, "", req.Prerequisites)
	if err != nil {
		return nil, err
	}

	course := &models.Course{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		Credits:     req.Credits,
		Department:  req.Department,
		Year:        req.Year,
		Semester:    req.Semester,
		Professor:   professor,
		MaxStudents: req.MaxStudents,
		Schedule: models.Schedule{
			Day:       req.Schedule.Day,
			StartTime: req.Schedule.StartTime,
			EndTime:   req.Schedule.EndTime,
			Room:      req.Schedule.Room,
		},
		IsActive:      req.IsActive,
		Prerequisites: prerequisites,
	}
	if course.MaxStudents == 0 {
		course.MaxStudents = models.DefaultMaxStudents
	}
	if course.IsActive == nil {
		active := true
		course.IsActive = &active
	}

	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}
	s.logger.Info().Str("code", course.Code).Msg("Course created")
	return s.joiner.Populate(ctx, course, join.CourseView)
}

// Get returns a course with professor and prerequisites populated
func (s *CourseService) Get(ctx context.Context, id models.ObjectID) (join.View, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.joiner.Populate(ctx, course, join.CourseView)
}

// List returns one page of the active courses matching filter
func (s *CourseService) List(ctx context.Context, filter dto.CourseFilterRequest, page, size int) ([]join.View, dto.PaginationInfo, error) {
	courses, err := s.courseRepo.List(ctx, repositories.CourseFilter{
		Department: filter.Department,
		Year:       filter.Year,
		Semester:   filter.Semester,
		Professor:  models.ObjectID(filter.Professor),
		ActiveOnly: true,
	})
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	pageItems, info := helpers.Paginate(courses, page, size)
	views, err := join.PopulateAll(ctx, s.joiner, pageItems, join.CourseView)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	return views, info, nil
}

// ByProfessor returns the active courses a professor teaches
func (s *CourseService) ByProfessor(ctx context.Context, professorID models.ObjectID) ([]join.View, error) {
	courses, err := s.courseRepo.List(ctx, repositories.CourseFilter{Professor: professorID, ActiveOnly: true})
	if err != nil {
		return nil, err
	}
	return join.PopulateAll(ctx, s.joiner, courses, join.CourseView)
}

// Update merges the provided fields into the course. The schedule is
// merged field by field.
func (s *CourseService) Update(ctx context.Context, id models.ObjectID, req *dto.UpdateCourseRequest) (join.View, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	var professor *models.Ref[models.ProfessorKind]
	if req.ProfessorID != nil {
		ref, err := s.resolveProfessor(ctx, *req.ProfessorID)
		if err != nil {
			return nil, err
		}
		professor = &ref
	}
	var prerequisites []models.Ref[models.CourseKind]
	if req.Prerequisites != nil {
		refs, err := s.resolvePrerequisites(ctx, id, *req.Prerequisites)
		if err != nil {
			return nil, err
		}
		prerequisites = refs
	}

	course, err := s.courseRepo.Update(ctx, id, func(c *models.Course) error {
		if req.Code != nil {
			c.Code = *req.Code
		}
		if req.Name != nil {
			c.Name = *req.Name
		}
		if req.Description != nil {
			c.Description = *req.Description
		}
		if req.Credits != nil {
			c.Credits = *req.Credits
		}
		if req.Department != nil {
			c.Department = *req.Department
		}
		if req.Year != nil {
			c.Year = *req.Year
		}
		if req.Semester != nil {
			c.Semester = *req.Semester
		}
		if professor != nil {
			c.Professor = *professor
		}
		if req.MaxStudents != nil {
			c.MaxStudents = *req.MaxStudents
		}
		if req.IsActive != nil {
			active := *req.IsActive
			c.IsActive = &active
		}
		if req.Prerequisites != nil {
			c.Prerequisites = prerequisites
		}
		if p := req.Schedule; p != nil {
			if p.Day != nil {
				c.Schedule.Day = *p.Day
			}
			if p.StartTime != nil {
				c.Schedule.StartTime = *p.StartTime
			}
			if p.EndTime != nil {
				c.Schedule.EndTime = *p.EndTime
			}
			if p.Room != nil {
				c.Schedule.Room = *p.Room
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("code", course.Code).Msg("Course updated")
	return s.joiner.Populate(ctx, course, join.CourseView)
}

// Delete removes a course. Grade entries keep their course snapshot and
// other courses listing it as a prerequisite render it as absent.
func (s *CourseService) Delete(ctx context.Context, id models.ObjectID) error {
	course, err := s.courseRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	s.logger.Info().Str("code", course.Code).Msg("Course deleted")
	return nil
}
