package services

import (
	"context"
	"sort"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/yigit/facultyhub/internal/app/join"
	"github.com/yigit/facultyhub/internal/app/models"
	"github.com/yigit/facultyhub/internal/app/models/dto"
	"github.com/yigit/facultyhub/internal/app/repositories"
	"github.com/yigit/facultyhub/internal/pkg/apperrors"
	"github.com/yigit/facultyhub/internal/pkg/helpers"
	"github.com/yigit/facultyhub/internal/pkg/validation"
)

// StudentService manages students together with their user accounts
type StudentService struct {
	studentRepo *repositories.StudentRepository
	userRepo    *repositories.UserRepository
	joiner      *join.Engine
	logger      zerolog.Logger
}

// NewStudentService creates a new StudentService
func NewStudentService(
	studentRepo *repositories.StudentRepository,
	userRepo *repositories.UserRepository,
	joiner *join.Engine,
	logger zerolog.Logger,
) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
		userRepo:    userRepo,
		joiner:      joiner,
		logger:      logger,
	}
}

// Create stores a student account: the user first, then the profile. If
// the profile cannot be stored the user is removed again.
func (s *StudentService) Create(ctx context.Context, req *dto.CreateStudentRequest) (join.View, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if err := ensureEmailFree(ctx, s.userRepo, req.Email); err != nil {
		return nil, err
	}

	user, err := newAccount(req.Email, req.Password, req.FirstName, req.LastName, models.RoleStudent)
	if err != nil {
		return nil, err
	}
	student := &models.Student{
		StudentID:  req.StudentID,
		Year:       req.Year,
		Semester:   req.Semester,
		Department: req.Department,
		Major:      req.Major,
		Status:     models.StudentActive,
	}

	err = pairedWrite("create student",
		func() error { return s.userRepo.Create(ctx, user) },
		func() error {
			student.User = models.RefTo[models.UserKind](user.ID)
			return s.studentRepo.Create(ctx, student)
		},
		func() error { return deleteUserIfPresent(ctx, s.userRepo, user.ID) },
		func() map[string][]string { return map[string][]string{"users": {user.ID.String()}} },
	)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("studentId", student.StudentID).
		Str("email", user.Email).
		Msg("Student created")
	return s.joiner.Populate(ctx, student, join.StudentView)
}

// checkAccess lets students see only their own profile
func (s *StudentService) checkAccess(actor Actor, student *models.Student) error {
	if actor.Role == models.RoleStudent && student.User.ID != actor.UserID {
		return apperrors.Forbidden("access denied")
	}
	return nil
}

// Get returns a student with the user populated
func (s *StudentService) Get(ctx context.Context, actor Actor, id models.ObjectID) (join.View, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkAccess(actor, student); err != nil {
		return nil, err
	}
	return s.joiner.Populate(ctx, student, join.StudentView)
}

// List returns one page of the students matching filter
func (s *StudentService) List(ctx context.Context, filter dto.StudentFilterRequest, page, size int) ([]join.View, dto.PaginationInfo, error) {
	students, err := s.studentRepo.List(ctx, repositories.StudentFilter{
		Department: filter.Department,
		Year:       filter.Year,
		Status:     filter.Status,
	})
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	pageItems, info := helpers.Paginate(students, page, size)
	views, err := join.PopulateAll(ctx, s.joiner, pageItems, join.StudentView)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	return views, info, nil
}

// Update merges the provided fields into the student and its user
func (s *StudentService) Update(ctx context.Context, actor Actor, id models.ObjectID, req *dto.UpdateStudentRequest) (join.View, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	current, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkAccess(actor, current); err != nil {
		return nil, err
	}

	student, err := s.studentRepo.Update(ctx, id, func(st *models.Student) error {
		if req.Year != nil {
			st.Year = *req.Year
		}
		if req.Semester != nil {
			st.Semester = *req.Semester
		}
		if req.Department != nil {
			st.Department = *req.Department
		}
		if req.Major != nil {
			st.Major = *req.Major
		}
		if req.Status != nil {
			st.Status = *req.Status
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := applyNames(ctx, s.userRepo, student.User.ID, req.FirstName, req.LastName); err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			s.logger.Warn().Str("studentId", student.StudentID).Msg("Student has no user to rename")
		} else {
			return nil, err
		}
	}
	return s.joiner.Populate(ctx, student, join.StudentView)
}

// Delete removes a student and its user. If the user cannot be removed the
// student is put back.
func (s *StudentService) Delete(ctx context.Context, id models.ObjectID) error {
	var removed *models.Student
	err := pairedWrite("delete student",
		func() error {
			var err error
			removed, err = s.studentRepo.Delete(ctx, id)
			return err
		},
		func() error { return deleteUserIfPresent(ctx, s.userRepo, removed.User.ID) },
		func() error { return s.studentRepo.Restore(ctx, *removed) },
		func() map[string][]string { return map[string][]string{"users": {removed.User.ID.String()}} },
	)
	if err != nil {
		return err
	}
	s.logger.Info().Str("studentId", removed.StudentID).Msg("Student deleted")
	return nil
}

// Stats summarizes the student body by status, department and year
func (s *StudentService) Stats(ctx context.Context) (*dto.StudentStatsResponse, error) {
	students, err := s.studentRepo.List(ctx, repositories.StudentFilter{})
	if err != nil {
		return nil, err
	}

	stats := &dto.StudentStatsResponse{TotalStudents: len(students)}
	departments := map[string]int{}
	var departmentOrder []string
	years := map[int]int{}
	for _, st := range students {
		switch st.Status {
		case models.StudentActive:
			stats.ActiveStudents++
		case models.StudentGraduated:
			stats.GraduatedStudents++
		}
		if _, seen := departments[st.Department]; !seen {
			departmentOrder = append(departmentOrder, st.Department)
		}
		departments[st.Department]++
		years[st.Year]++
	}

	stats.DepartmentStats = make([]dto.CountEntry, 0, len(departments))
	for _, d := range departmentOrder {
		stats.DepartmentStats = append(stats.DepartmentStats, dto.CountEntry{ID: d, Count: departments[d]})
	}
	yearKeys := make([]int, 0, len(years))
	for y := range years {
		yearKeys = append(yearKeys, y)
	}
	sort.Ints(yearKeys)
	stats.YearStats = make([]dto.CountEntry, 0, len(years))
	for _, y := range yearKeys {
		stats.YearStats = append(stats.YearStats, dto.CountEntry{ID: strconv.Itoa(y), Count: years[y]})
	}
	return stats, nil
}
