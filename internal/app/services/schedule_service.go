package services

import (
	"context"
	"sort"

	"github.com/rs/zerolog"
	"github.com/yigit/facultyhub/internal/app/models"
	"github.com/yigit/facultyhub/internal/app/models/dto"
	"github.com/yigit/facultyhub/internal/app/repositories"
	"github.com/yigit/facultyhub/internal/pkg/apperrors"
)

// ScheduleService builds weekly timetables out of the active courses
type ScheduleService struct {
	courseRepo    *repositories.CourseRepository
	studentRepo   *repositories.StudentRepository
	professorRepo *repositories.ProfessorRepository
	userRepo      *repositories.UserRepository
	logger        zerolog.Logger
}

// NewScheduleService creates a new ScheduleService
func NewScheduleService(
	courseRepo *repositories.CourseRepository,
	studentRepo *repositories.StudentRepository,
	professorRepo *repositories.ProfessorRepository,
	userRepo *repositories.UserRepository,
	logger zerolog.Logger,
) *ScheduleService {
	return &ScheduleService{
		courseRepo:    courseRepo,
		studentRepo:   studentRepo,
		professorRepo: professorRepo,
		userRepo:      userRepo,
		logger:        logger,
	}
}

// GroupByDay sorts courses into Monday..Sunday, each day ordered by start
// time. Courses without a known day are left out of the grouping.
func GroupByDay(courses []models.Course) dto.WeekSchedule {
	byDay := make(map[models.Weekday][]models.Course, len(models.Week))
	for _, c := range courses {
		byDay[c.Schedule.Day] = append(byDay[c.Schedule.Day], c)
	}

	week := make(dto.WeekSchedule, 0, len(models.Week))
	for _, day := range models.Week {
		list := byDay[day]
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Schedule.StartTime < list[j].Schedule.StartTime
		})
		courses := make([]interface{}, 0, len(list))
		for _, c := range list {
			courses = append(courses, c)
		}
		week = append(week, dto.DaySchedule{Day: day, Courses: courses})
	}
	return week
}

func scheduleResponse(owner interface{}, courses []models.Course) *dto.ScheduleResponse {
	raw := make([]interface{}, 0, len(courses))
	for _, c := range courses {
		raw = append(raw, c)
	}
	return &dto.ScheduleResponse{
		Owner:       owner,
		Schedule:    GroupByDay(courses),
		RawSchedule: raw,
	}
}

func (s *ScheduleService) studentCourses(ctx context.Context, student *models.Student) ([]models.Course, error) {
	return s.courseRepo.List(ctx, repositories.CourseFilter{
		Department: student.Department,
		Year:       student.Year,
		Semester:   student.Semester,
		ActiveOnly: true,
	})
}

// ForUser returns the timetable of the logged in user: the courses of the
// student's department, year and semester, or the courses a professor
// teaches. Administrators and users without a profile get an empty week.
func (s *ScheduleService) ForUser(ctx context.Context, userID models.ObjectID) (*dto.ScheduleResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	var courses []models.Course
	switch user.Role {
	case models.RoleStudent:
		student, err := s.studentRepo.GetByUser(ctx, userID)
		if err != nil && !apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		if student != nil {
			if courses, err = s.studentCourses(ctx, student); err != nil {
				return nil, err
			}
		}
	case models.RoleProfessor:
		professor, err := s.professorRepo.GetByUser(ctx, userID)
		if err != nil && !apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		if professor != nil {
			courses, err = s.courseRepo.List(ctx, repositories.CourseFilter{Professor: professor.ID, ActiveOnly: true})
			if err != nil {
				return nil, err
			}
		}
	}
	return scheduleResponse(nil, courses), nil
}

// ForStudent returns a student's timetable
func (s *ScheduleService) ForStudent(ctx context.Context, studentID models.ObjectID) (*dto.ScheduleResponse, error) {
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	courses, err := s.studentCourses(ctx, student)
	if err != nil {
		return nil, err
	}
	return scheduleResponse(student, courses), nil
}

// ForProfessor returns the timetable of the courses a professor teaches
func (s *ScheduleService) ForProfessor(ctx context.Context, professorID models.ObjectID) (*dto.ScheduleResponse, error) {
	if _, err := s.professorRepo.GetByID(ctx, professorID); err != nil {
		return nil, err
	}
	courses, err := s.courseRepo.List(ctx, repositories.CourseFilter{Professor: professorID, ActiveOnly: true})
	if err != nil {
		return nil, err
	}
	return scheduleResponse(nil, courses), nil
}

// ForDepartment returns a department's timetable, optionally narrowed to a
// year and semester
func (s *ScheduleService) ForDepartment(ctx context.Context, department string, year, semester int) (*dto.ScheduleResponse, error) {
	courses, err := s.courseRepo.List(ctx, repositories.CourseFilter{
		Department: department,
		Year:       year,
		Semester:   semester,
		ActiveOnly: true,
	})
	if err != nil {
		return nil, err
	}
	owner := map[string]interface{}{"department": department}
	if year != 0 {
		owner["year"] = year
	}
	if semester != 0 {
		owner["semester"] = semester
	}
	return scheduleResponse(owner, courses), nil
}

// ForRoom returns the courses held in a room, which doubles as its
// availability
func (s *ScheduleService) ForRoom(ctx context.Context, room string) (*dto.ScheduleResponse, error) {
	courses, err := s.courseRepo.List(ctx, repositories.CourseFilter{Room: room, ActiveOnly: true})
	if err != nil {
		return nil, err
	}
	return scheduleResponse(map[string]interface{}{"room": room}, courses), nil
}
