package join

import "github.com/yigit/facultyhub/internal/store"

var userSummary = []string{"email", "firstName", "lastName", "role"}

// Views used by the API.
var (
	StudentView = Spec{
		{Path: "user", From: store.Users, Project: userSummary},
	}

	ProfessorView = Spec{
		{Path: "user", From: store.Users, Project: userSummary},
	}

	CourseView = Spec{
		{
			Path:    "professor",
			From:    store.Professors,
			Project: []string{"professorId", "department", "title"},
			Nested: Spec{
				{Path: "user", From: store.Users, Project: []string{"firstName", "lastName", "email"}},
			},
		},
		{Path: "prerequisites", From: store.Courses, Project: []string{"code", "name"}},
	}

	ExamRegistrationView = Spec{
		{
			Path:    "studentId",
			As:      "student",
			From:    store.Students,
			Project: []string{"studentId", "year", "department"},
			Nested: Spec{
				{Path: "user", From: store.Users, Project: []string{"firstName", "lastName", "email"}},
			},
		},
		{Path: "courseId", As: "course", From: store.Courses, Project: []string{"code", "name", "credits", "schedule"}},
	}
)
