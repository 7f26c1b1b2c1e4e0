package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yigit/facultyhub/internal/app/controllers"
	"github.com/yigit/facultyhub/internal/app/join"
	"github.com/yigit/facultyhub/internal/app/repositories"
	"github.com/yigit/facultyhub/internal/app/services"
	"github.com/yigit/facultyhub/internal/middleware"
	"github.com/yigit/facultyhub/internal/pkg/auth"
	"github.com/yigit/facultyhub/internal/pkg/validation"
	"github.com/yigit/facultyhub/internal/seed"
	"github.com/yigit/facultyhub/internal/store"
)

const (
	studentPassword   = "student123"
	professorPassword = "prof123"
	anaEmail          = "ana.aneva@student.faculty.edu"
	markoEmail        = "marko.markovski@student.faculty.edu"
	elenaEmail        = "elena.stojanova@student.faculty.edu"
	petarEmail        = "petar.petrovski@faculty.edu"
	marijaEmail       = "marija.nikolova@faculty.edu"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	auth.BcryptCost = bcrypt.MinCost
	validation.RegisterGinValidations()
	os.Exit(m.Run())
}

type testAPI struct {
	t      *testing.T
	router *gin.Engine
}

type response struct {
	Status int
	Body   map[string]any
}

func (r response) data() map[string]any {
	d, _ := r.Body["data"].(map[string]any)
	return d
}

func (r response) list() []any {
	l, _ := r.Body["data"].([]any)
	return l
}

func (r response) items() []any {
	items, _ := r.data()["items"].([]any)
	return items
}

func (r response) errorCode() string {
	e, _ := r.Body["error"].(map[string]any)
	code, _ := e["code"].(string)
	return code
}

// newTestAPI serves the full route table over a seeded temporary store
func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	db, err := store.Open(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, db.Init(context.Background()))

	repos := repositories.NewRepositories(db)
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "facultyhub-test",
	})
	svc := services.NewServices(repos, join.New(db), jwtService, nil, zerolog.Nop())
	require.NoError(t, seed.CreateDefaultData(context.Background(), repos, svc, zerolog.Nop()))

	router := gin.New()
	SetupRouter(router, controllers.NewControllers(svc, zerolog.Nop()), middleware.NewAuthMiddleware(jwtService), nil)
	return &testAPI{t: t, router: router}
}

func (a *testAPI) do(method, path, token string, body any) response {
	a.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	resp := response{Status: w.Code}
	if w.Body.Len() > 0 {
		require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &resp.Body), w.Body.String())
	}
	return resp
}

func (a *testAPI) login(email, password string) string {
	a.t.Helper()
	resp := a.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": email, "password": password})
	require.Equal(a.t, http.StatusOK, resp.Status, resp.Body)
	token, _ := resp.data()["token"].(map[string]any)["accessToken"].(string)
	require.NotEmpty(a.t, token)
	return token
}

// idWhere finds the id of the first item whose field equals value
func idWhere(t *testing.T, items []any, field, value string) string {
	t.Helper()
	for _, it := range items {
		m := it.(map[string]any)
		if m[field] == value {
			return store.DocumentID(m["_id"])
		}
	}
	t.Fatalf("no item with %s=%s", field, value)
	return ""
}

func TestHealthAndAuthentication(t *testing.T) {
	api := newTestAPI(t)

	assert.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/health", "", nil).Status)

	resp := api.do(http.MethodGet, "/api/courses", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.Status)

	resp = api.do(http.MethodGet, "/api/courses", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.Status)

	resp = api.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": anaEmail, "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, resp.Status)
	assert.Equal(t, "AUTH_001", resp.errorCode())

	resp = api.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, resp.Status)
	assert.Equal(t, "VAL_001", resp.errorCode())
}

func TestProfileAndPasswordChange(t *testing.T) {
	api := newTestAPI(t)
	token := api.login(anaEmail, studentPassword)

	resp := api.do(http.MethodGet, "/api/auth/profile", token, nil)
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, anaEmail, resp.data()["user"].(map[string]any)["email"])
	assert.Equal(t, "ST001", resp.data()["student"].(map[string]any)["studentId"])

	resp = api.do(http.MethodPut, "/api/auth/change-password", token, map[string]string{
		"currentPassword": "wrong", "newPassword": "newpass1",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Status)

	resp = api.do(http.MethodPut, "/api/auth/change-password", token, map[string]string{
		"currentPassword": studentPassword, "newPassword": "newpass1",
	})
	require.Equal(t, http.StatusOK, resp.Status)
	api.login(anaEmail, "newpass1")
}

func TestRoleGuards(t *testing.T) {
	api := newTestAPI(t)
	student := api.login(anaEmail, studentPassword)
	admin := api.login(seed.AdminEmail, seed.AdminPassword)

	assert.Equal(t, http.StatusForbidden, api.do(http.MethodGet, "/api/students", student, nil).Status)
	assert.Equal(t, http.StatusForbidden, api.do(http.MethodPost, "/api/grades", student, map[string]any{}).Status)
	assert.Equal(t, http.StatusForbidden, api.do(http.MethodGet, "/api/grades/my-grades", admin, nil).Status)

	resp := api.do(http.MethodGet, "/api/students", admin, nil)
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Len(t, resp.items(), 3)

	resp = api.do(http.MethodGet, "/api/students?page=2&size=2", admin, nil)
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Len(t, resp.items(), 1)
	assert.EqualValues(t, 2, resp.data()["pagination"].(map[string]any)["totalPages"])
}

func TestStudentSeesOnlyOwnProfile(t *testing.T) {
	api := newTestAPI(t)
	admin := api.login(seed.AdminEmail, seed.AdminPassword)
	students := api.do(http.MethodGet, "/api/students", admin, nil).items()
	ana := idWhere(t, students, "studentId", "ST001")
	marko := idWhere(t, students, "studentId", "ST002")

	token := api.login(anaEmail, studentPassword)
	assert.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/students/"+ana, token, nil).Status)
	assert.Equal(t, http.StatusForbidden, api.do(http.MethodGet, "/api/students/"+marko, token, nil).Status)

	resp := api.do(http.MethodGet, "/api/students/not-an-id", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.Status)
	assert.Equal(t, "VAL_001", resp.errorCode())

	resp = api.do(http.MethodGet, "/api/students/ffffffffffffffffffffffff", admin, nil)
	assert.Equal(t, http.StatusNotFound, resp.Status)
	assert.Equal(t, "RES_001", resp.errorCode())
}

func TestCourseCRUD(t *testing.T) {
	api := newTestAPI(t)
	admin := api.login(seed.AdminEmail, seed.AdminPassword)
	professors := api.do(http.MethodGet, "/api/professors", admin, nil).items()
	petar := idWhere(t, professors, "professorId", "P001")

	course := map[string]any{
		"code": "CS301", "name": "Оперативни системи", "credits": 6,
		"department": "Computer Science", "year": 3, "semester": 5,
		"professor": petar,
		"schedule":  map[string]string{"day": "Friday", "startTime": "09:00", "endTime": "11:00", "room": "C2"},
	}
	resp := api.do(http.MethodPost, "/api/courses", admin, course)
	require.Equal(t, http.StatusCreated, resp.Status, resp.Body)
	id := store.DocumentID(resp.data()["_id"])

	resp = api.do(http.MethodPost, "/api/courses", admin, course)
	assert.Equal(t, http.StatusConflict, resp.Status)

	resp = api.do(http.MethodPost, "/api/courses", admin, map[string]any{"code": "CS302"})
	assert.Equal(t, http.StatusBadRequest, resp.Status)

	resp = api.do(http.MethodGet, "/api/courses/"+id, admin, nil)
	require.Equal(t, http.StatusOK, resp.Status)
	professor := resp.data()["professor"].(map[string]any)
	assert.Equal(t, "P001", professor["professorId"])

	resp = api.do(http.MethodPut, "/api/courses/"+id, admin, map[string]any{"schedule": map[string]string{"room": "C3"}})
	require.Equal(t, http.StatusOK, resp.Status)
	schedule := resp.data()["schedule"].(map[string]any)
	assert.Equal(t, "C3", schedule["room"])
	assert.Equal(t, "Friday", schedule["day"])

	resp = api.do(http.MethodGet, "/api/courses/professor/"+petar, admin, nil)
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Len(t, resp.list(), 2)

	professorToken := api.login(petarEmail, professorPassword)
	assert.Equal(t, http.StatusForbidden, api.do(http.MethodDelete, "/api/courses/"+id, professorToken, nil).Status)
	assert.Equal(t, http.StatusOK, api.do(http.MethodDelete, "/api/courses/"+id, admin, nil).Status)
	assert.Equal(t, http.StatusNotFound, api.do(http.MethodGet, "/api/courses/"+id, admin, nil).Status)
}

func TestGradeAndNotificationFlow(t *testing.T) {
	api := newTestAPI(t)
	admin := api.login(seed.AdminEmail, seed.AdminPassword)
	students := api.do(http.MethodGet, "/api/students", admin, nil).items()
	marko := idWhere(t, students, "studentId", "ST002")
	courses := api.do(http.MethodGet, "/api/courses", admin, nil).items()
	cs101 := idWhere(t, courses, "code", "CS101")

	professor := api.login(petarEmail, professorPassword)
	grade := map[string]any{
		"studentId": marko, "courseId": cs101, "grade": 8,
		"semester": 2, "academicYear": "2024/2025",
	}
	resp := api.do(http.MethodPost, "/api/grades", professor, grade)
	require.Equal(t, http.StatusCreated, resp.Status, resp.Body)
	assert.Equal(t, false, resp.data()["wasUpdate"])

	grade["grade"] = 10
	resp = api.do(http.MethodPost, "/api/grades", professor, grade)
	require.Equal(t, http.StatusOK, resp.Status, resp.Body)
	assert.Equal(t, true, resp.data()["wasUpdate"])

	grade["grade"] = 4
	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodPost, "/api/grades", professor, grade).Status)

	student := api.login(markoEmail, studentPassword)
	resp = api.do(http.MethodGet, "/api/grades/my-grades", student, nil)
	require.Equal(t, http.StatusOK, resp.Status)
	require.Len(t, resp.list(), 1)
	entry := resp.list()[0].(map[string]any)
	assert.EqualValues(t, 10, entry["grade"])
	assert.Equal(t, "CS101", entry["courseDetails"].(map[string]any)["code"])

	resp = api.do(http.MethodGet, "/api/grades/notifications", student, nil)
	require.Equal(t, http.StatusOK, resp.Status)
	unread := resp.list()
	require.NotEmpty(t, unread)
	first := store.DocumentID(unread[0].(map[string]any)["_id"])

	other := api.login(anaEmail, studentPassword)
	assert.Equal(t, http.StatusNotFound, api.do(http.MethodPut, "/api/grades/notifications/"+first+"/read", other, nil).Status)

	resp = api.do(http.MethodPut, "/api/grades/notifications/"+first+"/read", student, nil)
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, true, resp.data()["isRead"])

	resp = api.do(http.MethodGet, "/api/grades/notifications", student, nil)
	assert.Len(t, resp.list(), len(unread)-1)

	assert.Equal(t, http.StatusForbidden, api.do(http.MethodGet, "/api/grades/notifications", admin, nil).Status)
}

func TestExamRegistrationFlow(t *testing.T) {
	api := newTestAPI(t)
	admin := api.login(seed.AdminEmail, seed.AdminPassword)
	courses := api.do(http.MethodGet, "/api/courses", admin, nil).items()
	cs201 := idWhere(t, courses, "code", "CS201")

	student := api.login(elenaEmail, studentPassword)
	resp := api.do(http.MethodGet, "/api/exam-registrations/available-courses", student, nil)
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Len(t, resp.list(), 3)

	resp = api.do(http.MethodGet, "/api/exam-registrations/professors", student, nil)
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Len(t, resp.list(), 2)

	registration := map[string]any{
		"courseId": cs201, "semester": "summer",
		"examDate": "2025-06-25", "professorName": "Марија Николова",
	}
	resp = api.do(http.MethodPost, "/api/exam-registrations", student, registration)
	require.Equal(t, http.StatusCreated, resp.Status, resp.Body)
	id := store.DocumentID(resp.data()["_id"])
	assert.Equal(t, "pending", resp.data()["status"])

	resp = api.do(http.MethodPost, "/api/exam-registrations", student, registration)
	assert.Equal(t, http.StatusConflict, resp.Status)

	resp = api.do(http.MethodGet, "/api/exam-registrations/my-registrations", student, nil)
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Len(t, resp.list(), 1)

	professor := api.login(marijaEmail, professorPassword)
	resp = api.do(http.MethodGet, "/api/exam-registrations", professor, nil)
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Len(t, resp.list(), 2)

	resp = api.do(http.MethodPut, "/api/exam-registrations/"+id+"/status", professor, map[string]string{"status": "approved"})
	assert.Equal(t, http.StatusForbidden, resp.Status)

	resp = api.do(http.MethodPut, "/api/exam-registrations/"+id+"/status", admin, map[string]string{"status": "approved"})
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, "approved", resp.data()["status"])

	resp = api.do(http.MethodDelete, "/api/exam-registrations/"+id, student, nil)
	assert.Equal(t, http.StatusConflict, resp.Status)
	assert.Equal(t, "RES_005", resp.errorCode())

	marko := api.login(markoEmail, studentPassword)
	mine := api.do(http.MethodGet, "/api/exam-registrations/my-registrations", marko, nil).list()
	require.Len(t, mine, 1)
	markoReg := store.DocumentID(mine[0].(map[string]any)["_id"])

	assert.Equal(t, http.StatusNotFound, api.do(http.MethodDelete, "/api/exam-registrations/"+markoReg, student, nil).Status)
	assert.Equal(t, http.StatusOK, api.do(http.MethodDelete, "/api/exam-registrations/"+markoReg, marko, nil).Status)
}

func TestSchedules(t *testing.T) {
	api := newTestAPI(t)
	student := api.login(anaEmail, studentPassword)

	resp := api.do(http.MethodGet, "/api/schedule/my-schedule", student, nil)
	require.Equal(t, http.StatusOK, resp.Status)
	week := resp.data()["schedule"].(map[string]any)
	assert.Len(t, week, 7)
	assert.Len(t, week["Monday"], 1)
	assert.Len(t, week["Wednesday"], 1)
	assert.Len(t, resp.data()["rawSchedule"], 2)

	resp = api.do(http.MethodGet, "/api/schedule/room/A1", student, nil)
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Len(t, resp.data()["rawSchedule"], 1)

	resp = api.do(http.MethodGet, "/api/schedule/department/Computer%20Science?year=2", student, nil)
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Len(t, resp.data()["rawSchedule"], 1)

	admin := api.login(seed.AdminEmail, seed.AdminPassword)
	students := api.do(http.MethodGet, "/api/students", admin, nil).items()
	elena := idWhere(t, students, "studentId", "ST003")
	assert.Equal(t, http.StatusForbidden, api.do(http.MethodGet, "/api/schedule/student/"+elena, student, nil).Status)

	resp = api.do(http.MethodGet, "/api/schedule/student/"+elena, admin, nil)
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Len(t, resp.data()["schedule"].(map[string]any)["Thursday"], 1)
}

func TestStats(t *testing.T) {
	api := newTestAPI(t)
	admin := api.login(seed.AdminEmail, seed.AdminPassword)

	resp := api.do(http.MethodGet, "/api/stats/dashboard", admin, nil)
	require.Equal(t, http.StatusOK, resp.Status)
	assert.EqualValues(t, 3, resp.data()["totalStudents"])
	assert.EqualValues(t, 2, resp.data()["totalProfessors"])
	assert.EqualValues(t, 3, resp.data()["activeCourses"])
	assert.EqualValues(t, 1, resp.data()["pendingExamRegistrations"])
	assert.EqualValues(t, 9, resp.data()["averageGpa"])

	resp = api.do(http.MethodGet, "/api/stats/activities?limit=1", admin, nil)
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Len(t, resp.list(), 1)

	resp = api.do(http.MethodGet, "/api/students/stats/overview", admin, nil)
	require.Equal(t, http.StatusOK, resp.Status)
	assert.EqualValues(t, 3, resp.data()["totalStudents"])
}

func TestExamRegistrationListViews(t *testing.T) {
	api := newTestAPI(t)

	admin := api.login(seed.AdminEmail, seed.AdminPassword)
	resp := api.do(http.MethodGet, "/api/exam-registrations", admin, nil)
	require.Equal(t, http.StatusOK, resp.Status, resp.Body)
	all := resp.list()
	require.Len(t, all, 1)
	view := all[0].(map[string]any)
	assert.IsType(t, map[string]any{}, view["student"])
	assert.IsType(t, map[string]any{}, view["course"])

	// Petar teaches CS101 only and nobody has registered for it
	petar := api.login(petarEmail, professorPassword)
	resp = api.do(http.MethodGet, "/api/exam-registrations", petar, nil)
	require.Equal(t, http.StatusOK, resp.Status, resp.Body)
	assert.NotNil(t, resp.Body["data"])
	assert.Empty(t, resp.list())
}
