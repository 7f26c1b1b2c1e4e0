package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/yigit/facultyhub/internal/app/models"
	"github.com/yigit/facultyhub/internal/middleware"
)

func testContext(path string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(http.MethodGet, path, nil)
	return ctx, w
}

func TestIDParam(t *testing.T) {
	tests := []struct {
		name  string
		value string
		ok    bool
	}{
		{"valid", "65f1c0ffee0000000000abcd", true},
		{"upper case", "65F1C0FFEE0000000000ABCD", false},
		{"short", "65f1c0ffee", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, w := testContext("/")
			ctx.Params = gin.Params{{Key: "id", Value: tt.value}}

			id, ok := idParam(ctx, "id")
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, models.ObjectID(tt.value), id)
				assert.False(t, ctx.IsAborted())
			} else {
				assert.True(t, ctx.IsAborted())
				assert.Equal(t, http.StatusBadRequest, w.Code)
			}
		})
	}
}

func TestActor(t *testing.T) {
	ctx, w := testContext("/")
	_, ok := actor(ctx)
	assert.False(t, ok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	ctx, _ = testContext("/")
	ctx.Set(middleware.ContextUserID, "65f1c0ffee0000000000abcd")
	ctx.Set(middleware.ContextRole, string(models.RoleProfessor))
	a, ok := actor(ctx)
	assert.True(t, ok)
	assert.Equal(t, models.ObjectID("65f1c0ffee0000000000abcd"), a.UserID)
	assert.False(t, a.IsAdmin())
}
