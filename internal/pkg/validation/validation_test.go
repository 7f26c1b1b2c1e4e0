package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/facultyhub/internal/pkg/apperrors"
)

type sample struct {
	ID           string `json:"id" binding:"required,objectid"`
	AcademicYear string `json:"academicYear" binding:"required,academicyear"`
	ExamDate     string `json:"examDate" binding:"omitempty,isodate"`
	StartTime    string `json:"startTime" binding:"omitempty,clock"`
	Grade        int    `json:"grade" binding:"min=5,max=10"`
}

func TestStruct(t *testing.T) {
	valid := sample{ID: "65a1b2c3d4e5f60718293a4b", AcademicYear: "2024/2025", ExamDate: "2024-06-01", StartTime: "09:30", Grade: 8}
	require.NoError(t, Struct(valid))

	tests := []struct {
		name  string
		edit  func(*sample)
		field string
	}{
		{"bad id", func(s *sample) { s.ID = "ST001" }, "id"},
		{"year not consecutive", func(s *sample) { s.AcademicYear = "2024/2026" }, "academicYear"},
		{"bad date", func(s *sample) { s.ExamDate = "01.06.2024" }, "examDate"},
		{"bad clock", func(s *sample) { s.StartTime = "25:00" }, "startTime"},
		{"grade too low", func(s *sample) { s.Grade = 4 }, "grade"},
		{"grade too high", func(s *sample) { s.Grade = 11 }, "grade"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			tt.edit(&s)
			err := Struct(s)
			require.ErrorIs(t, err, apperrors.ErrValidation)

			var ce *apperrors.CustomError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tt.field, ce.Field)
			assert.Contains(t, ce.Details, tt.field)
		})
	}
}

func TestIsISODate(t *testing.T) {
	assert.True(t, IsISODate("2025-01-20"))
	assert.True(t, IsISODate("2025-01-20T09:00:00.000Z"))
	assert.False(t, IsISODate("2025-13-01"))
	assert.False(t, IsISODate(""))
}

func TestNumericValidation(t *testing.T) {
	assert.True(t, NewNumericValidation(5).WithMin(5).WithMax(10).Validate())
	assert.False(t, NewNumericValidation(0).WithMin(1).Validate())
	assert.False(t, NewNumericValidation(11).WithMin(5).WithMax(10).Validate())
	assert.True(t, NewNumericValidation(-3).Validate())
}

func TestStringValidation(t *testing.T) {
	assert.False(t, NewStringValidation("   ").Validate())
	assert.True(t, NewStringValidation("").WithRequired(false).Validate())
	assert.True(t, NewStringValidation("CS101").WithPattern(CompiledPatterns.CourseCode).Validate())
	assert.False(t, NewStringValidation("cs 101").WithPattern(CompiledPatterns.CourseCode).Validate())
}
