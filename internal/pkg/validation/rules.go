package validation

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// CompiledPatterns holds the formats shared by the gin validators and the
// services.
var CompiledPatterns = struct {
	ObjectID     *regexp.Regexp // 24 lowercase hex characters
	AcademicYear *regexp.Regexp // 2024/2025
	Clock        *regexp.Regexp // 24h HH:MM
	CourseCode   *regexp.Regexp // CS101, MATH-2
}{
	ObjectID:     regexp.MustCompile(`^[0-9a-f]{24}$`),
	AcademicYear: regexp.MustCompile(`^(\d{4})/(\d{4})$`),
	Clock:        regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`),
	CourseCode:   regexp.MustCompile(`^[A-Z0-9\-]{2,16}$`),
}

// IsISODate accepts a calendar date (2024-06-01) or a full RFC 3339
// timestamp, the two shapes the web client sends for exam dates.
func IsISODate(s string) bool {
	for _, layout := range []string{time.DateOnly, time.RFC3339Nano} {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

// IsAcademicYear checks "YYYY/YYYY" where the second year follows the first.
func IsAcademicYear(s string) bool {
	m := CompiledPatterns.AcademicYear.FindStringSubmatch(s)
	if m == nil {
		return false
	}
	first, _ := strconv.Atoi(m[1])
	second, _ := strconv.Atoi(m[2])
	return second == first+1
}

// StringValidation checks a free-text value. Surrounding whitespace does not
// count towards a required value.
type StringValidation struct {
	value    string
	required bool
	pattern  *regexp.Regexp
}

func NewStringValidation(value string) *StringValidation {
	return &StringValidation{value: value, required: true}
}

func (v *StringValidation) WithRequired(required bool) *StringValidation {
	v.required = required
	return v
}

func (v *StringValidation) WithPattern(pattern *regexp.Regexp) *StringValidation {
	v.pattern = pattern
	return v
}

func (v *StringValidation) Validate() bool {
	value := strings.TrimSpace(v.value)
	if value == "" {
		return !v.required
	}
	return v.pattern == nil || v.pattern.MatchString(value)
}

// NumericValidation checks an int against optional inclusive bounds.
type NumericValidation struct {
	value    int
	min, max *int
}

func NewNumericValidation(value int) *NumericValidation {
	return &NumericValidation{value: value}
}

func (v *NumericValidation) WithMin(min int) *NumericValidation {
	v.min = &min
	return v
}

func (v *NumericValidation) WithMax(max int) *NumericValidation {
	v.max = &max
	return v
}

func (v *NumericValidation) Validate() bool {
	if v.min != nil && v.value < *v.min {
		return false
	}
	return v.max == nil || v.value <= *v.max
}
