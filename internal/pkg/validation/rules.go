package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Validation rule patterns
var (
	// Email validation pattern
	EmailPattern = `^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`

	// Time-of-day pattern, 24-hour HH:mm
	TimeOfDayPattern = `^([01]\d|2[0-3]):[0-5]\d$`

	// National identity number: 7-8 digit body, dash, check character
	NationalIDPattern = `^\d{7,8}-[0-9Kk]$`

	// Course code: subject abbreviation, grade, academic year
	CourseCodePattern = `^[A-Z]{2,4}-([1-9]|1[0-2])-\d{4}$`

	// Name validation min/max length
	NameMinLength = 2
	NameMaxLength = 100
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	Email      *regexp.Regexp
	TimeOfDay  *regexp.Regexp
	NationalID *regexp.Regexp
	CourseCode *regexp.Regexp
}{
	Email:      regexp.MustCompile(EmailPattern),
	TimeOfDay:  regexp.MustCompile(TimeOfDayPattern),
	NationalID: regexp.MustCompile(NationalIDPattern),
	CourseCode: regexp.MustCompile(CourseCodePattern),
}

// IsEmail reports whether s is a syntactically valid email address
func IsEmail(s string) bool {
	return CompiledPatterns.Email.MatchString(s)
}

// IsTimeOfDay reports whether s is a well-formed 24-hour HH:mm time
func IsTimeOfDay(s string) bool {
	return CompiledPatterns.TimeOfDay.MatchString(s)
}

// IsCourseCode reports whether s matches the SUBJECT-grade-year code shape
func IsCourseCode(s string) bool {
	return CompiledPatterns.CourseCode.MatchString(s)
}

// MinutesOfDay converts an HH:mm string to minutes since midnight.
// Times compare correctly as plain integers after conversion.
func MinutesOfDay(s string) (int, error) {
	if !IsTimeOfDay(s) {
		return 0, fmt.Errorf("invalid time of day: %q", s)
	}
	parts := strings.SplitN(s, ":", 2)
	hours, _ := strconv.Atoi(parts[0])
	minutes, _ := strconv.Atoi(parts[1])
	return hours*60 + minutes, nil
}

// IsName reports whether s is a usable person/title name
func IsName(s string) bool {
	trimmed := strings.TrimSpace(s)
	return len(trimmed) >= NameMinLength && len(trimmed) <= NameMaxLength
}
