// Package models holds the validated domain entities. Every entity comes
// out of a factory that either returns a fully valid, immutable value or a
// ValidationError naming the violated rule; there is no construct-then-
// validate step anywhere.
package models

// StudentFilter scopes student listing queries. An empty Status means the
// caller supplied no filter; the service layer then defaults to ACTIVE.
type StudentFilter struct {
	Status   StudentStatus
	Grade    int
	Section  string
	Page     int
	PageSize int
}

// CourseFilter scopes course listing queries. Same ACTIVE default as
// StudentFilter.
type CourseFilter struct {
	Status       CourseStatus
	Grade        int
	Subject      Subject
	AcademicYear int
	Semester     int
	Page         int
	PageSize     int
}
