// Package services holds the use-case orchestrators. Each service depends
// on repository interfaces declared in this package and implemented by
// internal/app/repositories; dependencies are passed explicitly through
// constructors, there is no registry or container.
//
// Services defined in this package:
// - StudentService: student records and their ACTIVE/INACTIVE/WITHDRAWN lifecycle
// - CourseService: course rosters and the finalize transition
// - AttendanceService: single and bulk attendance registration plus summaries
// - CalendarEventService: school calendar entries
// - HollandService: Holland/RIASEC vocational-interest assessments
package services
