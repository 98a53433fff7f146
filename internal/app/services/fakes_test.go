package services

import (
	"context"
	"sort"
	"time"

	"github.com/emre/scholaris/internal/app/models"
	"github.com/emre/scholaris/internal/pkg/apperrors"
)

// In-memory repository fakes shared by the service tests.

type fakeStudentRepo struct {
	students map[string]*models.Student
	saveErr  error
}

func newFakeStudentRepo(students ...*models.Student) *fakeStudentRepo {
	repo := &fakeStudentRepo{students: make(map[string]*models.Student)}
	for _, s := range students {
		repo.students[s.ID] = s
	}
	return repo
}

func (r *fakeStudentRepo) Save(_ context.Context, student *models.Student) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.students[student.ID] = student
	return nil
}

func (r *fakeStudentRepo) FindByID(_ context.Context, id string) (*models.Student, error) {
	student, ok := r.students[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("student", id)
	}
	return student, nil
}

func (r *fakeStudentRepo) FindByNationalID(_ context.Context, nationalID string) (*models.Student, error) {
	for _, student := range r.students {
		if student.NationalID == nationalID {
			return student, nil
		}
	}
	return nil, apperrors.NewNotFoundError("student", nationalID)
}

func (r *fakeStudentRepo) FindAll(_ context.Context, filter models.StudentFilter) ([]*models.Student, int64, error) {
	var out []*models.Student
	for _, student := range r.students {
		if filter.Status != "" && student.Status != filter.Status {
			continue
		}
		out = append(out, student)
	}
	return out, int64(len(out)), nil
}

func (r *fakeStudentRepo) Update(_ context.Context, student *models.Student) error {
	if _, ok := r.students[student.ID]; !ok {
		return apperrors.NewNotFoundError("student", student.ID)
	}
	r.students[student.ID] = student
	return nil
}

type fakeCourseRepo struct {
	courses map[string]*models.Course
}

func newFakeCourseRepo(courses ...*models.Course) *fakeCourseRepo {
	repo := &fakeCourseRepo{courses: make(map[string]*models.Course)}
	for _, c := range courses {
		repo.courses[c.ID] = c
	}
	return repo
}

func (r *fakeCourseRepo) Save(_ context.Context, course *models.Course) error {
	r.courses[course.ID] = course
	return nil
}

func (r *fakeCourseRepo) FindByID(_ context.Context, id string) (*models.Course, error) {
	course, ok := r.courses[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("course", id)
	}
	return course, nil
}

func (r *fakeCourseRepo) FindByCode(_ context.Context, code string) (*models.Course, error) {
	for _, course := range r.courses {
		if course.Code == code {
			return course, nil
		}
	}
	return nil, apperrors.NewNotFoundError("course", code)
}

func (r *fakeCourseRepo) FindAll(_ context.Context, filter models.CourseFilter) ([]*models.Course, int64, error) {
	var out []*models.Course
	for _, course := range r.courses {
		if filter.Status != "" && course.Status != filter.Status {
			continue
		}
		out = append(out, course)
	}
	return out, int64(len(out)), nil
}

func (r *fakeCourseRepo) Update(_ context.Context, course *models.Course) error {
	if _, ok := r.courses[course.ID]; !ok {
		return apperrors.NewNotFoundError("course", course.ID)
	}
	r.courses[course.ID] = course
	return nil
}

type fakeAttendanceRepo struct {
	records map[string]*models.Attendance
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]*models.Attendance)}
}

func (r *fakeAttendanceRepo) Save(_ context.Context, attendance *models.Attendance) error {
	r.records[attendance.ID] = attendance
	return nil
}

func (r *fakeAttendanceRepo) FindByID(_ context.Context, id string) (*models.Attendance, error) {
	record, ok := r.records[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("attendance record", id)
	}
	return record, nil
}

func (r *fakeAttendanceRepo) FindByStudentCourseDate(_ context.Context, studentID, courseID string, date time.Time) (*models.Attendance, error) {
	for _, record := range r.records {
		if record.StudentID == studentID && record.CourseID == courseID && record.Date.Equal(date) {
			return record, nil
		}
	}
	return nil, apperrors.NewNotFoundError("attendance record", studentID)
}

func (r *fakeAttendanceRepo) FindAll(_ context.Context, filter models.AttendanceFilter) ([]*models.Attendance, int64, error) {
	var out []*models.Attendance
	for _, record := range r.records {
		if filter.StudentID != "" && record.StudentID != filter.StudentID {
			continue
		}
		if filter.CourseID != "" && record.CourseID != filter.CourseID {
			continue
		}
		out = append(out, record)
	}
	return out, int64(len(out)), nil
}

func (r *fakeAttendanceRepo) Update(_ context.Context, attendance *models.Attendance) error {
	if _, ok := r.records[attendance.ID]; !ok {
		return apperrors.NewNotFoundError("attendance record", attendance.ID)
	}
	r.records[attendance.ID] = attendance
	return nil
}

func (r *fakeAttendanceRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.records[id]; !ok {
		return apperrors.NewNotFoundError("attendance record", id)
	}
	delete(r.records, id)
	return nil
}

func (r *fakeAttendanceRepo) SummarizeByStudent(_ context.Context, studentID string, from, to *time.Time) (*models.AttendanceSummary, error) {
	return r.summarize(func(record *models.Attendance) bool {
		return record.StudentID == studentID
	}, from, to), nil
}

func (r *fakeAttendanceRepo) SummarizeByCourse(_ context.Context, courseID string, from, to *time.Time) (*models.AttendanceSummary, error) {
	return r.summarize(func(record *models.Attendance) bool {
		return record.CourseID == courseID
	}, from, to), nil
}

func (r *fakeAttendanceRepo) summarize(match func(*models.Attendance) bool, from, to *time.Time) *models.AttendanceSummary {
	summary := &models.AttendanceSummary{}
	for _, record := range r.records {
		if !match(record) {
			continue
		}
		if from != nil && record.Date.Before(*from) {
			continue
		}
		if to != nil && record.Date.After(*to) {
			continue
		}
		summary.Total++
		switch record.Status {
		case models.AttendanceStatusPresent:
			summary.Present++
		case models.AttendanceStatusAbsent:
			summary.Absent++
		case models.AttendanceStatusLate:
			summary.Late++
		case models.AttendanceStatusJustified:
			summary.Justified++
		}
	}
	return summary
}

type fakeEventRepo struct {
	events map[string]*models.CalendarEvent
}

func newFakeEventRepo(events ...*models.CalendarEvent) *fakeEventRepo {
	repo := &fakeEventRepo{events: make(map[string]*models.CalendarEvent)}
	for _, e := range events {
		repo.events[e.ID] = e
	}
	return repo
}

func (r *fakeEventRepo) Save(_ context.Context, event *models.CalendarEvent) error {
	r.events[event.ID] = event
	return nil
}

func (r *fakeEventRepo) FindByID(_ context.Context, id string) (*models.CalendarEvent, error) {
	event, ok := r.events[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("calendar event", id)
	}
	return event, nil
}

func (r *fakeEventRepo) FindAll(_ context.Context, filter models.EventFilter) ([]*models.CalendarEvent, int64, error) {
	var out []*models.CalendarEvent
	for _, event := range r.events {
		if filter.Status != "" && event.Status != filter.Status {
			continue
		}
		out = append(out, event)
	}
	return out, int64(len(out)), nil
}

func (r *fakeEventRepo) FindUpcoming(_ context.Context, limit int) ([]*models.CalendarEvent, error) {
	var out []*models.CalendarEvent
	for _, event := range r.events {
		if event.IsPast() || !event.IsActive() {
			continue
		}
		out = append(out, event)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeEventRepo) Update(_ context.Context, event *models.CalendarEvent) error {
	if _, ok := r.events[event.ID]; !ok {
		return apperrors.NewNotFoundError("calendar event", event.ID)
	}
	r.events[event.ID] = event
	return nil
}

func (r *fakeEventRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.events[id]; !ok {
		return apperrors.NewNotFoundError("calendar event", id)
	}
	delete(r.events, id)
	return nil
}

type fakeHollandRepo struct {
	tests map[string]*models.HollandTest
}

func newFakeHollandRepo(tests ...*models.HollandTest) *fakeHollandRepo {
	repo := &fakeHollandRepo{tests: make(map[string]*models.HollandTest)}
	for _, test := range tests {
		repo.tests[test.ID] = test
	}
	return repo
}

func (r *fakeHollandRepo) Save(_ context.Context, test *models.HollandTest) error {
	r.tests[test.ID] = test
	return nil
}

func (r *fakeHollandRepo) FindByID(_ context.Context, id string) (*models.HollandTest, error) {
	test, ok := r.tests[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("Holland test", id)
	}
	return test, nil
}

func (r *fakeHollandRepo) FindAll(_ context.Context, filter models.HollandFilter) ([]*models.HollandTest, int64, error) {
	var out []*models.HollandTest
	for _, test := range r.tests {
		if filter.Status != "" && test.Status != filter.Status {
			continue
		}
		out = append(out, test)
	}
	return out, int64(len(out)), nil
}

func (r *fakeHollandRepo) FindByStudent(_ context.Context, studentID string) ([]*models.HollandTest, error) {
	var out []*models.HollandTest
	for _, test := range r.tests {
		if test.StudentID == studentID {
			out = append(out, test)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TestDate.After(out[j].TestDate) })
	return out, nil
}

func (r *fakeHollandRepo) Update(_ context.Context, test *models.HollandTest) error {
	if _, ok := r.tests[test.ID]; !ok {
		return apperrors.NewNotFoundError("Holland test", test.ID)
	}
	r.tests[test.ID] = test
	return nil
}

func (r *fakeHollandRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.tests[id]; !ok {
		return apperrors.NewNotFoundError("Holland test", id)
	}
	delete(r.tests, id)
	return nil
}

// Model builders shared by the service tests.

func mustStudent(t interface{ Fatalf(string, ...any) }, nationalID string) *models.Student {
	now := time.Now().UTC()
	student, err := models.NewStudent(models.StudentInput{
		NationalID: nationalID,
		FirstName:  "Ana",
		LastName:   "Soto",
		Email:      "ana.soto@school.cl",
		Phone:      "+56911112222",
		BirthDate:  now.AddDate(-12, 0, 0),
		Grade:      8,
		Section:    "A",
		Address:    "Av. Siempre Viva 742",
		EmergencyContact: models.EmergencyContact{
			Name:         "Maria Soto",
			Phone:        "+56933334444",
			Relationship: "mother",
		},
		EnrollmentDate: now.AddDate(0, -6, 0),
	}, "admin@school.cl")
	if err != nil {
		t.Fatalf("building test student: %v", err)
	}
	return student
}

func mustCourse(t interface{ Fatalf(string, ...any) }, code string) *models.Course {
	course, err := models.NewCourse(models.CourseInput{
		Code:         code,
		Name:         "Matematicas 8A",
		Grade:        8,
		Section:      "A",
		Subject:      models.SubjectMathematics,
		TeacherName:  "Pedro Rojas",
		TeacherEmail: "pedro.rojas@school.cl",
		Schedule: []models.ScheduleSlot{
			{Day: models.WeekdayMonday, StartTime: "08:30", EndTime: "10:00"},
		},
		Capacity:     35,
		AcademicYear: 2025,
		Semester:     1,
	}, "admin@school.cl")
	if err != nil {
		t.Fatalf("building test course: %v", err)
	}
	return course
}

func mustHollandTest(t interface{ Fatalf(string, ...any) }, studentID string) *models.HollandTest {
	test, err := models.NewHollandTest(models.HollandTestInput{
		StudentID: studentID,
		TestDate:  time.Now().UTC().AddDate(0, -1, 0),
		Scores: models.RIASECScores{
			Realistic:     40,
			Investigative: 85,
			Artistic:      70,
			Social:        90,
			Enterprising:  55,
			Conventional:  30,
		},
		DominantTypes:   []string{"S", "I", "A"},
		Interpretation:  "Strong social and investigative orientation with artistic leanings.",
		Recommendations: []string{"Psychology", "Medicine"},
		AdministeredBy:  "counselor@school.cl",
	}, "counselor@school.cl")
	if err != nil {
		t.Fatalf("building test Holland assessment: %v", err)
	}
	return test
}

func mustEvent(t interface{ Fatalf(string, ...any) }, daysFromNow int) *models.CalendarEvent {
	today := time.Now().UTC()
	event, err := models.NewCalendarEvent(models.CalendarEventInput{
		Title:          "Parent-teacher meeting",
		EventType:      models.EventTypeMeeting,
		StartDate:      today.AddDate(0, 0, daysFromNow),
		EndDate:        today.AddDate(0, 0, daysFromNow),
		IsAllDay:       true,
		OrganizerEmail: "inspector@school.cl",
	}, "inspector@school.cl")
	if err != nil {
		t.Fatalf("building test event: %v", err)
	}
	return event
}
