package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/emre/scholaris/internal/app/models"
	"github.com/emre/scholaris/internal/app/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubAttendanceService records the summary bounds the controller resolves
// from the query string. The embedded interface covers the methods the
// tests never reach.
type stubAttendanceService struct {
	services.AttendanceService
	courseID string
	from, to *time.Time
}

func (s *stubAttendanceService) GetCourseSummary(_ context.Context, courseID string, from, to *time.Time) (*models.AttendanceSummary, error) {
	s.courseID = courseID
	s.from, s.to = from, to
	return &models.AttendanceSummary{}, nil
}

func courseSummaryRequest(t *testing.T, stub *stubAttendanceService, query string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/attendance/summary/course/course-1"+query, nil)
	ctx.Params = gin.Params{{Key: "id", Value: "course-1"}}

	NewAttendanceController(stub).GetCourseSummary(ctx)
	return w
}

func TestGetCourseSummaryExactDate(t *testing.T) {
	stub := &stubAttendanceService{}
	w := courseSummaryRequest(t, stub, "?date=2026-08-20")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if stub.courseID != "course-1" {
		t.Errorf("courseID = %q, want course-1", stub.courseID)
	}

	want, _ := time.Parse("2006-01-02", "2026-08-20")
	if stub.from == nil || stub.to == nil {
		t.Fatalf("bounds = %v..%v, want both set", stub.from, stub.to)
	}
	if !stub.from.Equal(want) || !stub.to.Equal(want) {
		t.Errorf("bounds = %v..%v, want both %v", stub.from, stub.to, want)
	}
}

func TestGetCourseSummaryExactDateOverridesRange(t *testing.T) {
	stub := &stubAttendanceService{}
	w := courseSummaryRequest(t, stub, "?date=2026-08-20&dateFrom=2026-01-01&dateTo=2026-12-31")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	want, _ := time.Parse("2006-01-02", "2026-08-20")
	if stub.from == nil || stub.to == nil || !stub.from.Equal(want) || !stub.to.Equal(want) {
		t.Errorf("bounds = %v..%v, want the exact date on both", stub.from, stub.to)
	}
}

func TestGetCourseSummaryDateRange(t *testing.T) {
	stub := &stubAttendanceService{}
	w := courseSummaryRequest(t, stub, "?dateFrom=2026-03-01&dateTo=2026-03-31")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	from, _ := time.Parse("2006-01-02", "2026-03-01")
	to, _ := time.Parse("2006-01-02", "2026-03-31")
	if stub.from == nil || !stub.from.Equal(from) {
		t.Errorf("from = %v, want %v", stub.from, from)
	}
	if stub.to == nil || !stub.to.Equal(to) {
		t.Errorf("to = %v, want %v", stub.to, to)
	}
}

func TestGetCourseSummaryBadDate(t *testing.T) {
	stub := &stubAttendanceService{}
	w := courseSummaryRequest(t, stub, "?date=20/08/2026")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if stub.from != nil || stub.to != nil {
		t.Error("service reached despite invalid date")
	}
}
