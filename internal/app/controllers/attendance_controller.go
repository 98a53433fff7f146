package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/emre/scholaris/internal/app/models"
	"github.com/emre/scholaris/internal/app/models/dto"
	"github.com/emre/scholaris/internal/app/services"
	"github.com/emre/scholaris/internal/middleware"
	"github.com/emre/scholaris/internal/pkg/helpers"
)

// AttendanceController handles attendance-related endpoints
type AttendanceController struct {
	attendanceService services.AttendanceService
}

// NewAttendanceController creates a new AttendanceController
func NewAttendanceController(attendanceService services.AttendanceService) *AttendanceController {
	return &AttendanceController{attendanceService: attendanceService}
}

// RecordAttendance registers one attendance record
// @Summary Record attendance
// @Description Registers one attendance record for a (student, course, date) triple
// @Tags attendance
// @Accept json
// @Produce json
// @Param X-User-Email header string true "Acting user"
// @Param request body dto.RecordAttendanceRequest true "Attendance information"
// @Success 201 {object} dto.APIResponse{data=models.Attendance} "Attendance recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid attendance data"
// @Failure 409 {object} dto.ErrorResponse "Record already exists for this triple"
// @Failure 422 {object} dto.ErrorResponse "Student or course does not exist"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attendance [post]
func (c *AttendanceController) RecordAttendance(ctx *gin.Context) {
	var req dto.RecordAttendanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	in, err := req.ToInput()
	if err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	attendance, err := c.attendanceService.RecordAttendance(ctx, in, middleware.ActingUser(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(attendance))
}

// BulkRegister registers attendance for a whole roster
// @Summary Bulk register attendance
// @Description Registers attendance for a roster on one date; invalid entries are skipped and reported
// @Tags attendance
// @Accept json
// @Produce json
// @Param X-User-Email header string true "Acting user"
// @Param request body dto.BulkRegisterRequest true "Roster entries"
// @Success 201 {object} dto.APIResponse{data=dto.BulkRegisterResponse} "Bulk registration processed"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 422 {object} dto.ErrorResponse "Course does not exist"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attendance/bulk [post]
func (c *AttendanceController) BulkRegister(ctx *gin.Context) {
	var req dto.BulkRegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	date, err := helpers.ParseDate(req.Date)
	if err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	entries := make([]services.BulkEntry, len(req.Entries))
	for i, entry := range req.Entries {
		entries[i] = services.BulkEntry{
			StudentID:   entry.StudentID,
			Status:      models.AttendanceStatus(entry.Status),
			ArrivalTime: entry.ArrivalTime,
			Notes:       entry.Notes,
		}
	}

	result, err := c.attendanceService.BulkRegister(ctx, req.CourseID, date, entries, middleware.ActingUser(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	failures := make([]dto.BulkFailureDTO, len(result.Failures))
	for i, failure := range result.Failures {
		failures[i] = dto.BulkFailureDTO{StudentID: failure.StudentID, Reason: failure.Reason}
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.BulkRegisterResponse{
		Created:  result.Created,
		Failures: failures,
		Total:    len(req.Entries),
	}))
}

// GetAttendanceByID retrieves an attendance record
// @Summary Get attendance by ID
// @Description Retrieves a single attendance record
// @Tags attendance
// @Produce json
// @Param id path string true "Attendance ID"
// @Success 200 {object} dto.APIResponse{data=models.Attendance} "Attendance retrieved"
// @Failure 404 {object} dto.ErrorResponse "Attendance not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attendance/{id} [get]
func (c *AttendanceController) GetAttendanceByID(ctx *gin.Context) {
	attendance, err := c.attendanceService.GetAttendanceByID(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(attendance))
}

// ListAttendance lists attendance records with filters and pagination
// @Summary List attendance
// @Description Lists attendance records matching the filters
// @Tags attendance
// @Produce json
// @Param studentId query string false "Filter by student"
// @Param courseId query string false "Filter by course"
// @Param status query string false "Filter by status" Enums(PRESENT, ABSENT, LATE, JUSTIFIED)
// @Param dateFrom query string false "Inclusive lower date bound (YYYY-MM-DD)"
// @Param dateTo query string false "Inclusive upper date bound (YYYY-MM-DD)"
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=[]models.Attendance} "Attendance retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid date filter"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attendance [get]
func (c *AttendanceController) ListAttendance(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	dateFrom, dateTo, ok := parseDateRange(ctx)
	if !ok {
		return
	}

	filter := models.AttendanceFilter{
		StudentID: ctx.Query("studentId"),
		CourseID:  ctx.Query("courseId"),
		Status:    models.AttendanceStatus(ctx.Query("status")),
		DateFrom:  dateFrom,
		DateTo:    dateTo,
		Page:      page,
		PageSize:  size,
	}

	records, total, err := c.attendanceService.ListAttendance(ctx, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewPagedResponse(records, helpers.NewPaginationInfo(total, page, size)))
}

// CorrectAttendance corrects an attendance record
// @Summary Correct attendance
// @Description Replaces status, arrival time and notes; the (student, course, date) identity never changes
// @Tags attendance
// @Accept json
// @Produce json
// @Param X-User-Email header string true "Acting user"
// @Param id path string true "Attendance ID"
// @Param request body dto.CorrectAttendanceRequest true "Corrected fields"
// @Success 200 {object} dto.APIResponse{data=models.Attendance} "Attendance corrected"
// @Failure 400 {object} dto.ErrorResponse "Invalid attendance data"
// @Failure 404 {object} dto.ErrorResponse "Attendance not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attendance/{id} [put]
func (c *AttendanceController) CorrectAttendance(ctx *gin.Context) {
	var req dto.CorrectAttendanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	attendance, err := c.attendanceService.CorrectAttendance(ctx, ctx.Param("id"),
		models.AttendanceStatus(req.Status), req.ArrivalTime, req.Notes, middleware.ActingUser(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(attendance))
}

// DeleteAttendance removes a mistaken attendance record
// @Summary Delete attendance
// @Description Removes an attendance record entirely
// @Tags attendance
// @Produce json
// @Param X-User-Email header string true "Acting user"
// @Param id path string true "Attendance ID"
// @Success 200 {object} dto.APIResponse "Attendance deleted"
// @Failure 404 {object} dto.ErrorResponse "Attendance not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attendance/{id} [delete]
func (c *AttendanceController) DeleteAttendance(ctx *gin.Context) {
	if err := c.attendanceService.DeleteAttendance(ctx, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Attendance deleted"))
}

// GetStudentSummary aggregates a student's attendance
// @Summary Student attendance summary
// @Description Aggregates a student's records, optionally bounded by date range
// @Tags attendance
// @Produce json
// @Param id path string true "Student ID"
// @Param dateFrom query string false "Inclusive lower date bound (YYYY-MM-DD)"
// @Param dateTo query string false "Inclusive upper date bound (YYYY-MM-DD)"
// @Success 200 {object} dto.APIResponse{data=models.AttendanceSummary} "Summary retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid date filter"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attendance/summary/student/{id} [get]
func (c *AttendanceController) GetStudentSummary(ctx *gin.Context) {
	dateFrom, dateTo, ok := parseDateRange(ctx)
	if !ok {
		return
	}

	summary, err := c.attendanceService.GetStudentSummary(ctx, ctx.Param("id"), dateFrom, dateTo)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(summary))
}

// GetCourseSummary aggregates a course's attendance
// @Summary Course attendance summary
// @Description Aggregates a course's records, optionally bounded by date range or pinned to one date
// @Tags attendance
// @Produce json
// @Param id path string true "Course ID"
// @Param date query string false "Exact date (YYYY-MM-DD); overrides dateFrom/dateTo"
// @Param dateFrom query string false "Inclusive lower date bound (YYYY-MM-DD)"
// @Param dateTo query string false "Inclusive upper date bound (YYYY-MM-DD)"
// @Success 200 {object} dto.APIResponse{data=models.AttendanceSummary} "Summary retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid date filter"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attendance/summary/course/{id} [get]
func (c *AttendanceController) GetCourseSummary(ctx *gin.Context) {
	dateFrom, dateTo, ok := parseDateRange(ctx)
	if !ok {
		return
	}
	if raw := ctx.Query("date"); raw != "" {
		parsed, err := helpers.ParseDate(raw)
		if err != nil {
			middleware.HandleBindingError(ctx, err)
			return
		}
		// An exact date is the one-day range.
		dateFrom, dateTo = &parsed, &parsed
	}

	summary, err := c.attendanceService.GetCourseSummary(ctx, ctx.Param("id"), dateFrom, dateTo)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(summary))
}

// parseDateRange reads the optional dateFrom/dateTo query parameters. It
// writes the error response itself and returns ok=false on bad input.
func parseDateRange(ctx *gin.Context) (from, to *time.Time, ok bool) {
	if raw := ctx.Query("dateFrom"); raw != "" {
		parsed, err := helpers.ParseDate(raw)
		if err != nil {
			middleware.HandleBindingError(ctx, err)
			return nil, nil, false
		}
		from = &parsed
	}
	if raw := ctx.Query("dateTo"); raw != "" {
		parsed, err := helpers.ParseDate(raw)
		if err != nil {
			middleware.HandleBindingError(ctx, err)
			return nil, nil, false
		}
		to = &parsed
	}
	return from, to, true
}
