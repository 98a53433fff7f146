package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/emre/scholaris/internal/app/models"
	"github.com/emre/scholaris/internal/app/models/dto"
	"github.com/emre/scholaris/internal/app/services"
	"github.com/emre/scholaris/internal/middleware"
	"github.com/emre/scholaris/internal/pkg/helpers"
)

// CalendarEventController handles calendar-related endpoints
type CalendarEventController struct {
	eventService services.CalendarEventService
}

// NewCalendarEventController creates a new CalendarEventController
func NewCalendarEventController(eventService services.CalendarEventService) *CalendarEventController {
	return &CalendarEventController{eventService: eventService}
}

// CreateEvent schedules a new calendar event
// @Summary Create a calendar event
// @Description Schedules a new event in the SCHEDULED state
// @Tags calendar-events
// @Accept json
// @Produce json
// @Param X-User-Email header string true "Acting user"
// @Param request body dto.CreateCalendarEventRequest true "Event information"
// @Success 201 {object} dto.APIResponse{data=models.CalendarEvent} "Event created"
// @Failure 400 {object} dto.ErrorResponse "Invalid event data"
// @Failure 422 {object} dto.ErrorResponse "Linked course does not exist"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /calendar-events [post]
func (c *CalendarEventController) CreateEvent(ctx *gin.Context) {
	var req dto.CreateCalendarEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	in, err := req.ToInput()
	if err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	event, err := c.eventService.CreateEvent(ctx, in, middleware.ActingUser(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(event))
}

// GetEventByID retrieves a calendar event
// @Summary Get event by ID
// @Description Retrieves a single calendar event
// @Tags calendar-events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} dto.APIResponse{data=models.CalendarEvent} "Event retrieved"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /calendar-events/{id} [get]
func (c *CalendarEventController) GetEventByID(ctx *gin.Context) {
	event, err := c.eventService.GetEventByID(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(event))
}

// ListEvents lists calendar events with filters and pagination
// @Summary List events
// @Description Lists calendar events matching the filters
// @Tags calendar-events
// @Produce json
// @Param eventType query string false "Filter by type"
// @Param status query string false "Filter by status" Enums(SCHEDULED, CONFIRMED, CANCELLED, COMPLETED)
// @Param courseId query string false "Filter by linked course"
// @Param dateFrom query string false "Inclusive lower date bound (YYYY-MM-DD)"
// @Param dateTo query string false "Inclusive upper date bound (YYYY-MM-DD)"
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=[]models.CalendarEvent} "Events retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid date filter"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /calendar-events [get]
func (c *CalendarEventController) ListEvents(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	dateFrom, dateTo, ok := parseDateRange(ctx)
	if !ok {
		return
	}

	filter := models.EventFilter{
		EventType: models.EventType(ctx.Query("eventType")),
		Status:    models.EventStatus(ctx.Query("status")),
		CourseID:  ctx.Query("courseId"),
		DateFrom:  dateFrom,
		DateTo:    dateTo,
		Page:      page,
		PageSize:  size,
	}

	events, total, err := c.eventService.ListEvents(ctx, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewPagedResponse(events, helpers.NewPaginationInfo(total, page, size)))
}

// ListUpcomingEvents lists the next scheduled events
// @Summary List upcoming events
// @Description Lists the next non-cancelled events starting today or later
// @Tags calendar-events
// @Produce json
// @Param limit query int false "Maximum events to return (default 10)"
// @Success 200 {object} dto.APIResponse{data=[]models.CalendarEvent} "Events retrieved"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /calendar-events/upcoming [get]
func (c *CalendarEventController) ListUpcomingEvents(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.Query("limit"))

	events, err := c.eventService.ListUpcomingEvents(ctx, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(events))
}

// UpdateEvent partially updates a calendar event
// @Summary Update an event
// @Description Merges the patch onto the stored event and re-validates the result
// @Tags calendar-events
// @Accept json
// @Produce json
// @Param X-User-Email header string true "Acting user"
// @Param id path string true "Event ID"
// @Param request body dto.UpdateCalendarEventRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.CalendarEvent} "Event updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid event data"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 422 {object} dto.ErrorResponse "Event is completed"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /calendar-events/{id} [put]
func (c *CalendarEventController) UpdateEvent(ctx *gin.Context) {
	var req dto.UpdateCalendarEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	event, err := c.eventService.UpdateEvent(ctx, ctx.Param("id"), req, middleware.ActingUser(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(event))
}

// DeleteEvent removes a calendar event
// @Summary Delete an event
// @Description Removes a calendar event entirely
// @Tags calendar-events
// @Produce json
// @Param X-User-Email header string true "Acting user"
// @Param id path string true "Event ID"
// @Success 200 {object} dto.APIResponse "Event deleted"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /calendar-events/{id} [delete]
func (c *CalendarEventController) DeleteEvent(ctx *gin.Context) {
	if err := c.eventService.DeleteEvent(ctx, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Event deleted"))
}
