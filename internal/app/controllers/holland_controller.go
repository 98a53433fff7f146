package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emre/scholaris/internal/app/models"
	"github.com/emre/scholaris/internal/app/models/dto"
	"github.com/emre/scholaris/internal/app/services"
	"github.com/emre/scholaris/internal/middleware"
	"github.com/emre/scholaris/internal/pkg/helpers"
)

// HollandController handles vocational-test endpoints
type HollandController struct {
	hollandService services.HollandService
}

// NewHollandController creates a new HollandController
func NewHollandController(hollandService services.HollandService) *HollandController {
	return &HollandController{hollandService: hollandService}
}

// RegisterTest registers a new Holland test
// @Summary Register a Holland test
// @Description Registers a RIASEC assessment for an existing student
// @Tags holland-tests
// @Accept json
// @Produce json
// @Param X-User-Email header string true "Acting user"
// @Param request body dto.CreateHollandTestRequest true "Assessment information"
// @Success 201 {object} dto.APIResponse{data=dto.HollandTestResponse} "Test registered"
// @Failure 400 {object} dto.ErrorResponse "Invalid assessment data"
// @Failure 422 {object} dto.ErrorResponse "Student does not exist"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /holland-tests [post]
func (c *HollandController) RegisterTest(ctx *gin.Context) {
	var req dto.CreateHollandTestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	in, err := req.ToInput()
	if err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	test, err := c.hollandService.RegisterTest(ctx, in, middleware.ActingUser(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.NewHollandTestResponse(test)))
}

// GetTestByID retrieves a Holland test
// @Summary Get Holland test by ID
// @Description Retrieves a single assessment with its derived Holland code
// @Tags holland-tests
// @Produce json
// @Param id path string true "Test ID"
// @Success 200 {object} dto.APIResponse{data=dto.HollandTestResponse} "Test retrieved"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /holland-tests/{id} [get]
func (c *HollandController) GetTestByID(ctx *gin.Context) {
	test, err := c.hollandService.GetTestByID(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewHollandTestResponse(test)))
}

// ListTests lists Holland tests with filters and pagination
// @Summary List Holland tests
// @Description Lists assessments matching the filters
// @Tags holland-tests
// @Produce json
// @Param studentId query string false "Filter by student"
// @Param status query string false "Filter by status" Enums(COMPLETE, INCOMPLETE, INVALIDATED)
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=[]dto.HollandTestResponse} "Tests retrieved"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /holland-tests [get]
func (c *HollandController) ListTests(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	filter := models.HollandFilter{
		StudentID: ctx.Query("studentId"),
		Status:    models.HollandStatus(ctx.Query("status")),
		Page:      page,
		PageSize:  size,
	}

	tests, total, err := c.hollandService.ListTests(ctx, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.HollandTestResponse, len(tests))
	for i, test := range tests {
		responses[i] = dto.NewHollandTestResponse(test)
	}

	ctx.JSON(http.StatusOK, dto.NewPagedResponse(responses, helpers.NewPaginationInfo(total, page, size)))
}

// ListStudentTests lists every test of one student
// @Summary List a student's Holland tests
// @Description Lists every assessment of one student, newest first
// @Tags holland-tests
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.HollandTestResponse} "Tests retrieved"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /holland-tests/student/{id} [get]
func (c *HollandController) ListStudentTests(ctx *gin.Context) {
	tests, err := c.hollandService.ListStudentTests(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.HollandTestResponse, len(tests))
	for i, test := range tests {
		responses[i] = dto.NewHollandTestResponse(test)
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(responses))
}

// UpdateTest partially updates a Holland test
// @Summary Update a Holland test
// @Description Merges the patch onto the stored assessment and re-validates the result
// @Tags holland-tests
// @Accept json
// @Produce json
// @Param X-User-Email header string true "Acting user"
// @Param id path string true "Test ID"
// @Param request body dto.UpdateHollandTestRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.HollandTestResponse} "Test updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid assessment data"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Failure 422 {object} dto.ErrorResponse "Test is invalidated"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /holland-tests/{id} [put]
func (c *HollandController) UpdateTest(ctx *gin.Context) {
	var req dto.UpdateHollandTestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	test, err := c.hollandService.UpdateTest(ctx, ctx.Param("id"), req, middleware.ActingUser(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewHollandTestResponse(test)))
}

// InvalidateTest invalidates a Holland test
// @Summary Invalidate a Holland test
// @Description Transitions an assessment to its INVALIDATED terminal state
// @Tags holland-tests
// @Produce json
// @Param X-User-Email header string true "Acting user"
// @Param id path string true "Test ID"
// @Success 200 {object} dto.APIResponse{data=dto.HollandTestResponse} "Test invalidated"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Failure 422 {object} dto.ErrorResponse "Test already invalidated"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /holland-tests/{id}/invalidate [post]
func (c *HollandController) InvalidateTest(ctx *gin.Context) {
	test, err := c.hollandService.InvalidateTest(ctx, ctx.Param("id"), middleware.ActingUser(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewHollandTestResponse(test)))
}

// DeleteTest permanently removes a Holland test
// @Summary Delete a Holland test
// @Description Permanently removes an assessment that should never have been registered
// @Tags holland-tests
// @Produce json
// @Param X-User-Email header string true "Acting user"
// @Param id path string true "Test ID"
// @Success 200 {object} dto.APIResponse "Test deleted"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /holland-tests/{id} [delete]
func (c *HollandController) DeleteTest(ctx *gin.Context) {
	if err := c.hollandService.DeleteTest(ctx, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Holland test deleted"))
}
