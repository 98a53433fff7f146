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

// StudentController handles student-related endpoints
type StudentController struct {
	studentService services.StudentService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService services.StudentService) *StudentController {
	return &StudentController{studentService: studentService}
}

// CreateStudent registers a new student
// @Summary Register a student
// @Description Registers a new ACTIVE student with a unique national ID
// @Tags students
// @Accept json
// @Produce json
// @Param X-User-Email header string true "Acting user"
// @Param request body dto.CreateStudentRequest true "Student information"
// @Success 201 {object} dto.APIResponse{data=models.Student} "Student created"
// @Failure 400 {object} dto.ErrorResponse "Invalid student data"
// @Failure 409 {object} dto.ErrorResponse "National ID already registered"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students [post]
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	in, err := req.ToInput()
	if err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	student, err := c.studentService.CreateStudent(ctx, in, middleware.ActingUser(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(student))
}

// GetStudentByID retrieves a student
// @Summary Get student by ID
// @Description Retrieves a single student record
// @Tags students
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} dto.APIResponse{data=models.Student} "Student retrieved"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{id} [get]
func (c *StudentController) GetStudentByID(ctx *gin.Context) {
	student, err := c.studentService.GetStudentByID(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(student))
}

// ListStudents lists students with filters and pagination
// @Summary List students
// @Description Lists students; without a status filter only ACTIVE students are returned
// @Tags students
// @Produce json
// @Param status query string false "Filter by status" Enums(ACTIVE, INACTIVE, WITHDRAWN)
// @Param grade query int false "Filter by grade"
// @Param section query string false "Filter by section"
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=[]models.Student} "Students retrieved"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students [get]
func (c *StudentController) ListStudents(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	grade, _ := strconv.Atoi(ctx.Query("grade"))

	filter := models.StudentFilter{
		Status:   models.StudentStatus(ctx.Query("status")),
		Grade:    grade,
		Section:  ctx.Query("section"),
		Page:     page,
		PageSize: size,
	}

	students, total, err := c.studentService.ListStudents(ctx, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewPagedResponse(students, helpers.NewPaginationInfo(total, page, size)))
}

// UpdateStudent partially updates a student
// @Summary Update a student
// @Description Merges the patch onto the stored student and re-validates the result
// @Tags students
// @Accept json
// @Produce json
// @Param X-User-Email header string true "Acting user"
// @Param id path string true "Student ID"
// @Param request body dto.UpdateStudentRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Student} "Student updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid student data"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 409 {object} dto.ErrorResponse "National ID already registered"
// @Failure 422 {object} dto.ErrorResponse "Student is withdrawn"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{id} [put]
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	var req dto.UpdateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	student, err := c.studentService.UpdateStudent(ctx, ctx.Param("id"), req, middleware.ActingUser(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(student))
}

// RemoveStudent withdraws a student
// @Summary Withdraw a student
// @Description Soft-deletes the student by transitioning to WITHDRAWN
// @Tags students
// @Produce json
// @Param X-User-Email header string true "Acting user"
// @Param id path string true "Student ID"
// @Success 200 {object} dto.APIResponse "Student withdrawn"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 422 {object} dto.ErrorResponse "Student already withdrawn"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{id} [delete]
func (c *StudentController) RemoveStudent(ctx *gin.Context) {
	if err := c.studentService.RemoveStudent(ctx, ctx.Param("id"), middleware.ActingUser(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Student withdrawn"))
}
