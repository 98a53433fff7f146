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

// CourseController handles course-related endpoints
type CourseController struct {
	courseService services.CourseService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService services.CourseService) *CourseController {
	return &CourseController{courseService: courseService}
}

// CreateCourse opens a new course
// @Summary Create a course
// @Description Creates a new ACTIVE course with a unique code
// @Tags courses
// @Accept json
// @Produce json
// @Param X-User-Email header string true "Acting user"
// @Param request body dto.CreateCourseRequest true "Course information"
// @Success 201 {object} dto.APIResponse{data=models.Course} "Course created"
// @Failure 400 {object} dto.ErrorResponse "Invalid course data"
// @Failure 409 {object} dto.ErrorResponse "Course code already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req dto.CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	course, err := c.courseService.CreateCourse(ctx, req.ToInput(), middleware.ActingUser(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(course))
}

// GetCourseByID retrieves a course
// @Summary Get course by ID
// @Description Retrieves a single course record
// @Tags courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} dto.APIResponse{data=models.Course} "Course retrieved"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id} [get]
func (c *CourseController) GetCourseByID(ctx *gin.Context) {
	course, err := c.courseService.GetCourseByID(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(course))
}

// ListCourses lists courses with filters and pagination
// @Summary List courses
// @Description Lists courses; without a status filter only ACTIVE courses are returned
// @Tags courses
// @Produce json
// @Param status query string false "Filter by status" Enums(ACTIVE, INACTIVE, FINALIZED)
// @Param grade query int false "Filter by grade"
// @Param subject query string false "Filter by subject"
// @Param academicYear query int false "Filter by academic year"
// @Param semester query int false "Filter by semester"
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=[]models.Course} "Courses retrieved"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	grade, _ := strconv.Atoi(ctx.Query("grade"))
	academicYear, _ := strconv.Atoi(ctx.Query("academicYear"))
	semester, _ := strconv.Atoi(ctx.Query("semester"))

	filter := models.CourseFilter{
		Status:       models.CourseStatus(ctx.Query("status")),
		Grade:        grade,
		Subject:      models.Subject(ctx.Query("subject")),
		AcademicYear: academicYear,
		Semester:     semester,
		Page:         page,
		PageSize:     size,
	}

	courses, total, err := c.courseService.ListCourses(ctx, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewPagedResponse(courses, helpers.NewPaginationInfo(total, page, size)))
}

// UpdateCourse partially updates a course
// @Summary Update a course
// @Description Merges the patch onto the stored course and re-validates the result
// @Tags courses
// @Accept json
// @Produce json
// @Param X-User-Email header string true "Acting user"
// @Param id path string true "Course ID"
// @Param request body dto.UpdateCourseRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Course} "Course updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid course data"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 409 {object} dto.ErrorResponse "Course code already exists"
// @Failure 422 {object} dto.ErrorResponse "Course is finalized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	var req dto.UpdateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	course, err := c.courseService.UpdateCourse(ctx, ctx.Param("id"), req, middleware.ActingUser(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(course))
}

// FinalizeCourse finalizes a course
// @Summary Finalize a course
// @Description Transitions the course to its FINALIZED terminal state
// @Tags courses
// @Produce json
// @Param X-User-Email header string true "Acting user"
// @Param id path string true "Course ID"
// @Success 200 {object} dto.APIResponse "Course finalized"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 422 {object} dto.ErrorResponse "Course already finalized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id} [delete]
func (c *CourseController) FinalizeCourse(ctx *gin.Context) {
	if err := c.courseService.FinalizeCourse(ctx, ctx.Param("id"), middleware.ActingUser(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Course finalized"))
}
