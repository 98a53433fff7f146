package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emre/scholaris/internal/app/controllers"
	"github.com/emre/scholaris/internal/app/models/dto"
	"github.com/emre/scholaris/internal/middleware"
	"github.com/emre/scholaris/internal/pkg/metrics"
)

// SetupRouter configures all application routes. Read endpoints are open;
// every write runs behind the identity middleware so audit fields always
// carry a real acting user.
func SetupRouter(
	router *gin.Engine,
	studentController *controllers.StudentController,
	courseController *controllers.CourseController,
	attendanceController *controllers.AttendanceController,
	calendarEventController *controllers.CalendarEventController,
	hollandController *controllers.HollandController,
) {
	router.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, dto.NewMessageResponse("ok"))
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	v1 := router.Group("/api/v1")
	identified := middleware.RequireIdentity()

	students := v1.Group("/students")
	{
		students.GET("", studentController.ListStudents)
		students.GET("/:id", studentController.GetStudentByID)
		students.POST("", identified, studentController.CreateStudent)
		students.PUT("/:id", identified, studentController.UpdateStudent)
		students.DELETE("/:id", identified, studentController.RemoveStudent)
	}

	courses := v1.Group("/courses")
	{
		courses.GET("", courseController.ListCourses)
		courses.GET("/:id", courseController.GetCourseByID)
		courses.POST("", identified, courseController.CreateCourse)
		courses.PUT("/:id", identified, courseController.UpdateCourse)
		courses.DELETE("/:id", identified, courseController.FinalizeCourse)
	}

	attendance := v1.Group("/attendance")
	{
		attendance.GET("", attendanceController.ListAttendance)
		attendance.GET("/summary/student/:id", attendanceController.GetStudentSummary)
		attendance.GET("/summary/course/:id", attendanceController.GetCourseSummary)
		attendance.GET("/:id", attendanceController.GetAttendanceByID)
		attendance.POST("", identified, attendanceController.RecordAttendance)
		attendance.POST("/bulk", identified, attendanceController.BulkRegister)
		attendance.PUT("/:id", identified, attendanceController.CorrectAttendance)
		attendance.DELETE("/:id", identified, attendanceController.DeleteAttendance)
	}

	events := v1.Group("/calendar-events")
	{
		events.GET("", calendarEventController.ListEvents)
		events.GET("/upcoming", calendarEventController.ListUpcomingEvents)
		events.GET("/:id", calendarEventController.GetEventByID)
		events.POST("", identified, calendarEventController.CreateEvent)
		events.PUT("/:id", identified, calendarEventController.UpdateEvent)
		events.DELETE("/:id", identified, calendarEventController.DeleteEvent)
	}

	hollandTests := v1.Group("/holland-tests")
	{
		hollandTests.GET("", hollandController.ListTests)
		hollandTests.GET("/student/:id", hollandController.ListStudentTests)
		hollandTests.GET("/:id", hollandController.GetTestByID)
		hollandTests.POST("", identified, hollandController.RegisterTest)
		hollandTests.PUT("/:id", identified, hollandController.UpdateTest)
		hollandTests.POST("/:id/invalidate", identified, hollandController.InvalidateTest)
		hollandTests.DELETE("/:id", identified, hollandController.DeleteTest)
	}
}
