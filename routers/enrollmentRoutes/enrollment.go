package enrollmentRoutes

import (
	enrollmentController "sprintpath/controllers/enrollment"
	milestoneController "sprintpath/controllers/milestone"
	notificationController "sprintpath/controllers/notification"
	"sprintpath/middleware"
	enrollmentValidator "sprintpath/validators/enrollment"
	milestoneValidator "sprintpath/validators/milestone"

	"github.com/gofiber/fiber/v2"
)

// SetupEnrollmentRoutes sets up participant progress, milestone and
// notification routes
func SetupEnrollmentRoutes(app *fiber.App) {
	sprintGroup := app.Group("/sprints")
	sprintGroup.Post("/:id/enroll", middleware.JWTMiddleware, enrollmentValidator.Enroll(), enrollmentController.EnrollInSprint)
	sprintGroup.Post("/:id/complete-day", middleware.JWTMiddleware, enrollmentValidator.CompleteDay(), enrollmentController.CompleteDay)

	meGroup := app.Group("/me")
	meGroup.Get("/enrollments", middleware.JWTMiddleware, enrollmentController.GetMyEnrollments)

	milestoneGroup := app.Group("/milestones")
	milestoneGroup.Get("/", middleware.JWTMiddleware, milestoneController.ListMilestones)
	milestoneGroup.Post("/claim", middleware.JWTMiddleware, milestoneValidator.Claim(), milestoneController.ClaimMilestone)

	notifGroup := app.Group("/notifications")
	notifGroup.Get("/", middleware.JWTMiddleware, notificationController.GetMyNotifications)
	notifGroup.Post("/:id/read", middleware.JWTMiddleware, notificationController.MarkNotificationRead)
}
