package sprintRoutes

import (
	sprintController "sprintpath/controllers/sprint"
	"sprintpath/middleware"
	sprintValidator "sprintpath/validators/sprint"

	"github.com/gofiber/fiber/v2"
)

// SetupSprintRoutes sets up the public catalog and coach-facing sprint routes
func SetupSprintRoutes(app *fiber.App) {
	// Public catalog: only live sprints, staged edits never leak here
	publicGroup := app.Group("/sprints")
	publicGroup.Get("/", sprintController.GetLiveCatalog)
	publicGroup.Get("/:id", sprintValidator.SprintID(), sprintController.GetPublicSprint)
	publicGroup.Get("/:id/reviews", sprintValidator.SprintID(), sprintController.GetPublicReviews)

	// Participant reviews
	publicGroup.Post("/:id/review", middleware.JWTMiddleware, sprintValidator.SprintID(), sprintController.SubmitReview)

	// Coach authoring: every write consults the per-user permission rows
	coachGroup := app.Group("/coach/sprints")
	coachGroup.Post("/", middleware.JWTMiddleware, middleware.CheckPermissionMiddleware("sprint:create"), sprintValidator.CreateSprint(), sprintController.CreateSprint)
	coachGroup.Get("/", middleware.JWTMiddleware, sprintController.GetMySprints)
	coachGroup.Put("/:id", middleware.JWTMiddleware, middleware.CheckPermissionMiddleware("sprint:edit"), sprintValidator.UpdateSprint(), sprintController.UpdateSprint)
	coachGroup.Post("/:id/submit", middleware.JWTMiddleware, middleware.CheckPermissionMiddleware("sprint:publish"), sprintValidator.SprintID(), sprintController.SubmitSprint)
	coachGroup.Get("/:id/edit", middleware.JWTMiddleware, sprintValidator.SprintID(), sprintController.GetSprintEditView)
}
