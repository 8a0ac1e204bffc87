package adminRoutes

import (
	orchestrationController "sprintpath/controllers/orchestration"
	sprintController "sprintpath/controllers/sprint"
	"sprintpath/middleware"
	orchestrationValidator "sprintpath/validators/orchestration"
	sprintValidator "sprintpath/validators/sprint"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminRoutes sets up the review queue, approval actions and the
// orchestration map. Every handler re-checks the admin role itself.
func SetupAdminRoutes(app *fiber.App) {
	sprintGroup := app.Group("/admin/sprints")

	sprintGroup.Get("/pending", middleware.JWTMiddleware, sprintController.ListPendingSprints)
	sprintGroup.Get("/:id/review", middleware.JWTMiddleware, sprintValidator.SprintID(), sprintController.GetSprintReviewDetail)
	sprintGroup.Post("/:id/approve", middleware.JWTMiddleware, middleware.CheckPermissionMiddleware("sprint:approve"), sprintValidator.ApproveSprint(), sprintController.ApproveSprint)
	sprintGroup.Post("/:id/reject", middleware.JWTMiddleware, middleware.CheckPermissionMiddleware("sprint:approve"), sprintValidator.RejectSprint(), sprintController.RejectSprint)
	sprintGroup.Post("/:id/archive", middleware.JWTMiddleware, middleware.CheckPermissionMiddleware("sprint:approve"), sprintValidator.SprintID(), sprintController.ArchiveSprint)

	sprintGroup.Post("/reviews/:reviewId/moderate", middleware.JWTMiddleware, sprintController.ModerateReview)

	orchGroup := app.Group("/admin/orchestration")
	orchGroup.Get("/", middleware.JWTMiddleware, orchestrationController.GetOrchestration)
	orchGroup.Put("/", middleware.JWTMiddleware, middleware.CheckPermissionMiddleware("orchestration:write"), orchestrationValidator.SaveOrchestration(), orchestrationController.SaveOrchestration)
	orchGroup.Get("/slots/:slotId/eligible", middleware.JWTMiddleware, orchestrationController.GetEligibleSprints)
}
