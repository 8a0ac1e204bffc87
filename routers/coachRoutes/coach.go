package coachRoutes

import (
	coachController "sprintpath/controllers/coach"
	earningsController "sprintpath/controllers/earnings"
	"sprintpath/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupCoachRoutes(app *fiber.App) {
	coachGroup := app.Group("/coach")

	coachGroup.Get("/earnings", middleware.JWTMiddleware, earningsController.GetMyEarnings)
	coachGroup.Get("/dashboard", middleware.JWTMiddleware, coachController.GetGrowthDashboard)
}
