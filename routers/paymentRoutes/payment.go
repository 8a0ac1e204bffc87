package paymentRoutes

import (
	paymentController "sprintpath/controllers/payment"
	"sprintpath/middleware"
	paymentValidator "sprintpath/validators/payment"

	"github.com/gofiber/fiber/v2"
)

// SetupPaymentRoutes sets up checkout initialization and the gateway
// webhook. The webhook is authenticated by its signature, not by JWT.
func SetupPaymentRoutes(app *fiber.App) {
	paymentGroup := app.Group("/payments")

	paymentGroup.Post("/initialize", middleware.JWTMiddleware, paymentValidator.InitializePayment(), paymentController.InitializePayment)
	paymentGroup.Post("/webhook", paymentController.HandlePaymentWebhook)
}
