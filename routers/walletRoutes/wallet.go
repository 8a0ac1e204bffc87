package walletRoutes

import (
	walletController "sprintpath/controllers/wallet"
	"sprintpath/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupWalletRoutes(app *fiber.App) {
	walletGroup := app.Group("/wallet")

	walletGroup.Get("/balance", middleware.JWTMiddleware, walletController.GetWalletBalance)
	walletGroup.Get("/history", middleware.JWTMiddleware, walletController.GetWalletHistory)
}
