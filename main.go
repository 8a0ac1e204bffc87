package main

import (
	"sprintpath/config"
	"sprintpath/database"
	adminRoutes "sprintpath/routers/adminRoutes"
	authRoutes "sprintpath/routers/authRoutes"
	coachRoutes "sprintpath/routers/coachRoutes"
	enrollmentRoutes "sprintpath/routers/enrollmentRoutes"
	paymentRoutes "sprintpath/routers/paymentRoutes"
	sprintRoutes "sprintpath/routers/sprintRoutes"
	walletRoutes "sprintpath/routers/walletRoutes"
	"sprintpath/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"log"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	// Marks abandoned checkouts as failed every hour
	utils.StartPaymentScheduler()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization,x-paystack-signature",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	authRoutes.SetupAuthRoutes(app)
	sprintRoutes.SetupSprintRoutes(app)
	adminRoutes.SetupAdminRoutes(app)
	enrollmentRoutes.SetupEnrollmentRoutes(app)
	walletRoutes.SetupWalletRoutes(app)
	paymentRoutes.SetupPaymentRoutes(app)
	coachRoutes.SetupCoachRoutes(app)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
