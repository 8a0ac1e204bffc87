package paymentController

import (
	"sprintpath/database"
	"sprintpath/middleware"
	"sprintpath/models"
	"sprintpath/registry"
	"sprintpath/utils"

	sprintModels "sprintpath/models/sprint"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// InitializePayment creates a PENDING payment record for a cash sprint and
// opens a gateway checkout session. The enrollment itself is only created by
// the webhook after the gateway confirms the charge.
func InitializePayment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedInitPayment").(*struct {
		SprintID uint `json:"sprintId"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var sp sprintModels.Sprint
	if err := db.Where("id = ? AND is_deleted = false AND approval_status = ?", reqData.SprintID, sprintModels.StatusApproved).First(&sp).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Sprint not found or not live!", nil)
	}

	var orch sprintModels.OrchestrationMap
	if err := db.First(&orch).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Sprint not found or not live!", nil)
	}
	assignments, err := registry.DecodeAssignments(orch.Assignments)
	if err != nil || !registry.Default().IsLive(sp, assignments) {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Sprint not found or not live!", nil)
	}

	if sp.PriceNaira <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "This sprint is free. Enroll directly.", nil)
	}

	// Already enrolled? Nothing to pay for.
	var existing sprintModels.Enrollment
	if err := db.Where("user_id = ? AND sprint_id = ? AND is_deleted = false", userID, sp.ID).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Already enrolled in this sprint!", existing)
	}

	payment := models.Payment{
		UserID:      userID,
		SprintID:    sp.ID,
		Reference:   "spx_" + uuid.NewString(),
		AmountNaira: sp.PriceNaira,
		Currency:    "NGN",
		Status:      models.PaymentStatusPending,
		Gateway:     "paystack",
	}
	if err := db.Create(&payment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create payment!", nil)
	}

	authURL, err := utils.InitializePaystackTransaction(payment.Reference, user.Email, payment.AmountNaira)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Payment gateway unavailable. Try again.", nil)
	}

	payment.AuthorizationURL = authURL
	if err := db.Save(&payment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save payment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment initialized!", fiber.Map{
		"reference":        payment.Reference,
		"authorizationUrl": authURL,
		"amountNaira":      payment.AmountNaira,
	})
}
