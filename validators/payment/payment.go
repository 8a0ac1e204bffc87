package paymentValidator

import (
	"sprintpath/middleware"

	"github.com/gofiber/fiber/v2"
)

// InitializePayment validates the checkout request
func InitializePayment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			SprintID uint `json:"sprintId"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.SprintID < 1 {
			errors["sprintId"] = "Sprint id is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedInitPayment", reqData)
		return c.Next()
	}
}
