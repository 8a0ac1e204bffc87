package milestoneValidator

import (
	"strings"

	"sprintpath/middleware"

	"github.com/gofiber/fiber/v2"
)

// Claim validates a milestone claim request
func Claim() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			MilestoneID string `json:"milestoneId"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.MilestoneID) == "" {
			errors["milestoneId"] = "Milestone id is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedClaim", reqData)
		return c.Next()
	}
}
