package orchestrationValidator

import (
	"sprintpath/middleware"

	sprintModels "sprintpath/models/sprint"

	"github.com/gofiber/fiber/v2"
)

// SaveOrchestration validates the full assignments map. An entry with
// sprintId 0 clears its slot.
func SaveOrchestration() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Assignments map[string]sprintModels.SlotAssignment `json:"assignments"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Assignments == nil {
			errors["assignments"] = "Assignments map is required!"
		}
		for slotID, a := range reqData.Assignments {
			if slotID == "" {
				errors["assignments"] = "Slot id cannot be empty!"
			}
			if len(a.FocusCriteria) > 10 {
				errors[slotID] = "At most 10 focus criteria per slot!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedOrchestration", reqData)
		return c.Next()
	}
}
