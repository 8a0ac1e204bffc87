package sprintValidator

import (
	"strings"

	"sprintpath/lifecycle"
	"sprintpath/middleware"

	"github.com/gofiber/fiber/v2"
)

// SprintID validates the :id path parameter and stores it in locals
func SprintID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid sprint id!", nil)
		}
		c.Locals("sprintID", id)
		return c.Next()
	}
}

// CreateSprint validates the initial draft payload
func CreateSprint() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(lifecycle.ContentPatch)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		// A draft only needs a title to exist; everything else can come later
		if reqData.Title == nil || strings.TrimSpace(*reqData.Title) == "" {
			errors["title"] = "Title is required!"
		} else if len(strings.TrimSpace(*reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		if reqData.DurationDays != nil && (*reqData.DurationDays < 1 || *reqData.DurationDays > 90) {
			errors["durationDays"] = "Duration must be between 1 and 90 days!"
		}

		if reqData.PriceNaira != nil && *reqData.PriceNaira < 0 {
			errors["priceNaira"] = "Price cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSprint", reqData)
		return c.Next()
	}
}

// UpdateSprint validates a content edit patch
func UpdateSprint() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid sprint id!", nil)
		}

		reqData := new(lifecycle.ContentPatch)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.IsEmpty() {
			errors["body"] = "At least one field must be provided!"
		}
		if reqData.Title != nil && len(strings.TrimSpace(*reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}
		if reqData.DurationDays != nil && (*reqData.DurationDays < 1 || *reqData.DurationDays > 90) {
			errors["durationDays"] = "Duration must be between 1 and 90 days!"
		}
		if reqData.PriceNaira != nil && *reqData.PriceNaira < 0 {
			errors["priceNaira"] = "Price cannot be negative!"
		}
		for i, d := range reqData.DailyContent {
			if d.Day != i+1 {
				errors["dailyContent"] = "Days must be numbered 1..duration in order!"
				break
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("sprintID", id)
		c.Locals("validatedSprintUpdate", reqData)
		return c.Next()
	}
}

// ApproveSprint validates optional admin overrides applied on approval
func ApproveSprint() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid sprint id!", nil)
		}

		reqData := new(lifecycle.ContentPatch)
		// Empty body is fine: approval without overrides
		if len(c.Body()) > 0 {
			if err := c.BodyParser(reqData); err != nil {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
			}
		}

		c.Locals("sprintID", id)
		c.Locals("validatedApproveSprint", reqData)
		return c.Next()
	}
}

// RejectSprint validates the per-field feedback map
func RejectSprint() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid sprint id!", nil)
		}

		reqData := new(struct {
			Feedback map[string]string `json:"feedback"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if len(reqData.Feedback) == 0 {
			errors["feedback"] = "Feedback is required when requesting fixes!"
		}
		for field, comment := range reqData.Feedback {
			if strings.TrimSpace(comment) == "" {
				errors[field] = "Feedback comment cannot be empty!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("sprintID", id)
		c.Locals("validatedRejectSprint", reqData)
		return c.Next()
	}
}
