package enrollmentValidator

import (
	"strings"

	"sprintpath/middleware"

	"github.com/gofiber/fiber/v2"
)

// Enroll validates the :id path parameter for enrollment
func Enroll() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid sprint id!", nil)
		}
		c.Locals("sprintID", id)
		return c.Next()
	}
}

// CompleteDay validates a day-completion submission
func CompleteDay() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid sprint id!", nil)
		}

		reqData := new(struct {
			Day               int    `json:"day"`
			Submission        string `json:"submission"`
			SubmissionFileURL string `json:"submissionFileUrl"`
			Reflection        string `json:"reflection"`
			ProofSelection    string `json:"proofSelection"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Day < 1 {
			errors["day"] = "Day must be greater than 0!"
		}
		if strings.TrimSpace(reqData.Submission) == "" && strings.TrimSpace(reqData.SubmissionFileURL) == "" {
			errors["submission"] = "Provide a submission or a submission file!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("sprintID", id)
		c.Locals("validatedCompleteDay", reqData)
		return c.Next()
	}
}
