package earningsController

import (
	"sprintpath/database"
	"sprintpath/earnings"
	"sprintpath/middleware"
	"sprintpath/models"
	"sprintpath/registry"

	sprintModels "sprintpath/models/sprint"

	"github.com/gofiber/fiber/v2"
)

// GetMyEarnings derives the calling coach's per-enrollment earnings from
// the current orchestration map and the fixed stage-cut table. A sprint not
// currently orchestrated reports zero net with an explicit pending status;
// no default commission is ever assumed. This read fails loudly: no demo
// fallback on financial paths.
func GetMyEarnings(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}
	if user.Role != models.RoleCoach && user.Role != models.RoleAdmin {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Coach only.", nil)
	}

	var sprints []sprintModels.Sprint
	if err := db.Where("coach_id = ? AND is_deleted = false AND price_naira > 0", userID).Find(&sprints).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch sprints!", nil)
	}

	var sprintIDs []uint
	for _, s := range sprints {
		sprintIDs = append(sprintIDs, s.ID)
	}

	var enrollments []sprintModels.Enrollment
	if len(sprintIDs) > 0 {
		if err := db.Where("sprint_id IN ? AND is_deleted = false", sprintIDs).Find(&enrollments).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
		}
	}

	var orch sprintModels.OrchestrationMap
	assignments := map[string]sprintModels.SlotAssignment{}
	if err := db.First(&orch).Error; err == nil {
		decoded, derr := registry.DecodeAssignments(orch.Assignments)
		if derr != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to read orchestration!", nil)
		}
		assignments = decoded
	}

	entries, summary := earnings.Compute(registry.Default(), assignments, sprints, enrollments)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Earnings fetched successfully!", fiber.Map{
		"entries": entries,
		"summary": summary,
	})
}
