package sprintController

import (
	"sprintpath/config"
	"sprintpath/database"
	"sprintpath/middleware"
	"sprintpath/registry"
	"sprintpath/seeddata"

	sprintModels "sprintpath/models/sprint"

	"github.com/gofiber/fiber/v2"
)

// loadAssignments reads the singleton orchestration row
func loadAssignments() (map[string]sprintModels.SlotAssignment, error) {
	var orch sprintModels.OrchestrationMap
	if err := database.Database.Db.First(&orch).Error; err != nil {
		return map[string]sprintModels.SlotAssignment{}, err
	}
	return registry.DecodeAssignments(orch.Assignments)
}

// GetLiveCatalog returns the publicly discoverable sprints: approved AND
// occupying a curriculum slot. Approval alone does not make a sprint visible.
//
// This is a non-critical read, so when the store is unreachable it falls
// back to the static demo catalog instead of erroring. Financial and
// approval reads never take this path.
func GetLiveCatalog(c *fiber.Ctx) error {
	var orch sprintModels.OrchestrationMap
	if err := database.Database.Db.First(&orch).Error; err != nil {
		if config.AppConfig != nil && config.AppConfig.DemoFallback {
			return middleware.JsonResponse(c, fiber.StatusOK, true, "Catalog fetched (demo data).", fiber.Map{
				"catalog": seeddata.Catalog(),
				"stale":   true,
			})
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch catalog!", nil)
	}

	assignments, err := registry.DecodeAssignments(orch.Assignments)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to read orchestration!", nil)
	}

	var ids []uint
	for _, a := range assignments {
		if a.SprintID != 0 {
			ids = append(ids, a.SprintID)
		}
	}

	var sprints []sprintModels.Sprint
	if len(ids) > 0 {
		if err := database.Database.Db.
			Where("id IN ? AND approval_status = ? AND is_deleted = false", ids, sprintModels.StatusApproved).
			Find(&sprints).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch catalog!", nil)
		}
	}

	reg := registry.Default()
	type catalogEntry struct {
		sprintModels.Sprint
		SlotID        string         `json:"slotId"`
		Stage         registry.Stage `json:"stage"`
		FocusCriteria []string       `json:"focusCriteria"`
	}

	var catalog []catalogEntry
	for _, s := range sprints {
		for slotID, a := range assignments {
			if a.SprintID != s.ID {
				continue
			}
			slot, ok := reg.Slot(slotID)
			if !ok {
				continue
			}
			catalog = append(catalog, catalogEntry{
				Sprint:        s,
				SlotID:        slotID,
				Stage:         slot.Stage,
				FocusCriteria: a.FocusCriteria,
			})
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Catalog fetched successfully!", fiber.Map{
		"catalog": catalog,
	})
}

// GetPublicSprint returns the canonical (live) view of one discoverable
// sprint. Staged changes are never exposed here.
func GetPublicSprint(c *fiber.Ctx) error {
	sprintID := c.Locals("sprintID").(int)

	var sprint sprintModels.Sprint
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", sprintID).First(&sprint).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Sprint not found!", nil)
	}

	assignments, err := loadAssignments()
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to read orchestration!", nil)
	}

	if !registry.Default().IsLive(sprint, assignments) {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Sprint not found!", nil)
	}

	// Strip staging internals from the public payload
	sprint.PendingChanges = nil
	sprint.ReviewFeedback = nil

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Sprint fetched successfully!", sprint)
}
