package orchestrationController

import (
	"encoding/json"

	"sprintpath/database"
	"sprintpath/middleware"
	"sprintpath/models"
	"sprintpath/registry"

	sprintModels "sprintpath/models/sprint"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

func requireAdmin(c *fiber.Ctx) (models.User, bool) {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return models.User{}, false
	}
	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = false AND role = ?", userId, models.RoleAdmin).First(&user).Error; err != nil {
		return models.User{}, false
	}
	return user, true
}

// GetOrchestration returns the full current slot mapping plus the slot
// configuration, so the client can render the curriculum board.
func GetOrchestration(c *fiber.Ctx) error {
	var orch sprintModels.OrchestrationMap
	if err := database.Database.Db.FirstOrCreate(&orch, sprintModels.OrchestrationMap{}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch orchestration!", nil)
	}

	assignments, err := registry.DecodeAssignments(orch.Assignments)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to read orchestration!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Orchestration fetched successfully!", fiber.Map{
		"slots":       registry.Default().Slots(),
		"assignments": assignments,
	})
}

// SaveOrchestration rewrites the whole assignments map in one row write, so
// a reader never observes a partially-updated mapping from one save.
// Across admins it is last-write-wins. A sprint occupying more than one slot
// is reported as a warning, not rejected.
func SaveOrchestration(c *fiber.Ctx) error {
	admin, ok := requireAdmin(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied! Admin role required.", nil)
	}

	reqData, ok := c.Locals("validatedOrchestration").(*struct {
		Assignments map[string]sprintModels.SlotAssignment `json:"assignments"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	reg := registry.Default()

	// Unknown slot ids are configuration errors, not data
	for slotID := range reqData.Assignments {
		if _, ok := reg.Slot(slotID); !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Unknown slot: "+slotID, nil)
		}
	}

	raw, err := json.Marshal(reqData.Assignments)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to encode assignments!", nil)
	}

	db := database.Database.Db

	var orch sprintModels.OrchestrationMap
	if err := db.FirstOrCreate(&orch, sprintModels.OrchestrationMap{}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load orchestration!", nil)
	}

	orch.Assignments = datatypes.JSON(raw)
	orch.UpdatedBy = admin.ID
	if err := db.Save(&orch).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save orchestration!", nil)
	}

	var warnings []string
	for _, id := range registry.DuplicateSprints(reqData.Assignments) {
		var s sprintModels.Sprint
		title := ""
		if err := db.Select("title").Where("id = ?", id).First(&s).Error; err == nil {
			title = " (" + s.Title + ")"
		}
		warnings = append(warnings, "Sprint occupies more than one slot"+title)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Orchestration saved successfully!", fiber.Map{
		"assignments": reqData.Assignments,
		"warnings":    warnings,
	})
}

// GetEligibleSprints returns the assignment pool for one slot: approved or
// published sprints matching the slot's category rules, plus whatever sprint
// currently occupies the slot.
func GetEligibleSprints(c *fiber.Ctx) error {
	if _, ok := requireAdmin(c); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied! Admin role required.", nil)
	}

	slotID := c.Params("slotId")
	reg := registry.Default()

	slot, ok := reg.Slot(slotID)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Slot not found!", nil)
	}

	db := database.Database.Db

	var orch sprintModels.OrchestrationMap
	if err := db.FirstOrCreate(&orch, sprintModels.OrchestrationMap{}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load orchestration!", nil)
	}
	assignments, err := registry.DecodeAssignments(orch.Assignments)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to read orchestration!", nil)
	}

	var current *sprintModels.SlotAssignment
	if a, ok := assignments[slotID]; ok {
		current = &a
	}

	// The current occupant is always part of the pool, whatever its state
	occupantID := uint(0)
	if current != nil {
		occupantID = current.SprintID
	}

	var candidates []sprintModels.Sprint
	if err := db.Where("is_deleted = false AND (approval_status = ? OR published = true OR id = ?)", sprintModels.StatusApproved, occupantID).
		Find(&candidates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch sprints!", nil)
	}

	var eligible []sprintModels.Sprint
	for _, s := range candidates {
		if reg.Eligible(slot, s, current) {
			s.PendingChanges = nil
			s.ReviewFeedback = nil
			eligible = append(eligible, s)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Eligible sprints fetched!", fiber.Map{
		"slot":     slot,
		"eligible": eligible,
	})
}
