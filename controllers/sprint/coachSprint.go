package sprintController

import (
	"encoding/json"

	"sprintpath/database"
	"sprintpath/lifecycle"
	"sprintpath/middleware"
	"sprintpath/models"
	"sprintpath/registry"

	sprintModels "sprintpath/models/sprint"

	"github.com/gofiber/fiber/v2"
)

// CreateSprint creates a new draft sprint owned by the calling coach
func CreateSprint(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	if user.Role != models.RoleCoach && user.Role != models.RoleAdmin {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Coach only.", nil)
	}

	reqData, ok := c.Locals("validatedSprint").(*lifecycle.ContentPatch)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	sprint := sprintModels.Sprint{
		CoachID:        userId,
		ApprovalStatus: sprintModels.StatusDraft,
		Published:      false,
	}
	if _, err := lifecycle.ApplyEdit(&sprint, *reqData, lifecycle.ApplyOptions{}); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
	}

	if err := database.Database.Db.Create(&sprint).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create sprint!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Sprint created successfully!", sprint)
}

// UpdateSprint applies a content edit through the approval state machine.
// Edits to a live sprint are staged into pendingChanges and the sprint
// re-enters audit; the public view does not move.
func UpdateSprint(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	sprintID := c.Locals("sprintID").(int)

	var sprint sprintModels.Sprint
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", sprintID, false).First(&sprint).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Sprint not found!", nil)
	}

	isAdmin := user.Role == models.RoleAdmin
	if sprint.CoachID != userId && !isAdmin {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not own this sprint!", nil)
	}

	reqData, ok := c.Locals("validatedSprintUpdate").(*lifecycle.ContentPatch)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	staged, err := lifecycle.ApplyEdit(&sprint, *reqData, lifecycle.ApplyOptions{
		ActorIsAdmin: isAdmin,
		Foundational: registry.Default().IsFoundational(sprint.Category),
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, err.Error(), nil)
	}

	if err := database.Database.Db.Save(&sprint).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update sprint!", nil)
	}

	message := "Sprint updated successfully!"
	if staged {
		message = "Changes staged for admin review. The live sprint is unchanged until approval."
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, message, sprint)
}

// SubmitSprint moves a draft/rejected sprint into the review queue after
// both completeness checks pass.
func SubmitSprint(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	sprintID := c.Locals("sprintID").(int)

	var sprint sprintModels.Sprint
	if err := database.Database.Db.Where("id = ? AND coach_id = ? AND is_deleted = ?", sprintID, userId, false).First(&sprint).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Sprint not found!", nil)
	}

	if err := lifecycle.Submit(&sprint); err != nil {
		switch err {
		case lifecycle.ErrRegistryFields:
			return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Complete the sprint listing first: title, transformation, category, cover image and outcomes are required.", nil)
		case lifecycle.ErrCurriculumFields:
			return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Complete the curriculum first: every day needs lesson text and a task prompt.", nil)
		default:
			return middleware.JsonResponse(c, fiber.StatusConflict, false, err.Error(), nil)
		}
	}

	if err := database.Database.Db.Save(&sprint).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit sprint!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Sprint submitted for review!", sprint)
}

// GetMySprints lists the calling coach's sprints with their edit views
func GetMySprints(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var sprints []sprintModels.Sprint
	if err := database.Database.Db.Where("coach_id = ? AND is_deleted = ?", userId, false).
		Order("created_at desc").Find(&sprints).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch sprints!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Sprints fetched successfully!", sprints)
}

// GetSprintEditView returns the canonical record overlaid with any staged
// changes plus the admin's last review feedback. This is the coach/admin
// edit view; participants never see it.
func GetSprintEditView(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	sprintID := c.Locals("sprintID").(int)

	var sprint sprintModels.Sprint
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", sprintID, false).First(&sprint).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Sprint not found!", nil)
	}

	if sprint.CoachID != userId && user.Role != models.RoleAdmin {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not own this sprint!", nil)
	}

	view, err := lifecycle.EditView(sprint)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to build edit view!", nil)
	}

	var feedback map[string]string
	if len(sprint.ReviewFeedback) > 0 {
		_ = json.Unmarshal(sprint.ReviewFeedback, &feedback)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Sprint fetched successfully!", fiber.Map{
		"sprint":           view,
		"approvalStatus":   sprint.ApprovalStatus,
		"hasStagedChanges": len(sprint.PendingChanges) > 0,
		"reviewFeedback":   feedback,
	})
}
