package sprintController

import (
	"sprintpath/database"
	"sprintpath/lifecycle"
	"sprintpath/middleware"
	"sprintpath/models"
	"sprintpath/utils"

	sprintModels "sprintpath/models/sprint"

	"github.com/gofiber/fiber/v2"
)

// requireAdmin loads the calling user and checks the ADMIN role
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

// ListPendingSprints lists sprints waiting for audit, oldest submission first
func ListPendingSprints(c *fiber.Ctx) error {
	if _, ok := requireAdmin(c); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied! Admin role required.", nil)
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	db := database.Database.Db

	var total int64
	db.Model(&sprintModels.Sprint{}).
		Where("approval_status = ? AND is_deleted = false", sprintModels.StatusPendingApproval).
		Count(&total)

	var sprints []sprintModels.Sprint
	if err := db.Where("approval_status = ? AND is_deleted = false", sprintModels.StatusPendingApproval).
		Order("submitted_at ASC").
		Offset(offset).Limit(limit).
		Find(&sprints).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch pending sprints!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Pending sprints fetched!", fiber.Map{
		"sprints": sprints,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// GetSprintReviewDetail returns the sprint under audit plus the word-level
// diff between the live canonical content and the staged changes.
func GetSprintReviewDetail(c *fiber.Ctx) error {
	if _, ok := requireAdmin(c); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied! Admin role required.", nil)
	}

	sprintID := c.Locals("sprintID").(int)

	var sprint sprintModels.Sprint
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", sprintID).First(&sprint).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Sprint not found!", nil)
	}

	diffs, err := lifecycle.DiffSprint(sprint)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to compute diff!", nil)
	}

	view, err := lifecycle.EditView(sprint)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to build edit view!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Review detail fetched!", fiber.Map{
		"canonical": sprint,
		"staged":    view,
		"diffs":     diffs,
	})
}

// ApproveSprint merges staged changes (plus any admin overrides) into the
// canonical record, clears the overlay, and publishes. One transaction: a
// reader never sees the overlay cleared with pre-merge canonicals.
func ApproveSprint(c *fiber.Ctx) error {
	admin, ok := requireAdmin(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied! Admin role required.", nil)
	}

	sprintID := c.Locals("sprintID").(int)

	overrides := lifecycle.ContentPatch{}
	if reqData, ok := c.Locals("validatedApproveSprint").(*lifecycle.ContentPatch); ok {
		overrides = *reqData
	}

	db := database.Database.Db

	var sprint sprintModels.Sprint
	if err := db.Where("id = ? AND is_deleted = false", sprintID).First(&sprint).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Sprint not found!", nil)
	}

	if err := lifecycle.Approve(&sprint, overrides, admin.ID); err != nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, err.Error(), nil)
	}

	tx := db.Begin()
	if err := tx.Save(&sprint).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to approve sprint!", nil)
	}
	tx.Commit()

	utils.NotifyWithEmail(sprint.CoachID, models.NotificationSprintApproved,
		"Sprint approved", "\""+sprint.Title+"\" has been approved and is ready for orchestration.",
		"/coach/sprints")

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Sprint approved successfully!", sprint)
}

// RejectSprint sends the sprint back to the coach with per-field feedback.
// The staged overlay stays intact so the coach can keep refining it.
func RejectSprint(c *fiber.Ctx) error {
	if _, ok := requireAdmin(c); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied! Admin role required.", nil)
	}

	sprintID := c.Locals("sprintID").(int)

	reqData, ok := c.Locals("validatedRejectSprint").(*struct {
		Feedback map[string]string `json:"feedback"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var sprint sprintModels.Sprint
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", sprintID).First(&sprint).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Sprint not found!", nil)
	}

	if err := lifecycle.Reject(&sprint, reqData.Feedback); err != nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, err.Error(), nil)
	}

	if err := database.Database.Db.Save(&sprint).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reject sprint!", nil)
	}

	utils.NotifyWithEmail(sprint.CoachID, models.NotificationSprintRejected,
		"Fixes requested", "An admin requested fixes on \""+sprint.Title+"\". See the review feedback.",
		"/coach/sprints")

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Fixes requested. Coach has been notified.", sprint)
}

// ArchiveSprint retires a sprint. Existing enrollments keep their content;
// no new enrollments are possible.
func ArchiveSprint(c *fiber.Ctx) error {
	if _, ok := requireAdmin(c); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied! Admin role required.", nil)
	}

	sprintID := c.Locals("sprintID").(int)

	var sprint sprintModels.Sprint
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", sprintID).First(&sprint).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Sprint not found!", nil)
	}

	lifecycle.Archive(&sprint)

	if err := database.Database.Db.Save(&sprint).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to archive sprint!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Sprint archived successfully!", nil)
}
