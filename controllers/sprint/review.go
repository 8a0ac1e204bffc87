package sprintController

import (
	"sprintpath/database"
	"sprintpath/middleware"

	sprintModels "sprintpath/models/sprint"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SubmitReview lets an enrolled participant rate a sprint. Reviews start
// PENDING and go public only after admin moderation.
func SubmitReview(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	sprintID := c.Locals("sprintID").(int)

	reqData := new(struct {
		Rating int    `json:"rating"`
		Review string `json:"review"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if reqData.Rating < 1 || reqData.Rating > 5 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Rating must be between 1 and 5!", nil)
	}

	db := database.Database.Db

	var sp sprintModels.Sprint
	if err := db.Where("id = ? AND is_deleted = false", sprintID).First(&sp).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Sprint not found!", nil)
	}

	var enrollment sprintModels.Enrollment
	if err := db.Where("user_id = ? AND sprint_id = ? AND is_deleted = false", userId, sprintID).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You must be enrolled to review this sprint!", nil)
	}

	var existing sprintModels.SprintReview
	if err := db.Where("sprint_id = ? AND user_id = ? AND is_deleted = false", sprintID, userId).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You have already reviewed this sprint!", nil)
	}

	review := sprintModels.SprintReview{
		SprintID: sp.ID,
		UserID:   userId,
		Rating:   reqData.Rating,
		Review:   reqData.Review,
		Status:   sprintModels.ReviewStatusPending,
	}

	if err := db.Create(&review).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit review!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Review submitted successfully! Pending approval.", review)
}

// GetPublicReviews returns approved reviews for a sprint, visible to all
func GetPublicReviews(c *fiber.Ctx) error {
	sprintID := c.Locals("sprintID").(int)
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
	db.Model(&sprintModels.SprintReview{}).
		Where("sprint_id = ? AND status = ? AND is_deleted = false", sprintID, sprintModels.ReviewStatusApproved).
		Count(&total)

	var reviews []sprintModels.SprintReview
	if err := db.Where("sprint_id = ? AND status = ? AND is_deleted = false", sprintID, sprintModels.ReviewStatusApproved).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&reviews).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch reviews!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Reviews fetched!", fiber.Map{
		"reviews": reviews,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// ModerateReview lets an admin approve or reject a pending review
func ModerateReview(c *fiber.Ctx) error {
	if _, ok := requireAdmin(c); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied! Admin role required.", nil)
	}

	reviewID, err := c.ParamsInt("reviewId")
	if err != nil || reviewID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid review id!", nil)
	}

	reqData := new(struct {
		Status string `json:"status"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	if reqData.Status != sprintModels.ReviewStatusApproved && reqData.Status != sprintModels.ReviewStatusRejected {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Status must be APPROVED or REJECTED!", nil)
	}

	db := database.Database.Db

	var review sprintModels.SprintReview
	if err := db.Where("id = ? AND is_deleted = false", reviewID).First(&review).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Review not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch review!", nil)
	}

	review.Status = reqData.Status
	if err := db.Save(&review).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update review!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Review updated successfully!", review)
}
