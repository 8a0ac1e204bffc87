package coachController

import (
	"time"

	"sprintpath/database"
	"sprintpath/middleware"
	"sprintpath/models"
	"sprintpath/registry"

	sprintModels "sprintpath/models/sprint"

	"github.com/gofiber/fiber/v2"
)

// GetGrowthDashboard returns a coach's growth metrics: weekly enrollment
// counts for the last eight weeks, completion rate, and live-sprint count.
// All derived from the same registry/enrollment state the earnings view uses.
func GetGrowthDashboard(c *fiber.Ctx) error {
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
	if err := db.Where("coach_id = ? AND is_deleted = false", userID).Find(&sprints).Error; err != nil {
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

	// Weekly enrollment counts, oldest week first
	const weeks = 8
	now := time.Now()
	weekly := make([]fiber.Map, 0, weeks)
	for i := weeks - 1; i >= 0; i-- {
		end := now.AddDate(0, 0, -7*i)
		start := end.AddDate(0, 0, -7)
		count := 0
		for _, e := range enrollments {
			if e.StartedAt.After(start) && !e.StartedAt.After(end) {
				count++
			}
		}
		weekly = append(weekly, fiber.Map{
			"weekStart":   start.Format("2006-01-02"),
			"enrollments": count,
		})
	}

	completed := 0
	for _, e := range enrollments {
		if e.TotalDays > 0 && e.CompletedDays >= e.TotalDays {
			completed++
		}
	}
	completionRate := 0.0
	if len(enrollments) > 0 {
		completionRate = float64(completed) / float64(len(enrollments)) * 100
	}

	liveCount := 0
	var orch sprintModels.OrchestrationMap
	if err := db.First(&orch).Error; err == nil {
		if assignments, aerr := registry.DecodeAssignments(orch.Assignments); aerr == nil {
			for _, s := range sprints {
				if registry.Default().IsLive(s, assignments) {
					liveCount++
				}
			}
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched successfully!", fiber.Map{
		"totalSprints":     len(sprints),
		"liveSprints":      liveCount,
		"totalEnrollments": len(enrollments),
		"completionRate":   completionRate,
		"weekly":           weekly,
	})
}
