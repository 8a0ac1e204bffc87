package enrollmentController

import (
	"encoding/json"
	"time"

	"sprintpath/database"
	"sprintpath/middleware"
	"sprintpath/models"
	"sprintpath/registry"
	"sprintpath/utils"

	sprintModels "sprintpath/models/sprint"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CreateEnrollmentTx creates the enrollment with its per-day progress array
// inside the caller's transaction. Idempotent: if the deterministic
// enrollment ref already exists, the existing record comes back untouched.
// Returns (enrollment, created, error).
func CreateEnrollmentTx(tx *gorm.DB, userID uint, sp sprintModels.Sprint, paymentID *uint) (sprintModels.Enrollment, bool, error) {
	ref := sprintModels.EnrollmentRefFor(userID, sp.ID)

	var existing sprintModels.Enrollment
	if err := tx.Where("enrollment_ref = ?", ref).First(&existing).Error; err == nil {
		return existing, false, nil
	}

	days := make([]sprintModels.DayProgress, 0, sp.DurationDays)
	for day := 1; day <= sp.DurationDays; day++ {
		days = append(days, sprintModels.DayProgress{Day: day, Completed: false})
	}
	raw, err := json.Marshal(days)
	if err != nil {
		return sprintModels.Enrollment{}, false, err
	}

	enrollment := sprintModels.Enrollment{
		EnrollmentRef: ref,
		UserID:        userID,
		SprintID:      sp.ID,
		Status:        sprintModels.EnrollmentEnrolled,
		Progress:      datatypes.JSON(raw),
		TotalDays:     sp.DurationDays,
		StartedAt:     time.Now(),
		PaymentID:     paymentID,
	}
	if err := tx.Create(&enrollment).Error; err != nil {
		// A concurrent enroll may have won the unique index race
		if err2 := tx.Where("enrollment_ref = ?", ref).First(&existing).Error; err2 == nil {
			return existing, false, nil
		}
		return sprintModels.Enrollment{}, false, err
	}
	return enrollment, true, nil
}

// EnrollInSprint enrolls the calling participant in a free, live sprint.
// Cash sprints enroll through the payment webhook instead. Re-enrolling is
// a no-op returning the same record.
func EnrollInSprint(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	sprintID := c.Locals("sprintID").(int)

	db := database.Database.Db

	var sp sprintModels.Sprint
	if err := db.Where("id = ? AND is_deleted = ? AND approval_status = ?", sprintID, false, sprintModels.StatusApproved).First(&sp).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Sprint not found or not live!", nil)
	}

	var orch sprintModels.OrchestrationMap
	if err := db.First(&orch).Error; err == nil {
		assignments, aerr := registry.DecodeAssignments(orch.Assignments)
		if aerr != nil || !registry.Default().IsLive(sp, assignments) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Sprint not found or not live!", nil)
		}
	} else {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Sprint not found or not live!", nil)
	}

	if sp.PriceNaira > 0 {
		return middleware.JsonResponse(c, fiber.StatusPaymentRequired, false, "This sprint is paid. Initialize a payment first.", nil)
	}

	tx := db.Begin()
	enrollment, created, err := CreateEnrollmentTx(tx, userID, sp, nil)
	if err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in sprint!", nil)
	}
	tx.Commit()

	message := "Enrolled in sprint successfully!"
	if !created {
		message = "Already enrolled in this sprint."
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, message, enrollment)
}

// CompleteDay marks one day of an enrollment completed and records the
// participant's proof-of-work. Days are only ever flipped to completed and
// filled in, never removed.
func CompleteDay(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCompleteDay").(*struct {
		Day               int    `json:"day"`
		Submission        string `json:"submission"`
		SubmissionFileURL string `json:"submissionFileUrl"`
		Reflection        string `json:"reflection"`
		ProofSelection    string `json:"proofSelection"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	sprintID := c.Locals("sprintID").(int)

	db := database.Database.Db

	var enrollment sprintModels.Enrollment
	if err := db.Where("user_id = ? AND sprint_id = ? AND is_deleted = false", userID, sprintID).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}

	var days []sprintModels.DayProgress
	if len(enrollment.Progress) > 0 {
		if err := json.Unmarshal(enrollment.Progress, &days); err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to read progress!", nil)
		}
	}

	idx := -1
	for i, d := range days {
		if d.Day == reqData.Day {
			idx = i
			break
		}
	}
	if idx < 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Day out of range for this sprint!", nil)
	}
	if days[idx].Completed {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Day already completed!", enrollment)
	}

	now := time.Now()
	days[idx].Completed = true
	days[idx].CompletedAt = &now
	days[idx].Submission = reqData.Submission
	days[idx].SubmissionFileURL = reqData.SubmissionFileURL
	days[idx].Reflection = reqData.Reflection
	days[idx].ProofSelection = reqData.ProofSelection

	raw, err := json.Marshal(days)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to encode progress!", nil)
	}

	enrollment.Progress = datatypes.JSON(raw)
	enrollment.CompletedDays++
	enrollment.Status = sprintModels.EnrollmentInProgress
	if enrollment.TotalDays > 0 && enrollment.CompletedDays >= enrollment.TotalDays {
		enrollment.Status = sprintModels.EnrollmentCompleted
		enrollment.CompletedAt = &now
	}

	if err := db.Save(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save progress!", nil)
	}

	// Let the coach know there is a fresh submission to look at
	var sp sprintModels.Sprint
	if err := db.Select("id, coach_id, title").Where("id = ?", sprintID).First(&sp).Error; err == nil {
		utils.Notify(sp.CoachID, models.NotificationSubmission,
			"New submission", "A participant submitted work on \""+sp.Title+"\".",
			"/coach/submissions")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Day completed successfully!", enrollment)
}

// GetMyEnrollments lists the calling participant's enrollments, newest first
func GetMyEnrollments(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var enrollments []sprintModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND is_deleted = ?", userID, false).
		Order("started_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", enrollments)
}
