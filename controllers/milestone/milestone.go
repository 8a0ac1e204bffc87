package milestoneController

import (
	"time"

	"sprintpath/database"
	"sprintpath/middleware"
	"sprintpath/milestones"
	"sprintpath/models"
	"sprintpath/utils"

	sprintModels "sprintpath/models/sprint"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// milestoneState is one milestone with its live unlock/claim status
type milestoneState struct {
	milestones.Milestone
	Current  int  `json:"current"`
	Unlocked bool `json:"unlocked"`
	Claimed  bool `json:"claimed"`
}

// ListMilestones returns every milestone with the caller's counter value,
// unlock status and claim status.
func ListMilestones(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	var enrollments []sprintModels.Enrollment
	if err := db.Where("user_id = ? AND is_deleted = false", userID).Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	var claims []sprintModels.MilestoneClaim
	if err := db.Where("user_id = ?", userID).Find(&claims).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch claims!", nil)
	}
	claimed := make(map[string]bool, len(claims))
	for _, cl := range claims {
		claimed[cl.MilestoneID] = true
	}

	counters := milestones.CountersFor(user, enrollments, time.Now())

	defs := milestones.Defaults()
	milestones.SortByTarget(defs)

	states := make([]milestoneState, 0, len(defs))
	for _, m := range defs {
		states = append(states, milestoneState{
			Milestone: m,
			Current:   counters.Value(m.Metric),
			Unlocked:  milestones.Unlocked(m, counters),
			Claimed:   claimed[m.ID],
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Milestones fetched successfully!", fiber.Map{
		"milestones":    states,
		"counters":      counters,
		"walletBalance": user.WalletBalance,
	})
}

// ClaimMilestone credits a milestone's points exactly once. The claim row
// and the wallet credit commit in one transaction; the unique claim index
// makes retries and races a no-op conflict instead of a double credit.
func ClaimMilestone(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedClaim").(*struct {
		MilestoneID string `json:"milestoneId"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	milestone, found := milestones.Find(reqData.MilestoneID)
	if !found {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Milestone not found!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	// Precondition: not already claimed
	var existing sprintModels.MilestoneClaim
	if err := db.Where("user_id = ? AND milestone_id = ?", userID, milestone.ID).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Milestone already claimed!", nil)
	}

	// Precondition: unlocked
	var enrollments []sprintModels.Enrollment
	if err := db.Where("user_id = ? AND is_deleted = false", userID).Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}
	counters := milestones.CountersFor(user, enrollments, time.Now())
	if !milestones.Unlocked(milestone, counters) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Milestone is not unlocked yet!", nil)
	}

	balanceBefore := user.WalletBalance
	balanceAfter := balanceBefore + milestone.Points

	claim := sprintModels.MilestoneClaim{
		UserID:      userID,
		MilestoneID: milestone.ID,
		Points:      milestone.Points,
		ClaimedAt:   time.Now(),
	}
	ledger := models.WalletTransaction{
		UserID:          userID,
		TransactionType: models.TransactionTypeMilestoneCredit,
		Amount:          milestone.Points,
		BalanceBefore:   balanceBefore,
		BalanceAfter:    balanceAfter,
		Description:     "Milestone reward: " + milestone.Title,
		ReferenceType:   "milestone",
		ReferenceKey:    milestone.ID,
		TransactionDate: time.Now(),
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&claim).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.User{}).Where("id = ?", userID).
			Update("wallet_balance", gorm.Expr("wallet_balance + ?", milestone.Points)).Error; err != nil {
			return err
		}
		return tx.Create(&ledger).Error
	})
	if err != nil {
		// Unique index on (user_id, milestone_id): a concurrent claim won
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Milestone already claimed!", nil)
	}

	utils.Notify(userID, models.NotificationMilestone,
		"Milestone unlocked", "You earned "+milestone.Title+"!",
		"/milestones")

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Milestone claimed successfully!", fiber.Map{
		"milestoneId":   milestone.ID,
		"points":        milestone.Points,
		"balanceBefore": balanceBefore,
		"balanceAfter":  balanceAfter,
	})
}
