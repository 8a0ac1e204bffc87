package utils

import (
	"log"
	"time"

	"sprintpath/database"
	"sprintpath/models"

	"github.com/robfig/cron/v3"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[PAYMENT-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// expireStalePayments marks PENDING payments older than 24h FAILED so
// abandoned checkouts do not linger as open obligations.
func expireStalePayments() {
	db := database.Database.Db
	cutoff := time.Now().Add(-24 * time.Hour)

	result := db.Model(&models.Payment{}).
		Where("status = ? AND created_at < ? AND is_deleted = false", models.PaymentStatusPending, cutoff).
		Updates(map[string]interface{}{
			"status":      models.PaymentStatusFailed,
			"fail_reason": "checkout expired",
		})
	if result.Error != nil {
		logScheduler("Error expiring stale payments: " + result.Error.Error())
		return
	}
	if result.RowsAffected > 0 {
		logScheduler("Expired stale pending payments")
	}
}

// StartPaymentScheduler runs the stale-payment sweep hourly
func StartPaymentScheduler() {
	c := cron.New()

	_, err := c.AddFunc("@hourly", expireStalePayments)
	if err != nil {
		logScheduler("Failed to register stale-payment job: " + err.Error())
		return
	}

	c.Start()
	logScheduler("Payment scheduler started")
}
