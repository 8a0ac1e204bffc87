package paymentController

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"log"
	"math"
	"strconv"
	"time"

	"sprintpath/config"
	"sprintpath/database"
	"sprintpath/middleware"
	"sprintpath/models"
	"sprintpath/utils"

	enrollmentController "sprintpath/controllers/enrollment"
	sprintModels "sprintpath/models/sprint"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// webhookEvent is the gateway's charge event payload
type webhookEvent struct {
	Event string `json:"event"`
	Data  struct {
		Reference  string `json:"reference"`
		ID         int64  `json:"id"`
		AmountKobo int64  `json:"amount"`
		Currency   string `json:"currency"`
		Status     string `json:"status"`
	} `json:"data"`
}

// verifySignature checks the HMAC-SHA512 signature the gateway puts on the
// raw body. No state is touched before this passes.
func verifySignature(body []byte, signature string) bool {
	if config.AppConfig.WebhookSecret == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha512.New, []byte(config.AppConfig.WebhookSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// HandlePaymentWebhook reconciles a gateway charge confirmation into an
// enrollment, exactly once per payment reference.
//
// Order of checks: signature, then payment lookup, then the already-processed
// short circuit, then amount/currency integrity. Integrity mismatch marks the
// payment FAILED and the enrollment pipeline never runs for it. The success
// path commits payment update + enrollment in one transaction so a webhook
// retry after a crash re-runs cleanly.
func HandlePaymentWebhook(c *fiber.Ctx) error {
	body := c.Body()

	if !verifySignature(body, c.Get("x-paystack-signature")) {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid webhook signature!", nil)
	}

	var event webhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid webhook payload!", nil)
	}

	if event.Event != "charge.success" {
		// Not ours to act on; acknowledge so the gateway stops retrying
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Event ignored.", nil)
	}

	db := database.Database.Db

	var payment models.Payment
	if err := db.Where("reference = ? AND is_deleted = false", event.Data.Reference).First(&payment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Payment record not found!", nil)
	}

	// Replay safety: duplicate delivery of the same reference is a no-op
	if payment.Status == models.PaymentStatusSuccess {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment already processed.", nil)
	}

	// Integrity: the webhook must agree with what we asked the gateway to charge
	// Round, don't truncate: 99.99 naira is 9999 kobo, not 9998
	expectedKobo := int64(math.Round(payment.AmountNaira * 100))
	if event.Data.AmountKobo != expectedKobo || event.Data.Currency != payment.Currency {
		payment.Status = models.PaymentStatusFailed
		payment.FailReason = "amount/currency mismatch between webhook and payment record"
		if err := db.Save(&payment).Error; err != nil {
			log.Printf("[WEBHOOK] failed to mark payment %s failed: %v", payment.Reference, err)
		}
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Payment integrity mismatch!", nil)
	}

	var sp sprintModels.Sprint
	if err := db.Where("id = ? AND is_deleted = false", payment.SprintID).First(&sp).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Sprint not found!", nil)
	}

	now := time.Now()
	err := db.Transaction(func(tx *gorm.DB) error {
		payment.Status = models.PaymentStatusSuccess
		payment.PaidAt = &now
		if event.Data.ID != 0 {
			payment.GatewayTxnID = strconv.FormatInt(event.Data.ID, 10)
		}
		if err := tx.Save(&payment).Error; err != nil {
			return err
		}
		_, _, err := enrollmentController.CreateEnrollmentTx(tx, payment.UserID, sp, &payment.ID)
		return err
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process payment!", nil)
	}

	utils.Notify(payment.UserID, models.NotificationPaymentSuccess,
		"Payment confirmed", "You are enrolled in \""+sp.Title+"\". Day 1 is waiting.",
		"/sprints/enrolled")

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment processed successfully!", nil)
}