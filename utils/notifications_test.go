package utils

import (
	"testing"
	"time"

	"sprintpath/config"
	"sprintpath/database"
	"sprintpath/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}
	config.AppConfig = &config.Config{}
	return db
}

func TestCreateNotificationPersists(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, CreateNotification(7, models.NotificationSprintApproved, "Sprint approved", "Body", "/coach/sprints"))

	var n models.Notification
	require.NoError(t, db.Where("user_id = ?", 7).First(&n).Error)
	assert.Equal(t, models.NotificationSprintApproved, n.Type)
	assert.Equal(t, "Sprint approved", n.Title)
	assert.False(t, n.IsRead)
}

func TestNotifyWithEmailCreatesNotification(t *testing.T) {
	db := setupTestDB(t)

	user := models.User{
		Name:     "Ada",
		Email:    uuid.NewString() + "@test.local",
		Password: "hashed",
		Role:     models.RoleCoach,
	}
	require.NoError(t, db.Create(&user).Error)

	// No sender configured, so the email leg is a no-op; the in-app
	// notification must still land.
	NotifyWithEmail(user.ID, models.NotificationSprintRejected, "Fixes requested", "See feedback", "/coach/sprints")

	require.Eventually(t, func() bool {
		var count int64
		db.Model(&models.Notification{}).Where("user_id = ?", user.ID).Count(&count)
		return count == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestSendEmailSkippedWithoutSender(t *testing.T) {
	setupTestDB(t)

	assert.NoError(t, SendEmail([]string{"someone@test.local"}, "Subject", "<p>Body</p>"))
}
