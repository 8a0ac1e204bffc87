package enrollmentController

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"sprintpath/database"
	"sprintpath/models"

	sprintModels "sprintpath/models/sprint"

	"github.com/gofiber/fiber/v2"
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
	return db
}

func seedLiveSprint(t *testing.T, db *gorm.DB, price float64, days int) sprintModels.Sprint {
	t.Helper()
	sp := sprintModels.Sprint{
		CoachID:        1,
		Title:          "Test Sprint",
		Category:       "Clarity",
		DurationDays:   days,
		PriceNaira:     price,
		ApprovalStatus: sprintModels.StatusApproved,
		Published:      true,
	}
	require.NoError(t, db.Create(&sp).Error)

	assignments := map[string]sprintModels.SlotAssignment{
		"slot_found_clarity": {SprintID: sp.ID},
	}
	raw, err := json.Marshal(assignments)
	require.NoError(t, err)
	require.NoError(t, db.Create(&sprintModels.OrchestrationMap{Assignments: raw}).Error)
	return sp
}

func seedUser(t *testing.T, db *gorm.DB) models.User {
	t.Helper()
	user := models.User{
		Name:     "Ada",
		Email:    uuid.NewString() + "@test.local",
		Password: "hashed",
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func TestCreateEnrollmentTxIdempotent(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	sp := seedLiveSprint(t, db, 0, 5)

	first, created, err := CreateEnrollmentTx(db, user.ID, sp, nil)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, sprintModels.EnrollmentRefFor(user.ID, sp.ID), first.EnrollmentRef)
	assert.Equal(t, 5, first.TotalDays)

	var days []sprintModels.DayProgress
	require.NoError(t, json.Unmarshal(first.Progress, &days))
	require.Len(t, days, 5)
	for i, d := range days {
		assert.Equal(t, i+1, d.Day)
		assert.False(t, d.Completed)
	}

	second, created, err := CreateEnrollmentTx(db, user.ID, sp, nil)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.EnrollmentRef, second.EnrollmentRef)

	var count int64
	db.Model(&sprintModels.Enrollment{}).Where("user_id = ? AND sprint_id = ?", user.ID, sp.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

// testApp wires a handler behind stub middleware that plants the locals the
// real JWT middleware and validators would set.
func testApp(userID uint, sprintID int, body interface{}, handler fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Post("/t", func(c *fiber.Ctx) error {
		c.Locals("userId", userID)
		c.Locals("sprintID", sprintID)
		if body != nil {
			c.Locals("validatedCompleteDay", body)
		}
		return c.Next()
	}, handler)
	return app
}

func completeDayBody(day int, reflection string) *struct {
	Day               int    `json:"day"`
	Submission        string `json:"submission"`
	SubmissionFileURL string `json:"submissionFileUrl"`
	Reflection        string `json:"reflection"`
	ProofSelection    string `json:"proofSelection"`
} {
	return &struct {
		Day               int    `json:"day"`
		Submission        string `json:"submission"`
		SubmissionFileURL string `json:"submissionFileUrl"`
		Reflection        string `json:"reflection"`
		ProofSelection    string `json:"proofSelection"`
	}{Day: day, Submission: "my work", Reflection: reflection}
}

func TestEnrollInFreeSprint(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	sp := seedLiveSprint(t, db, 0, 3)

	app := fiber.New()
	app.Post("/t", func(c *fiber.Ctx) error {
		c.Locals("userId", user.ID)
		c.Locals("sprintID", int(sp.ID))
		return c.Next()
	}, EnrollInSprint)

	req := httptest.NewRequest("POST", "/t", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var enrollment sprintModels.Enrollment
	require.NoError(t, db.Where("user_id = ? AND sprint_id = ?", user.ID, sp.ID).First(&enrollment).Error)
	assert.Equal(t, sprintModels.EnrollmentEnrolled, enrollment.Status)

	// Enrolling again is a no-op, not an error
	resp, err = app.Test(httptest.NewRequest("POST", "/t", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var count int64
	db.Model(&sprintModels.Enrollment{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestEnrollPaidSprintRequiresPayment(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	sp := seedLiveSprint(t, db, 10000, 3)

	app := fiber.New()
	app.Post("/t", func(c *fiber.Ctx) error {
		c.Locals("userId", user.ID)
		c.Locals("sprintID", int(sp.ID))
		return c.Next()
	}, EnrollInSprint)

	resp, err := app.Test(httptest.NewRequest("POST", "/t", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusPaymentRequired, resp.StatusCode)
}

func TestEnrollNotLiveSprintRejected(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)

	// Approved but assigned to no slot: not discoverable, not enrollable
	sp := sprintModels.Sprint{
		CoachID:        1,
		Title:          "Unassigned",
		Category:       "Clarity",
		DurationDays:   3,
		ApprovalStatus: sprintModels.StatusApproved,
		Published:      true,
	}
	require.NoError(t, db.Create(&sp).Error)
	require.NoError(t, db.Create(&sprintModels.OrchestrationMap{Assignments: []byte(`{}`)}).Error)

	app := fiber.New()
	app.Post("/t", func(c *fiber.Ctx) error {
		c.Locals("userId", user.ID)
		c.Locals("sprintID", int(sp.ID))
		return c.Next()
	}, EnrollInSprint)

	resp, err := app.Test(httptest.NewRequest("POST", "/t", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCompleteDayProgression(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	sp := seedLiveSprint(t, db, 0, 2)

	_, _, err := CreateEnrollmentTx(db, user.ID, sp, nil)
	require.NoError(t, err)

	post := func(day int) int {
		app := testApp(user.ID, int(sp.ID), completeDayBody(day, "done"), CompleteDay)
		resp, err := app.Test(httptest.NewRequest("POST", "/t", bytes.NewReader(nil)), -1)
		require.NoError(t, err)
		return resp.StatusCode
	}

	assert.Equal(t, fiber.StatusOK, post(1))

	var enrollment sprintModels.Enrollment
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&enrollment).Error)
	assert.Equal(t, 1, enrollment.CompletedDays)
	assert.Equal(t, sprintModels.EnrollmentInProgress, enrollment.Status)

	// Completing the same day twice conflicts
	assert.Equal(t, fiber.StatusConflict, post(1))

	// Finishing the last day completes the enrollment
	assert.Equal(t, fiber.StatusOK, post(2))
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&enrollment).Error)
	assert.Equal(t, sprintModels.EnrollmentCompleted, enrollment.Status)
	require.NotNil(t, enrollment.CompletedAt)
	assert.WithinDuration(t, time.Now(), *enrollment.CompletedAt, time.Minute)

	// Out-of-range day
	assert.Equal(t, fiber.StatusBadRequest, post(9))
}
