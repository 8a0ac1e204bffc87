package orchestrationController

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"sprintpath/database"
	"sprintpath/models"
	"sprintpath/registry"

	sprintModels "sprintpath/models/sprint"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
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

func seedAdmin(t *testing.T, db *gorm.DB) models.User {
	t.Helper()
	admin := models.User{
		Name:     "Admin",
		Email:    uuid.NewString() + "@test.local",
		Password: "hashed",
		Role:     models.RoleAdmin,
	}
	require.NoError(t, db.Create(&admin).Error)
	return admin
}

func saveApp(userID uint, assignments map[string]sprintModels.SlotAssignment) *fiber.App {
	app := fiber.New()
	app.Put("/t", func(c *fiber.Ctx) error {
		c.Locals("userId", userID)
		c.Locals("validatedOrchestration", &struct {
			Assignments map[string]sprintModels.SlotAssignment `json:"assignments"`
		}{Assignments: assignments})
		return c.Next()
	}, SaveOrchestration)
	return app
}

type saveResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Warnings []string `json:"warnings"`
	} `json:"data"`
}

func TestSaveOrchestrationRequiresAdmin(t *testing.T) {
	db := setupTestDB(t)

	coach := models.User{
		Name:     "Coach",
		Email:    uuid.NewString() + "@test.local",
		Password: "hashed",
		Role:     models.RoleCoach,
	}
	require.NoError(t, db.Create(&coach).Error)

	app := saveApp(coach.ID, map[string]sprintModels.SlotAssignment{})
	resp, err := app.Test(httptest.NewRequest("PUT", "/t", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestSaveOrchestrationRejectsUnknownSlot(t *testing.T) {
	db := setupTestDB(t)
	admin := seedAdmin(t, db)

	app := saveApp(admin.ID, map[string]sprintModels.SlotAssignment{
		"slot_does_not_exist": {SprintID: 1},
	})
	resp, err := app.Test(httptest.NewRequest("PUT", "/t", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// Nothing written
	var count int64
	db.Model(&sprintModels.OrchestrationMap{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestSaveOrchestrationWholeMapRewrite(t *testing.T) {
	db := setupTestDB(t)
	admin := seedAdmin(t, db)

	app := saveApp(admin.ID, map[string]sprintModels.SlotAssignment{
		"slot_found_clarity":  {SprintID: 11, FocusCriteria: []string{"niche"}},
		"slot_direction_main": {SprintID: 12},
	})
	resp, err := app.Test(httptest.NewRequest("PUT", "/t", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var orch sprintModels.OrchestrationMap
	require.NoError(t, db.First(&orch).Error)
	assert.Equal(t, admin.ID, orch.UpdatedBy)

	stored, err := registry.DecodeAssignments(orch.Assignments)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, uint(11), stored["slot_found_clarity"].SprintID)
	assert.Equal(t, []string{"niche"}, stored["slot_found_clarity"].FocusCriteria)

	// A second save replaces the whole map, not merges into it
	app = saveApp(admin.ID, map[string]sprintModels.SlotAssignment{
		"slot_execution_main": {SprintID: 13},
	})
	resp, err = app.Test(httptest.NewRequest("PUT", "/t", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.NoError(t, db.First(&orch).Error)
	stored, err = registry.DecodeAssignments(orch.Assignments)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, uint(13), stored["slot_execution_main"].SprintID)

	var count int64
	db.Model(&sprintModels.OrchestrationMap{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestSaveOrchestrationDuplicateSprintWarns(t *testing.T) {
	db := setupTestDB(t)
	admin := seedAdmin(t, db)

	// Same sprint in two slots: saved, but flagged
	app := saveApp(admin.ID, map[string]sprintModels.SlotAssignment{
		"slot_direction_main": {SprintID: 21},
		"slot_execution_main": {SprintID: 21},
	})
	resp, err := app.Test(httptest.NewRequest("PUT", "/t", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var parsed saveResponse
	require.NoError(t, json.Unmarshal(raw, &parsed))
	assert.Len(t, parsed.Data.Warnings, 1)

	var orch sprintModels.OrchestrationMap
	require.NoError(t, db.First(&orch).Error)
	stored, err := registry.DecodeAssignments(orch.Assignments)
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestGetEligibleSprintsIncludesDraftOccupant(t *testing.T) {
	db := setupTestDB(t)
	admin := seedAdmin(t, db)

	occupant := sprintModels.Sprint{
		CoachID:        1,
		Title:          "Occupant Draft",
		Category:       "Clarity",
		DurationDays:   5,
		ApprovalStatus: sprintModels.StatusDraft,
	}
	require.NoError(t, db.Create(&occupant).Error)

	approved := sprintModels.Sprint{
		CoachID:        1,
		Title:          "Approved Candidate",
		Category:       "Clarity",
		DurationDays:   5,
		ApprovalStatus: sprintModels.StatusApproved,
	}
	require.NoError(t, db.Create(&approved).Error)

	raw, err := json.Marshal(map[string]sprintModels.SlotAssignment{
		"slot_found_clarity": {SprintID: occupant.ID},
	})
	require.NoError(t, err)
	require.NoError(t, db.Create(&sprintModels.OrchestrationMap{Assignments: datatypes.JSON(raw), UpdatedBy: admin.ID}).Error)

	app := fiber.New()
	app.Get("/slots/:slotId/eligible", func(c *fiber.Ctx) error {
		c.Locals("userId", admin.ID)
		return c.Next()
	}, GetEligibleSprints)

	resp, err := app.Test(httptest.NewRequest("GET", "/slots/slot_found_clarity/eligible", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var parsed struct {
		Data struct {
			Eligible []sprintModels.Sprint `json:"eligible"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &parsed))

	ids := make(map[uint]bool)
	for _, s := range parsed.Data.Eligible {
		ids[s.ID] = true
	}
	assert.True(t, ids[occupant.ID], "draft occupant stays in the pool")
	assert.True(t, ids[approved.ID])
}
