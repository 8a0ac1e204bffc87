package main

import (
	"encoding/json"
	"log"
	"strconv"

	"sprintpath/config"
	"sprintpath/database"
	"sprintpath/models"
	"sprintpath/seeddata"

	sprintModels "sprintpath/models/sprint"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

// Seeds the demo tier: a coach, a participant, an admin, the demo sprints
// approved and orchestrated into their Foundation/Direction/Execution slots.
// Run with: go run ./scripts
func main() {
	config.LoadConfig()
	if !config.AppConfig.SeedDemo {
		log.Fatal("Refusing to seed: set SEED_DEMO=true")
	}
	database.ConnectDb()
	db := database.Database.Db

	hash := func(pw string) string {
		h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("bcrypt failed: %v", err)
		}
		return string(h)
	}

	coach := models.User{Name: "Demo Coach", Email: "coach@demo.sprintpath.ng", Role: models.RoleCoach, Password: hash("coach-demo")}
	participant := models.User{Name: "Demo Participant", Email: "participant@demo.sprintpath.ng", Role: models.RoleParticipant, Password: hash("participant-demo")}
	admin := models.User{Name: "Demo Admin", Email: "admin@demo.sprintpath.ng", Role: models.RoleAdmin, Password: hash("admin-demo")}

	for _, u := range []*models.User{&coach, &participant, &admin} {
		if err := db.Where("email = ?", u.Email).FirstOrCreate(u).Error; err != nil {
			log.Fatalf("Failed to seed user %s: %v", u.Email, err)
		}
	}

	for _, p := range []string{"sprint:create", "sprint:edit", "sprint:publish"} {
		perm := models.Permission{UserID: coach.ID, Permission: p, GrantedBy: admin.ID}
		db.Where("user_id = ? AND permission = ?", coach.ID, p).FirstOrCreate(&perm)
	}
	for _, p := range []string{"sprint:create", "sprint:edit", "sprint:publish", "sprint:approve", "orchestration:write"} {
		perm := models.Permission{UserID: admin.ID, Permission: p, GrantedBy: admin.ID}
		db.Where("user_id = ? AND permission = ?", admin.ID, p).FirstOrCreate(&perm)
	}

	slotForCategory := map[string]string{
		"Clarity":              "slot_found_clarity",
		"Core Platform Sprint": "slot_found_orient",
		"Growth Fundamentals":  "slot_found_core",
	}
	slotForStage := map[string]string{
		"Direction": "slot_direction_main",
		"Execution": "slot_execution_main",
	}
	assignments := map[string]sprintModels.SlotAssignment{}

	for _, demo := range seeddata.Catalog() {
		days := make([]sprintModels.DayContent, 0, demo.DurationDays)
		for d := 1; d <= demo.DurationDays; d++ {
			days = append(days, sprintModels.DayContent{
				Day:        d,
				LessonText: "Demo lesson for day " + strconv.Itoa(d),
				TaskPrompt: "Demo task for day " + strconv.Itoa(d),
			})
		}
		dailyJSON, _ := json.Marshal(days)
		outcomesJSON, _ := json.Marshal([]string{"A concrete demo outcome"})

		s := sprintModels.Sprint{
			CoachID:        coach.ID,
			Title:          demo.Title,
			Transformation: demo.Transformation,
			Category:       demo.Category,
			DurationDays:   demo.DurationDays,
			PriceNaira:     demo.PriceNaira,
			CoverImageURL:  "https://cdn.sprintpath.ng/demo/cover.png",
			DailyContent:   datatypes.JSON(dailyJSON),
			Outcomes:       datatypes.JSON(outcomesJSON),
			ApprovalStatus: sprintModels.StatusApproved,
			Published:      true,
			ApprovedBy:     &admin.ID,
		}
		if err := db.Where("coach_id = ? AND title = ?", coach.ID, demo.Title).FirstOrCreate(&s).Error; err != nil {
			log.Fatalf("Failed to seed sprint %q: %v", demo.Title, err)
		}

		slotID, ok := slotForCategory[demo.Category]
		if !ok {
			slotID, ok = slotForStage[demo.Stage]
		}
		if ok {
			assignments[slotID] = sprintModels.SlotAssignment{SprintID: s.ID, FocusCriteria: demo.FocusCriteria}
		}
	}

	raw, _ := json.Marshal(assignments)
	var orch sprintModels.OrchestrationMap
	if err := db.FirstOrCreate(&orch, sprintModels.OrchestrationMap{}).Error; err != nil {
		log.Fatalf("Failed to load orchestration: %v", err)
	}
	orch.Assignments = datatypes.JSON(raw)
	orch.UpdatedBy = admin.ID
	if err := db.Save(&orch).Error; err != nil {
		log.Fatalf("Failed to seed orchestration: %v", err)
	}

	log.Println("Demo seed completed.")
}
