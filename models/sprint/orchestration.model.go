package sprint

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SlotAssignment maps one curriculum slot to the sprint serving it
type SlotAssignment struct {
	SprintID      uint     `json:"sprintId"`
	FocusCriteria []string `json:"focusCriteria"`
}

// OrchestrationMap is the single global slot->sprint mapping. There is
// exactly one row; every save rewrites the full assignments JSON so a
// reader never sees a partially-updated mapping.
type OrchestrationMap struct {
	gorm.Model
	Assignments datatypes.JSON `json:"assignments"` // map[slotID]SlotAssignment
	UpdatedBy   uint           `gorm:"default:0" json:"updatedBy"`
}

func (OrchestrationMap) TableName() string {
	return "orchestration_maps"
}
