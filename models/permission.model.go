package models

import "gorm.io/gorm"

// Permission grants a single named permission to a user.
// Checked by middleware.CheckPermissionMiddleware before privileged actions.
type Permission struct {
	gorm.Model
	UserID     uint   `gorm:"not null;index" json:"userId"`
	Permission string `gorm:"type:varchar(100);not null" json:"permission"` // e.g. sprint:create, sprint:approve, orchestration:write
	GrantedBy  uint   `gorm:"default:0" json:"grantedBy"`
	IsDeleted  bool   `gorm:"default:false" json:"isDeleted"`
}
