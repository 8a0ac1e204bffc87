package models

import (
	"time"

	"gorm.io/gorm"
)

// PaymentStatus defines the status of a gateway payment
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusSuccess PaymentStatus = "SUCCESS"
	PaymentStatusFailed  PaymentStatus = "FAILED"
)

// Payment is one gateway charge for a sprint enrollment.
// The webhook reconciles against this record before any enrollment is created.
type Payment struct {
	gorm.Model
	UserID   uint `gorm:"not null;index" json:"userId"`
	SprintID uint `gorm:"not null;index" json:"sprintId"`

	Reference   string        `gorm:"type:varchar(100);uniqueIndex;not null" json:"reference"` // our idempotency key, sent to the gateway
	AmountNaira float64       `gorm:"not null" json:"amountNaira"`
	Currency    string        `gorm:"type:varchar(10);default:'NGN'" json:"currency"`
	Status      PaymentStatus `gorm:"type:varchar(20);default:'PENDING';index" json:"status"`
	FailReason  string        `gorm:"type:text" json:"failReason"`

	Gateway          string     `gorm:"type:varchar(50);default:'paystack'" json:"gateway"`
	AuthorizationURL string     `gorm:"type:varchar(512)" json:"authorizationUrl"`
	GatewayTxnID     string     `gorm:"type:varchar(100)" json:"gatewayTxnId"`
	PaidAt           *time.Time `json:"paidAt"`

	IsDeleted bool `gorm:"default:false" json:"isDeleted"`
}
