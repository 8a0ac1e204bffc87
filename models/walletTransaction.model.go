package models

import (
	"time"

	"gorm.io/gorm"
)

// TransactionType defines the type of wallet credit transaction
type TransactionType string

const (
	TransactionTypeMilestoneCredit TransactionType = "MILESTONE_CREDIT"
	TransactionTypeAdminCredit     TransactionType = "ADMIN_CREDIT"
	TransactionTypeAdminDebit      TransactionType = "ADMIN_DEBIT"
)

// WalletTransaction is one entry in a user's credit ledger.
// Credits are reward points, not money; milestone claims append here.
type WalletTransaction struct {
	gorm.Model
	UserID          uint            `gorm:"not null;index" json:"userId"`
	TransactionType TransactionType `gorm:"type:varchar(50);not null" json:"transactionType"`
	Amount          uint            `gorm:"not null" json:"amount"`
	BalanceBefore   uint            `gorm:"not null" json:"balanceBefore"`
	BalanceAfter    uint            `gorm:"not null" json:"balanceAfter"`
	Description     string          `gorm:"type:text" json:"description"`

	// Reference details (for milestone credits)
	ReferenceType string `gorm:"type:varchar(50)" json:"referenceType"` // milestone
	ReferenceKey  string `gorm:"type:varchar(100)" json:"referenceKey"` // milestone id

	// Admin details (for manual credits/debits)
	AdminID uint   `gorm:"default:0" json:"adminId"`
	Reason  string `gorm:"type:text" json:"reason"`

	TransactionDate time.Time `gorm:"not null" json:"transactionDate"`
	IsDeleted       bool      `gorm:"default:false" json:"isDeleted"`
}

func (WalletTransaction) TableName() string {
	return "wallet_transactions"
}
