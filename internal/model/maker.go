package model

import "time"

// Maker 크리에이터 (project owner)
type Maker struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name           string `json:"name" gorm:"not null"`
	Email          string `json:"email" gorm:"uniqueIndex;not null"`
	Phone          string `json:"phone"`
	BusinessNumber string `json:"business_number"` // business registration number

	// Payout destination
	BankName      string `json:"bank_name"`
	BankAccount   string `json:"bank_account"`
	AccountHolder string `json:"account_holder"`
}

func (Maker) TableName() string {
	return "maker"
}
