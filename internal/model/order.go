package model

import "time"

// Order 후원(주문) 내역
type Order struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	OrderCode string `json:"order_code" gorm:"uniqueIndex;not null"`
	ProjectID int64  `json:"project_id" gorm:"not null;index"`
	RewardID  int64  `json:"reward_id" gorm:"index"`

	SupporterName  string `json:"supporter_name" gorm:"not null"`
	SupporterPhone string `json:"supporter_phone"`
	Address        string `json:"address"`

	Amount int64 `json:"amount" gorm:"not null"`
	Paid   bool  `json:"paid" gorm:"default:false;index"`

	Reward Reward `json:"reward,omitempty" gorm:"foreignKey:RewardID"`
}

func (Order) TableName() string {
	return "orders"
}
