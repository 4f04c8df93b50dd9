package models

import (
	"time"

	"gorm.io/datatypes"
)

// Payment is one payment lifecycle. Invoice is the only key used to correlate
// an inbound gateway event to a local record; it is unique per logical
// transaction. TransactionStatus only ever advances along
// pending -> succeeded -> completed (failed is a disjoint terminal state) and
// is mutated exclusively through PaymentRepository's guarded writes.
type Payment struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	UserID            uint           `gorm:"not null;index" json:"user_id"`
	Amount            int64          `gorm:"not null" json:"amount"`
	PaymentMethod     string         `gorm:"size:50;not null" json:"payment_method"`
	SubscriptionInfo  datatypes.JSON `json:"subscription_info"`
	Invoice           string         `gorm:"size:255;not null;index" json:"invoice"`
	TransactionStatus string         `gorm:"size:20;not null;index" json:"transaction_status"`
	SessionID         string         `gorm:"size:255" json:"session_id"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Payment) TableName() string {
	return "payments"
}
