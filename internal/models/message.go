package models

import (
	"time"

	"gorm.io/gorm"
)

// Message represents a persisted chat message between two users. Delivery
// over the event hub is best-effort and separate from persistence.
type Message struct {
	gorm.Model
	SenderID   uint      `gorm:"not null;index:idx_message_pair"`
	ReceiverID uint      `gorm:"not null;index:idx_message_pair"`
	Body       string    `gorm:"not null"`
	SentAt     time.Time `gorm:"not null;index"`

	Sender   User `gorm:"foreignKey:SenderID"`
	Receiver User `gorm:"foreignKey:ReceiverID"`
}
