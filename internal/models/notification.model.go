package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification is an alert for a single recipient. RoomID and
// TriggerEndedAt form the expiry dedup key together with the recipient:
// one expiry event produces exactly one notification per responsible user
// no matter how many times the scan runs, and a new one only after the
// room is cleaned again and expires again. Enforced by a unique index on
// (recipient_id, room_id, trigger_ended_at).
type Notification struct {
	BaseUUIDModel
	RecipientID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"recipientId"`
	RoomID         *uuid.UUID `gorm:"type:uuid"                json:"roomId,omitempty"`
	Message        string     `gorm:"type:text;not null"       json:"message"`
	Link           string     `gorm:"type:text"                json:"link"`
	TriggerEndedAt *time.Time `gorm:"type:timestamp"           json:"-"`
	Read           bool       `gorm:"type:bool;default:false;index" json:"read"`
}
