package models

import (
	"time"

	"github.com/google/uuid"
)

// Photo is proof attached to an open cleaning session. The stored path is
// an opaque reference into the configured photo directory.
type Photo struct {
	BaseUUIDModel
	SessionID  uuid.UUID `gorm:"type:uuid;not null;index" json:"sessionId"`
	ImagePath  string    `gorm:"type:text;not null"       json:"imagePath"`
	UploadedAt time.Time `gorm:"type:timestamp;not null"  json:"uploadedAt"`
}
