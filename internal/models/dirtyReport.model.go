package models

import (
	"time"

	"github.com/google/uuid"
)

// DirtyReport is a claim, independent of cleaning sessions, that a room
// needs cleaning. Reports are immutable once created and never deleted by
// the engine.
type DirtyReport struct {
	BaseUUIDModel
	RoomID       uuid.UUID `gorm:"type:uuid;not null;index"  json:"roomId"`
	Room         *Room     `gorm:"foreignKey:RoomID"         json:"room,omitempty"`
	ReportedAt   time.Time `gorm:"type:timestamp;not null"   json:"reportedAt"`
	ReporterID   uuid.UUID `gorm:"type:uuid;not null"        json:"reporterId"`
	Reporter     *User     `gorm:"foreignKey:ReporterID"     json:"reporter,omitempty"`
	Observations string    `gorm:"type:text"                 json:"observations"`
}

type ReportDirtyRequest struct {
	Observations string `json:"observations"`
}
