package models

import (
	"time"

	"github.com/google/uuid"
)

// MaxPhotosPerSession caps photo proof per cleaning pass.
const MaxPhotosPerSession = 3

// CleaningSession is one start-to-finish cleaning pass on a room. A nil
// EndedAt means the session is open. At most one session per room may be
// open at any time, enforced by a partial unique index on
// (room_id) WHERE ended_at IS NULL.
type CleaningSession struct {
	BaseUUIDModel
	RoomID       uuid.UUID  `gorm:"type:uuid;not null;index"           json:"roomId"`
	Room         *Room      `gorm:"foreignKey:RoomID"                  json:"room,omitempty"`
	StartedAt    time.Time  `gorm:"type:timestamp;not null"            json:"startedAt"`
	EndedAt      *time.Time `gorm:"type:timestamp"                     json:"endedAt"`
	EmployeeID   uuid.UUID  `gorm:"type:uuid;not null"                 json:"employeeId"`
	Employee     *User      `gorm:"foreignKey:EmployeeID"              json:"employee,omitempty"`
	Observations string     `gorm:"type:text"                          json:"observations"`
	Photos       []Photo    `gorm:"foreignKey:SessionID"               json:"photos"`
}

// Open reports whether the session has not been completed yet.
func (s *CleaningSession) Open() bool {
	return s.EndedAt == nil
}

type CompleteCleaningRequest struct {
	Observations string `json:"observations"`
}

// SessionDetail is the read representation of a cleaning session.
type SessionDetail struct {
	ID           string     `json:"id"`
	RoomID       string     `json:"roomId"`
	RoomName     string     `json:"roomName,omitempty"`
	StartedAt    time.Time  `json:"startedAt"`
	EndedAt      *time.Time `json:"endedAt"`
	Employee     *string    `json:"employee"`
	Observations string     `json:"observations"`
	Photos       []Photo    `json:"photos"`
}

func (s *CleaningSession) ToDetail() SessionDetail {
	detail := SessionDetail{
		ID:           s.ID.String(),
		RoomID:       s.RoomID.String(),
		StartedAt:    s.StartedAt,
		EndedAt:      s.EndedAt,
		Observations: s.Observations,
		Photos:       s.Photos,
	}
	if detail.Photos == nil {
		detail.Photos = []Photo{}
	}
	if s.Room != nil {
		detail.RoomName = s.Room.Name
	}
	if s.Employee != nil {
		username := s.Employee.Username
		detail.Employee = &username
	}
	return detail
}
