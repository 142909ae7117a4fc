package models

import "time"

const DefaultValidityHours = 4

// Room is owned by the registry side of the system. The lifecycle engine
// reads Capacity, ValidityHours, IsActive and ResponsibleUsers and never
// mutates a room.
type Room struct {
	BaseUUIDModel
	Name             string `gorm:"type:text;uniqueIndex;not null"         json:"name"`
	Capacity         int    `gorm:"type:int;not null"                      json:"capacity"`
	Description      string `gorm:"type:text"                              json:"description"`
	Location         string `gorm:"type:text"                              json:"location"`
	ValidityHours    int    `gorm:"type:int;not null;default:4"            json:"validityHours"`
	IsActive         bool   `gorm:"type:bool;default:true"                 json:"isActive"`
	ResponsibleUsers []User `gorm:"many2many:room_responsible_users"       json:"responsibleUsers,omitempty"`
}

// Validity returns the room's cleanliness window as a duration.
func (r *Room) Validity() time.Duration {
	hours := r.ValidityHours
	if hours <= 0 {
		hours = DefaultValidityHours
	}
	return time.Duration(hours) * time.Hour
}

type RoomCreateRequest struct {
	Name             string   `json:"name"`
	Capacity         int      `json:"capacity"`
	Description      string   `json:"description"`
	Location         string   `json:"location"`
	ValidityHours    *int     `json:"validityHours"`
	IsActive         *bool    `json:"isActive"`
	ResponsibleUsers []string `json:"responsibleUsers"`
}

type RoomUpdateRequest struct {
	Name             *string   `json:"name"`
	Capacity         *int      `json:"capacity"`
	Description      *string   `json:"description"`
	Location         *string   `json:"location"`
	ValidityHours    *int      `json:"validityHours"`
	IsActive         *bool     `json:"isActive"`
	ResponsibleUsers *[]string `json:"responsibleUsers"`
}

// RoomDetail is the read representation. Status is always derived, never
// stored. DirtyInfo is populated only when Status is StatusDirty.
type RoomDetail struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	Capacity         int               `json:"capacity"`
	Description      string            `json:"description"`
	Location         string            `json:"location"`
	ValidityHours    int               `json:"validityHours"`
	IsActive         bool              `json:"isActive"`
	Status           RoomStatus        `json:"status"`
	LastCleaning     *LastCleaningInfo `json:"lastCleaning"`
	DirtyInfo        *DirtyInfo        `json:"dirtyInfo"`
	ResponsibleUsers []UserProfile     `json:"responsibleUsers"`
}

type LastCleaningInfo struct {
	EndedAt  time.Time `json:"endedAt"`
	Employee *string   `json:"employee"`
}

type DirtyInfo struct {
	ReportedAt   time.Time `json:"reportedAt"`
	Reporter     *string   `json:"reporter"`
	Observations string    `json:"observations"`
}
