package models

// RoomStatus is the derived cleanliness state of a room. It is computed
// from session and report history plus the current time and is never
// persisted, so it cannot drift from the underlying records.
type RoomStatus string

const (
	StatusPending    RoomStatus = "pending"
	StatusInProgress RoomStatus = "in_progress"
	StatusClean      RoomStatus = "clean"
	StatusDirty      RoomStatus = "dirty"
)

func (s RoomStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusClean, StatusDirty:
		return true
	}
	return false
}
