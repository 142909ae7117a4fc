package services

import (
	"time"

	"roomkeeper/internal/models"
)

// ResolveStatus derives a room's cleanliness state from its full session
// and report history plus the supplied clock. It is a pure function with
// no side effects, total over every input, and the only source of truth
// for room status anywhere in the system.
//
// Precedence, in strict order:
//  1. an open session wins over everything else (InProgress)
//  2. a dirty report newer than the last completed cleaning wins (Dirty);
//     a report on a room that was never cleaned also counts
//  3. never cleaned means Pending
//  4. last cleaning older than the validity window means Pending
//  5. otherwise Clean
func ResolveStatus(
	room *models.Room,
	sessions []models.CleaningSession,
	reports []models.DirtyReport,
	now time.Time,
) models.RoomStatus {
	var open *models.CleaningSession
	var lastCompleted *models.CleaningSession
	for i := range sessions {
		session := &sessions[i]
		if session.EndedAt == nil {
			open = session
			continue
		}
		if lastCompleted == nil || session.EndedAt.After(*lastCompleted.EndedAt) {
			lastCompleted = session
		}
	}

	var lastReport *models.DirtyReport
	for i := range reports {
		report := &reports[i]
		if lastReport == nil || report.ReportedAt.After(lastReport.ReportedAt) {
			lastReport = report
		}
	}

	return ResolveLatest(room, open, lastCompleted, lastReport, now)
}

// ResolveLatest is the resolver core over pre-selected latest records:
// the open session if any, the completed session with the greatest end
// timestamp, and the newest dirty report. Callers that already hold these
// (the lifecycle controller, the notifier) use it directly instead of
// shipping full histories.
func ResolveLatest(
	room *models.Room,
	open *models.CleaningSession,
	lastCompleted *models.CleaningSession,
	lastReport *models.DirtyReport,
	now time.Time,
) models.RoomStatus {
	if open != nil && open.EndedAt == nil {
		return models.StatusInProgress
	}

	// A dirty report postdating the last cleaning overrides cleanliness
	// regardless of elapsed time. A report with no completed cleaning at
	// all also yields Dirty.
	if lastReport != nil &&
		(lastCompleted == nil || lastReport.ReportedAt.After(*lastCompleted.EndedAt)) {
		return models.StatusDirty
	}

	if lastCompleted == nil {
		return models.StatusPending
	}

	if now.Sub(*lastCompleted.EndedAt) > room.Validity() {
		return models.StatusPending
	}

	return models.StatusClean
}

// CleanlinessExpired reports whether a room is Pending specifically
// because its last completed cleaning lapsed, as opposed to never having
// been cleaned. This is the notifier's trigger condition.
func CleanlinessExpired(
	room *models.Room,
	open *models.CleaningSession,
	lastCompleted *models.CleaningSession,
	lastReport *models.DirtyReport,
	now time.Time,
) bool {
	if lastCompleted == nil {
		return false
	}
	return ResolveLatest(room, open, lastCompleted, lastReport, now) == models.StatusPending
}
