package services

import (
	"context"
	"fmt"
	"time"

	"roomkeeper/internal/models"
	"roomkeeper/internal/repositories"

	logger "github.com/Bparsons0904/goLogger"
)

// ExpiryNotifierService scans active rooms whose cleanliness lapsed and
// writes one notification per responsible user per expiry event. It is
// the engine's only time-driven component.
type ExpiryNotifierService struct {
	roomRepo         repositories.RoomRepository
	sessionRepo      repositories.SessionRepository
	dirtyReportRepo  repositories.DirtyReportRepository
	notificationRepo repositories.NotificationRepository
	log              logger.Logger
}

func NewExpiryNotifierService(
	roomRepo repositories.RoomRepository,
	sessionRepo repositories.SessionRepository,
	dirtyReportRepo repositories.DirtyReportRepository,
	notificationRepo repositories.NotificationRepository,
) *ExpiryNotifierService {
	return &ExpiryNotifierService{
		roomRepo:         roomRepo,
		sessionRepo:      sessionRepo,
		dirtyReportRepo:  dirtyReportRepo,
		notificationRepo: notificationRepo,
		log:              logger.New("expiryNotifier"),
	}
}

// ScanAndNotify is idempotent: the dedup key (recipient, room,
// lastCompleted.end) means re-running it, or two scans overlapping, can
// never double-notify for the same expiry event. Rooms that were never
// cleaned are skipped on purpose so day one does not flood the staff.
// A failure on one room does not stop the scan for the rest.
func (s *ExpiryNotifierService) ScanAndNotify(ctx context.Context, now time.Time) (int, error) {
	log := s.log.Function("ScanAndNotify")

	rooms, err := s.roomRepo.ListActive(ctx)
	if err != nil {
		return 0, log.Err("failed to list active rooms", err)
	}

	created := 0
	for i := range rooms {
		room := &rooms[i]

		count, err := s.notifyRoomIfExpired(ctx, room, now)
		if err != nil {
			log.Er("failed to process room, continuing scan", err, "roomID", room.ID)
			continue
		}
		created += count
	}

	if created > 0 {
		log.Info("Expiry scan complete", "notificationsCreated", created, "roomsScanned", len(rooms))
	}
	return created, nil
}

func (s *ExpiryNotifierService) notifyRoomIfExpired(
	ctx context.Context,
	room *models.Room,
	now time.Time,
) (int, error) {
	lastCompleted, err := s.sessionRepo.LatestCompletedByRoom(ctx, room.ID)
	if err != nil {
		return 0, err
	}
	if lastCompleted == nil {
		// Never cleaned: Pending, but not an expiry event.
		return 0, nil
	}

	open, err := s.sessionRepo.GetOpenByRoom(ctx, room.ID)
	if err != nil {
		return 0, err
	}

	lastReport, err := s.dirtyReportRepo.LatestByRoom(ctx, room.ID)
	if err != nil {
		return 0, err
	}

	if !CleanlinessExpired(room, open, lastCompleted, lastReport, now) {
		return 0, nil
	}

	// Zero responsible users: nothing to notify, scan still succeeds.
	created := 0
	roomID := room.ID
	for _, responsible := range room.ResponsibleUsers {
		notification := &models.Notification{
			RecipientID:    responsible.ID,
			RoomID:         &roomID,
			Message:        fmt.Sprintf("Cleaning of room %q has expired and is pending.", room.Name),
			Link:           fmt.Sprintf("/rooms/%s", room.ID),
			TriggerEndedAt: lastCompleted.EndedAt,
		}

		inserted, err := s.notificationRepo.CreateIfAbsent(ctx, notification)
		if err != nil {
			return created, err
		}
		if inserted {
			created++
		}
	}

	return created, nil
}
