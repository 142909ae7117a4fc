package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"roomkeeper/internal/models"
	"roomkeeper/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type notifierMocks struct {
	roomRepo         *repositories.MockRoomRepository
	sessionRepo      *repositories.MockSessionRepository
	dirtyReportRepo  *repositories.MockDirtyReportRepository
	notificationRepo *repositories.MockNotificationRepository
}

func newNotifierForTest() (*ExpiryNotifierService, *notifierMocks) {
	mocks := &notifierMocks{
		roomRepo:         new(repositories.MockRoomRepository),
		sessionRepo:      new(repositories.MockSessionRepository),
		dirtyReportRepo:  new(repositories.MockDirtyReportRepository),
		notificationRepo: new(repositories.MockNotificationRepository),
	}
	notifier := NewExpiryNotifierService(
		mocks.roomRepo,
		mocks.sessionRepo,
		mocks.dirtyReportRepo,
		mocks.notificationRepo,
	)
	return notifier, mocks
}

func notifierRoom(name string, responsible ...models.User) models.Room {
	room := models.Room{
		Name:             name,
		Capacity:         8,
		ValidityHours:    4,
		IsActive:         true,
		ResponsibleUsers: responsible,
	}
	room.ID = uuid.New()
	return room
}

func TestScanAndNotify_ExpiredRoomNotifiesResponsibleUsers(t *testing.T) {
	notifier, mocks := newNotifierForTest()

	responsibleA := models.User{Username: "ana"}
	responsibleA.ID = uuid.New()
	responsibleB := models.User{Username: "bruno"}
	responsibleB.ID = uuid.New()
	room := notifierRoom("Meeting Room A", responsibleA, responsibleB)

	endedAt := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	lastCompleted := models.CleaningSession{EndedAt: &endedAt}
	now := endedAt.Add(5 * time.Hour)

	mocks.roomRepo.On("ListActive", mock.Anything).Return([]models.Room{room}, nil)
	mocks.sessionRepo.On("LatestCompletedByRoom", mock.Anything, room.ID).Return(&lastCompleted, nil)
	mocks.sessionRepo.On("GetOpenByRoom", mock.Anything, room.ID).Return(nil, nil)
	mocks.dirtyReportRepo.On("LatestByRoom", mock.Anything, room.ID).Return(nil, nil)
	mocks.notificationRepo.On("CreateIfAbsent", mock.Anything, mock.MatchedBy(func(n *models.Notification) bool {
		return n.RoomID != nil && *n.RoomID == room.ID &&
			n.TriggerEndedAt != nil && n.TriggerEndedAt.Equal(endedAt) &&
			n.Message == fmt.Sprintf("Cleaning of room %q has expired and is pending.", room.Name) &&
			n.Link == fmt.Sprintf("/rooms/%s", room.ID)
	})).Return(true, nil).Twice()

	created, err := notifier.ScanAndNotify(context.Background(), now)

	assert.NoError(t, err)
	assert.Equal(t, 2, created)
	mocks.notificationRepo.AssertNumberOfCalls(t, "CreateIfAbsent", 2)
}

func TestScanAndNotify_DuplicateScanCreatesNothing(t *testing.T) {
	notifier, mocks := newNotifierForTest()

	responsible := models.User{Username: "ana"}
	responsible.ID = uuid.New()
	room := notifierRoom("Meeting Room A", responsible)

	endedAt := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	lastCompleted := models.CleaningSession{EndedAt: &endedAt}

	mocks.roomRepo.On("ListActive", mock.Anything).Return([]models.Room{room}, nil)
	mocks.sessionRepo.On("LatestCompletedByRoom", mock.Anything, room.ID).Return(&lastCompleted, nil)
	mocks.sessionRepo.On("GetOpenByRoom", mock.Anything, room.ID).Return(nil, nil)
	mocks.dirtyReportRepo.On("LatestByRoom", mock.Anything, room.ID).Return(nil, nil)
	mocks.notificationRepo.On("CreateIfAbsent", mock.Anything, mock.Anything).Return(false, nil)

	created, err := notifier.ScanAndNotify(context.Background(), endedAt.Add(5*time.Hour))

	assert.NoError(t, err)
	assert.Equal(t, 0, created)
}

func TestScanAndNotify_NeverCleanedRoomSkipped(t *testing.T) {
	notifier, mocks := newNotifierForTest()

	responsible := models.User{Username: "ana"}
	responsible.ID = uuid.New()
	room := notifierRoom("Meeting Room A", responsible)

	mocks.roomRepo.On("ListActive", mock.Anything).Return([]models.Room{room}, nil)
	mocks.sessionRepo.On("LatestCompletedByRoom", mock.Anything, room.ID).Return(nil, nil)

	created, err := notifier.ScanAndNotify(context.Background(), time.Now())

	assert.NoError(t, err)
	assert.Equal(t, 0, created)
	mocks.notificationRepo.AssertNotCalled(t, "CreateIfAbsent", mock.Anything, mock.Anything)
}

func TestScanAndNotify_RoomWithinValiditySkipped(t *testing.T) {
	notifier, mocks := newNotifierForTest()

	responsible := models.User{Username: "ana"}
	responsible.ID = uuid.New()
	room := notifierRoom("Meeting Room A", responsible)

	endedAt := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	lastCompleted := models.CleaningSession{EndedAt: &endedAt}

	mocks.roomRepo.On("ListActive", mock.Anything).Return([]models.Room{room}, nil)
	mocks.sessionRepo.On("LatestCompletedByRoom", mock.Anything, room.ID).Return(&lastCompleted, nil)
	mocks.sessionRepo.On("GetOpenByRoom", mock.Anything, room.ID).Return(nil, nil)
	mocks.dirtyReportRepo.On("LatestByRoom", mock.Anything, room.ID).Return(nil, nil)

	created, err := notifier.ScanAndNotify(context.Background(), endedAt.Add(2*time.Hour))

	assert.NoError(t, err)
	assert.Equal(t, 0, created)
	mocks.notificationRepo.AssertNotCalled(t, "CreateIfAbsent", mock.Anything, mock.Anything)
}

func TestScanAndNotify_DirtyReportSuppressesExpiry(t *testing.T) {
	notifier, mocks := newNotifierForTest()

	responsible := models.User{Username: "ana"}
	responsible.ID = uuid.New()
	room := notifierRoom("Meeting Room A", responsible)

	endedAt := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	lastCompleted := models.CleaningSession{EndedAt: &endedAt}
	report := models.DirtyReport{ReportedAt: endedAt.Add(time.Hour)}

	mocks.roomRepo.On("ListActive", mock.Anything).Return([]models.Room{room}, nil)
	mocks.sessionRepo.On("LatestCompletedByRoom", mock.Anything, room.ID).Return(&lastCompleted, nil)
	mocks.sessionRepo.On("GetOpenByRoom", mock.Anything, room.ID).Return(nil, nil)
	mocks.dirtyReportRepo.On("LatestByRoom", mock.Anything, room.ID).Return(&report, nil)

	created, err := notifier.ScanAndNotify(context.Background(), endedAt.Add(6*time.Hour))

	assert.NoError(t, err)
	assert.Equal(t, 0, created)
	mocks.notificationRepo.AssertNotCalled(t, "CreateIfAbsent", mock.Anything, mock.Anything)
}

func TestScanAndNotify_OpenSessionSuppressesExpiry(t *testing.T) {
	notifier, mocks := newNotifierForTest()

	responsible := models.User{Username: "ana"}
	responsible.ID = uuid.New()
	room := notifierRoom("Meeting Room A", responsible)

	endedAt := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	lastCompleted := models.CleaningSession{EndedAt: &endedAt}
	open := models.CleaningSession{StartedAt: endedAt.Add(5 * time.Hour)}

	mocks.roomRepo.On("ListActive", mock.Anything).Return([]models.Room{room}, nil)
	mocks.sessionRepo.On("LatestCompletedByRoom", mock.Anything, room.ID).Return(&lastCompleted, nil)
	mocks.sessionRepo.On("GetOpenByRoom", mock.Anything, room.ID).Return(&open, nil)
	mocks.dirtyReportRepo.On("LatestByRoom", mock.Anything, room.ID).Return(nil, nil)

	created, err := notifier.ScanAndNotify(context.Background(), endedAt.Add(6*time.Hour))

	assert.NoError(t, err)
	assert.Equal(t, 0, created)
	mocks.notificationRepo.AssertNotCalled(t, "CreateIfAbsent", mock.Anything, mock.Anything)
}

func TestScanAndNotify_ZeroResponsibleUsers(t *testing.T) {
	notifier, mocks := newNotifierForTest()

	room := notifierRoom("Meeting Room A")

	endedAt := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	lastCompleted := models.CleaningSession{EndedAt: &endedAt}

	mocks.roomRepo.On("ListActive", mock.Anything).Return([]models.Room{room}, nil)
	mocks.sessionRepo.On("LatestCompletedByRoom", mock.Anything, room.ID).Return(&lastCompleted, nil)
	mocks.sessionRepo.On("GetOpenByRoom", mock.Anything, room.ID).Return(nil, nil)
	mocks.dirtyReportRepo.On("LatestByRoom", mock.Anything, room.ID).Return(nil, nil)

	created, err := notifier.ScanAndNotify(context.Background(), endedAt.Add(5*time.Hour))

	assert.NoError(t, err)
	assert.Equal(t, 0, created)
	mocks.notificationRepo.AssertNotCalled(t, "CreateIfAbsent", mock.Anything, mock.Anything)
}

func TestScanAndNotify_RoomFailureDoesNotStopScan(t *testing.T) {
	notifier, mocks := newNotifierForTest()

	responsible := models.User{Username: "ana"}
	responsible.ID = uuid.New()
	failing := notifierRoom("Broken Room", responsible)
	healthy := notifierRoom("Meeting Room A", responsible)

	endedAt := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	lastCompleted := models.CleaningSession{EndedAt: &endedAt}

	mocks.roomRepo.On("ListActive", mock.Anything).Return([]models.Room{failing, healthy}, nil)
	mocks.sessionRepo.On("LatestCompletedByRoom", mock.Anything, failing.ID).
		Return(nil, errors.New("connection reset"))
	mocks.sessionRepo.On("LatestCompletedByRoom", mock.Anything, healthy.ID).Return(&lastCompleted, nil)
	mocks.sessionRepo.On("GetOpenByRoom", mock.Anything, healthy.ID).Return(nil, nil)
	mocks.dirtyReportRepo.On("LatestByRoom", mock.Anything, healthy.ID).Return(nil, nil)
	mocks.notificationRepo.On("CreateIfAbsent", mock.Anything, mock.Anything).Return(true, nil)

	created, err := notifier.ScanAndNotify(context.Background(), endedAt.Add(5*time.Hour))

	assert.NoError(t, err)
	assert.Equal(t, 1, created)
}
