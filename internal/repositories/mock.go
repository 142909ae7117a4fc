package repositories

import (
	"context"

	"roomkeeper/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockRoomRepository struct {
	mock.Mock
}

func (m *MockRoomRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	args := m.Called(ctx, id)
	if room, ok := args.Get(0).(*models.Room); ok {
		return room, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRoomRepository) List(ctx context.Context) ([]models.Room, error) {
	args := m.Called(ctx)
	if rooms, ok := args.Get(0).([]models.Room); ok {
		return rooms, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRoomRepository) ListActive(ctx context.Context) ([]models.Room, error) {
	args := m.Called(ctx)
	if rooms, ok := args.Get(0).([]models.Room); ok {
		return rooms, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRoomRepository) Create(ctx context.Context, room *models.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

func (m *MockRoomRepository) Update(ctx context.Context, room *models.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

func (m *MockRoomRepository) ReplaceResponsibleUsers(
	ctx context.Context,
	room *models.Room,
	users []models.User,
) error {
	args := m.Called(ctx, room, users)
	return args.Error(0)
}

func (m *MockRoomRepository) Delete(ctx context.Context, room *models.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Create(ctx context.Context, session *models.CleaningSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.CleaningSession, error) {
	args := m.Called(ctx, id)
	if session, ok := args.Get(0).(*models.CleaningSession); ok {
		return session, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSessionRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.CleaningSession, error) {
	args := m.Called(ctx, id)
	if session, ok := args.Get(0).(*models.CleaningSession); ok {
		return session, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSessionRepository) GetOpenByRoom(ctx context.Context, roomID uuid.UUID) (*models.CleaningSession, error) {
	args := m.Called(ctx, roomID)
	if session, ok := args.Get(0).(*models.CleaningSession); ok {
		return session, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSessionRepository) LatestCompletedByRoom(ctx context.Context, roomID uuid.UUID) (*models.CleaningSession, error) {
	args := m.Called(ctx, roomID)
	if session, ok := args.Get(0).(*models.CleaningSession); ok {
		return session, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSessionRepository) ListByRoom(ctx context.Context, roomID uuid.UUID) ([]models.CleaningSession, error) {
	args := m.Called(ctx, roomID)
	if sessions, ok := args.Get(0).([]models.CleaningSession); ok {
		return sessions, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSessionRepository) List(ctx context.Context) ([]models.CleaningSession, error) {
	args := m.Called(ctx)
	if sessions, ok := args.Get(0).([]models.CleaningSession); ok {
		return sessions, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSessionRepository) Update(ctx context.Context, session *models.CleaningSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) CountPhotos(ctx context.Context, sessionID uuid.UUID) (int64, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSessionRepository) AddPhoto(ctx context.Context, photo *models.Photo) error {
	args := m.Called(ctx, photo)
	return args.Error(0)
}

type MockDirtyReportRepository struct {
	mock.Mock
}

func (m *MockDirtyReportRepository) Create(ctx context.Context, report *models.DirtyReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockDirtyReportRepository) LatestByRoom(ctx context.Context, roomID uuid.UUID) (*models.DirtyReport, error) {
	args := m.Called(ctx, roomID)
	if report, ok := args.Get(0).(*models.DirtyReport); ok {
		return report, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDirtyReportRepository) ListByRoom(ctx context.Context, roomID uuid.UUID) ([]models.DirtyReport, error) {
	args := m.Called(ctx, roomID)
	if reports, ok := args.Get(0).([]models.DirtyReport); ok {
		return reports, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) CreateIfAbsent(ctx context.Context, notification *models.Notification) (bool, error) {
	args := m.Called(ctx, notification)
	return args.Bool(0), args.Error(1)
}

func (m *MockNotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockNotificationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Notification, error) {
	args := m.Called(ctx, id)
	if notification, ok := args.Get(0).(*models.Notification); ok {
		return notification, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockNotificationRepository) ListByRecipient(
	ctx context.Context,
	recipientID uuid.UUID,
	unreadOnly bool,
) ([]models.Notification, error) {
	args := m.Called(ctx, recipientID, unreadOnly)
	if notifications, ok := args.Get(0).([]models.Notification); ok {
		return notifications, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, notification *models.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*models.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if user, ok := args.Get(0).(*models.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.User, error) {
	args := m.Called(ctx, ids)
	if users, ok := args.Get(0).([]models.User); ok {
		return users, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
