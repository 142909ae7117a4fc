package cleaning

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"roomkeeper/internal/models"
	"roomkeeper/internal/repositories"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type fakeTransactor struct{}

func (f *fakeTransactor) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakePhotoStore struct {
	path       string
	processErr error
	removed    []string
}

func (f *fakePhotoStore) ProcessAndStore(r io.Reader, sessionID uuid.UUID) (string, error) {
	if f.processErr != nil {
		return "", f.processErr
	}
	return f.path, nil
}

func (f *fakePhotoStore) Remove(path string) error {
	f.removed = append(f.removed, path)
	return nil
}

type controllerMocks struct {
	roomRepo        *repositories.MockRoomRepository
	sessionRepo     *repositories.MockSessionRepository
	dirtyReportRepo *repositories.MockDirtyReportRepository
	photoStore      *fakePhotoStore
}

var testNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func newControllerForTest() (*CleaningController, *controllerMocks) {
	mocks := &controllerMocks{
		roomRepo:        new(repositories.MockRoomRepository),
		sessionRepo:     new(repositories.MockSessionRepository),
		dirtyReportRepo: new(repositories.MockDirtyReportRepository),
		photoStore:      &fakePhotoStore{path: "session/photo.jpg"},
	}
	controller := &CleaningController{
		roomRepo:        mocks.roomRepo,
		sessionRepo:     mocks.sessionRepo,
		dirtyReportRepo: mocks.dirtyReportRepo,
		transactions:    &fakeTransactor{},
		photoStore:      mocks.photoStore,
		log:             logger.New("cleaningController"),
		now:             func() time.Time { return testNow },
	}
	return controller, mocks
}

func cleaner() *models.User {
	user := &models.User{Username: "cleaner", IsCleaner: true, IsActive: true}
	user.ID = uuid.New()
	return user
}

func requester() *models.User {
	user := &models.User{Username: "requester", IsRequester: true, IsActive: true}
	user.ID = uuid.New()
	return user
}

func admin() *models.User {
	user := &models.User{Username: "admin", IsAdmin: true, IsActive: true}
	user.ID = uuid.New()
	return user
}

func activeRoom() *models.Room {
	room := &models.Room{Name: "Meeting Room A", Capacity: 8, ValidityHours: 4, IsActive: true}
	room.ID = uuid.New()
	return room
}

func TestStartCleaning(t *testing.T) {
	t.Run("opens a session for a cleaner", func(t *testing.T) {
		controller, mocks := newControllerForTest()
		actor := cleaner()
		room := activeRoom()

		mocks.roomRepo.On("GetByID", mock.Anything, room.ID).Return(room, nil)
		mocks.sessionRepo.On("GetOpenByRoom", mock.Anything, room.ID).Return(nil, nil)
		mocks.sessionRepo.On("Create", mock.Anything, mock.MatchedBy(func(s *models.CleaningSession) bool {
			return s.RoomID == room.ID && s.EmployeeID == actor.ID && s.StartedAt.Equal(testNow)
		})).Return(nil)

		session, err := controller.StartCleaning(context.Background(), room.ID, actor)

		assert.NoError(t, err)
		assert.NotNil(t, session)
		assert.True(t, session.Open())
	})

	t.Run("rejects non-cleaners", func(t *testing.T) {
		controller, mocks := newControllerForTest()

		session, err := controller.StartCleaning(context.Background(), uuid.New(), requester())

		assert.ErrorIs(t, err, models.ErrForbidden)
		assert.Nil(t, session)
		mocks.roomRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("rejects inactive rooms", func(t *testing.T) {
		controller, mocks := newControllerForTest()
		room := activeRoom()
		room.IsActive = false

		mocks.roomRepo.On("GetByID", mock.Anything, room.ID).Return(room, nil)

		_, err := controller.StartCleaning(context.Background(), room.ID, cleaner())

		assert.ErrorIs(t, err, models.ErrInactiveRoom)
	})

	t.Run("rejects a room already in cleaning", func(t *testing.T) {
		controller, mocks := newControllerForTest()
		room := activeRoom()
		open := &models.CleaningSession{RoomID: room.ID, StartedAt: testNow.Add(-time.Hour)}

		mocks.roomRepo.On("GetByID", mock.Anything, room.ID).Return(room, nil)
		mocks.sessionRepo.On("GetOpenByRoom", mock.Anything, room.ID).Return(open, nil)

		_, err := controller.StartCleaning(context.Background(), room.ID, cleaner())

		assert.ErrorIs(t, err, models.ErrSessionAlreadyOpen)
		mocks.sessionRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("surfaces the duplicate-key race as already open", func(t *testing.T) {
		controller, mocks := newControllerForTest()
		room := activeRoom()

		mocks.roomRepo.On("GetByID", mock.Anything, room.ID).Return(room, nil)
		mocks.sessionRepo.On("GetOpenByRoom", mock.Anything, room.ID).Return(nil, nil)
		mocks.sessionRepo.On("Create", mock.Anything, mock.Anything).Return(models.ErrSessionAlreadyOpen)

		_, err := controller.StartCleaning(context.Background(), room.ID, cleaner())

		assert.ErrorIs(t, err, models.ErrSessionAlreadyOpen)
	})

	t.Run("unknown room is not found", func(t *testing.T) {
		controller, mocks := newControllerForTest()
		roomID := uuid.New()

		mocks.roomRepo.On("GetByID", mock.Anything, roomID).Return(nil, models.ErrRoomNotFound)

		_, err := controller.StartCleaning(context.Background(), roomID, cleaner())

		assert.ErrorIs(t, err, models.ErrRoomNotFound)
	})
}

func TestAddPhoto(t *testing.T) {
	openSessionFor := func(owner *models.User) *models.CleaningSession {
		session := &models.CleaningSession{
			RoomID:     uuid.New(),
			StartedAt:  testNow.Add(-time.Hour),
			EmployeeID: owner.ID,
		}
		session.ID = uuid.New()
		return session
	}

	t.Run("stores a photo on an open session", func(t *testing.T) {
		controller, mocks := newControllerForTest()
		actor := cleaner()
		session := openSessionFor(actor)

		mocks.sessionRepo.On("GetByID", mock.Anything, session.ID).Return(session, nil)
		mocks.sessionRepo.On("GetByIDForUpdate", mock.Anything, session.ID).Return(session, nil)
		mocks.sessionRepo.On("CountPhotos", mock.Anything, session.ID).Return(int64(1), nil)
		mocks.sessionRepo.On("AddPhoto", mock.Anything, mock.MatchedBy(func(p *models.Photo) bool {
			return p.SessionID == session.ID && p.ImagePath == "session/photo.jpg"
		})).Return(nil)

		photo, err := controller.AddPhoto(context.Background(), session.ID, actor, strings.NewReader("img"))

		assert.NoError(t, err)
		assert.NotNil(t, photo)
		assert.Empty(t, mocks.photoStore.removed)
	})

	t.Run("admin may add to another user's session", func(t *testing.T) {
		controller, mocks := newControllerForTest()
		owner := cleaner()
		session := openSessionFor(owner)

		mocks.sessionRepo.On("GetByID", mock.Anything, session.ID).Return(session, nil)
		mocks.sessionRepo.On("GetByIDForUpdate", mock.Anything, session.ID).Return(session, nil)
		mocks.sessionRepo.On("CountPhotos", mock.Anything, session.ID).Return(int64(0), nil)
		mocks.sessionRepo.On("AddPhoto", mock.Anything, mock.Anything).Return(nil)

		_, err := controller.AddPhoto(context.Background(), session.ID, admin(), strings.NewReader("img"))

		assert.NoError(t, err)
	})

	t.Run("rejects a cleaner who does not own the session", func(t *testing.T) {
		controller, mocks := newControllerForTest()
		owner := cleaner()
		session := openSessionFor(owner)

		mocks.sessionRepo.On("GetByID", mock.Anything, session.ID).Return(session, nil)

		_, err := controller.AddPhoto(context.Background(), session.ID, cleaner(), strings.NewReader("img"))

		assert.ErrorIs(t, err, models.ErrNotOwner)
	})

	t.Run("rejects requesters", func(t *testing.T) {
		controller, _ := newControllerForTest()

		_, err := controller.AddPhoto(context.Background(), uuid.New(), requester(), strings.NewReader("img"))

		assert.ErrorIs(t, err, models.ErrForbidden)
	})

	t.Run("rejects completed sessions", func(t *testing.T) {
		controller, mocks := newControllerForTest()
		actor := cleaner()
		session := openSessionFor(actor)
		endedAt := testNow.Add(-10 * time.Minute)
		session.EndedAt = &endedAt

		mocks.sessionRepo.On("GetByID", mock.Anything, session.ID).Return(session, nil)

		_, err := controller.AddPhoto(context.Background(), session.ID, actor, strings.NewReader("img"))

		assert.ErrorIs(t, err, models.ErrSessionNotOpen)
	})

	t.Run("enforces the photo cap and removes the stored file", func(t *testing.T) {
		controller, mocks := newControllerForTest()
		actor := cleaner()
		session := openSessionFor(actor)

		mocks.sessionRepo.On("GetByID", mock.Anything, session.ID).Return(session, nil)
		mocks.sessionRepo.On("GetByIDForUpdate", mock.Anything, session.ID).Return(session, nil)
		mocks.sessionRepo.On("CountPhotos", mock.Anything, session.ID).
			Return(int64(models.MaxPhotosPerSession), nil)

		_, err := controller.AddPhoto(context.Background(), session.ID, actor, strings.NewReader("img"))

		assert.ErrorIs(t, err, models.ErrPhotoLimitReached)
		assert.Equal(t, []string{"session/photo.jpg"}, mocks.photoStore.removed)
		mocks.sessionRepo.AssertNotCalled(t, "AddPhoto", mock.Anything, mock.Anything)
	})

	t.Run("session completed between read and lock is rejected", func(t *testing.T) {
		controller, mocks := newControllerForTest()
		actor := cleaner()
		session := openSessionFor(actor)

		completed := *session
		endedAt := testNow.Add(-time.Minute)
		completed.EndedAt = &endedAt

		mocks.sessionRepo.On("GetByID", mock.Anything, session.ID).Return(session, nil)
		mocks.sessionRepo.On("GetByIDForUpdate", mock.Anything, session.ID).Return(&completed, nil)

		_, err := controller.AddPhoto(context.Background(), session.ID, actor, strings.NewReader("img"))

		assert.ErrorIs(t, err, models.ErrSessionNotOpen)
		assert.Equal(t, []string{"session/photo.jpg"}, mocks.photoStore.removed)
	})

	t.Run("invalid image surfaces as a validation error", func(t *testing.T) {
		controller, mocks := newControllerForTest()
		actor := cleaner()
		session := openSessionFor(actor)
		mocks.photoStore.processErr = models.NewValidationError("unsupported image format")

		mocks.sessionRepo.On("GetByID", mock.Anything, session.ID).Return(session, nil)

		_, err := controller.AddPhoto(context.Background(), session.ID, actor, strings.NewReader("junk"))

		var domainErr *models.DomainError
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, models.ErrKindValidation, domainErr.Kind)
	})
}

func TestCompleteCleaning(t *testing.T) {
	t.Run("closes the open session", func(t *testing.T) {
		controller, mocks := newControllerForTest()
		actor := cleaner()
		room := activeRoom()
		session := &models.CleaningSession{
			RoomID:     room.ID,
			StartedAt:  testNow.Add(-time.Hour),
			EmployeeID: actor.ID,
			Photos:     []models.Photo{{ImagePath: "session/photo.jpg"}},
		}

		mocks.roomRepo.On("GetByID", mock.Anything, room.ID).Return(room, nil)
		mocks.sessionRepo.On("GetOpenByRoom", mock.Anything, room.ID).Return(session, nil)
		mocks.sessionRepo.On("Update", mock.Anything, mock.MatchedBy(func(s *models.CleaningSession) bool {
			return s.EndedAt != nil && s.EndedAt.Equal(testNow) && s.Observations == "all done"
		})).Return(nil)

		result, err := controller.CompleteCleaning(context.Background(), room.ID, actor, "all done")

		assert.NoError(t, err)
		assert.False(t, result.Open())
	})

	t.Run("requires an open session", func(t *testing.T) {
		controller, mocks := newControllerForTest()
		room := activeRoom()

		mocks.roomRepo.On("GetByID", mock.Anything, room.ID).Return(room, nil)
		mocks.sessionRepo.On("GetOpenByRoom", mock.Anything, room.ID).Return(nil, nil)

		_, err := controller.CompleteCleaning(context.Background(), room.ID, cleaner(), "")

		assert.ErrorIs(t, err, models.ErrNoOpenSession)
	})

	t.Run("requires photo proof", func(t *testing.T) {
		controller, mocks := newControllerForTest()
		actor := cleaner()
		room := activeRoom()
		session := &models.CleaningSession{
			RoomID:     room.ID,
			StartedAt:  testNow.Add(-time.Hour),
			EmployeeID: actor.ID,
		}

		mocks.roomRepo.On("GetByID", mock.Anything, room.ID).Return(room, nil)
		mocks.sessionRepo.On("GetOpenByRoom", mock.Anything, room.ID).Return(session, nil)

		_, err := controller.CompleteCleaning(context.Background(), room.ID, actor, "")

		assert.ErrorIs(t, err, models.ErrPhotoProofRequired)
		mocks.sessionRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("rejects non-cleaners", func(t *testing.T) {
		controller, _ := newControllerForTest()

		_, err := controller.CompleteCleaning(context.Background(), uuid.New(), requester(), "")

		assert.ErrorIs(t, err, models.ErrForbidden)
	})
}

func TestReportDirty(t *testing.T) {
	t.Run("records a report for a requester", func(t *testing.T) {
		controller, mocks := newControllerForTest()
		actor := requester()
		room := activeRoom()

		mocks.roomRepo.On("GetByID", mock.Anything, room.ID).Return(room, nil)
		mocks.dirtyReportRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *models.DirtyReport) bool {
			return r.RoomID == room.ID && r.ReporterID == actor.ID &&
				r.ReportedAt.Equal(testNow) && r.Observations == "coffee spill"
		})).Return(nil)

		report, err := controller.ReportDirty(context.Background(), room.ID, actor, "coffee spill")

		assert.NoError(t, err)
		assert.NotNil(t, report)
	})

	t.Run("rejects non-requesters", func(t *testing.T) {
		controller, _ := newControllerForTest()

		_, err := controller.ReportDirty(context.Background(), uuid.New(), cleaner(), "")

		assert.ErrorIs(t, err, models.ErrForbidden)
	})

	t.Run("rejects inactive rooms", func(t *testing.T) {
		controller, mocks := newControllerForTest()
		room := activeRoom()
		room.IsActive = false

		mocks.roomRepo.On("GetByID", mock.Anything, room.ID).Return(room, nil)

		_, err := controller.ReportDirty(context.Background(), room.ID, requester(), "")

		assert.ErrorIs(t, err, models.ErrInactiveRoom)
	})
}
