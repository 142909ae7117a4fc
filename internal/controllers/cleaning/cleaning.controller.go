package cleaning

import (
	"context"
	"io"
	"time"

	"roomkeeper/internal/models"
	"roomkeeper/internal/repositories"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
)

// CleaningControllerInterface is the session lifecycle controller: every
// state-changing cleaning operation goes through it, and each operation
// validates role, room state and session state before touching the store.
type CleaningControllerInterface interface {
	StartCleaning(ctx context.Context, roomID uuid.UUID, actor *models.User) (*models.CleaningSession, error)
	AddPhoto(ctx context.Context, sessionID uuid.UUID, actor *models.User, image io.Reader) (*models.Photo, error)
	CompleteCleaning(ctx context.Context, roomID uuid.UUID, actor *models.User, observations string) (*models.CleaningSession, error)
	ReportDirty(ctx context.Context, roomID uuid.UUID, actor *models.User, observations string) (*models.DirtyReport, error)
}

// Transactor runs a function inside a single store transaction.
// Satisfied by services.TransactionService.
type Transactor interface {
	Execute(ctx context.Context, fn func(ctx context.Context) error) error
}

// PhotoStore normalizes and persists uploaded images.
// Satisfied by services.ImagingService.
type PhotoStore interface {
	ProcessAndStore(r io.Reader, sessionID uuid.UUID) (string, error)
	Remove(path string) error
}

type CleaningController struct {
	roomRepo        repositories.RoomRepository
	sessionRepo     repositories.SessionRepository
	dirtyReportRepo repositories.DirtyReportRepository
	transactions    Transactor
	photoStore      PhotoStore
	log             logger.Logger
	now             func() time.Time
}

func New(
	roomRepo repositories.RoomRepository,
	sessionRepo repositories.SessionRepository,
	dirtyReportRepo repositories.DirtyReportRepository,
	transactions Transactor,
	photoStore PhotoStore,
) CleaningControllerInterface {
	return &CleaningController{
		roomRepo:        roomRepo,
		sessionRepo:     sessionRepo,
		dirtyReportRepo: dirtyReportRepo,
		transactions:    transactions,
		photoStore:      photoStore,
		log:             logger.New("cleaningController"),
		now:             time.Now,
	}
}

// StartCleaning opens a session for the room. The open-session check here
// is advisory; the real guard is the partial unique index, so two
// concurrent starts resolve to exactly one winner and the loser sees the
// same SessionAlreadyOpen as a plain retry would.
func (c *CleaningController) StartCleaning(
	ctx context.Context,
	roomID uuid.UUID,
	actor *models.User,
) (*models.CleaningSession, error) {
	log := c.log.Function("StartCleaning")

	if !actor.IsCleaner {
		return nil, models.ErrForbidden
	}

	room, err := c.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}

	if !room.IsActive {
		return nil, models.ErrInactiveRoom
	}

	open, err := c.sessionRepo.GetOpenByRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if open != nil {
		return nil, models.ErrSessionAlreadyOpen
	}

	session := &models.CleaningSession{
		RoomID:     room.ID,
		StartedAt:  c.now(),
		EmployeeID: actor.ID,
	}

	if err := c.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	log.Info("cleaning started", "roomID", room.ID, "sessionID", session.ID, "employee", actor.Username)
	return session, nil
}

// AddPhoto attaches proof to an open session. The cap and the open check
// run inside one transaction under a row lock on the session, so
// concurrent uploads (client retries included) cannot exceed the limit.
func (c *CleaningController) AddPhoto(
	ctx context.Context,
	sessionID uuid.UUID,
	actor *models.User,
	image io.Reader,
) (*models.Photo, error) {
	log := c.log.Function("AddPhoto")

	if !actor.IsCleaner && !actor.IsAdmin {
		return nil, models.ErrForbidden
	}

	session, err := c.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if session.EmployeeID != actor.ID && !actor.IsAdmin {
		return nil, models.ErrNotOwner
	}

	if !session.Open() {
		return nil, models.ErrSessionNotOpen
	}

	imagePath, err := c.photoStore.ProcessAndStore(image, sessionID)
	if err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	photo := &models.Photo{
		SessionID:  sessionID,
		ImagePath:  imagePath,
		UploadedAt: c.now(),
	}

	err = c.transactions.Execute(ctx, func(txCtx context.Context) error {
		locked, err := c.sessionRepo.GetByIDForUpdate(txCtx, sessionID)
		if err != nil {
			return err
		}

		if !locked.Open() {
			return models.ErrSessionNotOpen
		}

		count, err := c.sessionRepo.CountPhotos(txCtx, sessionID)
		if err != nil {
			return err
		}
		if count >= models.MaxPhotosPerSession {
			return models.ErrPhotoLimitReached
		}

		return c.sessionRepo.AddPhoto(txCtx, photo)
	})
	if err != nil {
		if removeErr := c.photoStore.Remove(imagePath); removeErr != nil {
			log.Warn("failed to remove stored photo after rejected upload",
				"path", imagePath, "error", removeErr)
		}
		return nil, err
	}

	log.Info("photo added", "sessionID", sessionID, "photoID", photo.ID)
	return photo, nil
}

// CompleteCleaning closes the room's open session. Completion requires at
// least one photo: the proof gate.
func (c *CleaningController) CompleteCleaning(
	ctx context.Context,
	roomID uuid.UUID,
	actor *models.User,
	observations string,
) (*models.CleaningSession, error) {
	log := c.log.Function("CompleteCleaning")

	if !actor.IsCleaner {
		return nil, models.ErrForbidden
	}

	if _, err := c.roomRepo.GetByID(ctx, roomID); err != nil {
		return nil, err
	}

	session, err := c.sessionRepo.GetOpenByRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, models.ErrNoOpenSession
	}

	if len(session.Photos) == 0 {
		return nil, models.ErrPhotoProofRequired
	}

	endedAt := c.now()
	session.EndedAt = &endedAt
	session.Observations = observations

	if err := c.sessionRepo.Update(ctx, session); err != nil {
		return nil, err
	}

	log.Info("cleaning completed", "roomID", roomID, "sessionID", session.ID)
	return session, nil
}

// ReportDirty records a dirty report unconditionally on an active room.
// If a session is currently open the report is still recorded, but the
// room keeps resolving InProgress until that session completes; the
// report then takes effect through the resolver's precedence order.
func (c *CleaningController) ReportDirty(
	ctx context.Context,
	roomID uuid.UUID,
	actor *models.User,
	observations string,
) (*models.DirtyReport, error) {
	log := c.log.Function("ReportDirty")

	if !actor.IsRequester {
		return nil, models.ErrForbidden
	}

	room, err := c.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}

	if !room.IsActive {
		return nil, models.ErrInactiveRoom
	}

	report := &models.DirtyReport{
		RoomID:       room.ID,
		ReportedAt:   c.now(),
		ReporterID:   actor.ID,
		Observations: observations,
	}

	if err := c.dirtyReportRepo.Create(ctx, report); err != nil {
		return nil, err
	}

	log.Info("room reported dirty", "roomID", room.ID, "reporter", actor.Username)
	return report, nil
}
