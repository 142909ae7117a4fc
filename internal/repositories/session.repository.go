package repositories

import (
	"context"
	"errors"

	"roomkeeper/internal/database"
	"roomkeeper/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SessionRepository interface {
	Create(ctx context.Context, session *models.CleaningSession) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.CleaningSession, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.CleaningSession, error)
	GetOpenByRoom(ctx context.Context, roomID uuid.UUID) (*models.CleaningSession, error)
	LatestCompletedByRoom(ctx context.Context, roomID uuid.UUID) (*models.CleaningSession, error)
	ListByRoom(ctx context.Context, roomID uuid.UUID) ([]models.CleaningSession, error)
	List(ctx context.Context) ([]models.CleaningSession, error)
	Update(ctx context.Context, session *models.CleaningSession) error
	CountPhotos(ctx context.Context, sessionID uuid.UUID) (int64, error)
	AddPhoto(ctx context.Context, photo *models.Photo) error
}

type sessionRepository struct {
	db  database.DB
	log logger.Logger
}

func NewSessionRepository(db database.DB) SessionRepository {
	return &sessionRepository{
		db:  db,
		log: logger.New("sessionRepository"),
	}
}

// Create inserts a new open session. The partial unique index on
// (room_id) WHERE ended_at IS NULL is the serialization point for
// concurrent starts: the loser of the race gets a duplicated-key error,
// which is translated here so callers cannot distinguish "lost the race"
// from "was already open".
func (r *sessionRepository) Create(ctx context.Context, session *models.CleaningSession) error {
	log := r.log.Function("Create")

	if err := conn(r.db, ctx).Create(session).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.ErrSessionAlreadyOpen
		}
		return log.Err("failed to create cleaning session", err, "roomID", session.RoomID)
	}
	return nil
}

func (r *sessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.CleaningSession, error) {
	var session models.CleaningSession
	err := conn(r.db, ctx).
		Preload("Photos").
		First(&session, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrSessionNotFound
		}
		return nil, r.log.Function("GetByID").Err("failed to get session", err, "sessionID", id)
	}
	return &session, nil
}

// GetByIDForUpdate locks the session row for the duration of the
// surrounding transaction. The photo cap check runs under this lock so
// concurrent AddPhoto retries cannot both pass the count.
func (r *sessionRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.CleaningSession, error) {
	var session models.CleaningSession
	err := conn(r.db, ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&session, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrSessionNotFound
		}
		return nil, r.log.Function("GetByIDForUpdate").
			Err("failed to lock session", err, "sessionID", id)
	}
	return &session, nil
}

// GetOpenByRoom returns the room's open session, or nil when none is open.
func (r *sessionRepository) GetOpenByRoom(ctx context.Context, roomID uuid.UUID) (*models.CleaningSession, error) {
	var session models.CleaningSession
	err := conn(r.db, ctx).
		Preload("Photos").
		Where("room_id = ? AND ended_at IS NULL", roomID).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, r.log.Function("GetOpenByRoom").
			Err("failed to get open session", err, "roomID", roomID)
	}
	return &session, nil
}

// LatestCompletedByRoom returns the completed session with the greatest
// end timestamp, or nil when the room has never been cleaned.
func (r *sessionRepository) LatestCompletedByRoom(ctx context.Context, roomID uuid.UUID) (*models.CleaningSession, error) {
	var session models.CleaningSession
	err := conn(r.db, ctx).
		Preload("Employee").
		Where("room_id = ? AND ended_at IS NOT NULL", roomID).
		Order("ended_at DESC").
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, r.log.Function("LatestCompletedByRoom").
			Err("failed to get latest completed session", err, "roomID", roomID)
	}
	return &session, nil
}

func (r *sessionRepository) ListByRoom(ctx context.Context, roomID uuid.UUID) ([]models.CleaningSession, error) {
	var sessions []models.CleaningSession
	err := conn(r.db, ctx).
		Preload("Photos").
		Preload("Employee").
		Preload("Room").
		Where("room_id = ?", roomID).
		Order("started_at DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, r.log.Function("ListByRoom").
			Err("failed to list sessions", err, "roomID", roomID)
	}
	return sessions, nil
}

func (r *sessionRepository) List(ctx context.Context) ([]models.CleaningSession, error) {
	var sessions []models.CleaningSession
	err := conn(r.db, ctx).
		Preload("Photos").
		Preload("Employee").
		Preload("Room").
		Order("started_at DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, r.log.Function("List").Err("failed to list sessions", err)
	}
	return sessions, nil
}

func (r *sessionRepository) Update(ctx context.Context, session *models.CleaningSession) error {
	log := r.log.Function("Update")

	if err := conn(r.db, ctx).Save(session).Error; err != nil {
		return log.Err("failed to update session", err, "sessionID", session.ID)
	}
	return nil
}

func (r *sessionRepository) CountPhotos(ctx context.Context, sessionID uuid.UUID) (int64, error) {
	var count int64
	err := conn(r.db, ctx).
		Model(&models.Photo{}).
		Where("session_id = ?", sessionID).
		Count(&count).Error
	if err != nil {
		return 0, r.log.Function("CountPhotos").
			Err("failed to count photos", err, "sessionID", sessionID)
	}
	return count, nil
}

func (r *sessionRepository) AddPhoto(ctx context.Context, photo *models.Photo) error {
	log := r.log.Function("AddPhoto")

	if err := conn(r.db, ctx).Create(photo).Error; err != nil {
		return log.Err("failed to add photo", err, "sessionID", photo.SessionID)
	}
	return nil
}
