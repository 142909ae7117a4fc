package repositories

import (
	"context"
	"errors"

	"roomkeeper/internal/database"
	"roomkeeper/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RoomRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Room, error)
	List(ctx context.Context) ([]models.Room, error)
	ListActive(ctx context.Context) ([]models.Room, error)
	Create(ctx context.Context, room *models.Room) error
	Update(ctx context.Context, room *models.Room) error
	ReplaceResponsibleUsers(ctx context.Context, room *models.Room, users []models.User) error
	Delete(ctx context.Context, room *models.Room) error
}

type roomRepository struct {
	db  database.DB
	log logger.Logger
}

func NewRoomRepository(db database.DB) RoomRepository {
	return &roomRepository{
		db:  db,
		log: logger.New("roomRepository"),
	}
}

func (r *roomRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	var room models.Room
	err := conn(r.db, ctx).
		Preload("ResponsibleUsers").
		First(&room, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrRoomNotFound
		}
		return nil, r.log.Function("GetByID").Err("failed to get room", err, "roomID", id)
	}
	return &room, nil
}

func (r *roomRepository) List(ctx context.Context) ([]models.Room, error) {
	var rooms []models.Room
	err := conn(r.db, ctx).
		Preload("ResponsibleUsers").
		Order("name").
		Find(&rooms).Error
	if err != nil {
		return nil, r.log.Function("List").Err("failed to list rooms", err)
	}
	return rooms, nil
}

func (r *roomRepository) ListActive(ctx context.Context) ([]models.Room, error) {
	var rooms []models.Room
	err := conn(r.db, ctx).
		Preload("ResponsibleUsers").
		Where("is_active = ?", true).
		Order("name").
		Find(&rooms).Error
	if err != nil {
		return nil, r.log.Function("ListActive").Err("failed to list active rooms", err)
	}
	return rooms, nil
}

func (r *roomRepository) Create(ctx context.Context, room *models.Room) error {
	log := r.log.Function("Create")

	if err := conn(r.db, ctx).Create(room).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.NewValidationError("a room with this name already exists")
		}
		return log.Err("failed to create room", err, "name", room.Name)
	}
	return nil
}

func (r *roomRepository) Update(ctx context.Context, room *models.Room) error {
	log := r.log.Function("Update")

	if err := conn(r.db, ctx).Save(room).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.NewValidationError("a room with this name already exists")
		}
		return log.Err("failed to update room", err, "roomID", room.ID)
	}
	return nil
}

func (r *roomRepository) ReplaceResponsibleUsers(
	ctx context.Context,
	room *models.Room,
	users []models.User,
) error {
	log := r.log.Function("ReplaceResponsibleUsers")

	if err := conn(r.db, ctx).Model(room).Association("ResponsibleUsers").Replace(users); err != nil {
		return log.Err("failed to replace responsible users", err, "roomID", room.ID)
	}
	return nil
}

func (r *roomRepository) Delete(ctx context.Context, room *models.Room) error {
	log := r.log.Function("Delete")

	if err := conn(r.db, ctx).Delete(room).Error; err != nil {
		return log.Err("failed to delete room", err, "roomID", room.ID)
	}
	return nil
}
