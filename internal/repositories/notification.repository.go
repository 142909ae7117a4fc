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

type NotificationRepository interface {
	CreateIfAbsent(ctx context.Context, notification *models.Notification) (bool, error)
	Create(ctx context.Context, notification *models.Notification) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Notification, error)
	ListByRecipient(ctx context.Context, recipientID uuid.UUID, unreadOnly bool) ([]models.Notification, error)
	MarkRead(ctx context.Context, notification *models.Notification) error
}

type notificationRepository struct {
	db  database.DB
	log logger.Logger
}

func NewNotificationRepository(db database.DB) NotificationRepository {
	return &notificationRepository{
		db:  db,
		log: logger.New("notificationRepository"),
	}
}

// CreateIfAbsent inserts a notification unless one with the same
// (recipient, room, trigger) dedup key already exists. ON CONFLICT DO
// NOTHING makes overlapping notifier scans safe: the insert itself is the
// atomic "check". Returns whether a row was actually created.
func (r *notificationRepository) CreateIfAbsent(
	ctx context.Context,
	notification *models.Notification,
) (bool, error) {
	log := r.log.Function("CreateIfAbsent")

	result := conn(r.db, ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(notification)
	if result.Error != nil {
		return false, log.Err("failed to create notification", result.Error,
			"recipientID", notification.RecipientID)
	}
	return result.RowsAffected > 0, nil
}

func (r *notificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	log := r.log.Function("Create")

	if err := conn(r.db, ctx).Create(notification).Error; err != nil {
		return log.Err("failed to create notification", err,
			"recipientID", notification.RecipientID)
	}
	return nil
}

func (r *notificationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Notification, error) {
	var notification models.Notification
	err := conn(r.db, ctx).First(&notification, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &models.DomainError{Kind: models.ErrKindNotFound, Detail: "notification not found"}
		}
		return nil, r.log.Function("GetByID").
			Err("failed to get notification", err, "notificationID", id)
	}
	return &notification, nil
}

func (r *notificationRepository) ListByRecipient(
	ctx context.Context,
	recipientID uuid.UUID,
	unreadOnly bool,
) ([]models.Notification, error) {
	query := conn(r.db, ctx).
		Where("recipient_id = ?", recipientID).
		Order("created_at DESC")
	if unreadOnly {
		query = query.Where("read = ?", false)
	}

	var notifications []models.Notification
	if err := query.Find(&notifications).Error; err != nil {
		return nil, r.log.Function("ListByRecipient").
			Err("failed to list notifications", err, "recipientID", recipientID)
	}
	return notifications, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, notification *models.Notification) error {
	log := r.log.Function("MarkRead")

	notification.Read = true
	if err := conn(r.db, ctx).Model(notification).Update("read", true).Error; err != nil {
		return log.Err("failed to mark notification read", err,
			"notificationID", notification.ID)
	}
	return nil
}
