package notifications

import (
	"context"

	"roomkeeper/internal/models"
	"roomkeeper/internal/repositories"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
)

type NotificationControllerInterface interface {
	ListOwn(ctx context.Context, actor *models.User, unreadOnly bool) ([]models.Notification, error)
	MarkRead(ctx context.Context, notificationID uuid.UUID, actor *models.User) (*models.Notification, error)
}

type NotificationController struct {
	notificationRepo repositories.NotificationRepository
	log              logger.Logger
}

func New(notificationRepo repositories.NotificationRepository) NotificationControllerInterface {
	return &NotificationController{
		notificationRepo: notificationRepo,
		log:              logger.New("notificationController"),
	}
}

func (c *NotificationController) ListOwn(
	ctx context.Context,
	actor *models.User,
	unreadOnly bool,
) ([]models.Notification, error) {
	return c.notificationRepo.ListByRecipient(ctx, actor.ID, unreadOnly)
}

// MarkRead flips a notification to read. Another user's notification is
// reported as not found rather than forbidden, so IDs cannot be probed.
func (c *NotificationController) MarkRead(
	ctx context.Context,
	notificationID uuid.UUID,
	actor *models.User,
) (*models.Notification, error) {
	log := c.log.Function("MarkRead")

	notification, err := c.notificationRepo.GetByID(ctx, notificationID)
	if err != nil {
		return nil, err
	}

	if notification.RecipientID != actor.ID {
		return nil, &models.DomainError{Kind: models.ErrKindNotFound, Detail: "notification not found"}
	}

	if notification.Read {
		return notification, nil
	}

	if err := c.notificationRepo.MarkRead(ctx, notification); err != nil {
		return nil, err
	}

	log.Debug("notification marked read", "notificationID", notificationID, "user", actor.Username)
	return notification, nil
}
