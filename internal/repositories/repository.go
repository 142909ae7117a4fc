package repositories

import (
	"context"

	appContext "roomkeeper/internal/context"
	"roomkeeper/internal/database"

	"gorm.io/gorm"
)

type Repository struct {
	User         UserRepository
	Room         RoomRepository
	Session      SessionRepository
	DirtyReport  DirtyReportRepository
	Notification NotificationRepository
}

func New(db database.DB) Repository {
	return Repository{
		User:         NewUserRepository(db), // user repo needs the cache clients
		Room:         NewRoomRepository(db),
		Session:      NewSessionRepository(db),
		DirtyReport:  NewDirtyReportRepository(db),
		Notification: NewNotificationRepository(db),
	}
}

// conn returns the transaction carried by the context when one is active,
// otherwise a plain context-scoped handle. Repositories always go through
// this so a controller-level transaction covers every store call inside it.
func conn(db database.DB, ctx context.Context) *gorm.DB {
	if tx, ok := appContext.GetTransaction(ctx); ok {
		return tx
	}
	return db.SQLWithContext(ctx)
}
