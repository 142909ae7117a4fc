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

type DirtyReportRepository interface {
	Create(ctx context.Context, report *models.DirtyReport) error
	LatestByRoom(ctx context.Context, roomID uuid.UUID) (*models.DirtyReport, error)
	ListByRoom(ctx context.Context, roomID uuid.UUID) ([]models.DirtyReport, error)
}

type dirtyReportRepository struct {
	db  database.DB
	log logger.Logger
}

func NewDirtyReportRepository(db database.DB) DirtyReportRepository {
	return &dirtyReportRepository{
		db:  db,
		log: logger.New("dirtyReportRepository"),
	}
}

func (r *dirtyReportRepository) Create(ctx context.Context, report *models.DirtyReport) error {
	log := r.log.Function("Create")

	if err := conn(r.db, ctx).Create(report).Error; err != nil {
		return log.Err("failed to create dirty report", err, "roomID", report.RoomID)
	}
	return nil
}

// LatestByRoom returns the most recent dirty report, or nil when the room
// has never been flagged.
func (r *dirtyReportRepository) LatestByRoom(ctx context.Context, roomID uuid.UUID) (*models.DirtyReport, error) {
	var report models.DirtyReport
	err := conn(r.db, ctx).
		Preload("Reporter").
		Where("room_id = ?", roomID).
		Order("reported_at DESC").
		First(&report).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, r.log.Function("LatestByRoom").
			Err("failed to get latest dirty report", err, "roomID", roomID)
	}
	return &report, nil
}

func (r *dirtyReportRepository) ListByRoom(ctx context.Context, roomID uuid.UUID) ([]models.DirtyReport, error) {
	var reports []models.DirtyReport
	err := conn(r.db, ctx).
		Preload("Reporter").
		Where("room_id = ?", roomID).
		Order("reported_at DESC").
		Find(&reports).Error
	if err != nil {
		return nil, r.log.Function("ListByRoom").
			Err("failed to list dirty reports", err, "roomID", roomID)
	}
	return reports, nil
}
