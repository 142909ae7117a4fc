package rooms

import (
	"context"
	"strings"
	"time"

	"roomkeeper/internal/models"
	"roomkeeper/internal/repositories"
	"roomkeeper/internal/services"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
)

// RoomControllerInterface owns the registry side: admin CRUD plus the read
// surface every authenticated user sees. Status on the read surface is
// always derived through the resolver, never stored.
type RoomControllerInterface interface {
	List(ctx context.Context, statusFilter string) ([]models.RoomDetail, error)
	Get(ctx context.Context, roomID uuid.UUID) (*models.RoomDetail, error)
	Create(ctx context.Context, request models.RoomCreateRequest, actor *models.User) (*models.RoomDetail, error)
	Update(ctx context.Context, roomID uuid.UUID, request models.RoomUpdateRequest, actor *models.User) (*models.RoomDetail, error)
	Delete(ctx context.Context, roomID uuid.UUID, actor *models.User) error
	SessionHistory(ctx context.Context, roomID uuid.UUID) ([]models.SessionDetail, error)
}

type RoomController struct {
	roomRepo        repositories.RoomRepository
	sessionRepo     repositories.SessionRepository
	dirtyReportRepo repositories.DirtyReportRepository
	userRepo        repositories.UserRepository
	log             logger.Logger
	now             func() time.Time
}

func New(
	roomRepo repositories.RoomRepository,
	sessionRepo repositories.SessionRepository,
	dirtyReportRepo repositories.DirtyReportRepository,
	userRepo repositories.UserRepository,
) RoomControllerInterface {
	return &RoomController{
		roomRepo:        roomRepo,
		sessionRepo:     sessionRepo,
		dirtyReportRepo: dirtyReportRepo,
		userRepo:        userRepo,
		log:             logger.New("roomController"),
		now:             time.Now,
	}
}

// List returns every room with its derived status. The optional filter
// matches the derived status, so filtering by "clean" at 10:00 and again
// at 16:00 can return different rooms without any writes in between.
func (c *RoomController) List(ctx context.Context, statusFilter string) ([]models.RoomDetail, error) {
	filter := models.RoomStatus(strings.ToLower(strings.TrimSpace(statusFilter)))
	if statusFilter != "" && !filter.Valid() {
		return nil, models.NewValidationError("unknown status filter: " + statusFilter)
	}

	roomList, err := c.roomRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	now := c.now()
	details := make([]models.RoomDetail, 0, len(roomList))
	for i := range roomList {
		detail, err := c.buildDetail(ctx, &roomList[i], now)
		if err != nil {
			return nil, err
		}
		if statusFilter != "" && detail.Status != filter {
			continue
		}
		details = append(details, *detail)
	}

	return details, nil
}

func (c *RoomController) Get(ctx context.Context, roomID uuid.UUID) (*models.RoomDetail, error) {
	room, err := c.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	return c.buildDetail(ctx, room, c.now())
}

func (c *RoomController) Create(
	ctx context.Context,
	request models.RoomCreateRequest,
	actor *models.User,
) (*models.RoomDetail, error) {
	log := c.log.Function("Create")

	if !actor.IsAdmin {
		return nil, models.ErrForbidden
	}

	if err := validateName(request.Name); err != nil {
		return nil, err
	}
	if request.Capacity <= 0 {
		return nil, models.NewValidationError("capacity must be greater than zero")
	}

	room := &models.Room{
		Name:          strings.TrimSpace(request.Name),
		Capacity:      request.Capacity,
		Description:   request.Description,
		Location:      request.Location,
		ValidityHours: models.DefaultValidityHours,
		IsActive:      true,
	}
	if request.ValidityHours != nil {
		if *request.ValidityHours <= 0 {
			return nil, models.NewValidationError("validityHours must be greater than zero")
		}
		room.ValidityHours = *request.ValidityHours
	}
	if request.IsActive != nil {
		room.IsActive = *request.IsActive
	}

	responsible, err := c.resolveResponsibleUsers(ctx, request.ResponsibleUsers)
	if err != nil {
		return nil, err
	}
	room.ResponsibleUsers = responsible

	if err := c.roomRepo.Create(ctx, room); err != nil {
		return nil, err
	}

	log.Info("room created", "roomID", room.ID, "name", room.Name, "by", actor.Username)
	return c.buildDetail(ctx, room, c.now())
}

func (c *RoomController) Update(
	ctx context.Context,
	roomID uuid.UUID,
	request models.RoomUpdateRequest,
	actor *models.User,
) (*models.RoomDetail, error) {
	log := c.log.Function("Update")

	if !actor.IsAdmin {
		return nil, models.ErrForbidden
	}

	room, err := c.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}

	if request.Name != nil {
		if err := validateName(*request.Name); err != nil {
			return nil, err
		}
		room.Name = strings.TrimSpace(*request.Name)
	}
	if request.Capacity != nil {
		if *request.Capacity <= 0 {
			return nil, models.NewValidationError("capacity must be greater than zero")
		}
		room.Capacity = *request.Capacity
	}
	if request.Description != nil {
		room.Description = *request.Description
	}
	if request.Location != nil {
		room.Location = *request.Location
	}
	if request.ValidityHours != nil {
		if *request.ValidityHours <= 0 {
			return nil, models.NewValidationError("validityHours must be greater than zero")
		}
		room.ValidityHours = *request.ValidityHours
	}
	if request.IsActive != nil {
		room.IsActive = *request.IsActive
	}

	if err := c.roomRepo.Update(ctx, room); err != nil {
		return nil, err
	}

	if request.ResponsibleUsers != nil {
		responsible, err := c.resolveResponsibleUsers(ctx, *request.ResponsibleUsers)
		if err != nil {
			return nil, err
		}
		if err := c.roomRepo.ReplaceResponsibleUsers(ctx, room, responsible); err != nil {
			return nil, err
		}
		room.ResponsibleUsers = responsible
	}

	log.Info("room updated", "roomID", room.ID, "by", actor.Username)
	return c.buildDetail(ctx, room, c.now())
}

// Delete removes a room. Inactive rooms cannot be deleted; reactivate the
// room first so removal is always an act on a live, visible room.
func (c *RoomController) Delete(ctx context.Context, roomID uuid.UUID, actor *models.User) error {
	log := c.log.Function("Delete")

	if !actor.IsAdmin {
		return models.ErrForbidden
	}

	room, err := c.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		return err
	}

	if !room.IsActive {
		return models.ErrInactiveRoomDelete
	}

	if err := c.roomRepo.Delete(ctx, room); err != nil {
		return err
	}

	log.Info("room deleted", "roomID", roomID, "by", actor.Username)
	return nil
}

func (c *RoomController) SessionHistory(ctx context.Context, roomID uuid.UUID) ([]models.SessionDetail, error) {
	if _, err := c.roomRepo.GetByID(ctx, roomID); err != nil {
		return nil, err
	}

	sessions, err := c.sessionRepo.ListByRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	details := make([]models.SessionDetail, 0, len(sessions))
	for i := range sessions {
		details = append(details, sessions[i].ToDetail())
	}
	return details, nil
}

// buildDetail assembles the read representation: derived status, the last
// completed cleaning summary, and the newest dirty report only when the
// room actually resolves Dirty.
func (c *RoomController) buildDetail(
	ctx context.Context,
	room *models.Room,
	now time.Time,
) (*models.RoomDetail, error) {
	open, err := c.sessionRepo.GetOpenByRoom(ctx, room.ID)
	if err != nil {
		return nil, err
	}

	lastCompleted, err := c.sessionRepo.LatestCompletedByRoom(ctx, room.ID)
	if err != nil {
		return nil, err
	}

	lastReport, err := c.dirtyReportRepo.LatestByRoom(ctx, room.ID)
	if err != nil {
		return nil, err
	}

	status := services.ResolveLatest(room, open, lastCompleted, lastReport, now)

	detail := &models.RoomDetail{
		ID:               room.ID.String(),
		Name:             room.Name,
		Capacity:         room.Capacity,
		Description:      room.Description,
		Location:         room.Location,
		ValidityHours:    room.ValidityHours,
		IsActive:         room.IsActive,
		Status:           status,
		ResponsibleUsers: make([]models.UserProfile, 0, len(room.ResponsibleUsers)),
	}

	for i := range room.ResponsibleUsers {
		detail.ResponsibleUsers = append(detail.ResponsibleUsers, room.ResponsibleUsers[i].ToProfile())
	}

	if lastCompleted != nil {
		info := &models.LastCleaningInfo{EndedAt: *lastCompleted.EndedAt}
		if lastCompleted.Employee != nil {
			username := lastCompleted.Employee.Username
			info.Employee = &username
		}
		detail.LastCleaning = info
	}

	if status == models.StatusDirty && lastReport != nil {
		info := &models.DirtyInfo{
			ReportedAt:   lastReport.ReportedAt,
			Observations: lastReport.Observations,
		}
		if lastReport.Reporter != nil {
			username := lastReport.Reporter.Username
			info.Reporter = &username
		}
		detail.DirtyInfo = info
	}

	return detail, nil
}

func (c *RoomController) resolveResponsibleUsers(ctx context.Context, rawIDs []string) ([]models.User, error) {
	if len(rawIDs) == 0 {
		return []models.User{}, nil
	}

	ids := make([]uuid.UUID, 0, len(rawIDs))
	for _, raw := range rawIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, models.NewValidationError("invalid user id: " + raw)
		}
		ids = append(ids, id)
	}

	users, err := c.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(users) != len(ids) {
		return nil, models.NewValidationError("one or more responsible users do not exist")
	}
	return users, nil
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return models.NewValidationError("name is required")
	}
	return nil
}
