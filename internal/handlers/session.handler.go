package handlers

import (
	"roomkeeper/internal/app"
	"roomkeeper/internal/controllers/auth"
	"roomkeeper/internal/controllers/cleaning"
	"roomkeeper/internal/handlers/middleware"
	"roomkeeper/internal/models"
	"roomkeeper/internal/repositories"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type SessionHandler struct {
	Handler
	cleaningController cleaning.CleaningControllerInterface
	authController     auth.AuthControllerInterface
	sessionRepo        repositories.SessionRepository
}

func NewSessionHandler(app app.App, router fiber.Router) *SessionHandler {
	return &SessionHandler{
		cleaningController: app.CleaningController,
		authController:     app.AuthController,
		sessionRepo:        app.SessionRepo,
		Handler: Handler{
			log:        logger.New("handlers").File("session_handler"),
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *SessionHandler) Register() {
	sessions := h.router.Group(
		"/sessions",
		h.middleware.RequireAuth(h.authController),
	)

	sessions.Post("/:id/photos", h.addPhoto)

	admin := sessions.Group("/", h.middleware.RequireAdmin())
	admin.Get("/", h.listSessions)
}

func (h *SessionHandler) addPhoto(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("addPhoto")

	sessionID, err := parseIDParam(c)
	if err != nil {
		return respondError(c, err)
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		log.Info("missing image file in upload", "error", err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "multipart field 'image' is required",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "could not read uploaded file",
		})
	}
	defer file.Close()

	photo, err := h.cleaningController.AddPhoto(c.UserContext(), sessionID, middleware.GetUser(c), file)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(photo)
}

func (h *SessionHandler) listSessions(c *fiber.Ctx) error {
	if roomID := c.Query("roomId"); roomID != "" {
		id, err := uuid.Parse(roomID)
		if err != nil {
			return respondError(c, models.NewValidationError("invalid roomId"))
		}

		sessions, err := h.sessionRepo.ListByRoom(c.UserContext(), id)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"sessions": toDetails(sessions)})
	}

	sessions, err := h.sessionRepo.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"sessions": toDetails(sessions)})
}

func toDetails(sessions []models.CleaningSession) []models.SessionDetail {
	details := make([]models.SessionDetail, 0, len(sessions))
	for i := range sessions {
		details = append(details, sessions[i].ToDetail())
	}
	return details
}
