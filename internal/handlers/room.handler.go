package handlers

import (
	"roomkeeper/internal/app"
	"roomkeeper/internal/controllers/auth"
	"roomkeeper/internal/controllers/cleaning"
	"roomkeeper/internal/controllers/rooms"
	"roomkeeper/internal/handlers/middleware"
	"roomkeeper/internal/models"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type RoomHandler struct {
	Handler
	roomController     rooms.RoomControllerInterface
	cleaningController cleaning.CleaningControllerInterface
	authController     auth.AuthControllerInterface
}

func NewRoomHandler(app app.App, router fiber.Router) *RoomHandler {
	return &RoomHandler{
		roomController:     app.RoomController,
		cleaningController: app.CleaningController,
		authController:     app.AuthController,
		Handler: Handler{
			log:        logger.New("handlers").File("room_handler"),
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *RoomHandler) Register() {
	roomsGroup := h.router.Group(
		"/rooms",
		h.middleware.RequireAuth(h.authController),
	)

	roomsGroup.Get("/", h.listRooms)
	roomsGroup.Get("/:id", h.getRoom)

	// Lifecycle operations; role checks live in the controller
	roomsGroup.Post("/:id/start-cleaning", h.startCleaning)
	roomsGroup.Post("/:id/complete-cleaning", h.completeCleaning)
	roomsGroup.Post("/:id/report-dirty", h.reportDirty)

	admin := roomsGroup.Group("/", h.middleware.RequireAdmin())
	admin.Post("/", h.createRoom)
	admin.Patch("/:id", h.updateRoom)
	admin.Delete("/:id", h.deleteRoom)
	admin.Get("/:id/sessions", h.roomSessions)
}

func (h *RoomHandler) listRooms(c *fiber.Ctx) error {
	details, err := h.roomController.List(c.UserContext(), c.Query("status"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"rooms": details})
}

func (h *RoomHandler) getRoom(c *fiber.Ctx) error {
	roomID, err := parseIDParam(c)
	if err != nil {
		return respondError(c, err)
	}

	detail, err := h.roomController.Get(c.UserContext(), roomID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(detail)
}

func (h *RoomHandler) createRoom(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("createRoom")

	var request models.RoomCreateRequest
	if err := c.BodyParser(&request); err != nil {
		log.Info("failed to parse room create request", "error", err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "invalid request body",
		})
	}

	detail, err := h.roomController.Create(c.UserContext(), request, middleware.GetUser(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(detail)
}

func (h *RoomHandler) updateRoom(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("updateRoom")

	roomID, err := parseIDParam(c)
	if err != nil {
		return respondError(c, err)
	}

	var request models.RoomUpdateRequest
	if err := c.BodyParser(&request); err != nil {
		log.Info("failed to parse room update request", "error", err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "invalid request body",
		})
	}

	detail, err := h.roomController.Update(c.UserContext(), roomID, request, middleware.GetUser(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(detail)
}

func (h *RoomHandler) deleteRoom(c *fiber.Ctx) error {
	roomID, err := parseIDParam(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := h.roomController.Delete(c.UserContext(), roomID, middleware.GetUser(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *RoomHandler) roomSessions(c *fiber.Ctx) error {
	roomID, err := parseIDParam(c)
	if err != nil {
		return respondError(c, err)
	}

	sessions, err := h.roomController.SessionHistory(c.UserContext(), roomID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"sessions": sessions})
}

func (h *RoomHandler) startCleaning(c *fiber.Ctx) error {
	roomID, err := parseIDParam(c)
	if err != nil {
		return respondError(c, err)
	}

	session, err := h.cleaningController.StartCleaning(c.UserContext(), roomID, middleware.GetUser(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(session.ToDetail())
}

func (h *RoomHandler) completeCleaning(c *fiber.Ctx) error {
	roomID, err := parseIDParam(c)
	if err != nil {
		return respondError(c, err)
	}

	// Body is optional; observations default to empty
	var request models.CompleteCleaningRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&request); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"detail": "invalid request body",
			})
		}
	}

	session, err := h.cleaningController.CompleteCleaning(
		c.UserContext(),
		roomID,
		middleware.GetUser(c),
		request.Observations,
	)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(session.ToDetail())
}

func (h *RoomHandler) reportDirty(c *fiber.Ctx) error {
	roomID, err := parseIDParam(c)
	if err != nil {
		return respondError(c, err)
	}

	var request models.ReportDirtyRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&request); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"detail": "invalid request body",
			})
		}
	}

	report, err := h.cleaningController.ReportDirty(
		c.UserContext(),
		roomID,
		middleware.GetUser(c),
		request.Observations,
	)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(report)
}

func parseIDParam(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, models.NewValidationError("invalid id")
	}
	return id, nil
}
