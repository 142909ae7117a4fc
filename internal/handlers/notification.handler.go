package handlers

import (
	"roomkeeper/internal/app"
	"roomkeeper/internal/controllers/auth"
	"roomkeeper/internal/controllers/notifications"
	"roomkeeper/internal/handlers/middleware"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/gofiber/fiber/v2"
)

type NotificationHandler struct {
	Handler
	notificationController notifications.NotificationControllerInterface
	authController         auth.AuthControllerInterface
}

func NewNotificationHandler(app app.App, router fiber.Router) *NotificationHandler {
	return &NotificationHandler{
		notificationController: app.NotificationController,
		authController:         app.AuthController,
		Handler: Handler{
			log:        logger.New("handlers").File("notification_handler"),
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *NotificationHandler) Register() {
	notificationsGroup := h.router.Group(
		"/notifications",
		h.middleware.RequireAuth(h.authController),
	)

	notificationsGroup.Get("/", h.listNotifications)
	notificationsGroup.Post("/:id/read", h.markRead)
}

func (h *NotificationHandler) listNotifications(c *fiber.Ctx) error {
	unreadOnly := c.QueryBool("unread")

	list, err := h.notificationController.ListOwn(c.UserContext(), middleware.GetUser(c), unreadOnly)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"notifications": list})
}

func (h *NotificationHandler) markRead(c *fiber.Ctx) error {
	notificationID, err := parseIDParam(c)
	if err != nil {
		return respondError(c, err)
	}

	notification, err := h.notificationController.MarkRead(c.UserContext(), notificationID, middleware.GetUser(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(notification)
}
