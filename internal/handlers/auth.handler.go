package handlers

import (
	"roomkeeper/internal/app"
	"roomkeeper/internal/controllers/auth"
	"roomkeeper/internal/handlers/middleware"
	"roomkeeper/internal/models"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Handler
	authController auth.AuthControllerInterface
}

func NewAuthHandler(app app.App, router fiber.Router) *AuthHandler {
	return &AuthHandler{
		authController: app.AuthController,
		Handler: Handler{
			log:        logger.New("handlers").File("auth_handler"),
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *AuthHandler) Register() {
	authGroup := h.router.Group("/auth")

	authGroup.Post("/login", h.login)

	protected := authGroup.Group("/", h.middleware.RequireAuth(h.authController))
	protected.Get("/me", h.getCurrentUser)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("login")

	var request models.LoginRequest
	if err := c.BodyParser(&request); err != nil {
		log.Info("failed to parse login request", "error", err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "invalid request body",
		})
	}

	response, err := h.authController.Login(c.UserContext(), request)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(response)
}

func (h *AuthHandler) getCurrentUser(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"detail": "authentication required",
		})
	}

	return c.JSON(fiber.Map{"user": user.ToProfile()})
}
