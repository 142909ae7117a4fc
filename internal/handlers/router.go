package handlers

import (
	"roomkeeper/internal/app"
	"roomkeeper/internal/handlers/middleware"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	middleware middleware.Middleware
	log        logger.Logger
	router     fiber.Router
}

func Router(router fiber.Router, app *app.App) (err error) {
	api := router.Group("/api", app.Middleware.TraceID())

	HealthHandler(api, app.Config)
	NewAuthHandler(*app, api).Register()
	NewRoomHandler(*app, api).Register()
	NewSessionHandler(*app, api).Register()
	NewNotificationHandler(*app, api).Register()

	return nil
}
