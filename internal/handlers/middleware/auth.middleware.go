package middleware

import (
	"context"
	"strings"

	"roomkeeper/internal/controllers/auth"
	"roomkeeper/internal/models"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// AuthContextKey is used to store auth info in context
type AuthContextKey string

const (
	UserKey      AuthContextKey = "user"
	UserKeyFiber string         = "User" // Fiber context key (string)
)

// RequireAuth validates the bearer token and loads the matching user. The
// user lookup goes through the repository's valkey cache, so the hot path
// does not hit Postgres on every request.
func (m *Middleware) RequireAuth(authController auth.AuthControllerInterface) fiber.Handler {
	return func(c *fiber.Ctx) error {
		log := logger.New("middleware").TraceFromContext(c.UserContext()).Function("RequireAuth")

		authHeader := c.Get("Authorization")
		if authHeader == "" {
			log.Info("missing authorization header")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"detail": "authorization header required",
			})
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || strings.ToLower(tokenParts[0]) != "bearer" {
			log.Info("invalid authorization header format")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"detail": "invalid authorization header format",
			})
		}

		claims, err := authController.ValidateToken(tokenParts[1])
		if err != nil {
			log.Info("token validation failed", "error", err.Error())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"detail": "invalid token",
			})
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			log.Info("invalid user id in token", "userID", claims.UserID)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"detail": "invalid token",
			})
		}

		user, err := m.userRepo.GetByID(c.UserContext(), userID)
		if err != nil {
			log.Info("user not found", "userID", userID, "error", err.Error())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"detail": "user not found",
			})
		}

		if !user.IsActive {
			log.Info("inactive user rejected", "userID", userID)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"detail": "account is disabled",
			})
		}

		c.Locals(UserKeyFiber, user)

		// Preserve the trace ID already on the user context
		ctx := context.WithValue(c.UserContext(), UserKey, user)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// GetUser extracts user from Fiber context
func GetUser(c *fiber.Ctx) *models.User {
	user, ok := c.Locals(UserKeyFiber).(*models.User)
	if !ok {
		return nil
	}
	return user
}
