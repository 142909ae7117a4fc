package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"roomkeeper/config"
	"roomkeeper/internal/models"
	"roomkeeper/internal/repositories"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthControllerInterface interface {
	Login(ctx context.Context, request models.LoginRequest) (*LoginResponse, error)
	ValidateToken(tokenStr string) (*Claims, error)
}

type AuthController struct {
	userRepo repositories.UserRepository
	config   config.Config
	log      logger.Logger
}

func New(userRepo repositories.UserRepository, config config.Config) AuthControllerInterface {
	return &AuthController{
		userRepo: userRepo,
		config:   config,
		log:      logger.New("authController"),
	}
}

// Claims is the JWT payload carried by every authenticated request.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type LoginResponse struct {
	Token string             `json:"token"`
	User  models.UserProfile `json:"user"`
}

// Login checks the credentials and issues a signed token. Invalid
// username and invalid password return the same error so the response
// does not leak which accounts exist.
func (c *AuthController) Login(ctx context.Context, request models.LoginRequest) (*LoginResponse, error) {
	log := c.log.Function("Login")

	if request.Username == "" || request.Password == "" {
		return nil, models.NewValidationError("username and password are required")
	}

	user, err := c.userRepo.GetByUsername(ctx, request.Username)
	if err != nil {
		log.Info("login failed, unknown username", "username", request.Username)
		return nil, models.NewValidationError("invalid credentials")
	}

	if !user.IsActive {
		return nil, models.ErrForbidden
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(request.Password)); err != nil {
		log.Info("login failed, bad password", "username", request.Username)
		return nil, models.NewValidationError("invalid credentials")
	}

	token, err := c.generateToken(user)
	if err != nil {
		return nil, log.Err("failed to generate token", err, "userID", user.ID)
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := c.userRepo.Update(ctx, user); err != nil {
		log.Warn("failed to record last login", "userID", user.ID, "error", err)
	}

	return &LoginResponse{
		Token: token,
		User:  user.ToProfile(),
	}, nil
}

func (c *AuthController) generateToken(user *models.User) (string, error) {
	jti, err := generateJTI()
	if err != nil {
		return "", fmt.Errorf("generating JTI: %w", err)
	}

	expiry := time.Duration(c.config.JWTExpiryHours) * time.Hour
	claims := Claims{
		UserID:   user.ID.String(),
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(c.config.JWTSecret))
}

// ValidateToken parses and validates a bearer token, returning its claims.
func (c *AuthController) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(c.config.JWTSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	if _, err := uuid.Parse(claims.UserID); err != nil {
		return nil, fmt.Errorf("invalid subject in token")
	}

	return claims, nil
}

func generateJTI() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
