package seed

import (
	"roomkeeper/config"
	"roomkeeper/internal/models"

	logger "github.com/Bparsons0904/goLogger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func stringPtr(s string) *string {
	return &s
}

// Seed loads development users and rooms. Safe to re-run; existing rows
// are left alone.
func Seed(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("seed")
	log.Info("Seeding development data")

	users := []models.User{
		{
			Username:    "admin",
			DisplayName: "Administrator",
			Email:       stringPtr("admin@example.com"),
			IsAdmin:     true,
			IsActive:    true,
		},
		{
			Username:    "cleaner",
			DisplayName: "Cleaning Staff",
			Email:       stringPtr("cleaner@example.com"),
			IsCleaner:   true,
			IsActive:    true,
		},
		{
			Username:    "requester",
			DisplayName: "Room Requester",
			Email:       stringPtr("requester@example.com"),
			IsRequester: true,
			IsActive:    true,
		},
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return log.Err("failed to hash seed password", err)
	}

	var cleanerUser *models.User
	for i := range users {
		user := &users[i]
		user.PasswordHash = string(hash)

		var existing models.User
		if err := db.First(&existing, "username = ?", user.Username).Error; err == nil {
			log.Info("User already exists", "username", user.Username)
			if existing.IsCleaner {
				cleanerUser = &existing
			}
			continue
		}

		log.Info("Seeding user", "username", user.Username)
		if err := db.Create(user).Error; err != nil {
			return log.Err("failed to create user", err, "username", user.Username)
		}
		if user.IsCleaner {
			cleanerUser = user
		}
	}

	rooms := []models.Room{
		{
			Name:          "Meeting Room A",
			Capacity:      8,
			Description:   "Main meeting room, first floor",
			Location:      "1st floor",
			ValidityHours: 4,
			IsActive:      true,
		},
		{
			Name:          "Meeting Room B",
			Capacity:      4,
			Description:   "Small huddle room",
			Location:      "2nd floor",
			ValidityHours: 8,
			IsActive:      true,
		},
		{
			Name:          "Auditorium",
			Capacity:      60,
			Description:   "Event space, cleaned on demand",
			Location:      "Ground floor",
			ValidityHours: 4,
			IsActive:      false,
		},
	}

	for i := range rooms {
		room := &rooms[i]

		var existing models.Room
		if err := db.First(&existing, "name = ?", room.Name).Error; err == nil {
			log.Info("Room already exists", "name", room.Name)
			continue
		}

		if cleanerUser != nil {
			room.ResponsibleUsers = []models.User{*cleanerUser}
		}

		log.Info("Seeding room", "name", room.Name)
		if err := db.Create(room).Error; err != nil {
			return log.Err("failed to create room", err, "name", room.Name)
		}
	}

	return nil
}
