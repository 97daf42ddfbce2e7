package stores

import (
	"testing"

	"github.com/levelup-dev/levelup/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// The in-memory database lives and dies with a single connection.
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = gdb.AutoMigrate(
		&models.User{},
		&models.Gamer{},
		&models.GameType{},
		&models.Game{},
		&models.Event{},
		&models.EventGamer{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return gdb
}

func seedGamer(t *testing.T, db *gorm.DB, firstName, lastName string) models.Gamer {
	t.Helper()

	user := models.User{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        firstName + "." + lastName + "@example.com",
		PasswordHash: "x",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}

	gamer := models.Gamer{UserID: user.ID, Bio: "likes games"}
	if err := db.Create(&gamer).Error; err != nil {
		t.Fatalf("failed to seed gamer: %v", err)
	}

	return gamer
}

func seedGameType(t *testing.T, db *gorm.DB, label string) models.GameType {
	t.Helper()

	gameType := models.GameType{Label: label}
	if err := db.Create(&gameType).Error; err != nil {
		t.Fatalf("failed to seed game type: %v", err)
	}

	return gameType
}

func seedGame(t *testing.T, db *gorm.DB, name string, gameTypeID, ownerID uint) models.Game {
	t.Helper()

	game := models.Game{
		Name:        name,
		Description: "seeded game",
		MinPlayer:   2,
		MaxPlayer:   4,
		GameTypeID:  gameTypeID,
		GamerID:     ownerID,
	}
	if err := db.Create(&game).Error; err != nil {
		t.Fatalf("failed to seed game: %v", err)
	}

	return game
}

func seedEvent(t *testing.T, db *gorm.DB, gameID, hostID uint) models.Event {
	t.Helper()

	event := models.Event{
		DateOfEvent: "2023-12-22",
		StartTime:   "18:00",
		Location:    "Jes's House",
		GameID:      gameID,
		HostID:      hostID,
	}
	if err := db.Create(&event).Error; err != nil {
		t.Fatalf("failed to seed event: %v", err)
	}

	return event
}
