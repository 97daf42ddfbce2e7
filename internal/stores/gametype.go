package stores

import (
	"errors"
	"strings"

	"github.com/levelup-dev/levelup/internal/models"
	"gorm.io/gorm"
)

type GameTypeSummary struct {
	ID    uint   `json:"id"`
	Label string `json:"label"`
}

type GameTypeStore struct {
	db *gorm.DB
}

func NewGameTypeStore(db *gorm.DB) *GameTypeStore {
	return &GameTypeStore{db: db}
}

func (s *GameTypeStore) Get(id uint) (GameTypeSummary, error) {
	var gameType models.GameType

	if err := s.db.First(&gameType, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return GameTypeSummary{}, ErrNotFound
		}
		return GameTypeSummary{}, err
	}

	return GameTypeSummary{ID: gameType.ID, Label: gameType.Label}, nil
}

func (s *GameTypeStore) List() ([]GameTypeSummary, error) {
	var gameTypes []models.GameType

	if err := s.db.Order("id").Find(&gameTypes).Error; err != nil {
		return nil, err
	}

	summaries := make([]GameTypeSummary, 0, len(gameTypes))

	for _, gameType := range gameTypes {
		summaries = append(summaries, GameTypeSummary{ID: gameType.ID, Label: gameType.Label})
	}

	return summaries, nil
}

func (s *GameTypeStore) Create(label string) (GameTypeSummary, error) {
	label = strings.TrimSpace(label)

	if label == "" {
		return GameTypeSummary{}, &ValidationError{Field: "label", Reason: "cannot be blank"}
	}

	gameType := models.GameType{Label: label}

	if err := s.db.Create(&gameType).Error; err != nil {
		return GameTypeSummary{}, err
	}

	return GameTypeSummary{ID: gameType.ID, Label: gameType.Label}, nil
}

func (s *GameTypeStore) Update(id uint, label string) error {
	label = strings.TrimSpace(label)

	if label == "" {
		return &ValidationError{Field: "label", Reason: "cannot be blank"}
	}

	var gameType models.GameType

	if err := s.db.First(&gameType, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	gameType.Label = label

	return s.db.Save(&gameType).Error
}

// Delete rejects with a ConflictError while any game still references
// the type. Cascading a taxonomy delete into catalog rows would destroy
// user data silently.
func (s *GameTypeStore) Delete(id uint) error {
	var gameType models.GameType

	if err := s.db.First(&gameType, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	var referencing int64

	if err := s.db.Model(&models.Game{}).Where("game_type_id = ?", id).Count(&referencing).Error; err != nil {
		return err
	}

	if referencing > 0 {
		return &ConflictError{Resource: "game type", Reason: "still referenced by games"}
	}

	return s.db.Delete(&gameType).Error
}
