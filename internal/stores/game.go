package stores

import (
	"errors"
	"strings"

	"github.com/levelup-dev/levelup/internal/models"
	"gorm.io/gorm"
)

type GameSummary struct {
	ID             uint            `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	MinPlayer      int             `json:"min_player"`
	MaxPlayer      int             `json:"max_player"`
	GameType       GameTypeSummary `json:"game_type"`
	Gamer          GameOwner       `json:"gamer"`
	EventCount     int64           `json:"event_count"`
	UserEventCount int64           `json:"user_event_count"`
}

type GameOwner struct {
	ID uint `json:"id"`
}

type GameParams struct {
	Name        string
	Description string
	MinPlayer   int
	MaxPlayer   int
	GameTypeID  uint
}

type GameStore struct {
	db         *gorm.DB
	aggregates *Aggregates
}

func NewGameStore(db *gorm.DB) *GameStore {
	return &GameStore{db: db, aggregates: NewAggregates(db)}
}

// List returns all games, optionally restricted to one game type, each
// annotated with the event counts for the calling gamer.
func (s *GameStore) List(callerGamerID uint, gameTypeID *uint) ([]GameSummary, error) {
	query := s.db.Preload("GameType")

	if gameTypeID != nil {
		query = query.Where("game_type_id = ?", *gameTypeID)
	}

	var games []models.Game

	if err := query.Order("id").Find(&games).Error; err != nil {
		return nil, err
	}

	summaries := make([]GameSummary, 0, len(games))

	for _, game := range games {
		summary, err := s.buildSummary(game, callerGamerID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}

	return summaries, nil
}

func (s *GameStore) Get(id uint, callerGamerID uint) (GameSummary, error) {
	var game models.Game

	if err := s.db.Preload("GameType").First(&game, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return GameSummary{}, ErrNotFound
		}
		return GameSummary{}, err
	}

	return s.buildSummary(game, callerGamerID)
}

func (s *GameStore) Create(params GameParams, ownerGamerID uint) (GameSummary, error) {
	if err := s.validate(params); err != nil {
		return GameSummary{}, err
	}

	game := models.Game{
		Name:        params.Name,
		Description: params.Description,
		MinPlayer:   params.MinPlayer,
		MaxPlayer:   params.MaxPlayer,
		GameTypeID:  params.GameTypeID,
		GamerID:     ownerGamerID,
	}

	if err := s.db.Create(&game).Error; err != nil {
		return GameSummary{}, err
	}

	return s.Get(game.ID, ownerGamerID)
}

func (s *GameStore) Update(id uint, params GameParams, ownerGamerID uint) error {
	if err := s.validate(params); err != nil {
		return err
	}

	var game models.Game

	if err := s.db.First(&game, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	game.Name = params.Name
	game.Description = params.Description
	game.MinPlayer = params.MinPlayer
	game.MaxPlayer = params.MaxPlayer
	game.GameTypeID = params.GameTypeID
	game.GamerID = ownerGamerID

	return s.db.Save(&game).Error
}

// Delete removes the game together with its events and their attendance
// rows in one transaction. A partial cascade would orphan attendance.
func (s *GameStore) Delete(id uint) error {
	var game models.Game

	if err := s.db.First(&game, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var eventIDs []uint

		if err := tx.Model(&models.Event{}).Where("game_id = ?", id).Pluck("id", &eventIDs).Error; err != nil {
			return err
		}

		if len(eventIDs) > 0 {
			if err := tx.Where("event_id IN ?", eventIDs).Delete(&models.EventGamer{}).Error; err != nil {
				return err
			}

			if err := tx.Where("game_id = ?", id).Delete(&models.Event{}).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&game).Error
	})
}

func (s *GameStore) validate(params GameParams) error {
	if strings.TrimSpace(params.Name) == "" {
		return &ValidationError{Field: "name", Reason: "cannot be blank"}
	}

	if strings.TrimSpace(params.Description) == "" {
		return &ValidationError{Field: "description", Reason: "cannot be blank"}
	}

	if params.MinPlayer <= 0 {
		return &ValidationError{Field: "min_player", Reason: "must be positive"}
	}

	if params.MaxPlayer < params.MinPlayer {
		return &ValidationError{Field: "max_player", Reason: "must be at least min_player"}
	}

	var count int64

	if err := s.db.Model(&models.GameType{}).Where("id = ?", params.GameTypeID).Count(&count).Error; err != nil {
		return err
	}

	if count == 0 {
		return &ValidationError{Field: "game_type", Reason: "does not exist"}
	}

	return nil
}

func (s *GameStore) buildSummary(game models.Game, callerGamerID uint) (GameSummary, error) {
	eventCount, err := s.aggregates.GameEventCount(game.ID)
	if err != nil {
		return GameSummary{}, err
	}

	userEventCount, err := s.aggregates.GameEventCountForHost(game.ID, callerGamerID)
	if err != nil {
		return GameSummary{}, err
	}

	return GameSummary{
		ID:          game.ID,
		Name:        game.Name,
		Description: game.Description,
		MinPlayer:   game.MinPlayer,
		MaxPlayer:   game.MaxPlayer,
		GameType: GameTypeSummary{
			ID:    game.GameType.ID,
			Label: game.GameType.Label,
		},
		Gamer:          GameOwner{ID: game.GamerID},
		EventCount:     eventCount,
		UserEventCount: userEventCount,
	}, nil
}
