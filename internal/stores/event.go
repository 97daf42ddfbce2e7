package stores

import (
	"errors"
	"strings"
	"time"

	"github.com/levelup-dev/levelup/internal/models"
	"gorm.io/gorm"
)

type EventSummary struct {
	ID             uint            `json:"id"`
	DateOfEvent    string          `json:"date_of_event"`
	StartTime      string          `json:"start_time"`
	Location       string          `json:"location"`
	Game           EventGame       `json:"game"`
	Host           EventHost       `json:"host"`
	Attendees      []EventAttendee `json:"attendees"`
	Joined         bool            `json:"joined"`
	AttendeesCount int64           `json:"attendees_count"`
}

type EventGame struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type EventHost struct {
	FullName string `json:"full_name"`
}

type EventAttendee struct {
	FullName string `json:"full_name"`
}

type EventParams struct {
	DateOfEvent string
	StartTime   string
	Location    string
	GameID      uint
}

type EventStore struct {
	db         *gorm.DB
	aggregates *Aggregates
}

func NewEventStore(db *gorm.DB) *EventStore {
	return &EventStore{db: db, aggregates: NewAggregates(db)}
}

// List returns all events, or only those for one game when gameID is
// set, each annotated with attendees_count and whether the calling
// gamer has joined.
func (s *EventStore) List(callerGamerID uint, gameID *uint) ([]EventSummary, error) {
	query := s.db.Preload("Game").Preload("Host.User")

	if gameID != nil {
		query = query.Where("game_id = ?", *gameID)
	}

	var events []models.Event

	if err := query.Order("id").Find(&events).Error; err != nil {
		return nil, err
	}

	summaries := make([]EventSummary, 0, len(events))

	for _, event := range events {
		summary, err := s.buildSummary(event, callerGamerID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}

	return summaries, nil
}

func (s *EventStore) Get(id uint, callerGamerID uint) (EventSummary, error) {
	var event models.Event

	if err := s.db.Preload("Game").Preload("Host.User").First(&event, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EventSummary{}, ErrNotFound
		}
		return EventSummary{}, err
	}

	return s.buildSummary(event, callerGamerID)
}

// Create fails with ErrNotFound when the game does not exist, matching
// the caller-facing "invalid game ID" contract.
func (s *EventStore) Create(params EventParams, hostGamerID uint) (EventSummary, error) {
	if err := s.validate(params); err != nil {
		return EventSummary{}, err
	}

	var count int64

	if err := s.db.Model(&models.Game{}).Where("id = ?", params.GameID).Count(&count).Error; err != nil {
		return EventSummary{}, err
	}

	if count == 0 {
		return EventSummary{}, ErrNotFound
	}

	event := models.Event{
		DateOfEvent: params.DateOfEvent,
		StartTime:   params.StartTime,
		Location:    params.Location,
		GameID:      params.GameID,
		HostID:      hostGamerID,
	}

	if err := s.db.Create(&event).Error; err != nil {
		return EventSummary{}, err
	}

	return s.Get(event.ID, hostGamerID)
}

// Update never changes the host.
func (s *EventStore) Update(id uint, params EventParams) error {
	if err := s.validate(params); err != nil {
		return err
	}

	var count int64

	if err := s.db.Model(&models.Game{}).Where("id = ?", params.GameID).Count(&count).Error; err != nil {
		return err
	}

	if count == 0 {
		return ErrNotFound
	}

	var event models.Event

	if err := s.db.First(&event, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	event.DateOfEvent = params.DateOfEvent
	event.StartTime = params.StartTime
	event.Location = params.Location
	event.GameID = params.GameID

	return s.db.Save(&event).Error
}

// Delete removes the event and its attendance rows in one transaction.
func (s *EventStore) Delete(id uint) error {
	var event models.Event

	if err := s.db.First(&event, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", id).Delete(&models.EventGamer{}).Error; err != nil {
			return err
		}

		return tx.Delete(&event).Error
	})
}

// Signup is idempotent: an existing attendance row, or a duplicate-key
// loss in a race, both count as success. The unique (event_id,
// gamer_id) index is the arbiter under concurrency.
func (s *EventStore) Signup(eventID, gamerID uint) error {
	var count int64

	if err := s.db.Model(&models.Event{}).Where("id = ?", eventID).Count(&count).Error; err != nil {
		return err
	}

	if count == 0 {
		return ErrNotFound
	}

	var existing int64

	err := s.db.Model(&models.EventGamer{}).
		Where("event_id = ? AND gamer_id = ?", eventID, gamerID).
		Count(&existing).Error

	if err != nil {
		return err
	}

	if existing > 0 {
		return nil
	}

	attendance := models.EventGamer{EventID: eventID, GamerID: gamerID}

	if err := s.db.Create(&attendance).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil
		}
		return err
	}

	return nil
}

// Leave is a no-op when the gamer never joined.
func (s *EventStore) Leave(eventID, gamerID uint) error {
	var count int64

	if err := s.db.Model(&models.Event{}).Where("id = ?", eventID).Count(&count).Error; err != nil {
		return err
	}

	if count == 0 {
		return ErrNotFound
	}

	return s.db.
		Where("event_id = ? AND gamer_id = ?", eventID, gamerID).
		Delete(&models.EventGamer{}).Error
}

func (s *EventStore) validate(params EventParams) error {
	if _, err := time.Parse("2006-01-02", params.DateOfEvent); err != nil {
		return &ValidationError{Field: "date_of_event", Reason: "must be formatted YYYY-MM-DD"}
	}

	if _, err := time.Parse("15:04", params.StartTime); err != nil {
		return &ValidationError{Field: "start_time", Reason: "must be formatted HH:MM"}
	}

	if strings.TrimSpace(params.Location) == "" {
		return &ValidationError{Field: "location", Reason: "cannot be blank"}
	}

	return nil
}

type attendeeRow struct {
	FirstName string
	LastName  string
}

func (s *EventStore) buildSummary(event models.Event, callerGamerID uint) (EventSummary, error) {
	attendeesCount, err := s.aggregates.EventAttendeeCount(event.ID)
	if err != nil {
		return EventSummary{}, err
	}

	joined, err := s.aggregates.HasJoined(event.ID, callerGamerID)
	if err != nil {
		return EventSummary{}, err
	}

	var rows []attendeeRow

	err = s.db.Model(&models.EventGamer{}).
		Select("users.first_name, users.last_name").
		Joins("JOIN gamers ON gamers.id = event_gamers.gamer_id").
		Joins("JOIN users ON users.id = gamers.user_id").
		Where("event_gamers.event_id = ?", event.ID).
		Order("event_gamers.id").
		Find(&rows).Error

	if err != nil {
		return EventSummary{}, err
	}

	attendees := make([]EventAttendee, 0, len(rows))

	for _, row := range rows {
		attendees = append(attendees, EventAttendee{FullName: row.FirstName + " " + row.LastName})
	}

	return EventSummary{
		ID:          event.ID,
		DateOfEvent: event.DateOfEvent,
		StartTime:   event.StartTime,
		Location:    event.Location,
		Game: EventGame{
			ID:   event.Game.ID,
			Name: event.Game.Name,
		},
		Host: EventHost{
			FullName: event.Host.User.FirstName + " " + event.Host.User.LastName,
		},
		Attendees:      attendees,
		Joined:         joined,
		AttendeesCount: attendeesCount,
	}, nil
}
