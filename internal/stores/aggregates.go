package stores

import (
	"github.com/levelup-dev/levelup/internal/models"
	"gorm.io/gorm"
)

// Aggregates computes the read-side derived values: attendee counts,
// joined flags, per-game event counts and the events-by-user report.
// Nothing here writes.
type Aggregates struct {
	db *gorm.DB
}

func NewAggregates(db *gorm.DB) *Aggregates {
	return &Aggregates{db: db}
}

func (a *Aggregates) EventAttendeeCount(eventID uint) (int64, error) {
	var count int64

	err := a.db.Model(&models.EventGamer{}).
		Where("event_id = ?", eventID).
		Count(&count).Error

	return count, err
}

func (a *Aggregates) HasJoined(eventID, gamerID uint) (bool, error) {
	var count int64

	err := a.db.Model(&models.EventGamer{}).
		Where("event_id = ? AND gamer_id = ?", eventID, gamerID).
		Count(&count).Error

	return count > 0, err
}

func (a *Aggregates) GameEventCount(gameID uint) (int64, error) {
	var count int64

	err := a.db.Model(&models.Event{}).
		Where("game_id = ?", gameID).
		Count(&count).Error

	return count, err
}

func (a *Aggregates) GameEventCountForHost(gameID, gamerID uint) (int64, error) {
	var count int64

	err := a.db.Model(&models.Event{}).
		Where("game_id = ? AND host_id = ?", gameID, gamerID).
		Count(&count).Error

	return count, err
}

type UserEventEntry struct {
	EventID  uint   `json:"event_id"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	GameName string `json:"game_name"`
}

type UserEvents struct {
	GamerID  uint             `json:"gamer_id"`
	FullName string           `json:"full_name"`
	Events   []UserEventEntry `json:"events"`
}

type userEventRow struct {
	EventID     uint
	DateOfEvent string
	StartTime   string
	GamerID     uint
	GameName    string
	FullName    string
}

// EventsByUser lists every attended event grouped by the attending
// gamer, in order of each gamer's first appearance in the scan. The
// game name comes from Event→Game and the display name from
// EventGamer→Gamer→users.
func (a *Aggregates) EventsByUser() ([]UserEvents, error) {
	var rows []userEventRow

	err := a.db.Raw(`
		SELECT
			e.id AS event_id,
			e.date_of_event,
			e.start_time,
			gr.id AS gamer_id,
			g.name AS game_name,
			u.first_name || ' ' || u.last_name AS full_name
		FROM events e
			JOIN games g ON g.id = e.game_id
			JOIN event_gamers eg ON eg.event_id = e.id
			JOIN gamers gr ON gr.id = eg.gamer_id
			JOIN users u ON u.id = gr.user_id
		WHERE e.deleted_at IS NULL
			AND g.deleted_at IS NULL
			AND gr.deleted_at IS NULL
			AND u.deleted_at IS NULL
		ORDER BY e.id, gr.id
	`).Scan(&rows).Error

	if err != nil {
		return nil, err
	}

	eventsByUser := []UserEvents{}
	indexByGamer := make(map[uint]int)

	for _, row := range rows {
		entry := UserEventEntry{
			EventID:  row.EventID,
			Date:     row.DateOfEvent,
			Time:     row.StartTime,
			GameName: row.GameName,
		}

		if i, ok := indexByGamer[row.GamerID]; ok {
			eventsByUser[i].Events = append(eventsByUser[i].Events, entry)
			continue
		}

		indexByGamer[row.GamerID] = len(eventsByUser)
		eventsByUser = append(eventsByUser, UserEvents{
			GamerID:  row.GamerID,
			FullName: row.FullName,
			Events:   []UserEventEntry{entry},
		})
	}

	return eventsByUser, nil
}
