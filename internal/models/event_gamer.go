package models

import "time"

// EventGamer records that a Gamer is signed up for an Event. It does not
// embed gorm.Model: the (event_id, gamer_id) unique index must be free
// again after a leave, so rows are hard-deleted rather than soft-deleted.
type EventGamer struct {
	ID        uint `gorm:"primaryKey"`
	EventID   uint `gorm:"not null;uniqueIndex:idx_event_gamer"`
	GamerID   uint `gorm:"not null;uniqueIndex:idx_event_gamer"`
	CreatedAt time.Time

	// Relationships
	Event Event `gorm:"foreignKey:EventID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Gamer Gamer `gorm:"foreignKey:GamerID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
