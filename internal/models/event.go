package models

import "gorm.io/gorm"

type Event struct {
	gorm.Model

	DateOfEvent string `gorm:"not null"` // "2006-01-02"
	StartTime   string `gorm:"not null"` // "15:04"
	Location    string `gorm:"not null"`
	GameID      uint   `gorm:"not null;index"`
	HostID      uint   `gorm:"not null;index"`

	// Relationships
	Game      Game         `gorm:"foreignKey:GameID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Host      Gamer        `gorm:"foreignKey:HostID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Attendees []EventGamer `gorm:"foreignKey:EventID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
