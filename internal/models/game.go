package models

import "gorm.io/gorm"

type Game struct {
	gorm.Model

	Name        string `gorm:"not null"`
	Description string `gorm:"not null"`
	MinPlayer   int    `gorm:"not null"`
	MaxPlayer   int    `gorm:"not null"`
	GameTypeID  uint   `gorm:"not null;index"`
	GamerID     uint   `gorm:"not null;index"` // Foreign key to the owning Gamer

	// Relationships
	GameType GameType `gorm:"foreignKey:GameTypeID"`
	Gamer    Gamer    `gorm:"foreignKey:GamerID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Events   []Event  `gorm:"foreignKey:GameID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
