package models

import "gorm.io/gorm"

type GameType struct {
	gorm.Model

	Label string `gorm:"not null"`

	// Relationships
	Games []Game `gorm:"foreignKey:GameTypeID"`
}
