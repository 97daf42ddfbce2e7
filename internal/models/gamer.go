package models

import "gorm.io/gorm"

// Gamer is the player profile, one per authenticated user. The display
// name is never stored here; it is projected from the linked User at
// read time.
type Gamer struct {
	gorm.Model

	UserID uint   `gorm:"not null;uniqueIndex"`
	Bio    string `gorm:"not null"`

	// Relationships
	User         User         `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	OwnedGames   []Game       `gorm:"foreignKey:GamerID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	HostedEvents []Event      `gorm:"foreignKey:HostID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Attendance   []EventGamer `gorm:"foreignKey:GamerID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
