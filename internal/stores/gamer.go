package stores

import (
	"errors"

	"github.com/levelup-dev/levelup/internal/models"
	"gorm.io/gorm"
)

// GamerProfile is a gamer with the display name projected from the
// linked user row.
type GamerProfile struct {
	ID       uint   `json:"id"`
	Bio      string `json:"bio"`
	FullName string `json:"full_name"`
}

type GamerStore struct {
	db *gorm.DB
}

func NewGamerStore(db *gorm.DB) *GamerStore {
	return &GamerStore{db: db}
}

type gamerRow struct {
	ID        uint
	Bio       string
	FirstName string
	LastName  string
}

func (r gamerRow) profile() GamerProfile {
	return GamerProfile{
		ID:       r.ID,
		Bio:      r.Bio,
		FullName: r.FirstName + " " + r.LastName,
	}
}

// GetByUserID resolves the calling user into their gamer profile. Every
// operation that acts "as the current gamer" goes through here.
func (s *GamerStore) GetByUserID(userID uint) (GamerProfile, error) {
	var row gamerRow

	err := s.db.Model(&models.Gamer{}).
		Select("gamers.id, gamers.bio, users.first_name, users.last_name").
		Joins("JOIN users ON users.id = gamers.user_id").
		Where("gamers.user_id = ?", userID).
		First(&row).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return GamerProfile{}, ErrNoGamerProfile
		}
		return GamerProfile{}, err
	}

	return row.profile(), nil
}

func (s *GamerStore) Get(id uint) (GamerProfile, error) {
	var row gamerRow

	err := s.db.Model(&models.Gamer{}).
		Select("gamers.id, gamers.bio, users.first_name, users.last_name").
		Joins("JOIN users ON users.id = gamers.user_id").
		Where("gamers.id = ?", id).
		First(&row).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return GamerProfile{}, ErrNotFound
		}
		return GamerProfile{}, err
	}

	return row.profile(), nil
}

func (s *GamerStore) List() ([]GamerProfile, error) {
	var rows []gamerRow

	err := s.db.Model(&models.Gamer{}).
		Select("gamers.id, gamers.bio, users.first_name, users.last_name").
		Joins("JOIN users ON users.id = gamers.user_id").
		Order("gamers.id").
		Find(&rows).Error

	if err != nil {
		return nil, err
	}

	profiles := make([]GamerProfile, 0, len(rows))

	for _, row := range rows {
		profiles = append(profiles, row.profile())
	}

	return profiles, nil
}

func (s *GamerStore) Create(userID uint, bio string) (GamerProfile, error) {
	gamer := models.Gamer{UserID: userID, Bio: bio}

	if err := s.db.Create(&gamer).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return GamerProfile{}, &ConflictError{Resource: "gamer", Reason: "profile already exists for user"}
		}
		return GamerProfile{}, err
	}

	return s.Get(gamer.ID)
}

func (s *GamerStore) UpdateBio(id uint, bio string) error {
	var gamer models.Gamer

	if err := s.db.First(&gamer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	gamer.Bio = bio

	return s.db.Save(&gamer).Error
}
