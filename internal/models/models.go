package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a registered account. Handle and email are globally
// unique; the password is only ever stored as a bcrypt digest.
type User struct {
	ID           string `gorm:"primaryKey;type:uuid" json:"id"`
	Username     string `gorm:"uniqueIndex;not null" json:"username"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

// Sound represents a single uploaded sound effect. The audio bytes live in
// object storage; URL points at the public asset.
type Sound struct {
	ID       string  `gorm:"primaryKey;type:uuid" json:"id"`
	Name     string  `gorm:"not null" json:"name"`
	URL      string  `gorm:"not null" json:"url"`
	Color    string  `json:"color"`
	Icon     string  `gorm:"default:'fa-music'" json:"icon"`
	Duration float64 `json:"duration"` // seconds
	Size     int64   `json:"size"`     // bytes

	// Nullable so sounds survive their uploader's account deletion.
	UploaderID *string `gorm:"type:uuid;index" json:"uploader_id"`
	Uploader   *User   `gorm:"foreignKey:UploaderID;constraint:OnDelete:SET NULL" json:"uploader,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Sound) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	if s.Icon == "" {
		s.Icon = "fa-music"
	}
	return nil
}

// Collection is a named, owned grouping of sounds. Membership order is not
// meaningful.
type Collection struct {
	ID          string `gorm:"primaryKey;type:uuid" json:"id"`
	Name        string `gorm:"not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	OwnerID     string `gorm:"type:uuid;not null;index" json:"owner_id"`
	Owner       *User  `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	IsPublic    bool   `gorm:"default:false" json:"is_public"`

	Sounds []Sound `gorm:"many2many:collection_sounds" json:"sounds"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Collection) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

// Favorite is a user's bookmark of a sound. The (user, sound) pair is
// unique; the database index is the source of truth under concurrency.
type Favorite struct {
	ID      string `gorm:"primaryKey;type:uuid" json:"id"`
	UserID  string `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_sound" json:"user_id"`
	SoundID string `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_sound" json:"sound_id"`
	Sound   *Sound `gorm:"foreignKey:SoundID" json:"sound,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (f *Favorite) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	return nil
}

// SoundView is a Sound annotated with caller-specific state for list
// responses.
type SoundView struct {
	Sound
	IsFavorite bool `json:"is_favorite"`
}
