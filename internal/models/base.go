package models

import (
	"errors"
	"time"

	"moneta/internal/uuid"

	"gorm.io/gorm"
)

// ErrInvalidID is returned when a row is created with a preset ID that is
// not a UUID.
var ErrInvalidID = errors.New("id is not a uuid")

// Base holds the UUID key and timestamps of user accounts. Deleted users
// stay in the table so their transactions keep a valid owner.
type Base struct {
	ID        string         `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate assigns a UUIDv7 unless the caller preset one.
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	id, err := assignID(b.ID)
	if err != nil {
		return err
	}
	b.ID = id
	return nil
}

func assignID(id string) (string, error) {
	switch {
	case id == "":
		return uuid.New(), nil
	case !uuid.IsValid(id):
		return "", ErrInvalidID
	}
	return id, nil
}
