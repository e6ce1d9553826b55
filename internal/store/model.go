package store

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Model is embedded by every persisted document.
type Model struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"_id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (m *Model) Base() *Model { return m }

// Stamp assigns an id on first use and refreshes timestamps.
func (m *Model) Stamp(now time.Time) {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now
}

func (m *Model) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// Entity is satisfied by any struct embedding Model.
type Entity interface {
	Base() *Model
}

// EntityID returns the id of any document embedding Model, or "".
func EntityID(v any) string {
	if e, ok := v.(Entity); ok {
		return e.Base().ID
	}
	return ""
}
