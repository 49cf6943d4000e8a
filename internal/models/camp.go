package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Camp represents a multi-day event ("Freizeit") with a fixed participant count.
// Deleting a camp deletes its meal plan entries in the same transaction; the
// service layer owns that cascade, not the ORM.
type Camp struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name             string    `gorm:"size:255;not null" json:"name"`
	StartDate        time.Time `gorm:"not null" json:"start_date"`
	EndDate          time.Time `gorm:"not null" json:"end_date"`
	ParticipantCount int       `gorm:"not null" json:"participant_count"`
	LastAccessed     time.Time `json:"last_accessed"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	MealPlans []MealPlanEntry `gorm:"foreignKey:CampID" json:"-"`
}

func (Camp) TableName() string {
	return "camps"
}

func (c *Camp) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.LastAccessed.IsZero() {
		c.LastAccessed = time.Now().UTC()
	}
	return nil
}

// Days returns the number of calendar days the camp spans, inclusive.
func (c *Camp) Days() int {
	return int(c.EndDate.Sub(c.StartDate).Hours()/24) + 1
}
