package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Job is gorm model for store job post data in DB.
// A job is immutable after creation except through its applications.
type Job struct {
	ID uint `gorm:"primaryKey;autoIncrement;->" json:"id"`

	Title           string         `gorm:"type:text" json:"title"`
	Description     string         `gorm:"type:text" json:"description"`
	Requirements    pq.StringArray `gorm:"type:text[]" json:"requirements"`
	Salary          int            `gorm:"not null" json:"salary"`
	Location        string         `gorm:"type:text" json:"location"`
	JobType         string         `gorm:"type:text" json:"job_type"`
	ExperienceLevel string         `gorm:"type:text" json:"experience_level"`
	Position        int            `json:"position"`
	Category        string         `gorm:"type:text" json:"category"`
	IsFeatured      bool           `gorm:"default:false" json:"is_featured"`

	CompanyID uuid.UUID `gorm:"type:uuid;not null;index;<-:create" json:"company_id"`
	Company   Company   `gorm:"foreignKey:CompanyID;references:ID" json:"company"`

	CreatedByID uuid.UUID `gorm:"type:uuid;not null;index;<-:create" json:"created_by"`
	CreatedBy   User      `gorm:"foreignKey:CreatedByID;references:ID" json:"-"`

	CreatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"created_at"`

	Applications []Application `gorm:"foreignKey:JobID" json:"applications"`
}
