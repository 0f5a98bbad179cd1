package model

import (
	"time"

	"github.com/google/uuid"
)

var (
	// ApplicationStatusPending indicates that the application is pending review
	ApplicationStatusPending = "pending"
	// ApplicationStatusAccepted indicates that the application has been accepted
	ApplicationStatusAccepted = "accepted"
	// ApplicationStatusRejected indicates that the application has been rejected
	ApplicationStatusRejected = "rejected"
)

// Application represents a job application record.
// It is the single source of truth for "who applied to what": neither User
// nor Job keeps an embedded copy. The composite unique index makes
// at-most-one application per (applicant, job) a storage-layer guarantee.
type Application struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	// ApplicantID references User.ID (uuid)
	ApplicantID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_applicant_job" json:"applicant_id"`
	Applicant   User      `gorm:"foreignKey:ApplicantID;references:ID" json:"-"`

	// JobID references Job.ID
	JobID uint `gorm:"not null;index;uniqueIndex:idx_applicant_job" json:"job_id"`
	Job   Job  `gorm:"foreignKey:JobID;references:ID" json:"-"`

	Status    string    `gorm:"type:text;default:'pending'" json:"status"`
	AppliedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"applied_at"`
}
