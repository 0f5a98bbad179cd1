package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

var (
	// RoleStudent is the role of users browsing and applying to jobs
	RoleStudent = "student"
	// RoleRecruiter is the role of users owning companies and job posts
	RoleRecruiter = "recruiter"
)

// EditableProfileInfo is the part of a user profile that can be overwritten
// through the profile update endpoint.
type EditableProfileInfo struct {
	FullName    string         `gorm:"type:text" json:"fullname"`
	PhoneNumber string         `gorm:"type:text" json:"phone_number"`
	Bio         string         `gorm:"type:text" json:"bio"`
	Skills      pq.StringArray `gorm:"type:text[]" json:"skills"`
	Company     string         `gorm:"type:text" json:"company"`
	Position    string         `gorm:"type:text" json:"position"`
	Location    string         `gorm:"type:text" json:"location"`
	SocialLinks pq.StringArray `gorm:"type:text[]" json:"social_links"`
	ResumeURL   string         `gorm:"type:text" json:"resume_url"`
}

// User is gorm model for every account in the system.
// Email is stored lower-cased so uniqueness is case-insensitive.
type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Email    string    `gorm:"type:text;uniqueIndex;not null" json:"email"`
	Password string    `gorm:"type:text" json:"-"`
	Role     string    `gorm:"type:text;not null" json:"role"`

	EditableProfileInfo

	// Resume holds the uploaded resume file, Photo the profile picture.
	// Both are optional and routed by MIME type on upload.
	ResumeID           *int   `json:"resume_id"`
	Resume             File   `gorm:"foreignKey:ResumeID;references:ID" json:"-"`
	ResumeOriginalName string `gorm:"type:text" json:"resume_original_name"`
	PhotoID            *int   `json:"photo_id"`
	Photo              File   `gorm:"foreignKey:PhotoID;references:ID" json:"-"`

	CreatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"created_at"`
}
