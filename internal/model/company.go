package model

import (
	"time"

	"github.com/google/uuid"
)

// EditableCompanyInfo is part of company profile that can be edited
type EditableCompanyInfo struct {
	Name        string `gorm:"type:text" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Website     string `gorm:"type:text" json:"website"`
	Location    string `gorm:"type:text" json:"location"`
}

// Company is gorm model for a company registered by a recruiter
type Company struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	OwnerID uuid.UUID `gorm:"type:uuid;not null;index;<-:create" json:"owner_id"`
	Owner   User      `gorm:"foreignKey:OwnerID;references:ID" json:"-"`

	EditableCompanyInfo

	LogoID *int `json:"logo_id"`
	Logo   File `gorm:"foreignKey:LogoID;references:ID" json:"-"`

	CreatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"created_at"`
}
