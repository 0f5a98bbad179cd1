package model

// File represents an uploaded file stored in the database. Name is a
// generated unique object name, OriginalName whatever the uploader called it.
type File struct {
	ID           int    `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"type:text;uniqueIndex" json:"name"`
	Content      []byte `json:"-"`
	Extension    string `json:"extension"`
	OriginalName string `gorm:"type:text" json:"original_name"`
}
