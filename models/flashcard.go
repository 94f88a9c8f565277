package models

import (
	"time"
)

// Flashcard is one version of a logical card. All versions of the same card
// share a VersionGroup; exactly one row per group carries IsLive = true and
// represents the current content. Editing never mutates a row in place, it
// appends the next VersionNumber to the group.
type Flashcard struct {
	ID            uint      `json:"id" gorm:"primarykey"`
	Title         string    `json:"title" gorm:"not null;index"`
	Phrase        string    `json:"phrase" gorm:"size:500"`
	Definition    string    `json:"definition" gorm:"type:text"`
	FrontImage    string    `json:"front_image"`
	BackImage     string    `json:"back_image"`
	Tags          []Tag     `json:"tags" gorm:"many2many:flashcard_tags;"`
	CreatedByID   uint      `json:"created_by" gorm:"not null"`
	CreatedBy     *User     `json:"created_by_user,omitempty" gorm:"foreignKey:CreatedByID"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	IsActive      bool      `json:"is_active" gorm:"default:true;index"`
	VersionGroup  string    `json:"version_group" gorm:"type:uuid;not null;uniqueIndex:idx_flashcards_group_version"`
	VersionNumber int       `json:"version_number" gorm:"not null;default:1;uniqueIndex:idx_flashcards_group_version"`
	IsLive        bool      `json:"is_live" gorm:"default:true;index"`
}
