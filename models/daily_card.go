package models

import (
	"time"
)

// DailyCard pins the card shown on one calendar day. Created lazily on the
// first read of the day, never updated afterwards.
type DailyCard struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	CardID    uint      `json:"card_id" gorm:"not null"`
	Card      Flashcard `json:"card" gorm:"foreignKey:CardID"`
	Date      time.Time `json:"date" gorm:"type:date;uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
}

// CardUsageLog is the append-only record of which cards have been shown in
// which rotation cycle.
type CardUsageLog struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	CardID      uint      `json:"card_id" gorm:"not null;uniqueIndex:idx_usage_card_date_cycle"`
	Card        Flashcard `json:"card" gorm:"foreignKey:CardID"`
	UsedDate    time.Time `json:"used_date" gorm:"type:date;not null;uniqueIndex:idx_usage_card_date_cycle"`
	CycleNumber int       `json:"cycle_number" gorm:"not null;default:1;uniqueIndex:idx_usage_card_date_cycle"`
	CreatedAt   time.Time `json:"created_at"`
}
