package model

import "time"

// Task belongs to exactly one user. The owner never changes after creation;
// edits touch the title only.
type Task struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"usuarioId"`
	Title     string    `json:"titulo"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
