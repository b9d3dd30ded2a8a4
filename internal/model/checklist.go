package model

import "time"

// ChecklistItem представляет пункт личного чек-листа участника поездки.
type ChecklistItem struct {
	ID          int64     `db:"id" json:"id"`
	Person      string    `db:"person" json:"person"`
	Title       string    `db:"title" json:"title"`
	IsCompleted bool      `db:"is_completed" json:"is_completed"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
