package model

import "time"

// ScheduleEntry представляет пункт маршрута поездки (один день, одно время).
type ScheduleEntry struct {
	ID          int64     `db:"id" json:"id"`
	Day         int       `db:"day" json:"day"`   // номер дня поездки, начиная с 1
	Time        string    `db:"time" json:"time"` // время в формате HH:MM
	Title       string    `db:"title" json:"title"`
	Description *string   `db:"description" json:"description"` // nil, если описание не задано
	Category    Category  `db:"category" json:"category"`
	Location    *string   `db:"location" json:"location"` // nil, если место не указано
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// EntryFields содержит изменяемые поля пункта маршрута.
// Обновление всегда заменяет все поля разом.
type EntryFields struct {
	Day         int      `json:"day"`
	Time        string   `json:"time"`
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	Category    Category `json:"category"`
	Location    *string  `json:"location"`
}

// Fields возвращает копию изменяемых полей пункта.
func (e ScheduleEntry) Fields() EntryFields {
	return EntryFields{
		Day:         e.Day,
		Time:        e.Time,
		Title:       e.Title,
		Description: cloneString(e.Description),
		Category:    e.Category,
		Location:    cloneString(e.Location),
	}
}

// Clone возвращает глубокую копию полей (указатели не разделяются).
func (f EntryFields) Clone() EntryFields {
	f.Description = cloneString(f.Description)
	f.Location = cloneString(f.Location)
	return f
}

// StringValue разыменовывает необязательную строку.
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// StringPtr возвращает указатель на копию строки.
func StringPtr(s string) *string {
	return &s
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
