package controller

import (
	"slices"

	"itinerary/internal/model"
)

// RemovalKind определяет, какую запись ожидает удалить пользователь.
type RemovalKind string

const (
	RemoveEntry         RemovalKind = "entry"
	RemoveChecklistItem RemovalKind = "checklist"
)

// Removal описывает удаление, ожидающее подтверждения.
type Removal struct {
	Kind RemovalKind
	ID   int64
}

// State содержит снимок данных и выбор пользователя.
// Производные представления (фильтры, статистика) из State вычисляются и не хранятся.
type State struct {
	Entries   []model.ScheduleEntry
	Checklist []model.ChecklistItem

	SelectedDay    int
	SelectedPerson string
	ViewMode       model.ViewMode

	EditingID      *int64 // редактировать можно не больше одного пункта одновременно
	EditBuffer     model.EntryFields
	Draft          model.EntryFields
	PendingRemoval *Removal

	Busy   bool
	Notice string
}

// NewState возвращает начальное состояние: первый день, первый участник, режим timeline.
func NewState(people []string) State {
	st := State{SelectedDay: 1, ViewMode: model.ViewTimeline, Draft: model.EntryFields{Day: 1}}
	if len(people) > 0 {
		st.SelectedPerson = people[0]
	}
	return st
}

// Editing сообщает, редактируется ли сейчас какой-либо пункт.
func (s State) Editing() bool {
	return s.EditingID != nil
}

func (s State) clone() State {
	out := s
	out.Entries = slices.Clone(s.Entries)
	out.Checklist = slices.Clone(s.Checklist)
	out.EditBuffer = s.EditBuffer.Clone()
	out.Draft = s.Draft.Clone()
	if s.EditingID != nil {
		id := *s.EditingID
		out.EditingID = &id
	}
	if s.PendingRemoval != nil {
		r := *s.PendingRemoval
		out.PendingRemoval = &r
	}
	return out
}
