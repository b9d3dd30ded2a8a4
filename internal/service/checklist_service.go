package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"itinerary/internal/model"
)

// ChecklistStore описывает хранилище пунктов чек-листа.
type ChecklistStore interface {
	FindAll(ctx context.Context) ([]model.ChecklistItem, error)
	Create(ctx context.Context, person, title string) (*model.ChecklistItem, error)
	SetCompleted(ctx context.Context, id int64, completed bool) (*model.ChecklistItem, error)
	Delete(ctx context.Context, id int64) error
}

// ChecklistService содержит бизнес-логику личных чек-листов участников.
type ChecklistService struct {
	items  ChecklistStore
	people []string
}

// NewChecklistService создает сервис чек-листа для фиксированного списка участников.
func NewChecklistService(items ChecklistStore, people []string) *ChecklistService {
	return &ChecklistService{items: items, people: slices.Clone(people)}
}

// People возвращает участников в порядке конфигурации.
func (s *ChecklistService) People() []string {
	return slices.Clone(s.people)
}

// IsPerson сообщает, входит ли person в список участников.
func (s *ChecklistService) IsPerson(person string) bool {
	return slices.Contains(s.people, person)
}

// List возвращает все пункты чек-листа, новые первыми.
func (s *ChecklistService) List(ctx context.Context) ([]model.ChecklistItem, error) {
	items, err := s.items.FindAll(ctx)
	if err != nil {
		return nil, storeError("чек-лист", err)
	}
	return items, nil
}

// Create добавляет невыполненный пункт в чек-лист участника.
func (s *ChecklistService) Create(ctx context.Context, person, title string) (*model.ChecklistItem, error) {
	fields := map[string]string{}
	person = strings.TrimSpace(person)
	if !s.IsPerson(person) {
		fields["person"] = fmt.Sprintf("участник должен быть одним из: %s", strings.Join(s.people, ", "))
	}
	title = strings.TrimSpace(title)
	if title == "" {
		fields["title"] = "укажите название"
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	item, err := s.items.Create(ctx, person, title)
	if err != nil {
		return nil, storeError("создание пункта чек-листа", err)
	}
	return item, nil
}

// ToggleComplete записывает значение, противоположное current.
// Текущее значение не перечитывается из хранилища: если снимок вызывающей стороны
// устарел (например, изменения из другого клиента), результат будет неверным.
func (s *ChecklistService) ToggleComplete(ctx context.Context, id int64, current bool) (*model.ChecklistItem, error) {
	item, err := s.items.SetCompleted(ctx, id, !current)
	if err != nil {
		return nil, storeError(fmt.Sprintf("отметка пункта %d", id), err)
	}
	return item, nil
}

// Remove удаляет пункт чек-листа. Повторное удаление не является ошибкой.
func (s *ChecklistService) Remove(ctx context.Context, id int64) error {
	if err := s.items.Delete(ctx, id); err != nil {
		return storeError(fmt.Sprintf("удаление пункта чек-листа %d", id), err)
	}
	return nil
}
