package service

import (
	"context"
	"fmt"

	"itinerary/internal/model"
)

// EntryStore описывает хранилище пунктов маршрута.
type EntryStore interface {
	FindAll(ctx context.Context) ([]model.ScheduleEntry, error)
	GetByID(ctx context.Context, id int64) (*model.ScheduleEntry, error)
	Create(ctx context.Context, f model.EntryFields) (*model.ScheduleEntry, error)
	Update(ctx context.Context, id int64, f model.EntryFields) (*model.ScheduleEntry, error)
	Delete(ctx context.Context, id int64) error
}

// ItineraryService содержит бизнес-логику работы с маршрутом поездки.
type ItineraryService struct {
	entries EntryStore
}

// NewItineraryService создает новый сервис маршрута.
func NewItineraryService(entries EntryStore) *ItineraryService {
	return &ItineraryService{entries: entries}
}

// List возвращает все пункты маршрута по возрастанию дня и времени.
// При ошибке вызывающая сторона должна оставить прежний список, а не очищать его.
func (s *ItineraryService) List(ctx context.Context) ([]model.ScheduleEntry, error) {
	entries, err := s.entries.FindAll(ctx)
	if err != nil {
		return nil, storeError("список пунктов", err)
	}
	return entries, nil
}

// Get возвращает один пункт маршрута.
func (s *ItineraryService) Get(ctx context.Context, id int64) (*model.ScheduleEntry, error) {
	entry, err := s.entries.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(fmt.Sprintf("пункт %d", id), err)
	}
	return entry, nil
}

// Create проверяет поля и добавляет пункт маршрута.
// Некорректные данные отклоняются без обращения к хранилищу.
func (s *ItineraryService) Create(ctx context.Context, f model.EntryFields) (*model.ScheduleEntry, error) {
	f, err := normalizeEntry(f)
	if err != nil {
		return nil, err
	}
	entry, err := s.entries.Create(ctx, f)
	if err != nil {
		return nil, storeError("создание пункта", err)
	}
	return entry, nil
}

// Update заменяет все изменяемые поля пункта id.
func (s *ItineraryService) Update(ctx context.Context, id int64, f model.EntryFields) (*model.ScheduleEntry, error) {
	f, err := normalizeEntry(f)
	if err != nil {
		return nil, err
	}
	entry, err := s.entries.Update(ctx, id, f)
	if err != nil {
		return nil, storeError(fmt.Sprintf("обновление пункта %d", id), err)
	}
	return entry, nil
}

// Remove удаляет пункт маршрута. Повторное удаление не является ошибкой.
func (s *ItineraryService) Remove(ctx context.Context, id int64) error {
	if err := s.entries.Delete(ctx, id); err != nil {
		return storeError(fmt.Sprintf("удаление пункта %d", id), err)
	}
	return nil
}
