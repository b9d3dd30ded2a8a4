package service

import (
	"context"
	"errors"

	"itinerary/internal/model"
)

var errBoom = errors.New("connection refused")

// countingEntryStore фиксирует обращения к хранилищу и может имитировать сбой.
type countingEntryStore struct {
	EntryStore
	calls int
	fail  error
}

func (s *countingEntryStore) FindAll(ctx context.Context) ([]model.ScheduleEntry, error) {
	s.calls++
	if s.fail != nil {
		return nil, s.fail
	}
	return s.EntryStore.FindAll(ctx)
}

func (s *countingEntryStore) Create(ctx context.Context, f model.EntryFields) (*model.ScheduleEntry, error) {
	s.calls++
	if s.fail != nil {
		return nil, s.fail
	}
	return s.EntryStore.Create(ctx, f)
}

func (s *countingEntryStore) Update(ctx context.Context, id int64, f model.EntryFields) (*model.ScheduleEntry, error) {
	s.calls++
	if s.fail != nil {
		return nil, s.fail
	}
	return s.EntryStore.Update(ctx, id, f)
}

func (s *countingEntryStore) Delete(ctx context.Context, id int64) error {
	s.calls++
	if s.fail != nil {
		return s.fail
	}
	return s.EntryStore.Delete(ctx, id)
}

type countingChecklistStore struct {
	ChecklistStore
	calls int
}

func (s *countingChecklistStore) Create(ctx context.Context, person, title string) (*model.ChecklistItem, error) {
	s.calls++
	return s.ChecklistStore.Create(ctx, person, title)
}
