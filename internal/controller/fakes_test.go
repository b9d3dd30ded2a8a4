package controller

import (
	"context"
	"errors"
	"sort"
	"sync"

	"itinerary/internal/model"
	"itinerary/internal/service"
)

var errOffline = &service.StoreError{Op: "test", Err: errors.New("offline")}

// memoryEntries хранит пункты в памяти и позволяет имитировать сбои и задержки.
type memoryEntries struct {
	mu      sync.Mutex
	nextID  int64
	rows    map[int64]model.ScheduleEntry
	calls   int
	failOps map[string]bool
	block   chan struct{} // если задан, Create ждет закрытия канала
	started chan struct{}

	updateBlock   chan struct{} // то же для Update
	updateStarted chan struct{}
}

func newMemoryEntries() *memoryEntries {
	return &memoryEntries{rows: map[int64]model.ScheduleEntry{}, failOps: map[string]bool{}}
}

func (m *memoryEntries) fail(op string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.failOps[op] {
		return errOffline
	}
	return nil
}

func (m *memoryEntries) List(ctx context.Context) ([]model.ScheduleEntry, error) {
	if err := m.fail("list"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.ScheduleEntry{}
	for _, e := range m.rows {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Day != out[j].Day {
			return out[i].Day < out[j].Day
		}
		if out[i].Time != out[j].Time {
			return out[i].Time < out[j].Time
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *memoryEntries) Create(ctx context.Context, f model.EntryFields) (*model.ScheduleEntry, error) {
	if m.started != nil {
		close(m.started)
	}
	if m.block != nil {
		<-m.block
	}
	if err := m.fail("create"); err != nil {
		return nil, err
	}
	if f.Title == "" || f.Time == "" {
		return nil, &service.ValidationError{Fields: map[string]string{"title": "укажите название"}}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	e := model.ScheduleEntry{ID: m.nextID, Day: f.Day, Time: f.Time, Title: f.Title,
		Description: f.Description, Category: f.Category, Location: f.Location}
	m.rows[e.ID] = e
	return &e, nil
}

func (m *memoryEntries) Update(ctx context.Context, id int64, f model.EntryFields) (*model.ScheduleEntry, error) {
	if m.updateStarted != nil {
		close(m.updateStarted)
	}
	if m.updateBlock != nil {
		<-m.updateBlock
	}
	if err := m.fail("update"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.rows[id]
	if !ok {
		return nil, errOffline
	}
	e.Day, e.Time, e.Title = f.Day, f.Time, f.Title
	e.Description, e.Category, e.Location = f.Description, f.Category, f.Location
	m.rows[id] = e
	return &e, nil
}

func (m *memoryEntries) Remove(ctx context.Context, id int64) error {
	if err := m.fail("remove"); err != nil {
		return err
	}
	m.mu.Lock()
	delete(m.rows, id)
	m.mu.Unlock()
	return nil
}

type memoryChecklist struct {
	mu     sync.Mutex
	nextID int64
	rows   []model.ChecklistItem
	people []string
}

func (m *memoryChecklist) People() []string { return m.people }

func (m *memoryChecklist) List(ctx context.Context) ([]model.ChecklistItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.ChecklistItem{}, m.rows...), nil
}

func (m *memoryChecklist) Create(ctx context.Context, person, title string) (*model.ChecklistItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	it := model.ChecklistItem{ID: m.nextID, Person: person, Title: title}
	m.rows = append([]model.ChecklistItem{it}, m.rows...)
	return &it, nil
}

func (m *memoryChecklist) ToggleComplete(ctx context.Context, id int64, current bool) (*model.ChecklistItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.rows {
		if m.rows[i].ID == id {
			m.rows[i].IsCompleted = !current
			it := m.rows[i]
			return &it, nil
		}
	}
	return nil, errOffline
}

func (m *memoryChecklist) Remove(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.rows {
		if m.rows[i].ID == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			break
		}
	}
	return nil
}

type noMap struct{}

func (noMap) MapView(entries []model.ScheduleEntry) model.MapView {
	return model.MapView{Markers: []model.Marker{}}
}
