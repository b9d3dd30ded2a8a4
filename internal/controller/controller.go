package controller

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"

	"itinerary/internal/model"
	"itinerary/internal/service"
)

var (
	// ErrBusy возвращается, пока выполняется предыдущая изменяющая операция.
	ErrBusy = errors.New("предыдущая операция еще выполняется")
	// ErrNotEditing возвращается при сохранении без начатого редактирования.
	ErrNotEditing = errors.New("нет редактируемого пункта")
	// ErrNothingToConfirm возвращается при подтверждении без запрошенного удаления.
	ErrNothingToConfirm = errors.New("нет действия для подтверждения")
	// ErrUnknownRecord возвращается, если записи нет в текущем снимке.
	ErrUnknownRecord = errors.New("запись отсутствует в текущем списке")
)

// Entries описывает операции с пунктами маршрута.
type Entries interface {
	List(ctx context.Context) ([]model.ScheduleEntry, error)
	Create(ctx context.Context, f model.EntryFields) (*model.ScheduleEntry, error)
	Update(ctx context.Context, id int64, f model.EntryFields) (*model.ScheduleEntry, error)
	Remove(ctx context.Context, id int64) error
}

// Checklist описывает операции с чек-листом.
type Checklist interface {
	People() []string
	List(ctx context.Context) ([]model.ChecklistItem, error)
	Create(ctx context.Context, person, title string) (*model.ChecklistItem, error)
	ToggleComplete(ctx context.Context, id int64, current bool) (*model.ChecklistItem, error)
	Remove(ctx context.Context, id int64) error
}

// Locator строит данные карты по списку пунктов.
type Locator interface {
	MapView(entries []model.ScheduleEntry) model.MapView
}

// Controller хранит состояние экрана одного пользователя и выполняет его действия.
//
// Изменяющие операции не выполняются параллельно: пока одна ждет ответа хранилища,
// остальные получают ErrBusy. После успешного изменения список всегда перечитывается
// целиком; локальный снимок заранее не меняется.
type Controller struct {
	entries   Entries
	checklist Checklist
	locator   Locator

	mu    sync.Mutex
	state State
}

// New создает контроллер с начальным состоянием initial.
func New(entries Entries, checklist Checklist, locator Locator, initial State) *Controller {
	return &Controller{entries: entries, checklist: checklist, locator: locator, state: initial.clone()}
}

// Snapshot возвращает копию текущего состояния.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Refresh перечитывает пункты маршрута и чек-лист.
// При ошибке снимок не меняется.
func (c *Controller) Refresh(ctx context.Context) error {
	if err := c.begin(); err != nil {
		return err
	}
	err := c.reload(ctx)
	c.end(err)
	return err
}

// SelectDay выбирает день для фильтра.
func (c *Controller) SelectDay(day int) error {
	if day < 1 {
		return fmt.Errorf("день должен быть не меньше 1, получено %d", day)
	}
	c.mu.Lock()
	c.state.SelectedDay = day
	c.mu.Unlock()
	return nil
}

// People возвращает участников поездки.
func (c *Controller) People() []string {
	return c.checklist.People()
}

// SelectPerson выбирает участника для чек-листа.
func (c *Controller) SelectPerson(person string) error {
	if !slices.Contains(c.checklist.People(), person) {
		return fmt.Errorf("неизвестный участник %q", person)
	}
	c.mu.Lock()
	c.state.SelectedPerson = person
	c.mu.Unlock()
	return nil
}

// SetViewMode переключает режим представления; неизвестный режим отклоняется.
func (c *Controller) SetViewMode(mode model.ViewMode) error {
	m, err := model.ParseViewMode(string(mode))
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.state.ViewMode = m
	c.mu.Unlock()
	return nil
}

// FilteredEntries возвращает пункты выбранного дня.
func (c *Controller) FilteredEntries() []model.ScheduleEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return FilterByDay(c.state.Entries, c.state.SelectedDay)
}

// FilteredChecklist возвращает чек-лист выбранного участника.
func (c *Controller) FilteredChecklist() []model.ChecklistItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return FilterByPerson(c.state.Checklist, c.state.SelectedPerson)
}

// Days возвращает дни, в которых есть пункты.
func (c *Controller) Days() []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Days(c.state.Entries)
}

// DayStats возвращает сводку по дням.
func (c *Controller) DayStats() []DayStat {
	c.mu.Lock()
	defer c.mu.Unlock()
	return DayStats(c.state.Entries)
}

// PersonProgress возвращает прогресс чек-листа по участникам.
func (c *Controller) PersonProgress() []Progress {
	people := c.checklist.People()
	c.mu.Lock()
	defer c.mu.Unlock()
	return PersonProgress(c.state.Checklist, people)
}

// MapView возвращает карту для пунктов выбранного дня.
func (c *Controller) MapView() model.MapView {
	return c.locator.MapView(c.FilteredEntries())
}

// SetDraft заполняет форму создания пункта. Пока идет сохранение, форма заблокирована.
func (c *Controller) SetDraft(f model.EntryFields) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Busy {
		return ErrBusy
	}
	c.state.Draft = f.Clone()
	return nil
}

// SubmitDraft создает пункт из формы. При успехе форма очищается,
// при ошибке остается заполненной для повторной попытки.
func (c *Controller) SubmitDraft(ctx context.Context) (*model.ScheduleEntry, error) {
	if err := c.begin(); err != nil {
		return nil, err
	}
	c.mu.Lock()
	draft := c.state.Draft.Clone()
	c.mu.Unlock()

	created, err := c.entries.Create(ctx, draft)
	if err != nil {
		c.end(err)
		return nil, err
	}
	c.mu.Lock()
	c.state.Draft = model.EntryFields{Day: created.Day}
	c.mu.Unlock()

	err = c.reload(ctx)
	c.end(err)
	return created, err
}

// BeginEdit копирует поля пункта в буфер редактирования.
// Несохраненный буфер предыдущего пункта молча отбрасывается.
func (c *Controller) BeginEdit(entry model.ScheduleEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Busy {
		return ErrBusy
	}
	id := entry.ID
	c.state.EditingID = &id
	c.state.EditBuffer = entry.Fields()
	return nil
}

// BeginEditByID начинает редактирование пункта из текущего снимка.
func (c *Controller) BeginEditByID(id int64) error {
	c.mu.Lock()
	i := slices.IndexFunc(c.state.Entries, func(e model.ScheduleEntry) bool { return e.ID == id })
	var entry model.ScheduleEntry
	if i >= 0 {
		entry = c.state.Entries[i]
	}
	c.mu.Unlock()
	if i < 0 {
		return ErrUnknownRecord
	}
	return c.BeginEdit(entry)
}

// SetEditBuffer заменяет содержимое буфера редактирования.
func (c *Controller) SetEditBuffer(f model.EntryFields) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Busy {
		return ErrBusy
	}
	if c.state.EditingID == nil {
		return ErrNotEditing
	}
	c.state.EditBuffer = f.Clone()
	return nil
}

// CancelEdit завершает редактирование без сохранения.
func (c *Controller) CancelEdit() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Busy {
		return ErrBusy
	}
	c.state.EditingID = nil
	c.state.EditBuffer = model.EntryFields{}
	return nil
}

// CommitEdit сохраняет буфер редактирования.
// При ошибке буфер и редактируемый пункт сохраняются.
func (c *Controller) CommitEdit(ctx context.Context) (*model.ScheduleEntry, error) {
	if err := c.begin(); err != nil {
		return nil, err
	}
	c.mu.Lock()
	if c.state.EditingID == nil {
		c.state.Busy = false
		c.mu.Unlock()
		return nil, ErrNotEditing
	}
	id := *c.state.EditingID
	buf := c.state.EditBuffer.Clone()
	c.mu.Unlock()

	updated, err := c.entries.Update(ctx, id, buf)
	if err != nil {
		c.end(err)
		return nil, err
	}
	c.mu.Lock()
	c.state.EditingID = nil
	c.state.EditBuffer = model.EntryFields{}
	c.mu.Unlock()

	err = c.reload(ctx)
	c.end(err)
	return updated, err
}

// AskRemove запоминает удаление, которое нужно подтвердить.
func (c *Controller) AskRemove(kind RemovalKind, id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Busy {
		return ErrBusy
	}
	c.state.PendingRemoval = &Removal{Kind: kind, ID: id}
	return nil
}

// DeclineRemove отменяет запрошенное удаление. Сам отказ ошибкой не считается;
// ErrBusy возвращается, только если удаление уже выполняется.
func (c *Controller) DeclineRemove() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Busy {
		return ErrBusy
	}
	c.state.PendingRemoval = nil
	return nil
}

// ConfirmRemove выполняет подтвержденное удаление.
func (c *Controller) ConfirmRemove(ctx context.Context) error {
	if err := c.begin(); err != nil {
		return err
	}
	c.mu.Lock()
	pending := c.state.PendingRemoval
	c.state.PendingRemoval = nil
	if pending == nil {
		c.state.Busy = false
	}
	c.mu.Unlock()
	if pending == nil {
		return ErrNothingToConfirm
	}

	var err error
	switch pending.Kind {
	case RemoveChecklistItem:
		err = c.checklist.Remove(ctx, pending.ID)
	default:
		err = c.entries.Remove(ctx, pending.ID)
	}
	if err == nil {
		err = c.reload(ctx)
	}
	c.end(err)
	return err
}

// AddChecklistItem добавляет пункт в чек-лист выбранного участника.
func (c *Controller) AddChecklistItem(ctx context.Context, title string) (*model.ChecklistItem, error) {
	if err := c.begin(); err != nil {
		return nil, err
	}
	c.mu.Lock()
	person := c.state.SelectedPerson
	c.mu.Unlock()

	item, err := c.checklist.Create(ctx, person, title)
	if err == nil {
		err = c.reload(ctx)
	}
	c.end(err)
	return item, err
}

// ToggleChecklistItem переключает отметку пункта, передавая значение из текущего снимка.
// Если снимок устарел, будет записано неверное значение; отдельной проверки нет.
func (c *Controller) ToggleChecklistItem(ctx context.Context, id int64) (*model.ChecklistItem, error) {
	c.mu.Lock()
	i := slices.IndexFunc(c.state.Checklist, func(it model.ChecklistItem) bool { return it.ID == id })
	var current bool
	if i >= 0 {
		current = c.state.Checklist[i].IsCompleted
	}
	c.mu.Unlock()
	if i < 0 {
		return nil, ErrUnknownRecord
	}

	if err := c.begin(); err != nil {
		return nil, err
	}
	item, err := c.checklist.ToggleComplete(ctx, id, current)
	if err == nil {
		err = c.reload(ctx)
	}
	c.end(err)
	return item, err
}

func (c *Controller) begin() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Busy {
		return ErrBusy
	}
	c.state.Busy = true
	c.state.Notice = ""
	return nil
}

func (c *Controller) end(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Busy = false
	if err != nil {
		c.state.Notice = Notice(err)
	}
}

// reload перечитывает оба списка и применяет их только если оба запроса успешны.
func (c *Controller) reload(ctx context.Context) error {
	entries, err := c.entries.List(ctx)
	if err != nil {
		return err
	}
	items, err := c.checklist.List(ctx)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.state.Entries = entries
	c.state.Checklist = items
	c.mu.Unlock()
	return nil
}

// Notice превращает ошибку в сообщение для пользователя.
func Notice(err error) string {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		keys := make([]string, 0, len(verr.Fields))
		for k := range verr.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, verr.Fields[k])
		}
		return "Проверьте данные: " + strings.Join(parts, "; ")
	case errors.Is(err, service.ErrNotFound):
		return "Запись уже удалена или не найдена."
	case errors.Is(err, service.ErrStoreUnavailable):
		return "Хранилище недоступно, попробуйте еще раз."
	case errors.Is(err, ErrBusy):
		return "Подождите, предыдущая операция еще выполняется."
	}
	return err.Error()
}
