package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"itinerary/internal/model"

	"github.com/jmoiron/sqlx"
)

const scheduleColumns = `id, day, time, title, description, category, location, created_at, updated_at`

// ScheduleRepository обеспечивает доступ к пунктам маршрута в базе данных.
type ScheduleRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewScheduleRepository создает новый репозиторий пунктов маршрута.
func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// FindAll возвращает все пункты, упорядоченные по дню и времени.
func (r *ScheduleRepository) FindAll(ctx context.Context) ([]model.ScheduleEntry, error) {
	entries := []model.ScheduleEntry{}
	err := r.db.SelectContext(ctx, &entries,
		`SELECT `+scheduleColumns+` FROM travel_schedules ORDER BY day, time, id`)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении списка пунктов: %w", err)
	}
	return entries, nil
}

// GetByID возвращает пункт по идентификатору или ErrNotFound.
func (r *ScheduleRepository) GetByID(ctx context.Context, id int64) (*model.ScheduleEntry, error) {
	var entry model.ScheduleEntry
	err := r.db.GetContext(ctx, &entry,
		r.db.Rebind(`SELECT `+scheduleColumns+` FROM travel_schedules WHERE id=?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении пункта %d: %w", id, err)
	}
	return &entry, nil
}

// Create сохраняет новый пункт и возвращает его вместе с присвоенными ID и метками времени.
func (r *ScheduleRepository) Create(ctx context.Context, f model.EntryFields) (*model.ScheduleEntry, error) {
	now := r.now()
	query := r.db.Rebind(`INSERT INTO travel_schedules
		(day, time, title, description, category, location, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`)
	var id int64
	err := r.db.QueryRowxContext(ctx, query,
		f.Day, f.Time, f.Title, f.Description, f.Category, f.Location, now, now).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("не удалось создать пункт маршрута: %w", err)
	}
	return r.GetByID(ctx, id)
}

// Update заменяет все изменяемые поля пункта одним запросом.
func (r *ScheduleRepository) Update(ctx context.Context, id int64, f model.EntryFields) (*model.ScheduleEntry, error) {
	query := r.db.Rebind(`UPDATE travel_schedules
		SET day=?, time=?, title=?, description=?, category=?, location=?, updated_at=?
		WHERE id=?`)
	res, err := r.db.ExecContext(ctx, query,
		f.Day, f.Time, f.Title, f.Description, f.Category, f.Location, r.now(), id)
	if err != nil {
		return nil, fmt.Errorf("не удалось обновить пункт %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// Delete удаляет пункт. Отсутствие записи ошибкой не считается.
func (r *ScheduleRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM travel_schedules WHERE id=?`), id)
	if err != nil {
		return fmt.Errorf("не удалось удалить пункт %d: %w", id, err)
	}
	return nil
}
