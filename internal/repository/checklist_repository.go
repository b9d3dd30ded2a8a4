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

const checklistColumns = `id, person, title, is_completed, created_at, updated_at`

// ChecklistRepository обеспечивает доступ к пунктам чек-листа в базе данных.
type ChecklistRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewChecklistRepository создает новый репозиторий чек-листа.
func NewChecklistRepository(db *sqlx.DB) *ChecklistRepository {
	return &ChecklistRepository{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// FindAll возвращает все пункты чек-листа, новые первыми.
// ID растет монотонно, поэтому сортировка по нему совпадает с порядком создания.
func (r *ChecklistRepository) FindAll(ctx context.Context) ([]model.ChecklistItem, error) {
	items := []model.ChecklistItem{}
	err := r.db.SelectContext(ctx, &items,
		`SELECT `+checklistColumns+` FROM checklist ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении чек-листа: %w", err)
	}
	return items, nil
}

// GetByID возвращает пункт чек-листа по ID или ErrNotFound.
func (r *ChecklistRepository) GetByID(ctx context.Context, id int64) (*model.ChecklistItem, error) {
	var item model.ChecklistItem
	err := r.db.GetContext(ctx, &item,
		r.db.Rebind(`SELECT `+checklistColumns+` FROM checklist WHERE id=?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении пункта чек-листа %d: %w", id, err)
	}
	return &item, nil
}

// Create добавляет невыполненный пункт чек-листа для участника.
func (r *ChecklistRepository) Create(ctx context.Context, person, title string) (*model.ChecklistItem, error) {
	now := r.now()
	query := r.db.Rebind(`INSERT INTO checklist (person, title, is_completed, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?) RETURNING id`)
	var id int64
	if err := r.db.QueryRowxContext(ctx, query, person, title, false, now, now).Scan(&id); err != nil {
		return nil, fmt.Errorf("не удалось создать пункт чек-листа: %w", err)
	}
	return r.GetByID(ctx, id)
}

// SetCompleted обновляет только признак выполнения пункта.
func (r *ChecklistRepository) SetCompleted(ctx context.Context, id int64, completed bool) (*model.ChecklistItem, error) {
	res, err := r.db.ExecContext(ctx,
		r.db.Rebind(`UPDATE checklist SET is_completed=?, updated_at=? WHERE id=?`), completed, r.now(), id)
	if err != nil {
		return nil, fmt.Errorf("не удалось обновить пункт чек-листа %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// Delete удаляет пункт чек-листа. Отсутствие записи ошибкой не считается.
func (r *ChecklistRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM checklist WHERE id=?`), id)
	if err != nil {
		return fmt.Errorf("не удалось удалить пункт чек-листа %d: %w", id, err)
	}
	return nil
}
