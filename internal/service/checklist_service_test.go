package service

import (
	"context"
	"testing"

	"itinerary/internal/repository"
	"itinerary/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var people = []string{"성진", "지열", "성동"}

func newChecklist(t *testing.T) (*ChecklistService, *countingChecklistStore) {
	t.Helper()
	store := &countingChecklistStore{ChecklistStore: repository.NewChecklistRepository(testutil.NewDB(t))}
	return NewChecklistService(store, people), store
}

func TestChecklist_ToggleTwiceRestores(t *testing.T) {
	ctx := context.Background()
	svc, _ := newChecklist(t)

	item, err := svc.Create(ctx, "성진", "여권")
	require.NoError(t, err)
	require.False(t, item.IsCompleted)

	item, err = svc.ToggleComplete(ctx, item.ID, false)
	require.NoError(t, err)
	assert.True(t, item.IsCompleted)

	item, err = svc.ToggleComplete(ctx, item.ID, true)
	require.NoError(t, err)
	assert.False(t, item.IsCompleted)
}

func TestChecklist_StaleCurrentValueIsTrusted(t *testing.T) {
	ctx := context.Background()
	svc, _ := newChecklist(t)

	item, err := svc.Create(ctx, "지열", "충전기")
	require.NoError(t, err)
	_, err = svc.ToggleComplete(ctx, item.ID, false)
	require.NoError(t, err)

	// снимок устарел: вызывающая сторона все еще считает пункт невыполненным
	item, err = svc.ToggleComplete(ctx, item.ID, false)
	require.NoError(t, err)
	assert.True(t, item.IsCompleted)
}

func TestChecklist_Validation(t *testing.T) {
	ctx := context.Background()
	svc, store := newChecklist(t)

	_, err := svc.Create(ctx, "성진", "  ")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.Create(ctx, "Bob", "passport")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "person")
	assert.Zero(t, store.calls)
}

func TestChecklist_ToggleMissing(t *testing.T) {
	svc, _ := newChecklist(t)
	_, err := svc.ToggleComplete(context.Background(), 77, false)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestChecklist_RemoveTwice(t *testing.T) {
	ctx := context.Background()
	svc, _ := newChecklist(t)

	item, err := svc.Create(ctx, "성동", "우산")
	require.NoError(t, err)
	require.NoError(t, svc.Remove(ctx, item.ID))
	require.NoError(t, svc.Remove(ctx, item.ID))

	items, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestChecklist_People(t *testing.T) {
	svc, _ := newChecklist(t)
	got := svc.People()
	assert.Equal(t, people, got)

	got[0] = "mutated"
	assert.Equal(t, "성진", svc.People()[0])
	assert.True(t, svc.IsPerson("성동"))
	assert.False(t, svc.IsPerson(""))
}
