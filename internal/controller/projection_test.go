package controller

import (
	"testing"

	"itinerary/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestFilterByDayPreservesOrder(t *testing.T) {
	entries := []model.ScheduleEntry{
		{ID: 1, Day: 1, Time: "09:00"},
		{ID: 2, Day: 2, Time: "08:00"},
		{ID: 3, Day: 2, Time: "08:00"},
		{ID: 4, Day: 3, Time: "07:00"},
		{ID: 5, Day: 2, Time: "21:00"},
	}
	got := FilterByDay(entries, 2)
	var ids []int64
	for _, e := range got {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []int64{2, 3, 5}, ids)
	assert.NotNil(t, FilterByDay(entries, 9))
	assert.Empty(t, FilterByDay(entries, 9))
}

func TestDayStats(t *testing.T) {
	entries := []model.ScheduleEntry{
		{Day: 2, Category: model.CategoryMeal},
		{Day: 1, Category: model.CategorySightseeing},
		{Day: 2, Category: model.CategoryMeal},
		{Day: 2, Category: model.CategoryTransit},
	}
	assert.Equal(t, []DayStat{
		{Day: 1, Total: 1, ByCategory: map[model.Category]int{model.CategorySightseeing: 1}},
		{Day: 2, Total: 3, ByCategory: map[model.Category]int{model.CategoryMeal: 2, model.CategoryTransit: 1}},
	}, DayStats(entries))
	assert.Empty(t, DayStats(nil))
}

func TestPersonProgressIgnoresUnknownPeople(t *testing.T) {
	items := []model.ChecklistItem{
		{Person: "A", IsCompleted: true},
		{Person: "A"},
		{Person: "ghost", IsCompleted: true},
	}
	assert.Equal(t, []Progress{{Person: "A", Completed: 1, Total: 2}, {Person: "B"}},
		PersonProgress(items, []string{"A", "B"}))
}

func TestFilterByPerson(t *testing.T) {
	items := []model.ChecklistItem{{ID: 1, Person: "A"}, {ID: 2, Person: "B"}, {ID: 3, Person: "A"}}
	got := FilterByPerson(items, "A")
	assert.Len(t, got, 2)
	assert.Equal(t, int64(3), got[1].ID)
}
