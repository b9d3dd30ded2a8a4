// Package render формирует текстовые представления маршрута для бота и CLI.
package render

import (
	"fmt"
	"strings"

	"itinerary/internal/controller"
	"itinerary/internal/model"
)

// Entry форматирует один пункт маршрута: время, значок, название и ID,
// затем место и описание, если они заданы.
func Entry(e model.ScheduleEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s (#%d)\n", e.Time, e.Category.Glyph(), e.Title, e.ID)
	if e.Location != nil {
		fmt.Fprintf(&b, "   📍 %s\n", *e.Location)
	}
	if e.Description != nil {
		fmt.Fprintf(&b, "   📝 %s\n", *e.Description)
	}
	return b.String()
}

// Timeline выводит пункты одного дня.
func Timeline(day int, entries []model.ScheduleEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📅 День %d\n", day)
	if len(entries) == 0 {
		b.WriteString("На этот день ничего не запланировано.\n")
		return b.String()
	}
	for _, e := range entries {
		b.WriteString(Entry(e))
	}
	return b.String()
}

// Calendar выводит сводку по дням; выбранный день отмечается стрелкой.
func Calendar(stats []controller.DayStat, selected int) string {
	var b strings.Builder
	b.WriteString("🗓 Календарь\n")
	if len(stats) == 0 {
		b.WriteString("Пунктов пока нет.\n")
		return b.String()
	}
	for _, st := range stats {
		marker := "  "
		if st.Day == selected {
			marker = "▶ "
		}
		var parts []string
		for _, c := range model.Categories {
			if n := st.ByCategory[c]; n > 0 {
				parts = append(parts, fmt.Sprintf("%s %d", c.Glyph(), n))
			}
		}
		fmt.Fprintf(&b, "%sДень %d: %d (%s)\n", marker, st.Day, st.Total, strings.Join(parts, ", "))
	}
	return b.String()
}

// Map выводит маркеры карты с координатами.
func Map(view model.MapView) string {
	var b strings.Builder
	if len(view.Markers) == 0 {
		b.WriteString("🗺 Нет пунктов с известным местом.\n")
		return b.String()
	}
	fmt.Fprintf(&b, "🗺 Мест на карте: %d\n", len(view.Markers))
	for _, m := range view.Markers {
		fmt.Fprintf(&b, "%s %s %s — %s (%.4f, %.4f)\n",
			m.Entry.Time, m.Entry.Category.Glyph(), m.Entry.Title, m.Place, m.Coords.Latitude, m.Coords.Longitude)
	}
	return b.String()
}

// Checklist выводит чек-лист участника с прогрессом.
func Checklist(p controller.Progress, items []model.ChecklistItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "✅ %s: %d/%d\n", p.Person, p.Completed, p.Total)
	if len(items) == 0 {
		b.WriteString("Список пуст.\n")
		return b.String()
	}
	for _, it := range items {
		box := "[ ]"
		if it.IsCompleted {
			box = "[x]"
		}
		fmt.Fprintf(&b, "%s %s (#%d)\n", box, it.Title, it.ID)
	}
	return b.String()
}
