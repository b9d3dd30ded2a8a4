package controller

import (
	"sort"

	"itinerary/internal/model"
)

// DayStat содержит сводку одного дня поездки.
type DayStat struct {
	Day        int                    `json:"day"`
	Total      int                    `json:"total"`
	ByCategory map[model.Category]int `json:"by_category"`
}

// Progress содержит прогресс чек-листа одного участника.
type Progress struct {
	Person    string `json:"person"`
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
}

// FilterByDay возвращает пункты дня day, сохраняя исходный порядок.
func FilterByDay(entries []model.ScheduleEntry, day int) []model.ScheduleEntry {
	out := []model.ScheduleEntry{}
	for _, e := range entries {
		if e.Day == day {
			out = append(out, e)
		}
	}
	return out
}

// FilterByPerson возвращает пункты чек-листа участника, сохраняя исходный порядок.
func FilterByPerson(items []model.ChecklistItem, person string) []model.ChecklistItem {
	out := []model.ChecklistItem{}
	for _, it := range items {
		if it.Person == person {
			out = append(out, it)
		}
	}
	return out
}

// Days возвращает отсортированный список дней, в которых есть пункты.
func Days(entries []model.ScheduleEntry) []int {
	seen := map[int]bool{}
	days := []int{}
	for _, e := range entries {
		if !seen[e.Day] {
			seen[e.Day] = true
			days = append(days, e.Day)
		}
	}
	sort.Ints(days)
	return days
}

// DayStats считает пункты по дням и категориям.
func DayStats(entries []model.ScheduleEntry) []DayStat {
	byDay := map[int]*DayStat{}
	for _, e := range entries {
		st, ok := byDay[e.Day]
		if !ok {
			st = &DayStat{Day: e.Day, ByCategory: map[model.Category]int{}}
			byDay[e.Day] = st
		}
		st.Total++
		st.ByCategory[e.Category]++
	}
	stats := make([]DayStat, 0, len(byDay))
	for _, day := range Days(entries) {
		stats = append(stats, *byDay[day])
	}
	return stats
}

// PersonProgress считает выполненные пункты для каждого участника в порядке people.
func PersonProgress(items []model.ChecklistItem, people []string) []Progress {
	progress := make([]Progress, len(people))
	index := map[string]int{}
	for i, p := range people {
		progress[i].Person = p
		index[p] = i
	}
	for _, it := range items {
		i, ok := index[it.Person]
		if !ok {
			continue
		}
		progress[i].Total++
		if it.IsCompleted {
			progress[i].Completed++
		}
	}
	return progress
}
