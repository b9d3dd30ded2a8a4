package model

import (
	"fmt"
	"strings"
)

// ViewMode задает режим представления маршрута.
type ViewMode string

const (
	ViewTimeline  ViewMode = "timeline"
	ViewCalendar  ViewMode = "calendar"
	ViewMap       ViewMode = "map"
	ViewChecklist ViewMode = "checklist"
)

// ParseViewMode разбирает режим представления.
func ParseViewMode(s string) (ViewMode, error) {
	switch m := ViewMode(strings.ToLower(strings.TrimSpace(s))); m {
	case ViewTimeline, ViewCalendar, ViewMap, ViewChecklist:
		return m, nil
	}
	return "", fmt.Errorf("неизвестный режим %q", s)
}
