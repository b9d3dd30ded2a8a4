package service

import (
	"strings"
	"time"

	"itinerary/internal/model"
)

const timeLayout = "15:04"

// normalizeEntry проверяет поля пункта маршрута и приводит их к каноническому виду:
// время в HH:MM, пустые описание и место становятся nil.
func normalizeEntry(f model.EntryFields) (model.EntryFields, error) {
	fields := map[string]string{}
	out := model.EntryFields{Day: f.Day}

	if f.Day < 1 {
		fields["day"] = "день должен быть не меньше 1"
	}

	if t := strings.TrimSpace(f.Time); t == "" {
		fields["time"] = "укажите время"
	} else if parsed, err := time.Parse(timeLayout, t); err != nil {
		fields["time"] = "формат времени HH:MM"
	} else {
		out.Time = parsed.Format(timeLayout)
	}

	out.Title = strings.TrimSpace(f.Title)
	if out.Title == "" {
		fields["title"] = "укажите название"
	}

	category, err := model.ParseCategory(string(f.Category))
	if err != nil {
		fields["category"] = err.Error()
	}
	out.Category = category

	out.Description = optional(f.Description)
	out.Location = optional(f.Location)

	if len(fields) > 0 {
		return model.EntryFields{}, &ValidationError{Fields: fields}
	}
	return out, nil
}

// optional превращает пустую или пробельную строку в отсутствующее значение.
func optional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
