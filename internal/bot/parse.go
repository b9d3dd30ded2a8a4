package bot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"itinerary/internal/model"
)

// clearMark в сегменте строки полей очищает необязательное поле (место, описание).
const clearMark = "-"

var errEmptyFields = errors.New("пустая строка полей")

// ParseAdd разбирает аргументы /add: "ДЕНЬ ЧЧ:ММ | название | категория | место | описание".
// Обязательны только день и время; проверку значений выполняет сервис.
func ParseAdd(args string) (model.EntryFields, error) {
	segs := splitSegments(args)
	if len(segs) == 0 || segs[0] == "" {
		return model.EntryFields{}, errEmptyFields
	}
	head := strings.Fields(segs[0])
	if len(head) != 2 {
		return model.EntryFields{}, fmt.Errorf("ожидается \"ДЕНЬ ЧЧ:ММ\", получено %q", segs[0])
	}
	day, err := strconv.Atoi(head[0])
	if err != nil {
		return model.EntryFields{}, fmt.Errorf("некорректный день %q", head[0])
	}
	f := model.EntryFields{Day: day, Time: head[1]}
	if len(segs) > 1 {
		f.Title = segs[1]
	}
	if len(segs) > 2 {
		f.Category = model.Category(segs[2])
	}
	if len(segs) > 3 && segs[3] != "" && segs[3] != clearMark {
		f.Location = model.StringPtr(segs[3])
	}
	if len(segs) > 4 && segs[4] != "" && segs[4] != clearMark {
		f.Description = model.StringPtr(segs[4])
	}
	return f, nil
}

// ApplyEdit применяет строку полей к буферу редактирования.
// Пустой сегмент оставляет поле без изменений, "-" очищает место или описание.
// Первый сегмент может содержать день, время или оба значения.
func ApplyEdit(buf model.EntryFields, line string) (model.EntryFields, error) {
	segs := splitSegments(line)
	if len(segs) == 0 {
		return buf, errEmptyFields
	}
	out := buf.Clone()
	for _, tok := range strings.Fields(segs[0]) {
		if strings.Contains(tok, ":") {
			out.Time = tok
			continue
		}
		day, err := strconv.Atoi(tok)
		if err != nil {
			return buf, fmt.Errorf("некорректный день %q", tok)
		}
		out.Day = day
	}
	if len(segs) > 1 && segs[1] != "" {
		out.Title = segs[1]
	}
	if len(segs) > 2 && segs[2] != "" {
		out.Category = model.Category(segs[2])
	}
	if len(segs) > 3 {
		out.Location = editOptional(out.Location, segs[3])
	}
	if len(segs) > 4 {
		out.Description = editOptional(out.Description, segs[4])
	}
	return out, nil
}

// FormatFields выводит поля в том же формате, который принимают /add и /edit.
func FormatFields(f model.EntryFields) string {
	return fmt.Sprintf("%d %s | %s | %s | %s | %s",
		f.Day, f.Time, f.Title, f.Category, model.StringValue(f.Location), model.StringValue(f.Description))
}

func editOptional(cur *string, seg string) *string {
	switch seg {
	case "":
		return cur
	case clearMark:
		return nil
	}
	return model.StringPtr(seg)
}

func splitSegments(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	parts := strings.Split(s, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// parseID разбирает числовой идентификатор из аргумента команды или данных кнопки.
func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("некорректный ID %q", s)
	}
	return id, nil
}
