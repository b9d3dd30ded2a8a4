// Package bot реализует Telegram-интерфейс маршрута поверх контроллера.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"itinerary/internal/controller"
	"itinerary/internal/model"
	"itinerary/internal/render"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Данные inline-кнопок.
const (
	cbConfirm    = "DEL_YES"
	cbDecline    = "DEL_NO"
	cbToggle     = "TGL_"
	cbRemoveItem = "RMC_"
)

const helpText = `Команды:
/day N - выбрать день
/timeline, /calendar, /map, /checklist - режим просмотра
/person ИМЯ - чей чек-лист показывать
/add ДЕНЬ ЧЧ:ММ | название | категория | место | описание
/edit ID - изменить пункт, затем строка полей или /cancel
/del ID - удалить пункт
/todo текст - добавить пункт в чек-лист`

// Sender отправляет запросы в Telegram; *tgbotapi.BotAPI ему удовлетворяет.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Bot обрабатывает обновления Telegram; у каждого чата свой контроллер.
type Bot struct {
	api      Sender
	sessions *controller.Sessions
}

// New создает бота.
func New(api Sender, sessions *controller.Sessions) *Bot {
	return &Bot{api: api, sessions: sessions}
}

// Run обрабатывает обновления по очереди, пока канал открыт и ctx не отменен.
func (b *Bot) Run(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.HandleUpdate(ctx, update)
		}
	}
}

// HandleUpdate обрабатывает одно обновление: сообщение или нажатие inline-кнопки.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	if cq := update.CallbackQuery; cq != nil {
		b.handleCallback(ctx, cq)
		return
	}
	if update.Message == nil {
		return
	}
	b.handleMessage(ctx, update.Message)
}

func (b *Bot) session(ctx context.Context, chatID int64) *controller.Controller {
	c, created := b.sessions.Get(chatID)
	if created {
		if err := c.Refresh(ctx); err != nil {
			log.Printf("Чат %d: не удалось загрузить данные: %v", chatID, err)
		}
	}
	return c
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	if msg.IsCommand() && msg.Command() == "start" {
		// /start начинает чат заново: фильтры, формы и запросы удаления сбрасываются
		b.sessions.End(chatID)
		b.reply(chatID, helpText)
		return
	}
	c := b.session(ctx, chatID)

	if !msg.IsCommand() {
		if c.Snapshot().Editing() {
			b.applyEdit(ctx, chatID, c, msg.Text)
			return
		}
		b.reply(chatID, "Не понимаю. /start - список команд.")
		return
	}

	args := strings.TrimSpace(msg.CommandArguments())
	switch msg.Command() {
	case "help":
		b.reply(chatID, helpText)

	case "day":
		day, err := strconv.Atoi(args)
		if err != nil {
			b.reply(chatID, "Используйте: /day N")
			return
		}
		if err := c.SelectDay(day); err != nil {
			b.reply(chatID, err.Error())
			return
		}
		b.show(ctx, chatID, c)

	case "timeline", "calendar", "map", "checklist":
		b.switchView(ctx, chatID, c, model.ViewMode(msg.Command()))

	case "person":
		if err := c.SelectPerson(args); err != nil {
			b.reply(chatID, fmt.Sprintf("%v. Участники: %s", err, strings.Join(c.People(), ", ")))
			return
		}
		b.switchView(ctx, chatID, c, model.ViewChecklist)

	case "add":
		f, err := ParseAdd(args)
		if err != nil {
			b.reply(chatID, "Используйте: /add ДЕНЬ ЧЧ:ММ | название | категория | место | описание")
			return
		}
		if err := c.SetDraft(f); err != nil {
			b.reply(chatID, controller.Notice(err))
			return
		}
		created, err := c.SubmitDraft(ctx)
		if created != nil {
			b.reply(chatID, "Добавлен пункт:\n"+render.Entry(*created))
		}
		if err != nil {
			b.reply(chatID, controller.Notice(err))
		}

	case "edit":
		id, err := parseID(args)
		if err != nil {
			b.reply(chatID, "Используйте: /edit ID")
			return
		}
		if err := c.Refresh(ctx); err != nil {
			b.reply(chatID, controller.Notice(err))
		}
		if err := c.BeginEditByID(id); err != nil {
			b.reply(chatID, controller.Notice(err))
			return
		}
		b.reply(chatID, fmt.Sprintf(
			"Редактирование #%d. Отправьте строку полей (пустой сегмент - без изменений, \"-\" - очистить) или /cancel:\n%s",
			id, FormatFields(c.Snapshot().EditBuffer)))

	case "cancel":
		if err := c.CancelEdit(); err != nil {
			b.reply(chatID, controller.Notice(err))
			return
		}
		if err := c.DeclineRemove(); err != nil {
			b.reply(chatID, controller.Notice(err))
			return
		}
		b.reply(chatID, "Отменено.")

	case "del":
		id, err := parseID(args)
		if err != nil {
			b.reply(chatID, "Используйте: /del ID")
			return
		}
		b.askRemove(chatID, c, controller.RemoveEntry, id, fmt.Sprintf("Удалить пункт #%d?", id))

	case "todo":
		item, err := c.AddChecklistItem(ctx, args)
		if err != nil && item == nil {
			b.reply(chatID, controller.Notice(err))
			return
		}
		b.switchView(ctx, chatID, c, model.ViewChecklist)

	default:
		b.reply(chatID, "Неизвестная команда. /start - список команд.")
	}
}

func (b *Bot) applyEdit(ctx context.Context, chatID int64, c *controller.Controller, line string) {
	f, err := ApplyEdit(c.Snapshot().EditBuffer, line)
	if err != nil {
		b.reply(chatID, err.Error()+". Отправьте строку полей или /cancel.")
		return
	}
	if err := c.SetEditBuffer(f); err != nil {
		b.reply(chatID, controller.Notice(err))
		return
	}
	updated, err := c.CommitEdit(ctx)
	if updated != nil {
		b.reply(chatID, "Сохранено:\n"+render.Entry(*updated))
	}
	if err != nil {
		b.reply(chatID, controller.Notice(err))
	}
}

func (b *Bot) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	if _, err := b.api.Request(tgbotapi.NewCallback(cq.ID, "")); err != nil {
		log.Printf("Ошибка ответа на callback: %v", err)
	}
	if cq.Message == nil || cq.Message.Chat == nil {
		return
	}
	chatID := cq.Message.Chat.ID
	c := b.session(ctx, chatID)
	data := cq.Data

	switch {
	case data == cbConfirm:
		if err := c.ConfirmRemove(ctx); err != nil {
			b.reply(chatID, controller.Notice(err))
			return
		}
		b.reply(chatID, "Удалено.")
		b.show(ctx, chatID, c)

	case data == cbDecline:
		if err := c.DeclineRemove(); err != nil {
			b.reply(chatID, controller.Notice(err))
			return
		}
		b.reply(chatID, "Удаление отменено.")

	case strings.HasPrefix(data, cbToggle):
		id, err := parseID(strings.TrimPrefix(data, cbToggle))
		if err != nil {
			return
		}
		if _, err := c.ToggleChecklistItem(ctx, id); err != nil {
			b.reply(chatID, controller.Notice(err))
			return
		}
		b.show(ctx, chatID, c)

	case strings.HasPrefix(data, cbRemoveItem):
		id, err := parseID(strings.TrimPrefix(data, cbRemoveItem))
		if err != nil {
			return
		}
		b.askRemove(chatID, c, controller.RemoveChecklistItem, id, fmt.Sprintf("Удалить пункт чек-листа #%d?", id))
	}
}

func (b *Bot) askRemove(chatID int64, c *controller.Controller, kind controller.RemovalKind, id int64, question string) {
	if err := c.AskRemove(kind, id); err != nil {
		b.reply(chatID, controller.Notice(err))
		return
	}
	msg := tgbotapi.NewMessage(chatID, question)
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("Да", cbConfirm),
		tgbotapi.NewInlineKeyboardButtonData("Нет", cbDecline),
	))
	b.send(msg)
}

func (b *Bot) switchView(ctx context.Context, chatID int64, c *controller.Controller, mode model.ViewMode) {
	if err := c.SetViewMode(mode); err != nil {
		b.reply(chatID, err.Error())
		return
	}
	b.show(ctx, chatID, c)
}

// show перечитывает данные и выводит текущий режим просмотра.
// Если перечитать не удалось, выводится прежний снимок и сообщение об ошибке.
func (b *Bot) show(ctx context.Context, chatID int64, c *controller.Controller) {
	if err := c.Refresh(ctx); err != nil && !errors.Is(err, controller.ErrBusy) {
		b.reply(chatID, controller.Notice(err))
	}
	st := c.Snapshot()

	switch st.ViewMode {
	case model.ViewCalendar:
		b.reply(chatID, render.Calendar(c.DayStats(), st.SelectedDay))

	case model.ViewMap:
		view := c.MapView()
		b.reply(chatID, render.Map(view))
		for _, m := range view.Markers {
			b.send(tgbotapi.NewLocation(chatID, m.Coords.Latitude, m.Coords.Longitude))
		}

	case model.ViewChecklist:
		items := c.FilteredChecklist()
		progress := controller.Progress{Person: st.SelectedPerson}
		for _, p := range c.PersonProgress() {
			if p.Person == st.SelectedPerson {
				progress = p
			}
		}
		msg := tgbotapi.NewMessage(chatID, render.Checklist(progress, items))
		if len(items) > 0 {
			msg.ReplyMarkup = checklistKeyboard(items)
		}
		b.send(msg)

	default:
		b.reply(chatID, render.Timeline(st.SelectedDay, c.FilteredEntries()))
	}
}

func checklistKeyboard(items []model.ChecklistItem) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(items))
	for _, it := range items {
		box := "⬜"
		if it.IsCompleted {
			box = "✅"
		}
		title := it.Title
		if r := []rune(title); len(r) > 30 {
			title = string(r[:30]) + "..."
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(box+" "+title, fmt.Sprintf("%s%d", cbToggle, it.ID)),
			tgbotapi.NewInlineKeyboardButtonData("🗑", fmt.Sprintf("%s%d", cbRemoveItem, it.ID)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func (b *Bot) reply(chatID int64, text string) {
	b.send(tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) send(c tgbotapi.Chattable) {
	if _, err := b.api.Send(c); err != nil {
		log.Printf("Ошибка отправки сообщения: %v", err)
	}
}
