package bot

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"itinerary/internal/controller"
	"itinerary/internal/model"
	"itinerary/internal/repository"
	"itinerary/internal/service"
	"itinerary/internal/testutil"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chatID int64 = 100

type fakeSender struct {
	sent      []tgbotapi.Chattable
	callbacks int
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, nil
}

func (f *fakeSender) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.callbacks++
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeSender) texts() []string {
	var out []string
	for _, c := range f.sent {
		if m, ok := c.(tgbotapi.MessageConfig); ok {
			out = append(out, m.Text)
		}
	}
	return out
}

func (f *fakeSender) last() tgbotapi.MessageConfig {
	for i := len(f.sent) - 1; i >= 0; i-- {
		if m, ok := f.sent[i].(tgbotapi.MessageConfig); ok {
			return m
		}
	}
	return tgbotapi.MessageConfig{}
}

func (f *fakeSender) locations() []tgbotapi.LocationConfig {
	var out []tgbotapi.LocationConfig
	for _, c := range f.sent {
		if l, ok := c.(tgbotapi.LocationConfig); ok {
			out = append(out, l)
		}
	}
	return out
}

func (f *fakeSender) reset() { f.sent = nil }

type fixture struct {
	bot       *Bot
	sender    *fakeSender
	itinerary *service.ItineraryService
	checklist *service.ChecklistService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	is := service.NewItineraryService(repository.NewScheduleRepository(db))
	cs := service.NewChecklistService(repository.NewChecklistRepository(db), []string{"성진", "지열", "성동"})
	ls := service.NewLocationService(service.DefaultPlaces())
	sessions := controller.NewSessions(func() *controller.Controller {
		return controller.New(is, cs, ls, controller.NewState(cs.People()))
	})
	sender := &fakeSender{}
	return &fixture{bot: New(sender, sessions), sender: sender, itinerary: is, checklist: cs}
}

func (fx *fixture) command(text string) {
	n := len(text)
	if i := strings.IndexByte(text, ' '); i >= 0 {
		n = i
	}
	fx.bot.HandleUpdate(context.Background(), tgbotapi.Update{Message: &tgbotapi.Message{
		Text:     text,
		Chat:     &tgbotapi.Chat{ID: chatID},
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: n}},
	}})
}

func (fx *fixture) text(text string) {
	fx.bot.HandleUpdate(context.Background(), tgbotapi.Update{Message: &tgbotapi.Message{
		Text: text,
		Chat: &tgbotapi.Chat{ID: chatID},
	}})
}

func (fx *fixture) press(data string) {
	fx.bot.HandleUpdate(context.Background(), tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "cb",
		Data:    data,
		Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: chatID}},
	}})
}

func (fx *fixture) entries(t *testing.T) []model.ScheduleEntry {
	t.Helper()
	entries, err := fx.itinerary.List(context.Background())
	require.NoError(t, err)
	return entries
}

func TestStartShowsHelp(t *testing.T) {
	fx := newFixture(t)
	fx.command("/start")
	require.Len(t, fx.sender.texts(), 1)
	assert.Contains(t, fx.sender.last().Text, "/add")
}

func TestStartResetsChatState(t *testing.T) {
	fx := newFixture(t)
	fx.command("/add 1 09:00 | Temple")
	id := fx.entries(t)[0].ID
	fx.command("/day 2")
	fx.command("/person 지열")
	fx.command("/edit " + itoa(id))

	fx.command("/start")
	assert.Contains(t, fx.sender.last().Text, "/add")

	// буфер редактирования сброшен: обычный текст больше ничего не меняет
	fx.text("| Changed")
	assert.Contains(t, fx.sender.last().Text, "/start")
	assert.Equal(t, "Temple", fx.entries(t)[0].Title)

	fx.command("/timeline")
	assert.Contains(t, fx.sender.last().Text, "Temple")

	fx.command("/checklist")
	assert.Contains(t, fx.sender.last().Text, "성진: 0/0")
}

func TestAddAndTimeline(t *testing.T) {
	fx := newFixture(t)
	fx.command("/add 1 9:00 | 센소지 관람 | 관광 | 센소지")
	assert.Contains(t, fx.sender.last().Text, "Добавлен пункт")
	assert.Contains(t, fx.sender.last().Text, "09:00")

	fx.command("/add 2 18:00 | Dinner | meal")
	fx.sender.reset()

	fx.command("/timeline")
	text := fx.sender.last().Text
	assert.Contains(t, text, "День 1")
	assert.Contains(t, text, "센소지 관람")
	assert.NotContains(t, text, "Dinner")

	fx.command("/day 2")
	assert.Contains(t, fx.sender.last().Text, "Dinner")

	fx.command("/calendar")
	assert.Contains(t, fx.sender.last().Text, "▶ День 2")
}

func TestAddValidationFailure(t *testing.T) {
	fx := newFixture(t)
	fx.command("/add 1 25:99 | ")
	assert.Contains(t, fx.sender.last().Text, "Проверьте данные")
	assert.Empty(t, fx.entries(t))

	fx.command("/add nonsense")
	assert.Contains(t, fx.sender.last().Text, "Используйте")
}

func TestEditFlow(t *testing.T) {
	fx := newFixture(t)
	fx.command("/add 1 09:00 | Temple | | 센소지")
	id := fx.entries(t)[0].ID

	fx.command("/edit " + itoa(id))
	assert.Contains(t, fx.sender.last().Text, "1 09:00 | Temple | sightseeing | 센소지 | ")

	fx.text("| Shrine | | | 아침 일찍")
	assert.Contains(t, fx.sender.last().Text, "Сохранено")

	e := fx.entries(t)[0]
	assert.Equal(t, "Shrine", e.Title)
	assert.Equal(t, "센소지", model.StringValue(e.Location))
	assert.Equal(t, "아침 일찍", model.StringValue(e.Description))

	// после сохранения обычный текст уже не редактирует пункт
	fx.text("| Other")
	assert.Equal(t, "Shrine", fx.entries(t)[0].Title)
}

func TestEditInvalidKeepsBufferUntilCancel(t *testing.T) {
	fx := newFixture(t)
	fx.command("/add 1 09:00 | Temple")
	id := fx.entries(t)[0].ID

	fx.command("/edit " + itoa(id))
	fx.text("0")
	assert.Contains(t, fx.sender.last().Text, "Проверьте данные")
	assert.Equal(t, 1, fx.entries(t)[0].Day)

	fx.command("/cancel")
	fx.text("| Changed")
	assert.Equal(t, "Temple", fx.entries(t)[0].Title)

	fx.command("/edit 999")
	assert.Contains(t, fx.sender.last().Text, "отсутствует")
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	fx := newFixture(t)
	fx.command("/add 1 09:00 | Temple")
	id := fx.entries(t)[0].ID

	fx.command("/del " + itoa(id))
	markup, ok := fx.sender.last().ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	require.True(t, ok)
	require.Len(t, markup.InlineKeyboard[0], 2)
	assert.Len(t, fx.entries(t), 1)

	fx.press(cbDecline)
	assert.Len(t, fx.entries(t), 1)
	assert.Equal(t, "Удаление отменено.", fx.sender.last().Text)

	fx.press(cbConfirm)
	assert.Len(t, fx.entries(t), 1)

	fx.command("/del " + itoa(id))
	fx.press(cbConfirm)
	assert.Empty(t, fx.entries(t))
	assert.Equal(t, 3, fx.sender.callbacks)
}

func TestChecklistTodoToggleAndRemove(t *testing.T) {
	fx := newFixture(t)
	fx.command("/person 지열")
	assert.Contains(t, fx.sender.last().Text, "지열: 0/0")

	fx.command("/todo 여권 챙기기")
	msg := fx.sender.last()
	assert.Contains(t, msg.Text, "지열: 0/1")
	markup, ok := msg.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	require.True(t, ok)
	require.Len(t, markup.InlineKeyboard, 1)

	items, err := fx.checklist.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "지열", items[0].Person)
	id := items[0].ID

	fx.press(cbToggle + itoa(id))
	assert.Contains(t, fx.sender.last().Text, "지열: 1/1")

	fx.press(cbToggle + itoa(id))
	assert.Contains(t, fx.sender.last().Text, "지열: 0/1")

	fx.press(cbRemoveItem + itoa(id))
	fx.press(cbConfirm)
	items, err = fx.checklist.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)

	fx.command("/person nobody")
	assert.Contains(t, fx.sender.last().Text, "성진, 지열, 성동")
}

func TestMapSendsLocations(t *testing.T) {
	fx := newFixture(t)
	fx.command("/add 1 10:00 | Shopping | shopping | Ginza 6")
	fx.command("/add 1 12:00 | Lunch | meal | somewhere else")
	fx.sender.reset()

	fx.command("/map")
	locs := fx.sender.locations()
	require.Len(t, locs, 1)
	assert.InDelta(t, 35.6717, locs[0].Latitude, 1e-9)
	assert.Contains(t, fx.sender.texts()[0], "긴자")
}

func TestPlainTextWithoutEditing(t *testing.T) {
	fx := newFixture(t)
	fx.text("hello")
	assert.Contains(t, fx.sender.last().Text, "/start")
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
