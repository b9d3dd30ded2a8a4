package bot

import (
	"testing"

	"itinerary/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAdd(t *testing.T) {
	f, err := ParseAdd("2 9:30 | 츠키지 시장 | 식사 | Tsukiji | 초밥 아침")
	require.NoError(t, err)
	assert.Equal(t, 2, f.Day)
	assert.Equal(t, "9:30", f.Time)
	assert.Equal(t, "츠키지 시장", f.Title)
	assert.Equal(t, model.Category("식사"), f.Category)
	assert.Equal(t, "Tsukiji", model.StringValue(f.Location))
	assert.Equal(t, "초밥 아침", model.StringValue(f.Description))

	f, err = ParseAdd("1 10:00 | Walk")
	require.NoError(t, err)
	assert.Equal(t, "Walk", f.Title)
	assert.Empty(t, f.Category)
	assert.Nil(t, f.Location)
	assert.Nil(t, f.Description)

	f, err = ParseAdd("1 10:00 | Walk | | - | -")
	require.NoError(t, err)
	assert.Nil(t, f.Location)
	assert.Nil(t, f.Description)
}

func TestParseAddErrors(t *testing.T) {
	for _, in := range []string{"", "   ", "| title", "1 | title", "one 10:00 | title", "1 10:00 extra | t"} {
		_, err := ParseAdd(in)
		assert.Error(t, err, in)
	}
}

func TestApplyEdit(t *testing.T) {
	buf := model.EntryFields{
		Day: 1, Time: "09:00", Title: "Temple", Category: model.CategorySightseeing,
		Location: model.StringPtr("센소지"), Description: model.StringPtr("early"),
	}

	out, err := ApplyEdit(buf, "| New title")
	require.NoError(t, err)
	assert.Equal(t, "New title", out.Title)
	assert.Equal(t, 1, out.Day)
	assert.Equal(t, "09:00", out.Time)
	assert.Equal(t, "센소지", model.StringValue(out.Location))

	out, err = ApplyEdit(buf, "3 | | meal | | -")
	require.NoError(t, err)
	assert.Equal(t, 3, out.Day)
	assert.Equal(t, "09:00", out.Time)
	assert.Equal(t, model.Category("meal"), out.Category)
	assert.Equal(t, "센소지", model.StringValue(out.Location))
	assert.Nil(t, out.Description)

	out, err = ApplyEdit(buf, "11:15")
	require.NoError(t, err)
	assert.Equal(t, "11:15", out.Time)
	assert.Equal(t, 1, out.Day)

	// исходный буфер не меняется
	assert.Equal(t, "early", *buf.Description)

	_, err = ApplyEdit(buf, "x | y")
	assert.Error(t, err)
	_, err = ApplyEdit(buf, "  ")
	assert.Error(t, err)
}

func TestFormatFieldsRoundTrip(t *testing.T) {
	f := model.EntryFields{Day: 2, Time: "18:00", Title: "Dinner", Category: model.CategoryMeal, Location: model.StringPtr("Ginza")}
	line := FormatFields(f)
	assert.Equal(t, "2 18:00 | Dinner | meal | Ginza | ", line)

	back, err := ParseAdd(line)
	require.NoError(t, err)
	assert.Equal(t, f, back)
}

func TestParseID(t *testing.T) {
	id, err := parseID(" 42 ")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, in := range []string{"", "0", "-3", "abc"} {
		_, err := parseID(in)
		assert.Error(t, err, in)
	}
}
