package admin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ms-booking/internal/models"
)

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name  string
		block string
		want  []string
	}{
		{
			name:  "plain list",
			block: "Питание\nТрансфер",
			want:  []string{"Питание", "Трансфер"},
		},
		{
			name:  "blank lines and padding dropped",
			block: "  Питание  \n\n\nТрансфер\n",
			want:  []string{"Питание", "Трансфер"},
		},
		{
			name:  "empty block",
			block: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitLines(tt.block))
		})
	}
}

func TestSplitLines_RoundTrip(t *testing.T) {
	// An included-items list submitted through the form's newline-joined
	// representation must re-parse to the original ordered list exactly.
	original := []string{"Питание", "Трансфер"}

	joined := JoinLines(original)
	assert.Equal(t, original, SplitLines(joined))
}

func TestParseFAQ(t *testing.T) {
	input := "В: Нужна виза?\nО: Нет.\n\nВ: Что брать?\nО: Рюкзак."

	items := ParseFAQ(input)

	require.Len(t, items, 2)
	assert.Equal(t, models.FAQItem{Question: "Нужна виза?", Answer: "Нет."}, items[0])
	assert.Equal(t, models.FAQItem{Question: "Что брать?", Answer: "Рюкзак."}, items[1])
}

func TestParseFAQ_LatinMarkers(t *testing.T) {
	input := "Q: Do I need a visa?\nA: No.\n\nQ: What to bring?\nA: A backpack."

	items := ParseFAQ(input)

	require.Len(t, items, 2)
	assert.Equal(t, "Do I need a visa?", items[0].Question)
	assert.Equal(t, "No.", items[0].Answer)
}

func TestParseFAQ_MultilineAnswer(t *testing.T) {
	input := "В: Что брать?\nО: Рюкзак,\nтёплую куртку."

	items := ParseFAQ(input)

	require.Len(t, items, 1)
	assert.Equal(t, "Что брать?", items[0].Question)
	assert.Equal(t, "Рюкзак, тёплую куртку.", items[0].Answer)
}

func TestParseFAQ_Empty(t *testing.T) {
	assert.Empty(t, ParseFAQ(""))
	assert.Empty(t, ParseFAQ("\n\n\n"))
}

func TestFormatFAQ_RoundTrip(t *testing.T) {
	items := []models.FAQItem{
		{Question: "Нужна виза?", Answer: "Нет."},
		{Question: "Что брать?", Answer: "Рюкзак."},
	}

	assert.Equal(t, items, ParseFAQ(FormatFAQ(items)))
}

func TestDecode(t *testing.T) {
	form := EventForm{
		Title:     "  Поход на Мульту  ",
		StartDate: "2026-07-10",
		StartTime: "08:00",
		Spots:     20,
		Price:     5000,
		Included:  "Питание\nТрансфер",
		Expenses:  "Баня\n",
		FAQ:       "В: Нужна виза?\nО: Нет.",
		Subtitle:  "",
	}

	ev := form.Decode()

	assert.Equal(t, "Поход на Мульту", ev.Title)
	assert.Equal(t, []string{"Питание", "Трансфер"}, ev.Included)
	assert.Equal(t, []string{"Баня"}, ev.Expenses)
	require.Len(t, ev.FAQ, 1)
	assert.Equal(t, "Нужна виза?", ev.FAQ[0].Question)
	assert.Empty(t, ev.Subtitle)
	assert.Zero(t, ev.SpotsLeft, "decode must not seed remaining capacity")
}

func TestFormFromEvent_RoundTrip(t *testing.T) {
	ev := models.Event{
		Title:     "Сплав по Катуни",
		StartDate: "2026-08-01",
		StartTime: "09:30",
		Spots:     12,
		Price:     7500,
		Included:  []string{"Питание", "Трансфер"},
		Expenses:  []string{"Баня"},
		FAQ: []models.FAQItem{
			{Question: "Нужна виза?", Answer: "Нет."},
		},
	}

	decoded := FormFromEvent(ev).Decode()

	assert.Equal(t, ev.Title, decoded.Title)
	assert.Equal(t, ev.Included, decoded.Included)
	assert.Equal(t, ev.Expenses, decoded.Expenses)
	assert.Equal(t, ev.FAQ, decoded.FAQ)
}
