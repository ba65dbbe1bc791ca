package admin

import (
	"strings"

	"ms-booking/internal/models"
)

// EventForm is the flat shape submitted by the admin create/edit form.
// List-valued fields arrive as newline-joined text blocks and the FAQ as a
// loosely structured text block; Decode normalizes them into the stored shape.
type EventForm struct {
	Title        string   `json:"title"`
	Subtitle     string   `json:"subtitle"`
	StartDate    string   `json:"startDate"`
	StartTime    string   `json:"startTime"`
	EndDate      string   `json:"endDate"`
	EndTime      string   `json:"endTime"`
	Spots        int      `json:"spots"`
	Price        float64  `json:"price"`
	PriceChild   *float64 `json:"priceChild"`
	PriceFamily  *float64 `json:"priceFamily"`
	PriceOld     *float64 `json:"priceOld"`
	Location     string   `json:"location"`
	MeetingPoint string   `json:"meetingPoint"`
	Guide        string   `json:"guide"`
	Difficulty   string   `json:"difficulty"`
	Duration     string   `json:"duration"`
	Distance     string   `json:"distance"`
	Route        string   `json:"route"`
	Included     string   `json:"included"`
	Expenses     string   `json:"expenses"`
	FAQ          string   `json:"faq"`
	ImageURL     string   `json:"imageUrl"`
	Type         string   `json:"type"`
	Label        string   `json:"label"`
}

// SplitLines converts a newline-joined text block into an ordered list,
// dropping blank lines and trimming each entry.
func SplitLines(block string) []string {
	var items []string
	for _, line := range strings.Split(block, "\n") {
		if s := strings.TrimSpace(line); s != "" {
			items = append(items, s)
		}
	}
	return items
}

// JoinLines is the inverse of SplitLines, used to prefill the edit form.
func JoinLines(items []string) string {
	return strings.Join(items, "\n")
}

// faqQuestionMarkers and faqAnswerMarkers are the prefixes stripped from FAQ
// lines; both the Cyrillic and Latin spellings are accepted.
var (
	faqQuestionMarkers = []string{"В:", "B:", "Q:"}
	faqAnswerMarkers   = []string{"О:", "O:", "A:"}
)

// ParseFAQ parses a free-text FAQ block into question/answer pairs. Blocks
// are separated by blank lines; within a block the first marked line (or the
// first line) is the question and the rest is the answer.
func ParseFAQ(block string) []models.FAQItem {
	var items []models.FAQItem

	for _, chunk := range splitBlocks(block) {
		var question, answer []string
		inAnswer := false

		for _, line := range chunk {
			if stripped, ok := stripMarker(line, faqAnswerMarkers); ok {
				inAnswer = true
				if stripped != "" {
					answer = append(answer, stripped)
				}
				continue
			}
			if stripped, ok := stripMarker(line, faqQuestionMarkers); ok {
				inAnswer = false
				if stripped != "" {
					question = append(question, stripped)
				}
				continue
			}
			if inAnswer {
				answer = append(answer, line)
			} else {
				question = append(question, line)
			}
		}

		q := strings.Join(question, " ")
		a := strings.Join(answer, " ")
		if q != "" || a != "" {
			items = append(items, models.FAQItem{Question: q, Answer: a})
		}
	}

	return items
}

// FormatFAQ renders FAQ pairs back into the text-block form representation.
func FormatFAQ(items []models.FAQItem) string {
	blocks := make([]string, 0, len(items))
	for _, item := range items {
		blocks = append(blocks, "В: "+item.Question+"\nО: "+item.Answer)
	}
	return strings.Join(blocks, "\n\n")
}

// splitBlocks splits text into groups of non-blank trimmed lines separated
// by one or more blank lines.
func splitBlocks(text string) [][]string {
	var blocks [][]string
	var current []string

	for _, line := range strings.Split(text, "\n") {
		s := strings.TrimSpace(line)
		if s == "" {
			if len(current) > 0 {
				blocks = append(blocks, current)
				current = nil
			}
			continue
		}
		current = append(current, s)
	}
	if len(current) > 0 {
		blocks = append(blocks, current)
	}

	return blocks
}

func stripMarker(line string, markers []string) (string, bool) {
	for _, marker := range markers {
		if strings.HasPrefix(line, marker) {
			return strings.TrimSpace(strings.TrimPrefix(line, marker)), true
		}
	}
	return "", false
}

// Decode normalizes the form into an Event. Optional text fields are kept as
// empty strings here; the store maps them to NULL on write. SpotsLeft is NOT
// set: Create seeds it and Update leaves the stored value alone.
func (f EventForm) Decode() models.Event {
	return models.Event{
		Title:        strings.TrimSpace(f.Title),
		Subtitle:     strings.TrimSpace(f.Subtitle),
		StartDate:    strings.TrimSpace(f.StartDate),
		StartTime:    strings.TrimSpace(f.StartTime),
		EndDate:      strings.TrimSpace(f.EndDate),
		EndTime:      strings.TrimSpace(f.EndTime),
		Spots:        f.Spots,
		Price:        f.Price,
		PriceChild:   f.PriceChild,
		PriceFamily:  f.PriceFamily,
		PriceOld:     f.PriceOld,
		Location:     strings.TrimSpace(f.Location),
		MeetingPoint: strings.TrimSpace(f.MeetingPoint),
		Guide:        strings.TrimSpace(f.Guide),
		Difficulty:   strings.TrimSpace(f.Difficulty),
		Duration:     strings.TrimSpace(f.Duration),
		Distance:     strings.TrimSpace(f.Distance),
		Route:        strings.TrimSpace(f.Route),
		Included:     SplitLines(f.Included),
		Expenses:     SplitLines(f.Expenses),
		FAQ:          ParseFAQ(f.FAQ),
		ImageURL:     strings.TrimSpace(f.ImageURL),
		Type:         strings.TrimSpace(f.Type),
		Label:        strings.TrimSpace(f.Label),
	}
}

// FormFromEvent prefills the edit form from a stored event.
func FormFromEvent(ev models.Event) EventForm {
	return EventForm{
		Title:        ev.Title,
		Subtitle:     ev.Subtitle,
		StartDate:    ev.StartDate,
		StartTime:    ev.StartTime,
		EndDate:      ev.EndDate,
		EndTime:      ev.EndTime,
		Spots:        ev.Spots,
		Price:        ev.Price,
		PriceChild:   ev.PriceChild,
		PriceFamily:  ev.PriceFamily,
		PriceOld:     ev.PriceOld,
		Location:     ev.Location,
		MeetingPoint: ev.MeetingPoint,
		Guide:        ev.Guide,
		Difficulty:   ev.Difficulty,
		Duration:     ev.Duration,
		Distance:     ev.Distance,
		Route:        ev.Route,
		Included:     JoinLines(ev.Included),
		Expenses:     JoinLines(ev.Expenses),
		FAQ:          FormatFAQ(ev.FAQ),
		ImageURL:     ev.ImageURL,
		Type:         ev.Type,
		Label:        ev.Label,
	}
}
