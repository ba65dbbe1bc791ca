package models

import (
	"time"
)

// Default price multipliers applied when an event has no explicit
// child or family price.
const (
	ChildPriceFactor  = 0.8
	FamilyPriceFactor = 2.5
)

// FAQItem is a single question/answer pair shown on the event detail page.
type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Event represents a scheduled tour offering with fixed capacity and pricing.
// The store owns the durable record; everything else reads it through the cache.
type Event struct {
	ID string `json:"id"`

	// Schedule. Dates are ISO yyyy-mm-dd strings, times are hh:mm strings;
	// end date/time are optional and empty when the event is single-day.
	StartDate string `json:"startDate"`
	StartTime string `json:"startTime"`
	EndDate   string `json:"endDate,omitempty"`
	EndTime   string `json:"endTime,omitempty"`

	// Capacity. SpotsLeft is only ever changed inside the store's booking
	// transaction; 0 <= SpotsLeft <= Spots holds after every booking.
	Spots     int `json:"spots"`
	SpotsLeft int `json:"spotsLeft"`

	// Pricing. Price is the adult price and is required. PriceChild and
	// PriceFamily are derived from Price when absent (see Derived). PriceOld
	// is the optional struck-through promotional price.
	Price       float64  `json:"price"`
	PriceChild  *float64 `json:"priceChild,omitempty"`
	PriceFamily *float64 `json:"priceFamily,omitempty"`
	PriceOld    *float64 `json:"priceOld,omitempty"`

	Title        string    `json:"title"`
	Subtitle     string    `json:"subtitle,omitempty"`
	Location     string    `json:"location,omitempty"`
	MeetingPoint string    `json:"meetingPoint,omitempty"`
	Guide        string    `json:"guide,omitempty"`
	Difficulty   string    `json:"difficulty,omitempty"`
	Duration     string    `json:"duration,omitempty"`
	Distance     string    `json:"distance,omitempty"`
	Route        string    `json:"route,omitempty"`
	Included     []string  `json:"included,omitempty"`
	Expenses     []string  `json:"expenses,omitempty"`
	FAQ          []FAQItem `json:"faq,omitempty"`
	ImageURL     string    `json:"imageUrl,omitempty"`
	Type         string    `json:"type,omitempty"`
	Label        string    `json:"label,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Derived returns a copy of the event with child and family prices filled in
// from the adult price when they were not set explicitly.
func (e Event) Derived() Event {
	if e.PriceChild == nil {
		child := e.Price * ChildPriceFactor
		e.PriceChild = &child
	}
	if e.PriceFamily == nil {
		family := e.Price * FamilyPriceFactor
		e.PriceFamily = &family
	}
	return e
}
