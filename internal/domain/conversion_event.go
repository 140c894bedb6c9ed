package domain

import "time"

// EventType is the kind of post-scan behavioral signal.
type EventType string

const (
	EventPageview EventType = "pageview"
	EventScroll   EventType = "scroll"
	EventCTAClick EventType = "cta_click"
	EventWhatsApp EventType = "whatsapp"
	EventForm     EventType = "form"
	EventDownload EventType = "download"
	EventCall     EventType = "call"
	EventPurchase EventType = "purchase"
)

// EventTypes lists every accepted event type.
var EventTypes = []EventType{
	EventPageview, EventScroll, EventCTAClick, EventWhatsApp,
	EventForm, EventDownload, EventCall, EventPurchase,
}

// ConversionEventTypes are the event types counted as conversions.
var ConversionEventTypes = []EventType{
	EventWhatsApp, EventForm, EventDownload, EventCall, EventPurchase,
}

// IsValid reports whether t belongs to the fixed enumeration.
func (t EventType) IsValid() bool {
	for _, known := range EventTypes {
		if t == known {
			return true
		}
	}
	return false
}

// IsConversion reports whether t counts as a conversion.
func (t EventType) IsConversion() bool {
	for _, known := range ConversionEventTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ConversionEvent is a behavioral signal reported by the landing page for a click.
type ConversionEvent struct {
	ID         int64     `gorm:"primaryKey;column:id" json:"id"`
	ClickID    int64     `gorm:"column:click_id;not null;index" json:"click_id"`
	EventType  EventType `gorm:"column:event_type;size:20;not null;index" json:"event_type"`
	EventValue *string   `gorm:"column:event_value;type:text" json:"event_value,omitempty"`
	OccurredAt time.Time `gorm:"column:occurred_at;not null;index" json:"occurred_at"`
}

// TableName возвращает название таблицы для GORM
func (ConversionEvent) TableName() string {
	return "conversion_events"
}
