package storage

import (
	"time"

	"github.com/google/uuid"
)

type Quote struct {
	ID             uuid.UUID   `json:"id"`
	Name           string      `json:"name"`
	Customer       string      `json:"customer"`
	WorkOnSaturday bool        `json:"work_on_saturday"`
	WorkOnSunday   bool        `json:"work_on_sunday"`
	CreatedAt      time.Time   `json:"created_at"`
	Items          []QuoteItem `json:"items,omitempty"`
}

// QuoteItem: выбранная в КП машина или софт.
type QuoteItem struct {
	ItemID   int64  `json:"item_id"`
	ItemKind string `json:"item_kind"`
	ItemName string `json:"item_name,omitempty"`
	Position int    `json:"position"`
}

type NewQuote struct {
	Name           string `json:"name"`
	Customer       string `json:"customer"`
	WorkOnSaturday bool   `json:"work_on_saturday"`
	WorkOnSunday   bool   `json:"work_on_sunday"`
}

type UpdateWeekends struct {
	WorkOnSaturday bool `json:"work_on_saturday"`
	WorkOnSunday   bool `json:"work_on_sunday"`
}
