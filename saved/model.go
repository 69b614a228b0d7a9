package saved

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Kind tags what a saved item points at
type Kind string

const (
	KindMatch   Kind = "match"
	KindArticle Kind = "article"
)

// Item is a bookmarked match or article
// Items are immutable once saved: remove and save again to change one
type Item struct {
	ID        string         `json:"id" gorm:"primaryKey;size:32"`
	Kind      Kind           `json:"type" gorm:"size:16;index"`
	Title     string         `json:"title"`
	Date      string         `json:"date"`
	URL       string         `json:"url,omitempty"`
	Meta      datatypes.JSON `json:"meta,omitempty"`
	CreatedAt time.Time      `json:"createdAt" gorm:"autoCreateTime"`
}

// TableName pins the table name across drivers
func (Item) TableName() string { return "saved_items" }

// Reminder flags a match for a kickoff reminder
type Reminder struct {
	MatchID   string    `gorm:"primaryKey;size:32"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Reminder) TableName() string { return "match_reminders" }

// models is the migration set
var models = []any{&Item{}, &Reminder{}}

// NewItem builds an item with meta encoded as a JSON object
func NewItem(id string, kind Kind, title, date string, meta map[string]string) Item {
	it := Item{ID: id, Kind: kind, Title: title, Date: date}
	if len(meta) > 0 {
		if b, err := json.Marshal(meta); err == nil {
			it.Meta = datatypes.JSON(b)
		}
	}
	return it
}

// MetaValue reads one meta key; empty when absent
func (it Item) MetaValue(key string) string {
	if len(it.Meta) == 0 {
		return ""
	}
	var m map[string]string
	if err := json.Unmarshal(it.Meta, &m); err != nil {
		return ""
	}
	return m[key]
}
