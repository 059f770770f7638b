package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// StringSlice stores an ordered string set as a JSON column
type StringSlice []string

func (s StringSlice) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	return scanJSON(value, s)
}

// SourceList stores the feed source list as a JSON column
type SourceList []FeedSource

func (l SourceList) Value() (driver.Value, error) {
	return json.Marshal(l)
}

func (l *SourceList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	return scanJSON(value, l)
}

// ArticleList stores an article collection as a JSON column
type ArticleList []*Article

func (l ArticleList) Value() (driver.Value, error) {
	return json.Marshal(l)
}

func (l *ArticleList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	return scanJSON(value, l)
}

func scanJSON(value, dest interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("unsupported column type %T", value)
	}
}

// Snapshot is the full mirrored state of one user's workspace
type Snapshot struct {
	Sources    []FeedSource `json:"sources"`
	Keywords   []string     `json:"keywords"`
	Companies  []string     `json:"companies"`
	Inbox      []*Article   `json:"inbox"`
	Archive    []*Article   `json:"archive"`
	LastScanAt *time.Time   `json:"last_scan_at,omitempty"`
}

// UserSettings is the persisted form of a Snapshot, one row per user
type UserSettings struct {
	UserID     string      `gorm:"primaryKey" json:"user_id"`
	Sources    SourceList  `gorm:"type:json" json:"sources"`
	Keywords   StringSlice `gorm:"type:json" json:"keywords"`
	Companies  StringSlice `gorm:"type:json" json:"companies"`
	Inbox      ArticleList `gorm:"type:json" json:"inbox"`
	Archive    ArticleList `gorm:"type:json" json:"archive"`
	LastScanAt *time.Time  `json:"last_scan_at"`
	UpdatedAt  time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

// ToSnapshot converts the persisted row back to a Snapshot
func (s *UserSettings) ToSnapshot() *Snapshot {
	return &Snapshot{
		Sources:    s.Sources,
		Keywords:   s.Keywords,
		Companies:  s.Companies,
		Inbox:      s.Inbox,
		Archive:    s.Archive,
		LastScanAt: s.LastScanAt,
	}
}
