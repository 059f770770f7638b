package models

// FeedSource is a tracked industry publication. Lifecycle after creation is
// limited to toggling the active flag or deletion.
type FeedSource struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	URL    string `json:"url"`
	Active bool   `json:"active"`
}
