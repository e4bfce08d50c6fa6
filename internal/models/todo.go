package models

// Todo is a lightweight reminder unrelated to any asset.
type Todo struct {
	ID   int64   `json:"id"`
	Text string  `json:"text"`
	Done bool    `json:"done"`
	Note *string `json:"note"`
}
