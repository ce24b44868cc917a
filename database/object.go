package database

import "time"

type Object struct {
	ID        string         `json:"id"`
	Pool      string         `json:"pool"`
	Group     string         `json:"group"`
	Payload   map[string]any `json:"payload"`
	CreatedAt time.Time      `json:"created_at"`
}

// Less orders objects by ID, required by the pin btree.
func (o *Object) Less(than *Object) bool {
	return o.ID < than.ID
}
