// Package history persists the record of trashed files as an ordered list
// of batches, one batch per invocation. The newest batch is always last.
package history

import "time"

// Item is a single trashed entry. Fields are immutable once recorded.
type Item struct {
	// Name is the original base name of the entry
	Name string `json:"name"`

	// From is the absolute path the entry was trashed from
	From string `json:"from"`

	// To is the path of the entry inside the holding area
	To string `json:"to"`

	// IsDir records whether the entry was a directory when trashed
	IsDir bool `json:"is_dir"`
}

// Batch groups the items trashed by one invocation. Undo operates on whole
// batches, newest first.
type Batch struct {
	// ID is a k-sortable identifier assigned when the batch is recorded
	ID string `json:"id"`

	// Timestamp is when the batch was recorded
	Timestamp time.Time `json:"timestamp"`

	// Items are the successfully trashed entries, in argument order
	Items []Item `json:"items"`
}
