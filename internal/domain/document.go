package domain

import "time"

// Document represents a source document submitted for processing.
// Text acquisition (file parsing, upload handling) happens outside the
// core; by the time a Document exists its Text is plain UTF-8.
type Document struct {
	ID        string
	Name      string
	Text      string
	CreatedAt time.Time
}
