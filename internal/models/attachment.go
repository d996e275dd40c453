package models

import "time"

// Attachment origin values
const (
	AttachmentOriginUpload = "upload"
	AttachmentOriginLink   = "link"
)

// Attachment is a file or link attached to a task. An attachment is the
// evidence the transition gate looks for when a task enters a gated group.
type Attachment struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Origin  string    `json:"origin"`
	AddedAt time.Time `json:"added_at"`
}
