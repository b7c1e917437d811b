package models

import "time"

const (
	ActionGeneratedGuestLink = "Generated Guest Link"
	ActionRestoredBackup     = "Restored from Backup (Server-side)"
	ActionUploadedTemplate   = "Uploaded Class Template (Server-side)"
)

// ActivityLogEntry is an append-only audit record. Timestamp is assigned by
// the store on write.
type ActivityLogEntry struct {
	ID        string         `json:"id"`
	Action    string         `json:"action"`
	Timestamp time.Time      `json:"timestamp"`
	Details   map[string]any `json:"details"`
}

func ActivityFromDocument(d Document) ActivityLogEntry {
	ts, _ := Time(d.Get("timestamp"))
	details, _ := d.Get("details").(map[string]any)
	return ActivityLogEntry{
		ID:        d.ID,
		Action:    String(d.Get("action")),
		Timestamp: ts,
		Details:   details,
	}
}
