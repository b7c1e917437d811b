package models

import "time"

// Snapshot is a point-in-time export of every collection.
type Snapshot struct {
	Timestamp   time.Time  `json:"timestamp"`
	Students    []Document `json:"students"`
	Winners     []Document `json:"winners"`
	ActivityLog []Document `json:"activityLog"`
	GuestLinks  []Document `json:"guestLinks"`
}

type SnapshotInfo struct {
	Filename  string    `json:"filename"`
	CreatedAt time.Time `json:"timestamp"`
}
