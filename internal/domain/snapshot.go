package domain

import "time"

// Snapshot is one immutable generation of station readings. Consumers must
// treat Stations as read-only; producers always allocate a new slice.
type Snapshot struct {
	Seq      uint64    `json:"seq"`
	TakenAt  time.Time `json:"taken_at"`
	Stations []Station `json:"stations"`
}
