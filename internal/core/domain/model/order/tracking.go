package order

import "time"

// TrackingUpdate is one append-only log entry recording an order status
// change: the status label, when it happened, and optional location/notes.
// Entries are never modified or removed once appended.
type TrackingUpdate struct {
	status    Status
	timestamp time.Time
	location  *string
	notes     *string
}

// newTrackingUpdate creates a tracking entry for a status change.
// Only the aggregate appends entries, so construction stays package-private.
func newTrackingUpdate(status Status, timestamp time.Time, location, notes *string) TrackingUpdate {
	return TrackingUpdate{
		status:    status,
		timestamp: timestamp,
		location:  location,
		notes:     notes,
	}
}

// RestoreTrackingUpdate reconstructs a tracking entry from persistence.
func RestoreTrackingUpdate(status Status, timestamp time.Time, location, notes *string) TrackingUpdate {
	return newTrackingUpdate(status, timestamp, location, notes)
}

// Status returns the status label the entry records.
func (t TrackingUpdate) Status() Status {
	return t.status
}

// Timestamp returns when the status change happened.
func (t TrackingUpdate) Timestamp() time.Time {
	return t.timestamp
}

// Location returns the optional location note.
func (t TrackingUpdate) Location() *string {
	return t.location
}

// Notes returns the optional free-text notes.
func (t TrackingUpdate) Notes() *string {
	return t.notes
}
