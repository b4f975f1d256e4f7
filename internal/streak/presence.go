package streak

import "time"

const (
	DefaultMaxSampleGap    = 2 * time.Minute
	DefaultMinimumPresence = 20 * time.Minute
)

// Sample is the part of a location reading the presence scan needs.
type Sample struct {
	RecordedAt     time.Time
	WithinGeofence bool
}

type Presence struct {
	Longest            time.Duration `json:"-"`
	Minutes            int           `json:"continuous_minutes"`
	HasMinimumPresence bool          `json:"has_minimum_presence"`
}

// ContinuousPresence finds the longest run of in-geofence samples whose
// consecutive gaps are at most maxGap. Samples must be ordered by time.
//
// A gap larger than maxGap between two inside samples restarts the running
// interval at zero without committing it; an outside sample commits it.
func ContinuousPresence(samples []Sample, maxGap, minimum time.Duration) Presence {
	var longest, current time.Duration
	var last *time.Time
	for i := range samples {
		s := samples[i]
		if !s.WithinGeofence {
			longest = max(longest, current)
			current = 0
			last = nil
			continue
		}
		if last != nil {
			if gap := s.RecordedAt.Sub(*last); gap <= maxGap {
				current += gap
			} else {
				current = 0
			}
		} else {
			current = 0
		}
		t := s.RecordedAt
		last = &t
	}
	longest = max(longest, current)
	minutes := int(longest / time.Minute)
	return Presence{
		Longest:            longest,
		Minutes:            minutes,
		HasMinimumPresence: time.Duration(minutes)*time.Minute >= minimum,
	}
}
