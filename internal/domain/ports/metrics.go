package ports

import "time"

// KinshipRecorder receives measurements from kinship queries.
type KinshipRecorder interface {
	// ObserveQuery records one resolved query and which tier answered it.
	ObserveQuery(tier string, elapsed time.Duration)

	// ObserveBuild records an engine rebuild over a roster of the given size.
	ObserveBuild(members int, elapsed time.Duration)
}

// NopRecorder discards all measurements.
type NopRecorder struct{}

// ObserveQuery implements KinshipRecorder.
func (NopRecorder) ObserveQuery(string, time.Duration) {}

// ObserveBuild implements KinshipRecorder.
func (NopRecorder) ObserveBuild(int, time.Duration) {}
