package nightsky

import "time"

// FrameStats holds the counters of a single frame. Populated every frame;
// logged only when debug mode is on.
type FrameStats struct {
	Frame          uint64
	Stars          int
	Meteors        int
	Bursts         int
	MeteorsSpawned int
	MeteorsRemoved int
	BurstsRemoved  int
	Duration       time.Duration
}

// debugLog writes the frame's counters at debug level.
func (e *Engine) debugLog(st FrameStats) {
	if !e.debug {
		return
	}
	e.log.Debug("nightsky: frame",
		"frame", st.Frame,
		"stars", st.Stars,
		"meteors", st.Meteors,
		"bursts", st.Bursts,
		"spawned", st.MeteorsSpawned,
		"meteorsRemoved", st.MeteorsRemoved,
		"burstsRemoved", st.BurstsRemoved,
		"took", st.Duration,
	)
}
