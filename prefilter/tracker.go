package prefilter

// Tracker wraps a Prefilter with effectiveness accounting for one search.
//
// A prefilter only pays for itself while its candidates usually turn into
// real matches. On adversarial input (a pattern whose literal occurs
// everywhere but whose full match almost never does) every candidate
// triggers a failed engine attempt and the "fast" path becomes pure
// overhead. The tracker counts candidates against confirmed matches and
// retires the prefilter for the rest of the search once the ratio drops
// below a threshold. Once retired it stays retired; the caller falls back
// to the plain cursor scan.
//
// The search loop drives it like this:
//
//	tr := prefilter.NewTracker(pf)
//	for tr.IsActive() {
//	    pos := tr.Find(haystack, start)
//	    if pos == -1 {
//	        break
//	    }
//	    if attemptAt(pos) {
//	        tr.ConfirmMatch()
//	        return pos
//	    }
//	    start = pos + 1
//	}
type Tracker struct {
	inner Prefilter

	candidates uint64
	confirms   uint64

	checkInterval  uint64
	minEfficiency  float64
	warmupPeriod   uint64
	lastCheckpoint uint64

	active bool
}

// TrackerConfig tunes when a Tracker retires its prefilter.
type TrackerConfig struct {
	// CheckInterval is how many candidates pass between efficiency
	// checks.
	CheckInterval uint64

	// MinEfficiency is the confirms/candidates ratio below which the
	// prefilter is retired.
	MinEfficiency float64

	// WarmupPeriod is the candidate count before the first check, so a
	// handful of early misses cannot retire a filter that would have
	// paid off.
	WarmupPeriod uint64
}

// DefaultTrackerConfig returns the default thresholds: check every 64
// candidates, retire below 10% efficiency, never before 128 candidates.
func DefaultTrackerConfig() TrackerConfig {
	return TrackerConfig{
		CheckInterval: 64,
		MinEfficiency: 0.1,
		WarmupPeriod:  128,
	}
}

// NewTracker wraps inner with the default thresholds. Returns nil when
// inner is nil.
func NewTracker(inner Prefilter) *Tracker {
	return NewTrackerWithConfig(inner, DefaultTrackerConfig())
}

// NewTrackerWithConfig wraps inner with explicit thresholds. Returns nil
// when inner is nil.
func NewTrackerWithConfig(inner Prefilter, config TrackerConfig) *Tracker {
	if inner == nil {
		return nil
	}
	return &Tracker{
		inner:         inner,
		checkInterval: config.CheckInterval,
		minEfficiency: config.MinEfficiency,
		warmupPeriod:  config.WarmupPeriod,
		active:        true,
	}
}

// Find returns the next candidate position at or after start, or -1. A -1
// is only authoritative while IsActive still reports true; a retired
// tracker returns -1 unconditionally.
func (t *Tracker) Find(haystack []byte, start int) int {
	if !t.active {
		return -1
	}
	pos := t.inner.Find(haystack, start)
	if pos >= 0 {
		t.candidates++
		t.checkEffectiveness()
	}
	return pos
}

// ConfirmMatch records that the most recent candidate was a real match.
func (t *Tracker) ConfirmMatch() {
	t.confirms++
}

// IsActive reports whether the prefilter is still in use.
func (t *Tracker) IsActive() bool {
	return t.active
}

// Stats returns the current candidate and confirm counts, their ratio,
// and whether the tracker is still active.
func (t *Tracker) Stats() (candidates, confirms uint64, efficiency float64, active bool) {
	candidates = t.candidates
	confirms = t.confirms
	if candidates > 0 {
		efficiency = float64(confirms) / float64(candidates)
	}
	active = t.active
	return
}

func (t *Tracker) checkEffectiveness() {
	if t.candidates < t.warmupPeriod {
		return
	}
	if t.candidates-t.lastCheckpoint < t.checkInterval {
		return
	}
	t.lastCheckpoint = t.candidates
	if float64(t.confirms)/float64(t.candidates) < t.minEfficiency {
		t.active = false
	}
}
