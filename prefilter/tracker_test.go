package prefilter

import "testing"

func newTestTracker(cfg TrackerConfig) *Tracker {
	return NewTrackerWithConfig(newBytePrefilter('a', false), cfg)
}

func TestNewTrackerNilInner(t *testing.T) {
	if NewTracker(nil) != nil {
		t.Error("NewTracker(nil) != nil")
	}
}

func TestTrackerFindAndConfirm(t *testing.T) {
	tr := NewTracker(newBytePrefilter('a', false))
	haystack := []byte("xxaxa")

	if pos := tr.Find(haystack, 0); pos != 2 {
		t.Fatalf("Find = %d, want 2", pos)
	}
	tr.ConfirmMatch()
	if pos := tr.Find(haystack, 3); pos != 4 {
		t.Fatalf("Find = %d, want 4", pos)
	}

	candidates, confirms, eff, active := tr.Stats()
	if candidates != 2 || confirms != 1 || eff != 0.5 || !active {
		t.Errorf("Stats = %d %d %v %v", candidates, confirms, eff, active)
	}
}

func TestTrackerRetiresIneffectivePrefilter(t *testing.T) {
	tr := newTestTracker(TrackerConfig{CheckInterval: 8, MinEfficiency: 0.5, WarmupPeriod: 16})
	haystack := []byte("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")

	// Candidates pile up with no confirmed match; after warmup the
	// tracker must retire the filter and answer -1 from then on.
	for i := 0; tr.IsActive() && i < len(haystack); i++ {
		if tr.Find(haystack, i) == -1 {
			break
		}
	}
	if tr.IsActive() {
		t.Fatal("tracker stayed active through 100% false positives")
	}
	if pos := tr.Find(haystack, 0); pos != -1 {
		t.Errorf("retired tracker returned %d, want -1", pos)
	}
}

func TestTrackerStaysActiveWhenEffective(t *testing.T) {
	tr := newTestTracker(TrackerConfig{CheckInterval: 8, MinEfficiency: 0.5, WarmupPeriod: 16})
	haystack := []byte("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")

	for i := 0; i < len(haystack); i++ {
		if tr.Find(haystack, i) == -1 {
			t.Fatal("effective tracker went inactive")
		}
		tr.ConfirmMatch()
	}
	if !tr.IsActive() {
		t.Error("tracker retired a fully effective prefilter")
	}
}

func TestTrackerWarmupDelaysRetirement(t *testing.T) {
	tr := newTestTracker(TrackerConfig{CheckInterval: 1, MinEfficiency: 0.9, WarmupPeriod: 10})
	haystack := []byte("aaaaaaaaa") // 9 candidates, under the warmup

	for i := 0; i < len(haystack); i++ {
		tr.Find(haystack, i)
	}
	if !tr.IsActive() {
		t.Error("tracker retired during warmup")
	}
}
