package telemetry

import "testing"

func hasBookmark(bms []Bookmark, typ BookmarkType) bool {
	for _, bm := range bms {
		if bm.Type == typ {
			return true
		}
	}
	return false
}

func TestBookmarkDetector_FlockFormed(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 3; i++ {
		bd.Check(WindowStats{WindowEndTick: int64(i * 600), Agents: 100, Polarization: 0.2})
	}

	bms := bd.Check(WindowStats{WindowEndTick: 1800, Agents: 100, Polarization: 0.9})
	if !hasBookmark(bms, BookmarkFlockFormed) {
		t.Error("expected flock_formed bookmark")
	}

	// Staying aligned does not re-trigger
	bms = bd.Check(WindowStats{WindowEndTick: 2400, Agents: 100, Polarization: 0.95})
	if hasBookmark(bms, BookmarkFlockFormed) {
		t.Error("flock_formed triggered twice without the swarm disordering")
	}
}

func TestBookmarkDetector_SignalSurge(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{WindowEndTick: int64(i * 600), Transfers: 20})
	}

	bms := bd.Check(WindowStats{WindowEndTick: 3000, Transfers: 100})
	if !hasBookmark(bms, BookmarkSignalSurge) {
		t.Error("expected signal_surge bookmark")
	}
}

func TestBookmarkDetector_SignalSurgeNeedsVolume(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{WindowEndTick: int64(i * 600), Transfers: 2})
	}

	// 10x the average but too few transfers to matter
	bms := bd.Check(WindowStats{WindowEndTick: 3000, Transfers: 20})
	if hasBookmark(bms, BookmarkSignalSurge) {
		t.Error("signal_surge should need at least 50 transfers")
	}
}

func TestBookmarkDetector_Fragmentation(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{WindowEndTick: int64(i * 600), Agents: 100, MeanDegree: 6})
	}

	bms := bd.Check(WindowStats{WindowEndTick: 3000, Agents: 100, MeanDegree: 2})
	if !hasBookmark(bms, BookmarkFragmentation) {
		t.Error("expected fragmentation bookmark")
	}
}

func TestBookmarkDetector_Settled(t *testing.T) {
	bd := NewBookmarkDetector(10)

	count := 0
	for i := 0; i < 12; i++ {
		bms := bd.Check(WindowStats{
			WindowEndTick: int64(i * 600),
			Agents:        100,
			Polarization:  0.9,
			MeanDegree:    4,
		})
		if hasBookmark(bms, BookmarkSettled) {
			count++
		}
	}
	if count != 1 {
		t.Errorf("settled triggered %d times, want exactly 1", count)
	}
}

func TestBookmarkDetector_UnsteadyNeverSettles(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 12; i++ {
		polar := 0.2
		if i%2 == 0 {
			polar = 0.9
		}
		bms := bd.Check(WindowStats{
			WindowEndTick: int64(i * 600),
			Agents:        100,
			Polarization:  polar,
			MeanDegree:    4,
		})
		if hasBookmark(bms, BookmarkSettled) {
			t.Fatalf("window %d: settled triggered while polarization oscillates", i)
		}
	}
}
