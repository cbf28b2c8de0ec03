package telemetry

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/stat"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkFlockFormed   BookmarkType = "flock_formed"
	BookmarkSignalSurge   BookmarkType = "signal_surge"
	BookmarkFragmentation BookmarkType = "fragmentation"
	BookmarkSettled       BookmarkType = "settled"
)

// Bookmark marks an interesting moment in a run.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        int64        `csv:"tick"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector watches window stats for notable changes in collective state.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	recentPolarMin float64 // lowest polarization since the last flock bookmark
	seenPolar      bool
	recentDegreePk float64 // highest mean degree since the last fragmentation
	settledWindows int     // consecutive low-variance windows
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 5 {
		historySize = 5 // minimum for settled detection
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if bd.historyFull || bd.historyIdx > 0 {
		for _, check := range []func(WindowStats) *Bookmark{
			bd.checkFlockFormed,
			bd.checkSignalSurge,
			bd.checkFragmentation,
			bd.checkSettled,
		} {
			if b := check(stats); b != nil {
				bookmarks = append(bookmarks, *b)
			}
		}
	}

	bd.addToHistory(stats)

	if !bd.seenPolar || stats.Polarization < bd.recentPolarMin {
		bd.recentPolarMin = stats.Polarization
		bd.seenPolar = true
	}
	bd.recentDegreePk = max(bd.recentDegreePk, stats.MeanDegree)

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

// recent returns up to n most recent windows, oldest first.
func (bd *BookmarkDetector) recent(n int) []WindowStats {
	var ordered []WindowStats
	if bd.historyFull {
		ordered = append(ordered, bd.history[bd.historyIdx:]...)
	}
	ordered = append(ordered, bd.history[:bd.historyIdx]...)
	if len(ordered) > n {
		ordered = ordered[len(ordered)-n:]
	}
	return ordered
}

// checkFlockFormed fires when a disordered swarm becomes strongly aligned.
func (bd *BookmarkDetector) checkFlockFormed(stats WindowStats) *Bookmark {
	if bd.recentPolarMin >= 0.5 || stats.Polarization < 0.8 {
		return nil
	}
	from := bd.recentPolarMin
	bd.recentPolarMin = stats.Polarization

	return &Bookmark{
		Type:        BookmarkFlockFormed,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Polarization rose from %.2f to %.2f", from, stats.Polarization),
	}
}

// checkSignalSurge fires when propagation transfers exceed twice the rolling average.
func (bd *BookmarkDetector) checkSignalSurge(stats WindowStats) *Bookmark {
	history := bd.recent(bd.historySize)
	if len(history) < 3 {
		return nil
	}

	var total int
	for _, h := range history {
		total += h.Transfers
	}
	avg := float64(total) / float64(len(history))
	if avg == 0 || stats.Transfers < 50 || float64(stats.Transfers) <= 2*avg {
		return nil
	}

	return &Bookmark{
		Type:        BookmarkSignalSurge,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Transfers %d are %.1fx average (%.1f)", stats.Transfers, float64(stats.Transfers)/avg, avg),
	}
}

// checkFragmentation fires when the mean degree halves from its recent peak.
func (bd *BookmarkDetector) checkFragmentation(stats WindowStats) *Bookmark {
	if bd.recentDegreePk < 2 {
		return nil
	}
	drop := 1 - stats.MeanDegree/bd.recentDegreePk
	if drop <= 0.5 {
		return nil
	}
	peak := bd.recentDegreePk
	bd.recentDegreePk = stats.MeanDegree

	return &Bookmark{
		Type:        BookmarkFragmentation,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Mean degree fell %.0f%% from peak %.2f to %.2f", drop*100, peak, stats.MeanDegree),
	}
}

// checkSettled fires once when polarization and degree have both been steady
// (coefficient of variation below 0.2) for five consecutive windows.
func (bd *BookmarkDetector) checkSettled(stats WindowStats) *Bookmark {
	if stats.Agents == 0 || stats.MeanDegree == 0 {
		bd.settledWindows = 0
		return nil
	}

	history := bd.recent(3)
	if len(history) < 3 {
		return nil
	}

	polar := []float64{stats.Polarization}
	degree := []float64{stats.MeanDegree}
	for _, h := range history {
		polar = append(polar, h.Polarization)
		degree = append(degree, h.MeanDegree)
	}

	if steady(polar) && steady(degree) {
		bd.settledWindows++
	} else {
		bd.settledWindows = 0
	}

	if bd.settledWindows == 5 {
		return &Bookmark{
			Type:        BookmarkSettled,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Steady at polarization %.2f, mean degree %.2f", stats.Polarization, stats.MeanDegree),
		}
	}
	return nil
}

func steady(xs []float64) bool {
	mean, variance := stat.PopMeanVariance(xs, nil)
	if mean == 0 {
		return variance == 0
	}
	return variance/(mean*mean) < 0.04 // CV^2 < 0.04 means CV < 0.2
}
