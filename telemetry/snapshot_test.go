package telemetry

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSnapshotSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()

	snapshot := &Snapshot{
		Version:     SnapshotVersion,
		RNGSeed:     42,
		WorldWidth:  1280,
		WorldHeight: 720,
		Tick:        1000,
		Edges:       3,
		Agents: []AgentState{
			{ID: 1, X: 150, Y: 250, VelX: 0.5, VelY: -0.3, Activation: 0.75, Size: 3},
			{ID: 2, X: 160, Y: 250},
		},
		Bookmark: &Bookmark{
			Type:        BookmarkFlockFormed,
			Tick:        1000,
			Description: "Test bookmark",
		},
	}

	path, err := SaveSnapshot(snapshot, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("snapshot file not created at %s: %v", path, err)
	}

	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}

	if loaded.RNGSeed != snapshot.RNGSeed || loaded.Tick != snapshot.Tick || loaded.Edges != snapshot.Edges {
		t.Errorf("header mismatch: got %+v", loaded)
	}
	if len(loaded.Agents) != len(snapshot.Agents) {
		t.Fatalf("agents: got %d, want %d", len(loaded.Agents), len(snapshot.Agents))
	}
	if loaded.Agents[0] != snapshot.Agents[0] {
		t.Errorf("agent 0: got %+v, want %+v", loaded.Agents[0], snapshot.Agents[0])
	}
	if loaded.Bookmark == nil || loaded.Bookmark.Type != BookmarkFlockFormed {
		t.Errorf("bookmark = %+v, want flock_formed", loaded.Bookmark)
	}
}

func TestSnapshotFilename(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name string
		snap *Snapshot
		want string
	}{
		{"with bookmark", &Snapshot{Version: SnapshotVersion, Tick: 5000, Bookmark: &Bookmark{Type: BookmarkSignalSurge}}, "snapshot_5000_signal_surge.json"},
		{"plain", &Snapshot{Version: SnapshotVersion, Tick: 3000}, "snapshot_3000.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, err := SaveSnapshot(tt.snap, tmpDir)
			if err != nil {
				t.Fatalf("SaveSnapshot failed: %v", err)
			}
			if want := filepath.Join(tmpDir, tt.want); path != want {
				t.Errorf("path = %s, want %s", path, want)
			}
		})
	}
}

func TestLoadSnapshotRejectsOtherVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.json")
	if err := os.WriteFile(path, []byte(`{"version": 99}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSnapshot(path); err == nil {
		t.Error("expected an error for an unknown snapshot version")
	}
}
