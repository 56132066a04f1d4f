package game

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/quasilyte/gdata/v2"
)

// openTestGdata 在临时 HOME 下打开 gdata 存储
func openTestGdata(t *testing.T, appName string) *gdata.Manager {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_DATA_HOME", filepath.Join(home, ".local", "share"))

	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		t.Skipf("gdata is not available: %v", err)
	}
	return m
}

func TestSaveManager(t *testing.T) {
	tests := []struct {
		name       string
		open       func(t *testing.T) *SaveManager
		persistent bool
	}{
		{
			name:       "内存存储",
			open:       func(*testing.T) *SaveManager { return NewSaveManager(nil) },
			persistent: false,
		},
		{
			name: "gdata 存储",
			open: func(t *testing.T) *SaveManager {
				return NewSaveManager(openTestGdata(t, "invaders_test_saves"))
			},
			persistent: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := tt.open(t)
			if m.Persistent() != tt.persistent {
				t.Errorf("Persistent() = %v, want %v", m.Persistent(), tt.persistent)
			}
			if m.HasSnapshot(QuickSaveSlot) {
				t.Fatal("expected an empty slot")
			}
			if _, err := m.LoadSnapshot(QuickSaveSlot); err == nil {
				t.Error("expected an error for an empty slot")
			}

			c, k := newPlayingSession(t)
			if err := m.SaveSnapshot(QuickSaveSlot, NewSnapshot(c, k, time.Now())); err != nil {
				t.Fatalf("SaveSnapshot failed: %v", err)
			}
			if !m.HasSnapshot(QuickSaveSlot) {
				t.Fatal("expected the slot to exist after saving")
			}

			loaded, err := m.LoadSnapshot(QuickSaveSlot)
			if err != nil {
				t.Fatalf("LoadSnapshot failed: %v", err)
			}
			if loaded.Encounter.State != c.State() {
				t.Errorf("encounter state mismatch: %+v vs %+v", loaded.Encounter.State, c.State())
			}
			if loaded.Score.Score != k.Score() {
				t.Errorf("expected score %d, got %d", k.Score(), loaded.Score.Score)
			}
		})
	}
}

func TestSaveManagerRejectsInvalidInput(t *testing.T) {
	m := NewSaveManager(nil)
	c, k := newPlayingSession(t)

	if err := m.SaveSnapshot("", NewSnapshot(c, k, time.Now())); err == nil {
		t.Error("expected an error for an empty slot name")
	}
	if err := m.SaveSnapshot("slot", nil); err == nil {
		t.Error("expected an error for a nil snapshot")
	}
}
