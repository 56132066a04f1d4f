package entities

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/decker502/invaders/pkg/components"
	"github.com/decker502/invaders/pkg/config"
	"github.com/decker502/invaders/pkg/types"
)

func TestNewEnemyGrid(t *testing.T) {
	cfg := config.DefaultCombatConfig()
	enemies := NewEnemyGrid(cfg)

	if len(enemies) != cfg.Enemies.Rows*cfg.Enemies.Cols {
		t.Fatalf("expected %d enemies, got %d", cfg.Enemies.Rows*cfg.Enemies.Cols, len(enemies))
	}

	first, last := enemies[0], enemies[len(enemies)-1]
	left := first.X
	right := last.X + last.W
	if math.Abs(left-(cfg.Screen.Width-right)) > 1e-9 {
		t.Errorf("grid should be centred: left margin %.1f, right margin %.1f", left, cfg.Screen.Width-right)
	}
	if first.Y != cfg.Enemies.StartY {
		t.Errorf("first row Y: expected %.1f, got %.1f", cfg.Enemies.StartY, first.Y)
	}

	seen := make(map[int]bool)
	for i, e := range enemies {
		if seen[e.ID] {
			t.Fatalf("duplicate enemy ID %d", e.ID)
		}
		seen[e.ID] = true
		if e.Row != i/cfg.Enemies.Cols || e.Col != i%cfg.Enemies.Cols {
			t.Errorf("enemy %d: expected row-major order, got (%d,%d)", i, e.Row, e.Col)
		}
		if !e.Alive() || e.Direction != 1 {
			t.Errorf("enemy %d should start alive and moving right", i)
		}
	}
}

func TestNewEnemyGridEmpty(t *testing.T) {
	cfg := config.DefaultCombatConfig()
	cfg.Enemies.Rows = 0
	if got := NewEnemyGrid(cfg); len(got) != 0 {
		t.Errorf("expected no enemies, got %d", len(got))
	}
}

func TestNewBarriers(t *testing.T) {
	cfg := config.DefaultCombatConfig()

	reinforced := components.NewModifierSet()
	reinforced.ReinforcedBarrierLevel = 1
	maxed := components.NewModifierSet()
	maxed.ReinforcedBarrierLevel = 5

	tests := []struct {
		name      string
		modifiers []components.ModifierSet
		wantHits  int
	}{
		{"无强化", nil, 1},
		{"单人强化一级", []components.ModifierSet{reinforced}, 2},
		{"取最高等级", []components.ModifierSet{components.NewModifierSet(), reinforced}, 2},
		{"不超过上限", []components.ModifierSet{maxed}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			barriers := NewBarriers(cfg, tt.modifiers...)
			if len(barriers) != cfg.Barriers.Count {
				t.Fatalf("expected %d barriers, got %d", cfg.Barriers.Count, len(barriers))
			}
			for _, b := range barriers {
				if len(b.Blocks) != cfg.Barriers.Rows*cfg.Barriers.Cols {
					t.Fatalf("barrier %d: expected %d blocks, got %d", b.ID, cfg.Barriers.Rows*cfg.Barriers.Cols, len(b.Blocks))
				}
				for _, blk := range b.Blocks {
					if blk.HitsRemaining != tt.wantHits {
						t.Fatalf("block hits: expected %d, got %d", tt.wantHits, blk.HitsRemaining)
					}
				}
			}
		})
	}
}

func TestNewBarriersDoNotOverlap(t *testing.T) {
	cfg := config.DefaultCombatConfig()
	barriers := NewBarriers(cfg)

	for i := 1; i < len(barriers); i++ {
		if barriers[i-1].Bounds().Intersects(barriers[i].Bounds()) {
			t.Errorf("barriers %d and %d overlap", i, i+1)
		}
	}
	for _, b := range barriers {
		bounds := b.Bounds()
		if bounds.X < 0 || bounds.X+bounds.W > cfg.Screen.Width {
			t.Errorf("barrier %d off screen: %+v", b.ID, bounds)
		}
	}
}

func TestNewPowerUp(t *testing.T) {
	cfg := config.DefaultCombatConfig()
	p := NewPowerUp(&cfg.PowerUps, types.PowerUpLaser, 500, 300, 2*time.Second)

	cx, cy := p.Rect().Center()
	if cx != 500 || cy != 300 {
		t.Errorf("power-up should be centred at (500,300), got (%.1f,%.1f)", cx, cy)
	}
	if p.Type != types.PowerUpLaser || p.SpawnedAt != 2*time.Second {
		t.Errorf("unexpected power-up: %+v", p)
	}
}

func TestRandomPowerUpTypeCoversAll(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	seen := make(map[types.PowerUpType]bool)
	for i := 0; i < 400; i++ {
		seen[RandomPowerUpType(rng)] = true
	}
	if len(seen) != len(types.AllPowerUpTypes) {
		t.Errorf("expected all %d power-up types, saw %d", len(types.AllPowerUpTypes), len(seen))
	}
}
