package boss

import (
	"testing"
	"time"

	"github.com/decker502/invaders/pkg/components"
)

// newQuietField 不会自动生成小行星的小行星带
func newQuietField(t *testing.T, index int) *AsteroidField {
	t.Helper()
	b := NewAsteroidField(index, 0, newTestConfig(), newTestRand())
	b.State().NextSpawnAt = time.Hour
	return b
}

// inject 在指定高度放置 n 颗小行星
func inject(b *AsteroidField, n int, y float64) {
	s := b.State()
	for i := 0; i < n; i++ {
		s.Asteroids = append(s.Asteroids, Asteroid{ID: s.NextID, X: 100 + float64(i), Y: y, Radius: 20, VY: 200})
		s.NextID++
	}
}

func TestAsteroidFieldVictoryAfterEscapes(t *testing.T) {
	cfg := newTestConfig()

	tests := []struct {
		name         string
		escapes      int
		wantComplete bool
		wantHealth   int
	}{
		{"99颗逃逸", 99, false, 1},
		{"100颗逃逸", 100, true, 0},
		{"超过生命值", 150, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newQuietField(t, 1)
			inject(b, tt.escapes, cfg.Screen.Height+100)

			events := b.Update(nil, 10*time.Millisecond)

			if b.Base().Health != tt.wantHealth {
				t.Errorf("health: expected %d, got %d", tt.wantHealth, b.Base().Health)
			}
			if b.IsDestructionComplete(10*time.Millisecond) != tt.wantComplete {
				t.Errorf("IsDestructionComplete: expected %v", tt.wantComplete)
			}
			wantEscaped := min(tt.escapes, cfg.Bosses.AsteroidField.Health.AtInt(1))
			if b.State().Escaped != wantEscaped {
				t.Errorf("escaped: expected %d, got %d", wantEscaped, b.State().Escaped)
			}

			destroyed := 0
			for _, ev := range events {
				if ev.Tag == components.EventBossDestroyed {
					destroyed++
					if ev.ScoreDelta != 0 {
						t.Errorf("asteroid field victory event should carry no score, got %d", ev.ScoreDelta)
					}
				}
			}
			if tt.wantComplete && destroyed != 1 {
				t.Errorf("expected one boss_destroyed event, got %d", destroyed)
			}
			if tt.wantComplete && b.Base().State != StateGone {
				t.Errorf("expected StateGone, got %v", b.Base().State)
			}
		})
	}
}

func TestAsteroidFieldInterceptedDoNotCount(t *testing.T) {
	cfg := newTestConfig()
	b := newQuietField(t, 1)
	inject(b, 10, 500)

	for _, h := range b.Hazards() {
		if !h.Circle || !h.Consumable {
			t.Fatalf("asteroid hazard should be a consumable circle: %+v", h)
		}
		b.ConsumeHazard(h.ID)
	}
	if len(b.Hazards()) != 0 {
		t.Fatal("consumed asteroids should be removed")
	}

	for now := time.Duration(0); now < 20*time.Second; now += 50 * time.Millisecond {
		b.Update(nil, now)
	}
	if b.Base().Health != cfg.Bosses.AsteroidField.Health.AtInt(1) {
		t.Errorf("intercepted asteroids must not reduce health, got %d", b.Base().Health)
	}
	if b.State().Escaped != 0 {
		t.Errorf("expected no escapes, got %d", b.State().Escaped)
	}
}

func TestAsteroidFieldNearMissOnce(t *testing.T) {
	b := newQuietField(t, 1)
	inject(b, 1, 300)
	id := b.State().Asteroids[0].ID

	if !b.MarkNearMiss(id) {
		t.Fatal("first near miss should be awarded")
	}
	if b.MarkNearMiss(id) {
		t.Error("second near miss on the same asteroid should not be awarded")
	}
	if b.MarkNearMiss(id + 100) {
		t.Error("unknown asteroid should not be awarded")
	}
	if h := b.Hazards(); len(h) != 1 || h[0].NearMissEligible {
		t.Errorf("hazard should no longer be near-miss eligible: %+v", h)
	}
}

func TestAsteroidFieldNaturalRun(t *testing.T) {
	cfg := newTestConfig()
	b := NewAsteroidField(1, 0, cfg, newTestRand())

	victory := 0
	var now time.Duration
	for now = 0; now < 10*time.Minute && !b.IsDestructionComplete(now); now += 50 * time.Millisecond {
		for _, ev := range b.Update(nil, now) {
			if ev.Tag == components.EventBossDestroyed {
				victory++
			}
		}
		for _, a := range b.State().Asteroids {
			if a.Radius < cfg.Bosses.AsteroidField.MinRadius || a.Radius > cfg.Bosses.AsteroidField.MaxRadius {
				t.Fatalf("asteroid radius %.1f out of range", a.Radius)
			}
			if a.X-a.Radius < 0 || a.X+a.Radius > cfg.Screen.Width {
				t.Fatalf("asteroid spawned off screen at x=%.1f", a.X)
			}
		}
	}

	if !b.IsDestructionComplete(now) {
		t.Fatal("asteroid field should end once enough asteroids escape")
	}
	if b.State().Escaped != 100 {
		t.Errorf("expected exactly 100 escapes, got %d", b.State().Escaped)
	}
	if victory != 1 {
		t.Errorf("expected one victory event, got %d", victory)
	}
	if len(b.Hazards()) != 0 {
		t.Error("finished field should expose no hazards")
	}
}

func TestAsteroidFieldHealthScaling(t *testing.T) {
	b := NewAsteroidField(2, 0, newTestConfig(), newTestRand())
	if b.Base().MaxHealth != 120 {
		t.Errorf("second encounter health: expected 120, got %d", b.Base().MaxHealth)
	}
	if len(b.DamageableRegions()) != 0 {
		t.Error("asteroid field has no damageable regions")
	}
	if got := b.ApplyDamage(MainBodyRegionID, 10, 0); got != DamageNoop {
		t.Errorf("expected DamageNoop, got %v", got)
	}
}
