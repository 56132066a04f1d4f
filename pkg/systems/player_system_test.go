package systems

import (
	"math"
	"sort"
	"testing"
	"time"

	"github.com/decker502/invaders/pkg/components"
	"github.com/decker502/invaders/pkg/types"
)

func TestNewPlayers(t *testing.T) {
	cfg := newSystemsTestConfig()
	s := NewPlayerSystem(cfg)
	wantY := cfg.Screen.Height - cfg.Player.BottomMargin - cfg.Player.Height

	tests := []struct {
		name        string
		count       int
		wantCenters []float64
	}{
		{name: "单人居中", count: 1, wantCenters: []float64{960}},
		{name: "双人对称", count: 2, wantCenters: []float64{960 - cfg.Player.CoopSpacing/2, 960 + cfg.Player.CoopSpacing/2}},
		{name: "数量为 0 时创建一人", count: 0, wantCenters: []float64{960}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			players := s.NewPlayers(tt.count)
			if len(players) != len(tt.wantCenters) {
				t.Fatalf("expected %d players, got %d", len(tt.wantCenters), len(players))
			}
			for i, p := range players {
				if p.ID != i+1 {
					t.Errorf("player %d: expected ID %d, got %d", i, i+1, p.ID)
				}
				if math.Abs(p.CenterX()-tt.wantCenters[i]) > 1e-9 || p.Y != wantY {
					t.Errorf("player %d: expected centre (%.1f, %.1f), got (%.1f, %.1f)", i, tt.wantCenters[i], wantY, p.CenterX(), p.Y)
				}
				if p.Lives != cfg.Player.StartLives || !p.Alive {
					t.Errorf("player %d: expected %d lives", i, cfg.Player.StartLives)
				}
			}
		})
	}
}

func TestPlayerMovementClamped(t *testing.T) {
	cfg := newSystemsTestConfig()
	s := NewPlayerSystem(cfg)
	r := NewProjectileRegistry(cfg.Screen)

	tests := []struct {
		name  string
		moveX float64
		dt    float64
		wantX float64
	}{
		{name: "向右移动", moveX: 1, dt: 0.1, wantX: 930 + cfg.Player.Speed*0.1},
		{name: "超出范围的输入被截断", moveX: 3, dt: 0.1, wantX: 930 + cfg.Player.Speed*0.1},
		{name: "停在右边缘", moveX: 1, dt: 10, wantX: cfg.Screen.Width - cfg.Player.Width},
		{name: "停在左边缘", moveX: -1, dt: 10, wantX: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			players := s.NewPlayers(1)
			s.Apply(0, tt.dt, players, []components.PlayerIntent{{PlayerID: 1, MoveX: tt.moveX}}, r)
			if math.Abs(players[0].X-tt.wantX) > 1e-9 {
				t.Errorf("expected x=%.1f, got %.1f", tt.wantX, players[0].X)
			}
		})
	}
}

func TestPlayerShootCooldown(t *testing.T) {
	cfg := newSystemsTestConfig()
	s := NewPlayerSystem(cfg)
	shoot := []components.PlayerIntent{{PlayerID: 1, Shoot: true}}
	normal := cfg.Weapons.ShootCooldown.Duration()
	rapid := cfg.Weapons.RapidFireCooldown.Duration()

	t.Run("普通冷却", func(t *testing.T) {
		players := s.NewPlayers(1)
		r := NewProjectileRegistry(cfg.Screen)
		steps := []struct {
			at   time.Duration
			want int
		}{{0, 1}, {normal / 2, 1}, {normal, 2}}
		for _, st := range steps {
			s.Apply(st.at, 0, players, shoot, r)
			if r.Len() != st.want {
				t.Fatalf("at %v: expected %d bullets, got %d", st.at, st.want, r.Len())
			}
		}
	})

	t.Run("快速射击缩短冷却", func(t *testing.T) {
		players := s.NewPlayers(1)
		players[0].ActivatePowerUp(types.PowerUpRapidFire, 0, time.Hour)
		r := NewProjectileRegistry(cfg.Screen)
		s.Apply(0, 0, players, shoot, r)
		s.Apply(rapid, 0, players, shoot, r)
		if r.Len() != 2 {
			t.Errorf("expected 2 bullets with rapid fire, got %d", r.Len())
		}
	})
}

func TestPlayerAmmoCapacity(t *testing.T) {
	cfg := newSystemsTestConfig()
	s := NewPlayerSystem(cfg)
	players := s.NewPlayers(1)
	players[0].Modifiers.AmmoCapacity = 2
	r := NewProjectileRegistry(cfg.Screen)
	shoot := []components.PlayerIntent{{PlayerID: 1, Shoot: true}}
	cooldown := cfg.Weapons.ShootCooldown.Duration()

	for i := 0; i < 4; i++ {
		s.Apply(time.Duration(i)*cooldown, 0, players, shoot, r)
	}
	if r.Len() != 2 {
		t.Fatalf("expected in-flight bullets capped at 2, got %d", r.Len())
	}

	// 子弹离场后可以继续射击
	r.Clear()
	events := s.Apply(10*cooldown, 0, players, shoot, r)
	if len(events) != 1 || r.Len() != 1 {
		t.Errorf("expected to fire again after bullets left, got %d bullets", r.Len())
	}
}

func TestPlayerVolley(t *testing.T) {
	cfg := newSystemsTestConfig()
	w := cfg.Weapons

	tests := []struct {
		name       string
		extra      bool
		multiShot  bool
		wantOffset []float64
	}{
		{name: "单发", wantOffset: []float64{0}},
		{name: "额外子弹", extra: true, wantOffset: []float64{-w.ExtraBulletOffset, w.ExtraBulletOffset}},
		{name: "三连发", multiShot: true, wantOffset: []float64{-w.MultiShotSpread, 0, w.MultiShotSpread}},
		{name: "额外子弹加三连发", extra: true, multiShot: true,
			wantOffset: []float64{-w.MultiShotSpread, -w.ExtraBulletOffset, w.ExtraBulletOffset, w.MultiShotSpread}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewPlayerSystem(cfg)
			players := s.NewPlayers(1)
			p := players[0]
			p.Modifiers.HasExtraBullet = tt.extra
			if tt.multiShot {
				p.ActivatePowerUp(types.PowerUpMultiShot, 0, time.Hour)
			}
			r := NewProjectileRegistry(cfg.Screen)

			events := s.Apply(0, 0, players, []components.PlayerIntent{{PlayerID: 1, Shoot: true}}, r)
			if len(events) != 1 || events[0].Tag != components.EventPlayerShot || events[0].RegionID != len(tt.wantOffset) {
				t.Fatalf("expected one player_shot event with %d bullets, got %v", len(tt.wantOffset), events)
			}

			var offsets []float64
			for _, b := range r.All() {
				cx, _ := b.Center()
				offsets = append(offsets, cx-p.CenterX())
			}
			sort.Float64s(offsets)
			if len(offsets) != len(tt.wantOffset) {
				t.Fatalf("expected %d bullets, got %d", len(tt.wantOffset), len(offsets))
			}
			for i := range offsets {
				if math.Abs(offsets[i]-tt.wantOffset[i]) > 1e-9 {
					t.Errorf("bullet %d: expected offset %.1f, got %.1f", i, tt.wantOffset[i], offsets[i])
				}
			}
		})
	}
}

func TestPlayerLaser(t *testing.T) {
	cfg := newSystemsTestConfig()
	s := NewPlayerSystem(cfg)
	players := s.NewPlayers(1)
	p := players[0]
	p.ActivatePowerUp(types.PowerUpLaser, 0, 0)
	r := NewProjectileRegistry(cfg.Screen)
	shoot := []components.PlayerIntent{{PlayerID: 1, Shoot: true}}

	events := s.Apply(0, 0, players, shoot, r)
	if len(events) != 1 || events[0].Tag != components.EventLaserFired {
		t.Fatalf("expected a laser_fired event, got %v", events)
	}
	if p.HasLaser || !p.LaserActive {
		t.Errorf("laser pickup should be consumed and the beam active: HasLaser=%v LaserActive=%v", p.HasLaser, p.LaserActive)
	}
	if r.Len() != 1 || !r.All()[0].IsLaser() {
		t.Fatal("expected a single laser projectile")
	}

	// 激光在场时再拿到激光道具不能再次发射
	p.HasLaser = true
	if events := s.Apply(time.Hour, 0, players, shoot, r); len(events) != 0 || r.Len() != 1 {
		t.Errorf("second laser must wait until the first is gone, got %d projectiles", r.Len())
	}
}

func TestDeadPlayerIgnoresIntents(t *testing.T) {
	cfg := newSystemsTestConfig()
	s := NewPlayerSystem(cfg)
	players := s.NewPlayers(1)
	players[0].Alive = false
	x := players[0].X
	r := NewProjectileRegistry(cfg.Screen)

	s.Apply(0, 1, players, []components.PlayerIntent{{PlayerID: 1, MoveX: 1, Shoot: true}}, r)
	if players[0].X != x || r.Len() != 0 {
		t.Error("dead player must neither move nor shoot")
	}
}

func TestPlayerPowerUpExpiry(t *testing.T) {
	cfg := newSystemsTestConfig()
	s := NewPlayerSystem(cfg)
	players := s.NewPlayers(1)
	players[0].ActivatePowerUp(types.PowerUpInvincibility, 0, time.Second)

	if events := s.Expire(500*time.Millisecond, players); len(events) != 0 {
		t.Fatalf("nothing should expire yet, got %v", events)
	}
	events := s.Expire(time.Second, players)
	if len(events) != 1 || events[0].Tag != components.EventPowerUpExpired || events[0].RegionID != int(types.PowerUpInvincibility) {
		t.Errorf("expected one power_up_expired event for invincibility, got %v", events)
	}
	if players[0].IsImmune(time.Second) {
		t.Error("invincibility should be gone")
	}
}
