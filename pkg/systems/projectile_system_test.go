package systems

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/decker502/invaders/pkg/components"
	"github.com/decker502/invaders/pkg/config"
	"github.com/decker502/invaders/pkg/entities"
	"github.com/decker502/invaders/pkg/types"
)

func newSystemsTestConfig() *config.CombatConfig {
	return config.DefaultCombatConfig()
}

func newSystemsTestRand() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

// newTestPlayer 屏幕底部中央的单个玩家
func newTestPlayer(cfg *config.CombatConfig) *components.Player {
	return NewPlayerSystem(cfg).NewPlayers(1)[0]
}

type fixedAnchor struct{ x, y float64 }

func (a fixedAnchor) Anchor() (float64, float64) { return a.x, a.y }

func TestProjectileRegistryIDs(t *testing.T) {
	r := NewProjectileRegistry(newSystemsTestConfig().Screen)

	a := r.Add(&components.Projectile{})
	b := r.Add(&components.Projectile{})
	if a != 1 || b != 2 {
		t.Fatalf("expected IDs 1 and 2, got %d and %d", a, b)
	}
	if !r.Remove(a) {
		t.Fatal("Remove(1) should succeed")
	}
	if r.Remove(a) {
		t.Error("Remove(1) twice should fail")
	}
	if c := r.Add(&components.Projectile{}); c != 3 {
		t.Errorf("IDs must not be reused, got %d", c)
	}
	if r.Len() != 2 {
		t.Errorf("expected 2 projectiles, got %d", r.Len())
	}
}

func TestProjectileRegistryCounts(t *testing.T) {
	cfg := newSystemsTestConfig()
	r := NewProjectileRegistry(cfg.Screen)
	p := newTestPlayer(cfg)

	r.Add(entities.NewPlayerBullet(&cfg.Weapons, p, p.CenterX()))
	r.Add(entities.NewPlayerBullet(&cfg.Weapons, p, p.CenterX()))
	r.Add(entities.NewPlayerLaser(&cfg.Weapons, p, 0))
	r.Add(entities.NewEnemyBullet(&cfg.Weapons, 100, 100))

	if got := r.CountOwned(p.ID); got != 2 {
		t.Errorf("CountOwned should skip lasers: expected 2, got %d", got)
	}
	if got := r.CountLive(types.FactionPlayer); got != 3 {
		t.Errorf("CountLive(player): expected 3, got %d", got)
	}

	r.RemoveFaction(types.FactionEnemy)
	if got := r.CountLive(types.FactionEnemy); got != 0 {
		t.Errorf("RemoveFaction left %d enemy bullets", got)
	}
	r.Clear()
	if r.Len() != 0 {
		t.Errorf("Clear left %d projectiles", r.Len())
	}
}

func TestProjectileAdvance(t *testing.T) {
	cfg := newSystemsTestConfig()

	tests := []struct {
		name     string
		p        *components.Projectile
		dt       float64
		wantX    float64
		wantY    float64
		wantKept bool
	}{
		{
			name:     "直线飞行",
			p:        &components.Projectile{Kind: types.ProjectileStraight, Shape: types.ShapeRect, X: 100, Y: 500, W: 5, H: 15, VY: -600},
			dt:       0.5,
			wantX:    100,
			wantY:    200,
			wantKept: true,
		},
		{
			name:     "离开屏幕顶部被移除",
			p:        &components.Projectile{Kind: types.ProjectileStraight, Shape: types.ShapeRect, X: 100, Y: -60, W: 5, H: 5, VY: -600},
			dt:       0.1,
			wantKept: false,
		},
		{
			name:     "离开屏幕底部被移除",
			p:        &components.Projectile{Kind: types.ProjectileSlow, Shape: types.ShapeCircle, X: 100, Y: 1150, Radius: 10, VY: 200},
			dt:       0.1,
			wantKept: false,
		},
		{
			name:     "屏幕边缘附近保留",
			p:        &components.Projectile{Kind: types.ProjectileStraight, Shape: types.ShapeRect, X: 100, Y: -30, W: 5, H: 5, VY: -10},
			dt:       0.1,
			wantX:    100,
			wantY:    -31,
			wantKept: true,
		},
		{
			name:     "超时被移除",
			p:        &components.Projectile{Kind: types.ProjectileBouncingBall, Shape: types.ShapeCircle, X: 500, Y: 500, Radius: 10, ExpiresAt: time.Second},
			dt:       0.1,
			wantKept: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewProjectileRegistry(cfg.Screen)
			id := r.Add(tt.p)
			r.Advance(time.Second, tt.dt, AdvanceContext{})

			got, ok := r.Get(id)
			if ok != tt.wantKept {
				t.Fatalf("expected kept=%v, got %v", tt.wantKept, ok)
			}
			if !ok {
				return
			}
			if math.Abs(got.X-tt.wantX) > 1e-9 || math.Abs(got.Y-tt.wantY) > 1e-9 {
				t.Errorf("expected (%.2f, %.2f), got (%.2f, %.2f)", tt.wantX, tt.wantY, got.X, got.Y)
			}
		})
	}
}

func TestProjectileHoming(t *testing.T) {
	cfg := newSystemsTestConfig()
	player := newTestPlayer(cfg)
	players := []*components.Player{player}

	t.Run("追踪期内转向玩家", func(t *testing.T) {
		r := NewProjectileRegistry(cfg.Screen)
		// 初始方向竖直向下，玩家在右下方
		p := entities.NewAimedBullet(types.ProjectileHoming, 100, 100, 10, 300, 100, 1000, player.ID, 2*time.Second)
		r.Add(p)
		r.Advance(time.Second, 0.01, AdvanceContext{Players: players})

		if p.VX <= 0 {
			t.Errorf("expected bullet to steer right toward the player, VX=%.2f", p.VX)
		}
		if speed := math.Hypot(p.VX, p.VY); math.Abs(speed-300) > 1e-6 {
			t.Errorf("steering must keep speed 300, got %.4f", speed)
		}
	})

	t.Run("追踪期结束后直线飞行", func(t *testing.T) {
		r := NewProjectileRegistry(cfg.Screen)
		p := entities.NewAimedBullet(types.ProjectileHoming, 100, 100, 10, 300, 100, 1000, player.ID, 500*time.Millisecond)
		r.Add(p)
		r.Advance(time.Second, 0.01, AdvanceContext{Players: players})

		if p.VX != 0 || p.VY != 300 {
			t.Errorf("expected unchanged velocity (0, 300), got (%.2f, %.2f)", p.VX, p.VY)
		}
	})

	t.Run("目标死亡后保持方向", func(t *testing.T) {
		dead := newTestPlayer(cfg)
		dead.Alive = false
		r := NewProjectileRegistry(cfg.Screen)
		p := entities.NewAimedBullet(types.ProjectileHoming, 100, 100, 10, 300, 100, 1000, dead.ID, 2*time.Second)
		r.Add(p)
		r.Advance(time.Second, 0.01, AdvanceContext{Players: []*components.Player{dead}})

		if p.VX != 0 {
			t.Errorf("expected no steering toward a dead player, VX=%.2f", p.VX)
		}
	})
}

func TestProjectileSpin(t *testing.T) {
	cfg := newSystemsTestConfig()
	r := NewProjectileRegistry(cfg.Screen)
	p := &components.Projectile{Kind: types.ProjectileStraight, Shape: types.ShapeRect, X: 500, Y: 500, W: 10, H: 10, Spin: math.Pi}
	r.Add(p)
	r.Advance(0, 0.5, AdvanceContext{})

	if math.Abs(p.Angle-math.Pi/2) > 1e-9 {
		t.Errorf("expected angle π/2, got %.4f", p.Angle)
	}
}

func TestProjectileBounce(t *testing.T) {
	cfg := newSystemsTestConfig()

	tests := []struct {
		name    string
		x, y    float64
		vx, vy  float64
		wantVX  float64
		wantVY  float64
		checkIn bool
	}{
		{name: "左边缘", x: 12, y: 500, vx: -100, vy: 0, wantVX: 100, wantVY: 0},
		{name: "右边缘", x: 1908, y: 500, vx: 100, vy: 0, wantVX: -100, wantVY: 0},
		{name: "顶部", x: 500, y: 12, vx: 0, vy: -100, wantVX: 0, wantVY: 100},
		{name: "底部", x: 500, y: 1068, vx: 0, vy: 100, wantVX: 0, wantVY: -100},
		{name: "角落", x: 12, y: 12, vx: -100, vy: -100, wantVX: 100, wantVY: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewProjectileRegistry(cfg.Screen)
			p := &components.Projectile{
				Kind: types.ProjectileBouncingBall, Shape: types.ShapeCircle,
				X: tt.x, Y: tt.y, Radius: 10, VX: tt.vx, VY: tt.vy, ExpiresAt: time.Hour,
			}
			r.Add(p)
			r.Advance(time.Second, 0.1, AdvanceContext{})

			if r.Len() != 1 {
				t.Fatal("bouncing ball must stay on screen")
			}
			if p.VX != tt.wantVX || p.VY != tt.wantVY {
				t.Errorf("expected velocity (%.0f, %.0f), got (%.0f, %.0f)", tt.wantVX, tt.wantVY, p.VX, p.VY)
			}
			if p.X-p.Radius < 0 || p.X+p.Radius > cfg.Screen.Width || p.Y-p.Radius < 0 || p.Y+p.Radius > cfg.Screen.Height {
				t.Errorf("ball left the screen: (%.1f, %.1f)", p.X, p.Y)
			}
		})
	}
}

func TestPlayerLaserFollowsOwner(t *testing.T) {
	cfg := newSystemsTestConfig()
	player := newTestPlayer(cfg)
	players := []*components.Player{player}
	r := NewProjectileRegistry(cfg.Screen)
	laser := entities.NewPlayerLaser(&cfg.Weapons, player, 0)
	r.Add(laser)

	player.X += 200
	r.Advance(100*time.Millisecond, 0.1, AdvanceContext{Players: players})

	if got, want := laser.X+laser.W/2, player.CenterX(); math.Abs(got-want) > 1e-9 {
		t.Errorf("laser centre: expected %.1f, got %.1f", want, got)
	}
	if laser.Y != 0 || laser.H != player.Y {
		t.Errorf("laser must span from the top to the ship, got Y=%.1f H=%.1f", laser.Y, laser.H)
	}
	if !player.LaserActive {
		t.Error("LaserActive should be set while the laser is alive")
	}

	// 持续时间结束
	r.Advance(cfg.Weapons.LaserDuration.Duration(), 0.1, AdvanceContext{Players: players})
	if r.Len() != 0 {
		t.Error("laser should expire after LaserDuration")
	}
	if player.LaserActive {
		t.Error("LaserActive should be cleared once the laser is gone")
	}
}

func TestPlayerLaserRemovedWhenOwnerDies(t *testing.T) {
	cfg := newSystemsTestConfig()
	player := newTestPlayer(cfg)
	r := NewProjectileRegistry(cfg.Screen)
	r.Add(entities.NewPlayerLaser(&cfg.Weapons, player, 0))

	player.Alive = false
	r.Advance(10*time.Millisecond, 0.01, AdvanceContext{Players: []*components.Player{player}})
	if r.Len() != 0 {
		t.Error("laser of a dead player should be removed")
	}
}

func TestBossLaserFollowsAnchor(t *testing.T) {
	cfg := newSystemsTestConfig()
	r := NewProjectileRegistry(cfg.Screen)
	laser := entities.NewBossLaser(500, 300, 40, cfg.Screen.Height, time.Second, 3*time.Second)
	r.Add(laser)

	r.Advance(100*time.Millisecond, 0.1, AdvanceContext{Anchor: fixedAnchor{x: 700, y: 350}})
	if laser.X != 680 || laser.Y != 350 || laser.H != cfg.Screen.Height-350 {
		t.Errorf("laser should follow the anchor, got X=%.1f Y=%.1f H=%.1f", laser.X, laser.Y, laser.H)
	}

	r.Advance(200*time.Millisecond, 0.1, AdvanceContext{})
	if r.Len() != 0 {
		t.Error("boss laser should be removed when the anchor is gone")
	}
}

func TestProjectileRegistryRestore(t *testing.T) {
	cfg := newSystemsTestConfig()
	r := NewProjectileRegistry(cfg.Screen)

	r.Restore([]*components.Projectile{{ID: 7}, {ID: 3}}, 5)
	if got := r.NextID(); got != 8 {
		t.Errorf("NextID must be above every restored ID: expected 8, got %d", got)
	}
	if id := r.Add(&components.Projectile{}); id != 8 {
		t.Errorf("expected new ID 8, got %d", id)
	}
}
