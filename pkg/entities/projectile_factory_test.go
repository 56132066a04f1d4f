package entities

import (
	"math"
	"testing"
	"time"

	"github.com/decker502/invaders/pkg/components"
	"github.com/decker502/invaders/pkg/config"
	"github.com/decker502/invaders/pkg/types"
)

func newTestOwner() *components.Player {
	return components.NewPlayer(1, 100, 900, 60, 45, 3)
}

func TestNewPlayerBulletCapturesModifiers(t *testing.T) {
	cfg := config.DefaultCombatConfig()
	owner := newTestOwner()
	owner.Modifiers.PierceHits = 2
	owner.Modifiers.BulletLengthMultiplier = 2
	owner.Modifiers.BossDamageMultiplier = 1.5
	owner.Modifiers.CanPhaseBarriers = true

	p := NewPlayerBullet(&cfg.Weapons, owner, owner.CenterX())

	if p.Faction != types.FactionPlayer || p.OwnerID != owner.ID {
		t.Errorf("expected player faction owned by %d, got %v/%d", owner.ID, p.Faction, p.OwnerID)
	}
	if p.PierceRemaining != 2 {
		t.Errorf("PierceRemaining: expected 2, got %d", p.PierceRemaining)
	}
	if p.H != cfg.Weapons.BulletHeight*2 {
		t.Errorf("H: expected %v, got %v", cfg.Weapons.BulletHeight*2, p.H)
	}
	if p.DamageMultiplier != 1.5 {
		t.Errorf("DamageMultiplier: expected 1.5, got %v", p.DamageMultiplier)
	}
	if !p.CanPhaseBarriers {
		t.Error("CanPhaseBarriers: expected true")
	}
	if p.VY >= 0 {
		t.Errorf("player bullet should move up, VY=%v", p.VY)
	}
	if p.Y+p.H != owner.Y {
		t.Errorf("bullet should start at the ship's top edge, bottom=%v ship=%v", p.Y+p.H, owner.Y)
	}

	// 发射后修改升级不影响已发射的子弹
	owner.Modifiers.BossDamageMultiplier = 3
	if p.DamageMultiplier != 1.5 {
		t.Error("bullet should keep the multiplier captured at spawn")
	}
}

func TestNewPlayerLaser(t *testing.T) {
	cfg := config.DefaultCombatConfig()
	owner := newTestOwner()
	now := 5 * time.Second

	p := NewPlayerLaser(&cfg.Weapons, owner, now)

	if !p.IsLaser() || !p.Anchored {
		t.Error("expected anchored laser")
	}
	if !p.IsArmed(now) {
		t.Error("player laser should be armed immediately")
	}
	if p.ExpiresAt != now+time.Second {
		t.Errorf("ExpiresAt: expected %v, got %v", now+time.Second, p.ExpiresAt)
	}
	if p.H != owner.Y {
		t.Errorf("laser should span from top to ship, H=%v", p.H)
	}
}

func TestAimedVelocityZeroVector(t *testing.T) {
	p := NewAimedBullet(types.ProjectileHoming, 100, 100, 10, 300, 100, 100, 1, 0)
	if math.IsNaN(p.VX) || math.IsNaN(p.VY) {
		t.Fatal("coincident source and target must not produce NaN")
	}
	if p.VX != 0 || p.VY != 300 {
		t.Errorf("expected default downward velocity (0,300), got (%v,%v)", p.VX, p.VY)
	}

	f := NewFireball(0, 0, 5, 100, 0, 0)
	if f.VX != 0 || f.VY != 100 {
		t.Errorf("fireball with zero direction: expected (0,100), got (%v,%v)", f.VX, f.VY)
	}
}

func TestNewLargeBulletSpread(t *testing.T) {
	straight := NewLargeBullet(0, 0, 20, 100, 0)
	if math.Abs(straight.VX) > 1e-9 || math.Abs(straight.VY-100) > 1e-9 {
		t.Errorf("angle 0 should go straight down, got (%v,%v)", straight.VX, straight.VY)
	}
	left := NewLargeBullet(0, 0, 20, 100, -math.Pi/6)
	if left.VX >= 0 {
		t.Errorf("negative angle should drift left, VX=%v", left.VX)
	}
}

func TestNewBossLaser(t *testing.T) {
	p := NewBossLaser(500, 300, 40, 1080, time.Second, 2*time.Second)
	if p.X != 480 || p.Y != 300 || p.H != 780 {
		t.Errorf("unexpected laser geometry: %+v", p.Bounds())
	}
	if p.IsArmed(500 * time.Millisecond) {
		t.Error("boss laser should be inert during warning")
	}
	if p.Faction != types.FactionBoss {
		t.Errorf("expected boss faction, got %v", p.Faction)
	}
}
