package boss

import (
	"math"
	"testing"
	"time"

	"github.com/decker502/invaders/pkg/components"
	"github.com/decker502/invaders/pkg/types"
	"github.com/decker502/invaders/pkg/utils"
)

// destroyOuterSquares 摧毁除 (keepRow, keepCol) 外的所有外围方块；keepRow < 0 表示全部摧毁
func destroyOuterSquares(t *testing.T, b *RubiksCube, keepRow, keepCol int) {
	t.Helper()
	grid := len(b.State().Squares)
	for row := 0; row < grid; row++ {
		for col := 0; col < grid; col++ {
			sq := b.State().Squares[row][col]
			if sq.IsCenter || (row == keepRow && col == keepCol) {
				continue
			}
			if got := b.ApplyDamage(b.regionID(row, col), 1000, 0); got != DamageSubTargetDestroyed {
				t.Fatalf("square (%d,%d): expected DamageSubTargetDestroyed, got %v", row, col, got)
			}
		}
	}
}

func TestRubiksCubeLayout(t *testing.T) {
	cfg := newTestConfig()
	b := NewRubiksCube(1, 0, cfg, newTestRand())
	grid := cfg.Bosses.RubiksCube.GridSize

	if got := b.SquaresRemaining(); got != grid*grid-1 {
		t.Errorf("expected %d outer squares, got %d", grid*grid-1, got)
	}
	if got := len(b.DamageableRegions()); got != grid*grid-1 {
		t.Errorf("expected %d damageable regions, got %d", grid*grid-1, got)
	}
	if hasMainBody(b.DamageableRegions()) {
		t.Error("centre must not be damageable at spawn")
	}

	center := b.State().Squares[grid/2][grid/2]
	if !center.IsCenter || center.Color != types.CubeWhite {
		t.Errorf("centre square should be white, got %+v", center)
	}
	if center.Health != b.Base().Health {
		t.Errorf("centre health %d should mirror boss health %d", center.Health, b.Base().Health)
	}
}

func TestRubiksCubeCenterLockedWhileOuterSquaresLive(t *testing.T) {
	cfg := newTestConfig()
	b := NewRubiksCube(1, 0, cfg, newTestRand())
	grid := cfg.Bosses.RubiksCube.GridSize

	// 保留最后一个角落方块
	destroyOuterSquares(t, b, grid-1, grid-1)

	if b.SquaresRemaining() != 1 {
		t.Fatalf("expected 1 remaining square, got %d", b.SquaresRemaining())
	}
	if hasMainBody(b.DamageableRegions()) {
		t.Fatal("centre listed while an outer square lives")
	}
	if got := b.ApplyDamage(MainBodyRegionID, 1000, 0); got != DamageNoop {
		t.Fatalf("centre damage with an outer square alive: expected DamageNoop, got %v", got)
	}
	centerRegion := b.regionID(grid/2, grid/2)
	if got := b.ApplyDamage(centerRegion, 1000, 0); got != DamageNoop {
		t.Errorf("centre addressed by square id: expected DamageNoop, got %v", got)
	}
	if b.Base().Health != b.Base().MaxHealth {
		t.Error("boss health changed while centre was locked")
	}

	beforeW := utils.PolygonBounds(b.SquarePolygon(grid/2, grid/2)).W

	if got := b.ApplyDamage(b.regionID(grid-1, grid-1), 1000, 0); got != DamageSubTargetDestroyed {
		t.Fatalf("last square: expected DamageSubTargetDestroyed, got %v", got)
	}
	if !b.State().CenterExposed || !hasMainBody(b.DamageableRegions()) {
		t.Fatal("centre must be exposed once the last outer square dies")
	}

	afterW := utils.PolygonBounds(b.SquarePolygon(grid/2, grid/2)).W
	want := beforeW * cfg.Bosses.RubiksCube.CenterScale
	if math.Abs(afterW-want) > 1e-6 {
		t.Errorf("exposed centre width: expected %.2f, got %.2f", want, afterW)
	}

	if got := b.ApplyDamage(MainBodyRegionID, 1, 0); got != DamageHit {
		t.Errorf("exposed centre: expected DamageHit, got %v", got)
	}
	center := b.State().Squares[grid/2][grid/2]
	if center.Health != b.Base().Health {
		t.Errorf("centre health %d should mirror boss health %d", center.Health, b.Base().Health)
	}
}

func TestRubiksCubeRotatedHitTest(t *testing.T) {
	cfg := newTestConfig()
	b := NewRubiksCube(1, 0, cfg, newTestRand())
	b.State().RotationAngle = math.Pi / 4

	shotAt := func(x, y float64) *components.Projectile {
		return &components.Projectile{Kind: types.ProjectileStraight, Shape: types.ShapeRect, X: x - 1, Y: y - 1, W: 2, H: 2}
	}

	// 旋转后的角落方块中心命中该方块
	sx, sy := b.squareCenter(0, 0)
	hit := false
	for _, r := range b.DamageableRegions() {
		if r.ID == b.regionID(0, 0) {
			hit = r.HitTest(shotAt(sx, sy))
		}
	}
	if !hit {
		t.Error("rotated corner square should be hit at its rotated centre")
	}

	// 未旋转时的角落位置已经转出魔方
	ux, uy := b.squareRect(0, 0).Center()
	for _, r := range b.DamageableRegions() {
		if r.HitTest(shotAt(ux, uy)) {
			t.Fatalf("unrotated corner position should miss, but hit region %d", r.ID)
		}
	}
}

func TestRubiksCubePhaseCycle(t *testing.T) {
	cfg := newTestConfig()
	c := cfg.Bosses.RubiksCube
	b := NewRubiksCube(1, 0, cfg, newTestRand())
	b.ForceColor(types.CubeYellow)

	var changes []components.CombatEvent
	end := c.MixedDuration.Duration() + c.AttackDuration.Duration() + time.Second
	sawAttack := false
	for now := time.Duration(0); now <= end; now += 50 * time.Millisecond {
		for _, ev := range b.Update(nil, now) {
			if ev.Tag == components.EventCubePhaseChanged {
				changes = append(changes, ev)
			}
		}
		if b.State().Phase == CubeAttack && !sawAttack {
			sawAttack = true
			grid := c.GridSize
			for row := 0; row < grid; row++ {
				for col := 0; col < grid; col++ {
					sq := b.State().Squares[row][col]
					if sq.IsCenter {
						if sq.Color != types.CubeWhite {
							t.Errorf("unexposed centre should stay white, got %v", sq.Color)
						}
						continue
					}
					if sq.Color != types.CubeYellow {
						t.Fatalf("square (%d,%d) should be yellow in attack phase, got %v", row, col, sq.Color)
					}
				}
			}
		}
	}

	if len(changes) != 2 {
		t.Fatalf("expected mixed→attack→mixed (2 events), got %d", len(changes))
	}
	if changes[0].RegionID != int(types.CubeYellow) {
		t.Errorf("attack event should carry the colour, got %d", changes[0].RegionID)
	}
	if b.State().Phase != CubeMixed {
		t.Errorf("expected mixed phase after attack duration, got %v", b.State().Phase)
	}
}

func TestRubiksCubeMixedPhaseHoldsFire(t *testing.T) {
	cfg := newTestConfig()
	b := NewRubiksCube(1, 0, cfg, newTestRand())
	players := newTestPlayers(cfg)

	for now := time.Duration(0); now < cfg.Bosses.RubiksCube.MixedDuration.Duration(); now += 50 * time.Millisecond {
		b.Update(players, now)
		if shots := b.Shoot(players, now); len(shots) != 0 {
			t.Fatalf("mixed phase should not attack, got %d shots at %v", len(shots), now)
		}
	}
}

// enterAttackWith 直接切换到指定颜色的攻击阶段
func enterAttackWith(b *RubiksCube, color types.CubeColor, now time.Duration) {
	b.ForceColor(color)
	b.enterAttack(now)
}

func TestRubiksCubeAttacks(t *testing.T) {
	cfg := newTestConfig()
	now := 10 * time.Second

	tests := []struct {
		name  string
		color types.CubeColor
		kind  types.ProjectileKind
		count int
	}{
		{"红色旋转方块", types.CubeRed, types.ProjectileSpinningSquare, 1},
		{"蓝色快速子弹", types.CubeBlue, types.ProjectileRapid, 1},
		{"绿色激光", types.CubeGreen, types.ProjectileLaser, 1},
		{"黄色慢球", types.CubeYellow, types.ProjectileBall, cfg.Bosses.RubiksCube.BallsPerVolley},
		{"白色反弹球", types.CubeWhite, types.ProjectileBouncingBall, 1},
		{"橙色火球", types.CubeOrange, types.ProjectileFireball, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewRubiksCube(1, 0, cfg, newTestRand())
			enterAttackWith(b, tt.color, now)

			shots := b.Shoot(newTestPlayers(cfg), now)
			if len(shots) != tt.count {
				t.Fatalf("expected %d shots, got %d", tt.count, len(shots))
			}
			for _, p := range shots {
				if p.Kind != tt.kind {
					t.Errorf("expected kind %v, got %v", tt.kind, p.Kind)
				}
				if p.Faction != types.FactionBoss {
					t.Errorf("expected boss faction, got %v", p.Faction)
				}
				if math.IsNaN(p.VX) || math.IsNaN(p.VY) {
					t.Error("projectile velocity must not be NaN")
				}
			}
		})
	}
}

func TestRubiksCubeGreenLaserWarning(t *testing.T) {
	cfg := newTestConfig()
	c := cfg.Bosses.RubiksCube
	b := NewRubiksCube(1, 0, cfg, newTestRand())
	now := 5 * time.Second
	enterAttackWith(b, types.CubeGreen, now)

	shots := b.Shoot(newTestPlayers(cfg), now)
	if len(shots) != 1 {
		t.Fatalf("expected one laser, got %d", len(shots))
	}
	laser := shots[0]
	if laser.IsArmed(now) {
		t.Error("laser should not be armed during the warning")
	}
	if !laser.IsArmed(now + c.LaserWarning.Duration()) {
		t.Error("laser should arm after the warning")
	}
	if !laser.Anchored {
		t.Error("green laser should be anchored to the cube")
	}

	ax, ay := b.Anchor()
	cx, _ := laser.Center()
	if math.Abs(cx-ax) > 1e-9 || laser.Y != ay {
		t.Errorf("laser should hang from the anchor (%.1f,%.1f), got x=%.1f y=%.1f", ax, ay, cx, laser.Y)
	}
	if laser.Y+laser.H != cfg.Screen.Height {
		t.Errorf("laser should reach the screen bottom, got %.1f", laser.Y+laser.H)
	}
}

func TestRubiksCubeWhiteFiresOncePerPhase(t *testing.T) {
	cfg := newTestConfig()
	b := NewRubiksCube(1, 0, cfg, newTestRand())
	players := newTestPlayers(cfg)
	start := 5 * time.Second
	enterAttackWith(b, types.CubeWhite, start)

	total := 0
	for now := start; now < start+cfg.Bosses.RubiksCube.AttackDuration.Duration(); now += 50 * time.Millisecond {
		total += len(b.Shoot(players, now))
	}
	if total != 1 {
		t.Errorf("expected exactly one bouncing ball per white phase, got %d", total)
	}
}

func TestRubiksCubeOrangeHoldsPosition(t *testing.T) {
	cfg := newTestConfig()
	b := NewRubiksCube(1, 0, cfg, newTestRand())
	enterAttackWith(b, types.CubeOrange, 0)

	x := b.Base().X
	for now := time.Duration(0); now < time.Second; now += 50 * time.Millisecond {
		b.Update(nil, now)
	}
	if b.Base().X != x {
		t.Errorf("cube should not move during orange attack: %.1f → %.1f", x, b.Base().X)
	}
}

func TestRubiksCubeMovementMargins(t *testing.T) {
	cfg := newTestConfig()
	c := cfg.Bosses.RubiksCube
	b := NewRubiksCube(1, 0, cfg, newTestRand())

	for now := time.Duration(0); now < 60*time.Second; now += 50 * time.Millisecond {
		b.Update(nil, now)
		cx, _ := b.Base().Center()
		if cx < c.MoveMargin-1e-6 || cx > cfg.Screen.Width-c.MoveMargin+1e-6 {
			t.Fatalf("cube centre %.1f left the movement band at %v", cx, now)
		}
		if math.IsNaN(b.State().RotationAngle) {
			t.Fatal("rotation angle became NaN")
		}
	}
}
