package boss

import (
	"math"
	"math/rand"
	"time"

	"github.com/decker502/invaders/pkg/components"
	"github.com/decker502/invaders/pkg/config"
	"github.com/decker502/invaders/pkg/entities"
	"github.com/decker502/invaders/pkg/types"
	"github.com/decker502/invaders/pkg/utils"
)

// spinningSquareSpin 红色阶段旋转方块的自转速度（弧度/秒）
const spinningSquareSpin = 6.0

// CubePhase 魔方阶段
type CubePhase int

const (
	CubeMixed  CubePhase = iota // 颜色随机打乱，不攻击
	CubeAttack                  // 统一颜色，按颜色攻击
)

// Square 魔方上的一个方块
type Square struct {
	Row, Col  int
	Health    int
	MaxHealth int
	Color     types.CubeColor
	IsCenter  bool
	Destroyed bool
}

// RubiksCubeState 魔方的可序列化状态
type RubiksCubeState struct {
	Squares          [][]Square
	RotationAngle    float64 // 弧度，连续旋转
	Phase            CubePhase
	PhaseStarted     time.Duration
	AttackColor      types.CubeColor
	NextShuffleAt    time.Duration
	NextAttackAt     time.Duration
	Direction        float64
	BarrelAngle      float64
	CenterExposed    bool
	ExposedAnnounced bool
	WhiteBallFired   bool
	ForcedColor      types.CubeColor
	HasForcedColor   bool
}

// RubiksCube 魔方
//
// 混合阶段（随机颜色、定时重新打乱、不攻击）与攻击阶段（除中心外统一为一种颜色）交替。
// 方块随魔方整体旋转，受击区域是旋转后的四边形。
// 中心方块是本体，外围方块全部被摧毁后才可受击，届时放大 CenterScale 倍并使用当前攻击颜色。
type RubiksCube struct {
	base    Base
	state   RubiksCubeState
	cfg     *config.RubiksCubeConfig
	screenW float64
	screenH float64
	destroy time.Duration
	rng     *rand.Rand
}

// NewRubiksCube 创建第 index 次遭遇的魔方
func NewRubiksCube(index int, now time.Duration, cfg *config.CombatConfig, rng *rand.Rand) *RubiksCube {
	c := &cfg.Bosses.RubiksCube
	size := float64(c.GridSize) * c.SquareSize
	b := &RubiksCube{
		base:    newBase(types.BossRubiksCube, index, size, size, c.CenterY-size/2, c.Health, cfg.Screen.Width, now),
		cfg:     c,
		screenW: cfg.Screen.Width,
		screenH: cfg.Screen.Height,
		destroy: cfg.Encounter.DestructionDuration.Duration(),
		rng:     rng,
	}

	squareHealth := c.SquareHealth.AtInt(b.base.EncounterIndex)
	center := c.GridSize / 2
	b.state.Squares = make([][]Square, c.GridSize)
	for row := range b.state.Squares {
		b.state.Squares[row] = make([]Square, c.GridSize)
		for col := range b.state.Squares[row] {
			sq := Square{Row: row, Col: col, Health: squareHealth, MaxHealth: squareHealth}
			if row == center && col == center {
				sq.IsCenter = true
				sq.Health = b.base.Health
				sq.MaxHealth = b.base.MaxHealth
				sq.Color = types.CubeWhite
			}
			b.state.Squares[row][col] = sq
		}
	}

	b.state.Direction = 1
	b.enterMixed(now)
	return b
}

// Type 实现 Boss 接口
func (b *RubiksCube) Type() types.BossType { return types.BossRubiksCube }

// Base 实现 Boss 接口
func (b *RubiksCube) Base() *Base { return &b.base }

// State 返回内部状态（渲染和测试使用）
func (b *RubiksCube) State() *RubiksCubeState { return &b.state }

// ForceColor 调试用：之后的攻击阶段固定使用指定颜色
func (b *RubiksCube) ForceColor(color types.CubeColor) {
	b.state.ForcedColor = color
	b.state.HasForcedColor = true
}

// ClearForcedColor 取消 ForceColor
func (b *RubiksCube) ClearForcedColor() {
	b.state.HasForcedColor = false
}

// Anchor 绿色激光锚定在魔方中心
func (b *RubiksCube) Anchor() (float64, float64) {
	return b.base.Center()
}

// Update 旋转、移动并推进阶段计时
func (b *RubiksCube) Update(players []*components.Player, now time.Duration) []components.CombatEvent {
	dt := b.base.step(now)
	if !b.base.Active() {
		return nil
	}
	idx := b.base.EncounterIndex

	b.state.RotationAngle = math.Mod(b.state.RotationAngle+b.cfg.RotationSpeed.At(idx)*dt, 2*math.Pi)

	// 橙色阶段原地喷射
	if !(b.state.Phase == CubeAttack && b.state.AttackColor == types.CubeOrange) {
		b.move(b.cfg.MoveSpeed.At(idx) * dt)
	}

	var events []components.CombatEvent
	cx, cy := b.base.Center()

	switch b.state.Phase {
	case CubeMixed:
		if now-b.state.PhaseStarted >= b.cfg.MixedDuration.Duration() {
			b.enterAttack(now)
			ev := b.base.event(components.EventCubePhaseChanged, cx, cy)
			ev.RegionID = int(b.state.AttackColor)
			events = append(events, ev)
		} else if now >= b.state.NextShuffleAt {
			b.shuffle()
			b.state.NextShuffleAt = now + b.cfg.ShuffleInterval.Duration()
		}
	case CubeAttack:
		if now-b.state.PhaseStarted >= b.cfg.AttackDuration.Duration() {
			b.enterMixed(now)
			events = append(events, b.base.event(components.EventCubePhaseChanged, cx, cy))
		}
	}

	if b.state.CenterExposed && !b.state.ExposedAnnounced {
		b.state.ExposedAnnounced = true
		events = append(events, b.base.event(components.EventBossMainBodyExposed, cx, cy))
	}
	return events
}

// move 魔方中心限制在 [MoveMargin, screenW-MoveMargin]
func (b *RubiksCube) move(distance float64) {
	minCX := b.cfg.MoveMargin
	maxCX := b.screenW - b.cfg.MoveMargin
	if maxCX <= minCX {
		return
	}
	cx := b.base.X + b.base.W/2 + b.state.Direction*distance
	if cx <= minCX {
		cx = minCX
		b.state.Direction = 1
	} else if cx >= maxCX {
		cx = maxCX
		b.state.Direction = -1
	}
	b.base.X = cx - b.base.W/2
}

func (b *RubiksCube) enterMixed(now time.Duration) {
	b.state.Phase = CubeMixed
	b.state.PhaseStarted = now
	b.state.NextShuffleAt = now + b.cfg.ShuffleInterval.Duration()
	b.shuffle()
}

func (b *RubiksCube) enterAttack(now time.Duration) {
	color := types.AllCubeColors[b.rng.Intn(len(types.AllCubeColors))]
	if b.state.HasForcedColor {
		color = b.state.ForcedColor
	}
	b.state.Phase = CubeAttack
	b.state.PhaseStarted = now
	b.state.AttackColor = color
	b.state.NextAttackAt = now
	b.state.WhiteBallFired = false

	for row := range b.state.Squares {
		for col := range b.state.Squares[row] {
			sq := &b.state.Squares[row][col]
			if !sq.IsCenter || b.state.CenterExposed {
				sq.Color = color
			}
		}
	}
}

// shuffle 外围方块随机着色
func (b *RubiksCube) shuffle() {
	for row := range b.state.Squares {
		for col := range b.state.Squares[row] {
			sq := &b.state.Squares[row][col]
			if sq.IsCenter || sq.Destroyed {
				continue
			}
			sq.Color = types.AllCubeColors[b.rng.Intn(len(types.AllCubeColors))]
		}
	}
}

// squareRect 未旋转时的方块矩形
func (b *RubiksCube) squareRect(row, col int) utils.Rect {
	s := b.cfg.SquareSize
	return utils.Rect{X: b.base.X + float64(col)*s, Y: b.base.Y + float64(row)*s, W: s, H: s}
}

// squarePolygon 旋转后的方块四边形
func (b *RubiksCube) squarePolygon(row, col int) []utils.Vec2 {
	cx, cy := b.base.Center()
	return utils.RotatedRectCorners(b.squareRect(row, col), cx, cy, b.state.RotationAngle)
}

// centerPolygon 本体四边形（暴露后放大）
func (b *RubiksCube) centerPolygon() []utils.Vec2 {
	cx, cy := b.base.Center()
	size := b.cfg.SquareSize
	if b.state.CenterExposed {
		size *= b.cfg.CenterScale
	}
	return utils.RotatedRectCorners(utils.NewRectFromCenter(cx, cy, size, size), cx, cy, b.state.RotationAngle)
}

// SquarePolygon 返回方块当前的四边形（渲染使用）
func (b *RubiksCube) SquarePolygon(row, col int) []utils.Vec2 {
	if row < 0 || row >= len(b.state.Squares) || col < 0 || col >= len(b.state.Squares[row]) {
		return nil
	}
	if b.state.Squares[row][col].IsCenter {
		return b.centerPolygon()
	}
	return b.squarePolygon(row, col)
}

// squareCenter 旋转后的方块中心
func (b *RubiksCube) squareCenter(row, col int) (float64, float64) {
	cx, cy := b.base.Center()
	lx, ly := b.squareRect(row, col).Center()
	return utils.RotatePoint(lx, ly, cx, cy, b.state.RotationAngle)
}

// randomMuzzle 随机选择一个存活的外围方块作为发射点，没有则使用中心
func (b *RubiksCube) randomMuzzle() (float64, float64) {
	var alive [][2]int
	for row := range b.state.Squares {
		for col := range b.state.Squares[row] {
			sq := &b.state.Squares[row][col]
			if !sq.IsCenter && !sq.Destroyed {
				alive = append(alive, [2]int{row, col})
			}
		}
	}
	if len(alive) == 0 {
		return b.base.Center()
	}
	pick := alive[b.rng.Intn(len(alive))]
	return b.squareCenter(pick[0], pick[1])
}

// Shoot 攻击阶段按当前颜色发射
func (b *RubiksCube) Shoot(players []*components.Player, now time.Duration) []*components.Projectile {
	if !b.base.Active() || b.state.Phase != CubeAttack || now < b.state.NextAttackAt {
		return nil
	}
	idx := b.base.EncounterIndex
	cx, cy := b.base.Center()
	c := b.cfg

	switch b.state.AttackColor {
	case types.CubeRed:
		b.state.NextAttackAt = now + c.RedCooldown.At(idx)
		target := pickAlivePlayer(players, b.rng)
		if target == nil {
			return nil
		}
		sx, sy := b.randomMuzzle()
		return []*components.Projectile{
			entities.NewSpinningSquare(sx, sy, c.SpinningSize, c.HomingSpeed.At(idx), spinningSquareSpin, target, now+c.HomingDuration.Duration()),
		}

	case types.CubeBlue:
		b.state.NextAttackAt = now + c.BlueCooldown.At(idx)
		target := pickAlivePlayer(players, b.rng)
		if target == nil {
			return nil
		}
		sx, sy := b.randomMuzzle()
		return []*components.Projectile{
			entities.NewRapidBullet(sx, sy, c.RapidSize, c.RapidSpeed.At(idx), target, now+c.HomingDuration.Duration()/2),
		}

	case types.CubeGreen:
		b.state.NextAttackAt = now + c.GreenCooldown.At(idx)
		armedAt := now + c.LaserWarning.Duration()
		return []*components.Projectile{
			entities.NewBossLaser(cx, cy, c.LaserWidth, b.screenH, armedAt, armedAt+c.LaserBeam.Duration()),
		}

	case types.CubeYellow:
		b.state.NextAttackAt = now + c.YellowCooldown.At(idx)
		shots := make([]*components.Projectile, 0, c.BallsPerVolley)
		bottom := b.base.Y + b.base.H
		for i := 0; i < c.BallsPerVolley; i++ {
			x := b.base.X + b.rng.Float64()*b.base.W
			shots = append(shots, entities.NewBall(x, bottom, c.BallRadius, c.BallSpeed))
		}
		return shots

	case types.CubeWhite:
		// 每个攻击阶段只有一个反弹球
		b.state.NextAttackAt = b.state.PhaseStarted + c.AttackDuration.Duration()
		if b.state.WhiteBallFired {
			return nil
		}
		b.state.WhiteBallFired = true
		dx, dy := -0.5+b.rng.Float64(), 1.0
		if target := pickAlivePlayer(players, b.rng); target != nil {
			dx, dy = target.CenterX()-cx, target.Y-cy
		}
		return []*components.Projectile{
			entities.NewBouncingBall(cx, cy, c.BouncingRadius, c.BouncingSpeed, dx, dy, now+c.BouncingLife.Duration()),
		}

	case types.CubeOrange:
		b.state.NextAttackAt = now + c.OrangeCooldown.At(idx)
		angle := b.state.BarrelAngle
		b.state.BarrelAngle = math.Mod(b.state.BarrelAngle+c.BarrelSpin, 2*math.Pi)
		return []*components.Projectile{
			entities.NewFireball(cx, cy, c.FireballRadius, c.FireballSpeed, math.Cos(angle), math.Sin(angle)),
		}
	}
	return nil
}

// regionID 方块的区域 ID（行优先，从 1 开始）
func (b *RubiksCube) regionID(row, col int) int {
	return row*b.cfg.GridSize + col + 1
}

// DamageableRegions 存活的外围方块（旋转四边形）；中心只在暴露后出现
func (b *RubiksCube) DamageableRegions() []Region {
	if !b.base.Active() {
		return nil
	}
	var regions []Region
	for row := range b.state.Squares {
		for col := range b.state.Squares[row] {
			sq := &b.state.Squares[row][col]
			if sq.IsCenter || sq.Destroyed {
				continue
			}
			poly := b.squarePolygon(row, col)
			regions = append(regions, Region{ID: b.regionID(row, col), Rect: utils.PolygonBounds(poly), Polygon: poly})
		}
	}
	if b.state.CenterExposed {
		poly := b.centerPolygon()
		regions = append(regions, Region{ID: MainBodyRegionID, MainBody: true, Rect: utils.PolygonBounds(poly), Polygon: poly})
	}
	return regions
}

// ApplyDamage 区域 0 为中心，其余为 row*GridSize+col+1
func (b *RubiksCube) ApplyDamage(regionID, amount int, now time.Duration) DamageResult {
	if !b.base.Active() {
		return DamageNoop
	}
	grid := b.cfg.GridSize
	center := &b.state.Squares[grid/2][grid/2]

	if regionID == MainBodyRegionID {
		if !b.state.CenterExposed {
			return DamageNoop
		}
		result := b.base.damageMainBody(amount, now)
		center.Health = b.base.Health
		if result == DamageMainBodyDestroyed {
			center.Destroyed = true
		}
		return result
	}

	i := regionID - 1
	if i < 0 || i >= grid*grid {
		return DamageNoop
	}
	sq := &b.state.Squares[i/grid][i%grid]
	if sq.IsCenter || sq.Destroyed || amount <= 0 {
		return DamageNoop
	}

	sq.Health -= amount
	if sq.Health > 0 {
		return DamageHit
	}
	sq.Health = 0
	sq.Destroyed = true

	if b.SquaresRemaining() == 0 {
		b.state.CenterExposed = true
		if b.state.Phase == CubeAttack {
			center.Color = b.state.AttackColor
		}
	}
	return DamageSubTargetDestroyed
}

// SquaresRemaining 存活的外围方块数
func (b *RubiksCube) SquaresRemaining() int {
	n := 0
	for row := range b.state.Squares {
		for col := range b.state.Squares[row] {
			sq := &b.state.Squares[row][col]
			if !sq.IsCenter && !sq.Destroyed {
				n++
			}
		}
	}
	return n
}

// IsDestructionComplete 实现 Boss 接口
func (b *RubiksCube) IsDestructionComplete(now time.Duration) bool {
	return b.base.destructionComplete(now, b.destroy)
}

// Snapshot 实现 Boss 接口
func (b *RubiksCube) Snapshot() *Snapshot {
	state := b.state
	state.Squares = copySquares(b.state.Squares)
	return &Snapshot{Type: types.BossRubiksCube, Base: b.base, RubiksCube: &state}
}

func copySquares(src [][]Square) [][]Square {
	dst := make([][]Square, len(src))
	for i := range src {
		dst[i] = append([]Square(nil), src[i]...)
	}
	return dst
}
