// Package boss 实现五种 Boss 的状态机
//
// 所有 Boss 通过统一的 Boss 接口对外暴露，碰撞系统和遭遇控制器无需知道具体类型：
//   - Update 推进移动、阶段计时和子目标状态
//   - Shoot 按冷却生成弹体（弹体 ID 由 ProjectileRegistry 分配）
//   - DamageableRegions 返回当前可受击区域（子目标在前，本体在后）
//   - ApplyDamage 对指定区域造成伤害；越界或已摧毁的区域是静默的空操作
//
// 生命周期：Active → Destroying（本体生命值归零）→ Gone（爆炸动画结束）
//
// 数值随同类 Boss 的遭遇次数增长，参见 config.Scaled 与 config.ScaledCooldown。
package boss

import (
	"math/rand"
	"time"

	"github.com/decker502/invaders/pkg/components"
	"github.com/decker502/invaders/pkg/config"
	"github.com/decker502/invaders/pkg/types"
	"github.com/decker502/invaders/pkg/utils"
)

// MainBodyRegionID 本体区域的 ID（所有 Boss 通用）
const MainBodyRegionID = 0

// maxStep 单次 Update 最多推进的时间，避免暂停恢复后瞬移
const maxStep = 100 * time.Millisecond

// State Boss 生命周期状态
type State int

const (
	StateActive     State = iota // 战斗中
	StateDestroying              // 本体已被摧毁，播放爆炸
	StateGone                    // 遭遇结束
)

// DamageResult ApplyDamage 的结果
type DamageResult int

const (
	DamageNoop                DamageResult = iota // 区域不存在、已摧毁或当前不可受击
	DamageHit                                     // 造成伤害但目标存活
	DamageSubTargetDestroyed                      // 子目标（炮塔/手/方块）被摧毁
	DamageMainBodyDestroyed                       // 本体被摧毁，进入 Destroying
)

// Region 可受击区域
// Polygon 非空时使用多边形检测（旋转的魔方方块），否则使用 Rect
type Region struct {
	ID       int
	MainBody bool
	Rect     utils.Rect
	Polygon  []utils.Vec2
}

// HitTest 检查弹体是否命中该区域
//
// 多边形区域使用弹体中心点做射线法检测；
// 激光是一条竖直长条，沿其中线在多边形的纵向范围内采样。
func (r Region) HitTest(p *components.Projectile) bool {
	if len(r.Polygon) < 3 {
		return p.IntersectsRect(r.Rect)
	}

	bounds := utils.PolygonBounds(r.Polygon)
	if !p.Bounds().Intersects(bounds) {
		return false
	}
	cx, cy := p.Center()
	if !p.IsLaser() {
		return utils.PointInPolygon(cx, cy, r.Polygon)
	}

	const samples = 8
	step := bounds.H / samples
	for i := 0; i <= samples; i++ {
		if utils.PointInPolygon(cx, bounds.Y+float64(i)*step, r.Polygon) {
			return true
		}
	}
	return false
}

// Boss 五种 Boss 的统一接口
type Boss interface {
	Type() types.BossType
	Base() *Base
	Update(players []*components.Player, now time.Duration) []components.CombatEvent
	Shoot(players []*components.Player, now time.Duration) []*components.Projectile
	DamageableRegions() []Region
	ApplyDamage(regionID, amount int, now time.Duration) DamageResult
	IsDestructionComplete(now time.Duration) bool
	Snapshot() *Snapshot
}

// Hazard 接触即伤害玩家的形状
type Hazard struct {
	ID     int
	Circle bool
	X, Y   float64 // 圆心（Circle 为 true 时）
	Radius float64
	Rect   utils.Rect

	// Consumable 接触玩家后被移除（小行星）
	Consumable bool
	// NearMissEligible 仍可获得擦身而过经验
	NearMissEligible bool
}

// HazardSource 拥有接触伤害形状的 Boss（小行星带、下压的手）
type HazardSource interface {
	Hazards() []Hazard
	// ConsumeHazard 移除被玩家拦截的危险物，不影响 Boss 生命值
	ConsumeHazard(id int)
	// MarkNearMiss 记录擦身而过，首次返回 true
	MarkNearMiss(id int) bool
}

// AnchorSource 提供锚定激光的锚点（Boss 中心）
type AnchorSource interface {
	Anchor() (x, y float64)
}

// Base 所有 Boss 共享的状态
type Base struct {
	Type                 types.BossType
	X, Y                 float64
	W, H                 float64
	Health               int
	MaxHealth            int
	EncounterIndex       int
	Destroyed            bool
	DestructionStartTime time.Duration
	State                State
	LastUpdate           time.Duration
}

// Rect 本体矩形
func (b *Base) Rect() utils.Rect {
	return utils.Rect{X: b.X, Y: b.Y, W: b.W, H: b.H}
}

// Center 本体中心
func (b *Base) Center() (float64, float64) {
	return b.X + b.W/2, b.Y + b.H/2
}

// HealthRatio 生命值比例，限制在 [0, 1]
func (b *Base) HealthRatio() float64 {
	if b.MaxHealth <= 0 {
		return 0
	}
	return utils.Clamp(float64(b.Health)/float64(b.MaxHealth), 0, 1)
}

// Active 是否仍在战斗
func (b *Base) Active() bool {
	return b.State == StateActive
}

// step 计算距上次 Update 的秒数
func (b *Base) step(now time.Duration) float64 {
	dt := now - b.LastUpdate
	b.LastUpdate = now
	if dt < 0 {
		return 0
	}
	if dt > maxStep {
		dt = maxStep
	}
	return dt.Seconds()
}

// damageMainBody 扣除本体生命值，归零时进入 Destroying
func (b *Base) damageMainBody(amount int, now time.Duration) DamageResult {
	if b.State != StateActive || amount <= 0 {
		return DamageNoop
	}
	b.Health -= amount
	if b.Health > 0 {
		return DamageHit
	}
	b.Health = 0
	b.Destroyed = true
	b.DestructionStartTime = now
	b.State = StateDestroying
	return DamageMainBodyDestroyed
}

// destructionComplete 爆炸动画是否已结束
func (b *Base) destructionComplete(now, duration time.Duration) bool {
	if b.State == StateGone {
		return true
	}
	if !b.Destroyed {
		return false
	}
	if now-b.DestructionStartTime >= duration {
		b.State = StateGone
		return true
	}
	return false
}

// event 创建带 Boss 类型的事件
func (b *Base) event(tag components.EventTag, x, y float64) components.CombatEvent {
	return components.CombatEvent{Tag: tag, X: x, Y: y, BossType: b.Type}
}

// newBase 创建居中于屏幕顶部区域的 Boss 基础状态
func newBase(bt types.BossType, index int, w, h, y float64, health config.Scaled, screenW float64, now time.Duration) Base {
	if index < 1 {
		index = 1
	}
	maxHealth := health.AtInt(index)
	return Base{
		Type:           bt,
		X:              (screenW - w) / 2,
		Y:              y,
		W:              w,
		H:              h,
		Health:         maxHealth,
		MaxHealth:      maxHealth,
		EncounterIndex: index,
		State:          StateActive,
		LastUpdate:     now,
	}
}

// alivePlayers 返回存活的玩家
func alivePlayers(players []*components.Player) []*components.Player {
	result := make([]*components.Player, 0, len(players))
	for _, p := range players {
		if p != nil && p.Alive {
			result = append(result, p)
		}
	}
	return result
}

// pickAlivePlayer 随机选择一个存活玩家，没有则返回 nil
func pickAlivePlayer(players []*components.Player, rng *rand.Rand) *components.Player {
	alive := alivePlayers(players)
	if len(alive) == 0 {
		return nil
	}
	if len(alive) == 1 {
		return alive[0]
	}
	return alive[rng.Intn(len(alive))]
}

// findAlivePlayer 按 ID 查找存活玩家
func findAlivePlayer(players []*components.Player, id int) *components.Player {
	for _, p := range players {
		if p != nil && p.ID == id && p.Alive {
			return p
		}
	}
	return nil
}

// moveToward 以 speed*dt 的步长向目标移动，返回新坐标和是否到达
func moveToward(x, y, tx, ty, speed, dt float64) (float64, float64, bool) {
	dist := utils.Distance(x, y, tx, ty)
	stepLen := speed * dt
	if dist <= stepLen || dist < 0.5 {
		return tx, ty, true
	}
	dx, dy, ok := utils.Normalize(tx-x, ty-y)
	if !ok {
		return tx, ty, true
	}
	return x + dx*stepLen, y + dy*stepLen, false
}
