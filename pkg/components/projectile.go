package components

import (
	"time"

	"github.com/decker502/invaders/pkg/types"
	"github.com/decker502/invaders/pkg/utils"
)

// HitTarget 命中记录中的目标类别
type HitTarget int64

const (
	HitTargetEnemy HitTarget = iota + 1
	HitTargetBossRegion
	HitTargetPlayer
)

// HitKey 把目标类别和 ID 组合成唯一键
func HitKey(target HitTarget, id int) int64 {
	return int64(target)<<32 | int64(uint32(id))
}

// HitRecord 弹体已命中的目标及时间
type HitRecord struct {
	Key int64
	At  time.Duration
}

// Projectile 弹体（玩家子弹/激光、敌人子弹、Boss 各类弹幕）
//
// 几何：Shape 为 ShapeRect 时 (X, Y) 是左上角，W/H 为尺寸；
// 为 ShapeCircle 时 (X, Y) 是圆心，Radius 为半径。
type Projectile struct {
	ID      int
	Kind    types.ProjectileKind
	Faction types.Faction
	OwnerID int // 玩家 ID；敌人/Boss 为 0

	Shape  types.ShapeKind
	X, Y   float64
	W, H   float64
	Radius float64
	VX, VY float64 // 像素/秒

	Damage           int
	PierceRemaining  int
	DamageMultiplier float64 // 发射时捕获的 BossDamageMultiplier
	CanPhaseBarriers bool

	// 按类型使用的运动参数
	Speed          float64
	TargetPlayerID int
	HomingUntil    time.Duration // 之后保持直线飞行
	Angle          float64       // 旋转方块/炮管角度
	Spin           float64       // 弧度/秒
	ArmedAt        time.Duration // 激光预警结束时间；之前不产生伤害
	ExpiresAt      time.Duration // 0 表示不限时
	Anchored       bool          // 激光跟随锚点（玩家或 Boss 中心）

	HitKeys []HitRecord
}

// Bounds 轴对齐包围矩形
func (p *Projectile) Bounds() utils.Rect {
	if p.Shape == types.ShapeCircle {
		return utils.Rect{X: p.X - p.Radius, Y: p.Y - p.Radius, W: p.Radius * 2, H: p.Radius * 2}
	}
	return utils.Rect{X: p.X, Y: p.Y, W: p.W, H: p.H}
}

// Center 几何中心
func (p *Projectile) Center() (float64, float64) {
	if p.Shape == types.ShapeCircle {
		return p.X, p.Y
	}
	return p.X + p.W/2, p.Y + p.H/2
}

// SetCenter 移动到指定中心
func (p *Projectile) SetCenter(cx, cy float64) {
	if p.Shape == types.ShapeCircle {
		p.X, p.Y = cx, cy
		return
	}
	p.X, p.Y = cx-p.W/2, cy-p.H/2
}

// IntersectsRect 与矩形相交（圆形使用圆-矩形测试）
func (p *Projectile) IntersectsRect(r utils.Rect) bool {
	if p.Shape == types.ShapeCircle {
		return utils.CircleIntersectsRect(p.X, p.Y, p.Radius, r)
	}
	return p.Bounds().Intersects(r)
}

// IsLaser 激光束（玩家激光或魔方绿色激光）
func (p *Projectile) IsLaser() bool {
	return p.Kind == types.ProjectileLaser
}

// IsArmed 预警期已结束
func (p *Projectile) IsArmed(now time.Duration) bool {
	return now >= p.ArmedAt
}

// Expired 超过存活时间
func (p *Projectile) Expired(now time.Duration) bool {
	return p.ExpiresAt > 0 && now >= p.ExpiresAt
}

// HasHit 是否已命中过该目标
func (p *Projectile) HasHit(key int64) bool {
	_, ok := p.LastHitAt(key)
	return ok
}

// LastHitAt 最近一次命中该目标的时间
func (p *Projectile) LastHitAt(key int64) (time.Duration, bool) {
	for _, h := range p.HitKeys {
		if h.Key == key {
			return h.At, true
		}
	}
	return 0, false
}

// MarkHit 记录命中
func (p *Projectile) MarkHit(key int64, now time.Duration) {
	for i := range p.HitKeys {
		if p.HitKeys[i].Key == key {
			p.HitKeys[i].At = now
			return
		}
	}
	p.HitKeys = append(p.HitKeys, HitRecord{Key: key, At: now})
}
