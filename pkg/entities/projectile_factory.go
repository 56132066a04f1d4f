package entities

import (
	"math"
	"time"

	"github.com/decker502/invaders/pkg/components"
	"github.com/decker502/invaders/pkg/config"
	"github.com/decker502/invaders/pkg/types"
	"github.com/decker502/invaders/pkg/utils"
)

// NewPlayerBullet 创建玩家子弹
// 子弹从飞船顶部发射，竖直向上飞行，并捕获发射者当前的升级状态
//
// 参数:
//   - weapons: 武器参数
//   - owner: 发射者
//   - centerX: 子弹中心 X（三连发/额外子弹时有水平偏移）
//
// 返回:
//   - *components.Projectile: 未分配 ID 的子弹，由 ProjectileRegistry.Add 分配
func NewPlayerBullet(weapons *config.WeaponConfig, owner *components.Player, centerX float64) *components.Projectile {
	mods := owner.Modifiers
	h := mods.BulletHeight(weapons.BulletHeight)
	return &components.Projectile{
		Kind:             types.ProjectileStraight,
		Faction:          types.FactionPlayer,
		OwnerID:          owner.ID,
		Shape:            types.ShapeRect,
		X:                centerX - weapons.BulletWidth/2,
		Y:                owner.Y - h,
		W:                weapons.BulletWidth,
		H:                h,
		VY:               -weapons.BulletSpeed,
		Speed:            weapons.BulletSpeed,
		Damage:           weapons.BulletDamage,
		PierceRemaining:  mods.PierceHits,
		DamageMultiplier: mods.EffectiveBossDamageMultiplier(),
		CanPhaseBarriers: mods.CanPhaseBarriers,
	}
}

// NewPlayerLaser 创建玩家激光
// 激光从飞船顶部延伸到屏幕顶端，跟随发射者移动，持续 LaserDuration
func NewPlayerLaser(weapons *config.WeaponConfig, owner *components.Player, now time.Duration) *components.Projectile {
	mods := owner.Modifiers
	return &components.Projectile{
		Kind:             types.ProjectileLaser,
		Faction:          types.FactionPlayer,
		OwnerID:          owner.ID,
		Shape:            types.ShapeRect,
		X:                owner.CenterX() - weapons.LaserWidth/2,
		Y:                0,
		W:                weapons.LaserWidth,
		H:                math.Max(owner.Y, 0),
		Damage:           weapons.LaserDamage,
		DamageMultiplier: mods.EffectiveBossDamageMultiplier(),
		CanPhaseBarriers: true,
		ArmedAt:          now,
		ExpiresAt:        now + weapons.LaserDuration.Duration(),
		Anchored:         true,
	}
}

// NewEnemyBullet 创建普通敌人子弹（竖直向下）
func NewEnemyBullet(weapons *config.WeaponConfig, centerX, y float64) *components.Projectile {
	return &components.Projectile{
		Kind:    types.ProjectileStraight,
		Faction: types.FactionEnemy,
		Shape:   types.ShapeRect,
		X:       centerX - weapons.EnemyBulletWidth/2,
		Y:       y,
		W:       weapons.EnemyBulletWidth,
		H:       weapons.EnemyBulletHeight,
		VY:      weapons.EnemyBulletSpeed,
		Speed:   weapons.EnemyBulletSpeed,
		Damage:  1,
	}
}

// aimedVelocity 计算从 (x, y) 指向目标的速度
// 起点与目标重合时竖直向下
func aimedVelocity(x, y, tx, ty, speed float64) (float64, float64) {
	dx, dy := utils.DirectionOr(x, y, tx, ty, 0, 1)
	return dx * speed, dy * speed
}

// NewAimedBullet 创建瞄准目标点的方形 Boss 子弹（炮塔）
// 在 homingUntil 之前持续修正方向追踪 targetPlayerID
func NewAimedBullet(kind types.ProjectileKind, centerX, centerY, size, speed, targetX, targetY float64, targetPlayerID int, homingUntil time.Duration) *components.Projectile {
	vx, vy := aimedVelocity(centerX, centerY, targetX, targetY, speed)
	return &components.Projectile{
		Kind:           kind,
		Faction:        types.FactionBoss,
		Shape:          types.ShapeRect,
		X:              centerX - size/2,
		Y:              centerY - size/2,
		W:              size,
		H:              size,
		VX:             vx,
		VY:             vy,
		Speed:          speed,
		Damage:         1,
		TargetPlayerID: targetPlayerID,
		HomingUntil:    homingUntil,
	}
}

// NewLargeBullet 创建大子弹（炮塔飞碟本体暴露后的扇形弹幕）
// angle 为相对竖直向下方向的偏转角（弧度）
func NewLargeBullet(centerX, centerY, size, speed, angle float64) *components.Projectile {
	return &components.Projectile{
		Kind:    types.ProjectileLarge,
		Faction: types.FactionBoss,
		Shape:   types.ShapeRect,
		X:       centerX - size/2,
		Y:       centerY - size/2,
		W:       size,
		H:       size,
		VX:      math.Sin(angle) * speed,
		VY:      math.Cos(angle) * speed,
		Speed:   speed,
		Damage:  1,
	}
}

// NewFireball 创建火球，沿 (dirX, dirY) 方向飞行
// 方向向量为零时竖直向下
func NewFireball(centerX, centerY, radius, speed, dirX, dirY float64) *components.Projectile {
	dx, dy, ok := utils.Normalize(dirX, dirY)
	if !ok {
		dx, dy = 0, 1
	}
	return &components.Projectile{
		Kind:    types.ProjectileFireball,
		Faction: types.FactionBoss,
		Shape:   types.ShapeCircle,
		X:       centerX,
		Y:       centerY,
		Radius:  radius,
		VX:      dx * speed,
		VY:      dy * speed,
		Speed:   speed,
		Damage:  1,
	}
}

// NewSlowBullet 创建慢速竖直下落的圆形子弹（弹幕 Boss）
func NewSlowBullet(centerX, centerY, radius, speed float64) *components.Projectile {
	return &components.Projectile{
		Kind:    types.ProjectileSlow,
		Faction: types.FactionBoss,
		Shape:   types.ShapeCircle,
		X:       centerX,
		Y:       centerY,
		Radius:  radius,
		VY:      speed,
		Speed:   speed,
		Damage:  1,
	}
}

// NewSpinningSquare 创建旋转追踪方块（魔方红色阶段）
func NewSpinningSquare(centerX, centerY, size, speed, spin float64, target *components.Player, homingUntil time.Duration) *components.Projectile {
	p := NewAimedBullet(types.ProjectileSpinningSquare, centerX, centerY, size, speed,
		target.CenterX(), target.Y+target.H/2, target.ID, homingUntil)
	p.Spin = spin
	return p
}

// NewRapidBullet 创建快速追踪子弹（魔方蓝色阶段）
func NewRapidBullet(centerX, centerY, size, speed float64, target *components.Player, homingUntil time.Duration) *components.Projectile {
	return NewAimedBullet(types.ProjectileRapid, centerX, centerY, size, speed,
		target.CenterX(), target.Y+target.H/2, target.ID, homingUntil)
}

// NewBossLaser 创建锚定在魔方中心的竖直激光（魔方绿色阶段）
//
// 参数:
//   - anchorX, anchorY: 锚点（激光顶端中心）
//   - width: 激光宽度
//   - screenH: 屏幕高度，激光延伸到屏幕底部
//   - armedAt: 预警结束时间，之前激光不造成伤害
//   - expiresAt: 消失时间
func NewBossLaser(anchorX, anchorY, width, screenH float64, armedAt, expiresAt time.Duration) *components.Projectile {
	return &components.Projectile{
		Kind:      types.ProjectileLaser,
		Faction:   types.FactionBoss,
		Shape:     types.ShapeRect,
		X:         anchorX - width/2,
		Y:         anchorY,
		W:         width,
		H:         math.Max(screenH-anchorY, 0),
		Damage:    1,
		ArmedAt:   armedAt,
		ExpiresAt: expiresAt,
		Anchored:  true,
	}
}

// NewBall 创建慢速竖直下落的球（魔方黄色阶段）
func NewBall(centerX, centerY, radius, speed float64) *components.Projectile {
	p := NewSlowBullet(centerX, centerY, radius, speed)
	p.Kind = types.ProjectileBall
	return p
}

// NewBouncingBall 创建在屏幕边缘反弹的长寿命球（魔方白色阶段）
func NewBouncingBall(centerX, centerY, radius, speed, dirX, dirY float64, expiresAt time.Duration) *components.Projectile {
	p := NewFireball(centerX, centerY, radius, speed, dirX, dirY)
	p.Kind = types.ProjectileBouncingBall
	p.ExpiresAt = expiresAt
	return p
}
