package boss

import (
	"math/rand"
	"time"

	"github.com/decker502/invaders/pkg/components"
	"github.com/decker502/invaders/pkg/config"
	"github.com/decker502/invaders/pkg/entities"
	"github.com/decker502/invaders/pkg/types"
)

// BulletHellState 弹幕 Boss 的可序列化状态
type BulletHellState struct {
	TargetX, TargetY float64 // 当前游走目标（左上角）
	NextShotAt       time.Duration
}

// BulletHell 弹幕 Boss
// 在限定区域内随机游走，按冷却发射慢速竖直子弹，始终可受击
type BulletHell struct {
	base    Base
	state   BulletHellState
	cfg     *config.BulletHellConfig
	destroy time.Duration
	rng     *rand.Rand
}

// NewBulletHell 创建第 index 次遭遇的弹幕 Boss
func NewBulletHell(index int, now time.Duration, cfg *config.CombatConfig, rng *rand.Rand) *BulletHell {
	c := &cfg.Bosses.BulletHell
	b := &BulletHell{
		base:    newBase(types.BossBulletHell, index, c.Width, c.Height, c.ZoneY, c.Health, cfg.Screen.Width, now),
		cfg:     c,
		destroy: cfg.Encounter.DestructionDuration.Duration(),
		rng:     rng,
	}
	b.state.TargetX, b.state.TargetY = b.base.X, b.base.Y
	b.state.NextShotAt = now + c.FireCooldown.At(b.base.EncounterIndex)
	return b
}

// Type 实现 Boss 接口
func (b *BulletHell) Type() types.BossType { return types.BossBulletHell }

// Base 实现 Boss 接口
func (b *BulletHell) Base() *Base { return &b.base }

// State 返回内部状态（渲染和测试使用）
func (b *BulletHell) State() *BulletHellState { return &b.state }

// pickTarget 在游走区域内选择新的目标点，保证本体完全处于区域内
func (b *BulletHell) pickTarget() {
	rangeX := max(b.cfg.ZoneW-b.base.W, 0)
	rangeY := max(b.cfg.ZoneH-b.base.H, 0)
	b.state.TargetX = b.cfg.ZoneX + b.rng.Float64()*rangeX
	b.state.TargetY = b.cfg.ZoneY + b.rng.Float64()*rangeY
}

// Update 向目标点移动，到达后选择新目标
func (b *BulletHell) Update(players []*components.Player, now time.Duration) []components.CombatEvent {
	dt := b.base.step(now)
	if !b.base.Active() {
		return nil
	}

	var arrived bool
	b.base.X, b.base.Y, arrived = moveToward(b.base.X, b.base.Y, b.state.TargetX, b.state.TargetY,
		b.cfg.Speed.At(b.base.EncounterIndex), dt)
	if arrived {
		b.pickTarget()
	}
	return nil
}

// Shoot 从本体下缘中心发射一颗慢速子弹
func (b *BulletHell) Shoot(players []*components.Player, now time.Duration) []*components.Projectile {
	if !b.base.Active() || now < b.state.NextShotAt {
		return nil
	}
	idx := b.base.EncounterIndex
	b.state.NextShotAt = now + b.cfg.FireCooldown.At(idx)

	cx := b.base.X + b.base.W/2
	bottom := b.base.Y + b.base.H
	return []*components.Projectile{
		entities.NewSlowBullet(cx, bottom+b.cfg.BulletRadius, b.cfg.BulletRadius, b.cfg.BulletSpeed.At(idx)),
	}
}

// DamageableRegions 只有本体
func (b *BulletHell) DamageableRegions() []Region {
	if !b.base.Active() {
		return nil
	}
	return []Region{{ID: MainBodyRegionID, MainBody: true, Rect: b.base.Rect()}}
}

// ApplyDamage 只接受本体区域
func (b *BulletHell) ApplyDamage(regionID, amount int, now time.Duration) DamageResult {
	if regionID != MainBodyRegionID {
		return DamageNoop
	}
	return b.base.damageMainBody(amount, now)
}

// IsDestructionComplete 实现 Boss 接口
func (b *BulletHell) IsDestructionComplete(now time.Duration) bool {
	return b.base.destructionComplete(now, b.destroy)
}

// Snapshot 实现 Boss 接口
func (b *BulletHell) Snapshot() *Snapshot {
	state := b.state
	return &Snapshot{Type: types.BossBulletHell, Base: b.base, BulletHell: &state}
}
