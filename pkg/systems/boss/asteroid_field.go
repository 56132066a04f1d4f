package boss

import (
	"math/rand"
	"time"

	"github.com/decker502/invaders/pkg/components"
	"github.com/decker502/invaders/pkg/config"
	"github.com/decker502/invaders/pkg/types"
)

// Asteroid 下落的小行星
type Asteroid struct {
	ID              int
	X, Y            float64 // 圆心
	Radius          float64
	VY              float64
	NearMissAwarded bool
}

// AsteroidFieldState 小行星带的可序列化状态
type AsteroidFieldState struct {
	Asteroids   []Asteroid
	NextSpawnAt time.Duration
	NextID      int
	Escaped     int
}

// AsteroidField 小行星带
//
// 没有可受击区域。小行星按抖动的间隔生成并下落；
// 每颗从屏幕底部逃逸的小行星使生命值减少 HealthLossPerAsteroid，生命值归零即玩家胜利。
// 被玩家拦截（接触）的小行星会伤害玩家，但不影响生命值。
type AsteroidField struct {
	base    Base
	state   AsteroidFieldState
	cfg     *config.AsteroidFieldConfig
	screenW float64
	screenH float64
	rng     *rand.Rand
}

// NewAsteroidField 创建第 index 次遭遇的小行星带
func NewAsteroidField(index int, now time.Duration, cfg *config.CombatConfig, rng *rand.Rand) *AsteroidField {
	c := &cfg.Bosses.AsteroidField
	b := &AsteroidField{
		base:    newBase(types.BossAsteroidField, index, cfg.Screen.Width, 0, 0, c.Health, cfg.Screen.Width, now),
		cfg:     c,
		screenW: cfg.Screen.Width,
		screenH: cfg.Screen.Height,
		rng:     rng,
	}
	b.state.NextSpawnAt = now
	b.state.NextID = 1
	return b
}

// Type 实现 Boss 接口
func (b *AsteroidField) Type() types.BossType { return types.BossAsteroidField }

// Base 实现 Boss 接口
func (b *AsteroidField) Base() *Base { return &b.base }

// State 返回内部状态（渲染和测试使用）
func (b *AsteroidField) State() *AsteroidFieldState { return &b.state }

// Update 生成、移动小行星并结算逃逸
func (b *AsteroidField) Update(players []*components.Player, now time.Duration) []components.CombatEvent {
	dt := b.base.step(now)
	if !b.base.Active() {
		return nil
	}
	idx := b.base.EncounterIndex

	if now >= b.state.NextSpawnAt {
		b.spawn()
		// 间隔在 [0.5, 1.5) 倍之间抖动
		interval := b.cfg.SpawnInterval.At(idx)
		b.state.NextSpawnAt = now + time.Duration(float64(interval)*(0.5+b.rng.Float64()))
	}

	var events []components.CombatEvent
	kept := b.state.Asteroids[:0]
	for _, a := range b.state.Asteroids {
		a.Y += a.VY * dt
		if a.Y-a.Radius <= b.screenH {
			kept = append(kept, a)
			continue
		}

		// 同一帧内生命值归零后的逃逸不再计数
		if b.base.Health == 0 {
			continue
		}
		b.state.Escaped++
		b.base.Health = max(b.base.Health-b.cfg.HealthLossPerAsteroid, 0)
		events = append(events, b.base.event(components.EventAsteroidEscaped, a.X, b.screenH))
	}
	b.state.Asteroids = kept

	if b.base.Health == 0 {
		b.base.Destroyed = true
		b.base.DestructionStartTime = now
		b.base.State = StateGone
		b.state.Asteroids = nil
		events = append(events, b.base.event(components.EventBossDestroyed, b.screenW/2, b.screenH/2))
	}
	return events
}

// spawn 在屏幕上方生成一颗随机大小的小行星
func (b *AsteroidField) spawn() {
	idx := b.base.EncounterIndex
	radius := b.cfg.MinRadius + b.rng.Float64()*(b.cfg.MaxRadius-b.cfg.MinRadius)
	minVY := b.cfg.FallSpeedMin.At(idx)
	maxVY := max(b.cfg.FallSpeedMax.At(idx), minVY)
	x := radius + b.rng.Float64()*max(b.screenW-2*radius, 0)

	b.state.Asteroids = append(b.state.Asteroids, Asteroid{
		ID:     b.state.NextID,
		X:      x,
		Y:      -radius,
		Radius: radius,
		VY:     minVY + b.rng.Float64()*(maxVY-minVY),
	})
	b.state.NextID++
}

// Shoot 小行星带不发射弹体
func (b *AsteroidField) Shoot(players []*components.Player, now time.Duration) []*components.Projectile {
	return nil
}

// DamageableRegions 没有可受击区域
func (b *AsteroidField) DamageableRegions() []Region {
	return nil
}

// ApplyDamage 总是空操作
func (b *AsteroidField) ApplyDamage(regionID, amount int, now time.Duration) DamageResult {
	return DamageNoop
}

// Hazards 所有小行星
func (b *AsteroidField) Hazards() []Hazard {
	if !b.base.Active() {
		return nil
	}
	hazards := make([]Hazard, 0, len(b.state.Asteroids))
	for _, a := range b.state.Asteroids {
		hazards = append(hazards, Hazard{
			ID:               a.ID,
			Circle:           true,
			X:                a.X,
			Y:                a.Y,
			Radius:           a.Radius,
			Consumable:       true,
			NearMissEligible: !a.NearMissAwarded,
		})
	}
	return hazards
}

// ConsumeHazard 移除被拦截的小行星
func (b *AsteroidField) ConsumeHazard(id int) {
	for i, a := range b.state.Asteroids {
		if a.ID == id {
			b.state.Asteroids = append(b.state.Asteroids[:i], b.state.Asteroids[i+1:]...)
			return
		}
	}
}

// MarkNearMiss 每颗小行星只奖励一次
func (b *AsteroidField) MarkNearMiss(id int) bool {
	for i := range b.state.Asteroids {
		a := &b.state.Asteroids[i]
		if a.ID != id {
			continue
		}
		if a.NearMissAwarded {
			return false
		}
		a.NearMissAwarded = true
		return true
	}
	return false
}

// IsDestructionComplete 生命值归零即完成
func (b *AsteroidField) IsDestructionComplete(now time.Duration) bool {
	return b.base.Health <= 0
}

// Snapshot 实现 Boss 接口
func (b *AsteroidField) Snapshot() *Snapshot {
	state := b.state
	state.Asteroids = append([]Asteroid(nil), b.state.Asteroids...)
	return &Snapshot{Type: types.BossAsteroidField, Base: b.base, AsteroidField: &state}
}
