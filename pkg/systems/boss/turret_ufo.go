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

// TurretCount 炮塔飞碟的炮塔数量
const TurretCount = 3

// Turret 炮塔（子目标）
type Turret struct {
	X, Y       float64
	W, H       float64
	OffsetX    float64 // 炮塔中心相对本体中心的水平偏移
	Health     int
	MaxHealth  int
	Destroyed  bool
	NextShotAt time.Duration
}

// Rect 碰撞矩形
func (t *Turret) Rect() utils.Rect {
	return utils.Rect{X: t.X, Y: t.Y, W: t.W, H: t.H}
}

// TurretUFOState 炮塔飞碟的可序列化状态
type TurretUFOState struct {
	Turrets          [TurretCount]Turret
	Direction        float64
	Exposed          bool // 所有炮塔被摧毁，本体可受击
	ExposedAnnounced bool
	NextBodyShotAt   time.Duration
}

// TurretUFO 炮塔飞碟
//
// 本体水平巡逻，三个炮塔各自按冷却向随机存活玩家发射追踪子弹。
// 任一炮塔存活时本体无敌；最后一个炮塔被摧毁的同一帧本体变为可受击，
// 之后本体按冷却发射扇形大子弹。
type TurretUFO struct {
	base    Base
	state   TurretUFOState
	cfg     *config.TurretUFOConfig
	screenW float64
	destroy time.Duration
	rng     *rand.Rand
}

// NewTurretUFO 创建第 index 次遭遇的炮塔飞碟
func NewTurretUFO(index int, now time.Duration, cfg *config.CombatConfig, rng *rand.Rand) *TurretUFO {
	c := &cfg.Bosses.TurretUFO
	b := &TurretUFO{
		base:    newBase(types.BossTurretUFO, index, c.Width, c.Height, c.Y, c.Health, cfg.Screen.Width, now),
		cfg:     c,
		screenW: cfg.Screen.Width,
		destroy: cfg.Encounter.DestructionDuration.Duration(),
		rng:     rng,
	}
	b.state.Direction = 1

	turretHealth := c.TurretHealth.AtInt(b.base.EncounterIndex)
	cooldown := c.TurretCooldown.At(b.base.EncounterIndex)
	spacing := c.Width / TurretCount
	for i := range b.state.Turrets {
		b.state.Turrets[i] = Turret{
			W:         c.TurretWidth,
			H:         c.TurretHeight,
			OffsetX:   (float64(i) - 1) * spacing,
			Health:    turretHealth,
			MaxHealth: turretHealth,
			// 错开首次开火时间
			NextShotAt: now + cooldown*time.Duration(i+1)/TurretCount,
		}
	}
	b.layoutTurrets()
	return b
}

// Type 实现 Boss 接口
func (b *TurretUFO) Type() types.BossType { return types.BossTurretUFO }

// Base 实现 Boss 接口
func (b *TurretUFO) Base() *Base { return &b.base }

// State 返回内部状态（渲染和测试使用）
func (b *TurretUFO) State() *TurretUFOState { return &b.state }

// layoutTurrets 炮塔挂在本体下缘
func (b *TurretUFO) layoutTurrets() {
	cx := b.base.X + b.base.W/2
	for i := range b.state.Turrets {
		t := &b.state.Turrets[i]
		t.X = cx + t.OffsetX - t.W/2
		t.Y = b.base.Y + b.base.H - t.H/2
	}
}

// Update 水平巡逻，触边反向
func (b *TurretUFO) Update(players []*components.Player, now time.Duration) []components.CombatEvent {
	dt := b.base.step(now)
	if !b.base.Active() {
		return nil
	}

	speed := b.cfg.Speed.At(b.base.EncounterIndex)
	b.base.X += b.state.Direction * speed * dt
	if b.base.X <= 0 {
		b.base.X = 0
		b.state.Direction = 1
	} else if b.base.X+b.base.W >= b.screenW {
		b.base.X = b.screenW - b.base.W
		b.state.Direction = -1
	}
	b.layoutTurrets()

	if b.state.Exposed && !b.state.ExposedAnnounced {
		b.state.ExposedAnnounced = true
		cx, cy := b.base.Center()
		return []components.CombatEvent{b.base.event(components.EventBossMainBodyExposed, cx, cy)}
	}
	return nil
}

// Shoot 炮塔发射追踪子弹；本体暴露后发射扇形大子弹
func (b *TurretUFO) Shoot(players []*components.Player, now time.Duration) []*components.Projectile {
	if !b.base.Active() {
		return nil
	}

	idx := b.base.EncounterIndex
	var shots []*components.Projectile

	for i := range b.state.Turrets {
		t := &b.state.Turrets[i]
		if t.Destroyed || now < t.NextShotAt {
			continue
		}
		t.NextShotAt = now + b.cfg.TurretCooldown.At(idx)

		target := pickAlivePlayer(players, b.rng)
		if target == nil {
			continue
		}
		cx, cy := t.X+t.W/2, t.Y+t.H
		shots = append(shots, entities.NewAimedBullet(types.ProjectileHoming, cx, cy,
			b.cfg.BulletSize, b.cfg.BulletSpeed.At(idx),
			target.CenterX(), target.Y+target.H/2, target.ID, now+b.cfg.Homing.Duration()))
	}

	if b.state.Exposed && now >= b.state.NextBodyShotAt {
		b.state.NextBodyShotAt = now + b.cfg.BodyCooldown.At(idx)
		shots = append(shots, b.spread(idx)...)
	}
	return shots
}

// spread 以竖直向下为中心的扇形大子弹
func (b *TurretUFO) spread(idx int) []*components.Projectile {
	count := max(b.cfg.SpreadCount, 1)
	cx := b.base.X + b.base.W/2
	cy := b.base.Y + b.base.H
	speed := b.cfg.LargeBulletSpeed.At(idx)
	step := b.cfg.SpreadAngleDeg * math.Pi / 180

	shots := make([]*components.Projectile, 0, count)
	for i := 0; i < count; i++ {
		angle := (float64(i) - float64(count-1)/2) * step
		shots = append(shots, entities.NewLargeBullet(cx, cy, b.cfg.LargeBulletSize, speed, angle))
	}
	return shots
}

// DamageableRegions 存活的炮塔；本体只在暴露后出现
func (b *TurretUFO) DamageableRegions() []Region {
	if !b.base.Active() {
		return nil
	}
	regions := make([]Region, 0, TurretCount+1)
	for i := range b.state.Turrets {
		t := &b.state.Turrets[i]
		if t.Destroyed {
			continue
		}
		regions = append(regions, Region{ID: i + 1, Rect: t.Rect()})
	}
	if b.state.Exposed {
		regions = append(regions, Region{ID: MainBodyRegionID, MainBody: true, Rect: b.base.Rect()})
	}
	return regions
}

// ApplyDamage 区域 0 为本体，1..3 为炮塔
func (b *TurretUFO) ApplyDamage(regionID, amount int, now time.Duration) DamageResult {
	if !b.base.Active() {
		return DamageNoop
	}
	if regionID == MainBodyRegionID {
		if !b.state.Exposed {
			return DamageNoop
		}
		return b.base.damageMainBody(amount, now)
	}

	i := regionID - 1
	if i < 0 || i >= TurretCount {
		return DamageNoop
	}
	t := &b.state.Turrets[i]
	if t.Destroyed || amount <= 0 {
		return DamageNoop
	}

	t.Health -= amount
	if t.Health > 0 {
		return DamageHit
	}
	t.Health = 0
	t.Destroyed = true

	if b.TurretsRemaining() == 0 {
		b.state.Exposed = true
		b.state.NextBodyShotAt = now
	}
	return DamageSubTargetDestroyed
}

// TurretsRemaining 存活炮塔数
func (b *TurretUFO) TurretsRemaining() int {
	n := 0
	for i := range b.state.Turrets {
		if !b.state.Turrets[i].Destroyed {
			n++
		}
	}
	return n
}

// IsDestructionComplete 实现 Boss 接口
func (b *TurretUFO) IsDestructionComplete(now time.Duration) bool {
	return b.base.destructionComplete(now, b.destroy)
}

// Snapshot 实现 Boss 接口
func (b *TurretUFO) Snapshot() *Snapshot {
	state := b.state
	return &Snapshot{Type: types.BossTurretUFO, Base: b.base, TurretUFO: &state}
}
