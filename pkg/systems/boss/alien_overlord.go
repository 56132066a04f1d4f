package boss

import (
	"math/rand"
	"time"

	"github.com/decker502/invaders/pkg/components"
	"github.com/decker502/invaders/pkg/config"
	"github.com/decker502/invaders/pkg/entities"
	"github.com/decker502/invaders/pkg/types"
	"github.com/decker502/invaders/pkg/utils"
)

// HandCount 外星霸主的手的数量
const HandCount = 2

// HandState 手的状态
type HandState int

const (
	HandIdle      HandState = iota // 停在静止位置
	HandSeeking                    // 锁定玩家，水平滑动到其上方
	HandDropping                   // 直线下压
	HandReturning                  // 返回静止位置
	HandDestroyed                  // 已被摧毁
)

// String 返回状态名称
func (s HandState) String() string {
	switch s {
	case HandIdle:
		return "idle"
	case HandSeeking:
		return "seeking"
	case HandDropping:
		return "dropping"
	case HandReturning:
		return "returning"
	case HandDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// Hand 外星霸主的手（子目标）
type Hand struct {
	X, Y           float64
	W, H           float64
	RestX, RestY   float64
	Health         int
	MaxHealth      int
	State          HandState
	TargetPlayerID int
	TargetX        float64
	DropToY        float64
	StateSince     time.Duration
}

// Rect 碰撞矩形
func (h *Hand) Rect() utils.Rect {
	return utils.Rect{X: h.X, Y: h.Y, W: h.W, H: h.H}
}

// AlienOverlordState 外星霸主的可序列化状态
type AlienOverlordState struct {
	Hands            [HandCount]Hand
	NextFireballAt   time.Duration
	Exposed          bool
	ExposedAnnounced bool
}

// AlienOverlord 外星霸主
//
// 两只手循环 idle → seeking → dropping → returning → idle，下压中的手接触玩家造成伤害。
// 头部向捕获的目标点发射火球；两只手都被摧毁后头部才可受击。
type AlienOverlord struct {
	base    Base
	state   AlienOverlordState
	cfg     *config.AlienOverlordConfig
	destroy time.Duration
	rng     *rand.Rand
}

// NewAlienOverlord 创建第 index 次遭遇的外星霸主
func NewAlienOverlord(index int, now time.Duration, cfg *config.CombatConfig, rng *rand.Rand) *AlienOverlord {
	c := &cfg.Bosses.AlienOverlord
	b := &AlienOverlord{
		base:    newBase(types.BossAlienOverlord, index, c.HeadWidth, c.HeadHeight, c.Y, c.Health, cfg.Screen.Width, now),
		cfg:     c,
		destroy: cfg.Encounter.DestructionDuration.Duration(),
		rng:     rng,
	}

	handHealth := c.HandHealth.AtInt(b.base.EncounterIndex)
	cx, cy := b.base.Center()
	for i := range b.state.Hands {
		side := float64(i*2 - 1) // -1 左手，1 右手
		restX := cx + side*c.HandSpread - c.HandWidth/2
		restY := cy - c.HandHeight/2
		b.state.Hands[i] = Hand{
			X:         restX,
			Y:         restY,
			W:         c.HandWidth,
			H:         c.HandHeight,
			RestX:     restX,
			RestY:     restY,
			Health:    handHealth,
			MaxHealth: handHealth,
			State:     HandIdle,
			// 两只手错开半个周期
			StateSince: now + c.HandIdle.Duration()*time.Duration(i)/2,
		}
	}
	b.state.NextFireballAt = now + c.FireballCooldown.At(b.base.EncounterIndex)
	return b
}

// Type 实现 Boss 接口
func (b *AlienOverlord) Type() types.BossType { return types.BossAlienOverlord }

// Base 实现 Boss 接口
func (b *AlienOverlord) Base() *Base { return &b.base }

// State 返回内部状态（渲染和测试使用）
func (b *AlienOverlord) State() *AlienOverlordState { return &b.state }

// Update 推进两只手的状态机
func (b *AlienOverlord) Update(players []*components.Player, now time.Duration) []components.CombatEvent {
	dt := b.base.step(now)
	if !b.base.Active() {
		return nil
	}

	for i := range b.state.Hands {
		b.updateHand(&b.state.Hands[i], players, now, dt)
	}

	if b.state.Exposed && !b.state.ExposedAnnounced {
		b.state.ExposedAnnounced = true
		cx, cy := b.base.Center()
		return []components.CombatEvent{b.base.event(components.EventBossMainBodyExposed, cx, cy)}
	}
	return nil
}

func (b *AlienOverlord) updateHand(h *Hand, players []*components.Player, now time.Duration, dt float64) {
	idx := b.base.EncounterIndex

	switch h.State {
	case HandIdle:
		if now-h.StateSince < b.cfg.HandIdle.Duration() {
			return
		}
		target := pickAlivePlayer(players, b.rng)
		if target == nil {
			return
		}
		h.TargetPlayerID = target.ID
		h.TargetX = target.CenterX() - h.W/2
		h.setState(HandSeeking, now)

	case HandSeeking:
		target := findAlivePlayer(players, h.TargetPlayerID)
		if target == nil {
			h.setState(HandReturning, now)
			return
		}
		h.TargetX = target.CenterX() - h.W/2
		var arrived bool
		h.X, _, arrived = moveToward(h.X, 0, h.TargetX, 0, b.cfg.SeekSpeed.At(idx), dt)
		if arrived || now-h.StateSince >= b.cfg.SeekTimeout.Duration() {
			// 手的下缘压到 玩家Y + DropOffset
			h.DropToY = target.Y + b.cfg.DropOffset - h.H
			h.setState(HandDropping, now)
		}

	case HandDropping:
		h.Y += b.cfg.DropSpeed.At(idx) * dt
		if h.Y >= h.DropToY {
			h.Y = h.DropToY
			h.setState(HandReturning, now)
		}

	case HandReturning:
		var arrived bool
		h.X, h.Y, arrived = moveToward(h.X, h.Y, h.RestX, h.RestY, b.cfg.ReturnSpeed, dt)
		if arrived {
			h.TargetPlayerID = 0
			h.setState(HandIdle, now)
		}
	}
}

func (h *Hand) setState(s HandState, now time.Duration) {
	h.State = s
	h.StateSince = now
}

// Shoot 头部向捕获的目标点发射火球
func (b *AlienOverlord) Shoot(players []*components.Player, now time.Duration) []*components.Projectile {
	if !b.base.Active() || now < b.state.NextFireballAt {
		return nil
	}
	idx := b.base.EncounterIndex
	b.state.NextFireballAt = now + b.cfg.FireballCooldown.At(idx)

	target := pickAlivePlayer(players, b.rng)
	if target == nil {
		return nil
	}
	cx := b.base.X + b.base.W/2
	cy := b.base.Y + b.base.H
	tx, ty := target.CenterX(), target.Y+target.H/2
	return []*components.Projectile{
		entities.NewFireball(cx, cy, b.cfg.FireballRadius, b.cfg.FireballSpeed.At(idx), tx-cx, ty-cy),
	}
}

// DamageableRegions 存活的手；头部只在两只手都被摧毁后出现
func (b *AlienOverlord) DamageableRegions() []Region {
	if !b.base.Active() {
		return nil
	}
	regions := make([]Region, 0, HandCount+1)
	for i := range b.state.Hands {
		h := &b.state.Hands[i]
		if h.State == HandDestroyed {
			continue
		}
		regions = append(regions, Region{ID: i + 1, Rect: h.Rect()})
	}
	if b.state.Exposed {
		regions = append(regions, Region{ID: MainBodyRegionID, MainBody: true, Rect: b.base.Rect()})
	}
	return regions
}

// ApplyDamage 区域 0 为头部，1..2 为手
func (b *AlienOverlord) ApplyDamage(regionID, amount int, now time.Duration) DamageResult {
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
	if i < 0 || i >= HandCount {
		return DamageNoop
	}
	h := &b.state.Hands[i]
	if h.State == HandDestroyed || amount <= 0 {
		return DamageNoop
	}

	h.Health -= amount
	if h.Health > 0 {
		return DamageHit
	}
	h.Health = 0
	h.setState(HandDestroyed, now)

	if b.HandsRemaining() == 0 {
		b.state.Exposed = true
	}
	return DamageSubTargetDestroyed
}

// HandsRemaining 存活的手的数量
func (b *AlienOverlord) HandsRemaining() int {
	n := 0
	for i := range b.state.Hands {
		if b.state.Hands[i].State != HandDestroyed {
			n++
		}
	}
	return n
}

// Hazards 下压中的手
func (b *AlienOverlord) Hazards() []Hazard {
	if !b.base.Active() {
		return nil
	}
	var hazards []Hazard
	for i := range b.state.Hands {
		h := &b.state.Hands[i]
		if h.State == HandDropping {
			hazards = append(hazards, Hazard{ID: i + 1, Rect: h.Rect()})
		}
	}
	return hazards
}

// ConsumeHazard 手不会被接触消耗
func (b *AlienOverlord) ConsumeHazard(id int) {}

// MarkNearMiss 手不提供擦身而过经验
func (b *AlienOverlord) MarkNearMiss(id int) bool { return false }

// IsDestructionComplete 实现 Boss 接口
func (b *AlienOverlord) IsDestructionComplete(now time.Duration) bool {
	return b.base.destructionComplete(now, b.destroy)
}

// Snapshot 实现 Boss 接口
func (b *AlienOverlord) Snapshot() *Snapshot {
	state := b.state
	return &Snapshot{Type: types.BossAlienOverlord, Base: b.base, AlienOverlord: &state}
}
