package components

import (
	"time"

	"github.com/decker502/invaders/pkg/types"
	"github.com/decker502/invaders/pkg/utils"
)

// DamageOutcome 玩家受击结果
type DamageOutcome int

const (
	DamageIgnored  DamageOutcome = iota // 无敌、已死亡：未造成伤害
	DamageShielded                      // 护盾抵消了这次伤害
	DamageTaken                         // 失去一条命，原地复活并获得无敌时间
	DamageKilled                        // 失去最后一条命
)

// Applied 是否产生了效果（命中物应被消耗）
func (o DamageOutcome) Applied() bool {
	return o != DamageIgnored
}

// Player 玩家飞船
type Player struct {
	ID     int // 从 1 开始
	X, Y   float64
	W, H   float64
	SpawnX float64 // 复活位置
	SpawnY float64

	Lives int
	Alive bool

	RespawnImmuneUntil time.Duration
	InvincibleUntil    time.Duration
	RapidFireUntil     time.Duration
	MultiShotUntil     time.Duration
	HasLaser           bool // 持有未发射的激光道具
	LaserActive        bool // 发射出的激光仍在场

	LastShotAt time.Duration
	HasShot    bool // LastShotAt 有效

	ShieldCharges int
	Modifiers     ModifierSet
}

// NewPlayer 创建位于出生点的玩家
func NewPlayer(id int, x, y, w, h float64, lives int) *Player {
	return &Player{
		ID:        id,
		X:         x,
		Y:         y,
		W:         w,
		H:         h,
		SpawnX:    x,
		SpawnY:    y,
		Lives:     lives,
		Alive:     true,
		Modifiers: NewModifierSet(),
	}
}

// Rect 碰撞矩形
func (p *Player) Rect() utils.Rect {
	return utils.Rect{X: p.X, Y: p.Y, W: p.W, H: p.H}
}

// CenterX 水平中心
func (p *Player) CenterX() float64 {
	return p.X + p.W/2
}

// IsImmune 是否处于复活无敌或无敌道具时间内
func (p *Player) IsImmune(now time.Duration) bool {
	return now < p.RespawnImmuneUntil || now < p.InvincibleUntil
}

// HasRapidFire 快速射击是否生效
func (p *Player) HasRapidFire(now time.Duration) bool {
	return now < p.RapidFireUntil
}

// HasMultiShot 三连发是否生效
func (p *Player) HasMultiShot(now time.Duration) bool {
	return now < p.MultiShotUntil
}

// CanShoot 检查射击冷却
func (p *Player) CanShoot(now, cooldown time.Duration) bool {
	if !p.Alive {
		return false
	}
	if !p.HasShot {
		return true
	}
	return now-p.LastShotAt >= cooldown
}

// MarkShot 记录射击时间
func (p *Player) MarkShot(now time.Duration) {
	p.LastShotAt = now
	p.HasShot = true
}

// TakeDamage 受到一次伤害
//
// 顺序：无敌 → 护盾 → 扣命。扣命后若仍有剩余生命则回到出生点，
// 获得 immunity 时长的无敌并清除武器类道具。
func (p *Player) TakeDamage(now, immunity time.Duration) DamageOutcome {
	if !p.Alive || p.IsImmune(now) {
		return DamageIgnored
	}

	if p.ShieldCharges > 0 {
		p.ShieldCharges--
		return DamageShielded
	}

	p.Lives--
	if p.Lives <= 0 {
		p.Lives = 0
		p.Alive = false
		p.HasLaser = false
		return DamageKilled
	}

	p.X = p.SpawnX
	p.Y = p.SpawnY
	p.RespawnImmuneUntil = now + immunity
	p.clearWeaponPowerUps()
	return DamageTaken
}

// Revive 以指定生命数复活（双人模式关卡结束时）
func (p *Player) Revive(lives int, now, immunity time.Duration) {
	p.Lives = lives
	p.Alive = true
	p.X = p.SpawnX
	p.Y = p.SpawnY
	p.RespawnImmuneUntil = now + immunity
	p.clearWeaponPowerUps()
}

// ActivatePowerUp 激活道具
// 快速射击、激光、三连发互斥；无敌可与它们共存
func (p *Player) ActivatePowerUp(t types.PowerUpType, now, duration time.Duration) {
	switch t {
	case types.PowerUpInvincibility:
		p.InvincibleUntil = now + duration
	case types.PowerUpRapidFire:
		p.clearWeaponPowerUps()
		p.RapidFireUntil = now + duration
	case types.PowerUpLaser:
		p.clearWeaponPowerUps()
		p.HasLaser = true
	case types.PowerUpMultiShot:
		p.clearWeaponPowerUps()
		p.MultiShotUntil = now + duration
	}
}

// ExpirePowerUps 清除已过期的限时状态，返回本次过期的道具
func (p *Player) ExpirePowerUps(now time.Duration) []types.PowerUpType {
	var expired []types.PowerUpType
	if p.InvincibleUntil > 0 && now >= p.InvincibleUntil {
		p.InvincibleUntil = 0
		expired = append(expired, types.PowerUpInvincibility)
	}
	if p.RapidFireUntil > 0 && now >= p.RapidFireUntil {
		p.RapidFireUntil = 0
		expired = append(expired, types.PowerUpRapidFire)
	}
	if p.MultiShotUntil > 0 && now >= p.MultiShotUntil {
		p.MultiShotUntil = 0
		expired = append(expired, types.PowerUpMultiShot)
	}
	if p.RespawnImmuneUntil > 0 && now >= p.RespawnImmuneUntil {
		p.RespawnImmuneUntil = 0
	}
	return expired
}

func (p *Player) clearWeaponPowerUps() {
	p.RapidFireUntil = 0
	p.MultiShotUntil = 0
	p.HasLaser = false
}
