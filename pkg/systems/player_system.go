package systems

import (
	"time"

	"github.com/decker502/invaders/pkg/components"
	"github.com/decker502/invaders/pkg/config"
	"github.com/decker502/invaders/pkg/entities"
	"github.com/decker502/invaders/pkg/types"
	"github.com/decker502/invaders/pkg/utils"
)

// PlayerSystem 玩家移动、射击和限时道具
type PlayerSystem struct {
	cfg *config.CombatConfig
}

// NewPlayerSystem 创建玩家系统
func NewPlayerSystem(cfg *config.CombatConfig) *PlayerSystem {
	return &PlayerSystem{cfg: cfg}
}

// SetConfig 替换战斗参数（热重载）
func (s *PlayerSystem) SetConfig(cfg *config.CombatConfig) {
	s.cfg = cfg
}

// NewPlayers 在屏幕底部创建玩家；双人模式两艘飞船以 CoopSpacing 对称分布
func (s *PlayerSystem) NewPlayers(count int) []*components.Player {
	pc := s.cfg.Player
	y := s.cfg.Screen.Height - pc.BottomMargin - pc.Height
	center := s.cfg.Screen.Width / 2

	count = max(count, 1)
	players := make([]*components.Player, 0, count)
	for i := 0; i < count; i++ {
		offset := (float64(i) - float64(count-1)/2) * pc.CoopSpacing
		x := center + offset - pc.Width/2
		players = append(players, components.NewPlayer(i+1, x, y, pc.Width, pc.Height, pc.StartLives))
	}
	return players
}

// Expire 清除过期的限时道具，返回 power_up_expired 事件
func (s *PlayerSystem) Expire(now time.Duration, players []*components.Player) []components.CombatEvent {
	var events []components.CombatEvent
	for _, p := range players {
		if p == nil {
			continue
		}
		for _, t := range p.ExpirePowerUps(now) {
			events = append(events, components.CombatEvent{
				Tag:      components.EventPowerUpExpired,
				X:        p.CenterX(),
				Y:        p.Y,
				PlayerID: p.ID,
				RegionID: int(t),
			})
		}
	}
	return events
}

// Apply 执行玩家意图：移动并在冷却允许时射击
//
// 参数:
//   - now: 当前模拟时间
//   - dt: 帧间隔（秒）
//   - players: 所有玩家
//   - intents: 本帧意图，未出现的玩家保持不动
//   - registry: 新弹体加入的注册表
func (s *PlayerSystem) Apply(now time.Duration, dt float64, players []*components.Player, intents []components.PlayerIntent, registry *ProjectileRegistry) []components.CombatEvent {
	var events []components.CombatEvent
	for _, in := range intents {
		p := findPlayer(players, in.PlayerID)
		if p == nil || !p.Alive {
			continue
		}
		s.move(p, in.MoveX, dt)
		if in.Shoot {
			events = append(events, s.shoot(now, p, registry)...)
		}
	}
	return events
}

func (s *PlayerSystem) move(p *components.Player, moveX, dt float64) {
	dx := utils.Clamp(moveX, -1, 1) * s.cfg.Player.Speed * dt
	p.X = utils.Clamp(p.X+dx, 0, max(s.cfg.Screen.Width-p.W, 0))
}

// shoot 持有激光道具时发射激光（激光在场时不能再次发射），否则发射一轮子弹
//
// 一轮子弹：基础为中心一发；HasExtraBullet 时中心变为左右两发；
// 三连发道具再追加左右各一发。在场子弹数达到 AmmoCapacity 时不能开火。
func (s *PlayerSystem) shoot(now time.Duration, p *components.Player, registry *ProjectileRegistry) []components.CombatEvent {
	w := &s.cfg.Weapons
	cooldown := w.ShootCooldown.Duration()
	if p.HasRapidFire(now) {
		cooldown = w.RapidFireCooldown.Duration()
	}
	if !p.CanShoot(now, cooldown) {
		return nil
	}

	cx := p.CenterX()
	if p.HasLaser {
		if p.LaserActive {
			return nil
		}
		registry.Add(entities.NewPlayerLaser(w, p, now))
		p.HasLaser = false
		p.LaserActive = true
		p.MarkShot(now)
		return []components.CombatEvent{{Tag: components.EventLaserFired, X: cx, Y: p.Y, PlayerID: p.ID, RegionID: int(types.PowerUpLaser)}}
	}

	if registry.CountOwned(p.ID) >= p.Modifiers.AmmoCapacity {
		return nil
	}

	var xs []float64
	if p.Modifiers.HasExtraBullet {
		xs = append(xs, cx-w.ExtraBulletOffset, cx+w.ExtraBulletOffset)
	} else {
		xs = append(xs, cx)
	}
	if p.HasMultiShot(now) {
		xs = append(xs, cx-w.MultiShotSpread, cx+w.MultiShotSpread)
	}

	for _, x := range xs {
		registry.Add(entities.NewPlayerBullet(w, p, x))
	}
	p.MarkShot(now)
	return []components.CombatEvent{{Tag: components.EventPlayerShot, X: cx, Y: p.Y, PlayerID: p.ID, RegionID: len(xs)}}
}

func findPlayer(players []*components.Player, id int) *components.Player {
	for _, p := range players {
		if p != nil && p.ID == id {
			return p
		}
	}
	return nil
}
