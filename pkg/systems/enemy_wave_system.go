package systems

import (
	"math/rand"

	"github.com/decker502/invaders/pkg/components"
	"github.com/decker502/invaders/pkg/config"
	"github.com/decker502/invaders/pkg/entities"
)

// EnemyWaveSystem 普通敌人编队的移动与开火
// 整个编队共享方向；任一存活敌人触及屏幕边缘时全体反向并下移 DropDistance
type EnemyWaveSystem struct {
	cfg *config.CombatConfig
	rng *rand.Rand
}

// NewEnemyWaveSystem 创建编队系统
func NewEnemyWaveSystem(cfg *config.CombatConfig, rng *rand.Rand) *EnemyWaveSystem {
	return &EnemyWaveSystem{cfg: cfg, rng: rng}
}

// SetConfig 替换战斗参数（热重载）
func (s *EnemyWaveSystem) SetConfig(cfg *config.CombatConfig) {
	s.cfg = cfg
}

// Move 按 speed（像素/秒）水平移动编队，返回本帧是否触边下移
func (s *EnemyWaveSystem) Move(enemies []*components.Enemy, speed, dt float64) bool {
	dir := 0.0
	for _, e := range enemies {
		if e.Alive() {
			dir = e.Direction
			break
		}
	}
	if dir == 0 {
		return false
	}

	minX, maxX := s.cfg.Screen.Width, 0.0
	for _, e := range enemies {
		if !e.Alive() {
			continue
		}
		e.X += dir * speed * dt
		minX = min(minX, e.X)
		maxX = max(maxX, e.X+e.W)
	}

	shift := 0.0
	switch {
	case dir > 0 && maxX >= s.cfg.Screen.Width:
		shift = s.cfg.Screen.Width - maxX
	case dir < 0 && minX <= 0:
		shift = -minX
	default:
		return false
	}

	for _, e := range enemies {
		e.Direction = -dir
		if !e.Alive() {
			continue
		}
		e.X += shift
		e.Y += s.cfg.Enemies.DropDistance
	}
	return true
}

// Fire 每个存活敌人按 FireChancePerSecond 随机开火
//
// 参数:
//   - enemies: 编队
//   - dt: 帧间隔（秒）
//   - registry: 新子弹加入的注册表
//
// 返回:
//   - []components.CombatEvent: 每发子弹一个 enemy_fired 事件
func (s *EnemyWaveSystem) Fire(enemies []*components.Enemy, dt float64, registry *ProjectileRegistry) []components.CombatEvent {
	chance := s.cfg.Enemies.FireChancePerSecond * dt
	if chance <= 0 {
		return nil
	}

	var events []components.CombatEvent
	for _, e := range enemies {
		if !e.Alive() || s.rng.Float64() >= chance {
			continue
		}
		cx := e.X + e.W/2
		bottom := e.Y + e.H
		registry.Add(entities.NewEnemyBullet(&s.cfg.Weapons, cx, bottom))
		events = append(events, components.CombatEvent{Tag: components.EventEnemyFired, X: cx, Y: bottom})
	}
	return events
}

// Invaded 任一存活敌人的下边缘到达存活玩家所在高度
func (s *EnemyWaveSystem) Invaded(enemies []*components.Enemy, players []*components.Player) bool {
	line := -1.0
	for _, p := range players {
		if p != nil && p.Alive && (line < 0 || p.Y < line) {
			line = p.Y
		}
	}
	if line < 0 {
		return false
	}
	for _, e := range enemies {
		if e.Alive() && e.Y+e.H >= line {
			return true
		}
	}
	return false
}

// CountAlive 存活敌人数
func CountAlive(enemies []*components.Enemy) int {
	n := 0
	for _, e := range enemies {
		if e.Alive() {
			n++
		}
	}
	return n
}
