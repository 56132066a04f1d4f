package systems

import (
	"fmt"
	"time"

	"github.com/decker502/invaders/pkg/components"
	"github.com/decker502/invaders/pkg/systems/boss"
	"github.com/decker502/invaders/pkg/types"
)

// EncounterSnapshot 遭遇控制器的完整可序列化状态
// 所有实体都是值拷贝，之后的 Tick 不会修改已生成的快照
type EncounterSnapshot struct {
	State           components.EncounterState `msgpack:"state"`
	BossesDefeated  int                       `msgpack:"bossesDefeated"`
	EncounterCounts map[string]int            `msgpack:"encounterCounts"`
	LastBoss        types.BossType            `msgpack:"lastBoss"`
	ForcedBoss      types.BossType            `msgpack:"forcedBoss"`
	AwaitingUpgrade bool                      `msgpack:"awaitingUpgrade"`
	LastTick        time.Duration             `msgpack:"lastTick"`

	Players          []components.Player     `msgpack:"players"`
	Enemies          []components.Enemy      `msgpack:"enemies"`
	Barriers         []components.Barrier    `msgpack:"barriers"`
	PowerUps         []components.PowerUp    `msgpack:"powerUps"`
	Projectiles      []components.Projectile `msgpack:"projectiles"`
	NextProjectileID int                     `msgpack:"nextProjectileId"`
	NextPowerUpID    int                     `msgpack:"nextPowerUpId"`

	Boss *boss.Snapshot `msgpack:"boss,omitempty"`
}

// Snapshot 生成当前状态的快照
func (c *EncounterController) Snapshot() *EncounterSnapshot {
	s := &EncounterSnapshot{
		State:            c.state,
		BossesDefeated:   c.bossesDefeated,
		EncounterCounts:  make(map[string]int, len(c.encounterCounts)),
		LastBoss:         c.lastBoss,
		ForcedBoss:       c.forcedBoss,
		AwaitingUpgrade:  c.awaitingUpgrade,
		LastTick:         c.lastTick,
		NextProjectileID: c.world.Projectiles.NextID(),
		NextPowerUpID:    c.world.NextPowerUpID,
	}
	for bt, n := range c.encounterCounts {
		s.EncounterCounts[bt.String()] = n
	}

	for _, p := range c.world.Players {
		s.Players = append(s.Players, *p)
	}
	for _, e := range c.world.Enemies {
		s.Enemies = append(s.Enemies, *e)
	}
	for _, b := range c.world.Barriers {
		cp := *b
		cp.Blocks = append([]components.BarrierBlock(nil), b.Blocks...)
		s.Barriers = append(s.Barriers, cp)
	}
	for _, pu := range c.world.PowerUps {
		s.PowerUps = append(s.PowerUps, *pu)
	}
	for _, p := range c.world.Projectiles.All() {
		cp := *p
		cp.HitKeys = append([]components.HitRecord(nil), p.HitKeys...)
		s.Projectiles = append(s.Projectiles, cp)
	}
	if c.world.Boss != nil {
		s.Boss = c.world.Boss.Snapshot()
	}
	return s
}

// Restore 用快照替换当前状态
// 快照无效时返回错误，当前状态保持不变
func (c *EncounterController) Restore(s *EncounterSnapshot) error {
	if s == nil {
		return fmt.Errorf("encounter snapshot is nil")
	}
	if s.State.Level < 1 {
		return fmt.Errorf("encounter snapshot: invalid level %d", s.State.Level)
	}
	if len(s.Players) == 0 {
		return fmt.Errorf("encounter snapshot: no players")
	}

	counts := make(map[types.BossType]int, len(s.EncounterCounts))
	for name, n := range s.EncounterCounts {
		bt, err := types.ParseBossType(name)
		if err != nil {
			return fmt.Errorf("encounter snapshot: %w", err)
		}
		counts[bt] = n
	}

	var b boss.Boss
	if s.Boss != nil {
		restored, err := boss.Restore(s.Boss, c.cfg, c.rng)
		if err != nil {
			return fmt.Errorf("failed to restore boss: %w", err)
		}
		b = restored
	} else if s.State.Phase == components.PhaseBossActive {
		return fmt.Errorf("encounter snapshot: boss phase without boss state")
	}

	players := make([]*components.Player, 0, len(s.Players))
	for i := range s.Players {
		p := s.Players[i]
		players = append(players, &p)
	}
	enemies := make([]*components.Enemy, 0, len(s.Enemies))
	for i := range s.Enemies {
		e := s.Enemies[i]
		enemies = append(enemies, &e)
	}
	barriers := make([]*components.Barrier, 0, len(s.Barriers))
	for i := range s.Barriers {
		br := s.Barriers[i]
		br.Blocks = append([]components.BarrierBlock(nil), br.Blocks...)
		barriers = append(barriers, &br)
	}
	powerUps := make([]*components.PowerUp, 0, len(s.PowerUps))
	for i := range s.PowerUps {
		pu := s.PowerUps[i]
		powerUps = append(powerUps, &pu)
	}
	projectiles := make([]*components.Projectile, 0, len(s.Projectiles))
	for i := range s.Projectiles {
		p := s.Projectiles[i]
		p.HitKeys = append([]components.HitRecord(nil), p.HitKeys...)
		projectiles = append(projectiles, &p)
	}

	c.state = s.State
	c.bossesDefeated = s.BossesDefeated
	c.encounterCounts = counts
	c.lastBoss = s.LastBoss
	c.forcedBoss = s.ForcedBoss
	c.awaitingUpgrade = s.AwaitingUpgrade
	c.lastTick = s.LastTick

	c.world.Players = players
	c.world.Enemies = enemies
	c.world.Barriers = barriers
	c.world.PowerUps = powerUps
	c.world.Projectiles.Restore(projectiles, s.NextProjectileID)
	c.world.NextPowerUpID = max(s.NextPowerUpID, 1)
	c.world.Boss = b
	return nil
}
