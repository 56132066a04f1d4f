package systems

import (
	"log"
	"math/rand"
	"time"

	"github.com/decker502/invaders/pkg/components"
	"github.com/decker502/invaders/pkg/config"
	"github.com/decker502/invaders/pkg/entities"
	"github.com/decker502/invaders/pkg/systems/boss"
	"github.com/decker502/invaders/pkg/types"
)

// maxTickStep 单帧最多推进的时间
const maxTickStep = 100 * time.Millisecond

// EncounterController 关卡与遭遇流程
//
// 阶段：SettingUpLevel → (RegularWave | BossWarning → BossActive) → LevelComplete → SettingUpLevel（下一关），
// 所有玩家死亡或敌人编队到达玩家高度时进入终态 GameOver。
//
// 每帧 Tick 的顺序：
//  1. 玩家道具过期、移动、射击
//  2. 普通波次编队移动和开火；Boss 战 Boss.Update 和 Boss.Shoot
//  3. 弹体和道具运动
//  4. 碰撞结算
//  5. 按剩余敌人数重新计算速度倍率
//  6. 完成 / 游戏结束检查和阶段切换
type EncounterController struct {
	cfg      *config.CombatConfig
	rng      *rand.Rand
	curve    *ProgressionCurve
	players  *PlayerSystem
	waves    *EnemyWaveSystem
	resolver *CollisionResolver

	world World
	state components.EncounterState

	bossesDefeated  int
	encounterCounts map[types.BossType]int
	lastBoss        types.BossType
	forcedBoss      types.BossType
	awaitingUpgrade bool
	lastTick        time.Duration
}

// NewEncounterController 创建遭遇控制器，第一次 Tick 时开始第 1 关
//
// 参数:
//   - cfg: 已校验的战斗参数
//   - rng: 所有随机行为共享的随机数源
//   - playerCount: 玩家数量（1 单人，2 双人）
func NewEncounterController(cfg *config.CombatConfig, rng *rand.Rand, playerCount int) *EncounterController {
	c := &EncounterController{
		cfg:             cfg,
		rng:             rng,
		curve:           NewProgressionCurve(&cfg.Progression),
		players:         NewPlayerSystem(cfg),
		waves:           NewEnemyWaveSystem(cfg, rng),
		resolver:        NewCollisionResolver(cfg, rng),
		encounterCounts: make(map[types.BossType]int),
	}
	c.world = World{
		Players:       c.players.NewPlayers(playerCount),
		Projectiles:   NewProjectileRegistry(cfg.Screen),
		NextPowerUpID: 1,
	}
	c.state = components.EncounterState{
		Level:                1,
		EnemySpeedMultiplier: 1,
		Phase:                components.PhaseSettingUpLevel,
	}
	return c
}

// SetConfig 替换战斗参数（热重载），下一帧生效
func (c *EncounterController) SetConfig(cfg *config.CombatConfig) {
	c.cfg = cfg
	c.curve = NewProgressionCurve(&cfg.Progression)
	c.players.SetConfig(cfg)
	c.waves.SetConfig(cfg)
	c.resolver.SetConfig(cfg)
	log.Printf("[EncounterController] Combat config replaced")
}

// State 当前关卡状态
func (c *EncounterController) State() components.EncounterState { return c.state }

// Phase 当前阶段
func (c *EncounterController) Phase() components.EncounterPhase { return c.state.Phase }

// World 当前实体（渲染和测试使用）
func (c *EncounterController) World() *World { return &c.world }

// Players 所有玩家
func (c *EncounterController) Players() []*components.Player { return c.world.Players }

// Boss 当前 Boss，没有时为 nil
func (c *EncounterController) Boss() boss.Boss { return c.world.Boss }

// Curve 难度曲线
func (c *EncounterController) Curve() *ProgressionCurve { return c.curve }

// BossesDefeated 已击败的 Boss 数
func (c *EncounterController) BossesDefeated() int { return c.bossesDefeated }

// EncounterCount 某类 Boss 已出现的次数
func (c *EncounterController) EncounterCount(bt types.BossType) int { return c.encounterCounts[bt] }

// AwaitingUpgrade 是否在等待升级选择
func (c *EncounterController) AwaitingUpgrade() bool { return c.awaitingUpgrade }

// SetAwaitingUpgrade 由分数/经验模块在升级时设置；设置后关卡完成阶段不会进入下一关
func (c *EncounterController) SetAwaitingUpgrade(awaiting bool) {
	c.awaitingUpgrade = awaiting
}

// ResumeAfterUpgrade 升级选择结束
func (c *EncounterController) ResumeAfterUpgrade() {
	c.awaitingUpgrade = false
}

// ForceNextBoss 调试用：下一个 Boss 关卡使用指定类型
func (c *EncounterController) ForceNextBoss(bt types.BossType) {
	c.forcedBoss = bt
	log.Printf("[EncounterController] Next boss forced to %v", bt)
}

// Tick 推进一帧
//
// 参数:
//   - now: 当前模拟时间（单调递增）
//   - intents: 本帧玩家意图
//
// 返回:
//   - []components.CombatEvent: 本帧产生的所有事件
func (c *EncounterController) Tick(now time.Duration, intents []components.PlayerIntent) []components.CombatEvent {
	step := now - c.lastTick
	c.lastTick = now
	if step < 0 {
		step = 0
	} else if step > maxTickStep {
		step = maxTickStep
	}
	dt := step.Seconds()

	switch c.state.Phase {
	case components.PhaseGameOver:
		return nil
	case components.PhaseSettingUpLevel:
		return c.setupLevel(now)
	}

	events := c.players.Expire(now, c.world.Players)
	events = append(events, c.players.Apply(now, dt, c.world.Players, intents, c.world.Projectiles)...)

	switch c.state.Phase {
	case components.PhaseRegularWave:
		c.waves.Move(c.world.Enemies, c.state.EnemySpeed(), dt)
		events = append(events, c.waves.Fire(c.world.Enemies, dt, c.world.Projectiles)...)
	case components.PhaseBossWarning:
		if now-c.state.PhaseStarted >= c.cfg.Encounter.BossWarning.Duration() {
			events = append(events, c.spawnBoss(now)...)
		}
	case components.PhaseBossActive:
		events = append(events, c.updateBoss(now)...)
	}

	ctx := AdvanceContext{Players: c.world.Players}
	if anchor, ok := c.world.Boss.(boss.AnchorSource); ok && c.world.Boss.Base().Active() {
		ctx.Anchor = anchor
	}
	c.world.Projectiles.Advance(now, dt, ctx)
	c.advancePowerUps(now, dt)

	events = append(events, c.resolver.Resolve(now, &c.world)...)
	c.world.Projectiles.SyncLaserFlags(c.world.Players)

	if c.state.Phase == components.PhaseRegularWave {
		events = append(events, c.refreshSpeed()...)
	}
	return append(events, c.checkTransitions(now)...)
}

// setupLevel 准备当前关卡：掩体、敌人编队或 Boss 警告
func (c *EncounterController) setupLevel(now time.Duration) []components.CombatEvent {
	level := c.state.Level
	c.state = components.EncounterState{
		Level:                level,
		IsBossLevel:          c.curve.IsBossLevel(level),
		EnemySpeedMultiplier: 1,
		BaseEnemySpeed:       c.curve.BaseEnemySpeed(level, c.bossesDefeated),
	}

	mods := make([]components.ModifierSet, 0, len(c.world.Players))
	for _, p := range c.world.Players {
		mods = append(mods, p.Modifiers)
	}
	c.world.Barriers = entities.NewBarriers(c.cfg, mods...)
	c.world.Projectiles.Clear()
	c.world.Projectiles.SyncLaserFlags(c.world.Players)
	c.world.PowerUps = nil
	c.world.Boss = nil
	c.world.Enemies = nil

	events := []components.CombatEvent{{Tag: components.EventLevelStarted, Level: level}}

	if c.state.IsBossLevel {
		bt := c.pickBoss()
		if bt != types.BossNone {
			c.encounterCounts[bt]++
			c.state.BossType = bt
			c.setPhase(components.PhaseBossWarning, now)
			log.Printf("[EncounterController] Level %d is a boss level: %v #%d", level, bt, c.encounterCounts[bt])
			return append(events, components.CombatEvent{
				Tag:      components.EventBossWarning,
				X:        c.cfg.Screen.Width / 2,
				Y:        c.cfg.Screen.Height / 2,
				BossType: bt,
				Level:    level,
			})
		}
		log.Printf("[EncounterController] Level %d is a boss level but no boss is enabled, using a regular wave", level)
		c.state.IsBossLevel = false
	}

	c.world.Enemies = entities.NewEnemyGrid(c.cfg)
	c.state.TotalEnemies = len(c.world.Enemies)
	c.state.RemainingEnemies = c.state.TotalEnemies
	c.state.EnemySpeedMultiplier = c.curve.EnemySpeedMultiplier(c.state.TotalEnemies, c.state.RemainingEnemies, level)
	c.setPhase(components.PhaseRegularWave, now)
	log.Printf("[EncounterController] Level %d started: %d enemies, base speed %.1f",
		level, c.state.TotalEnemies, c.state.BaseEnemySpeed)
	return events
}

// pickBoss 优先使用 ForceNextBoss 指定的类型，否则随机选择且不与上一次相同
func (c *EncounterController) pickBoss() types.BossType {
	if c.forcedBoss != types.BossNone {
		bt := c.forcedBoss
		c.forcedBoss = types.BossNone
		return bt
	}
	return boss.PickType(c.cfg.EnabledBossTypes(), c.lastBoss, c.rng)
}

// spawnBoss 警告结束后生成 Boss
func (c *EncounterController) spawnBoss(now time.Duration) []components.CombatEvent {
	bt := c.state.BossType
	b, err := boss.New(bt, c.encounterCounts[bt], now, c.cfg, c.rng)
	if err != nil {
		log.Printf("[EncounterController] Failed to create boss %v: %v", bt, err)
		c.state.IsBossLevel = false
		return c.completeLevel(now)
	}

	c.world.Boss = b
	c.lastBoss = bt
	c.setPhase(components.PhaseBossActive, now)
	base := b.Base()
	cx, cy := base.Center()
	log.Printf("[EncounterController] Boss %v spawned (encounter %d, health %d)", bt, base.EncounterIndex, base.MaxHealth)
	return []components.CombatEvent{{Tag: components.EventBossSpawned, X: cx, Y: cy, BossType: bt, Level: c.state.Level}}
}

// updateBoss Boss 移动和开火
// 小行星带在 Update 中结束，其胜利事件在这里补上奖励
func (c *EncounterController) updateBoss(now time.Duration) []components.CombatEvent {
	b := c.world.Boss
	if b == nil {
		return nil
	}

	var events []components.CombatEvent
	for _, ev := range b.Update(c.world.Players, now) {
		if ev.Tag == components.EventBossDestroyed {
			events = append(events, c.resolver.BossDefeatRewards(b, c.world.Players, 0)...)
			continue
		}
		events = append(events, ev)
	}

	shots := b.Shoot(c.world.Players, now)
	if len(shots) == 0 {
		return events
	}
	fired := false
	for _, p := range shots {
		c.world.Projectiles.Add(p)
		if p.IsLaser() && !p.IsArmed(now) {
			x, y := p.Center()
			events = append(events, components.CombatEvent{Tag: components.EventLaserWarning, X: x, Y: y, BossType: b.Type()})
			continue
		}
		fired = true
	}
	if fired {
		cx, cy := b.Base().Center()
		events = append(events, components.CombatEvent{Tag: components.EventBossFired, X: cx, Y: cy, BossType: b.Type()})
	}
	return events
}

// advancePowerUps 道具下落，超时或离开屏幕后移除
func (c *EncounterController) advancePowerUps(now time.Duration, dt float64) {
	lifetime := c.cfg.PowerUps.Lifetime.Duration()
	kept := c.world.PowerUps[:0]
	for _, pu := range c.world.PowerUps {
		pu.Y += c.cfg.PowerUps.FallSpeed * dt
		if pu.Expired(now, lifetime) || pu.Y > c.cfg.Screen.Height {
			continue
		}
		kept = append(kept, pu)
	}
	for i := len(kept); i < len(c.world.PowerUps); i++ {
		c.world.PowerUps[i] = nil
	}
	c.world.PowerUps = kept
}

// refreshSpeed 按剩余敌人数重新计算倍率，变化时发出事件
func (c *EncounterController) refreshSpeed() []components.CombatEvent {
	c.state.RemainingEnemies = CountAlive(c.world.Enemies)
	multiplier := c.curve.EnemySpeedMultiplier(c.state.TotalEnemies, c.state.RemainingEnemies, c.state.Level)
	if multiplier == c.state.EnemySpeedMultiplier {
		return nil
	}
	c.state.EnemySpeedMultiplier = multiplier
	return []components.CombatEvent{{Tag: components.EventWaveSpeedChanged, Level: c.state.Level, RegionID: c.state.RemainingEnemies}}
}

// checkTransitions 游戏结束、关卡完成和进入下一关
func (c *EncounterController) checkTransitions(now time.Duration) []components.CombatEvent {
	if !c.anyPlayerAlive() {
		return c.gameOver(now, "all players destroyed")
	}

	switch c.state.Phase {
	case components.PhaseRegularWave:
		if c.waves.Invaded(c.world.Enemies, c.world.Players) {
			events := []components.CombatEvent{{Tag: components.EventInvasion, Level: c.state.Level}}
			return append(events, c.gameOver(now, "enemies reached the player line")...)
		}
		if c.state.RemainingEnemies == 0 {
			return c.completeLevel(now)
		}

	case components.PhaseBossActive:
		if b := c.world.Boss; b != nil && b.IsDestructionComplete(now) {
			c.bossesDefeated++
			cx, cy := b.Base().Center()
			log.Printf("[EncounterController] Boss %v defeated (total %d)", b.Type(), c.bossesDefeated)
			events := []components.CombatEvent{{Tag: components.EventBossDefeated, X: cx, Y: cy, BossType: b.Type(), Level: c.state.Level}}
			return append(events, c.completeLevel(now)...)
		}

	case components.PhaseLevelComplete:
		if !c.awaitingUpgrade && now-c.state.PhaseStarted >= c.cfg.Encounter.LevelCompleteDelay.Duration() {
			c.state.Level++
			return c.setupLevel(now)
		}
	}
	return nil
}

// completeLevel 进入关卡完成阶段；双人模式中生命耗尽的队友以 1 条命复活
func (c *EncounterController) completeLevel(now time.Duration) []components.CombatEvent {
	c.world.Boss = nil
	c.world.Projectiles.RemoveFaction(types.FactionEnemy)
	c.world.Projectiles.RemoveFaction(types.FactionBoss)
	c.setPhase(components.PhaseLevelComplete, now)

	events := []components.CombatEvent{{Tag: components.EventLevelComplete, Level: c.state.Level}}
	if c.world.Coop() {
		immunity := c.cfg.Player.RespawnImmunity.Duration()
		for _, p := range c.world.Players {
			if p.Alive {
				continue
			}
			p.Revive(1, now, immunity)
			log.Printf("[EncounterController] Player %d revived for level %d", p.ID, c.state.Level+1)
			events = append(events, components.CombatEvent{Tag: components.EventPlayerRevived, X: p.CenterX(), Y: p.Y, PlayerID: p.ID})
		}
	}
	log.Printf("[EncounterController] Level %d complete", c.state.Level)
	return events
}

func (c *EncounterController) gameOver(now time.Duration, reason string) []components.CombatEvent {
	c.setPhase(components.PhaseGameOver, now)
	log.Printf("[EncounterController] Game over on level %d: %s", c.state.Level, reason)
	return []components.CombatEvent{{Tag: components.EventGameOver, Level: c.state.Level}}
}

func (c *EncounterController) setPhase(phase components.EncounterPhase, now time.Duration) {
	if c.state.Phase != phase {
		log.Printf("[EncounterController] Phase %v -> %v", c.state.Phase, phase)
	}
	c.state.Phase = phase
	c.state.PhaseStarted = now
}

func (c *EncounterController) anyPlayerAlive() bool {
	for _, p := range c.world.Players {
		if p != nil && p.Alive {
			return true
		}
	}
	return false
}
