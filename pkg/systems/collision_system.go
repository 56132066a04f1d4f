package systems

import (
	"math"
	"math/rand"
	"time"

	"github.com/decker502/invaders/pkg/components"
	"github.com/decker502/invaders/pkg/config"
	"github.com/decker502/invaders/pkg/entities"
	"github.com/decker502/invaders/pkg/systems/boss"
	"github.com/decker502/invaders/pkg/types"
	"github.com/decker502/invaders/pkg/utils"
)

// World 碰撞结算需要的全部实体
// 由 EncounterController 持有，CollisionResolver 直接修改其中的内容
type World struct {
	Players     []*components.Player
	Enemies     []*components.Enemy
	Barriers    []*components.Barrier
	PowerUps    []*components.PowerUp
	Projectiles *ProjectileRegistry
	Boss        boss.Boss // 非 Boss 关卡为 nil

	NextPowerUpID int
}

// Coop 是否为双人模式
func (w *World) Coop() bool {
	return len(w.Players) > 1
}

// Player 按 ID 查找玩家
func (w *World) Player(id int) *components.Player {
	for _, p := range w.Players {
		if p != nil && p.ID == id {
			return p
		}
	}
	return nil
}

// CollisionResolver 每帧的碰撞结算
//
// 结算顺序：
//  1. 玩家弹体按注册表顺序：Boss 子目标 → Boss 本体 → 普通敌人，先命中者生效
//  2. 伤害：本体 max(1, ceil(伤害 × 发射时的 Boss 伤害倍率))，其余为固定伤害
//  3. 穿透：PierceRemaining > 0 时递减并保留，同一目标不会被命中两次
//  4. 奖励：分数、经验、道具掉落、Boss 击败后的护盾
//  5. 未被消耗且不能穿越掩体的玩家子弹撞击掩体
//  6. 敌方弹体对玩家和掩体
//  7. 道具拾取
//  8. Boss 接触危险物与擦身而过
type CollisionResolver struct {
	cfg   *config.CombatConfig
	rng   *rand.Rand
	index *EnemyIndex

	// nearMissPending 进入擦身范围但尚未离开的 (危险物, 玩家)
	nearMissPending map[nearMissKey]bool
}

type nearMissKey struct {
	hazardID int
	playerID int
}

// NewCollisionResolver 创建碰撞结算器
//
// 参数:
//   - cfg: 战斗参数
//   - rng: 道具掉落使用的随机数源
func NewCollisionResolver(cfg *config.CombatConfig, rng *rand.Rand) *CollisionResolver {
	return &CollisionResolver{
		cfg:   cfg,
		rng:   rng,
		index: NewEnemyIndex(),

		nearMissPending: make(map[nearMissKey]bool),
	}
}

// SetConfig 替换战斗参数（热重载）
func (c *CollisionResolver) SetConfig(cfg *config.CombatConfig) {
	c.cfg = cfg
}

// Resolve 结算一帧内的所有碰撞，返回产生的事件
func (c *CollisionResolver) Resolve(now time.Duration, w *World) []components.CombatEvent {
	var events []components.CombatEvent
	removed := make(map[int]bool)

	c.index.Sync(w.Enemies)

	for _, p := range w.Projectiles.All() {
		if p.Faction != types.FactionPlayer || !p.IsArmed(now) {
			continue
		}
		if p.IsLaser() {
			events = append(events, c.resolveLaser(now, p, w)...)
			continue
		}
		hitEvents, consumed := c.resolvePlayerBullet(now, p, w)
		events = append(events, hitEvents...)
		if consumed {
			removed[p.ID] = true
			continue
		}
		if !p.CanPhaseBarriers {
			if ev, ok := c.hitBarrier(p, w); ok {
				events = append(events, ev)
				removed[p.ID] = true
			}
		}
	}

	for _, p := range w.Projectiles.All() {
		if removed[p.ID] || !p.Faction.Hostile() || !p.IsArmed(now) {
			continue
		}
		hitEvents, consumed := c.resolveHostile(now, p, w)
		events = append(events, hitEvents...)
		if consumed {
			removed[p.ID] = true
		}
	}
	w.Projectiles.RemoveSet(removed)

	events = append(events, c.collectPowerUps(now, w)...)
	events = append(events, c.resolveHazards(now, w)...)
	return events
}

// resolvePlayerBullet 普通玩家子弹，返回事件和子弹是否被消耗
func (c *CollisionResolver) resolvePlayerBullet(now time.Duration, p *components.Projectile, w *World) ([]components.CombatEvent, bool) {
	if b := w.Boss; b != nil && b.Base().Active() {
		for _, region := range b.DamageableRegions() {
			key := components.HitKey(components.HitTargetBossRegion, region.ID)
			if p.HasHit(key) || !region.HitTest(p) {
				continue
			}
			p.MarkHit(key, now)
			events := c.damageBoss(now, p, b, region, w)
			return events, !pierce(p)
		}
	}

	for _, i := range c.index.Candidates(p.Bounds()) {
		e := w.Enemies[i]
		key := components.HitKey(components.HitTargetEnemy, e.ID)
		if !e.Alive() || p.HasHit(key) || !p.IntersectsRect(e.Rect()) {
			continue
		}
		p.MarkHit(key, now)
		events := c.damageEnemy(now, p, e, p.Damage, w)
		return events, !pierce(p)
	}
	return nil, false
}

// pierce 命中后消耗一次穿透，返回子弹是否保留
func pierce(p *components.Projectile) bool {
	if p.PierceRemaining > 0 {
		p.PierceRemaining--
		return true
	}
	return false
}

// resolveLaser 激光命中所有重叠的 Boss 区域和敌人，同一目标按 LaserRehitInterval 重复伤害
func (c *CollisionResolver) resolveLaser(now time.Duration, p *components.Projectile, w *World) []components.CombatEvent {
	var events []components.CombatEvent
	rehit := c.cfg.Weapons.LaserRehitInterval.Duration()

	ready := func(key int64) bool {
		last, ok := p.LastHitAt(key)
		return !ok || now-last >= rehit
	}

	if b := w.Boss; b != nil && b.Base().Active() {
		regions := b.DamageableRegions()
		for i := 0; i < len(regions) && b.Base().Active(); i++ {
			region := regions[i]
			key := components.HitKey(components.HitTargetBossRegion, region.ID)
			if !ready(key) || !region.HitTest(p) {
				continue
			}
			p.MarkHit(key, now)
			hit := c.damageBoss(now, p, b, region, w)
			events = append(events, hit...)
			if len(hit) > 0 && hit[0].Tag == components.EventSubTargetDestroyed {
				// 摧毁子目标可能暴露本体，重新取区域；已命中的区域由 HitKeys 跳过
				regions = b.DamageableRegions()
				i = -1
			}
		}
	}

	for _, i := range c.index.Candidates(p.Bounds()) {
		e := w.Enemies[i]
		key := components.HitKey(components.HitTargetEnemy, e.ID)
		if !e.Alive() || !ready(key) || !p.IntersectsRect(e.Rect()) {
			continue
		}
		p.MarkHit(key, now)
		events = append(events, c.damageEnemy(now, p, e, p.Damage, w)...)
	}
	return events
}

// damageEnemy 对普通敌人造成伤害并结算击杀奖励
func (c *CollisionResolver) damageEnemy(now time.Duration, p *components.Projectile, e *components.Enemy, amount int, w *World) []components.CombatEvent {
	if !e.TakeDamage(max(amount, 1)) {
		return nil
	}
	cx, cy := e.Rect().Center()
	events := []components.CombatEvent{{
		Tag:        components.EventEnemyDestroyed,
		X:          cx,
		Y:          cy,
		ScoreDelta: c.cfg.Scoring.EnemyScore,
		XP:         c.cfg.Scoring.EnemyXP,
		PlayerID:   p.OwnerID,
	}}
	if ev, ok := c.rollPowerUp(now, p.OwnerID, cx, cy, w); ok {
		events = append(events, ev)
	}
	return events
}

// rollPowerUp 击杀普通敌人时掉落道具
// 击杀者持有激光道具或激光仍在场时不掉落
func (c *CollisionResolver) rollPowerUp(now time.Duration, ownerID int, x, y float64, w *World) (components.CombatEvent, bool) {
	if owner := w.Player(ownerID); owner != nil && (owner.HasLaser || owner.LaserActive) {
		return components.CombatEvent{}, false
	}
	chance := c.cfg.PowerUps.Chance
	if w.Coop() {
		chance *= c.cfg.PowerUps.CoopFactor
	}
	if chance <= 0 || c.rng.Float64() >= chance {
		return components.CombatEvent{}, false
	}

	pu := entities.NewPowerUp(&c.cfg.PowerUps, entities.RandomPowerUpType(c.rng), x, y, now)
	w.NextPowerUpID = max(w.NextPowerUpID, 1)
	pu.ID = w.NextPowerUpID
	w.NextPowerUpID++
	w.PowerUps = append(w.PowerUps, pu)
	return components.CombatEvent{Tag: components.EventPowerUpSpawned, X: x, Y: y, RegionID: int(pu.Type)}, true
}

// damageBoss 对 Boss 区域造成伤害并结算奖励
func (c *CollisionResolver) damageBoss(now time.Duration, p *components.Projectile, b boss.Boss, region boss.Region, w *World) []components.CombatEvent {
	base := b.Base()
	amount := max(p.Damage, 1)
	if region.MainBody {
		amount = max(1, int(math.Ceil(float64(p.Damage)*p.DamageMultiplier)))
	}

	x, y := region.Rect.Center()
	ev := components.CombatEvent{X: x, Y: y, PlayerID: p.OwnerID, BossType: base.Type, RegionID: region.ID}

	switch b.ApplyDamage(region.ID, amount, now) {
	case boss.DamageHit:
		ev.Tag = components.EventSubTargetHit
		if region.MainBody {
			ev.Tag = components.EventBossMainBodyHit
		}
		return []components.CombatEvent{ev}

	case boss.DamageSubTargetDestroyed:
		idx := max(base.EncounterIndex, 1)
		ev.Tag = components.EventSubTargetDestroyed
		ev.ScoreDelta = c.cfg.Scoring.SubTargetScore * idx
		ev.XP = c.cfg.Scoring.SubTargetXP * idx
		return []components.CombatEvent{ev}

	case boss.DamageMainBodyDestroyed:
		return c.BossDefeatRewards(b, w.Players, p.OwnerID)
	}
	return nil
}

// BossDefeatRewards Boss 被击败的奖励事件
// 分数/经验乘以遭遇次数；拥有 HasPostBossShield 的玩家获得护盾
// 小行星带不经过伤害结算，由 EncounterController 在其胜利时调用
func (c *CollisionResolver) BossDefeatRewards(b boss.Boss, players []*components.Player, playerID int) []components.CombatEvent {
	base := b.Base()
	idx := max(base.EncounterIndex, 1)
	cx, cy := base.Center()

	events := []components.CombatEvent{{
		Tag:        components.EventBossDestroyed,
		X:          cx,
		Y:          cy,
		ScoreDelta: c.cfg.Scoring.BossScore * idx,
		XP:         c.cfg.Scoring.BossXP * idx,
		PlayerID:   playerID,
		BossType:   base.Type,
	}}

	charges := max(c.cfg.Encounter.PostBossShieldCharges, 1)
	for _, pl := range players {
		if pl == nil || !pl.Modifiers.HasPostBossShield {
			continue
		}
		pl.ShieldCharges += charges
		events = append(events, components.CombatEvent{
			Tag:      components.EventShieldGranted,
			X:        pl.CenterX(),
			Y:        pl.Y,
			PlayerID: pl.ID,
		})
	}
	return events
}

// hitBarrier 弹体撞击第一个重叠的掩体方块
func (c *CollisionResolver) hitBarrier(p *components.Projectile, w *World) (components.CombatEvent, bool) {
	bounds := p.Bounds()
	for _, barrier := range w.Barriers {
		i := barrier.FirstOverlap(bounds)
		if i < 0 {
			continue
		}
		x, y := barrier.Blocks[i].Rect().Center()
		ev := components.CombatEvent{Tag: components.EventBarrierHit, X: x, Y: y, PlayerID: p.OwnerID, RegionID: barrier.ID}
		if barrier.HitBlock(i) {
			ev.Tag = components.EventBarrierDestroyed
		}
		return ev, true
	}
	return components.CombatEvent{}, false
}

// resolveHostile 敌方弹体对玩家和掩体，返回事件和弹体是否被消耗
// 激光不会因命中玩家而消失，也不受掩体阻挡
func (c *CollisionResolver) resolveHostile(now time.Duration, p *components.Projectile, w *World) ([]components.CombatEvent, bool) {
	var events []components.CombatEvent
	for _, pl := range w.Players {
		if pl == nil || !pl.Alive || !p.IntersectsRect(pl.Rect()) {
			continue
		}
		cx, cy := p.Center()
		ev, outcome := c.damagePlayer(now, pl, cx, cy)
		if !outcome.Applied() {
			continue
		}
		events = append(events, ev)
		if !p.IsLaser() {
			return events, true
		}
	}
	if p.IsLaser() {
		return events, false
	}

	if ev, ok := c.hitBarrier(p, w); ok {
		events = append(events, ev)
		return events, true
	}
	return events, false
}

// damagePlayer 玩家受到一次伤害
func (c *CollisionResolver) damagePlayer(now time.Duration, pl *components.Player, x, y float64) (components.CombatEvent, components.DamageOutcome) {
	outcome := pl.TakeDamage(now, c.cfg.Player.RespawnImmunity.Duration())
	ev := components.CombatEvent{X: x, Y: y, PlayerID: pl.ID}
	switch outcome {
	case components.DamageShielded:
		ev.Tag = components.EventPlayerShielded
	case components.DamageTaken:
		ev.Tag = components.EventPlayerHit
	case components.DamageKilled:
		ev.Tag = components.EventPlayerDied
	}
	return ev, outcome
}

// collectPowerUps 存活玩家拾取道具
func (c *CollisionResolver) collectPowerUps(now time.Duration, w *World) []components.CombatEvent {
	var events []components.CombatEvent
	kept := w.PowerUps[:0]
	for _, pu := range w.PowerUps {
		collector := c.touchingPlayer(pu.Rect(), w)
		if collector == nil {
			kept = append(kept, pu)
			continue
		}
		collector.ActivatePowerUp(pu.Type, now, c.cfg.Player.PowerUpDuration.Duration())
		x, y := pu.Rect().Center()
		events = append(events, components.CombatEvent{
			Tag:        components.EventPowerUpPickedUp,
			X:          x,
			Y:          y,
			ScoreDelta: c.cfg.Scoring.PowerUpScore,
			PlayerID:   collector.ID,
			RegionID:   int(pu.Type),
		})
	}
	for i := len(kept); i < len(w.PowerUps); i++ {
		w.PowerUps[i] = nil
	}
	w.PowerUps = kept
	return events
}

func (c *CollisionResolver) touchingPlayer(r utils.Rect, w *World) *components.Player {
	for _, pl := range w.Players {
		if pl != nil && pl.Alive && pl.Rect().Intersects(r) {
			return pl
		}
	}
	return nil
}

// resolveHazards Boss 接触危险物：小行星（接触后移除）和下压的手
// 小行星与玩家边缘距离在 NearMissBand 内时奖励一次擦身而过经验
func (c *CollisionResolver) resolveHazards(now time.Duration, w *World) []components.CombatEvent {
	if w.Boss == nil || !w.Boss.Base().Active() {
		clear(c.nearMissPending)
		return nil
	}
	src, ok := w.Boss.(boss.HazardSource)
	if !ok {
		clear(c.nearMissPending)
		return nil
	}

	var events []components.CombatEvent
	bossType := w.Boss.Base().Type
	hazards := src.Hazards()
	c.pruneNearMiss(hazards)
	for _, h := range hazards {
		for _, pl := range w.Players {
			if pl == nil || !pl.Alive {
				continue
			}
			rect := pl.Rect()
			contact := false
			if h.Circle {
				contact = utils.CircleIntersectsRect(h.X, h.Y, h.Radius, rect)
			} else {
				contact = h.Rect.Intersects(rect)
			}

			key := nearMissKey{hazardID: h.ID, playerID: pl.ID}
			if contact {
				delete(c.nearMissPending, key)
				x, y := h.X, h.Y
				if !h.Circle {
					x, y = h.Rect.Center()
				}
				if ev, outcome := c.damagePlayer(now, pl, x, y); outcome.Applied() {
					ev.BossType = bossType
					events = append(events, ev)
				}
				if h.Consumable {
					src.ConsumeHazard(h.ID)
					c.dropNearMiss(h.ID)
					events = append(events, components.CombatEvent{
						Tag: components.EventAsteroidImpact, X: x, Y: y, PlayerID: pl.ID, BossType: bossType, RegionID: h.ID,
					})
					break
				}
				continue
			}

			if !h.Circle || !h.NearMissEligible {
				continue
			}
			// 进入擦身范围只记下；离开范围且从未接触时才发放经验
			if utils.CircleRectGap(h.X, h.Y, h.Radius, rect) <= c.cfg.Scoring.NearMissBand {
				c.nearMissPending[key] = true
				continue
			}
			if !c.nearMissPending[key] {
				continue
			}
			delete(c.nearMissPending, key)
			if src.MarkNearMiss(h.ID) {
				h.NearMissEligible = false
				events = append(events, components.CombatEvent{
					Tag: components.EventNearMiss, X: h.X, Y: h.Y, XP: c.cfg.Scoring.NearMissXP, PlayerID: pl.ID, BossType: bossType, RegionID: h.ID,
				})
			}
		}
	}
	return events
}

// pruneNearMiss 丢弃已不存在的危险物的擦身记录
func (c *CollisionResolver) pruneNearMiss(hazards []boss.Hazard) {
	if len(c.nearMissPending) == 0 {
		return
	}
	live := make(map[int]bool, len(hazards))
	for _, h := range hazards {
		live[h.ID] = true
	}
	for key := range c.nearMissPending {
		if !live[key.hazardID] {
			delete(c.nearMissPending, key)
		}
	}
}

func (c *CollisionResolver) dropNearMiss(hazardID int) {
	for key := range c.nearMissPending {
		if key.hazardID == hazardID {
			delete(c.nearMissPending, key)
		}
	}
}
