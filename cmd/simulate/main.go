// simulate 无窗口运行战斗模拟，用于调整参数和回归检查
//
// 用法:
//
//	go run ./cmd/simulate -seconds 300 -seed 7 -coop -boss bullet_hell
package main

import (
	"flag"
	"log"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/decker502/invaders/pkg/components"
	"github.com/decker502/invaders/pkg/config"
	"github.com/decker502/invaders/pkg/game"
	"github.com/decker502/invaders/pkg/systems"
	"github.com/decker502/invaders/pkg/types"
)

var (
	configPath   = flag.String("config", "data/combat.yaml", "战斗参数文件（为空时使用默认参数）")
	seconds      = flag.Float64("seconds", 120, "模拟时长（秒）")
	seed         = flag.Int64("seed", 1, "随机种子")
	coop         = flag.Bool("coop", false, "双人模式")
	bossName     = flag.String("boss", "", "强制第一个 Boss 的类型")
	resumePath   = flag.String("resume", "", "从快照文件继续")
	snapshotPath = flag.String("snapshot", "", "结束时把快照写入该文件")
	verbose      = flag.Bool("verbose", false, "输出每个流程事件")
)

const step = time.Second / 60

// simulation 模拟运行状态
type simulation struct {
	controller *systems.EncounterController
	keeper     *game.ScoreKeeper
	rng        *rand.Rand
	eventCount map[components.EventTag]int
	maxLevel   int
}

func main() {
	flag.Parse()
	log.SetOutput(os.Stdout)

	cfg := config.DefaultCombatConfig()
	if *configPath != "" {
		loaded, err := config.LoadCombatConfig(*configPath)
		if err != nil {
			log.Fatalf("Failed to load combat config: %v", err)
		}
		cfg = loaded
	}

	players := 1
	if *coop {
		players = 2
	}
	rng := rand.New(rand.NewSource(*seed))
	sim := &simulation{
		controller: systems.NewEncounterController(cfg, rng, players),
		keeper:     game.NewScoreKeeper(&cfg.Scoring),
		rng:        rng,
		eventCount: make(map[components.EventTag]int),
	}

	start := time.Duration(0)
	if *resumePath != "" {
		snap, err := game.LoadSnapshotFile(*resumePath)
		if err != nil {
			log.Fatalf("Failed to load snapshot: %v", err)
		}
		if err := snap.RestoreInto(sim.controller, sim.keeper); err != nil {
			log.Fatalf("Failed to restore snapshot: %v", err)
		}
		start = snap.Encounter.LastTick
	}
	if *bossName != "" {
		bt, err := types.ParseBossType(*bossName)
		if err != nil {
			log.Fatalf("Invalid -boss: %v", err)
		}
		sim.controller.ForceNextBoss(bt)
	}

	end := start + time.Duration(*seconds*float64(time.Second))
	now := start
	for ; now < end && sim.controller.Phase() != components.PhaseGameOver; now += step {
		sim.tick(now)
	}

	sim.report(now - start)
	if *snapshotPath != "" {
		if err := game.SaveSnapshotFile(game.NewSnapshot(sim.controller, sim.keeper, time.Now()), *snapshotPath); err != nil {
			log.Fatalf("Failed to write snapshot: %v", err)
		}
	}
}

func (s *simulation) tick(now time.Duration) {
	events := s.controller.Tick(now, s.autopilot())
	if s.keeper.Apply(events) {
		s.controller.SetAwaitingUpgrade(true)
	}
	for _, ev := range events {
		s.eventCount[ev.Tag]++
		if *verbose {
			switch ev.Tag {
			case components.EventLevelStarted, components.EventBossSpawned, components.EventBossDefeated,
				components.EventCubePhaseChanged, components.EventPlayerDied, components.EventGameOver:
				log.Printf("[%7.2fs] %s level=%d boss=%v player=%d", now.Seconds(), ev.Tag, ev.Level, ev.BossType, ev.PlayerID)
			}
		}
	}
	s.maxLevel = max(s.maxLevel, s.controller.State().Level)

	if s.controller.Phase() == components.PhaseLevelComplete && s.keeper.PendingUpgrades() > 0 {
		s.chooseUpgrades()
	}
}

// autopilot 每个玩家追踪最近的目标并持续射击
func (s *simulation) autopilot() []components.PlayerIntent {
	w := s.controller.World()
	intents := make([]components.PlayerIntent, 0, len(w.Players))
	for _, p := range w.Players {
		if !p.Alive {
			continue
		}
		targetX, ok := s.targetX(p)
		intent := components.PlayerIntent{PlayerID: p.ID, Shoot: ok}
		if ok {
			dx := targetX - p.CenterX()
			if math.Abs(dx) > p.W/4 {
				intent.MoveX = math.Copysign(1, dx)
			}
		}
		intents = append(intents, intent)
	}
	return intents
}

func (s *simulation) targetX(p *components.Player) (float64, bool) {
	w := s.controller.World()
	if w.Boss != nil {
		regions := w.Boss.DamageableRegions()
		if len(regions) == 0 {
			return 0, false
		}
		r := regions[0].Rect
		return r.X + r.W/2, true
	}
	best, found := 0.0, false
	bestDist := math.Inf(1)
	for _, e := range w.Enemies {
		if !e.Alive() {
			continue
		}
		cx := e.X + e.W/2
		if d := math.Abs(cx - p.CenterX()); d < bestDist {
			best, bestDist, found = cx, d, true
		}
	}
	return best, found
}

// chooseUpgrades 轮流为玩家选择第一个可用升级
func (s *simulation) chooseUpgrades() {
	players := s.controller.Players()
	for i := 0; s.keeper.PendingUpgrades() > 0 && i < len(players)*len(types.AllUpgradeTypes); i++ {
		p := players[i%len(players)]
		offers := s.keeper.OfferUpgrades(p.Modifiers, 3, s.rng)
		if len(offers) == 0 {
			continue
		}
		if err := s.keeper.ChooseUpgrade(p, offers[0]); err != nil {
			log.Printf("Warning: %v", err)
			return
		}
	}
	s.controller.ResumeAfterUpgrade()
}

func (s *simulation) report(elapsed time.Duration) {
	st := s.keeper.State()
	log.Printf("=== Simulation finished after %.1fs ===", elapsed.Seconds())
	log.Printf("Phase: %v, level %d (max %d)", s.controller.Phase(), s.controller.State().Level, s.maxLevel)
	log.Printf("Score: %d, XP level %d, upgrades pending %d", st.Score, st.XPLevel, st.PendingUpgrades)
	log.Printf("Enemies killed: %d, bosses defeated: %d, near misses: %d", st.EnemiesKilled, s.controller.BossesDefeated(), st.NearMisses)
	for _, bt := range types.AllBossTypes {
		if n := s.controller.EncounterCount(bt); n > 0 {
			log.Printf("  %v encounters: %d", bt, n)
		}
	}
	for _, p := range s.controller.Players() {
		log.Printf("  player %d: lives=%d alive=%v score=%d modifiers=%+v", p.ID, p.Lives, p.Alive, s.keeper.PlayerScore(p.ID), p.Modifiers)
	}
	log.Printf("Events: player_hit=%d, boss_fired=%d, power_ups=%d",
		s.eventCount[components.EventPlayerHit], s.eventCount[components.EventBossFired], s.eventCount[components.EventPowerUpPickedUp])
}
