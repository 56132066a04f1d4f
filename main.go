package main

import (
	"errors"
	"flag"
	"log"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/invaders/pkg/components"
	"github.com/decker502/invaders/pkg/config"
	"github.com/decker502/invaders/pkg/embedded"
	"github.com/decker502/invaders/pkg/game"
	"github.com/decker502/invaders/pkg/systems"
	"github.com/decker502/invaders/pkg/types"
)

const (
	combatConfigPath = "data/combat.yaml"
	upgradeOfferSize = 3
	frameStep        = time.Second / 60
)

var (
	tunablesPath = flag.String("tunables", "", "监听并热重载的战斗参数文件（为空时使用内置参数）")
	coopFlag     = flag.Bool("coop", false, "双人模式")
	seedFlag     = flag.Int64("seed", 0, "随机种子（0 表示使用当前时间）")
	bossFlag     = flag.String("boss", "", "强制第一个 Boss 的类型")
	loadFlag     = flag.Bool("load", false, "启动时读取快速存档")
)

var errQuit = errors.New("quit")

// Game 实现 ebiten.Game，把键盘输入转换为玩家意图并驱动遭遇控制器
type Game struct {
	cfg      *config.CombatConfig
	rng      *rand.Rand
	coop     bool
	now      time.Duration
	paused   bool
	message  string
	msgUntil time.Duration

	controller *systems.EncounterController
	keeper     *game.ScoreKeeper
	settings   *game.SettingsManager
	saves      *game.SaveManager
	watcher    *config.TunablesWatcher

	offers        []types.UpgradeType
	upgradeTarget int // 本次升级选择属于的玩家下标
	lastEvents    []components.CombatEvent
}

func newGame(cfg *config.CombatConfig, rng *rand.Rand, coop bool, settings *game.SettingsManager, saves *game.SaveManager) *Game {
	g := &Game{
		cfg:      cfg,
		rng:      rng,
		coop:     coop,
		settings: settings,
		saves:    saves,
	}
	g.reset()
	return g
}

// reset 开始新的一局
func (g *Game) reset() {
	players := 1
	if g.coop {
		players = 2
	}
	g.controller = systems.NewEncounterController(g.cfg, g.rng, players)
	g.keeper = game.NewScoreKeeper(&g.cfg.Scoring)
	g.now = 0
	g.offers = nil
	g.upgradeTarget = 0
	log.Printf("[Game] New session (players=%d)", players)
}

// Update 每帧调用
func (g *Game) Update() error {
	g.drainTunables()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return errQuit
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.settings.ToggleHitboxes()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		g.quickSave()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF9) {
		g.quickLoad()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}

	if g.controller.Phase() == components.PhaseGameOver {
		if inpututil.IsKeyJustPressed(ebiten.KeyR) {
			g.reset()
		}
		return nil
	}

	g.handleUpgradeChoice()
	if g.paused {
		return nil
	}

	g.now += frameStep
	events := g.controller.Tick(g.now, g.readIntents())
	if g.keeper.Apply(events) {
		g.controller.SetAwaitingUpgrade(true)
	}
	g.lastEvents = events

	for _, ev := range events {
		if ev.Tag == components.EventLevelComplete && g.settings.Settings().AutoSave && g.keeper.PendingUpgrades() == 0 {
			g.quickSave()
		}
	}
	return nil
}

// readIntents 玩家 1：方向键 + 空格；玩家 2：A/D + W
func (g *Game) readIntents() []components.PlayerIntent {
	intents := []components.PlayerIntent{{
		PlayerID: 1,
		MoveX:    axis(ebiten.KeyLeft, ebiten.KeyRight),
		Shoot:    ebiten.IsKeyPressed(ebiten.KeySpace),
	}}
	if g.coop {
		intents = append(intents, components.PlayerIntent{
			PlayerID: 2,
			MoveX:    axis(ebiten.KeyA, ebiten.KeyD),
			Shoot:    ebiten.IsKeyPressed(ebiten.KeyW),
		})
	}
	return intents
}

func axis(neg, pos ebiten.Key) float64 {
	v := 0.0
	if ebiten.IsKeyPressed(neg) {
		v--
	}
	if ebiten.IsKeyPressed(pos) {
		v++
	}
	return v
}

// handleUpgradeChoice 关卡完成后轮流为玩家提供升级选项，按 1/2/3 选择
func (g *Game) handleUpgradeChoice() {
	if g.keeper.PendingUpgrades() == 0 || g.controller.Phase() != components.PhaseLevelComplete {
		return
	}

	players := g.controller.Players()
	if g.offers == nil {
		for range players {
			target := players[g.upgradeTarget%len(players)]
			if g.offers = g.keeper.OfferUpgrades(target.Modifiers, upgradeOfferSize, g.rng); len(g.offers) > 0 {
				break
			}
			g.upgradeTarget++
		}
		if len(g.offers) == 0 {
			// 所有玩家都已满级
			g.offers = nil
			g.controller.ResumeAfterUpgrade()
			return
		}
	}

	target := players[g.upgradeTarget%len(players)]
	keys := []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3}
	for i, key := range keys {
		if i >= len(g.offers) || !inpututil.IsKeyJustPressed(key) {
			continue
		}
		if err := g.keeper.ChooseUpgrade(target, g.offers[i]); err != nil {
			log.Printf("[Game] Warning: Upgrade rejected: %v", err)
			return
		}
		g.offers = nil
		g.upgradeTarget++
		if g.keeper.PendingUpgrades() == 0 {
			g.controller.ResumeAfterUpgrade()
			if g.settings.Settings().AutoSave {
				g.quickSave()
			}
		}
		return
	}
}

// drainTunables 应用热重载的参数，不阻塞
func (g *Game) drainTunables() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case cfg, ok := <-g.watcher.Configs:
			if !ok {
				g.watcher = nil
				return
			}
			g.cfg = cfg
			g.controller.SetConfig(cfg)
			g.keeper.SetConfig(&cfg.Scoring)
			g.flash("tunables reloaded")
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			g.flash("tunables rejected: " + err.Error())
		default:
			return
		}
	}
}

func (g *Game) quickSave() {
	snap := game.NewSnapshot(g.controller, g.keeper, time.Now())
	if err := g.saves.SaveSnapshot(game.QuickSaveSlot, snap); err != nil {
		log.Printf("[Game] Warning: Quick save failed: %v", err)
		g.flash("save failed")
		return
	}
	g.flash("saved")
}

func (g *Game) quickLoad() {
	snap, err := g.saves.LoadSnapshot(game.QuickSaveSlot)
	if err != nil {
		log.Printf("[Game] Warning: Quick load failed: %v", err)
		g.flash("no save")
		return
	}
	if err := snap.RestoreInto(g.controller, g.keeper); err != nil {
		log.Printf("[Game] Warning: Restore failed: %v", err)
		g.flash("save is corrupted")
		return
	}
	g.now = snap.Encounter.LastTick
	g.coop = len(g.controller.Players()) > 1
	g.offers = nil
	g.upgradeTarget = 0
	g.flash("loaded")
}

func (g *Game) flash(msg string) {
	g.message = msg
	g.msgUntil = g.now + 2*time.Second
}

// Layout 逻辑屏幕尺寸
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return int(g.cfg.Screen.Width), int(g.cfg.Screen.Height)
}

func main() {
	flag.Parse()

	embedded.Init(dataFS)
	cfg, err := config.LoadEmbeddedCombatConfig(combatConfigPath)
	if err != nil {
		log.Fatalf("Failed to load combat config: %v", err)
	}

	var watcher *config.TunablesWatcher
	if *tunablesPath != "" {
		if cfg, err = config.LoadCombatConfig(*tunablesPath); err != nil {
			log.Fatalf("Failed to load tunables: %v", err)
		}
		if watcher, err = config.NewTunablesWatcher(*tunablesPath); err != nil {
			log.Printf("Warning: Hot reload disabled: %v", err)
		} else {
			defer watcher.Close()
		}
	}

	gdataManager, err := gdata.Open(gdata.Config{AppName: "invaders"})
	if err != nil {
		log.Printf("Warning: Persistent storage unavailable: %v (saves stay in memory)", err)
		gdataManager = nil
	}
	settings := game.NewSettingsManager(gdataManager)
	saves := game.NewSaveManager(gdataManager)

	seed := *seedFlag
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Printf("Random seed: %d", seed)

	g := newGame(cfg, rand.New(rand.NewSource(seed)), *coopFlag || settings.Settings().Coop, settings, saves)
	g.watcher = watcher

	if *bossFlag != "" {
		bt, err := types.ParseBossType(*bossFlag)
		if err != nil {
			log.Fatalf("Invalid -boss: %v", err)
		}
		g.controller.ForceNextBoss(bt)
	}
	if *loadFlag {
		g.quickLoad()
	}

	ebiten.SetWindowSize(int(cfg.Screen.Width), int(cfg.Screen.Height))
	ebiten.SetWindowTitle("Invaders")
	ebiten.SetFullscreen(settings.Settings().Fullscreen)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, errQuit) {
		log.Fatal(err)
	}
	if err := settings.Save(); err != nil {
		log.Printf("Warning: Failed to save settings: %v", err)
	}
}
