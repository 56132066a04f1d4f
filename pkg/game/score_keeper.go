package game

import (
	"fmt"
	"log"
	"math"
	"math/rand"

	"github.com/decker502/invaders/pkg/components"
	"github.com/decker502/invaders/pkg/config"
	"github.com/decker502/invaders/pkg/types"
)

// ScoreState 分数与经验的可序列化状态
type ScoreState struct {
	Score           int         `msgpack:"score"`
	PlayerScores    map[int]int `msgpack:"playerScores"`
	XP              int         `msgpack:"xp"`    // 当前等级内已获得的经验
	XPLevel         int         `msgpack:"level"` // 从 1 开始
	PendingUpgrades int         `msgpack:"pendingUpgrades"`
	EnemiesKilled   int         `msgpack:"enemiesKilled"`
	BossesDefeated  int         `msgpack:"bossesDefeated"`
	NearMisses      int         `msgpack:"nearMisses"`
}

// ScoreKeeper 汇总战斗事件中的分数与经验
//
// 经验达到 XPToNextLevel 时升级，每次升级获得一次升级选择；
// 调用方在 Apply 返回 true 后暂停关卡推进，玩家选择完成后恢复。
type ScoreKeeper struct {
	cfg   *config.ScoringConfig
	state ScoreState
}

// NewScoreKeeper 创建计分器
func NewScoreKeeper(cfg *config.ScoringConfig) *ScoreKeeper {
	return &ScoreKeeper{
		cfg: cfg,
		state: ScoreState{
			PlayerScores: make(map[int]int),
			XPLevel:      1,
		},
	}
}

// SetConfig 替换计分参数（热重载）
func (k *ScoreKeeper) SetConfig(cfg *config.ScoringConfig) {
	k.cfg = cfg
}

// Apply 累加事件中的分数与经验
//
// 参数:
//   - events: 一帧内的战斗事件
//
// 返回:
//   - bool: 本次是否升级（可能连续升级多次）
func (k *ScoreKeeper) Apply(events []components.CombatEvent) bool {
	leveledUp := false
	for _, ev := range events {
		if ev.ScoreDelta != 0 {
			k.state.Score += ev.ScoreDelta
			if ev.PlayerID > 0 {
				k.state.PlayerScores[ev.PlayerID] += ev.ScoreDelta
			}
		}
		k.state.XP += ev.XP

		switch ev.Tag {
		case components.EventEnemyDestroyed:
			k.state.EnemiesKilled++
		case components.EventBossDestroyed:
			k.state.BossesDefeated++
		case components.EventNearMiss:
			k.state.NearMisses++
		}
	}

	for need := k.XPToNextLevel(); k.state.XP >= need; need = k.XPToNextLevel() {
		k.state.XP -= need
		k.state.XPLevel++
		k.state.PendingUpgrades++
		leveledUp = true
		log.Printf("[ScoreKeeper] Reached level %d (%d upgrade(s) pending)", k.state.XPLevel, k.state.PendingUpgrades)
	}
	return leveledUp
}

// XPToNextLevel 当前等级升级所需经验
func (k *ScoreKeeper) XPToNextLevel() int {
	base := max(k.cfg.XPLevelBase, 1)
	growth := math.Max(k.cfg.XPLevelGrowth, 1)
	return max(int(math.Round(float64(base)*math.Pow(growth, float64(k.state.XPLevel-1)))), 1)
}

// Score 总分
func (k *ScoreKeeper) Score() int { return k.state.Score }

// PlayerScore 单个玩家的得分
func (k *ScoreKeeper) PlayerScore(playerID int) int { return k.state.PlayerScores[playerID] }

// XP 当前等级内的经验
func (k *ScoreKeeper) XP() int { return k.state.XP }

// XPLevel 经验等级
func (k *ScoreKeeper) XPLevel() int { return k.state.XPLevel }

// PendingUpgrades 尚未选择的升级次数
func (k *ScoreKeeper) PendingUpgrades() int { return k.state.PendingUpgrades }

// OfferUpgrades 从尚未达到上限的升级中随机抽取最多 n 个不同选项
func (k *ScoreKeeper) OfferUpgrades(mods components.ModifierSet, n int, rng *rand.Rand) []types.UpgradeType {
	available := mods.AvailableUpgrades()
	if n <= 0 || len(available) == 0 {
		return nil
	}
	offers := make([]types.UpgradeType, 0, min(n, len(available)))
	for _, i := range rng.Perm(len(available)) {
		if len(offers) == n {
			break
		}
		offers = append(offers, available[i])
	}
	return offers
}

// ChooseUpgrade 为玩家应用一次升级，消耗一次升级选择
func (k *ScoreKeeper) ChooseUpgrade(p *components.Player, upgrade types.UpgradeType) error {
	if k.state.PendingUpgrades == 0 {
		return fmt.Errorf("no upgrade pending")
	}
	if p == nil {
		return fmt.Errorf("player is nil")
	}
	if !p.Modifiers.ApplyUpgrade(upgrade) {
		return fmt.Errorf("upgrade %v is not available for player %d", upgrade, p.ID)
	}
	k.state.PendingUpgrades--
	log.Printf("[ScoreKeeper] Player %d chose %v", p.ID, upgrade)
	return nil
}

// State 返回状态副本
func (k *ScoreKeeper) State() ScoreState {
	s := k.state
	s.PlayerScores = make(map[int]int, len(k.state.PlayerScores))
	for id, v := range k.state.PlayerScores {
		s.PlayerScores[id] = v
	}
	return s
}

// Restore 用快照中的状态替换当前状态
func (k *ScoreKeeper) Restore(s ScoreState) {
	k.state = s
	k.state.PlayerScores = make(map[int]int, len(s.PlayerScores))
	for id, v := range s.PlayerScores {
		k.state.PlayerScores[id] = v
	}
	k.state.XPLevel = max(k.state.XPLevel, 1)
}
