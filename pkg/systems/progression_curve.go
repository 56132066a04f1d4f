package systems

import (
	"math"

	"github.com/decker502/invaders/pkg/config"
)

// ProgressionCurve 难度曲线
// 负责 Boss 关卡排期、关卡内敌人速度倍率和关卡间基础速度，
// 所有方法都是参数的纯函数，不持有计数器
type ProgressionCurve struct {
	cfg        config.ProgressionConfig
	thresholds []config.SpeedThreshold // 按 Remaining 降序
}

// NewProgressionCurve 创建难度曲线
// 配置应已通过 config.ValidateCombatConfig 校验
func NewProgressionCurve(cfg *config.ProgressionConfig) *ProgressionCurve {
	return &ProgressionCurve{
		cfg:        *cfg,
		thresholds: cfg.SortedSpeedThresholds(),
	}
}

// IsBossLevel 判断关卡是否为 Boss 关卡
// 排期: L0, L0+G0, L0+G0+(G0+inc), ...
// 默认参数 (4, 5, 1) 得到 4, 9, 15, 22, 30, ...
func (c *ProgressionCurve) IsBossLevel(level int) bool {
	return c.BossOrdinal(level) > 0
}

// BossOrdinal 返回 Boss 关卡的序号（第一个 Boss 关卡为 1），非 Boss 关卡返回 0
func (c *ProgressionCurve) BossOrdinal(level int) int {
	if level < c.cfg.FirstBossLevel {
		return 0
	}
	bossLevel := c.cfg.FirstBossLevel
	gap := c.cfg.InitialBossGap
	for ordinal := 1; bossLevel <= level; ordinal++ {
		if bossLevel == level {
			return ordinal
		}
		bossLevel += gap
		gap += c.cfg.BossGapIncrement
	}
	return 0
}

// BossLevels 返回 [1, upTo] 内的所有 Boss 关卡
func (c *ProgressionCurve) BossLevels(upTo int) []int {
	var levels []int
	bossLevel := c.cfg.FirstBossLevel
	gap := c.cfg.InitialBossGap
	for bossLevel <= upTo {
		if bossLevel >= 1 {
			levels = append(levels, bossLevel)
		}
		bossLevel += gap
		gap += c.cfg.BossGapIncrement
	}
	return levels
}

// EnemySpeedMultiplier 计算关卡内敌人速度倍率
//
// 参数:
//   - total: 本关敌人总数
//   - remaining: 剩余敌人数（限制在 [0, total]）
//   - level: 当前关卡（两种策略目前都不使用）
//
// 返回:
//   - float64: 速度倍率，随 remaining 减少单调不减；total <= 0 时为 1.0
func (c *ProgressionCurve) EnemySpeedMultiplier(total, remaining, level int) float64 {
	if total <= 0 {
		return 1.0
	}
	if remaining < 0 {
		remaining = 0
	} else if remaining > total {
		remaining = total
	}

	if c.cfg.SpeedPolicy == config.SpeedPolicyFormula {
		return c.formulaMultiplier(total, remaining)
	}
	return c.thresholdMultiplier(remaining)
}

// thresholdMultiplier 取不小于 remaining 的最低阈值的倍率，高于所有阈值时为 1.0
func (c *ProgressionCurve) thresholdMultiplier(remaining int) float64 {
	multiplier := 1.0
	for _, th := range c.thresholds {
		if remaining > th.Remaining {
			break
		}
		multiplier = th.Multiplier
	}
	return multiplier
}

// formulaMultiplier 1 + (killed/total)^exponent * maxMultiplier，剩余很少时追加 FinalBoost
func (c *ProgressionCurve) formulaMultiplier(total, remaining int) float64 {
	killed := float64(total-remaining) / float64(total)
	exponent := c.cfg.FormulaExponent
	if exponent <= 0 {
		exponent = 1
	}
	multiplier := 1 + math.Pow(killed, exponent)*c.cfg.FormulaMaxMultiplier
	if remaining <= c.cfg.FinalThreshold {
		multiplier += c.cfg.FinalBoost
	}
	return multiplier
}

// BaseEnemySpeed 计算关卡的基础敌人速度（像素/秒）
// levels 策略按 (level-1)/EveryNLevels 递增，bosses 策略按已击败 Boss 数递增
func (c *ProgressionCurve) BaseEnemySpeed(level, bossesDefeated int) float64 {
	steps := 0
	switch c.cfg.BaseSpeedPolicy {
	case config.BaseSpeedPolicyBosses:
		steps = max(bossesDefeated, 0)
	default:
		every := max(c.cfg.EveryNLevels, 1)
		steps = max(level-1, 0) / every
	}
	return c.cfg.BaseSpeed + c.cfg.SpeedIncrement*float64(steps)
}
