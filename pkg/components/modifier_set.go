package components

import (
	"math"

	"github.com/decker502/invaders/pkg/types"
)

// 升级步进与上限
const (
	DefaultAmmoCapacity = 5 // 同时在场的玩家子弹上限

	MaxPierceHits        = 5
	BulletLengthStep     = 0.25
	MaxBulletLength      = 2.0
	BossDamageStep       = 0.25
	MaxBossDamage        = 3.0
	AmmoCapacityStep     = 1
	MaxAmmoCapacity      = 10
	MaxReinforcedBarrier = 2
)

// ModifierSet 玩家的永久升级状态
// 战斗中只读；只在关卡之间由升级选择流程通过 ApplyUpgrade 修改
type ModifierSet struct {
	PierceHits             int     // 子弹可额外穿透的目标数
	BulletLengthMultiplier float64 // 子弹长度倍率
	CanPhaseBarriers       bool    // 子弹穿过掩体
	BossDamageMultiplier   float64 // 对 Boss 本体的伤害倍率
	AmmoCapacity           int     // 同时在场的子弹上限
	HasExtraBullet         bool    // 每次射击额外发射一颗子弹
	ReinforcedBarrierLevel int     // 掩体强化等级（每级 +1 承受次数）
	HasPostBossShield      bool    // 击败 Boss 后获得护盾
}

// NewModifierSet 返回未升级的默认值
func NewModifierSet() ModifierSet {
	return ModifierSet{
		BulletLengthMultiplier: 1.0,
		BossDamageMultiplier:   1.0,
		AmmoCapacity:           DefaultAmmoCapacity,
	}
}

// ApplyUpgrade 应用一次升级
// 返回 false 表示该升级已达上限，状态未改变
func (m *ModifierSet) ApplyUpgrade(upgrade types.UpgradeType) bool {
	switch upgrade {
	case types.UpgradePierce:
		if m.PierceHits >= MaxPierceHits {
			return false
		}
		m.PierceHits++
	case types.UpgradeBulletLength:
		if m.BulletLengthMultiplier >= MaxBulletLength {
			return false
		}
		m.BulletLengthMultiplier = math.Min(MaxBulletLength, m.BulletLengthMultiplier+BulletLengthStep)
	case types.UpgradeBarrierPhase:
		if m.CanPhaseBarriers {
			return false
		}
		m.CanPhaseBarriers = true
	case types.UpgradeBossDamage:
		if m.BossDamageMultiplier >= MaxBossDamage {
			return false
		}
		m.BossDamageMultiplier = math.Min(MaxBossDamage, m.BossDamageMultiplier+BossDamageStep)
	case types.UpgradeAmmoCapacity:
		if m.AmmoCapacity >= MaxAmmoCapacity {
			return false
		}
		m.AmmoCapacity = min(MaxAmmoCapacity, m.AmmoCapacity+AmmoCapacityStep)
	case types.UpgradeExtraBullet:
		if m.HasExtraBullet {
			return false
		}
		m.HasExtraBullet = true
	case types.UpgradeReinforcedBarriers:
		if m.ReinforcedBarrierLevel >= MaxReinforcedBarrier {
			return false
		}
		m.ReinforcedBarrierLevel++
	case types.UpgradePostBossShield:
		if m.HasPostBossShield {
			return false
		}
		m.HasPostBossShield = true
	default:
		return false
	}
	return true
}

// AvailableUpgrades 返回尚未达到上限的升级，顺序与 types.AllUpgradeTypes 一致
func (m ModifierSet) AvailableUpgrades() []types.UpgradeType {
	result := make([]types.UpgradeType, 0, len(types.AllUpgradeTypes))
	for _, u := range types.AllUpgradeTypes {
		trial := m
		if trial.ApplyUpgrade(u) {
			result = append(result, u)
		}
	}
	return result
}

// BulletHeight 按长度倍率计算子弹高度
func (m ModifierSet) BulletHeight(base float64) float64 {
	if m.BulletLengthMultiplier <= 0 {
		return base
	}
	return base * m.BulletLengthMultiplier
}

// EffectiveBossDamageMultiplier 返回不小于 1 的 Boss 伤害倍率
func (m ModifierSet) EffectiveBossDamageMultiplier() float64 {
	if m.BossDamageMultiplier < 1 {
		return 1
	}
	return m.BossDamageMultiplier
}

// BarrierHits 计算掩体方块的承受次数
// 取所有玩家中最高的强化等级，结果限制在 [baseHits, maxHits]
func BarrierHits(baseHits, maxHits int, modifiers ...ModifierSet) int {
	level := 0
	for _, m := range modifiers {
		level = max(level, m.ReinforcedBarrierLevel)
	}
	hits := baseHits + level
	if hits < baseHits {
		hits = baseHits
	}
	if hits > maxHits {
		hits = maxHits
	}
	return hits
}
