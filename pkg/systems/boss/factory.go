package boss

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/decker502/invaders/pkg/config"
	"github.com/decker502/invaders/pkg/types"
)

// New 创建指定类型的 Boss
//
// 参数:
//   - bt: Boss 类型
//   - encounterIndex: 同类 Boss 的遭遇次数（从 1 开始）
//   - now: 当前模拟时间
//   - cfg: 战斗参数
//   - rng: 随机数源（Boss 持有引用）
//
// 返回:
//   - Boss: 新的 Boss 实例
//   - error: 类型未知时返回错误
func New(bt types.BossType, encounterIndex int, now time.Duration, cfg *config.CombatConfig, rng *rand.Rand) (Boss, error) {
	switch bt {
	case types.BossTurretUFO:
		return NewTurretUFO(encounterIndex, now, cfg, rng), nil
	case types.BossAlienOverlord:
		return NewAlienOverlord(encounterIndex, now, cfg, rng), nil
	case types.BossRubiksCube:
		return NewRubiksCube(encounterIndex, now, cfg, rng), nil
	case types.BossBulletHell:
		return NewBulletHell(encounterIndex, now, cfg, rng), nil
	case types.BossAsteroidField:
		return NewAsteroidField(encounterIndex, now, cfg, rng), nil
	default:
		return nil, fmt.Errorf("unknown boss type: %v", bt)
	}
}

// PickType 从启用的类型中随机选择，启用多种时不与上一次相同
// 没有启用任何类型时返回 BossNone
func PickType(enabled []types.BossType, previous types.BossType, rng *rand.Rand) types.BossType {
	if len(enabled) == 0 {
		return types.BossNone
	}
	if len(enabled) == 1 {
		return enabled[0]
	}

	candidates := make([]types.BossType, 0, len(enabled))
	for _, bt := range enabled {
		if bt != previous {
			candidates = append(candidates, bt)
		}
	}
	if len(candidates) == 0 {
		// 启用列表全部与上一次相同（重复项）
		return enabled[0]
	}
	return candidates[rng.Intn(len(candidates))]
}
