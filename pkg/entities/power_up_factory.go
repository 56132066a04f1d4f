package entities

import (
	"math/rand"
	"time"

	"github.com/decker502/invaders/pkg/components"
	"github.com/decker502/invaders/pkg/config"
	"github.com/decker502/invaders/pkg/types"
)

// NewPowerUp 在指定中心位置创建下落的道具
func NewPowerUp(cfg *config.PowerUpConfig, t types.PowerUpType, centerX, centerY float64, now time.Duration) *components.PowerUp {
	return &components.PowerUp{
		Type:      t,
		X:         centerX - cfg.Width/2,
		Y:         centerY - cfg.Height/2,
		W:         cfg.Width,
		H:         cfg.Height,
		SpawnedAt: now,
	}
}

// RandomPowerUpType 等概率选择一种道具
func RandomPowerUpType(rng *rand.Rand) types.PowerUpType {
	return types.AllPowerUpTypes[rng.Intn(len(types.AllPowerUpTypes))]
}
