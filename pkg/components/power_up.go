package components

import (
	"time"

	"github.com/decker502/invaders/pkg/types"
	"github.com/decker502/invaders/pkg/utils"
)

// PowerUp 下落中的道具
type PowerUp struct {
	ID        int
	Type      types.PowerUpType
	X, Y      float64
	W, H      float64
	SpawnedAt time.Duration
}

// Rect 碰撞矩形
func (p *PowerUp) Rect() utils.Rect {
	return utils.Rect{X: p.X, Y: p.Y, W: p.W, H: p.H}
}

// Expired 超过生存时间
func (p *PowerUp) Expired(now, lifetime time.Duration) bool {
	return now-p.SpawnedAt >= lifetime
}
