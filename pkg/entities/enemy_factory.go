package entities

import (
	"github.com/decker502/invaders/pkg/components"
	"github.com/decker502/invaders/pkg/config"
)

// NewEnemyGrid 创建普通敌人编队
// 编队水平居中，从 StartY 开始逐行排列，整体初始向右移动
//
// 参数:
//   - cfg: 战斗参数（使用 Screen 和 Enemies）
//
// 返回:
//   - []*components.Enemy: 按行优先排列的敌人，ID 从 1 开始
func NewEnemyGrid(cfg *config.CombatConfig) []*components.Enemy {
	ec := cfg.Enemies
	if ec.Rows <= 0 || ec.Cols <= 0 {
		return nil
	}

	gridW := float64(ec.Cols-1)*ec.SpacingX + ec.Width
	startX := (cfg.Screen.Width - gridW) / 2

	enemies := make([]*components.Enemy, 0, ec.Rows*ec.Cols)
	for row := 0; row < ec.Rows; row++ {
		for col := 0; col < ec.Cols; col++ {
			enemies = append(enemies, &components.Enemy{
				ID:        len(enemies) + 1,
				Row:       row,
				Col:       col,
				X:         startX + float64(col)*ec.SpacingX,
				Y:         ec.StartY + float64(row)*ec.SpacingY,
				W:         ec.Width,
				H:         ec.Height,
				Health:    max(ec.Health, 1),
				Direction: 1,
			})
		}
	}
	return enemies
}
