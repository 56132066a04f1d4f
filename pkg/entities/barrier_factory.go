package entities

import (
	"github.com/decker502/invaders/pkg/components"
	"github.com/decker502/invaders/pkg/config"
)

// NewBarriers 创建一排掩体
// 掩体在屏幕宽度上等距分布，每块承受次数由所有玩家中最高的强化等级决定
//
// 参数:
//   - cfg: 战斗参数（使用 Screen 和 Barriers）
//   - modifiers: 所有玩家的升级状态
func NewBarriers(cfg *config.CombatConfig, modifiers ...components.ModifierSet) []*components.Barrier {
	bc := cfg.Barriers
	if bc.Count <= 0 || bc.Rows <= 0 || bc.Cols <= 0 {
		return nil
	}

	hits := components.BarrierHits(bc.BaseHits, bc.MaxHits, modifiers...)
	width := float64(bc.Cols) * bc.BlockWidth
	spacing := cfg.Screen.Width / float64(bc.Count+1)
	top := cfg.Screen.Height - bc.OffsetFromBottom

	barriers := make([]*components.Barrier, 0, bc.Count)
	for i := 0; i < bc.Count; i++ {
		left := spacing*float64(i+1) - width/2
		b := &components.Barrier{ID: i + 1, Blocks: make([]components.BarrierBlock, 0, bc.Rows*bc.Cols)}
		for row := 0; row < bc.Rows; row++ {
			for col := 0; col < bc.Cols; col++ {
				b.Blocks = append(b.Blocks, components.BarrierBlock{
					X:             left + float64(col)*bc.BlockWidth,
					Y:             top + float64(row)*bc.BlockHeight,
					W:             bc.BlockWidth,
					H:             bc.BlockHeight,
					HitsRemaining: hits,
				})
			}
		}
		barriers = append(barriers, b)
	}
	return barriers
}
