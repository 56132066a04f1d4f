package components

import "github.com/decker502/invaders/pkg/utils"

// BarrierBlock 掩体中的一个方块
type BarrierBlock struct {
	X, Y          float64
	W, H          float64
	HitsRemaining int // 剩余承受次数，归零时移除
}

// Rect 碰撞矩形
func (b *BarrierBlock) Rect() utils.Rect {
	return utils.Rect{X: b.X, Y: b.Y, W: b.W, H: b.H}
}

// Barrier 由方块组成的掩体
type Barrier struct {
	ID     int
	Blocks []BarrierBlock
}

// Bounds 掩体整体的包围矩形，用于快速排除
func (b *Barrier) Bounds() utils.Rect {
	if len(b.Blocks) == 0 {
		return utils.Rect{}
	}
	minX, minY := b.Blocks[0].X, b.Blocks[0].Y
	maxX, maxY := b.Blocks[0].X+b.Blocks[0].W, b.Blocks[0].Y+b.Blocks[0].H
	for _, blk := range b.Blocks[1:] {
		minX = min(minX, blk.X)
		minY = min(minY, blk.Y)
		maxX = max(maxX, blk.X+blk.W)
		maxY = max(maxY, blk.Y+blk.H)
	}
	return utils.Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// FirstOverlap 返回第一个与 r 相交的方块索引，没有则返回 -1
func (b *Barrier) FirstOverlap(r utils.Rect) int {
	if !b.Bounds().Intersects(r) {
		return -1
	}
	for i := range b.Blocks {
		if b.Blocks[i].Rect().Intersects(r) {
			return i
		}
	}
	return -1
}

// HitBlock 方块承受一次命中
// 返回 true 表示方块被摧毁并已移除；索引越界时什么都不做
func (b *Barrier) HitBlock(index int) bool {
	if index < 0 || index >= len(b.Blocks) {
		return false
	}
	b.Blocks[index].HitsRemaining--
	if b.Blocks[index].HitsRemaining > 0 {
		return false
	}
	b.Blocks = append(b.Blocks[:index], b.Blocks[index+1:]...)
	return true
}

// Empty 所有方块都已被摧毁
func (b *Barrier) Empty() bool {
	return len(b.Blocks) == 0
}
