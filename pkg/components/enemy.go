package components

import "github.com/decker502/invaders/pkg/utils"

// Enemy 普通敌人（网格编队中的一员）
type Enemy struct {
	ID        int
	Row, Col  int
	X, Y      float64
	W, H      float64
	Health    int
	Direction float64 // 1 向右，-1 向左；整个编队同时翻转
}

// Rect 碰撞矩形
func (e *Enemy) Rect() utils.Rect {
	return utils.Rect{X: e.X, Y: e.Y, W: e.W, H: e.H}
}

// Alive 生命值大于 0
func (e *Enemy) Alive() bool {
	return e.Health > 0
}

// TakeDamage 扣除生命值（不低于 0），返回是否被消灭
func (e *Enemy) TakeDamage(amount int) bool {
	if e.Health <= 0 {
		return false
	}
	e.Health -= amount
	if e.Health <= 0 {
		e.Health = 0
		return true
	}
	return false
}
