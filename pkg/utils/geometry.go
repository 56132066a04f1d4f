// Package utils 提供游戏开发中常用的工具函数
//
// geometry.go 提供战斗核心使用的几何工具：
//   - 轴对齐矩形（左上角 + 宽高）的相交检测
//   - 圆与矩形的相交、间隙计算（小行星与玩家）
//   - 绕中心点旋转（魔方方块的四个角）
//   - 射线法判断点是否在多边形内（旋转方块的受击检测）
//   - 安全归一化（源点与目标点重合时不产生 NaN）
//
// # 坐标系统
//
// 屏幕坐标，原点在左上角，Y 轴向下。角度使用弧度，正方向为顺时针（屏幕坐标下）。
package utils

import "math"

// Rect 轴对齐矩形，X/Y 为左上角
type Rect struct {
	X, Y, W, H float64
}

// Vec2 二维向量/点
type Vec2 struct {
	X, Y float64
}

// NewRectFromCenter 根据中心点和宽高创建矩形
func NewRectFromCenter(cx, cy, w, h float64) Rect {
	return Rect{X: cx - w/2, Y: cy - h/2, W: w, H: h}
}

// Intersects 检查两个矩形是否重叠
// 仅边缘接触不算重叠
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.X+o.W &&
		r.X+r.W > o.X &&
		r.Y < o.Y+o.H &&
		r.Y+r.H > o.Y
}

// Contains 检查点是否在矩形内（含左上边缘，不含右下边缘）
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Center 返回矩形中心
func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Bottom 返回矩形下边缘 Y
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// Distance 两点间距离
func Distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

// Normalize 归一化向量
// 零向量（源点与目标点重合）返回 (0, 0, false)，调用方据此选择默认方向
func Normalize(dx, dy float64) (float64, float64, bool) {
	length := math.Hypot(dx, dy)
	if length < 1e-9 || math.IsNaN(length) || math.IsInf(length, 0) {
		return 0, 0, false
	}
	return dx / length, dy / length, true
}

// DirectionOr 返回从 (fromX, fromY) 指向 (toX, toY) 的单位向量
// 两点重合时返回默认方向 (defX, defY)
func DirectionOr(fromX, fromY, toX, toY, defX, defY float64) (float64, float64) {
	nx, ny, ok := Normalize(toX-fromX, toY-fromY)
	if !ok {
		return defX, defY
	}
	return nx, ny
}

// RotatePoint 将点 (px, py) 绕 (cx, cy) 旋转 angle 弧度
func RotatePoint(px, py, cx, cy, angle float64) (float64, float64) {
	sin, cos := math.Sincos(angle)
	dx := px - cx
	dy := py - cy
	return cx + dx*cos - dy*sin, cy + dx*sin + dy*cos
}

// RotatedRectCorners 计算矩形绕 (cx, cy) 旋转 angle 后的四个角
// 顺序：左上、右上、右下、左下（旋转前）
func RotatedRectCorners(r Rect, cx, cy, angle float64) []Vec2 {
	corners := []Vec2{
		{X: r.X, Y: r.Y},
		{X: r.X + r.W, Y: r.Y},
		{X: r.X + r.W, Y: r.Y + r.H},
		{X: r.X, Y: r.Y + r.H},
	}
	for i := range corners {
		corners[i].X, corners[i].Y = RotatePoint(corners[i].X, corners[i].Y, cx, cy, angle)
	}
	return corners
}

// PointInPolygon 射线法判断点是否在多边形内
// 少于 3 个顶点的多边形永远返回 false
func PointInPolygon(x, y float64, poly []Vec2) bool {
	if len(poly) < 3 {
		return false
	}
	inside := false
	j := len(poly) - 1
	for i := 0; i < len(poly); i++ {
		xi, yi := poly[i].X, poly[i].Y
		xj, yj := poly[j].X, poly[j].Y
		if (yi > y) != (yj > y) {
			crossX := (xj-xi)*(y-yi)/(yj-yi) + xi
			if x < crossX {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// PolygonBounds 返回多边形的轴对齐包围盒
func PolygonBounds(poly []Vec2) Rect {
	if len(poly) == 0 {
		return Rect{}
	}
	minX, minY := poly[0].X, poly[0].Y
	maxX, maxY := minX, minY
	for _, p := range poly[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// CircleRectGap 计算圆边缘到矩形的最近距离
// 返回值 <= 0 表示圆与矩形相交
func CircleRectGap(cx, cy, radius float64, r Rect) float64 {
	nearestX := Clamp(cx, r.X, r.X+r.W)
	nearestY := Clamp(cy, r.Y, r.Y+r.H)
	return Distance(cx, cy, nearestX, nearestY) - radius
}

// CircleIntersectsRect 检查圆与矩形是否相交
func CircleIntersectsRect(cx, cy, radius float64, r Rect) bool {
	return CircleRectGap(cx, cy, radius, r) < 0
}

// Clamp 将 v 限制在 [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampInt 将整数 v 限制在 [lo, hi]
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
