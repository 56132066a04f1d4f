package types

import "fmt"

// CubeColor 魔方方块颜色
// 攻击阶段所有非中心方块共享同一颜色，颜色决定攻击方式
type CubeColor int

const (
	CubeRed    CubeColor = iota // 追踪旋转方块
	CubeBlue                    // 快速追踪子弹
	CubeGreen                   // 预警后发射、锚定在魔方中心的激光
	CubeYellow                  // 慢速垂直下落的球
	CubeWhite                   // 一个长寿命反弹球
	CubeOrange                  // 原地旋转炮管喷射火球
)

// AllCubeColors 所有魔方颜色
var AllCubeColors = []CubeColor{CubeRed, CubeBlue, CubeGreen, CubeYellow, CubeWhite, CubeOrange}

// String 返回颜色名称
func (c CubeColor) String() string {
	switch c {
	case CubeRed:
		return "red"
	case CubeBlue:
		return "blue"
	case CubeGreen:
		return "green"
	case CubeYellow:
		return "yellow"
	case CubeWhite:
		return "white"
	case CubeOrange:
		return "orange"
	default:
		return "unknown"
	}
}

// ParseCubeColor 将名称解析为 CubeColor
func ParseCubeColor(name string) (CubeColor, error) {
	for _, c := range AllCubeColors {
		if c.String() == name {
			return c, nil
		}
	}
	return CubeRed, fmt.Errorf("unknown cube color %q", name)
}
